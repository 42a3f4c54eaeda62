// Copyright 2026 The pak Authors. All rights reserved.
// Use of this source code is governed by the MIT License
// that can be found in the LICENSE file.

package pak

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"regexp"
	"strconv"
)

// FindIDForName looks up the resource ID for name in a grit-generated
// C header, which declares resources as
//
//	#define IDR_SOME_RESOURCE 12345
//
// found is false if the header has no definition for name.
func FindIDForName(name, headerPath string) (id uint16, found bool, err error) {
	header, err := os.ReadFile(headerPath)
	if errors.Is(err, fs.ErrNotExist) {
		return 0, false, fmt.Errorf("%w: header %s", ErrNotFound, headerPath)
	} else if err != nil {
		return 0, false, fmt.Errorf("os.ReadFile: %w", err)
	}

	re, err := regexp.Compile(`(?m)^[ \t]*#[ \t]*define[ \t]+` + regexp.QuoteMeta(name) + `[ \t]+(\d+)\b`)
	if err != nil {
		return 0, false, fmt.Errorf("regexp.Compile: %w", err)
	}
	m := re.FindSubmatch(header)
	if m == nil {
		return 0, false, nil
	}

	n, err := strconv.ParseUint(string(m[1]), 10, 16)
	if err != nil {
		return 0, false, fmt.Errorf("%s: %s defined as %s, which isn't a 16-bit resource ID", headerPath, name, m[1])
	}
	return uint16(n), true, nil
}
