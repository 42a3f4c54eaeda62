// Copyright 2026 The pak Authors. All rights reserved.
// Use of this source code is governed by the MIT License
// that can be found in the LICENSE file.

package format

import (
	"errors"
	"fmt"
)

var (
	// ErrUnsupportedVersion matches any *VersionError.
	ErrUnsupportedVersion = errors.New("unsupported data pack version")
	// ErrStructure reports a corrupt or truncated archive.
	ErrStructure = errors.New("data pack structure invalid")
	// ErrAliasTargetMissing reports an alias entry pointing past the end
	// of the main table.  It also matches ErrStructure.
	ErrAliasTargetMissing error = &aliasTargetError{}
	// ErrReservedID is returned by the writer for resource ID 0.
	ErrReservedID = errors.New("resource ID 0 is reserved")
	// ErrTooLarge is returned when resources don't fit in the format's
	// 16-bit counts or 32-bit offsets.
	ErrTooLarge = errors.New("resources too large for data pack")
)

type aliasTargetError struct{}

func (*aliasTargetError) Error() string {
	return "alias target missing"
}

func (*aliasTargetError) Is(target error) bool {
	return target == ErrStructure
}

// VersionError carries the version number found in an archive header.
type VersionError struct {
	Version uint32
}

func (e *VersionError) Error() string {
	return fmt.Sprintf("wrong file version: found v%d, can only read v%d and v%d", e.Version, Version4, Version5)
}

func (e *VersionError) Is(target error) bool {
	return target == ErrUnsupportedVersion
}

func structuralf(format string, args ...interface{}) error {
	return fmt.Errorf("%w: %s", ErrStructure, fmt.Sprintf(format, args...))
}
