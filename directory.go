// Copyright 2026 The pak Authors. All rights reserved.
// Use of this source code is governed by the MIT License
// that can be found in the LICENSE file.

package pak

import (
	"errors"
	"fmt"
	"io/fs"
	"maps"
	"os"
	"path/filepath"
	"regexp"
	"slices"
	"strconv"
)

var resourceFileName = regexp.MustCompile(`^\d+$`)

// UnpackToDirectory decodes the archive at archivePath and writes each
// resource to a file in dir named by its decimal ID.
//
// This is destructive: if dir already exists it is removed, along with
// everything in it, before being recreated.  The archive is fully
// decoded first, so a missing or corrupt archive leaves dir untouched.
func UnpackToDirectory(archivePath, dir string, opts ...Option) error {
	o := newOptions(opts)

	f, err := Open(archivePath)
	if err != nil {
		return err
	}
	defer func() {
		_ = f.Close()
	}()

	o.logger.Debug("read data pack",
		"path", archivePath,
		"version", f.Version,
		"encoding", f.Encoding,
		"resources", len(f.Resources),
		"aliases", len(f.Aliases))

	if err := WriteDirectory(dir, f.Resources, opts...); err != nil {
		return err
	}

	o.logger.Info("unpacked data pack", "path", archivePath, "dir", dir, "resources", len(f.Resources))
	return nil
}

// PackFromDirectory reads the resource files in dir (see ReadDirectory)
// and writes them to archivePath as a UTF-8 tagged archive.
func PackFromDirectory(dir, archivePath string, opts ...Option) error {
	resources, err := ReadDirectory(dir, opts...)
	if err != nil {
		return err
	}
	return WriteFile(archivePath, resources, UTF8, opts...)
}

// ReadDirectory reads every file in dir whose name is one or more
// decimal digits, keyed by that number.  Other entries are skipped.
func ReadDirectory(dir string, opts ...Option) (map[uint16][]byte, error) {
	o := newOptions(opts)

	fi, err := os.Stat(dir)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("%w: directory %s", ErrNotFound, dir)
	} else if err != nil {
		return nil, fmt.Errorf("os.Stat: %w", err)
	}
	if !fi.IsDir() {
		return nil, fmt.Errorf("%s is not a directory", dir)
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("os.ReadDir: %w", err)
	}

	resources := make(map[uint16][]byte, len(entries))
	for _, entry := range entries {
		name := entry.Name()
		if !resourceFileName.MatchString(name) {
			o.logger.Debug("skipping non-resource file", "dir", dir, "name", name)
			continue
		}
		if !entry.Type().IsRegular() {
			o.logger.Debug("skipping non-regular file", "dir", dir, "name", name)
			continue
		}

		id, err := strconv.ParseUint(name, 10, 16)
		if err != nil {
			return nil, fmt.Errorf("resource file %q: ID must fit in 16 bits", name)
		}
		if id == 0 {
			return nil, fmt.Errorf("resource file %q: %w", name, ErrReservedID)
		}
		if _, ok := resources[uint16(id)]; ok {
			return nil, fmt.Errorf("resource file %q: duplicate resource ID %d", name, id)
		}

		blob, err := os.ReadFile(filepath.Join(dir, name))
		if err != nil {
			return nil, fmt.Errorf("os.ReadFile: %w", err)
		}
		resources[uint16(id)] = blob
	}

	return resources, nil
}

// WriteDirectory writes each resource to a file in dir named by its
// decimal ID.  Like UnpackToDirectory, it first removes dir and
// everything in it.
func WriteDirectory(dir string, resources map[uint16][]byte, opts ...Option) error {
	o := newOptions(opts)

	if err := os.RemoveAll(dir); err != nil {
		return fmt.Errorf("os.RemoveAll: %w", err)
	}
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("os.MkdirAll: %w", err)
	}

	for _, id := range slices.Sorted(maps.Keys(resources)) {
		path := filepath.Join(dir, strconv.FormatUint(uint64(id), 10))
		if err := os.WriteFile(path, resources[id], 0644); err != nil {
			return fmt.Errorf("os.WriteFile: %w", err)
		}
	}

	o.logger.Debug("wrote resource directory", "dir", dir, "resources", len(resources))
	return nil
}
