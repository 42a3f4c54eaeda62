// Copyright 2026 The pak Authors. All rights reserved.
// Use of this source code is governed by the MIT License
// that can be found in the LICENSE file.

package pak

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/bpowers/pak/internal/format"
	"github.com/bpowers/pak/internal/mmap"
)

// Version is the data pack version written by this package.
const Version = format.Version5

var (
	// ErrUnsupportedVersion is matched by errors reading an archive
	// whose header version isn't 4 or 5.  Use errors.As with a
	// *VersionError to get the version found.
	ErrUnsupportedVersion = format.ErrUnsupportedVersion
	// ErrStructure is matched by errors reading a corrupt or truncated
	// archive.
	ErrStructure = format.ErrStructure
	// ErrAliasTargetMissing is matched by errors reading an archive
	// whose alias table points past the main index.  These errors
	// also match ErrStructure.
	ErrAliasTargetMissing = format.ErrAliasTargetMissing
	// ErrReservedID is matched by errors writing a resource with ID 0.
	ErrReservedID = format.ErrReservedID
	// ErrTooLarge is matched by errors writing more data than the
	// format's 32-bit offsets can address.
	ErrTooLarge = format.ErrTooLarge
	// ErrNotFound is matched by errors for a missing archive file or
	// resource directory.  It also matches fs.ErrNotExist.
	ErrNotFound = fmt.Errorf("not found: %w", fs.ErrNotExist)
)

// VersionError is returned for an archive with an unsupported version.
type VersionError = format.VersionError

// Encoding is the archive-wide text encoding tag.  It is carried in the
// header and never used to interpret resource contents.
type Encoding uint8

const (
	Binary Encoding = iota
	UTF8
	UTF16
)

func (e Encoding) String() string {
	switch e {
	case Binary:
		return "binary"
	case UTF8:
		return "utf-8"
	case UTF16:
		return "utf-16"
	default:
		return fmt.Sprintf("Encoding(%d)", uint8(e))
	}
}

// SizeBreakdown is the byte length of each section of an archive.
type SizeBreakdown struct {
	Header     int
	IDTable    int
	AliasTable int
	Data       int
}

// Total is the archive length: the sum of all four sections.
func (s SizeBreakdown) Total() int {
	return s.Header + s.IDTable + s.AliasTable + s.Data
}

// Contents is a decoded archive.
type Contents struct {
	// Resources maps every resource ID, including aliased ones, to its
	// data.  An aliased ID shares the slice of its canonical ID.
	Resources map[uint16][]byte
	Encoding  Encoding
	Version   uint32
	// Aliases maps aliased resource IDs to their canonical IDs.
	Aliases map[uint16]uint16
	Sizes   SizeBreakdown
}

func newContents(p *format.Pack) *Contents {
	return &Contents{
		Resources: p.Resources,
		Encoding:  Encoding(p.Encoding),
		Version:   p.Version,
		Aliases:   p.Aliases,
		Sizes: SizeBreakdown{
			Header:     p.Sizes.Header,
			IDTable:    p.Sizes.IDTable,
			AliasTable: p.Sizes.AliasTable,
			Data:       p.Sizes.Data,
		},
	}
}

// Option configures the file and directory helpers.
type Option func(*options)

type options struct {
	logger *slog.Logger
}

// WithLogger sets an optional logger for progress updates.  If not
// provided, no logging output will be produced.
func WithLogger(logger *slog.Logger) Option {
	return func(opts *options) {
		opts.logger = logger
	}
}

func newOptions(opts []Option) options {
	var o options
	o.logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	for _, opt := range opts {
		opt(&o)
	}
	return o
}

// ReadArchive decodes a version 4 or version 5 archive.  Resources in
// the result are sub-slices of data, which must not be modified while
// they are in use.
func ReadArchive(data []byte) (*Contents, error) {
	p, err := format.Parse(data)
	if err != nil {
		return nil, err
	}
	return newContents(p), nil
}

// WriteArchive encodes resources as a version 5 archive.  The output
// depends only on the contents of resources, never on map iteration
// order.
func WriteArchive(resources map[uint16][]byte, encoding Encoding) ([]byte, error) {
	return format.Encode(resources, uint8(encoding))
}

// WriteArchiveTo encodes resources as a version 5 archive to w.
func WriteArchiveTo(w io.Writer, resources map[uint16][]byte, encoding Encoding) (int64, error) {
	l, err := format.NewLayout(resources, uint8(encoding))
	if err != nil {
		return 0, err
	}
	return l.WriteTo(w)
}

func statFile(path string) error {
	fi, err := os.Stat(path)
	if errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("%w: archive %s", ErrNotFound, path)
	} else if err != nil {
		return fmt.Errorf("os.Stat: %w", err)
	}
	if fi.IsDir() {
		return fmt.Errorf("archive %s is a directory", path)
	}
	return nil
}

// ReadFile reads and decodes the archive at path into memory.
func ReadFile(path string) (*Contents, error) {
	if err := statFile(path); err != nil {
		return nil, err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("os.ReadFile: %w", err)
	}
	c, err := ReadArchive(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return c, nil
}

// File is an archive decoded from a memory-mapped file.  Its resources
// are only valid until Close.
type File struct {
	*Contents
	m *mmap.ReaderAt
}

// Open memory-maps and decodes the archive at path.
func Open(path string) (*File, error) {
	if err := statFile(path); err != nil {
		return nil, err
	}
	m, err := mmap.Open(path)
	if err != nil {
		return nil, fmt.Errorf("mmap.Open(%s): %w", path, err)
	}
	c, err := ReadArchive(m.Data())
	if err != nil {
		_ = m.Close()
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return &File{
		Contents: c,
		m:        m,
	}, nil
}

// Close unmaps the file.
func (f *File) Close() error {
	f.Contents = nil
	return f.m.Close()
}

// WriteFile encodes resources and atomically replaces the file at path
// with the result.
func WriteFile(path string, resources map[uint16][]byte, encoding Encoding, opts ...Option) error {
	o := newOptions(opts)

	l, err := format.NewLayout(resources, uint8(encoding))
	if err != nil {
		return err
	}

	// write to a new file and do an atomic rename when we're done
	path, err = filepath.Abs(path)
	if err != nil {
		return fmt.Errorf("filepath.Abs: %w", err)
	}
	dir := filepath.Dir(path)
	f, err := os.CreateTemp(dir, "pak-writer.*.pak")
	if err != nil {
		return fmt.Errorf("CreateTemp failed (may need permissions for dir %q containing archive): %w", dir, err)
	}
	cleanup := func() {
		_ = f.Close()
		_ = os.Remove(f.Name())
	}

	n, err := l.WriteTo(f)
	if err != nil {
		cleanup()
		return fmt.Errorf("Layout.WriteTo: %w", err)
	}
	if err := f.Sync(); err != nil {
		cleanup()
		return fmt.Errorf("f.Sync: %w", err)
	}
	if err := f.Close(); err != nil {
		_ = os.Remove(f.Name())
		return fmt.Errorf("f.Close: %w", err)
	}
	// CreateTemp uses 0600
	if err := os.Chmod(f.Name(), 0644); err != nil {
		_ = os.Remove(f.Name())
		return fmt.Errorf("os.Chmod(0644): %w", err)
	}
	if err := os.Rename(f.Name(), path); err != nil {
		_ = os.Remove(f.Name())
		return fmt.Errorf("os.Rename: %w", err)
	}

	o.logger.Info("wrote data pack",
		"path", path,
		"bytes", n,
		"resources", l.ResourceCount(),
		"aliases", l.AliasCount())
	return nil
}

// EqualResources reports whether two resource maps hold the same IDs
// with the same bytes.
func EqualResources(a, b map[uint16][]byte) bool {
	if len(a) != len(b) {
		return false
	}
	for id, blob := range a {
		other, ok := b[id]
		if !ok || !bytes.Equal(blob, other) {
			return false
		}
	}
	return true
}
