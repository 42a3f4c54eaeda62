// Copyright 2026 The pak Authors. All rights reserved.
// Use of this source code is governed by the MIT License
// that can be found in the LICENSE file.

// Package mmap provides a read-only view of a file's contents,
// memory-mapped where the platform supports it.
package mmap

import (
	"errors"
	"fmt"
	"io"
)

var errClosed = errors.New("mmap: closed")

// ReaderAt reads a memory-mapped file.  Slices returned by Data are
// only valid until Close.
type ReaderAt struct {
	data []byte
	// unmap releases data; nil for empty files and heap-backed readers
	unmap func([]byte) error
}

// Len returns the length of the underlying file.
func (r *ReaderAt) Len() int {
	return len(r.data)
}

// Data returns the whole file.  It must not be modified.
func (r *ReaderAt) Data() []byte {
	return r.data
}

// ReadAt implements io.ReaderAt.
func (r *ReaderAt) ReadAt(p []byte, off int64) (int, error) {
	if r.data == nil {
		return 0, errClosed
	}
	if off < 0 || int64(len(r.data)) < off {
		return 0, fmt.Errorf("mmap: invalid ReadAt offset %d", off)
	}
	n := copy(p, r.data[off:])
	if n < len(p) {
		return n, io.EOF
	}
	return n, nil
}

// Close releases the mapping.  It is safe to call more than once.
func (r *ReaderAt) Close() error {
	data, unmap := r.data, r.unmap
	r.data, r.unmap = nil, nil
	if unmap == nil || data == nil {
		return nil
	}
	return unmap(data)
}
