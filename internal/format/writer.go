// Copyright 2026 The pak Authors. All rights reserved.
// Use of this source code is governed by the MIT License
// that can be found in the LICENSE file.

package format

import (
	"bufio"
	"bytes"
	"fmt"
	"io"
	"slices"

	"github.com/dgryski/go-farm"
)

const defaultBufferSize = 1024 * 1024

// Layout is the deduplicated, sorted arrangement of a resource map as
// it will appear on disk.  It is computed once by NewLayout and can be
// written any number of times with identical output.
type Layout struct {
	encoding uint8
	// canonical resources in ascending ID order; the position in these
	// slices is the main index position aliases refer to
	ids   []uint16
	blobs [][]byte
	// aliases in ascending ID order
	aliases []aliasEntry
	dataLen uint64
}

// NewLayout deduplicates resources by content.  For each group of
// resources with identical bytes, the lowest ID is stored and every
// other ID in the group becomes an alias of it.
func NewLayout(resources map[uint16][]byte, encoding uint8) (*Layout, error) {
	ids := make([]uint16, 0, len(resources))
	for id := range resources {
		if id == 0 {
			return nil, ErrReservedID
		}
		ids = append(ids, id)
	}
	slices.Sort(ids)

	l := &Layout{
		encoding: encoding,
	}
	// fingerprint -> positions of canonical blobs with that fingerprint
	byFingerprint := make(map[uint64][]int, len(ids))
	for _, id := range ids {
		blob := resources[id]
		fp := farm.Fingerprint64(blob)

		canonical := -1
		for _, pos := range byFingerprint[fp] {
			if bytes.Equal(l.blobs[pos], blob) {
				canonical = pos
				break
			}
		}
		if canonical >= 0 {
			l.aliases = append(l.aliases, aliasEntry{id: id, index: uint16(canonical)})
			continue
		}

		if len(l.ids) >= maxResourceCount {
			return nil, fmt.Errorf("%w: more than %d distinct resources", ErrTooLarge, maxResourceCount)
		}
		byFingerprint[fp] = append(byFingerprint[fp], len(l.ids))
		l.ids = append(l.ids, id)
		l.blobs = append(l.blobs, blob)
		l.dataLen += uint64(len(blob))
	}

	if err := checkDataEnd(l.dataStart(), l.dataLen); err != nil {
		return nil, err
	}

	return l, nil
}

// checkDataEnd ensures every offset, including the sentinel's, fits
// in the index's uint32 offset field.
func checkDataEnd(dataStart int, dataLen uint64) error {
	if end := uint64(dataStart) + dataLen; end > maxDataOffset {
		return fmt.Errorf("%w: data ends at offset %d", ErrTooLarge, end)
	}
	return nil
}

func (l *Layout) dataStart() int {
	return headerLenV5 + idTableLen(len(l.ids)) + aliasTableLen(len(l.aliases))
}

// ResourceCount is the number of resources stored in the main index.
func (l *Layout) ResourceCount() int {
	return len(l.ids)
}

// AliasCount is the number of resources stored as aliases.
func (l *Layout) AliasCount() int {
	return len(l.aliases)
}

// Aliases maps each aliased resource ID to its canonical ID.
func (l *Layout) Aliases() map[uint16]uint16 {
	aliases := make(map[uint16]uint16, len(l.aliases))
	for _, a := range l.aliases {
		aliases[a.id] = l.ids[a.index]
	}
	return aliases
}

// Sizes returns the section sizes of the archive WriteTo produces.
func (l *Layout) Sizes() Sizes {
	return Sizes{
		Header:     headerLenV5,
		IDTable:    idTableLen(len(l.ids)),
		AliasTable: aliasTableLen(len(l.aliases)),
		Data:       int(l.dataLen),
	}
}

// WriteTo writes a version 5 data pack to w.
func (l *Layout) WriteTo(w io.Writer) (n int64, err error) {
	bw := bufio.NewWriterSize(w, defaultBufferSize)
	cw := &countingWriter{w: bw}

	h := newFileHeader(l.encoding, len(l.ids), len(l.aliases))
	if _, err := h.WriteTo(cw); err != nil {
		return cw.n, fmt.Errorf("fileHeader.WriteTo: %w", err)
	}

	var entryBuf [indexEntryLen]byte
	off := uint32(l.dataStart())
	for i, id := range l.ids {
		indexEntry{id: id, offset: off}.MarshalTo(entryBuf[:])
		if _, err := cw.Write(entryBuf[:]); err != nil {
			return cw.n, fmt.Errorf("bufio.Write index %d: %w", i, err)
		}
		off += uint32(len(l.blobs[i]))
	}
	indexEntry{id: 0, offset: off}.MarshalTo(entryBuf[:])
	if _, err := cw.Write(entryBuf[:]); err != nil {
		return cw.n, fmt.Errorf("bufio.Write sentinel: %w", err)
	}

	var aliasBuf [aliasEntryLen]byte
	for i, a := range l.aliases {
		a.MarshalTo(aliasBuf[:])
		if _, err := cw.Write(aliasBuf[:]); err != nil {
			return cw.n, fmt.Errorf("bufio.Write alias %d: %w", i, err)
		}
	}

	for i, blob := range l.blobs {
		if _, err := cw.Write(blob); err != nil {
			return cw.n, fmt.Errorf("bufio.Write data %d: %w", i, err)
		}
	}

	if err := bw.Flush(); err != nil {
		return cw.n, fmt.Errorf("bufio.Flush: %w", err)
	}

	if expected := int64(l.Sizes().Total()); cw.n != expected {
		panic(fmt.Errorf("invariant broken: wrote %d bytes, layout is %d", cw.n, expected))
	}

	return cw.n, nil
}

// Encode returns resources serialized as a version 5 data pack.
func Encode(resources map[uint16][]byte, encoding uint8) ([]byte, error) {
	l, err := NewLayout(resources, encoding)
	if err != nil {
		return nil, err
	}
	var buf bytes.Buffer
	buf.Grow(l.Sizes().Total())
	if _, err := l.WriteTo(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

type countingWriter struct {
	w io.Writer
	n int64
}

func (c *countingWriter) Write(p []byte) (int, error) {
	n, err := c.w.Write(p)
	c.n += int64(n)
	return n, err
}
