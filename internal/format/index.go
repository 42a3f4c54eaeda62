// Copyright 2026 The pak Authors. All rights reserved.
// Use of this source code is governed by the MIT License
// that can be found in the LICENSE file.

package format

import (
	"encoding/binary"
)

const (
	indexEntryLen = 2 + 4 // uint16 resource ID + uint32 data offset
	aliasEntryLen = 2 + 2 // uint16 resource ID + uint16 main index position

	maxResourceCount = (1 << 16) - 1
	maxDataOffset    = (1 << 32) - 1
)

type indexEntry struct {
	id     uint16
	offset uint32
}

func readIndexEntry(b []byte) indexEntry {
	// bounds check elimination
	_ = b[indexEntryLen-1]
	return indexEntry{
		id:     binary.LittleEndian.Uint16(b[:2]),
		offset: binary.LittleEndian.Uint32(b[2:6]),
	}
}

func (e indexEntry) MarshalTo(b []byte) {
	_ = b[indexEntryLen-1]
	binary.LittleEndian.PutUint16(b[:2], e.id)
	binary.LittleEndian.PutUint32(b[2:6], e.offset)
}

type aliasEntry struct {
	id    uint16
	index uint16
}

func readAliasEntry(b []byte) aliasEntry {
	_ = b[aliasEntryLen-1]
	return aliasEntry{
		id:    binary.LittleEndian.Uint16(b[:2]),
		index: binary.LittleEndian.Uint16(b[2:4]),
	}
}

func (e aliasEntry) MarshalTo(b []byte) {
	_ = b[aliasEntryLen-1]
	binary.LittleEndian.PutUint16(b[:2], e.id)
	binary.LittleEndian.PutUint16(b[2:4], e.index)
}

// idTableLen is the length of a main index with resourceCount real
// entries plus the trailing sentinel.
func idTableLen(resourceCount int) int {
	return (resourceCount + 1) * indexEntryLen
}

func aliasTableLen(aliasCount int) int {
	return aliasCount * aliasEntryLen
}
