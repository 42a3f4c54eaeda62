// Copyright 2026 The pak Authors. All rights reserved.
// Use of this source code is governed by the MIT License
// that can be found in the LICENSE file.

package format

import (
	"fmt"

	"github.com/bpowers/pak/internal/bitset"
)

// Sizes is the byte accounting of the four sections of a data pack.
type Sizes struct {
	Header     int
	IDTable    int
	AliasTable int
	Data       int
}

// Total is the archive length these sizes describe.
func (s Sizes) Total() int {
	return s.Header + s.IDTable + s.AliasTable + s.Data
}

// Pack is the parsed contents of a data pack.
type Pack struct {
	Version  uint32
	Encoding uint8
	// Resources maps resource ID to its data.  Values are sub-slices of
	// the buffer passed to Parse, and aliased IDs share the slice of
	// their canonical resource.
	Resources map[uint16][]byte
	// Aliases maps aliased resource ID to canonical resource ID.
	Aliases map[uint16]uint16
	Sizes   Sizes
}

// Parse decodes a version 4 or version 5 data pack.  The returned
// resources reference data directly, so data must not be modified
// while the Pack is in use.
func Parse(data []byte) (*Pack, error) {
	var h fileHeader
	if err := h.UnmarshalBytes(data); err != nil {
		return nil, fmt.Errorf("fileHeader.UnmarshalBytes: %w", err)
	}

	dataLen := int64(len(data))
	headerLen := int64(h.Len())
	// v4 counts are 32 bits wide; do the bounds math in int64 before
	// trusting them for allocations.
	idLen := (int64(h.resourceCount) + 1) * indexEntryLen
	aliasLen := int64(h.aliasCount) * aliasEntryLen
	dataStart := headerLen + idLen + aliasLen
	if dataStart > dataLen {
		return nil, structuralf("tables end at %d beyond bounds (%d): %d resources, %d aliases",
			dataStart, dataLen, h.resourceCount, h.aliasCount)
	}

	resourceCount := int(h.resourceCount)
	aliasCount := int(h.aliasCount)
	index := data[headerLen : headerLen+idLen]
	aliasTable := data[headerLen+idLen : dataStart]

	seen := bitset.New()
	resources := make(map[uint16][]byte, resourceCount+aliasCount)

	prev := readIndexEntry(index)
	if off := int64(prev.offset); off < dataStart || off > dataLen {
		return nil, structuralf("entry 0 offset %d outside data section [%d, %d]", off, dataStart, dataLen)
	}
	for i := 1; i <= resourceCount; i++ {
		next := readIndexEntry(index[i*indexEntryLen:])
		if next.offset < prev.offset || int64(next.offset) > dataLen {
			return nil, structuralf("entry %d offset %d outside [%d, %d]", i, next.offset, prev.offset, dataLen)
		}
		if prev.id == 0 {
			return nil, structuralf("entry %d uses reserved resource ID 0", i-1)
		}
		if seen.Set(prev.id) {
			return nil, structuralf("entry %d duplicates resource ID %d", i-1, prev.id)
		}
		// cap the slice so appending to one resource can't clobber the next
		resources[prev.id] = data[prev.offset:next.offset:next.offset]
		prev = next
	}

	aliases := make(map[uint16]uint16, aliasCount)
	for i := 0; i < aliasCount; i++ {
		a := readAliasEntry(aliasTable[i*aliasEntryLen:])
		if int(a.index) >= resourceCount {
			return nil, fmt.Errorf("%w: alias %d (ID %d) points at main index %d of %d",
				ErrAliasTargetMissing, i, a.id, a.index, resourceCount)
		}
		if a.id == 0 {
			return nil, structuralf("alias %d uses reserved resource ID 0", i)
		}
		if seen.Set(a.id) {
			return nil, structuralf("alias %d duplicates resource ID %d", i, a.id)
		}
		// resolve against the main index, not the resource map
		canonical := readIndexEntry(index[int(a.index)*indexEntryLen:]).id
		aliases[a.id] = canonical
		resources[a.id] = resources[canonical]
	}

	sizes := Sizes{
		Header:     int(headerLen),
		IDTable:    int(idLen),
		AliasTable: int(aliasLen),
		Data:       int(dataLen - dataStart),
	}
	if sizes.Total() != len(data) {
		return nil, structuralf("size breakdown %+v sums to %d, archive is %d bytes", sizes, sizes.Total(), len(data))
	}

	return &Pack{
		Version:   h.version,
		Encoding:  h.encoding,
		Resources: resources,
		Aliases:   aliases,
		Sizes:     sizes,
	}, nil
}
