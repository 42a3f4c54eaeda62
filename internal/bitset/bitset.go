// Copyright 2026 The pak Authors. All rights reserved.
// Use of this source code is governed by the MIT License
// that can be found in the LICENSE file.

package bitset

const idSpace = 1 << 16

// Bitset is a set of 16-bit resource IDs, conceptually similar to
// [65536]bool but 8 KB in size.
type Bitset struct {
	bits  [idSpace / 64]uint64
	count int
}

func getOffsets(id uint16) (sliceOff int, bitOff uint64) {
	sliceOff = int(id) / 64
	bitOff = uint64(id) % 64
	return
}

// Set adds id to the set and reports whether it was already present.
func (b *Bitset) Set(id uint16) (wasSet bool) {
	sliceOff, bitOff := getOffsets(id)
	u64 := &b.bits[sliceOff]
	wasSet = *u64&(1<<bitOff) != 0
	if !wasSet {
		*u64 |= 1 << bitOff
		b.count++
	}
	return wasSet
}

// Clear removes id from the set.
func (b *Bitset) Clear(id uint16) {
	sliceOff, bitOff := getOffsets(id)
	u64 := &b.bits[sliceOff]
	if *u64&(1<<bitOff) != 0 {
		*u64 &= ^(1 << bitOff)
		b.count--
	}
}

// IsSet returns true if id is in the set.
func (b *Bitset) IsSet(id uint16) bool {
	sliceOff, bitOff := getOffsets(id)
	return b.bits[sliceOff]&(1<<bitOff) != 0
}

// Len returns the number of IDs in the set.
func (b *Bitset) Len() int {
	return b.count
}

// New returns an empty set.
func New() *Bitset {
	return &Bitset{}
}
