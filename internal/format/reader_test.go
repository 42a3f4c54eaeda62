// Copyright 2026 The pak Authors. All rights reserved.
// Use of this source code is governed by the MIT License
// that can be found in the LICENSE file.

package format

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// {1: "a", 2: "bc", 3: "a"} encoded as UTF-8
var goldenV5 = []byte{
	// header: version 5, encoding 1, padding, 2 resources, 1 alias
	5, 0, 0, 0, 1, 0, 0, 0, 2, 0, 1, 0,
	// main index
	1, 0, 34, 0, 0, 0,
	2, 0, 35, 0, 0, 0,
	0, 0, 37, 0, 0, 0,
	// alias table: 3 -> main index 0
	3, 0, 0, 0,
	// data
	'a', 'b', 'c',
}

// {10: "hi", 20: "abc"} in the version 4 layout
var goldenV4 = []byte{
	// header: version 4, 2 resources, encoding 1
	4, 0, 0, 0, 2, 0, 0, 0, 1,
	// main index
	10, 0, 27, 0, 0, 0,
	20, 0, 29, 0, 0, 0,
	0, 0, 32, 0, 0, 0,
	// data
	'h', 'i', 'a', 'b', 'c',
}

func clone(b []byte) []byte {
	return append([]byte{}, b...)
}

func TestParse_V5(t *testing.T) {
	p, err := Parse(goldenV5)
	require.NoError(t, err)

	assert.Equal(t, uint32(Version5), p.Version)
	assert.Equal(t, uint8(1), p.Encoding)
	assert.Equal(t, map[uint16][]byte{
		1: []byte("a"),
		2: []byte("bc"),
		3: []byte("a"),
	}, p.Resources)
	assert.Equal(t, map[uint16]uint16{3: 1}, p.Aliases)
	assert.Equal(t, Sizes{Header: 12, IDTable: 18, AliasTable: 4, Data: 3}, p.Sizes)
	assert.Equal(t, len(goldenV5), p.Sizes.Total())

	// the alias shares storage with its canonical resource
	require.Same(t, &p.Resources[1][0], &p.Resources[3][0])
}

func TestParse_V4(t *testing.T) {
	p, err := Parse(goldenV4)
	require.NoError(t, err)

	assert.Equal(t, uint32(Version4), p.Version)
	assert.Equal(t, uint8(1), p.Encoding)
	assert.Equal(t, map[uint16][]byte{
		10: []byte("hi"),
		20: []byte("abc"),
	}, p.Resources)
	assert.Empty(t, p.Aliases)
	assert.Equal(t, Sizes{Header: 9, IDTable: 18, AliasTable: 0, Data: 5}, p.Sizes)
	assert.Equal(t, len(goldenV4), p.Sizes.Total())
}

func TestParse_ResourcesAreCapped(t *testing.T) {
	data := clone(goldenV5)
	p, err := Parse(data)
	require.NoError(t, err)

	r := p.Resources[1]
	assert.Equal(t, len(r), cap(r))
	_ = append(r, 'X')
	assert.Equal(t, []byte("bc"), p.Resources[2])
}

func TestParse_Empty(t *testing.T) {
	data := []byte{
		5, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0,
		0, 0, 18, 0, 0, 0,
	}
	p, err := Parse(data)
	require.NoError(t, err)
	assert.Empty(t, p.Resources)
	assert.Empty(t, p.Aliases)
	assert.Equal(t, Sizes{Header: 12, IDTable: 6}, p.Sizes)
}

func TestParse_TrailingData(t *testing.T) {
	data := append(clone(goldenV5), 0xff, 0xff)
	p, err := Parse(data)
	require.NoError(t, err)
	assert.Equal(t, []byte("bc"), p.Resources[2])
	assert.Equal(t, 5, p.Sizes.Data)
	assert.Equal(t, len(data), p.Sizes.Total())
}

func TestParse_UnsupportedVersion(t *testing.T) {
	data := clone(goldenV5)
	data[0] = 3
	_, err := Parse(data)
	assert.ErrorIs(t, err, ErrUnsupportedVersion)
}

func TestParse_Truncated(t *testing.T) {
	// every strict prefix that cuts into the header or tables must fail
	for n := 0; n < 34; n++ {
		_, err := Parse(goldenV5[:n])
		require.Errorf(t, err, "prefix of %d bytes", n)
		assert.ErrorIs(t, err, ErrStructure)
	}
	// cutting into the data section leaves offsets pointing past the end
	for n := 34; n < len(goldenV5); n++ {
		_, err := Parse(goldenV5[:n])
		assert.ErrorIsf(t, err, ErrStructure, "prefix of %d bytes", n)
	}
}

func TestParse_HugeV4Count(t *testing.T) {
	data := clone(goldenV4)
	data[4], data[5], data[6], data[7] = 0xff, 0xff, 0xff, 0xff
	_, err := Parse(data)
	assert.ErrorIs(t, err, ErrStructure)
}

func TestParse_Corrupt(t *testing.T) {
	for _, tc := range []struct {
		name   string
		mutate func(b []byte)
		alias  bool
	}{
		{
			name:   "alias index past main table",
			mutate: func(b []byte) { b[32] = 2 },
			alias:  true,
		},
		{
			name:   "alias index far past main table",
			mutate: func(b []byte) { b[32], b[33] = 0xff, 0xff },
			alias:  true,
		},
		{
			name:   "decreasing offsets",
			mutate: func(b []byte) { b[20] = 33 },
		},
		{
			name:   "first offset inside tables",
			mutate: func(b []byte) { b[14] = 20 },
		},
		{
			name:   "sentinel offset past end",
			mutate: func(b []byte) { b[26] = 38 },
		},
		{
			name:   "duplicate main ID",
			mutate: func(b []byte) { b[18] = 1 },
		},
		{
			name:   "reserved main ID",
			mutate: func(b []byte) { b[12] = 0 },
		},
		{
			name:   "alias duplicates main ID",
			mutate: func(b []byte) { b[30] = 2 },
		},
		{
			name:   "reserved alias ID",
			mutate: func(b []byte) { b[30] = 0 },
		},
	} {
		t.Run(tc.name, func(t *testing.T) {
			data := clone(goldenV5)
			tc.mutate(data)
			_, err := Parse(data)
			require.Error(t, err)
			assert.ErrorIs(t, err, ErrStructure)
			if tc.alias {
				assert.ErrorIs(t, err, ErrAliasTargetMissing)
			} else {
				assert.NotErrorIs(t, err, ErrAliasTargetMissing)
			}
		})
	}
}
