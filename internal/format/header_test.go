// Copyright 2026 The pak Authors. All rights reserved.
// Use of this source code is governed by the MIT License
// that can be found in the LICENSE file.

package format

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFileHeader_RoundTrip(t *testing.T) {
	origH := newFileHeader(1, 300, 7)
	require.Equal(t, uint32(Version5), origH.version)
	require.Equal(t, headerLenV5, origH.Len())

	// this should be an error
	err := origH.MarshalTo(nil)
	assert.Error(t, err)

	headerBytes := make([]byte, headerLenV5)
	err = origH.MarshalTo(headerBytes)
	require.NoError(t, err)
	assert.Equal(t, []byte{5, 0, 0, 0, 1, 0, 0, 0, 0x2c, 0x01, 7, 0}, headerBytes)

	var newH fileHeader
	// this should be an error
	err = newH.UnmarshalBytes(nil)
	assert.ErrorIs(t, err, ErrStructure)

	err = newH.UnmarshalBytes(headerBytes)
	require.NoError(t, err)
	assert.Equal(t, origH, &newH)

	// truncated after the version
	err = newH.UnmarshalBytes(headerBytes[:8])
	assert.ErrorIs(t, err, ErrStructure)
}

func TestFileHeader_V4(t *testing.T) {
	origH := &fileHeader{
		version:       Version4,
		encoding:      2,
		resourceCount: 70000,
	}
	require.Equal(t, headerLenV4, origH.Len())

	headerBytes := make([]byte, headerLenV4)
	require.NoError(t, origH.MarshalTo(headerBytes))
	assert.Equal(t, []byte{4, 0, 0, 0, 0x70, 0x11, 0x01, 0, 2}, headerBytes)

	var newH fileHeader
	require.NoError(t, newH.UnmarshalBytes(headerBytes))
	assert.Equal(t, origH, &newH)

	err := newH.UnmarshalBytes(headerBytes[:headerLenV4-1])
	assert.ErrorIs(t, err, ErrStructure)

	// v4 has nowhere to put an alias count
	origH.aliasCount = 1
	assert.Error(t, origH.MarshalTo(headerBytes))
}

func TestFileHeader_UnknownVersion(t *testing.T) {
	for _, version := range []uint32{0, 3, 6, 666} {
		headerBytes := make([]byte, headerLenV5)
		headerBytes[0] = byte(version)
		headerBytes[1] = byte(version >> 8)

		var h fileHeader
		err := h.UnmarshalBytes(headerBytes)
		require.ErrorIs(t, err, ErrUnsupportedVersion)
		assert.NotErrorIs(t, err, ErrStructure)

		var versionErr *VersionError
		require.True(t, errors.As(err, &versionErr))
		assert.Equal(t, version, versionErr.Version)
		assert.Contains(t, err.Error(), "wrong file version")
	}

	// writing an unknown version is also refused
	h := &fileHeader{version: 3}
	err := h.MarshalTo(make([]byte, headerLenV5))
	assert.ErrorIs(t, err, ErrUnsupportedVersion)
}

func TestFileHeader_V5CountOverflow(t *testing.T) {
	h := &fileHeader{version: Version5, resourceCount: maxResourceCount + 1}
	assert.Error(t, h.MarshalTo(make([]byte, headerLenV5)))
}
