// Copyright 2026 The pak Authors. All rights reserved.
// Use of this source code is governed by the MIT License
// that can be found in the LICENSE file.

package format

import (
	"encoding/binary"
	"fmt"
	"io"
)

const (
	Version4 = 4
	Version5 = 5

	headerLenV4 = 4 + 4 + 1         // version, resource count, encoding
	headerLenV5 = 4 + 1 + 3 + 2 + 2 // version, encoding, padding, resource count, alias count

	versionLen = 4
)

type fileHeader struct {
	version       uint32
	encoding      uint8
	resourceCount uint32
	aliasCount    uint16
}

func newFileHeader(encoding uint8, resourceCount, aliasCount int) *fileHeader {
	return &fileHeader{
		version:       Version5,
		encoding:      encoding,
		resourceCount: uint32(resourceCount),
		aliasCount:    uint16(aliasCount),
	}
}

// Len is the number of bytes the header occupies on disk.
func (h *fileHeader) Len() int {
	if h.version == Version4 {
		return headerLenV4
	}
	return headerLenV5
}

func (h *fileHeader) MarshalTo(buf []byte) error {
	if len(buf) < h.Len() {
		return fmt.Errorf("buf too short: %d < %d", len(buf), h.Len())
	}

	switch h.version {
	case Version4:
		if h.aliasCount != 0 {
			return fmt.Errorf("v4 headers can't carry aliases (have %d)", h.aliasCount)
		}
		binary.LittleEndian.PutUint32(buf[:4], h.version)
		binary.LittleEndian.PutUint32(buf[4:8], h.resourceCount)
		buf[8] = h.encoding
	case Version5:
		if h.resourceCount > maxResourceCount {
			return fmt.Errorf("v5 resource count %d overflows uint16", h.resourceCount)
		}
		binary.LittleEndian.PutUint32(buf[:4], h.version)
		buf[4] = h.encoding
		buf[5], buf[6], buf[7] = 0, 0, 0
		binary.LittleEndian.PutUint16(buf[8:10], uint16(h.resourceCount))
		binary.LittleEndian.PutUint16(buf[10:12], h.aliasCount)
	default:
		return &VersionError{Version: h.version}
	}

	return nil
}

func (h *fileHeader) WriteTo(w io.Writer) (n int64, err error) {
	var headerBuf [headerLenV5]byte
	if err := h.MarshalTo(headerBuf[:]); err != nil {
		return 0, err
	}
	written, err := w.Write(headerBuf[:h.Len()])
	if err != nil {
		return int64(written), fmt.Errorf("write: %w", err)
	}
	return int64(written), nil
}

func (h *fileHeader) UnmarshalBytes(headerBytes []byte) error {
	if len(headerBytes) < versionLen {
		return structuralf("header too short: %d < %d", len(headerBytes), versionLen)
	}

	h.version = binary.LittleEndian.Uint32(headerBytes[:4])
	switch h.version {
	case Version4:
		if len(headerBytes) < headerLenV4 {
			return structuralf("v4 header too short: %d < %d", len(headerBytes), headerLenV4)
		}
		h.resourceCount = binary.LittleEndian.Uint32(headerBytes[4:8])
		h.encoding = headerBytes[8]
		h.aliasCount = 0
	case Version5:
		if len(headerBytes) < headerLenV5 {
			return structuralf("v5 header too short: %d < %d", len(headerBytes), headerLenV5)
		}
		h.encoding = headerBytes[4]
		h.resourceCount = uint32(binary.LittleEndian.Uint16(headerBytes[8:10]))
		h.aliasCount = binary.LittleEndian.Uint16(headerBytes[10:12])
	default:
		return &VersionError{Version: h.version}
	}

	return nil
}
