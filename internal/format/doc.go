// Copyright 2026 The pak Authors. All rights reserved.
// Use of this source code is governed by the MIT License
// that can be found in the LICENSE file.

// Package format reads and writes data packs: the resource archive
// format used by Chromium to map small integer resource IDs to
// opaque blobs.
//
// A version 5 data pack looks like:
//
//	┌───────────────────┐
//	│ file header       │ 12 bytes
//	├───────────────────┤
//	│ main index        │ (resource count + 1) * 6 bytes
//	├───────────────────┤
//	│ alias table       │ alias count * 4 bytes
//	├───────────────────┤
//	│ concatenated      │
//	│ resource data     │
//	│                   │
//	└───────────────────┘
//
// The header is little-endian:
//
//	 0    1    2    3    4    5    6    7    8    9   10   11
//	+----+----+----+----+----+----+----+----+----+----+----+----+
//	| version (5)       |enc.| padding      | count   | aliases |
//	+----+----+----+----+----+----+----+----+----+----+----+----+
//
// Version 4 headers are 9 bytes (uint32 version, uint32 count, uint8
// encoding) and have no alias table.
//
// Main index entries are a uint16 resource ID followed by a uint32
// absolute offset of that resource's data.  A final sentinel entry
// (ID 0) holds the offset one past the last resource, so the length
// of entry i is entry[i+1].offset - entry[i].offset.
//
// Alias entries are a uint16 resource ID followed by a uint16 index
// into the main index.  The aliased resource shares the bytes of the
// main entry at that index.
package format
