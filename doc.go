// Copyright 2026 The pak Authors. All rights reserved.
// Use of this source code is governed by the MIT License
// that can be found in the LICENSE file.

// Package pak reads and writes Chromium data packs (.pak files), which
// map 16-bit resource IDs to opaque blobs.
//
// Writing deduplicates resources by content: when several IDs have
// identical bytes, the data is stored once under the lowest ID and the
// rest are recorded as aliases.  Reading resolves aliases so that every
// ID is present in the resulting map, with aliased IDs sharing their
// canonical resource's slice.
//
// The directory helpers convert between an archive and a directory
// holding one file per resource, named by its decimal ID:
//
//	if err := pak.UnpackToDirectory("resources.pak", "resources"); err != nil {
//		return err
//	}
//	// ... edit files under resources/ ...
//	if err := pak.PackFromDirectory("resources", "new_resources.pak"); err != nil {
//		return err
//	}
package pak
