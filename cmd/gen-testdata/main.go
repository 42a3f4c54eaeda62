// Copyright 2026 The pak Authors. All rights reserved.
// Use of this source code is governed by the MIT License
// that can be found in the LICENSE file.

// gen-testdata writes a directory of synthetic resource files, suitable
// for packing with `pak <dir>`.  A fraction of the resources share
// contents so that packing exercises the alias table.
package main

import (
	crand "crypto/rand"
	"encoding/binary"
	"fmt"
	"math/rand"
	"os"
	"path/filepath"
	"strconv"

	"github.com/spf13/pflag"
)

const (
	maxResourceLen = 4096
	readmeContents = "Files named by decimal resource ID. Anything else is ignored when packing.\n"
)

func newRand(seed int64) *rand.Rand {
	if seed == 0 {
		var seedBytes [8]byte
		_, _ = crand.Read(seedBytes[:])
		seed = int64(binary.LittleEndian.Uint64(seedBytes[:]))
	}
	return rand.New(rand.NewSource(seed))
}

func main() {
	var (
		count     int
		dupRatio  float64
		seed      int64
		outputDir string
	)
	pflag.IntVarP(&count, "count", "n", 1000, "number of resources to generate (at most 65535)")
	pflag.Float64Var(&dupRatio, "dup-ratio", 0.1, "fraction of resources that copy an earlier resource's contents")
	pflag.Int64Var(&seed, "seed", 0, "random seed (0 picks one)")
	pflag.StringVarP(&outputDir, "output", "o", "testdata", "directory to create")
	pflag.Parse()

	if err := generate(outputDir, count, dupRatio, newRand(seed)); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func generate(dir string, count int, dupRatio float64, rng *rand.Rand) error {
	if count < 0 || count > 1<<16-1 {
		return fmt.Errorf("count %d out of range [0, 65535]", count)
	}
	if err := os.MkdirAll(dir, 0755); err != nil {
		return err
	}

	// distinct IDs in [1, 65535]
	ids := rng.Perm(1<<16 - 1)[:count]
	var written [][]byte
	for _, i := range ids {
		var contents []byte
		if len(written) > 0 && rng.Float64() < dupRatio {
			contents = written[rng.Intn(len(written))]
		} else {
			contents = make([]byte, rng.Intn(maxResourceLen))
			_, _ = rng.Read(contents)
			written = append(written, contents)
		}
		name := strconv.Itoa(i + 1)
		if err := os.WriteFile(filepath.Join(dir, name), contents, 0644); err != nil {
			return err
		}
	}

	return os.WriteFile(filepath.Join(dir, "README"), []byte(readmeContents), 0644)
}
