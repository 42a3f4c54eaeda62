// Copyright 2026 The pak Authors. All rights reserved.
// Use of this source code is governed by the MIT License
// that can be found in the LICENSE file.

// pak unpacks a Chromium data pack into a directory of resource files,
// or packs such a directory back into a data pack.
//
//	pak resources.pak        # unpack into ./resources/
//	pak resources            # pack ./resources/ into ./resources.pak
//	pak --stats resources.pak
//	pak --lookup IDR_FOO --header grit/resources.h
package main

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/spf13/pflag"

	"github.com/bpowers/pak"
)

const defaultArchive = "resources.pak"

func main() {
	if err := run(os.Args[1:], os.Stdout, os.Stderr); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func run(args []string, stdout, stderr io.Writer) error {
	var (
		output  string
		stats   bool
		verify  bool
		lookup  string
		header  string
		verbose bool
	)

	flagSet := pflag.NewFlagSet("pak", pflag.ContinueOnError)
	flagSet.SetOutput(stderr)
	flagSet.StringVarP(&output, "output", "o", "", "archive to write when packing (default "+defaultArchive+"), or directory to unpack into (default: archive path without .pak)")
	flagSet.BoolVar(&stats, "stats", false, "print the header and size breakdown of an archive instead of unpacking it")
	flagSet.BoolVar(&verify, "verify", false, "after packing, re-read the archive and check it against the directory")
	flagSet.StringVar(&lookup, "lookup", "", "print the resource ID defined for this name in --header")
	flagSet.StringVar(&header, "header", "", "grit-generated C header used by --lookup")
	flagSet.BoolVarP(&verbose, "verbose", "v", false, "enable debug logging")
	flagSet.Usage = func() {
		fmt.Fprintf(stderr, "usage: pak [flags] <file_or_directory>\n\n")
		fmt.Fprintf(stderr, "A file argument is unpacked into a directory; a directory argument is packed into a file.\n\n")
		flagSet.PrintDefaults()
	}

	if err := flagSet.Parse(args); err != nil {
		if errors.Is(err, pflag.ErrHelp) {
			return nil
		}
		return err
	}

	level := slog.LevelInfo
	if verbose {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(stderr, &slog.HandlerOptions{Level: level}))
	opts := []pak.Option{pak.WithLogger(logger)}

	if lookup != "" {
		if header == "" {
			return errors.New("--lookup requires --header")
		}
		id, found, err := pak.FindIDForName(lookup, header)
		if err != nil {
			return err
		}
		if !found {
			return fmt.Errorf("%s is not defined in %s", lookup, header)
		}
		fmt.Fprintln(stdout, id)
		return nil
	}

	if flagSet.NArg() != 1 {
		flagSet.Usage()
		return errors.New("expected exactly one file or directory argument")
	}
	path := flagSet.Arg(0)

	fi, err := os.Stat(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return fmt.Errorf("%w: %s", pak.ErrNotFound, path)
		}
		return err
	}

	switch {
	case stats:
		if fi.IsDir() {
			return fmt.Errorf("--stats needs an archive, %s is a directory", path)
		}
		return printStats(stdout, path)
	case fi.IsDir():
		if output == "" {
			output = defaultArchive
		}
		if err := pak.PackFromDirectory(path, output, opts...); err != nil {
			return err
		}
		if verify {
			return verifyPacked(path, output, opts)
		}
		return nil
	default:
		if output == "" {
			output = unpackDir(path)
		}
		return pak.UnpackToDirectory(path, output, opts...)
	}
}

func unpackDir(archivePath string) string {
	if dir := strings.TrimSuffix(archivePath, ".pak"); dir != archivePath && dir != "" {
		return dir
	}
	return archivePath + ".d"
}

func printStats(w io.Writer, path string) error {
	f, err := pak.Open(path)
	if err != nil {
		return err
	}
	defer func() {
		_ = f.Close()
	}()

	fmt.Fprintf(w, "version:     %d\n", f.Version)
	fmt.Fprintf(w, "encoding:    %s\n", f.Encoding)
	fmt.Fprintf(w, "resources:   %d\n", len(f.Resources)-len(f.Aliases))
	fmt.Fprintf(w, "aliases:     %d\n", len(f.Aliases))
	fmt.Fprintf(w, "header:      %d\n", f.Sizes.Header)
	fmt.Fprintf(w, "id_table:    %d\n", f.Sizes.IDTable)
	fmt.Fprintf(w, "alias_table: %d\n", f.Sizes.AliasTable)
	fmt.Fprintf(w, "data:        %d\n", f.Sizes.Data)
	fmt.Fprintf(w, "total:       %d\n", f.Sizes.Total())
	return nil
}

func verifyPacked(dir, archivePath string, opts []pak.Option) error {
	expected, err := pak.ReadDirectory(dir, opts...)
	if err != nil {
		return err
	}
	c, err := pak.ReadFile(archivePath)
	if err != nil {
		return err
	}
	if !pak.EqualResources(expected, c.Resources) {
		return fmt.Errorf("%s doesn't match the contents of %s", archivePath, dir)
	}
	return nil
}
