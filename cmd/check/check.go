// Copyright 2023 The Firefly Authors.
//
// Use of this source code is governed by a BSD 3-clause
// license that can be found in the LICENSE file.

// Package check validates opcodesDB catalogues.
package check

import (
	"context"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"runtime"

	"github.com/TheNewJavaman/asm-matcher/internal/load"
	"github.com/TheNewJavaman/asm-matcher/opcodesdb"
)

var program = filepath.Base(os.Args[0])

// Main loads each catalogue named in args and
// reports a one-line summary for each.
func Main(ctx context.Context, w io.Writer, args []string) error {
	flags := flag.NewFlagSet("check", flag.ExitOnError)

	var help, strict bool
	var version string
	var jobs int
	flags.BoolVar(&help, "h", false, "Show this message and exit.")
	flags.BoolVar(&strict, "strict", false, "Require ids and names to be unique.")
	flags.StringVar(&version, "version", "", "Require catalogues compatible with this semantic version (eg 1 or v1.2).")
	flags.IntVar(&jobs, "j", runtime.NumCPU(), "Maximum number of catalogues to load in parallel.")

	flags.Usage = func() {
		log.Printf("Usage:\n  %s %s [OPTIONS] FILE...\n\n", program, flags.Name())
		flags.PrintDefaults()
		os.Exit(2)
	}

	err := flags.Parse(args)
	if err != nil || help {
		flags.Usage()
	}

	names := flags.Args()
	if len(names) == 0 {
		flags.Usage()
	}

	l := opcodesdb.Loader{Strict: strict, Version: version}
	dbs, err := load.Files(ctx, l, names, jobs)
	if err != nil {
		return err
	}

	for i, db := range dbs {
		fmt.Fprintf(w, "%s: arch %s, version %s, %d records\n", names[i], db.Arch, db.Version, len(db.Records))
	}

	return nil
}
