// Copyright 2023 The Firefly Authors.
//
// Use of this source code is governed by a BSD 3-clause
// license that can be found in the LICENSE file.

// Command asm-matcher inspects opcodesDB instruction-set
// catalogues.
package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"text/tabwriter"

	"golang.org/x/exp/slices"

	"github.com/TheNewJavaman/asm-matcher/cmd/check"
	"github.com/TheNewJavaman/asm-matcher/cmd/show"
	"github.com/TheNewJavaman/asm-matcher/cmd/stats"
)

var program = filepath.Base(os.Args[0])

// subcommand is one of the program's verbs.
type subcommand struct {
	name    string
	summary string
	run     func(ctx context.Context, w io.Writer, args []string) error
}

// subcommands is kept sorted by name.
var subcommands = []subcommand{
	{"check", "Validate one or more opcodesDB catalogues", check.Main},
	{"show", "Print enumerations, records, or register classes from a catalogue", show.Main},
	{"stats", "Summarise the record and operand kinds in a catalogue", stats.Main},
}

// lookup returns the subcommand with the given
// name.
func lookup(name string) (subcommand, bool) {
	i := slices.IndexFunc(subcommands, func(c subcommand) bool { return c.name == name })
	if i < 0 {
		return subcommand{}, false
	}

	return subcommands[i], true
}

// usage writes the program's help text to w.
func usage(w io.Writer) {
	fmt.Fprintf(w, "Usage\n  %s COMMAND [OPTIONS]\n\nCommands:\n", program)
	tw := tabwriter.NewWriter(w, 0, 8, 2, ' ', 0)
	for _, c := range subcommands {
		fmt.Fprintf(tw, "  %s\t%s\n", c.name, c.summary)
	}

	tw.Flush()
}

func main() {
	log.SetFlags(0)
	log.SetOutput(os.Stderr)

	var help bool
	flag.BoolVar(&help, "h", false, "Show this message and exit.")
	flag.Usage = func() {
		usage(os.Stderr)
		os.Exit(2)
	}

	flag.Parse()
	if help || flag.NArg() == 0 {
		flag.Usage()
	}

	c, ok := lookup(flag.Arg(0))
	if !ok {
		log.Printf("unknown command %q", flag.Arg(0))
		flag.Usage()
	}

	log.SetPrefix(c.name + ": ")
	err := c.run(context.Background(), os.Stdout, flag.Args()[1:])
	if err != nil {
		log.Fatal(err)
	}
}
