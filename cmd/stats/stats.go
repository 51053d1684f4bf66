// Copyright 2023 The Firefly Authors.
//
// Use of this source code is governed by a BSD 3-clause
// license that can be found in the LICENSE file.

// Package stats summarises the contents of an opcodesDB
// catalogue.
package stats

import (
	"context"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"text/tabwriter"

	"golang.org/x/exp/maps"
	"golang.org/x/exp/slices"

	"github.com/TheNewJavaman/asm-matcher/internal/load"
	"github.com/TheNewJavaman/asm-matcher/opcodesdb"
)

var program = filepath.Base(os.Args[0])

// Summary counts the kinds of entry in a
// catalogue.
type Summary struct {
	Enums      int
	Widths     int
	Registers  int
	Records    int
	Templates  int
	Deprecated int

	RecordTypes map[opcodesdb.RecordType]int
	NodeTypes   map[opcodesdb.NodeType]int
	ISAs        map[string]int
}

// Summarise counts the entries in db.
func Summarise(db *opcodesdb.Database) (*Summary, error) {
	s := &Summary{
		Enums:       len(db.Enums),
		Widths:      len(db.Widths),
		Registers:   len(db.Registers),
		Records:     len(db.Records),
		RecordTypes: make(map[opcodesdb.RecordType]int),
		NodeTypes:   make(map[opcodesdb.NodeType]int),
		ISAs:        make(map[string]int),
	}

	// Record types are counted through a
	// dispatcher so that every tag, known
	// or not, lands in the fallback.
	var records opcodesdb.RecordDispatcher
	records.Fallback = func(tag opcodesdb.RecordType, rec *opcodesdb.Record) error {
		s.RecordTypes[tag]++
		if rec.Deprecated() {
			s.Deprecated++
		}
		if rec.Metadata != nil {
			s.ISAs[rec.Metadata.ISA]++
		}

		s.Templates += len(rec.Templates)
		return nil
	}

	var nodes opcodesdb.NodeDispatcher
	nodes.Fallback = func(tag opcodesdb.NodeType, node *opcodesdb.Node) error {
		s.NodeTypes[tag]++
		return nil
	}

	err := db.DispatchRecords(&records)
	if err != nil {
		return nil, err
	}

	for _, rec := range db.Records {
		for _, tmpl := range rec.Templates {
			err = tmpl.Syntax.DispatchNodes(&nodes)
			if err != nil {
				return nil, fmt.Errorf("%s: %w", rec.ID, err)
			}
		}
	}

	return s, nil
}

// Print writes the summary as a table.
func (s *Summary) Print(w io.Writer) error {
	tw := tabwriter.NewWriter(w, 0, 8, 2, ' ', 0)
	fmt.Fprintf(tw, "enums\t%d\n", s.Enums)
	fmt.Fprintf(tw, "widths\t%d\n", s.Widths)
	fmt.Fprintf(tw, "registers\t%d\n", s.Registers)
	fmt.Fprintf(tw, "records\t%d\n", s.Records)
	fmt.Fprintf(tw, "templates\t%d\n", s.Templates)
	fmt.Fprintf(tw, "deprecated\t%d\n", s.Deprecated)

	printCounts(tw, "record type", s.RecordTypes)
	printCounts(tw, "isa", s.ISAs)
	printCounts(tw, "operand type", s.NodeTypes)

	return tw.Flush()
}

func printCounts[K ~string](w io.Writer, label string, counts map[K]int) {
	keys := maps.Keys(counts)
	slices.Sort(keys)
	for _, key := range keys {
		fmt.Fprintf(w, "%s %s\t%d\n", label, key, counts[key])
	}
}

// Main prints a summary of the catalogue
// named in args.
func Main(ctx context.Context, w io.Writer, args []string) error {
	flags := flag.NewFlagSet("stats", flag.ExitOnError)

	var help bool
	flags.BoolVar(&help, "h", false, "Show this message and exit.")

	flags.Usage = func() {
		log.Printf("Usage:\n  %s %s [OPTIONS] FILE\n\n", program, flags.Name())
		flags.PrintDefaults()
		os.Exit(2)
	}

	err := flags.Parse(args)
	if err != nil || help || flags.NArg() != 1 {
		flags.Usage()
	}

	db, err := load.File(opcodesdb.Loader{}, flags.Arg(0))
	if err != nil {
		return err
	}

	summary, err := Summarise(db)
	if err != nil {
		return err
	}

	return summary.Print(w)
}
