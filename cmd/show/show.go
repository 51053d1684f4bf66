// Copyright 2023 The Firefly Authors.
//
// Use of this source code is governed by a BSD 3-clause
// license that can be found in the LICENSE file.

// Package show prints entries from an opcodesDB catalogue.
package show

import (
	"bytes"
	"context"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"strings"

	"github.com/TheNewJavaman/asm-matcher/internal/load"
	"github.com/TheNewJavaman/asm-matcher/opcodesdb"
)

var program = filepath.Base(os.Args[0])

// Main prints the enumerations, records, and
// register classes matching each id.
func Main(ctx context.Context, w io.Writer, args []string) error {
	flags := flag.NewFlagSet("show", flag.ExitOnError)

	var help bool
	flags.BoolVar(&help, "h", false, "Show this message and exit.")

	flags.Usage = func() {
		log.Printf("Usage:\n  %s %s [OPTIONS] FILE ID...\n\n", program, flags.Name())
		flags.PrintDefaults()
		os.Exit(2)
	}

	err := flags.Parse(args)
	if err != nil || help {
		flags.Usage()
	}

	args = flags.Args()
	if len(args) < 2 {
		flags.Usage()
	}

	db, err := load.File(opcodesdb.Loader{}, args[0])
	if err != nil {
		return err
	}

	var buf bytes.Buffer
	for i, id := range args[1:] {
		if i > 0 {
			// Add a spacer.
			fmt.Fprintln(&buf)
		}

		found := false
		if enum := db.Enum(id); enum != nil {
			found = true
			printEnum(&buf, enum)
		}

		if rec := db.Record(id); rec != nil {
			found = true
			printRecord(&buf, rec)
		}

		if regs := db.RegisterClass(id); len(regs) > 0 {
			found = true
			printRegisters(&buf, id, regs)
		}

		if !found {
			fmt.Fprintf(&buf, "%s: no catalogue entry found\n", id)
		}
	}

	_, err = w.Write(buf.Bytes())
	return err
}

func printEnum(buf *bytes.Buffer, enum *opcodesdb.Enum) {
	names := make([]string, len(enum.Items))
	for i, item := range enum.Items {
		names[i] = fmt.Sprintf("%q", item.Name)
	}

	fmt.Fprintf(buf, "%s: &Enum{\n", enum.ID)
	fmt.Fprintf(buf, "	Items:     [%s],\n", strings.Join(names, ", "))
	fmt.Fprintf(buf, "	Stringify: %v,\n", enum.Stringify)
	if enum.Optional != nil {
		fmt.Fprintf(buf, "	Optional:  %v,\n", *enum.Optional)
	}
	fmt.Fprintf(buf, "}\n")
}

func printRecord(buf *bytes.Buffer, rec *opcodesdb.Record) {
	fmt.Fprintf(buf, "%s: &Record{\n", rec.ID)
	fmt.Fprintf(buf, "	Type: %q,\n", rec.Type)
	if rec.Title != nil {
		fmt.Fprintf(buf, "	Title: %q,\n", *rec.Title)
	}
	if len(rec.Extensions) > 0 {
		fmt.Fprintf(buf, "	Extensions: %q,\n", rec.Extensions)
	}
	if rec.Metadata != nil {
		fmt.Fprintf(buf, "	ISA: %q,\n", rec.Metadata.ISA)
		if rec.Metadata.Deprecated {
			fmt.Fprintf(buf, "	Deprecated: true,\n")
		}
	}
	if len(rec.Categories) > 0 {
		fmt.Fprintf(buf, "	Categories: %q,\n", rec.Categories)
	}
	if rec.Tags != nil {
		fmt.Fprintf(buf, "	Page: %q,\n", rec.Tags.Page)
	}
	if rec.Diagram != nil {
		fmt.Fprintf(buf, "	Diagram: %s,\n", formatFields(rec.Diagram.Fields))
	}
	if f := rec.Flags; f != nil {
		fmt.Fprintf(buf, "	Flags: {AF: %q, OF: %q, CF: %q, SF: %q, ZF: %q, PF: %q},\n", f.AF, f.OF, f.CF, f.SF, f.ZF, f.PF)
	}
	if len(rec.Templates) > 0 {
		fmt.Fprintf(buf, "	Templates: [\n")
		for _, tmpl := range rec.Templates {
			printTemplate(buf, tmpl)
		}
		fmt.Fprintf(buf, "	],\n")
	}
	fmt.Fprintf(buf, "}\n")
}

func printTemplate(buf *bytes.Buffer, tmpl *opcodesdb.Template) {
	fmt.Fprintf(buf, "		{\n")
	fmt.Fprintf(buf, "			Mnemonic: %q,\n", tmpl.Syntax.Mnemonic)
	fmt.Fprintf(buf, "			Text:     %q,\n", tmpl.Syntax.Text)
	prefixes := []struct {
		Name string
		Val  *bool
	}{
		{"XAcquire", tmpl.Metadata.XAcquire},
		{"Lock", tmpl.Metadata.Lock},
		{"XRelease", tmpl.Metadata.XRelease},
	}
	for _, prefix := range prefixes {
		if prefix.Val != nil {
			fmt.Fprintf(buf, "			%s: %v,\n", prefix.Name, *prefix.Val)
		}
	}
	if tmpl.BitDiffs != nil {
		fmt.Fprintf(buf, "			BitDiffs: %s,\n", formatFields(tmpl.BitDiffs.Fields))
	}
	if len(tmpl.Syntax.AST) > 0 {
		fmt.Fprintf(buf, "			AST: [\n")
		for _, node := range tmpl.Syntax.AST {
			fmt.Fprintf(buf, "				%s,\n", formatNode(node))
		}
		fmt.Fprintf(buf, "			],\n")
	}
	fmt.Fprintf(buf, "		},\n")
}

func formatFields(fields []opcodesdb.BitField) string {
	parts := make([]string, len(fields))
	for i, field := range fields {
		parts[i] = fmt.Sprintf("%s=%q", field.Name, field.Value)
	}

	return "[" + strings.Join(parts, " ") + "]"
}

func formatNode(node *opcodesdb.Node) string {
	parts := []string{fmt.Sprintf("Type: %q", node.Type)}
	str := func(name string, v *string) {
		if v != nil {
			parts = append(parts, fmt.Sprintf("%s: %q", name, *v))
		}
	}
	boolean := func(name string, v *bool) {
		if v != nil {
			parts = append(parts, fmt.Sprintf("%s: %v", name, *v))
		}
	}

	str("Value", node.Value)
	boolean("Suppressed", node.Suppressed)
	boolean("Read", node.Read)
	boolean("Write", node.Write)
	if node.Size != nil {
		parts = append(parts, fmt.Sprintf("Size: %d", *node.Size))
	}
	str("Datatype", node.Datatype)
	str("EncodedIn", node.EncodedIn)
	str("Symbol", node.Symbol)

	return "{" + strings.Join(parts, ", ") + "}"
}

func printRegisters(buf *bytes.Buffer, class string, regs []*opcodesdb.Register) {
	fmt.Fprintf(buf, "%s: []*Register{\n", class)
	for _, reg := range regs {
		fmt.Fprintf(buf, "	{Encoding: %d, Size: %d, Datatype: %q, Kind: %q", reg.Encoding, reg.Size, reg.Datatype, reg.Kind)
		if reg.IsFirst {
			fmt.Fprintf(buf, ", First")
		}
		if reg.IsLast {
			fmt.Fprintf(buf, ", Last")
		}
		if reg.IsEven {
			fmt.Fprintf(buf, ", Even")
		}
		fmt.Fprintf(buf, "},\n")
	}
	fmt.Fprintf(buf, "}\n")
}
