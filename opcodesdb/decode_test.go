// Copyright 2023 The Firefly Authors.
//
// Use of this source code is governed by a BSD 3-clause
// license that can be found in the LICENSE file.

package opcodesdb

import (
	"encoding/json"
	"errors"
	"math"
	"math/big"
	"testing"

	"github.com/google/go-cmp/cmp"
)

// document returns a minimal valid catalogue,
// after applying modify.
func document(modify func(doc map[string]any)) map[string]any {
	doc := map[string]any{
		"arch":      "x86",
		"version":   "1.0.0",
		"enums":     []any{},
		"widths":    []any{},
		"registers": []any{},
		"records":   []any{},
		"tables":    []any{},
	}

	if modify != nil {
		modify(doc)
	}

	return doc
}

// withRecord returns a modifier that adds rec
// as the only record.
func withRecord(rec map[string]any) func(doc map[string]any) {
	return func(doc map[string]any) {
		doc["records"] = []any{rec}
	}
}

// withNodes returns a modifier that adds a
// record with one template containing nodes.
func withNodes(nodes ...any) func(doc map[string]any) {
	return withRecord(map[string]any{
		"id":      "ADD",
		"rectype": "INSTRUCTION",
		"templates": []any{
			map[string]any{
				"metadata": map[string]any{},
				"syntax": map[string]any{
					"mnem": "ADD",
					"text": "ADD r32, r32",
					"ast":  nodes,
				},
			},
		},
	})
}

func register(isFirst any) map[string]any {
	return map[string]any{
		"size":     json.Number("64"),
		"is_first": isFirst,
		"is_last":  json.Number("0"),
		"is_even":  json.Number("1"),
		"encoding": json.Number("0"),
		"datatype": "i64",
		"reg":      "GPR64",
		"kind":     "gpr",
	}
}

func TestDecode(t *testing.T) {
	tests := []struct {
		Name   string
		Modify func(doc map[string]any)
		Check  func(t *testing.T, db *Database)
	}{
		{
			Name: "enum with integer booleans",
			Modify: func(doc map[string]any) {
				doc["enums"] = []any{
					map[string]any{
						"id":        "E1",
						"items":     []any{map[string]any{"name": "A"}},
						"stringify": json.Number("1"),
						"optional":  json.Number("0"),
					},
				}
			},
			Check: func(t *testing.T, db *Database) {
				want := []*Enum{
					{
						ID:        "E1",
						Items:     []EnumItem{{Name: "A"}},
						Stringify: true,
						Optional:  ptr(false),
					},
				}

				if diff := cmp.Diff(want, db.Enums); diff != "" {
					t.Fatalf("(-want, +got)\n%s", diff)
				}
			},
		},
		{
			Name: "record metadata with string boolean",
			Modify: withRecord(map[string]any{
				"id":       "PADDQ",
				"rectype":  "INSTRUCTION",
				"metadata": map[string]any{"deprecated": "1", "isa": "SSE2"},
			}),
			Check: func(t *testing.T, db *Database) {
				want := &RecordMetadata{Deprecated: true, ISA: "SSE2"}
				if diff := cmp.Diff(want, db.Records[0].Metadata); diff != "" {
					t.Fatalf("(-want, +got)\n%s", diff)
				}
			},
		},
		{
			Name: "unknown fields",
			Modify: func(doc map[string]any) {
				doc["comment"] = "top level"
				doc["enums"] = []any{
					map[string]any{
						"id":        "E1",
						"items":     []any{map[string]any{"name": "A", "extra": []any{1, 2}}},
						"stringify": 0,
						"colour":    "blue",
					},
				}
				withNodes(map[string]any{"type": "MNEM", "value": "ADD", "unknown": map[string]any{"x": 1}})(doc)
			},
			Check: func(t *testing.T, db *Database) {
				want := &Enum{ID: "E1", Items: []EnumItem{{Name: "A"}}}
				if diff := cmp.Diff(want, db.Enums[0]); diff != "" {
					t.Fatalf("(-want, +got)\n%s", diff)
				}

				node := &Node{Type: "MNEM", Value: ptr("ADD")}
				if diff := cmp.Diff(node, db.Records[0].Templates[0].Syntax.AST[0]); diff != "" {
					t.Fatalf("(-want, +got)\n%s", diff)
				}
			},
		},
		{
			Name: "absent optional booleans",
			Modify: withNodes(
				map[string]any{"type": "REG"},
			),
			Check: func(t *testing.T, db *Database) {
				tmpl := db.Records[0].Templates[0]
				if diff := cmp.Diff(TemplateMetadata{}, tmpl.Metadata); diff != "" {
					t.Fatalf("metadata: (-want, +got)\n%s", diff)
				}

				if diff := cmp.Diff(&Node{Type: "REG"}, tmpl.Syntax.AST[0]); diff != "" {
					t.Fatalf("node: (-want, +got)\n%s", diff)
				}
			},
		},
		{
			Name: "null optional fields",
			Modify: withRecord(map[string]any{
				"id":         "NOP",
				"rectype":    "INSTRUCTION",
				"title":      nil,
				"extensions": nil,
				"metadata":   nil,
			}),
			Check: func(t *testing.T, db *Database) {
				want := &Record{ID: "NOP", Type: "INSTRUCTION"}
				if diff := cmp.Diff(want, db.Records[0]); diff != "" {
					t.Fatalf("(-want, +got)\n%s", diff)
				}
			},
		},
		{
			Name: "present but empty lists",
			Modify: withRecord(map[string]any{
				"id":         "NOP",
				"rectype":    "INSTRUCTION",
				"extensions": []any{},
			}),
			Check: func(t *testing.T, db *Database) {
				rec := db.Records[0]
				if rec.Extensions == nil || len(rec.Extensions) != 0 {
					t.Fatalf("extensions: got %#v, want empty", rec.Extensions)
				}

				if rec.Categories != nil {
					t.Fatalf("categories: got %#v, want nil", rec.Categories)
				}
			},
		},
		{
			Name: "open tags passed through",
			Modify: withRecord(map[string]any{
				"id":      "VFOO",
				"rectype": "SOMETHING_NEW",
				"templates": []any{
					map[string]any{
						"metadata": map[string]any{"xrelease": "1"},
						"syntax": map[string]any{
							"mnem": "VFOO",
							"text": "VFOO",
							"ast":  []any{map[string]any{"type": "brand-new-kind"}},
						},
					},
				},
			}),
			Check: func(t *testing.T, db *Database) {
				rec := db.Records[0]
				if rec.Type != "SOMETHING_NEW" {
					t.Fatalf("rectype: got %q", rec.Type)
				}

				if got := rec.Templates[0].Syntax.AST[0].Type; got != "brand-new-kind" {
					t.Fatalf("node type: got %q", got)
				}

				if got := rec.Templates[0].Metadata.XRelease; got == nil || !*got {
					t.Fatalf("xrelease: got %v, want true", got)
				}
			},
		},
		{
			Name: "native number types",
			Modify: func(doc map[string]any) {
				doc["registers"] = []any{
					map[string]any{
						"size":     float64(64),
						"is_first": int64(1),
						"is_last":  uint8(0),
						"is_even":  1,
						"encoding": uint64(15),
						"datatype": "i64",
						"reg":      "GPR64",
						"kind":     "gpr",
					},
				}
				doc["widths"] = []map[string]any{
					{"name": "q", "width16": int32(64), "width32": int16(64), "width64": json.Number("64.0")},
				}
			},
			Check: func(t *testing.T, db *Database) {
				wantRegs := []*Register{
					{Size: 64, IsFirst: true, IsEven: true, Encoding: 15, Datatype: "i64", Reg: "GPR64", Kind: "gpr"},
				}

				if diff := cmp.Diff(wantRegs, db.Registers); diff != "" {
					t.Fatalf("registers: (-want, +got)\n%s", diff)
				}

				wantWidths := []*Width{{Name: "q", Width16: 64, Width32: 64, Width64: 64}}
				if diff := cmp.Diff(wantWidths, db.Widths); diff != "" {
					t.Fatalf("widths: (-want, +got)\n%s", diff)
				}
			},
		},
		{
			Name: "interface-keyed maps",
			Modify: func(doc map[string]any) {
				doc["enums"] = []any{
					map[any]any{
						"id":        "E1",
						"items":     []any{},
						"stringify": 1,
					},
				}
			},
			Check: func(t *testing.T, db *Database) {
				want := []*Enum{{ID: "E1", Items: []EnumItem{}, Stringify: true}}
				if diff := cmp.Diff(want, db.Enums); diff != "" {
					t.Fatalf("(-want, +got)\n%s", diff)
				}
			},
		},
	}

	for _, test := range tests {
		t.Run(test.Name, func(t *testing.T) {
			db, err := Decode(document(test.Modify))
			if err != nil {
				t.Fatalf("Decode(): unexpected error: %v", err)
			}

			test.Check(t, db)
		})
	}
}

func TestDecodeErrors(t *testing.T) {
	tests := []struct {
		Name   string
		Modify func(doc map[string]any)
		Want   string
		Check  func(t *testing.T, err error)
	}{
		// Coercion errors.
		{
			Name: "integer boolean out of range",
			Modify: func(doc map[string]any) {
				doc["registers"] = []any{register(json.Number("1")), register(json.Number("2"))}
			},
			Want: "registers[1].is_first: invalid value 2: want 0 or 1",
			Check: func(t *testing.T, err error) {
				var coerceErr *CoercionError
				if !errors.As(err, &coerceErr) {
					t.Fatalf("got error %T, want *CoercionError", err)
				}

				if coerceErr.Path != "registers[1].is_first" {
					t.Fatalf("got path %q", coerceErr.Path)
				}

				if coerceErr.Value != int64(2) {
					t.Fatalf("got value %#v, want 2", coerceErr.Value)
				}
			},
		},
		{
			Name: "optional integer boolean out of range",
			Modify: withNodes(
				map[string]any{"type": "MNEM"},
				map[string]any{"type": "REG", "read": 1, "write": -1},
			),
			Want: "records[0].templates[0].syntax.ast[1].write: invalid value -1: want 0 or 1",
		},
		{
			Name: "string boolean out of range",
			Modify: withRecord(map[string]any{
				"id":       "NOP",
				"rectype":  "INSTRUCTION",
				"metadata": map[string]any{"deprecated": "yes", "isa": "I86"},
			}),
			Want: `records[0].metadata.deprecated: invalid value "yes": want "0" or "1"`,
			Check: func(t *testing.T, err error) {
				var coerceErr *CoercionError
				if !errors.As(err, &coerceErr) {
					t.Fatalf("got error %T, want *CoercionError", err)
				}

				if coerceErr.Value != "yes" {
					t.Fatalf("got value %#v, want \"yes\"", coerceErr.Value)
				}
			},
		},
		{
			Name: "optional string boolean out of range",
			Modify: withRecord(map[string]any{
				"id":      "LOCKED",
				"rectype": "INSTRUCTION",
				"templates": []any{
					map[string]any{
						"metadata": map[string]any{"lock": "2"},
						"syntax":   map[string]any{"mnem": "X", "text": "X", "ast": []any{}},
					},
				},
			}),
			Want: `records[0].templates[0].metadata.lock: invalid value "2": want "0" or "1"`,
		},
		{
			Name: "width exceeds 32 bits",
			Modify: func(doc map[string]any) {
				doc["widths"] = []any{
					map[string]any{"name": "huge", "width16": 1, "width32": 1, "width64": json.Number("4294967296")},
				}
			},
			Want: "widths[0].width64: invalid value 4294967296: want 0 to 4294967295",
		},
		{
			Name: "negative size",
			Modify: withNodes(
				map[string]any{"type": "IMM", "size": -8},
			),
			Want: "records[0].templates[0].syntax.ast[0].size: invalid value -8: want 0 to 4294967295",
		},
		{
			Name: "integer boolean beyond int64",
			Modify: func(doc map[string]any) {
				doc["registers"] = []any{register(json.Number("9223372036854775808"))}
			},
			Want: "registers[0].is_first: invalid value 9223372036854775808: want 0 or 1",
			Check: func(t *testing.T, err error) {
				var coerceErr *CoercionError
				if !errors.As(err, &coerceErr) {
					t.Fatalf("got error %T, want *CoercionError", err)
				}

				n, ok := coerceErr.Value.(*big.Int)
				if !ok || n.String() != "9223372036854775808" {
					t.Fatalf("got value %#v, want 9223372036854775808", coerceErr.Value)
				}
			},
		},
		{
			Name: "unsigned integer boolean beyond int64",
			Modify: func(doc map[string]any) {
				doc["registers"] = []any{register(uint64(1) << 63)}
			},
			Want: "registers[0].is_first: invalid value 9223372036854775808: want 0 or 1",
			Check: func(t *testing.T, err error) {
				var coerceErr *CoercionError
				if !errors.As(err, &coerceErr) {
					t.Fatalf("got error %T, want *CoercionError", err)
				}
			},
		},
		{
			Name: "exponent integer boolean beyond int64",
			Modify: withNodes(
				map[string]any{"type": "REG", "suppressed": json.Number("1e19")},
			),
			Want: "records[0].templates[0].syntax.ast[0].suppressed: invalid value 10000000000000000000: want 0 or 1",
		},
		{
			Name: "width beyond int64",
			Modify: func(doc map[string]any) {
				doc["widths"] = []any{
					map[string]any{"name": "huge", "width16": 1, "width32": 1, "width64": json.Number("18446744073709551616")},
				}
			},
			Want: "widths[0].width64: invalid value 18446744073709551616: want 0 to 4294967295",
		},
		{
			Name: "unsigned size beyond int64",
			Modify: withNodes(
				map[string]any{"type": "IMM", "size": uint64(math.MaxUint64)},
			),
			Want: "records[0].templates[0].syntax.ast[0].size: invalid value 18446744073709551615: want 0 to 4294967295",
		},
		// Missing fields.
		{
			Name:   "missing arch",
			Modify: func(doc map[string]any) { delete(doc, "arch") },
			Want:   "arch: missing required field",
		},
		{
			Name: "missing node type",
			Modify: withNodes(
				map[string]any{"type": "MNEM"},
				map[string]any{"value": "EAX"},
			),
			Want: "records[0].templates[0].syntax.ast[1].type: missing required field",
			Check: func(t *testing.T, err error) {
				var missingErr *MissingFieldError
				if !errors.As(err, &missingErr) {
					t.Fatalf("got error %T, want *MissingFieldError", err)
				}
			},
		},
		{
			Name: "missing required boolean",
			Modify: func(doc map[string]any) {
				doc["enums"] = []any{
					map[string]any{"id": "E1", "items": []any{}},
				}
			},
			Want: "enums[0].stringify: missing required field",
		},
		{
			Name: "missing template syntax",
			Modify: withRecord(map[string]any{
				"id":        "NOP",
				"rectype":   "INSTRUCTION",
				"templates": []any{map[string]any{"metadata": map[string]any{}}},
			}),
			Want: "records[0].templates[0].syntax: missing required field",
		},
		{
			Name: "missing flag",
			Modify: withRecord(map[string]any{
				"id":      "ADD",
				"rectype": "INSTRUCTION",
				"iflags":  map[string]any{"af": "M", "of": "M", "cf": "M", "sf": "M", "zf": "M"},
			}),
			Want: "records[0].iflags.pf: missing required field",
		},
		{
			Name: "null required field",
			Modify: func(doc map[string]any) {
				doc["version"] = nil
			},
			Want: "version: found null value, want string",
		},
		// Type mismatches.
		{
			Name: "list for scalar",
			Modify: func(doc map[string]any) {
				doc["arch"] = []any{"x86"}
			},
			Want: "arch: found list value, want string",
			Check: func(t *testing.T, err error) {
				var typeErr *TypeMismatchError
				if !errors.As(err, &typeErr) {
					t.Fatalf("got error %T, want *TypeMismatchError", err)
				}

				if typeErr.Want != ShapeString || typeErr.Got != ShapeList {
					t.Fatalf("got %+v", typeErr)
				}
			},
		},
		{
			Name: "string for integer boolean",
			Modify: func(doc map[string]any) {
				doc["registers"] = []any{register("1")}
			},
			Want: "registers[0].is_first: found string value, want integer",
		},
		{
			Name: "integer for string boolean",
			Modify: withRecord(map[string]any{
				"id":       "NOP",
				"rectype":  "INSTRUCTION",
				"metadata": map[string]any{"deprecated": 1, "isa": "I86"},
			}),
			Want: "records[0].metadata.deprecated: found integer value, want string",
		},
		{
			Name: "native boolean for integer boolean",
			Modify: func(doc map[string]any) {
				doc["registers"] = []any{register(true)}
			},
			Want: "registers[0].is_first: found bool value, want integer",
		},
		{
			Name: "fractional width",
			Modify: func(doc map[string]any) {
				doc["widths"] = []any{
					map[string]any{"name": "b", "width16": 8.5, "width32": 8, "width64": 8},
				}
			},
			Want: "widths[0].width16: found number value, want integer",
		},
		{
			Name: "object for list",
			Modify: func(doc map[string]any) {
				doc["records"] = map[string]any{"id": "NOP"}
			},
			Want: "records: found object value, want list",
		},
		{
			Name: "scalar for object",
			Modify: func(doc map[string]any) {
				doc["enums"] = []any{"CC"}
			},
			Want: "enums[0]: found string value, want object",
		},
		{
			Name: "scalar for table",
			Modify: func(doc map[string]any) {
				doc["tables"] = []any{map[string]any{}, 7}
			},
			Want: "tables[1]: found integer value, want object",
		},
		{
			Name: "integer object key",
			Modify: func(doc map[string]any) {
				doc["enums"] = []any{
					map[any]any{"id": "E1", "items": []any{}, "stringify": 1, 7: "x"},
				}
			},
			Want: "enums[0]: found integer key 7, want string",
			Check: func(t *testing.T, err error) {
				var keyErr *KeyError
				if !errors.As(err, &keyErr) {
					t.Fatalf("got error %T, want *KeyError", err)
				}

				if keyErr.Key != 7 {
					t.Fatalf("got key %#v, want 7", keyErr.Key)
				}
			},
		},
		{
			Name: "string for optional list",
			Modify: withRecord(map[string]any{
				"id":         "NOP",
				"rectype":    "INSTRUCTION",
				"categories": "ARITHMETIC",
			}),
			Want: "records[0].categories: found string value, want list",
		},
	}

	for _, test := range tests {
		t.Run(test.Name, func(t *testing.T) {
			got, err := Decode(document(test.Modify))
			if err == nil {
				t.Fatalf("Decode(): wanted error %q, got:\n%#v", test.Want, got)
			}

			if got != nil {
				t.Fatalf("Decode(): returned partial database with error")
			}

			if e := err.Error(); e != test.Want {
				t.Fatalf("Decode():\nGot:  %s\nWant: %s", e, test.Want)
			}

			if test.Check != nil {
				test.Check(t, err)
			}
		})
	}
}
