// Copyright 2023 The Firefly Authors.
//
// Use of this source code is governed by a BSD 3-clause
// license that can be found in the LICENSE file.

package opcodesdb

// RecordType is the open-ended kind of a Record.
// The set of values is defined by the catalogue,
// not by this package.
type RecordType string

// Record is one catalogue entry, describing
// an instruction or a group of instructions.
type Record struct {
	ID         string          `db:"id"`
	Type       RecordType      `db:"rectype"`
	Title      *string         `db:"title,optional"`
	Extensions []string        `db:"extensions,optional"`
	Metadata   *RecordMetadata `db:"metadata,optional"`
	Diagram    *Diagram        `db:"diagram,optional"`
	Categories []string        `db:"categories,optional"`
	Tags       *RecordTags     `db:"tags,optional"`
	Templates  []*Template     `db:"templates,optional"`
	Flags      *FlagEffects    `db:"iflags,optional"`
}

// Deprecated returns whether the record's
// metadata marks it as deprecated.
func (r *Record) Deprecated() bool {
	return r.Metadata != nil && r.Metadata.Deprecated
}

// RecordMetadata describes the instruction set
// extension a record belongs to.
type RecordMetadata struct {
	Deprecated bool   `db:"deprecated,string"`
	ISA        string `db:"isa"`
}

// Diagram is the bit layout of a record's
// encoding.
type Diagram struct {
	Fields []BitField `db:"fields"`
}

// BitField is one named field in a Diagram
// or a template's bit differences. The value
// is left uninterpreted.
type BitField struct {
	Value string `db:"value"`
	Name  string `db:"name"`
}

// RecordTags holds a record's references.
type RecordTags struct {
	Page string `db:"page"`
}

// FlagEffects gives the effect code for each
// status flag.
type FlagEffects struct {
	AF string `db:"af"`
	OF string `db:"of"`
	CF string `db:"cf"`
	SF string `db:"sf"`
	ZF string `db:"zf"`
	PF string `db:"pf"`
}

// Template is one concrete encoding form of
// a Record.
type Template struct {
	Metadata TemplateMetadata `db:"metadata"`
	BitDiffs *BitDiffs        `db:"bitdiffs,optional"`
	Syntax   Syntax           `db:"syntax"`
}

// TemplateMetadata records which prefixes
// a template accepts. A nil field means the
// catalogue said nothing.
type TemplateMetadata struct {
	XAcquire *bool `db:"xacquire,string,optional"`
	Lock     *bool `db:"lock,string,optional"`
	XRelease *bool `db:"xrelease,string,optional"`
}

// BitDiffs lists the bit fields where a
// template differs from its record's diagram.
type BitDiffs struct {
	Fields []BitField `db:"fields"`
}

// Syntax is a template's mnemonic and
// operand syntax tree.
type Syntax struct {
	Mnemonic string  `db:"mnem"`
	Text     string  `db:"text"`
	AST      []*Node `db:"ast"`
}

// NodeType is the open-ended kind of an AST
// Node.
type NodeType string

// Node is one node of an operand syntax tree,
// typically describing a single operand.
type Node struct {
	Type       NodeType `db:"type"`
	Value      *string  `db:"value,optional"`
	Suppressed *bool    `db:"suppressed,int,optional"`
	Read       *bool    `db:"read,int,optional"`
	Write      *bool    `db:"write,int,optional"`
	Size       *uint32  `db:"size,optional"`
	Datatype   *string  `db:"datatype,optional"`
	EncodedIn  *string  `db:"encodedin,optional"`
	Symbol     *string  `db:"symbol,optional"`
}
