// Copyright 2023 The Firefly Authors.
//
// Use of this source code is governed by a BSD 3-clause
// license that can be found in the LICENSE file.

// Package opcodesdb contains a typed, validated model of
// an opcodesDB instruction-set catalogue.
//
// A catalogue is loaded in a single pass with Decode or
// Unmarshal (or a configured Loader), producing a Database.
// Once loaded, a Database and everything it contains must
// be treated as read-only, which makes it safe to share
// between goroutines.
package opcodesdb

// Database is the root of a loaded opcodesDB
// catalogue.
type Database struct {
	Arch      string      `db:"arch"`      // The architecture name.
	Version   string      `db:"version"`   // The catalogue format version.
	Enums     []*Enum     `db:"enums"`     // Named symbolic groups.
	Widths    []*Width    `db:"widths"`    // Operand width tables.
	Registers []*Register `db:"registers"` // Register descriptions.
	Records   []*Record   `db:"records"`   // Instructions and instruction groups.
	Tables    []*Table    `db:"tables"`    // Reserved.

	enumsByID       map[string]*Enum
	recordsByID     map[string]*Record
	widthsByName    map[string]*Width
	registersByName map[string][]*Register
}

// index populates the lookup tables. Where
// keys repeat, the first entry wins.
func (db *Database) index() {
	db.enumsByID = make(map[string]*Enum, len(db.Enums))
	for _, enum := range db.Enums {
		if _, ok := db.enumsByID[enum.ID]; !ok {
			db.enumsByID[enum.ID] = enum
		}
	}

	db.recordsByID = make(map[string]*Record, len(db.Records))
	for _, rec := range db.Records {
		if _, ok := db.recordsByID[rec.ID]; !ok {
			db.recordsByID[rec.ID] = rec
		}
	}

	db.widthsByName = make(map[string]*Width, len(db.Widths))
	for _, width := range db.Widths {
		if _, ok := db.widthsByName[width.Name]; !ok {
			db.widthsByName[width.Name] = width
		}
	}

	db.registersByName = make(map[string][]*Register)
	for _, reg := range db.Registers {
		db.registersByName[reg.Reg] = append(db.registersByName[reg.Reg], reg)
	}
}

// Enum returns the enumeration with the given
// id, or nil.
func (db *Database) Enum(id string) *Enum {
	return db.enumsByID[id]
}

// Record returns the record with the given
// id, or nil.
func (db *Database) Record(id string) *Record {
	return db.recordsByID[id]
}

// Width returns the width table entry with the
// given name, or nil.
func (db *Database) Width(name string) *Width {
	return db.widthsByName[name]
}

// RegisterClass returns the registers with the
// given register-class name, in document order.
func (db *Database) RegisterClass(reg string) []*Register {
	return db.registersByName[reg]
}

// Enum is a named group of symbols, such
// as the condition codes.
type Enum struct {
	ID        string     `db:"id"`
	Items     []EnumItem `db:"items"`
	Stringify bool       `db:"stringify,int"`
	Optional  *bool      `db:"optional,int,optional"`
}

// EnumItem is one symbol in an Enum.
type EnumItem struct {
	Name string `db:"name"`
}

// Width gives an operand's size in each
// addressing mode.
type Width struct {
	Name    string `db:"name"`
	Width16 uint32 `db:"width16"`
	Width32 uint32 `db:"width32"`
	Width64 uint32 `db:"width64"`
}

// Mode returns the width for the given
// addressing mode, which must be 16, 32,
// or 64.
func (w *Width) Mode(bits int) uint32 {
	switch bits {
	case 16:
		return w.Width16
	case 32:
		return w.Width32
	case 64:
		return w.Width64
	default:
		panic("invalid addressing mode")
	}
}

// Register describes one physical or logical
// register.
type Register struct {
	Size     uint32 `db:"size"`
	IsFirst  bool   `db:"is_first,int"`
	IsLast   bool   `db:"is_last,int"`
	IsEven   bool   `db:"is_even,int"`
	Encoding uint32 `db:"encoding"`
	Datatype string `db:"datatype"`
	Reg      string `db:"reg"` // The register-class name.
	Kind     string `db:"kind"`
}

// Table is reserved for catalogue tables,
// which are not yet modelled. Any content
// is discarded.
type Table struct{}
