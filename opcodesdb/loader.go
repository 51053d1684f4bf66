// Copyright 2023 The Firefly Authors.
//
// Use of this source code is governed by a BSD 3-clause
// license that can be found in the LICENSE file.

package opcodesdb

import (
	"reflect"
)

// Loader builds a Database from a catalogue
// document. The zero Loader reads JSON and
// performs only the structural checks.
//
// A Loader holds no state between loads, so
// one Loader may be used from many goroutines.
type Loader struct {
	// Format is the syntax used by Unmarshal.
	Format Format

	// Strict additionally requires that ids
	// and names are unique within their
	// collections.
	Strict bool

	// Version, if non-empty, is the semantic
	// version the catalogue must be compatible
	// with, such as "1" or "v1.2". A document
	// is compatible if its version has the
	// same major version.
	Version string
}

// Decode builds a Database from a generic value
// tree, as produced by Parse.
//
// If the tree does not match the catalogue's
// structure, the error will be a *CoercionError,
// *MissingFieldError or *TypeMismatchError
// identifying the field. No partial Database is
// ever returned.
func (l *Loader) Decode(tree any) (*Database, error) {
	db := new(Database)
	err := decodeStruct("", tree, reflect.ValueOf(db).Elem())
	if err != nil {
		return nil, err
	}

	if l.Version != "" {
		err = checkVersion(db.Version, l.Version)
		if err != nil {
			return nil, err
		}
	}

	if l.Strict {
		err = checkUnique(db)
		if err != nil {
			return nil, err
		}
	}

	db.index()

	return db, nil
}

// Unmarshal parses data in the loader's format
// and builds a Database.
func (l *Loader) Unmarshal(data []byte) (*Database, error) {
	tree, err := Parse(l.Format, data)
	if err != nil {
		return nil, err
	}

	return l.Decode(tree)
}

// Decode builds a Database from a generic value
// tree, using the default Loader.
func Decode(tree any) (*Database, error) {
	var l Loader
	return l.Decode(tree)
}

// Unmarshal builds a Database from a JSON
// document, using the default Loader.
func Unmarshal(data []byte) (*Database, error) {
	var l Loader
	return l.Unmarshal(data)
}
