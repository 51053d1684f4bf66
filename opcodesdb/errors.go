// Copyright 2023 The Firefly Authors.
//
// Use of this source code is governed by a BSD 3-clause
// license that can be found in the LICENSE file.

package opcodesdb

import (
	"fmt"

	"github.com/TheNewJavaman/asm-matcher/internal/scalar"
)

// Shape is the structural kind of a value in
// a parsed document.
type Shape string

const (
	ShapeObject  Shape = "object"
	ShapeList    Shape = "list"
	ShapeString  Shape = "string"
	ShapeInteger Shape = "integer"
	ShapeNumber  Shape = "number" // A number that is not an integer.
	ShapeBool    Shape = "bool"
	ShapeNull    Shape = "null"
)

// CoercionError indicates that a scalar field
// held a value outside the set it may take.
type CoercionError struct {
	Path  string // The field, such as "enums[0].stringify".
	Value any    // The offending value, as an int64, *big.Int, or string.
	Err   error  // Describes the legal values.
}

func (e *CoercionError) Error() string {
	return fmt.Sprintf("%s: %v", e.Path, e.Err)
}

func (e *CoercionError) Unwrap() error {
	return e.Err
}

func coercionError(path string, err error) error {
	e := &CoercionError{Path: path, Err: err}
	if rangeErr, ok := err.(*scalar.RangeError); ok {
		e.Value = rangeErr.Value
	}

	return e
}

// MissingFieldError indicates that a required
// field was absent.
type MissingFieldError struct {
	Path string
}

func (e *MissingFieldError) Error() string {
	return fmt.Sprintf("%s: missing required field", e.Path)
}

// TypeMismatchError indicates that a field was
// present but had the wrong structure.
type TypeMismatchError struct {
	Path string
	Want Shape
	Got  Shape
}

func (e *TypeMismatchError) Error() string {
	if e.Path == "" {
		return fmt.Sprintf("found %s document, want %s", e.Got, e.Want)
	}

	return fmt.Sprintf("%s: found %s value, want %s", e.Path, e.Got, e.Want)
}

// KeyError indicates that an object in the
// document had a key that is not a string.
type KeyError struct {
	Path string
	Key  any
}

func (e *KeyError) Error() string {
	key := "null key"
	if e.Key != nil {
		key = fmt.Sprintf("%s key %s", shapeOf(e.Key), scalar.Format(e.Key))
	}

	if e.Path == "" {
		return fmt.Sprintf("found %s in document, want string", key)
	}

	return fmt.Sprintf("%s: found %s, want string", e.Path, key)
}

// DuplicateError indicates that a key which must
// be unique within its collection was repeated.
// It is only produced by strict loads.
type DuplicateError struct {
	Path     string // The repeated entry's key field.
	Key      string // The repeated key.
	Previous string // The earlier entry's key field.
}

func (e *DuplicateError) Error() string {
	return fmt.Sprintf("%s: duplicate %q, previously defined at %s", e.Path, e.Key, e.Previous)
}

// VersionError indicates that the document's
// format version is not supported.
type VersionError struct {
	Got  string // The document's version.
	Want string // The required version.
}

func (e *VersionError) Error() string {
	return fmt.Sprintf("version: unsupported catalogue version %q: want %s", e.Got, e.Want)
}

// UnhandledTagError is returned by a Dispatcher
// for a tag with no handler.
type UnhandledTagError struct {
	Tag string
}

func (e *UnhandledTagError) Error() string {
	return fmt.Sprintf("no handler for tag %q", e.Tag)
}
