// Copyright 2023 The Firefly Authors.
//
// Use of this source code is governed by a BSD 3-clause
// license that can be found in the LICENSE file.

// Package scalar converts the loosely encoded scalars
// found in opcodesDB documents into strict Go values.
//
// A boolean is encoded either as one of two integers
// or as one of two strings. Each representation is
// described by an Encoding, which provides the
// conversion for required and optional values.
package scalar

import (
	"fmt"
	"math"
	"strings"
)

// Kind is the set of scalar representations
// a boolean can be encoded with.
type Kind interface {
	~int64 | ~string
}

// Encoding describes the two legal representations
// of a boolean value.
type Encoding[T Kind] struct {
	False T
	True  T
}

var (
	// Int is the integer encoding: 0 or 1.
	Int = Encoding[int64]{False: 0, True: 1}

	// String is the string encoding: "0" or "1".
	String = Encoding[string]{False: "0", True: "1"}
)

// Bool converts v into a boolean. Any value other
// than the two legal representations results in a
// *RangeError.
func (e Encoding[T]) Bool(v T) (bool, error) {
	switch v {
	case e.False:
		return false, nil
	case e.True:
		return true, nil
	}

	return false, e.Reject(v)
}

// Reject returns the error for a value that is
// neither of e's representations. The value need
// not be a T, so that integers too large for an
// int64 can be reported.
func (e Encoding[T]) Reject(v any) *RangeError {
	return &RangeError{Value: v, Accepted: []any{e.False, e.True}}
}

// Optional converts an optional value. A nil v
// means the value was absent, which results in a
// nil boolean and no error. Otherwise, v is
// converted as with Bool.
func (e Encoding[T]) Optional(v *T) (*bool, error) {
	if v == nil {
		return nil, nil
	}

	b, err := e.Bool(*v)
	if err != nil {
		return nil, err
	}

	return &b, nil
}

// Uint32 checks that v fits in a 32-bit unsigned
// integer.
func Uint32(v int64) (uint32, error) {
	if v < 0 || math.MaxUint32 < v {
		return 0, RejectUint32(v)
	}

	return uint32(v), nil
}

// RejectUint32 returns the error for a value that
// does not fit in a 32-bit unsigned integer.
func RejectUint32(v any) *RangeError {
	return &RangeError{Value: v, Min: 0, Max: math.MaxUint32}
}

// RangeError describes a scalar that was outside
// the set of values it may take.
type RangeError struct {
	Value any // The value received.

	// Accepted lists the legal values when
	// there are finitely many. Otherwise,
	// Min and Max give the inclusive range.
	Accepted []any
	Min, Max int64
}

func (e *RangeError) Error() string {
	if len(e.Accepted) == 0 {
		return fmt.Sprintf("invalid value %s: want %d to %d", Format(e.Value), e.Min, e.Max)
	}

	var b strings.Builder
	for i, v := range e.Accepted {
		switch {
		case i == 0:
		case i == len(e.Accepted)-1:
			b.WriteString(" or ")
		default:
			b.WriteString(", ")
		}

		b.WriteString(Format(v))
	}

	return fmt.Sprintf("invalid value %s: want %s", Format(e.Value), b.String())
}

// Format returns v as it would appear in a document,
// with strings quoted.
func Format(v any) string {
	switch v := v.(type) {
	case string:
		return fmt.Sprintf("%q", v)
	case fmt.Stringer:
		return v.String()
	default:
		return fmt.Sprint(v)
	}
}
