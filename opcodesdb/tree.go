// Copyright 2023 The Firefly Authors.
//
// Use of this source code is governed by a BSD 3-clause
// license that can be found in the LICENSE file.

package opcodesdb

import (
	"encoding/json"
	"fmt"
	"math"
	"math/big"
	"reflect"
)

// The helpers below interpret the generic values
// produced by encoding/json, gopkg.in/yaml.v3 and
// github.com/BurntSushi/toml, so that the decoder
// does not depend on which parser was used.

func shapeOf(v any) Shape {
	switch v := v.(type) {
	case nil:
		return ShapeNull
	case bool:
		return ShapeBool
	case string:
		return ShapeString
	case json.Number, int, int8, int16, int32, int64, uint, uint8, uint16, uint32, uint64, float32, float64:
		if _, ok := asBigInteger(v); ok {
			return ShapeInteger
		}

		return ShapeNumber
	}

	switch reflect.ValueOf(v).Kind() {
	case reflect.Map:
		return ShapeObject
	case reflect.Slice, reflect.Array:
		return ShapeList
	}

	return Shape(fmt.Sprintf("%T", v))
}

// asInteger returns v as an int64, if it is an
// integer that fits. Floating point values are
// accepted when they are integral, as decoding
// JSON into any produces only float64 numbers.
func asInteger(v any) (int64, bool) {
	switch v := v.(type) {
	case json.Number:
		if n, err := v.Int64(); err == nil {
			return n, true
		}

		f, err := v.Float64()
		if err != nil {
			return 0, false
		}

		return asInteger(f)
	case int:
		return int64(v), true
	case int8:
		return int64(v), true
	case int16:
		return int64(v), true
	case int32:
		return int64(v), true
	case int64:
		return v, true
	case uint:
		return asInteger(uint64(v))
	case uint8:
		return int64(v), true
	case uint16:
		return int64(v), true
	case uint32:
		return int64(v), true
	case uint64:
		if v > math.MaxInt64 {
			return 0, false
		}

		return int64(v), true
	case float32:
		return asInteger(float64(v))
	case float64:
		if v != math.Trunc(v) || v < math.MinInt64 || v >= math.MaxInt64 {
			return 0, false
		}

		return int64(v), true
	}

	return 0, false
}

// asBigInteger returns v as an integer of any
// size, if it is integral. Every value with the
// integer shape is accepted, including those that
// asInteger rejects for not fitting in an int64.
func asBigInteger(v any) (*big.Int, bool) {
	if n, ok := asInteger(v); ok {
		return big.NewInt(n), true
	}

	switch v := v.(type) {
	case json.Number:
		if n, ok := new(big.Int).SetString(string(v), 10); ok {
			return n, true
		}

		// Numbers with a fraction or exponent are
		// parsed with enough precision that a
		// fraction cannot be rounded away.
		prec := 8*uint(len(v)) + 64
		f, _, err := big.ParseFloat(string(v), 10, prec, big.ToNearestEven)
		if err != nil || !f.IsInt() {
			return nil, false
		}

		n, _ := f.Int(nil)
		return n, true
	case uint:
		return new(big.Int).SetUint64(uint64(v)), true
	case uint64:
		return new(big.Int).SetUint64(v), true
	case float32:
		return asBigInteger(float64(v))
	case float64:
		if math.IsInf(v, 0) || math.IsNaN(v) || v != math.Trunc(v) {
			return nil, false
		}

		n, _ := big.NewFloat(v).Int(nil)
		return n, true
	}

	return nil, false
}

func asString(v any) (string, bool) {
	s, ok := v.(string)
	return s, ok
}

// asObject returns v as a string-keyed map.
func asObject(v any) (map[string]any, bool) {
	switch v := v.(type) {
	case map[string]any:
		return v, true
	case map[any]any:
		m := make(map[string]any, len(v))
		for key, val := range v {
			k := reflect.ValueOf(key)
			if k.Kind() != reflect.String {
				return nil, false
			}

			m[k.String()] = val
		}

		return m, true
	}

	rv := reflect.ValueOf(v)
	if rv.Kind() != reflect.Map || rv.Type().Key().Kind() != reflect.String {
		return nil, false
	}

	m := make(map[string]any, rv.Len())
	iter := rv.MapRange()
	for iter.Next() {
		m[iter.Key().String()] = iter.Value().Interface()
	}

	return m, true
}

// nonStringKey returns a key of the map v that
// is not a string, if there is one.
func nonStringKey(v any) (key any, ok bool) {
	rv := reflect.ValueOf(v)
	if rv.Kind() != reflect.Map {
		return nil, false
	}

	iter := rv.MapRange()
	for iter.Next() {
		key := iter.Key()
		if key.Kind() == reflect.Interface {
			key = key.Elem()
		}

		if key.Kind() != reflect.String {
			if !key.IsValid() {
				return nil, true
			}

			return key.Interface(), true
		}
	}

	return nil, false
}

// asList returns v as a slice of values. Parsers
// may produce typed slices, such as the
// []map[string]any used for TOML arrays of
// tables.
func asList(v any) ([]any, bool) {
	if list, ok := v.([]any); ok {
		return list, true
	}

	rv := reflect.ValueOf(v)
	if rv.Kind() != reflect.Slice && rv.Kind() != reflect.Array {
		return nil, false
	}

	list := make([]any, rv.Len())
	for i := range list {
		list[i] = rv.Index(i).Interface()
	}

	return list, true
}

// Path helpers.

func fieldPath(base, key string) string {
	if base == "" {
		return key
	}

	return base + "." + key
}

func indexPath(base string, i int) string {
	return fmt.Sprintf("%s[%d]", base, i)
}
