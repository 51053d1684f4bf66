// Copyright 2023 The Firefly Authors.
//
// Use of this source code is governed by a BSD 3-clause
// license that can be found in the LICENSE file.

package opcodesdb

import (
	"fmt"
	"reflect"
	"strings"

	"github.com/TheNewJavaman/asm-matcher/internal/scalar"
)

// The model types are decoded by reflection,
// driven by `db` struct tags. A tag has the
// form:
//
//	db:"key[,int|,string][,optional]"
//
// The key names the field in the document. The
// int and string options give the representation
// of a boolean field. Optional fields must have
// pointer or slice type, and are left nil when
// the key is absent or null. All other fields
// are required. Document keys with no matching
// tag are ignored.

type boolEncoding uint8

const (
	boolNative boolEncoding = iota
	boolInt
	boolString
)

type fieldInfo struct {
	Index    int
	Key      string
	Encoding boolEncoding
	Optional bool
}

func parseTag(structType reflect.Type, field reflect.StructField) (info fieldInfo, ok bool) {
	tag, ok := field.Tag.Lookup("db")
	if !ok {
		return info, false
	}

	key, opts, _ := strings.Cut(tag, ",")
	if key == "" {
		panic(fmt.Sprintf("%s.%s has an invalid tag: key cannot be empty", structType.Name(), field.Name))
	}

	info = fieldInfo{Index: field.Index[0], Key: key}
	for opts != "" {
		var opt string
		opt, opts, _ = strings.Cut(opts, ",")
		switch opt {
		case "int":
			info.Encoding = boolInt
		case "string":
			info.Encoding = boolString
		case "optional":
			info.Optional = true
		default:
			panic(fmt.Sprintf("%s.%s has an invalid tag: unrecognised option %q", structType.Name(), field.Name, opt))
		}
	}

	kind := field.Type.Kind()
	if info.Optional && kind != reflect.Pointer && kind != reflect.Slice {
		panic(fmt.Sprintf("%s.%s has an invalid tag: optional field must be a pointer or slice", structType.Name(), field.Name))
	}

	return info, true
}

// decodeStruct populates the structure v from the
// object raw. The path identifies raw in error
// messages.
func decodeStruct(path string, raw any, v reflect.Value) error {
	obj, ok := asObject(raw)
	if !ok {
		if key, bad := nonStringKey(raw); bad {
			return &KeyError{Path: path, Key: key}
		}

		return &TypeMismatchError{Path: path, Want: ShapeObject, Got: shapeOf(raw)}
	}

	structType := v.Type()
	for i := 0; i < structType.NumField(); i++ {
		info, ok := parseTag(structType, structType.Field(i))
		if !ok {
			continue
		}

		name := fieldPath(path, info.Key)
		val, present := obj[info.Key]
		if present && val == nil && info.Optional {
			present = false
		}

		if !present && !info.Optional {
			return &MissingFieldError{Path: name}
		}

		field := v.Field(info.Index)
		if info.Encoding != boolNative {
			err := decodeBool(name, val, present, info.Encoding, field)
			if err != nil {
				return err
			}

			continue
		}

		if !present {
			continue
		}

		err := decodeValue(name, val, field)
		if err != nil {
			return err
		}
	}

	return nil
}

// decodeBool handles a field of type bool or *bool
// with an explicit encoding. Required fields have
// already been checked for presence.
func decodeBool(path string, raw any, present bool, enc boolEncoding, v reflect.Value) error {
	var b *bool
	var err error
	switch enc {
	case boolInt:
		b, err = coerce(path, raw, present, scalar.Int, asInteger, ShapeInteger)
	case boolString:
		b, err = coerce(path, raw, present, scalar.String, asString, ShapeString)
	}

	if err != nil {
		return err
	}

	switch {
	case v.Kind() == reflect.Bool:
		v.SetBool(*b)
	case v.Kind() == reflect.Pointer && v.Type().Elem().Kind() == reflect.Bool:
		if b != nil {
			v.Set(reflect.ValueOf(b))
		}
	default:
		panic(fmt.Sprintf("%s: boolean encoding used for %s field", path, v.Type()))
	}

	return nil
}

// coerce extracts the scalar representation from
// raw and converts it to a boolean. The result is
// nil if and only if the field was absent.
func coerce[T scalar.Kind](path string, raw any, present bool, enc scalar.Encoding[T], extract func(any) (T, bool), want Shape) (*bool, error) {
	var in *T
	if present {
		v, ok := extract(raw)
		if !ok {
			got := shapeOf(raw)
			if got == want && want == ShapeInteger {
				// Integral, but beyond an int64.
				n, _ := asBigInteger(raw)
				return nil, coercionError(path, enc.Reject(n))
			}

			return nil, &TypeMismatchError{Path: path, Want: want, Got: got}
		}

		in = &v
	}

	b, err := enc.Optional(in)
	if err != nil {
		return nil, coercionError(path, err)
	}

	return b, nil
}

// decodeValue populates v from raw, according to
// v's type.
func decodeValue(path string, raw any, v reflect.Value) error {
	switch v.Kind() {
	case reflect.Pointer:
		elem := reflect.New(v.Type().Elem())
		err := decodeValue(path, raw, elem.Elem())
		if err != nil {
			return err
		}

		v.Set(elem)
	case reflect.String:
		s, ok := asString(raw)
		if !ok {
			return &TypeMismatchError{Path: path, Want: ShapeString, Got: shapeOf(raw)}
		}

		v.SetString(s)
	case reflect.Uint32:
		n, ok := asInteger(raw)
		if !ok {
			if wide, ok := asBigInteger(raw); ok {
				return coercionError(path, scalar.RejectUint32(wide))
			}

			return &TypeMismatchError{Path: path, Want: ShapeInteger, Got: shapeOf(raw)}
		}

		u, err := scalar.Uint32(n)
		if err != nil {
			return coercionError(path, err)
		}

		v.SetUint(uint64(u))
	case reflect.Bool:
		b, ok := raw.(bool)
		if !ok {
			return &TypeMismatchError{Path: path, Want: ShapeBool, Got: shapeOf(raw)}
		}

		v.SetBool(b)
	case reflect.Slice:
		list, ok := asList(raw)
		if !ok {
			return &TypeMismatchError{Path: path, Want: ShapeList, Got: shapeOf(raw)}
		}

		// A present but empty list is kept distinct
		// from an absent one.
		v.Set(reflect.MakeSlice(v.Type(), len(list), len(list)))
		for i, elt := range list {
			err := decodeValue(indexPath(path, i), elt, v.Index(i))
			if err != nil {
				return err
			}
		}
	case reflect.Struct:
		return decodeStruct(path, raw, v)
	default:
		panic(fmt.Sprintf("%s: unsupported field type %s", path, v.Type()))
	}

	return nil
}
