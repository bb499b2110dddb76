// coerce.go: Typed value coercion for Hermes
//
// Converts a single raw token into a typed Value according to a closed
// TypeTag vocabulary. This is the leaf dependency of both the positional
// and the option parser: pure, deterministic, no allocations for scalar
// types (string values are views into the caller's token).
//
// Copyright (c) 2025 AGILira - A. Giordano
// Series: an AGILira fragment
// SPDX-License-Identifier: MPL-2.0

package hermes

import (
	"strconv"
)

// TypeTag identifies the semantic type of a schema field.
//
// The set is closed by design: every parser branch dispatches on the tag
// instead of reflection, so adding a tag means touching coerceValue,
// typeName and the width table together.
type TypeTag int

const (
	TypeString TypeTag = iota
	TypeInt
	TypeInt8
	TypeInt16
	TypeInt32
	TypeInt64
	TypeUint
	TypeUint8
	TypeUint16
	TypeUint32
	TypeUint64
	TypeFloat32
	TypeFloat64
	TypeBool
	TypeEnum
)

// typeNames maps every TypeTag to its diagnostic-facing name.
// Kept in a table so the exhaustiveness test can walk it.
var typeNames = map[TypeTag]string{
	TypeString:  "string",
	TypeInt:     "int",
	TypeInt8:    "int8",
	TypeInt16:   "int16",
	TypeInt32:   "int32",
	TypeInt64:   "int64",
	TypeUint:    "uint",
	TypeUint8:   "uint8",
	TypeUint16:  "uint16",
	TypeUint32:  "uint32",
	TypeUint64:  "uint64",
	TypeFloat32: "float32",
	TypeFloat64: "float64",
	TypeBool:    "bool",
	TypeEnum:    "enum",
}

func (t TypeTag) String() string {
	if name, ok := typeNames[t]; ok {
		return name
	}
	return "unknown"
}

// intBits returns the parse width for integer tags, or 0 for non-integers.
func (t TypeTag) intBits() int {
	switch t {
	case TypeInt, TypeInt64, TypeUint, TypeUint64:
		return 64
	case TypeInt8, TypeUint8:
		return 8
	case TypeInt16, TypeUint16:
		return 16
	case TypeInt32, TypeUint32:
		return 32
	}
	return 0
}

func (t TypeTag) isSigned() bool {
	switch t {
	case TypeInt, TypeInt8, TypeInt16, TypeInt32, TypeInt64:
		return true
	}
	return false
}

func (t TypeTag) isUnsigned() bool {
	switch t {
	case TypeUint, TypeUint8, TypeUint16, TypeUint32, TypeUint64:
		return true
	}
	return false
}

// Value is the tagged union produced by coercion.
//
// String values are zero-copy views into the raw argument vector, so the
// argument vector must outlive any Value derived from it. Numeric and
// boolean payloads are stored by value.
type Value struct {
	tag TypeTag
	str string
	i   int64
	u   uint64
	f   float64
	b   bool
}

// Tag returns the semantic type of the value.
func (v Value) Tag() TypeTag { return v.tag }

// Str returns the string payload (string and enum values).
func (v Value) Str() string { return v.str }

// Int64 returns the signed integer payload widened to 64 bits.
func (v Value) Int64() int64 { return v.i }

// Uint64 returns the unsigned integer payload widened to 64 bits.
func (v Value) Uint64() uint64 { return v.u }

// Float64 returns the floating point payload widened to 64 bits.
func (v Value) Float64() float64 { return v.f }

// Bool returns the boolean payload.
func (v Value) Bool() bool { return v.b }

// StringValue wraps a raw string as a typed Value without copying.
func StringValue(s string) Value { return Value{tag: TypeString, str: s} }

// IntValue wraps a signed integer as a typed Value.
func IntValue(i int64) Value { return Value{tag: TypeInt64, i: i} }

// UintValue wraps an unsigned integer as a typed Value.
func UintValue(u uint64) Value { return Value{tag: TypeUint64, u: u} }

// FloatValue wraps a float as a typed Value.
func FloatValue(f float64) Value { return Value{tag: TypeFloat64, f: f} }

// BoolValue wraps a boolean as a typed Value.
func BoolValue(b bool) Value { return Value{tag: TypeBool, b: b} }

// coerceValue converts token into a typed Value for the given field.
//
// The field is needed (not just the tag) because enum coercion consults
// the declared label set. Returns ok=false on any malformed, overflowing
// or unmatched token; the caller attaches position and field context.
func coerceValue(field *Field, token string) (Value, bool) {
	switch field.Type {
	case TypeString:
		// Identity: the Value borrows the token, zero-copy.
		return Value{tag: TypeString, str: token}, true

	case TypeInt, TypeInt8, TypeInt16, TypeInt32, TypeInt64:
		i, err := strconv.ParseInt(token, 10, field.Type.intBits())
		if err != nil {
			return Value{}, false
		}
		return Value{tag: field.Type, i: i}, true

	case TypeUint, TypeUint8, TypeUint16, TypeUint32, TypeUint64:
		u, err := strconv.ParseUint(token, 10, field.Type.intBits())
		if err != nil {
			return Value{}, false
		}
		return Value{tag: field.Type, u: u}, true

	case TypeFloat32:
		f, err := strconv.ParseFloat(token, 32)
		if err != nil {
			return Value{}, false
		}
		return Value{tag: TypeFloat32, f: f}, true

	case TypeFloat64:
		f, err := strconv.ParseFloat(token, 64)
		if err != nil {
			return Value{}, false
		}
		return Value{tag: TypeFloat64, f: f}, true

	case TypeBool:
		// Exactly four spellings, case-sensitive. No synonym table:
		// "TRUE", "yes" and "on" are rejected on purpose so that a
		// typo'd value never silently flips a flag.
		switch token {
		case "true", "1":
			return Value{tag: TypeBool, b: true}, true
		case "false", "0":
			return Value{tag: TypeBool, b: false}, true
		}
		return Value{}, false

	case TypeEnum:
		for _, label := range field.Enum {
			if token == label {
				return Value{tag: TypeEnum, str: token}, true
			}
		}
		return Value{}, false
	}
	return Value{}, false
}
