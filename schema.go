// schema.go: Explicit field descriptors for Hermes parsing
//
// A Schema is the runtime description of an Args or Options shape: an
// ordered list of named, typed fields. All parser algorithms dispatch on
// this descriptor instead of reflection, which keeps the hot paths
// monomorphic and the type vocabulary closed.
//
// Schema construction errors are ordinary coded errors (go-errors), not
// Diagnostics: a bad schema is a programming mistake caught at startup,
// not a user-facing parse failure.
//
// Copyright (c) 2025 AGILira - A. Giordano
// Series: an AGILira fragment
// SPDX-License-Identifier: MPL-2.0

package hermes

import (
	"fmt"
	"strings"

	"github.com/agilira/go-errors"
)

// Field describes one positional argument or one named option.
type Field struct {
	// Name is the schema-internal field name. For options it doubles as
	// the long spelling (with command-line dashes mapping to
	// underscores) unless LongName overrides it.
	Name string

	// Type is the semantic type tag; see coerce.go for the vocabulary.
	Type TypeTag

	// Optional marks the field as optional<T>: absence yields the unset
	// state instead of a missing-required failure.
	Optional bool

	// Array marks an option field as array-of-T; every occurrence
	// appends to an owned accumulator.
	Array bool

	// Varargs marks a positional field that greedily captures all
	// remaining positional tokens. Must be the final field and is
	// implicitly array-of-string.
	Varargs bool

	// HasDefault/Default supply a fallback for absent positionals or
	// unset scalar options.
	HasDefault bool
	Default    Value

	// LongName is a custom external spelling. Declaring it makes the
	// field's Name unreachable as an option: the custom name is used
	// exclusively.
	LongName string

	// Short is a single-character alias. Zero means "fall back to the
	// first letter of Name" during short-option resolution.
	Short rune

	// Enum holds the label set for TypeEnum fields.
	Enum []string
}

// isBool reports whether the field is a plain boolean flag, i.e. takes
// no value on the command line.
func (f *Field) isBool() bool { return f.Type == TypeBool && !f.Array }

// takesValue reports whether an occurrence of this option consumes a
// value token. Boolean flags never do; everything else does.
func (f *Field) takesValue() bool { return !f.isBool() }

// Schema is an ordered, validated field list with precomputed lookup
// tables for option-name resolution. Build once, read-only afterwards;
// safe for unsynchronized concurrent reads.
type Schema struct {
	fields []Field

	// custom maps declared LongNames; matched exactly and first.
	custom map[string]int
	// byName maps field names for fields without a LongName.
	byName map[string]int
	// byShort maps the resolved short alias per field: declared Short
	// first, then first-letter fallback in declaration order.
	byShort map[rune]int

	requiredCount int
	varargsIndex  int // -1 when absent
}

// NewSchema validates the field list and builds the lookup tables.
//
// Rejected at construction time: empty or duplicate names, duplicate
// custom names or declared short aliases, more than one varargs field,
// a varargs field that is not last or not array-of-string compatible,
// enum fields without labels, and defaults whose tag disagrees with the
// field type.
func NewSchema(fields ...Field) (*Schema, error) {
	s := &Schema{
		fields:       fields,
		custom:       make(map[string]int),
		byName:       make(map[string]int),
		byShort:      make(map[rune]int),
		varargsIndex: -1,
	}

	for i := range fields {
		f := &fields[i]
		if f.Name == "" {
			return nil, errors.New(ErrCodeInvalidSchema, "field name cannot be empty").
				WithContext("position", i)
		}
		if f.Varargs {
			if s.varargsIndex >= 0 {
				return nil, errors.New(ErrCodeInvalidSchema, "at most one varargs field is allowed").
					WithContext("field", f.Name)
			}
			if i != len(fields)-1 {
				return nil, errors.New(ErrCodeInvalidSchema, "varargs field must be last").
					WithContext("field", f.Name).
					WithContext("position", i)
			}
			if f.Type != TypeString {
				return nil, errors.New(ErrCodeInvalidSchema, "varargs field must be of string type").
					WithContext("field", f.Name)
			}
			s.varargsIndex = i
		}
		if f.Type == TypeEnum && len(f.Enum) == 0 {
			return nil, errors.New(ErrCodeInvalidSchema, "enum field declares no labels").
				WithContext("field", f.Name)
		}
		if f.HasDefault && f.Default.tag != f.Type {
			return nil, errors.New(ErrCodeInvalidSchema,
				fmt.Sprintf("default value type %s does not match field type %s", f.Default.tag, f.Type)).
				WithContext("field", f.Name)
		}

		// Long spelling registration. A custom name shadows the field
		// name entirely, so only one of the two tables gets the entry.
		if f.LongName != "" {
			if _, dup := s.custom[f.LongName]; dup {
				return nil, errors.New(ErrCodeInvalidSchema, "duplicate custom option name").
					WithContext("name", f.LongName)
			}
			s.custom[f.LongName] = i
		} else {
			if _, dup := s.byName[f.Name]; dup {
				return nil, errors.New(ErrCodeInvalidSchema, "duplicate field name").
					WithContext("name", f.Name)
			}
			s.byName[f.Name] = i
		}

		if f.Short != 0 {
			if _, dup := s.byShort[f.Short]; dup {
				return nil, errors.New(ErrCodeInvalidSchema, "duplicate short alias").
					WithContext("short", string(f.Short))
			}
			s.byShort[f.Short] = i
		}

		if !f.Optional && !f.Varargs && !f.HasDefault {
			s.requiredCount++
		}
	}

	// First-letter fallback for fields without a declared short alias.
	// Declared aliases always win; among fallbacks, declaration order
	// wins.
	for i := range fields {
		f := &fields[i]
		if f.Short != 0 {
			continue
		}
		r := firstRune(f.Name)
		if r == 0 {
			continue
		}
		if _, taken := s.byShort[r]; !taken {
			s.byShort[r] = i
		}
	}

	return s, nil
}

// MustSchema is NewSchema for statically known field lists; panics on a
// validation error, the way static schema declarations want.
func MustSchema(fields ...Field) *Schema {
	s, err := NewSchema(fields...)
	if err != nil {
		panic(err)
	}
	return s
}

// Fields returns the ordered field list.
func (s *Schema) Fields() []Field { return s.fields }

// Len returns the number of declared fields.
func (s *Schema) Len() int { return len(s.fields) }

// RequiredCount returns the number of required positional fields
// (neither optional, varargs, nor defaulted).
func (s *Schema) RequiredCount() int { return s.requiredCount }

// fieldIndex resolves a schema-internal field name to its index.
func (s *Schema) fieldIndex(name string) int {
	for i := range s.fields {
		if s.fields[i].Name == name {
			return i
		}
	}
	return -1
}

// resolveLong resolves a long option spelling to a field index.
//
// Custom names are checked first and matched exactly; they are exclusive
// so a field with a LongName never matches under its own Name. Field
// names match either literally or with command-line dashes mapped to
// underscores.
func (s *Schema) resolveLong(name string) int {
	if i, ok := s.custom[name]; ok {
		return i
	}
	if i, ok := s.byName[name]; ok {
		return i
	}
	if strings.ContainsRune(name, '-') {
		if i, ok := s.byName[strings.ReplaceAll(name, "-", "_")]; ok {
			return i
		}
	}
	return -1
}

// resolveShort resolves a single option character to a field index using
// the precomputed alias table (declared aliases plus first-letter
// fallbacks).
func (s *Schema) resolveShort(r rune) int {
	if i, ok := s.byShort[r]; ok {
		return i
	}
	return -1
}

// longNames returns every reachable long spelling in declaration order:
// the custom name where one is declared, the field name otherwise. Used
// for unknown-option suggestions.
func (s *Schema) longNames() []string {
	names := make([]string, 0, len(s.fields))
	for i := range s.fields {
		if s.fields[i].LongName != "" {
			names = append(names, s.fields[i].LongName)
			continue
		}
		names = append(names, s.fields[i].Name)
	}
	return names
}

// allBoolCluster reports whether every character of a short cluster maps
// to a distinct boolean field, which makes the cluster eligible for
// bundled-flag treatment.
func (s *Schema) allBoolCluster(cluster string) bool {
	seen := make(map[int]bool, len(cluster))
	for _, r := range cluster {
		i := s.resolveShort(r)
		if i < 0 || !s.fields[i].isBool() || seen[i] {
			return false
		}
		seen[i] = true
	}
	return len(cluster) > 0
}

func firstRune(s string) rune {
	for _, r := range s {
		return r
	}
	return 0
}
