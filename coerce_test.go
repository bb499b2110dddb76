// coerce_test.go - Value coercion tests
//
// Copyright (c) 2025 AGILira - A. Giordano
// Series: an AGILira fragment
// SPDX-License-Identifier: MPL-2.0

package hermes

import (
	"fmt"
	"math"
	"testing"
)

func TestCoerceStringIsIdentity(t *testing.T) {
	field := &Field{Name: "s", Type: TypeString}
	v, ok := coerceValue(field, "hello world")
	if !ok {
		t.Fatal("string coercion must never fail")
	}
	if v.Str() != "hello world" {
		t.Errorf("expected identity, got %q", v.Str())
	}
}

// TestCoerceIntRoundTrip verifies that every canonical integer
// formatting parses back to the same value for each declared width.
func TestCoerceIntRoundTrip(t *testing.T) {
	cases := []struct {
		tag    TypeTag
		values []int64
	}{
		{TypeInt8, []int64{math.MinInt8, -1, 0, 1, math.MaxInt8}},
		{TypeInt16, []int64{math.MinInt16, -1, 0, math.MaxInt16}},
		{TypeInt32, []int64{math.MinInt32, -42, 0, 42, math.MaxInt32}},
		{TypeInt64, []int64{math.MinInt64, 0, math.MaxInt64}},
		{TypeInt, []int64{-1234567, 0, 1234567}},
	}
	for _, tc := range cases {
		field := &Field{Name: "n", Type: tc.tag}
		for _, want := range tc.values {
			token := fmt.Sprintf("%d", want)
			v, ok := coerceValue(field, token)
			if !ok {
				t.Fatalf("%s: failed to coerce %q", tc.tag, token)
			}
			if v.Int64() != want {
				t.Errorf("%s: round-trip mismatch: %q -> %d", tc.tag, token, v.Int64())
			}
		}
	}
}

func TestCoerceUintRoundTrip(t *testing.T) {
	cases := []struct {
		tag    TypeTag
		values []uint64
	}{
		{TypeUint8, []uint64{0, 1, math.MaxUint8}},
		{TypeUint16, []uint64{0, math.MaxUint16}},
		{TypeUint32, []uint64{0, math.MaxUint32}},
		{TypeUint64, []uint64{0, math.MaxUint64}},
		{TypeUint, []uint64{0, 99}},
	}
	for _, tc := range cases {
		field := &Field{Name: "n", Type: tc.tag}
		for _, want := range tc.values {
			token := fmt.Sprintf("%d", want)
			v, ok := coerceValue(field, token)
			if !ok {
				t.Fatalf("%s: failed to coerce %q", tc.tag, token)
			}
			if v.Uint64() != want {
				t.Errorf("%s: round-trip mismatch: %q -> %d", tc.tag, token, v.Uint64())
			}
		}
	}
}

func TestCoerceIntRejectsGarbageAndOverflow(t *testing.T) {
	rejects := []struct {
		tag   TypeTag
		token string
	}{
		{TypeInt32, ""},
		{TypeInt32, "abc"},
		{TypeInt32, "12abc"},
		{TypeInt32, " 12"},
		{TypeInt32, "12 "},
		{TypeInt32, "0x10"},
		{TypeInt32, "1.5"},
		{TypeInt8, "128"},   // overflow for width
		{TypeInt8, "-129"},  // underflow for width
		{TypeUint8, "256"},  // overflow for width
		{TypeUint32, "-1"},  // negative for unsigned
		{TypeInt64, "9223372036854775808"},
	}
	for _, tc := range rejects {
		field := &Field{Name: "n", Type: tc.tag}
		if _, ok := coerceValue(field, tc.token); ok {
			t.Errorf("%s: expected rejection of %q", tc.tag, tc.token)
		}
	}
}

func TestCoerceFloat(t *testing.T) {
	field := &Field{Name: "f", Type: TypeFloat64}

	for token, want := range map[string]float64{
		"0":      0,
		"-2.5":   -2.5,
		"1e10":   1e10,
		"inf":    math.Inf(1),
		"-inf":   math.Inf(-1),
		"0.0001": 0.0001,
	} {
		v, ok := coerceValue(field, token)
		if !ok {
			t.Fatalf("failed to coerce %q", token)
		}
		if v.Float64() != want {
			t.Errorf("%q: got %v, want %v", token, v.Float64(), want)
		}
	}

	v, ok := coerceValue(field, "nan")
	if !ok || !math.IsNaN(v.Float64()) {
		t.Error("nan literal must coerce to NaN")
	}

	if _, ok := coerceValue(field, "not-a-number"); ok {
		t.Error("expected rejection of malformed float")
	}

	f32 := &Field{Name: "f", Type: TypeFloat32}
	v32, ok := coerceValue(f32, "3.14159")
	if !ok {
		t.Fatal("failed to coerce float32")
	}
	if v32.Float64() != float64(float32(3.14159)) {
		t.Errorf("float32 must round to nearest representable, got %v", v32.Float64())
	}
}

// TestCoerceBoolSpellings pins down the exact four accepted spellings.
// Case variants and synonyms are rejected on purpose.
func TestCoerceBoolSpellings(t *testing.T) {
	field := &Field{Name: "b", Type: TypeBool}

	accepted := map[string]bool{"true": true, "1": true, "false": false, "0": false}
	for token, want := range accepted {
		v, ok := coerceValue(field, token)
		if !ok {
			t.Fatalf("expected %q to coerce", token)
		}
		if v.Bool() != want {
			t.Errorf("%q: got %v, want %v", token, v.Bool(), want)
		}
	}

	for _, token := range []string{"TRUE", "True", "yes", "on", "FALSE", "no", "off", "2", ""} {
		if _, ok := coerceValue(field, token); ok {
			t.Errorf("expected rejection of %q", token)
		}
	}
}

func TestCoerceEnum(t *testing.T) {
	field := &Field{Name: "mode", Type: TypeEnum, Enum: []string{"fast", "safe", "Auto"}}

	for _, label := range field.Enum {
		v, ok := coerceValue(field, label)
		if !ok {
			t.Fatalf("expected label %q to coerce", label)
		}
		if v.Str() != label {
			t.Errorf("got %q, want %q", v.Str(), label)
		}
	}

	// Case-sensitive: "auto" is not "Auto".
	for _, token := range []string{"auto", "FAST", "slow", ""} {
		if _, ok := coerceValue(field, token); ok {
			t.Errorf("expected rejection of %q", token)
		}
	}
}

func TestTypeTagNames(t *testing.T) {
	for tag, want := range typeNames {
		if tag.String() != want {
			t.Errorf("tag %d: got %q, want %q", tag, tag.String(), want)
		}
	}
	if TypeTag(999).String() != "unknown" {
		t.Error("out-of-range tag must render as unknown")
	}
}
