// args_test.go - Positional argument parser tests
//
// Copyright (c) 2025 AGILira - A. Giordano
// Series: an AGILira fragment
// SPDX-License-Identifier: MPL-2.0

package hermes

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestParseArgsSimple(t *testing.T) {
	s := MustSchema(
		Field{Name: "name", Type: TypeString},
		Field{Name: "count", Type: TypeInt32},
	)

	pa, diag := ParseArgs(s, []string{"test", "42"})
	if diag != nil {
		t.Fatalf("unexpected diagnostic: %v", diag)
	}
	if pa.String("name") != "test" {
		t.Errorf("name = %q, want %q", pa.String("name"), "test")
	}
	if pa.Int("count") != 42 {
		t.Errorf("count = %d, want 42", pa.Int("count"))
	}
}

func TestParseArgsMissingRequired(t *testing.T) {
	s := MustSchema(
		Field{Name: "name", Type: TypeString},
		Field{Name: "count", Type: TypeInt32},
	)

	_, diag := ParseArgs(s, []string{"test"})
	if diag == nil {
		t.Fatal("expected ArgumentMissingRequired")
	}
	if diag.Kind != KindArgumentMissingRequired {
		t.Fatalf("kind = %v, want ArgumentMissingRequired", diag.Kind)
	}
	if diag.Field != "count" || diag.Position != 1 {
		t.Errorf("payload = {%q, %d}, want {count, 1}", diag.Field, diag.Position)
	}
	if diag.Expected != "int32" {
		t.Errorf("expected type = %q, want int32", diag.Expected)
	}
}

func TestParseArgsInvalidValue(t *testing.T) {
	s := MustSchema(
		Field{Name: "count", Type: TypeInt32},
	)

	_, diag := ParseArgs(s, []string{"forty-two"})
	if diag == nil || diag.Kind != KindArgumentInvalidValue {
		t.Fatalf("expected ArgumentInvalidValue, got %v", diag)
	}
	if diag.Provided != "forty-two" || diag.Field != "count" {
		t.Errorf("payload = {%q, %q}", diag.Field, diag.Provided)
	}
}

func TestParseArgsTooMany(t *testing.T) {
	s := MustSchema(
		Field{Name: "name", Type: TypeString},
	)

	_, diag := ParseArgs(s, []string{"a", "b", "c"})
	if diag == nil || diag.Kind != KindArgumentTooMany {
		t.Fatalf("expected ArgumentTooMany, got %v", diag)
	}
	if diag.ExpectedCount != 1 || diag.ActualCount != 3 {
		t.Errorf("counts = {%d, %d}, want {1, 3}", diag.ExpectedCount, diag.ActualCount)
	}
}

func TestParseArgsOptionalAndDefault(t *testing.T) {
	s := MustSchema(
		Field{Name: "src", Type: TypeString},
		Field{Name: "dst", Type: TypeString, HasDefault: true, Default: StringValue("out")},
		Field{Name: "depth", Type: TypeInt32, Optional: true},
	)

	pa, diag := ParseArgs(s, []string{"input"})
	if diag != nil {
		t.Fatalf("unexpected diagnostic: %v", diag)
	}
	if pa.String("dst") != "out" {
		t.Errorf("dst = %q, want default %q", pa.String("dst"), "out")
	}
	if _, set := pa.Get("depth"); set {
		t.Error("absent optional field must stay unset")
	}

	pa, diag = ParseArgs(s, []string{"input", "elsewhere", "3"})
	if diag != nil {
		t.Fatalf("unexpected diagnostic: %v", diag)
	}
	if pa.String("dst") != "elsewhere" || pa.Int("depth") != 3 {
		t.Errorf("got dst=%q depth=%d", pa.String("dst"), pa.Int("depth"))
	}
}

// TestParseArgsSkipsInterleavedOptions pins the getopt-style skipping
// heuristic: option tokens and their probable values are stepped over
// while positionals bind in order.
func TestParseArgsSkipsInterleavedOptions(t *testing.T) {
	s := MustSchema(
		Field{Name: "image", Type: TypeString},
		Field{Name: "command", Type: TypeString, Optional: true},
		Field{Name: "args", Type: TypeString, Varargs: true},
	)

	argv := []string{"--name", "mycontainer", "ubuntu", "-v", "/tmp:/tmp", "bash", "arg1", "arg2"}
	pa, diag := ParseArgs(s, argv)
	if diag != nil {
		t.Fatalf("unexpected diagnostic: %v", diag)
	}
	if pa.String("image") != "ubuntu" {
		t.Errorf("image = %q, want ubuntu", pa.String("image"))
	}
	if pa.String("command") != "bash" {
		t.Errorf("command = %q, want bash", pa.String("command"))
	}
	if diff := cmp.Diff([]string{"arg1", "arg2"}, pa.Varargs()); diff != "" {
		t.Errorf("varargs mismatch (-want +got):\n%s", diff)
	}
}

func TestParseArgsEmbeddedValueNotSkipped(t *testing.T) {
	s := MustSchema(
		Field{Name: "target", Type: TypeString},
	)

	// --mode=fast carries its value inline, so "deploy" is positional.
	pa, diag := ParseArgs(s, []string{"--mode=fast", "deploy"})
	if diag != nil {
		t.Fatalf("unexpected diagnostic: %v", diag)
	}
	if pa.String("target") != "deploy" {
		t.Errorf("target = %q, want deploy", pa.String("target"))
	}
}

func TestParseArgsNegativeNumbers(t *testing.T) {
	s := MustSchema(
		Field{Name: "delta", Type: TypeInt32},
		Field{Name: "scale", Type: TypeFloat64},
	)

	pa, diag := ParseArgs(s, []string{"-42", "-0.5"})
	if diag != nil {
		t.Fatalf("negative numbers must parse as positionals: %v", diag)
	}
	if pa.Int("delta") != -42 || pa.Float("scale") != -0.5 {
		t.Errorf("got delta=%d scale=%v", pa.Int("delta"), pa.Float("scale"))
	}
}

func TestParseArgsTerminator(t *testing.T) {
	s := MustSchema(
		Field{Name: "rest", Type: TypeString, Varargs: true},
	)

	// Everything after "--" is positional, even option-looking tokens.
	pa, diag := ParseArgs(s, []string{"--", "--not-an-option", "-x"})
	if diag != nil {
		t.Fatalf("unexpected diagnostic: %v", diag)
	}
	if diff := cmp.Diff([]string{"--not-an-option", "-x"}, pa.Varargs()); diff != "" {
		t.Errorf("varargs mismatch (-want +got):\n%s", diff)
	}
}

func TestParseArgsVarargsEmpty(t *testing.T) {
	s := MustSchema(
		Field{Name: "name", Type: TypeString},
		Field{Name: "rest", Type: TypeString, Varargs: true},
	)

	pa, diag := ParseArgs(s, []string{"only"})
	if diag != nil {
		t.Fatalf("unexpected diagnostic: %v", diag)
	}
	if len(pa.Varargs()) != 0 {
		t.Errorf("expected empty varargs, got %v", pa.Varargs())
	}
}

func TestParseArgsPositionalLimit(t *testing.T) {
	s := MustSchema(
		Field{Name: "rest", Type: TypeString, Varargs: true},
	)
	limits := DefaultLimits()
	limits.MaxPositionalCount = 2

	_, diag := ParseArgsWith(s, []string{"a", "b", "c"}, limits)
	if diag == nil || diag.Kind != KindResourceLimitExceeded {
		t.Fatalf("expected ResourceLimitExceeded, got %v", diag)
	}
	if diag.Limit != LimitPositionalCount {
		t.Errorf("limit = %q, want %q", diag.Limit, LimitPositionalCount)
	}
}
