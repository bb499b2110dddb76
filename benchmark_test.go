// benchmark_test.go - Hermes Benchmark Tests
//
// Copyright (c) 2025 AGILira
// Series: an AGILira fragment
// SPDX-License-Identifier: MPL-2.0

package hermes

import (
	"testing"
)

func benchArgsSchema() *Schema {
	return MustSchema(
		Field{Name: "image", Type: TypeString},
		Field{Name: "count", Type: TypeInt32},
		Field{Name: "command", Type: TypeString, Varargs: true},
	)
}

func benchOptsSchema() *Schema {
	return MustSchema(
		Field{Name: "verbose", Type: TypeBool, Short: 'v'},
		Field{Name: "quiet", Type: TypeBool, Short: 'q'},
		Field{Name: "output", Type: TypeString, Optional: true, Short: 'o'},
		Field{Name: "env", Type: TypeString, Array: true, Short: 'e'},
		Field{Name: "level", Type: TypeInt64, Optional: true, HasDefault: true, Default: IntValue(1)},
	)
}

func BenchmarkParseArgs(b *testing.B) {
	s := benchArgsSchema()
	argv := []string{"ubuntu", "3", "echo", "hello", "world"}

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, diag := ParseArgs(s, argv); diag != nil {
			b.Fatalf("unexpected diagnostic: %v", diag)
		}
	}
}

func BenchmarkParseOptions(b *testing.B) {
	s := benchOptsSchema()
	argv := []string{"--verbose", "-e", "A=1", "-e", "B=2", "--output", "out.txt", "--level", "4"}

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		po, diag := ParseOptions(s, argv)
		if diag != nil {
			b.Fatalf("unexpected diagnostic: %v", diag)
		}
		po.Release()
	}
}

func BenchmarkParseBundledShorts(b *testing.B) {
	s := benchOptsSchema()
	argv := []string{"-vq"}

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		po, diag := ParseOptions(s, argv)
		if diag != nil {
			b.Fatalf("unexpected diagnostic: %v", diag)
		}
		po.Release()
	}
}

func BenchmarkParseOptionsAndRemaining(b *testing.B) {
	s := benchOptsSchema()
	argv := []string{"ubuntu", "--verbose", "3", "-e", "A=1", "echo", "--output", "x", "hello"}

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		po, _, diag := ParseOptionsAndRemaining(s, argv)
		if diag != nil {
			b.Fatalf("unexpected diagnostic: %v", diag)
		}
		po.Release()
	}
}

func BenchmarkResolve(b *testing.B) {
	tree := NewTree()
	remote := NewGroup("remote")
	remote.AddCommand(NewCommand("add", "", noopHandler))
	remote.AddCommand(NewCommand("remove", "", noopHandler))
	tree.AddGroup(remote)
	tree.AddCommand(NewCommand("build", "", noopHandler))
	argv := []string{"remote", "add", "origin", "https://example.com"}

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, diag := tree.Resolve(argv); diag != nil {
			b.Fatalf("unexpected diagnostic: %v", diag)
		}
	}
}

func BenchmarkResolveNotFoundSuggestions(b *testing.B) {
	tree := NewTree()
	for _, name := range []string{"build", "run", "deploy", "status", "config", "remote"} {
		tree.AddCommand(NewCommand(name, "", noopHandler))
	}
	argv := []string{"buidl"}

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, diag := tree.Resolve(argv); diag == nil {
			b.Fatal("expected a diagnostic")
		}
	}
}

func BenchmarkCoerceInt(b *testing.B) {
	field := &Field{Name: "count", Type: TypeInt32}

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, ok := coerceValue(field, "123456"); !ok {
			b.Fatal("coercion failed")
		}
	}
}

func BenchmarkClassifyToken(b *testing.B) {
	tokens := []string{"positional", "--long", "-abc", "--", "-42", "--name=value"}

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		classifyToken(tokens[i%len(tokens)])
	}
}

func BenchmarkEditDistance(b *testing.B) {
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		editDistance("deploymnet", "deployment")
	}
}

func BenchmarkAppRun(b *testing.B) {
	app := New("forge")
	app.Command("run", "", func(ctx *Context) error { return nil }).
		WithArgs(benchArgsSchema()).
		WithOptions(benchOptsSchema())
	argv := []string{"run", "--verbose", "ubuntu", "3", "echo", "hi"}

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if err := app.Run(argv); err != nil {
			b.Fatalf("unexpected error: %v", err)
		}
	}
}
