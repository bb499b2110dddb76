// Package hermes provides typed command-line argument parsing, option
// handling and command routing for Go applications, built around explicit
// schema descriptors, structured diagnostics and a static command tree.
//
// # Philosophy: Diagnostics Over Strings
//
// Hermes is built on the principle that a failed parse is data, not prose.
// Every rejection carries a machine-readable Kind, a stable error code and
// the full context needed to render a message or drive suggestion logic,
// so callers never re-derive what went wrong from error text.
//
// # Architecture Overview
//
// Hermes consists of six integrated subsystems:
//  1. **Value Coercion**: closed TypeTag vocabulary, zero-copy string values
//  2. **Token Classification**: long/short/terminator detection with the negative-number rule
//  3. **Positional & Option Parsers**: ordered field binding, bundled flags, array accumulation
//  4. **Combined Extraction**: schema-aware splitting of interleaved options and positionals
//  5. **Command Router**: groups, index leaves, bounded edit-distance suggestions
//  6. **Dispatch Audit Trail**: buffered JSONL/SQLite accountability logging
//
// # Quick Start
//
// Declare schemas, register commands, run:
//
//	app := hermes.New("forge").SetDescription("Container build tool")
//
//	app.Command("run", "Run an image", func(ctx *hermes.Context) error {
//		fmt.Println("image:", ctx.Args.String("image"))
//		fmt.Println("extra:", ctx.Args.Varargs())
//		return nil
//	}).WithArgs(hermes.MustSchema(
//		hermes.Field{Name: "image", Type: hermes.TypeString},
//		hermes.Field{Name: "command", Type: hermes.TypeString, Optional: true},
//		hermes.Field{Name: "args", Type: hermes.TypeString, Varargs: true},
//	)).WithOptions(hermes.MustSchema(
//		hermes.Field{Name: "name", Type: hermes.TypeString, Optional: true},
//		hermes.Field{Name: "volume", Type: hermes.TypeString, Array: true, Short: 'v'},
//	))
//
//	if err := app.Run(os.Args[1:]); err != nil {
//		fmt.Fprintln(os.Stderr, err)
//		os.Exit(1)
//	}
//
// Options and positionals interleave freely on the command line; the
// extractor splits them in one schema-aware pass so a boolean flag never
// swallows the positional that follows it.
//
// # Structured Diagnostics
//
// Parse and routing failures are *Diagnostic values with a cheap Kind
// discriminant and per-kind payload:
//
//	opts, diag := hermes.ParseOptions(schema, argv)
//	if diag != nil {
//		if diag.Kind == hermes.KindOptionUnknown {
//			log.Printf("unknown --%s (suggestions: %v)", diag.Option, diag.Suggestions)
//		}
//		return diag.Err() // coded go-errors error for uniform propagation
//	}
//
// # Resource Limits
//
// All parsing and routing consults a Limits value (default, restrictive
// or permissive presets, YAML-loadable via LoadLimits); violations
// surface as ResourceLimitExceeded diagnostics rather than truncation.
//
// # Concurrency
//
// Schemas and command trees are built once and read-only afterwards;
// concurrent invocations need only independent argument vectors and
// result structures.
//
// Copyright (c) 2025 AGILira - A. Giordano
// Series: an AGILira fragment
// SPDX-License-Identifier: MPL-2.0
package hermes
