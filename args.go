// args.go: Positional argument parsing for Hermes
//
// Walks the declared fields in order against a left-to-right scan of the
// argument vector, skipping option tokens (and their probable values)
// so options and positionals can be freely interleaved. The skipping
// heuristic is deliberately getopt-style: an option token is skipped,
// and exactly one following token is skipped with it unless that token
// itself looks like an option or the option carried an embedded =value.
// The heuristic is ambiguous for boolean flags followed by positionals;
// schema-aware extraction (extract.go) avoids the ambiguity entirely and
// is the preferred entrypoint when an option schema is available.
//
// Copyright (c) 2025 AGILira - A. Giordano
// Series: an AGILira fragment
// SPDX-License-Identifier: MPL-2.0

package hermes

// ParsedArgs holds the typed positional values for one parse invocation.
//
// Scalar and string values are views into the raw argument vector; the
// vector must outlive the ParsedArgs. The varargs slice is freshly
// allocated but its elements share the vector's backing storage.
type ParsedArgs struct {
	schema  *Schema
	values  []Value
	set     []bool
	varargs []string
}

// Get returns the value bound to the named field and whether it was set.
// Unset optional fields report false.
func (pa *ParsedArgs) Get(name string) (Value, bool) {
	i := pa.schema.fieldIndex(name)
	if i < 0 || !pa.set[i] {
		return Value{}, false
	}
	return pa.values[i], true
}

// String returns the named field as a string, or "" when unset.
func (pa *ParsedArgs) String(name string) string {
	v, _ := pa.Get(name)
	return v.str
}

// Int returns the named field widened to int64, or 0 when unset.
func (pa *ParsedArgs) Int(name string) int64 {
	v, _ := pa.Get(name)
	return v.i
}

// Uint returns the named field widened to uint64, or 0 when unset.
func (pa *ParsedArgs) Uint(name string) uint64 {
	v, _ := pa.Get(name)
	return v.u
}

// Float returns the named field widened to float64, or 0 when unset.
func (pa *ParsedArgs) Float(name string) float64 {
	v, _ := pa.Get(name)
	return v.f
}

// Bool returns the named field as a bool, or false when unset.
func (pa *ParsedArgs) Bool(name string) bool {
	v, _ := pa.Get(name)
	return v.b
}

// Varargs returns the tokens captured by the varargs field, or nil.
func (pa *ParsedArgs) Varargs() []string { return pa.varargs }

// argScanner walks an argument vector yielding positional tokens while
// skipping option tokens per the heuristic described in the file header.
type argScanner struct {
	argv       []string
	pos        int
	terminated bool // saw "--": everything after is positional
}

// next returns the next positional token, or ok=false when the vector is
// exhausted.
func (sc *argScanner) next() (string, bool) {
	for sc.pos < len(sc.argv) {
		tok := sc.argv[sc.pos]

		if sc.terminated {
			sc.pos++
			return tok, true
		}

		switch classifyToken(tok) {
		case tokenTerminator:
			sc.terminated = true
			sc.pos++

		case tokenLongOption:
			sc.pos++
			_, _, hasValue := splitLongOption(tok)
			if !hasValue {
				sc.skipProbableValue()
			}

		case tokenShortCluster:
			sc.pos++
			sc.skipProbableValue()

		default:
			sc.pos++
			return tok, true
		}
	}
	return "", false
}

// skipProbableValue skips one following token when it does not itself
// look like an option. This is the compatibility heuristic; it cannot
// know whether the preceding option was a boolean flag.
func (sc *argScanner) skipProbableValue() {
	if sc.pos < len(sc.argv) && !isOptionToken(sc.argv[sc.pos]) {
		sc.pos++
	}
}

// ParseArgs binds an argument vector to the positional schema using the
// default limits.
func ParseArgs(schema *Schema, argv []string) (*ParsedArgs, *Diagnostic) {
	return ParseArgsWith(schema, argv, DefaultLimits())
}

// ParseArgsWith binds an argument vector to the positional schema,
// consulting the supplied limits at each positional token.
func ParseArgsWith(schema *Schema, argv []string, limits Limits) (*ParsedArgs, *Diagnostic) {
	pa := &ParsedArgs{
		schema: schema,
		values: make([]Value, schema.Len()),
		set:    make([]bool, schema.Len()),
	}

	sc := argScanner{argv: argv}
	positionals := 0

	for i := range schema.fields {
		field := &schema.fields[i]

		if field.Varargs {
			// Greedy capture of every remaining positional token.
			// Varargs terminates field processing by construction
			// (NewSchema guarantees it is the final field).
			rest := make([]string, 0, len(argv)-sc.pos)
			for {
				tok, ok := sc.next()
				if !ok {
					break
				}
				positionals++
				if positionals > limits.MaxPositionalCount {
					return nil, limitDiagnostic(LimitPositionalCount, limits.MaxPositionalCount, positionals)
				}
				rest = append(rest, tok)
			}
			pa.varargs = rest
			pa.set[i] = true
			return pa, nil
		}

		tok, ok := sc.next()
		if !ok {
			if field.HasDefault {
				pa.values[i] = field.Default
				pa.set[i] = true
				continue
			}
			if field.Optional {
				continue
			}
			return nil, &Diagnostic{
				Kind:     KindArgumentMissingRequired,
				Field:    field.Name,
				Position: i,
				Expected: field.Type.String(),
			}
		}

		positionals++
		if positionals > limits.MaxPositionalCount {
			return nil, limitDiagnostic(LimitPositionalCount, limits.MaxPositionalCount, positionals)
		}

		v, valid := coerceValue(field, tok)
		if !valid {
			return nil, &Diagnostic{
				Kind:     KindArgumentInvalidValue,
				Field:    field.Name,
				Position: i,
				Provided: tok,
				Expected: field.Type.String(),
			}
		}
		pa.values[i] = v
		pa.set[i] = true
	}

	// No varargs field consumed the remainder: any leftover positional
	// token is an error.
	extra := 0
	for {
		if _, ok := sc.next(); !ok {
			break
		}
		extra++
	}
	if extra > 0 {
		return nil, &Diagnostic{
			Kind:          KindArgumentTooMany,
			ExpectedCount: schema.requiredCount,
			ActualCount:   positionals + extra,
		}
	}

	return pa, nil
}
