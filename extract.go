// extract.go: Combined option/positional extraction for Hermes
//
// One schema-aware forward pass splits an argument vector into the
// tokens that belong to option parsing and the tokens that are
// positional, so the two parsers can run independently and their results
// recombine. Because the schema says which options take values, this
// path has none of the heuristic ambiguity of the direct positional
// scanner: a boolean flag never swallows the positional after it.
//
// Copyright (c) 2025 AGILira
// Series: an AGILira fragment
// SPDX-License-Identifier: MPL-2.0

package hermes

// optionExpectsValue reports whether the option token would consume a
// following value token: embedded =values and boolean flags never do,
// attached short values (-oVALUE) never do, and unknown spellings are
// left to the option parser to reject.
func optionExpectsValue(schema *Schema, tok string) bool {
	switch classifyToken(tok) {
	case tokenLongOption:
		name, _, hasValue := splitLongOption(tok)
		if hasValue {
			return false
		}
		idx := schema.resolveLong(name)
		return idx >= 0 && schema.fields[idx].takesValue()

	case tokenShortCluster:
		cluster := tok[1:]
		if len(cluster) > 1 && schema.allBoolCluster(cluster) {
			return false
		}
		runes := []rune(cluster)
		idx := schema.resolveShort(runes[0])
		if idx < 0 || !schema.fields[idx].takesValue() {
			return false
		}
		// Attached value satisfies the option in place.
		return len(runes) == 1
	}
	return false
}

// ParseOptionsAndRemaining parses the options out of an argument vector
// and returns the order-preserved positional remainder, using the
// lenient default configuration.
func ParseOptionsAndRemaining(schema *Schema, argv []string) (*ParsedOptions, []string, *Diagnostic) {
	return ParseOptionsAndRemainingWith(schema, argv, DefaultParseConfig())
}

// ParseOptionsAndRemainingWith parses the options out of an argument
// vector and returns the order-preserved positional remainder.
//
// Options and positionals may be freely interleaved; the returned
// remainder slice is freshly allocated and owned by the caller,
// independent of the ParsedOptions array storage.
func ParseOptionsAndRemainingWith(schema *Schema, argv []string, cfg ParseConfig) (*ParsedOptions, []string, *Diagnostic) {
	optionTokens := make([]string, 0, len(argv))
	remaining := make([]string, 0, len(argv))

	i := 0
	for i < len(argv) {
		tok := argv[i]

		if classifyToken(tok) == tokenTerminator {
			// Everything after "--" is positional, verbatim.
			remaining = append(remaining, argv[i+1:]...)
			break
		}

		if isOptionToken(tok) {
			optionTokens = append(optionTokens, tok)
			if optionExpectsValue(schema, tok) && i+1 < len(argv) && !isOptionToken(argv[i+1]) {
				optionTokens = append(optionTokens, argv[i+1])
				i += 2
				continue
			}
			i++
			continue
		}

		remaining = append(remaining, tok)
		i++
	}

	if len(remaining) > cfg.Limits.MaxPositionalCount {
		return nil, nil, limitDiagnostic(LimitPositionalCount, cfg.Limits.MaxPositionalCount, len(remaining))
	}

	po, diag := ParseOptionsWith(schema, optionTokens, cfg)
	if diag != nil {
		return nil, nil, diag
	}
	return po, remaining, nil
}
