// options.go: Option and flag parsing for Hermes
//
// Scans an argument vector for long options (--name, --name=value),
// short options (-x, attached values -xVALUE) and bundled boolean
// clusters (-abc), resolving each spelling against the schema's lookup
// tables. Array-valued options accumulate across occurrences into owned
// buffers; every successful match bumps a per-field usage counter so the
// caller can enforce its duplicate policy. Positional tokens are skipped
// (they are not this parser's concern) and "--" stops option scanning.
//
// Copyright (c) 2025 AGILira - A. Giordano
// Series: an AGILira fragment
// SPDX-License-Identifier: MPL-2.0

package hermes

import "sync"

// ParseConfig tunes a parse invocation.
type ParseConfig struct {
	// Limits are the resource thresholds consulted during parsing.
	Limits Limits

	// StrictDuplicates rejects a second occurrence of any non-array
	// option with an OptionDuplicate diagnostic. Array options always
	// accumulate regardless.
	StrictDuplicates bool
}

// DefaultParseConfig returns the lenient configuration used by the
// plain entrypoints.
func DefaultParseConfig() ParseConfig {
	return ParseConfig{Limits: DefaultLimits()}
}

// valuePool recycles array accumulators between parse invocations.
// Release returns a ParsedOptions' accumulators here; see Release for
// the ownership contract.
var valuePool = sync.Pool{
	New: func() interface{} {
		s := make([]Value, 0, 8)
		return &s
	},
}

// ParsedOptions holds the typed option values for one parse invocation.
//
// Scalar and string values are views into the raw argument vector and
// share its lifetime. Array accumulators are independently owned by the
// ParsedOptions; callers that parse in a hot loop should call Release
// when done so the buffers return to the internal pool.
type ParsedOptions struct {
	schema   *Schema
	values   []Value
	arrays   []*[]Value
	set      []bool
	counts   []int
	released bool
}

// Get returns the scalar value bound to the named field and whether it
// was explicitly set or defaulted.
func (po *ParsedOptions) Get(name string) (Value, bool) {
	i := po.schema.fieldIndex(name)
	if i < 0 || !po.set[i] {
		return Value{}, false
	}
	return po.values[i], true
}

// Bool returns the named flag, false when unset.
func (po *ParsedOptions) Bool(name string) bool {
	v, _ := po.Get(name)
	return v.b
}

// String returns the named option as a string, "" when unset.
func (po *ParsedOptions) String(name string) string {
	v, _ := po.Get(name)
	return v.str
}

// Int returns the named option widened to int64, 0 when unset.
func (po *ParsedOptions) Int(name string) int64 {
	v, _ := po.Get(name)
	return v.i
}

// Uint returns the named option widened to uint64, 0 when unset.
func (po *ParsedOptions) Uint(name string) uint64 {
	v, _ := po.Get(name)
	return v.u
}

// Float returns the named option widened to float64, 0 when unset.
func (po *ParsedOptions) Float(name string) float64 {
	v, _ := po.Get(name)
	return v.f
}

// Values returns the accumulated values of an array option in occurrence
// order. The returned slice is owned by the ParsedOptions and becomes
// invalid after Release.
func (po *ParsedOptions) Values(name string) []Value {
	i := po.schema.fieldIndex(name)
	if i < 0 || po.arrays[i] == nil {
		return nil
	}
	return *po.arrays[i]
}

// Strings returns the accumulated values of a string array option. The
// returned slice is freshly allocated and survives Release.
func (po *ParsedOptions) Strings(name string) []string {
	vals := po.Values(name)
	if vals == nil {
		return nil
	}
	out := make([]string, len(vals))
	for i, v := range vals {
		out[i] = v.str
	}
	return out
}

// Count returns how many times the named option matched during parsing.
// Callers use this to enforce duplicate policies the parser itself does
// not impose.
func (po *ParsedOptions) Count(name string) int {
	i := po.schema.fieldIndex(name)
	if i < 0 {
		return 0
	}
	return po.counts[i]
}

// Release returns every array accumulator to the internal pool and
// clears the array fields. Safe to call when no array option was
// populated, and idempotent.
func (po *ParsedOptions) Release() {
	if po == nil || po.released {
		return
	}
	po.released = true
	for i, arr := range po.arrays {
		if arr == nil {
			continue
		}
		*arr = (*arr)[:0]
		valuePool.Put(arr)
		po.arrays[i] = nil
	}
}

// ReleaseOptionArrays frees the array storage of a parse result. It is
// the standalone spelling of ParsedOptions.Release and tolerates nil.
func ReleaseOptionArrays(po *ParsedOptions) {
	po.Release()
}

// ParseOptions scans the argument vector for options declared in the
// schema using the lenient default configuration.
func ParseOptions(schema *Schema, argv []string) (*ParsedOptions, *Diagnostic) {
	return ParseOptionsWith(schema, argv, DefaultParseConfig())
}

// ParseOptionsWith scans the argument vector for options declared in
// the schema.
func ParseOptionsWith(schema *Schema, argv []string, cfg ParseConfig) (*ParsedOptions, *Diagnostic) {
	po := &ParsedOptions{
		schema: schema,
		values: make([]Value, schema.Len()),
		arrays: make([]*[]Value, schema.Len()),
		set:    make([]bool, schema.Len()),
		counts: make([]int, schema.Len()),
	}

	// Per-field initialization: defaults apply up front so a later
	// occurrence simply overwrites them. Booleans start false and
	// optionals start unset by zero value.
	for i := range schema.fields {
		f := &schema.fields[i]
		if f.HasDefault && !f.Array {
			po.values[i] = f.Default
			po.set[i] = true
		}
	}

	p := optionParser{schema: schema, cfg: cfg, po: po, argv: argv}
	if d := p.run(); d != nil {
		po.Release()
		return nil, d
	}
	return po, nil
}

// optionParser carries the scan state for one ParseOptionsWith call.
type optionParser struct {
	schema      *Schema
	cfg         ParseConfig
	po          *ParsedOptions
	argv        []string
	pos         int
	occurrences int
}

func (p *optionParser) run() *Diagnostic {
	for p.pos < len(p.argv) {
		tok := p.argv[p.pos]

		switch classifyToken(tok) {
		case tokenTerminator:
			// Everything after "--" is positional.
			return nil

		case tokenPositional:
			p.pos++

		case tokenLongOption:
			if d := p.parseLong(tok); d != nil {
				return d
			}

		case tokenShortCluster:
			if d := p.parseShortCluster(tok); d != nil {
				return d
			}
		}
	}
	return nil
}

// parseLong handles --name and --name=value tokens.
func (p *optionParser) parseLong(tok string) *Diagnostic {
	name, embedded, hasEmbedded := splitLongOption(tok)

	if len(name) > p.cfg.Limits.MaxOptionNameLength {
		return limitDiagnostic(LimitOptionNameLength, p.cfg.Limits.MaxOptionNameLength, len(name))
	}

	idx := p.schema.resolveLong(name)
	if idx < 0 {
		return &Diagnostic{
			Kind:        KindOptionUnknown,
			Option:      name,
			Suggestions: suggestNames(name, p.schema.longNames(), p.cfg.Limits.MaxSuggestions),
		}
	}
	field := &p.schema.fields[idx]

	if field.isBool() {
		if hasEmbedded {
			return &Diagnostic{
				Kind:     KindOptionBooleanWithValue,
				Option:   name,
				Provided: embedded,
			}
		}
		p.pos++
		return p.record(idx, name, false, BoolValue(true))
	}

	value := embedded
	consumed := 1
	if !hasEmbedded {
		if p.pos+1 >= len(p.argv) {
			return &Diagnostic{Kind: KindOptionMissingValue, Option: name}
		}
		value = p.argv[p.pos+1]
		consumed = 2
	}

	v, ok := coerceValue(field, value)
	if !ok {
		return &Diagnostic{
			Kind:     KindOptionInvalidValue,
			Option:   name,
			Provided: value,
			Expected: field.Type.String(),
		}
	}
	p.pos += consumed
	return p.record(idx, name, false, v)
}

// parseShortCluster handles -x, -xyz bundles and -xVALUE attachments.
func (p *optionParser) parseShortCluster(tok string) *Diagnostic {
	cluster := tok[1:]

	// Bundled boolean flags: every character must map to a distinct
	// boolean field. -abc is then exactly -a -b -c.
	if len(cluster) > 1 && p.schema.allBoolCluster(cluster) {
		for _, r := range cluster {
			idx := p.schema.resolveShort(r)
			if d := p.record(idx, string(r), true, BoolValue(true)); d != nil {
				return d
			}
		}
		p.pos++
		return nil
	}

	runes := []rune(cluster)
	r := runes[0]
	idx := p.schema.resolveShort(r)
	if idx < 0 {
		return &Diagnostic{Kind: KindOptionUnknown, Option: string(r), IsShort: true}
	}
	field := &p.schema.fields[idx]

	if field.isBool() {
		p.pos++
		return p.record(idx, string(r), true, BoolValue(true))
	}

	// Non-boolean: the rest of the cluster is the attached value, else
	// the next token carries it.
	value := string(runes[1:])
	consumed := 1
	if value == "" {
		if p.pos+1 >= len(p.argv) {
			return &Diagnostic{Kind: KindOptionMissingValue, Option: string(r), IsShort: true}
		}
		value = p.argv[p.pos+1]
		consumed = 2
	}

	v, ok := coerceValue(field, value)
	if !ok {
		return &Diagnostic{
			Kind:     KindOptionInvalidValue,
			Option:   string(r),
			IsShort:  true,
			Provided: value,
			Expected: field.Type.String(),
		}
	}
	p.pos += consumed
	return p.record(idx, string(r), true, v)
}

// record books one successful option match: usage counting, limit
// checks, duplicate policy and the actual assign/append.
func (p *optionParser) record(idx int, spelling string, short bool, v Value) *Diagnostic {
	p.occurrences++
	if p.occurrences > p.cfg.Limits.MaxOptionCount {
		return limitDiagnostic(LimitOptionCount, p.cfg.Limits.MaxOptionCount, p.occurrences)
	}

	field := &p.schema.fields[idx]

	if field.Array {
		arr := p.po.arrays[idx]
		if arr == nil {
			arr = valuePool.Get().(*[]Value)
			p.po.arrays[idx] = arr
		}
		if len(*arr)+1 > p.cfg.Limits.MaxArrayElements {
			return limitDiagnostic(LimitArrayElements, p.cfg.Limits.MaxArrayElements, len(*arr)+1)
		}
		*arr = append(*arr, v)
		p.po.counts[idx]++
		p.po.set[idx] = true
		return nil
	}

	if p.cfg.StrictDuplicates && p.po.counts[idx] > 0 {
		return &Diagnostic{Kind: KindOptionDuplicate, Option: spelling, IsShort: short}
	}

	p.po.values[idx] = v
	p.po.set[idx] = true
	p.po.counts[idx]++
	return nil
}
