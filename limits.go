// limits.go: Resource limit configuration for Hermes
//
// A Limits value is a read-only set of numeric thresholds consulted by
// the parsers and the router at well-defined points: every array
// accumulation step, every option occurrence, every positional token and
// every router recursion. Violations surface as ResourceLimitExceeded
// diagnostics, never as silent truncation.
//
// Copyright (c) 2025 AGILira
// Series: an AGILira fragment
// SPDX-License-Identifier: MPL-2.0

package hermes

import (
	"fmt"
	"os"

	"github.com/agilira/go-errors"
	"go.yaml.in/yaml/v3"
)

// Limit names as they appear in ResourceLimitExceeded diagnostics and in
// the YAML configuration file.
const (
	LimitArrayElements    = "max_array_elements"
	LimitOptionCount      = "max_option_count"
	LimitOptionNameLength = "max_option_name_length"
	LimitPositionalCount  = "max_positional_count"
	LimitCommandDepth     = "max_command_depth"
	LimitSuggestions      = "max_suggestions"
)

// Limits holds the thresholds. Zero values are not valid; construct via
// a preset (or LoadLimits) and override fields as needed. Consulted,
// never mutated, by the core.
type Limits struct {
	MaxArrayElements    int `yaml:"max_array_elements"`
	MaxOptionCount      int `yaml:"max_option_count"`
	MaxOptionNameLength int `yaml:"max_option_name_length"`
	MaxPositionalCount  int `yaml:"max_positional_count"`
	MaxCommandDepth     int `yaml:"max_command_depth"`
	MaxSuggestions      int `yaml:"max_suggestions"`
}

// DefaultLimits returns thresholds suitable for interactive CLI use.
func DefaultLimits() Limits {
	return Limits{
		MaxArrayElements:    1024,
		MaxOptionCount:      256,
		MaxOptionNameLength: 64,
		MaxPositionalCount:  4096,
		MaxCommandDepth:     16,
		MaxSuggestions:      3,
	}
}

// RestrictiveLimits returns tight thresholds for hostile input, e.g.
// server-side dispatch of CLI-style sub-requests.
func RestrictiveLimits() Limits {
	return Limits{
		MaxArrayElements:    64,
		MaxOptionCount:      32,
		MaxOptionNameLength: 32,
		MaxPositionalCount:  256,
		MaxCommandDepth:     8,
		MaxSuggestions:      2,
	}
}

// PermissiveLimits returns loose thresholds for batch tooling that feeds
// machine-generated argument vectors.
func PermissiveLimits() Limits {
	return Limits{
		MaxArrayElements:    65536,
		MaxOptionCount:      8192,
		MaxOptionNameLength: 256,
		MaxPositionalCount:  1 << 20,
		MaxCommandDepth:     64,
		MaxSuggestions:      5,
	}
}

// presetByName resolves a preset name from the limits file.
func presetByName(name string) (Limits, bool) {
	switch name {
	case "", "default":
		return DefaultLimits(), true
	case "restrictive":
		return RestrictiveLimits(), true
	case "permissive":
		return PermissiveLimits(), true
	}
	return Limits{}, false
}

// limitsFile is the YAML shape of a limits configuration file: a preset
// name plus per-field overrides.
type limitsFile struct {
	Preset    string `yaml:"preset"`
	Overrides Limits `yaml:"overrides"`
}

// LoadLimits reads a limits configuration from a YAML file.
//
// The file names a preset ("default", "restrictive", "permissive") and
// may override individual thresholds:
//
//	preset: restrictive
//	overrides:
//	  max_suggestions: 5
//
// Zero-valued override fields keep the preset value.
func LoadLimits(path string) (Limits, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Limits{}, errors.Wrap(err, ErrCodeInvalidLimits, "failed to read limits file").
			WithContext("path", path)
	}

	var file limitsFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return Limits{}, errors.Wrap(err, ErrCodeInvalidLimits, "failed to parse limits file").
			WithContext("path", path)
	}

	base, ok := presetByName(file.Preset)
	if !ok {
		return Limits{}, errors.New(ErrCodeInvalidLimits, "unknown limits preset '"+file.Preset+"'").
			WithContext("path", path)
	}
	base.apply(file.Overrides)

	if err := base.Validate(); err != nil {
		return Limits{}, err
	}
	return base, nil
}

// apply overlays non-zero override fields onto l.
func (l *Limits) apply(o Limits) {
	if o.MaxArrayElements > 0 {
		l.MaxArrayElements = o.MaxArrayElements
	}
	if o.MaxOptionCount > 0 {
		l.MaxOptionCount = o.MaxOptionCount
	}
	if o.MaxOptionNameLength > 0 {
		l.MaxOptionNameLength = o.MaxOptionNameLength
	}
	if o.MaxPositionalCount > 0 {
		l.MaxPositionalCount = o.MaxPositionalCount
	}
	if o.MaxCommandDepth > 0 {
		l.MaxCommandDepth = o.MaxCommandDepth
	}
	if o.MaxSuggestions > 0 {
		l.MaxSuggestions = o.MaxSuggestions
	}
}

// Validate rejects non-positive thresholds.
func (l Limits) Validate() error {
	checks := []struct {
		name  string
		value int
	}{
		{LimitArrayElements, l.MaxArrayElements},
		{LimitOptionCount, l.MaxOptionCount},
		{LimitOptionNameLength, l.MaxOptionNameLength},
		{LimitPositionalCount, l.MaxPositionalCount},
		{LimitCommandDepth, l.MaxCommandDepth},
		{LimitSuggestions, l.MaxSuggestions},
	}
	for _, c := range checks {
		if c.value <= 0 {
			return errors.New(ErrCodeInvalidLimits,
				fmt.Sprintf("limit %s must be positive, got %d", c.name, c.value))
		}
	}
	return nil
}
