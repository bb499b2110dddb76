// diagnostics.go: Structured error and diagnostic model for Hermes
//
// Every parsing and routing failure in Hermes is a Diagnostic: a single
// rich type whose Kind discriminant is cheap to compare and propagate,
// while the payload fields carry everything needed to render a
// user-facing message without re-deriving context. This collapses the
// classic "cheap tag enum + rich diagnostic union kept in sync" design
// into one type with a structural guarantee: kindCodes and kindRenderers
// are total over Kind, and the test suite asserts exhaustiveness.
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

// Error codes for Hermes operations.
//
// Parse-time diagnostics and construction-time errors share this single
// namespace so callers can switch on codes uniformly.
const (
	ErrCodeArgumentMissingRequired = "HERMES_ARGUMENT_MISSING_REQUIRED"
	ErrCodeArgumentInvalidValue    = "HERMES_ARGUMENT_INVALID_VALUE"
	ErrCodeArgumentTooMany         = "HERMES_ARGUMENT_TOO_MANY"
	ErrCodeOptionUnknown           = "HERMES_OPTION_UNKNOWN"
	ErrCodeOptionMissingValue      = "HERMES_OPTION_MISSING_VALUE"
	ErrCodeOptionInvalidValue      = "HERMES_OPTION_INVALID_VALUE"
	ErrCodeOptionBooleanWithValue  = "HERMES_OPTION_BOOLEAN_WITH_VALUE"
	ErrCodeOptionDuplicate         = "HERMES_OPTION_DUPLICATE"
	ErrCodeCommandNotFound         = "HERMES_COMMAND_NOT_FOUND"
	ErrCodeSubcommandNotFound      = "HERMES_SUBCOMMAND_NOT_FOUND"
	ErrCodeResourceLimitExceeded   = "HERMES_RESOURCE_LIMIT_EXCEEDED"
	ErrCodeOutOfMemory             = "HERMES_OUT_OF_MEMORY"

	ErrCodeInvalidSchema = "HERMES_INVALID_SCHEMA"
	ErrCodeInvalidLimits = "HERMES_INVALID_LIMITS"
	ErrCodeInvalidTree   = "HERMES_INVALID_TREE"
	ErrCodeInvalidAudit  = "HERMES_INVALID_AUDIT_CONFIG"
)

// Kind is the cheap discriminant of a Diagnostic.
type Kind int

const (
	KindArgumentMissingRequired Kind = iota
	KindArgumentInvalidValue
	KindArgumentTooMany
	KindOptionUnknown
	KindOptionMissingValue
	KindOptionInvalidValue
	KindOptionBooleanWithValue
	KindOptionDuplicate
	KindCommandNotFound
	KindSubcommandNotFound
	KindResourceLimitExceeded
	KindOutOfMemory

	// kindSentinel bounds the Kind space for exhaustiveness checks.
	kindSentinel
)

// kindCodes maps every Kind to its error code. Total over Kind;
// diagnostics_test.go walks the Kind space and fails on any gap.
var kindCodes = map[Kind]string{
	KindArgumentMissingRequired: ErrCodeArgumentMissingRequired,
	KindArgumentInvalidValue:    ErrCodeArgumentInvalidValue,
	KindArgumentTooMany:         ErrCodeArgumentTooMany,
	KindOptionUnknown:           ErrCodeOptionUnknown,
	KindOptionMissingValue:      ErrCodeOptionMissingValue,
	KindOptionInvalidValue:      ErrCodeOptionInvalidValue,
	KindOptionBooleanWithValue:  ErrCodeOptionBooleanWithValue,
	KindOptionDuplicate:         ErrCodeOptionDuplicate,
	KindCommandNotFound:         ErrCodeCommandNotFound,
	KindSubcommandNotFound:      ErrCodeSubcommandNotFound,
	KindResourceLimitExceeded:   ErrCodeResourceLimitExceeded,
	KindOutOfMemory:             ErrCodeOutOfMemory,
}

func (k Kind) String() string {
	if code, ok := kindCodes[k]; ok {
		return code
	}
	return "HERMES_UNKNOWN"
}

// Diagnostic is the rich failure description produced by every parser
// and router operation.
//
// Only the fields relevant to the Kind are populated; see the renderer
// table for which payload each kind consumes. Provided values may borrow
// from the raw argument vector, so a Diagnostic must not outlive the
// argv it was produced from unless the caller copies the strings first.
type Diagnostic struct {
	Kind Kind

	// Argument payload.
	Field    string // schema field name
	Position int    // zero-based field position
	Expected string // expected type name
	Provided string // offending raw token

	// Counts for ArgumentTooMany and ResourceLimitExceeded.
	ExpectedCount int
	ActualCount   int

	// Option payload.
	Option  string // option name as provided, without dashes
	IsShort bool   // true when spelled with a single dash

	// Routing payload.
	Attempted   string   // attempted command name
	ParentPath  string   // space-joined path of the parent group
	Suggestions []string // bounded "did you mean" candidates

	// Limit payload.
	Limit string // name of the exceeded limit
}

// kindRenderers maps every Kind to its message renderer. Total over
// Kind, enforced by the same exhaustiveness test as kindCodes.
var kindRenderers = map[Kind]func(*Diagnostic) string{
	KindArgumentMissingRequired: func(d *Diagnostic) string {
		return fmt.Sprintf("missing required argument %q at position %d (expected %s)",
			d.Field, d.Position, d.Expected)
	},
	KindArgumentInvalidValue: func(d *Diagnostic) string {
		return fmt.Sprintf("invalid value %q for argument %q at position %d (expected %s)",
			d.Provided, d.Field, d.Position, d.Expected)
	},
	KindArgumentTooMany: func(d *Diagnostic) string {
		return fmt.Sprintf("too many arguments: expected %d, got %d",
			d.ExpectedCount, d.ActualCount)
	},
	KindOptionUnknown: func(d *Diagnostic) string {
		return fmt.Sprintf("unknown option %s%s", d.dashes(), d.Option)
	},
	KindOptionMissingValue: func(d *Diagnostic) string {
		return fmt.Sprintf("option %s%s requires a value", d.dashes(), d.Option)
	},
	KindOptionInvalidValue: func(d *Diagnostic) string {
		return fmt.Sprintf("invalid value %q for option %s%s (expected %s)",
			d.Provided, d.dashes(), d.Option, d.Expected)
	},
	KindOptionBooleanWithValue: func(d *Diagnostic) string {
		return fmt.Sprintf("boolean option %s%s does not take a value", d.dashes(), d.Option)
	},
	KindOptionDuplicate: func(d *Diagnostic) string {
		return fmt.Sprintf("option %s%s provided more than once", d.dashes(), d.Option)
	},
	KindCommandNotFound: func(d *Diagnostic) string {
		return fmt.Sprintf("unknown command %q", d.Attempted)
	},
	KindSubcommandNotFound: func(d *Diagnostic) string {
		return fmt.Sprintf("unknown subcommand %q of %q", d.Attempted, d.ParentPath)
	},
	KindResourceLimitExceeded: func(d *Diagnostic) string {
		return fmt.Sprintf("resource limit %q exceeded: %d > %d",
			d.Limit, d.ActualCount, d.ExpectedCount)
	},
	KindOutOfMemory: func(d *Diagnostic) string {
		return "out of memory during parse accumulation"
	},
}

func (d *Diagnostic) dashes() string {
	if d.IsShort {
		return "-"
	}
	return "--"
}

// Code returns the stable error code for the diagnostic's kind.
func (d *Diagnostic) Code() string { return d.Kind.String() }

// Message renders the human-readable message, including up to the
// already-bounded suggestion list where one was computed.
func (d *Diagnostic) Message() string {
	render, ok := kindRenderers[d.Kind]
	if !ok {
		return "unknown diagnostic"
	}
	msg := render(d)
	if len(d.Suggestions) > 0 {
		msg += " (did you mean " + strings.Join(d.Suggestions, ", ") + "?)"
	}
	return msg
}

// Error implements the error interface with the argus-style
// "[CODE]: message" format.
func (d *Diagnostic) Error() string {
	return "[" + d.Code() + "]: " + d.Message()
}

// Err converts the diagnostic into a coded go-errors error carrying the
// full payload as context, for callers that propagate a uniform error
// type instead of the concrete Diagnostic.
func (d *Diagnostic) Err() error {
	e := d.coded()
	if d.Field != "" {
		e = e.WithContext("field", d.Field).WithContext("position", d.Position)
	}
	if d.Option != "" {
		e = e.WithContext("option", d.Option).WithContext("short", d.IsShort)
	}
	if d.Provided != "" {
		e = e.WithContext("provided", d.Provided)
	}
	if d.Attempted != "" {
		e = e.WithContext("attempted", d.Attempted)
	}
	if len(d.Suggestions) > 0 {
		e = e.WithContext("suggestions", strings.Join(d.Suggestions, ","))
	}
	if d.Limit != "" {
		e = e.WithContext("limit", d.Limit)
	}
	return e
}

// coded builds the go-errors value for the diagnostic's kind. Spelled
// as a switch over code constants so each arm stays greppable by code.
func (d *Diagnostic) coded() *errors.Error {
	msg := d.Message()
	switch d.Kind {
	case KindArgumentMissingRequired:
		return errors.New(ErrCodeArgumentMissingRequired, msg)
	case KindArgumentInvalidValue:
		return errors.New(ErrCodeArgumentInvalidValue, msg)
	case KindArgumentTooMany:
		return errors.New(ErrCodeArgumentTooMany, msg)
	case KindOptionUnknown:
		return errors.New(ErrCodeOptionUnknown, msg)
	case KindOptionMissingValue:
		return errors.New(ErrCodeOptionMissingValue, msg)
	case KindOptionInvalidValue:
		return errors.New(ErrCodeOptionInvalidValue, msg)
	case KindOptionBooleanWithValue:
		return errors.New(ErrCodeOptionBooleanWithValue, msg)
	case KindOptionDuplicate:
		return errors.New(ErrCodeOptionDuplicate, msg)
	case KindCommandNotFound:
		return errors.New(ErrCodeCommandNotFound, msg)
	case KindSubcommandNotFound:
		return errors.New(ErrCodeSubcommandNotFound, msg)
	case KindResourceLimitExceeded:
		return errors.New(ErrCodeResourceLimitExceeded, msg)
	case KindOutOfMemory:
		return errors.New(ErrCodeOutOfMemory, msg)
	}
	return errors.New(ErrCodeInvalidSchema, msg)
}

// limitDiagnostic builds a ResourceLimitExceeded diagnostic for the
// named limit with its threshold and the observed count.
func limitDiagnostic(limit string, max, actual int) *Diagnostic {
	return &Diagnostic{
		Kind:          KindResourceLimitExceeded,
		Limit:         limit,
		ExpectedCount: max,
		ActualCount:   actual,
	}
}
