// hermes: Typed command-line parsing and routing with structured diagnostics
//
// Philosophy:
// - Minimal dependencies (AGILira ecosystem only: go-errors, go-timecache)
// - Explicit schema descriptors instead of reflection
// - Zero-copy scalar values borrowed from the argument vector
// - Every failure is a structured, renderable Diagnostic
// - Static command tree, safe for unsynchronized concurrent reads
//
// Example Usage:
//   app := hermes.New("forge").
//       SetDescription("Container build tool").
//       SetVersion("1.0.0")
//
//   app.Command("run", "Run an image", runHandler).
//       WithArgs(hermes.MustSchema(
//           hermes.Field{Name: "image", Type: hermes.TypeString},
//       ))
//
//   if err := app.Run(os.Args[1:]); err != nil {
//       fmt.Fprintln(os.Stderr, err)
//       os.Exit(1)
//   }
//
// Copyright (c) 2025 AGILira - A. Giordano
// Series: an AGILira fragment
// SPDX-License-Identifier: MPL-2.0

package hermes

import (
	"fmt"
	"io"
	"os"
	"strings"
)

// Context is handed to every command handler. RawArgs is the slice of
// the original argument vector remaining after routing; Args and
// Options are populated when the command declares schemas.
type Context struct {
	App     *App
	Command *Command
	Path    []string // matched command path segments
	RawArgs []string // tokens remaining after routing

	Args      *ParsedArgs    // nil unless the command declares WithArgs
	Options   *ParsedOptions // nil unless the command declares WithOptions
	Remaining []string       // positional remainder after option extraction
}

// HelpHandler renders help for a resolution outcome. Help text wording
// and styling are external collaborators; the default handler prints a
// bare command listing.
type HelpHandler func(w io.Writer, app *App, res *Resolution) error

// App ties a command tree, resource limits and an optional audit trail
// into a runnable CLI application.
type App struct {
	name        string
	description string
	version     string
	tree        *Tree
	limits      Limits
	strictDup   bool
	audit       *AuditLogger
	helpHandler HelpHandler
	out         io.Writer
}

// New creates an application with an empty command tree and default
// limits.
func New(name string) *App {
	return &App{
		name:   name,
		tree:   NewTree(),
		limits: DefaultLimits(),
		out:    os.Stdout,
	}
}

// SetDescription sets the one-line application description.
func (a *App) SetDescription(description string) *App {
	a.description = description
	return a
}

// SetVersion sets the application version string.
func (a *App) SetVersion(version string) *App {
	a.version = version
	return a
}

// WithLimits replaces the resource limits consulted by every parse and
// route operation.
func (a *App) WithLimits(limits Limits) *App {
	a.limits = limits
	return a
}

// WithStrictDuplicates rejects repeated non-array options with an
// OptionDuplicate diagnostic instead of last-one-wins.
func (a *App) WithStrictDuplicates() *App {
	a.strictDup = true
	return a
}

// WithAudit enables the dispatch audit trail for all operations.
func (a *App) WithAudit(audit *AuditLogger) *App {
	a.audit = audit
	return a
}

// SetHelpHandler replaces the default help renderer.
func (a *App) SetHelpHandler(h HelpHandler) *App {
	a.helpHandler = h
	return a
}

// SetOutput redirects help output, primarily for tests.
func (a *App) SetOutput(w io.Writer) *App {
	a.out = w
	return a
}

// Name returns the application name.
func (a *App) Name() string { return a.name }

// Version returns the application version.
func (a *App) Version() string { return a.version }

// Description returns the application description.
func (a *App) Description() string { return a.description }

// Tree returns the command tree for direct construction.
func (a *App) Tree() *Tree { return a.tree }

// Command creates a top-level leaf command and returns it for schema
// attachment.
func (a *App) Command(name, description string, handler HandlerFunc) *Command {
	cmd := NewCommand(name, description, handler)
	a.tree.AddCommand(cmd)
	return cmd
}

// Group creates a top-level command group and returns it for child
// registration.
func (a *App) Group(name string) *Group {
	g := NewGroup(name)
	a.tree.AddGroup(g)
	return g
}

// parseConfig builds the ParseConfig for this app's settings.
func (a *App) parseConfig() ParseConfig {
	return ParseConfig{Limits: a.limits, StrictDuplicates: a.strictDup}
}

// Run resolves argv against the command tree and dispatches the matched
// leaf, parsing its declared schemas first. Routing and parse failures
// return the *Diagnostic (which implements error); handler errors pass
// through unchanged.
func (a *App) Run(argv []string) error {
	res, diag := a.tree.ResolveWith(argv, a.limits)
	if diag != nil {
		a.audit.LogDiagnostic("", diag)
		return diag
	}

	if res.Help || res.NoCommand {
		return a.renderHelp(res)
	}

	ctx := &Context{
		App:     a,
		Command: res.Command,
		Path:    res.Path,
		RawArgs: res.Rest,
	}
	commandPath := strings.Join(res.Path, " ")

	remaining := res.Rest
	if res.Command.optsSchema != nil {
		po, rest, d := ParseOptionsAndRemainingWith(res.Command.optsSchema, res.Rest, a.parseConfig())
		if d != nil {
			a.audit.LogDiagnostic(commandPath, d)
			return d
		}
		defer po.Release()
		ctx.Options = po
		ctx.Remaining = rest
		remaining = rest
	}
	if res.Command.argsSchema != nil {
		pa, d := ParseArgsWith(res.Command.argsSchema, remaining, a.limits)
		if d != nil {
			a.audit.LogDiagnostic(commandPath, d)
			return d
		}
		ctx.Args = pa
	}

	a.audit.LogDispatch(commandPath, len(res.Rest))
	if err := res.Command.handler(ctx); err != nil {
		a.audit.LogHandlerError(commandPath, err)
		return err
	}
	return nil
}

// renderHelp invokes the configured help collaborator, or prints the
// default bare listing.
func (a *App) renderHelp(res *Resolution) error {
	if a.helpHandler != nil {
		return a.helpHandler(a.out, a, res)
	}

	group := res.Group
	header := a.name
	if len(res.Path) > 0 {
		header += " " + strings.Join(res.Path, " ")
	}
	fmt.Fprintf(a.out, "usage: %s <command> [arguments]\n", header)
	if a.description != "" && len(res.Path) == 0 {
		fmt.Fprintf(a.out, "\n%s\n", a.description)
	}
	names := group.childNames()
	if len(names) > 0 {
		fmt.Fprintln(a.out, "\ncommands:")
		for _, name := range names {
			desc := ""
			if cmd, ok := group.children[name].(*Command); ok {
				desc = cmd.description
			}
			fmt.Fprintf(a.out, "  %-12s %s\n", name, desc)
		}
	}
	return nil
}
