// hermes-demo: Example CLI built on the Hermes parsing and routing core
//
// A container-runner shaped demo exercising groups, index commands,
// interleaved options and positionals, varargs capture and the audit
// trail.
//
// Copyright (c) 2025 AGILira - A. Giordano
// Series: an AGILira fragment
// SPDX-License-Identifier: MPL-2.0

package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/agilira/hermes"
)

var runArgs = hermes.MustSchema(
	hermes.Field{Name: "image", Type: hermes.TypeString},
	hermes.Field{Name: "command", Type: hermes.TypeString, Optional: true},
	hermes.Field{Name: "args", Type: hermes.TypeString, Varargs: true},
)

var runOpts = hermes.MustSchema(
	hermes.Field{Name: "name", Type: hermes.TypeString, Optional: true},
	hermes.Field{Name: "volume", Type: hermes.TypeString, Array: true, Short: 'v'},
	hermes.Field{Name: "detach", Type: hermes.TypeBool, Short: 'd'},
	hermes.Field{Name: "memory_limit", Type: hermes.TypeString, LongName: "memory", Optional: true},
)

var buildOpts = hermes.MustSchema(
	hermes.Field{Name: "tag", Type: hermes.TypeString, Short: 't', Optional: true},
	hermes.Field{Name: "quiet", Type: hermes.TypeBool, Short: 'q'},
	hermes.Field{Name: "build_arg", Type: hermes.TypeString, Array: true},
)

func main() {
	app := hermes.New("hermes-demo").
		SetDescription("Demonstration CLI for the Hermes parsing core").
		SetVersion("1.0.0")

	if os.Getenv("HERMES_DEMO_AUDIT") != "" {
		audit, err := hermes.NewAuditLogger(hermes.AuditConfig{
			Enabled:    true,
			OutputFile: os.Getenv("HERMES_DEMO_AUDIT"),
			BufferSize: 64,
		})
		if err != nil {
			fmt.Fprintln(os.Stderr, "audit disabled:", err)
		} else {
			defer func() { _ = audit.Close() }()
			app.WithAudit(audit)
		}
	}

	app.Command("run", "Run a container image", handleRun).
		WithArgs(runArgs).
		WithOptions(runOpts)

	app.Command("build", "Build an image from a context directory", handleBuild).
		WithArgs(hermes.MustSchema(
			hermes.Field{Name: "context", Type: hermes.TypeString, HasDefault: true,
				Default: hermes.StringValue(".")},
		)).
		WithOptions(buildOpts)

	volumes := hermes.NewGroup("volume").
		SetIndex(hermes.NewCommand("volume", "List volumes", handleVolumeList))
	volumes.AddCommand(hermes.NewCommand("create", "Create a volume", handleVolumeCreate).
		WithArgs(hermes.MustSchema(hermes.Field{Name: "name", Type: hermes.TypeString})))
	volumes.AddCommand(hermes.NewCommand("rm", "Remove a volume", handleVolumeRemove).
		WithArgs(hermes.MustSchema(hermes.Field{Name: "names", Type: hermes.TypeString, Varargs: true})))
	app.Tree().AddGroup(volumes)

	if err := app.Run(os.Args[1:]); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func handleRun(ctx *hermes.Context) error {
	fmt.Printf("running image %q\n", ctx.Args.String("image"))
	if cmd := ctx.Args.String("command"); cmd != "" {
		fmt.Printf("  command: %s %s\n", cmd, strings.Join(ctx.Args.Varargs(), " "))
	}
	if name := ctx.Options.String("name"); name != "" {
		fmt.Printf("  name: %s\n", name)
	}
	for _, v := range ctx.Options.Strings("volume") {
		fmt.Printf("  volume: %s\n", v)
	}
	if ctx.Options.Bool("detach") {
		fmt.Println("  detached")
	}
	return nil
}

func handleBuild(ctx *hermes.Context) error {
	fmt.Printf("building %q\n", ctx.Args.String("context"))
	if tag := ctx.Options.String("tag"); tag != "" {
		fmt.Printf("  tag: %s\n", tag)
	}
	for _, arg := range ctx.Options.Strings("build_arg") {
		fmt.Printf("  build-arg: %s\n", arg)
	}
	return nil
}

func handleVolumeList(ctx *hermes.Context) error {
	fmt.Println("volumes: (none)")
	return nil
}

func handleVolumeCreate(ctx *hermes.Context) error {
	fmt.Printf("created volume %q\n", ctx.Args.String("name"))
	return nil
}

func handleVolumeRemove(ctx *hermes.Context) error {
	for _, name := range ctx.Args.Varargs() {
		fmt.Printf("removed volume %q\n", name)
	}
	return nil
}
