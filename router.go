// router.go: Command tree resolution and dispatch for Hermes
//
// The command tree is a static hierarchy of leaf commands and groups
// (with optional index leaves), built once at startup and read-only
// afterwards, so concurrent resolutions need no locking. Resolution
// walks path segments left to right, short-circuits on help requests,
// and produces not-found diagnostics with bounded edit-distance
// suggestions computed over sibling names.
//
// Copyright (c) 2025 AGILira - A. Giordano
// Series: an AGILira fragment
// SPDX-License-Identifier: MPL-2.0

package hermes

import (
	"sort"
	"strings"
)

// HandlerFunc is the signature of a leaf command handler. The handler is
// user-authored and external to the routing core; the router's contract
// ends at invoking it with the correctly sliced remaining arguments.
type HandlerFunc func(ctx *Context) error

// Command is a leaf of the command tree: a named, executable handler
// with optional argument and option schemas that the dispatcher parses
// before invoking it.
type Command struct {
	name        string
	description string
	handler     HandlerFunc
	argsSchema  *Schema
	optsSchema  *Schema
}

// NewCommand creates a leaf command.
func NewCommand(name, description string, handler HandlerFunc) *Command {
	return &Command{name: name, description: description, handler: handler}
}

// WithArgs attaches a positional schema; the dispatcher parses the
// remaining tokens against it and exposes the result on the Context.
func (c *Command) WithArgs(s *Schema) *Command {
	c.argsSchema = s
	return c
}

// WithOptions attaches an option schema; see WithArgs.
func (c *Command) WithOptions(s *Schema) *Command {
	c.optsSchema = s
	return c
}

// Name returns the command's name.
func (c *Command) Name() string { return c.name }

// Description returns the command's one-line description.
func (c *Command) Description() string { return c.description }

// treeNode is the closed node union: *Command or *Group.
type treeNode interface {
	nodeName() string
}

func (c *Command) nodeName() string { return c.name }
func (g *Group) nodeName() string   { return g.name }

// Group is an interior node: a name-to-child mapping plus an optional
// index leaf executed when the group is addressed with no further
// segments.
type Group struct {
	name     string
	index    *Command
	children map[string]treeNode
	order    []string
}

// NewGroup creates an empty group.
func NewGroup(name string) *Group {
	return &Group{name: name, children: make(map[string]treeNode)}
}

// SetIndex installs the group's index leaf.
func (g *Group) SetIndex(cmd *Command) *Group {
	g.index = cmd
	return g
}

// AddCommand adds a leaf child. Later additions under the same name
// replace earlier ones.
func (g *Group) AddCommand(cmd *Command) *Group {
	g.put(cmd.name, cmd)
	return g
}

// AddGroup adds a nested group child.
func (g *Group) AddGroup(sub *Group) *Group {
	g.put(sub.name, sub)
	return g
}

func (g *Group) put(name string, n treeNode) {
	if _, exists := g.children[name]; !exists {
		g.order = append(g.order, name)
	}
	g.children[name] = n
}

// pruned reports whether the group is considered absent: no index leaf
// and no live children.
func (g *Group) pruned() bool {
	if g.index != nil {
		return false
	}
	for _, child := range g.children {
		if sub, ok := child.(*Group); ok {
			if !sub.pruned() {
				return false
			}
			continue
		}
		return false
	}
	return true
}

// childNames returns the names of live children in declaration order.
func (g *Group) childNames() []string {
	names := make([]string, 0, len(g.order))
	for _, name := range g.order {
		if sub, ok := g.children[name].(*Group); ok && sub.pruned() {
			continue
		}
		names = append(names, name)
	}
	return names
}

// Tree is the routing root. Build once, then treat as read-only; safe
// for unsynchronized concurrent resolution.
type Tree struct {
	root *Group
}

// NewTree creates an empty command tree.
func NewTree() *Tree {
	return &Tree{root: NewGroup("")}
}

// Root returns the root group for tree construction.
func (t *Tree) Root() *Group { return t.root }

// AddCommand adds a top-level leaf command.
func (t *Tree) AddCommand(cmd *Command) *Tree {
	t.root.AddCommand(cmd)
	return t
}

// AddGroup adds a top-level group.
func (t *Tree) AddGroup(g *Group) *Tree {
	t.root.AddGroup(g)
	return t
}

// SetIndex installs the root index leaf, executed when the tree is
// addressed with no command at all.
func (t *Tree) SetIndex(cmd *Command) *Tree {
	t.root.SetIndex(cmd)
	return t
}

// Resolution is the outcome of walking the tree over an argument
// vector. Exactly one of the following holds:
//   - Command != nil: a leaf matched; Rest holds its raw arguments.
//   - Help: a help request short-circuited at Group.
//   - NoCommand: a group (or the root) was addressed with no further
//     segments and has no index leaf. Surfaced for help-style handling,
//     not a hard failure.
type Resolution struct {
	Command   *Command
	Group     *Group
	Path      []string
	Rest      []string
	Help      bool
	NoCommand bool
}

// helpSegment reports whether seg spells a help request rather than a
// child name.
func helpSegment(seg string) bool {
	return seg == "help" || seg == "--help" || seg == "-h"
}

// Resolve walks the tree over argv with the default limits.
func (t *Tree) Resolve(argv []string) (*Resolution, *Diagnostic) {
	return t.ResolveWith(argv, DefaultLimits())
}

// ResolveWith walks the tree over argv. Leading tokens are consumed as
// path segments until a leaf matches, an option-looking token appears,
// or the segments run out; the remainder is returned untouched for the
// matched leaf's own parsers.
func (t *Tree) ResolveWith(argv []string, limits Limits) (*Resolution, *Diagnostic) {
	group := t.root
	path := make([]string, 0, 4)
	segs := argv

	for depth := 0; ; depth++ {
		if depth > limits.MaxCommandDepth {
			return nil, limitDiagnostic(LimitCommandDepth, limits.MaxCommandDepth, depth)
		}

		// Out of segments, or the next token is option syntax that can
		// never name a child: the group itself is the destination.
		if len(segs) == 0 || isOptionToken(segs[0]) && !helpSegment(segs[0]) {
			if group.index != nil {
				return &Resolution{Command: group.index, Group: group, Path: path, Rest: segs}, nil
			}
			return &Resolution{Group: group, Path: path, NoCommand: true, Rest: segs}, nil
		}

		seg := segs[0]

		// Help short-circuit: only when the spelling is not an actual
		// child name.
		if _, isChild := group.children[seg]; !isChild && helpSegment(seg) {
			return &Resolution{Group: group, Path: path, Help: true, Rest: segs[1:]}, nil
		}

		child, ok := group.children[seg]
		if !ok {
			return nil, t.notFound(group, path, seg, limits)
		}

		switch node := child.(type) {
		case *Command:
			return &Resolution{Command: node, Group: group, Path: append(path, seg), Rest: segs[1:]}, nil

		case *Group:
			if node.pruned() {
				return nil, t.notFound(group, path, seg, limits)
			}
			group = node
			path = append(path, seg)
			segs = segs[1:]
		}
	}
}

// notFound builds the CommandNotFound / SubcommandNotFound diagnostic
// with sibling-name suggestions.
func (t *Tree) notFound(group *Group, path []string, attempted string, limits Limits) *Diagnostic {
	suggestions := suggestNames(attempted, group.childNames(), limits.MaxSuggestions)
	if len(path) == 0 {
		return &Diagnostic{
			Kind:        KindCommandNotFound,
			Attempted:   attempted,
			Suggestions: suggestions,
		}
	}
	return &Diagnostic{
		Kind:        KindSubcommandNotFound,
		Attempted:   attempted,
		ParentPath:  strings.Join(path, " "),
		Suggestions: suggestions,
	}
}

// suggestNames returns up to max candidate names within edit distance 2
// of attempted, closest first, ties broken alphabetically.
func suggestNames(attempted string, candidates []string, max int) []string {
	type scored struct {
		name string
		dist int
	}
	matches := make([]scored, 0, len(candidates))
	for _, name := range candidates {
		if d := editDistance(attempted, name); d <= 2 {
			matches = append(matches, scored{name, d})
		}
	}
	sort.Slice(matches, func(i, j int) bool {
		if matches[i].dist != matches[j].dist {
			return matches[i].dist < matches[j].dist
		}
		return matches[i].name < matches[j].name
	})
	if len(matches) > max {
		matches = matches[:max]
	}
	out := make([]string, len(matches))
	for i, m := range matches {
		out[i] = m.name
	}
	return out
}

// editDistance computes the Levenshtein distance with a two-row table.
func editDistance(a, b string) int {
	if a == b {
		return 0
	}
	if len(a) == 0 {
		return len(b)
	}
	if len(b) == 0 {
		return len(a)
	}

	prev := make([]int, len(b)+1)
	curr := make([]int, len(b)+1)
	for j := range prev {
		prev[j] = j
	}
	for i := 1; i <= len(a); i++ {
		curr[0] = i
		for j := 1; j <= len(b); j++ {
			cost := 1
			if a[i-1] == b[j-1] {
				cost = 0
			}
			curr[j] = minInt(prev[j]+1, curr[j-1]+1, prev[j-1]+cost)
		}
		prev, curr = curr, prev
	}
	return prev[len(b)]
}

func minInt(a, b, c int) int {
	if b < a {
		a = b
	}
	if c < a {
		a = c
	}
	return a
}
