/*
Package termview draws an idtree.Tree to a terminal.

Nodes are printed one per line, connected by box-drawing characters:

	root
	├── left
	│   └── leaf
	└── right

Labels are colored by depth if the output supports it, and long labels are
truncated at grapheme boundaries, measuring display width with UAX#11.

_________________________________________________________________________

# BSD 3-Clause License

# Copyright (c) 2020–21, Norbert Pillmayer

Please refer to the LICENSE file for details.
*/
package termview

import (
	"fmt"
	"io"
	"os"

	"github.com/fatih/color"
	"github.com/npillmayer/idtree"
	"github.com/npillmayer/schuko/tracing"
	"github.com/npillmayer/uax/grapheme"
	"github.com/npillmayer/uax/uax11"
	"golang.org/x/term"
)

// tracer writes to trace with key 'idtree'
func tracer() tracing.Trace {
	return tracing.Select("idtree")
}

// Config holds parameters for drawing a tree.
type Config struct {
	LineWidth     int            // total width available, in fixed width ‘en’s
	MaxLabelWidth int            // labels wider than this are truncated; 0 means LineWidth
	Color         bool           // colorize labels by depth
	Context       *uax11.Context // context for measuring label widths
	Palette       []*color.Color // colors by depth, cycling; nil selects a default palette
}

// Connectors used to draw tree edges.
const (
	branch     = "├── "
	lastBranch = "└── "
	pipe       = "│   "
	blank      = "    "
	ellipsis   = "…"
)

// DefaultPalette returns the colors used for depths 0, 1, 2, … (cycling).
func DefaultPalette() []*color.Color {
	return []*color.Color{
		color.New(color.FgRed, color.Bold),
		color.New(color.FgBlue),
		color.New(color.FgGreen),
		color.New(color.FgMagenta),
		color.New(color.FgCyan),
	}
}

// Print draws tree to stdout.
//
// If parameter config is nil, a heuristic will create a config from the current
// terminal's properties (if stdout is interactive).
func Print[T any](tree *idtree.Tree[T], label func(T) string, config *Config) error {
	if config == nil {
		config = ConfigFromTerminal()
	}
	return Fprint(os.Stdout, tree, label, config)
}

// Fprint draws the part of tree reachable from its root to w.
// label formats a node's payload; if it is nil, payloads are printed with %v.
func Fprint[T any](w io.Writer, tree *idtree.Tree[T], label func(T) string, config *Config) error {
	if w == nil || tree == nil {
		return idtree.ErrIllegalArguments
	}
	if label == nil {
		label = func(data T) string { return fmt.Sprintf("%v", data) }
	}
	if config == nil {
		config = &Config{LineWidth: 72}
	} else if config.LineWidth <= 0 {
		cfg := *config
		cfg.LineWidth = 72
		config = &cfg
	}
	root, ok := tree.RootID()
	if !ok {
		return nil
	}
	grapheme.SetupGraphemeClasses()
	p := &printer[T]{
		w:      w,
		tree:   tree,
		label:  label,
		config: config,
	}
	if config.Context == nil {
		p.context = uax11.LatinContext
	} else {
		p.context = config.Context
	}
	if config.Color {
		p.palette = config.Palette
		if p.palette == nil {
			p.palette = DefaultPalette()
		}
	}
	return p.node(root, "", "", 0)
}

type printer[T any] struct {
	w       io.Writer
	tree    *idtree.Tree[T]
	label   func(T) string
	config  *Config
	context *uax11.Context
	palette []*color.Color
}

// node prints the node for id, prefixed by lead, then its children with
// indentation prefix.
func (p *printer[T]) node(id idtree.NodeID, lead, prefix string, depth int) error {
	n, err := p.tree.Get(id)
	if err != nil {
		return err
	}
	if _, err := io.WriteString(p.w, lead); err != nil {
		return err
	}
	avail := p.config.LineWidth - StringWidth(lead, p.context)
	if p.config.MaxLabelWidth > 0 && p.config.MaxLabelWidth < avail {
		avail = p.config.MaxLabelWidth
	}
	text := Truncate(p.label(n.Data()), avail, p.context)
	if len(p.palette) > 0 {
		p.palette[depth%len(p.palette)].Fprint(p.w, text)
	} else {
		io.WriteString(p.w, text)
	}
	if _, err := io.WriteString(p.w, "\n"); err != nil {
		return err
	}
	children, err := p.tree.ChildIDs(id)
	if err != nil {
		return err
	}
	child, ok := children.Next()
	for ok {
		next, more := children.Next()
		connector, indent := branch, pipe
		if !more {
			connector, indent = lastBranch, blank
		}
		if err := p.node(child, prefix+connector, prefix+indent, depth+1); err != nil {
			return err
		}
		child, ok = next, more
	}
	return nil
}

// StringWidth returns the display width of s in fixed width ‘en’s.
func StringWidth(s string, context *uax11.Context) int {
	if s == "" {
		return 0
	}
	if context == nil {
		context = uax11.LatinContext
	}
	return uax11.StringWidth(grapheme.StringFromString(s), context)
}

// Truncate shortens s to at most width ‘en’s, cutting at a grapheme boundary
// and marking the cut with an ellipsis.
func Truncate(s string, width int, context *uax11.Context) string {
	if width <= 0 || s == "" {
		return ""
	}
	if StringWidth(s, context) <= width {
		return s
	}
	gstr := grapheme.StringFromString(s)
	out, w := "", 0
	for i := 0; i < gstr.Len(); i++ {
		g := gstr.Nth(i)
		gw := StringWidth(g, context)
		if w+gw+1 > width {
			break
		}
		out += g
		w += gw
	}
	tracer().Debugf("termview: truncated label %q to %q", s, out)
	return out + ellipsis
}

// --- Config for terminals --------------------------------------------------

// ConfigFromTerminal is a simple helper for creating a drawing Config.
// It checks wether stdout is a terminal, and if so it reads the terminal's width
// and sets the Config.LineWidth parameter accordingly. Color is switched on
// for terminals only.
func ConfigFromTerminal() *Config {
	config := &Config{}
	fd := int(os.Stdout.Fd())
	if term.IsTerminal(fd) {
		config.Color = !color.NoColor
		w, _, err := term.GetSize(fd)
		if err != nil || w < 20 {
			config.LineWidth = 72
		} else {
			config.LineWidth = w
		}
	} else {
		config.LineWidth = 72
	}
	config.Context = uax11.ContextFromEnvironment()
	tracer().P("view", "terminal").Infof("setting line width to %d en", config.LineWidth)
	return config
}
