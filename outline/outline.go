/*
Package outline loads indented text outlines as trees.

An outline holds one node per line. The indentation of a line gives its depth:
every tab counts as one level, and runs of spaces count in units of the
indentation of the first indented line. Blank lines are skipped.

	fruit
	    apple
	    pear
	        williams
	vegetables

A line may be indented at most one level deeper than its predecessor.
Lines on level 0 after the first one are an error, as a tree has a single
root.

_________________________________________________________________________

# BSD 3-Clause License

# Copyright (c) Norbert Pillmayer

All rights reserved.

Please refer to the LICENSE file for details.
*/
package outline

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/npillmayer/idtree"
	"github.com/npillmayer/schuko/tracing"
)

// tracer writes to trace with key 'idtree'
func tracer() tracing.Trace {
	return tracing.Select("idtree")
}

// LoadFile reads an outline from a text file.
func LoadFile(name string) (*idtree.Tree[string], error) {
	fi, err := os.Stat(name)
	if err != nil {
		return nil, err
	} else if !fi.Mode().IsRegular() {
		return nil, fmt.Errorf("%w: %s is not a regular file", idtree.ErrIllegalArguments, name)
	}
	file, err := os.Open(name) // just open for read access
	if err != nil {
		return nil, err
	}
	defer file.Close()
	tree, err := Load(file)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", name, err)
	}
	return tree, nil
}

// Load reads an outline from r. Node payloads are the lines' texts with
// indentation and trailing white space removed.
func Load(r io.Reader) (*idtree.Tree[string], error) {
	tree := idtree.New[string]()
	var path []idtree.NodeID // path[d] is the most recent node on level d
	unit := 0                // spaces per level, set by first space-indented line
	scanner := bufio.NewScanner(r)
	lineno := 0
	for scanner.Scan() {
		lineno++
		line := strings.TrimRight(scanner.Text(), " \t\r")
		if line == "" {
			continue
		}
		text := strings.TrimLeft(line, " \t")
		indent := line[:len(line)-len(text)]
		level, err := levelOf(indent, &unit)
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", lineno, err)
		}
		switch {
		case level == 0 && len(path) > 0:
			return nil, fmt.Errorf("%w: line %d: second root %q", idtree.ErrIllegalArguments, lineno, text)
		case level > len(path):
			return nil, fmt.Errorf("%w: line %d: indented too deep", idtree.ErrIllegalArguments, lineno)
		}
		behavior := idtree.AsRoot()
		if level > 0 {
			behavior = idtree.UnderNode(path[level-1])
		}
		id, err := tree.Insert(text, behavior)
		if err != nil {
			return nil, err
		}
		path = append(path[:level], id)
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	tracer().Debugf("outline: loaded %d nodes from %d lines", tree.Len(), lineno)
	return tree, nil
}

func levelOf(indent string, unit *int) (int, error) {
	tabs := strings.Count(indent, "\t")
	spaces := len(indent) - tabs
	if spaces == 0 {
		return tabs, nil
	}
	if *unit == 0 {
		*unit = spaces
	}
	if spaces%*unit != 0 {
		return 0, fmt.Errorf("%w: %d spaces do not match indentation unit %d",
			idtree.ErrIllegalArguments, spaces, *unit)
	}
	return tabs + spaces / *unit, nil
}
