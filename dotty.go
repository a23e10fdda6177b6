package idtree

import (
	"fmt"
	"io"
	"strings"
)

// Tree2Dot outputs the structure of a tree in Graphviz DOT format
// (for debugging purposes).
//
// Only nodes reachable from the root are written. label formats a node's
// payload; if it is nil, payloads are printed with %v.
func Tree2Dot[T any](tree *Tree[T], w io.Writer, label func(T) string) error {
	if tree == nil || w == nil {
		return ErrIllegalArguments
	}
	if label == nil {
		label = func(data T) string { return fmt.Sprintf("%v", data) }
	}
	var nodelist, edgelist strings.Builder
	if root, ok := tree.RootID(); ok {
		pre, err := tree.PreOrderIDs(root)
		if err != nil {
			tracer().Errorf("tree DOT: %s", err.Error())
			return err
		}
		for id := range pre.All() {
			n := tree.get(id)
			styles := nodeDotStyles(n.IsLeaf(), id == root)
			fmt.Fprintf(&nodelist, "\"%d\" [label=\"%s\"%s];\n", id.index, dotEscape(label(n.data)), styles)
			children, _ := tree.ChildIDs(id)
			for c := range children.All() {
				fmt.Fprintf(&edgelist, "\"%d\" -> \"%d\";\n", id.index, c.index)
			}
		}
	}
	io.WriteString(w, "strict digraph {\n")
	io.WriteString(w, "\tnode [fontname=Arial,fontsize=12];\n")
	io.WriteString(w, nodelist.String())
	io.WriteString(w, edgelist.String())
	_, err := io.WriteString(w, "}\n")
	return err
}

func nodeDotStyles(isleaf bool, isroot bool) string {
	s := ",style=filled"
	if isleaf {
		s += ",shape=box"
	} else {
		s += ",color=black,shape=circle"
	}
	if isroot {
		s += ",fillcolor=\"#FFBB88\""
	} else {
		s += ",fillcolor=\"#a3d7e4\""
	}
	return s
}

func dotEscape(s string) string {
	return strings.NewReplacer(`\`, `\\`, `"`, `\"`, "\n", `\n`).Replace(s)
}
