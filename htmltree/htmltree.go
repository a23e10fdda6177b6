/*
Package htmltree converts HTML documents into arena-indexed trees.

The DOM produced by golang.org/x/net/html links nodes by pointers. Package
htmltree copies it into an idtree.Tree, so elements can be addressed by
idtree.NodeIDs and walked with the idtree traversal adapters.

_________________________________________________________________________

# BSD 3-Clause License

# Copyright (c) 2020–21, Norbert Pillmayer

Please refer to the LICENSE file for details.
*/
package htmltree

import (
	"fmt"
	"io"
	"slices"
	"strings"

	"github.com/npillmayer/idtree"
	"github.com/npillmayer/schuko/tracing"
	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// tracer writes to trace with key 'idtree'
func tracer() tracing.Trace {
	return tracing.Select("idtree")
}

// Element is the payload of a tree node. It mirrors the fields of an
// html.Node which do not describe links.
type Element struct {
	Type html.NodeType
	Data string // tag name for elements, content for text and comments
	Attr []html.Attribute
}

// Attribute returns the value of attribute key of e.
func (e Element) Attribute(key string) (string, bool) {
	for _, a := range e.Attr {
		if a.Key == key {
			return a.Val, true
		}
	}
	return "", false
}

func (e Element) String() string {
	switch e.Type {
	case html.ElementNode:
		return "<" + e.Data + ">"
	case html.TextNode:
		return fmt.Sprintf("%q", e.Data)
	case html.DocumentNode:
		return "#document"
	case html.CommentNode:
		return "<!--" + e.Data + "-->"
	case html.DoctypeNode:
		return "<!DOCTYPE " + e.Data + ">"
	}
	return "?"
}

// Parse reads a complete HTML document from input. The root of the resulting
// tree is the document node.
func Parse(input io.Reader) (*idtree.Tree[Element], error) {
	doc, err := html.Parse(input)
	if err != nil {
		return nil, err
	}
	tree := idtree.New[Element]()
	root, err := tree.Insert(elementOf(doc), idtree.AsRoot())
	if err != nil {
		return nil, err
	}
	if err := copyChildren(tree, root, doc); err != nil {
		return nil, err
	}
	tracer().Debugf("htmltree: parsed document into %d nodes", tree.Len())
	return tree, nil
}

// ParseFragment reads an HTML fragment from input, in the context of a
// <body> element. The top-level nodes of the fragment are placed below a
// synthetic document node, which becomes the root of the resulting tree.
func ParseFragment(input io.Reader) (*idtree.Tree[Element], error) {
	body := &html.Node{
		Type:     html.ElementNode,
		Data:     "body",
		DataAtom: atom.Body,
	}
	nodes, err := html.ParseFragment(input, body)
	if err != nil {
		return nil, err
	}
	tree := idtree.New[Element]()
	root, err := tree.Insert(Element{Type: html.DocumentNode}, idtree.AsRoot())
	if err != nil {
		return nil, err
	}
	for _, n := range nodes {
		if err := copyNode(tree, root, n); err != nil {
			return nil, err
		}
	}
	return tree, nil
}

func elementOf(n *html.Node) Element {
	return Element{
		Type: n.Type,
		Data: n.Data,
		Attr: slices.Clone(n.Attr),
	}
}

func copyNode(tree *idtree.Tree[Element], parent idtree.NodeID, n *html.Node) error {
	id, err := tree.Insert(elementOf(n), idtree.UnderNode(parent))
	if err != nil {
		return err
	}
	return copyChildren(tree, id, n)
}

func copyChildren(tree *idtree.Tree[Element], id idtree.NodeID, n *html.Node) error {
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if err := copyNode(tree, id, c); err != nil {
			return err
		}
	}
	return nil
}

// InnerText returns the textual content of the node denoted by id and all
// its descendents, in document order. It resembles
//
//	document.getElementById("myNode").innerText
//
// in JavaScript (except that InnerText cannot respect CSS styling suppressing
// the visibility of the node's descendents).
func InnerText(tree *idtree.Tree[Element], id idtree.NodeID) (string, error) {
	pre, err := tree.PreOrderIDs(id)
	if err != nil {
		return "", err
	}
	var b strings.Builder
	for d := range pre.All() {
		n, err := tree.Get(d)
		if err != nil {
			return "", err
		}
		if n.Data().Type == html.TextNode {
			b.WriteString(n.Data().Data)
		}
	}
	return b.String(), nil
}

// Path returns the tag names of the elements enclosing the node denoted by id,
// from the outermost element down to the node itself (if it is an element).
func Path(tree *idtree.Tree[Element], id idtree.NodeID) ([]string, error) {
	n, err := tree.Get(id)
	if err != nil {
		return nil, err
	}
	var path []string
	if n.Data().Type == html.ElementNode {
		path = append(path, n.Data().Data)
	}
	anc, err := tree.Ancestors(id)
	if err != nil {
		return nil, err
	}
	for a := range anc.All() {
		if a.Data().Type == html.ElementNode {
			path = append(path, a.Data().Data)
		}
	}
	slices.Reverse(path)
	return path, nil
}

// FindAll returns the identifiers of all elements with tag name tag, in
// document order.
func FindAll(tree *idtree.Tree[Element], tag string) []idtree.NodeID {
	root, ok := tree.RootID()
	if !ok {
		return nil
	}
	pre, err := tree.PreOrderIDs(root)
	if err != nil {
		return nil
	}
	var found []idtree.NodeID
	for id := range pre.All() {
		n, _ := tree.Get(id)
		if e := n.Data(); e.Type == html.ElementNode && e.Data == tag {
			found = append(found, id)
		}
	}
	return found
}

// ChildElements returns the identifiers of the element children of the node
// denoted by id, skipping text and comment nodes.
func ChildElements(tree *idtree.Tree[Element], id idtree.NodeID) ([]idtree.NodeID, error) {
	children, err := tree.ChildIDs(id)
	if err != nil {
		return nil, err
	}
	var elems []idtree.NodeID
	for c := range children.All() {
		n, err := tree.Get(c)
		if err != nil {
			return nil, err
		}
		if n.Data().Type == html.ElementNode {
			elems = append(elems, c)
		}
	}
	return elems, nil
}
