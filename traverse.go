package idtree

import (
	"iter"
	"slices"
)

// Ancestors iterates over the ancestor nodes of a node, from the immediate
// parent up to the root.
//
// Usage:
//
//	anc, err := tree.Ancestors(id)
//	...
//	for n, ok := anc.Next(); ok; n, ok = anc.Next() {
//		... n.Data() ...
//	}
type Ancestors[T any] struct {
	tree    *Tree[T]
	current NodeID // zero once exhausted
}

// Ancestors creates an iterator over the ancestors of the node denoted by id.
// Starting at the root yields an empty sequence.
func (t *Tree[T]) Ancestors(id NodeID) (*Ancestors[T], error) {
	if err := t.validate(id); err != nil {
		return nil, err
	}
	return &Ancestors[T]{tree: t, current: id}, nil
}

// Next moves one level up and returns the parent node. If the root has been
// passed, ok is false, for this and all subsequent calls.
func (a *Ancestors[T]) Next() (node *Node[T], ok bool) {
	if a == nil || a.current.IsZero() {
		return nil, false
	}
	parent, ok := a.tree.get(a.current).Parent()
	if !ok {
		a.current = NodeID{}
		return nil, false
	}
	a.current = parent
	return a.tree.get(parent), true
}

// All returns the remaining ancestors as a sequence for range loops.
// Ranging consumes a.
func (a *Ancestors[T]) All() iter.Seq[*Node[T]] {
	return func(yield func(*Node[T]) bool) {
		for n, ok := a.Next(); ok; n, ok = a.Next() {
			if !yield(n) {
				return
			}
		}
	}
}

// AncestorIDs iterates over the identifiers of the ancestors of a node, from
// the immediate parent up to the root.
type AncestorIDs[T any] struct {
	tree    *Tree[T]
	current NodeID // zero once exhausted
}

// AncestorIDs creates an iterator over the ancestor identifiers of the node
// denoted by id.
func (t *Tree[T]) AncestorIDs(id NodeID) (*AncestorIDs[T], error) {
	if err := t.validate(id); err != nil {
		return nil, err
	}
	return &AncestorIDs[T]{tree: t, current: id}, nil
}

// Next moves one level up and returns the parent's identifier. If the root
// has been passed, ok is false, for this and all subsequent calls.
func (a *AncestorIDs[T]) Next() (id NodeID, ok bool) {
	if a == nil || a.current.IsZero() {
		return NodeID{}, false
	}
	parent, ok := a.tree.get(a.current).Parent()
	if !ok {
		a.current = NodeID{}
		return NodeID{}, false
	}
	a.current = parent
	return parent, true
}

// All returns the remaining ancestor identifiers as a sequence for range loops.
// Ranging consumes a.
func (a *AncestorIDs[T]) All() iter.Seq[NodeID] {
	return func(yield func(NodeID) bool) {
		for id, ok := a.Next(); ok; id, ok = a.Next() {
			if !yield(id) {
				return
			}
		}
	}
}

// Children iterates over the direct children of a node, in stored order.
//
// The child list is copied when the iterator is created. Children which are
// removed from the tree afterwards, or moved to another parent, are skipped.
type Children[T any] struct {
	tree   *Tree[T]
	parent NodeID
	ids    []NodeID
	pos    int
}

// Children creates an iterator over the children of the node denoted by id.
func (t *Tree[T]) Children(id NodeID) (*Children[T], error) {
	if err := t.validate(id); err != nil {
		return nil, err
	}
	return &Children[T]{
		tree:   t,
		parent: id,
		ids:    slices.Clone(t.get(id).children),
	}, nil
}

// Next returns the next child node. If all children have been visited, ok is
// false, for this and all subsequent calls.
func (c *Children[T]) Next() (node *Node[T], ok bool) {
	if c == nil {
		return nil, false
	}
	for c.pos < len(c.ids) {
		id := c.ids[c.pos]
		c.pos++
		if n := c.tree.lookup(id); n != nil && n.parent == c.parent {
			return n, true
		}
	}
	return nil, false
}

// All returns the remaining children as a sequence for range loops.
// Ranging consumes c.
func (c *Children[T]) All() iter.Seq[*Node[T]] {
	return func(yield func(*Node[T]) bool) {
		for n, ok := c.Next(); ok; n, ok = c.Next() {
			if !yield(n) {
				return
			}
		}
	}
}

// ChildIDs iterates over the identifiers of the direct children of a node,
// in stored order.
//
// The child list is copied when the iterator is created and is yielded as
// is, even if some of the children have been removed in the meantime.
type ChildIDs struct {
	ids []NodeID
	pos int
}

// ChildIDs creates an iterator over the child identifiers of the node denoted
// by id.
func (t *Tree[T]) ChildIDs(id NodeID) (*ChildIDs, error) {
	if err := t.validate(id); err != nil {
		return nil, err
	}
	return &ChildIDs{ids: slices.Clone(t.get(id).children)}, nil
}

// Next returns the next child identifier. If all children have been visited,
// ok is false, for this and all subsequent calls.
func (c *ChildIDs) Next() (id NodeID, ok bool) {
	if c == nil || c.pos >= len(c.ids) {
		return NodeID{}, false
	}
	id = c.ids[c.pos]
	c.pos++
	return id, true
}

// All returns the remaining child identifiers as a sequence for range loops.
// Ranging consumes c.
func (c *ChildIDs) All() iter.Seq[NodeID] {
	return func(yield func(NodeID) bool) {
		for id, ok := c.Next(); ok; id, ok = c.Next() {
			if !yield(id) {
				return
			}
		}
	}
}
