package idtree

import "iter"

// PreOrderIDs iterates over the identifiers of a subtree in pre-order:
// every node is visited before its children, children in stored order.
// It is lazy: a child list is read when the walk descends into its node.
type PreOrderIDs[T any] struct {
	tree  *Tree[T]
	start NodeID // zero once the start node has been yielded
	stack []*ChildIDs
}

// PreOrderIDs creates a pre-order iterator over the subtree rooted at id.
// The first identifier yielded is id itself.
func (t *Tree[T]) PreOrderIDs(id NodeID) (*PreOrderIDs[T], error) {
	if err := t.validate(id); err != nil {
		return nil, err
	}
	return &PreOrderIDs[T]{tree: t, start: id}, nil
}

// Next returns the next identifier in pre-order. When the subtree is
// exhausted, ok is false, for this and all subsequent calls.
func (p *PreOrderIDs[T]) Next() (id NodeID, ok bool) {
	if p == nil {
		return NodeID{}, false
	}
	if !p.start.IsZero() {
		id, p.start = p.start, NodeID{}
		p.push(id)
		return id, true
	}
	for len(p.stack) > 0 {
		top := p.stack[len(p.stack)-1]
		if id, ok = top.Next(); ok {
			p.push(id)
			return id, true
		}
		p.stack = p.stack[:len(p.stack)-1]
	}
	return NodeID{}, false
}

func (p *PreOrderIDs[T]) push(id NodeID) {
	n := p.tree.get(id)
	if n.IsLeaf() {
		return
	}
	children, err := p.tree.ChildIDs(id)
	assert(err == nil, "pre-order: cannot iterate over children of live node")
	p.stack = append(p.stack, children)
}

// All returns the remaining identifiers as a sequence for range loops.
// Ranging consumes p.
func (p *PreOrderIDs[T]) All() iter.Seq[NodeID] {
	return func(yield func(NodeID) bool) {
		for id, ok := p.Next(); ok; id, ok = p.Next() {
			if !yield(id) {
				return
			}
		}
	}
}

// LevelOrderIDs iterates over the identifiers of a subtree level by level,
// starting with the subtree's root, each level from left to right.
type LevelOrderIDs[T any] struct {
	tree  *Tree[T]
	queue []NodeID
}

// LevelOrderIDs creates a level-order iterator over the subtree rooted at id.
func (t *Tree[T]) LevelOrderIDs(id NodeID) (*LevelOrderIDs[T], error) {
	if err := t.validate(id); err != nil {
		return nil, err
	}
	return &LevelOrderIDs[T]{tree: t, queue: []NodeID{id}}, nil
}

// Next returns the next identifier in level-order. When the subtree is
// exhausted, ok is false, for this and all subsequent calls.
func (l *LevelOrderIDs[T]) Next() (id NodeID, ok bool) {
	if l == nil || len(l.queue) == 0 {
		return NodeID{}, false
	}
	id, l.queue = l.queue[0], l.queue[1:]
	children, err := l.tree.ChildIDs(id)
	assert(err == nil, "level-order: cannot iterate over children of live node")
	for c := range children.All() {
		l.queue = append(l.queue, c)
	}
	return id, true
}

// All returns the remaining identifiers as a sequence for range loops.
// Ranging consumes l.
func (l *LevelOrderIDs[T]) All() iter.Seq[NodeID] {
	return func(yield func(NodeID) bool) {
		for id, ok := l.Next(); ok; id, ok = l.Next() {
			if !yield(id) {
				return
			}
		}
	}
}
