package idtree

import "fmt"

// Check validates structural tree invariants:
//
//   - the root is live and has no parent,
//   - parent and child links of live nodes agree with each other,
//   - no node is reachable from itself by following parent links,
//   - slots on the free list are dead.
//
// It is meant to be used in tests.
func (t *Tree[T]) Check() error {
	if t == nil {
		return fmt.Errorf("%w: nil tree", ErrIllegalArguments)
	}
	if !t.root.IsZero() {
		if err := t.validate(t.root); err != nil {
			return fmt.Errorf("root: %w", err)
		}
		if _, ok := t.get(t.root).Parent(); ok {
			return fmt.Errorf("%w: root %s has a parent", ErrIllegalArguments, t.root)
		}
	}
	live := 0
	for i := range t.slots {
		s := &t.slots[i]
		if !s.live {
			continue
		}
		live++
		id := NodeID{tree: t.id, index: uint32(i), gen: s.gen}
		if err := t.checkLinks(id, &s.node); err != nil {
			tracer().Errorf("idtree: %s", err.Error())
			return err
		}
	}
	if live != t.count {
		return fmt.Errorf("%w: node count mismatch (%d != %d)", ErrIllegalArguments, live, t.count)
	}
	for _, index := range t.free {
		if int(index) >= len(t.slots) || t.slots[index].live {
			return fmt.Errorf("%w: free slot %d is live", ErrIllegalArguments, index)
		}
	}
	return nil
}

func (t *Tree[T]) checkLinks(id NodeID, n *Node[T]) error {
	if parent, ok := n.Parent(); ok {
		if err := t.validate(parent); err != nil {
			return fmt.Errorf("parent of %s: %w", id, err)
		}
		if t.get(parent).indexOfChild(id) < 0 {
			return fmt.Errorf("%w: %s missing from children of its parent %s",
				ErrIllegalArguments, id, parent)
		}
	}
	seen := make(map[NodeID]struct{}, len(n.children))
	for _, c := range n.children {
		if err := t.validate(c); err != nil {
			return fmt.Errorf("child of %s: %w", id, err)
		}
		if _, dup := seen[c]; dup {
			return fmt.Errorf("%w: %s listed twice as child of %s", ErrIllegalArguments, c, id)
		}
		seen[c] = struct{}{}
		if p, _ := t.get(c).Parent(); p != id {
			return fmt.Errorf("%w: child %s of %s points to parent %s", ErrIllegalArguments, c, id, p)
		}
	}
	steps := 0
	for cur, ok := n.Parent(); ok; {
		if cur == id || steps > t.count {
			return fmt.Errorf("%w: cycle through %s", ErrIllegalArguments, id)
		}
		steps++
		p := t.lookup(cur)
		if p == nil {
			break // reported when checking the dead link's owner
		}
		cur, ok = p.Parent()
	}
	return nil
}
