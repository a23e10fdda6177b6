package idtree

// Node is a node of a Tree. It holds a payload of type T, an optional parent
// link and an ordered list of child links.
//
// Nodes are owned by their tree. Pointers to nodes handed out by Tree.Get or
// by the traversal adapters are valid until the next structural mutation of
// the tree; keep NodeIDs instead of node pointers across mutations.
type Node[T any] struct {
	data     T
	parent   NodeID // zero for the root and for orphans
	children []NodeID
}

// Data returns the payload of n.
func (n *Node[T]) Data() T {
	return n.data
}

// DataPtr returns a pointer to the payload of n, allowing in-place updates.
func (n *Node[T]) DataPtr() *T {
	return &n.data
}

// Parent returns the identifier of n's parent. ok is false for the root node
// and for orphaned nodes.
func (n *Node[T]) Parent() (parent NodeID, ok bool) {
	return n.parent, !n.parent.IsZero()
}

// Children returns the identifiers of n's children, in order.
// The slice is shared with the tree and must not be modified by clients.
func (n *Node[T]) Children() []NodeID {
	return n.children
}

// IsLeaf reports whether n has no children.
func (n *Node[T]) IsLeaf() bool {
	return len(n.children) == 0
}

func (n *Node[T]) indexOfChild(child NodeID) int {
	for i, c := range n.children {
		if c == child {
			return i
		}
	}
	return -1
}

func (n *Node[T]) removeChild(child NodeID) bool {
	i := n.indexOfChild(child)
	if i < 0 {
		return false
	}
	n.children = append(n.children[:i], n.children[i+1:]...)
	return true
}
