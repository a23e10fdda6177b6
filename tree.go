package idtree

import (
	"fmt"
	"slices"

	"github.com/google/uuid"
)

// Tree is an arena-allocated tree of nodes carrying payloads of type T.
//
// A tree created by
//
//	New[T]()
//
// is empty. Nodes are added with Insert and addressed by the NodeIDs Insert
// returns. Nodes may be detached from the root (see OrphanChildren); such
// orphans stay live and addressable until they are removed.
//
// A Tree is not safe for concurrent mutation.
type Tree[T any] struct {
	id    uuid.UUID
	slots []slot[T]
	free  []uint32 // indices of dead slots, ready for re-use
	root  NodeID
	count int
}

type slot[T any] struct {
	node Node[T]
	gen  uint32
	live bool
}

// Option configures a tree at creation time.
type Option func(*config)

type config struct {
	capacity     int
	swapCapacity int
}

// WithCapacity pre-allocates space for n nodes.
func WithCapacity(n int) Option {
	return func(cfg *config) {
		if n > 0 {
			cfg.capacity = n
		}
	}
}

// WithSwapCapacity pre-allocates space for n slots to be recycled after
// removal.
func WithSwapCapacity(n int) Option {
	return func(cfg *config) {
		if n > 0 {
			cfg.swapCapacity = n
		}
	}
}

// New creates an empty tree.
func New[T any](opts ...Option) *Tree[T] {
	cfg := config{}
	for _, opt := range opts {
		if opt != nil {
			opt(&cfg)
		}
	}
	return &Tree[T]{
		id:    uuid.New(),
		slots: make([]slot[T], 0, cfg.capacity),
		free:  make([]uint32, 0, cfg.swapCapacity),
	}
}

// Len returns the number of live nodes, including orphans.
func (t *Tree[T]) Len() int {
	if t == nil {
		return 0
	}
	return t.count
}

// IsEmpty reports whether the tree holds no nodes.
func (t *Tree[T]) IsEmpty() bool {
	return t.Len() == 0
}

// RootID returns the identifier of the root node. ok is false if the tree has
// no root.
func (t *Tree[T]) RootID() (root NodeID, ok bool) {
	if t == nil {
		return NodeID{}, false
	}
	return t.root, !t.root.IsZero()
}

// Get returns the node denoted by id.
//
// It returns ErrInvalidNodeID for the zero NodeID and for identifiers of other
// trees, and ErrNodeIDNotFound for identifiers of removed nodes.
func (t *Tree[T]) Get(id NodeID) (*Node[T], error) {
	if err := t.validate(id); err != nil {
		return nil, err
	}
	return t.get(id), nil
}

// Contains reports whether id denotes a live node of t.
func (t *Tree[T]) Contains(id NodeID) bool {
	return t.validate(id) == nil
}

func (t *Tree[T]) validate(id NodeID) error {
	if t == nil {
		return fmt.Errorf("%w: tree is nil", ErrIllegalArguments)
	}
	if id.IsZero() {
		return fmt.Errorf("%w: zero node id", ErrInvalidNodeID)
	}
	if id.tree != t.id {
		return fmt.Errorf("%w: %s has been issued by another tree", ErrInvalidNodeID, id)
	}
	if int(id.index) >= len(t.slots) {
		return fmt.Errorf("%w: %s", ErrNodeIDNotFound, id)
	}
	s := &t.slots[id.index]
	if !s.live || s.gen != id.gen {
		return fmt.Errorf("%w: %s is stale", ErrNodeIDNotFound, id)
	}
	return nil
}

// get resolves id without checking it. Callers guarantee id is live.
func (t *Tree[T]) get(id NodeID) *Node[T] {
	return &t.slots[id.index].node
}

// lookup resolves id if it is live, and returns nil otherwise.
func (t *Tree[T]) lookup(id NodeID) *Node[T] {
	if int(id.index) >= len(t.slots) {
		return nil
	}
	s := &t.slots[id.index]
	if !s.live || s.gen != id.gen {
		return nil
	}
	return &s.node
}

func (t *Tree[T]) alloc(data T) NodeID {
	var index uint32
	if n := len(t.free); n > 0 {
		index = t.free[n-1]
		t.free = t.free[:n-1]
	} else {
		t.slots = append(t.slots, slot[T]{})
		index = uint32(len(t.slots) - 1)
	}
	s := &t.slots[index]
	assert(!s.live, "alloc: slot to re-use is still live")
	s.node = Node[T]{data: data}
	s.live = true
	t.count++
	return NodeID{tree: t.id, index: index, gen: s.gen}
}

func (t *Tree[T]) release(id NodeID) T {
	s := &t.slots[id.index]
	assert(s.live && s.gen == id.gen, "release: node is not live")
	data := s.node.data
	s.node = Node[T]{}
	s.live = false
	s.gen++
	t.free = append(t.free, id.index)
	t.count--
	return data
}

// --- Insertion -------------------------------------------------------------

// InsertBehavior tells Insert where to place a new node.
type InsertBehavior struct {
	parent NodeID
	asRoot bool
}

// AsRoot inserts a node as the new root. An existing root becomes the only
// child of the new node.
func AsRoot() InsertBehavior {
	return InsertBehavior{asRoot: true}
}

// UnderNode inserts a node as the last child of parent.
func UnderNode(parent NodeID) InsertBehavior {
	return InsertBehavior{parent: parent}
}

// Insert adds a node carrying data to the tree and returns its identifier.
func (t *Tree[T]) Insert(data T, behavior InsertBehavior) (NodeID, error) {
	if t == nil {
		return NodeID{}, fmt.Errorf("%w: tree is nil", ErrIllegalArguments)
	}
	if behavior.asRoot {
		id := t.alloc(data)
		if old, ok := t.RootID(); ok {
			t.attach(old, id)
		}
		t.root = id
		tracer().Debugf("idtree: inserted %s as root", id)
		return id, nil
	}
	if err := t.validate(behavior.parent); err != nil {
		return NodeID{}, err
	}
	id := t.alloc(data)
	t.attach(id, behavior.parent)
	tracer().Debugf("idtree: inserted %s under %s", id, behavior.parent)
	return id, nil
}

// attach appends child to parent's children. child must be parentless.
func (t *Tree[T]) attach(child, parent NodeID) {
	c := t.get(child)
	assert(c.parent.IsZero(), "attach: child already has a parent")
	c.parent = parent
	p := t.get(parent)
	p.children = append(p.children, child)
}

// detach unlinks id from its parent, if any.
func (t *Tree[T]) detach(id NodeID) {
	n := t.get(id)
	parent, ok := n.Parent()
	if !ok {
		return
	}
	removed := t.get(parent).removeChild(id)
	assert(removed, "detach: node missing from its parent's children")
	n.parent = NodeID{}
}

// --- Removal ---------------------------------------------------------------

// RemoveBehavior tells Remove what to do with the children of a removed node.
type RemoveBehavior int

const (
	// DropChildren removes the whole subtree below the node.
	DropChildren RemoveBehavior = iota
	// LiftChildren re-attaches the children to the node's parent, taking the
	// node's position. Lifting the root's children is possible only if the
	// root has at most one child, which then becomes the new root. Children
	// of an orphan become orphans.
	LiftChildren
	// OrphanChildren detaches the children. They stay live as roots of
	// subtrees that are unreachable from the tree's root.
	OrphanChildren
)

func (b RemoveBehavior) String() string {
	switch b {
	case DropChildren:
		return "drop-children"
	case LiftChildren:
		return "lift-children"
	case OrphanChildren:
		return "orphan-children"
	}
	return fmt.Sprintf("RemoveBehavior(%d)", int(b))
}

// Remove takes the node denoted by id out of the tree and returns its
// payload. behavior decides the fate of the node's children.
func (t *Tree[T]) Remove(id NodeID, behavior RemoveBehavior) (T, error) {
	var zero T
	if err := t.validate(id); err != nil {
		return zero, err
	}
	n := t.get(id)
	switch behavior {
	case DropChildren:
		t.detach(id)
		var subtree []NodeID
		pre, _ := t.PreOrderIDs(id)
		for d := range pre.All() {
			subtree = append(subtree, d)
		}
		if t.root == id {
			t.root = NodeID{}
		}
		data := t.release(id)
		for _, d := range subtree[1:] {
			t.release(d)
		}
		tracer().Debugf("idtree: removed %s with %d descendants", id, len(subtree)-1)
		return data, nil
	case LiftChildren:
		parent, hasParent := n.Parent()
		if !hasParent {
			if t.root == id {
				if len(n.children) > 1 {
					return zero, fmt.Errorf("%w: cannot lift %d children above root %s",
						ErrIllegalArguments, len(n.children), id)
				}
				t.root = NodeID{}
				if len(n.children) == 1 {
					t.root = n.children[0]
				}
			}
			for _, c := range n.children {
				t.get(c).parent = NodeID{}
			}
			tracer().Debugf("idtree: removed parentless %s, lifting children", id)
			return t.release(id), nil
		}
		p := t.get(parent)
		pos := p.indexOfChild(id)
		assert(pos >= 0, "remove: node missing from its parent's children")
		for _, c := range n.children {
			t.get(c).parent = parent
		}
		p.children = slices.Replace(p.children, pos, pos+1, n.children...)
		tracer().Debugf("idtree: removed %s, lifted %d children to %s", id, len(n.children), parent)
		return t.release(id), nil
	case OrphanChildren:
		t.detach(id)
		for _, c := range n.children {
			t.get(c).parent = NodeID{}
		}
		if t.root == id {
			t.root = NodeID{}
		}
		tracer().Debugf("idtree: removed %s, orphaned %d children", id, len(n.children))
		return t.release(id), nil
	}
	return zero, fmt.Errorf("%w: unknown remove behavior %s", ErrIllegalArguments, behavior)
}

// --- Moving ----------------------------------------------------------------

// MoveBehavior tells Move where to place a node.
type MoveBehavior struct {
	parent NodeID
	toRoot bool
}

// ToRoot makes the moved node the root. The former root becomes its last
// child.
func ToRoot() MoveBehavior {
	return MoveBehavior{toRoot: true}
}

// ToParent appends the moved node to the children of parent.
func ToParent(parent NodeID) MoveBehavior {
	return MoveBehavior{parent: parent}
}

// Move re-links the node denoted by id, together with its subtree.
// Moving a node below itself or below one of its descendants is an
// ErrInvalidMove.
func (t *Tree[T]) Move(id NodeID, behavior MoveBehavior) error {
	if err := t.validate(id); err != nil {
		return err
	}
	if behavior.toRoot {
		if t.root == id {
			return nil
		}
		t.detach(id)
		if old, ok := t.RootID(); ok {
			t.attach(old, id)
		}
		t.root = id
		tracer().Debugf("idtree: moved %s to root", id)
		return nil
	}
	if err := t.validate(behavior.parent); err != nil {
		return err
	}
	if behavior.parent == id {
		return fmt.Errorf("%w: %s below itself", ErrInvalidMove, id)
	}
	anc, _ := t.AncestorIDs(behavior.parent)
	for a := range anc.All() {
		if a == id {
			return fmt.Errorf("%w: %s below its descendant %s", ErrInvalidMove, id, behavior.parent)
		}
	}
	t.detach(id)
	if t.root == id {
		t.root = NodeID{}
	}
	t.attach(id, behavior.parent)
	tracer().Debugf("idtree: moved %s under %s", id, behavior.parent)
	return nil
}

// SortChildrenBy re-orders the children of the node denoted by id, using cmp
// to compare them. The sort is stable.
func (t *Tree[T]) SortChildrenBy(id NodeID, cmp func(a, b *Node[T]) int) error {
	if err := t.validate(id); err != nil {
		return err
	}
	if cmp == nil {
		return fmt.Errorf("%w: comparison function is nil", ErrIllegalArguments)
	}
	slices.SortStableFunc(t.get(id).children, func(a, b NodeID) int {
		return cmp(t.get(a), t.get(b))
	})
	return nil
}

// --- Measures --------------------------------------------------------------

// Depth returns the number of ancestors of the node denoted by id.
// The root has depth 0.
func (t *Tree[T]) Depth(id NodeID) (int, error) {
	anc, err := t.AncestorIDs(id)
	if err != nil {
		return 0, err
	}
	depth := 0
	for range anc.All() {
		depth++
	}
	return depth, nil
}

// Height returns the number of levels of the tree reachable from the root,
// where 0 means there is no root and 1 means a single root node.
func (t *Tree[T]) Height() int {
	root, ok := t.RootID()
	if !ok {
		return 0
	}
	return t.height(root)
}

func (t *Tree[T]) height(id NodeID) int {
	h := 0
	children, _ := t.ChildIDs(id)
	for c := range children.All() {
		h = max(h, t.height(c))
	}
	return h + 1
}
