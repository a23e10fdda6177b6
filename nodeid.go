package idtree

import (
	"fmt"

	"github.com/google/uuid"
)

// NodeID identifies a node within a Tree.
//
// NodeIDs are values: they are cheap to copy and may be compared with ==.
// They do not own anything. A NodeID is issued by Tree.Insert and stays valid
// until the node it names is removed.
//
// The zero NodeID never denotes a node.
type NodeID struct {
	tree  uuid.UUID // identity of the issuing tree
	index uint32    // slot in the arena
	gen   uint32    // generation of the slot at issue time
}

// IsZero reports whether id is the zero NodeID.
func (id NodeID) IsZero() bool {
	return id.tree == uuid.Nil
}

// Index returns the arena slot of id. Slots are re-used after removal; use
// the NodeID itself, not its index, to refer to a node.
func (id NodeID) Index() int {
	return int(id.index)
}

func (id NodeID) String() string {
	if id.IsZero() {
		return "#<none>"
	}
	return fmt.Sprintf("#%d.%d", id.index, id.gen)
}
