/*
Package idtree offers a tree whose nodes live in an arena and are addressed by
node identifiers.

Identifiers

Nodes of a Tree are stored in a contiguous slice of slots. Clients never hold
pointers to nodes for longer than a traversal step; they hold NodeIDs. A NodeID
is a small value type naming a slot together with the slot's generation and
the identity of the owning tree. Parent and child links are stored as NodeIDs
as well, so the tree never forms a cyclic pointer graph, and links survive
re-allocation of the arena.

Removing a node bumps the generation of its slot. Outstanding identifiers for
the removed node therefore become stale, and Tree.Get reports them with
ErrNodeIDNotFound, even after the slot has been re-used for another node.

Traversal

Four small adapters walk a tree lazily, one step per call of Next:

	Ancestors    parent nodes, from the immediate parent up to the root
	AncestorIDs  the same walk, yielding identifiers
	Children     direct children in stored order
	ChildIDs     the same walk, yielding identifiers

The constructors on Tree validate the starting identifier once. After that the
adapters trust the tree: every identifier read from a parent or child link is
resolved without further checks. This is a deliberate trade-off. Mutating the
tree while an adapter is in flight is not supported (with the exception noted
for child snapshots below).

Once Next has reported false, an adapter is exhausted for good. Every further
call reports false again; it never panics.

Child adapters take a snapshot of the starting node's child list when they are
created. Later insertions or re-orderings of that list are not observed.
Children (the node-valued variant) skips snapshot entries whose nodes have
been removed or moved to another parent in the meantime; ChildIDs yields the
snapshot as is, and callers have to expect stale or re-parented identifiers in
that case.

_________________________________________________________________________

BSD 3-Clause License

Copyright (c) 2020–21, Norbert Pillmayer

All rights reserved.

Please refer to the LICENSE file for details.
*/
package idtree

import (
	"github.com/npillmayer/schuko/gtrace"
	"github.com/npillmayer/schuko/tracing"
)

// T traces to a global core-tracer.
func T() tracing.Trace {
	return gtrace.CoreTracer
}

// tracer is T for scopes where T names a type parameter.
func tracer() tracing.Trace {
	return gtrace.CoreTracer
}

// TreeError is an error type for the idtree module
type TreeError string

func (e TreeError) Error() string {
	return string(e)
}

// ErrNodeIDNotFound is flagged whenever a node identifier does not denote a
// live node, e.g. because the node has been removed.
const ErrNodeIDNotFound = TreeError("node id not found")

// ErrInvalidNodeID is flagged for the zero NodeID and for identifiers
// issued by a different tree.
const ErrInvalidNodeID = TreeError("invalid node id")

// ErrInvalidMove is flagged if a node should be moved below itself or
// below one of its descendants.
const ErrInvalidMove = TreeError("invalid move")

// ErrIllegalArguments is flagged whenever function parameters are invalid.
const ErrIllegalArguments = TreeError("illegal arguments")

func assert(condition bool, msg string) {
	if !condition {
		panic(msg)
	}
}
