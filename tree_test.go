package idtree

import (
	"cmp"
	"errors"
	"slices"
	"testing"

	"github.com/npillmayer/schuko/gtrace"
	"github.com/npillmayer/schuko/tracing"
	"github.com/npillmayer/schuko/tracing/gotestingadapter"
)

func childData(t *testing.T, tree *Tree[int], id NodeID) []int {
	t.Helper()
	children, err := tree.Children(id)
	if err != nil {
		t.Fatal(err)
	}
	return collectData(children.All())
}

func TestEmptyTree(t *testing.T) {
	tree := New[string]()
	if !tree.IsEmpty() || tree.Len() != 0 || tree.Height() != 0 {
		t.Errorf("expected new tree to be empty")
	}
	if _, ok := tree.RootID(); ok {
		t.Errorf("empty tree should not have a root")
	}
	if err := tree.Check(); err != nil {
		t.Error(err)
	}
	var nilTree *Tree[string]
	if nilTree.Len() != 0 {
		t.Errorf("nil tree should have length 0")
	}
	if _, err := nilTree.Insert("x", AsRoot()); !errors.Is(err, ErrIllegalArguments) {
		t.Errorf("expected insert into nil tree to fail, got %v", err)
	}
}

func TestInsertAsRootTwice(t *testing.T) {
	gtrace.CoreTracer = gotestingadapter.New()
	teardown := gotestingadapter.RedirectTracing(t)
	defer teardown()
	gtrace.CoreTracer.SetTraceLevel(tracing.LevelDebug)
	//
	tree := New[int]()
	first, _ := tree.Insert(1, AsRoot())
	second, _ := tree.Insert(2, AsRoot())
	if root, _ := tree.RootID(); root != second {
		t.Errorf("expected %s to be root, is %s", second, root)
	}
	n, _ := tree.Get(first)
	if p, ok := n.Parent(); !ok || p != second {
		t.Errorf("expected old root to be child of new root")
	}
	if tree.Height() != 2 || tree.Len() != 2 {
		t.Errorf("expected height 2 and len 2, have %d and %d", tree.Height(), tree.Len())
	}
	if err := tree.Check(); err != nil {
		t.Error(err)
	}
}

func TestGetAndDataPtr(t *testing.T) {
	tree, ids := scenarioTree(t)
	n, err := tree.Get(ids[2])
	if err != nil {
		t.Fatal(err)
	}
	*n.DataPtr() = 42
	if n, _ = tree.Get(ids[2]); n.Data() != 42 {
		t.Errorf("expected payload to be updated in place, is %d", n.Data())
	}
	if _, err := tree.Get(NodeID{}); !errors.Is(err, ErrInvalidNodeID) {
		t.Errorf("expected ErrInvalidNodeID for zero id, got %v", err)
	}
	if !tree.Contains(ids[1]) {
		t.Errorf("expected tree to contain %s", ids[1])
	}
}

func TestRemoveDropChildren(t *testing.T) {
	gtrace.CoreTracer = gotestingadapter.New()
	teardown := gotestingadapter.RedirectTracing(t)
	defer teardown()
	gtrace.CoreTracer.SetTraceLevel(tracing.LevelDebug)
	//
	tree, ids := scenarioTree(t)
	data, err := tree.Remove(ids[1], DropChildren)
	if err != nil {
		t.Fatal(err)
	}
	if data != 1 {
		t.Errorf("expected removed payload 1, have %d", data)
	}
	if tree.Len() != 1 {
		t.Errorf("expected 1 node left, have %d", tree.Len())
	}
	for _, id := range ids[1:] {
		if tree.Contains(id) {
			t.Errorf("expected %s to be removed", id)
		}
	}
	if d := childData(t, tree, ids[0]); len(d) != 0 {
		t.Errorf("expected root to be a leaf, has children %v", d)
	}
	if err := tree.Check(); err != nil {
		t.Error(err)
	}
	if _, err := tree.Remove(ids[0], DropChildren); err != nil {
		t.Fatal(err)
	}
	if !tree.IsEmpty() {
		t.Errorf("expected empty tree")
	}
	if _, ok := tree.RootID(); ok {
		t.Errorf("expected no root after removing the root")
	}
}

func TestRemoveLiftChildren(t *testing.T) {
	gtrace.CoreTracer = gotestingadapter.New()
	teardown := gotestingadapter.RedirectTracing(t)
	defer teardown()
	gtrace.CoreTracer.SetTraceLevel(tracing.LevelDebug)
	//
	tree, ids := scenarioTree(t)
	sibling, _ := tree.Insert(9, UnderNode(ids[0]))
	if _, err := tree.Remove(ids[1], LiftChildren); err != nil {
		t.Fatal(err)
	}
	if d := childData(t, tree, ids[0]); !slices.Equal(d, []int{2, 3, 9}) {
		t.Errorf("expected lifted children [2 3 9], have %v", d)
	}
	if err := tree.Check(); err != nil {
		t.Error(err)
	}
	// root with more than one child cannot be lifted
	if _, err := tree.Remove(ids[0], LiftChildren); !errors.Is(err, ErrIllegalArguments) {
		t.Errorf("expected ErrIllegalArguments, got %v", err)
	}
	tree.Remove(ids[2], DropChildren)
	tree.Remove(ids[3], DropChildren)
	if _, err := tree.Remove(ids[0], LiftChildren); err != nil {
		t.Fatal(err)
	}
	if root, _ := tree.RootID(); root != sibling {
		t.Errorf("expected single child %s to become root, root is %s", sibling, root)
	}
	if err := tree.Check(); err != nil {
		t.Error(err)
	}
}

func TestRemoveOrphanChildren(t *testing.T) {
	gtrace.CoreTracer = gotestingadapter.New()
	teardown := gotestingadapter.RedirectTracing(t)
	defer teardown()
	gtrace.CoreTracer.SetTraceLevel(tracing.LevelDebug)
	//
	tree, ids := scenarioTree(t)
	if _, err := tree.Remove(ids[1], OrphanChildren); err != nil {
		t.Fatal(err)
	}
	if tree.Len() != 3 {
		t.Errorf("expected orphans to stay live, len = %d", tree.Len())
	}
	for _, id := range ids[2:] {
		anc, err := tree.AncestorIDs(id)
		if err != nil {
			t.Fatal(err)
		}
		if _, ok := anc.Next(); ok {
			t.Errorf("expected orphan %s to have no ancestors", id)
		}
	}
	if tree.Height() != 1 {
		t.Errorf("expected height 1, have %d", tree.Height())
	}
	if err := tree.Check(); err != nil {
		t.Error(err)
	}
	if _, err := tree.Remove(ids[0], RemoveBehavior(17)); !errors.Is(err, ErrIllegalArguments) {
		t.Errorf("expected unknown behavior to fail, got %v", err)
	}
}

func TestStaleIDAfterSlotReuse(t *testing.T) {
	gtrace.CoreTracer = gotestingadapter.New()
	teardown := gotestingadapter.RedirectTracing(t)
	defer teardown()
	gtrace.CoreTracer.SetTraceLevel(tracing.LevelDebug)
	//
	tree, ids := scenarioTree(t)
	tree.Remove(ids[3], DropChildren)
	reused, err := tree.Insert(7, UnderNode(ids[0]))
	if err != nil {
		t.Fatal(err)
	}
	if reused.Index() != ids[3].Index() {
		t.Errorf("expected slot %d to be re-used, got %d", ids[3].Index(), reused.Index())
	}
	if reused == ids[3] {
		t.Errorf("expected a fresh generation for the re-used slot")
	}
	if _, err := tree.Get(ids[3]); !errors.Is(err, ErrNodeIDNotFound) {
		t.Errorf("expected stale id to be rejected, got %v", err)
	}
	if err := tree.Check(); err != nil {
		t.Error(err)
	}
}

func TestMove(t *testing.T) {
	gtrace.CoreTracer = gotestingadapter.New()
	teardown := gotestingadapter.RedirectTracing(t)
	defer teardown()
	gtrace.CoreTracer.SetTraceLevel(tracing.LevelDebug)
	//
	tree, ids := scenarioTree(t)
	if err := tree.Move(ids[3], ToParent(ids[0])); err != nil {
		t.Fatal(err)
	}
	if d := childData(t, tree, ids[0]); !slices.Equal(d, []int{1, 3}) {
		t.Errorf("expected root children [1 3], have %v", d)
	}
	if err := tree.Move(ids[1], ToParent(ids[2])); !errors.Is(err, ErrInvalidMove) {
		t.Errorf("expected move below descendant to fail, got %v", err)
	}
	if err := tree.Move(ids[1], ToParent(ids[1])); !errors.Is(err, ErrInvalidMove) {
		t.Errorf("expected move below itself to fail, got %v", err)
	}
	if err := tree.Move(ids[2], ToRoot()); err != nil {
		t.Fatal(err)
	}
	if root, _ := tree.RootID(); root != ids[2] {
		t.Errorf("expected %s to be root, is %s", ids[2], root)
	}
	if d, _ := tree.Depth(ids[3]); d != 2 {
		t.Errorf("expected 3 at depth 2 after re-rooting, is %d", d)
	}
	if err := tree.Move(ids[2], ToRoot()); err != nil {
		t.Errorf("moving the root to root should be a no-op, got %v", err)
	}
	if err := tree.Check(); err != nil {
		t.Error(err)
	}
}

func TestSortChildrenBy(t *testing.T) {
	tree := New[int]()
	root, _ := tree.Insert(0, AsRoot())
	for _, v := range []int{5, 3, 8, 1} {
		tree.Insert(v, UnderNode(root))
	}
	err := tree.SortChildrenBy(root, func(a, b *Node[int]) int {
		return cmp.Compare(a.Data(), b.Data())
	})
	if err != nil {
		t.Fatal(err)
	}
	if d := childData(t, tree, root); !slices.Equal(d, []int{1, 3, 5, 8}) {
		t.Errorf("expected sorted children, have %v", d)
	}
	if err := tree.SortChildrenBy(root, nil); !errors.Is(err, ErrIllegalArguments) {
		t.Errorf("expected nil comparison to fail, got %v", err)
	}
}

func TestCheckDetectsBrokenLinks(t *testing.T) {
	tree, ids := scenarioTree(t)
	tree.get(ids[2]).parent = ids[0]
	if err := tree.Check(); err == nil {
		t.Errorf("expected Check to detect inconsistent parent link")
	}
}
