package merkle_test

import (
	"testing"

	"github.com/BeanstalkNetwork/merkle-notes/merkle"
)

func TestMemoryArenaStartsWithEmptySentinel(t *testing.T) {
	a := merkle.NewMemoryArena[string, string]()
	if a.LenNodes() != 1 {
		t.Fatalf("LenNodes() = %d, want 1", a.LenNodes())
	}
	if a.NodeAt(merkle.EmptyIndex).Kind() != merkle.KindEmpty {
		t.Fatalf("node 0 kind = %v, want Empty", a.NodeAt(merkle.EmptyIndex).Kind())
	}
}

func TestMemoryArenaAppendAndTruncateNodes(t *testing.T) {
	a := merkle.NewMemoryArena[string, string]()
	idx := a.AppendNode(merkle.LeftNode[string]{Parent: merkle.EmptyIndex, HashOfSibling: "x"})
	if idx != 1 {
		t.Fatalf("AppendNode index = %d, want 1", idx)
	}
	if a.LenNodes() != 2 {
		t.Fatalf("LenNodes() = %d, want 2", a.LenNodes())
	}
	a.TruncateNodes(1)
	if a.LenNodes() != 1 {
		t.Fatalf("LenNodes() after truncate = %d, want 1", a.LenNodes())
	}
}

func TestMemoryArenaLeafLifecycle(t *testing.T) {
	a := merkle.NewMemoryArena[string, string]()
	k := a.AppendLeaf(merkle.Leaf[string, string]{Element: "a", Parent: merkle.EmptyIndex, Hash: "a"})
	if k != 0 {
		t.Fatalf("AppendLeaf index = %d, want 0", k)
	}
	a.SetLeafParent(0, merkle.NodeIndex(5))
	if a.LeafAt(0).Parent != 5 {
		t.Fatalf("leaf parent = %d, want 5", a.LeafAt(0).Parent)
	}
	a.PopLeaf()
	if a.LenLeaves() != 0 {
		t.Fatalf("LenLeaves() after pop = %d, want 0", a.LenLeaves())
	}
}

func TestMemoryArenaOutOfRangePanics(t *testing.T) {
	a := merkle.NewMemoryArena[string, string]()
	defer func() {
		if recover() == nil {
			t.Fatal("NodeAt out of range did not panic")
		}
	}()
	a.NodeAt(merkle.NodeIndex(99))
}
