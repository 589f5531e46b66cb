package merkle_test

import (
	"testing"

	"github.com/BeanstalkNetwork/merkle-notes/merkle"
)

// TestPropertyLenTracksAdds covers invariant 1: len equals the number
// of adds, across a tree built incrementally.
func TestPropertyLenTracksAdds(t *testing.T) {
	tree := merkle.NewInMemory[string, string](stringHasher{}, 6)
	for i := 0; i < 20; i++ {
		tree.Add(string(rune('a' + i)))
		if tree.Len() != uint32(i+1) {
			t.Fatalf("Len() = %d after %d adds, want %d", tree.Len(), i+1, i+1)
		}
	}
}

// TestPropertyPastRootMatchesRootAtFullLength covers invariant 2's
// k == len case.
func TestPropertyPastRootMatchesRootAtFullLength(t *testing.T) {
	tree := merkle.NewInMemory[string, string](stringHasher{}, 6)
	for i := 0; i < 13; i++ {
		tree.Add(string(rune('a' + i)))
		root, _ := tree.RootHash()
		past, ok := tree.PastRoot(tree.Len())
		if !ok || past != root {
			t.Fatalf("past_root(len) = (%q,%v), want (%q,true) at len %d", past, ok, root, tree.Len())
		}
	}
}

// TestPropertyTruncateMatchesShorterBuild covers invariant 4: add(s)
// then truncate(k) must match add(s[:k]) built from scratch.
func TestPropertyTruncateMatchesShorterBuild(t *testing.T) {
	seq := []string{"a", "b", "c", "d", "e", "f", "g", "h", "i", "j", "k"}
	for k := 0; k <= len(seq); k++ {
		built := merkle.NewInMemory[string, string](stringHasher{}, 6)
		for _, e := range seq {
			built.Add(e)
		}
		built.Truncate(uint32(k))

		reference := merkle.NewInMemory[string, string](stringHasher{}, 6)
		for _, e := range seq[:k] {
			reference.Add(e)
		}

		gotRoot, gotOK := built.RootHash()
		wantRoot, wantOK := reference.RootHash()
		if gotOK != wantOK || gotRoot != wantRoot {
			t.Fatalf("truncate(%d) root mismatch: got (%q,%v), want (%q,%v)", k, gotRoot, gotOK, wantRoot, wantOK)
		}
		if built.Len() != reference.Len() {
			t.Fatalf("truncate(%d) len = %d, want %d", k, built.Len(), reference.Len())
		}
		for p := uint32(0); p < built.Len(); p++ {
			gotW, _ := built.Witness(p)
			wantW, _ := reference.Witness(p)
			if len(gotW.AuthPath) != len(wantW.AuthPath) {
				t.Fatalf("truncate(%d) witness(%d) auth path length mismatch", k, p)
			}
			for i := range wantW.AuthPath {
				if gotW.AuthPath[i] != wantW.AuthPath[i] {
					t.Fatalf("truncate(%d) witness(%d).auth_path[%d] mismatch", k, p, i)
				}
			}
		}
	}
}

// TestPropertyContained covers invariant 7.
func TestPropertyContained(t *testing.T) {
	tree := merkle.NewInMemory[string, string](stringHasher{}, 5)
	seq := []string{"a", "b", "c", "d", "e"}
	for _, e := range seq {
		tree.Add(e)
	}

	for k := uint32(0); k <= uint32(len(seq)); k++ {
		for _, e := range seq {
			want := false
			for i := uint32(0); i < k; i++ {
				if seq[i] == e {
					want = true
					break
				}
			}
			if got := tree.Contained(e, k); got != want {
				t.Fatalf("Contained(%q, %d) = %v, want %v", e, k, got, want)
			}
		}
	}
}
