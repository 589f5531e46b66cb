package refhash_test

import (
	"testing"

	"github.com/BeanstalkNetwork/merkle-notes/merkle"
	"github.com/BeanstalkNetwork/merkle-notes/merkle/refhash"
)

func commitmentOf(b byte) refhash.Commitment {
	var c refhash.Commitment
	c[0] = b
	return c
}

func TestMerkleHashIsDeterministicAndDomainSeparated(t *testing.T) {
	h := refhash.Hasher{}
	a := commitmentOf(1)

	h1 := h.MerkleHash(a)
	h2 := h.MerkleHash(a)
	if h1 != h2 {
		t.Fatal("MerkleHash is not deterministic")
	}

	combined := h.CombineHash(0, h1, h1)
	if combined == h1 {
		t.Fatal("leaf and interior domains collided")
	}
}

func TestCombineHashVariesByDepth(t *testing.T) {
	h := refhash.Hasher{}
	a := h.MerkleHash(commitmentOf(1))
	b := h.MerkleHash(commitmentOf(2))

	at0 := h.CombineHash(0, a, b)
	at1 := h.CombineHash(1, a, b)
	if at0 == at1 {
		t.Fatal("CombineHash does not vary with depth")
	}
}

func TestRefhashTreeRootAndWitness(t *testing.T) {
	tree := merkle.NewInMemory[[32]byte, refhash.Commitment](refhash.Hasher{}, 8)
	for i := byte(0); i < 5; i++ {
		tree.Add(commitmentOf(i + 1))
	}

	root, ok := tree.RootHash()
	if !ok {
		t.Fatal("root_hash() = false")
	}

	for p := uint32(0); p < tree.Len(); p++ {
		w, ok := tree.Witness(p)
		if !ok {
			t.Fatalf("witness(%d) = false", p)
		}
		if w.RootHash != root {
			t.Fatalf("witness(%d).root_hash mismatch", p)
		}
		leaf, _ := tree.Get(p)
		leafHash := refhash.Hasher{}.MerkleHash(leaf)
		if !merkle.Verify[[32]byte, refhash.Commitment](refhash.Hasher{}, leafHash, w) {
			t.Fatalf("witness(%d) failed to verify", p)
		}
	}
}
