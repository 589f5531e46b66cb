package merkle

// WitnessNode is one step of an authentication path. Right reports
// which side of the combine the carried Hash occupies: true means Hash
// is the left sibling (so verification combines Hash then the running
// value), false means Hash is the right sibling.
type WitnessNode[Hash any] struct {
	Right bool
	Hash  Hash
}

// Witness is a self-contained membership proof: the tree size and root
// it was captured against, plus the authentication path from a leaf up
// to that root. AuthPath has exactly Depth()-1 entries for Depth() >= 2,
// and a single entry for a tree of depth 1.
type Witness[Hash any] struct {
	TreeSize  uint32
	RootHash  Hash
	AuthPath  []WitnessNode[Hash]
}

// Witness builds a membership proof for the leaf at pos as of the
// tree's current size. It returns false if pos does not address a
// current leaf.
func (t *Tree[Hash, Element]) Witness(pos uint32) (Witness[Hash], bool) {
	var zero Witness[Hash]
	if pos >= t.Len() {
		return zero, false
	}

	leafIdx := LeafIndex(pos)
	leaf := t.arena.LeafAt(leafIdx)

	authPath := make([]WitnessNode[Hash], 0, int(t.depth)-1)

	var current Hash
	if leafIdx.IsRight() {
		sibling := t.arena.LeafAt(leafIdx - 1)
		authPath = append(authPath, WitnessNode[Hash]{Right: true, Hash: sibling.Hash})
		current = t.hasher.CombineHash(0, sibling.Hash, leaf.Hash)
	} else if leafIdx+1 < LeafIndex(t.Len()) {
		sibling := t.arena.LeafAt(leafIdx + 1)
		authPath = append(authPath, WitnessNode[Hash]{Right: false, Hash: sibling.Hash})
		current = t.hasher.CombineHash(0, leaf.Hash, sibling.Hash)
	} else {
		authPath = append(authPath, WitnessNode[Hash]{Right: false, Hash: leaf.Hash})
		current = t.hasher.CombineHash(0, leaf.Hash, leaf.Hash)
	}

	currentIdx := leaf.Parent
	depth := 1
	for len(authPath) < int(t.depth)-1 {
		switch n := t.arena.NodeAt(currentIdx).(type) {
		case EmptyNode:
			authPath = append(authPath, WitnessNode[Hash]{Right: false, Hash: current})
			current = t.hasher.CombineHash(depth, current, current)
		case LeftNode[Hash]:
			authPath = append(authPath, WitnessNode[Hash]{Right: false, Hash: n.HashOfSibling})
			current = t.hasher.CombineHash(depth, current, n.HashOfSibling)
			currentIdx = n.Parent
		case RightNode[Hash]:
			authPath = append(authPath, WitnessNode[Hash]{Right: true, Hash: n.HashOfSibling})
			current = t.hasher.CombineHash(depth, n.HashOfSibling, current)
			currentIdx = t.parentIndex(n.Left)
		}
		depth++
	}

	root, _ := t.RootHash()
	return Witness[Hash]{TreeSize: t.Len(), RootHash: root, AuthPath: authPath}, true
}

// Verify checks a Witness against a leaf hash by folding the
// authentication path through the supplied Hasher's CombineHash and
// comparing against the witness's captured root. Hash must be
// comparable so the final equality check is well defined.
func Verify[Hash comparable, Element any](hasher Hasher[Hash, Element], leafHash Hash, w Witness[Hash]) bool {
	current := leafHash
	for depth, node := range w.AuthPath {
		if node.Right {
			current = hasher.CombineHash(depth, node.Hash, current)
		} else {
			current = hasher.CombineHash(depth, current, node.Hash)
		}
	}
	return current == w.RootHash
}
