package merkle

// Arena provides O(1) positional access to internal nodes and leaves.
// It is the sole owner of node and leaf storage: every cross-node
// reference in the tree is an index into one of the two regions an Arena
// manages, never a pointer. Two implementations ship with this module:
// the in-memory arena returned by NewMemoryArena, and the transactional
// key/value-store-backed arena in package merkle/kvstore.
//
// NodeAt and LeafAt return copies; mutating the returned value does not
// change the arena's stored value. Out-of-range access on any accessor
// is a programmer error and panics with a ProgrammerError.
type Arena[Hash any, Element any] interface {
	// NodeAt returns a copy of the node at index i. 0 <= i < LenNodes().
	NodeAt(i NodeIndex) Node[Hash]
	// SetNode overwrites the node at an existing index i.
	SetNode(i NodeIndex, n Node[Hash])
	// AppendNode grows the node region by one entry and returns its index.
	AppendNode(n Node[Hash]) NodeIndex
	// TruncateNodes shrinks the node region to newLen entries.
	TruncateNodes(newLen uint32)
	// LenNodes returns the number of stored node entries (including the
	// Empty sentinel at index 0).
	LenNodes() uint32

	// LeafAt returns a copy of the leaf at index k. 0 <= k < LenLeaves().
	LeafAt(k LeafIndex) Leaf[Hash, Element]
	// AppendLeaf grows the leaf region by one entry and returns its index.
	AppendLeaf(l Leaf[Hash, Element]) LeafIndex
	// SetLeafParent rebinds the parent of an existing leaf.
	SetLeafParent(k LeafIndex, p NodeIndex)
	// PopLeaf removes the last leaf. It is a programmer error to call
	// PopLeaf on an empty arena.
	PopLeaf()
	// LenLeaves returns the number of stored leaves.
	LenLeaves() uint32
}
