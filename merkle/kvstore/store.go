package kvstore

import (
	"bytes"
	"fmt"
	"sync"

	"github.com/BeanstalkNetwork/merkle-notes/merkle"
)

// Arena is a merkle.Arena embodiment backed by a Database. Every public
// method opens its own transaction: it reads whatever counters it
// needs, builds a Batch, and commits it with a single Write() call
// before returning. Transactions are not reentrant — calling any
// public method from inside another's transaction deadlocks on mu,
// by design, since nothing inside this package ever needs to.
type Arena[Hash any, Element any] struct {
	db     Database
	hasher merkle.Hasher[Hash, Element]
	mu     sync.Mutex
}

// NewArena wraps db as a merkle.Arena, installing the Empty sentinel
// at node index 0 the first time it is used against a fresh database.
func NewArena[Hash any, Element any](db Database, hasher merkle.Hasher[Hash, Element]) (*Arena[Hash, Element], error) {
	a := &Arena[Hash, Element]{db: db, hasher: hasher}

	has, err := db.Has(nodeCountKey())
	if err != nil {
		return nil, fmt.Errorf("kvstore: probe node count: %w", err)
	}
	if has {
		return a, nil
	}

	empty, err := encodeNode[Hash, Element](hasher, merkle.EmptyNode{})
	if err != nil {
		return nil, fmt.Errorf("kvstore: encode empty sentinel: %w", err)
	}
	b := db.NewBatch()
	if err := b.Put(nodeKey(0), empty); err != nil {
		return nil, err
	}
	if err := b.Put(nodeCountKey(), putUint32(1)); err != nil {
		return nil, err
	}
	if err := b.Put(leafCountKey(), putUint32(0)); err != nil {
		return nil, err
	}
	if err := b.Write(); err != nil {
		return nil, fmt.Errorf("kvstore: install empty sentinel: %w", err)
	}
	return a, nil
}

func (a *Arena[Hash, Element]) readCounter(key []byte) uint32 {
	val, err := a.db.Get(key)
	if err != nil {
		panic(merkle.ProgrammerError{Op: "kvstore.readCounter", Msg: fmt.Sprintf("%s: %v", key, err)})
	}
	return getUint32(val)
}

func (a *Arena[Hash, Element]) NodeAt(i merkle.NodeIndex) merkle.Node[Hash] {
	a.mu.Lock()
	defer a.mu.Unlock()

	raw, err := a.db.Get(nodeKey(uint32(i)))
	if err != nil {
		panic(merkle.ProgrammerError{Op: "kvstore.NodeAt", Msg: fmt.Sprintf("index %d: %v", i, err)})
	}
	n, err := decodeNode[Hash, Element](a.hasher, raw)
	if err != nil {
		panic(merkle.ProgrammerError{Op: "kvstore.NodeAt", Msg: err.Error()})
	}
	return n
}

func (a *Arena[Hash, Element]) SetNode(i merkle.NodeIndex, n merkle.Node[Hash]) {
	a.mu.Lock()
	defer a.mu.Unlock()

	raw, err := encodeNode[Hash, Element](a.hasher, n)
	if err != nil {
		panic(merkle.ProgrammerError{Op: "kvstore.SetNode", Msg: err.Error()})
	}
	b := a.db.NewBatch()
	if err := b.Put(nodeKey(uint32(i)), raw); err != nil {
		panic(merkle.ProgrammerError{Op: "kvstore.SetNode", Msg: err.Error()})
	}
	if err := b.Write(); err != nil {
		panic(merkle.ProgrammerError{Op: "kvstore.SetNode", Msg: err.Error()})
	}
}

func (a *Arena[Hash, Element]) AppendNode(n merkle.Node[Hash]) merkle.NodeIndex {
	a.mu.Lock()
	defer a.mu.Unlock()

	idx := a.readCounter(nodeCountKey())
	raw, err := encodeNode[Hash, Element](a.hasher, n)
	if err != nil {
		panic(merkle.ProgrammerError{Op: "kvstore.AppendNode", Msg: err.Error()})
	}
	b := a.db.NewBatch()
	if err := b.Put(nodeKey(idx), raw); err != nil {
		panic(merkle.ProgrammerError{Op: "kvstore.AppendNode", Msg: err.Error()})
	}
	if err := b.Put(nodeCountKey(), putUint32(idx+1)); err != nil {
		panic(merkle.ProgrammerError{Op: "kvstore.AppendNode", Msg: err.Error()})
	}
	if err := b.Write(); err != nil {
		panic(merkle.ProgrammerError{Op: "kvstore.AppendNode", Msg: err.Error()})
	}
	return merkle.NodeIndex(idx)
}

func (a *Arena[Hash, Element]) TruncateNodes(newLen uint32) {
	a.mu.Lock()
	defer a.mu.Unlock()

	cur := a.readCounter(nodeCountKey())
	if newLen > cur {
		panic(merkle.ProgrammerError{Op: "kvstore.TruncateNodes", Msg: fmt.Sprintf("newLen %d exceeds len %d", newLen, cur)})
	}
	b := a.db.NewBatch()
	for i := newLen; i < cur; i++ {
		if err := b.Delete(nodeKey(i)); err != nil {
			panic(merkle.ProgrammerError{Op: "kvstore.TruncateNodes", Msg: err.Error()})
		}
	}
	if err := b.Put(nodeCountKey(), putUint32(newLen)); err != nil {
		panic(merkle.ProgrammerError{Op: "kvstore.TruncateNodes", Msg: err.Error()})
	}
	if err := b.Write(); err != nil {
		panic(merkle.ProgrammerError{Op: "kvstore.TruncateNodes", Msg: err.Error()})
	}
}

func (a *Arena[Hash, Element]) LenNodes() uint32 {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.readCounter(nodeCountKey())
}

func (a *Arena[Hash, Element]) LeafAt(k merkle.LeafIndex) merkle.Leaf[Hash, Element] {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.leafAtLocked(k)
}

func (a *Arena[Hash, Element]) leafAtLocked(k merkle.LeafIndex) merkle.Leaf[Hash, Element] {
	metaRaw, err := a.db.Get(leafMetaKey(uint32(k)))
	if err != nil {
		panic(merkle.ProgrammerError{Op: "kvstore.LeafAt", Msg: fmt.Sprintf("index %d: %v", k, err)})
	}
	parent, hash, err := decodeLeafMeta[Hash, Element](a.hasher, metaRaw)
	if err != nil {
		panic(merkle.ProgrammerError{Op: "kvstore.LeafAt", Msg: err.Error()})
	}
	elemRaw, err := a.db.Get(leafElemKey(uint32(k)))
	if err != nil {
		panic(merkle.ProgrammerError{Op: "kvstore.LeafAt", Msg: fmt.Sprintf("index %d: %v", k, err)})
	}
	element, err := a.hasher.ReadElement(bytes.NewReader(elemRaw))
	if err != nil {
		panic(merkle.ProgrammerError{Op: "kvstore.LeafAt", Msg: err.Error()})
	}
	return merkle.Leaf[Hash, Element]{Element: element, Parent: parent, Hash: hash}
}

func (a *Arena[Hash, Element]) AppendLeaf(l merkle.Leaf[Hash, Element]) merkle.LeafIndex {
	a.mu.Lock()
	defer a.mu.Unlock()

	idx := a.readCounter(leafCountKey())
	metaRaw, err := encodeLeafMeta[Hash, Element](a.hasher, l.Parent, l.Hash)
	if err != nil {
		panic(merkle.ProgrammerError{Op: "kvstore.AppendLeaf", Msg: err.Error()})
	}
	var elemBuf bytes.Buffer
	if err := a.hasher.WriteElement(&elemBuf, l.Element); err != nil {
		panic(merkle.ProgrammerError{Op: "kvstore.AppendLeaf", Msg: err.Error()})
	}

	b := a.db.NewBatch()
	if err := b.Put(leafMetaKey(idx), metaRaw); err != nil {
		panic(merkle.ProgrammerError{Op: "kvstore.AppendLeaf", Msg: err.Error()})
	}
	if err := b.Put(leafElemKey(idx), elemBuf.Bytes()); err != nil {
		panic(merkle.ProgrammerError{Op: "kvstore.AppendLeaf", Msg: err.Error()})
	}
	if err := b.Put(leafCountKey(), putUint32(idx+1)); err != nil {
		panic(merkle.ProgrammerError{Op: "kvstore.AppendLeaf", Msg: err.Error()})
	}
	if err := b.Write(); err != nil {
		panic(merkle.ProgrammerError{Op: "kvstore.AppendLeaf", Msg: err.Error()})
	}
	return merkle.LeafIndex(idx)
}

func (a *Arena[Hash, Element]) SetLeafParent(k merkle.LeafIndex, p merkle.NodeIndex) {
	a.mu.Lock()
	defer a.mu.Unlock()

	existing := a.leafAtLocked(k)
	metaRaw, err := encodeLeafMeta[Hash, Element](a.hasher, p, existing.Hash)
	if err != nil {
		panic(merkle.ProgrammerError{Op: "kvstore.SetLeafParent", Msg: err.Error()})
	}
	b := a.db.NewBatch()
	if err := b.Put(leafMetaKey(uint32(k)), metaRaw); err != nil {
		panic(merkle.ProgrammerError{Op: "kvstore.SetLeafParent", Msg: err.Error()})
	}
	if err := b.Write(); err != nil {
		panic(merkle.ProgrammerError{Op: "kvstore.SetLeafParent", Msg: err.Error()})
	}
}

func (a *Arena[Hash, Element]) PopLeaf() {
	a.mu.Lock()
	defer a.mu.Unlock()

	cur := a.readCounter(leafCountKey())
	if cur == 0 {
		panic(merkle.ProgrammerError{Op: "kvstore.PopLeaf", Msg: "arena has no leaves"})
	}
	idx := cur - 1
	b := a.db.NewBatch()
	if err := b.Delete(leafMetaKey(idx)); err != nil {
		panic(merkle.ProgrammerError{Op: "kvstore.PopLeaf", Msg: err.Error()})
	}
	if err := b.Delete(leafElemKey(idx)); err != nil {
		panic(merkle.ProgrammerError{Op: "kvstore.PopLeaf", Msg: err.Error()})
	}
	if err := b.Put(leafCountKey(), putUint32(idx)); err != nil {
		panic(merkle.ProgrammerError{Op: "kvstore.PopLeaf", Msg: err.Error()})
	}
	if err := b.Write(); err != nil {
		panic(merkle.ProgrammerError{Op: "kvstore.PopLeaf", Msg: err.Error()})
	}
}

func (a *Arena[Hash, Element]) LenLeaves() uint32 {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.readCounter(leafCountKey())
}

var _ merkle.Arena[string, string] = (*Arena[string, string])(nil)
