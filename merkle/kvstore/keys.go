package kvstore

import "encoding/binary"

// Key prefixes. Each region of the tree (counters, leaves, internal
// nodes) gets its own string-prefix namespace so a prefix scan never
// crosses region boundaries.
var (
	prefixLeafCount = []byte("c:LeafCount")
	prefixNodeCount = []byte("c:NodeCount")
	prefixLeafMeta  = []byte("l:meta:")
	prefixLeafElem  = []byte("l:elem:")
	prefixNode      = []byte("n:")
)

func leafCountKey() []byte { return prefixLeafCount }
func nodeCountKey() []byte { return prefixNodeCount }

func leafMetaKey(k uint32) []byte { return appendUint32(prefixLeafMeta, k) }
func leafElemKey(k uint32) []byte { return appendUint32(prefixLeafElem, k) }
func nodeKey(i uint32) []byte     { return appendUint32(prefixNode, i) }

func appendUint32(prefix []byte, v uint32) []byte {
	out := make([]byte, len(prefix)+4)
	copy(out, prefix)
	binary.LittleEndian.PutUint32(out[len(prefix):], v)
	return out
}

func putUint32(v uint32) []byte {
	var buf [4]byte
	binary.LittleEndian.PutUint32(buf[:], v)
	return buf[:]
}

func getUint32(b []byte) uint32 {
	return binary.LittleEndian.Uint32(b)
}
