package refhash

import (
	"encoding/binary"
	"io"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/crypto"
)

// KeccakHasher implements merkle.Hasher[common.Hash, Commitment] using
// Keccak-256, the hash most EVM-style chains already use for
// commitments and trie nodes. It is an alternative to Hasher for hosts
// that want their note commitment tree to share a hash function with
// the rest of an Ethereum-style state layer.
type KeccakHasher struct{}

// MerkleHash hashes a leaf commitment as keccak256(domainLeaf || c).
func (KeccakHasher) MerkleHash(c Commitment) common.Hash {
	return crypto.Keccak256Hash([]byte{domainLeaf}, c[:])
}

// CombineHash hashes an interior pairing as
// keccak256(domainInterior || depth-varint || left || right).
func (KeccakHasher) CombineHash(depth int, left, right common.Hash) common.Hash {
	var depthBuf [binary.MaxVarintLen64]byte
	n := binary.PutUvarint(depthBuf[:], uint64(depth))
	return crypto.Keccak256Hash([]byte{domainInterior}, depthBuf[:n], left[:], right[:])
}

// ReadElement reads a 32-byte commitment.
func (KeccakHasher) ReadElement(r io.Reader) (Commitment, error) {
	var c Commitment
	_, err := io.ReadFull(r, c[:])
	return c, err
}

// WriteElement writes a 32-byte commitment.
func (KeccakHasher) WriteElement(w io.Writer, c Commitment) error {
	_, err := w.Write(c[:])
	return err
}

// ReadHash reads a 32-byte hash.
func (KeccakHasher) ReadHash(r io.Reader) (common.Hash, error) {
	var h common.Hash
	_, err := io.ReadFull(r, h[:])
	return h, err
}

// WriteHash writes a 32-byte hash.
func (KeccakHasher) WriteHash(w io.Writer, h common.Hash) error {
	_, err := w.Write(h[:])
	return err
}
