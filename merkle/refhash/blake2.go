// Package refhash provides a concrete, ready-to-use Hasher for
// merkle.Tree built on BLAKE2b-256, operating over 32-byte commitments.
// It exists so the rest of this module (and its demo command) has a
// real hasher to exercise without depending on any particular chain's
// note-commitment scheme.
package refhash

import (
	"encoding/binary"
	"fmt"
	"io"

	"golang.org/x/crypto/blake2b"
)

// Commitment is a 32-byte note commitment, the Element type this
// package's Hasher operates on.
type Commitment [32]byte

const (
	domainLeaf     byte = 0x00
	domainInterior byte = 0x01
)

// Hasher implements merkle.Hasher[[32]byte, Commitment] using
// BLAKE2b-256 with domain-separated, depth-tagged inputs so a leaf hash
// can never collide with an interior combine at any depth.
type Hasher struct{}

// MerkleHash hashes a leaf commitment as blake2b(domainLeaf || c).
func (Hasher) MerkleHash(c Commitment) [32]byte {
	h, err := blake2b.New256(nil)
	if err != nil {
		panic(fmt.Sprintf("refhash: blake2b.New256: %v", err))
	}
	h.Write([]byte{domainLeaf})
	h.Write(c[:])
	var out [32]byte
	copy(out[:], h.Sum(nil))
	return out
}

// CombineHash hashes an interior pairing as
// blake2b(domainInterior || depth-varint || left || right).
func (Hasher) CombineHash(depth int, left, right [32]byte) [32]byte {
	h, err := blake2b.New256(nil)
	if err != nil {
		panic(fmt.Sprintf("refhash: blake2b.New256: %v", err))
	}
	var depthBuf [binary.MaxVarintLen64]byte
	n := binary.PutUvarint(depthBuf[:], uint64(depth))
	h.Write([]byte{domainInterior})
	h.Write(depthBuf[:n])
	h.Write(left[:])
	h.Write(right[:])
	var out [32]byte
	copy(out[:], h.Sum(nil))
	return out
}

// ReadElement reads a 32-byte commitment.
func (Hasher) ReadElement(r io.Reader) (Commitment, error) {
	var c Commitment
	_, err := io.ReadFull(r, c[:])
	return c, err
}

// WriteElement writes a 32-byte commitment.
func (Hasher) WriteElement(w io.Writer, c Commitment) error {
	_, err := w.Write(c[:])
	return err
}

// ReadHash reads a 32-byte hash.
func (Hasher) ReadHash(r io.Reader) ([32]byte, error) {
	var h [32]byte
	_, err := io.ReadFull(r, h[:])
	return h, err
}

// WriteHash writes a 32-byte hash.
func (Hasher) WriteHash(w io.Writer, h [32]byte) error {
	_, err := w.Write(h[:])
	return err
}
