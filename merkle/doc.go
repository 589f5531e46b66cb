// Package merkle implements an append-only, fixed-height Merkle tree
// specialized for cryptocurrency-style note commitments (the archetypal
// instance is a 32-level Sapling-style note commitment tree).
//
// The tree supports insertion of a leaf element, computation of the
// current root, computation of the root as it existed at any prior size,
// truncation back to a prior size, construction of an authentication path
// (witness) for any leaf, and verification of a witness against a root.
// The hash function, element type, and element codec are supplied by the
// host through the Hasher interface and the Hash/Element type parameters.
//
// Internally the tree is stored in an arena: internal nodes and leaves
// live in two index-addressed regions (see Arena), never in a pointer
// graph. Internal nodes cache the hash of their *sibling* subtree rather
// than their own hash, which keeps both the witness walk and the
// rehash-on-insert walk local and O(depth).
package merkle
