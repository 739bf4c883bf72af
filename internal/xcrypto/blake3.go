// Package xcrypto collects the bridge's primitive cryptography: Blake3
// hashing, Ed25519 verification, and the binary Merkle tree over the
// storage engine's state column.
package xcrypto

import (
	"encoding/hex"

	"lukechampine.com/blake3"
)

// HashSize is the digest size used throughout the bridge.
const HashSize = 32

// Hash is a 32-byte Blake3 digest.
type Hash [HashSize]byte

// Bytes returns the hash as a plain slice.
func (h Hash) Bytes() []byte { return h[:] }

// String returns the hex encoding of h.
func (h Hash) String() string { return hex.EncodeToString(h[:]) }

// IsZero reports whether h is the all-zero hash (used as the empty
// accumulator and empty-tree Merkle root).
func (h Hash) IsZero() bool {
	for _, b := range h {
		if b != 0 {
			return false
		}
	}
	return true
}

// Blake3 hashes the concatenation of parts.
func Blake3(parts ...[]byte) Hash {
	h := blake3.New(HashSize, nil)
	for _, p := range parts {
		h.Write(p)
	}
	var out Hash
	copy(out[:], h.Sum(nil))
	return out
}

// Blake3Node hashes a Merkle internal node: Blake3("node" || L || R).
// Operands are raw byte strings, not digests: at the tree's first
// level they are state-column values, and a lifted unpaired node stays
// a raw value until it meets a sibling.
func Blake3Node(left, right []byte) Hash {
	return Blake3([]byte("node"), left, right)
}
