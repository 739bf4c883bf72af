package xcrypto

import "crypto/ed25519"

// PubKey32 is a raw 32-byte Ed25519 public key, used for both validator
// authority keys (block votes) and FROST group public keys.
type PubKey32 [32]byte

// Signature64 is a raw 64-byte Ed25519/Schnorr signature.
type Signature64 [64]byte

// VerifyEd25519 checks sig over msg under pub. It never panics on
// malformed input, unlike crypto/ed25519.Verify on wrong-length keys.
func VerifyEd25519(pub PubKey32, msg []byte, sig Signature64) bool {
	return ed25519.Verify(ed25519.PublicKey(pub[:]), msg, sig[:])
}
