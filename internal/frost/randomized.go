package frost

// RandomizedVerifyingKey is the per-signature verifying key produced by
// re-randomizing the group's public key with the caller-supplied
// randomizer: pk' = pk + randomizer*G. This is what SignRandomized's
// signature actually verifies under: the shielded
// chain's Orchard protocol uses a fresh randomizer per spend so that
// spend-authorization signatures for the same underlying key are
// unlinkable across notes.
type RandomizedVerifyingKey = GroupPubKey

// Randomizer is the alpha scalar the shielded-transaction builder
// derives per spent note; the signer consumes it and never chooses it
// itself.
type Randomizer [32]byte

func (r Randomizer) toScalar() *scalar {
	return scalarFromBytesModOrder(r)
}

// SignRandomized produces a Schnorr signature over message under the
// re-randomized key pk+randomizer*G, using the same quorum-aggregated
// two-round protocol as Sign. This is the primitive
// spend-authorization signatures for ZCHAIN's Orchard notes are built
// from; see SignTx for the full per-transaction orchestration.
func (g *Group) SignRandomized(message []byte, randomizer Randomizer) (Signature, RandomizedVerifyingKey, error) {
	alpha := randomizer.toScalar()
	randomizedKey := RandomizedVerifyingKey(encodePointSlice(
		pointAdd(mustDecodePoint(g.groupPub), basepointMul(alpha)),
	))

	sig, err := g.signWithChallenge(message, randomizedKey, alpha)
	if err != nil {
		return Signature{}, nil, err
	}
	return sig, randomizedKey, nil
}

// mustDecodePoint decodes a compressed Ed25519-format public key back
// into a curve point. The dealer only ever hands out points it itself
// produced via basepointMul, so this never fails in practice; a
// corrupt group public key is a programmer error, not a runtime
// condition callers need to recover from.
func mustDecodePoint(pub GroupPubKey) *point {
	p, err := decodePoint(pub)
	if err != nil {
		panic("frost: group public key is not a valid curve point: " + err.Error())
	}
	return p
}
