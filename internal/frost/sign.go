package frost

import (
	"crypto/ed25519"
	"crypto/rand"
	"fmt"
)

// Signature is a standard 64-byte Schnorr signature (R || S),
// verifiable under a GroupPubKey by crypto/ed25519.Verify exactly like
// any ordinary Ed25519 signature — the whole point of FROST is that
// the verifier cannot tell a threshold signature from a single-key
// one.
type Signature [64]byte

// quorum returns the ids of every dealt share: the dev simulation has
// every share available locally, so all n participants sign, and the
// Lagrange coefficients are taken over that full set.
func (g *Group) quorum() []uint16 {
	ids := make([]uint16, len(g.shares))
	for i := range ids {
		ids[i] = g.shares[i].id
	}
	return ids
}

// Sign runs the standard two-round FROST protocol — round 1 (nonce
// commitment) and round 2 (signature share) — simulated for every
// dealt share in this single process, then aggregates into one
// Ed25519-verifiable Schnorr signature. Production deployments replace
// this in-process simulation with networked commitment/share exchange
// between participants but expose the identical Sign(message)
// contract.
func (g *Group) Sign(message []byte) (Signature, error) {
	return g.signWithChallenge(message, g.groupPub, nil)
}

// signWithChallenge is the shared core of Sign and SignRandomized: it
// runs round 1/round 2 against whatever verifying key (plain or
// randomized) the challenge must bind to, optionally applying a
// randomizer to every participant's secret share before computing
// their signature share.
func (g *Group) signWithChallenge(message []byte, verifyingKey GroupPubKey, randomizer *scalar) (Signature, error) {
	quorum := g.quorum()
	if len(quorum) < int(g.threshold) {
		return Signature{}, ErrInsufficientShares
	}

	// Round 1: each participant commits to a fresh random nonce.
	nonces := make(map[uint16]*scalar, len(quorum))
	var R *point
	for _, id := range quorum {
		r, err := randomScalar(rand.Reader)
		if err != nil {
			return Signature{}, fmt.Errorf("frost: round 1 nonce for participant %d: %w", id, err)
		}
		nonces[id] = r
		Ri := basepointMul(r)
		if R == nil {
			R = Ri
		} else {
			R = pointAdd(R, Ri)
		}
	}

	c := hashToScalar(encodePointSlice(R), []byte(verifyingKey), message)

	// Round 2: each participant produces its signature share
	// z_i = r_i + c * lambda_i * s_i, optionally re-randomizing its
	// share first (s_i' = s_i + randomizer, for SignRandomized).
	z := zeroScalar()
	for _, sh := range g.shares {
		r, ok := nonces[sh.id]
		if !ok {
			continue // not part of this signing quorum
		}
		secret := sh.secret
		if randomizer != nil {
			secret = scalarAdd(secret, randomizer)
		}
		lambda := lagrangeCoefficient(sh.id, quorum)
		zi := scalarAdd(r, scalarMultiply(c, scalarMultiply(lambda, secret)))
		z = scalarAdd(z, zi)
	}

	var sig Signature
	copy(sig[0:32], encodePointSlice(R))
	var zb [32]byte
	copy(zb[:], zEncode(z))
	copy(sig[32:64], zb[:])

	if !ed25519.Verify(ed25519.PublicKey(verifyingKey), message, sig[:]) {
		return Signature{}, ErrAggregationFailed
	}
	return sig, nil
}

func encodePointSlice(p *point) []byte {
	b := encodePoint(p)
	return b[:]
}

func zEncode(s *scalar) []byte {
	return scalarBytes(s)
}
