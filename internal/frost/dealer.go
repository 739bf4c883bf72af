// Package frost implements a t-of-n FROST threshold-Schnorr signer over
// the Ed25519 group: a trusted-dealer key generation (dev/bootstrap;
// production deployments substitute distributed key generation behind
// the same Signer contract), the two-round commit/sign-share protocol
// simulated in-process, and Schnorr aggregation into a standard
// 64-byte signature verifiable by crypto/ed25519.Verify under the
// group's public key.
//
// The same machinery, with an externally supplied randomizer scalar
// instead of the standard Ed25519 challenge derivation, produces the
// re-randomized spend-authorization signatures the shielded chain's
// Orchard protocol requires (SignRandomized / SignTx); the example
// corpus contains no Pallas/Vesta curve implementation (Orchard's
// native curve), so the randomized variant is implemented over this
// same Ed25519 group with the randomizer applied as pk' = pk +
// randomizer*G, the same algebraic construction RedPallas uses. See
// DESIGN.md for this Open Question resolution.
package frost

import (
	"crypto/ed25519"
	"crypto/rand"
	"fmt"
)

// GroupPubKey is the aggregate public key under which Sign's output
// verifies.
type GroupPubKey = ed25519.PublicKey

// share is one participant's secret evaluation of the dealer's
// polynomial, identified by a 1-based participant id.
type share struct {
	id     uint16
	secret *scalar
	pubKey *point
}

// Group is an immutable t-of-n FROST signing group. It is safe for
// concurrent use: Sign/SignRandomized only read the dealer-generated
// shares.
type Group struct {
	max       uint16
	threshold uint16
	groupPub  GroupPubKey
	shares    []share
}

// New runs the trusted-dealer key generation: a random degree-(min-1)
// polynomial over the Ed25519 scalar field is sampled, its constant
// term is the group secret, and participants 1..max each receive the
// polynomial's evaluation at their id. Fails if min=0, min>max, or
// max=0.
func New(max, min uint16) (*Group, error) {
	if max == 0 || min == 0 || min > max {
		return nil, fmt.Errorf("%w: max=%d min=%d", ErrInvalidParams, max, min)
	}

	coeffs := make([]*scalar, min)
	for i := range coeffs {
		c, err := randomScalar(rand.Reader)
		if err != nil {
			return nil, fmt.Errorf("frost: sample coefficient %d: %w", i, err)
		}
		coeffs[i] = c
	}

	g := &Group{max: max, threshold: min}
	g.groupPub = GroupPubKey(encodePointSlice(basepointMul(coeffs[0])))

	g.shares = make([]share, max)
	for i := uint16(1); i <= max; i++ {
		s := evalPolynomial(coeffs, i)
		g.shares[i-1] = share{id: i, secret: s, pubKey: basepointMul(s)}
	}
	return g, nil
}

// evalPolynomial evaluates coeffs (constant term first) at x using
// Horner's method entirely in scalar arithmetic.
func evalPolynomial(coeffs []*scalar, x uint16) *scalar {
	xs := scalarFromUint16(x)
	acc := zeroScalar()
	for i := len(coeffs) - 1; i >= 0; i-- {
		acc = scalarAdd(scalarMultiply(acc, xs), coeffs[i])
	}
	return acc
}

// PubKey returns the group's aggregate public key, deterministic from
// the key package.
func (g *Group) PubKey() GroupPubKey {
	out := make(GroupPubKey, len(g.groupPub))
	copy(out, g.groupPub)
	return out
}

// Threshold returns the minimum number of shares required to sign.
func (g *Group) Threshold() int { return int(g.threshold) }

// Max returns the total number of dealt shares.
func (g *Group) Max() int { return int(g.max) }
