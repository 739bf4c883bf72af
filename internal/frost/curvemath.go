package frost

import (
	"crypto/sha512"
	"fmt"
	"io"

	"github.com/oasisprotocol/curve25519-voi/curve"
	voiscalar "github.com/oasisprotocol/curve25519-voi/curve/scalar"
)

// scalar and point alias curve25519-voi's scalar/group-element types so
// the rest of this package never spells out the import; every other
// file in this package only ever calls the small helper set below.
type scalar = voiscalar.Scalar
type point = curve.EdwardsPoint

// newScalarFromWideBytes reduces a 64-byte uniform buffer (typically a
// SHA-512 digest) modulo the group order L, matching how Ed25519 and
// FROST both derive challenge/nonce scalars from hash output.
func newScalarFromWideBytes(b [64]byte) *scalar {
	s, err := voiscalar.New().SetBytesModOrderWide(b[:])
	if err != nil {
		// A 64-byte input always reduces; reaching this means the
		// buffer length above is wrong.
		panic("frost: reduce wide scalar: " + err.Error())
	}
	return s
}

// randomScalar draws a uniformly random scalar from rnd, used for
// Shamir polynomial coefficients and nonce generation.
func randomScalar(rnd io.Reader) (*scalar, error) {
	var wide [64]byte
	if _, err := io.ReadFull(rnd, wide[:]); err != nil {
		return nil, err
	}
	return newScalarFromWideBytes(wide), nil
}

// hashToScalar is the FROST challenge hash: SHA-512 over the
// concatenation of parts, reduced mod L. With parts = (R, A, M) this
// is exactly the RFC 8032 Ed25519 verification challenge.
func hashToScalar(parts ...[]byte) *scalar {
	h := sha512.New()
	for _, p := range parts {
		h.Write(p)
	}
	var sum [64]byte
	copy(sum[:], h.Sum(nil))
	return newScalarFromWideBytes(sum)
}

// basepointMul returns scalar*G, the public key / commitment
// corresponding to a secret scalar.
func basepointMul(s *scalar) *point {
	p := curve.NewEdwardsPoint()
	p.MulBasepoint(curve.ED25519_BASEPOINT_TABLE, s)
	return p
}

// encodePoint returns the canonical 32-byte compressed encoding of p,
// identical to an Ed25519 public key's wire form.
func encodePoint(p *point) [32]byte {
	var compressed curve.CompressedEdwardsY
	compressed.SetEdwardsPoint(p)
	var out [32]byte
	copy(out[:], compressed[:])
	return out
}

// zeroScalar returns the additive identity, the Horner-evaluation and
// share-aggregation accumulators' starting value.
func zeroScalar() *scalar {
	return voiscalar.New()
}

// scalarFromUint16 embeds a small non-negative integer (a participant
// id) as a scalar.
func scalarFromUint16(x uint16) *scalar {
	var b [32]byte
	b[0] = byte(x)
	b[1] = byte(x >> 8)
	return scalarFromBytesModOrder(b)
}

// scalarFromBytesModOrder interprets b as a little-endian integer
// reduced mod L.
func scalarFromBytesModOrder(b [32]byte) *scalar {
	s, err := voiscalar.New().SetBytesModOrder(b[:])
	if err != nil {
		panic("frost: reduce scalar: " + err.Error())
	}
	return s
}

// scalarBytes returns the canonical 32-byte little-endian encoding of
// s, the S half of a wire signature.
func scalarBytes(s *scalar) []byte {
	out := make([]byte, voiscalar.ScalarSize)
	if err := s.ToBytes(out); err != nil {
		panic("frost: encode scalar: " + err.Error())
	}
	return out
}

func scalarAdd(a, b *scalar) *scalar {
	return voiscalar.New().Add(a, b)
}

func scalarSub(a, b *scalar) *scalar {
	return voiscalar.New().Sub(a, b)
}

func scalarMultiply(a, b *scalar) *scalar {
	return voiscalar.New().Mul(a, b)
}

func scalarInvert(a *scalar) *scalar {
	return voiscalar.New().Invert(a)
}

func pointAdd(a, b *point) *point {
	return curve.NewEdwardsPoint().Add(a, b)
}

// decodePoint parses a 32-byte compressed Ed25519-format public key
// into a curve point.
func decodePoint(b []byte) (*point, error) {
	var compressed curve.CompressedEdwardsY
	if _, err := compressed.SetBytes(b); err != nil {
		return nil, fmt.Errorf("frost: decompress point: %w", err)
	}
	p := curve.NewEdwardsPoint()
	if _, err := p.SetCompressedY(&compressed); err != nil {
		return nil, fmt.Errorf("frost: decompress point: %w", err)
	}
	return p, nil
}
