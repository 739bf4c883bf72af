package chainmodel

import "github.com/zbridge/relay/internal/xcrypto"

// EpochLength bounds the History ring buffer.
const EpochLength = 256

// BFT is the validator-set/threshold configuration committed in state.
// Series is reserved for future leader-rotation randomness; the dev
// deployment never rotates and always selects the single configured
// authority.
type BFT struct {
	Validators []PubKey32
	Threshold  uint8
	Series     []xcrypto.Hash
}

// IsValidator reports whether pub is a member of the validator set.
func (b *BFT) IsValidator(pub PubKey32) bool {
	for _, v := range b.Validators {
		if v == pub {
			return true
		}
	}
	return false
}

// ValidateVotes counts header.Votes that are both cast by a known
// validator and a valid Ed25519 signature over header.Hash(), and
// reports whether that count meets the threshold.
func (b *BFT) ValidateVotes(header *Header) (valid int, ok bool) {
	msg := header.Hash()
	seen := make(map[PubKey32]bool, len(header.Votes))
	for pub, sig := range header.Votes {
		if seen[pub] {
			continue // defensive: map keys are already unique
		}
		seen[pub] = true
		if !b.IsValidator(pub) {
			continue
		}
		if !xcrypto.VerifyEd25519(xcrypto.PubKey32(pub), msg[:], xcrypto.Signature64(sig)) {
			continue
		}
		valid++
	}
	return valid, valid >= int(b.Threshold)
}

// PubKey32 and Signature64 alias the xcrypto primitives so callers
// outside this package never need to import xcrypto just to name a
// validator key or vote signature.
type PubKey32 = xcrypto.PubKey32
type Signature64 = xcrypto.Signature64

// Head identifies a finalized block by slot and header hash.
type Head struct {
	Slot uint32
	Hash xcrypto.Hash
}

// History is a bounded ring of the most recent finalized heads.
type History struct {
	entries []Head
}

// Push appends head, evicting the oldest entry once the ring exceeds
// EpochLength.
func (h *History) Push(head Head) {
	h.entries = append(h.entries, head)
	if len(h.entries) > EpochLength {
		h.entries = h.entries[len(h.entries)-EpochLength:]
	}
}

// Latest returns the most recently pushed head, or the zero Head if
// empty.
func (h *History) Latest() Head {
	if len(h.entries) == 0 {
		return Head{}
	}
	return h.entries[len(h.entries)-1]
}

// Entries returns the ring contents oldest-first.
func (h *History) Entries() []Head { return h.entries }

// State is the committed chain state: validator set/threshold,
// recent-head history, the rolling accumulator, and the current head.
// In-progress and completed bundles are not part of State; they exist
// only in the pool package's in-memory BundlePool.
type State struct {
	BFT         BFT
	History     History
	Accumulator xcrypto.Hash
	Head        Head
}
