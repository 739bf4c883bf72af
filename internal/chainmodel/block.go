package chainmodel

import (
	"sort"

	"github.com/zbridge/relay/internal/codec"
	"github.com/zbridge/relay/internal/xcrypto"
)

// Extrinsic is the ordered content of a block: completed bundles keyed
// by hash (iterated in ascending hash order for determinism) and the
// receipts emitted by the bundler, ordered by anchor txid.
type Extrinsic struct {
	Bridge   map[xcrypto.Hash]*BridgeBundle
	Receipts []Receipt
}

// NewExtrinsic returns an empty extrinsic.
func NewExtrinsic() *Extrinsic {
	return &Extrinsic{Bridge: make(map[xcrypto.Hash]*BridgeBundle)}
}

// SortedReceipts returns Receipts ordered by anchor txid.
func (e *Extrinsic) SortedReceipts() []Receipt {
	out := make([]Receipt, len(e.Receipts))
	copy(out, e.Receipts)
	sort.Slice(out, func(i, j int) bool { return lessBytes(out[i].Anchor, out[j].Anchor) })
	return out
}

// Txids returns the deterministically sorted union of every bridge and
// receipt txid in the extrinsic, used for the accumulator and replay
// check. Ordering is plain lexical comparison on the raw bytes.
func (e *Extrinsic) Txids() [][]byte {
	var all [][]byte
	for _, h := range SortedBundleHashes(e.Bridge) {
		all = append(all, e.Bridge[h].Txids()...)
	}
	for _, r := range e.Receipts {
		all = append(all, r.Txid)
	}
	sort.Slice(all, func(i, j int) bool { return lessBytes(all[i], all[j]) })
	return all
}

func (b *Bridge) encode(w *codec.Writer) {
	w.Uint8(uint8(b.Coin)).VarBytes(b.Recipient).Uint64LE(b.Amount)
	w.Uint8(uint8(b.Source)).Uint8(uint8(b.Target)).VarBytes(b.Txid)
}

func (r *Receipt) encode(w *codec.Writer) {
	w.VarBytes(r.Anchor).Uint8(uint8(r.Coin)).VarBytes(r.Txid)
	w.Uint8(uint8(r.Source)).Uint8(uint8(r.Target))
}

// Encode produces the canonical encoding of the extrinsic: bundles in
// ascending hash order (keyed maps are never iterated in Go map order),
// then receipts in anchor-txid order.
func (e *Extrinsic) Encode() []byte {
	w := codec.NewWriter()
	hashes := SortedBundleHashes(e.Bridge)
	w.Slice(len(hashes), func(i int) {
		h := hashes[i]
		w.RawBytes(h[:])
		w.RawBytes(e.Bridge[h].Encode())
	})
	receipts := e.SortedReceipts()
	w.Slice(len(receipts), func(i int) { receipts[i].encode(w) })
	return w.Bytes()
}

// Hash is Blake3 of the extrinsic's canonical encoding.
func (e *Extrinsic) Hash() xcrypto.Hash {
	return xcrypto.Blake3(e.Encode())
}

// Header is the per-block envelope the mini-BFT runtime authors and
// validators vote on.
type Header struct {
	Slot        uint32
	Parent      xcrypto.Hash
	State       xcrypto.Hash
	Accumulator xcrypto.Hash
	Extrinsic   xcrypto.Hash
	Votes       map[PubKey32]Signature64
}

// votelessEncode encodes every header field except Votes, which is
// what validators actually sign (a header cannot include its own
// signature set in the signed payload).
func (h *Header) votelessEncode() []byte {
	w := codec.NewWriter()
	w.Uint32LE(h.Slot)
	w.RawBytes(h.Parent[:])
	w.RawBytes(h.State[:])
	w.RawBytes(h.Accumulator[:])
	w.RawBytes(h.Extrinsic[:])
	return w.Bytes()
}

// Hash is the value validators sign and that header.votes attest to.
func (h *Header) Hash() xcrypto.Hash {
	return xcrypto.Blake3(h.votelessEncode())
}

// SortedVoters returns the validator public keys in h.Votes in
// ascending order, for deterministic encoding/iteration.
func (h *Header) SortedVoters() []PubKey32 {
	keys := make([]PubKey32, 0, len(h.Votes))
	for k := range h.Votes {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool { return lessBytes(keys[i][:], keys[j][:]) })
	return keys
}

// Encode is the full header encoding including votes, used for block
// storage (not for the vote-signed hash).
func (h *Header) Encode() []byte {
	w := codec.NewWriter()
	w.RawBytes(h.votelessEncode())
	voters := h.SortedVoters()
	w.Slice(len(voters), func(i int) {
		v := voters[i]
		w.RawBytes(v[:])
		sig := h.Votes[v]
		w.RawBytes(sig[:])
	})
	return w.Bytes()
}

// Block pairs a header with the extrinsic it commits to.
type Block struct {
	Header    Header
	Extrinsic Extrinsic
}

// Encode is the canonical on-disk/wire encoding of the whole block. The
// header is length-prefixed so DecodeBlock can split it from the
// trailing extrinsic unambiguously.
func (b *Block) Encode() []byte {
	w := codec.NewWriter()
	w.VarBytes(b.Header.Encode())
	w.RawBytes(b.Extrinsic.Encode())
	return w.Bytes()
}
