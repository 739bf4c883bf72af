package chainmodel

import (
	"github.com/zbridge/relay/internal/codec"
	"github.com/zbridge/relay/internal/xcrypto"
)

// Encode is the canonical encoding of a BFT value stored under
// storage.StateTagBFT: validator set, threshold, and the (currently
// unused) leader-selection series, each validator/series entry in the
// fixed order they were constructed in rather than sorted, since BFT
// membership order is itself part of the committed state (unlike the
// ordering of bundle/receipt maps, which must be canonicalized).
func (b *BFT) Encode() []byte {
	w := codec.NewWriter()
	w.Slice(len(b.Validators), func(i int) { w.RawBytes(b.Validators[i][:]) })
	w.Uint8(b.Threshold)
	w.Slice(len(b.Series), func(i int) { w.RawBytes(b.Series[i][:]) })
	return w.Bytes()
}

// DecodeBFT parses the encoding produced by BFT.Encode.
func DecodeBFT(data []byte) (*BFT, error) {
	r := codec.NewReader(data)
	n, err := r.Count()
	if err != nil {
		return nil, err
	}
	b := &BFT{}
	for i := 0; i < n; i++ {
		raw, err := r.RawBytes(32)
		if err != nil {
			return nil, err
		}
		var pk PubKey32
		copy(pk[:], raw)
		b.Validators = append(b.Validators, pk)
	}
	if b.Threshold, err = r.Uint8(); err != nil {
		return nil, err
	}
	sn, err := r.Count()
	if err != nil {
		return nil, err
	}
	for i := 0; i < sn; i++ {
		raw, err := r.RawBytes(xcrypto.HashSize)
		if err != nil {
			return nil, err
		}
		var h xcrypto.Hash
		copy(h[:], raw)
		b.Series = append(b.Series, h)
	}
	return b, nil
}

// Encode is the canonical encoding of a Head value stored under
// storage.StateTagHead.
func (h Head) Encode() []byte {
	w := codec.NewWriter()
	w.Uint32LE(h.Slot)
	w.RawBytes(h.Hash[:])
	return w.Bytes()
}

// DecodeHead parses the encoding produced by Head.Encode.
func DecodeHead(data []byte) (Head, error) {
	r := codec.NewReader(data)
	var h Head
	var err error
	if h.Slot, err = r.Uint32LE(); err != nil {
		return h, err
	}
	raw, err := r.RawBytes(xcrypto.HashSize)
	if err != nil {
		return h, err
	}
	copy(h.Hash[:], raw)
	return h, nil
}
