package chainmodel

import (
	"fmt"

	"github.com/zbridge/relay/internal/codec"
	"github.com/zbridge/relay/internal/xcrypto"
)

func decodeBridge(r *codec.Reader) (Bridge, error) {
	var b Bridge
	coin, err := r.Uint8()
	if err != nil {
		return b, err
	}
	b.Coin = Coin(coin)
	if b.Recipient, err = r.VarBytes(); err != nil {
		return b, err
	}
	if b.Amount, err = r.Uint64LE(); err != nil {
		return b, err
	}
	src, err := r.Uint8()
	if err != nil {
		return b, err
	}
	b.Source = Chain(src)
	tgt, err := r.Uint8()
	if err != nil {
		return b, err
	}
	b.Target = Chain(tgt)
	if b.Txid, err = r.VarBytes(); err != nil {
		return b, err
	}
	return b, nil
}

func decodeReceipt(r *codec.Reader) (Receipt, error) {
	var rc Receipt
	var err error
	if rc.Anchor, err = r.VarBytes(); err != nil {
		return rc, err
	}
	coin, err := r.Uint8()
	if err != nil {
		return rc, err
	}
	rc.Coin = Coin(coin)
	if rc.Txid, err = r.VarBytes(); err != nil {
		return rc, err
	}
	src, err := r.Uint8()
	if err != nil {
		return rc, err
	}
	rc.Source = Chain(src)
	tgt, err := r.Uint8()
	if err != nil {
		return rc, err
	}
	rc.Target = Chain(tgt)
	return rc, nil
}

// DecodeBridgeBundle parses the encoding produced by BridgeBundle.Encode.
func DecodeBridgeBundle(data []byte) (*BridgeBundle, error) {
	return decodeBundleInline(codec.NewReader(data))
}

// DecodeExtrinsic parses the encoding produced by Extrinsic.Encode.
func DecodeExtrinsic(data []byte) (*Extrinsic, error) {
	r := codec.NewReader(data)
	e := NewExtrinsic()
	bundleN, err := r.Count()
	if err != nil {
		return nil, err
	}
	for i := 0; i < bundleN; i++ {
		hb, err := r.RawBytes(xcrypto.HashSize)
		if err != nil {
			return nil, err
		}
		var h xcrypto.Hash
		copy(h[:], hb)

		// Bundle encodings are not length-prefixed individually, so
		// decoding shares the extrinsic's cursor.
		bundle, err := decodeBundleInline(r)
		if err != nil {
			return nil, fmt.Errorf("extrinsic: bundle %d: %w", i, err)
		}
		e.Bridge[h] = bundle
	}
	receiptN, err := r.Count()
	if err != nil {
		return nil, err
	}
	for i := 0; i < receiptN; i++ {
		rc, err := decodeReceipt(r)
		if err != nil {
			return nil, fmt.Errorf("extrinsic: receipt %d: %w", i, err)
		}
		e.Receipts = append(e.Receipts, rc)
	}
	return e, nil
}

// decodeBundleInline decodes one BridgeBundle from r's current
// position.
func decodeBundleInline(r *codec.Reader) (*BridgeBundle, error) {
	tgt, err := r.Uint8()
	if err != nil {
		return nil, err
	}
	bundle := &BridgeBundle{Target: Chain(tgt)}
	n, err := r.Count()
	if err != nil {
		return nil, err
	}
	for i := 0; i < n; i++ {
		b, err := decodeBridge(r)
		if err != nil {
			return nil, fmt.Errorf("bundle: bridge %d: %w", i, err)
		}
		bundle.Bridges = append(bundle.Bridges, b)
	}
	if bundle.Data, err = r.VarBytes(); err != nil {
		return nil, err
	}
	sigN, err := r.Count()
	if err != nil {
		return nil, err
	}
	for i := 0; i < sigN; i++ {
		sig, err := r.VarBytes()
		if err != nil {
			return nil, err
		}
		bundle.Signatures = append(bundle.Signatures, sig)
	}
	return bundle, nil
}

// DecodeHeader parses the voteless+votes encoding produced by Header.Encode.
func DecodeHeader(data []byte) (*Header, error) {
	r := codec.NewReader(data)
	h := &Header{Votes: make(map[PubKey32]Signature64)}
	var err error
	if h.Slot, err = r.Uint32LE(); err != nil {
		return nil, err
	}
	if err = readHash(r, &h.Parent); err != nil {
		return nil, err
	}
	if err = readHash(r, &h.State); err != nil {
		return nil, err
	}
	if err = readHash(r, &h.Accumulator); err != nil {
		return nil, err
	}
	if err = readHash(r, &h.Extrinsic); err != nil {
		return nil, err
	}
	n, err := r.Count()
	if err != nil {
		return nil, err
	}
	for i := 0; i < n; i++ {
		kb, err := r.RawBytes(32)
		if err != nil {
			return nil, err
		}
		sb, err := r.RawBytes(64)
		if err != nil {
			return nil, err
		}
		var k PubKey32
		var s Signature64
		copy(k[:], kb)
		copy(s[:], sb)
		h.Votes[k] = s
	}
	return h, nil
}

func readHash(r *codec.Reader, out *xcrypto.Hash) error {
	b, err := r.RawBytes(xcrypto.HashSize)
	if err != nil {
		return err
	}
	copy(out[:], b)
	return nil
}

// DecodeBlock parses the encoding produced by Block.Encode. Because
// Header.Encode and Extrinsic.Encode are both self-delimiting (their
// own length-prefixed fields consume exactly their content), decoding
// the concatenation requires knowing the header's byte length; Block
// therefore encodes a length prefix ahead of the header so the two
// halves can be split unambiguously. See Block.Encode.
func DecodeBlock(data []byte) (*Block, error) {
	r := codec.NewReader(data)
	headerLen, err := r.Uint32LE()
	if err != nil {
		return nil, err
	}
	headerBytes, err := r.RawBytes(int(headerLen))
	if err != nil {
		return nil, err
	}
	header, err := DecodeHeader(headerBytes)
	if err != nil {
		return nil, fmt.Errorf("block: header: %w", err)
	}
	rest := data[len(data)-r.Remaining():]
	ext, err := DecodeExtrinsic(rest)
	if err != nil {
		return nil, fmt.Errorf("block: extrinsic: %w", err)
	}
	return &Block{Header: *header, Extrinsic: *ext}, nil
}
