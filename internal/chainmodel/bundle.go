package chainmodel

import (
	"sort"

	"github.com/zbridge/relay/internal/codec"
	"github.com/zbridge/relay/internal/xcrypto"
)

// BridgeBundle groups bridges targeting the same chain behind one
// outbound transaction, accumulating validator signatures until
// quorum. Data carries a chain-specific payload: the recent blockhash
// for SCHAIN, and for ZCHAIN the proof bytes of the authorized shielded
// transaction (the unsigned transaction itself is not stored).
type BridgeBundle struct {
	Target     Chain
	Bridges    []Bridge
	Data       []byte
	Signatures [][]byte
}

// Encode produces the canonical byte encoding used both for hashing
// and for on-disk/extrinsic storage.
func (b *BridgeBundle) Encode() []byte {
	w := codec.NewWriter()
	w.Uint8(uint8(b.Target))
	w.Slice(len(b.Bridges), func(i int) {
		br := b.Bridges[i]
		w.Uint8(uint8(br.Coin)).VarBytes(br.Recipient).Uint64LE(br.Amount)
		w.Uint8(uint8(br.Source)).Uint8(uint8(br.Target)).VarBytes(br.Txid)
	})
	w.VarBytes(b.Data)
	w.Slice(len(b.Signatures), func(i int) { w.VarBytes(b.Signatures[i]) })
	return w.Bytes()
}

// Hash computes hash(bundle) = Blake3(block_prev_hash || postcard(bundle)),
// scoping the bundle's identity to the block it is proposed against.
func (b *BridgeBundle) Hash(blockPrevHash xcrypto.Hash) xcrypto.Hash {
	return xcrypto.Blake3(blockPrevHash[:], b.Encode())
}

// Txids returns the source txids of every bridge in the bundle, used by
// the runtime's replay check and accumulator computation.
func (b *BridgeBundle) Txids() [][]byte {
	out := make([][]byte, len(b.Bridges))
	for i, br := range b.Bridges {
		out[i] = br.Txid
	}
	return out
}

// SortedBundleHashes returns the keys of m in ascending byte order, the
// deterministic iteration order required for extrinsic encoding and
// block packing.
func SortedBundleHashes(m map[xcrypto.Hash]*BridgeBundle) []xcrypto.Hash {
	keys := make([]xcrypto.Hash, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool {
		return lessBytes(keys[i][:], keys[j][:])
	})
	return keys
}

func lessBytes(a, b []byte) bool {
	for i := 0; i < len(a) && i < len(b); i++ {
		if a[i] != b[i] {
			return a[i] < b[i]
		}
	}
	return len(a) < len(b)
}
