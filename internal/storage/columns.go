// Package storage implements the bridge's durable, crash-safe KV
// engine: logical columns (state, blocks, seen-txids, meta)
// multiplexed over one physical github.com/cometbft/cometbft-db
// database through key prefixes.
package storage

// column tags a key with its logical namespace: each column gets its
// own leading byte so they can share one physical dbm.DB without
// collision.
type column byte

const (
	colState  column = 0x00
	colBlocks column = 0x01
	colTxids  column = 0x02
	// colMeta holds task-local node state (watcher watermarks). It is
	// deliberately outside colState so it never contributes to Root():
	// watermarks differ between validators and over the life of one
	// node, and must not perturb the consensus state root.
	colMeta column = 0x03
)

// State namespace tags: a single leading tag byte within the state
// column, followed by 30 zero pad bytes.
const (
	StateTagBFT         byte = 0x00
	StateTagHead        byte = 0x01
	StateTagAccumulator byte = 0x02
)

// Meta-column keys.
var (
	MetaKeyZWatermark = []byte("zchain_watermark")
	MetaKeySWatermark = []byte("schain_watermark")
)

// StateKey builds the 31-byte namespaced key for a state field.
func StateKey(tag byte) []byte {
	k := make([]byte, 31)
	k[0] = tag
	return k
}

func prefixed(c column, key []byte) []byte {
	out := make([]byte, 1+len(key))
	out[0] = byte(c)
	copy(out[1:], key)
	return out
}
