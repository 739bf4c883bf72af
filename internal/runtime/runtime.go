package runtime

import (
	"fmt"

	"github.com/zbridge/relay/internal/chainmodel"
	"github.com/zbridge/relay/internal/pool"
	"github.com/zbridge/relay/internal/storage"
	"github.com/zbridge/relay/internal/xcrypto"
)

// FinalizedHook is invoked once a block has been durably committed.
// cmd/relaynode binds the RPC subscription manager's OnFinalized to
// this at node construction time.
type FinalizedHook func(*chainmodel.Block)

// Runtime owns the storage handle and the two pool handles the
// bundler feeds, and is itself owned by the authoring loop. It holds
// no other mutable state: BFT/head/accumulator
// always come from storage, never cached, so Author and Import agree
// with whatever the storage engine currently holds.
type Runtime struct {
	storage     *storage.Engine
	bundles     *pool.BundlePool
	receipts    *pool.ReceiptPool
	onFinalized FinalizedHook
}

// New constructs a Runtime over an already-genesized storage engine.
func New(engine *storage.Engine, bundles *pool.BundlePool, receipts *pool.ReceiptPool, onFinalized FinalizedHook) *Runtime {
	if onFinalized == nil {
		onFinalized = func(*chainmodel.Block) {}
	}
	return &Runtime{storage: engine, bundles: bundles, receipts: receipts, onFinalized: onFinalized}
}

// snapshot is the BFT/head/accumulator triple read from storage at the
// start of an Author or Import call.
type snapshot struct {
	bft         chainmodel.BFT
	head        chainmodel.Head
	accumulator xcrypto.Hash
}

func (rt *Runtime) readSnapshot() (snapshot, error) {
	var snap snapshot

	raw, err := rt.storage.Get(storage.StateKey(storage.StateTagBFT))
	if err != nil {
		return snap, fmt.Errorf("runtime: read bft: %w", err)
	}
	if raw == nil {
		return snap, ErrNotGenesized
	}
	bft, err := chainmodel.DecodeBFT(raw)
	if err != nil {
		return snap, fmt.Errorf("runtime: decode bft: %w", err)
	}
	snap.bft = *bft

	raw, err = rt.storage.Get(storage.StateKey(storage.StateTagHead))
	if err != nil {
		return snap, fmt.Errorf("runtime: read head: %w", err)
	}
	if raw == nil {
		return snap, ErrNotGenesized
	}
	head, err := chainmodel.DecodeHead(raw)
	if err != nil {
		return snap, fmt.Errorf("runtime: decode head: %w", err)
	}
	snap.head = head

	raw, err = rt.storage.Get(storage.StateKey(storage.StateTagAccumulator))
	if err != nil {
		return snap, fmt.Errorf("runtime: read accumulator: %w", err)
	}
	if raw == nil {
		return snap, ErrNotGenesized
	}
	copy(snap.accumulator[:], raw)

	return snap, nil
}

// sortedTxs returns the deterministic lex-on-bytes ordered union of
// every bridge and receipt txid in ext.
func sortedTxs(ext *chainmodel.Extrinsic) [][]byte {
	return ext.Txids()
}

// nextAccumulator computes Blake3(accumulator || concat(Blake3(tx) for
// tx in txs)). An empty txs list still produces a defined value:
// Blake3(accumulator || "").
func nextAccumulator(prev xcrypto.Hash, txs [][]byte) xcrypto.Hash {
	parts := make([][]byte, 0, len(txs)+1)
	parts = append(parts, prev[:])
	for _, tx := range txs {
		h := xcrypto.Blake3(tx)
		parts = append(parts, h[:])
	}
	return xcrypto.Blake3(parts...)
}
