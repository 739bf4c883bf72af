package runtime

import (
	"fmt"

	"github.com/zbridge/relay/internal/chainmodel"
	"github.com/zbridge/relay/internal/storage"
)

// Import validates a proposed block and, if valid, commits it
// atomically: the new accumulator, the re-serialized BFT (membership
// is unchanged by bridging operations but is re-written so a future
// validator-set-update extrinsic type has somewhere to land), and the
// new head, followed by the append-only block and txid writes. On
// success it invokes the finalized hook.
func (rt *Runtime) Import(block *chainmodel.Block) error {
	v, err := rt.validate(block)
	if err != nil {
		return err
	}

	snap, err := rt.readSnapshot()
	if err != nil {
		return err
	}

	newHead := chainmodel.Head{Slot: block.Header.Slot, Hash: block.Header.Hash()}

	var commit storage.Commit
	commit.Set(storage.StateKey(storage.StateTagAccumulator), block.Header.Accumulator[:])
	commit.Set(storage.StateKey(storage.StateTagBFT), snap.bft.Encode())
	commit.Set(storage.StateKey(storage.StateTagHead), newHead.Encode())

	if err := rt.storage.Commit(commit); err != nil {
		return fmt.Errorf("runtime: commit state: %w", err)
	}
	if err := rt.storage.SetBlock(block); err != nil {
		return fmt.Errorf("runtime: persist block: %w", err)
	}
	if err := rt.storage.SetTxs(v.txs); err != nil {
		return fmt.Errorf("runtime: persist txids: %w", err)
	}

	rt.onFinalized(block)
	return nil
}
