package runtime

import (
	"fmt"

	"github.com/zbridge/relay/internal/chainmodel"
)

// validated is the result of checking a proposed block: the
// recomputed deterministic txid list, reused by both Import (which
// goes on to commit) and ValidateOnly (which stops there and
// signs).
type validated struct {
	txs [][]byte
}

// validate runs vote-threshold, state-root, accumulator, and replay
// checks against block without committing anything. It is the single
// place per-node validation occurs before either committing (Import)
// or voting (ValidateOnly).
func (rt *Runtime) validate(block *chainmodel.Block) (validated, error) {
	snap, err := rt.readSnapshot()
	if err != nil {
		return validated{}, err
	}

	if _, ok := snap.bft.ValidateVotes(&block.Header); !ok {
		return validated{}, ErrVotesInsufficient
	}

	root, err := rt.storage.Root()
	if err != nil {
		return validated{}, fmt.Errorf("runtime: compute state root: %w", err)
	}
	if block.Header.State != root {
		return validated{}, ErrStateRootMismatch
	}

	txs := sortedTxs(&block.Extrinsic)
	accumulator := nextAccumulator(snap.accumulator, txs)
	if block.Header.Accumulator != accumulator {
		return validated{}, ErrAccumulatorMismatch
	}

	for _, tx := range txs {
		exists, err := rt.storage.Exists(tx)
		if err != nil {
			return validated{}, fmt.Errorf("runtime: replay check: %w", err)
		}
		if exists {
			return validated{}, ErrReplay
		}
	}

	return validated{txs: txs}, nil
}
