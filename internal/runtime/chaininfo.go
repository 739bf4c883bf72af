package runtime

import "github.com/zbridge/relay/internal/chainmodel"

// ChainInfo returns the currently committed chain state, backing the
// RPC surface's chainInfo call. History is always returned empty:
// replay detection is answered directly from the storage engine's
// txids column, so this runtime never needs to keep a recent-head ring
// of its own to operate correctly.
func (rt *Runtime) ChainInfo() (chainmodel.State, error) {
	snap, err := rt.readSnapshot()
	if err != nil {
		return chainmodel.State{}, err
	}
	return chainmodel.State{
		BFT:         snap.bft,
		Accumulator: snap.accumulator,
		Head:        snap.head,
	}, nil
}
