// Package genesis constructs the seed state a fresh chain is
// committed with before any block is authored: the initial validator
// set and threshold, empty history, the all-zero accumulator, and
// head slot 0.
package genesis

import (
	"github.com/zbridge/relay/internal/chainmodel"
	"github.com/zbridge/relay/internal/storage"
	"github.com/zbridge/relay/internal/xcrypto"
)

// Commit builds the storage.Commit that seeds a brand-new chain with a
// single configured authority as the sole validator and a threshold of
// one, the dev single-validator deployment (series/leader-rotation is
// a placeholder, never populated here).
func Commit(authority chainmodel.PubKey32) storage.Commit {
	bft := chainmodel.BFT{
		Validators: []chainmodel.PubKey32{authority},
		Threshold:  1,
		Series:     nil,
	}
	head := chainmodel.Head{Slot: 0, Hash: xcrypto.Hash{}}

	var c storage.Commit
	c.Set(storage.StateKey(storage.StateTagBFT), bft.Encode())
	c.Set(storage.StateKey(storage.StateTagHead), head.Encode())
	c.Set(storage.StateKey(storage.StateTagAccumulator), xcrypto.Hash{}.Bytes())
	return c
}
