package runtime

import (
	"fmt"

	"github.com/zbridge/relay/internal/chainmodel"
)

// Author drains the pools and produces a new, unvoted block proposal.
// The caller (the authoring loop) is responsible for signing
// header.Hash() and re-injecting the vote before calling Import.
func (rt *Runtime) Author() (*chainmodel.Block, error) {
	snap, err := rt.readSnapshot()
	if err != nil {
		return nil, err
	}

	ext := chainmodel.NewExtrinsic()
	for hash, bundle := range rt.bundles.Pack() {
		ext.Bridge[hash] = bundle
	}
	ext.Receipts = rt.receipts.Pack()

	txs := sortedTxs(ext)
	accumulator := nextAccumulator(snap.accumulator, txs)

	root, err := rt.storage.Root()
	if err != nil {
		return nil, fmt.Errorf("runtime: compute state root: %w", err)
	}

	header := chainmodel.Header{
		Slot:        snap.head.Slot + 1,
		Parent:      snap.head.Hash,
		State:       root,
		Accumulator: accumulator,
		Extrinsic:   ext.Hash(),
		Votes:       make(map[chainmodel.PubKey32]chainmodel.Signature64),
	}

	return &chainmodel.Block{Header: header, Extrinsic: *ext}, nil
}
