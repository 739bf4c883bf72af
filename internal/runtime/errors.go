// Package runtime implements the mini-BFT block producer: block
// authoring (pack pool contents, compute the accumulator, emit a
// header), block import (validate votes, recompute the accumulator,
// commit), and the validate-only path used to produce a vote on a
// peer's proposal.
package runtime

import "errors"

// Per-block import errors. Each is fatal to the block under import
// but never to the node: the next author cycle simply tries again.
var (
	ErrStateRootMismatch   = errors.New("runtime: header state root does not match storage root")
	ErrAccumulatorMismatch = errors.New("runtime: header accumulator does not match recomputed accumulator")
	ErrVotesInsufficient   = errors.New("runtime: fewer than threshold valid votes")
	ErrReplay              = errors.New("runtime: transaction already present in a finalized block")
	ErrNotGenesized        = errors.New("runtime: storage has no committed BFT/head/accumulator state")
)
