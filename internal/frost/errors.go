package frost

import "errors"

// Signing failure taxonomy. ErrProvingFailed is returned by SignTx
// when the injected ShieldedProver cannot build a proof (e.g.
// insufficient spendable notes); the bundler moves the bridge to its
// unresolved carry-over list on this error.
var (
	ErrInvalidParams      = errors.New("frost: invalid dealer parameters")
	ErrInsufficientShares = errors.New("frost: insufficient signing shares")
	ErrInvalidShare       = errors.New("frost: invalid signing share")
	ErrAggregationFailed  = errors.New("frost: signature aggregation failed")
	ErrProvingFailed      = errors.New("frost: shielded proof construction failed")
	ErrNotImplemented     = errors.New("frost: production networked signer not implemented")
)
