package bundler

import (
	"github.com/zbridge/relay/internal/chainmodel"
	"github.com/zbridge/relay/internal/frost"
)

// SchainOutbound is the external contract to SCHAIN's mint
// instruction builder/broadcaster. The recent blockhash is the
// chain-specific payload a BridgeBundle.Data carries for SCHAIN.
type SchainOutbound interface {
	// RecentBlockhash returns the blockhash a mint transaction must be
	// built against.
	RecentBlockhash() ([]byte, error)
	// Broadcast submits the signed mint transaction (window ordered
	// identically to the signed message) and returns its destination
	// txid.
	Broadcast(window []chainmodel.Bridge, recentBlockhash []byte, sig frost.Signature) (txid []byte, err error)
}

// ZchainOutbound is the external contract to the shielded wallet-DB
// and proving library ("discover spendable notes, build proofs",
// consumed as a black box).
type ZchainOutbound interface {
	// BuildUnsignedTx assembles the unsigned shielded transaction that
	// pays bridge.Amount-fee to bridge.Recipient, selecting spendable
	// notes from the group's pool. Returns frost.ErrProvingFailed-
	// wrapping errors are not expected here; insufficient notes should
	// surface as a plain error the bundler treats the same way
	// (moved to unresolved).
	BuildUnsignedTx(bridge chainmodel.Bridge) (frost.ShieldedUnsignedTx, error)
	// Broadcast submits the fully authorized transaction and returns
	// its destination txid.
	Broadcast(tx frost.ShieldedAuthorizedTx) (txid []byte, err error)
}

// ShieldedProver is re-exported so callers constructing a Bundler
// don't need to import internal/frost just to name the prover
// interface the dev wiring injects.
type ShieldedProver = frost.ShieldedProver
