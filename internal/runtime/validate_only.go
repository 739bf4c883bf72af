package runtime

import (
	"crypto/ed25519"

	"github.com/zbridge/relay/internal/chainmodel"
)

// ValidateOnly runs the same checks Import does without committing,
// and returns the Ed25519 signature this node casts as its vote on
// the proposal.
func (rt *Runtime) ValidateOnly(block *chainmodel.Block, authority ed25519.PrivateKey) (chainmodel.Signature64, error) {
	if _, err := rt.validate(block); err != nil {
		return chainmodel.Signature64{}, err
	}

	hash := block.Header.Hash()
	sig := ed25519.Sign(authority, hash[:])

	var out chainmodel.Signature64
	copy(out[:], sig)
	return out, nil
}
