package frost

// Signer is the contract the relay pipeline depends on: both the dev
// trusted-dealer Group and any future networked production
// implementation satisfy it, so the bundler and authoring loop are
// agnostic to which one they're holding.
type Signer interface {
	PubKey() GroupPubKey
	Sign(message []byte) (Signature, error)
	SignRandomized(message []byte, randomizer Randomizer) (Signature, RandomizedVerifyingKey, error)
	SignTx(unsigned ShieldedUnsignedTx, prover ShieldedProver) (ShieldedAuthorizedTx, error)
}

var _ Signer = (*Group)(nil)
