package frost

import "fmt"

// ShieldedInput is one spend within an unsigned shielded transaction:
// the data needed to produce its spend-authorization signature. Alpha
// is the per-spend randomizer the shielded-TX builder derived for this
// note.
type ShieldedInput struct {
	Alpha Randomizer
}

// ShieldedUnsignedTx is the chain-specific payload the bundler builds
// for a ZCHAIN-targeted bundle before it has spend-authorization
// signatures: the proof-ready transaction plus one ShieldedInput per
// note being spent. SigHash is the transaction-binding digest every
// spend-authorization signature is computed over.
type ShieldedUnsignedTx struct {
	SigHash []byte
	Inputs  []ShieldedInput
	// ProofInputs is opaque builder state (witnesses, note plaintexts,
	// anchors) the injected ShieldedProver needs to build the proof;
	// the signer never inspects it.
	ProofInputs []byte
}

// ShieldedSpendAuthSig pairs one input's authorizing signature with
// the randomized key it verifies under, which on-chain verification
// needs alongside the signature itself.
type ShieldedSpendAuthSig struct {
	Signature     Signature
	RandomizedKey RandomizedVerifyingKey
}

// ShieldedAuthorizedTx is the fully assembled, broadcastable shielded
// transaction: the prover's proof plus one spend-authorization
// signature per input, in input order.
type ShieldedAuthorizedTx struct {
	Proof      []byte
	SpendAuths []ShieldedSpendAuthSig
}

// ShieldedProver is the injected black-box contract to the external
// wallet-DB/proving library ("discover spendable notes, build
// proofs"). SignTx calls it once per unsigned transaction to obtain
// the zk-SNARK proof binding the transaction's public statement.
type ShieldedProver interface {
	Prove(tx ShieldedUnsignedTx) (proof []byte, err error)
}

// SignTx builds a fully authorized shielded transaction from an
// unsigned one: it constructs the shielded proof via
// the injected prover, then invokes SignRandomized once per input with
// that input's alpha scalar over the transaction's sighash, and
// assembles the result. Proof failures surface as ErrProvingFailed so
// the bundler can move the bridge to its unresolved carry-over list
// rather than treating it as a fatal signer error.
func (g *Group) SignTx(unsigned ShieldedUnsignedTx, prover ShieldedProver) (ShieldedAuthorizedTx, error) {
	proof, err := prover.Prove(unsigned)
	if err != nil {
		return ShieldedAuthorizedTx{}, fmt.Errorf("%w: %v", ErrProvingFailed, err)
	}

	auths := make([]ShieldedSpendAuthSig, len(unsigned.Inputs))
	for i, in := range unsigned.Inputs {
		sig, randKey, err := g.SignRandomized(unsigned.SigHash, in.Alpha)
		if err != nil {
			return ShieldedAuthorizedTx{}, fmt.Errorf("frost: spend-auth signature for input %d: %w", i, err)
		}
		auths[i] = ShieldedSpendAuthSig{Signature: sig, RandomizedKey: randKey}
	}

	return ShieldedAuthorizedTx{Proof: proof, SpendAuths: auths}, nil
}
