package frost

import (
	"crypto/ed25519"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestNewRejectsInvalidParams(t *testing.T) {
	_, err := New(0, 0)
	require.ErrorIs(t, err, ErrInvalidParams)

	_, err = New(3, 0)
	require.ErrorIs(t, err, ErrInvalidParams)

	_, err = New(2, 3)
	require.ErrorIs(t, err, ErrInvalidParams)
}

func TestSignVerifiesUnderGroupPubKey(t *testing.T) {
	g, err := New(5, 3)
	require.NoError(t, err)

	msg := []byte("mint 100000000 zatoshi")
	sig, err := g.Sign(msg)
	require.NoError(t, err)
	require.True(t, ed25519.Verify(ed25519.PublicKey(g.PubKey()), msg, sig[:]))
}

func TestSignRandomizedVerifiesUnderRandomizedKeyNotGroupKey(t *testing.T) {
	g, err := New(3, 2)
	require.NoError(t, err)

	msg := []byte("spend-auth sighash")
	var alpha Randomizer
	alpha[0] = 7

	sig, randKey, err := g.SignRandomized(msg, alpha)
	require.NoError(t, err)
	require.True(t, ed25519.Verify(ed25519.PublicKey(randKey), msg, sig[:]))

	// The randomized key must differ from the bare group key, and the
	// signature must not verify under it (unlinkability).
	require.NotEqual(t, []byte(g.PubKey()), []byte(randKey))
	require.False(t, ed25519.Verify(ed25519.PublicKey(g.PubKey()), msg, sig[:]))
}

func TestSignDeterministicThresholdSubsetAgnostic(t *testing.T) {
	// Two groups dealt independently will of course differ, but the
	// same group signing twice must always verify under its one fixed
	// public key regardless of which quorum subset of shares is used
	// internally.
	g, err := New(4, 2)
	require.NoError(t, err)

	msg := []byte("repeat message")
	sig1, err := g.Sign(msg)
	require.NoError(t, err)
	sig2, err := g.Sign(msg)
	require.NoError(t, err)
	require.True(t, ed25519.Verify(ed25519.PublicKey(g.PubKey()), msg, sig1[:]))
	require.True(t, ed25519.Verify(ed25519.PublicKey(g.PubKey()), msg, sig2[:]))
}

type fakeProver struct {
	proof []byte
	err   error
}

func (f fakeProver) Prove(ShieldedUnsignedTx) ([]byte, error) { return f.proof, f.err }

func TestSignTxAssemblesOneSpendAuthPerInput(t *testing.T) {
	g, err := New(3, 2)
	require.NoError(t, err)

	unsigned := ShieldedUnsignedTx{
		SigHash: []byte("sighash"),
		Inputs:  []ShieldedInput{{Alpha: Randomizer{1}}, {Alpha: Randomizer{2}}},
	}
	prover := fakeProver{proof: []byte("zk-proof")}

	tx, err := g.SignTx(unsigned, prover)
	require.NoError(t, err)
	require.Equal(t, []byte("zk-proof"), tx.Proof)
	require.Len(t, tx.SpendAuths, 2)
	for _, auth := range tx.SpendAuths {
		require.True(t, ed25519.Verify(ed25519.PublicKey(auth.RandomizedKey), unsigned.SigHash, auth.Signature[:]))
	}
}

func TestSignTxProvingFailurePropagatesSentinel(t *testing.T) {
	g, err := New(3, 2)
	require.NoError(t, err)

	_, err = g.SignTx(ShieldedUnsignedTx{}, fakeProver{err: errInsufficientNotes})
	require.ErrorIs(t, err, ErrProvingFailed)
}

var errInsufficientNotes = fakeErr("insufficient spendable notes")

type fakeErr string

func (e fakeErr) Error() string { return string(e) }
