package chainmodel

import (
	"crypto/ed25519"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/zbridge/relay/internal/xcrypto"
)

func newValidator(t *testing.T) (PubKey32, ed25519.PrivateKey) {
	t.Helper()
	pub, priv, err := ed25519.GenerateKey(nil)
	require.NoError(t, err)
	var pk PubKey32
	copy(pk[:], pub)
	return pk, priv
}

func voteOn(header *Header, pub PubKey32, priv ed25519.PrivateKey) {
	hash := header.Hash()
	var sig Signature64
	copy(sig[:], ed25519.Sign(priv, hash[:]))
	header.Votes[pub] = sig
}

func TestValidateVotesThresholdBoundary(t *testing.T) {
	pk1, priv1 := newValidator(t)
	pk2, priv2 := newValidator(t)
	pk3, _ := newValidator(t)

	bft := BFT{Validators: []PubKey32{pk1, pk2, pk3}, Threshold: 2}
	header := &Header{Slot: 1, Votes: make(map[PubKey32]Signature64)}

	voteOn(header, pk1, priv1)
	valid, ok := bft.ValidateVotes(header)
	require.Equal(t, 1, valid)
	require.False(t, ok, "one vote below threshold 2 must not pass")

	voteOn(header, pk2, priv2)
	valid, ok = bft.ValidateVotes(header)
	require.Equal(t, 2, valid)
	require.True(t, ok, "threshold exactly met must pass")
}

func TestValidateVotesIgnoresNonValidatorsAndBadSignatures(t *testing.T) {
	pk1, priv1 := newValidator(t)
	outsider, outsiderPriv := newValidator(t)

	bft := BFT{Validators: []PubKey32{pk1}, Threshold: 1}
	header := &Header{Slot: 3, Votes: make(map[PubKey32]Signature64)}

	// An outsider's valid signature must not count.
	voteOn(header, outsider, outsiderPriv)
	valid, ok := bft.ValidateVotes(header)
	require.Zero(t, valid)
	require.False(t, ok)

	// A validator key with a garbage signature must not count either.
	header.Votes[pk1] = Signature64{0xFF}
	valid, ok = bft.ValidateVotes(header)
	require.Zero(t, valid)
	require.False(t, ok)

	voteOn(header, pk1, priv1)
	_, ok = bft.ValidateVotes(header)
	require.True(t, ok)
}

func TestHistoryRingEvictsOldestBeyondEpochLength(t *testing.T) {
	var h History
	for i := 0; i < EpochLength+10; i++ {
		h.Push(Head{Slot: uint32(i + 1), Hash: xcrypto.Blake3([]byte{byte(i)})})
	}

	entries := h.Entries()
	require.Len(t, entries, EpochLength)
	require.EqualValues(t, 11, entries[0].Slot, "oldest entries must have been evicted")
	require.EqualValues(t, EpochLength+10, h.Latest().Slot)
}

func TestMaxBundleSizePerChain(t *testing.T) {
	require.Equal(t, 1, ZCHAIN.MaxBundleSize())
	require.Equal(t, 10, SCHAIN.MaxBundleSize())
}
