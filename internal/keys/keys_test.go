package keys

import (
	"crypto/ed25519"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestLoadOrGenerateCreatesThenReloadsSameKey(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", DefaultFileName)

	first, err := LoadOrGenerate(path)
	require.NoError(t, err)
	require.Len(t, []byte(first), ed25519.PrivateKeySize)

	second, err := LoadOrGenerate(path)
	require.NoError(t, err)
	require.Equal(t, first, second)
}

func TestGeneratedKeySignsVerifiably(t *testing.T) {
	path := filepath.Join(t.TempDir(), DefaultFileName)
	priv, err := LoadOrGenerate(path)
	require.NoError(t, err)

	msg := []byte("block header hash")
	sig := ed25519.Sign(priv, msg)
	require.True(t, ed25519.Verify(priv.Public().(ed25519.PublicKey), msg, sig))

	pub := PubKey32(priv)
	require.True(t, ed25519.Verify(ed25519.PublicKey(pub[:]), msg, sig))
}
