// Package keys loads the node's Ed25519 authority identity from a
// JSON key file, generating and persisting a fresh one on first run.
// The key signs block votes and bundle endorsements.
package keys

import (
	"crypto/ed25519"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	cmted25519 "github.com/cometbft/cometbft/crypto/ed25519"
)

// DefaultFileName is the key file's name inside the node's data
// directory when no explicit path is configured.
const DefaultFileName = "authority_key.json"

type keyFile struct {
	PubKey  string `json:"pub_key"`
	PrivKey string `json:"priv_key"`
}

// LoadOrGenerate reads the authority key at path, creating it (and any
// missing parent directories, mode 0700) if absent.
func LoadOrGenerate(path string) (ed25519.PrivateKey, error) {
	raw, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return generate(path)
	}
	if err != nil {
		return nil, fmt.Errorf("keys: read %s: %w", path, err)
	}

	var kf keyFile
	if err := json.Unmarshal(raw, &kf); err != nil {
		return nil, fmt.Errorf("keys: parse %s: %w", path, err)
	}
	priv, err := hex.DecodeString(kf.PrivKey)
	if err != nil {
		return nil, fmt.Errorf("keys: decode private key: %w", err)
	}
	if len(priv) != ed25519.PrivateKeySize {
		return nil, fmt.Errorf("keys: private key is %d bytes, want %d", len(priv), ed25519.PrivateKeySize)
	}
	return ed25519.PrivateKey(priv), nil
}

func generate(path string) (ed25519.PrivateKey, error) {
	priv := cmted25519.GenPrivKey()

	kf := keyFile{
		PubKey:  hex.EncodeToString(priv.PubKey().Bytes()),
		PrivKey: hex.EncodeToString(priv.Bytes()),
	}
	raw, err := json.MarshalIndent(kf, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("keys: marshal key file: %w", err)
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return nil, fmt.Errorf("keys: create key directory: %w", err)
	}
	if err := os.WriteFile(path, raw, 0o600); err != nil {
		return nil, fmt.Errorf("keys: write %s: %w", path, err)
	}

	return ed25519.PrivateKey(priv.Bytes()), nil
}

// PubKey32 extracts the 32-byte public half of priv.
func PubKey32(priv ed25519.PrivateKey) [32]byte {
	var out [32]byte
	copy(out[:], priv.Public().(ed25519.PublicKey))
	return out
}
