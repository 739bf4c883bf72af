// Package addr implements the bridge's canonical, bit-exact address and
// signature encoders: SCHAIN addresses and signatures are base58,
// ZCHAIN transaction ids are hex of reversed bytes, and ZCHAIN unified
// addresses are Bech32m.
package addr

import (
	"encoding/hex"
	"fmt"

	"github.com/btcsuite/btcd/btcutil/bech32"
	"github.com/mr-tron/base58"
)

// EncodeSchainAddress base58-encodes a 32-byte SCHAIN account key.
func EncodeSchainAddress(pubKey [32]byte) string {
	return base58.Encode(pubKey[:])
}

// DecodeSchainAddress inverts EncodeSchainAddress.
func DecodeSchainAddress(s string) ([32]byte, error) {
	var out [32]byte
	raw, err := base58.Decode(s)
	if err != nil {
		return out, fmt.Errorf("addr: base58 decode address: %w", err)
	}
	if len(raw) != 32 {
		return out, fmt.Errorf("addr: decoded address is %d bytes, want 32", len(raw))
	}
	copy(out[:], raw)
	return out, nil
}

// EncodeSchainSignature base58-encodes a 64-byte Ed25519 signature.
func EncodeSchainSignature(sig [64]byte) string {
	return base58.Encode(sig[:])
}

// DecodeSchainSignature inverts EncodeSchainSignature.
func DecodeSchainSignature(s string) ([64]byte, error) {
	var out [64]byte
	raw, err := base58.Decode(s)
	if err != nil {
		return out, fmt.Errorf("addr: base58 decode signature: %w", err)
	}
	if len(raw) != 64 {
		return out, fmt.Errorf("addr: decoded signature is %d bytes, want 64", len(raw))
	}
	copy(out[:], raw)
	return out, nil
}

// EncodeZchainTxid renders a txid as hex of its byte-reversed form,
// matching the display convention used by shielded-chain explorers.
func EncodeZchainTxid(txid [32]byte) string {
	reversed := make([]byte, 32)
	for i, b := range txid {
		reversed[31-i] = b
	}
	return hex.EncodeToString(reversed)
}

// DecodeZchainTxid inverts EncodeZchainTxid.
func DecodeZchainTxid(s string) ([32]byte, error) {
	var out [32]byte
	raw, err := hex.DecodeString(s)
	if err != nil {
		return out, fmt.Errorf("addr: hex decode txid: %w", err)
	}
	if len(raw) != 32 {
		return out, fmt.Errorf("addr: decoded txid is %d bytes, want 32", len(raw))
	}
	for i, b := range raw {
		out[31-i] = b
	}
	return out, nil
}

// Network selects the HRP family a unified address is encoded under.
type Network int

const (
	Mainnet Network = iota
	Testnet
)

func (n Network) hrp() string {
	if n == Testnet {
		return "utest"
	}
	return "u1"
}

// EncodeUnifiedAddress Bech32m-encodes a shielded payment address under
// the network-appropriate HRP.
func EncodeUnifiedAddress(network Network, raw []byte) (string, error) {
	converted, err := bech32.ConvertBits(raw, 8, 5, true)
	if err != nil {
		return "", fmt.Errorf("addr: convert bits: %w", err)
	}
	encoded, err := bech32.EncodeM(network.hrp(), converted)
	if err != nil {
		return "", fmt.Errorf("addr: bech32m encode: %w", err)
	}
	return encoded, nil
}

// DecodeUnifiedAddress inverts EncodeUnifiedAddress, returning the
// network the HRP identified and the decoded payload. DecodeGeneric
// accepts either checksum constant (bech32 or bech32m); a unified
// address must come back tagged as bech32m.
func DecodeUnifiedAddress(s string) (Network, []byte, error) {
	hrp, data, version, err := bech32.DecodeGeneric(s)
	if err != nil {
		return 0, nil, fmt.Errorf("addr: bech32 decode: %w", err)
	}
	if version != bech32.VersionM {
		return 0, nil, fmt.Errorf("addr: unified address must use the bech32m checksum")
	}
	raw, err := bech32.ConvertBits(data, 5, 8, false)
	if err != nil {
		return 0, nil, fmt.Errorf("addr: convert bits: %w", err)
	}
	switch hrp {
	case Mainnet.hrp():
		return Mainnet, raw, nil
	case Testnet.hrp():
		return Testnet, raw, nil
	default:
		return 0, nil, fmt.Errorf("addr: unrecognized hrp %q", hrp)
	}
}
