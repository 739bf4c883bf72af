package addr

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestSchainAddressRoundTrips(t *testing.T) {
	var pub [32]byte
	for i := range pub {
		pub[i] = byte(i)
	}
	encoded := EncodeSchainAddress(pub)
	decoded, err := DecodeSchainAddress(encoded)
	require.NoError(t, err)
	require.Equal(t, pub, decoded)
}

func TestSchainSignatureRoundTrips(t *testing.T) {
	var sig [64]byte
	for i := range sig {
		sig[i] = byte(255 - i)
	}
	encoded := EncodeSchainSignature(sig)
	decoded, err := DecodeSchainSignature(encoded)
	require.NoError(t, err)
	require.Equal(t, sig, decoded)
}

func TestZchainTxidRoundTripsAndReversesBytes(t *testing.T) {
	var txid [32]byte
	txid[0] = 0xAB
	txid[31] = 0xCD

	encoded := EncodeZchainTxid(txid)
	require.Equal(t, "cd", encoded[:2])

	decoded, err := DecodeZchainTxid(encoded)
	require.NoError(t, err)
	require.Equal(t, txid, decoded)
}

func TestUnifiedAddressRoundTripsPerNetwork(t *testing.T) {
	payload := []byte("orchard-receiver-bytes-32byte!!")

	for _, tc := range []struct {
		name    string
		network Network
	}{
		{"mainnet", Mainnet},
		{"testnet", Testnet},
	} {
		t.Run(tc.name, func(t *testing.T) {
			encoded, err := EncodeUnifiedAddress(tc.network, payload)
			require.NoError(t, err)

			network, decoded, err := DecodeUnifiedAddress(encoded)
			require.NoError(t, err)
			require.Equal(t, tc.network, network)
			require.Equal(t, payload, decoded)
		})
	}
}

func TestUnifiedAddressRejectsUnknownHRP(t *testing.T) {
	_, _, err := DecodeUnifiedAddress("zs1daexx6rpwfjz6un9vdjkjan9wgmy5udc")
	require.Error(t, err)
}
