package bundler

import (
	"crypto/ed25519"
	"testing"

	dbm "github.com/cometbft/cometbft-db"
	"github.com/stretchr/testify/require"

	"github.com/zbridge/relay/internal/chainmodel"
	"github.com/zbridge/relay/internal/frost"
	"github.com/zbridge/relay/internal/pool"
	"github.com/zbridge/relay/internal/storage"
	"github.com/zbridge/relay/internal/xcrypto"
)

type fakeSchain struct {
	broadcastCalls int
	lastWindow     []chainmodel.Bridge
}

func (f *fakeSchain) RecentBlockhash() ([]byte, error) { return []byte("blockhash"), nil }
func (f *fakeSchain) Broadcast(window []chainmodel.Bridge, _ []byte, _ frost.Signature) ([]byte, error) {
	f.broadcastCalls++
	f.lastWindow = window
	return []byte("dst-sig"), nil
}

type failingZchain struct{ err error }

func (f failingZchain) BuildUnsignedTx(chainmodel.Bridge) (frost.ShieldedUnsignedTx, error) {
	return frost.ShieldedUnsignedTx{}, f.err
}
func (f failingZchain) Broadcast(frost.ShieldedAuthorizedTx) ([]byte, error) { return nil, nil }

func newTestBundler(t *testing.T, schain SchainOutbound, zchain ZchainOutbound) (*Bundler, *pool.BundlePool, *pool.ReceiptPool) {
	t.Helper()
	engine := storage.New(dbm.NewMemDB())
	signer, err := frost.New(3, 2)
	require.NoError(t, err)
	bundles := pool.NewBundlePool(1)
	receipts := pool.NewReceiptPool()
	_, priv, err := ed25519.GenerateKey(nil)
	require.NoError(t, err)

	bd := New(Config{
		Storage:   engine,
		Bundles:   bundles,
		Receipts:  receipts,
		Signer:    signer,
		Schain:    schain,
		Zchain:    zchain,
		Authority: priv,
	})
	return bd, bundles, receipts
}

func TestFlushSchainChunksByMaxBundleSize(t *testing.T) {
	schain := &fakeSchain{}
	bd, bundles, receipts := newTestBundler(t, schain, failingZchain{})

	for i := 0; i < 12; i++ {
		require.NoError(t, bd.Accept(chainmodel.Bridge{
			Coin: chainmodel.ZEC, Recipient: []byte("recipient-bytes-32-long-padding"),
			Amount: uint64(i + 1), Source: chainmodel.ZCHAIN, Target: chainmodel.SCHAIN,
			Txid: []byte{byte(i)},
		}))
	}

	require.NoError(t, bd.Flush(xcrypto.Hash{}))

	// 12 bridges chunked into SCHAIN's max bundle size of 10: one
	// bundle of 10, one of 2.
	require.Equal(t, 2, schain.broadcastCalls)
	require.Equal(t, 12, receipts.Len())
	packed := bundles.Pack()
	require.Len(t, packed, 2)
}

func TestFlushZchainProvingFailureGoesToUnresolved(t *testing.T) {
	bd, bundles, receipts := newTestBundler(t, &fakeSchain{}, failingZchain{err: frost.ErrProvingFailed})

	require.NoError(t, bd.Accept(chainmodel.Bridge{
		Coin: chainmodel.ZEC, Recipient: []byte("u1abc-unified-address-bytes"),
		Amount: 50_000_000, Source: chainmodel.SCHAIN, Target: chainmodel.ZCHAIN,
		Txid: []byte("schain-sig"),
	}))

	require.NoError(t, bd.Flush(xcrypto.Hash{}))

	require.Empty(t, bundles.Pack())
	require.Zero(t, receipts.Len())
	require.Len(t, bd.unresolved, 1)

	// Retried next flush, still against the same failing prover.
	require.NoError(t, bd.Flush(xcrypto.Hash{}))
	require.Len(t, bd.unresolved, 1)
}

func TestAcceptDropsAlreadySeenTxid(t *testing.T) {
	bd, _, _ := newTestBundler(t, &fakeSchain{}, failingZchain{})
	require.NoError(t, bd.cfg.Storage.SetTxs([][]byte{[]byte("dup")}))

	require.NoError(t, bd.Accept(chainmodel.Bridge{
		Coin: chainmodel.ZEC, Recipient: []byte("r"), Amount: 1,
		Source: chainmodel.ZCHAIN, Target: chainmodel.SCHAIN, Txid: []byte("dup"),
	}))

	bd.mu.Lock()
	defer bd.mu.Unlock()
	require.Empty(t, bd.pending)
}
