package authoring

import (
	"context"
	"crypto/ed25519"
	"testing"
	"time"

	dbm "github.com/cometbft/cometbft-db"
	"github.com/stretchr/testify/require"

	"github.com/zbridge/relay/internal/chainmodel"
	"github.com/zbridge/relay/internal/genesis"
	"github.com/zbridge/relay/internal/pool"
	"github.com/zbridge/relay/internal/runtime"
	"github.com/zbridge/relay/internal/storage"
)

func newDevLoop(t *testing.T) (*Loop, *runtime.Runtime, chan *chainmodel.Block) {
	t.Helper()
	pub, priv, err := ed25519.GenerateKey(nil)
	require.NoError(t, err)

	var authority chainmodel.PubKey32
	copy(authority[:], pub)

	engine := storage.New(dbm.NewMemDB())
	require.NoError(t, engine.Commit(genesis.Commit(authority)))

	finalized := make(chan *chainmodel.Block, 8)
	rt := runtime.New(engine, pool.NewBundlePool(1), pool.NewReceiptPool(), func(b *chainmodel.Block) {
		finalized <- b
	})

	loop := New(Config{Runtime: rt, Identity: priv, Interval: 10 * time.Millisecond})
	return loop, rt, finalized
}

func TestLoopAuthorsAndFinalizesOnTick(t *testing.T) {
	loop, _, finalized := newDevLoop(t)

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()
	loop.Run(ctx)

	select {
	case b := <-finalized:
		require.EqualValues(t, 1, b.Header.Slot)
	default:
		t.Fatal("expected at least one finalized block")
	}
}

func TestTickAdvancesHeadEachCall(t *testing.T) {
	loop, rt, _ := newDevLoop(t)

	require.NoError(t, loop.tick())
	require.NoError(t, loop.tick())

	raw, err := rt.Author()
	require.NoError(t, err)
	require.EqualValues(t, 3, raw.Header.Slot)
}
