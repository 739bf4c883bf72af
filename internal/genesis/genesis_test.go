package genesis

import (
	"testing"

	dbm "github.com/cometbft/cometbft-db"
	"github.com/stretchr/testify/require"

	"github.com/zbridge/relay/internal/chainmodel"
	"github.com/zbridge/relay/internal/storage"
)

func TestCommitSeedsReadableState(t *testing.T) {
	engine := storage.New(dbm.NewMemDB())
	var authority chainmodel.PubKey32
	authority[0] = 0xAA

	require.NoError(t, engine.Commit(Commit(authority)))

	raw, err := engine.Get(storage.StateKey(storage.StateTagBFT))
	require.NoError(t, err)
	require.NotNil(t, raw)

	bft, err := chainmodel.DecodeBFT(raw)
	require.NoError(t, err)
	require.Equal(t, []chainmodel.PubKey32{authority}, bft.Validators)
	require.EqualValues(t, 1, bft.Threshold)

	raw, err = engine.Get(storage.StateKey(storage.StateTagHead))
	require.NoError(t, err)
	head, err := chainmodel.DecodeHead(raw)
	require.NoError(t, err)
	require.EqualValues(t, 0, head.Slot)
}
