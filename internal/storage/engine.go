package storage

import (
	"fmt"

	dbm "github.com/cometbft/cometbft-db"

	"github.com/zbridge/relay/internal/chainmodel"
	"github.com/zbridge/relay/internal/xcrypto"
	"github.com/zbridge/relay/pkg/merkle"
)

// Op is one mutation within a Commit batch.
type Op struct {
	Remove bool
	Key    []byte
	Value  []byte
}

// Commit is an atomic batch of state-column mutations, applied through
// Engine.Commit. Block and txid writes go through the dedicated
// SetBlock/SetTxs append-only paths instead, since those are never
// removed.
type Commit struct {
	Ops []Op
}

// Set appends a state-column write.
func (c *Commit) Set(key, value []byte) { c.Ops = append(c.Ops, Op{Key: key, Value: value}) }

// Remove appends a state-column deletion.
func (c *Commit) Remove(key []byte) { c.Ops = append(c.Ops, Op{Remove: true, Key: key}) }

// Engine is the persistent KV store: an ordered, iterable state
// column; a blocks column addressed by header hash; a seen-txids set
// for replay detection; and a task-local meta column excluded from the
// state root. All columns live in one dbm.DB behind per-column key
// prefixes.
type Engine struct {
	db dbm.DB
}

// New wraps db as an Engine. Callers typically pass a
// cometbft-db/badgerdb or goleveldb instance for production and a
// memdb instance for tests.
func New(db dbm.DB) *Engine { return &Engine{db: db} }

// Get reads a single state-column value. A missing key returns (nil,
// nil): nil means "not present" rather than an error.
func (e *Engine) Get(key []byte) ([]byte, error) {
	return e.db.Get(prefixed(colState, key))
}

// Commit applies a batch of state-column mutations atomically.
func (e *Engine) Commit(c Commit) error {
	batch := e.db.NewBatch()
	defer batch.Close()
	for _, op := range c.Ops {
		k := prefixed(colState, op.Key)
		if op.Remove {
			if err := batch.Delete(k); err != nil {
				return err
			}
			continue
		}
		if err := batch.Set(k, op.Value); err != nil {
			return err
		}
	}
	return batch.WriteSync()
}

// SetBlock persists a finalized block, keyed by its header hash. The
// write is idempotent: writing the same header hash twice is a no-op
// replacement of identical bytes.
func (e *Engine) SetBlock(block *chainmodel.Block) error {
	hash := block.Header.Hash()
	return e.db.SetSync(prefixed(colBlocks, hash[:]), block.Encode())
}

// GetBlock retrieves a previously finalized block by header hash.
func (e *Engine) GetBlock(hash xcrypto.Hash) (*chainmodel.Block, error) {
	raw, err := e.db.Get(prefixed(colBlocks, hash[:]))
	if err != nil {
		return nil, err
	}
	if raw == nil {
		return nil, nil
	}
	return chainmodel.DecodeBlock(raw)
}

// SetTxs marks every txid in txids as seen, for replay detection. The
// write is idempotent.
func (e *Engine) SetTxs(txids [][]byte) error {
	batch := e.db.NewBatch()
	defer batch.Close()
	for _, txid := range txids {
		if err := batch.Set(prefixed(colTxids, txid), []byte{1}); err != nil {
			return err
		}
	}
	return batch.WriteSync()
}

// Exists reports whether txid has already been included in a finalized
// block.
func (e *Engine) Exists(txid []byte) (bool, error) {
	v, err := e.db.Get(prefixed(colTxids, txid))
	if err != nil {
		return false, err
	}
	return v != nil, nil
}

// GetMeta reads one task-local meta-column value. A missing key
// returns (nil, nil).
func (e *Engine) GetMeta(key []byte) ([]byte, error) {
	return e.db.Get(prefixed(colMeta, key))
}

// SetMeta writes one task-local meta-column value. Meta keys live
// outside the state column and never affect Root().
func (e *Engine) SetMeta(key, value []byte) error {
	return e.db.SetSync(prefixed(colMeta, key), value)
}

// Root computes the binary Merkle root over the state column's values
// in ordered iteration. The root depends only on the
// multiset of (key, value) pairs currently present and the
// deterministic iteration order dbm.DB.Iterator provides.
func (e *Engine) Root() (xcrypto.Hash, error) {
	start := []byte{byte(colState)}
	end := []byte{byte(colState) + 1}
	it, err := e.db.Iterator(start, end)
	if err != nil {
		return xcrypto.Hash{}, err
	}
	defer it.Close()

	var values [][]byte
	for ; it.Valid(); it.Next() {
		v := make([]byte, len(it.Value()))
		copy(v, it.Value())
		values = append(values, v)
	}
	if err := it.Error(); err != nil {
		return xcrypto.Hash{}, err
	}
	return xcrypto.MerkleRoot(values), nil
}

// ProveKey returns an inclusion proof that the value currently stored
// at key is part of the state committed by Root(). It rebuilds the
// same ordered state-column value set Root() hashes over, so the
// returned proof's MerkleRoot always matches a concurrent Root() call
// against unchanged state.
func (e *Engine) ProveKey(key []byte) (*merkle.InclusionProof, error) {
	start := []byte{byte(colState)}
	end := []byte{byte(colState) + 1}
	it, err := e.db.Iterator(start, end)
	if err != nil {
		return nil, err
	}
	defer it.Close()

	target := prefixed(colState, key)
	values := make([][]byte, 0)
	leafIndex := -1
	for ; it.Valid(); it.Next() {
		if string(it.Key()) == string(target) {
			leafIndex = len(values)
		}
		v := make([]byte, len(it.Value()))
		copy(v, it.Value())
		values = append(values, v)
	}
	if err := it.Error(); err != nil {
		return nil, err
	}
	if leafIndex == -1 {
		return nil, fmt.Errorf("storage: key not present in state column")
	}

	tree, err := merkle.BuildTree(values)
	if err != nil {
		return nil, err
	}
	return tree.GenerateProof(leafIndex)
}
