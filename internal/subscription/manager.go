// Package subscription fans out finalized blocks and per-txid status
// updates to connected consumers: each finalized block is delivered
// exactly once to every sink registered before finalization; a lagging
// subscriber drops intermediate updates rather than blocking the
// dispatcher, and a subscriber whose receive side has gone away is
// removed on the next dispatch attempt.
package subscription

import (
	"sync"

	"github.com/google/uuid"

	"github.com/zbridge/relay/internal/chainmodel"
)

// subscriberBufferSize bounds each subscriber's channel, the same
// 512-capacity bound the rest of the node's channels use.
const subscriberBufferSize = 512

// TxStatus is one update in a txid's lifecycle, dispatched to anyone
// subscribed to that specific txid.
type TxStatus struct {
	Txid  []byte
	State string // "bundled", "finalized", "broadcast", "confirmed"
}

type blockSub struct {
	ch chan *chainmodel.Block
}

type txSub struct {
	txid string
	ch   chan TxStatus
}

// Manager holds the live subscriber sets. Registration and dispatch
// both take the same mutex; the mutex is never held while sending on a
// subscriber channel blocks, since every send is itself non-blocking
// (select/default).
type Manager struct {
	mu       sync.Mutex
	blocks   map[uuid.UUID]*blockSub
	txStatus map[uuid.UUID]*txSub
}

// New constructs an empty Manager.
func New() *Manager {
	return &Manager{blocks: make(map[uuid.UUID]*blockSub), txStatus: make(map[uuid.UUID]*txSub)}
}

// SubscribeBlocks registers a new finalized-block sink and returns a
// receive channel plus a Cancel function to unregister it.
func (m *Manager) SubscribeBlocks() (<-chan *chainmodel.Block, func()) {
	m.mu.Lock()
	defer m.mu.Unlock()

	id := uuid.New()
	sub := &blockSub{ch: make(chan *chainmodel.Block, subscriberBufferSize)}
	m.blocks[id] = sub

	return sub.ch, func() {
		m.mu.Lock()
		defer m.mu.Unlock()
		delete(m.blocks, id)
	}
}

// SubscribeTx registers a status sink scoped to one txid.
func (m *Manager) SubscribeTx(txid []byte) (<-chan TxStatus, func()) {
	m.mu.Lock()
	defer m.mu.Unlock()

	id := uuid.New()
	sub := &txSub{txid: string(txid), ch: make(chan TxStatus, subscriberBufferSize)}
	m.txStatus[id] = sub

	return sub.ch, func() {
		m.mu.Lock()
		defer m.mu.Unlock()
		delete(m.txStatus, id)
	}
}

// DispatchBlock delivers block to every currently-registered block
// subscriber. A subscriber whose buffer is full has the send dropped:
// lagged subscribers lose intermediate updates, never the dispatcher.
func (m *Manager) DispatchBlock(block *chainmodel.Block) {
	m.mu.Lock()
	defer m.mu.Unlock()

	for _, sub := range m.blocks {
		select {
		case sub.ch <- block:
		default:
		}
	}
}

// DispatchTxStatus delivers a status update to every subscriber
// registered against the matching txid.
func (m *Manager) DispatchTxStatus(status TxStatus) {
	m.mu.Lock()
	defer m.mu.Unlock()

	key := string(status.Txid)
	for _, sub := range m.txStatus {
		if sub.txid != key {
			continue
		}
		select {
		case sub.ch <- status:
		default:
		}
	}
}

// OnFinalized adapts DispatchBlock to runtime.FinalizedHook's shape, so
// a Manager can be wired directly as the runtime's finalized hook.
func (m *Manager) OnFinalized(block *chainmodel.Block) {
	m.DispatchBlock(block)
}
