package subscription

import (
	"context"
	"encoding/json"
	"log"
	"time"

	"github.com/gorilla/websocket"
)

// writeWait bounds every WebSocket frame write, the node's general
// outbound-call deadline.
const writeWait = 30 * time.Second

// blockFrame is the wire shape of a finalized-block subscription push.
type blockFrame struct {
	Slot        uint32 `json:"slot"`
	Accumulator string `json:"accumulator"`
}

// txFrame is the wire shape of a per-txid status push.
type txFrame struct {
	Txid  string `json:"txid"`
	State string `json:"state"`
}

// ServeBlocks pumps every finalized block from the manager to conn as a
// JSON frame until ctx is cancelled or the write fails, then
// unsubscribes. One goroutine per connection, the same
// one-goroutine-per-task shape as the rest of this node.
func ServeBlocks(ctx context.Context, conn *websocket.Conn, m *Manager, logger *log.Logger) {
	if logger == nil {
		logger = log.Default()
	}
	ch, cancel := m.SubscribeBlocks()
	defer cancel()

	for {
		select {
		case <-ctx.Done():
			return
		case block, ok := <-ch:
			if !ok {
				return
			}
			frame := blockFrame{Slot: block.Header.Slot, Accumulator: block.Header.Accumulator.String()}
			payload, err := json.Marshal(frame)
			if err != nil {
				logger.Printf("subscription: marshal block frame: %v", err)
				continue
			}
			conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := conn.WriteMessage(websocket.TextMessage, payload); err != nil {
				logger.Printf("subscription: write block frame: %v", err)
				return
			}
		}
	}
}

// ServeTxStatus pumps status updates for one txid to conn.
func ServeTxStatus(ctx context.Context, conn *websocket.Conn, m *Manager, txid []byte, logger *log.Logger) {
	if logger == nil {
		logger = log.Default()
	}
	ch, cancel := m.SubscribeTx(txid)
	defer cancel()

	for {
		select {
		case <-ctx.Done():
			return
		case status, ok := <-ch:
			if !ok {
				return
			}
			frame := txFrame{Txid: string(status.Txid), State: status.State}
			payload, err := json.Marshal(frame)
			if err != nil {
				logger.Printf("subscription: marshal tx frame: %v", err)
				continue
			}
			conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := conn.WriteMessage(websocket.TextMessage, payload); err != nil {
				logger.Printf("subscription: write tx frame: %v", err)
				return
			}
		}
	}
}
