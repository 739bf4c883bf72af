package pool

import (
	"sync"

	"github.com/zbridge/relay/internal/chainmodel"
)

// ReceiptPool is a simple FIFO: the bundler appends receipts once it
// has broadcast an outbound bridge transaction, and the runtime
// drains the whole queue into each new extrinsic.
type ReceiptPool struct {
	mu    sync.Mutex
	queue []chainmodel.Receipt
}

// NewReceiptPool returns an empty receipt queue.
func NewReceiptPool() *ReceiptPool { return &ReceiptPool{} }

// Queue appends receipts to the tail of the pool in order.
func (p *ReceiptPool) Queue(receipts ...chainmodel.Receipt) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.queue = append(p.queue, receipts...)
}

// Pack drains and returns every queued receipt in FIFO order.
func (p *ReceiptPool) Pack() []chainmodel.Receipt {
	p.mu.Lock()
	defer p.mu.Unlock()
	out := p.queue
	p.queue = nil
	return out
}

// Len reports the number of receipts currently queued.
func (p *ReceiptPool) Len() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return len(p.queue)
}
