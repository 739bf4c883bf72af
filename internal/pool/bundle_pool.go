// Package pool implements the two mempool sub-pools: a bundle pool
// that aggregates validator signatures until threshold, and a simple
// ordered receipt queue. Both are guarded by a mutex held only across
// the map mutation itself, never across signing or disk I/O.
package pool

import (
	"sync"

	"github.com/zbridge/relay/internal/chainmodel"
	"github.com/zbridge/relay/internal/xcrypto"
)

// BundlePool holds bridge bundles as they accumulate threshold
// signatures. A bundle transitions in_progress -> completed exactly
// once, the moment its signature count first reaches the threshold.
type BundlePool struct {
	mu         sync.Mutex
	threshold  int
	inProgress map[xcrypto.Hash]*chainmodel.BridgeBundle
	completed  map[xcrypto.Hash]*chainmodel.BridgeBundle
	sigSeen    map[xcrypto.Hash]map[string]bool
}

// NewBundlePool constructs an empty pool requiring threshold
// signatures for completion.
func NewBundlePool(threshold int) *BundlePool {
	return &BundlePool{
		threshold:  threshold,
		inProgress: make(map[xcrypto.Hash]*chainmodel.BridgeBundle),
		completed:  make(map[xcrypto.Hash]*chainmodel.BridgeBundle),
		sigSeen:    make(map[xcrypto.Hash]map[string]bool),
	}
}

// Queue inserts newBundles into the in_progress map keyed by hash.
// blockPrevHash scopes each bundle's identity hash to the block it is
// being proposed against (BridgeBundle.Hash). A bundle whose hash
// already exists in either map is rejected with ErrDuplicateBundle and
// the rest of the batch is still attempted.
func (p *BundlePool) Queue(blockPrevHash xcrypto.Hash, newBundles []*chainmodel.BridgeBundle) []error {
	p.mu.Lock()
	defer p.mu.Unlock()

	var errs []error
	for _, b := range newBundles {
		h := b.Hash(blockPrevHash)
		if _, ok := p.inProgress[h]; ok {
			errs = append(errs, ErrDuplicateBundle)
			continue
		}
		if _, ok := p.completed[h]; ok {
			errs = append(errs, ErrDuplicateBundle)
			continue
		}
		p.inProgress[h] = b
	}
	return errs
}

// Complete appends signature to the in-progress bundle identified by
// hash. The moment the bundle's signature count reaches the pool's
// threshold it is moved atomically to the completed map and Complete
// reports true. Repeating an already-recorded signature is a no-op.
func (p *BundlePool) Complete(hash xcrypto.Hash, signature []byte) bool {
	p.mu.Lock()
	defer p.mu.Unlock()

	b, ok := p.inProgress[hash]
	if !ok {
		return false // already completed/packed, or unknown — nothing to do.
	}

	seen := p.sigSeen[hash]
	if seen == nil {
		seen = make(map[string]bool)
		p.sigSeen[hash] = seen
	}
	key := string(signature)
	if seen[key] {
		return false
	}
	seen[key] = true
	b.Signatures = append(b.Signatures, signature)

	if len(b.Signatures) >= p.threshold {
		delete(p.inProgress, hash)
		p.completed[hash] = b
		return true
	}
	return false
}

// Pack drains every completed bundle, returning ownership to the
// caller (the runtime, building an extrinsic).
func (p *BundlePool) Pack() map[xcrypto.Hash]*chainmodel.BridgeBundle {
	p.mu.Lock()
	defer p.mu.Unlock()

	out := p.completed
	p.completed = make(map[xcrypto.Hash]*chainmodel.BridgeBundle)
	for h := range out {
		delete(p.sigSeen, h)
	}
	return out
}

// InProgressCount reports the number of bundles still accumulating
// signatures, for metrics/diagnostics.
func (p *BundlePool) InProgressCount() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return len(p.inProgress)
}
