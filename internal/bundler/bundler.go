// Package bundler converts a stream of validated Bridge events into
// outbound BridgeBundles and Receipts: accumulate a
// window of bridges, flush on a timer, partition by target chain,
// chunk by the target's max bundle size, build+sign the chain-specific
// outbound transaction through the threshold group, and emit a
// receipt per bridge once the outbound transaction is broadcast.
package bundler

import (
	"context"
	"crypto/ed25519"
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/zbridge/relay/internal/chainmodel"
	"github.com/zbridge/relay/internal/frost"
	"github.com/zbridge/relay/internal/metrics"
	"github.com/zbridge/relay/internal/pool"
	"github.com/zbridge/relay/internal/storage"
	"github.com/zbridge/relay/internal/xcrypto"
)

// DefaultWindow is the default accumulation window before a flush.
const DefaultWindow = 3 * time.Second

// Config wires a Bundler's collaborators.
type Config struct {
	Window   time.Duration
	Storage  *storage.Engine
	Bundles  *pool.BundlePool
	Receipts *pool.ReceiptPool
	Signer   frost.Signer
	Prover   ShieldedProver
	Schain   SchainOutbound
	Zchain   ZchainOutbound
	// Authority self-endorses bundles immediately after queuing them
	// (the dev single-validator deployment has no peer to gossip a
	// BFT endorsement with; production would instead rely on peer
	// votes arriving asynchronously and never set this).
	Authority ed25519.PrivateKey
	Logger    *log.Logger
	Metrics   *metrics.Metrics
}

// Bundler owns the in-memory accumulation window and the unresolved
// carry-over list; the bundle/receipt pools it mutates through their
// guarded handles.
type Bundler struct {
	cfg Config

	mu         sync.Mutex
	pending    map[chainmodel.Chain][]chainmodel.Bridge
	unresolved []chainmodel.Bridge
}

// New constructs a Bundler. A zero cfg.Window defaults to DefaultWindow.
func New(cfg Config) *Bundler {
	if cfg.Window == 0 {
		cfg.Window = DefaultWindow
	}
	if cfg.Logger == nil {
		cfg.Logger = log.Default()
	}
	if cfg.Metrics == nil {
		cfg.Metrics = metrics.New()
	}
	return &Bundler{
		cfg:     cfg,
		pending: make(map[chainmodel.Chain][]chainmodel.Bridge),
	}
}

// Accept validates and enqueues one bridge event into the current
// window. Txids already finalized in a prior block are silently
// dropped.
func (bd *Bundler) Accept(bridge chainmodel.Bridge) error {
	if len(bridge.Txid) == 0 || len(bridge.Recipient) == 0 {
		bd.cfg.Metrics.BridgesDropped.Inc()
		return ErrInvalidBridge
	}

	seen, err := bd.cfg.Storage.Exists(bridge.Txid)
	if err != nil {
		return fmt.Errorf("bundler: replay check: %w", err)
	}
	if seen {
		bd.cfg.Metrics.BridgesDropped.Inc()
		return nil // already processed; drop silently.
	}

	bd.mu.Lock()
	bd.pending[bridge.Target] = append(bd.pending[bridge.Target], bridge)
	bd.mu.Unlock()
	return nil
}

// Run accumulates bridges delivered on in and flushes on cfg.Window
// ticks until ctx is cancelled.
func (bd *Bundler) Run(ctx context.Context, in <-chan chainmodel.Bridge, prevHash func() xcrypto.Hash) {
	ticker := time.NewTicker(bd.cfg.Window)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case bridge, ok := <-in:
			if !ok {
				return
			}
			if err := bd.Accept(bridge); err != nil {
				bd.cfg.Logger.Printf("bundler: reject bridge txid=%x: %v", bridge.Txid, err)
			}
		case <-ticker.C:
			if err := bd.Flush(prevHash()); err != nil {
				bd.cfg.Logger.Printf("bundler: flush: %v", err)
			}
		}
	}
}

// Flush partitions the current window by target chain, chunks each
// partition by the target's max bundle size, and builds/signs/queues
// one BridgeBundle per chunk. Windows that fail to build (e.g.
// insufficient spendable notes) are moved to the unresolved carry-over
// list and retried on the next flush.
func (bd *Bundler) Flush(prevHash xcrypto.Hash) error {
	bd.mu.Lock()
	batch := bd.pending
	bd.pending = make(map[chainmodel.Chain][]chainmodel.Bridge)
	carry := bd.unresolved
	bd.unresolved = nil
	bd.mu.Unlock()

	for _, b := range carry {
		batch[b.Target] = append(batch[b.Target], b)
	}

	var firstErr error
	for target, bridges := range batch {
		if err := bd.flushTarget(prevHash, target, bridges); err != nil && firstErr == nil {
			firstErr = err
		}
	}

	bd.mu.Lock()
	bd.cfg.Metrics.UnresolvedGauge.Set(float64(len(bd.unresolved)))
	bd.mu.Unlock()
	return firstErr
}

func (bd *Bundler) flushTarget(prevHash xcrypto.Hash, target chainmodel.Chain, bridges []chainmodel.Bridge) error {
	size := target.MaxBundleSize()
	if size <= 0 {
		return fmt.Errorf("bundler: chain %s has no max bundle size configured", target)
	}

	for start := 0; start < len(bridges); start += size {
		end := start + size
		if end > len(bridges) {
			end = len(bridges)
		}
		window := bridges[start:end]

		var (
			bundle *chainmodel.BridgeBundle
			err    error
		)
		switch target {
		case chainmodel.SCHAIN:
			bundle, err = bd.buildSchainBundle(window)
		case chainmodel.ZCHAIN:
			bundle, err = bd.buildZchainBundle(window)
		default:
			err = fmt.Errorf("bundler: unknown target chain %s", target)
		}

		if err != nil {
			bd.cfg.Logger.Printf("bundler: %v; carrying %d bridge(s) to next flush", err, len(window))
			bd.mu.Lock()
			bd.unresolved = append(bd.unresolved, window...)
			bd.mu.Unlock()
			continue
		}

		bd.queueAndSelfEndorse(prevHash, bundle)
	}
	return nil
}

func (bd *Bundler) buildSchainBundle(window []chainmodel.Bridge) (*chainmodel.BridgeBundle, error) {
	blockhash, err := bd.cfg.Schain.RecentBlockhash()
	if err != nil {
		return nil, fmt.Errorf("schain recent blockhash: %w", err)
	}

	msg := schainMintMessage(window)
	sig, err := bd.cfg.Signer.Sign(msg)
	if err != nil {
		bd.cfg.Metrics.SignFailures.Inc()
		return nil, fmt.Errorf("schain threshold sign: %w", err)
	}

	dstTxid, err := bd.cfg.Schain.Broadcast(window, blockhash, sig)
	if err != nil {
		return nil, fmt.Errorf("schain broadcast: %w", err)
	}

	for _, b := range window {
		bd.cfg.Receipts.Queue(chainmodel.Receipt{
			Anchor: b.Txid, Coin: b.Coin, Txid: dstTxid,
			Source: b.Source, Target: b.Target,
		})
	}

	return &chainmodel.BridgeBundle{Target: chainmodel.SCHAIN, Bridges: window, Data: blockhash}, nil
}

// buildZchainBundle handles exactly one bridge: ZCHAIN bundles are
// size-1 by construction, enforced upstream by target.MaxBundleSize().
func (bd *Bundler) buildZchainBundle(window []chainmodel.Bridge) (*chainmodel.BridgeBundle, error) {
	if len(window) != 1 {
		return nil, fmt.Errorf("zchain bundle must be size 1, got %d", len(window))
	}
	bridge := window[0]

	unsigned, err := bd.cfg.Zchain.BuildUnsignedTx(bridge)
	if err != nil {
		return nil, fmt.Errorf("zchain build unsigned tx: %w", err)
	}

	authorized, err := bd.cfg.Signer.SignTx(unsigned, bd.cfg.Prover)
	if err != nil {
		bd.cfg.Metrics.SignFailures.Inc()
		return nil, fmt.Errorf("zchain sign tx: %w", err)
	}

	dstTxid, err := bd.cfg.Zchain.Broadcast(authorized)
	if err != nil {
		return nil, fmt.Errorf("zchain broadcast: %w", err)
	}

	bd.cfg.Receipts.Queue(chainmodel.Receipt{
		Anchor: bridge.Txid, Coin: bridge.Coin, Txid: dstTxid,
		Source: bridge.Source, Target: bridge.Target,
	})

	return &chainmodel.BridgeBundle{Target: chainmodel.ZCHAIN, Bridges: window, Data: authorized.Proof}, nil
}

// queueAndSelfEndorse inserts bundle into the bundle pool and, when
// this node is configured with an authority key (the dev
// single-validator deployment), immediately records its own
// endorsement signature over the bundle hash. Production deployments
// leave Authority unset and rely on peer-gossiped endorsements instead.
func (bd *Bundler) queueAndSelfEndorse(prevHash xcrypto.Hash, bundle *chainmodel.BridgeBundle) {
	if errs := bd.cfg.Bundles.Queue(prevHash, []*chainmodel.BridgeBundle{bundle}); len(errs) > 0 {
		for _, err := range errs {
			bd.cfg.Logger.Printf("bundler: queue bundle: %v", err)
		}
		return
	}
	bd.cfg.Metrics.BundlesBuilt.Inc()
	if bd.cfg.Authority == nil {
		return
	}
	hash := bundle.Hash(prevHash)
	sig := ed25519.Sign(bd.cfg.Authority, hash[:])
	if bd.cfg.Bundles.Complete(hash, sig) {
		bd.cfg.Metrics.BundlesCompleted.Inc()
	}
}
