// Package authoring drives the mini-BFT block producer on a fixed
// cadence: author, self-sign, import, dispatch — the node's single
// long-running authoring task.
package authoring

import (
	"context"
	"crypto/ed25519"
	"log"
	"time"

	"github.com/zbridge/relay/internal/chainmodel"
	"github.com/zbridge/relay/internal/metrics"
	"github.com/zbridge/relay/internal/runtime"
)

// Interval is the default cadence between authoring attempts.
const Interval = 3 * time.Second

// BackoffDelay is how long the loop waits after a failed iteration
// before trying again.
const BackoffDelay = 5 * time.Second

// Loop owns no state beyond its collaborators: the runtime it authors
// and imports through, and the node's own validator identity.
type Loop struct {
	rt       *runtime.Runtime
	identity ed25519.PrivateKey
	pubKey   chainmodel.PubKey32
	interval time.Duration
	logger   *log.Logger
	metrics  *metrics.Metrics
}

// Config wires a Loop's collaborators.
type Config struct {
	Runtime  *runtime.Runtime
	Identity ed25519.PrivateKey
	Interval time.Duration
	Logger   *log.Logger
	Metrics  *metrics.Metrics
}

// New constructs a Loop. A zero Interval defaults to Interval.
func New(cfg Config) *Loop {
	if cfg.Interval == 0 {
		cfg.Interval = Interval
	}
	if cfg.Logger == nil {
		cfg.Logger = log.Default()
	}
	if cfg.Metrics == nil {
		cfg.Metrics = metrics.New()
	}
	var pub chainmodel.PubKey32
	copy(pub[:], cfg.Identity.Public().(ed25519.PublicKey))
	return &Loop{rt: cfg.Runtime, identity: cfg.Identity, pubKey: pub, interval: cfg.Interval, logger: cfg.Logger, metrics: cfg.Metrics}
}

// Run ticks on interval until ctx is cancelled. Each failed iteration
// is followed by BackoffDelay before the next tick is allowed to fire,
// rather than a cancellation of in-flight work — every iteration is
// bounded, so there is nothing to cancel.
func (l *Loop) Run(ctx context.Context) {
	ticker := time.NewTicker(l.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if err := l.tick(); err != nil {
				l.logger.Printf("authoring loop: %v", err)
				select {
				case <-ctx.Done():
					return
				case <-time.After(BackoffDelay):
				}
			}
		}
	}
}

// tick performs one author/self-sign/import cycle.
func (l *Loop) tick() error {
	block, err := l.rt.Author()
	if err != nil {
		return err
	}
	l.metrics.BlocksAuthored.Inc()

	hash := block.Header.Hash()
	sig := ed25519.Sign(l.identity, hash[:])
	var out chainmodel.Signature64
	copy(out[:], sig)
	block.Header.Votes[l.pubKey] = out

	if err := l.rt.Import(block); err != nil {
		l.metrics.ImportFailures.Inc()
		return err
	}
	l.metrics.BlocksImported.Inc()
	l.metrics.HeadSlot.Set(float64(block.Header.Slot))
	return nil
}
