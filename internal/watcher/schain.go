package watcher

import (
	"context"
	"log"

	"github.com/zbridge/relay/internal/chainmodel"
	"github.com/zbridge/relay/internal/metrics"
)

// BurnEvent is one decoded burn log from the SCHAIN bridge program:
// amount burned, the embedded ZCHAIN unified-address recipient string
// (as emitted by the program; carried as UTF-8 bytes in the resulting
// Bridge), and the signature identifying the burn transaction.
type BurnEvent struct {
	Recipient string
	Amount    uint64
	Txid      []byte
}

// EVMLogSource abstracts the log subscription + ABI decoding the
// concrete adapter performs, so SChainWatcher itself is decoupled from
// go-ethereum's client types.
type EVMLogSource interface {
	SubscribeBurns(ctx context.Context, fromBlock uint64, out chan<- BurnEvent) error
}

// SChainWatcher translates SCHAIN burn log events into Bridge events
// targeting ZCHAIN.
type SChainWatcher struct {
	source     EVMLogSource
	watermarks WatermarkStore
	out        chan<- chainmodel.Bridge
	logger     *log.Logger
	metrics    *metrics.Metrics
}

// SChainConfig wires an SChainWatcher's collaborators.
type SChainConfig struct {
	Source     EVMLogSource
	Watermarks WatermarkStore
	Out        chan<- chainmodel.Bridge
	Logger     *log.Logger
	Metrics    *metrics.Metrics
}

func NewSChainWatcher(cfg SChainConfig) *SChainWatcher {
	if cfg.Logger == nil {
		cfg.Logger = log.Default()
	}
	if cfg.Metrics == nil {
		cfg.Metrics = metrics.New()
	}
	return &SChainWatcher{source: cfg.Source, watermarks: cfg.Watermarks, out: cfg.Out, logger: cfg.Logger, metrics: cfg.Metrics}
}

// Run subscribes to burn events from the persisted SCHAIN block
// watermark and translates each into a Bridge. Run reads that
// watermark but never advances it, so every Run starts from the same
// block. A subscription error is logged and no further events arrive
// until Run is called again; there is no restart or backoff.
func (w *SChainWatcher) Run(ctx context.Context) {
	fromBlock, err := w.watermarks.GetSChainWatermark()
	if err != nil {
		w.logger.Printf("schain watcher: read watermark: %v", err)
		return
	}

	events := make(chan BurnEvent, 512)
	go func() {
		if err := w.source.SubscribeBurns(ctx, fromBlock, events); err != nil {
			w.logger.Printf("schain watcher: %s: %v", ErrUpstreamRPC, err)
		}
	}()

	for {
		select {
		case <-ctx.Done():
			return
		case ev, ok := <-events:
			if !ok {
				return
			}
			w.handle(ctx, ev)
		}
	}
}

func (w *SChainWatcher) handle(ctx context.Context, ev BurnEvent) {
	bridge := chainmodel.Bridge{
		Coin: chainmodel.ZEC, Recipient: []byte(ev.Recipient), Amount: ev.Amount,
		Source: chainmodel.SCHAIN, Target: chainmodel.ZCHAIN, Txid: ev.Txid,
	}
	select {
	case w.out <- bridge:
		w.metrics.BridgesObserved.WithLabelValues("schain").Inc()
	case <-ctx.Done():
	}
}

