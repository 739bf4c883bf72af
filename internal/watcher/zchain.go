package watcher

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/zbridge/relay/internal/addr"
	"github.com/zbridge/relay/internal/chainmodel"
	"github.com/zbridge/relay/internal/metrics"
)

// PollInterval is the ZCHAIN watcher's poll cadence: ~30s between
// polls against a ~75s source block time.
const PollInterval = 30 * time.Second

// Note is one Orchard note the light client reports as belonging to
// the group's unified viewing key. Memo is the undecoded plaintext
// memo field; decoding it into a recipient address is this package's
// responsibility, not the light client's.
type Note struct {
	Txid   []byte
	Amount uint64
	Memo   []byte
	Height uint64
}

// ShieldedLightClient is the black-box contract to the shielded
// wallet-DB/compact-block sync library ("discover spendable notes,
// build proofs"). NotesSince returns every Orchard note observed
// strictly after fromHeight, and the chain height the caller should
// persist as its new watermark.
type ShieldedLightClient interface {
	NotesSince(ctx context.Context, ufvk []byte, fromHeight uint64) (notes []Note, newHeight uint64, err error)
}

// WatermarkStore persists the monotonic last_height/last_block
// watermarks. ZChainWatcher advances its height so restarts resume
// without re-emitting already-processed notes; SChainWatcher only reads
// its block watermark and never sets it.
type WatermarkStore interface {
	GetZChainWatermark() (uint64, error)
	SetZChainWatermark(height uint64) error
	GetSChainWatermark() (uint64, error)
	SetSChainWatermark(block uint64) error
}

// ZChainWatcher polls for new Orchard notes and emits one Bridge per
// note whose memo decodes to an SCHAIN recipient address. Notes with
// an undecodable memo produce a warning and are skipped; they are
// candidates for a future refund flow.
type ZChainWatcher struct {
	client       ShieldedLightClient
	watermarks   WatermarkStore
	ufvk         []byte
	pollInterval time.Duration
	out          chan<- chainmodel.Bridge
	logger       *log.Logger
	metrics      *metrics.Metrics
}

// ZChainConfig wires a ZChainWatcher's collaborators.
type ZChainConfig struct {
	Client       ShieldedLightClient
	Watermarks   WatermarkStore
	UFVK         []byte
	PollInterval time.Duration
	Out          chan<- chainmodel.Bridge
	Logger       *log.Logger
	Metrics      *metrics.Metrics
}

// NewZChainWatcher constructs a watcher. A zero PollInterval defaults
// to PollInterval.
func NewZChainWatcher(cfg ZChainConfig) *ZChainWatcher {
	if cfg.PollInterval == 0 {
		cfg.PollInterval = PollInterval
	}
	if cfg.Logger == nil {
		cfg.Logger = log.Default()
	}
	if cfg.Metrics == nil {
		cfg.Metrics = metrics.New()
	}
	return &ZChainWatcher{
		client: cfg.Client, watermarks: cfg.Watermarks, ufvk: cfg.UFVK,
		pollInterval: cfg.PollInterval, out: cfg.Out, logger: cfg.Logger,
		metrics: cfg.Metrics,
	}
}

// Run polls on pollInterval ticks until ctx is cancelled, advancing
// and persisting the height watermark after every successful poll.
func (w *ZChainWatcher) Run(ctx context.Context) {
	ticker := time.NewTicker(w.pollInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if err := w.pollOnce(ctx); err != nil {
				w.logger.Printf("zchain watcher: %v", err)
			}
		}
	}
}

func (w *ZChainWatcher) pollOnce(ctx context.Context) error {
	height, err := w.watermarks.GetZChainWatermark()
	if err != nil {
		return fmt.Errorf("read watermark: %w", err)
	}

	notes, newHeight, err := w.client.NotesSince(ctx, w.ufvk, height)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrUpstreamRPC, err)
	}

	for _, note := range notes {
		recipient, err := decodeSchainRecipientMemo(note.Memo)
		if err != nil {
			w.logger.Printf("zchain watcher: note txid=%x has undecodable memo, skipping (candidate for future refund): %v", note.Txid, err)
			continue
		}

		bridge := chainmodel.Bridge{
			Coin: chainmodel.ZEC, Recipient: recipient, Amount: note.Amount,
			Source: chainmodel.ZCHAIN, Target: chainmodel.SCHAIN, Txid: note.Txid,
		}
		select {
		case w.out <- bridge:
			w.metrics.BridgesObserved.WithLabelValues("zchain").Inc()
		case <-ctx.Done():
			return nil
		}
	}

	if newHeight > height {
		if err := w.watermarks.SetZChainWatermark(newHeight); err != nil {
			return fmt.Errorf("persist watermark: %w", err)
		}
	}
	return nil
}

// decodeSchainRecipientMemo decodes a note's plaintext memo as a
// base58-encoded 32-byte SCHAIN address.
func decodeSchainRecipientMemo(memo []byte) ([]byte, error) {
	decoded, err := addr.DecodeSchainAddress(string(memo))
	if err != nil {
		return nil, fmt.Errorf("decode memo: %w", err)
	}
	return decoded[:], nil
}
