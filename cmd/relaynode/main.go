// Command relaynode runs the bridge relay node: both chain watchers,
// the bundler, the authoring loop, and the RPC/subscription server,
// wired over one storage engine and one threshold-signing group.
//
// With the -dev flag the node runs self-contained as the sole
// validator, with stub chain endpoints, which is enough to author
// blocks, exercise the full bundle/receipt pipeline, and serve the RPC
// surface locally.
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"sync"
	"syscall"
	"time"

	dbm "github.com/cometbft/cometbft-db"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/ethclient"

	"github.com/zbridge/relay/internal/authoring"
	"github.com/zbridge/relay/internal/bundler"
	"github.com/zbridge/relay/internal/chainmodel"
	"github.com/zbridge/relay/internal/frost"
	"github.com/zbridge/relay/internal/genesis"
	"github.com/zbridge/relay/internal/keys"
	"github.com/zbridge/relay/internal/metrics"
	"github.com/zbridge/relay/internal/pool"
	"github.com/zbridge/relay/internal/rpcserver"
	"github.com/zbridge/relay/internal/runtime"
	"github.com/zbridge/relay/internal/storage"
	"github.com/zbridge/relay/internal/subscription"
	"github.com/zbridge/relay/internal/watcher"
	"github.com/zbridge/relay/internal/xcrypto"
	"github.com/zbridge/relay/pkg/config"
)

// bridgeChannelCapacity bounds the watcher→bundler channel.
const bridgeChannelCapacity = 512

// devShieldedClient is the dev-mode stand-in for the shielded
// light-client: it never reports notes, so a dev node authors empty
// blocks until bridges are injected by other means.
type devShieldedClient struct{}

func (devShieldedClient) NotesSince(_ context.Context, _ []byte, from uint64) ([]watcher.Note, uint64, error) {
	return nil, from, nil
}

// devEVMSource is the dev-mode stand-in for the SCHAIN burn log
// subscription: it blocks until cancelled without emitting events.
type devEVMSource struct{}

func (devEVMSource) SubscribeBurns(ctx context.Context, _ uint64, _ chan<- watcher.BurnEvent) error {
	<-ctx.Done()
	return nil
}

// devSchainOutbound fakes the SCHAIN mint transaction submission: the
// destination txid is a digest of the signed message, which keeps
// receipts deterministic for a given window.
type devSchainOutbound struct{}

func (devSchainOutbound) RecentBlockhash() ([]byte, error) {
	return xcrypto.Blake3([]byte("dev-recent-blockhash")).Bytes(), nil
}

func (devSchainOutbound) Broadcast(window []chainmodel.Bridge, recentBlockhash []byte, sig frost.Signature) ([]byte, error) {
	parts := [][]byte{recentBlockhash, sig[:]}
	for _, b := range window {
		parts = append(parts, b.Txid)
	}
	return xcrypto.Blake3(parts...).Bytes(), nil
}

// devZchainOutbound fakes the shielded transaction builder and
// broadcaster with a single synthetic input per bridge.
type devZchainOutbound struct{}

func (devZchainOutbound) BuildUnsignedTx(bridge chainmodel.Bridge) (frost.ShieldedUnsignedTx, error) {
	var alpha frost.Randomizer
	copy(alpha[:], xcrypto.Blake3([]byte("alpha"), bridge.Txid).Bytes())
	return frost.ShieldedUnsignedTx{
		SigHash: xcrypto.Blake3([]byte("sighash"), bridge.Txid).Bytes(),
		Inputs:  []frost.ShieldedInput{{Alpha: alpha}},
	}, nil
}

func (devZchainOutbound) Broadcast(tx frost.ShieldedAuthorizedTx) ([]byte, error) {
	return xcrypto.Blake3(tx.Proof).Bytes(), nil
}

// devProver fakes proof construction with a digest of the sighash.
type devProver struct{}

func (devProver) Prove(tx frost.ShieldedUnsignedTx) ([]byte, error) {
	return xcrypto.Blake3([]byte("proof"), tx.SigHash).Bytes(), nil
}

func main() {
	devMode := flag.Bool("dev", false, "run a self-contained single-validator development node")
	flag.Parse()

	logger := log.New(os.Stdout, "relay ", log.LstdFlags|log.Lmsgprefix)

	cfg, err := config.Load()
	if err != nil {
		logger.Fatalf("load configuration: %v", err)
	}
	if *devMode {
		err = cfg.ValidateForDevelopment()
	} else {
		err = cfg.Validate()
	}
	if err != nil {
		logger.Fatalf("%v", err)
	}

	if err := run(cfg, *devMode, logger); err != nil {
		logger.Fatalf("%v", err)
	}
}

func run(cfg *config.Config, devMode bool, logger *log.Logger) error {
	db, err := dbm.NewDB("relay", dbm.GoLevelDBBackend, cfg.DataDir)
	if err != nil {
		return fmt.Errorf("open database in %s: %w", cfg.DataDir, err)
	}
	defer db.Close()
	engine := storage.New(db)

	keyPath := cfg.Ed25519KeyPath
	if keyPath == "" {
		keyPath = filepath.Join(cfg.DataDir, keys.DefaultFileName)
	}
	authority, err := keys.LoadOrGenerate(keyPath)
	if err != nil {
		return err
	}
	authorityPub := keys.PubKey32(authority)
	logger.Printf("authority key loaded from %s", keyPath)

	if err := seedGenesisIfNeeded(engine, authorityPub, logger); err != nil {
		return err
	}

	signer, err := frost.New(cfg.FrostMax, cfg.FrostThreshold)
	if err != nil {
		return fmt.Errorf("construct signing group: %w", err)
	}
	logger.Printf("frost group ready: %d-of-%d", cfg.FrostThreshold, cfg.FrostMax)

	m := metrics.New()
	subs := subscription.New()
	bundles := pool.NewBundlePool(int(currentThreshold(engine)))
	receipts := pool.NewReceiptPool()
	rt := runtime.New(engine, bundles, receipts, subs.OnFinalized)

	watermarks := watcher.NewStorageWatermarks(engine)
	bridges := make(chan chainmodel.Bridge, bridgeChannelCapacity)

	zchainClient, schainSource, schainOut, zchainOut, prover, err := chainEndpoints(cfg, devMode)
	if err != nil {
		return err
	}

	zw := watcher.NewZChainWatcher(watcher.ZChainConfig{
		Client: zchainClient, Watermarks: watermarks, UFVK: []byte(cfg.ZChainUFVK),
		PollInterval: cfg.ZChainPollInterval, Out: bridges, Logger: logger, Metrics: m,
	})
	sw := watcher.NewSChainWatcher(watcher.SChainConfig{
		Source: schainSource, Watermarks: watermarks, Out: bridges, Logger: logger, Metrics: m,
	})

	bd := bundler.New(bundler.Config{
		Window: cfg.BundleWindow, Storage: engine,
		Bundles: bundles, Receipts: receipts,
		Signer: signer, Prover: prover,
		Schain: schainOut, Zchain: zchainOut,
		Authority: authority, Logger: logger, Metrics: m,
	})

	loop := authoring.New(authoring.Config{
		Runtime: rt, Identity: authority,
		Interval: cfg.AuthorInterval, Logger: logger, Metrics: m,
	})

	server := rpcserver.New(rt, subs, logger)
	server.MountMetrics(m.Handler())
	httpServer := &http.Server{Addr: cfg.ListenAddr, Handler: server.Handler()}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	var wg sync.WaitGroup
	runTask := func(name string, fn func()) {
		wg.Add(1)
		go func() {
			defer wg.Done()
			logger.Printf("%s started", name)
			fn()
			logger.Printf("%s stopped", name)
		}()
	}

	runTask("zchain watcher", func() { zw.Run(ctx) })
	runTask("schain watcher", func() { sw.Run(ctx) })
	runTask("bundler", func() {
		bd.Run(ctx, bridges, func() xcrypto.Hash { return currentHead(engine).Hash })
	})
	runTask("authoring loop", func() { loop.Run(ctx) })
	runTask("rpc server", func() {
		if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Printf("rpc server: %v", err)
		}
	})

	logger.Printf("relay node up: network=%s listening on %s", cfg.NetworkName, cfg.ListenAddr)
	<-ctx.Done()
	logger.Printf("shutdown requested")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		logger.Printf("rpc server shutdown: %v", err)
	}
	wg.Wait()
	return nil
}

// chainEndpoints wires the chain-facing collaborators. Dev mode uses
// in-process fakes for all five. Otherwise only the SCHAIN burn source
// is real (an ethclient dialled at cfg.SChainRPCURL); the shielded
// light client, both outbound submitters and the prover are still the
// dev fakes.
func chainEndpoints(cfg *config.Config, devMode bool) (
	watcher.ShieldedLightClient, watcher.EVMLogSource,
	bundler.SchainOutbound, bundler.ZchainOutbound, bundler.ShieldedProver, error,
) {
	if devMode {
		return devShieldedClient{}, devEVMSource{}, devSchainOutbound{}, devZchainOutbound{}, devProver{}, nil
	}

	dialCtx, cancel := context.WithTimeout(context.Background(), cfg.OutboundTimeout)
	defer cancel()
	client, err := ethclient.DialContext(dialCtx, cfg.SChainRPCURL)
	if err != nil {
		return nil, nil, nil, nil, nil, fmt.Errorf("dial schain rpc %s: %w", cfg.SChainRPCURL, err)
	}
	source, err := watcher.NewEVMBurnSource(client, common.HexToAddress(cfg.SChainBridgeContract))
	if err != nil {
		return nil, nil, nil, nil, nil, err
	}

	// Outbound submission and shielded proving run against external
	// services; until those adapters are configured the dev fakes keep
	// the pipeline operable end-to-end.
	return devShieldedClient{}, source, devSchainOutbound{}, devZchainOutbound{}, devProver{}, nil
}

func seedGenesisIfNeeded(engine *storage.Engine, authority chainmodel.PubKey32, logger *log.Logger) error {
	existing, err := engine.Get(storage.StateKey(storage.StateTagBFT))
	if err != nil {
		return fmt.Errorf("read genesis state: %w", err)
	}
	if existing != nil {
		return nil
	}
	if err := engine.Commit(genesis.Commit(authority)); err != nil {
		return fmt.Errorf("seed genesis: %w", err)
	}
	logger.Printf("genesis committed: single validator, threshold 1")
	return nil
}

func currentThreshold(engine *storage.Engine) uint8 {
	raw, err := engine.Get(storage.StateKey(storage.StateTagBFT))
	if err != nil || raw == nil {
		return 1
	}
	bft, err := chainmodel.DecodeBFT(raw)
	if err != nil {
		return 1
	}
	return bft.Threshold
}

func currentHead(engine *storage.Engine) chainmodel.Head {
	raw, err := engine.Get(storage.StateKey(storage.StateTagHead))
	if err != nil || raw == nil {
		return chainmodel.Head{}
	}
	head, err := chainmodel.DecodeHead(raw)
	if err != nil {
		return chainmodel.Head{}
	}
	return head
}
