// Package metrics exposes the relay node's operational counters and
// gauges over a private Prometheus registry, served from the RPC
// server's /metrics endpoint.
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics holds every instrument the node updates. A single instance
// is constructed at node startup and handed to each task.
type Metrics struct {
	registry *prometheus.Registry

	BlocksAuthored   prometheus.Counter
	BlocksImported   prometheus.Counter
	ImportFailures   prometheus.Counter
	BundlesBuilt     prometheus.Counter
	BundlesCompleted prometheus.Counter
	BridgesObserved  *prometheus.CounterVec
	BridgesDropped   prometheus.Counter
	SignFailures     prometheus.Counter
	UnresolvedGauge  prometheus.Gauge
	HeadSlot         prometheus.Gauge
}

// New constructs and registers every instrument on a fresh registry.
func New() *Metrics {
	reg := prometheus.NewRegistry()
	m := &Metrics{registry: reg}

	m.BlocksAuthored = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "relay_blocks_authored_total",
		Help: "Blocks produced by the local authoring loop",
	})
	m.BlocksImported = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "relay_blocks_imported_total",
		Help: "Blocks validated and durably committed",
	})
	m.ImportFailures = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "relay_block_import_failures_total",
		Help: "Blocks rejected during import validation",
	})
	m.BundlesBuilt = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "relay_bundles_built_total",
		Help: "Bridge bundles constructed and queued",
	})
	m.BundlesCompleted = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "relay_bundles_completed_total",
		Help: "Bridge bundles that reached the signature threshold",
	})
	m.BridgesObserved = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "relay_bridges_observed_total",
		Help: "Bridge events emitted by the chain watchers",
	}, []string{"source"})
	m.BridgesDropped = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "relay_bridges_dropped_total",
		Help: "Bridge events dropped as invalid or already processed",
	})
	m.SignFailures = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "relay_sign_failures_total",
		Help: "Threshold-signing attempts that returned an error",
	})
	m.UnresolvedGauge = prometheus.NewGauge(prometheus.GaugeOpts{
		Name: "relay_unresolved_bridges",
		Help: "Bridges carried over to the next flush after a build failure",
	})
	m.HeadSlot = prometheus.NewGauge(prometheus.GaugeOpts{
		Name: "relay_head_slot",
		Help: "Slot of the most recently finalized block",
	})

	reg.MustRegister(
		m.BlocksAuthored, m.BlocksImported, m.ImportFailures,
		m.BundlesBuilt, m.BundlesCompleted, m.BridgesObserved,
		m.BridgesDropped, m.SignFailures, m.UnresolvedGauge, m.HeadSlot,
	)
	return m
}

// Handler serves the registry in the Prometheus text format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}
