// Package rpcserver exposes the node's thin external RPC surface:
// chainInfo over plain HTTP/JSON, and subscribeBlock /
// subscribeTransaction upgraded to a WebSocket stream.
package rpcserver

import (
	"encoding/hex"
	"encoding/json"
	"log"
	"net/http"

	"github.com/gorilla/websocket"

	"github.com/zbridge/relay/internal/chainmodel"
	"github.com/zbridge/relay/internal/subscription"
)

// ChainInfoSource is the read-only slice of *runtime.Runtime this
// server depends on, kept as an interface so tests don't need a full
// storage-backed runtime.
type ChainInfoSource interface {
	ChainInfo() (chainmodel.State, error)
}

// Server wires the three RPC endpoints over one *http.ServeMux.
type Server struct {
	mux      *http.ServeMux
	chain    ChainInfoSource
	subs     *subscription.Manager
	upgrader websocket.Upgrader
	logger   *log.Logger
}

// New just wires collaborators; the caller owns the http.Server that
// actually listens.
func New(chain ChainInfoSource, subs *subscription.Manager, logger *log.Logger) *Server {
	if logger == nil {
		logger = log.Default()
	}
	s := &Server{
		chain:  chain,
		subs:   subs,
		logger: logger,
		// CheckOrigin is permissive: this server is a node-operator-facing
		// RPC surface, not a browser-facing one with cross-origin concerns.
		upgrader: websocket.Upgrader{CheckOrigin: func(*http.Request) bool { return true }},
	}
	s.mux = http.NewServeMux()
	s.mux.HandleFunc("/chainInfo", s.handleChainInfo)
	s.mux.HandleFunc("/subscribeBlock", s.handleSubscribeBlock)
	s.mux.HandleFunc("/subscribeTransaction", s.handleSubscribeTransaction)
	return s
}

// Handler returns the underlying http.Handler, for use with
// http.Server or in tests via httptest.
func (s *Server) Handler() http.Handler { return s.mux }

// MountMetrics exposes a metrics handler at /metrics.
func (s *Server) MountMetrics(h http.Handler) { s.mux.Handle("/metrics", h) }

type chainInfoResponse struct {
	Slot        uint32 `json:"slot"`
	Head        string `json:"head"`
	Accumulator string `json:"accumulator"`
	Threshold   uint8  `json:"threshold"`
	Validators  int    `json:"validators"`
}

func (s *Server) handleChainInfo(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")

	state, err := s.chain.ChainInfo()
	if err != nil {
		http.Error(w, `{"error":"failed to load chain info"}`, http.StatusInternalServerError)
		return
	}

	resp := chainInfoResponse{
		Slot:        state.Head.Slot,
		Head:        state.Head.Hash.String(),
		Accumulator: state.Accumulator.String(),
		Threshold:   state.BFT.Threshold,
		Validators:  len(state.BFT.Validators),
	}
	if err := json.NewEncoder(w).Encode(resp); err != nil {
		http.Error(w, `{"error":"failed to encode response"}`, http.StatusInternalServerError)
	}
}

func (s *Server) handleSubscribeBlock(w http.ResponseWriter, r *http.Request) {
	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		s.logger.Printf("rpcserver: subscribeBlock upgrade: %v", err)
		return
	}
	defer conn.Close()
	subscription.ServeBlocks(r.Context(), conn, s.subs, s.logger)
}

func (s *Server) handleSubscribeTransaction(w http.ResponseWriter, r *http.Request) {
	txidHex := r.URL.Query().Get("txid")
	txid, err := hex.DecodeString(txidHex)
	if err != nil {
		http.Error(w, `{"error":"invalid txid parameter"}`, http.StatusBadRequest)
		return
	}

	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		s.logger.Printf("rpcserver: subscribeTransaction upgrade: %v", err)
		return
	}
	defer conn.Close()
	subscription.ServeTxStatus(r.Context(), conn, s.subs, txid, s.logger)
}
