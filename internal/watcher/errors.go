// Package watcher implements the two chain-observing tasks that emit
// Bridge events onto a shared bounded channel: a ZCHAIN watcher
// polling a shielded light-client for Orchard notes, and an SCHAIN
// watcher subscribing to burn log events. Both are at-least-once; the
// bundler deduplicates by txid.
package watcher

import "errors"

// ErrUpstreamRPC marks an unreachable underlying chain RPC. The ZCHAIN
// watcher logs it and tries again on its next poll tick; the SCHAIN
// watcher logs it and receives no further events. Neither backs off.
var ErrUpstreamRPC = errors.New("watcher: upstream RPC unreachable")
