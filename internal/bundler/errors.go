package bundler

import "errors"

// ErrInvalidBridge is returned by Accept when a bridge event fails
// watcher-side sanity checks; the bridge is dropped locally, never
// retried.
var ErrInvalidBridge = errors.New("bundler: invalid bridge event")
