package pool

import "errors"

// ErrDuplicateBundle is returned by BundlePool.Queue when an inserted
// bundle's hash collides with one already present in either the
// in-progress or completed map. Bundle hashes are immutable once
// inserted.
var ErrDuplicateBundle = errors.New("pool: duplicate bundle hash")
