// Package chainmodel defines the bridge's core domain entities: chains,
// bridges, bundles, receipts, and the block/header types the mini-BFT
// runtime authors and imports.
package chainmodel

// Chain identifies one side of the bridge.
type Chain uint8

const (
	ZCHAIN Chain = iota
	SCHAIN
)

func (c Chain) String() string {
	switch c {
	case ZCHAIN:
		return "ZCHAIN"
	case SCHAIN:
		return "SCHAIN"
	default:
		return "UNKNOWN"
	}
}

// MaxBundleSize returns the largest number of bridges a single bundle
// targeting this chain may carry. ZCHAIN is prove-heavy so every bundle
// is a single shielded transaction; SCHAIN batches up to 10 recipients
// per mint instruction.
func (c Chain) MaxBundleSize() int {
	switch c {
	case ZCHAIN:
		return 1
	case SCHAIN:
		return 10
	default:
		return 0
	}
}

// Coin identifies the bridged asset. Extensible by design: today only
// ZEC is supported.
type Coin uint8

const (
	ZEC Coin = iota
)

func (c Coin) String() string {
	switch c {
	case ZEC:
		return "ZEC"
	default:
		return "UNKNOWN"
	}
}
