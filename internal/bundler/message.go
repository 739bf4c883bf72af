package bundler

import (
	"encoding/binary"

	"github.com/zbridge/relay/internal/chainmodel"
)

// schainMintMessage builds the message the threshold group signs for
// an SCHAIN mint bundle: recipient(32) || amount(u64 LE) concatenated
// for each entry, in window order.
func schainMintMessage(window []chainmodel.Bridge) []byte {
	out := make([]byte, 0, len(window)*40)
	for _, b := range window {
		var recipient [32]byte
		copy(recipient[:], b.Recipient)
		out = append(out, recipient[:]...)
		var amount [8]byte
		binary.LittleEndian.PutUint64(amount[:], b.Amount)
		out = append(out, amount[:]...)
	}
	return out
}
