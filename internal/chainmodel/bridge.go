package chainmodel

// Bridge is a validated request to move value from Source to Target.
// Txid uniquely identifies the originating deposit/burn on Source and is
// the key consulted for replay protection.
type Bridge struct {
	Coin      Coin
	Recipient []byte
	Amount    uint64
	Source    Chain
	Target    Chain
	Txid      []byte
}

// Receipt links a source-chain deposit/burn (the Anchor) to its
// destination-chain confirmation.
type Receipt struct {
	Anchor []byte
	Coin   Coin
	Txid   []byte
	Source Chain
	Target Chain
}
