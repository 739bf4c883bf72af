package watcher

import (
	"context"
	"fmt"
	"math/big"
	"strings"

	ethereum "github.com/ethereum/go-ethereum"
	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
	"github.com/ethereum/go-ethereum/ethclient"
)

// burnEventABI describes the single event this adapter decodes: the
// threshold-bridge program's Burn log. Non-indexed fields only; the
// recipient string and amount are ABI-packed into the log data.
const burnEventABI = `[{
  "anonymous": false,
  "inputs": [
    {"indexed": false, "name": "recipient", "type": "string"},
    {"indexed": false, "name": "amount", "type": "uint64"}
  ],
  "name": "Burn",
  "type": "event"
}]`

// EVMBurnSource is the production EVMLogSource:
// ethclient.SubscribeFilterLogs against one contract address, decoded
// through accounts/abi. The bridge program's own signature
// verification happens on-chain; this adapter only consumes the Burn
// events the program emits.
type EVMBurnSource struct {
	client          *ethclient.Client
	contractAddress common.Address
	burnABI         abi.ABI
	burnTopic       common.Hash
}

// NewEVMBurnSource parses burnEventABI once and wires it against
// contractAddress.
func NewEVMBurnSource(client *ethclient.Client, contractAddress common.Address) (*EVMBurnSource, error) {
	parsed, err := abi.JSON(strings.NewReader(burnEventABI))
	if err != nil {
		return nil, fmt.Errorf("parse burn event abi: %w", err)
	}
	return &EVMBurnSource{
		client: client, contractAddress: contractAddress,
		burnABI: parsed, burnTopic: parsed.Events["Burn"].ID,
	}, nil
}

// SubscribeBurns implements EVMLogSource.
func (s *EVMBurnSource) SubscribeBurns(ctx context.Context, fromBlock uint64, out chan<- BurnEvent) error {
	query := ethereum.FilterQuery{
		FromBlock: new(big.Int).SetUint64(fromBlock),
		Addresses: []common.Address{s.contractAddress},
		Topics:    [][]common.Hash{{s.burnTopic}},
	}

	logs := make(chan types.Log, 512)
	sub, err := s.client.SubscribeFilterLogs(ctx, query, logs)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrUpstreamRPC, err)
	}
	defer sub.Unsubscribe()

	for {
		select {
		case <-ctx.Done():
			return nil
		case err := <-sub.Err():
			return fmt.Errorf("%w: %v", ErrUpstreamRPC, err)
		case lg := <-logs:
			ev, err := s.decode(lg)
			if err != nil {
				continue // malformed log from a chain we don't control; skip, don't kill the subscription.
			}
			select {
			case out <- ev:
			case <-ctx.Done():
				return nil
			}
		}
	}
}

func (s *EVMBurnSource) decode(lg types.Log) (BurnEvent, error) {
	var decoded struct {
		Recipient string
		Amount    uint64
	}
	if err := s.burnABI.UnpackIntoInterface(&decoded, "Burn", lg.Data); err != nil {
		return BurnEvent{}, fmt.Errorf("unpack burn log: %w", err)
	}
	return BurnEvent{
		Recipient: decoded.Recipient,
		Amount:    decoded.Amount,
		Txid:      lg.TxHash.Bytes(),
	}, nil
}
