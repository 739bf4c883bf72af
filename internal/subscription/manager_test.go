package subscription

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/zbridge/relay/internal/chainmodel"
)

func TestDispatchBlockDeliversToAllRegisteredSubscribers(t *testing.T) {
	m := New()
	ch1, cancel1 := m.SubscribeBlocks()
	defer cancel1()
	ch2, cancel2 := m.SubscribeBlocks()
	defer cancel2()

	block := &chainmodel.Block{Header: chainmodel.Header{Slot: 7}}
	m.DispatchBlock(block)

	require.Equal(t, block, <-ch1)
	require.Equal(t, block, <-ch2)
}

func TestCancelRemovesSubscriberFromFutureDispatch(t *testing.T) {
	m := New()
	ch, cancel := m.SubscribeBlocks()
	cancel()

	m.DispatchBlock(&chainmodel.Block{Header: chainmodel.Header{Slot: 1}})

	select {
	case _, ok := <-ch:
		require.False(t, ok, "channel should be empty after cancel, not closed")
	default:
	}
}

func TestDispatchBlockDropsOnFullBufferInsteadOfBlocking(t *testing.T) {
	m := New()
	ch, cancel := m.SubscribeBlocks()
	defer cancel()

	for i := 0; i < subscriberBufferSize+10; i++ {
		m.DispatchBlock(&chainmodel.Block{Header: chainmodel.Header{Slot: uint32(i)}})
	}

	require.Len(t, ch, subscriberBufferSize)
}

func TestDispatchTxStatusOnlyReachesMatchingTxidSubscriber(t *testing.T) {
	m := New()
	chA, cancelA := m.SubscribeTx([]byte("txid-A"))
	defer cancelA()
	chB, cancelB := m.SubscribeTx([]byte("txid-B"))
	defer cancelB()

	m.DispatchTxStatus(TxStatus{Txid: []byte("txid-A"), State: "finalized"})

	status := <-chA
	require.Equal(t, "finalized", status.State)

	select {
	case s := <-chB:
		t.Fatalf("expected no delivery to unrelated subscriber, got %+v", s)
	default:
	}
}
