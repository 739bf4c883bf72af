package rpcserver

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/zbridge/relay/internal/chainmodel"
	"github.com/zbridge/relay/internal/subscription"
)

type fakeChainInfoSource struct {
	state chainmodel.State
	err   error
}

func (f *fakeChainInfoSource) ChainInfo() (chainmodel.State, error) { return f.state, f.err }

func TestHandleChainInfoReturnsCurrentState(t *testing.T) {
	var authority chainmodel.PubKey32
	authority[0] = 0x01
	source := &fakeChainInfoSource{state: chainmodel.State{
		BFT:  chainmodel.BFT{Validators: []chainmodel.PubKey32{authority}, Threshold: 1},
		Head: chainmodel.Head{Slot: 5},
	}}

	srv := New(source, subscription.New(), nil)

	req := httptest.NewRequest(http.MethodGet, "/chainInfo", nil)
	rec := httptest.NewRecorder()
	srv.Handler().ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	var resp chainInfoResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.EqualValues(t, 5, resp.Slot)
	require.EqualValues(t, 1, resp.Threshold)
	require.Equal(t, 1, resp.Validators)
}

func TestHandleChainInfoReturns500OnError(t *testing.T) {
	source := &fakeChainInfoSource{err: errUnavailable{}}
	srv := New(source, subscription.New(), nil)

	req := httptest.NewRequest(http.MethodGet, "/chainInfo", nil)
	rec := httptest.NewRecorder()
	srv.Handler().ServeHTTP(rec, req)

	require.Equal(t, http.StatusInternalServerError, rec.Code)
}

func TestHandleSubscribeTransactionRejectsInvalidTxid(t *testing.T) {
	source := &fakeChainInfoSource{}
	srv := New(source, subscription.New(), nil)

	req := httptest.NewRequest(http.MethodGet, "/subscribeTransaction?txid=not-hex", nil)
	rec := httptest.NewRecorder()
	srv.Handler().ServeHTTP(rec, req)

	require.Equal(t, http.StatusBadRequest, rec.Code)
}

type errUnavailable struct{}

func (errUnavailable) Error() string { return "unavailable" }
