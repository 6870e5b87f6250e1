package full_node

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/Luismorlan/ledger_in_go/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func doRequest(t *testing.T, h http.Handler, method string, path string, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func TestHTTPNewTransaction(t *testing.T) {
	f := createTestNode(t)
	h := NewHTTPServer(f, ":0").Handler()

	rec := doRequest(t, h, http.MethodPost, "/transactions/new", `{"sender":"alice","recipient":"bob","amount":10}`)
	assert.Equal(t, http.StatusCreated, rec.Code)
	assert.JSONEq(t, `{"message":"Transaction will be added to Block 2"}`, rec.Body.String())

	// The browser form posts amounts as strings.
	rec = doRequest(t, h, http.MethodPost, "/transactions/new", `{"sender":"carol","recipient":"dave","amount":"5"}`)
	assert.Equal(t, http.StatusCreated, rec.Code)

	assert.Equal(t, []model.Transaction{
		{Sender: "alice", Recipient: "bob", Amount: model.NewAmount(10)},
		{Sender: "carol", Recipient: "dave", Amount: model.NewStringAmount("5")},
	}, f.PendingTransactions())
}

func TestHTTPNewTransactionMissingValues(t *testing.T) {
	f := createTestNode(t)
	h := NewHTTPServer(f, ":0").Handler()

	for _, body := range []string{
		`{"recipient":"bob","amount":10}`,
		`{"sender":"alice","amount":10}`,
		`{"sender":"alice","recipient":"bob"}`,
		`not json`,
	} {
		rec := doRequest(t, h, http.MethodPost, "/transactions/new", body)
		assert.Equal(t, http.StatusBadRequest, rec.Code, body)
	}
	assert.Empty(t, f.PendingTransactions())

	rec := doRequest(t, h, http.MethodGet, "/transactions/new", "")
	assert.Equal(t, http.StatusMethodNotAllowed, rec.Code)
}

func TestHTTPOverflowingAmountIsRejected(t *testing.T) {
	f := createTestNode(t)
	h := NewHTTPServer(f, ":0").Handler()

	rec := doRequest(t, h, http.MethodPost, "/transactions/new", `{"sender":"a","recipient":"b","amount":1e400}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "out of the float64 range")
	assert.Empty(t, f.PendingTransactions())

	for i := 0; i < 2; i++ {
		rec = doRequest(t, h, http.MethodGet, "/mine", "")
		assert.Equal(t, http.StatusOK, rec.Code)
	}
	assert.Equal(t, int64(3), f.GetHeight())
}

func TestHTTPMineAndChain(t *testing.T) {
	f := createTestNode(t)
	h := NewHTTPServer(f, ":0").Handler()
	doRequest(t, h, http.MethodPost, "/transactions/new", `{"sender":"alice","recipient":"bob","amount":10}`)

	rec := doRequest(t, h, http.MethodGet, "/mine", "")
	require.Equal(t, http.StatusOK, rec.Code)
	var mined mineResponse
	require.Nil(t, json.Unmarshal(rec.Body.Bytes(), &mined))
	assert.Equal(t, "New Block Forged", mined.Message)
	assert.Equal(t, int64(2), mined.Index)
	assert.Equal(t, []model.Transaction{
		{Sender: "alice", Recipient: "bob", Amount: model.NewAmount(10)},
		{Sender: "0", Recipient: f.GetNodeID(), Amount: model.NewAmount(1)},
	}, mined.Transactions)

	rec = doRequest(t, h, http.MethodGet, "/chain", "")
	require.Equal(t, http.StatusOK, rec.Code)
	var chain chainResponse
	require.Nil(t, json.Unmarshal(rec.Body.Bytes(), &chain))
	assert.Equal(t, 2, chain.Length)
	assert.Equal(t, f.GetChain(), chain.Chain)
	assert.Equal(t, mined.PreviousHash, chain.Chain[1].PreviousHash)

	// Reads are idempotent.
	again := doRequest(t, h, http.MethodGet, "/chain", "")
	assert.Equal(t, rec.Body.String(), again.Body.String())
}

func TestHTTPBrowserPage(t *testing.T) {
	f := createTestNode(t)
	h := NewHTTPServer(f, ":0").Handler()

	rec := doRequest(t, h, http.MethodGet, "/", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Header().Get("Content-Type"), "text/html")
	for _, id := range []string{"transaction-form", "mine-btn", "view-chain-btn", "/static/script.js"} {
		assert.Contains(t, rec.Body.String(), id)
	}

	rec = doRequest(t, h, http.MethodGet, "/static/script.js", "")
	require.Equal(t, http.StatusOK, rec.Code)
	for _, route := range []string{"'/mine'", "'/chain'", "'/transactions/new'"} {
		assert.Contains(t, rec.Body.String(), route)
	}

	rec = doRequest(t, h, http.MethodGet, "/static/missing.js", "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
}
