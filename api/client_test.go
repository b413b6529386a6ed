package api

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tasiov/mantis-raydium/errs"
)

const poolInfoFixture = `{
  "id": "req-1",
  "success": true,
  "data": [{
    "type": "Standard",
    "programId": "675kPX9MHTjS2zt1qfr1NYHuzeLXfQM9H24wFSUt1Mp8",
    "id": "58oQChx4yWmvKdwLLZzBi4ChoCc2fqCUWBkwMihLYQo2",
    "mintA": {"address": "So11111111111111111111111111111111111111112", "symbol": "WSOL", "decimals": 9, "extensions": {}},
    "mintB": {"address": "EPjFWdd5AufqSSqeM2qN1xzybapC8G4wEGGkZwyTDt1v", "symbol": "USDC", "decimals": 6, "extensions": {}},
    "price": 20.5,
    "mintAmountA": 1000000.0,
    "mintAmountB": 2000000.0,
    "feeRate": 0.0025,
    "tvl": 42000000.0,
    "marketId": "9wFFyRfZBsuAha4YcuxcXLKwMxJR43S7fPfQLusDBzvT",
    "lpMint": {"address": "8HoQnePLqPj4M7PUDzfw8e3Ymdwgc7NUGnaGAqTo5pRh", "symbol": "SOL-USDC", "decimals": 9, "extensions": {}},
    "lpAmount": 500000.0
  }]
}`

func testLogger() *logrus.Entry {
	l := logrus.New()
	l.SetLevel(logrus.PanicLevel)
	return logrus.NewEntry(l)
}

func TestFetchPoolInfo(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/pools/info/ids", r.URL.Path)
		assert.Equal(t, "58oQChx4yWmvKdwLLZzBi4ChoCc2fqCUWBkwMihLYQo2", r.URL.Query().Get("ids"))
		w.Write([]byte(poolInfoFixture))
	}))
	defer srv.Close()

	client := NewClient(srv.URL, testLogger())
	info, err := client.FetchPoolInfo(context.Background(), "58oQChx4yWmvKdwLLZzBi4ChoCc2fqCUWBkwMihLYQo2")
	require.NoError(t, err)
	assert.Equal(t, "So11111111111111111111111111111111111111112", info.MintA.Address)
	assert.Equal(t, int32(9), info.MintA.Decimals)
	assert.Equal(t, int32(6), info.MintB.Decimals)
	assert.Equal(t, 1000000.0, info.MintAmountA)
	assert.Equal(t, "8HoQnePLqPj4M7PUDzfw8e3Ymdwgc7NUGnaGAqTo5pRh", info.LpMint.Address)
}

func TestFetchPoolInfoHTTPError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "boom", http.StatusBadGateway)
	}))
	defer srv.Close()

	client := NewClient(srv.URL, testLogger())
	_, err := client.FetchPoolInfo(context.Background(), "whatever")
	assert.True(t, errors.Is(err, errs.ErrAPI))
}

func TestFetchPoolInfoBadJSON(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"success": "not-a-bool"}`))
	}))
	defer srv.Close()

	client := NewClient(srv.URL, testLogger())
	_, err := client.FetchPoolInfo(context.Background(), "whatever")
	assert.True(t, errors.Is(err, errs.ErrAPI))
}

func TestFetchPoolKeysEmptyData(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/pools/key/ids", r.URL.Path)
		w.Write([]byte(`{"id": "req-2", "success": true, "data": []}`))
	}))
	defer srv.Close()

	client := NewClient(srv.URL, testLogger())
	_, err := client.FetchPoolKeys(context.Background(), "missing")
	assert.True(t, errors.Is(err, errs.ErrAPI))
}
