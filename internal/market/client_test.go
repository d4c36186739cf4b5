package market_test

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/asahu12/finsight/internal/market"
)

func quoteBody(price float64) string {
	return fmt.Sprintf(`{"chart":{"result":[{"meta":{"regularMarketPrice":%v}}]}}`, price)
}

func TestClient_Quote_NSE(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v8/finance/chart/INFY.NS", r.URL.Path)
		fmt.Fprint(w, quoteBody(1520.5))
	}))
	defer srv.Close()

	c := market.NewClient(srv.URL, market.NewCache(market.DefaultCacheTTL))

	price, err := c.Quote(context.Background(), "infy")
	require.NoError(t, err)
	assert.True(t, price.Equal(decimal.NewFromFloat(1520.5)), "price = %s", price)
}

func TestClient_Quote_FallsBackToBSE(t *testing.T) {
	var paths []string

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		paths = append(paths, r.URL.Path)

		if r.URL.Path == "/v8/finance/chart/SBIN.NS" {
			http.Error(w, "not found", http.StatusNotFound)
			return
		}

		fmt.Fprint(w, quoteBody(820))
	}))
	defer srv.Close()

	c := market.NewClient(srv.URL, market.NewCache(market.DefaultCacheTTL))

	price, err := c.Quote(context.Background(), "SBIN")
	require.NoError(t, err)
	assert.True(t, price.Equal(decimal.NewFromInt(820)))
	assert.Equal(t, []string{"/v8/finance/chart/SBIN.NS", "/v8/finance/chart/SBIN.BO"}, paths)
}

func TestClient_Quote_ServesFromCache(t *testing.T) {
	var hits int

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits++
		fmt.Fprint(w, quoteBody(100))
	}))
	defer srv.Close()

	c := market.NewClient(srv.URL, market.NewCache(time.Minute))

	for i := 0; i < 3; i++ {
		_, err := c.Quote(context.Background(), "TCS")
		require.NoError(t, err)
	}

	assert.Equal(t, 1, hits)
}

func TestClient_Quote_StaleFallbackWhenExchangesFail(t *testing.T) {
	healthy := true

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !healthy {
			http.Error(w, "boom", http.StatusInternalServerError)
			return
		}

		fmt.Fprint(w, quoteBody(250))
	}))
	defer srv.Close()

	// Zero TTL: every quote after the first is already stale.
	c := market.NewClient(srv.URL, market.NewCache(0))

	_, err := c.Quote(context.Background(), "ITC")
	require.NoError(t, err)

	healthy = false

	price, err := c.Quote(context.Background(), "ITC")
	require.NoError(t, err)
	assert.True(t, price.Equal(decimal.NewFromInt(250)))
}

func TestClient_Quote_FailsWithoutCache(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "boom", http.StatusInternalServerError)
	}))
	defer srv.Close()

	c := market.NewClient(srv.URL, market.NewCache(market.DefaultCacheTTL))

	_, err := c.Quote(context.Background(), "NOPE")
	assert.Error(t, err)
}
