package venue

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sig-0/solprice/httpclient"
	"github.com/sig-0/solprice/types"
)

// testClient creates a client without throttling delays
func testClient() *httpclient.Client {
	return httpclient.New(httpclient.WithRatePerSecond(1000))
}

// serveJSON spins up a test server returning the given body
func serveJSON(t *testing.T, body string) *httptest.Server {
	t.Helper()

	srv := httptest.NewServer(
		http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			w.Header().Set("Content-Type", "application/json")

			_, _ = w.Write([]byte(body))
		}),
	)

	t.Cleanup(srv.Close)

	return srv
}

func TestVenue_QuoteMeta(t *testing.T) {
	t.Parallel()

	t.Run("CEX venue", func(t *testing.T) {
		t.Parallel()

		meta, ok := QuoteMeta("binance")

		require.True(t, ok)
		assert.Equal(t, types.KindCEX, meta.Kind)
	})

	t.Run("DEX venue", func(t *testing.T) {
		t.Parallel()

		meta, ok := QuoteMeta("raydium")

		require.True(t, ok)
		assert.Equal(t, types.KindDEX, meta.Kind)
	})

	t.Run("unknown venue", func(t *testing.T) {
		t.Parallel()

		_, ok := QuoteMeta("unknown")

		assert.False(t, ok)
	})
}

func TestVenue_BinanceAdapter(t *testing.T) {
	t.Parallel()

	t.Run("valid ticker", func(t *testing.T) {
		t.Parallel()

		srv := serveJSON(t, `{"price":"101.25"}`)

		adapter := NewBinanceAdapter()
		adapter.url = srv.URL

		quote, err := adapter.FetchQuote(context.Background(), testClient())

		require.NoError(t, err)

		assert.Equal(t, "binance", quote.ExchangeID)
		assert.Equal(t, "Binance", quote.ExchangeName)
		assert.Equal(t, types.KindCEX, quote.Kind)
		assert.InDelta(t, 101.25, quote.PriceUSD, 0.0001)
		assert.Nil(t, quote.LiquidityUSD)
		assert.InDelta(t, 10, quote.FeeBps, 0.0001)
	})

	t.Run("malformed price", func(t *testing.T) {
		t.Parallel()

		srv := serveJSON(t, `{"price":"not-a-number"}`)

		adapter := NewBinanceAdapter()
		adapter.url = srv.URL

		_, err := adapter.FetchQuote(context.Background(), testClient())

		assert.Error(t, err)
	})
}

func TestVenue_GateAdapter(t *testing.T) {
	t.Parallel()

	t.Run("ticker with volume", func(t *testing.T) {
		t.Parallel()

		srv := serveJSON(t, `[{"last":"100.5","quote_volume":"250000"}]`)

		adapter := NewGateAdapter()
		adapter.url = srv.URL

		quote, err := adapter.FetchQuote(context.Background(), testClient())

		require.NoError(t, err)

		assert.InDelta(t, 100.5, quote.PriceUSD, 0.0001)

		require.NotNil(t, quote.LiquidityUSD)
		assert.InDelta(t, 250000, *quote.LiquidityUSD, 0.0001)
	})

	t.Run("empty ticker list", func(t *testing.T) {
		t.Parallel()

		srv := serveJSON(t, `[]`)

		adapter := NewGateAdapter()
		adapter.url = srv.URL

		_, err := adapter.FetchQuote(context.Background(), testClient())

		assert.ErrorIs(t, err, errEmptyTicker)
	})
}

func TestVenue_DexScreenerAdapter(t *testing.T) {
	t.Parallel()

	t.Run("deepest matching pool wins", func(t *testing.T) {
		t.Parallel()

		srv := serveJSON(t, `{"pairs":[
			{"chainId":"solana","dexId":"raydium","priceUsd":"100.1","liquidity":{"usd":500000}},
			{"chainId":"solana","dexId":"raydium","priceUsd":"100.9","liquidity":{"usd":2000000}},
			{"chainId":"solana","dexId":"orca","priceUsd":"99.5","liquidity":{"usd":9000000}},
			{"chainId":"ethereum","dexId":"raydium","priceUsd":"42.0","liquidity":{"usd":9999999}}
		]}`)

		adapter := NewDexScreenerAdapter("raydium", "raydium")
		adapter.url = srv.URL

		quote, err := adapter.FetchQuote(context.Background(), testClient())

		require.NoError(t, err)

		assert.InDelta(t, 100.9, quote.PriceUSD, 0.0001)

		require.NotNil(t, quote.LiquidityUSD)
		assert.InDelta(t, 2000000, *quote.LiquidityUSD, 0.0001)

		assert.Empty(t, quote.Warnings)
	})

	t.Run("shallow pool flagged", func(t *testing.T) {
		t.Parallel()

		srv := serveJSON(t, `{"pairs":[
			{"chainId":"solana","dexId":"saber","priceUsd":"100.0","liquidity":{"usd":50000}}
		]}`)

		adapter := NewDexScreenerAdapter("saber", "saber")
		adapter.url = srv.URL

		quote, err := adapter.FetchQuote(context.Background(), testClient())

		require.NoError(t, err)

		require.Len(t, quote.Warnings, 1)
		assert.Equal(t, "Low liquidity", quote.Warnings[0])
	})

	t.Run("no matching pools", func(t *testing.T) {
		t.Parallel()

		srv := serveJSON(t, `{"pairs":[
			{"chainId":"solana","dexId":"orca","priceUsd":"100.0","liquidity":{"usd":100000}}
		]}`)

		adapter := NewDexScreenerAdapter("raydium", "raydium")
		adapter.url = srv.URL

		_, err := adapter.FetchQuote(context.Background(), testClient())

		assert.Error(t, err)
	})
}

func TestVenue_JupiterAdapter(t *testing.T) {
	t.Parallel()

	srv := serveJSON(t, `{"data":{"SOL":{"price":100.42}}}`)

	adapter := NewJupiterAdapter()
	adapter.url = srv.URL

	quote, err := adapter.FetchQuote(context.Background(), testClient())

	require.NoError(t, err)

	assert.InDelta(t, 100.42, quote.PriceUSD, 0.0001)
	assert.Nil(t, quote.LiquidityUSD)

	// Aggregator quotes are always annotated
	require.Len(t, quote.Warnings, 1)
	assert.Equal(t, "Aggregator pricing", quote.Warnings[0])
}

func TestVenue_BinanceP2PAdapter(t *testing.T) {
	t.Parallel()

	t.Run("best offer parsed", func(t *testing.T) {
		t.Parallel()

		srv := serveJSON(t, `{"data":[{"adv":{
			"price":"99.5",
			"minSingleTransAmount":"50",
			"maxSingleTransAmount":"5000",
			"country":"US",
			"tradeMethods":[{"identifier":"Wise"},{"identifier":"Revolut"}]
		}}]}`)

		adapter := NewBinanceP2PAdapter()
		adapter.url = srv.URL

		offer, err := adapter.FetchBestOffer(context.Background(), testClient())

		require.NoError(t, err)
		require.NotNil(t, offer)

		assert.Equal(t, "binance", offer.ExchangeID)
		assert.Equal(t, "Binance P2P", offer.ExchangeName)
		assert.InDelta(t, 99.5, offer.PriceUSD, 0.0001)
		assert.Equal(t, []string{"Wise", "Revolut"}, offer.PaymentMethods)
		assert.Equal(t, "US", offer.Region)

		require.NotNil(t, offer.MinLimit)
		assert.InDelta(t, 50, *offer.MinLimit, 0.0001)

		require.NotNil(t, offer.MaxLimit)
		assert.InDelta(t, 5000, *offer.MaxLimit, 0.0001)
	})

	t.Run("no offers listed", func(t *testing.T) {
		t.Parallel()

		srv := serveJSON(t, `{"data":[]}`)

		adapter := NewBinanceP2PAdapter()
		adapter.url = srv.URL

		offer, err := adapter.FetchBestOffer(context.Background(), testClient())

		require.NoError(t, err)
		assert.Nil(t, offer)
	})
}

func TestVenue_BybitP2PAdapter(t *testing.T) {
	t.Parallel()

	srv := serveJSON(t, `{"result":{"items":[{
		"price":"98.7",
		"minAmount":"20",
		"maxAmount":"2000",
		"payments":[{"paymentName":"Bank Transfer"}]
	}]}}`)

	adapter := NewBybitP2PAdapter()
	adapter.url = srv.URL

	offer, err := adapter.FetchBestOffer(context.Background(), testClient())

	require.NoError(t, err)
	require.NotNil(t, offer)

	assert.InDelta(t, 98.7, offer.PriceUSD, 0.0001)
	assert.Equal(t, []string{"Bank Transfer"}, offer.PaymentMethods)
}
