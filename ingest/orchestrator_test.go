package ingest

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sig-0/solprice/httpclient"
	"github.com/sig-0/solprice/ranking"
	"github.com/sig-0/solprice/types"
)

const testVenueID = "test-venue"

// testMetaLookup resolves any venue id to generic CEX metadata
func testMetaLookup(id string) (types.ExchangeMeta, bool) {
	return types.ExchangeMeta{
		Name:   id,
		Kind:   types.KindCEX,
		Chain:  "Solana",
		Source: "REST",
		FeeBps: 10,
	}, true
}

// newQuoteAdapter creates a mock adapter returning the given price
func newQuoteAdapter(id string, price float64) *mockQuoteAdapter {
	return &mockQuoteAdapter{
		venueIDFn: func() string {
			return id
		},
		fetchQuoteFn: func(_ context.Context, _ *httpclient.Client) (*types.PriceQuote, error) {
			meta, _ := testMetaLookup(id)

			return &types.PriceQuote{
				ExchangeID:   id,
				ExchangeName: meta.Name,
				Kind:         meta.Kind,
				Chain:        meta.Chain,
				PriceUSD:     price,
				Source:       meta.Source,
				LastUpdated:  time.Now().UTC(),
				FeeBps:       meta.FeeBps,
			}, nil
		},
	}
}

// newFailingQuoteAdapter creates a mock adapter that always fails
func newFailingQuoteAdapter(id string) *mockQuoteAdapter {
	return &mockQuoteAdapter{
		venueIDFn: func() string {
			return id
		},
		fetchQuoteFn: func(_ context.Context, _ *httpclient.Client) (*types.PriceQuote, error) {
			return nil, errors.New("venue unreachable")
		},
	}
}

func TestOrchestrator_New(t *testing.T) {
	t.Parallel()

	o := New(httpclient.New())

	require.NotNil(t, o)

	assert.NotNil(t, o.logger)
	assert.NotNil(t, o.metaFn)
	assert.Equal(t, DefaultRefreshInterval, o.refreshInterval)
	assert.InDelta(t, float64(ranking.DefaultOrderSizeUSD), o.orderSize, 0.0001)
}

func TestOrchestrator_Register(t *testing.T) {
	t.Parallel()

	t.Run("nil quote adapter", func(t *testing.T) {
		t.Parallel()

		o := New(httpclient.New())

		assert.ErrorIs(t, o.RegisterQuoteAdapter(nil), errInvalidAdapter)
	})

	t.Run("empty venue id", func(t *testing.T) {
		t.Parallel()

		var (
			o = New(httpclient.New())

			adapter = &mockQuoteAdapter{
				venueIDFn: func() string {
					return ""
				},
			}
		)

		assert.ErrorIs(t, o.RegisterQuoteAdapter(adapter), errInvalidAdapter)
	})

	t.Run("nil offer adapter", func(t *testing.T) {
		t.Parallel()

		o := New(httpclient.New())

		assert.ErrorIs(t, o.RegisterOfferAdapter(nil), errInvalidAdapter)
	})

	t.Run("valid adapters", func(t *testing.T) {
		t.Parallel()

		var (
			o = New(httpclient.New())

			offerAdapter = &mockOfferAdapter{
				venueIDFn: func() string {
					return testVenueID
				},
			}
		)

		require.NoError(t, o.RegisterQuoteAdapter(newQuoteAdapter(testVenueID, 100)))
		require.NoError(t, o.RegisterOfferAdapter(offerAdapter))

		assert.Len(t, o.quoteAdapters, 1)
		assert.Len(t, o.offerAdapters, 1)
	})
}

func TestOrchestrator_RunCycle(t *testing.T) {
	t.Parallel()

	t.Run("partial failure keeps row accounting", func(t *testing.T) {
		t.Parallel()

		o := New(
			httpclient.New(),
			WithMetaLookup(testMetaLookup),
		)

		// 7 healthy venues, 3 failing ones
		for i := 0; i < 7; i++ {
			require.NoError(t, o.RegisterQuoteAdapter(
				newQuoteAdapter(fmt.Sprintf("venue-%d", i), 100+float64(i)),
			))
		}

		for i := 7; i < 10; i++ {
			require.NoError(t, o.RegisterQuoteAdapter(
				newFailingQuoteAdapter(fmt.Sprintf("venue-%d", i)),
			))
		}

		snapshot := o.RunCycle(context.Background())

		require.NotNil(t, snapshot)
		require.NotNil(t, snapshot.Ranking)

		// Every adapter produced a row
		assert.Len(t, snapshot.Ranking.Quotes, 10)

		var degraded int

		for _, quote := range snapshot.Ranking.Quotes {
			if quote.PriceUSD > 0 {
				continue
			}

			degraded++

			require.NotEmpty(t, quote.Warnings)
			assert.Contains(t, quote.Warnings[0], "Fetch error")
		}

		assert.Equal(t, 3, degraded)

		// Only the 7 valid quotes feed the statistics
		require.NotNil(t, snapshot.Ranking.AveragePrice)
		assert.InDelta(t, 103, *snapshot.Ranking.AveragePrice, 0.0001)
	})

	t.Run("quotes ordered by raw price", func(t *testing.T) {
		t.Parallel()

		o := New(
			httpclient.New(),
			WithMetaLookup(testMetaLookup),
		)

		require.NoError(t, o.RegisterQuoteAdapter(newQuoteAdapter("expensive", 110)))
		require.NoError(t, o.RegisterQuoteAdapter(newQuoteAdapter("cheap", 90)))
		require.NoError(t, o.RegisterQuoteAdapter(newQuoteAdapter("middle", 100)))

		snapshot := o.RunCycle(context.Background())

		require.Len(t, snapshot.Ranking.Quotes, 3)

		assert.Equal(t, "cheap", snapshot.Ranking.Quotes[0].ExchangeID)
		assert.Equal(t, "middle", snapshot.Ranking.Quotes[1].ExchangeID)
		assert.Equal(t, "expensive", snapshot.Ranking.Quotes[2].ExchangeID)
	})

	t.Run("failed and absent offers omitted", func(t *testing.T) {
		t.Parallel()

		var (
			o = New(
				httpclient.New(),
				WithMetaLookup(testMetaLookup),
			)

			healthy = &mockOfferAdapter{
				venueIDFn: func() string {
					return "p2p-healthy"
				},
				fetchOfferFn: func(_ context.Context, _ *httpclient.Client) (*types.P2POffer, error) {
					return &types.P2POffer{
						ExchangeID:  "p2p-healthy",
						PriceUSD:    0.95,
						LastUpdated: time.Now().UTC(),
					}, nil
				},
			}

			failing = &mockOfferAdapter{
				venueIDFn: func() string {
					return "p2p-failing"
				},
				fetchOfferFn: func(_ context.Context, _ *httpclient.Client) (*types.P2POffer, error) {
					return nil, errors.New("marketplace unreachable")
				},
			}

			// No offers listed, a valid outcome
			empty = &mockOfferAdapter{
				venueIDFn: func() string {
					return "p2p-empty"
				},
			}
		)

		require.NoError(t, o.RegisterOfferAdapter(healthy))
		require.NoError(t, o.RegisterOfferAdapter(failing))
		require.NoError(t, o.RegisterOfferAdapter(empty))

		snapshot := o.RunCycle(context.Background())

		require.Len(t, snapshot.Offers, 1)
		assert.Equal(t, "p2p-healthy", snapshot.Offers[0].ExchangeID)

		require.NotNil(t, snapshot.Ranking.BestP2P)
		assert.Equal(t, "p2p-healthy", snapshot.Ranking.BestP2P.ExchangeID)
	})

	t.Run("chain slot captured", func(t *testing.T) {
		t.Parallel()

		prober := &mockChainProber{
			getSlotFn: func(_ context.Context, _ *httpclient.Client) (uint64, error) {
				return 123456, nil
			},
		}

		o := New(
			httpclient.New(),
			WithMetaLookup(testMetaLookup),
			WithChainProber(prober),
		)

		snapshot := o.RunCycle(context.Background())

		require.NotNil(t, snapshot.ChainSlot)
		assert.EqualValues(t, 123456, *snapshot.ChainSlot)
	})

	t.Run("chain probe failure swallowed", func(t *testing.T) {
		t.Parallel()

		prober := &mockChainProber{
			getSlotFn: func(_ context.Context, _ *httpclient.Client) (uint64, error) {
				return 0, errors.New("rpc unreachable")
			},
		}

		o := New(
			httpclient.New(),
			WithMetaLookup(testMetaLookup),
			WithChainProber(prober),
		)

		require.NoError(t, o.RegisterQuoteAdapter(newQuoteAdapter(testVenueID, 100)))

		snapshot := o.RunCycle(context.Background())

		// The cycle succeeded without the slot
		assert.Nil(t, snapshot.ChainSlot)
		assert.Len(t, snapshot.Ranking.Quotes, 1)
	})
}

func TestOrchestrator_Start(t *testing.T) {
	t.Parallel()

	t.Run("ctx canceled", func(t *testing.T) {
		t.Parallel()

		var (
			o     = New(httpclient.New(), WithRefreshInterval(time.Millisecond*10))
			errCh = make(chan error, 1)
		)

		ctx, cancel := context.WithCancel(context.Background())

		go func() {
			errCh <- o.Start(ctx)
		}()

		cancel()

		select {
		case err := <-errCh:
			assert.NoError(t, err)
		case <-time.After(5 * time.Second):
			t.Fatal("orchestrator did not shut down in time")
		}
	})

	t.Run("snapshots published to subscribers", func(t *testing.T) {
		t.Parallel()

		o := New(
			httpclient.New(),
			WithMetaLookup(testMetaLookup),
			WithRefreshInterval(time.Millisecond*10),
		)

		require.NoError(t, o.RegisterQuoteAdapter(newQuoteAdapter(testVenueID, 100)))

		sub := o.Subscribe()

		ctx, cancel := context.WithCancel(context.Background())

		errCh := make(chan error, 1)

		go func() {
			errCh <- o.Start(ctx)
		}()

		select {
		case snapshot := <-sub:
			require.NotNil(t, snapshot)

			assert.NotEmpty(t, snapshot.CycleID)
			assert.Len(t, snapshot.Ranking.Quotes, 1)
		case <-time.After(5 * time.Second):
			t.Fatal("timeout waiting for snapshot")
		}

		cancel()
		require.NoError(t, <-errCh)

		// The latest snapshot is retained
		assert.NotNil(t, o.Latest())
	})
}
