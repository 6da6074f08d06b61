package ingest

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"sort"
	"sync"
	"sync/atomic"
	"time"

	"github.com/rs/xid"

	"github.com/sig-0/solprice/httpclient"
	"github.com/sig-0/solprice/ranking"
	"github.com/sig-0/solprice/types"
	"github.com/sig-0/solprice/venue"
)

// DefaultRefreshInterval is the pause between refresh cycles
const DefaultRefreshInterval = time.Second * 15

var errInvalidAdapter = errors.New("invalid adapter")

// Orchestrator fans out one concurrent fetch per registered adapter each
// refresh cycle, joins the results into a best-effort batch, and runs the
// post-processing passes (staleness, ranking) over the joined data.
// A failing adapter only ever degrades its own record
type Orchestrator struct {
	logger *slog.Logger
	client *httpclient.Client

	quoteAdapters []QuoteAdapter
	offerAdapters []OfferAdapter
	chain         ChainProber
	metaFn        MetaLookup

	orderSize       float64
	refreshInterval time.Duration

	latest atomic.Pointer[types.Snapshot]

	subs    []chan *types.Snapshot
	subsMux sync.Mutex
}

// New creates a new Orchestrator instance around the shared client
func New(client *httpclient.Client, opts ...Option) *Orchestrator {
	o := &Orchestrator{
		logger:          slog.New(slog.NewTextHandler(io.Discard, nil)),
		client:          client,
		metaFn:          venue.QuoteMeta,
		orderSize:       ranking.DefaultOrderSizeUSD,
		refreshInterval: DefaultRefreshInterval,
	}

	// Apply the options
	for _, opt := range opts {
		opt(o)
	}

	return o
}

// RegisterQuoteAdapter registers a new venue quote adapter with the orchestrator
func (o *Orchestrator) RegisterQuoteAdapter(a QuoteAdapter) error {
	if a == nil || a.VenueID() == "" {
		return errInvalidAdapter
	}

	o.quoteAdapters = append(o.quoteAdapters, a)

	o.logger.Info(
		"registered quote adapter",
		"venue", a.VenueID(),
	)

	return nil
}

// RegisterOfferAdapter registers a new P2P best-offer adapter with the orchestrator
func (o *Orchestrator) RegisterOfferAdapter(a OfferAdapter) error {
	if a == nil || a.VenueID() == "" {
		return errInvalidAdapter
	}

	o.offerAdapters = append(o.offerAdapters, a)

	o.logger.Info(
		"registered offer adapter",
		"venue", a.VenueID(),
	)

	return nil
}

// Start runs the refresh cycle loop [BLOCKING]
func (o *Orchestrator) Start(ctx context.Context) error {
	ticker := time.NewTicker(o.refreshInterval)
	defer ticker.Stop()

	for {
		snapshot := o.RunCycle(ctx)

		o.latest.Store(snapshot)
		o.publish(snapshot)

		o.logger.Info(
			"refresh cycle complete",
			"cycle_id", snapshot.CycleID,
			"quotes", len(snapshot.Ranking.Quotes),
			"offers", len(snapshot.Offers),
		)

		select {
		case <-ctx.Done():
			o.logger.Info("orchestrator shut down")

			return nil
		case <-ticker.C:
		}
	}
}

// RunCycle executes one full refresh cycle: the quote batch, the offer
// batch and the chain probe run in parallel, then the joined data goes
// through staleness normalization and ranking
func (o *Orchestrator) RunCycle(ctx context.Context) *types.Snapshot {
	var (
		quotes []*types.PriceQuote
		offers []*types.P2POffer
		slot   *uint64

		wg sync.WaitGroup
	)

	wg.Add(2)

	go func() {
		defer wg.Done()

		quotes = o.fetchQuotes(ctx)
	}()

	go func() {
		defer wg.Done()

		offers = o.fetchOffers(ctx)
	}()

	if o.chain != nil {
		wg.Add(1)

		go func() {
			defer wg.Done()

			// Chain status is advisory, failures are swallowed
			height, err := o.chain.GetSlot(ctx, o.client)
			if err != nil {
				o.logger.Debug(
					"unable to fetch chain slot",
					"err", err,
				)

				return
			}

			slot = &height
		}()
	}

	wg.Wait()

	ranking.ApplyStaleness(quotes)

	result := ranking.Build(quotes, offers, o.orderSize)

	// Expose the full quote list ordered by raw price
	sort.SliceStable(result.Quotes, func(i, j int) bool {
		return result.Quotes[i].PriceUSD < result.Quotes[j].PriceUSD
	})

	return &types.Snapshot{
		CycleID:   xid.New().String(),
		FetchedAt: time.Now().UTC(),
		Ranking:   result,
		Offers:    offers,
		ChainSlot: slot,
	}
}

// Latest returns the most recent snapshot, if any cycle has completed
func (o *Orchestrator) Latest() *types.Snapshot {
	return o.latest.Load()
}

// Subscribe returns a channel receiving every completed snapshot.
// Slow consumers miss snapshots instead of blocking the cycle loop
func (o *Orchestrator) Subscribe() <-chan *types.Snapshot {
	ch := make(chan *types.Snapshot, 1)

	o.subsMux.Lock()
	o.subs = append(o.subs, ch)
	o.subsMux.Unlock()

	return ch
}

// publish pushes the snapshot to all subscribers, without blocking
func (o *Orchestrator) publish(snapshot *types.Snapshot) {
	o.subsMux.Lock()
	defer o.subsMux.Unlock()

	for _, ch := range o.subs {
		select {
		case ch <- snapshot:
		default:
		}
	}
}

// fetchQuotes runs the quote adapter batch concurrently. Every adapter
// yields exactly one slot: a real quote, or a degraded placeholder when
// the fetch failed and the venue has known metadata
func (o *Orchestrator) fetchQuotes(ctx context.Context) []*types.PriceQuote {
	var (
		results = make([]*types.PriceQuote, len(o.quoteAdapters))

		wg sync.WaitGroup
	)

	for i, adapter := range o.quoteAdapters {
		i, adapter := i, adapter

		wg.Add(1)

		go func() {
			defer wg.Done()

			quote, err := adapter.FetchQuote(ctx, o.client)
			if err != nil {
				o.logger.Warn(
					"quote fetch failed",
					"venue", adapter.VenueID(),
					"err", err,
				)

				results[i] = o.degradedQuote(adapter.VenueID(), err)

				return
			}

			results[i] = quote
		}()
	}

	wg.Wait()

	quotes := make([]*types.PriceQuote, 0, len(results))

	for _, quote := range results {
		if quote != nil {
			quotes = append(quotes, quote)
		}
	}

	return quotes
}

// fetchOffers runs the offer adapter batch concurrently. Failed fetches
// and venues without offers are omitted, P2P coverage is inherently partial
func (o *Orchestrator) fetchOffers(ctx context.Context) []*types.P2POffer {
	var (
		results = make([]*types.P2POffer, len(o.offerAdapters))

		wg sync.WaitGroup
	)

	for i, adapter := range o.offerAdapters {
		i, adapter := i, adapter

		wg.Add(1)

		go func() {
			defer wg.Done()

			offer, err := adapter.FetchBestOffer(ctx, o.client)
			if err != nil {
				o.logger.Warn(
					"offer fetch failed",
					"venue", adapter.VenueID(),
					"err", err,
				)

				return
			}

			results[i] = offer
		}()
	}

	wg.Wait()

	offers := make([]*types.P2POffer, 0, len(results))

	for _, offer := range results {
		if offer != nil {
			offers = append(offers, offer)
		}
	}

	return offers
}

// degradedQuote synthesizes a zero-priced placeholder from the venue's
// static metadata, preserving row accounting without affecting statistics.
// Venues with no known metadata produce no placeholder
func (o *Orchestrator) degradedQuote(id string, fetchErr error) *types.PriceQuote {
	meta, ok := o.metaFn(id)
	if !ok {
		return nil
	}

	return &types.PriceQuote{
		ExchangeID:   id,
		ExchangeName: meta.Name,
		Kind:         meta.Kind,
		Chain:        meta.Chain,
		PriceUSD:     0,
		Source:       meta.Source,
		LastUpdated:  time.Now().UTC(),
		FeeBps:       meta.FeeBps,
		Warnings: []string{
			fmt.Sprintf("Fetch error: %s", fetchErr),
		},
	}
}
