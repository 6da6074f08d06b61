package ingest

import (
	"context"

	"github.com/sig-0/solprice/httpclient"
	"github.com/sig-0/solprice/types"
)

// QuoteAdapter is a single venue's price fetch capability. Adapters share
// the resilient client threaded through by the orchestrator
type QuoteAdapter interface {
	// VenueID returns the venue identifier used for metadata lookups
	VenueID() string

	// FetchQuote fetches one normalized price quote, or fails
	FetchQuote(context.Context, *httpclient.Client) (*types.PriceQuote, error)
}

// OfferAdapter is a single P2P marketplace's best-offer capability.
// A nil offer with a nil error means the venue currently lists no
// offers, which is a valid outcome distinct from a fetch failure
type OfferAdapter interface {
	// VenueID returns the venue identifier
	VenueID() string

	// FetchBestOffer fetches the venue's best offer, if any
	FetchBestOffer(context.Context, *httpclient.Client) (*types.P2POffer, error)
}

// ChainProber is the auxiliary chain-status capability. Its failures are
// swallowed; the slot is simply absent from the snapshot
type ChainProber interface {
	// GetSlot fetches the current chain slot height
	GetSlot(context.Context, *httpclient.Client) (uint64, error)
}

// MetaLookup resolves a venue identifier to its static metadata,
// used when synthesizing degraded placeholder quotes
type MetaLookup func(id string) (types.ExchangeMeta, bool)
