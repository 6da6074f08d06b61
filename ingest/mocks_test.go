package ingest

import (
	"context"

	"github.com/sig-0/solprice/httpclient"
	"github.com/sig-0/solprice/types"
)

type (
	venueIDDelegate    func() string
	fetchQuoteDelegate func(context.Context, *httpclient.Client) (*types.PriceQuote, error)
	fetchOfferDelegate func(context.Context, *httpclient.Client) (*types.P2POffer, error)
	getSlotDelegate    func(context.Context, *httpclient.Client) (uint64, error)
)

type mockQuoteAdapter struct {
	venueIDFn    venueIDDelegate
	fetchQuoteFn fetchQuoteDelegate
}

func (m *mockQuoteAdapter) VenueID() string {
	if m.venueIDFn != nil {
		return m.venueIDFn()
	}

	return ""
}

func (m *mockQuoteAdapter) FetchQuote(
	ctx context.Context,
	client *httpclient.Client,
) (*types.PriceQuote, error) {
	if m.fetchQuoteFn != nil {
		return m.fetchQuoteFn(ctx, client)
	}

	return nil, nil
}

type mockOfferAdapter struct {
	venueIDFn    venueIDDelegate
	fetchOfferFn fetchOfferDelegate
}

func (m *mockOfferAdapter) VenueID() string {
	if m.venueIDFn != nil {
		return m.venueIDFn()
	}

	return ""
}

func (m *mockOfferAdapter) FetchBestOffer(
	ctx context.Context,
	client *httpclient.Client,
) (*types.P2POffer, error) {
	if m.fetchOfferFn != nil {
		return m.fetchOfferFn(ctx, client)
	}

	return nil, nil
}

type mockChainProber struct {
	getSlotFn getSlotDelegate
}

func (m *mockChainProber) GetSlot(
	ctx context.Context,
	client *httpclient.Client,
) (uint64, error) {
	if m.getSlotFn != nil {
		return m.getSlotFn(ctx, client)
	}

	return 0, nil
}
