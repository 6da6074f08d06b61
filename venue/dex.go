//nolint:tagliatelle // DexScreener and Jupiter APIs use camel case
package venue

import (
	"context"
	"fmt"
	"net/url"
	"time"

	"github.com/sig-0/solprice/httpclient"
	"github.com/sig-0/solprice/types"
)

const (
	dexScreenerSearchURL = "https://api.dexscreener.com/latest/dex/search"
	jupiterPriceURL      = "https://price.jup.ag/v6/price"

	// DexScreener aggregates slower-moving pool data, so its responses
	// can be cached longer than spot tickers
	dexScreenerTTL = time.Second * 10

	// Pools under this depth get a low-liquidity annotation
	lowLiquidityUSD = 100_000
)

// dexScreenerResponse is the response from the DexScreener search API
type dexScreenerResponse struct {
	Pairs []dexScreenerPair `json:"pairs"`
}

type dexScreenerPair struct {
	ChainID   string `json:"chainId"`
	DexID     string `json:"dexId"`
	PriceUSD  string `json:"priceUsd"`
	Liquidity struct {
		USD float64 `json:"usd"`
	} `json:"liquidity"`
}

// DexScreenerAdapter fetches a single Solana DEX's SOL/USDC price
// from the DexScreener aggregator, picking the deepest matching pool
type DexScreenerAdapter struct {
	id    string
	dexID string
	url   string
}

// NewDexScreenerAdapter creates a DexScreener-backed adapter for the given
// venue, with dexID being DexScreener's identifier for the DEX
func NewDexScreenerAdapter(id, dexID string) *DexScreenerAdapter {
	return &DexScreenerAdapter{
		id:    id,
		dexID: dexID,
		url:   dexScreenerSearchURL,
	}
}

func (a *DexScreenerAdapter) VenueID() string {
	return a.id
}

func (a *DexScreenerAdapter) FetchQuote(
	ctx context.Context,
	client *httpclient.Client,
) (*types.PriceQuote, error) {
	var resp dexScreenerResponse

	params := url.Values{"q": {"SOL/USDC"}}

	if err := client.GetJSON(ctx, a.url, params, dexScreenerTTL, &resp); err != nil {
		return nil, fmt.Errorf("unable to fetch DexScreener pairs: %w", err)
	}

	// Pick the deepest pool belonging to this DEX
	var best *dexScreenerPair

	for i, pair := range resp.Pairs {
		if pair.ChainID != "solana" || pair.DexID != a.dexID {
			continue
		}

		if best == nil || pair.Liquidity.USD > best.Liquidity.USD {
			best = &resp.Pairs[i]
		}
	}

	if best == nil {
		return nil, fmt.Errorf("no DexScreener pairs found for %s", a.dexID)
	}

	price, err := parsePrice(best.PriceUSD)
	if err != nil {
		return nil, err
	}

	liquidity := best.Liquidity.USD

	var warnings []string
	if liquidity < lowLiquidityUSD {
		warnings = append(warnings, "Low liquidity")
	}

	return newQuote(a.id, DEXMeta[a.id], price, &liquidity, warnings...), nil
}

// jupiterPriceResponse is the response from the Jupiter price API
type jupiterPriceResponse struct {
	Data map[string]struct {
		Price float64 `json:"price"`
	} `json:"data"`
}

// JupiterAdapter fetches the aggregated SOL price from Jupiter.
// Jupiter routes across pools, so the quote carries no single-pool
// liquidity figure
type JupiterAdapter struct {
	id  string
	url string
}

func NewJupiterAdapter() *JupiterAdapter {
	return &JupiterAdapter{id: "jupiter", url: jupiterPriceURL}
}

func (a *JupiterAdapter) VenueID() string {
	return a.id
}

func (a *JupiterAdapter) FetchQuote(
	ctx context.Context,
	client *httpclient.Client,
) (*types.PriceQuote, error) {
	var resp jupiterPriceResponse

	params := url.Values{"ids": {"SOL"}}

	if err := client.GetJSON(ctx, a.url, params, 0, &resp); err != nil {
		return nil, fmt.Errorf("unable to fetch Jupiter price: %w", err)
	}

	data, ok := resp.Data["SOL"]
	if !ok || data.Price <= 0 {
		return nil, errInvalidPrice
	}

	return newQuote(a.id, DEXMeta[a.id], data.Price, nil, "Aggregator pricing"), nil
}
