package venue

import (
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/sig-0/solprice/types"
)

var errInvalidPrice = errors.New("invalid price")

// newQuote builds a normalized price quote from the venue's static metadata
func newQuote(
	id string,
	meta types.ExchangeMeta,
	price float64,
	liquidity *float64,
	warnings ...string,
) *types.PriceQuote {
	return &types.PriceQuote{
		ExchangeID:   id,
		ExchangeName: meta.Name,
		Kind:         meta.Kind,
		Chain:        meta.Chain,
		PriceUSD:     price,
		Source:       meta.Source,
		LiquidityUSD: liquidity,
		LastUpdated:  time.Now().UTC(),
		FeeBps:       meta.FeeBps,
		Warnings:     warnings,
	}
}

// parsePrice parses a quoted price, rejecting non-positive values
func parsePrice(value string) (float64, error) {
	price, err := strconv.ParseFloat(value, 64)
	if err != nil {
		return 0, fmt.Errorf("unable to parse price %q: %w", value, err)
	}

	if price <= 0 {
		return 0, errInvalidPrice
	}

	return price, nil
}

// parseFloat parses a float string into a value
func parseFloat(value string) (float64, bool) {
	if value == "" {
		return 0, false
	}

	parsed, err := strconv.ParseFloat(value, 64)
	if err != nil {
		return 0, false
	}

	return parsed, true
}

// limitPtr converts a parsed trade limit into an optional value
func limitPtr(value string) *float64 {
	parsed, ok := parseFloat(value)
	if !ok || parsed <= 0 {
		return nil
	}

	return &parsed
}
