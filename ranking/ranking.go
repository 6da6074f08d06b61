// Package ranking turns a batch of venue quotes and P2P offers into an
// explainable, cost-adjusted ordering. Quotes are ranked by effective
// price: the raw price adjusted for the venue's trading fee and the
// estimated slippage of executing a fixed order size against the
// venue's liquidity
package ranking

import (
	"fmt"
	"sort"
	"strings"

	"github.com/sig-0/solprice/types"
	"github.com/sig-0/solprice/venue"
)

const (
	// DefaultOrderSizeUSD is the order size used for slippage simulation
	DefaultOrderSizeUSD = 1000

	// Price impact is capped at 5% regardless of pool depth
	maxPriceImpact = 0.05

	// Impact above 1% earns the quote a warning
	priceImpactThreshold = 0.01

	// Deviation above 2% from the reference price earns a warning
	spreadThreshold = 0.02

	// Number of entries in the ranked shortlist
	topN = 5
)

const slippageAdvisory = "Some DEX pools show elevated price impact for the configured order size."

// Build runs the full ranking pass over a fetch cycle's quotes and offers.
// Quotes with price 0 (failed fetches) are excluded from all statistics and
// ordering but stay in the returned quote set. The only side effect is
// appending warnings to the quotes in place
func Build(
	quotes []*types.PriceQuote,
	offers []*types.P2POffer,
	orderSize float64,
) *types.RankingResult {
	// Failed fetches must not corrupt the statistics
	valid := make([]*types.PriceQuote, 0, len(quotes))

	for _, quote := range quotes {
		if quote.PriceUSD > 0 {
			valid = append(valid, quote)
		}
	}

	reference := ReferencePrice(valid)
	average := AveragePrice(valid)

	applyLiquidityChecks(valid, orderSize)
	applySpreadChecks(valid, reference)

	ranked := rankQuotes(valid, orderSize)
	if len(ranked) > topN {
		ranked = ranked[:topN]
	}

	return &types.RankingResult{
		Quotes:          quotes,
		Top5:            ranked,
		AveragePrice:    average,
		ReferencePrice:  reference,
		BestP2P:         bestOffer(offers),
		SlippageWarning: slippageWarning(valid),
	}
}

// ReferencePrice computes the mean price across the flagship reference
// venues, or nil if none of them produced a valid quote
func ReferencePrice(quotes []*types.PriceQuote) *float64 {
	var (
		sum   float64
		count int
	)

	for _, quote := range quotes {
		for _, id := range venue.ReferenceExchanges {
			if quote.ExchangeID == id {
				sum += quote.PriceUSD
				count++

				break
			}
		}
	}

	if count == 0 {
		return nil
	}

	mean := sum / float64(count)

	return &mean
}

// AveragePrice computes the mean price across all given quotes,
// or nil for an empty set
func AveragePrice(quotes []*types.PriceQuote) *float64 {
	if len(quotes) == 0 {
		return nil
	}

	var sum float64
	for _, quote := range quotes {
		sum += quote.PriceUSD
	}

	mean := sum / float64(len(quotes))

	return &mean
}

// priceImpact estimates the relative price degradation of executing the
// order against the given pool depth, capped at 5%
func priceImpact(orderSize, liquidity float64) float64 {
	impact := orderSize / max(liquidity, 1)

	return min(impact, maxPriceImpact)
}

// applyLiquidityChecks annotates DEX quotes whose pool depth is missing
// or too shallow for the configured order size
func applyLiquidityChecks(quotes []*types.PriceQuote, orderSize float64) {
	for _, quote := range quotes {
		if quote.Kind != types.KindDEX {
			continue
		}

		if quote.LiquidityUSD == nil {
			quote.AddWarning("No liquidity data")

			continue
		}

		if impact := priceImpact(orderSize, *quote.LiquidityUSD); impact > priceImpactThreshold {
			quote.AddWarning(fmt.Sprintf("Price impact %.2f%%", impact*100))
		}
	}
}

// applySpreadChecks annotates quotes that deviate abnormally from the
// reference price. Without a reference price the check is skipped
func applySpreadChecks(quotes []*types.PriceQuote, reference *float64) {
	if reference == nil {
		return
	}

	for _, quote := range quotes {
		spread := quote.PriceUSD - *reference
		if spread < 0 {
			spread = -spread
		}

		spread /= *reference

		if spread > spreadThreshold {
			quote.AddWarning(fmt.Sprintf("Abnormal spread %.2f%%", spread*100))
		}
	}
}

// EffectivePrice is the cost-adjusted price used for ranking: the raw
// price with the venue fee applied, plus the estimated slippage cost for
// DEX quotes with known, non-zero liquidity
func EffectivePrice(quote *types.PriceQuote, orderSize float64) float64 {
	feeMultiplier := 1 + quote.FeeBps/10000

	var slippageCost float64
	if quote.Kind == types.KindDEX && quote.LiquidityUSD != nil && *quote.LiquidityUSD != 0 {
		slippageCost = priceImpact(orderSize, *quote.LiquidityUSD) * quote.PriceUSD
	}

	return quote.PriceUSD*feeMultiplier + slippageCost
}

// rankQuotes orders quotes ascending by effective price. The sort is
// stable, so equally priced quotes keep their relative order
func rankQuotes(quotes []*types.PriceQuote, orderSize float64) []*types.PriceQuote {
	type rankedQuote struct {
		quote     *types.PriceQuote
		effective float64
	}

	ranked := make([]rankedQuote, 0, len(quotes))
	for _, quote := range quotes {
		ranked = append(ranked, rankedQuote{
			quote:     quote,
			effective: EffectivePrice(quote, orderSize),
		})
	}

	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].effective < ranked[j].effective
	})

	out := make([]*types.PriceQuote, 0, len(ranked))
	for _, r := range ranked {
		out = append(out, r.quote)
	}

	return out
}

// bestOffer picks the offer with the lowest raw price
func bestOffer(offers []*types.P2POffer) *types.P2POffer {
	var best *types.P2POffer

	for _, offer := range offers {
		if best == nil || offer.PriceUSD < best.PriceUSD {
			best = offer
		}
	}

	return best
}

// slippageWarning returns the fixed advisory when any quote carries a
// price impact annotation
func slippageWarning(quotes []*types.PriceQuote) string {
	for _, quote := range quotes {
		for _, warning := range quote.Warnings {
			if strings.Contains(warning, "Price impact") {
				return slippageAdvisory
			}
		}
	}

	return ""
}
