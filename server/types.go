package server

import "github.com/sig-0/solprice/types"

// SnapshotSource provides the latest aggregation snapshot, if any
// refresh cycle has completed yet
type SnapshotSource interface {
	Latest() *types.Snapshot
}

// RankingResponse is the trimmed ranking view: the shortlist plus
// the cycle's statistics
type RankingResponse struct {
	CycleID         string              `json:"cycle_id"`
	Top5            []*types.PriceQuote `json:"top5"`
	AveragePrice    *float64            `json:"average_price,omitempty"`
	ReferencePrice  *float64            `json:"reference_price,omitempty"`
	SlippageWarning string              `json:"slippage_warning,omitempty"`
}

// QuotesResponse lists every venue quote from the latest cycle,
// ordered by raw price
type QuotesResponse struct {
	CycleID string              `json:"cycle_id"`
	Results []*types.PriceQuote `json:"results"`
}

// P2PResponse lists the collected P2P offers and the best one among them
type P2PResponse struct {
	CycleID string            `json:"cycle_id"`
	Best    *types.P2POffer   `json:"best,omitempty"`
	Results []*types.P2POffer `json:"results"`
}

type ErrorResponse struct {
	Error string `json:"error"`
}
