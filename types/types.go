package types

import "time"

// Kind is the category of a trading venue
type Kind string

const (
	KindCEX Kind = "CEX"
	KindDEX Kind = "DEX"
	KindP2P Kind = "P2P"
)

func (k Kind) String() string {
	return string(k)
}

// ExchangeMeta is the static, read-only description of a venue
type ExchangeMeta struct {
	Name   string  `json:"name"`
	Kind   Kind    `json:"kind"`
	Chain  string  `json:"chain"`
	Source string  `json:"source"`
	FeeBps float64 `json:"fee_bps"`
}

// PriceQuote is a single venue's normalized SOL/USD price observation.
// A price of 0 marks a failed fetch; such quotes are kept for row
// accounting but excluded from ranking and statistics
type PriceQuote struct {
	ExchangeID   string    `json:"exchange_id"`
	ExchangeName string    `json:"exchange_name"`
	Kind         Kind      `json:"kind"`
	Chain        string    `json:"chain"`
	PriceUSD     float64   `json:"price_usd"`
	Source       string    `json:"source"`
	LiquidityUSD *float64  `json:"liquidity_usd,omitempty"`
	LastUpdated  time.Time `json:"last_updated"`
	FeeBps       float64   `json:"fee_bps"`
	Warnings     []string  `json:"warnings"`
}

// AddWarning appends a non-fatal data-quality annotation to the quote
func (q *PriceQuote) AddWarning(warning string) {
	q.Warnings = append(q.Warnings, warning)
}

// P2POffer is the best peer-to-peer offer found on a single marketplace
type P2POffer struct {
	ExchangeID     string    `json:"exchange_id"`
	ExchangeName   string    `json:"exchange_name"`
	PriceUSD       float64   `json:"price_usd"`
	PaymentMethods []string  `json:"payment_methods"`
	MinLimit       *float64  `json:"min_limit,omitempty"`
	MaxLimit       *float64  `json:"max_limit,omitempty"`
	MerchantCount  *int      `json:"merchant_count,omitempty"`
	Region         string    `json:"region,omitempty"`
	LastUpdated    time.Time `json:"last_updated"`
}

// RankingResult is the annotated outcome of one ranking pass
type RankingResult struct {
	Quotes          []*PriceQuote `json:"quotes"`
	Top5            []*PriceQuote `json:"top5"`
	AveragePrice    *float64      `json:"average_price,omitempty"`
	ReferencePrice  *float64      `json:"reference_price,omitempty"`
	BestP2P         *P2POffer     `json:"best_p2p,omitempty"`
	SlippageWarning string        `json:"slippage_warning,omitempty"`
}

// Snapshot is the full output of one refresh cycle
type Snapshot struct {
	CycleID   string         `json:"cycle_id"`
	FetchedAt time.Time      `json:"fetched_at"`
	Ranking   *RankingResult `json:"ranking"`
	Offers    []*P2POffer    `json:"p2p_offers"`
	ChainSlot *uint64        `json:"chain_slot,omitempty"`
}

// Float64Ptr is a convenience helper for optional numeric fields
func Float64Ptr(v float64) *float64 {
	return &v
}
