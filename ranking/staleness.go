package ranking

import (
	"time"

	"github.com/sig-0/solprice/types"
)

// StaleAfter is the age past which a quote is flagged as stale
const StaleAfter = time.Second * 30

// ApplyStaleness annotates quotes whose capture time is older than the
// staleness threshold. Advisory only, no quote is removed
func ApplyStaleness(quotes []*types.PriceQuote) {
	now := time.Now().UTC()

	for _, quote := range quotes {
		if now.Sub(quote.LastUpdated) > StaleAfter {
			quote.AddWarning("Stale data")
		}
	}
}
