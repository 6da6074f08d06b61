package run

import (
	"github.com/sig-0/solprice/ingest"
	"github.com/sig-0/solprice/venue"
)

// defaultQuoteAdapters returns the default venue quote adapter set
func defaultQuoteAdapters() []ingest.QuoteAdapter {
	return []ingest.QuoteAdapter{
		// Centralized exchanges
		venue.NewBinanceAdapter(),
		venue.NewGateAdapter(),
		venue.NewBybitAdapter(),
		venue.NewOKXAdapter(),
		venue.NewBitgetAdapter(),
		venue.NewCoinbaseAdapter(),
		venue.NewUpbitAdapter(),
		venue.NewKuCoinAdapter(),
		venue.NewMEXCAdapter(),
		venue.NewHTXAdapter(),

		// Solana DEXes
		venue.NewDexScreenerAdapter("raydium", "raydium"),
		venue.NewDexScreenerAdapter("orca", "orca"),
		venue.NewJupiterAdapter(),
		venue.NewDexScreenerAdapter("meteora", "meteora"),
		venue.NewDexScreenerAdapter("openbook", "openbook"),
		venue.NewDexScreenerAdapter("lifinity", "lifinity"),
		venue.NewDexScreenerAdapter("saber", "saber"),
		venue.NewDexScreenerAdapter("aldrin", "aldrin"),
		venue.NewDexScreenerAdapter("saros", "saros"),
		venue.NewDexScreenerAdapter("pumpfun", "pumpfun"),
	}
}

// defaultOfferAdapters returns the default P2P best-offer adapter set
func defaultOfferAdapters() []ingest.OfferAdapter {
	return []ingest.OfferAdapter{
		venue.NewBinanceP2PAdapter(),
		venue.NewBybitP2PAdapter(),
		venue.NewOKXP2PAdapter(),
		venue.NewGateP2PAdapter(),
		venue.NewBitgetP2PAdapter(),
	}
}
