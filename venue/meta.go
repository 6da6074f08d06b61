package venue

import "github.com/sig-0/solprice/types"

// CEXMeta describes the supported centralized exchanges
var CEXMeta = map[string]types.ExchangeMeta{
	"binance":  {Name: "Binance", Kind: types.KindCEX, Chain: "Solana", Source: "REST", FeeBps: 10},
	"gate":     {Name: "Gate", Kind: types.KindCEX, Chain: "Solana", Source: "REST", FeeBps: 20},
	"bybit":    {Name: "Bybit", Kind: types.KindCEX, Chain: "Solana", Source: "REST", FeeBps: 10},
	"okx":      {Name: "OKX", Kind: types.KindCEX, Chain: "Solana", Source: "REST", FeeBps: 8},
	"bitget":   {Name: "Bitget", Kind: types.KindCEX, Chain: "Solana", Source: "REST", FeeBps: 10},
	"coinbase": {Name: "Coinbase Exchange", Kind: types.KindCEX, Chain: "Solana", Source: "REST", FeeBps: 50},
	"upbit":    {Name: "Upbit", Kind: types.KindCEX, Chain: "Solana", Source: "REST", FeeBps: 5},
	"kucoin":   {Name: "KuCoin", Kind: types.KindCEX, Chain: "Solana", Source: "REST", FeeBps: 10},
	"mexc":     {Name: "MEXC", Kind: types.KindCEX, Chain: "Solana", Source: "REST", FeeBps: 10},
	"htx":      {Name: "HTX", Kind: types.KindCEX, Chain: "Solana", Source: "REST", FeeBps: 20},
}

// DEXMeta describes the supported decentralized exchanges
var DEXMeta = map[string]types.ExchangeMeta{
	"raydium":  {Name: "Raydium", Kind: types.KindDEX, Chain: "Solana", Source: "DexScreener", FeeBps: 30},
	"orca":     {Name: "Orca", Kind: types.KindDEX, Chain: "Solana", Source: "DexScreener", FeeBps: 30},
	"jupiter":  {Name: "Jupiter Aggregator", Kind: types.KindDEX, Chain: "Solana", Source: "Jupiter", FeeBps: 30},
	"meteora":  {Name: "Meteora", Kind: types.KindDEX, Chain: "Solana", Source: "DexScreener", FeeBps: 30},
	"openbook": {Name: "OpenBook", Kind: types.KindDEX, Chain: "Solana", Source: "DexScreener", FeeBps: 20},
	"lifinity": {Name: "Lifinity", Kind: types.KindDEX, Chain: "Solana", Source: "DexScreener", FeeBps: 30},
	"saber":    {Name: "Saber", Kind: types.KindDEX, Chain: "Solana", Source: "DexScreener", FeeBps: 20},
	"aldrin":   {Name: "Aldrin", Kind: types.KindDEX, Chain: "Solana", Source: "DexScreener", FeeBps: 20},
	"saros":    {Name: "Saros", Kind: types.KindDEX, Chain: "Solana", Source: "DexScreener", FeeBps: 20},
	"pumpfun":  {Name: "Pump.fun / PumpSwap", Kind: types.KindDEX, Chain: "Solana", Source: "DexScreener", FeeBps: 50},
}

// P2PMeta describes the supported peer-to-peer marketplaces
var P2PMeta = map[string]types.ExchangeMeta{
	"binance": {Name: "Binance P2P", Kind: types.KindP2P, Chain: "Solana", Source: "REST", FeeBps: 0},
	"bybit":   {Name: "Bybit P2P", Kind: types.KindP2P, Chain: "Solana", Source: "REST", FeeBps: 0},
	"okx":     {Name: "OKX P2P", Kind: types.KindP2P, Chain: "Solana", Source: "REST", FeeBps: 0},
	"gate":    {Name: "Gate P2P", Kind: types.KindP2P, Chain: "Solana", Source: "REST", FeeBps: 0},
	"bitget":  {Name: "Bitget P2P", Kind: types.KindP2P, Chain: "Solana", Source: "REST", FeeBps: 0},
}

// ReferenceExchanges are the flagship venues whose mean price acts
// as the anomaly baseline for spread checks
var ReferenceExchanges = []string{"binance", "coinbase"}

// QuoteMeta looks up the static metadata for a quote venue
func QuoteMeta(id string) (types.ExchangeMeta, bool) {
	if meta, ok := CEXMeta[id]; ok {
		return meta, true
	}

	meta, ok := DEXMeta[id]

	return meta, ok
}
