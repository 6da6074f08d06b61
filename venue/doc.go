// Package venue provides SOL price adapters for centralized exchanges,
// Solana DEXes, and peer-to-peer marketplaces, plus their static metadata.
//
// # Quote adapters
//
// ## Centralized exchanges
//
// Binance, Gate, Bybit, OKX, Bitget, Coinbase Exchange, Upbit, KuCoin,
// MEXC and HTX are queried through their public spot ticker endpoints.
// Where the ticker carries a 24h quote-volume figure it is recorded as
// the quote's liquidity; exchanges that only expose a last price
// (Binance, Coinbase, MEXC) produce quotes without liquidity data.
//
// ## Decentralized exchanges
//
// Raydium, Orca, Meteora, OpenBook, Lifinity, Saber, Aldrin, Saros and
// Pump.fun are priced via the DexScreener search API: pairs are filtered
// to the Solana chain and the venue's dexId, and the pool with the
// deepest USD liquidity wins. Pools under $100k get a "Low liquidity"
// annotation. Jupiter is priced through its own aggregator API and is
// tagged "Aggregator pricing" since it routes across pools.
//
// # Best-offer adapters
//
// Binance, Bybit, OKX, Gate and Bitget P2P marketplaces are queried for
// the top SOL buy offer in USD. An empty order book is a valid outcome
// and yields no offer, distinct from a fetch failure.
//
// All adapters go through the shared resilient client, which owns the
// response cache, the global throttle, and retry.
package venue
