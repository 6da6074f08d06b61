//nolint:tagliatelle // Exchange APIs dictate their own field casing
package venue

import (
	"context"
	"errors"
	"fmt"
	"net/url"

	"github.com/sig-0/solprice/httpclient"
	"github.com/sig-0/solprice/types"
)

var errEmptyTicker = errors.New("empty ticker response")

const (
	binanceTickerURL  = "https://api.binance.com/api/v3/ticker/price"
	gateTickerURL     = "https://api.gateio.ws/api/v4/spot/tickers"
	bybitTickerURL    = "https://api.bybit.com/v5/market/tickers"
	okxTickerURL      = "https://www.okx.com/api/v5/market/ticker"
	bitgetTickerURL   = "https://api.bitget.com/api/v2/spot/market/tickers"
	coinbaseTickerURL = "https://api.exchange.coinbase.com/products/SOL-USD/ticker"
	upbitTickerURL    = "https://api.upbit.com/v1/ticker"
	kucoinTickerURL   = "https://api.kucoin.com/api/v1/market/orderbook/level1"
	mexcTickerURL     = "https://api.mexc.com/api/v3/ticker/price"
	htxTickerURL      = "https://api.huobi.pro/market/trade"
)

// BinanceAdapter fetches the SOL/USDT spot price from Binance
type BinanceAdapter struct {
	id  string
	url string
}

func NewBinanceAdapter() *BinanceAdapter {
	return &BinanceAdapter{id: "binance", url: binanceTickerURL}
}

func (a *BinanceAdapter) VenueID() string {
	return a.id
}

type binanceTickerResponse struct {
	Price string `json:"price"`
}

func (a *BinanceAdapter) FetchQuote(
	ctx context.Context,
	client *httpclient.Client,
) (*types.PriceQuote, error) {
	var resp binanceTickerResponse

	params := url.Values{"symbol": {"SOLUSDT"}}

	if err := client.GetJSON(ctx, a.url, params, 0, &resp); err != nil {
		return nil, fmt.Errorf("unable to fetch Binance ticker: %w", err)
	}

	price, err := parsePrice(resp.Price)
	if err != nil {
		return nil, err
	}

	return newQuote(a.id, CEXMeta[a.id], price, nil), nil
}

// GateAdapter fetches the SOL/USDT spot price from Gate
type GateAdapter struct {
	id  string
	url string
}

func NewGateAdapter() *GateAdapter {
	return &GateAdapter{id: "gate", url: gateTickerURL}
}

func (a *GateAdapter) VenueID() string {
	return a.id
}

type gateTicker struct {
	Last        string `json:"last"`
	QuoteVolume string `json:"quote_volume"`
}

func (a *GateAdapter) FetchQuote(
	ctx context.Context,
	client *httpclient.Client,
) (*types.PriceQuote, error) {
	var resp []gateTicker

	params := url.Values{"currency_pair": {"SOL_USDT"}}

	if err := client.GetJSON(ctx, a.url, params, 0, &resp); err != nil {
		return nil, fmt.Errorf("unable to fetch Gate ticker: %w", err)
	}

	if len(resp) == 0 {
		return nil, errEmptyTicker
	}

	price, err := parsePrice(resp[0].Last)
	if err != nil {
		return nil, err
	}

	var liquidity *float64
	if volume, ok := parseFloat(resp[0].QuoteVolume); ok {
		liquidity = &volume
	}

	return newQuote(a.id, CEXMeta[a.id], price, liquidity), nil
}

// BybitAdapter fetches the SOL/USDT spot price from Bybit
type BybitAdapter struct {
	id  string
	url string
}

func NewBybitAdapter() *BybitAdapter {
	return &BybitAdapter{id: "bybit", url: bybitTickerURL}
}

func (a *BybitAdapter) VenueID() string {
	return a.id
}

type bybitTickerResponse struct {
	Result struct {
		List []struct {
			LastPrice  string `json:"lastPrice"`
			Turnover24 string `json:"turnover24h"`
		} `json:"list"`
	} `json:"result"`
}

func (a *BybitAdapter) FetchQuote(
	ctx context.Context,
	client *httpclient.Client,
) (*types.PriceQuote, error) {
	var resp bybitTickerResponse

	params := url.Values{
		"category": {"spot"},
		"symbol":   {"SOLUSDT"},
	}

	if err := client.GetJSON(ctx, a.url, params, 0, &resp); err != nil {
		return nil, fmt.Errorf("unable to fetch Bybit ticker: %w", err)
	}

	if len(resp.Result.List) == 0 {
		return nil, errEmptyTicker
	}

	price, err := parsePrice(resp.Result.List[0].LastPrice)
	if err != nil {
		return nil, err
	}

	var liquidity *float64
	if turnover, ok := parseFloat(resp.Result.List[0].Turnover24); ok {
		liquidity = &turnover
	}

	return newQuote(a.id, CEXMeta[a.id], price, liquidity), nil
}

// OKXAdapter fetches the SOL/USDT spot price from OKX
type OKXAdapter struct {
	id  string
	url string
}

func NewOKXAdapter() *OKXAdapter {
	return &OKXAdapter{id: "okx", url: okxTickerURL}
}

func (a *OKXAdapter) VenueID() string {
	return a.id
}

type okxTickerResponse struct {
	Data []struct {
		Last      string `json:"last"`
		VolCcy24h string `json:"volCcy24h"`
	} `json:"data"`
}

func (a *OKXAdapter) FetchQuote(
	ctx context.Context,
	client *httpclient.Client,
) (*types.PriceQuote, error) {
	var resp okxTickerResponse

	params := url.Values{"instId": {"SOL-USDT"}}

	if err := client.GetJSON(ctx, a.url, params, 0, &resp); err != nil {
		return nil, fmt.Errorf("unable to fetch OKX ticker: %w", err)
	}

	if len(resp.Data) == 0 {
		return nil, errEmptyTicker
	}

	price, err := parsePrice(resp.Data[0].Last)
	if err != nil {
		return nil, err
	}

	var liquidity *float64
	if volume, ok := parseFloat(resp.Data[0].VolCcy24h); ok {
		liquidity = &volume
	}

	return newQuote(a.id, CEXMeta[a.id], price, liquidity), nil
}

// BitgetAdapter fetches the SOL/USDT spot price from Bitget
type BitgetAdapter struct {
	id  string
	url string
}

func NewBitgetAdapter() *BitgetAdapter {
	return &BitgetAdapter{id: "bitget", url: bitgetTickerURL}
}

func (a *BitgetAdapter) VenueID() string {
	return a.id
}

type bitgetTickerResponse struct {
	Data []struct {
		LastPr   string `json:"lastPr"`
		QuoteVol string `json:"quoteVol"`
	} `json:"data"`
}

func (a *BitgetAdapter) FetchQuote(
	ctx context.Context,
	client *httpclient.Client,
) (*types.PriceQuote, error) {
	var resp bitgetTickerResponse

	params := url.Values{"symbol": {"SOLUSDT"}}

	if err := client.GetJSON(ctx, a.url, params, 0, &resp); err != nil {
		return nil, fmt.Errorf("unable to fetch Bitget ticker: %w", err)
	}

	if len(resp.Data) == 0 {
		return nil, errEmptyTicker
	}

	price, err := parsePrice(resp.Data[0].LastPr)
	if err != nil {
		return nil, err
	}

	var liquidity *float64
	if volume, ok := parseFloat(resp.Data[0].QuoteVol); ok {
		liquidity = &volume
	}

	return newQuote(a.id, CEXMeta[a.id], price, liquidity), nil
}

// CoinbaseAdapter fetches the SOL/USD spot price from Coinbase Exchange
type CoinbaseAdapter struct {
	id  string
	url string
}

func NewCoinbaseAdapter() *CoinbaseAdapter {
	return &CoinbaseAdapter{id: "coinbase", url: coinbaseTickerURL}
}

func (a *CoinbaseAdapter) VenueID() string {
	return a.id
}

type coinbaseTickerResponse struct {
	Price string `json:"price"`
}

func (a *CoinbaseAdapter) FetchQuote(
	ctx context.Context,
	client *httpclient.Client,
) (*types.PriceQuote, error) {
	var resp coinbaseTickerResponse

	if err := client.GetJSON(ctx, a.url, nil, 0, &resp); err != nil {
		return nil, fmt.Errorf("unable to fetch Coinbase ticker: %w", err)
	}

	price, err := parsePrice(resp.Price)
	if err != nil {
		return nil, err
	}

	return newQuote(a.id, CEXMeta[a.id], price, nil), nil
}

// UpbitAdapter fetches the SOL/USDT spot price from Upbit
type UpbitAdapter struct {
	id  string
	url string
}

func NewUpbitAdapter() *UpbitAdapter {
	return &UpbitAdapter{id: "upbit", url: upbitTickerURL}
}

func (a *UpbitAdapter) VenueID() string {
	return a.id
}

type upbitTicker struct {
	TradePrice       float64 `json:"trade_price"`
	AccTradePrice24h float64 `json:"acc_trade_price_24h"`
}

func (a *UpbitAdapter) FetchQuote(
	ctx context.Context,
	client *httpclient.Client,
) (*types.PriceQuote, error) {
	var resp []upbitTicker

	params := url.Values{"markets": {"USDT-SOL"}}

	if err := client.GetJSON(ctx, a.url, params, 0, &resp); err != nil {
		return nil, fmt.Errorf("unable to fetch Upbit ticker: %w", err)
	}

	if len(resp) == 0 {
		return nil, errEmptyTicker
	}

	if resp[0].TradePrice <= 0 {
		return nil, errInvalidPrice
	}

	liquidity := resp[0].AccTradePrice24h

	return newQuote(a.id, CEXMeta[a.id], resp[0].TradePrice, &liquidity), nil
}

// KuCoinAdapter fetches the SOL/USDT spot price from KuCoin
type KuCoinAdapter struct {
	id  string
	url string
}

func NewKuCoinAdapter() *KuCoinAdapter {
	return &KuCoinAdapter{id: "kucoin", url: kucoinTickerURL}
}

func (a *KuCoinAdapter) VenueID() string {
	return a.id
}

type kucoinTickerResponse struct {
	Data struct {
		Price    string `json:"price"`
		VolValue string `json:"volValue"`
	} `json:"data"`
}

func (a *KuCoinAdapter) FetchQuote(
	ctx context.Context,
	client *httpclient.Client,
) (*types.PriceQuote, error) {
	var resp kucoinTickerResponse

	params := url.Values{"symbol": {"SOL-USDT"}}

	if err := client.GetJSON(ctx, a.url, params, 0, &resp); err != nil {
		return nil, fmt.Errorf("unable to fetch KuCoin ticker: %w", err)
	}

	price, err := parsePrice(resp.Data.Price)
	if err != nil {
		return nil, err
	}

	var liquidity *float64
	if volume, ok := parseFloat(resp.Data.VolValue); ok {
		liquidity = &volume
	}

	return newQuote(a.id, CEXMeta[a.id], price, liquidity), nil
}

// MEXCAdapter fetches the SOL/USDT spot price from MEXC
type MEXCAdapter struct {
	id  string
	url string
}

func NewMEXCAdapter() *MEXCAdapter {
	return &MEXCAdapter{id: "mexc", url: mexcTickerURL}
}

func (a *MEXCAdapter) VenueID() string {
	return a.id
}

type mexcTickerResponse struct {
	Price string `json:"price"`
}

func (a *MEXCAdapter) FetchQuote(
	ctx context.Context,
	client *httpclient.Client,
) (*types.PriceQuote, error) {
	var resp mexcTickerResponse

	params := url.Values{"symbol": {"SOLUSDT"}}

	if err := client.GetJSON(ctx, a.url, params, 0, &resp); err != nil {
		return nil, fmt.Errorf("unable to fetch MEXC ticker: %w", err)
	}

	price, err := parsePrice(resp.Price)
	if err != nil {
		return nil, err
	}

	return newQuote(a.id, CEXMeta[a.id], price, nil), nil
}

// HTXAdapter fetches the SOL/USDT last trade price from HTX
type HTXAdapter struct {
	id  string
	url string
}

func NewHTXAdapter() *HTXAdapter {
	return &HTXAdapter{id: "htx", url: htxTickerURL}
}

func (a *HTXAdapter) VenueID() string {
	return a.id
}

type htxTradeResponse struct {
	Tick struct {
		Data []struct {
			Price float64 `json:"price"`
		} `json:"data"`
		Amount float64 `json:"amount"`
	} `json:"tick"`
}

func (a *HTXAdapter) FetchQuote(
	ctx context.Context,
	client *httpclient.Client,
) (*types.PriceQuote, error) {
	var resp htxTradeResponse

	params := url.Values{"symbol": {"solusdt"}}

	if err := client.GetJSON(ctx, a.url, params, 0, &resp); err != nil {
		return nil, fmt.Errorf("unable to fetch HTX trade: %w", err)
	}

	if len(resp.Tick.Data) == 0 {
		return nil, errEmptyTicker
	}

	if resp.Tick.Data[0].Price <= 0 {
		return nil, errInvalidPrice
	}

	liquidity := resp.Tick.Amount

	return newQuote(a.id, CEXMeta[a.id], resp.Tick.Data[0].Price, &liquidity), nil
}
