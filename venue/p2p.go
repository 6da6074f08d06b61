//nolint:tagliatelle // Marketplace APIs dictate their own field casing
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
	binanceP2PURL = "https://p2p.binance.com/bapi/c2c/v2/friendly/c2c/adv/search"
	bybitP2PURL   = "https://api2.bybit.com/fiat/otc/item/online"
	okxP2PURL     = "https://www.okx.com/v3/c2c/tradingOrders/books"
	gateP2PURL    = "https://www.gate.io/json_svr/query/"
	bitgetP2PURL  = "https://api.bitget.com/api/v2/express/otc/advertList"

	// P2P order books shift slowly compared to spot tickers
	p2pTTL = time.Second * 10
)

// newOffer builds a normalized P2P offer from the marketplace's metadata
func newOffer(
	id string,
	price float64,
	paymentMethods []string,
	minLimit, maxLimit *float64,
	region string,
) *types.P2POffer {
	meta := P2PMeta[id]

	return &types.P2POffer{
		ExchangeID:     id,
		ExchangeName:   meta.Name,
		PriceUSD:       price,
		PaymentMethods: paymentMethods,
		MinLimit:       minLimit,
		MaxLimit:       maxLimit,
		Region:         region,
		LastUpdated:    time.Now().UTC(),
	}
}

// binanceP2PRequest is the request body for the Binance P2P search API
type binanceP2PRequest struct {
	Asset         string   `json:"asset"`
	Fiat          string   `json:"fiat"`
	TradeType     string   `json:"tradeType"`
	Page          int      `json:"page"`
	Rows          int      `json:"rows"`
	PayTypes      []string `json:"payTypes"`
	PublisherType *string  `json:"publisherType"`
}

// binanceP2PResponse is the response from the Binance P2P search API
type binanceP2PResponse struct {
	Data []struct {
		Adv struct {
			Price                string `json:"price"`
			MinSingleTransAmount string `json:"minSingleTransAmount"`
			MaxSingleTransAmount string `json:"maxSingleTransAmount"`
			Country              string `json:"country"`
			TradeMethods         []struct {
				Identifier string `json:"identifier"`
			} `json:"tradeMethods"`
		} `json:"adv"`
	} `json:"data"`
}

// BinanceP2PAdapter fetches the best SOL buy offer from Binance P2P
type BinanceP2PAdapter struct {
	id  string
	url string
}

func NewBinanceP2PAdapter() *BinanceP2PAdapter {
	return &BinanceP2PAdapter{id: "binance", url: binanceP2PURL}
}

func (a *BinanceP2PAdapter) VenueID() string {
	return a.id
}

func (a *BinanceP2PAdapter) FetchBestOffer(
	ctx context.Context,
	client *httpclient.Client,
) (*types.P2POffer, error) {
	payload := binanceP2PRequest{
		Asset:     "SOL",
		Fiat:      "USD",
		TradeType: "BUY",
		Page:      1,
		Rows:      10,
		PayTypes:  []string{},
	}

	var resp binanceP2PResponse

	if err := client.PostJSON(ctx, a.url, payload, p2pTTL, &resp); err != nil {
		return nil, fmt.Errorf("unable to fetch Binance P2P offers: %w", err)
	}

	if len(resp.Data) == 0 {
		return nil, nil // no offers listed
	}

	best := resp.Data[0].Adv

	price, err := parsePrice(best.Price)
	if err != nil {
		return nil, err
	}

	methods := make([]string, 0, len(best.TradeMethods))
	for _, method := range best.TradeMethods {
		methods = append(methods, method.Identifier)
	}

	return newOffer(
		a.id,
		price,
		methods,
		limitPtr(best.MinSingleTransAmount),
		limitPtr(best.MaxSingleTransAmount),
		best.Country,
	), nil
}

// bybitP2PResponse is the response from the Bybit OTC API
type bybitP2PResponse struct {
	Result struct {
		Items []struct {
			Price     string `json:"price"`
			MinAmount string `json:"minAmount"`
			MaxAmount string `json:"maxAmount"`
			Payments  []struct {
				PaymentName string `json:"paymentName"`
			} `json:"payments"`
		} `json:"items"`
	} `json:"result"`
}

// BybitP2PAdapter fetches the best SOL buy offer from Bybit P2P
type BybitP2PAdapter struct {
	id  string
	url string
}

func NewBybitP2PAdapter() *BybitP2PAdapter {
	return &BybitP2PAdapter{id: "bybit", url: bybitP2PURL}
}

func (a *BybitP2PAdapter) VenueID() string {
	return a.id
}

func (a *BybitP2PAdapter) FetchBestOffer(
	ctx context.Context,
	client *httpclient.Client,
) (*types.P2POffer, error) {
	params := url.Values{
		"tokenId":    {"SOL"},
		"currencyId": {"USD"},
		"side":       {"1"},
		"page":       {"1"},
		"size":       {"10"},
	}

	var resp bybitP2PResponse

	if err := client.GetJSON(ctx, a.url, params, p2pTTL, &resp); err != nil {
		return nil, fmt.Errorf("unable to fetch Bybit P2P offers: %w", err)
	}

	if len(resp.Result.Items) == 0 {
		return nil, nil // no offers listed
	}

	best := resp.Result.Items[0]

	price, err := parsePrice(best.Price)
	if err != nil {
		return nil, err
	}

	methods := make([]string, 0, len(best.Payments))
	for _, payment := range best.Payments {
		methods = append(methods, payment.PaymentName)
	}

	return newOffer(
		a.id,
		price,
		methods,
		limitPtr(best.MinAmount),
		limitPtr(best.MaxAmount),
		"",
	), nil
}

// okxP2PResponse is the response from the OKX C2C order book API
type okxP2PResponse struct {
	Data struct {
		Sell []struct {
			Price          string `json:"price"`
			MinAmount      string `json:"minAmount"`
			MaxAmount      string `json:"maxAmount"`
			QuoteName      string `json:"quoteName"`
			PaymentMethods []struct {
				PayMethod string `json:"payMethod"`
			} `json:"paymentMethods"`
		} `json:"sell"`
	} `json:"data"`
}

// OKXP2PAdapter fetches the best SOL buy offer from OKX P2P
type OKXP2PAdapter struct {
	id  string
	url string
}

func NewOKXP2PAdapter() *OKXP2PAdapter {
	return &OKXP2PAdapter{id: "okx", url: okxP2PURL}
}

func (a *OKXP2PAdapter) VenueID() string {
	return a.id
}

func (a *OKXP2PAdapter) FetchBestOffer(
	ctx context.Context,
	client *httpclient.Client,
) (*types.P2POffer, error) {
	params := url.Values{
		"baseCurrency":      {"SOL"},
		"quoteCurrency":     {"USD"},
		"side":              {"buy"},
		"paymentMethod":     {"all"},
		"userType":          {"all"},
		"showTrade":         {"false"},
		"showFollow":        {"false"},
		"showAlreadyTraded": {"false"},
		"isAbleFilter":      {"false"},
	}

	var resp okxP2PResponse

	if err := client.GetJSON(ctx, a.url, params, p2pTTL, &resp); err != nil {
		return nil, fmt.Errorf("unable to fetch OKX P2P offers: %w", err)
	}

	if len(resp.Data.Sell) == 0 {
		return nil, nil // no offers listed
	}

	best := resp.Data.Sell[0]

	price, err := parsePrice(best.Price)
	if err != nil {
		return nil, err
	}

	methods := make([]string, 0, len(best.PaymentMethods))
	for _, method := range best.PaymentMethods {
		methods = append(methods, method.PayMethod)
	}

	return newOffer(
		a.id,
		price,
		methods,
		limitPtr(best.MinAmount),
		limitPtr(best.MaxAmount),
		best.QuoteName,
	), nil
}

// gateP2PResponse is the response from the Gate OTC query API
type gateP2PResponse struct {
	Data []struct {
		Price    string   `json:"price"`
		Min      string   `json:"min"`
		Max      string   `json:"max"`
		PayTypes []string `json:"payTypes"`
	} `json:"data"`
}

// GateP2PAdapter fetches the best SOL buy offer from Gate P2P
type GateP2PAdapter struct {
	id  string
	url string
}

func NewGateP2PAdapter() *GateP2PAdapter {
	return &GateP2PAdapter{id: "gate", url: gateP2PURL}
}

func (a *GateP2PAdapter) VenueID() string {
	return a.id
}

func (a *GateP2PAdapter) FetchBestOffer(
	ctx context.Context,
	client *httpclient.Client,
) (*types.P2POffer, error) {
	params := url.Values{
		"u":        {"1"},
		"c":        {"otc"},
		"a":        {"order_list"},
		"currency": {"SOL"},
		"fiat":     {"USD"},
		"side":     {"buy"},
		"page":     {"1"},
		"limit":    {"10"},
	}

	var resp gateP2PResponse

	if err := client.GetJSON(ctx, a.url, params, p2pTTL, &resp); err != nil {
		return nil, fmt.Errorf("unable to fetch Gate P2P offers: %w", err)
	}

	if len(resp.Data) == 0 {
		return nil, nil // no offers listed
	}

	best := resp.Data[0]

	price, err := parsePrice(best.Price)
	if err != nil {
		return nil, err
	}

	return newOffer(
		a.id,
		price,
		best.PayTypes,
		limitPtr(best.Min),
		limitPtr(best.Max),
		"",
	), nil
}

// bitgetP2PResponse is the response from the Bitget OTC advert API
type bitgetP2PResponse struct {
	Data []struct {
		Price          string   `json:"price"`
		MinTradeAmount string   `json:"minTradeAmount"`
		MaxTradeAmount string   `json:"maxTradeAmount"`
		PayMethods     []string `json:"payMethods"`
	} `json:"data"`
}

// BitgetP2PAdapter fetches the best SOL buy offer from Bitget P2P
type BitgetP2PAdapter struct {
	id  string
	url string
}

func NewBitgetP2PAdapter() *BitgetP2PAdapter {
	return &BitgetP2PAdapter{id: "bitget", url: bitgetP2PURL}
}

func (a *BitgetP2PAdapter) VenueID() string {
	return a.id
}

func (a *BitgetP2PAdapter) FetchBestOffer(
	ctx context.Context,
	client *httpclient.Client,
) (*types.P2POffer, error) {
	params := url.Values{
		"side":     {"buy"},
		"coin":     {"SOL"},
		"fiat":     {"USD"},
		"pageSize": {"10"},
		"pageNo":   {"1"},
	}

	var resp bitgetP2PResponse

	if err := client.GetJSON(ctx, a.url, params, p2pTTL, &resp); err != nil {
		return nil, fmt.Errorf("unable to fetch Bitget P2P offers: %w", err)
	}

	if len(resp.Data) == 0 {
		return nil, nil // no offers listed
	}

	best := resp.Data[0]

	price, err := parsePrice(best.Price)
	if err != nil {
		return nil, err
	}

	return newOffer(
		a.id,
		price,
		best.PayMethods,
		limitPtr(best.MinTradeAmount),
		limitPtr(best.MaxTradeAmount),
		"",
	), nil
}
