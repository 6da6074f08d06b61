// Package solana holds a minimal JSON-RPC prober for the Solana chain,
// used as an auxiliary freshness indicator next to the price data
package solana

import (
	"context"
	"fmt"

	"github.com/sig-0/solprice/httpclient"
)

// DefaultEndpoint is the public Solana mainnet RPC endpoint
const DefaultEndpoint = "https://api.mainnet-beta.solana.com"

// rpcRequest is a standard JSON-RPC 2.0 request envelope
type rpcRequest struct {
	JSONRPC string `json:"jsonrpc"`
	ID      int    `json:"id"`
	Method  string `json:"method"`
	Params  []any  `json:"params"`
}

// slotResponse is the getSlot JSON-RPC response
type slotResponse struct {
	Result uint64 `json:"result"`
}

// RPC is a Solana JSON-RPC endpoint handle
type RPC struct {
	endpoint string
}

// NewRPC creates a new RPC handle, falling back to the public
// mainnet endpoint when none is given
func NewRPC(endpoint string) *RPC {
	if endpoint == "" {
		endpoint = DefaultEndpoint
	}

	return &RPC{
		endpoint: endpoint,
	}
}

// GetSlot fetches the current slot height through the shared client
func (r *RPC) GetSlot(ctx context.Context, client *httpclient.Client) (uint64, error) {
	payload := rpcRequest{
		JSONRPC: "2.0",
		ID:      1,
		Method:  "getSlot",
		Params:  []any{},
	}

	var resp slotResponse

	if err := client.PostJSON(ctx, r.endpoint, payload, 0, &resp); err != nil {
		return 0, fmt.Errorf("unable to fetch slot: %w", err)
	}

	return resp.Result, nil
}
