package solana

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sig-0/solprice/httpclient"
)

func TestRPC_GetSlot(t *testing.T) {
	t.Parallel()

	t.Run("slot fetched", func(t *testing.T) {
		t.Parallel()

		srv := httptest.NewServer(
			http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				var req rpcRequest

				require.NoError(t, json.NewDecoder(r.Body).Decode(&req))

				assert.Equal(t, "2.0", req.JSONRPC)
				assert.Equal(t, "getSlot", req.Method)

				_, _ = w.Write([]byte(`{"jsonrpc":"2.0","id":1,"result":294731337}`))
			}),
		)
		defer srv.Close()

		rpc := NewRPC(srv.URL)

		slot, err := rpc.GetSlot(
			context.Background(),
			httpclient.New(httpclient.WithRatePerSecond(1000)),
		)

		require.NoError(t, err)
		assert.EqualValues(t, 294731337, slot)
	})

	t.Run("default endpoint fallback", func(t *testing.T) {
		t.Parallel()

		rpc := NewRPC("")

		assert.Equal(t, DefaultEndpoint, rpc.endpoint)
	})
}
