package server

import (
	"context"
	"net/http"
	"sync"

	"github.com/gorilla/websocket"

	"github.com/sig-0/solprice/types"
)

// wsHub tracks WebSocket consumers and pushes fresh snapshots to them
type wsHub struct {
	upgrader websocket.Upgrader

	clients map[*websocket.Conn]struct{}
	mux     sync.Mutex
}

func newWSHub() *wsHub {
	return &wsHub{
		clients: make(map[*websocket.Conn]struct{}),
		upgrader: websocket.Upgrader{
			CheckOrigin: func(_ *http.Request) bool {
				return true
			},
		},
	}
}

// handleWS upgrades the connection and registers the consumer
func (h *wsHub) handleWS(w http.ResponseWriter, r *http.Request) {
	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		return // upgrader already replied
	}

	h.mux.Lock()
	h.clients[conn] = struct{}{}
	h.mux.Unlock()
}

// broadcast pushes every snapshot from updates to all connected
// consumers, until the context is canceled [BLOCKING]
func (h *wsHub) broadcast(ctx context.Context, updates <-chan *types.Snapshot) {
	defer h.closeAll()

	if updates == nil {
		<-ctx.Done()

		return
	}

	for {
		select {
		case <-ctx.Done():
			return
		case snapshot, ok := <-updates:
			if !ok {
				return
			}

			h.send(snapshot)
		}
	}
}

// send writes the snapshot to every consumer, dropping dead connections
func (h *wsHub) send(snapshot *types.Snapshot) {
	h.mux.Lock()
	defer h.mux.Unlock()

	for conn := range h.clients {
		if err := conn.WriteJSON(snapshot); err != nil {
			_ = conn.Close()

			delete(h.clients, conn)
		}
	}
}

func (h *wsHub) closeAll() {
	h.mux.Lock()
	defer h.mux.Unlock()

	for conn := range h.clients {
		_ = conn.Close()
	}

	h.clients = make(map[*websocket.Conn]struct{})
}
