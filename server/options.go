package server

import (
	"log/slog"

	"github.com/sig-0/solprice/server/config"
	"github.com/sig-0/solprice/types"
)

type Option func(s *Server)

// WithLogger specifies the logger for the server
func WithLogger(l *slog.Logger) Option {
	return func(s *Server) {
		s.logger = l
	}
}

// WithConfig specifies the config for the server
func WithConfig(c *config.Config) Option {
	return func(s *Server) {
		s.config = c
	}
}

// WithUpdates specifies the snapshot feed streamed to WebSocket consumers
func WithUpdates(ch <-chan *types.Snapshot) Option {
	return func(s *Server) {
		s.updates = ch
	}
}
