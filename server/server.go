package server

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/httplog/v3"
	"github.com/rs/cors"
	"golang.org/x/sync/errgroup"

	"github.com/sig-0/solprice/server/config"
	"github.com/sig-0/solprice/types"
)

var noopLogger = slog.New(slog.NewTextHandler(io.Discard, nil))

// Server exposes the latest aggregation snapshot over HTTP, and streams
// fresh snapshots to WebSocket consumers
type Server struct {
	logger *slog.Logger
	config *config.Config

	source  SnapshotSource
	updates <-chan *types.Snapshot

	hub *wsHub
	mux *chi.Mux
}

// New creates a new server instance
func New(source SnapshotSource, opts ...Option) (*Server, error) {
	s := &Server{
		logger: noopLogger,
		source: source,
		config: config.DefaultConfig(),
		hub:    newWSHub(),
		mux:    chi.NewMux(),
	}

	// Apply the options
	for _, opt := range opts {
		opt(s)
	}

	// Validate the configuration
	if err := config.ValidateConfig(s.config); err != nil {
		return nil, fmt.Errorf("invalid configuration, %w", err)
	}

	// Set up the CORS middleware
	if s.config.CORSConfig != nil {
		corsMiddleware := cors.New(cors.Options{
			AllowedOrigins: s.config.CORSConfig.AllowedOrigins,
			AllowedMethods: s.config.CORSConfig.AllowedMethods,
			AllowedHeaders: s.config.CORSConfig.AllowedHeaders,
		})

		s.mux.Use(corsMiddleware.Handler)
	}

	s.mux.Use(httplog.RequestLogger(s.logger, &httplog.Options{
		Level:         slog.LevelInfo,
		Schema:        httplog.SchemaOTEL,
		RecoverPanics: true,
		Skip: func(_ *http.Request, respStatus int) bool {
			return respStatus == 404 || respStatus == 405
		},
	}))

	// Register the health check handler
	s.mux.Get("/health", func(writer http.ResponseWriter, _ *http.Request) {
		writer.WriteHeader(http.StatusOK)
	})

	// Register the snapshot endpoints
	s.mux.Get("/api/snapshot", s.Snapshot)
	s.mux.Get("/api/ranking", s.Ranking)
	s.mux.Get("/api/quotes", s.Quotes)
	s.mux.Get("/api/p2p", s.P2P)

	// Register the WebSocket stream
	s.mux.Get("/ws", s.hub.handleWS)

	return s, nil
}

// Serve serves the solprice API [BLOCKING]
func (s *Server) Serve(ctx context.Context) error {
	server := &http.Server{
		Addr:              s.config.ListenAddress,
		Handler:           s.mux,
		ReadHeaderTimeout: 60 * time.Second,
	}

	group, gCtx := errgroup.WithContext(ctx)

	group.Go(func() error {
		defer s.logger.Info("server shut down")

		ln, err := net.Listen("tcp", server.Addr)
		if err != nil {
			return err
		}

		s.logger.Info(
			fmt.Sprintf(
				"server started at %s",
				ln.Addr().String(),
			),
		)

		if err := server.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}

		return nil
	})

	group.Go(func() error {
		// Push every fresh snapshot to WebSocket consumers
		s.hub.broadcast(gCtx, s.updates)

		return nil
	})

	group.Go(func() error {
		<-gCtx.Done()

		s.logger.Info("server to be shutdown")

		wsCtx, cancel := context.WithTimeout(context.Background(), time.Second*30)
		defer cancel()

		return server.Shutdown(wsCtx)
	})

	return group.Wait()
}
