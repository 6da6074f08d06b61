package ingest

import (
	"log/slog"
	"time"
)

type Option func(o *Orchestrator)

// WithLogger specifies the logger for the orchestrator
func WithLogger(l *slog.Logger) Option {
	return func(o *Orchestrator) {
		o.logger = l
	}
}

// WithOrderSize specifies the order size (USD) used for slippage simulation.
// Defaults to $1000
func WithOrderSize(size float64) Option {
	return func(o *Orchestrator) {
		o.orderSize = size
	}
}

// WithRefreshInterval specifies the pause between refresh cycles.
// Defaults to 15s
func WithRefreshInterval(interval time.Duration) Option {
	return func(o *Orchestrator) {
		o.refreshInterval = interval
	}
}

// WithChainProber specifies the auxiliary chain-status prober
func WithChainProber(p ChainProber) Option {
	return func(o *Orchestrator) {
		o.chain = p
	}
}

// WithMetaLookup specifies the venue metadata lookup used for
// degraded placeholder quotes
func WithMetaLookup(fn MetaLookup) Option {
	return func(o *Orchestrator) {
		o.metaFn = fn
	}
}
