package run

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/peterbourgon/ff/v3"
	"github.com/peterbourgon/ff/v3/ffcli"
	"golang.org/x/sync/errgroup"

	"github.com/sig-0/solprice/cmd/env"
	"github.com/sig-0/solprice/httpclient"
	"github.com/sig-0/solprice/ingest"
	"github.com/sig-0/solprice/ranking"
	"github.com/sig-0/solprice/server"
	"github.com/sig-0/solprice/server/config"
	"github.com/sig-0/solprice/solana"
)

// runCfg wraps the aggregation run configuration
type runCfg struct {
	config *config.Config

	configPath string

	refreshInterval time.Duration
	orderSize       float64
	ratePerSecond   float64
	rpcURL          string
}

// NewRunCmd creates the run subcommand, which serves the aggregation
// API while refreshing venue prices on an interval
func NewRunCmd() *ffcli.Command {
	cfg := &runCfg{
		config: config.DefaultConfig(),
	}

	fs := flag.NewFlagSet("run", flag.ExitOnError)
	cfg.registerFlags(fs)

	return &ffcli.Command{
		Name:       "run",
		ShortUsage: "run [flags]",
		LongHelp:   "Serves the solprice API, refreshing venue prices continuously",
		FlagSet:    fs,
		Exec:       cfg.exec,
		Options: []ff.Option{
			// Allow using ENV variables
			ff.WithEnvVars(),
			ff.WithEnvVarPrefix(env.Prefix),
		},
	}
}

func (c *runCfg) registerFlags(fs *flag.FlagSet) {
	fs.StringVar(
		&c.config.ListenAddress,
		"listen",
		config.DefaultListenAddress,
		"the IP:PORT URL for the API server",
	)

	fs.StringVar(
		&c.configPath,
		"config",
		"",
		"the path to the server TOML configuration, if any",
	)

	fs.DurationVar(
		&c.refreshInterval,
		"refresh",
		ingest.DefaultRefreshInterval,
		"the pause between refresh cycles",
	)

	fs.Float64Var(
		&c.orderSize,
		"order-size",
		ranking.DefaultOrderSizeUSD,
		"the order size (USD) used for slippage simulation",
	)

	fs.Float64Var(
		&c.ratePerSecond,
		"rate",
		httpclient.DefaultRatePerSecond,
		"the global outbound HTTP call rate (calls per second)",
	)

	fs.StringVar(
		&c.rpcURL,
		"solana-rpc-url",
		"",
		"the Solana RPC endpoint for the chain-status probe",
	)
}

// buildOrchestrator wires the shared client, the adapter set and the
// chain prober into a ready orchestrator
func (c *runCfg) buildOrchestrator(logger *slog.Logger) (*ingest.Orchestrator, error) {
	client := httpclient.New(
		httpclient.WithLogger(logger),
		httpclient.WithRatePerSecond(c.ratePerSecond),
	)

	rpcURL := c.rpcURL
	if rpcURL == "" {
		rpcURL = os.Getenv("SOLANA_RPC_URL")
	}

	o := ingest.New(
		client,
		ingest.WithLogger(logger),
		ingest.WithRefreshInterval(c.refreshInterval),
		ingest.WithOrderSize(c.orderSize),
		ingest.WithChainProber(solana.NewRPC(rpcURL)),
	)

	for _, adapter := range defaultQuoteAdapters() {
		if err := o.RegisterQuoteAdapter(adapter); err != nil {
			return nil, fmt.Errorf("unable to register quote adapter, %w", err)
		}
	}

	for _, adapter := range defaultOfferAdapters() {
		if err := o.RegisterOfferAdapter(adapter); err != nil {
			return nil, fmt.Errorf("unable to register offer adapter, %w", err)
		}
	}

	return o, nil
}

func (c *runCfg) exec(ctx context.Context, _ []string) error {
	// Read the server configuration, if any
	if c.configPath != "" {
		serverCfg, err := config.Read(c.configPath)
		if err != nil {
			return fmt.Errorf("unable to read server config, %w", err)
		}

		c.config = serverCfg
	}

	logger := slog.New(slog.NewTextHandler(os.Stdout, nil))

	// Load .env
	if err := godotenv.Load(); err != nil {
		logger.Warn("unable to load .env file")
	}

	o, err := c.buildOrchestrator(logger)
	if err != nil {
		return err
	}

	s, err := server.New(
		o,
		server.WithLogger(logger),
		server.WithConfig(c.config),
		server.WithUpdates(o.Subscribe()),
	)
	if err != nil {
		return fmt.Errorf("unable to create server, %w", err)
	}

	runCtx, cancelFn := signal.NotifyContext(
		ctx,
		os.Interrupt,
		syscall.SIGINT,
		syscall.SIGTERM,
		syscall.SIGQUIT,
	)
	defer cancelFn()

	group, gCtx := errgroup.WithContext(runCtx)

	group.Go(func() error {
		return o.Start(gCtx)
	})

	group.Go(func() error {
		return s.Serve(gCtx)
	})

	return group.Wait()
}
