package run

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"log/slog"
	"os"

	"github.com/joho/godotenv"
	"github.com/peterbourgon/ff/v3"
	"github.com/peterbourgon/ff/v3/ffcli"

	"github.com/sig-0/solprice/cmd/env"
	"github.com/sig-0/solprice/server/config"
)

// NewOnceCmd creates the once subcommand, which runs a single refresh
// cycle and prints the snapshot as JSON
func NewOnceCmd() *ffcli.Command {
	cfg := &runCfg{
		config: config.DefaultConfig(),
	}

	fs := flag.NewFlagSet("once", flag.ExitOnError)
	cfg.registerFlags(fs)

	return &ffcli.Command{
		Name:       "once",
		ShortUsage: "once [flags]",
		LongHelp:   "Runs a single refresh cycle and prints the snapshot",
		FlagSet:    fs,
		Exec:       cfg.execOnce,
		Options: []ff.Option{
			ff.WithEnvVars(),
			ff.WithEnvVarPrefix(env.Prefix),
		},
	}
}

func (c *runCfg) execOnce(ctx context.Context, _ []string) error {
	logger := slog.New(slog.NewTextHandler(os.Stderr, nil))

	// Load .env
	if err := godotenv.Load(); err != nil {
		logger.Warn("unable to load .env file")
	}

	o, err := c.buildOrchestrator(logger)
	if err != nil {
		return err
	}

	snapshot := o.RunCycle(ctx)

	encoder := json.NewEncoder(os.Stdout)
	encoder.SetIndent("", "  ")

	if err := encoder.Encode(snapshot); err != nil {
		return fmt.Errorf("unable to encode snapshot, %w", err)
	}

	return nil
}
