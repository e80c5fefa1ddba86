// Package cli wires the gbuwh-calendar commands: extract, upsert, sync, feed
// and run. Fatal conditions (listing fetch, store writes, missing required
// configuration) surface as command errors and a non-zero exit; per-item
// failures are only counted in the run summary.
package cli

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/samwatso/gbuwh-calendar/internal/config"
)

const (
	ExitSuccess = 0
	ExitError   = 1
)

var (
	cfgFile     string
	flagDryRun  bool
	flagVerbose bool
	cfg         config.Config
)

// NewRootCmd creates the root command with all subcommands attached.
func NewRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "gbuwh-calendar",
		Short: "Extract GBUWH events and keep downstream calendars in sync",
		Long: `gbuwh-calendar scrapes events from the GBUWH website, normalizes them
into canonical records with deterministic identities, upserts them into a
relational store, and publishes them to Google Calendar and an ICS feed.

Repeated runs are idempotent: the same source event always maps to the same
store row and the same calendar entry.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return initConfig()
		},
	}

	cmd.PersistentFlags().StringVar(&cfgFile, "config", "", "Config file (default: ./config.yaml if present)")
	cmd.PersistentFlags().BoolVar(&flagDryRun, "dry-run", false, "Log intended writes without executing them")
	cmd.PersistentFlags().BoolVarP(&flagVerbose, "verbose", "v", false, "Enable debug logging")

	cmd.AddCommand(newExtractCmd())
	cmd.AddCommand(newUpsertCmd())
	cmd.AddCommand(newSyncCmd())
	cmd.AddCommand(newFeedCmd())
	cmd.AddCommand(newRunCmd())

	return cmd
}

// Execute runs the CLI, inheriting ctx for run-level cancellation.
func Execute(ctx context.Context) {
	if err := NewRootCmd().ExecuteContext(ctx); err != nil {
		log.Error().Err(err).Msg("Run failed")
		os.Exit(ExitError)
	}
}

func initConfig() error {
	var err error
	cfg, err = config.Load(cfgFile)
	if err != nil {
		return fmt.Errorf("loading configuration: %w", err)
	}
	setupLogging(cfg.Logging)
	if flagDryRun {
		log.Info().Msg("Dry-run mode enabled, no writes will be executed")
	}
	return nil
}

func setupLogging(lc config.LoggingConfig) {
	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix

	level, err := zerolog.ParseLevel(strings.ToLower(lc.Level))
	if err != nil {
		level = zerolog.InfoLevel
	}
	if flagVerbose {
		level = zerolog.DebugLevel
	}
	zerolog.SetGlobalLevel(level)

	if lc.Format != "json" {
		log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})
	}
}
