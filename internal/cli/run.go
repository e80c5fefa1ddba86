package cli

import (
	"context"

	"github.com/robfig/cron/v3"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
)

func newRunCmd() *cobra.Command {
	var schedule string

	cmd := &cobra.Command{
		Use:   "run",
		Short: "Run the full pipeline: upsert then calendar sync",
		Long: `Runs upsert followed by sync as one pipeline pass. With --schedule the
process stays up and repeats the pass on a cron schedule; SIGINT/SIGTERM
cancels the in-flight pass and exits. Aborting mid-pass is always safe:
identities are deterministic, so the next pass converges on the same rows
and calendar entries.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			if schedule == "" {
				return runPipeline(ctx)
			}

			c := cron.New()
			if _, err := c.AddFunc(schedule, func() {
				if err := runPipeline(ctx); err != nil {
					log.Error().Err(err).Msg("Scheduled pipeline run failed")
				}
			}); err != nil {
				return err
			}

			log.Info().Str("schedule", schedule).Msg("Starting scheduled pipeline")
			c.Start()

			<-ctx.Done()
			log.Info().Msg("Shutting down, waiting for running jobs")
			<-c.Stop().Done()
			return nil
		},
	}

	cmd.Flags().StringVar(&schedule, "schedule", "", `Cron schedule for daemon mode (e.g. "0 6 * * *")`)
	return cmd
}

// runPipeline executes one upsert+sync pass against a single store handle.
func runPipeline(ctx context.Context) error {
	st, err := openStore(ctx)
	if err != nil {
		return err
	}
	if err := runUpsert(ctx, st); err != nil {
		return err
	}
	return runSync(ctx, st)
}
