package cli

import (
	"time"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/samwatso/gbuwh-calendar/internal/feed"
)

func newFeedCmd() *cobra.Command {
	var outputDir string

	cmd := &cobra.Command{
		Use:   "feed",
		Short: "Scrape GBUWH events and write the static ICS feed site",
		RunE: func(cmd *cobra.Command, args []string) error {
			events, stats, err := extractEvents(cmd.Context())
			if err != nil {
				return err
			}

			dir := outputDir
			if dir == "" {
				dir = cfg.Feed.OutputDir
			}

			now := time.Now().UTC()
			ics := feed.Build(events, cfg.Feed.CalendarName, cfg.Source.Timezone, now)

			if flagDryRun {
				log.Info().Int("events", len(events)).Str("dir", dir).
					Msg("[dry-run] would write feed site")
				return nil
			}

			if err := feed.WriteSite(dir, cfg.Feed.CalendarName, ics, len(events), now); err != nil {
				return err
			}

			log.Info().
				Int("discovered", stats.Discovered).
				Int("events", len(events)).
				Str("dir", dir).
				Msg("Wrote feed site")
			return nil
		},
	}

	cmd.Flags().StringVarP(&outputDir, "output-dir", "o", "", "Output directory (default: feed.output_dir)")
	return cmd
}
