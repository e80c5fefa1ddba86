package cli

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
)

func newExtractCmd() *cobra.Command {
	var output string

	cmd := &cobra.Command{
		Use:   "extract",
		Short: "Scrape GBUWH events and print them as normalized JSON",
		RunE: func(cmd *cobra.Command, args []string) error {
			events, stats, err := extractEvents(cmd.Context())
			if err != nil {
				return err
			}

			data, err := json.MarshalIndent(events, "", "  ")
			if err != nil {
				return fmt.Errorf("encoding events: %w", err)
			}

			if output != "" {
				if err := os.WriteFile(output, data, 0644); err != nil {
					return fmt.Errorf("writing output file: %w", err)
				}
				log.Info().Int("events", len(events)).Str("path", output).Msg("Wrote events")
			} else {
				fmt.Fprintln(cmd.OutOrStdout(), string(data))
			}

			log.Info().
				Int("discovered", stats.Discovered).
				Int("extracted", stats.Extracted).
				Int("skipped", stats.Skipped).
				Msg("Extract run complete")
			return nil
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "Output JSON file path (default: stdout)")
	return cmd
}
