package cli

import (
	"github.com/spf13/cobra"
)

func newUpsertCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "upsert",
		Short: "Scrape GBUWH events and upsert them into the store",
		Long: `Scrapes the GBUWH website and writes every canonical event into the
external_events table. Rows are keyed by (source, source_event_id); existing
rows are overwritten in place, so running upsert repeatedly never creates
duplicates.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			st, err := openStore(ctx)
			if err != nil {
				return err
			}
			return runUpsert(ctx, st)
		},
	}
}
