package cli

import (
	"github.com/spf13/cobra"
)

func newSyncCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "sync",
		Short: "Publish sync-eligible store rows to Google Calendar",
		Long: `Reads sync-eligible events from the store and creates or updates the
matching Google Calendar entries. Calendar ids are written back to the store,
so each store row stays bound to one calendar entry across runs; entries
deleted out of band on the calendar are recreated and rebound.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			st, err := openStore(ctx)
			if err != nil {
				return err
			}
			return runSync(ctx, st)
		},
	}
}
