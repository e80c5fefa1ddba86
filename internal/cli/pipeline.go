package cli

import (
	"context"
	"fmt"

	"github.com/rs/zerolog/log"

	"github.com/samwatso/gbuwh-calendar/internal/calendar"
	"github.com/samwatso/gbuwh-calendar/internal/event"
	"github.com/samwatso/gbuwh-calendar/internal/scraper"
	"github.com/samwatso/gbuwh-calendar/internal/store"
)

// newScraper builds a Scraper from the loaded configuration.
func newScraper() (*scraper.Scraper, error) {
	loc, err := cfg.Location()
	if err != nil {
		return nil, err
	}
	return scraper.New(scraper.Config{
		BaseURL:   cfg.Source.BaseURL,
		EventsURL: cfg.Source.EventsURL,
		Source:    cfg.Source.Name,
		Timezone:  loc,
		UserAgent: cfg.Source.UserAgent,
		Timeout:   cfg.Source.Timeout,
	}), nil
}

// openStore connects to the database and migrates the schema when configured.
func openStore(ctx context.Context) (*store.Store, error) {
	if err := cfg.RequireStore(); err != nil {
		return nil, err
	}
	st, err := store.New(cfg.Database.DSN)
	if err != nil {
		return nil, err
	}
	if cfg.Database.AutoMigrate {
		if err := st.Migrate(ctx); err != nil {
			return nil, err
		}
	}
	return st, nil
}

// extractEvents runs the scrape stage shared by extract, upsert and feed.
func extractEvents(ctx context.Context) ([]*event.Event, *scraper.Stats, error) {
	sc, err := newScraper()
	if err != nil {
		return nil, nil, err
	}
	return sc.FetchEvents(ctx)
}

// runUpsert extracts and upserts one batch. Store failures are fatal so a
// partially-written batch is always visible as a failed run.
func runUpsert(ctx context.Context, st *store.Store) error {
	events, stats, err := extractEvents(ctx)
	if err != nil {
		return err
	}
	if len(events) == 0 {
		log.Warn().Msg("No events extracted, nothing to upsert")
		return nil
	}

	if flagDryRun {
		for _, evt := range events {
			log.Info().Str("source_event_id", evt.SourceEventID).Str("title", evt.Title).
				Msg("[dry-run] would upsert event")
		}
		return nil
	}

	upserted, err := st.UpsertEvents(ctx, events)
	if err != nil {
		return fmt.Errorf("upserting events: %w", err)
	}

	log.Info().
		Int("discovered", stats.Discovered).
		Int("extracted", stats.Extracted).
		Int("skipped", stats.Skipped).
		Int("upserted", upserted).
		Msg("Upsert run complete")
	return nil
}

// runSync reconciles sync-eligible rows against the calendar provider and
// persists new or changed mappings. Mapping write-back failures are fatal.
func runSync(ctx context.Context, st *store.Store) error {
	rows, err := st.SyncEligible(ctx, cfg.Sync.Kinds, cfg.Sync.Lookback)
	if err != nil {
		return err
	}
	if len(rows) == 0 {
		log.Info().Msg("No events eligible for calendar sync")
		return nil
	}
	log.Info().Int("events", len(rows)).Msg("Syncing events to Google Calendar")

	var provider calendar.Provider
	if !flagDryRun {
		if err := cfg.RequireGoogle(); err != nil {
			return err
		}
		provider, err = calendar.NewGoogleProvider(ctx, cfg.Google.CalendarID, cfg.Google.CredentialsJSON)
		if err != nil {
			return err
		}
	}

	syncer := calendar.NewSyncer(provider, cfg.Google.DefaultTimezone, flagDryRun)
	result := syncer.SyncAll(ctx, rows)

	if err := st.SaveSyncMappings(ctx, result.Mappings); err != nil {
		return fmt.Errorf("saving sync mappings: %w", err)
	}
	return nil
}
