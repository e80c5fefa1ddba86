package calendar

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/samwatso/gbuwh-calendar/internal/store"
)

// Syncer runs the per-row create/update state machine against a Provider.
type Syncer struct {
	provider        Provider
	defaultTimezone string
	dryRun          bool
}

// Result summarizes one sync run. Mappings holds only new or changed
// external-id assignments; unchanged rows produce no write-back.
type Result struct {
	Created  int
	Updated  int
	Failed   int
	Mappings []store.SyncMapping
}

// NewSyncer builds a Syncer. In dry-run mode intended provider calls are
// logged but not executed and no mappings are produced.
func NewSyncer(provider Provider, defaultTimezone string, dryRun bool) *Syncer {
	return &Syncer{
		provider:        provider,
		defaultTimezone: defaultTimezone,
		dryRun:          dryRun,
	}
}

// SyncAll processes every row sequentially. A row's provider failure is
// counted and logged; it never aborts the remaining rows.
func (s *Syncer) SyncAll(ctx context.Context, rows []store.ExternalEvent) *Result {
	result := &Result{}
	now := time.Now().UTC()

	for i := range rows {
		row := &rows[i]

		googleID, created, err := s.syncOne(ctx, row)
		if err != nil {
			result.Failed++
			log.Error().Err(err).Str("id", row.ID).Str("title", row.Title).Msg("Failed to sync event")
			continue
		}
		if googleID == "" {
			// Dry-run create: nothing was assigned.
			result.Created++
			continue
		}

		if created {
			result.Created++
		} else {
			result.Updated++
		}

		if created || !row.Synced() || *row.GoogleEventID != googleID {
			result.Mappings = append(result.Mappings, store.SyncMapping{
				ID:            row.ID,
				GoogleEventID: googleID,
				SyncedAt:      now,
			})
		}
	}

	log.Info().
		Int("created", result.Created).
		Int("updated", result.Updated).
		Int("failed", result.Failed).
		Int("mappings", len(result.Mappings)).
		Msg("Calendar sync complete")

	return result
}

// syncOne returns the external id now holding the row's content and whether
// that entry was newly created this run.
func (s *Syncer) syncOne(ctx context.Context, row *store.ExternalEvent) (string, bool, error) {
	payload := FormatEvent(row, s.defaultTimezone)

	if row.Synced() {
		googleID := *row.GoogleEventID

		if s.dryRun {
			log.Info().Str("id", row.ID).Str("google_event_id", googleID).Str("title", row.Title).
				Msg("[dry-run] would update calendar event")
			return googleID, false, nil
		}

		res, err := s.provider.Update(ctx, googleID, payload)
		if err == nil {
			return res.Id, false, nil
		}
		if !IsNotFound(err) {
			return "", false, fmt.Errorf("updating %s: %w", googleID, err)
		}

		// Deleted out of band: recreate immediately. The stale mapping is
		// overwritten by the new id, never persisted as cleared.
		log.Warn().Str("id", row.ID).Str("google_event_id", googleID).Str("title", row.Title).
			Msg("Calendar event not found, recreating")
		res, err = s.provider.Insert(ctx, payload)
		if err != nil {
			return "", false, fmt.Errorf("recreating after not-found: %w", err)
		}
		return res.Id, true, nil
	}

	if s.dryRun {
		log.Info().Str("id", row.ID).Str("title", row.Title).Msg("[dry-run] would create calendar event")
		return "", false, nil
	}

	res, err := s.provider.Insert(ctx, payload)
	if err != nil {
		return "", false, fmt.Errorf("creating: %w", err)
	}
	return res.Id, true, nil
}
