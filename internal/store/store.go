package store

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog/log"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
	gormlogger "gorm.io/gorm/logger"

	"github.com/samwatso/gbuwh-calendar/internal/event"
)

// upsertColumns are the mutable content columns overwritten on conflict.
// created_at and the google_* mapping columns are deliberately absent: the
// first is immutable audit state, the rest belong to the sync reconciler.
var upsertColumns = []string{
	"title",
	"description",
	"location",
	"starts_at_utc",
	"ends_at_utc",
	"timezone",
	"url",
	"kind",
	"status",
	"updated_at",
}

// SyncMapping is one calendar-id write-back produced by a sync run.
type SyncMapping struct {
	ID            string
	GoogleEventID string
	SyncedAt      time.Time
}

// Store wraps the relational database holding external_events.
type Store struct {
	db *gorm.DB
}

// New opens a postgres-backed store.
func New(dsn string) (*Store, error) {
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	if err != nil {
		return nil, fmt.Errorf("connecting to database: %w", err)
	}
	return &Store{db: db}, nil
}

// NewWithDB wraps an existing gorm handle.
func NewWithDB(db *gorm.DB) *Store {
	return &Store{db: db}
}

// Migrate creates or updates the external_events table.
func (s *Store) Migrate(ctx context.Context) error {
	if err := s.db.WithContext(ctx).AutoMigrate(&ExternalEvent{}); err != nil {
		return fmt.Errorf("migrating external_events: %w", err)
	}
	return nil
}

// UpsertEvents writes a batch of canonical events as insert-with-conflict-
// update against the (source, source_event_id) unique key. Re-applying the
// same batch changes no row content; only updated_at moves.
func (s *Store) UpsertEvents(ctx context.Context, events []*event.Event) (int, error) {
	if len(events) == 0 {
		return 0, nil
	}

	rows := make([]ExternalEvent, 0, len(events))
	for _, evt := range events {
		rows = append(rows, rowFromEvent(evt))
	}

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "source"}, {Name: "source_event_id"}},
			DoUpdates: clause.AssignmentColumns(upsertColumns),
		}).Create(&rows)
		if res.Error != nil {
			return fmt.Errorf("upserting events: %w", res.Error)
		}
		return nil
	})
	if err != nil {
		return 0, err
	}

	log.Info().Int("events", len(rows)).Msg("Upserted events")
	return len(rows), nil
}

// SyncEligible returns the rows eligible for calendar publication: kind in
// the allow-list, status scheduled or unset, start no further back than the
// look-back window, ordered by start.
func (s *Store) SyncEligible(ctx context.Context, kinds []string, lookback time.Duration) ([]ExternalEvent, error) {
	cutoff := time.Now().UTC().Add(-lookback)

	var rows []ExternalEvent
	err := s.db.WithContext(ctx).
		Where("kind IN ?", kinds).
		Where("(status = ? OR status IS NULL)", "scheduled").
		Where("starts_at_utc >= ?", cutoff).
		Order("starts_at_utc ASC").
		Find(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("querying sync-eligible events: %w", err)
	}
	return rows, nil
}

// SaveSyncMappings persists new or changed calendar mappings in one
// transaction. Rows with unchanged mappings never reach this method, so the
// write-back touches only what actually moved.
func (s *Store) SaveSyncMappings(ctx context.Context, mappings []SyncMapping) error {
	if len(mappings) == 0 {
		return nil
	}

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for _, m := range mappings {
			res := tx.Model(&ExternalEvent{}).
				Where("id = ?", m.ID).
				Updates(map[string]interface{}{
					"google_event_id":       m.GoogleEventID,
					"google_last_synced_at": m.SyncedAt,
				})
			if res.Error != nil {
				return fmt.Errorf("updating mapping for %s: %w", m.ID, res.Error)
			}
		}
		return nil
	})
	if err != nil {
		return err
	}

	log.Info().Int("mappings", len(mappings)).Msg("Saved calendar sync mappings")
	return nil
}
