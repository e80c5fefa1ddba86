package store

import (
	"time"

	"github.com/samwatso/gbuwh-calendar/internal/event"
)

// ExternalEvent is a persisted projection of a canonical event plus the
// calendar sync mapping columns. The extraction pipeline writes the content
// columns; the calendar sync reconciler is the only writer of the google_*
// columns.
type ExternalEvent struct {
	ID            string `gorm:"column:id;primaryKey;size:36"`
	Source        string `gorm:"column:source;size:64;not null;uniqueIndex:idx_external_events_source_event"`
	SourceEventID string `gorm:"column:source_event_id;size:128;not null;uniqueIndex:idx_external_events_source_event"`

	Title       string     `gorm:"column:title;not null"`
	Description string     `gorm:"column:description"`
	Location    *string    `gorm:"column:location"`
	StartsAtUTC time.Time  `gorm:"column:starts_at_utc;not null;index"`
	EndsAtUTC   *time.Time `gorm:"column:ends_at_utc"`
	Timezone    string     `gorm:"column:timezone;size:64"`
	URL         string     `gorm:"column:url"`

	Kind       string  `gorm:"column:kind;size:32;index"`
	Status     *string `gorm:"column:status;size:32"`
	Visibility string  `gorm:"column:visibility;size:32;default:public"`
	Origin     string  `gorm:"column:origin;size:32;default:import"`

	GoogleEventID      *string    `gorm:"column:google_event_id;size:128"`
	GoogleLastSyncedAt *time.Time `gorm:"column:google_last_synced_at"`

	CreatedAt time.Time `gorm:"column:created_at"`
	UpdatedAt time.Time `gorm:"column:updated_at"`
}

// TableName overrides gorm's pluralization.
func (ExternalEvent) TableName() string { return "external_events" }

// Synced reports whether the row carries a calendar mapping.
func (e *ExternalEvent) Synced() bool {
	return e.GoogleEventID != nil && *e.GoogleEventID != ""
}

// rowFromEvent projects a canonical event onto its store row. The id is
// re-derived from the unique key on every call, never read back from the
// database; that keeps the upsert independent of any existing state.
func rowFromEvent(evt *event.Event) ExternalEvent {
	row := ExternalEvent{
		ID:            event.DeriveID(evt.Source, evt.SourceEventID),
		Source:        evt.Source,
		SourceEventID: evt.SourceEventID,
		Title:         evt.Title,
		Description:   evt.Description,
		StartsAtUTC:   evt.StartsAtUTC,
		EndsAtUTC:     evt.EndsAtUTC,
		Timezone:      evt.Timezone,
		URL:           evt.URL,
		Kind:          evt.Kind,
		Visibility:    "public",
		Origin:        "import",
	}
	if evt.Location != "" {
		loc := evt.Location
		row.Location = &loc
	}
	status := evt.Status()
	row.Status = &status
	return row
}
