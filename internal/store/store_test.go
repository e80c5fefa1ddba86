package store

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/samwatso/gbuwh-calendar/internal/event"
)

func TestRowFromEvent(t *testing.T) {
	end := time.Date(2026, time.January, 25, 17, 0, 0, 0, time.UTC)
	evt := &event.Event{
		Source:        "gbuwh",
		SourceEventID: "813",
		Title:         "Winter National Championship",
		Description:   "https://www.gbuwh.co.uk/events/detail/813",
		Location:      "Sheffield",
		StartsAtUTC:   time.Date(2026, time.January, 24, 12, 30, 0, 0, time.UTC),
		EndsAtUTC:     &end,
		Timezone:      "Europe/London",
		URL:           "https://www.gbuwh.co.uk/events/detail/813",
		Kind:          "tournament",
	}

	row := rowFromEvent(evt)

	require.Equal(t, event.DeriveID("gbuwh", "813"), row.ID)
	require.Equal(t, "gbuwh", row.Source)
	require.Equal(t, "813", row.SourceEventID)
	require.NotNil(t, row.Location)
	require.Equal(t, "Sheffield", *row.Location)
	require.NotNil(t, row.Status)
	require.Equal(t, "scheduled", *row.Status)
	require.Equal(t, "public", row.Visibility)
	require.Equal(t, "import", row.Origin)
	require.Nil(t, row.GoogleEventID)
	require.Nil(t, row.GoogleLastSyncedAt)

	// Same event, same row id: the identity never depends on run state.
	again := rowFromEvent(evt)
	require.Equal(t, row.ID, again.ID)
}

func TestRowFromEventOptionalFields(t *testing.T) {
	evt := &event.Event{
		Source:        "gbuwh",
		SourceEventID: "900",
		Title:         "CANCELLED: Club Night",
		StartsAtUTC:   time.Date(2026, time.February, 1, 19, 0, 0, 0, time.UTC),
		Cancelled:     true,
	}

	row := rowFromEvent(evt)

	require.Nil(t, row.Location)
	require.Nil(t, row.EndsAtUTC)
	require.NotNil(t, row.Status)
	require.Equal(t, "cancelled", *row.Status)
}

func TestUpsertColumnsExcludeProtectedState(t *testing.T) {
	// The upsert must never touch audit creation time or the sync mapping
	// columns owned by the calendar reconciler.
	for _, forbidden := range []string{"created_at", "google_event_id", "google_last_synced_at", "id", "source", "source_event_id"} {
		require.NotContains(t, upsertColumns, forbidden)
	}
	for _, wanted := range []string{"title", "starts_at_utc", "updated_at", "status"} {
		require.Contains(t, upsertColumns, wanted)
	}
}

func TestSyncedHelper(t *testing.T) {
	row := ExternalEvent{}
	require.False(t, row.Synced())

	empty := ""
	row.GoogleEventID = &empty
	require.False(t, row.Synced())

	id := "google-123"
	row.GoogleEventID = &id
	require.True(t, row.Synced())
}
