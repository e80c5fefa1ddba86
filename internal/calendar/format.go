package calendar

import (
	"time"

	gcal "google.golang.org/api/calendar/v3"

	"github.com/samwatso/gbuwh-calendar/internal/store"
)

// defaultDuration is synthesized when a row has a start but no end.
const defaultDuration = time.Hour

// FormatEvent maps a store row onto the provider payload. Start and end carry
// the stored UTC instant plus the event's own zone name so the provider
// renders local wall-clock times; defaultTimezone applies only to rows whose
// source zone was lost.
func FormatEvent(row *store.ExternalEvent, defaultTimezone string) *gcal.Event {
	tz := row.Timezone
	if tz == "" {
		tz = defaultTimezone
	}

	title := row.Title
	if title == "" {
		title = "Untitled Event"
	}

	ev := &gcal.Event{
		Summary:     title,
		Description: row.Description,
		Start: &gcal.EventDateTime{
			DateTime: row.StartsAtUTC.UTC().Format(time.RFC3339),
			TimeZone: tz,
		},
	}
	if row.Location != nil {
		ev.Location = *row.Location
	}

	end := row.StartsAtUTC.Add(defaultDuration)
	if row.EndsAtUTC != nil {
		end = *row.EndsAtUTC
	}
	ev.End = &gcal.EventDateTime{
		DateTime: end.UTC().Format(time.RFC3339),
		TimeZone: tz,
	}

	return ev
}
