// Package feed builds the passive distribution artifact: an iCalendar file
// plus a small index page, generated straight from canonical events.
package feed

import (
	"fmt"
	"time"

	ical "github.com/arran4/golang-ical"

	"github.com/samwatso/gbuwh-calendar/internal/event"
)

const (
	prodID    = "-//GBUWH Events Feed//gbuwh-calendar//EN"
	uidSuffix = "@gbuwh-calendar"
)

// Build serializes events into an iCalendar document. Each entry's UID is the
// stable compound identifier <source_event_id>@gbuwh-calendar, so regenerated
// feeds update rather than duplicate entries in subscribed clients.
func Build(events []*event.Event, calendarName, timezone string, now time.Time) string {
	cal := ical.NewCalendar()
	cal.SetMethod(ical.MethodPublish)
	cal.SetProductId(prodID)
	cal.SetVersion("2.0")
	cal.SetXWRCalName(calendarName)
	cal.SetXWRTimezone(timezone)

	for _, evt := range events {
		if evt.StartsAtUTC.IsZero() {
			continue
		}

		ve := cal.AddEvent(fmt.Sprintf("%s%s", evt.SourceEventID, uidSuffix))
		ve.SetDtStampTime(now.UTC())
		ve.SetSummary(evt.Title)
		ve.SetStartAt(evt.StartsAtUTC)
		if evt.EndsAtUTC != nil {
			ve.SetEndAt(*evt.EndsAtUTC)
		}
		if evt.Location != "" {
			ve.SetLocation(evt.Location)
		}
		ve.SetURL(evt.URL)
		ve.SetDescription(evt.Description)
		if evt.Cancelled {
			ve.SetStatus(ical.ObjectStatusCancelled)
		}
	}

	return cal.Serialize()
}
