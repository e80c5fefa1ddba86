package feed

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/samwatso/gbuwh-calendar/internal/event"
)

func sampleEvents() []*event.Event {
	end := time.Date(2026, time.January, 25, 17, 0, 0, 0, time.UTC)
	return []*event.Event{
		{
			Source:        "gbuwh",
			SourceEventID: "813",
			Title:         "Winter National Championship",
			Description:   "https://www.gbuwh.co.uk/events/detail/813\n\nTwo day competition.",
			Location:      "Sheffield",
			StartsAtUTC:   time.Date(2026, time.January, 24, 12, 30, 0, 0, time.UTC),
			EndsAtUTC:     &end,
			Timezone:      "Europe/London",
			URL:           "https://www.gbuwh.co.uk/events/detail/813",
		},
		{
			Source:        "gbuwh",
			SourceEventID: "901",
			Title:         "CANCELLED: Club Night",
			StartsAtUTC:   time.Date(2026, time.February, 1, 19, 0, 0, 0, time.UTC),
			Timezone:      "Europe/London",
			URL:           "https://www.gbuwh.co.uk/events/detail/901",
			Cancelled:     true,
		},
	}
}

func TestBuild(t *testing.T) {
	now := time.Date(2026, time.January, 1, 0, 0, 0, 0, time.UTC)
	ics := Build(sampleEvents(), "GBUWH Events", "Europe/London", now)

	for _, want := range []string{
		"BEGIN:VCALENDAR",
		"PRODID:-//GBUWH Events Feed//gbuwh-calendar//EN",
		"X-WR-CALNAME:GBUWH Events",
		"X-WR-TIMEZONE:Europe/London",
		"UID:813@gbuwh-calendar",
		"UID:901@gbuwh-calendar",
		"SUMMARY:Winter National Championship",
		"DTSTART:20260124T123000Z",
		"DTEND:20260125T170000Z",
		"LOCATION:Sheffield",
		"STATUS:CANCELLED",
		"END:VCALENDAR",
	} {
		if !strings.Contains(ics, want) {
			t.Errorf("serialized feed missing %q", want)
		}
	}

	// Only the cancelled entry carries a status marker.
	if got := strings.Count(ics, "STATUS:CANCELLED"); got != 1 {
		t.Errorf("expected 1 cancelled status, got %d", got)
	}
	if got := strings.Count(ics, "BEGIN:VEVENT"); got != 2 {
		t.Errorf("expected 2 events, got %d", got)
	}
}

func TestBuildSkipsZeroStart(t *testing.T) {
	ics := Build([]*event.Event{{SourceEventID: "1", Title: "No start"}}, "GBUWH Events", "Europe/London", time.Now())

	if strings.Contains(ics, "BEGIN:VEVENT") {
		t.Error("event without start must not reach the feed")
	}
}

func TestWriteSite(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "site")
	now := time.Date(2026, time.January, 1, 12, 0, 0, 0, time.UTC)

	ics := Build(sampleEvents(), "GBUWH Events", "Europe/London", now)
	if err := WriteSite(dir, "GBUWH Events Feed", ics, 2, now); err != nil {
		t.Fatalf("WriteSite failed: %v", err)
	}

	data, err := os.ReadFile(filepath.Join(dir, "calendar.ics"))
	if err != nil {
		t.Fatalf("reading calendar.ics: %v", err)
	}
	if !strings.Contains(string(data), "BEGIN:VCALENDAR") {
		t.Error("calendar.ics does not look like an iCalendar file")
	}

	index, err := os.ReadFile(filepath.Join(dir, "index.html"))
	if err != nil {
		t.Fatalf("reading index.html: %v", err)
	}
	for _, want := range []string{"GBUWH Events Feed", "calendar.ics", "Events: 2", "2026-01-01 12:00 UTC"} {
		if !strings.Contains(string(index), want) {
			t.Errorf("index.html missing %q", want)
		}
	}
}
