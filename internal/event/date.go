package event

import (
	"strings"
	"time"
)

// Layouts accepted for the Start Date / End Date fields, most common first.
// The source renders UK day-first wall-clock times ("24/01/2026, 12:30").
var dateLayouts = []string{
	"02/01/2006, 15:04",
	"2/1/2006, 15:04",
	"02/01/2006 15:04",
	"2/1/2006 15:04",
	"02/01/2006",
	"2/1/2006",
	"02-01-2006 15:04",
	"02-01-2006",
	"2 January 2006, 15:04",
	"2 January 2006 15:04",
	"2 January 2006",
	"2 Jan 2006 15:04",
	"2 Jan 2006",
}

// ParseDateTime parses a day-first date string as wall-clock time in loc and
// returns the corresponding UTC instant. The second return value is false
// when the string is empty or matches no known layout; callers treat that as
// field absence, not as an error.
func ParseDateTime(s string, loc *time.Location) (time.Time, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, false
	}

	for _, layout := range dateLayouts {
		t, err := time.ParseInLocation(layout, s, loc)
		if err == nil {
			return t.UTC(), true
		}
	}

	return time.Time{}, false
}
