package event

import (
	"crypto/sha1"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Event is a normalized, UTC-timestamped event record independent of the
// source page's formatting. StartsAtUTC is always set; an event without a
// parsable start never becomes an Event.
type Event struct {
	Source        string     `json:"source"`
	SourceEventID string     `json:"source_event_id"`
	Title         string     `json:"title"`
	Description   string     `json:"description"`
	Location      string     `json:"location,omitempty"`
	StartsAtUTC   time.Time  `json:"starts_at_utc"`
	EndsAtUTC     *time.Time `json:"ends_at_utc,omitempty"`
	Timezone      string     `json:"timezone"`
	URL           string     `json:"url"`
	Kind          string     `json:"kind"`
	Cancelled     bool       `json:"cancelled,omitempty"`
}

// DeriveID returns the stable row id for a (source, sourceEventID) pair as an
// RFC 4122 version 5 UUID in the URL namespace. The derivation is a pure
// function of its inputs: recomputing it in a later run yields the same value
// bit for bit.
func DeriveID(source, sourceEventID string) string {
	return uuid.NewSHA1(uuid.NameSpaceURL, []byte(source+":"+sourceEventID)).String()
}

// FallbackID derives a source event id from document content for detail pages
// whose address carries no recognizable numeric id. Hashing title plus start
// instant keeps the id stable across runs, so such events still upsert
// instead of duplicating.
func FallbackID(title string, startsAt time.Time) string {
	h := sha1.New()
	h.Write([]byte(strings.ToLower(strings.TrimSpace(title)) + "|" + startsAt.UTC().Format(time.RFC3339)))
	return fmt.Sprintf("%x", h.Sum(nil))
}

// IsCancelledTitle reports whether a title marks the event as cancelled.
// The source has no structured cancellation flag; organizers prefix the title.
func IsCancelledTitle(title string) bool {
	return strings.HasPrefix(strings.ToLower(strings.TrimSpace(title)), "cancelled")
}

// BuildDescription assembles the canonical description from the detail page
// address, the optional event type and the optional overview text. Present
// parts are separated by blank lines; absent parts leave no empty separators.
func BuildDescription(url, eventType, overview string) string {
	parts := []string{url}
	if eventType != "" {
		parts = append(parts, "Type: "+eventType)
	}
	if overview != "" {
		parts = append(parts, overview)
	}
	return strings.Join(parts, "\n\n")
}

// KindFromType maps the free-text "Type of event" field onto the closed kind
// vocabulary used for calendar sync eligibility.
func KindFromType(eventType string) string {
	t := strings.ToLower(strings.TrimSpace(eventType))
	switch {
	case t == "":
		return "other"
	case strings.Contains(t, "tournament"), strings.Contains(t, "competition"), strings.Contains(t, "championship"):
		return "tournament"
	case strings.Contains(t, "ladies"), strings.Contains(t, "women"):
		return "ladies"
	case strings.Contains(t, "training"), strings.Contains(t, "camp"), strings.Contains(t, "session"):
		return "training"
	case strings.Contains(t, "social"):
		return "social"
	default:
		return "other"
	}
}

// Status returns the store status for the event, derived from the
// cancellation heuristic.
func (e *Event) Status() string {
	if e.Cancelled {
		return "cancelled"
	}
	return "scheduled"
}
