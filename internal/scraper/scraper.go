package scraper

import (
	"context"
	"fmt"
	"net/http"
	"regexp"
	"sort"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/rs/zerolog/log"
	"golang.org/x/net/html"

	"github.com/samwatso/gbuwh-calendar/internal/event"
)

const (
	DefaultBaseURL   = "https://www.gbuwh.co.uk"
	DefaultEventsURL = "https://www.gbuwh.co.uk/events"
	DefaultSource    = "gbuwh"
	DefaultUserAgent = "gbuwh-calendar-bot/1.0 (github.com/samwatso/gbuwh-calendar)"
	DefaultTimeout   = 30 * time.Second
)

// detailPathPattern recognizes detail-page addresses and captures the stable
// numeric event id: /events/detail/813 -> "813".
var detailPathPattern = regexp.MustCompile(`/events/detail/(\d+)`)

// Config carries the scraper's construction parameters. Zero values fall back
// to the gbuwh.co.uk defaults.
type Config struct {
	BaseURL   string
	EventsURL string
	Source    string
	Timezone  *time.Location
	UserAgent string
	Timeout   time.Duration
}

// Scraper fetches and normalizes GBUWH events.
type Scraper struct {
	client    *http.Client
	baseURL   string
	eventsURL string
	source    string
	tz        *time.Location
	userAgent string
}

// Stats summarizes one extraction run.
type Stats struct {
	Discovered int `json:"discovered"`
	Extracted  int `json:"extracted"`
	Skipped    int `json:"skipped"`
}

// New creates a Scraper from cfg, filling unset fields with defaults.
func New(cfg Config) *Scraper {
	if cfg.BaseURL == "" {
		cfg.BaseURL = DefaultBaseURL
	}
	if cfg.EventsURL == "" {
		cfg.EventsURL = DefaultEventsURL
	}
	if cfg.Source == "" {
		cfg.Source = DefaultSource
	}
	if cfg.Timezone == nil {
		cfg.Timezone = time.UTC
	}
	if cfg.UserAgent == "" {
		cfg.UserAgent = DefaultUserAgent
	}
	if cfg.Timeout == 0 {
		cfg.Timeout = DefaultTimeout
	}

	return &Scraper{
		client:    &http.Client{Timeout: cfg.Timeout},
		baseURL:   strings.TrimSuffix(cfg.BaseURL, "/"),
		eventsURL: cfg.EventsURL,
		source:    cfg.Source,
		tz:        cfg.Timezone,
		userAgent: cfg.UserAgent,
	}
}

// FetchEvents crawls the listing and normalizes every discovered detail page.
// Per-page failures are logged and skipped; a listing fetch failure is fatal.
// The returned events follow the listing's sorted order.
func (s *Scraper) FetchEvents(ctx context.Context) ([]*event.Event, *Stats, error) {
	links, err := s.DetailLinks(ctx)
	if err != nil {
		return nil, nil, fmt.Errorf("fetching events listing: %w", err)
	}

	stats := &Stats{Discovered: len(links)}
	log.Info().Int("links", len(links)).Str("url", s.eventsURL).Msg("Discovered event detail links")

	events := make([]*event.Event, 0, len(links))
	for _, link := range links {
		evt, err := s.FetchDetail(ctx, link)
		if err != nil {
			log.Warn().Err(err).Str("url", link).Msg("Skipping event detail page")
			stats.Skipped++
			continue
		}
		if evt == nil {
			// No parsable start instant; not canonical.
			log.Warn().Str("url", link).Msg("Skipping event without start date")
			stats.Skipped++
			continue
		}
		events = append(events, evt)
		stats.Extracted++
	}

	log.Info().Int("extracted", stats.Extracted).Int("skipped", stats.Skipped).Msg("Extraction complete")
	return events, stats, nil
}

// DetailLinks fetches the listing page and returns the deduplicated, sorted
// absolute addresses of every event detail page it references.
func (s *Scraper) DetailLinks(ctx context.Context) ([]string, error) {
	doc, err := s.get(ctx, s.eventsURL)
	if err != nil {
		return nil, err
	}
	return s.parseListing(doc), nil
}

// parseListing extracts detail links from a parsed listing document.
func (s *Scraper) parseListing(doc *goquery.Document) []string {
	seen := make(map[string]struct{})
	doc.Find(`a[href^="/events/detail/"]`).Each(func(i int, sel *goquery.Selection) {
		href, ok := sel.Attr("href")
		if !ok || href == "" {
			return
		}
		seen[s.baseURL+href] = struct{}{}
	})

	links := make([]string, 0, len(seen))
	for link := range seen {
		links = append(links, link)
	}
	sort.Strings(links)
	return links
}

// FetchDetail fetches and normalizes a single detail page. It returns
// (nil, nil) when the page has no parsable start date, which drops the event
// before it reaches any sink.
func (s *Scraper) FetchDetail(ctx context.Context, detailURL string) (*event.Event, error) {
	doc, err := s.get(ctx, detailURL)
	if err != nil {
		return nil, err
	}
	return s.parseDetail(doc, detailURL), nil
}

// parseDetail normalizes a parsed detail document into a canonical event.
func (s *Scraper) parseDetail(doc *goquery.Document, detailURL string) *event.Event {
	lines := cleanLines(doc)

	title := strings.TrimSpace(doc.Find("h1").First().Text())
	if title == "" {
		if len(lines) > 0 {
			title = lines[0]
		} else {
			title = "Unknown Event"
		}
	}

	location := detailSchema.Value(lines, "Location")
	eventType := detailSchema.Value(lines, "Type of event")
	overview := detailSchema.BlockValue(lines, "Event overview")

	start, ok := event.ParseDateTime(detailSchema.Value(lines, "Start Date"), s.tz)
	if !ok {
		return nil
	}

	var end *time.Time
	if t, ok := event.ParseDateTime(detailSchema.Value(lines, "End Date"), s.tz); ok {
		end = &t
	}

	sourceEventID := ""
	if m := detailPathPattern.FindStringSubmatch(detailURL); m != nil {
		sourceEventID = m[1]
	} else {
		sourceEventID = event.FallbackID(title, start)
		log.Warn().Str("url", detailURL).Str("source_event_id", sourceEventID).
			Msg("Detail address has no numeric id, derived fallback id from content")
	}

	return &event.Event{
		Source:        s.source,
		SourceEventID: sourceEventID,
		Title:         title,
		Description:   event.BuildDescription(detailURL, eventType, overview),
		Location:      location,
		StartsAtUTC:   start,
		EndsAtUTC:     end,
		Timezone:      s.tz.String(),
		URL:           detailURL,
		Kind:          event.KindFromType(eventType),
		Cancelled:     event.IsCancelledTitle(title),
	}
}

// get fetches a URL and parses it into a goquery document.
func (s *Scraper) get(ctx context.Context, url string) (*goquery.Document, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("User-Agent", s.userAgent)

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetching page: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("unexpected status code: %d", resp.StatusCode)
	}

	doc, err := goquery.NewDocumentFromReader(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("parsing HTML: %w", err)
	}
	return doc, nil
}

// cleanLines reduces a document to its visible text as trimmed, non-blank
// lines in document order.
func cleanLines(doc *goquery.Document) []string {
	text := nodeText(doc)
	raw := strings.Split(text, "\n")
	lines := make([]string, 0, len(raw))
	for _, ln := range raw {
		ln = strings.TrimSpace(ln)
		if ln != "" {
			lines = append(lines, ln)
		}
	}
	return lines
}

// nodeText renders the document's text with a newline after every text node,
// so separately-rendered labels and values land on separate lines the way a
// browser lays the page out. Script and style bodies are not page text.
func nodeText(doc *goquery.Document) string {
	var b strings.Builder
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.TextNode {
			b.WriteString(n.Data)
			b.WriteString("\n")
			return
		}
		if n.Type == html.ElementNode && (n.Data == "script" || n.Data == "style") {
			return
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	for _, n := range doc.Nodes {
		walk(n)
	}
	return b.String()
}
