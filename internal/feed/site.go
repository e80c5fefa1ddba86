package feed

import (
	"fmt"
	"html/template"
	"os"
	"path/filepath"
	"time"
)

const icsFilename = "calendar.ics"

var indexTemplate = template.Must(template.New("index").Parse(`<!doctype html>
<html><head><meta charset="utf-8"><title>{{.Name}}</title></head>
<body>
  <h1>{{.Name}}</h1>
  <p><a href="calendar.ics">calendar.ics</a></p>
  <p>Events: {{.Count}}</p>
  <p>Last generated: {{.GeneratedAt}}</p>
</body></html>
`))

// WriteSite writes calendar.ics and an index page into dir, creating it if
// needed.
func WriteSite(dir, calendarName, ics string, count int, generatedAt time.Time) error {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("creating output directory: %w", err)
	}

	if err := os.WriteFile(filepath.Join(dir, icsFilename), []byte(ics), 0644); err != nil {
		return fmt.Errorf("writing calendar file: %w", err)
	}

	f, err := os.Create(filepath.Join(dir, "index.html"))
	if err != nil {
		return fmt.Errorf("creating index page: %w", err)
	}
	defer f.Close()

	data := struct {
		Name        string
		Count       int
		GeneratedAt string
	}{
		Name:        calendarName,
		Count:       count,
		GeneratedAt: generatedAt.UTC().Format("2006-01-02 15:04 UTC"),
	}
	if err := indexTemplate.Execute(f, data); err != nil {
		return fmt.Errorf("rendering index page: %w", err)
	}
	return nil
}
