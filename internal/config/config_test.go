package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestLoadDefaults(t *testing.T) {
	// Run from a temp dir so no stray config.yaml is picked up.
	restore := chdir(t, t.TempDir())
	defer restore()

	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if cfg.Source.Name != "gbuwh" {
		t.Errorf("Source.Name = %q, want gbuwh", cfg.Source.Name)
	}
	if cfg.Source.EventsURL != "https://www.gbuwh.co.uk/events" {
		t.Errorf("Source.EventsURL = %q", cfg.Source.EventsURL)
	}
	if cfg.Source.Timezone != "Europe/London" {
		t.Errorf("Source.Timezone = %q", cfg.Source.Timezone)
	}
	if cfg.Source.Timeout != 30*time.Second {
		t.Errorf("Source.Timeout = %v, want 30s", cfg.Source.Timeout)
	}
	if cfg.Sync.Lookback != 14*24*time.Hour {
		t.Errorf("Sync.Lookback = %v, want 336h", cfg.Sync.Lookback)
	}
	if len(cfg.Sync.Kinds) != 6 {
		t.Errorf("Sync.Kinds = %v, want 6 kinds", cfg.Sync.Kinds)
	}
	if !cfg.Database.AutoMigrate {
		t.Error("Database.AutoMigrate should default to true")
	}
	if cfg.Feed.OutputDir != "site" {
		t.Errorf("Feed.OutputDir = %q, want site", cfg.Feed.OutputDir)
	}
}

func TestLoadFromFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	content := `
source:
  events_url: https://example.com/events
  timezone: Europe/Dublin
database:
  dsn: postgres://localhost/test
sync:
  lookback: 48h
`
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("writing config file: %v", err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if cfg.Source.EventsURL != "https://example.com/events" {
		t.Errorf("Source.EventsURL = %q", cfg.Source.EventsURL)
	}
	if cfg.Source.Timezone != "Europe/Dublin" {
		t.Errorf("Source.Timezone = %q", cfg.Source.Timezone)
	}
	if cfg.Database.DSN != "postgres://localhost/test" {
		t.Errorf("Database.DSN = %q", cfg.Database.DSN)
	}
	if cfg.Sync.Lookback != 48*time.Hour {
		t.Errorf("Sync.Lookback = %v, want 48h", cfg.Sync.Lookback)
	}
	// File values must not clobber unrelated defaults.
	if cfg.Source.Name != "gbuwh" {
		t.Errorf("Source.Name = %q, want default gbuwh", cfg.Source.Name)
	}
}

func TestLoadFromEnv(t *testing.T) {
	restore := chdir(t, t.TempDir())
	defer restore()

	t.Setenv("GBUWH_DATABASE_DSN", "postgres://env/db")
	t.Setenv("GBUWH_GOOGLE_CALENDAR_ID", "cal@group.calendar.google.com")

	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if cfg.Database.DSN != "postgres://env/db" {
		t.Errorf("Database.DSN = %q, want env value", cfg.Database.DSN)
	}
	if cfg.Google.CalendarID != "cal@group.calendar.google.com" {
		t.Errorf("Google.CalendarID = %q, want env value", cfg.Google.CalendarID)
	}
}

func TestLocation(t *testing.T) {
	cfg := Config{Source: SourceConfig{Timezone: "Europe/London"}}
	loc, err := cfg.Location()
	if err != nil {
		t.Fatalf("Location failed: %v", err)
	}
	if loc.String() != "Europe/London" {
		t.Errorf("Location = %s", loc)
	}

	cfg.Source.Timezone = "Not/AZone"
	if _, err := cfg.Location(); err == nil {
		t.Error("expected error for unknown zone")
	}
}

func TestRequireHelpers(t *testing.T) {
	var cfg Config
	if err := cfg.RequireStore(); err == nil {
		t.Error("RequireStore should fail without DSN")
	}
	if err := cfg.RequireGoogle(); err == nil {
		t.Error("RequireGoogle should fail without calendar id")
	}

	cfg.Database.DSN = "postgres://localhost/test"
	cfg.Google.CalendarID = "cal"
	cfg.Google.CredentialsJSON = "{}"
	if err := cfg.RequireStore(); err != nil {
		t.Errorf("RequireStore failed: %v", err)
	}
	if err := cfg.RequireGoogle(); err != nil {
		t.Errorf("RequireGoogle failed: %v", err)
	}
}

func chdir(t *testing.T, dir string) func() {
	t.Helper()
	old, err := os.Getwd()
	if err != nil {
		t.Fatalf("getwd: %v", err)
	}
	if err := os.Chdir(dir); err != nil {
		t.Fatalf("chdir: %v", err)
	}
	return func() { os.Chdir(old) }
}
