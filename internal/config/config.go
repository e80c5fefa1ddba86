// Package config builds the process configuration value object. It is
// constructed once at startup and passed to every component; nothing else
// reads the environment directly.
package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// keyReplacer maps nested keys to env var segments: source.base_url becomes
// GBUWH_SOURCE_BASE_URL.
var keyReplacer = strings.NewReplacer(".", "_")

// Config holds every tunable of the pipeline.
type Config struct {
	Source   SourceConfig   `mapstructure:"source"`
	Database DatabaseConfig `mapstructure:"database"`
	Google   GoogleConfig   `mapstructure:"google"`
	Sync     SyncConfig     `mapstructure:"sync"`
	Feed     FeedConfig     `mapstructure:"feed"`
	Logging  LoggingConfig  `mapstructure:"logging"`
}

// SourceConfig describes the scraped site.
type SourceConfig struct {
	Name      string        `mapstructure:"name"`
	BaseURL   string        `mapstructure:"base_url"`
	EventsURL string        `mapstructure:"events_url"`
	Timezone  string        `mapstructure:"timezone"`
	UserAgent string        `mapstructure:"user_agent"`
	Timeout   time.Duration `mapstructure:"timeout"`
}

// DatabaseConfig describes the relational store.
type DatabaseConfig struct {
	DSN         string `mapstructure:"dsn"`
	AutoMigrate bool   `mapstructure:"auto_migrate"`
}

// GoogleConfig describes the calendar sync target.
type GoogleConfig struct {
	CalendarID      string `mapstructure:"calendar_id"`
	CredentialsJSON string `mapstructure:"credentials_json"`
	DefaultTimezone string `mapstructure:"default_timezone"`
}

// SyncConfig bounds calendar sync eligibility.
type SyncConfig struct {
	Kinds    []string      `mapstructure:"kinds"`
	Lookback time.Duration `mapstructure:"lookback"`
}

// FeedConfig describes the static feed artifact.
type FeedConfig struct {
	OutputDir    string `mapstructure:"output_dir"`
	CalendarName string `mapstructure:"calendar_name"`
}

// LoggingConfig selects log level and output format.
type LoggingConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

// Load reads configuration from an optional yaml file and GBUWH_* environment
// variables, on top of defaults.
func Load(configFile string) (Config, error) {
	var cfg Config

	v := viper.New()
	v.SetConfigType("yaml")
	setDefaults(v)

	v.SetEnvPrefix("GBUWH")
	v.SetEnvKeyReplacer(keyReplacer)
	v.AutomaticEnv()

	if configFile != "" {
		v.SetConfigFile(configFile)
		if err := v.ReadInConfig(); err != nil {
			return cfg, fmt.Errorf("reading config file: %w", err)
		}
	} else {
		v.AddConfigPath(".")
		v.SetConfigName("config")
		if err := v.ReadInConfig(); err != nil {
			// Config file is optional; env and defaults suffice.
			var notFound viper.ConfigFileNotFoundError
			if !errors.As(err, &notFound) {
				return cfg, fmt.Errorf("reading config file: %w", err)
			}
		}
	}

	if err := v.Unmarshal(&cfg); err != nil {
		return cfg, fmt.Errorf("unmarshaling config: %w", err)
	}
	return cfg, nil
}

// Location resolves the configured source time zone.
func (c Config) Location() (*time.Location, error) {
	loc, err := time.LoadLocation(c.Source.Timezone)
	if err != nil {
		return nil, fmt.Errorf("loading source timezone %q: %w", c.Source.Timezone, err)
	}
	return loc, nil
}

// RequireStore validates the configuration needed to reach the database.
func (c Config) RequireStore() error {
	if c.Database.DSN == "" {
		return errors.New("database DSN is required (GBUWH_DATABASE_DSN)")
	}
	return nil
}

// RequireGoogle validates the configuration needed to reach the calendar
// provider. Dry-run sync skips this check, mirroring how a dry run needs no
// credentials.
func (c Config) RequireGoogle() error {
	if c.Google.CalendarID == "" {
		return errors.New("google calendar id is required (GBUWH_GOOGLE_CALENDAR_ID)")
	}
	if c.Google.CredentialsJSON == "" {
		return errors.New("google service account credentials are required (GBUWH_GOOGLE_CREDENTIALS_JSON)")
	}
	return nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("source.name", "gbuwh")
	v.SetDefault("source.base_url", "https://www.gbuwh.co.uk")
	v.SetDefault("source.events_url", "https://www.gbuwh.co.uk/events")
	v.SetDefault("source.timezone", "Europe/London")
	v.SetDefault("source.user_agent", "gbuwh-calendar-bot/1.0 (github.com/samwatso/gbuwh-calendar)")
	v.SetDefault("source.timeout", "30s")

	// Secrets default to empty so their keys are known to the env binding.
	v.SetDefault("database.dsn", "")
	v.SetDefault("database.auto_migrate", true)

	v.SetDefault("google.calendar_id", "")
	v.SetDefault("google.credentials_json", "")
	v.SetDefault("google.default_timezone", "Europe/London")

	v.SetDefault("sync.kinds", []string{"session", "training", "ladies", "tournament", "social", "other"})
	v.SetDefault("sync.lookback", 14*24*time.Hour)

	v.SetDefault("feed.output_dir", "site")
	v.SetDefault("feed.calendar_name", "GBUWH Events")

	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.format", "console")
}
