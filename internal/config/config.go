// Package config manages rt82weather settings: the persisted user config
// in ~/.config/rt82weather/config.json and environment-driven daemon
// settings.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/go-playground/validator/v10"

	"rt82weather/internal/weather"
)

const DefaultUpdateHours = 6

var validate = validator.New()

// Config is the persisted user configuration.
type Config struct {
	Provider     string   `json:"provider" validate:"required"`
	LocationID   string   `json:"location_id"`
	LocationName string   `json:"location_name"`
	Lat          *float64 `json:"lat,omitempty"`
	Lon          *float64 `json:"lon,omitempty"`
	UpdateHours  int      `json:"update_hours" validate:"min=1,max=168"`
	LastUpdated  string   `json:"last_updated,omitempty"`
	Insecure     bool     `json:"insecure,omitempty"`
}

// Default returns the out-of-the-box configuration.
func Default() Config {
	return Config{
		Provider:    "bbc",
		UpdateHours: DefaultUpdateHours,
	}
}

// IsConfigured reports whether a location has been selected.
func (c Config) IsConfigured() bool {
	return c.LocationID != ""
}

// Location reconstructs the saved location for provider calls.
func (c Config) Location() weather.Location {
	return weather.Location{
		ID:   c.LocationID,
		Name: c.LocationName,
		Lat:  c.Lat,
		Lon:  c.Lon,
	}
}

// LastUpdatedTime parses the last-updated timestamp; ok is false when the
// value is absent or malformed.
func (c Config) LastUpdatedTime() (time.Time, bool) {
	if c.LastUpdated == "" {
		return time.Time{}, false
	}
	t, err := time.Parse(time.RFC3339, c.LastUpdated)
	if err != nil {
		return time.Time{}, false
	}
	return t, true
}

// MarkUpdated records a successful display update.
func (c *Config) MarkUpdated(now time.Time) {
	c.LastUpdated = now.Truncate(time.Second).Format(time.RFC3339)
}

// NeedsUpdate reports whether the last update is older than the
// configured interval.
func (c Config) NeedsUpdate(now time.Time) bool {
	last, ok := c.LastUpdatedTime()
	if !ok {
		return true
	}
	return now.Sub(last) >= time.Duration(c.UpdateHours)*time.Hour
}

// Validate checks field constraints before persisting.
func (c Config) Validate() error {
	return validate.Struct(c)
}

// DefaultPath returns the canonical config file location.
func DefaultPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config", "rt82weather", "config.json"), nil
}

// Load reads the config file at path. A missing or corrupt file yields
// defaults rather than an error, matching first-run behaviour.
func Load(path string) Config {
	data, err := os.ReadFile(path)
	if err != nil {
		return Default()
	}

	cfg := Default()
	if err := json.Unmarshal(data, &cfg); err != nil {
		return Default()
	}
	if cfg.Provider == "" {
		cfg.Provider = Default().Provider
	}
	if cfg.UpdateHours <= 0 {
		cfg.UpdateHours = DefaultUpdateHours
	}
	return cfg
}

// Save validates and writes the config file, creating its directory.
func Save(path string, cfg Config) error {
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	data, err := json.MarshalIndent(cfg, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, append(data, '\n'), 0o644)
}
