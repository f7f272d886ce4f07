package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefault(t *testing.T) {
	cfg := Default()
	assert.Equal(t, "bbc", cfg.Provider)
	assert.Equal(t, DefaultUpdateHours, cfg.UpdateHours)
	assert.False(t, cfg.IsConfigured())
	require.NoError(t, cfg.Validate())
}

func TestSaveLoadRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "config.json")

	lat, lon := 51.51, -0.13
	cfg := Default()
	cfg.LocationID = "2643743"
	cfg.LocationName = "London, Greater London, GB"
	cfg.Lat, cfg.Lon = &lat, &lon
	cfg.UpdateHours = 12
	cfg.MarkUpdated(time.Date(2026, 6, 15, 10, 30, 0, 0, time.UTC))

	require.NoError(t, Save(path, cfg))

	loaded := Load(path)
	assert.Equal(t, cfg, loaded)
	assert.True(t, loaded.IsConfigured())

	loc := loaded.Location()
	assert.Equal(t, "2643743", loc.ID)
	require.NotNil(t, loc.Lat)
	assert.InDelta(t, 51.51, *loc.Lat, 0.0001)
}

func TestLoadMissingFile(t *testing.T) {
	cfg := Load(filepath.Join(t.TempDir(), "missing.json"))
	assert.Equal(t, Default(), cfg)
}

func TestLoadCorruptFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.json")
	require.NoError(t, os.WriteFile(path, []byte("{not json"), 0o644))

	cfg := Load(path)
	assert.Equal(t, Default(), cfg)
}

func TestLoadFillsMissingFields(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"location_id":"123"}`), 0o644))

	cfg := Load(path)
	assert.Equal(t, "bbc", cfg.Provider)
	assert.Equal(t, DefaultUpdateHours, cfg.UpdateHours)
	assert.Equal(t, "123", cfg.LocationID)
}

func TestSaveRejectsInvalid(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.json")

	cfg := Default()
	cfg.UpdateHours = 0
	require.Error(t, Save(path, cfg))

	cfg.UpdateHours = 500
	require.Error(t, Save(path, cfg))

	cfg = Default()
	cfg.Provider = ""
	require.Error(t, Save(path, cfg))
}

func TestNeedsUpdate(t *testing.T) {
	now := time.Date(2026, 6, 15, 12, 0, 0, 0, time.UTC)

	cfg := Default()
	assert.True(t, cfg.NeedsUpdate(now), "never updated means due")

	cfg.MarkUpdated(now.Add(-2 * time.Hour))
	assert.False(t, cfg.NeedsUpdate(now))

	cfg.MarkUpdated(now.Add(-7 * time.Hour))
	assert.True(t, cfg.NeedsUpdate(now))

	cfg.LastUpdated = "garbage"
	assert.True(t, cfg.NeedsUpdate(now), "malformed timestamp means due")
}

func TestLastUpdatedTime(t *testing.T) {
	cfg := Default()

	_, ok := cfg.LastUpdatedTime()
	assert.False(t, ok)

	ts := time.Date(2026, 6, 15, 10, 30, 0, 0, time.UTC)
	cfg.MarkUpdated(ts)
	got, ok := cfg.LastUpdatedTime()
	require.True(t, ok)
	assert.True(t, got.Equal(ts))
}
