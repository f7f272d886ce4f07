package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDaemonDefaults(t *testing.T) {
	t.Setenv("RT82W_LISTEN", "")
	t.Setenv("RT82W_HTTP_TIMEOUT", "")
	t.Setenv("RT82W_STORE_MAX_HISTORY", "")
	t.Setenv("RT82W_STORE_MAX_AGE", "")

	cfg, err := LoadDaemon()
	require.NoError(t, err)

	assert.Equal(t, ":8083", cfg.ListenAddr)
	assert.Equal(t, 30*time.Second, cfg.HTTPTimeout)
	assert.Equal(t, 28, cfg.StoreMaxHistory)
	assert.Equal(t, 168*time.Hour, cfg.StoreMaxAge)
}

func TestLoadDaemonOverrides(t *testing.T) {
	t.Setenv("RT82W_LISTEN", "127.0.0.1:9000")
	t.Setenv("RT82W_HTTP_TIMEOUT", "5s")
	t.Setenv("RT82W_STORE_MAX_HISTORY", "100")
	t.Setenv("RT82W_STORE_MAX_AGE", "24h")

	cfg, err := LoadDaemon()
	require.NoError(t, err)

	assert.Equal(t, "127.0.0.1:9000", cfg.ListenAddr)
	assert.Equal(t, 5*time.Second, cfg.HTTPTimeout)
	assert.Equal(t, 100, cfg.StoreMaxHistory)
	assert.Equal(t, 24*time.Hour, cfg.StoreMaxAge)
}

func TestLoadDaemonInvalidTimeout(t *testing.T) {
	t.Setenv("RT82W_HTTP_TIMEOUT", "banana")

	_, err := LoadDaemon()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "RT82W_HTTP_TIMEOUT")
}
