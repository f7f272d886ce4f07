package config

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// DaemonConfig holds environment-driven settings for daemon mode.
type DaemonConfig struct {
	// ListenAddr is where the status API listens.
	ListenAddr string

	// HTTPTimeout bounds outbound provider calls.
	HTTPTimeout time.Duration

	// In-memory store retention.
	StoreMaxHistory int           // max number of snapshots (0 = unlimited)
	StoreMaxAge     time.Duration // max age of snapshots (0 = unlimited)
}

// LoadDaemon reads daemon configuration from the environment with
// sensible defaults.
func LoadDaemon() (*DaemonConfig, error) {
	if err := godotenv.Load(); err != nil {
		log.Printf("INFO: No .env file found or error loading it: %v", err)
	}

	cfg := &DaemonConfig{}

	cfg.ListenAddr = getenvDefault("RT82W_LISTEN", ":8083")

	timeoutStr := getenvDefault("RT82W_HTTP_TIMEOUT", "30s")
	timeout, err := time.ParseDuration(timeoutStr)
	if err != nil {
		return nil, fmt.Errorf("invalid RT82W_HTTP_TIMEOUT: %w", err)
	}
	cfg.HTTPTimeout = timeout

	// A week of 6-hourly snapshots by default.
	cfg.StoreMaxHistory = getenvInt("RT82W_STORE_MAX_HISTORY", 28)

	maxAgeStr := getenvDefault("RT82W_STORE_MAX_AGE", "168h")
	maxAge, err := time.ParseDuration(maxAgeStr)
	if err != nil {
		return nil, fmt.Errorf("invalid RT82W_STORE_MAX_AGE: %w", err)
	}
	cfg.StoreMaxAge = maxAge

	return cfg, nil
}

func getenvDefault(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getenvInt(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		n, err := strconv.Atoi(v)
		if err == nil {
			return n
		}
	}
	return def
}
