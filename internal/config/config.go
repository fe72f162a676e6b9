package config

import (
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config keeps runtime settings for the planner.
type Config struct {
	// DBPath is the sqlite file; empty means the per-user default.
	DBPath string
	// CheckInterval is the period of the session timer that runs the
	// overdue check and auto-backup.
	CheckInterval time.Duration
}

// Load reads configuration from the environment (and an optional .env file)
// with sane defaults.
func Load() Config {
	_ = godotenv.Load(".env")

	cfg := Config{
		DBPath:        strings.TrimSpace(os.Getenv("STUDYPLAN_DB")),
		CheckInterval: parseInterval(strings.TrimSpace(os.Getenv("STUDYPLAN_CHECK_INTERVAL"))),
	}
	if cfg.CheckInterval == 0 {
		cfg.CheckInterval = time.Minute
	}
	return cfg
}

func parseInterval(raw string) time.Duration {
	if raw == "" {
		return 0
	}
	d, err := time.ParseDuration(raw)
	if err != nil || d <= 0 {
		return 0
	}
	return d
}
