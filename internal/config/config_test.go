package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("STUDYPLAN_DB", "")
	t.Setenv("STUDYPLAN_CHECK_INTERVAL", "")

	cfg := Load()
	assert.Empty(t, cfg.DBPath)
	assert.Equal(t, time.Minute, cfg.CheckInterval)
}

func TestLoadFromEnv(t *testing.T) {
	t.Setenv("STUDYPLAN_DB", "/tmp/plan.db")
	t.Setenv("STUDYPLAN_CHECK_INTERVAL", "30s")

	cfg := Load()
	assert.Equal(t, "/tmp/plan.db", cfg.DBPath)
	assert.Equal(t, 30*time.Second, cfg.CheckInterval)
}

func TestLoadIgnoresBadInterval(t *testing.T) {
	t.Setenv("STUDYPLAN_CHECK_INTERVAL", "yesterday")
	cfg := Load()
	assert.Equal(t, time.Minute, cfg.CheckInterval)
}
