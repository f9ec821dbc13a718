package config

import (
	"testing"
	"time"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaults(t *testing.T) {
	v := viper.New()
	setDefaults(v)

	var cfg Config
	require.NoError(t, v.Unmarshal(&cfg))
	assert.Equal(t, "8080", cfg.AppPort)
	assert.Equal(t, "memory", cfg.SessionBackend)
	assert.Equal(t, 100, cfg.MaxRequestsPerMin)
	assert.Equal(t, 14, cfg.CatalogDays)
	assert.Equal(t, "Jusbook", cfg.BusinessName)
	assert.Equal(t, time.Duration(0), cfg.SessionTTL())
	assert.Equal(t, time.Hour, cfg.SlotRefreshInterval())
}

func TestEnvOverrides(t *testing.T) {
	t.Setenv("SESSION_BACKEND", "redis")
	t.Setenv("SESSION_TTL_MINUTES", "30")
	t.Setenv("SLOT_REFRESH_INTERVAL_MINUTES", "5")

	v := viper.New()
	v.AutomaticEnv()
	setDefaults(v)

	var cfg Config
	require.NoError(t, v.Unmarshal(&cfg))
	assert.Equal(t, "redis", cfg.SessionBackend)
	assert.Equal(t, 30*time.Minute, cfg.SessionTTL())
	assert.Equal(t, 5*time.Minute, cfg.SlotRefreshInterval())
}

func TestIsProduction(t *testing.T) {
	prev := AppConfig
	t.Cleanup(func() { AppConfig = prev })

	AppConfig.Env = "production"
	assert.True(t, IsProduction())
	AppConfig.Env = "development"
	assert.False(t, IsProduction())
}
