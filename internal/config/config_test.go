package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, ":8080", cfg.HTTPAddr)
	assert.Equal(t, "localhost:6379", cfg.RedisAddr)
	assert.Equal(t, 2, cfg.MinParticipants)
	assert.Equal(t, 8, cfg.MaxParticipantsLimit)
	assert.Equal(t, 4, cfg.DefaultMaxParticipants)
	assert.Equal(t, int64(5000), cfg.PointValueMinorUnits)
	assert.Equal(t, "previous_pays_next", cfg.PaymentDirection)
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("HTTP_ADDR", ":9090")
	t.Setenv("REDIS_ADDR", "redis:6379")
	t.Setenv("POINT_VALUE_MINOR_UNITS", "100")
	t.Setenv("PAYMENT_DIRECTION", "none")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, ":9090", cfg.HTTPAddr)
	assert.Equal(t, "redis:6379", cfg.RedisAddr)
	assert.Equal(t, int64(100), cfg.PointValueMinorUnits)
	assert.Equal(t, "none", cfg.PaymentDirection)
}

func TestLoadLog(t *testing.T) {
	t.Setenv("LOG_LEVEL", "debug")
	t.Setenv("LOG_PRETTY", "true")

	cfg, err := LoadLog()
	require.NoError(t, err)

	assert.Equal(t, "debug", cfg.Level)
	assert.True(t, cfg.Pretty)
}
