package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaultsInDev(t *testing.T) {
	t.Setenv("APP_ENV", "dev")
	t.Setenv("HANDOFF_SECRET", "")
	t.Setenv("PAYMENT_DELAY", "")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "8080", cfg.Port)
	assert.NotEmpty(t, cfg.HandoffSecret)
	assert.Equal(t, 3*time.Second, cfg.PaymentDelay)
}

func TestLoadRequiresSecretOutsideDev(t *testing.T) {
	t.Setenv("APP_ENV", "prod")
	t.Setenv("HANDOFF_SECRET", "")
	_, err := Load()
	assert.Error(t, err)

	t.Setenv("HANDOFF_SECRET", "s3cret")
	t.Setenv("PAYMENT_DELAY", "250ms")
	t.Setenv("SEAT_SEED", "42")
	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "s3cret", cfg.HandoffSecret)
	assert.Equal(t, 250*time.Millisecond, cfg.PaymentDelay)
	assert.Equal(t, uint64(42), cfg.SeatSeed)
}

func TestLoadRateLimitConfigClamps(t *testing.T) {
	t.Setenv("RATE_LIMIT_CAPACITY", "0")
	t.Setenv("RATE_LIMIT_REFILL_INTERVAL", "2s")
	t.Setenv("RATE_LIMIT_TTL", "1s")
	c := LoadRateLimitConfig()
	assert.Equal(t, 1, c.Capacity)
	assert.Equal(t, 10*time.Second, c.TTL)
}

func TestLoadCacheConfigMethods(t *testing.T) {
	t.Setenv("CACHE_METHODS", "get, head")
	c := LoadCacheConfig()
	assert.True(t, c.Methods["GET"])
	assert.True(t, c.Methods["HEAD"])
	assert.False(t, c.Methods["POST"])
}
