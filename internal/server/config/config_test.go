package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConfig_Defaults(t *testing.T) {
	cfg, err := New()
	require.NoError(t, err)

	assert.Equal(t, ":8080", cfg.Addr)
	assert.Equal(t, 15*time.Minute, cfg.AccessTokenTTL)
	assert.Equal(t, 168*time.Hour, cfg.RefreshTokenTTL)
	assert.Equal(t, 2, cfg.SweepHour)
	assert.Equal(t, 0, cfg.SweepMinute)
}

func TestConfig_FromEnv(t *testing.T) {
	t.Setenv("ADDR", ":9090")
	t.Setenv("ACCESS_TOKEN_TTL", "5m")
	t.Setenv("SWEEP_HOUR", "4")

	cfg, err := New()
	require.NoError(t, err)

	assert.Equal(t, ":9090", cfg.Addr)
	assert.Equal(t, 5*time.Minute, cfg.AccessTokenTTL)
	assert.Equal(t, 4, cfg.SweepHour)
}

func TestConfig_Invalid(t *testing.T) {
	tests := []struct {
		name  string
		key   string
		value string
	}{
		{name: "negative access ttl", key: "ACCESS_TOKEN_TTL", value: "-1m"},
		{name: "negative refresh ttl", key: "REFRESH_TOKEN_TTL", value: "-1h"},
		{name: "sweep hour out of range", key: "SWEEP_HOUR", value: "24"},
		{name: "sweep minute out of range", key: "SWEEP_MINUTE", value: "60"},
		{name: "unparsable duration", key: "ACCESS_TOKEN_TTL", value: "soon"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv(tt.key, tt.value)

			_, err := New()
			assert.Error(t, err)
		})
	}
}

func TestConfig_SecretKey(t *testing.T) {
	t.Run("explicit secret is used as is", func(t *testing.T) {
		cfg := &Config{JWTSecret: "super-secret"}

		key, err := cfg.SecretKey()
		require.NoError(t, err)
		assert.Equal(t, []byte("super-secret"), key)
	})

	t.Run("empty secret generates random key", func(t *testing.T) {
		cfg := &Config{}

		key1, err := cfg.SecretKey()
		require.NoError(t, err)
		assert.Len(t, key1, 32)

		key2, err := cfg.SecretKey()
		require.NoError(t, err)
		assert.NotEqual(t, key1, key2, "each generated key is unique")
	})
}
