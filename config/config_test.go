package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfig(t *testing.T) {
	t.Run("Should fail without a JWT secret", func(t *testing.T) {
		t.Setenv("JWT_SECRET", "")
		_, err := LoadConfig()
		assert.Error(t, err)
	})

	t.Run("Should apply defaults", func(t *testing.T) {
		t.Setenv("JWT_SECRET", "secret")
		cfg, err := LoadConfig()
		require.NoError(t, err)
		assert.Equal(t, 7*24*time.Hour, cfg.JWTExpiresIn)
		assert.Equal(t, 10, cfg.BcryptCost)
		assert.Equal(t, 5, cfg.FailedLoginMaxAttempts)
	})

	t.Run("Should parse day based token expiry", func(t *testing.T) {
		t.Setenv("JWT_SECRET", "secret")
		t.Setenv("JWT_EXPIRES_IN", "3d")
		cfg, err := LoadConfig()
		require.NoError(t, err)
		assert.Equal(t, 72*time.Hour, cfg.JWTExpiresIn)
	})
}

func TestParseDuration(t *testing.T) {
	tests := []struct {
		in   string
		want time.Duration
		ok   bool
	}{
		{"7d", 7 * 24 * time.Hour, true},
		{"90m", 90 * time.Minute, true},
		{"0d", 0, false},
		{"soon", 0, false},
	}
	for _, tt := range tests {
		got, ok := parseDuration(tt.in)
		assert.Equal(t, tt.ok, ok, tt.in)
		assert.Equal(t, tt.want, got, tt.in)
	}
}
