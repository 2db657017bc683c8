package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	for _, k := range []string{"PORT", "TAX_RATE", "DB_DRIVER", "DB_DSN", "JWT_TTL_HOURS", "RATE_LIMIT_BURST"} {
		t.Setenv(k, "")
	}
	cfg := Load()

	assert.Equal(t, "8080", cfg.Port)
	assert.InDelta(t, 0.05, cfg.TaxRate, 1e-12)
	assert.Equal(t, "sqlite", cfg.DBDriver)
	assert.Equal(t, 24*time.Hour, cfg.JWTTTL)
	assert.Equal(t, 100, cfg.RateLimitBurst)
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("TAX_RATE", "0.11")
	t.Setenv("JWT_TTL_HOURS", "2")
	t.Setenv("RATE_LIMIT_BURST", "oops")

	cfg := Load()

	assert.InDelta(t, 0.11, cfg.TaxRate, 1e-12)
	assert.Equal(t, 2*time.Hour, cfg.JWTTTL)
	assert.Equal(t, 100, cfg.RateLimitBurst)
}

func TestInitDB(t *testing.T) {
	db, err := InitDB(&Config{DBDriver: "sqlite", DBDSN: "file::memory:"})
	require.NoError(t, err)
	require.NotNil(t, db)

	_, err = InitDB(&Config{DBDriver: "postgres"})
	assert.Error(t, err)
}
