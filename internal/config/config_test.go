package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("APP_ENV", "dev")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, ":8080", cfg.HTTPAddr)
	assert.Equal(t, 24*time.Hour, cfg.JWTTTL)
	assert.Equal(t, 80000.0, cfg.Billing.HourlyFirstHour)
	assert.Equal(t, 40000.0, cfg.Billing.HourlySecondHour)
	assert.Equal(t, 20000.0, cfg.Billing.HourlyNextHours)
	assert.Equal(t, 25.0, cfg.Billing.MonthlyPriceMultiplier)
	assert.False(t, cfg.Reconcile.PreserveManual)
	assert.Equal(t, "14:00", cfg.Stay.DefaultCheckInTime)
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("APP_ENV", "dev")
	t.Setenv("CORS_ALLOWED_ORIGINS", "https://a.example, https://b.example,")
	t.Setenv("RECONCILE_PRESERVE_MANUAL", "true")
	t.Setenv("HOURLY_FIRST_HOUR", "90000")
	t.Setenv("REDIS_DB", "3")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, []string{"https://a.example", "https://b.example"}, cfg.CORSAllowedOrigins)
	assert.True(t, cfg.Reconcile.PreserveManual)
	assert.Equal(t, 90000.0, cfg.Billing.HourlyFirstHour)
	assert.Equal(t, 3, cfg.RedisDB)
}

func TestLoadRejectsDefaultSecretInProduction(t *testing.T) {
	t.Setenv("APP_ENV", "production")
	t.Setenv("JWT_SECRET", "")

	_, err := Load()
	assert.Error(t, err)
}

func TestLoadRejectsBadValues(t *testing.T) {
	cases := map[string]string{
		"JWT_TTL":               "soon",
		"HOURLY_NEXT_HOURS":     "-1",
		"DEFAULT_CHECKOUT_TIME": "noon",
		"REDIS_DB":              "x",
	}
	for key, value := range cases {
		t.Run(key, func(t *testing.T) {
			t.Setenv("APP_ENV", "dev")
			t.Setenv(key, value)
			_, err := Load()
			assert.Error(t, err)
		})
	}
}
