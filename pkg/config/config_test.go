package config

import (
	"testing"
	"time"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/luanmenezes0/lift2/internal/domain/rental"
)

func TestFromViper_Defaults(t *testing.T) {
	cfg, err := fromViper(viper.New())
	require.NoError(t, err)

	assert.Equal(t, "development", cfg.App.Env)
	assert.Equal(t, "0.0.0.0:8080", cfg.HTTP.Addr())
	assert.False(t, cfg.Redis.Enabled())
	assert.Equal(t, 10*time.Minute, cfg.Redis.LedgerTTL)
	assert.Equal(t, "postgres://postgres:@localhost:5432/lift2?sslmode=disable", cfg.DB.ConnectionString())

	policy, err := cfg.Rental.Policy()
	require.NoError(t, err)
	assert.Equal(t, rental.SpanCalendarDays, policy.SpanMode)
	assert.Equal(t, "America/Sao_Paulo", policy.Location.String())
	assert.False(t, policy.ClampNegativeSpans)
}

func TestFromViper_Overrides(t *testing.T) {
	v := viper.New()
	v.Set("HTTP_PORT", "9090")
	v.Set("DATABASE_URL", "postgres://u:p@db:5432/x")
	v.Set("REDIS_ADDR", "localhost:6379")
	v.Set("REDIS_LEDGER_TTL", "1h")
	v.Set("RENTAL_SPAN_MODE", "truncate")
	v.Set("RENTAL_CLAMP_NEGATIVE_SPANS", true)
	v.Set("RENTAL_TIMEZONE", "UTC")

	cfg, err := fromViper(v)
	require.NoError(t, err)
	assert.Equal(t, 9090, cfg.HTTP.Port)
	assert.Equal(t, "postgres://u:p@db:5432/x", cfg.DB.ConnectionString())
	assert.True(t, cfg.Redis.Enabled())
	assert.Equal(t, time.Hour, cfg.Redis.LedgerTTL)

	policy, err := cfg.Rental.Policy()
	require.NoError(t, err)
	assert.Equal(t, rental.SpanElapsedTruncate, policy.SpanMode)
	assert.True(t, policy.ClampNegativeSpans)
}

func TestRentalConfig_PolicyInvalida(t *testing.T) {
	_, err := RentalConfig{Timezone: "Marte/Olympus", SpanMode: "calendar"}.Policy()
	assert.Error(t, err)

	_, err = RentalConfig{Timezone: "UTC", SpanMode: "semanas"}.Policy()
	assert.Error(t, err)
}

func TestFromViper_ProductionSinSecret(t *testing.T) {
	v := viper.New()
	v.Set("APP_ENV", "production")
	_, err := fromViper(v)
	assert.Error(t, err)
}

func TestFromViper_Storage(t *testing.T) {
	v := viper.New()
	cfg, err := fromViper(v)
	require.NoError(t, err)
	assert.Equal(t, StoragePostgres, cfg.App.Storage)

	v.Set("APP_STORAGE", "Memory")
	cfg, err = fromViper(v)
	require.NoError(t, err)
	assert.Equal(t, StorageMemory, cfg.App.Storage)

	v.Set("APP_STORAGE", "sqlite")
	_, err = fromViper(v)
	assert.Error(t, err)
}
