package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setRequired(t *testing.T) {
	t.Setenv("MP_ACCESS_TOKEN", "TEST-token")
	t.Setenv("MP_SUCCESS_URL", "https://api.example.com/api/pago/success")
	t.Setenv("MP_FAILURE_URL", "https://api.example.com/api/pago/failure")
	t.Setenv("MP_PENDING_URL", "https://api.example.com/api/pago/pending")
	t.Setenv("MP_NOTIFICATION_URL", "https://api.example.com/api/notificaciones-mp")
	t.Setenv("FRONTEND_URL", "https://hotel.example.com/reservas")
}

func clearOptional(t *testing.T) {
	for _, k := range []string{
		"PORT", "GIN_MODE", "CORS_ORIGINS", "MP_TIMEOUT_MS", "MP_CURRENCY_ID", "MP_WEBHOOK_SECRET",
		"HOLD_TTL", "HOLD_SWEEP_INTERVAL", "MYSQL_URL", "DATABASE_URL",
		"DB_HOST", "DB_PORT", "DB_USER", "DB_PASS", "DB_NAME", "DB_POOL_SIZE", "DB_LOG_LEVEL",
	} {
		t.Setenv(k, "")
	}
}

func TestFromEnvMissingKeys(t *testing.T) {
	clearOptional(t)
	for _, k := range RequiredKeys {
		t.Setenv(k, "")
	}
	t.Setenv("MP_ACCESS_TOKEN", "TEST-token")

	_, err := FromEnv()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "MP_SUCCESS_URL")
	assert.Contains(t, err.Error(), "FRONTEND_URL")
	assert.NotContains(t, err.Error(), "MP_ACCESS_TOKEN")
}

func TestFromEnvDefaults(t *testing.T) {
	clearOptional(t)
	setRequired(t)

	cfg, err := FromEnv()
	require.NoError(t, err)

	assert.Equal(t, "3000", cfg.Port)
	assert.Equal(t, []string{"*"}, cfg.CORSOrigins)
	assert.Equal(t, 15*time.Minute, cfg.HoldTTL)
	assert.Equal(t, time.Minute, cfg.HoldSweepInterval)
	assert.Equal(t, 5*time.Second, cfg.MercadoPago.Timeout)
	assert.Empty(t, cfg.MercadoPago.WebhookSecret)
	assert.Equal(t, "https://hotel.example.com/reservas", cfg.FrontendURL)

	assert.Equal(t, "hotel_reservas_db", cfg.DB.Name)
	assert.Equal(t, 10, cfg.DB.PoolSize)
	assert.Contains(t, cfg.DB.DSN, "root@tcp(127.0.0.1:3306)/hotel_reservas_db")
	assert.Contains(t, cfg.DB.DSN, "parseTime=true")
}

func TestFromEnvOverrides(t *testing.T) {
	clearOptional(t)
	setRequired(t)
	t.Setenv("PORT", "8080")
	t.Setenv("CORS_ORIGINS", "https://a.example.com, https://b.example.com,")
	t.Setenv("HOLD_TTL", "30m")
	t.Setenv("MP_TIMEOUT_MS", "2500")

	cfg, err := FromEnv()
	require.NoError(t, err)
	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, []string{"https://a.example.com", "https://b.example.com"}, cfg.CORSOrigins)
	assert.Equal(t, 30*time.Minute, cfg.HoldTTL)
	assert.Equal(t, 2500*time.Millisecond, cfg.MercadoPago.Timeout)
}

func TestFromEnvRejectsBadDurations(t *testing.T) {
	clearOptional(t)
	setRequired(t)
	t.Setenv("HOLD_TTL", "soon")

	_, err := FromEnv()
	assert.Error(t, err)
}

func TestDBFromEnvURL(t *testing.T) {
	clearOptional(t)
	t.Setenv("MYSQL_URL", "mysql://hotel:pw@db.internal:3307/paradiso")

	db, err := DBFromEnv()
	require.NoError(t, err)
	assert.Equal(t, "paradiso", db.Name)
	assert.Contains(t, db.DSN, "hotel:pw@tcp(db.internal:3307)/paradiso")
}

func TestDBFromEnvURLWithoutDatabase(t *testing.T) {
	clearOptional(t)
	t.Setenv("DATABASE_URL", "mysql://hotel:pw@db.internal:3307/")

	_, err := DBFromEnv()
	assert.Error(t, err)
}

func TestGormLogLevel(t *testing.T) {
	cfg := GormConfig("silent")
	assert.True(t, cfg.SkipDefaultTransaction)
}
