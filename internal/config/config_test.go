package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	for _, key := range []string{"ANALYTICS_BASE_URL", "DATABASE_URL", "POSTGRESQL_URI", "PG_DSN", "PG_ENABLED", "REDIS_ADDR", "REDIS_ENABLED"} {
		t.Setenv(key, "")
	}

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "http://localhost:8000/api", cfg.Analytics.BaseURL)
	assert.Equal(t, 30*time.Second, cfg.AnalyticsTimeout())
	assert.Equal(t, time.Hour, cfg.SessionTTL())
	assert.False(t, cfg.PostgreSQL.Enabled)
	assert.False(t, cfg.Redis.Enabled)
	assert.InDelta(t, 0.4, cfg.Ranking.WeightGrowth, 1e-9)
	assert.InDelta(t, 0.4, cfg.Ranking.WeightDemand, 1e-9)
	assert.InDelta(t, 0.2, cfg.Ranking.WeightRisk, 1e-9)
}

func TestLoad_Overrides(t *testing.T) {
	t.Setenv("ANALYTICS_BASE_URL", "http://analytics:9000/api/")
	t.Setenv("ANALYTICS_TIMEOUT", "5")
	t.Setenv("DATABASE_URL", "postgres://u:p@db/estatechat")
	t.Setenv("REDIS_ADDR", "cache:6379")
	t.Setenv("SESSION_TTL_MINUTES", "not-a-number")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "http://analytics:9000/api", cfg.Analytics.BaseURL, "trailing slash trimmed")
	assert.Equal(t, 5*time.Second, cfg.AnalyticsTimeout())
	assert.True(t, cfg.PostgreSQL.Enabled)
	assert.Equal(t, "postgres://u:p@db/estatechat", cfg.GetPostgreSQLDSN())
	assert.True(t, cfg.Redis.Enabled)
	assert.Equal(t, "cache:6379", cfg.Redis.Addr)
	assert.Equal(t, 60, cfg.Session.TTLMinutes, "invalid value falls back to default")
}

func TestLoad_InvalidTimeout(t *testing.T) {
	t.Setenv("ANALYTICS_TIMEOUT", "0")

	_, err := Load()
	assert.Error(t, err)
}

func TestGetPostgreSQLDSN_FromFields(t *testing.T) {
	cfg := &Config{PostgreSQL: PostgreSQLConfig{
		Host: "db", Port: 5433, User: "chat", Password: "secret", Database: "turns", SSLMode: "disable",
	}}
	assert.Equal(t, "host=db port=5433 user=chat password=secret dbname=turns sslmode=disable", cfg.GetPostgreSQLDSN())
}
