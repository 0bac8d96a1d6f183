package app

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestLoadConfigFromFile(t *testing.T) {
	path := filepath.Join("testdata")
	cfg, err := LoadConfig(path)
	require.NoError(t, err)

	require.Equal(t, 9090, cfg.Server.Port)
	require.Equal(t, "debug", cfg.Server.LogLevel)
	require.Equal(t, 20*time.Second, cfg.Server.ShutdownTimeout)

	require.Equal(t, "postgres", cfg.Database.Driver)
	require.True(t, cfg.Database.Postgres.Enabled)
	require.Equal(t, "db.example.com", cfg.Database.Postgres.Host)
	require.Equal(t, 5433, cfg.Database.Postgres.Port)

	require.Equal(t, "jwt-secret", cfg.Auth.JWT.Secret)
	require.Equal(t, "fellowship-test", cfg.Auth.JWT.Issuer)
	require.Equal(t, 24*time.Hour, cfg.Auth.JWT.TTL)

	require.Equal(t, 5, cfg.RateLimit.AuthRequests)
	require.Equal(t, 30*time.Second, cfg.RateLimit.AuthWindow)

	require.Equal(t, "https://bible.example.com", cfg.Scripture.BaseURL)
	require.Equal(t, 2*time.Second, cfg.Scripture.Timeout)

	require.False(t, cfg.Maintenance.Enabled)
	require.Equal(t, "30 4 * * *", cfg.Maintenance.Schedule)
	require.Equal(t, 240*time.Hour, cfg.Maintenance.NotificationRetention)

	require.False(t, cfg.Monitoring.Prometheus.Enabled)
	require.Equal(t, "/internal/metrics", cfg.Monitoring.Prometheus.Endpoint)

	require.Equal(t, "admin@example.com", cfg.Bootstrap.AdminEmail)
}

func TestLoadConfigDefaults(t *testing.T) {
	cfg, err := LoadConfig(t.TempDir())
	require.NoError(t, err)

	require.Equal(t, 8080, cfg.Server.Port)
	require.Equal(t, "info", cfg.Server.LogLevel)
	require.Equal(t, "sqlite", cfg.Database.Driver)
	require.Equal(t, "./data/fellowship.sqlite", cfg.Database.Path)
	require.Equal(t, "fellowship-connect", cfg.Auth.JWT.Issuer)
	require.Equal(t, 168*time.Hour, cfg.Auth.JWT.TTL)
	require.Equal(t, 20, cfg.RateLimit.AuthRequests)
	require.Equal(t, time.Minute, cfg.RateLimit.AuthWindow)
	require.Equal(t, "https://bible-api.com", cfg.Scripture.BaseURL)
	require.True(t, cfg.Maintenance.Enabled)
	require.Equal(t, "0 3 * * *", cfg.Maintenance.Schedule)
	require.True(t, cfg.Monitoring.Prometheus.Enabled)
	require.Equal(t, "/metrics", cfg.Monitoring.Prometheus.Endpoint)
}
