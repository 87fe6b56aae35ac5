package config

import (
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var trackedEnv = []string{
	"ERP_APP_NAME",
	"ERP_APP_ENV",
	"ERP_APP_PORT",
	"ERP_DATABASE_HOST",
	"ERP_DATABASE_PORT",
	"ERP_DATABASE_PASSWORD",
	"ERP_DATABASE_SSLMODE",
	"ERP_DATABASE_MAX_OPEN_CONNS",
	"ERP_DATABASE_MAX_IDLE_CONNS",
	"ERP_JWT_SECRET",
	"ERP_REDIS_ENABLED",
	"ERP_STORAGE_ENABLED",
	"ERP_STORAGE_BUCKET",
	"ERP_IMPORT_MAX_ROWS",
	"ERP_HTTP_SYSTEM_RATE_LIMIT_REQUESTS",
	"ERP_HTTP_CORS_ALLOW_ORIGINS",
	"ERP_TELEMETRY_SAMPLING_RATIO",
}

// withCleanEnv clears tracked variables and restores them after the test
func withCleanEnv(t *testing.T) {
	t.Helper()
	saved := make(map[string]string, len(trackedEnv))
	for _, k := range trackedEnv {
		saved[k] = os.Getenv(k)
		os.Unsetenv(k)
	}
	t.Cleanup(func() {
		for k, v := range saved {
			if v == "" {
				os.Unsetenv(k)
			} else {
				os.Setenv(k, v)
			}
		}
	})
}

func TestLoad_Defaults(t *testing.T) {
	withCleanEnv(t)

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "obraerp-backend", cfg.App.Name)
	assert.Equal(t, "development", cfg.App.Env)
	assert.Equal(t, "8080", cfg.App.Port)
	assert.Equal(t, "localhost", cfg.Database.Host)
	assert.Equal(t, 5432, cfg.Database.Port)
	assert.Equal(t, 25, cfg.Database.MaxOpenConns)
	assert.False(t, cfg.Redis.Enabled)
	assert.Equal(t, "localhost:6379", cfg.Redis.Addr())
	assert.Equal(t, 15*time.Minute, cfg.JWT.AccessTokenExpiration)
	assert.Equal(t, 30, cfg.HTTP.SystemRateLimitRequests)
	assert.Equal(t, time.Minute, cfg.HTTP.SystemRateLimitWindow)
	assert.Equal(t, 5, cfg.HTTP.AuthRateLimitRequests)
	assert.Contains(t, cfg.HTTP.CORSAllowHeaders, "X-Organization-ID")
	assert.Equal(t, 5000, cfg.Import.MaxRows)
	assert.Equal(t, "@every 1m", cfg.Scheduler.RateLimitPurgeSpec)
	assert.Equal(t, 1.0, cfg.Telemetry.SamplingRatio)
}

func TestLoad_EnvOverrides(t *testing.T) {
	withCleanEnv(t)
	os.Setenv("ERP_APP_NAME", "obra-test")
	os.Setenv("ERP_APP_PORT", "9000")
	os.Setenv("ERP_DATABASE_HOST", "db.internal")
	os.Setenv("ERP_DATABASE_PORT", "5433")
	os.Setenv("ERP_REDIS_ENABLED", "true")
	os.Setenv("ERP_IMPORT_MAX_ROWS", "250")
	os.Setenv("ERP_HTTP_SYSTEM_RATE_LIMIT_REQUESTS", "3")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "obra-test", cfg.App.Name)
	assert.Equal(t, "9000", cfg.App.Port)
	assert.Equal(t, "db.internal", cfg.Database.Host)
	assert.Equal(t, 5433, cfg.Database.Port)
	assert.True(t, cfg.Redis.Enabled)
	assert.Equal(t, 250, cfg.Import.MaxRows)
	assert.Equal(t, 3, cfg.HTTP.SystemRateLimitRequests)
}

func TestLoad_Validation(t *testing.T) {
	t.Run("idle conns cannot exceed open conns", func(t *testing.T) {
		withCleanEnv(t)
		os.Setenv("ERP_DATABASE_MAX_OPEN_CONNS", "10")
		os.Setenv("ERP_DATABASE_MAX_IDLE_CONNS", "20")

		_, err := Load()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "cannot exceed")
	})

	t.Run("storage requires a bucket", func(t *testing.T) {
		withCleanEnv(t)
		os.Setenv("ERP_STORAGE_ENABLED", "true")

		_, err := Load()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "storage.bucket")
	})

	t.Run("sampling ratio out of range", func(t *testing.T) {
		withCleanEnv(t)
		os.Setenv("ERP_TELEMETRY_SAMPLING_RATIO", "1.5")

		_, err := Load()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "sampling_ratio")
	})
}

func TestLoad_ProductionValidation(t *testing.T) {
	setValidProduction := func() {
		os.Setenv("ERP_APP_ENV", "production")
		os.Setenv("ERP_JWT_SECRET", "this-is-a-very-secure-jwt-secret-key-32chars")
		os.Setenv("ERP_DATABASE_PASSWORD", "secure-password")
		os.Setenv("ERP_DATABASE_SSLMODE", "require")
		os.Setenv("ERP_REDIS_ENABLED", "true")
	}

	t.Run("passes with valid production config", func(t *testing.T) {
		withCleanEnv(t)
		setValidProduction()

		cfg, err := Load()
		require.NoError(t, err)
		assert.True(t, cfg.IsProduction())
	})

	t.Run("requires jwt.secret", func(t *testing.T) {
		withCleanEnv(t)
		setValidProduction()
		os.Unsetenv("ERP_JWT_SECRET")

		_, err := Load()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "jwt.secret is required in production")
	})

	t.Run("requires long jwt.secret", func(t *testing.T) {
		withCleanEnv(t)
		setValidProduction()
		os.Setenv("ERP_JWT_SECRET", "short")

		_, err := Load()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "at least 32 characters")
	})

	t.Run("rejects disabled ssl", func(t *testing.T) {
		withCleanEnv(t)
		setValidProduction()
		os.Setenv("ERP_DATABASE_SSLMODE", "disable")

		_, err := Load()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "sslmode")
	})

	t.Run("requires redis", func(t *testing.T) {
		withCleanEnv(t)
		setValidProduction()
		os.Setenv("ERP_REDIS_ENABLED", "false")

		_, err := Load()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "redis.enabled")
	})

	t.Run("rejects wildcard origin", func(t *testing.T) {
		withCleanEnv(t)
		setValidProduction()
		os.Setenv("ERP_HTTP_CORS_ALLOW_ORIGINS", "*")

		_, err := Load()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "cors_allow_origins")
	})
}

func TestDatabaseConfig_DSN(t *testing.T) {
	t.Run("generates valid DSN", func(t *testing.T) {
		cfg := DatabaseConfig{Host: "localhost", Port: 5432, User: "u", Password: "p", DBName: "obra", SSLMode: "disable"}

		dsn := cfg.DSN()
		assert.Contains(t, dsn, "localhost:5432")
		assert.Contains(t, dsn, "/obra")
		assert.Contains(t, dsn, "sslmode=disable")
	})

	t.Run("escapes special characters in password", func(t *testing.T) {
		cfg := DatabaseConfig{Host: "localhost", Port: 5432, User: "user", Password: "pass@word#123", DBName: "db", SSLMode: "disable"}
		assert.Contains(t, cfg.DSN(), "pass%40word%23123")
	})
}
