package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("APP_ENV", "development")
	t.Setenv("STORAGE_DRIVER", "Memory")
	t.Setenv("RESET_CODE_TTL_MINUTES", "")
	t.Setenv("LOGIN_RATE_LIMIT", "")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, StorageMemory, cfg.Storage)
	assert.Equal(t, 15*time.Minute, cfg.Auth.ResetCodeTTL)
	assert.Equal(t, "20-M", cfg.Auth.LoginRateLimit)
	assert.False(t, cfg.IsProduction())
}

func TestLoad_EnvGana(t *testing.T) {
	t.Setenv("STORAGE_DRIVER", "postgres")
	t.Setenv("HTTP_PORT", "9090")
	t.Setenv("RESET_CODE_TTL_MINUTES", "5")
	t.Setenv("JWT_EXPIRATION_MINUTES", "abc")
	t.Setenv("DATABASE_URL", "")
	t.Setenv("DB_HOST", "db")
	t.Setenv("DB_PORT", "5433")
	t.Setenv("DB_USER", "pecas")
	t.Setenv("DB_PASSWORD", "p@ss:w/rd")
	t.Setenv("DB_NAME", "pecas")
	t.Setenv("DB_SSLMODE", "disable")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "0.0.0.0:9090", cfg.HTTP.Addr())
	assert.Equal(t, 5*time.Minute, cfg.Auth.ResetCodeTTL)
	assert.Equal(t, 60, cfg.JWT.Expiration, "valor no numérico usa el default")
	assert.Equal(t, "postgres://pecas:p%40ss%3Aw%2Frd@db:5433/pecas?sslmode=disable", cfg.DB.ConnectionString())
}

func TestLoad_DriverInvalido(t *testing.T) {
	t.Setenv("STORAGE_DRIVER", "mysql")
	_, err := Load()
	assert.Error(t, err)
}
