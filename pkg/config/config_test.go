package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfig(t *testing.T) {
	t.Setenv("PORT", "8080")
	t.Setenv("NODE_ENV", "production")
	t.Setenv("DB_HOST", "db")
	t.Setenv("DB_PORT", "5433")
	t.Setenv("DB_USER", "testuser")
	t.Setenv("DB_PASSWORD", "testpass")
	t.Setenv("DB_NAME", "testdb")
	t.Setenv("REDIS_HOST", "cache")
	t.Setenv("REDIS_PORT", "6380")
	t.Setenv("ACCESS_TOKEN_SECRET", "test-secret")
	t.Setenv("CORS_ORIGINS", "https://nomadnest.app,https://admin.nomadnest.app")
	t.Setenv("STORE_DRIVER", "mongo")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.ServerPort)
	assert.True(t, cfg.IsProduction())
	assert.Equal(t, "db", cfg.DBHost)
	assert.Equal(t, "5433", cfg.DBPort)
	assert.Equal(t, "testuser", cfg.DBUser)
	assert.Equal(t, "testpass", cfg.DBPassword)
	assert.Equal(t, "testdb", cfg.DBName)
	assert.Equal(t, "cache:6380", cfg.RedisAddr())
	assert.Equal(t, "test-secret", cfg.JWTSecret)
	assert.Equal(t, "mongo", cfg.StoreDriver)
	assert.Equal(t, []string{"https://nomadnest.app", "https://admin.nomadnest.app"}, cfg.CORSOrigins)
}

func TestLoadConfig_Defaults(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "5000", cfg.ServerPort)
	assert.False(t, cfg.IsProduction())
	assert.Equal(t, "postgres", cfg.StoreDriver)
	assert.Equal(t, "token", cfg.TokenCookie)
	assert.Equal(t, 180*24*time.Hour, cfg.TokenTTL)
	assert.Equal(t, int64(5), cfg.FreePostLimit)
	assert.Equal(t, 100, cfg.RateLimit)
	assert.Equal(t, time.Minute, cfg.RateWindow)
	assert.Equal(t, "usd", cfg.PaymentCurrency)
	assert.Equal(t, []string{"http://localhost:5173", "http://localhost:5174"}, cfg.CORSOrigins)
}

func TestPostgresDSN(t *testing.T) {
	cfg := &Config{
		DBHost:     "localhost",
		DBPort:     "5432",
		DBUser:     "postgres",
		DBPassword: "secret",
		DBName:     "nomadnest",
		DBSSLMode:  "disable",
	}

	assert.Equal(t, "host=localhost user=postgres password=secret dbname=nomadnest port=5432 sslmode=disable", cfg.PostgresDSN())
}

func TestRabbitMQURL(t *testing.T) {
	cfg := &Config{RabbitMQUser: "guest", RabbitMQPassword: "guest", RabbitMQHost: "mq", RabbitMQPort: "5672"}

	assert.Equal(t, "amqp://guest:guest@mq:5672/", cfg.RabbitMQURL())
}
