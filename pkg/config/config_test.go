package config

import (
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestLoad_Defaults(t *testing.T) {
	os.Unsetenv("SERVER_PORT")
	os.Unsetenv("BACKEND_BASE_URL")
	os.Unsetenv("BACKEND_TIMEOUT")

	cfg, err := Load()
	assert.NoError(t, err)

	assert.Equal(t, "0.0.0.0", cfg.Server.Host)
	assert.Equal(t, 8080, cfg.Server.Port)
	assert.Equal(t, "http://localhost:9000", cfg.Backend.BaseURL)
	assert.Equal(t, 10*time.Second, cfg.Backend.Timeout)
	assert.Equal(t, "development", cfg.Env)
	assert.False(t, cfg.OTEL.Enabled)
}

func TestLoad_BackendConfig(t *testing.T) {
	os.Setenv("BACKEND_BASE_URL", "https://api.example.com")
	os.Setenv("BACKEND_API_KEY", "test-key")
	os.Setenv("BACKEND_TENANT_ID", "tenant-1")
	os.Setenv("BACKEND_TIMEOUT", "5s")
	defer func() {
		os.Unsetenv("BACKEND_BASE_URL")
		os.Unsetenv("BACKEND_API_KEY")
		os.Unsetenv("BACKEND_TENANT_ID")
		os.Unsetenv("BACKEND_TIMEOUT")
	}()

	cfg, err := Load()
	assert.NoError(t, err)

	assert.Equal(t, "https://api.example.com", cfg.Backend.BaseURL)
	assert.Equal(t, "test-key", cfg.Backend.APIKey)
	assert.Equal(t, "tenant-1", cfg.Backend.TenantID)
	assert.Equal(t, 5*time.Second, cfg.Backend.Timeout)
}

func TestRedisAddr(t *testing.T) {
	cfg := RedisConfig{Host: "redis.internal", Port: 6380}
	assert.Equal(t, "redis.internal:6380", cfg.RedisAddr())
}
