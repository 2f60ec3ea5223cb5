package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validConfig() *Config {
	return &Config{
		Port:            8080,
		DBPath:          "spendwise.db",
		SessionKey:      "0123456789abcdef0123456789abcdef",
		LogLevel:        "info",
		LogFormat:       "console",
		RateLimitRPS:    3,
		RateLimitBurst:  5,
		ShutdownTimeout: 10 * time.Second,
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		edit    func(c *Config)
		wantErr string
	}{
		{"valid", func(c *Config) {}, ""},
		{"port too high", func(c *Config) { c.Port = 70000 }, "invalid port 70000"},
		{"port zero", func(c *Config) { c.Port = 0 }, "invalid port 0"},
		{"empty db path", func(c *Config) { c.DBPath = " " }, "database path cannot be empty"},
		{"short session key", func(c *Config) { c.SessionKey = "short" }, "SESSION_KEY must be at least 32 bytes"},
		{"bad level", func(c *Config) { c.LogLevel = "loud" }, "invalid log level 'loud'"},
		{"bad format", func(c *Config) { c.LogFormat = "xml" }, "invalid log format 'xml'"},
		{"zero rps", func(c *Config) { c.RateLimitRPS = 0 }, "rate limit rps must be positive"},
		{"zero burst", func(c *Config) { c.RateLimitBurst = 0 }, "rate limit burst must be at least 1"},
		{"zero timeout", func(c *Config) { c.ShutdownTimeout = 0 }, "shutdown timeout must be positive"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := validConfig()
			tt.edit(c)
			err := c.Validate()
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestValidateCollectsAllProblems(t *testing.T) {
	c := validConfig()
	c.Port = -1
	c.SessionKey = ""
	err := c.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid port -1")
	assert.Contains(t, err.Error(), "SESSION_KEY")
}

func TestLoadDefaults(t *testing.T) {
	t.Chdir(t.TempDir())

	c, err := Load()
	require.NoError(t, err)
	assert.Equal(t, 8080, c.Port)
	assert.Equal(t, "spendwise.db", c.DBPath)
	assert.Equal(t, "console", c.LogFormat)
	assert.Equal(t, 10*time.Second, c.ShutdownTimeout)
	assert.Equal(t, ":8080", c.Addr())
}

func TestLoadFromEnv(t *testing.T) {
	t.Chdir(t.TempDir())
	t.Setenv("PORT", "9090")
	t.Setenv("DB_PATH", "/tmp/x.db")
	t.Setenv("SECURE_COOKIE", "true")
	t.Setenv("SHUTDOWN_TIMEOUT", "3s")

	c, err := Load()
	require.NoError(t, err)
	assert.Equal(t, 9090, c.Port)
	assert.Equal(t, "/tmp/x.db", c.DBPath)
	assert.True(t, c.SecureCookie)
	assert.Equal(t, 3*time.Second, c.ShutdownTimeout)
}

func TestLoadDotEnv(t *testing.T) {
	dir := t.TempDir()
	t.Chdir(dir)
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".env"), []byte("LOG_LEVEL=debug\n"), 0o600))
	t.Cleanup(func() { os.Unsetenv("LOG_LEVEL") })

	c, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "debug", c.LogLevel)
}
