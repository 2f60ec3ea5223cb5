package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds runtime settings.
type Config struct {
	Port            int           `mapstructure:"port"`
	DBPath          string        `mapstructure:"db_path"`
	SessionKey      string        `mapstructure:"session_key"`
	SecureCookie    bool          `mapstructure:"secure_cookie"`
	LogLevel        string        `mapstructure:"log_level"`
	LogFormat       string        `mapstructure:"log_format"`
	RateLimitRPS    float64       `mapstructure:"rate_limit_rps"`
	RateLimitBurst  int           `mapstructure:"rate_limit_burst"`
	ShutdownTimeout time.Duration `mapstructure:"shutdown_timeout"`
}

const minSessionKeyLen = 32

var keys = []string{
	"port", "db_path", "session_key", "secure_cookie", "log_level",
	"log_format", "rate_limit_rps", "rate_limit_burst", "shutdown_timeout",
}

// Load reads a local .env file if present, then the environment. A config
// file may be named with CONFIG_FILE; environment variables win over it.
func Load() (*Config, error) {
	_ = godotenv.Load()

	v := viper.New()
	v.SetDefault("port", 8080)
	v.SetDefault("db_path", "spendwise.db")
	v.SetDefault("session_key", "")
	v.SetDefault("secure_cookie", false)
	v.SetDefault("log_level", "info")
	v.SetDefault("log_format", "console")
	v.SetDefault("rate_limit_rps", 3.0)
	v.SetDefault("rate_limit_burst", 5)
	v.SetDefault("shutdown_timeout", 10*time.Second)

	v.AutomaticEnv()
	// AutomaticEnv only covers keys viper already knows about at Unmarshal time.
	for _, k := range keys {
		if err := v.BindEnv(k, strings.ToUpper(k)); err != nil {
			return nil, fmt.Errorf("bind %s: %w", k, err)
		}
	}

	if file := v.GetString("config_file"); file != "" {
		v.SetConfigFile(file)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("read config: %w", err)
		}
	}

	var c Config
	if err := v.Unmarshal(&c); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}
	return &c, nil
}

// Validate validates the configuration and returns an error if invalid
func (c *Config) Validate() error {
	var errors []string

	if c.Port < 1 || c.Port > 65535 {
		errors = append(errors, fmt.Sprintf("invalid port %d: must be between 1 and 65535", c.Port))
	}
	if strings.TrimSpace(c.DBPath) == "" {
		errors = append(errors, "database path cannot be empty")
	}
	if len(c.SessionKey) < minSessionKeyLen {
		errors = append(errors, fmt.Sprintf("SESSION_KEY must be at least %d bytes", minSessionKeyLen))
	}
	switch c.LogLevel {
	case "trace", "debug", "info", "warn", "error":
	default:
		errors = append(errors, fmt.Sprintf("invalid log level '%s'", c.LogLevel))
	}
	if c.LogFormat != "console" && c.LogFormat != "json" {
		errors = append(errors, fmt.Sprintf("invalid log format '%s': must be 'console' or 'json'", c.LogFormat))
	}
	if c.RateLimitRPS <= 0 {
		errors = append(errors, "rate limit rps must be positive")
	}
	if c.RateLimitBurst < 1 {
		errors = append(errors, "rate limit burst must be at least 1")
	}
	if c.ShutdownTimeout <= 0 {
		errors = append(errors, "shutdown timeout must be positive")
	}

	if len(errors) > 0 {
		return fmt.Errorf("configuration validation failed:\n- %s", strings.Join(errors, "\n- "))
	}
	return nil
}

// Addr is the listen address.
func (c *Config) Addr() string {
	return fmt.Sprintf(":%d", c.Port)
}
