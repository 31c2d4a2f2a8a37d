package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/viper"

	"github.com/julianstephens/habithub/internal/constants"
)

// Config is the resolved application configuration.
type Config struct {
	Database       string        `mapstructure:"database"`
	Debug          bool          `mapstructure:"debug"`
	RequestTimeout time.Duration `mapstructure:"request_timeout"`
	RateLimit      float64       `mapstructure:"rate_limit"`
	SessionTTL     time.Duration `mapstructure:"session_ttl"`
	ResetRedirect  string        `mapstructure:"reset_redirect"`
	Retry          RetryConfig   `mapstructure:"retry"`
}

// RetryConfig controls the backoff applied to backend calls.
type RetryConfig struct {
	MaxAttempts int           `mapstructure:"max_attempts"`
	BaseDelay   time.Duration `mapstructure:"base_delay"`
}

// Dir returns the directory holding the config file, logs and the default
// SQLite database.
func Dir() string {
	return ExpandPath(constants.DefaultConfigDir)
}

// FilePath returns the default config file location.
func FilePath() string {
	return filepath.Join(Dir(), constants.DefaultConfigFile)
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("database", constants.DefaultConfigPath)
	v.SetDefault("debug", false)
	v.SetDefault("request_timeout", constants.DefaultRequestTimeout)
	v.SetDefault("rate_limit", float64(constants.DefaultRateLimit))
	v.SetDefault("session_ttl", constants.DefaultSessionTTL)
	v.SetDefault("reset_redirect", constants.ResetRedirectURL)
	v.SetDefault("retry.max_attempts", constants.DefaultRetryAttempts)
	v.SetDefault("retry.base_delay", constants.DefaultRetryBaseDelay)
}

// Load reads defaults, then the YAML file at path (skipped when it does not
// exist), then HABITHUB_* environment variables. An empty path means the
// default location.
func Load(path string) (*Config, error) {
	v := viper.New()
	setDefaults(v)

	v.SetEnvPrefix(constants.EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if path == "" {
		path = FilePath()
	}
	path = ExpandPath(path)
	if _, err := os.Stat(path); err == nil {
		v.SetConfigFile(path)
		v.SetConfigType("yaml")
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("failed to read config %s: %w", path, err)
		}
	} else if !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("failed to access config %s: %w", path, err)
	}

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("failed to decode config: %w", err)
	}
	cfg.Database = ExpandPath(cfg.Database)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate rejects values the rest of the application cannot work with.
func (c *Config) Validate() error {
	if c.Retry.MaxAttempts < 1 {
		return fmt.Errorf("retry.max_attempts must be at least 1, got %d", c.Retry.MaxAttempts)
	}
	if c.Retry.BaseDelay < 0 {
		return fmt.Errorf("retry.base_delay must not be negative")
	}
	if c.RateLimit <= 0 {
		return fmt.Errorf("rate_limit must be positive, got %v", c.RateLimit)
	}
	if c.SessionTTL <= 0 {
		return fmt.Errorf("session_ttl must be positive")
	}
	return nil
}

// IsPostgres reports whether the database setting is a PostgreSQL URL.
func (c *Config) IsPostgres() bool {
	return IsPostgresURL(c.Database)
}

// IsPostgresURL reports whether s is a postgres:// or postgresql:// URL.
func IsPostgresURL(s string) bool {
	return strings.HasPrefix(s, "postgres://") || strings.HasPrefix(s, "postgresql://")
}

// ExpandPath resolves a leading "~/" against the user's home directory.
func ExpandPath(p string) string {
	if !strings.HasPrefix(p, "~/") {
		return p
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return p
	}
	return filepath.Join(home, p[2:])
}
