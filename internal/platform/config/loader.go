package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// LoadConfig reads app-config.yaml from the working directory. Every key is
// also overridable through the environment (FILMLOG_AUTH_SECRET_KEY etc.).
func LoadConfig() (*Config, error) {
	v := viper.New()
	v.SetConfigName("app-config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")

	v.SetEnvPrefix("FILMLOG")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("error reading config file: %w", err)
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unable to decode config: %w", err)
	}

	return &cfg, nil
}

// AccessTokenTTL parses the configured access token expiry, defaulting to
// 15 minutes when unset or invalid.
func (a AuthConfig) AccessTokenTTL() time.Duration {
	return parseTTL(a.AccessTokenExpiry, 15*time.Minute)
}

// RefreshTokenTTL parses the configured refresh token expiry, defaulting to
// 7 days when unset or invalid.
func (a AuthConfig) RefreshTokenTTL() time.Duration {
	return parseTTL(a.RefreshTokenExpiry, 7*24*time.Hour)
}

func parseTTL(raw string, fallback time.Duration) time.Duration {
	if raw == "" {
		return fallback
	}
	d, err := time.ParseDuration(raw)
	if err != nil || d <= 0 {
		return fallback
	}
	return d
}
