// Package config loads server configuration from an optional .env file and
// prefixed environment variables.
package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/viper"
)

// envPrefix namespaces the server's environment variables
// (DATADECK_ADDR, DATADECK_MAX_ROWS, ...).
const envPrefix = "DATADECK_"

// Config holds the server configuration.
type Config struct {
	Addr           string `mapstructure:"addr"`
	MaxUploadBytes int64  `mapstructure:"max_upload_bytes"`
	MaxRows        int    `mapstructure:"max_rows"`
	LogLevel       string `mapstructure:"log_level"`
	LogFormat      string `mapstructure:"log_format"`
}

// Default returns the configuration used when nothing is overridden.
func Default() Config {
	return Config{
		Addr:           ":8080",
		MaxUploadBytes: 10 << 20, // 10MB
		MaxRows:        100000,
		LogLevel:       "INFO",
		LogFormat:      "json",
	}
}

// Load merges defaults, an optional .env file, and DATADECK_-prefixed
// environment variables into a Config. Environment keys map by replacing
// underscores after the prefix: DATADECK_MAX_ROWS -> max_rows.
func Load() (Config, error) {
	v := viper.New()

	cfg := Default()
	v.SetDefault("addr", cfg.Addr)
	v.SetDefault("max_upload_bytes", cfg.MaxUploadBytes)
	v.SetDefault("max_rows", cfg.MaxRows)
	v.SetDefault("log_level", cfg.LogLevel)
	v.SetDefault("log_format", cfg.LogFormat)

	// .env is optional; only a parse failure matters.
	v.SetConfigFile(".env")
	v.SetConfigType("env")
	if err := v.ReadInConfig(); err != nil {
		if _, notFound := err.(viper.ConfigFileNotFoundError); !notFound && !os.IsNotExist(err) {
			return Config{}, fmt.Errorf("failed to read .env: %w", err)
		}
	}

	for _, envStr := range os.Environ() {
		pair := strings.SplitN(envStr, "=", 2)
		key, value := pair[0], pair[1]
		if strings.HasPrefix(key, envPrefix) {
			propKey := strings.ToLower(strings.TrimPrefix(key, envPrefix))
			v.Set(propKey, value)
		}
	}

	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("failed to unmarshal config: %w", err)
	}
	return cfg, nil
}
