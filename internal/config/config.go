package config

import (
	"fmt"

	"github.com/spf13/viper"
)

// Config holds all runtime configuration for golive.
// Values are populated from .golive.yaml, GOLIVE_* env vars, and CLI flags.
type Config struct {
	DBDriver      string `mapstructure:"db_driver"`
	DSN           string `mapstructure:"dsn"`
	CatalogPath   string `mapstructure:"catalog_path"`
	DefaultZoom   string `mapstructure:"default_zoom"`
	TelemetryPath string `mapstructure:"telemetry_path"`
	Verbose       bool   `mapstructure:"verbose"`
}

// Load reads configuration from viper, applying built-in defaults for any
// values not set by config file, environment, or flags.
func Load() (Config, error) {
	viper.SetDefault("db_driver", "sqlite")
	viper.SetDefault("dsn", ".golive/golive.db")
	viper.SetDefault("catalog_path", ".golive/catalog.toml")
	viper.SetDefault("default_zoom", "week")
	viper.SetDefault("telemetry_path", ".golive/telemetry.jsonl")
	viper.SetDefault("verbose", false)

	var cfg Config
	if err := viper.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("config: unmarshal: %w", err)
	}
	return cfg, nil
}
