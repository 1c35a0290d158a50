// Package config loads application configuration from file, environment,
// and defaults via viper.
package config

import (
	"fmt"
	"strings"

	"github.com/spf13/viper"
)

// Config represents application configuration
type Config struct {
	Server   ServerConfig   `mapstructure:"server"`
	Database DatabaseConfig `mapstructure:"database"`
	Board    BoardConfig    `mapstructure:"board"`
}

// ServerConfig represents HTTP server configuration
type ServerConfig struct {
	Port           int      `mapstructure:"port"`
	AllowedOrigins []string `mapstructure:"allowed_origins"`
}

// DatabaseConfig represents SQLite configuration
type DatabaseConfig struct {
	Path string `mapstructure:"path"`
}

// BoardConfig represents scheduling board tunables
type BoardConfig struct {
	// QuarterWeeks is the number of 7-day buckets in a quarter window.
	QuarterWeeks int `mapstructure:"quarter_weeks"`
}

// Load reads configuration from the given file path (optional), environment
// variables prefixed with STAFFING_, and built-in defaults.
func Load(path string) (*Config, error) {
	v := viper.New()

	v.SetDefault("server.port", 8080)
	v.SetDefault("server.allowed_origins", []string{"http://localhost:5173", "http://localhost:8080"})
	v.SetDefault("database.path", "staffing.db")
	v.SetDefault("board.quarter_weeks", 13)

	v.SetEnvPrefix("STAFFING")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("failed to read config %s: %w", path, err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) validate() error {
	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		return fmt.Errorf("invalid server port %d", c.Server.Port)
	}
	if c.Board.QuarterWeeks <= 0 {
		return fmt.Errorf("quarter_weeks must be positive, got %d", c.Board.QuarterWeeks)
	}
	return nil
}
