// Package config loads application configuration from a YAML file with
// environment overrides for secrets.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/viper"
)

// ServerConfig holds HTTP listener settings.
type ServerConfig struct {
	Addr string `mapstructure:"addr" yaml:"addr"`
}

// DatabaseConfig holds SQLite settings.
type DatabaseConfig struct {
	Path string `mapstructure:"path" yaml:"path"`
}

// AuthConfig holds token-signing settings. The secret may also come
// from the TASKDESK_JWT_SECRET environment variable, which wins over
// the file.
type AuthConfig struct {
	JWTSecret     string `mapstructure:"jwt_secret" yaml:"jwt_secret"`
	TokenTTLHours int    `mapstructure:"token_ttl_hours" yaml:"token_ttl_hours"`
}

// ReminderConfig holds due-date reminder settings.
type ReminderConfig struct {
	DueSoonDays int `mapstructure:"due_soon_days" yaml:"due_soon_days"`
}

// Config is the top-level application configuration.
type Config struct {
	Server    ServerConfig   `mapstructure:"server" yaml:"server"`
	Database  DatabaseConfig `mapstructure:"database" yaml:"database"`
	Auth      AuthConfig     `mapstructure:"auth" yaml:"auth"`
	Reminders ReminderConfig `mapstructure:"reminders" yaml:"reminders"`
}

// TokenTTL returns the configured token lifetime as a duration.
func (c *Config) TokenTTL() time.Duration {
	return time.Duration(c.Auth.TokenTTLHours) * time.Hour
}

// DueSoonWindow returns the reminder window as a duration.
func (c *Config) DueSoonWindow() time.Duration {
	return time.Duration(c.Reminders.DueSoonDays) * 24 * time.Hour
}

// DefaultConfigPath returns the default path for the configuration
// file, located at ~/.config/taskdesk/config.yaml.
func DefaultConfigPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(".", "config.yaml")
	}
	return filepath.Join(home, ".config", "taskdesk", "config.yaml")
}

func defaultConfig() *Config {
	return &Config{
		Server:    ServerConfig{Addr: ":8080"},
		Database:  DatabaseConfig{Path: "taskdesk.db"},
		Auth:      AuthConfig{TokenTTLHours: 24},
		Reminders: ReminderConfig{DueSoonDays: 3},
	}
}

// Load reads configuration from the given YAML file path using Viper.
// If the file does not exist, it returns the defaults.
func Load(path string) (*Config, error) {
	v := viper.New()
	v.SetConfigFile(path)
	v.SetConfigType("yaml")

	v.SetDefault("server.addr", ":8080")
	v.SetDefault("database.path", "taskdesk.db")
	v.SetDefault("auth.token_ttl_hours", 24)
	v.SetDefault("reminders.due_soon_days", 3)

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(*os.PathError); ok {
			return applyEnv(defaultConfig()), nil
		}
		if _, ok := err.(viper.ConfigFileNotFoundError); ok {
			return applyEnv(defaultConfig()), nil
		}
		return nil, fmt.Errorf("reading config %s: %w", path, err)
	}

	cfg := defaultConfig()
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("parsing config %s: %w", path, err)
	}

	return applyEnv(cfg), nil
}

// applyEnv lets the environment override the signing secret so it can
// stay out of the config file.
func applyEnv(cfg *Config) *Config {
	if secret := os.Getenv("TASKDESK_JWT_SECRET"); secret != "" {
		cfg.Auth.JWTSecret = secret
	}
	return cfg
}
