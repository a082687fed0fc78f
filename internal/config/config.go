// Package config defines the service configuration, loaded from a TOML file
// with FINLEDGER_* environment variable overrides.
package config

import (
	"fmt"
	"os"
	"strconv"

	"github.com/BurntSushi/toml"
	"github.com/joho/godotenv"
)

// Config is the root configuration structure.
type Config struct {
	Server   ServerConfig   `toml:"server"`
	Database DatabaseConfig `toml:"database"`
	LogLevel string         `toml:"log_level"`
	Seed     bool           `toml:"seed"`
}

// ServerConfig holds the HTTP listener parameters.
type ServerConfig struct {
	Addr string `toml:"addr"`
}

// DatabaseConfig holds the PostgreSQL connection parameters.
type DatabaseConfig struct {
	Host     string `toml:"host"`
	Port     int    `toml:"port"`
	User     string `toml:"user"`
	Password string `toml:"password"`
	Name     string `toml:"name"`
	SSLMode  string `toml:"ssl_mode"`
}

// ConnectionString assembles the lib/pq connection string.
func (c DatabaseConfig) ConnectionString() string {
	return fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		c.Host, c.Port, c.User, c.Password, c.Name, c.SSLMode)
}

// Defaults returns the configuration used when no file or overrides are
// present: a local postgres and the standard listen address.
func Defaults() Config {
	return Config{
		Server: ServerConfig{
			Addr: ":8080",
		},
		Database: DatabaseConfig{
			Host:    "localhost",
			Port:    5432,
			User:    "postgres",
			Name:    "finledger",
			SSLMode: "disable",
		},
		LogLevel: "info",
		Seed:     true,
	}
}

// Load reads the TOML file at path when it exists, merges it on top of the
// defaults and applies FINLEDGER_* environment overrides. A missing file is
// not an error; the defaults plus overrides apply.
func Load(path string) (*Config, error) {
	cfg := Defaults()

	if path != "" {
		if _, err := os.Stat(path); err == nil {
			if _, err := toml.DecodeFile(path, &cfg); err != nil {
				return nil, fmt.Errorf("failed to decode config file: %w", err)
			}
		}
	}

	// Load .env file if present (silently ignore if missing).
	_ = godotenv.Load()

	applyEnvOverrides(&cfg)

	return &cfg, nil
}

func applyEnvOverrides(cfg *Config) {
	setStr(&cfg.Server.Addr, "FINLEDGER_SERVER_ADDR")

	setStr(&cfg.Database.Host, "FINLEDGER_DATABASE_HOST")
	setInt(&cfg.Database.Port, "FINLEDGER_DATABASE_PORT")
	setStr(&cfg.Database.User, "FINLEDGER_DATABASE_USER")
	setStr(&cfg.Database.Password, "FINLEDGER_DATABASE_PASSWORD")
	setStr(&cfg.Database.Name, "FINLEDGER_DATABASE_NAME")
	setStr(&cfg.Database.SSLMode, "FINLEDGER_DATABASE_SSLMODE")

	setStr(&cfg.LogLevel, "FINLEDGER_LOG_LEVEL")
	setBool(&cfg.Seed, "FINLEDGER_SEED")
}

func setStr(dst *string, key string) {
	if v := os.Getenv(key); v != "" {
		*dst = v
	}
}

func setInt(dst *int, key string) {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			*dst = n
		}
	}
}

func setBool(dst *bool, key string) {
	if v := os.Getenv(key); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			*dst = b
		}
	}
}
