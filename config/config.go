// Package config loads kvsessiond settings from a YAML file, then applies
// KVSESSION_* environment overrides and validates the result.
package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/zdnscloud/cement/log"
	"gopkg.in/yaml.v3"
)

const (
	DriverBolt   = "bolt"
	DriverSqlite = "sqlite"
	DriverMemory = "memory"
)

const envPrefix = "KVSESSION_"

type Config struct {
	Server    ServerConfig    `yaml:"server"`
	Storage   StorageConfig   `yaml:"storage"`
	Migration MigrationConfig `yaml:"migration"`
	Log       LogConfig       `yaml:"log"`
}

type ServerConfig struct {
	Addr string `yaml:"addr"`

	//empty disables the HTTP gateway
	HTTPAddr string `yaml:"http_addr"`
}

type StorageConfig struct {
	Driver string `yaml:"driver"`
	Dir    string `yaml:"dir"`
}

type MigrationConfig struct {
	LockDir string `yaml:"lock_dir"`
	Retries int    `yaml:"retries"`
}

type LogConfig struct {
	Level string `yaml:"level"`
}

func Default() *Config {
	return &Config{
		Server: ServerConfig{
			Addr: "127.0.0.1:5555",
		},
		Storage: StorageConfig{
			Driver: DriverBolt,
			Dir:    "./data",
		},
		Migration: MigrationConfig{
			Retries: 3,
		},
		Log: LogConfig{
			Level: "info",
		},
	}
}

// Load reads path over the defaults, an empty path skips the file.
func Load(path string) (*Config, error) {
	cfg := Default()

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("read config file: %w", err)
		}
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parse config file: %w", err)
		}
	}

	if err := applyEnvOverrides(cfg); err != nil {
		return nil, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("validate config: %w", err)
	}
	return cfg, nil
}

func applyEnvOverrides(cfg *Config) error {
	if v := os.Getenv(envPrefix + "SERVER_ADDR"); v != "" {
		cfg.Server.Addr = v
	}
	if v := os.Getenv(envPrefix + "SERVER_HTTP_ADDR"); v != "" {
		cfg.Server.HTTPAddr = v
	}
	if v := os.Getenv(envPrefix + "STORAGE_DRIVER"); v != "" {
		cfg.Storage.Driver = v
	}
	if v := os.Getenv(envPrefix + "STORAGE_DIR"); v != "" {
		cfg.Storage.Dir = v
	}
	if v := os.Getenv(envPrefix + "MIGRATION_LOCK_DIR"); v != "" {
		cfg.Migration.LockDir = v
	}
	if v := os.Getenv(envPrefix + "MIGRATION_RETRIES"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("%sMIGRATION_RETRIES %q isn't a number", envPrefix, v)
		}
		cfg.Migration.Retries = n
	}
	if v := os.Getenv(envPrefix + "LOG_LEVEL"); v != "" {
		cfg.Log.Level = v
	}
	return nil
}

func (c *Config) Validate() error {
	var errs []string

	if c.Server.Addr == "" {
		errs = append(errs, "server.addr is required")
	}

	switch c.Storage.Driver {
	case DriverBolt, DriverSqlite:
		if c.Storage.Dir == "" {
			errs = append(errs, "storage.dir is required for driver "+c.Storage.Driver)
		}
	case DriverMemory:
	default:
		errs = append(errs, fmt.Sprintf("storage.driver %q isn't one of bolt, sqlite, memory", c.Storage.Driver))
	}

	if c.Migration.Retries < 0 {
		errs = append(errs, "migration.retries can't be negative")
	}

	switch strings.ToLower(c.Log.Level) {
	case "debug", "info", "warn", "error":
	default:
		errs = append(errs, fmt.Sprintf("log.level %q isn't one of debug, info, warn, error", c.Log.Level))
	}

	if len(errs) > 0 {
		return fmt.Errorf("%s", strings.Join(errs, "; "))
	}
	return nil
}

func (c *Config) InitLogger() {
	switch strings.ToLower(c.Log.Level) {
	case "debug":
		log.InitLogger(log.Debug)
	case "warn":
		log.InitLogger(log.Warn)
	case "error":
		log.InitLogger(log.Error)
	default:
		log.InitLogger(log.Info)
	}
}
