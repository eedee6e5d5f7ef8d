package config

import (
	"fmt"
	"os"

	"github.com/goccy/go-yaml"
	"github.com/kelseyhightower/envconfig"
)

// Config holds all application configuration.
type Config struct {
	Server    ServerConfig    `yaml:"server"`
	Storage   StorageConfig   `yaml:"storage"`
	Batch     BatchConfig     `yaml:"batch"`
	Bridge    BridgeConfig    `yaml:"bridge"`
	Logging   LogConfig       `yaml:"logging"`
	RateLimit RateLimitConfig `yaml:"rate_limit"`
}

// ServerConfig holds HTTP server configuration.
type ServerConfig struct {
	Port string `envconfig:"PORT" yaml:"port"`
	Host string `envconfig:"HOST" yaml:"host"`
}

// StorageConfig holds session persistence configuration.
type StorageConfig struct {
	Dir        string `envconfig:"DATA_DIR" yaml:"dir"`
	QuotaBytes int64  `envconfig:"STORAGE_QUOTA" yaml:"quota_bytes"`
}

// BatchConfig holds chunked execution configuration.
type BatchConfig struct {
	ChunkSize int `envconfig:"BATCH_CHUNK_SIZE" yaml:"chunk_size"`
}

// BridgeConfig holds browser bridge configuration.
type BridgeConfig struct {
	CommandTimeoutSeconds int `envconfig:"BRIDGE_TIMEOUT" yaml:"command_timeout_seconds"`
}

// LogConfig holds logging configuration.
type LogConfig struct {
	Level       string `envconfig:"LOG_LEVEL" yaml:"level"`
	Development bool   `envconfig:"LOG_DEV" yaml:"development"`
}

// RateLimitConfig holds rate limiting configuration.
type RateLimitConfig struct {
	RequestsPerSecond int  `envconfig:"RATE_LIMIT_RPS" yaml:"requests_per_second"`
	Burst             int  `envconfig:"RATE_LIMIT_BURST" yaml:"burst"`
	Enabled           bool `envconfig:"RATE_LIMIT_ENABLED" yaml:"enabled"`
}

// Load loads configuration from environment variables. When path is
// non-empty, the YAML file is applied first and environment variables
// override it.
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

	if err := envconfig.Process("", cfg); err != nil {
		return nil, fmt.Errorf("load config from env: %w", err)
	}
	return cfg, nil
}

// LoadOrDefault loads configuration from the environment or falls back
// to defaults.
func LoadOrDefault() *Config {
	cfg, err := Load(os.Getenv("CONFIG_FILE"))
	if err != nil {
		return Default()
	}
	return cfg
}

// Default returns default configuration.
func Default() *Config {
	return &Config{
		Server: ServerConfig{
			Port: "8787",
			Host: "127.0.0.1",
		},
		Storage: StorageConfig{
			Dir:        "./data",
			QuotaBytes: 10485760,
		},
		Batch: BatchConfig{
			ChunkSize: 50,
		},
		Bridge: BridgeConfig{
			CommandTimeoutSeconds: 10,
		},
		Logging: LogConfig{
			Level:       "info",
			Development: false,
		},
		RateLimit: RateLimitConfig{
			RequestsPerSecond: 100,
			Burst:             200,
			Enabled:           true,
		},
	}
}
