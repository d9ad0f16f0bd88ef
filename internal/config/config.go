// Package config loads the host configuration for the onboard binaries.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// Store backends.
const (
	StoreMemory = "memory"
	StoreRedis  = "redis"
)

// Config is the shape of onboard.yaml.
type Config struct {
	Addr        string      `yaml:"addr" json:"addr"`
	MetricsAddr string      `yaml:"metrics_addr" json:"metrics_addr"`
	Store       StoreConfig `yaml:"store" json:"store"`
	Log         LogConfig   `yaml:"log" json:"log"`
}

// StoreConfig selects where in-progress sessions live.
type StoreConfig struct {
	Backend    string           `yaml:"backend" json:"backend"`
	Redis      RedisConfig      `yaml:"redis" json:"redis"`
	TTL        time.Duration    `yaml:"ttl" json:"ttl"`
	LockTTL    time.Duration    `yaml:"lock_ttl" json:"lock_ttl"`
	Prefix     string           `yaml:"prefix" json:"prefix"`
	Encryption EncryptionConfig `yaml:"encryption" json:"encryption"`
}

// EncryptionConfig enables AES-GCM sealing of stored sessions.
// Keys are base64-encoded 32-byte values.
type EncryptionConfig struct {
	Key          string   `yaml:"key" json:"key"`
	FallbackKeys []string `yaml:"fallback_keys" json:"fallback_keys"`
}

// Enabled reports whether an active key is configured.
func (e EncryptionConfig) Enabled() bool { return e.Key != "" }

// RedisConfig holds connection settings for the redis backend.
type RedisConfig struct {
	Addr     string `yaml:"addr" json:"addr"`
	Password string `yaml:"password" json:"password"`
	DB       int    `yaml:"db" json:"db"`
}

// LogConfig controls the slog handler.
type LogConfig struct {
	Level  string `yaml:"level" json:"level"`
	Format string `yaml:"format" json:"format"`
}

// Default returns the configuration used when no file is present.
func Default() Config {
	return Config{
		Addr:        ":8080",
		MetricsAddr: "",
		Store: StoreConfig{
			Backend: StoreMemory,
			Redis:   RedisConfig{Addr: "localhost:6379"},
			TTL:     30 * time.Minute,
			LockTTL: 30 * time.Second,
		},
		Log: LogConfig{Level: "info", Format: "text"},
	}
}

// Load reads a YAML or JSON file on top of Default.
// A missing file is not an error: the defaults are returned.
func Load(path string) (Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return cfg, fmt.Errorf("failed to read config: %w", err)
	}

	if err := decode(path, data, &cfg); err != nil {
		return cfg, fmt.Errorf("failed to parse %s: %w", filepath.Base(path), err)
	}
	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// Validate reports settings that cannot work together.
func (c Config) Validate() error {
	switch c.Store.Backend {
	case StoreMemory:
	case StoreRedis:
		if c.Store.Redis.Addr == "" {
			return fmt.Errorf("store.redis.addr is required for the redis backend")
		}
	default:
		return fmt.Errorf("unknown store backend %q", c.Store.Backend)
	}
	if c.Store.TTL < 0 || c.Store.LockTTL < 0 {
		return fmt.Errorf("store ttls must not be negative")
	}
	return nil
}

// decode picks the codec from the file extension, defaulting to YAML.
func decode(path string, data []byte, out any) error {
	if strings.ToLower(filepath.Ext(path)) == ".json" {
		return json.Unmarshal(data, out)
	}
	return yaml.Unmarshal(data, out)
}
