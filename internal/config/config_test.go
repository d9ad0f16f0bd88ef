package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func write(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoad_MissingFileUsesDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
}

func TestLoad_YAML(t *testing.T) {
	path := write(t, "onboard.yaml", `
addr: ":9000"
metrics_addr: ":9100"
store:
  backend: redis
  ttl: 10m
  redis:
    addr: "redis:6379"
    db: 2
log:
  level: debug
  format: json
`)

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, ":9000", cfg.Addr)
	assert.Equal(t, ":9100", cfg.MetricsAddr)
	assert.Equal(t, StoreRedis, cfg.Store.Backend)
	assert.Equal(t, 10*time.Minute, cfg.Store.TTL)
	assert.Equal(t, 30*time.Second, cfg.Store.LockTTL, "unset keys keep defaults")
	assert.Equal(t, "redis:6379", cfg.Store.Redis.Addr)
	assert.Equal(t, 2, cfg.Store.Redis.DB)
	assert.Equal(t, "json", cfg.Log.Format)
}

func TestLoad_JSON(t *testing.T) {
	path := write(t, "onboard.json", `{"addr": ":7000", "log": {"level": "warn"}}`)

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, ":7000", cfg.Addr)
	assert.Equal(t, "warn", cfg.Log.Level)
	assert.Equal(t, StoreMemory, cfg.Store.Backend)
}

func TestLoad_Invalid(t *testing.T) {
	_, err := Load(write(t, "bad.yaml", "store:\n  backend: etcd\n"))
	assert.ErrorContains(t, err, "unknown store backend")

	_, err = Load(write(t, "broken.yaml", "addr: [\n"))
	assert.Error(t, err)
}

func TestLoadRecord(t *testing.T) {
	path := write(t, "jane.yaml", `
name: Jane Doe
email: jane@example.com
dateOfBirth: "1990-03-10"
termsAccepted: true
`)

	values, err := LoadRecord(path)
	require.NoError(t, err)
	assert.Equal(t, "Jane Doe", values["name"])
	assert.Equal(t, "1990-03-10", values["dateOfBirth"])
	assert.Equal(t, true, values["termsAccepted"])

	values, err = LoadRecord(write(t, "jane.json", `{"name": "Jane", "termsAccepted": "on"}`))
	require.NoError(t, err)
	assert.Equal(t, "on", values["termsAccepted"])

	_, err = LoadRecord(filepath.Join(t.TempDir(), "missing.json"))
	assert.Error(t, err)
}
