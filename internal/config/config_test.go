package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "treelotd.toml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoadConfigDefaults(t *testing.T) {
	cfg, err := LoadConfig("")
	require.NoError(t, err)

	require.Equal(t, "127.0.0.1:5005", cfg.Server.RPCAddress)
	require.Equal(t, "127.0.0.1:50051", cfg.Server.GRPCAddress)
	require.Equal(t, "pebble", cfg.Storage.Backend)
	require.Equal(t, 64, cfg.Storage.CacheSize)
	require.Equal(t, "sqlite", cfg.Journal.Backend)
	require.Equal(t, uint64(10), cfg.Contract.TreesPerLot)
	require.Equal(t, "info", cfg.LogLevel)
}

func TestLoadConfigFromFile(t *testing.T) {
	path := writeConfig(t, `
log_level = "debug"

[server]
rpc_address = "0.0.0.0:8080"
grpc_address = ""

[storage]
backend = "leveldb"
path = "/tmp/treelot-test/db"
cache_size = 8

[journal]
backend = "sqlite"
dsn = "/tmp/treelot-test/journal.db"

[contract]
admin = "ad00000000000000000000000000000000000000"
trees_per_lot = 25
settlement_name = "USD Stable"
`)

	cfg, err := LoadConfig(path)
	require.NoError(t, err)

	require.Equal(t, "0.0.0.0:8080", cfg.Server.RPCAddress)
	require.Empty(t, cfg.Server.GRPCAddress)
	require.Equal(t, "leveldb", cfg.Storage.Backend)
	require.Equal(t, 8, cfg.Storage.CacheSize)
	require.Equal(t, uint64(25), cfg.Contract.TreesPerLot)
	require.Equal(t, "USD Stable", cfg.Contract.SettlementName)
	require.Equal(t, "debug", cfg.LogLevel)
	require.Equal(t, path, cfg.GetConfigPath())
}

func TestLoadConfigMissingFile(t *testing.T) {
	_, err := LoadConfig(filepath.Join(t.TempDir(), "nope.toml"))
	require.Error(t, err)
}

func TestValidateConfig(t *testing.T) {
	base := func() *Config {
		cfg, err := LoadConfig("")
		require.NoError(t, err)
		return cfg
	}

	testcases := []struct {
		name   string
		mutate func(*Config)
	}{
		{"bad rpc address", func(c *Config) { c.Server.RPCAddress = "no-port" }},
		{"bad grpc address", func(c *Config) { c.Server.GRPCAddress = "no-port" }},
		{"unknown storage backend", func(c *Config) { c.Storage.Backend = "bolt" }},
		{"empty storage path", func(c *Config) { c.Storage.Path = "" }},
		{"negative cache size", func(c *Config) { c.Storage.CacheSize = -1 }},
		{"unknown journal backend", func(c *Config) { c.Journal.Backend = "mysql" }},
		{"empty journal dsn", func(c *Config) { c.Journal.DSN = "" }},
		{"unknown log level", func(c *Config) { c.LogLevel = "loud" }},
	}

	for _, tc := range testcases {
		t.Run(tc.name, func(t *testing.T) {
			cfg := base()
			tc.mutate(cfg)
			require.Error(t, ValidateConfig(cfg))
		})
	}
}
