// Package config loads the daemon configuration from TOML, environment
// variables, and built-in defaults.
package config

import "path/filepath"

// Config is the complete treelotd configuration.
type Config struct {
	// Server section: the daemon's listening surfaces.
	Server ServerConfig `toml:"server" mapstructure:"server"`

	// Storage section: the snapshot store substrate.
	Storage StorageConfig `toml:"storage" mapstructure:"storage"`

	// Journal section: the operation audit trail.
	Journal JournalConfig `toml:"journal" mapstructure:"journal"`

	// Contract section: genesis parameters applied when no saved state
	// exists yet.
	Contract ContractConfig `toml:"contract" mapstructure:"contract"`

	// LogLevel is a zerolog level name (trace, debug, info, warn, error).
	LogLevel string `toml:"log_level" mapstructure:"log_level"`

	configPath string `toml:"-" mapstructure:"-"`
}

// ServerConfig holds the listening addresses.
type ServerConfig struct {
	// RPCAddress is the JSON-RPC HTTP listen address.
	RPCAddress string `toml:"rpc_address" mapstructure:"rpc_address"`

	// GRPCAddress is the gRPC listen address. Empty disables gRPC.
	GRPCAddress string `toml:"grpc_address" mapstructure:"grpc_address"`
}

// StorageConfig selects and locates the key-value backend.
type StorageConfig struct {
	// Backend is "pebble" or "leveldb".
	Backend string `toml:"backend" mapstructure:"backend"`

	// Path is the database directory.
	Path string `toml:"path" mapstructure:"path"`

	// CacheSize is the number of decoded snapshots cached in memory.
	CacheSize int `toml:"cache_size" mapstructure:"cache_size"`
}

// JournalConfig selects the operation journal backend.
type JournalConfig struct {
	// Backend is "sqlite" or "postgres".
	Backend string `toml:"backend" mapstructure:"backend"`

	// DSN is the backend connection string; for sqlite, a file path.
	DSN string `toml:"dsn" mapstructure:"dsn"`
}

// ContractConfig holds the genesis parameters. Used only when the daemon
// starts with no saved snapshot.
type ContractConfig struct {
	// Admin is the hex-encoded admin account ID.
	Admin string `toml:"admin" mapstructure:"admin"`

	// TreesPerLot is the trees-per-lot conversion unit.
	TreesPerLot uint64 `toml:"trees_per_lot" mapstructure:"trees_per_lot"`

	// SettlementName is the display name given to the settlement asset
	// class created at genesis.
	SettlementName string `toml:"settlement_name" mapstructure:"settlement_name"`
}

// GetConfigPath returns the path the configuration was loaded from.
func (c *Config) GetConfigPath() string {
	return c.configPath
}

// DefaultConfigPath returns the default configuration file location.
func DefaultConfigPath() string {
	return "treelotd.toml"
}

// ConfigPathFromDir returns the configuration path inside dir.
func ConfigPathFromDir(dir string) string {
	return filepath.Join(dir, "treelotd.toml")
}
