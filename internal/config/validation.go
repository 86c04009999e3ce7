package config

import (
	"fmt"
	"net"

	"github.com/treelot/treelotd/internal/storage/journal"
	"github.com/treelot/treelotd/internal/storage/kvstore"
)

// ValidateConfig checks the complete configuration for consistency.
func ValidateConfig(cfg *Config) error {
	if err := validateAddress("server.rpc_address", cfg.Server.RPCAddress); err != nil {
		return err
	}
	if cfg.Server.GRPCAddress != "" {
		if err := validateAddress("server.grpc_address", cfg.Server.GRPCAddress); err != nil {
			return err
		}
	}

	switch cfg.Storage.Backend {
	case kvstore.BackendPebble, kvstore.BackendLevelDB:
	default:
		return fmt.Errorf("unknown storage.backend %q", cfg.Storage.Backend)
	}
	if cfg.Storage.Path == "" {
		return fmt.Errorf("storage.path is required")
	}
	if cfg.Storage.CacheSize < 0 {
		return fmt.Errorf("storage.cache_size cannot be negative")
	}

	switch cfg.Journal.Backend {
	case journal.BackendSQLite, journal.BackendPostgres:
	default:
		return fmt.Errorf("unknown journal.backend %q", cfg.Journal.Backend)
	}
	if cfg.Journal.DSN == "" {
		return fmt.Errorf("journal.dsn is required")
	}

	switch cfg.LogLevel {
	case "trace", "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("unknown log_level %q", cfg.LogLevel)
	}

	return nil
}

func validateAddress(field, addr string) error {
	if addr == "" {
		return fmt.Errorf("%s is required", field)
	}
	if _, _, err := net.SplitHostPort(addr); err != nil {
		return fmt.Errorf("invalid %s: %w", field, err)
	}
	return nil
}
