package config

import "github.com/spf13/viper"

// setDefaults sets the built-in default values.
func setDefaults(v *viper.Viper) {
	v.SetDefault("server.rpc_address", "127.0.0.1:5005")
	v.SetDefault("server.grpc_address", "127.0.0.1:50051")

	v.SetDefault("storage.backend", "pebble")
	v.SetDefault("storage.path", "/var/lib/treelotd/db")
	v.SetDefault("storage.cache_size", 64)

	v.SetDefault("journal.backend", "sqlite")
	v.SetDefault("journal.dsn", "/var/lib/treelotd/journal.db")

	v.SetDefault("contract.trees_per_lot", 10)
	v.SetDefault("contract.settlement_name", "Settlement Token")

	v.SetDefault("log_level", "info")
}
