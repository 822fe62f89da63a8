package config

import "time"

// Config holds server configuration values.
type Config struct {
	Addr              string        `mapstructure:"addr" yaml:"addr"`
	ReadHeaderTimeout time.Duration `mapstructure:"read_header_timeout" yaml:"read_header_timeout"`
	ShutdownTimeout   time.Duration `mapstructure:"shutdown_timeout" yaml:"shutdown_timeout"`
	StaticDir         string        `mapstructure:"static_dir" yaml:"static_dir"`
	LogLevel          string        `mapstructure:"log_level" yaml:"log_level"`
	MaxMessageBytes   int64         `mapstructure:"max_message_bytes" yaml:"max_message_bytes"`

	// Session core limits.
	MaxClients        int `mapstructure:"max_clients" yaml:"max_clients"`
	MaxRoomsPerClient int `mapstructure:"max_rooms_per_client" yaml:"max_rooms_per_client"`

	// Admission control limits.
	MaxConnsPerAddr int           `mapstructure:"max_conns_per_addr" yaml:"max_conns_per_addr"`
	MaxTrackedAddrs int           `mapstructure:"max_tracked_addrs" yaml:"max_tracked_addrs"`
	MaxBannedAddrs  int           `mapstructure:"max_banned_addrs" yaml:"max_banned_addrs"`
	RateLimit       int           `mapstructure:"rate_limit" yaml:"rate_limit"`
	RateWindow      time.Duration `mapstructure:"rate_window" yaml:"rate_window"`
}

// Default returns configuration with reasonable starter defaults.
func Default() Config {
	return Config{
		Addr:              ":8080",
		ReadHeaderTimeout: 5 * time.Second,
		ShutdownTimeout:   5 * time.Second,
		StaticDir:         "./dist",
		LogLevel:          "info",
		MaxMessageBytes:   1 << 16,
		MaxClients:        500,
		MaxRoomsPerClient: 5,
		MaxConnsPerAddr:   10,
		MaxTrackedAddrs:   500,
		MaxBannedAddrs:    10000,
		RateLimit:         10,
		RateWindow:        time.Second,
	}
}
