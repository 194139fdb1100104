package config

import "time"

// DaemonConfig holds the transport-layer configuration for the fleet
// control gRPC service. Shape grounded on the teacher's DaemonConfig
// (address/socket/shutdown-timeout), trimmed of container-orchestration
// fields that have no weapon-control analogue (max containers, restart
// policy).
type DaemonConfig struct {
	// Address is the gRPC listen address (host:port).
	Address string `mapstructure:"address" validate:"required"`

	// SocketPath is an optional Unix socket path for local IPC.
	SocketPath string `mapstructure:"socket_path"`

	PIDFile string `mapstructure:"pid_file"`

	ShutdownTimeout time.Duration `mapstructure:"shutdown_timeout" validate:"required"`

	// RateLimit bounds inbound command throughput (golang.org/x/time/rate).
	RateLimit RateLimitConfig `mapstructure:"rate_limit"`
}

// RateLimitConfig configures the token-bucket limiter guarding inbound
// commands (spec's concurrency model puts no limit at the core layer;
// this is an ambient transport-boundary concern per SPEC_FULL.md §3).
type RateLimitConfig struct {
	RequestsPerSecond float64 `mapstructure:"requests_per_second" validate:"min=0"`
	Burst             int     `mapstructure:"burst" validate:"min=1"`
}
