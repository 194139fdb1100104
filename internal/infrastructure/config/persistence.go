package config

import "time"

// PersistenceConfig holds the storage backend configuration for the mine
// plan library (C8) gorm-backed repository.
// Shape grounded on the teacher's DatabaseConfig: same type/URL/pool knobs,
// retargeted from the space-trading schema to weapon-control persistence.
type PersistenceConfig struct {
	// Type selects the backend: "postgres" or "sqlite". "memory" selects
	// a filesystem-only mine plan library with no database connection.
	// The target cache is the in-process targetcache.Cache for every type.
	Type string `mapstructure:"type" validate:"required,oneof=postgres sqlite memory"`

	// URL is the full connection string (takes precedence over the
	// individual fields below). Ignored for sqlite and memory.
	URL string `mapstructure:"url"`

	Host     string `mapstructure:"host"`
	Port     int    `mapstructure:"port" validate:"omitempty,min=1,max=65535"`
	User     string `mapstructure:"user"`
	Password string `mapstructure:"password"`
	Name     string `mapstructure:"name"`
	SSLMode  string `mapstructure:"sslmode" validate:"omitempty,oneof=disable require verify-ca verify-full"`

	// Path is the sqlite database file path.
	Path string `mapstructure:"path"`

	Pool PoolConfig `mapstructure:"pool"`
}

// PoolConfig holds connection pool configuration.
type PoolConfig struct {
	MaxOpen     int           `mapstructure:"max_open" validate:"min=1"`
	MaxIdle     int           `mapstructure:"max_idle" validate:"min=1"`
	MaxLifetime time.Duration `mapstructure:"max_lifetime"`
}
