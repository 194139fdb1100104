package config

import "time"

// SetDefaults sets default values for all configuration fields, per the
// literal defaults named in spec §7 plus the ambient groups.
func SetDefaults(cfg *Config) {
	// System defaults (spec §7)
	if cfg.System.MaxLaunchTubes == 0 {
		cfg.System.MaxLaunchTubes = 6
	}
	if cfg.System.UpdateIntervalMs == 0 {
		cfg.System.UpdateIntervalMs = 100
	}
	if cfg.System.EngagementPlanIntervalMs == 0 {
		cfg.System.EngagementPlanIntervalMs = 1000
	}
	if cfg.System.StatusReportIntervalMs == 0 {
		cfg.System.StatusReportIntervalMs = 1000
	}

	// Paths defaults
	if cfg.Paths.MineDataPath == "" {
		cfg.Paths.MineDataPath = "data/mine_plans"
	}

	// MineDropPlan defaults
	if cfg.MineDropPlan.MaxPlanLists == 0 {
		cfg.MineDropPlan.MaxPlanLists = 15
	}
	if cfg.MineDropPlan.MaxPlansPerList == 0 {
		cfg.MineDropPlan.MaxPlansPerList = 15
	}

	// Weapon defaults
	if cfg.Weapon.DefaultLaunchDelay == 0 {
		cfg.Weapon.DefaultLaunchDelay = 3.0
	}
	if cfg.Weapon.MineSpeed == 0 {
		cfg.Weapon.MineSpeed = 5.0
	}
	if cfg.Weapon.ALMMaxRange == 0 {
		cfg.Weapon.ALMMaxRange = 50
	}
	if cfg.Weapon.ASMMaxRange == 0 {
		cfg.Weapon.ASMMaxRange = 100
	}
	if cfg.Weapon.ALMSpeed == 0 {
		cfg.Weapon.ALMSpeed = 300
	}
	if cfg.Weapon.ASMSpeed == 0 {
		cfg.Weapon.ASMSpeed = 400
	}
	if cfg.Weapon.AAMSpeed == 0 {
		cfg.Weapon.AAMSpeed = 250
	}

	// Persistence defaults
	if cfg.Persistence.Type == "" {
		cfg.Persistence.Type = "sqlite"
	}
	if cfg.Persistence.Path == "" {
		cfg.Persistence.Path = "data/weaponctl.db"
	}
	if cfg.Persistence.Host == "" {
		cfg.Persistence.Host = "localhost"
	}
	if cfg.Persistence.Port == 0 {
		cfg.Persistence.Port = 5432
	}
	if cfg.Persistence.Name == "" {
		cfg.Persistence.Name = "weaponctl"
	}
	if cfg.Persistence.SSLMode == "" {
		cfg.Persistence.SSLMode = "disable"
	}
	if cfg.Persistence.Pool.MaxOpen == 0 {
		cfg.Persistence.Pool.MaxOpen = 25
	}
	if cfg.Persistence.Pool.MaxIdle == 0 {
		cfg.Persistence.Pool.MaxIdle = 5
	}
	if cfg.Persistence.Pool.MaxLifetime == 0 {
		cfg.Persistence.Pool.MaxLifetime = 5 * time.Minute
	}

	// Daemon defaults
	if cfg.Daemon.Address == "" {
		cfg.Daemon.Address = "localhost:50052"
	}
	if cfg.Daemon.SocketPath == "" {
		cfg.Daemon.SocketPath = "/tmp/weaponctl-daemon.sock"
	}
	if cfg.Daemon.PIDFile == "" {
		cfg.Daemon.PIDFile = "/tmp/weaponctl-daemon.pid"
	}
	if cfg.Daemon.ShutdownTimeout == 0 {
		cfg.Daemon.ShutdownTimeout = 10 * time.Second
	}
	if cfg.Daemon.RateLimit.RequestsPerSecond == 0 {
		cfg.Daemon.RateLimit.RequestsPerSecond = 50
	}
	if cfg.Daemon.RateLimit.Burst == 0 {
		cfg.Daemon.RateLimit.Burst = 100
	}

	// Logging defaults
	if cfg.Logging.Level == "" {
		cfg.Logging.Level = "info"
	}
	if cfg.Logging.Format == "" {
		cfg.Logging.Format = "json"
	}
	if cfg.Logging.Output == "" {
		cfg.Logging.Output = "stdout"
	}
	if cfg.Logging.Rotation.MaxSize == 0 {
		cfg.Logging.Rotation.MaxSize = 100 // MB
	}
	if cfg.Logging.Rotation.MaxBackups == 0 {
		cfg.Logging.Rotation.MaxBackups = 3
	}
	if cfg.Logging.Rotation.MaxAge == 0 {
		cfg.Logging.Rotation.MaxAge = 28 // days
	}

	// Metrics defaults
	if cfg.Metrics.Port == 0 {
		cfg.Metrics.Port = 9100
	}
	if cfg.Metrics.Host == "" {
		cfg.Metrics.Host = "localhost"
	}
	if cfg.Metrics.Path == "" {
		cfg.Metrics.Path = "/metrics"
	}
}
