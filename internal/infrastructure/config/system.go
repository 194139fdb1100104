package config

// SystemConfig holds the fleet-wide timing and sizing knobs from spec §7
// (the "System.*" key group).
type SystemConfig struct {
	// MaxLaunchTubes is the size of the fixed tube bank (tubes 1..N).
	MaxLaunchTubes int `mapstructure:"max_launch_tubes" validate:"min=1"`

	// UpdateIntervalMs is the tick period for Manager.Update (weapon +
	// planner automatic edges).
	UpdateIntervalMs int `mapstructure:"update_interval_ms" validate:"min=1"`

	// EngagementPlanIntervalMs is the recompute period for per-tube
	// engagement plans while a weapon is not yet launched.
	EngagementPlanIntervalMs int `mapstructure:"engagement_plan_interval_ms" validate:"min=1"`

	// StatusReportIntervalMs is the period for outbound per-tube status
	// telemetry.
	StatusReportIntervalMs int `mapstructure:"status_report_interval_ms" validate:"min=1"`
}

// PathsConfig holds filesystem locations.
type PathsConfig struct {
	// MineDataPath is the directory holding one file per mine plan list.
	MineDataPath string `mapstructure:"mine_data_path" validate:"required"`
}

// MineDropPlanConfig holds the C8 mine plan library's structural bounds.
type MineDropPlanConfig struct {
	MaxPlanLists   int `mapstructure:"max_plan_lists" validate:"min=1"`
	MaxPlansPerList int `mapstructure:"max_plans_per_list" validate:"min=1"`
}

// WeaponConfig holds the per-kind statics the factory (C6) registers its
// default entries with.
type WeaponConfig struct {
	DefaultLaunchDelay float64 `mapstructure:"default_launch_delay" validate:"min=0"`
	MineSpeed          float64 `mapstructure:"mine_speed" validate:"min=0"`
	ALMMaxRange        float64 `mapstructure:"alm_max_range" validate:"min=0"`
	ASMMaxRange        float64 `mapstructure:"asm_max_range" validate:"min=0"`
	ALMSpeed           float64 `mapstructure:"alm_speed" validate:"min=0"`
	ASMSpeed           float64 `mapstructure:"asm_speed" validate:"min=0"`

	// AAMSpeed is not named in spec §7's key list, which enumerates only
	// ALM/ASM statics; AAM still needs a speed to drive its engagement
	// time-to-target, so this key supplements the distilled spec with a
	// sensible default rather than leaving AAM engagement undriveable.
	AAMSpeed float64 `mapstructure:"aam_speed" validate:"min=0"`
}
