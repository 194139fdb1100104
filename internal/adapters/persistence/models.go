package persistence

import "time"

// MinePlanListModel represents the mine_plan_lists table: one row per
// plan list number (spec §4.6/§6, "one file per mine plan list" —
// reframed here as one row per list when the gorm backend is selected).
type MinePlanListModel struct {
	ListNumber int       `gorm:"column:list_number;primaryKey"`
	CreatedAt  time.Time `gorm:"column:created_at;not null;autoCreateTime"`
	UpdatedAt  time.Time `gorm:"column:updated_at;not null;autoUpdateTime"`
}

func (MinePlanListModel) TableName() string {
	return "mine_plan_lists"
}

// MinePlanModel represents the mine_plans table: one row per plan within
// a list, with waypoints stored as a JSON-encoded array (as text, for
// sqlite/postgres portability, matching the teacher's JSON-as-text
// convention for variable-length nested data).
type MinePlanModel struct {
	ListNumber   int              `gorm:"column:list_number;primaryKey"`
	PlanNumber   int              `gorm:"column:plan_number;primaryKey"`
	List         *MinePlanListModel `gorm:"foreignKey:ListNumber;references:ListNumber;constraint:OnUpdate:CASCADE,OnDelete:CASCADE;"`
	LaunchLat    float64          `gorm:"column:launch_lat;not null"`
	LaunchLon    float64          `gorm:"column:launch_lon;not null"`
	LaunchAlt    float64          `gorm:"column:launch_alt;not null"`
	DropLat      float64          `gorm:"column:drop_lat;not null"`
	DropLon      float64          `gorm:"column:drop_lon;not null"`
	DropAlt      float64          `gorm:"column:drop_alt;not null"`
	WaypointsJSON string          `gorm:"column:waypoints_json;type:text;not null"`
	UpdatedAt    time.Time        `gorm:"column:updated_at;not null;autoUpdateTime"`
}

func (MinePlanModel) TableName() string {
	return "mine_plans"
}

// TargetCacheEntryModel is the target_cache_entries table, created by
// AutoMigrate. No code in this repository reads or writes it: the
// in-process Cache (internal/domain/targetcache) holds all target
// kinematics, and they do not survive a daemon restart.
type TargetCacheEntryModel struct {
	SystemTargetID uint32    `gorm:"column:system_target_id;primaryKey"`
	Lat            float64   `gorm:"column:lat;not null"`
	Lon            float64   `gorm:"column:lon;not null"`
	Depth          float64   `gorm:"column:depth;not null"`
	LastUpdate     time.Time `gorm:"column:last_update;not null;index"`
}

func (TargetCacheEntryModel) TableName() string {
	return "target_cache_entries"
}
