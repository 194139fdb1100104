package engagement

import (
	"github.com/Kwonjooeun/weaponctl/internal/domain/shared"
	"github.com/Kwonjooeun/weaponctl/internal/domain/weapon"
)

// MaxWaypoints is the operator-supplied waypoint cap (spec §3/§8).
const MaxWaypoints = 8

// MaxTurningPoints bounds the computed missile turning-point list (spec §6).
const MaxTurningPoints = 16

// MaxTrajectoryPoints bounds the outbound trajectory polyline (spec §6).
const MaxTrajectoryPoints = 128

// Plan is the per-weapon engagement plan (C3 output), matching the fields
// listed in spec §3.
type Plan struct {
	TubeNumber             int
	Kind                   weapon.Kind
	Valid                  bool
	TotalTimeSec           float64
	TimeToTargetSec        float64
	NextWaypointIndex      int
	TimeToNextWaypointSec  float64
	Trajectory             []shared.GeoPosition
	Waypoints              []shared.GeoPosition
	LaunchPosition         shared.GeoPosition
	TargetPosition         shared.GeoPosition
	CurrentPosition        shared.GeoPosition
}

// Manager is the C3 contract: maintain and recompute a single weapon's
// engagement plan.
type Manager interface {
	TubeNumber() int
	Kind() weapon.Kind

	SetAxisCenter(p shared.GeoPosition)
	UpdateOwnShipInfo(p shared.GeoPosition)

	// UpdateWaypoints replaces the operator-supplied waypoint list, capped
	// at MaxWaypoints; returns InvalidPlan if the cap is exceeded.
	UpdateWaypoints(waypoints []shared.GeoPosition) error

	CalculateEngagementPlan() error
	IsEngagementPlanValid() bool
	Result() Plan

	SetLaunched(launched bool)
	IsLaunched() bool

	// CurrentPosition returns the interpolated position given elapsed time
	// since launch.
	CurrentPosition(timeSinceLaunch float64) shared.GeoPosition

	Update()
}
