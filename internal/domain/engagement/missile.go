package engagement

import (
	"sync"
	"time"

	"github.com/Kwonjooeun/weaponctl/internal/domain/shared"
	"github.com/Kwonjooeun/weaponctl/internal/domain/weapon"
)

// MissileEngagementManager plans ALM/ASM/AAM engagements against a live
// target, resolved either directly (SetTargetPosition) or by system-target
// id (SetSystemTarget + UpdateTargetInfo).
type MissileEngagementManager struct {
	mu sync.RWMutex

	clock shared.Clock

	tubeNumber int
	kind       weapon.Kind
	speedMPS   float64

	axisCenter  shared.GeoPosition
	ownShip     shared.GeoPosition
	waypoints   []shared.GeoPosition

	systemTargetID uint32 // 0 means "direct position, no system target"
	hasTarget      bool
	targetPosition shared.GeoPosition

	launched   bool
	launchPos  shared.GeoPosition
	launchTime time.Time

	result Plan
}

// NewMissileEngagementManager constructs a manager for a missile kind
// (ALM/ASM/AAM). speedMPS drives the total-time-to-target computation;
// clock timestamps launch so Update can interpolate CurrentPosition from
// elapsed wall time. A nil clock falls back to shared.NewRealClock().
func NewMissileEngagementManager(tubeNumber int, kind weapon.Kind, speedMPS float64, clock shared.Clock) *MissileEngagementManager {
	if clock == nil {
		clock = shared.NewRealClock()
	}
	return &MissileEngagementManager{
		tubeNumber: tubeNumber,
		kind:       kind,
		speedMPS:   speedMPS,
		clock:      clock,
	}
}

func (m *MissileEngagementManager) TubeNumber() int   { return m.tubeNumber }
func (m *MissileEngagementManager) Kind() weapon.Kind { return m.kind }

func (m *MissileEngagementManager) SetAxisCenter(p shared.GeoPosition) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.axisCenter = p
}

func (m *MissileEngagementManager) UpdateOwnShipInfo(p shared.GeoPosition) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.ownShip = p
}

// SetTargetPosition sets a direct target position, clearing any pending
// system-target resolution.
func (m *MissileEngagementManager) SetTargetPosition(p shared.GeoPosition) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.systemTargetID = 0
	m.hasTarget = true
	m.targetPosition = p
}

// SetSystemTarget marks the plan invalid until a matching UpdateTargetInfo
// call arrives for this id.
func (m *MissileEngagementManager) SetSystemTarget(targetID uint32) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.systemTargetID = targetID
	m.hasTarget = false
}

// UpdateTargetInfo applies a kinematics update for targetID, converting
// depth to a negative altitude (per original_source's updateTargetInfo).
// It is a no-op if targetID does not match the currently resolved
// system-target id.
func (m *MissileEngagementManager) UpdateTargetInfo(targetID uint32, lat, lon, depth float64) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.systemTargetID == 0 || targetID != m.systemTargetID {
		return
	}
	m.targetPosition = shared.GeoPosition{Lat: lat, Lon: lon, Alt: -depth}
	m.hasTarget = true
}

func (m *MissileEngagementManager) UpdateWaypoints(waypoints []shared.GeoPosition) error {
	if len(waypoints) > MaxWaypoints {
		return shared.NewPlanValidationError("waypoints", "waypoint count exceeds maximum of 8")
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.waypoints = append([]shared.GeoPosition(nil), waypoints...)
	return nil
}

func (m *MissileEngagementManager) hasValidTarget() bool {
	return m.hasTarget
}

func (m *MissileEngagementManager) CalculateEngagementPlan() error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if !m.hasTarget {
		m.result = Plan{TubeNumber: m.tubeNumber, Kind: m.kind, Valid: false}
		return shared.NewTargetNotFoundError(m.systemTargetID)
	}

	m.launchPos = m.ownShip
	distance := m.launchPos.DistanceTo(m.targetPosition)

	totalTime := 0.0
	if m.speedMPS > 0 {
		totalTime = distance / m.speedMPS
	}

	trajectory := []shared.GeoPosition{m.launchPos, m.targetPosition}

	turningPoints := m.waypoints
	if len(turningPoints) > MaxTurningPoints {
		turningPoints = turningPoints[:MaxTurningPoints]
	}

	m.result = Plan{
		TubeNumber:      m.tubeNumber,
		Kind:            m.kind,
		Valid:           true,
		TotalTimeSec:    totalTime,
		TimeToTargetSec: totalTime,
		Trajectory:      trajectory,
		Waypoints:       append([]shared.GeoPosition(nil), turningPoints...),
		LaunchPosition:  m.launchPos,
		TargetPosition:  m.targetPosition,
		CurrentPosition: m.launchPos,
	}
	return nil
}

func (m *MissileEngagementManager) IsEngagementPlanValid() bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.result.Valid
}

func (m *MissileEngagementManager) Result() Plan {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.result
}

func (m *MissileEngagementManager) SetLaunched(launched bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.launched = launched
	if launched {
		m.launchTime = m.clock.Now()
	}
}

func (m *MissileEngagementManager) IsLaunched() bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.launched
}

// CurrentPosition is a single straight-segment linear interpolation
// between launch and target position, per spec §4.2 ("for missiles a
// single straight segment suffices at this specification level").
func (m *MissileEngagementManager) CurrentPosition(timeSinceLaunch float64) shared.GeoPosition {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.currentPositionLocked(timeSinceLaunch)
}

func (m *MissileEngagementManager) currentPositionLocked(timeSinceLaunch float64) shared.GeoPosition {
	if !m.result.Valid || m.result.TotalTimeSec <= 0 {
		return m.launchPos
	}
	progress := timeSinceLaunch / m.result.TotalTimeSec
	if progress > 1 {
		progress = 1
	}
	return shared.Lerp(m.launchPos, m.targetPosition, progress)
}

// Update recomputes CurrentPosition into the cached result from elapsed
// wall time since launch, mirroring EngagementManagerBase::update in the
// reference implementation.
func (m *MissileEngagementManager) Update() {
	m.mu.Lock()
	defer m.mu.Unlock()
	if !m.launched || !m.result.Valid {
		return
	}
	elapsed := m.clock.Now().Sub(m.launchTime).Seconds()
	m.result.CurrentPosition = m.currentPositionLocked(elapsed)
}
