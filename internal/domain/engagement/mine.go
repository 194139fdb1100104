package engagement

import (
	"sync"
	"time"

	"github.com/Kwonjooeun/weaponctl/internal/domain/mineplan"
	"github.com/Kwonjooeun/weaponctl/internal/domain/shared"
	"github.com/Kwonjooeun/weaponctl/internal/domain/weapon"
)

// MineEngagementManager plans a mine drop from a pre-loaded drop plan
// rather than a live target.
type MineEngagementManager struct {
	mu sync.RWMutex

	clock shared.Clock

	tubeNumber int
	speedMPS   float64

	axisCenter shared.GeoPosition
	ownShip    shared.GeoPosition

	planListNumber int
	planNumber     int
	plan           *mineplan.Plan

	launched   bool
	launchPos  shared.GeoPosition
	launchTime time.Time

	result Plan
}

// NewMineEngagementManager constructs a mine planner. clock timestamps
// launch so Update can interpolate CurrentPosition from elapsed wall time;
// a nil clock falls back to shared.NewRealClock().
func NewMineEngagementManager(tubeNumber int, speedMPS float64, clock shared.Clock) *MineEngagementManager {
	if clock == nil {
		clock = shared.NewRealClock()
	}
	return &MineEngagementManager{tubeNumber: tubeNumber, speedMPS: speedMPS, clock: clock}
}

func (m *MineEngagementManager) TubeNumber() int   { return m.tubeNumber }
func (m *MineEngagementManager) Kind() weapon.Kind { return weapon.KindMine }

func (m *MineEngagementManager) SetAxisCenter(p shared.GeoPosition) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.axisCenter = p
}

func (m *MineEngagementManager) UpdateOwnShipInfo(p shared.GeoPosition) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.ownShip = p
}

// SetDropPlan resolves the (list#, plan#) reference to a concrete plan,
// loaded by the caller (the application-layer assign handler) from the
// mine plan library.
func (m *MineEngagementManager) SetDropPlan(listNumber, planNumber int, plan *mineplan.Plan) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.planListNumber = listNumber
	m.planNumber = planNumber
	m.plan = plan
}

// UpdateWaypoints overrides the loaded plan's waypoints (e.g. an operator
// edit applied after load), capped at 8. Satisfies the Manager interface;
// mines source waypoints from the drop plan rather than live operator input,
// but an edit after load still needs a way in.
func (m *MineEngagementManager) UpdateWaypoints(waypoints []shared.GeoPosition) error {
	if len(waypoints) > MaxWaypoints {
		return shared.NewPlanValidationError("waypoints", "waypoint count exceeds maximum of 8")
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.plan == nil {
		return shared.NewTargetNotFoundError(0)
	}
	m.plan.Waypoints = append([]shared.GeoPosition(nil), waypoints...)
	return nil
}

func (m *MineEngagementManager) CalculateEngagementPlan() error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.plan == nil {
		m.result = Plan{TubeNumber: m.tubeNumber, Kind: weapon.KindMine, Valid: false}
		return shared.NewTargetNotFoundError(0)
	}

	m.launchPos = m.plan.Launch
	trajectory := buildMineTrajectory(*m.plan)

	totalDistance := polylineLength(trajectory)
	totalTime := 0.0
	if m.speedMPS > 0 {
		totalTime = totalDistance / m.speedMPS
	}

	m.result = Plan{
		TubeNumber:      m.tubeNumber,
		Kind:            weapon.KindMine,
		Valid:           true,
		TotalTimeSec:    totalTime,
		TimeToTargetSec: totalTime,
		Trajectory:      trajectory,
		Waypoints:       append([]shared.GeoPosition(nil), m.plan.Waypoints...),
		LaunchPosition:  m.plan.Launch,
		TargetPosition:  m.plan.Drop,
		CurrentPosition: m.plan.Launch,
	}
	return nil
}

func (m *MineEngagementManager) IsEngagementPlanValid() bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.result.Valid
}

func (m *MineEngagementManager) Result() Plan {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.result
}

func (m *MineEngagementManager) SetLaunched(launched bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.launched = launched
	if launched {
		m.launchTime = m.clock.Now()
	}
}

func (m *MineEngagementManager) IsLaunched() bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.launched
}

// CurrentPosition walks the trajectory segment-wise: progress is scaled by
// the segment count, and each segment is interpolated equally, matching
// MineEngagementManager::interpolatePosition in the reference
// implementation.
func (m *MineEngagementManager) CurrentPosition(timeSinceLaunch float64) shared.GeoPosition {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.currentPositionLocked(timeSinceLaunch)
}

func (m *MineEngagementManager) currentPositionLocked(timeSinceLaunch float64) shared.GeoPosition {
	if !m.result.Valid || m.result.TotalTimeSec <= 0 || len(m.result.Trajectory) < 2 {
		return m.launchPos
	}

	progress := timeSinceLaunch / m.result.TotalTimeSec
	if progress > 1 {
		progress = 1
	}
	if progress < 0 {
		progress = 0
	}

	segments := len(m.result.Trajectory) - 1
	segmentProgress := progress * float64(segments)
	segmentIndex := int(segmentProgress)
	if segmentIndex >= segments {
		segmentIndex = segments - 1
	}
	localProgress := segmentProgress - float64(segmentIndex)

	return shared.Lerp(m.result.Trajectory[segmentIndex], m.result.Trajectory[segmentIndex+1], localProgress)
}

// Update recomputes CurrentPosition into the cached result from elapsed
// wall time since launch.
func (m *MineEngagementManager) Update() {
	m.mu.Lock()
	defer m.mu.Unlock()
	if !m.launched || !m.result.Valid {
		return
	}
	elapsed := m.clock.Now().Sub(m.launchTime).Seconds()
	m.result.CurrentPosition = m.currentPositionLocked(elapsed)
}

// buildMineTrajectory orders the drop trajectory launch -> waypoints -> drop.
func buildMineTrajectory(p mineplan.Plan) []shared.GeoPosition {
	trajectory := make([]shared.GeoPosition, 0, len(p.Waypoints)+2)
	trajectory = append(trajectory, p.Launch)
	trajectory = append(trajectory, p.Waypoints...)
	trajectory = append(trajectory, p.Drop)
	return trajectory
}

func polylineLength(points []shared.GeoPosition) float64 {
	total := 0.0
	for i := 1; i < len(points); i++ {
		total += points[i-1].DistanceTo(points[i])
	}
	return total
}
