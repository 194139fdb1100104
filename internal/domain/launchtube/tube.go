// Package launchtube implements the C4 launch tube: the container binding
// one weapon to its engagement planner, relaying environment updates down
// and observer events up.
package launchtube

import (
	"sync"

	"github.com/Kwonjooeun/weaponctl/internal/domain/engagement"
	"github.com/Kwonjooeun/weaponctl/internal/domain/shared"
	"github.com/Kwonjooeun/weaponctl/internal/domain/weapon"
)

// Observer receives relayed weapon events and engagement-plan-changed
// notifications, tagged with the tube number they originated from.
type Observer interface {
	OnStateChanged(tubeNumber int, oldState, newState weapon.ControlState)
	OnLaunchStatusChanged(tubeNumber int, launched bool)
	OnEngagementPlanChanged(tubeNumber int, plan engagement.Plan)
}

// Info carries the assignment parameters the tube needs to validate itself
// against (spec §4.3: "info.tube_number matches").
type Info struct {
	TubeNumber int
}

// planSnapshot is the subset of engagement.Plan compared to decide whether
// an engagement-plan-changed callback is warranted (spec §4.3: "whenever
// the plan's validity, total-time, or trajectory length changes").
type planSnapshot struct {
	valid       bool
	totalTime   float64
	trajLen     int
}

func snapshotOf(p engagement.Plan) planSnapshot {
	return planSnapshot{valid: p.Valid, totalTime: p.TotalTimeSec, trajLen: len(p.Trajectory)}
}

// Tube is one slot in the fleet's bank (C4). A zero-value Tube is empty
// and not usable until Assign succeeds.
type Tube struct {
	number int

	mu      sync.Mutex
	weapon  weapon.Weapon
	planner engagement.Manager
	sub     weapon.Subscription
	lastPlan planSnapshot

	observersMu sync.Mutex
	observers   []Observer
}

// New constructs an empty tube for the given 1-based tube number.
func New(tubeNumber int) *Tube {
	return &Tube{number: tubeNumber}
}

func (t *Tube) Number() int { return t.number }

func (t *Tube) AddObserver(o Observer) {
	t.observersMu.Lock()
	defer t.observersMu.Unlock()
	t.observers = append(t.observers, o)
}

// IsAssigned reports whether a weapon currently occupies the tube.
func (t *Tube) IsAssigned() bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.weapon != nil
}

// Weapon returns the assigned weapon, or nil if the tube is empty.
func (t *Tube) Weapon() weapon.Weapon {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.weapon
}

// Planner returns the assigned engagement manager, or nil if the tube is
// empty.
func (t *Tube) Planner() engagement.Manager {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.planner
}

// Assign binds w and p to this tube. It succeeds only if the tube is empty
// and info.TubeNumber matches this tube's number; on any failure, all
// partial state is rolled back and the tube remains empty (spec §4.3).
func (t *Tube) Assign(w weapon.Weapon, p engagement.Manager, info Info) error {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.weapon != nil {
		return shared.NewTubeOccupiedError(t.number)
	}
	if info.TubeNumber != t.number {
		return shared.NewInvalidTubeNumberError(info.TubeNumber, t.number)
	}
	if w == nil || p == nil {
		return shared.NewTubeEmptyError(t.number)
	}

	t.weapon = w
	t.planner = p
	t.sub = w.AddObserver(t)
	t.lastPlan = planSnapshot{}
	return nil
}

// Clear detaches the weapon after resetting both collaborators and
// removing the observer registration.
func (t *Tube) Clear() {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.weapon == nil {
		return
	}
	t.weapon.RemoveObserver(t.sub)
	t.weapon.Reset()
	t.weapon = nil
	t.planner = nil
	t.lastPlan = planSnapshot{}
}

// UpdateWaypoints dispatches to the planner, capped at 8 by the planner
// implementation itself.
func (t *Tube) UpdateWaypoints(waypoints []shared.GeoPosition) error {
	t.mu.Lock()
	p := t.planner
	t.mu.Unlock()
	if p == nil {
		return shared.NewTubeEmptyError(t.number)
	}
	return p.UpdateWaypoints(waypoints)
}

// CalculateEngagementPlan drives the planner and, on success, forwards
// planner.IsEngagementPlanValid into weapon.SetFireSolutionReady. It emits
// an engagement-plan-changed callback whenever validity, total-time, or
// trajectory length changes.
func (t *Tube) CalculateEngagementPlan() error {
	t.mu.Lock()
	w, p := t.weapon, t.planner
	if w == nil || p == nil {
		t.mu.Unlock()
		return shared.NewTubeEmptyError(t.number)
	}

	err := p.CalculateEngagementPlan()
	w.SetFireSolutionReady(p.IsEngagementPlanValid())

	result := p.Result()
	snap := snapshotOf(result)
	changed := snap != t.lastPlan
	if changed {
		t.lastPlan = snap
	}
	t.mu.Unlock()

	if changed {
		t.notifyEngagementPlanChanged(result)
	}
	return err
}

// Update ticks the weapon, ticks the planner, and — only while not yet
// launched — re-runs CalculateEngagementPlan.
func (t *Tube) Update() {
	t.mu.Lock()
	w, p := t.weapon, t.planner
	t.mu.Unlock()
	if w == nil || p == nil {
		return
	}

	w.Update()
	p.Update()

	if !p.IsLaunched() {
		_ = t.CalculateEngagementPlan()
	}
}

// SetAxisCenter and UpdateOwnShipInfo relay environment updates to the
// planner, when assigned.
func (t *Tube) SetAxisCenter(pos shared.GeoPosition) {
	if p := t.Planner(); p != nil {
		p.SetAxisCenter(pos)
	}
}

func (t *Tube) UpdateOwnShipInfo(pos shared.GeoPosition) {
	if p := t.Planner(); p != nil {
		p.UpdateOwnShipInfo(pos)
	}
}

// OnStateChanged implements weapon.StateObserver: the tube relays the
// event to its own observers (the fleet manager).
func (t *Tube) OnStateChanged(tubeNumber int, oldState, newState weapon.ControlState) {
	t.observersMu.Lock()
	observers := append([]Observer(nil), t.observers...)
	t.observersMu.Unlock()
	for _, o := range observers {
		o.OnStateChanged(tubeNumber, oldState, newState)
	}
}

// OnLaunchStatusChanged implements weapon.StateObserver. On launched=true
// it propagates the launch flag into the planner so subsequent Update
// calls interpolate the current position, then relays the event upward.
func (t *Tube) OnLaunchStatusChanged(tubeNumber int, launched bool) {
	if p := t.Planner(); p != nil {
		p.SetLaunched(launched)
	}

	t.observersMu.Lock()
	observers := append([]Observer(nil), t.observers...)
	t.observersMu.Unlock()
	for _, o := range observers {
		o.OnLaunchStatusChanged(tubeNumber, launched)
	}
}

func (t *Tube) notifyEngagementPlanChanged(plan engagement.Plan) {
	t.observersMu.Lock()
	observers := append([]Observer(nil), t.observers...)
	t.observersMu.Unlock()
	for _, o := range observers {
		o.OnEngagementPlanChanged(t.number, plan)
	}
}
