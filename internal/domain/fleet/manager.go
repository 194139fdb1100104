// Package fleet implements the C5 fleet manager: the fixed bank of launch
// tubes, the shared environment snapshot, and the target cache fan-out.
package fleet

import (
	"strings"
	"sync"

	"github.com/sourcegraph/conc/pool"

	"github.com/Kwonjooeun/weaponctl/internal/domain/engagement"
	"github.com/Kwonjooeun/weaponctl/internal/domain/factory"
	"github.com/Kwonjooeun/weaponctl/internal/domain/launchtube"
	"github.com/Kwonjooeun/weaponctl/internal/domain/shared"
	"github.com/Kwonjooeun/weaponctl/internal/domain/targetcache"
	"github.com/Kwonjooeun/weaponctl/internal/domain/weapon"
)

// AssignRequest is the semantic schema for the inbound Assign command
// (spec §6): tube#, kind, and either a direct target position or a
// system-target id, plus an optional mine drop-plan reference.
type AssignRequest struct {
	TubeNumber     int
	Kind           weapon.Kind
	SystemTargetID uint32 // 0 means "no system target; use TargetPosition"
	TargetPosition *shared.GeoPosition
	DropPlanList   int
	DropPlanNumber int
}

// ControlRequest is the semantic schema for the inbound Control command.
type ControlRequest struct {
	TubeNumber int
	TargetState weapon.ControlState
	Token       *shared.CancellationToken
}

type environment struct {
	axisCenter shared.GeoPosition
	ownShip    shared.GeoPosition
}

// Manager is the C5 fleet manager: a fixed bank of tubes indexed 1..N
// (index 0 reserved and invalid), a shared environment snapshot, and the
// C7 target cache.
type Manager struct {
	factory *factory.Factory
	clock   shared.Clock
	cache   *targetcache.Cache

	tubesMu sync.RWMutex
	tubes   []*launchtube.Tube // index i holds tube number i+1

	envMu sync.RWMutex
	env   environment

	observersMu sync.Mutex
	observers   []launchtube.Observer
}

// New constructs a fleet manager with maxTubes tubes (1..maxTubes).
func New(maxTubes int, f *factory.Factory, clock shared.Clock, cache *targetcache.Cache) *Manager {
	if clock == nil {
		clock = shared.NewRealClock()
	}
	m := &Manager{factory: f, clock: clock, cache: cache}
	m.tubes = make([]*launchtube.Tube, maxTubes)
	for i := range m.tubes {
		m.tubes[i] = launchtube.New(i + 1)
	}
	return m
}

// AddObserver registers a relay target for per-tube state/launch/plan
// events, fanned out to every tube.
func (m *Manager) AddObserver(o launchtube.Observer) {
	m.observersMu.Lock()
	m.observers = append(m.observers, o)
	m.observersMu.Unlock()

	m.tubesMu.RLock()
	defer m.tubesMu.RUnlock()
	for _, t := range m.tubes {
		t.AddObserver(o)
	}
}

func (m *Manager) tubeAt(tubeNumber int) (*launchtube.Tube, error) {
	m.tubesMu.RLock()
	defer m.tubesMu.RUnlock()
	if tubeNumber < 1 || tubeNumber > len(m.tubes) {
		return nil, shared.NewInvalidTubeNumberError(tubeNumber, len(m.tubes))
	}
	return m.tubes[tubeNumber-1], nil
}

// Assign validates the index, checks occupancy and factory support,
// constructs the weapon+planner via the factory, delegates to the tube,
// then seeds it with the current environment snapshot and any cached
// target matching the request's system-target id.
func (m *Manager) Assign(req AssignRequest) error {
	t, err := m.tubeAt(req.TubeNumber)
	if err != nil {
		return err
	}
	if t.IsAssigned() {
		return shared.NewTubeOccupiedError(req.TubeNumber)
	}
	if !m.factory.IsSupported(req.Kind) {
		return shared.NewUnsupportedWeaponKindError(string(req.Kind))
	}

	w, err := m.factory.CreateWeapon(req.Kind, req.TubeNumber, m.clock)
	if err != nil {
		return err
	}
	planner, err := m.factory.CreatePlanner(req.Kind, req.TubeNumber, m.clock)
	if err != nil {
		return err
	}

	if err := t.Assign(w, planner, launchtube.Info{TubeNumber: req.TubeNumber}); err != nil {
		return err
	}

	if req.Kind.IsMine() {
		// Resolution of (list#, plan#) to a concrete mineplan.Plan, and the
		// mp.SetDropPlan / weapon.SetPlanLoaded calls that follow from it,
		// happen one layer up once the caller has loaded the plan from the
		// C8 library; the fleet manager only knows the reference here.
	} else if req.SystemTargetID != 0 {
		if mm, ok := planner.(*engagement.MissileEngagementManager); ok {
			mm.SetSystemTarget(req.SystemTargetID)
			if k, ok := m.cache.Get(req.SystemTargetID); ok {
				mm.UpdateTargetInfo(req.SystemTargetID, k.Lat, k.Lon, k.Depth)
			}
		}
	} else if req.TargetPosition != nil {
		if mm, ok := planner.(*engagement.MissileEngagementManager); ok {
			mm.SetTargetPosition(*req.TargetPosition)
		}
	}

	m.envMu.RLock()
	snapshot := m.env
	m.envMu.RUnlock()
	t.SetAxisCenter(snapshot.axisCenter)
	t.UpdateOwnShipInfo(snapshot.ownShip)

	return nil
}

// Unassign clears the tube at tubeNumber, if assigned.
func (m *Manager) Unassign(tubeNumber int) error {
	t, err := m.tubeAt(tubeNumber)
	if err != nil {
		return err
	}
	t.Clear()
	return nil
}

// RequestStateChange dispatches the control request to its target tube.
func (m *Manager) RequestStateChange(req ControlRequest) error {
	t, err := m.tubeAt(req.TubeNumber)
	if err != nil {
		return err
	}
	w := t.Weapon()
	if w == nil {
		return shared.NewTubeEmptyError(req.TubeNumber)
	}
	return w.RequestStateChange(req.TargetState, req.Token)
}

// RequestAllStateChange is a best-effort broadcast to every assigned
// tube. It returns success only if every tube accepted; errors from
// individual tubes are aggregated into a single error.
func (m *Manager) RequestAllStateChange(newState weapon.ControlState) error {
	m.tubesMu.RLock()
	tubes := append([]*launchtube.Tube(nil), m.tubes...)
	m.tubesMu.RUnlock()

	var failures []string
	for _, t := range tubes {
		w := t.Weapon()
		if w == nil {
			continue
		}
		if err := w.RequestStateChange(newState, nil); err != nil {
			failures = append(failures, err.Error())
		}
	}
	if len(failures) > 0 {
		return shared.NewDomainError("broadcast state change failed on some tubes: " + strings.Join(failures, "; "))
	}
	return nil
}

// EmergencyStop drives every assigned tube's weapon to ABORT (if
// currently LAUNCH) or OFF (otherwise), using pre-cancelled tokens so the
// transitions are immediate.
func (m *Manager) EmergencyStop() error {
	m.tubesMu.RLock()
	tubes := append([]*launchtube.Tube(nil), m.tubes...)
	m.tubesMu.RUnlock()

	var failures []string
	for _, t := range tubes {
		w := t.Weapon()
		if w == nil {
			continue
		}
		if w.CurrentState() == weapon.StateOff {
			continue
		}
		target := weapon.StateOff
		if w.CurrentState() == weapon.StateLaunch {
			target = weapon.StateAbort
		}
		token := shared.NewPreCancelledToken()
		if err := w.RequestStateChange(target, token); err != nil {
			failures = append(failures, err.Error())
		}
	}
	if len(failures) > 0 {
		return shared.NewDomainError("emergency stop failed on some tubes: " + strings.Join(failures, "; "))
	}
	return nil
}

// SetAxisCenter updates the shared environment snapshot and fans the new
// axis center out to every assigned tube.
func (m *Manager) SetAxisCenter(p shared.GeoPosition) {
	m.envMu.Lock()
	m.env.axisCenter = p
	m.envMu.Unlock()

	m.tubesMu.RLock()
	tubes := append([]*launchtube.Tube(nil), m.tubes...)
	m.tubesMu.RUnlock()
	for _, t := range tubes {
		t.SetAxisCenter(p)
	}
}

// UpdateOwnShip updates the shared environment snapshot and fans the new
// own-ship position out to every assigned tube.
func (m *Manager) UpdateOwnShip(p shared.GeoPosition) {
	m.envMu.Lock()
	m.env.ownShip = p
	m.envMu.Unlock()

	m.tubesMu.RLock()
	tubes := append([]*launchtube.Tube(nil), m.tubes...)
	m.tubesMu.RUnlock()
	for _, t := range tubes {
		t.UpdateOwnShipInfo(p)
	}
}

// UpdateTarget writes the kinematics into the target cache, then fans the
// update out to every assigned missile tube whose planner is watching
// this system-target id.
func (m *Manager) UpdateTarget(systemTargetID uint32, lat, lon, depth float64) {
	m.cache.Update(systemTargetID, targetcache.Kinematics{Lat: lat, Lon: lon, Depth: depth})

	m.tubesMu.RLock()
	tubes := append([]*launchtube.Tube(nil), m.tubes...)
	m.tubesMu.RUnlock()

	for _, t := range tubes {
		p := t.Planner()
		if p == nil {
			continue
		}
		if mm, ok := p.(*engagement.MissileEngagementManager); ok {
			mm.UpdateTargetInfo(systemTargetID, lat, lon, depth)
		}
	}
}

// UpdateWaypoints dispatches a waypoint list update to one tube.
func (m *Manager) UpdateWaypoints(tubeNumber int, waypoints []shared.GeoPosition) error {
	t, err := m.tubeAt(tubeNumber)
	if err != nil {
		return err
	}
	return t.UpdateWaypoints(waypoints)
}

// Tube exposes the tube at tubeNumber for callers (e.g. the mine-plan
// resolution path, or status reporting) that need direct access.
func (m *Manager) Tube(tubeNumber int) (*launchtube.Tube, error) {
	return m.tubeAt(tubeNumber)
}

// TubeCount returns the fixed number of tubes in the bank.
func (m *Manager) TubeCount() int {
	m.tubesMu.RLock()
	defer m.tubesMu.RUnlock()
	return len(m.tubes)
}

// Update ticks every tube concurrently: each tube owns its own weapon
// and planner state behind its own lock, so one tube's recalculation
// never waits on another's.
func (m *Manager) Update() {
	m.tubesMu.RLock()
	tubes := append([]*launchtube.Tube(nil), m.tubes...)
	m.tubesMu.RUnlock()

	p := pool.New().WithMaxGoroutines(len(tubes))
	for _, t := range tubes {
		t := t
		p.Go(func() { t.Update() })
	}
	p.Wait()
}
