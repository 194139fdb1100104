// Package steps holds the godog step definitions for the end-to-end
// fleet scenarios, driven directly against the domain/application layers
// (no transport hop) the same way the teacher's ship-operations steps
// drive application handlers directly.
package steps

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/cucumber/godog"

	"github.com/Kwonjooeun/weaponctl/internal/domain/engagement"
	"github.com/Kwonjooeun/weaponctl/internal/domain/factory"
	"github.com/Kwonjooeun/weaponctl/internal/domain/fleet"
	"github.com/Kwonjooeun/weaponctl/internal/domain/mineplan"
	"github.com/Kwonjooeun/weaponctl/internal/domain/shared"
	"github.com/Kwonjooeun/weaponctl/internal/domain/targetcache"
	"github.com/Kwonjooeun/weaponctl/internal/domain/weapon"
)

// tubeRecorder captures the state/launch events observed for one tube
// number, the same shape as the domain-level recordingObserver but keyed
// by tube so a single fleet-wide observer can serve every scenario.
type tubeRecorder struct {
	mu        sync.Mutex
	states    map[int][]weapon.ControlState
	launched  map[int][]bool
}

func newTubeRecorder() *tubeRecorder {
	return &tubeRecorder{states: make(map[int][]weapon.ControlState), launched: make(map[int][]bool)}
}

func (r *tubeRecorder) OnStateChanged(tubeNumber int, oldState, newState weapon.ControlState) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.states[tubeNumber] = append(r.states[tubeNumber], newState)
}

func (r *tubeRecorder) OnLaunchStatusChanged(tubeNumber int, launched bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.launched[tubeNumber] = append(r.launched[tubeNumber], launched)
}

func (r *tubeRecorder) OnEngagementPlanChanged(tubeNumber int, plan engagement.Plan) {}

func (r *tubeRecorder) statesOf(tubeNumber int) []weapon.ControlState {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]weapon.ControlState(nil), r.states[tubeNumber]...)
}

func (r *tubeRecorder) launchesOf(tubeNumber int) []bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]bool(nil), r.launched[tubeNumber]...)
}

type weaponLifecycleContext struct {
	fleet    *fleet.Manager
	recorder *tubeRecorder

	lastErr        error
	backgroundErrs map[int]chan error

	mineLib mineplan.Library
	ctx     context.Context
}

func (c *weaponLifecycleContext) reset() {
	c.fleet = nil
	c.recorder = nil
	c.lastErr = nil
	c.backgroundErrs = make(map[int]chan error)
	c.mineLib = nil
	c.ctx = context.Background()
}

// newFleet builds a fleet.Manager with maxTubes tubes. fast selects a
// real clock with short launch steps (50ms power-on delay, one 400ms
// launch step per kind) so background-cancellation timing assertions
// settle in well under a second; the default uses a mock clock, which
// makes Base's step sleeps instantaneous regardless of duration.
func (c *weaponLifecycleContext) newFleet(maxTubes int, fast bool) {
	var clock shared.Clock
	cfg := factory.Config{
		DefaultLaunchDelay: 3.0,
		ALMSpeed:           300,
		ASMSpeed:           250,
		AAMSpeed:           400,
		MineSpeed:          5,
		ALMMaxRange:        100000,
		ASMMaxRange:        150000,
	}
	f := factory.New(cfg)

	if fast {
		clock = shared.NewRealClock()
		fastSpec := func(kind weapon.Kind, speed float64) weapon.Specification {
			return weapon.Specification{
				Kind:         kind,
				PowerOnDelay: 0.05,
				LaunchSteps:  []weapon.LaunchStep{{Description: "fast-step", Duration: 400 * time.Millisecond}},
				SpeedMPS:     speed,
			}
		}
		f.Register(weapon.KindALM,
			func(tubeNumber int, spec weapon.Specification, clk shared.Clock) weapon.Weapon {
				return weapon.NewALMWeapon(tubeNumber, spec, clk)
			},
			func(tubeNumber int, spec weapon.Specification, clk shared.Clock) engagement.Manager {
				return engagement.NewMissileEngagementManager(tubeNumber, weapon.KindALM, spec.SpeedMPS, clk)
			},
			fastSpec(weapon.KindALM, cfg.ALMSpeed))
		f.Register(weapon.KindASM,
			func(tubeNumber int, spec weapon.Specification, clk shared.Clock) weapon.Weapon {
				return weapon.NewASMWeapon(tubeNumber, spec, clk)
			},
			func(tubeNumber int, spec weapon.Specification, clk shared.Clock) engagement.Manager {
				return engagement.NewMissileEngagementManager(tubeNumber, weapon.KindASM, spec.SpeedMPS, clk)
			},
			fastSpec(weapon.KindASM, cfg.ASMSpeed))
		f.Register(weapon.KindMine,
			func(tubeNumber int, spec weapon.Specification, clk shared.Clock) weapon.Weapon {
				return weapon.NewMineWeapon(tubeNumber, spec, clk)
			},
			func(tubeNumber int, spec weapon.Specification, clk shared.Clock) engagement.Manager {
				return engagement.NewMineEngagementManager(tubeNumber, spec.SpeedMPS, clk)
			},
			fastSpec(weapon.KindMine, cfg.MineSpeed))
	} else {
		clock = shared.NewMockClock(time.Time{})
	}

	cache := targetcache.New(clock)
	c.fleet = fleet.New(maxTubes, f, clock, cache)
	c.recorder = newTubeRecorder()
	c.fleet.AddObserver(c.recorder)
}

func kindFromString(s string) weapon.Kind {
	switch s {
	case "ALM":
		return weapon.KindALM
	case "ASM":
		return weapon.KindASM
	case "AAM":
		return weapon.KindAAM
	case "MINE":
		return weapon.KindMine
	default:
		return weapon.Kind(s)
	}
}

func stateFromString(s string) weapon.ControlState {
	return weapon.ControlState(strings.TrimSpace(s))
}

// Given steps

func (c *weaponLifecycleContext) aFleetWithTubes(n int) error {
	c.newFleet(n, false)
	return nil
}

func (c *weaponLifecycleContext) aFleetWithTubesUsingFastLaunchSteps(n int) error {
	c.newFleet(n, true)
	return nil
}

func (c *weaponLifecycleContext) aKindIsAssignedToTubeWithTargetAt(kind string, tubeNumber int, lat, lon, alt float64) error {
	pos := shared.GeoPosition{Lat: lat, Lon: lon, Alt: alt}
	return c.fleet.Assign(fleet.AssignRequest{
		TubeNumber:     tubeNumber,
		Kind:           kindFromString(kind),
		TargetPosition: &pos,
	})
}

func (c *weaponLifecycleContext) aKindIsAssignedToTubeWithSystemTargetID(kind string, tubeNumber, targetID int) error {
	return c.fleet.Assign(fleet.AssignRequest{
		TubeNumber:     tubeNumber,
		Kind:           kindFromString(kind),
		SystemTargetID: uint32(targetID),
	})
}

func (c *weaponLifecycleContext) aMINEIsAssignedToTube(tubeNumber int) error {
	return c.fleet.Assign(fleet.AssignRequest{TubeNumber: tubeNumber, Kind: weapon.KindMine})
}

func (c *weaponLifecycleContext) ownShipIsAt(lat, lon, alt float64) error {
	c.fleet.UpdateOwnShip(shared.GeoPosition{Lat: lat, Lon: lon, Alt: alt})
	return nil
}

func (c *weaponLifecycleContext) theAxisCenterIsAt(lat, lon, alt float64) error {
	c.fleet.SetAxisCenter(shared.GeoPosition{Lat: lat, Lon: lon, Alt: alt})
	return nil
}

// When / state-driving steps

func (c *weaponLifecycleContext) theFleetIsUpdatedOnce() error {
	c.fleet.Update()
	return nil
}

func (c *weaponLifecycleContext) iRequestStateForTube(state string, tubeNumber int) error {
	c.lastErr = c.fleet.RequestStateChange(fleet.ControlRequest{
		TubeNumber:  tubeNumber,
		TargetState: stateFromString(state),
	})
	return nil
}

func (c *weaponLifecycleContext) tubeIsDrivenToStateRTL(tubeNumber int) error {
	// One update primes the engagement plan (and the fire-solution-ready
	// flag it drives) before ON is requested; a second update is what
	// actually observes the now-satisfied interlock and flips ON->RTL.
	c.fleet.Update()
	if err := c.fleet.RequestStateChange(fleet.ControlRequest{TubeNumber: tubeNumber, TargetState: weapon.StateOn}); err != nil {
		return err
	}
	c.fleet.Update()
	t, err := c.fleet.Tube(tubeNumber)
	if err != nil {
		return err
	}
	if t.Weapon().CurrentState() != weapon.StateRTL {
		return fmt.Errorf("tube %d did not reach RTL: currently %s", tubeNumber, t.Weapon().CurrentState())
	}
	return nil
}

func (c *weaponLifecycleContext) tubeIsDrivenToState(tubeNumber int, state string) error {
	target := stateFromString(state)
	switch target {
	case weapon.StateOn:
		return c.fleet.RequestStateChange(fleet.ControlRequest{TubeNumber: tubeNumber, TargetState: weapon.StateOn})
	case weapon.StateRTL:
		return c.tubeIsDrivenToStateRTL(tubeNumber)
	default:
		return fmt.Errorf("unsupported driven-to state %q", state)
	}
}

func (c *weaponLifecycleContext) tubeIsDrivenInTheBackgroundToStateLAUNCH(tubeNumber int) error {
	if err := c.tubeIsDrivenToStateRTL(tubeNumber); err != nil {
		return err
	}
	ch := make(chan error, 1)
	c.backgroundErrs[tubeNumber] = ch
	go func() {
		ch <- c.fleet.RequestStateChange(fleet.ControlRequest{TubeNumber: tubeNumber, TargetState: weapon.StateLaunch})
	}()
	return nil
}

func (c *weaponLifecycleContext) iRequestStateLAUNCHForTubeInTheBackground(tubeNumber int) error {
	ch := make(chan error, 1)
	c.backgroundErrs[tubeNumber] = ch
	go func() {
		ch <- c.fleet.RequestStateChange(fleet.ControlRequest{TubeNumber: tubeNumber, TargetState: weapon.StateLaunch})
	}()
	return nil
}

func (c *weaponLifecycleContext) iWaitMs(ms int) error {
	time.Sleep(time.Duration(ms) * time.Millisecond)
	return nil
}

func (c *weaponLifecycleContext) theBackgroundLAUNCHRequestReturnsACancellationErrorWithin1Second() error {
	var lastErr error
	for _, ch := range c.backgroundErrs {
		select {
		case err := <-ch:
			lastErr = err
		case <-time.After(time.Second):
			return errors.New("background launch request did not return within 1 second")
		}
	}
	if lastErr == nil {
		return errors.New("expected the background launch request to fail with a cancellation error")
	}
	var cancelled *shared.OperationCancelledError
	if !errors.As(lastErr, &cancelled) {
		return fmt.Errorf("expected an OperationCancelledError, got %T: %v", lastErr, lastErr)
	}
	return nil
}

func (c *weaponLifecycleContext) emergencyStopIsRequested() error {
	c.lastErr = c.fleet.EmergencyStop()
	return nil
}

func (c *weaponLifecycleContext) theEmergencyStopSucceeds() error {
	if c.lastErr != nil {
		return fmt.Errorf("expected emergency stop to succeed, got: %v", c.lastErr)
	}
	return nil
}

func (c *weaponLifecycleContext) aTargetUpdateForSystemTargetIDArrivesAtLatLonDepth(targetID int, lat, lon, depth float64) error {
	c.fleet.UpdateTarget(uint32(targetID), lat, lon, depth)
	return nil
}

// Then steps

func (c *weaponLifecycleContext) theEngagementPlanForTubeIsValid(tubeNumber int) error {
	t, err := c.fleet.Tube(tubeNumber)
	if err != nil {
		return err
	}
	if !t.Planner().IsEngagementPlanValid() {
		return fmt.Errorf("expected tube %d's engagement plan to be valid", tubeNumber)
	}
	return nil
}

func (c *weaponLifecycleContext) theEngagementPlanForTubeIsInvalid(tubeNumber int) error {
	t, err := c.fleet.Tube(tubeNumber)
	if err != nil {
		return err
	}
	if t.Planner().IsEngagementPlanValid() {
		return fmt.Errorf("expected tube %d's engagement plan to be invalid", tubeNumber)
	}
	return nil
}

func (c *weaponLifecycleContext) theEngagementPlanForTubeTargetsAltitude(tubeNumber int, alt float64) error {
	t, err := c.fleet.Tube(tubeNumber)
	if err != nil {
		return err
	}
	result := t.Planner().Result()
	if result.TargetPosition.Alt != alt {
		return fmt.Errorf("expected target altitude %v, got %v", alt, result.TargetPosition.Alt)
	}
	return nil
}

func (c *weaponLifecycleContext) theEngagementPlanForTubeStillTargetsLatLon(tubeNumber int, lat, lon float64) error {
	t, err := c.fleet.Tube(tubeNumber)
	if err != nil {
		return err
	}
	result := t.Planner().Result()
	if result.TargetPosition.Lat != lat || result.TargetPosition.Lon != lon {
		return fmt.Errorf("expected target position (%v, %v), got (%v, %v)", lat, lon, result.TargetPosition.Lat, result.TargetPosition.Lon)
	}
	return nil
}

func (c *weaponLifecycleContext) tubeReachesState(tubeNumber int, state string) error {
	t, err := c.fleet.Tube(tubeNumber)
	if err != nil {
		return err
	}
	want := stateFromString(state)
	got := t.Weapon().CurrentState()
	if got != want {
		return fmt.Errorf("expected tube %d to be in state %s, got %s", tubeNumber, want, got)
	}
	return nil
}

func (c *weaponLifecycleContext) tubeRemainsInState(tubeNumber int, state string) error {
	return c.tubeReachesState(tubeNumber, state)
}

func (c *weaponLifecycleContext) tubeIsLaunched(tubeNumber int) error {
	t, err := c.fleet.Tube(tubeNumber)
	if err != nil {
		return err
	}
	if !t.Weapon().IsLaunched() {
		return fmt.Errorf("expected tube %d to be launched", tubeNumber)
	}
	return nil
}

func (c *weaponLifecycleContext) tubeIsNotLaunched(tubeNumber int) error {
	t, err := c.fleet.Tube(tubeNumber)
	if err != nil {
		return err
	}
	if t.Weapon().IsLaunched() {
		return fmt.Errorf("expected tube %d to not be launched", tubeNumber)
	}
	return nil
}

func (c *weaponLifecycleContext) tubeObservedTheStateSequence(tubeNumber int, sequence string) error {
	var want []weapon.ControlState
	for _, s := range strings.Split(sequence, ",") {
		want = append(want, stateFromString(s))
	}
	got := c.recorder.statesOf(tubeNumber)
	if len(got) != len(want) {
		return fmt.Errorf("expected state sequence %v, got %v", want, got)
	}
	for i := range want {
		if got[i] != want[i] {
			return fmt.Errorf("expected state sequence %v, got %v", want, got)
		}
	}
	return nil
}

func (c *weaponLifecycleContext) tubeObservedALaunchStatusEventOf(tubeNumber int, value string) error {
	want := value == "true"
	got := c.recorder.launchesOf(tubeNumber)
	for _, v := range got {
		if v == want {
			return nil
		}
	}
	return fmt.Errorf("expected a launch-status event of %v for tube %d, got %v", want, tubeNumber, got)
}

func (c *weaponLifecycleContext) tubeDidNotObserveAPOSTLAUNCHStateEvent(tubeNumber int) error {
	for _, s := range c.recorder.statesOf(tubeNumber) {
		if s == weapon.StatePostLaunch {
			return fmt.Errorf("tube %d unexpectedly observed a POST_LAUNCH event", tubeNumber)
		}
	}
	return nil
}

func (c *weaponLifecycleContext) theRequestFailsWithAnInvalidTransitionError() error {
	var target *shared.InvalidTransitionError
	if !errors.As(c.lastErr, &target) {
		return fmt.Errorf("expected an InvalidTransitionError, got %T: %v", c.lastErr, c.lastErr)
	}
	return nil
}

// Mine plan round-trip steps

func (c *weaponLifecycleContext) anEmptyMinePlanLibrary() error {
	c.mineLib = newInMemoryMinePlanLibrary()
	return nil
}

func (c *weaponLifecycleContext) iSavePlanListContainingPlanWithLaunchDropAndWaypoints(
	listNumber, planNumber int,
	launchLat, launchLon, dropLat, dropLon float64,
	wp1Lat, wp1Lon, wp2Lat, wp2Lon float64,
) error {
	plan := mineplan.Plan{
		Number: planNumber,
		Launch: shared.GeoPosition{Lat: launchLat, Lon: launchLon},
		Drop:   shared.GeoPosition{Lat: dropLat, Lon: dropLon},
		Waypoints: []shared.GeoPosition{
			{Lat: wp1Lat, Lon: wp1Lon},
			{Lat: wp2Lat, Lon: wp2Lon},
		},
	}
	if err := c.mineLib.Create(c.ctx, listNumber); err != nil {
		return err
	}
	return c.mineLib.Save(c.ctx, listNumber, []mineplan.Plan{plan})
}

func (c *weaponLifecycleContext) loadingPlanListReturnsTheSamePlan(listNumber, planNumber int) error {
	list, err := c.mineLib.Load(c.ctx, listNumber)
	if err != nil {
		return err
	}
	for _, p := range list.Plans {
		if p.Number == planNumber {
			return nil
		}
	}
	return fmt.Errorf("plan %d not found in loaded list %d", planNumber, listNumber)
}

func (c *weaponLifecycleContext) gettingPlanFromListDirectlyReturnsTheSameFields(planNumber, listNumber int) error {
	plan, err := c.mineLib.GetPlan(c.ctx, listNumber, planNumber)
	if err != nil {
		return err
	}
	if plan.Launch.Lat != 35 || plan.Launch.Lon != 129 {
		return fmt.Errorf("launch position mismatch: %+v", plan.Launch)
	}
	if plan.Drop.Lat != 35.5 || plan.Drop.Lon != 129.5 {
		return fmt.Errorf("drop position mismatch: %+v", plan.Drop)
	}
	if len(plan.Waypoints) != 2 {
		return fmt.Errorf("expected 2 waypoints, got %d", len(plan.Waypoints))
	}
	return nil
}

// InitializeWeaponLifecycleScenario registers every step above.
func InitializeWeaponLifecycleScenario(sc *godog.ScenarioContext) {
	wc := &weaponLifecycleContext{}

	sc.Before(func(ctx context.Context, s *godog.Scenario) (context.Context, error) {
		wc.reset()
		return ctx, nil
	})

	sc.Step(`^a fleet with (\d+) tubes$`, wc.aFleetWithTubes)
	sc.Step(`^a fleet with (\d+) tubes using fast launch steps$`, wc.aFleetWithTubesUsingFastLaunchSteps)
	sc.Step(`^an (ALM|ASM|AAM|MINE) is assigned to tube (\d+) with target at lat ([\-0-9.]+), lon ([\-0-9.]+), alt ([\-0-9.]+)$`, wc.aKindIsAssignedToTubeWithTargetAt)
	sc.Step(`^an (ALM|ASM|AAM|MINE) is assigned to tube (\d+) with system target id (\d+)$`, wc.aKindIsAssignedToTubeWithSystemTargetID)
	sc.Step(`^a MINE is assigned to tube (\d+)$`, wc.aMINEIsAssignedToTube)
	sc.Step(`^own-ship is at lat ([\-0-9.]+), lon ([\-0-9.]+), alt ([\-0-9.]+)$`, wc.ownShipIsAt)
	sc.Step(`^the axis center is at lat ([\-0-9.]+), lon ([\-0-9.]+), alt ([\-0-9.]+)$`, wc.theAxisCenterIsAt)
	sc.Step(`^the fleet is updated once$`, wc.theFleetIsUpdatedOnce)
	sc.Step(`^I request state (\w+) for tube (\d+)$`, wc.iRequestStateForTube)
	sc.Step(`^tube (\d+) is driven to state (\w+)$`, wc.tubeIsDrivenToState)
	sc.Step(`^tube (\d+) is driven in the background to state LAUNCH$`, wc.tubeIsDrivenInTheBackgroundToStateLAUNCH)
	sc.Step(`^I request state LAUNCH for tube (\d+) in the background$`, wc.iRequestStateLAUNCHForTubeInTheBackground)
	sc.Step(`^I wait (\d+) ms$`, wc.iWaitMs)
	sc.Step(`^the background LAUNCH request returns a cancellation error within 1 second$`, wc.theBackgroundLAUNCHRequestReturnsACancellationErrorWithin1Second)
	sc.Step(`^emergency stop is requested$`, wc.emergencyStopIsRequested)
	sc.Step(`^the emergency stop succeeds$`, wc.theEmergencyStopSucceeds)
	sc.Step(`^a target update for system target id (\d+) arrives at lat ([\-0-9.]+), lon ([\-0-9.]+), depth ([\-0-9.]+)$`, wc.aTargetUpdateForSystemTargetIDArrivesAtLatLonDepth)

	sc.Step(`^the engagement plan for tube (\d+) is valid$`, wc.theEngagementPlanForTubeIsValid)
	sc.Step(`^the engagement plan for tube (\d+) is invalid$`, wc.theEngagementPlanForTubeIsInvalid)
	sc.Step(`^the engagement plan for tube (\d+) targets altitude (-?[0-9.]+)$`, wc.theEngagementPlanForTubeTargetsAltitude)
	sc.Step(`^the engagement plan for tube (\d+) still targets lat (\d+), lon (\d+)$`, wc.theEngagementPlanForTubeStillTargetsLatLon)
	sc.Step(`^tube (\d+) reaches state (\w+)$`, wc.tubeReachesState)
	sc.Step(`^tube (\d+) remains in state (\w+)$`, wc.tubeRemainsInState)
	sc.Step(`^tube (\d+) is launched$`, wc.tubeIsLaunched)
	sc.Step(`^tube (\d+) is not launched$`, wc.tubeIsNotLaunched)
	sc.Step(`^tube (\d+) observed the state sequence (.+)$`, wc.tubeObservedTheStateSequence)
	sc.Step(`^tube (\d+) observed a launch-status event of (true|false)$`, wc.tubeObservedALaunchStatusEventOf)
	sc.Step(`^tube (\d+) did not observe a POST_LAUNCH state event$`, wc.tubeDidNotObserveAPOSTLAUNCHStateEvent)
	sc.Step(`^the request fails with an invalid transition error$`, wc.theRequestFailsWithAnInvalidTransitionError)

	sc.Step(`^an empty mine plan library$`, wc.anEmptyMinePlanLibrary)
	sc.Step(`^I save plan list (\d+) containing plan (\d+) with launch \(([\-0-9.]+),([\-0-9.]+)\), drop \(([\-0-9.]+),([\-0-9.]+)\) and waypoints \(([\-0-9.]+),([\-0-9.]+)\) \(([\-0-9.]+),([\-0-9.]+)\)$`, wc.iSavePlanListContainingPlanWithLaunchDropAndWaypoints)
	sc.Step(`^loading plan list (\d+) returns the same plan (\d+)$`, wc.loadingPlanListReturnsTheSamePlan)
	sc.Step(`^getting plan (\d+) from list (\d+) directly returns the same fields$`, wc.gettingPlanFromListDirectlyReturnsTheSameFields)
}
