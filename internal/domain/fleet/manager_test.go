package fleet_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Kwonjooeun/weaponctl/internal/domain/factory"
	"github.com/Kwonjooeun/weaponctl/internal/domain/fleet"
	"github.com/Kwonjooeun/weaponctl/internal/domain/shared"
	"github.com/Kwonjooeun/weaponctl/internal/domain/targetcache"
	"github.com/Kwonjooeun/weaponctl/internal/domain/weapon"
)

func testFactoryConfig() factory.Config {
	return factory.Config{
		DefaultLaunchDelay: 0.01,
		MineSpeed:          20,
		ALMMaxRange:        10000,
		ASMMaxRange:        20000,
		ALMSpeed:           250,
		ASMSpeed:           300,
		AAMSpeed:           400,
	}
}

func newTestManager(t *testing.T, maxTubes int) *fleet.Manager {
	t.Helper()
	clock := shared.NewMockClock(time.Time{})
	f := factory.New(testFactoryConfig())
	cache := targetcache.New(clock)
	return fleet.New(maxTubes, f, clock, cache)
}

func TestManager_InvalidTubeNumberBounds(t *testing.T) {
	m := newTestManager(t, 6)

	err := m.Assign(fleet.AssignRequest{TubeNumber: 0, Kind: weapon.KindALM})
	assert.Error(t, err)

	err = m.Assign(fleet.AssignRequest{TubeNumber: 7, Kind: weapon.KindALM})
	assert.Error(t, err)
}

func TestManager_AssignHappyPathALM(t *testing.T) {
	m := newTestManager(t, 6)
	target := shared.GeoPosition{Lat: 35.1, Lon: 129.1}

	err := m.Assign(fleet.AssignRequest{
		TubeNumber:     2,
		Kind:           weapon.KindALM,
		TargetPosition: &target,
	})
	require.NoError(t, err)

	m.SetAxisCenter(shared.GeoPosition{Lat: 0, Lon: 0})
	m.UpdateOwnShip(shared.GeoPosition{Lat: 35.0, Lon: 129.0})

	m.Update()

	tube, err := m.Tube(2)
	require.NoError(t, err)
	require.NotNil(t, tube.Weapon())
	assert.True(t, tube.Weapon().IsFireSolutionReady())
}

func TestManager_InvalidTransitionFromOff(t *testing.T) {
	m := newTestManager(t, 6)
	target := shared.GeoPosition{Lat: 35.1, Lon: 129.1}
	require.NoError(t, m.Assign(fleet.AssignRequest{TubeNumber: 1, Kind: weapon.KindALM, TargetPosition: &target}))

	err := m.RequestStateChange(fleet.ControlRequest{TubeNumber: 1, TargetState: weapon.StateLaunch})
	assert.Error(t, err)

	tube, err := m.Tube(1)
	require.NoError(t, err)
	assert.Equal(t, weapon.StateOff, tube.Weapon().CurrentState())
}

func TestManager_EmergencyStopMixedFleet(t *testing.T) {
	// Uses a real clock rather than newTestManager's MockClock: driving
	// tube 1 into a genuinely in-flight LAUNCH (MockClock.Sleep never
	// actually blocks, so the launch would complete before EmergencyStop
	// had any chance to race it) is the point of this scenario.
	clock := shared.NewRealClock()
	f := factory.New(testFactoryConfig())
	cache := targetcache.New(clock)
	m := fleet.New(6, f, clock, cache)

	target := shared.GeoPosition{Lat: 35.1, Lon: 129.1}
	require.NoError(t, m.Assign(fleet.AssignRequest{TubeNumber: 1, Kind: weapon.KindALM, TargetPosition: &target}))
	require.NoError(t, m.Assign(fleet.AssignRequest{TubeNumber: 3, Kind: weapon.KindASM, TargetPosition: &target}))
	require.NoError(t, m.Assign(fleet.AssignRequest{TubeNumber: 5, Kind: weapon.KindMine}))

	m.SetAxisCenter(shared.GeoPosition{Lat: 0, Lon: 0})
	m.UpdateOwnShip(shared.GeoPosition{Lat: 35.0, Lon: 129.0})
	m.Update()

	tube1, _ := m.Tube(1)
	tube3, _ := m.Tube(3)
	tube5, _ := m.Tube(5)

	// Drive tube 1 through ON and into LAUNCH; tube 3 into RTL; tube 5 into ON.
	require.NoError(t, tube1.Weapon().RequestStateChange(weapon.StateOn, nil))
	tube1.Weapon().SetFireSolutionReady(true)
	tube1.Weapon().Update()
	require.Equal(t, weapon.StateRTL, tube1.Weapon().CurrentState())

	require.NoError(t, tube3.Weapon().RequestStateChange(weapon.StateOn, nil))
	tube3.Weapon().SetFireSolutionReady(true)
	tube3.Weapon().Update()
	require.Equal(t, weapon.StateRTL, tube3.Weapon().CurrentState())

	require.NoError(t, tube5.Weapon().RequestStateChange(weapon.StateOn, nil))

	errCh := make(chan error, 1)
	go func() { errCh <- tube1.Weapon().RequestStateChange(weapon.StateLaunch, nil) }()
	time.Sleep(5 * time.Millisecond)

	require.NoError(t, m.EmergencyStop())

	<-errCh
	assert.Equal(t, weapon.StateAbort, tube1.Weapon().CurrentState())
	assert.Equal(t, weapon.StateOff, tube3.Weapon().CurrentState())
	assert.Equal(t, weapon.StateOff, tube5.Weapon().CurrentState())
}

func TestManager_TargetResolutionViaSystemID(t *testing.T) {
	m := newTestManager(t, 6)

	require.NoError(t, m.Assign(fleet.AssignRequest{TubeNumber: 4, Kind: weapon.KindASM, SystemTargetID: 7}))
	m.SetAxisCenter(shared.GeoPosition{Lat: 0, Lon: 0})
	m.UpdateOwnShip(shared.GeoPosition{Lat: 35.0, Lon: 129.0})

	tube, err := m.Tube(4)
	require.NoError(t, err)
	require.Error(t, tube.CalculateEngagementPlan())
	assert.False(t, tube.Planner().Result().Valid)

	m.UpdateTarget(7, 36.0, 130.0, 50)
	require.NoError(t, tube.CalculateEngagementPlan())
	result := tube.Planner().Result()
	assert.True(t, result.Valid)
	assert.Equal(t, -50.0, result.TargetPosition.Alt)

	// An update for a different target must not move tube 4's resolved plan.
	m.UpdateTarget(8, 1, 1, 1)
	require.NoError(t, tube.CalculateEngagementPlan())
	assert.Equal(t, 36.0, tube.Planner().Result().TargetPosition.Lat)
}

func TestManager_TubeOccupiedOnDoubleAssign(t *testing.T) {
	m := newTestManager(t, 6)
	target := shared.GeoPosition{Lat: 35.1, Lon: 129.1}
	require.NoError(t, m.Assign(fleet.AssignRequest{TubeNumber: 1, Kind: weapon.KindALM, TargetPosition: &target}))

	err := m.Assign(fleet.AssignRequest{TubeNumber: 1, Kind: weapon.KindALM, TargetPosition: &target})
	assert.Error(t, err)
}

func TestManager_UnassignFreesTheSlot(t *testing.T) {
	m := newTestManager(t, 6)
	target := shared.GeoPosition{Lat: 35.1, Lon: 129.1}
	require.NoError(t, m.Assign(fleet.AssignRequest{TubeNumber: 1, Kind: weapon.KindALM, TargetPosition: &target}))

	require.NoError(t, m.Unassign(1))
	tube, err := m.Tube(1)
	require.NoError(t, err)
	assert.False(t, tube.IsAssigned())

	require.NoError(t, m.Assign(fleet.AssignRequest{TubeNumber: 1, Kind: weapon.KindASM, TargetPosition: &target}))
}

func TestManager_TubeCount(t *testing.T) {
	m := newTestManager(t, 8)
	assert.Equal(t, 8, m.TubeCount())
}
