package engagement_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Kwonjooeun/weaponctl/internal/domain/engagement"
	"github.com/Kwonjooeun/weaponctl/internal/domain/mineplan"
	"github.com/Kwonjooeun/weaponctl/internal/domain/shared"
)

func testPlan() mineplan.Plan {
	return mineplan.Plan{
		Number: 42,
		Launch: shared.GeoPosition{Lat: 35.0, Lon: 129.0},
		Drop:   shared.GeoPosition{Lat: 35.5, Lon: 129.5},
		Waypoints: []shared.GeoPosition{
			{Lat: 35.1, Lon: 129.1},
			{Lat: 35.2, Lon: 129.2},
		},
	}
}

func TestMineEngagementManager_InvalidWithoutPlan(t *testing.T) {
	m := engagement.NewMineEngagementManager(5, 20, nil)
	assert.Error(t, m.CalculateEngagementPlan())
	assert.False(t, m.IsEngagementPlanValid())
}

func TestMineEngagementManager_SetDropPlanBecomesValid(t *testing.T) {
	m := engagement.NewMineEngagementManager(5, 20, nil)
	plan := testPlan()
	m.SetDropPlan(3, 42, &plan)

	require.NoError(t, m.CalculateEngagementPlan())
	assert.True(t, m.IsEngagementPlanValid())

	result := m.Result()
	assert.Equal(t, plan.Launch, result.LaunchPosition)
	assert.Equal(t, plan.Drop, result.TargetPosition)
	assert.Len(t, result.Trajectory, 4) // launch, 2 waypoints, drop
}

func TestMineEngagementManager_CurrentPositionWalksSegments(t *testing.T) {
	m := engagement.NewMineEngagementManager(5, 20, nil)
	plan := testPlan()
	m.SetDropPlan(3, 42, &plan)
	require.NoError(t, m.CalculateEngagementPlan())

	total := m.Result().TotalTimeSec
	start := m.CurrentPosition(0)
	assert.Equal(t, plan.Launch, start)

	end := m.CurrentPosition(total)
	assert.InDelta(t, plan.Drop.Lat, end.Lat, 1e-6)
	assert.InDelta(t, plan.Drop.Lon, end.Lon, 1e-6)
}

func TestMineEngagementManager_UpdateWaypointsCap(t *testing.T) {
	m := engagement.NewMineEngagementManager(1, 20, nil)
	plan := testPlan()
	m.SetDropPlan(3, 42, &plan)

	nine := make([]shared.GeoPosition, 9)
	assert.Error(t, m.UpdateWaypoints(nine))

	one := []shared.GeoPosition{{Lat: 1, Lon: 1}}
	assert.NoError(t, m.UpdateWaypoints(one))
}

func TestMineEngagementManager_UpdateAdvancesCurrentPositionAfterLaunch(t *testing.T) {
	clock := shared.NewMockClock(time.Time{})
	m := engagement.NewMineEngagementManager(5, 20, clock)
	plan := testPlan()
	m.SetDropPlan(3, 42, &plan)
	require.NoError(t, m.CalculateEngagementPlan())

	m.SetLaunched(true)
	total := m.Result().TotalTimeSec
	clock.Advance(time.Duration(total * float64(time.Second)))
	m.Update()

	end := m.Result().CurrentPosition
	assert.InDelta(t, plan.Drop.Lat, end.Lat, 1e-6)
	assert.InDelta(t, plan.Drop.Lon, end.Lon, 1e-6)
}

func TestMineEngagementManager_UpdateIsNoOpBeforeLaunch(t *testing.T) {
	clock := shared.NewMockClock(time.Time{})
	m := engagement.NewMineEngagementManager(5, 20, clock)
	plan := testPlan()
	m.SetDropPlan(3, 42, &plan)
	require.NoError(t, m.CalculateEngagementPlan())

	before := m.Result().CurrentPosition
	clock.Advance(10 * time.Second)
	m.Update()
	assert.Equal(t, before, m.Result().CurrentPosition)
}
