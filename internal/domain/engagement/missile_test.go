package engagement_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Kwonjooeun/weaponctl/internal/domain/engagement"
	"github.com/Kwonjooeun/weaponctl/internal/domain/shared"
	"github.com/Kwonjooeun/weaponctl/internal/domain/weapon"
)

func TestMissileEngagementManager_InvalidWithoutTarget(t *testing.T) {
	m := engagement.NewMissileEngagementManager(2, weapon.KindALM, 250, nil)
	m.UpdateOwnShipInfo(shared.GeoPosition{Lat: 35.0, Lon: 129.0})

	err := m.CalculateEngagementPlan()
	assert.Error(t, err)
	assert.False(t, m.IsEngagementPlanValid())
}

func TestMissileEngagementManager_DirectTargetBecomesValid(t *testing.T) {
	m := engagement.NewMissileEngagementManager(2, weapon.KindALM, 250, nil)
	m.UpdateOwnShipInfo(shared.GeoPosition{Lat: 35.0, Lon: 129.0})
	m.SetTargetPosition(shared.GeoPosition{Lat: 35.1, Lon: 129.1})

	require.NoError(t, m.CalculateEngagementPlan())
	assert.True(t, m.IsEngagementPlanValid())

	result := m.Result()
	assert.True(t, result.Valid)
	assert.Greater(t, result.TotalTimeSec, 0.0)
	assert.Len(t, result.Trajectory, 2)
}

func TestMissileEngagementManager_SystemTargetResolution(t *testing.T) {
	m := engagement.NewMissileEngagementManager(4, weapon.KindASM, 250, nil)
	m.UpdateOwnShipInfo(shared.GeoPosition{Lat: 35.0, Lon: 129.0})
	m.SetSystemTarget(7)

	// Not yet resolved.
	assert.Error(t, m.CalculateEngagementPlan())

	m.UpdateTargetInfo(7, 36.0, 130.0, 50)
	require.NoError(t, m.CalculateEngagementPlan())
	assert.True(t, m.IsEngagementPlanValid())
	assert.Equal(t, -50.0, m.Result().TargetPosition.Alt)

	// An update for an unrelated target id must not disturb the resolved plan.
	m.UpdateTargetInfo(8, 1, 1, 1)
	assert.Equal(t, 36.0, m.Result().TargetPosition.Lat)
}

func TestMissileEngagementManager_UpdateWaypointsCap(t *testing.T) {
	m := engagement.NewMissileEngagementManager(1, weapon.KindALM, 250, nil)
	nine := make([]shared.GeoPosition, 9)
	err := m.UpdateWaypoints(nine)
	assert.Error(t, err)

	eight := make([]shared.GeoPosition, 8)
	assert.NoError(t, m.UpdateWaypoints(eight))
}

func TestMissileEngagementManager_CurrentPositionInterpolates(t *testing.T) {
	m := engagement.NewMissileEngagementManager(1, weapon.KindALM, 100, nil)
	m.UpdateOwnShipInfo(shared.GeoPosition{Lat: 0, Lon: 0})
	m.SetTargetPosition(shared.GeoPosition{Lat: 1, Lon: 0})
	require.NoError(t, m.CalculateEngagementPlan())

	total := m.Result().TotalTimeSec
	mid := m.CurrentPosition(total / 2)
	assert.InDelta(t, 0.5, mid.Lat, 0.01)

	past := m.CurrentPosition(total * 2)
	assert.InDelta(t, 1.0, past.Lat, 1e-9)
}

func TestMissileEngagementManager_UpdateAdvancesCurrentPositionAfterLaunch(t *testing.T) {
	clock := shared.NewMockClock(time.Time{})
	m := engagement.NewMissileEngagementManager(1, weapon.KindALM, 100, clock)
	m.UpdateOwnShipInfo(shared.GeoPosition{Lat: 0, Lon: 0})
	m.SetTargetPosition(shared.GeoPosition{Lat: 1, Lon: 0})
	require.NoError(t, m.CalculateEngagementPlan())

	launchPos := m.Result().CurrentPosition
	assert.Equal(t, 0.0, launchPos.Lat)

	m.SetLaunched(true)
	total := m.Result().TotalTimeSec
	clock.Advance(time.Duration(total/2*float64(time.Second)))
	m.Update()

	mid := m.Result().CurrentPosition
	assert.InDelta(t, 0.5, mid.Lat, 0.01)
	assert.Greater(t, mid.Lat, launchPos.Lat)
}

func TestMissileEngagementManager_UpdateIsNoOpBeforeLaunch(t *testing.T) {
	clock := shared.NewMockClock(time.Time{})
	m := engagement.NewMissileEngagementManager(1, weapon.KindALM, 100, clock)
	m.UpdateOwnShipInfo(shared.GeoPosition{Lat: 0, Lon: 0})
	m.SetTargetPosition(shared.GeoPosition{Lat: 1, Lon: 0})
	require.NoError(t, m.CalculateEngagementPlan())

	before := m.Result().CurrentPosition
	clock.Advance(10 * time.Second)
	m.Update()
	assert.Equal(t, before, m.Result().CurrentPosition)
}
