package launchtube_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Kwonjooeun/weaponctl/internal/domain/engagement"
	"github.com/Kwonjooeun/weaponctl/internal/domain/launchtube"
	"github.com/Kwonjooeun/weaponctl/internal/domain/shared"
	"github.com/Kwonjooeun/weaponctl/internal/domain/weapon"
)

type recordingTubeObserver struct {
	states []weapon.ControlState
	plans  int
}

func (o *recordingTubeObserver) OnStateChanged(tubeNumber int, oldState, newState weapon.ControlState) {
	o.states = append(o.states, newState)
}
func (o *recordingTubeObserver) OnLaunchStatusChanged(tubeNumber int, launched bool) {}
func (o *recordingTubeObserver) OnEngagementPlanChanged(tubeNumber int, plan engagement.Plan) {
	o.plans++
}

func newTestWeapon(tubeNumber int) weapon.Weapon {
	clock := shared.NewMockClock(time.Time{})
	spec := weapon.Specification{PowerOnDelay: 0.01, SpeedMPS: 100}
	return weapon.NewALMWeapon(tubeNumber, spec, clock)
}

func TestTube_AssignRejectsMismatchedTubeNumber(t *testing.T) {
	tube := launchtube.New(2)
	w := newTestWeapon(2)
	p := engagement.NewMissileEngagementManager(2, weapon.KindALM, 250, nil)

	err := tube.Assign(w, p, launchtube.Info{TubeNumber: 3})
	assert.Error(t, err)
	assert.False(t, tube.IsAssigned())
}

func TestTube_AssignThenClear(t *testing.T) {
	tube := launchtube.New(2)
	w := newTestWeapon(2)
	p := engagement.NewMissileEngagementManager(2, weapon.KindALM, 250, nil)

	require.NoError(t, tube.Assign(w, p, launchtube.Info{TubeNumber: 2}))
	assert.True(t, tube.IsAssigned())

	tube.Clear()
	assert.False(t, tube.IsAssigned())
	assert.Nil(t, tube.Weapon())
}

func TestTube_DoubleAssignIsRejected(t *testing.T) {
	tube := launchtube.New(1)
	require.NoError(t, tube.Assign(newTestWeapon(1), engagement.NewMissileEngagementManager(1, weapon.KindALM, 250, nil), launchtube.Info{TubeNumber: 1}))

	err := tube.Assign(newTestWeapon(1), engagement.NewMissileEngagementManager(1, weapon.KindALM, 250, nil), launchtube.Info{TubeNumber: 1})
	assert.Error(t, err)
}

func TestTube_CalculateEngagementPlanNotifiesOnChangeOnly(t *testing.T) {
	tube := launchtube.New(2)
	w := newTestWeapon(2)
	p := engagement.NewMissileEngagementManager(2, weapon.KindALM, 250, nil)
	require.NoError(t, tube.Assign(w, p, launchtube.Info{TubeNumber: 2}))

	obs := &recordingTubeObserver{}
	tube.AddObserver(obs)

	tube.SetAxisCenter(shared.GeoPosition{Lat: 0, Lon: 0})
	tube.UpdateOwnShipInfo(shared.GeoPosition{Lat: 35.0, Lon: 129.0})
	p.SetTargetPosition(shared.GeoPosition{Lat: 35.1, Lon: 129.1})

	require.NoError(t, tube.CalculateEngagementPlan())
	assert.Equal(t, 1, obs.plans)
	assert.True(t, w.IsFireSolutionReady())

	// Recalculating with the identical inputs must not double-notify.
	require.NoError(t, tube.CalculateEngagementPlan())
	assert.Equal(t, 1, obs.plans)
}

func TestTube_UpdateSkipsRecalculationAfterLaunch(t *testing.T) {
	tube := launchtube.New(2)
	w := newTestWeapon(2)
	p := engagement.NewMissileEngagementManager(2, weapon.KindALM, 250, nil)
	require.NoError(t, tube.Assign(w, p, launchtube.Info{TubeNumber: 2}))

	p.SetLaunched(true)
	tube.Update() // must not panic and must skip CalculateEngagementPlan
}

func TestTube_UpdateOnEmptyTubeIsNoop(t *testing.T) {
	tube := launchtube.New(1)
	tube.Update()
	assert.False(t, tube.IsAssigned())
}
