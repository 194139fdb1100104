package grpc

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Kwonjooeun/weaponctl/internal/domain/engagement"
	"github.com/Kwonjooeun/weaponctl/internal/domain/shared"
	"github.com/Kwonjooeun/weaponctl/internal/domain/weapon"
)

func TestEventBroadcaster_PublishFansOutToSubscribers(t *testing.T) {
	b := newEventBroadcaster()
	_, ch1 := b.subscribe()
	_, ch2 := b.subscribe()

	b.OnStateChanged(2, weapon.StateOff, weapon.StateOn)

	e1 := <-ch1
	e2 := <-ch2
	assert.Equal(t, "state_changed", e1.Kind)
	assert.Equal(t, "state_changed", e2.Kind)
	assert.NotEmpty(t, e1.EventID)
	assert.Equal(t, e1.EventID, e2.EventID, "all subscribers receive the same published event pointer")
	assert.Equal(t, weapon.StateOff, e1.FromState)
	assert.Equal(t, weapon.StateOn, e1.ToState)
}

func TestEventBroadcaster_UnsubscribeStopsDelivery(t *testing.T) {
	b := newEventBroadcaster()
	id, ch := b.subscribe()
	b.unsubscribe(id)

	b.OnLaunchStatusChanged(1, true)

	_, ok := <-ch
	assert.False(t, ok, "channel should be closed after unsubscribe")
}

func TestEventBroadcaster_DropsOnFullBuffer(t *testing.T) {
	b := newEventBroadcaster()
	_, ch := b.subscribe()

	for i := 0; i < 100; i++ {
		b.OnStateChanged(1, weapon.StateOff, weapon.StateOn)
	}

	// Must not block or panic; channel holds at most its buffer size.
	drained := 0
	for {
		select {
		case <-ch:
			drained++
		default:
			assert.LessOrEqual(t, drained, 64)
			return
		}
	}
}

func TestEventBroadcaster_PlanChangedCarriesDerivedFields(t *testing.T) {
	b := newEventBroadcaster()
	_, ch := b.subscribe()

	traj := []shared.GeoPosition{{Lat: 35, Lon: 129}, {Lat: 35.1, Lon: 129.1}}
	b.OnEngagementPlanChanged(3, engagement.Plan{Valid: true, TotalTimeSec: 12.5, Trajectory: traj})
	e := <-ch
	require.Equal(t, "plan_changed", e.Kind)
	assert.True(t, e.PlanValid)
	assert.Equal(t, 12.5, e.PlanTotalTime)
	assert.Equal(t, 2, e.PlanTrajLen)
}
