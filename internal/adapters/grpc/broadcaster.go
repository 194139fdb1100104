package grpc

import (
	"sync"

	"github.com/google/uuid"

	"github.com/Kwonjooeun/weaponctl/internal/domain/engagement"
	"github.com/Kwonjooeun/weaponctl/internal/domain/weapon"
	"github.com/Kwonjooeun/weaponctl/pkg/rpc"
)

// eventBroadcaster implements launchtube.Observer and fans every tube
// event out to every currently-streaming StreamEvents client. A slow or
// stalled client never blocks the fleet: Publish is non-blocking per
// subscriber, dropping events for a subscriber whose buffer is full
// rather than stalling the notifying goroutine (which, per
// weapon.Base's contract, is holding no domain lock at this point but
// may be a hot path like Update()).
type eventBroadcaster struct {
	mu          sync.Mutex
	nextID      int
	subscribers map[int]chan *rpc.FleetEvent
}

func newEventBroadcaster() *eventBroadcaster {
	return &eventBroadcaster{subscribers: make(map[int]chan *rpc.FleetEvent)}
}

func (b *eventBroadcaster) subscribe() (int, <-chan *rpc.FleetEvent) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.nextID++
	id := b.nextID
	ch := make(chan *rpc.FleetEvent, 64)
	b.subscribers[id] = ch
	return id, ch
}

func (b *eventBroadcaster) unsubscribe(id int) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if ch, ok := b.subscribers[id]; ok {
		close(ch)
		delete(b.subscribers, id)
	}
}

func (b *eventBroadcaster) publish(e *rpc.FleetEvent) {
	b.mu.Lock()
	defer b.mu.Unlock()
	for _, ch := range b.subscribers {
		select {
		case ch <- e:
		default:
		}
	}
}

func (b *eventBroadcaster) OnStateChanged(tubeNumber int, oldState, newState weapon.ControlState) {
	b.publish(&rpc.FleetEvent{
		EventID:    uuid.New().String(),
		TubeNumber: tubeNumber,
		Kind:       "state_changed",
		FromState:  oldState,
		ToState:    newState,
	})
}

func (b *eventBroadcaster) OnLaunchStatusChanged(tubeNumber int, launched bool) {
	b.publish(&rpc.FleetEvent{
		EventID:    uuid.New().String(),
		TubeNumber: tubeNumber,
		Kind:       "launch_status",
		Launched:   launched,
	})
}

func (b *eventBroadcaster) OnEngagementPlanChanged(tubeNumber int, plan engagement.Plan) {
	b.publish(&rpc.FleetEvent{
		EventID:       uuid.New().String(),
		TubeNumber:    tubeNumber,
		Kind:          "plan_changed",
		PlanValid:     plan.Valid,
		PlanTotalTime: plan.TotalTimeSec,
		PlanTrajLen:   len(plan.Trajectory),
	})
}
