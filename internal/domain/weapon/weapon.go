package weapon

import (
	"sync"
	"sync/atomic"
	"time"

	"github.com/Kwonjooeun/weaponctl/internal/domain/shared"
)

// pollInterval is the cancellation-poll granularity for suspension points,
// per spec §5 ("no coarser than 50 ms").
const pollInterval = 50 * time.Millisecond

// Weapon is the behavior contract for a single assigned weapon (C2).
type Weapon interface {
	Kind() Kind
	Specification() Specification
	TubeNumber() int
	CurrentState() ControlState

	// RequestStateChange drives the weapon toward newState. If newState is
	// StateAbort it always succeeds: any in-flight transition is cancelled
	// (an in-flight LAUNCH unwinds to ABORT, an in-flight turn-on unwinds
	// to OFF), and otherwise the weapon is driven to ABORT. Otherwise it validates the edge
	// against the transition graph before executing the transition's work,
	// which may block the calling goroutine for up to the sum of the
	// transition's step durations.
	RequestStateChange(newState ControlState, token *shared.CancellationToken) error

	IsLaunched() bool
	IsFireSolutionReady() bool
	SetFireSolutionReady(ready bool)

	// CheckInterlockConditions reports whether weapon-kind-specific
	// interlocks are satisfied. The default is the fire-solution-ready
	// flag; concrete kinds may tighten it.
	CheckInterlockConditions() bool

	// Update runs the automatic edges (ON<->RTL) described in §4.1.
	Update()

	Reset()

	AddObserver(o StateObserver) Subscription
	RemoveObserver(sub Subscription)
}

// interlockChecker lets concrete weapon kinds tighten CheckInterlockConditions
// beyond the default fire-solution-ready flag.
type interlockChecker interface {
	checkInterlocks(base *Base) bool
}

type stateEvent struct {
	from, to ControlState
}

// Base implements the shared state-machine mechanics described in §4.1.
// Concrete weapon kinds embed Base and optionally supply a stricter
// interlock check.
type Base struct {
	kind       Kind
	tubeNumber int
	spec       Specification
	clock      shared.Clock

	currentState atomic.Value // ControlState
	launched     atomic.Bool
	fireReady    atomic.Bool

	stateMu sync.Mutex // serializes execution of non-ABORT transitions

	tokenMu      sync.Mutex // guards currentToken independent of stateMu, so ABORT never blocks on it
	currentToken *shared.CancellationToken

	observersMu sync.Mutex
	observers   map[Subscription]StateObserver
	nextSub     Subscription

	interlocks interlockChecker // optional override, nil uses default
}

// NewBase constructs a Base in state OFF. clock defaults to the real clock
// when nil.
func NewBase(kind Kind, tubeNumber int, spec Specification, clock shared.Clock, interlocks interlockChecker) *Base {
	if clock == nil {
		clock = shared.NewRealClock()
	}
	b := &Base{
		kind:       kind,
		tubeNumber: tubeNumber,
		spec:       spec.Clone(),
		clock:      clock,
		observers:  make(map[Subscription]StateObserver),
		interlocks: interlocks,
	}
	b.currentState.Store(StateOff)
	return b
}

func (b *Base) Kind() Kind                   { return b.kind }
func (b *Base) Specification() Specification { return b.spec.Clone() }
func (b *Base) TubeNumber() int              { return b.tubeNumber }

func (b *Base) CurrentState() ControlState {
	return b.currentState.Load().(ControlState)
}

func (b *Base) IsLaunched() bool { return b.launched.Load() }

func (b *Base) IsFireSolutionReady() bool { return b.fireReady.Load() }

func (b *Base) SetFireSolutionReady(ready bool) { b.fireReady.Store(ready) }

func (b *Base) CheckInterlockConditions() bool {
	if b.interlocks != nil {
		return b.interlocks.checkInterlocks(b)
	}
	return b.IsFireSolutionReady()
}

func (b *Base) Reset() {
	b.stateMu.Lock()
	b.currentState.Store(StateOff)
	b.launched.Store(false)
	b.fireReady.Store(false)
	b.stateMu.Unlock()
	b.setCurrentToken(nil)
}

func (b *Base) AddObserver(o StateObserver) Subscription {
	b.observersMu.Lock()
	defer b.observersMu.Unlock()
	b.nextSub++
	sub := b.nextSub
	b.observers[sub] = o
	return sub
}

func (b *Base) RemoveObserver(sub Subscription) {
	b.observersMu.Lock()
	defer b.observersMu.Unlock()
	delete(b.observers, sub)
}

// Update runs the automatic ON<->RTL edges and notifies observers outside
// the state lock. While a transition holds the state lock (a turn-on or
// launch in progress) it returns at once instead of waiting; neither POC
// nor LAUNCH has an automatic edge.
func (b *Base) Update() {
	if !b.stateMu.TryLock() {
		return
	}
	current := b.CurrentState()
	satisfied := b.CheckInterlockConditions()

	var events []stateEvent
	switch {
	case current == StateOn && satisfied:
		b.currentState.Store(StateRTL)
		events = append(events, stateEvent{StateOn, StateRTL})
	case current == StateRTL && !satisfied:
		b.currentState.Store(StateOn)
		events = append(events, stateEvent{StateRTL, StateOn})
	}
	b.stateMu.Unlock()

	b.dispatchStateEvents(events)
}

// RequestStateChange implements the §4.1 contract. Observer notification
// always happens after stateMu is released, so an observer calling back
// into RequestStateChange for this weapon does not deadlock (it will
// simply serialize behind this call via the mutex instead of re-entering
// it). ABORT is handled separately by abort, which never waits on
// stateMu: it must preempt an in-flight transition, not queue behind one.
func (b *Base) RequestStateChange(newState ControlState, token *shared.CancellationToken) error {
	if newState == StateAbort {
		return b.abort(token)
	}

	b.stateMu.Lock()

	from := b.CurrentState()
	if !IsValidTransition(from, newState) {
		b.stateMu.Unlock()
		return shared.NewInvalidTransitionError(b.tubeNumber, string(from), string(newState))
	}

	if token == nil {
		token = shared.NewCancellationToken()
	}
	b.setCurrentToken(token)

	var events []stateEvent
	var launchEvent *bool
	var err error

	switch {
	case from == StateOff && newState == StateOn:
		events, err = b.processTurnOn(token)
	case from == StateRTL && newState == StateLaunch:
		events, launchEvent, err = b.processLaunch(token)
	default:
		if from == StatePostLaunch && newState == StateOff {
			b.launched.Store(false)
		}
		events = b.flipLocked(from, newState)
	}

	b.setCurrentToken(nil)
	b.stateMu.Unlock()

	b.dispatchStateEvents(events)
	if launchEvent != nil {
		b.notifyLaunchStatusChanged(*launchEvent)
	}
	return err
}

// abort cancels any in-flight transition's token immediately rather than
// waiting for stateMu: a transition executing processTurnOn/processLaunch
// holds stateMu for the full duration of its sleeps, so acquiring it here
// first would make ABORT queue behind the very operation it needs to
// preempt. If nothing is in flight, abort flips the state itself;
// otherwise the in-flight transition observes the cancelled token on its
// next poll and unwinds itself: a launch to ABORT, a turn-on to OFF.
func (b *Base) abort(externalToken *shared.CancellationToken) error {
	b.tokenMu.Lock()
	if b.currentToken != nil {
		b.currentToken.Cancel()
	}
	b.tokenMu.Unlock()
	if externalToken != nil {
		externalToken.Cancel()
	}

	if !b.stateMu.TryLock() {
		return nil
	}
	from := b.CurrentState()
	events := b.flipLocked(from, StateAbort)
	b.stateMu.Unlock()
	b.setCurrentToken(nil)

	b.dispatchStateEvents(events)
	return nil
}

func (b *Base) setCurrentToken(token *shared.CancellationToken) {
	b.tokenMu.Lock()
	b.currentToken = token
	b.tokenMu.Unlock()
}

// flipLocked records a single transition event. Caller holds stateMu.
func (b *Base) flipLocked(from, to ControlState) []stateEvent {
	if from == to {
		return nil
	}
	b.currentState.Store(to)
	return []stateEvent{{from, to}}
}

// processTurnOn executes OFF->ON: POC, delay, ON. Caller holds stateMu.
func (b *Base) processTurnOn(token *shared.CancellationToken) ([]stateEvent, error) {
	events := b.flipLocked(StateOff, StatePOC)

	if b.sleepCancellable(secondsToDuration(b.spec.PowerOnDelay), token) {
		events = append(events, b.flipLocked(StatePOC, StateOff)...)
		return events, shared.NewOperationCancelledError("turn-on cancelled during POC")
	}

	events = append(events, b.flipLocked(StatePOC, StateOn)...)
	return events, nil
}

// processLaunch executes RTL->LAUNCH: run each launch step, then flip
// launched+POST_LAUNCH atomically. Caller holds stateMu.
func (b *Base) processLaunch(token *shared.CancellationToken) ([]stateEvent, *bool, error) {
	events := b.flipLocked(StateRTL, StateLaunch)

	for _, step := range b.spec.LaunchSteps {
		if b.sleepCancellable(step.Duration, token) {
			events = append(events, b.flipLocked(StateLaunch, StateAbort)...)
			return events, nil, shared.NewOperationCancelledError("launch cancelled during step: " + step.Description)
		}
	}

	b.launched.Store(true)
	events = append(events, b.flipLocked(StateLaunch, StatePostLaunch)...)
	launched := true
	return events, &launched, nil
}

// sleepCancellable sleeps d in pollInterval increments, returning true if
// either token observed cancellation before d elapsed.
func (b *Base) sleepCancellable(d time.Duration, token *shared.CancellationToken) bool {
	remaining := d
	for remaining > 0 {
		if token.IsCancelled() {
			return true
		}
		step := pollInterval
		if step > remaining {
			step = remaining
		}
		b.clock.Sleep(step)
		remaining -= step
	}
	return token.IsCancelled()
}

func (b *Base) dispatchStateEvents(events []stateEvent) {
	if len(events) == 0 {
		return
	}
	b.observersMu.Lock()
	observers := make([]StateObserver, 0, len(b.observers))
	for _, o := range b.observers {
		observers = append(observers, o)
	}
	b.observersMu.Unlock()

	for _, ev := range events {
		for _, o := range observers {
			o.OnStateChanged(b.tubeNumber, ev.from, ev.to)
		}
	}
}

func (b *Base) notifyLaunchStatusChanged(launched bool) {
	b.observersMu.Lock()
	observers := make([]StateObserver, 0, len(b.observers))
	for _, o := range b.observers {
		observers = append(observers, o)
	}
	b.observersMu.Unlock()

	for _, o := range observers {
		o.OnLaunchStatusChanged(b.tubeNumber, launched)
	}
}

func secondsToDuration(s float64) time.Duration {
	return time.Duration(s * float64(time.Second))
}
