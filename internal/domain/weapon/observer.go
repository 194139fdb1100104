package weapon

// StateObserver receives weapon state-change and launch-status notifications.
//
// The reference implementation holds observers through weak references so
// a tube can be torn down without keeping its weapon's observer list alive,
// and so a dangling observer never panics the notifier. Go's garbage
// collector already reclaims cyclic tube<->weapon graphs without help, so
// this port drops the weak-reference machinery entirely and instead
// requires explicit Unsubscribe: a tube registers itself in Assign and
// unregisters in Clear, which is both simpler and leaves no expired
// entries to sweep.
type StateObserver interface {
	OnStateChanged(tubeNumber int, oldState, newState ControlState)
	OnLaunchStatusChanged(tubeNumber int, launched bool)
}

// Subscription identifies a registered observer for later removal.
type Subscription int
