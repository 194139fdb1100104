package weapon

import "time"

// LaunchStep is one named, timed phase of the LAUNCH sequence. Steps are
// read-only after weapon construction.
type LaunchStep struct {
	Description string
	Duration    time.Duration
}
