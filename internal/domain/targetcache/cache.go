// Package targetcache implements the C7 target cache: the most recent
// kinematics reported for each system-target id, with staleness eviction.
package targetcache

import (
	"sync"
	"time"

	"github.com/Kwonjooeun/weaponctl/internal/domain/shared"
)

// Kinematics is one target-update snapshot.
type Kinematics struct {
	Lat   float64
	Lon   float64
	Depth float64
}

type entry struct {
	kinematics Kinematics
	lastUpdate time.Time
}

// Cache holds (system_target_id -> (kinematics, last_update_time)) behind
// a single read-write lock, per spec §4.6.
type Cache struct {
	clock shared.Clock

	mu      sync.RWMutex
	entries map[uint32]entry
}

// New constructs an empty cache. clock defaults to the real clock when nil.
func New(clock shared.Clock) *Cache {
	if clock == nil {
		clock = shared.NewRealClock()
	}
	return &Cache{clock: clock, entries: make(map[uint32]entry)}
}

// Update replaces the entry for targetID with the given kinematics,
// stamped with the current time.
func (c *Cache) Update(targetID uint32, k Kinematics) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries[targetID] = entry{kinematics: k, lastUpdate: c.clock.Now()}
}

// Get returns the cached kinematics for targetID and whether an entry
// exists; absence is reported explicitly rather than via a zero value.
func (c *Cache) Get(targetID uint32) (Kinematics, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	e, ok := c.entries[targetID]
	if !ok {
		return Kinematics{}, false
	}
	return e.kinematics, true
}

// ClearOld evicts entries whose last update is older than maxAge.
func (c *Cache) ClearOld(maxAge time.Duration) {
	cutoff := c.clock.Now().Add(-maxAge)
	c.mu.Lock()
	defer c.mu.Unlock()
	for id, e := range c.entries {
		if e.lastUpdate.Before(cutoff) {
			delete(c.entries, id)
		}
	}
}

// Len reports the number of cached entries, mainly for tests and status
// reporting.
func (c *Cache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.entries)
}
