package targetcache_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/Kwonjooeun/weaponctl/internal/domain/shared"
	"github.com/Kwonjooeun/weaponctl/internal/domain/targetcache"
)

func TestCache_UpdateAndGet(t *testing.T) {
	clock := shared.NewMockClock(time.Time{})
	c := targetcache.New(clock)

	_, ok := c.Get(7)
	assert.False(t, ok)

	c.Update(7, targetcache.Kinematics{Lat: 36, Lon: 130, Depth: 50})
	k, ok := c.Get(7)
	assert.True(t, ok)
	assert.Equal(t, 36.0, k.Lat)
	assert.Equal(t, 1, c.Len())
}

func TestCache_ClearOldEvictsStaleEntries(t *testing.T) {
	start := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	clock := shared.NewMockClock(start)
	c := targetcache.New(clock)

	c.Update(1, targetcache.Kinematics{Lat: 1, Lon: 1})
	clock.Advance(5 * time.Minute)
	c.Update(2, targetcache.Kinematics{Lat: 2, Lon: 2})

	clock.Advance(6 * time.Minute) // id=1 now 11 min old, id=2 is 6 min old
	c.ClearOld(10 * time.Minute)

	_, ok := c.Get(1)
	assert.False(t, ok)
	_, ok = c.Get(2)
	assert.True(t, ok)
	assert.Equal(t, 1, c.Len())
}
