package shared_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/Kwonjooeun/weaponctl/internal/domain/shared"
)

func TestMockClock_AdvanceAndSetTime(t *testing.T) {
	start := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	clock := shared.NewMockClock(start)

	assert.Equal(t, start, clock.Now())

	clock.Advance(5 * time.Second)
	assert.Equal(t, start.Add(5*time.Second), clock.Now())

	clock.Sleep(2 * time.Second)
	assert.Equal(t, start.Add(7*time.Second), clock.Now())

	later := start.Add(time.Hour)
	clock.SetTime(later)
	assert.Equal(t, later, clock.Now())
}

func TestNewMockClock_ZeroTimeDefaultsToNow(t *testing.T) {
	before := time.Now()
	clock := shared.NewMockClock(time.Time{})
	after := time.Now()

	assert.False(t, clock.Now().Before(before))
	assert.False(t, clock.Now().After(after.Add(time.Second)))
}

func TestRealClock_Now(t *testing.T) {
	clock := shared.NewRealClock()
	before := time.Now().UTC()
	now := clock.Now()
	assert.False(t, now.Before(before))
}
