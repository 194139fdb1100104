package targetcache_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/Kwonjooeun/weaponctl/internal/domain/shared"
	"github.com/Kwonjooeun/weaponctl/internal/domain/targetcache"
)

func TestSweeper_EvictsOnTick(t *testing.T) {
	clock := shared.NewRealClock()
	c := targetcache.New(clock)
	c.Update(1, targetcache.Kinematics{Lat: 1, Lon: 1})

	sweeper := targetcache.NewSweeper(c, 10*time.Millisecond, 20*time.Millisecond)
	sweeper.Start()

	assert.Eventually(t, func() bool {
		return c.Len() == 0
	}, time.Second, 5*time.Millisecond)

	sweeper.Stop()
}

func TestSweeper_StopIsIdempotent(t *testing.T) {
	c := targetcache.New(shared.NewRealClock())
	sweeper := targetcache.NewSweeper(c, time.Hour, time.Hour)
	sweeper.Start()
	sweeper.Stop()
	sweeper.Stop() // must not panic or block
}
