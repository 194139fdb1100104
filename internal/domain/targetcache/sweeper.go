package targetcache

import (
	"sync"
	"time"
)

// Sweeper periodically evicts stale cache entries in the background,
// grounded on the reference codebase's ticker/stop-channel pattern for
// background maintenance work.
type Sweeper struct {
	cache    *Cache
	interval time.Duration
	maxAge   time.Duration

	stopOnce sync.Once
	stopCh   chan struct{}
	doneCh   chan struct{}
}

// NewSweeper constructs a sweeper that calls cache.ClearOld(maxAge) every
// interval once started.
func NewSweeper(cache *Cache, interval, maxAge time.Duration) *Sweeper {
	return &Sweeper{
		cache:    cache,
		interval: interval,
		maxAge:   maxAge,
		stopCh:   make(chan struct{}),
		doneCh:   make(chan struct{}),
	}
}

// Start launches the background sweep goroutine.
func (s *Sweeper) Start() {
	go func() {
		defer close(s.doneCh)
		ticker := time.NewTicker(s.interval)
		defer ticker.Stop()

		for {
			select {
			case <-s.stopCh:
				return
			case <-ticker.C:
				s.cache.ClearOld(s.maxAge)
			}
		}
	}()
}

// Stop signals the sweeper goroutine to exit and waits for it to do so.
func (s *Sweeper) Stop() {
	s.stopOnce.Do(func() { close(s.stopCh) })
	<-s.doneCh
}
