package grpc

import (
	"sync"
	"time"

	"github.com/Kwonjooeun/weaponctl/internal/domain/fleet"
	"github.com/Kwonjooeun/weaponctl/internal/infrastructure/logging"
)

// FleetScheduler periodically ticks the fleet manager: weapon
// automatic-edge evaluation and engagement-plan recalculation both run
// off the same clock, at the interval SystemConfig names. Grounded on
// the teacher's ShipStateScheduler.StartBackgroundSweeper ticker+stopCh
// shape; this repo has no per-entity precise-deadline timers to manage
// (weapon.Base/engagement.Manager already encapsulate their own timing),
// so the AfterFunc-per-ship machinery is not carried forward — only the
// ticker/stop lifecycle is.
type FleetScheduler struct {
	fleet    *fleet.Manager
	interval time.Duration
	logger   logging.FleetLogger

	stopOnce sync.Once
	stopCh   chan struct{}
	doneCh   chan struct{}
}

func NewFleetScheduler(f *fleet.Manager, interval time.Duration, logger logging.FleetLogger) *FleetScheduler {
	return &FleetScheduler{
		fleet:    f,
		interval: interval,
		logger:   logger,
		stopCh:   make(chan struct{}),
		doneCh:   make(chan struct{}),
	}
}

func (s *FleetScheduler) Start() {
	go func() {
		defer close(s.doneCh)
		ticker := time.NewTicker(s.interval)
		defer ticker.Stop()
		for {
			select {
			case <-s.stopCh:
				return
			case <-ticker.C:
				s.fleet.Update()
			}
		}
	}()
	s.logger.Log("info", "fleet scheduler started", map[string]interface{}{"interval_ms": s.interval.Milliseconds()})
}

func (s *FleetScheduler) Stop() {
	s.stopOnce.Do(func() {
		close(s.stopCh)
		<-s.doneCh
	})
}
