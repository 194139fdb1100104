package metrics

import (
	"context"
	"strconv"
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/Kwonjooeun/weaponctl/internal/domain/engagement"
	"github.com/Kwonjooeun/weaponctl/internal/domain/fleet"
	"github.com/Kwonjooeun/weaponctl/internal/domain/weapon"
)

// FleetMetricsCollector records per-tube weapon state transitions, launch
// events, and engagement-plan recalculations, and polls the fleet
// manager for current tube occupancy — grounded on the teacher's
// ContainerMetricsCollector (ticker-polled gauges plus event-driven
// counters against the same Registry).
type FleetMetricsCollector struct {
	fleet *fleet.Manager

	tubeAssigned     *prometheus.GaugeVec
	tubeState        *prometheus.GaugeVec
	stateTransitions *prometheus.CounterVec
	launches         *prometheus.CounterVec
	planValid        *prometheus.GaugeVec
	planTotalTime    *prometheus.HistogramVec

	ctx        context.Context
	cancelFunc context.CancelFunc
	wg         sync.WaitGroup
	mu         sync.Mutex
}

func NewFleetMetricsCollector(f *fleet.Manager) *FleetMetricsCollector {
	return &FleetMetricsCollector{
		fleet: f,

		tubeAssigned: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: namespace, Subsystem: subsystem,
			Name: "tube_assigned", Help: "Whether a tube currently has a weapon assigned (1) or is empty (0)",
		}, []string{"tube_number", "kind"}),

		tubeState: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: namespace, Subsystem: subsystem,
			Name: "tube_state", Help: "Current control state per tube, one-hot across state labels",
		}, []string{"tube_number", "kind", "state"}),

		stateTransitions: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace, Subsystem: subsystem,
			Name: "state_transitions_total", Help: "Total weapon state transitions by tube and edge",
		}, []string{"tube_number", "kind", "from_state", "to_state"}),

		launches: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace, Subsystem: subsystem,
			Name: "launches_total", Help: "Total weapon launches by tube and kind",
		}, []string{"tube_number", "kind"}),

		planValid: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: namespace, Subsystem: subsystem,
			Name: "engagement_plan_valid", Help: "Whether a tube's engagement plan is currently valid",
		}, []string{"tube_number", "kind"}),

		planTotalTime: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace, Subsystem: subsystem,
			Name:    "engagement_plan_total_time_seconds",
			Help:    "Distribution of recalculated engagement plan total time to target",
			Buckets: []float64{1, 5, 15, 30, 60, 120, 300, 600},
		}, []string{"tube_number", "kind"}),
	}
}

func (c *FleetMetricsCollector) Register() error {
	if Registry == nil {
		return nil
	}
	for _, m := range []prometheus.Collector{
		c.tubeAssigned, c.tubeState, c.stateTransitions, c.launches, c.planValid, c.planTotalTime,
	} {
		if err := Registry.Register(m); err != nil {
			return err
		}
	}
	return nil
}

// Start begins the periodic tube-occupancy poll (assignment changes are
// not observer events, so they are polled rather than pushed).
func (c *FleetMetricsCollector) Start(ctx context.Context, pollInterval time.Duration) {
	c.ctx, c.cancelFunc = context.WithCancel(ctx)
	c.wg.Add(1)
	go c.pollLoop(pollInterval)
}

func (c *FleetMetricsCollector) Stop() {
	if c.cancelFunc != nil {
		c.cancelFunc()
	}
	c.wg.Wait()
}

func (c *FleetMetricsCollector) pollLoop(interval time.Duration) {
	defer c.wg.Done()
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-c.ctx.Done():
			return
		case <-ticker.C:
			c.pollOnce()
		}
	}
}

func (c *FleetMetricsCollector) pollOnce() {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.tubeAssigned.Reset()
	for i := 1; i <= c.fleet.TubeCount(); i++ {
		t, err := c.fleet.Tube(i)
		if err != nil {
			continue
		}
		tubeLabel := strconv.Itoa(i)
		w := t.Weapon()
		if w == nil {
			c.tubeAssigned.WithLabelValues(tubeLabel, "").Set(0)
			continue
		}
		c.tubeAssigned.WithLabelValues(tubeLabel, string(w.Kind())).Set(1)
	}
}

// OnStateChanged implements launchtube.Observer.
func (c *FleetMetricsCollector) OnStateChanged(tubeNumber int, oldState, newState weapon.ControlState) {
	tubeLabel := strconv.Itoa(tubeNumber)
	kind := c.kindOf(tubeNumber)
	c.stateTransitions.WithLabelValues(tubeLabel, kind, string(oldState), string(newState)).Inc()
	c.tubeState.Reset()
	c.tubeState.WithLabelValues(tubeLabel, kind, string(newState)).Set(1)
}

// OnLaunchStatusChanged implements launchtube.Observer.
func (c *FleetMetricsCollector) OnLaunchStatusChanged(tubeNumber int, launched bool) {
	if !launched {
		return
	}
	c.launches.WithLabelValues(strconv.Itoa(tubeNumber), c.kindOf(tubeNumber)).Inc()
}

// OnEngagementPlanChanged implements launchtube.Observer.
func (c *FleetMetricsCollector) OnEngagementPlanChanged(tubeNumber int, plan engagement.Plan) {
	tubeLabel := strconv.Itoa(tubeNumber)
	kind := string(plan.Kind)
	valid := 0.0
	if plan.Valid {
		valid = 1.0
	}
	c.planValid.WithLabelValues(tubeLabel, kind).Set(valid)
	if plan.Valid {
		c.planTotalTime.WithLabelValues(tubeLabel, kind).Observe(plan.TotalTimeSec)
	}
}

func (c *FleetMetricsCollector) kindOf(tubeNumber int) string {
	t, err := c.fleet.Tube(tubeNumber)
	if err != nil {
		return ""
	}
	if w := t.Weapon(); w != nil {
		return string(w.Kind())
	}
	return ""
}
