// Package grpc is the daemon's transport adapter: a hand-written
// FleetService (no .proto exists in the reference pack for this
// domain), a periodic tube-update scheduler, and an inbound rate
// limiter, grounded on the teacher's DaemonServer/ShipStateScheduler
// shapes but carrying weapon-control semantics instead of
// container/ship orchestration.
package grpc

import (
	"context"
	"fmt"
	"time"

	"github.com/Kwonjooeun/weaponctl/internal/adapters/metrics"
	"github.com/Kwonjooeun/weaponctl/internal/application/mediator"
	weaponapp "github.com/Kwonjooeun/weaponctl/internal/application/weaponctl"
	"github.com/Kwonjooeun/weaponctl/internal/domain/fleet"
	"github.com/Kwonjooeun/weaponctl/internal/infrastructure/logging"
	"github.com/Kwonjooeun/weaponctl/pkg/rpc"
)

// DaemonServer implements rpc.FleetServiceServer, dispatching every
// unary RPC into the mediator-registered command handlers and relaying
// tube events to streaming subscribers via eventBroadcaster.
type DaemonServer struct {
	mediator mediator.Mediator
	fleet    *fleet.Manager
	events   *eventBroadcaster
	metrics  *metrics.FleetMetricsCollector
	logger   logging.FleetLogger
}

// NewDaemonServer wires the event broadcaster and, when metrics are
// enabled (metrics.InitRegistry was called at startup), a
// FleetMetricsCollector as additional fleet observers alongside the
// command dispatch path.
func NewDaemonServer(m mediator.Mediator, f *fleet.Manager, logger logging.FleetLogger) *DaemonServer {
	events := newEventBroadcaster()
	f.AddObserver(events)
	if logger == nil {
		logger = logging.LoggerFromContext(context.Background())
	}

	var collector *metrics.FleetMetricsCollector
	if metrics.IsEnabled() {
		collector = metrics.NewFleetMetricsCollector(f)
		if err := collector.Register(); err != nil {
			logger.Log("warn", "metrics registration failed", map[string]interface{}{"error": err.Error()})
		} else {
			f.AddObserver(collector)
			collector.Start(context.Background(), 5*time.Second)
		}
	}

	return &DaemonServer{mediator: m, fleet: f, events: events, metrics: collector, logger: logger}
}

var _ rpc.FleetServiceServer = (*DaemonServer)(nil)

// Close stops the background metrics poller, if one was started. Safe
// to call even when metrics are disabled.
func (s *DaemonServer) Close() {
	if s.metrics != nil {
		s.metrics.Stop()
	}
}

func (s *DaemonServer) send(ctx context.Context, req mediator.Request) error {
	_, err := s.mediator.Send(ctx, req)
	return err
}

func (s *DaemonServer) Assign(ctx context.Context, req *rpc.AssignRequest) (*rpc.AssignReply, error) {
	err := s.send(ctx, &weaponapp.AssignWeaponCommand{
		TubeNumber:     req.TubeNumber,
		Kind:           req.Kind,
		SystemTargetID: req.SystemTargetID,
		TargetPosition: req.TargetPosition,
		DropPlanList:   req.DropPlanList,
		DropPlanNumber: req.DropPlanNumber,
	})
	reply := &rpc.AssignReply{TubeNumber: req.TubeNumber}
	if err != nil {
		reply.Error = err.Error()
	}
	return reply, nil
}

func (s *DaemonServer) Unassign(ctx context.Context, req *rpc.UnassignRequest) (*rpc.UnassignReply, error) {
	err := s.send(ctx, &weaponapp.UnassignWeaponCommand{TubeNumber: req.TubeNumber})
	reply := &rpc.UnassignReply{}
	if err != nil {
		reply.Error = err.Error()
	}
	return reply, nil
}

func (s *DaemonServer) Control(ctx context.Context, req *rpc.ControlRequest) (*rpc.ControlReply, error) {
	err := s.send(ctx, &weaponapp.ControlWeaponCommand{
		TubeNumber:  req.TubeNumber,
		TargetState: req.TargetState,
	})
	reply := &rpc.ControlReply{}
	if err != nil {
		reply.Error = err.Error()
	}
	return reply, nil
}

func (s *DaemonServer) UpdateWaypoints(ctx context.Context, req *rpc.WaypointsRequest) (*rpc.WaypointsReply, error) {
	err := s.send(ctx, &weaponapp.UpdateWaypointsCommand{
		TubeNumber: req.TubeNumber,
		Waypoints:  req.Waypoints,
	})
	reply := &rpc.WaypointsReply{}
	if err != nil {
		reply.Error = err.Error()
	}
	return reply, nil
}

func (s *DaemonServer) EmergencyStop(ctx context.Context, req *rpc.EmergencyStopRequest) (*rpc.EmergencyStopReply, error) {
	err := s.send(ctx, &weaponapp.EmergencyStopCommand{})
	reply := &rpc.EmergencyStopReply{}
	if err != nil {
		reply.Error = err.Error()
	}
	return reply, nil
}

func (s *DaemonServer) UpdateOwnShip(ctx context.Context, req *rpc.OwnShipRequest) (*rpc.OwnShipReply, error) {
	err := s.send(ctx, &weaponapp.UpdateOwnShipCommand{Position: req.Position})
	reply := &rpc.OwnShipReply{}
	if err != nil {
		reply.Error = err.Error()
	}
	return reply, nil
}

func (s *DaemonServer) UpdateAxisCenter(ctx context.Context, req *rpc.AxisCenterRequest) (*rpc.AxisCenterReply, error) {
	err := s.send(ctx, &weaponapp.UpdateAxisCenterCommand{Position: req.Position})
	reply := &rpc.AxisCenterReply{}
	if err != nil {
		reply.Error = err.Error()
	}
	return reply, nil
}

func (s *DaemonServer) UpdateTarget(ctx context.Context, req *rpc.TargetUpdateRequest) (*rpc.TargetUpdateReply, error) {
	err := s.send(ctx, &weaponapp.UpdateTargetCommand{
		SystemTargetID: req.SystemTargetID,
		Lat:            req.Lat,
		Lon:            req.Lon,
		Depth:          req.Depth,
	})
	reply := &rpc.TargetUpdateReply{}
	if err != nil {
		reply.Error = err.Error()
	}
	return reply, nil
}

func (s *DaemonServer) Status(ctx context.Context, req *rpc.StatusRequest) (*rpc.StatusReply, error) {
	reply := &rpc.StatusReply{}

	numbers := []int{req.TubeNumber}
	if req.TubeNumber == 0 {
		numbers = make([]int, s.fleet.TubeCount())
		for i := range numbers {
			numbers[i] = i + 1
		}
	}

	for _, n := range numbers {
		t, err := s.fleet.Tube(n)
		if err != nil {
			reply.Error = err.Error()
			return reply, nil
		}
		st := rpc.TubeStatus{TubeNumber: n, Assigned: t.IsAssigned()}
		if w := t.Weapon(); w != nil {
			st.Kind = w.Kind()
			st.State = w.CurrentState()
			st.Launched = w.IsLaunched()
			st.FireSolutionReady = w.IsFireSolutionReady()
		}
		reply.Tubes = append(reply.Tubes, st)
	}

	return reply, nil
}

func (s *DaemonServer) StreamEvents(req *rpc.StreamEventsRequest, stream rpc.FleetService_StreamEventsServer) error {
	id, ch := s.events.subscribe()
	defer s.events.unsubscribe(id)

	s.logger.Log("info", "telemetry subscriber connected", map[string]interface{}{"subscriber_id": id})

	for {
		select {
		case <-stream.Context().Done():
			return stream.Context().Err()
		case e, ok := <-ch:
			if !ok {
				return nil
			}
			if err := stream.Send(e); err != nil {
				return fmt.Errorf("stream send: %w", err)
			}
		}
	}
}
