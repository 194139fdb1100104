package rpc

import (
	"context"

	"google.golang.org/grpc"
)

// FleetServiceServer is implemented by the daemon-side adapter
// (internal/adapters/grpc) and dispatches into the application command
// handlers via the mediator.
type FleetServiceServer interface {
	Assign(context.Context, *AssignRequest) (*AssignReply, error)
	Unassign(context.Context, *UnassignRequest) (*UnassignReply, error)
	Control(context.Context, *ControlRequest) (*ControlReply, error)
	UpdateWaypoints(context.Context, *WaypointsRequest) (*WaypointsReply, error)
	EmergencyStop(context.Context, *EmergencyStopRequest) (*EmergencyStopReply, error)
	UpdateOwnShip(context.Context, *OwnShipRequest) (*OwnShipReply, error)
	UpdateAxisCenter(context.Context, *AxisCenterRequest) (*AxisCenterReply, error)
	UpdateTarget(context.Context, *TargetUpdateRequest) (*TargetUpdateReply, error)
	Status(context.Context, *StatusRequest) (*StatusReply, error)
	StreamEvents(*StreamEventsRequest, FleetService_StreamEventsServer) error
}

// FleetService_StreamEventsServer is the server-side half of the
// streaming telemetry RPC, modeled on the shape grpc's own codegen
// produces for a server-streaming method.
type FleetService_StreamEventsServer interface {
	Send(*FleetEvent) error
	grpc.ServerStream
}

type fleetServiceStreamEventsServer struct {
	grpc.ServerStream
}

func (s *fleetServiceStreamEventsServer) Send(e *FleetEvent) error {
	return s.ServerStream.SendMsg(e)
}

func serviceAssignHandler(srv interface{}, ctx context.Context, dec func(interface{}) error, interceptor grpc.UnaryServerInterceptor) (interface{}, error) {
	req := new(AssignRequest)
	if err := dec(req); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(FleetServiceServer).Assign(ctx, req)
	}
	info := &grpc.UnaryServerInfo{Server: srv, FullMethod: ServiceName + "/Assign"}
	handler := func(ctx context.Context, req interface{}) (interface{}, error) {
		return srv.(FleetServiceServer).Assign(ctx, req.(*AssignRequest))
	}
	return interceptor(ctx, req, info, handler)
}

func serviceUnassignHandler(srv interface{}, ctx context.Context, dec func(interface{}) error, interceptor grpc.UnaryServerInterceptor) (interface{}, error) {
	req := new(UnassignRequest)
	if err := dec(req); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(FleetServiceServer).Unassign(ctx, req)
	}
	info := &grpc.UnaryServerInfo{Server: srv, FullMethod: ServiceName + "/Unassign"}
	handler := func(ctx context.Context, req interface{}) (interface{}, error) {
		return srv.(FleetServiceServer).Unassign(ctx, req.(*UnassignRequest))
	}
	return interceptor(ctx, req, info, handler)
}

func serviceControlHandler(srv interface{}, ctx context.Context, dec func(interface{}) error, interceptor grpc.UnaryServerInterceptor) (interface{}, error) {
	req := new(ControlRequest)
	if err := dec(req); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(FleetServiceServer).Control(ctx, req)
	}
	info := &grpc.UnaryServerInfo{Server: srv, FullMethod: ServiceName + "/Control"}
	handler := func(ctx context.Context, req interface{}) (interface{}, error) {
		return srv.(FleetServiceServer).Control(ctx, req.(*ControlRequest))
	}
	return interceptor(ctx, req, info, handler)
}

func serviceUpdateWaypointsHandler(srv interface{}, ctx context.Context, dec func(interface{}) error, interceptor grpc.UnaryServerInterceptor) (interface{}, error) {
	req := new(WaypointsRequest)
	if err := dec(req); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(FleetServiceServer).UpdateWaypoints(ctx, req)
	}
	info := &grpc.UnaryServerInfo{Server: srv, FullMethod: ServiceName + "/UpdateWaypoints"}
	handler := func(ctx context.Context, req interface{}) (interface{}, error) {
		return srv.(FleetServiceServer).UpdateWaypoints(ctx, req.(*WaypointsRequest))
	}
	return interceptor(ctx, req, info, handler)
}

func serviceEmergencyStopHandler(srv interface{}, ctx context.Context, dec func(interface{}) error, interceptor grpc.UnaryServerInterceptor) (interface{}, error) {
	req := new(EmergencyStopRequest)
	if err := dec(req); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(FleetServiceServer).EmergencyStop(ctx, req)
	}
	info := &grpc.UnaryServerInfo{Server: srv, FullMethod: ServiceName + "/EmergencyStop"}
	handler := func(ctx context.Context, req interface{}) (interface{}, error) {
		return srv.(FleetServiceServer).EmergencyStop(ctx, req.(*EmergencyStopRequest))
	}
	return interceptor(ctx, req, info, handler)
}

func serviceUpdateOwnShipHandler(srv interface{}, ctx context.Context, dec func(interface{}) error, interceptor grpc.UnaryServerInterceptor) (interface{}, error) {
	req := new(OwnShipRequest)
	if err := dec(req); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(FleetServiceServer).UpdateOwnShip(ctx, req)
	}
	info := &grpc.UnaryServerInfo{Server: srv, FullMethod: ServiceName + "/UpdateOwnShip"}
	handler := func(ctx context.Context, req interface{}) (interface{}, error) {
		return srv.(FleetServiceServer).UpdateOwnShip(ctx, req.(*OwnShipRequest))
	}
	return interceptor(ctx, req, info, handler)
}

func serviceUpdateAxisCenterHandler(srv interface{}, ctx context.Context, dec func(interface{}) error, interceptor grpc.UnaryServerInterceptor) (interface{}, error) {
	req := new(AxisCenterRequest)
	if err := dec(req); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(FleetServiceServer).UpdateAxisCenter(ctx, req)
	}
	info := &grpc.UnaryServerInfo{Server: srv, FullMethod: ServiceName + "/UpdateAxisCenter"}
	handler := func(ctx context.Context, req interface{}) (interface{}, error) {
		return srv.(FleetServiceServer).UpdateAxisCenter(ctx, req.(*AxisCenterRequest))
	}
	return interceptor(ctx, req, info, handler)
}

func serviceUpdateTargetHandler(srv interface{}, ctx context.Context, dec func(interface{}) error, interceptor grpc.UnaryServerInterceptor) (interface{}, error) {
	req := new(TargetUpdateRequest)
	if err := dec(req); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(FleetServiceServer).UpdateTarget(ctx, req)
	}
	info := &grpc.UnaryServerInfo{Server: srv, FullMethod: ServiceName + "/UpdateTarget"}
	handler := func(ctx context.Context, req interface{}) (interface{}, error) {
		return srv.(FleetServiceServer).UpdateTarget(ctx, req.(*TargetUpdateRequest))
	}
	return interceptor(ctx, req, info, handler)
}

func serviceStatusHandler(srv interface{}, ctx context.Context, dec func(interface{}) error, interceptor grpc.UnaryServerInterceptor) (interface{}, error) {
	req := new(StatusRequest)
	if err := dec(req); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(FleetServiceServer).Status(ctx, req)
	}
	info := &grpc.UnaryServerInfo{Server: srv, FullMethod: ServiceName + "/Status"}
	handler := func(ctx context.Context, req interface{}) (interface{}, error) {
		return srv.(FleetServiceServer).Status(ctx, req.(*StatusRequest))
	}
	return interceptor(ctx, req, info, handler)
}

func serviceStreamEventsHandler(srv interface{}, stream grpc.ServerStream) error {
	req := new(StreamEventsRequest)
	if err := stream.RecvMsg(req); err != nil {
		return err
	}
	return srv.(FleetServiceServer).StreamEvents(req, &fleetServiceStreamEventsServer{stream})
}

// ServiceName is the gRPC full-service name used in the ServiceDesc and
// in client stub calls.
const ServiceName = "weaponctl.FleetService"

// ServiceDesc is the hand-written equivalent of what protoc-gen-go-grpc
// would emit for a FleetService with the methods below.
var ServiceDesc = grpc.ServiceDesc{
	ServiceName: ServiceName,
	HandlerType: (*FleetServiceServer)(nil),
	Methods: []grpc.MethodDesc{
		{MethodName: "Assign", Handler: serviceAssignHandler},
		{MethodName: "Unassign", Handler: serviceUnassignHandler},
		{MethodName: "Control", Handler: serviceControlHandler},
		{MethodName: "UpdateWaypoints", Handler: serviceUpdateWaypointsHandler},
		{MethodName: "EmergencyStop", Handler: serviceEmergencyStopHandler},
		{MethodName: "UpdateOwnShip", Handler: serviceUpdateOwnShipHandler},
		{MethodName: "UpdateAxisCenter", Handler: serviceUpdateAxisCenterHandler},
		{MethodName: "UpdateTarget", Handler: serviceUpdateTargetHandler},
		{MethodName: "Status", Handler: serviceStatusHandler},
	},
	Streams: []grpc.StreamDesc{
		{
			StreamName:    "StreamEvents",
			Handler:       serviceStreamEventsHandler,
			ServerStreams: true,
		},
	},
	Metadata: "weaponctl/fleet.proto",
}

func RegisterFleetServiceServer(s grpc.ServiceRegistrar, srv FleetServiceServer) {
	s.RegisterService(&ServiceDesc, srv)
}
