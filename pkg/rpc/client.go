package rpc

import (
	"context"

	"google.golang.org/grpc"
)

// FleetServiceClient is the CLI-side stub, hand-written for the same
// reason ServiceDesc is: no protoc-gen-go-grpc output exists for this
// service anywhere in the reference pack.
type FleetServiceClient struct {
	cc grpc.ClientConnInterface
}

func NewFleetServiceClient(cc grpc.ClientConnInterface) *FleetServiceClient {
	return &FleetServiceClient{cc: cc}
}

func (c *FleetServiceClient) Assign(ctx context.Context, req *AssignRequest) (*AssignReply, error) {
	reply := new(AssignReply)
	if err := c.cc.Invoke(ctx, "/"+ServiceName+"/Assign", req, reply); err != nil {
		return nil, err
	}
	return reply, nil
}

func (c *FleetServiceClient) Unassign(ctx context.Context, req *UnassignRequest) (*UnassignReply, error) {
	reply := new(UnassignReply)
	if err := c.cc.Invoke(ctx, "/"+ServiceName+"/Unassign", req, reply); err != nil {
		return nil, err
	}
	return reply, nil
}

func (c *FleetServiceClient) Control(ctx context.Context, req *ControlRequest) (*ControlReply, error) {
	reply := new(ControlReply)
	if err := c.cc.Invoke(ctx, "/"+ServiceName+"/Control", req, reply); err != nil {
		return nil, err
	}
	return reply, nil
}

func (c *FleetServiceClient) UpdateWaypoints(ctx context.Context, req *WaypointsRequest) (*WaypointsReply, error) {
	reply := new(WaypointsReply)
	if err := c.cc.Invoke(ctx, "/"+ServiceName+"/UpdateWaypoints", req, reply); err != nil {
		return nil, err
	}
	return reply, nil
}

func (c *FleetServiceClient) EmergencyStop(ctx context.Context, req *EmergencyStopRequest) (*EmergencyStopReply, error) {
	reply := new(EmergencyStopReply)
	if err := c.cc.Invoke(ctx, "/"+ServiceName+"/EmergencyStop", req, reply); err != nil {
		return nil, err
	}
	return reply, nil
}

func (c *FleetServiceClient) UpdateOwnShip(ctx context.Context, req *OwnShipRequest) (*OwnShipReply, error) {
	reply := new(OwnShipReply)
	if err := c.cc.Invoke(ctx, "/"+ServiceName+"/UpdateOwnShip", req, reply); err != nil {
		return nil, err
	}
	return reply, nil
}

func (c *FleetServiceClient) UpdateAxisCenter(ctx context.Context, req *AxisCenterRequest) (*AxisCenterReply, error) {
	reply := new(AxisCenterReply)
	if err := c.cc.Invoke(ctx, "/"+ServiceName+"/UpdateAxisCenter", req, reply); err != nil {
		return nil, err
	}
	return reply, nil
}

func (c *FleetServiceClient) UpdateTarget(ctx context.Context, req *TargetUpdateRequest) (*TargetUpdateReply, error) {
	reply := new(TargetUpdateReply)
	if err := c.cc.Invoke(ctx, "/"+ServiceName+"/UpdateTarget", req, reply); err != nil {
		return nil, err
	}
	return reply, nil
}

func (c *FleetServiceClient) Status(ctx context.Context, req *StatusRequest) (*StatusReply, error) {
	reply := new(StatusReply)
	if err := c.cc.Invoke(ctx, "/"+ServiceName+"/Status", req, reply); err != nil {
		return nil, err
	}
	return reply, nil
}

type FleetService_StreamEventsClient interface {
	Recv() (*FleetEvent, error)
	grpc.ClientStream
}

func (c *FleetServiceClient) StreamEvents(ctx context.Context, req *StreamEventsRequest, opts ...grpc.CallOption) (FleetService_StreamEventsClient, error) {
	stream, err := c.cc.NewStream(ctx, &ServiceDesc.Streams[0], "/"+ServiceName+"/StreamEvents", opts...)
	if err != nil {
		return nil, err
	}
	x := &fleetServiceStreamEventsClient{stream}
	if err := x.ClientStream.SendMsg(req); err != nil {
		return nil, err
	}
	if err := x.ClientStream.CloseSend(); err != nil {
		return nil, err
	}
	return x, nil
}

type fleetServiceStreamEventsClient struct {
	grpc.ClientStream
}

func (x *fleetServiceStreamEventsClient) Recv() (*FleetEvent, error) {
	e := new(FleetEvent)
	if err := x.ClientStream.RecvMsg(e); err != nil {
		return nil, err
	}
	return e, nil
}
