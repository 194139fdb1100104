package rpc_test

import (
	"context"
	"net"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/grpc"
	"google.golang.org/grpc/credentials/insecure"
	"google.golang.org/grpc/test/bufconn"

	"github.com/Kwonjooeun/weaponctl/internal/domain/weapon"
	"github.com/Kwonjooeun/weaponctl/pkg/rpc"
)

// fakeFleetServiceServer is a hand-written rpc.FleetServiceServer used to
// drive the client stub over a real (in-memory) gRPC transport.
type fakeFleetServiceServer struct {
	lastAssign *rpc.AssignRequest
}

func (s *fakeFleetServiceServer) Assign(ctx context.Context, req *rpc.AssignRequest) (*rpc.AssignReply, error) {
	s.lastAssign = req
	return &rpc.AssignReply{TubeNumber: req.TubeNumber}, nil
}

func (s *fakeFleetServiceServer) Unassign(ctx context.Context, req *rpc.UnassignRequest) (*rpc.UnassignReply, error) {
	return &rpc.UnassignReply{}, nil
}

func (s *fakeFleetServiceServer) Control(ctx context.Context, req *rpc.ControlRequest) (*rpc.ControlReply, error) {
	if req.TargetState == weapon.StateLaunch {
		reply := &rpc.ControlReply{}
		reply.Error = "invalid transition"
		return reply, nil
	}
	return &rpc.ControlReply{}, nil
}

func (s *fakeFleetServiceServer) UpdateWaypoints(ctx context.Context, req *rpc.WaypointsRequest) (*rpc.WaypointsReply, error) {
	return &rpc.WaypointsReply{}, nil
}

func (s *fakeFleetServiceServer) EmergencyStop(ctx context.Context, req *rpc.EmergencyStopRequest) (*rpc.EmergencyStopReply, error) {
	return &rpc.EmergencyStopReply{}, nil
}

func (s *fakeFleetServiceServer) UpdateOwnShip(ctx context.Context, req *rpc.OwnShipRequest) (*rpc.OwnShipReply, error) {
	return &rpc.OwnShipReply{}, nil
}

func (s *fakeFleetServiceServer) UpdateAxisCenter(ctx context.Context, req *rpc.AxisCenterRequest) (*rpc.AxisCenterReply, error) {
	return &rpc.AxisCenterReply{}, nil
}

func (s *fakeFleetServiceServer) UpdateTarget(ctx context.Context, req *rpc.TargetUpdateRequest) (*rpc.TargetUpdateReply, error) {
	return &rpc.TargetUpdateReply{}, nil
}

func (s *fakeFleetServiceServer) Status(ctx context.Context, req *rpc.StatusRequest) (*rpc.StatusReply, error) {
	return &rpc.StatusReply{Tubes: []rpc.TubeStatus{{TubeNumber: req.TubeNumber, Assigned: true}}}, nil
}

func (s *fakeFleetServiceServer) StreamEvents(req *rpc.StreamEventsRequest, stream rpc.FleetService_StreamEventsServer) error {
	return stream.Send(&rpc.FleetEvent{EventID: "evt-1", TubeNumber: 1, Kind: "state_changed"})
}

func newTestClient(t *testing.T) (*rpc.FleetServiceClient, *fakeFleetServiceServer) {
	t.Helper()
	lis := bufconn.Listen(1024 * 1024)
	server := grpc.NewServer()
	fake := &fakeFleetServiceServer{}
	rpc.RegisterFleetServiceServer(server, fake)

	go func() { _ = server.Serve(lis) }()
	t.Cleanup(server.Stop)

	dialer := func(context.Context, string) (net.Conn, error) { return lis.Dial() }
	conn, err := grpc.NewClient("passthrough:///bufconn",
		grpc.WithContextDialer(dialer),
		grpc.WithTransportCredentials(insecure.NewCredentials()),
		grpc.WithDefaultCallOptions(grpc.CallContentSubtype(rpc.CodecName)),
	)
	require.NoError(t, err)
	t.Cleanup(func() { conn.Close() })

	return rpc.NewFleetServiceClient(conn), fake
}

func TestFleetServiceClient_AssignRoundTrips(t *testing.T) {
	client, fake := newTestClient(t)

	reply, err := client.Assign(context.Background(), &rpc.AssignRequest{
		TubeNumber: 3,
		Kind:       weapon.KindALM,
	})
	require.NoError(t, err)
	assert.Equal(t, 3, reply.TubeNumber)
	require.NotNil(t, fake.lastAssign)
	assert.Equal(t, weapon.KindALM, fake.lastAssign.Kind)
}

func TestFleetServiceClient_ControlSurfacesReplyError(t *testing.T) {
	client, _ := newTestClient(t)

	reply, err := client.Control(context.Background(), &rpc.ControlRequest{TubeNumber: 1, TargetState: weapon.StateLaunch})
	require.NoError(t, err)
	assert.Equal(t, "invalid transition", reply.Error)
}

func TestFleetServiceClient_StatusRoundTrips(t *testing.T) {
	client, _ := newTestClient(t)

	reply, err := client.Status(context.Background(), &rpc.StatusRequest{TubeNumber: 2})
	require.NoError(t, err)
	require.Len(t, reply.Tubes, 1)
	assert.Equal(t, 2, reply.Tubes[0].TubeNumber)
}

func TestFleetServiceClient_StreamEventsReceivesOneEvent(t *testing.T) {
	client, _ := newTestClient(t)

	stream, err := client.StreamEvents(context.Background(), &rpc.StreamEventsRequest{})
	require.NoError(t, err)

	e, err := stream.Recv()
	require.NoError(t, err)
	assert.Equal(t, "evt-1", e.EventID)
	assert.Equal(t, 1, e.TubeNumber)
}

func TestFleetServiceClient_UnassignRoundTrips(t *testing.T) {
	client, _ := newTestClient(t)

	reply, err := client.Unassign(context.Background(), &rpc.UnassignRequest{TubeNumber: 5})
	require.NoError(t, err)
	assert.Empty(t, reply.Error)
}
