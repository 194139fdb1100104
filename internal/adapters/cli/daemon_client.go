package cli

import (
	"context"
	"fmt"
	"strings"
	"time"

	"google.golang.org/grpc"
	"google.golang.org/grpc/credentials/insecure"

	"github.com/Kwonjooeun/weaponctl/pkg/rpc"
)

// NewDaemonClient dials the weaponctl daemon and returns a ready-to-use
// rpc.FleetServiceClient. addr is either a Unix socket path or a
// host:port TCP address; a bare path (no "unix:" prefix) is treated as
// a socket, mirroring the teacher's DaemonClient dial convention.
func NewDaemonClient(addr string) (*grpc.ClientConn, *rpc.FleetServiceClient, error) {
	target := addr
	if !strings.Contains(addr, "://") && !strings.HasPrefix(addr, "unix:") && strings.HasPrefix(addr, "/") {
		target = "unix:" + addr
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	conn, err := grpc.DialContext(
		ctx,
		target,
		grpc.WithTransportCredentials(insecure.NewCredentials()),
		grpc.WithBlock(),
		grpc.WithDefaultCallOptions(grpc.CallContentSubtype(rpc.CodecName)),
	)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to connect to daemon at %s: %w", target, err)
	}

	return conn, rpc.NewFleetServiceClient(conn), nil
}
