package grpc_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	googlegrpc "google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	grpcadapter "github.com/Kwonjooeun/weaponctl/internal/adapters/grpc"
)

func TestRateLimitInterceptor_AllowsWithinBurst(t *testing.T) {
	interceptor := grpcadapter.RateLimitInterceptor(1, 3)
	info := &googlegrpc.UnaryServerInfo{FullMethod: "/weaponctl.FleetService/Assign"}
	handler := func(ctx context.Context, req interface{}) (interface{}, error) { return "ok", nil }

	for i := 0; i < 3; i++ {
		resp, err := interceptor(context.Background(), nil, info, handler)
		assert.NoError(t, err)
		assert.Equal(t, "ok", resp)
	}
}

func TestRateLimitInterceptor_RejectsOverBurst(t *testing.T) {
	interceptor := grpcadapter.RateLimitInterceptor(0.001, 1)
	info := &googlegrpc.UnaryServerInfo{FullMethod: "/weaponctl.FleetService/Assign"}
	handler := func(ctx context.Context, req interface{}) (interface{}, error) { return "ok", nil }

	_, err := interceptor(context.Background(), nil, info, handler)
	assert.NoError(t, err)

	_, err = interceptor(context.Background(), nil, info, handler)
	assert.Error(t, err)
	assert.Equal(t, codes.ResourceExhausted, status.Code(err))
}

type fakeServerStream struct{ googlegrpc.ServerStream }

func TestStreamRateLimitInterceptor_RejectsOverBurst(t *testing.T) {
	interceptor := grpcadapter.StreamRateLimitInterceptor(0.001, 1)
	info := &googlegrpc.StreamServerInfo{FullMethod: "/weaponctl.FleetService/StreamEvents"}
	handler := func(srv interface{}, ss googlegrpc.ServerStream) error { return nil }

	err := interceptor(nil, &fakeServerStream{}, info, handler)
	assert.NoError(t, err)

	err = interceptor(nil, &fakeServerStream{}, info, handler)
	assert.Error(t, err)
	assert.Equal(t, codes.ResourceExhausted, status.Code(err))
}
