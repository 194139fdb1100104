package grpc

import (
	"context"

	"golang.org/x/time/rate"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

// RateLimitInterceptor bounds the rate of inbound unary commands with a
// single token bucket shared across all tubes — protecting the fleet
// manager from a command flood on the control channel, per spec's
// concurrency notes on the inbound command surface.
func RateLimitInterceptor(requestsPerSecond float64, burst int) grpc.UnaryServerInterceptor {
	limiter := rate.NewLimiter(rate.Limit(requestsPerSecond), burst)
	return func(ctx context.Context, req interface{}, info *grpc.UnaryServerInfo, handler grpc.UnaryHandler) (interface{}, error) {
		if !limiter.Allow() {
			return nil, status.Errorf(codes.ResourceExhausted, "rate limit exceeded for %s", info.FullMethod)
		}
		return handler(ctx, req)
	}
}

// StreamRateLimitInterceptor applies the same limiter to stream
// establishment (not per-message), since StreamEvents is the only
// streaming RPC and is opened rarely relative to unary commands.
func StreamRateLimitInterceptor(requestsPerSecond float64, burst int) grpc.StreamServerInterceptor {
	limiter := rate.NewLimiter(rate.Limit(requestsPerSecond), burst)
	return func(srv interface{}, ss grpc.ServerStream, info *grpc.StreamServerInfo, handler grpc.StreamHandler) error {
		if !limiter.Allow() {
			return status.Errorf(codes.ResourceExhausted, "rate limit exceeded for %s", info.FullMethod)
		}
		return handler(srv, ss)
	}
}
