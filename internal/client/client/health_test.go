package client

import (
	"context"
	"net"
	"testing"
	"time"

	"github.com/dmitrijs2005/newsexplorer/internal/common"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/health"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"
	"google.golang.org/grpc/status"
)

func startHealthServer(t *testing.T) (string, *health.Server) {
	t.Helper()
	lis, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)

	hs := health.NewServer()
	srv := grpc.NewServer()
	healthpb.RegisterHealthServer(srv, hs)
	go func() { _ = srv.Serve(lis) }()
	t.Cleanup(srv.Stop)

	return lis.Addr().String(), hs
}

func TestHealthChecker_Serving(t *testing.T) {
	addr, _ := startHealthServer(t)
	h, err := NewHealthChecker(addr)
	require.NoError(t, err)
	defer h.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	assert.NoError(t, h.Ping(ctx))
}

func TestHealthChecker_NotServing(t *testing.T) {
	addr, hs := startHealthServer(t)
	hs.SetServingStatus("", healthpb.HealthCheckResponse_NOT_SERVING)

	h, err := NewHealthChecker(addr)
	require.NoError(t, err)
	defer h.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	assert.ErrorIs(t, h.Ping(ctx), common.ErrServer)
}

func TestHealthChecker_Unreachable(t *testing.T) {
	lis, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	addr := lis.Addr().String()
	lis.Close()

	h, err := NewHealthChecker(addr)
	require.NoError(t, err)
	defer h.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	assert.ErrorIs(t, h.Ping(ctx), common.ErrNetworkFailure)
}

func TestMapStatus(t *testing.T) {
	assert.ErrorIs(t, mapStatus(status.Error(codes.Unavailable, "down")), common.ErrNetworkFailure)
	assert.ErrorIs(t, mapStatus(status.Error(codes.DeadlineExceeded, "slow")), common.ErrNetworkFailure)
	assert.ErrorIs(t, mapStatus(status.Error(codes.PermissionDenied, "no")), common.ErrAuthFailure)
	assert.ErrorIs(t, mapStatus(status.Error(codes.Internal, "bug")), common.ErrServer)
}
