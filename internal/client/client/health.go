package client

import (
	"context"
	"fmt"

	"github.com/dmitrijs2005/newsexplorer/internal/common"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/credentials/insecure"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"
	"google.golang.org/grpc/status"
)

// HealthChecker probes the backend's grpc.health.v1 service.
type HealthChecker struct {
	conn    *grpc.ClientConn
	client  healthpb.HealthClient
	service string
}

// NewHealthChecker prepares a probe for addr. No connection is made until
// the first Ping.
func NewHealthChecker(addr string) (*HealthChecker, error) {
	conn, err := grpc.NewClient(addr, grpc.WithTransportCredentials(insecure.NewCredentials()))
	if err != nil {
		return nil, fmt.Errorf("health client: %w", err)
	}
	return &HealthChecker{conn: conn, client: healthpb.NewHealthClient(conn)}, nil
}

// Ping returns nil when the backend reports SERVING.
func (h *HealthChecker) Ping(ctx context.Context) error {
	resp, err := h.client.Check(ctx, &healthpb.HealthCheckRequest{Service: h.service})
	if err != nil {
		return mapStatus(err)
	}
	if resp.GetStatus() != healthpb.HealthCheckResponse_SERVING {
		return fmt.Errorf("%w: health status %s", common.ErrServer, resp.GetStatus())
	}
	return nil
}

func (h *HealthChecker) Close() error {
	if h.conn == nil {
		return nil
	}
	return h.conn.Close()
}

func mapStatus(err error) error {
	st, _ := status.FromError(err)
	switch st.Code() {
	case codes.Unavailable, codes.DeadlineExceeded, codes.Canceled:
		return fmt.Errorf("%w: %s", common.ErrNetworkFailure, st.Message())
	case codes.Unauthenticated, codes.PermissionDenied:
		return fmt.Errorf("%w: %s", common.ErrAuthFailure, st.Message())
	default:
		return fmt.Errorf("%w: rpc error: %w", common.ErrServer, err)
	}
}
