// Package grpc serves the standard gRPC health protocol so orchestrators can
// probe the dashboard and its controller link.
package grpc

import (
	"log/slog"
	"sync"

	"google.golang.org/grpc"
	"google.golang.org/grpc/health"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"
	"google.golang.org/grpc/reflection"
)

// InventoryServiceName is the health service tracking controller reachability.
const InventoryServiceName = "wdash.Inventory"

// HealthReporter updates the served health status.
type HealthReporter struct {
	health *health.Server

	mu        sync.Mutex
	reachable *bool
}

// NewGrpcServer returns a server with health and reflection registered. The
// inventory service starts NOT_SERVING until the first poll reports.
func NewGrpcServer() (*grpc.Server, *HealthReporter) {
	s := grpc.NewServer()
	hs := health.NewServer()
	healthpb.RegisterHealthServer(s, hs)
	reflection.Register(s)

	hs.SetServingStatus("", healthpb.HealthCheckResponse_SERVING)
	hs.SetServingStatus(InventoryServiceName, healthpb.HealthCheckResponse_NOT_SERVING)
	return s, &HealthReporter{health: hs}
}

// SetControllerReachable records the outcome of the latest controller poll.
// Only transitions are logged.
func (r *HealthReporter) SetControllerReachable(ok bool) {
	r.mu.Lock()
	changed := r.reachable == nil || *r.reachable != ok
	r.reachable = &ok
	r.mu.Unlock()

	status := healthpb.HealthCheckResponse_NOT_SERVING
	if ok {
		status = healthpb.HealthCheckResponse_SERVING
	}
	r.health.SetServingStatus(InventoryServiceName, status)
	if changed {
		slog.Info("controller reachability changed", "reachable", ok)
	}
}

// Shutdown marks every service NOT_SERVING ahead of a stop.
func (r *HealthReporter) Shutdown() {
	r.health.Shutdown()
}
