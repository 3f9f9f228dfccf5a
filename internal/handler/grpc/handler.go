package grpc

import (
	"context"
	"time"

	"google.golang.org/grpc"
	"google.golang.org/grpc/health"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"
	"google.golang.org/grpc/reflection"

	"github.com/MKhiriev/go-repo-pulse/internal/logger"
	"github.com/MKhiriev/go-repo-pulse/internal/service"
)

// FlowJobService is the health service name reporting the periodic flow.
// The empty name reports the same status for the whole server.
const FlowJobService = "pulse.FlowJob"

// DefaultSyncInterval is how often the health status is refreshed from the
// flow job.
const DefaultSyncInterval = 5 * time.Second

// Handler is the root gRPC transport handler. It serves the standard
// grpc.health.v1 service: SERVING while the flow job is healthy, NOT_SERVING
// after a failed round and on shutdown.
type Handler struct {
	// services provides access to all application business operations.
	services *service.Services

	// job is nil when the server runs without the periodic flow; the status
	// then stays SERVING.
	job    service.FlowJob
	health *health.Server

	logger *logger.Logger
}

// NewHandler constructs a [Handler]. The initial status is SERVING.
func NewHandler(services *service.Services, job service.FlowJob, logger *logger.Logger) *Handler {
	h := &Handler{
		services: services,
		job:      job,
		health:   health.NewServer(),
		logger:   logger,
	}
	h.setStatus(healthpb.HealthCheckResponse_SERVING)

	logger.Debug().Msg("gRPC handler created")
	return h
}

// Register attaches the health and reflection services to s.
func (h *Handler) Register(s *grpc.Server) {
	healthpb.RegisterHealthServer(s, h.health)
	reflection.Register(s)
}

// Sync copies the flow job state into the health status.
func (h *Handler) Sync() {
	if h.job == nil {
		return
	}

	status := healthpb.HealthCheckResponse_SERVING
	if !h.job.Healthy() {
		status = healthpb.HealthCheckResponse_NOT_SERVING
	}
	h.setStatus(status)
}

// Watch calls Sync every interval until ctx is done, then switches every
// service to NOT_SERVING so clients stop routing to the process.
func (h *Handler) Watch(ctx context.Context, interval time.Duration) {
	if interval <= 0 {
		interval = DefaultSyncInterval
	}

	t := time.NewTicker(interval)
	defer t.Stop()

	h.Sync()
	for {
		select {
		case <-ctx.Done():
			h.Shutdown()
			return
		case <-t.C:
			h.Sync()
		}
	}
}

// Shutdown sets NOT_SERVING on every service and ignores later updates.
func (h *Handler) Shutdown() {
	h.logger.Info().Msg("gRPC health: shutting down")
	h.health.Shutdown()
}

// Checker returns the health server for in-process checks.
func (h *Handler) Checker() healthpb.HealthServer {
	return h.health
}

func (h *Handler) setStatus(status healthpb.HealthCheckResponse_ServingStatus) {
	h.health.SetServingStatus("", status)
	h.health.SetServingStatus(FlowJobService, status)
}
