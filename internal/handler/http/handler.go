package http

import (
	"net/http"
	"time"

	"github.com/MKhiriev/go-repo-pulse/internal/logger"
	"github.com/MKhiriev/go-repo-pulse/internal/service"
)

// Handler serves the status API.
type Handler struct {
	services *service.Services

	// job is nil when the server runs without the periodic flow.
	job            service.FlowJob
	metrics        http.Handler
	requestTimeout time.Duration

	logger *logger.Logger
}

// HandlerOption customises NewHandler.
type HandlerOption func(*Handler)

// WithFlowJob makes /healthz report the state of job.
func WithFlowJob(job service.FlowJob) HandlerOption {
	return func(h *Handler) { h.job = job }
}

// WithMetricsHandler serves m at /metrics.
func WithMetricsHandler(m http.Handler) HandlerOption {
	return func(h *Handler) { h.metrics = m }
}

// WithRequestTimeout cancels the context of requests running longer than d.
func WithRequestTimeout(d time.Duration) HandlerOption {
	return func(h *Handler) { h.requestTimeout = d }
}

// NewHandler builds a Handler over services.
func NewHandler(services *service.Services, logger *logger.Logger, opts ...HandlerOption) *Handler {
	h := &Handler{
		services: services,
		logger:   logger,
	}
	for _, opt := range opts {
		opt(h)
	}

	logger.Info().Msg("http handler created")
	return h
}
