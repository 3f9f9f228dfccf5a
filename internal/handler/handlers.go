package handler

import (
	nethttp "net/http"

	"github.com/MKhiriev/go-repo-pulse/internal/config"
	"github.com/MKhiriev/go-repo-pulse/internal/handler/grpc"
	"github.com/MKhiriev/go-repo-pulse/internal/handler/http"
	"github.com/MKhiriev/go-repo-pulse/internal/logger"
	"github.com/MKhiriev/go-repo-pulse/internal/service"
)

// Handlers groups the transport handlers served by internal/server.
type Handlers struct {
	HTTP *http.Handler
	GRPC *grpc.Handler
}

// NewHandlers creates a handler per configured address. job and metrics may
// be nil.
func NewHandlers(services *service.Services, job service.FlowJob, metrics nethttp.Handler, cfg config.Server, logger *logger.Logger) (*Handlers, error) {
	logger.Info().Msg("creating new handlers...")

	handlers := &Handlers{}

	if cfg.HTTPAddress != "" {
		opts := []http.HandlerOption{http.WithRequestTimeout(cfg.RequestTimeout)}
		if job != nil {
			opts = append(opts, http.WithFlowJob(job))
		}
		if metrics != nil {
			opts = append(opts, http.WithMetricsHandler(metrics))
		}
		handlers.HTTP = http.NewHandler(services, logger, opts...)
	}
	if cfg.GRPCAddress != "" {
		handlers.GRPC = grpc.NewHandler(services, job, logger)
	}

	if handlers.HTTP == nil && handlers.GRPC == nil {
		return nil, errNoHandlersAreCreated
	}

	return handlers, nil
}
