package service

import (
	"github.com/MKhiriev/go-repo-pulse/internal/adapter"
	"github.com/MKhiriev/go-repo-pulse/internal/config"
	"github.com/MKhiriev/go-repo-pulse/internal/crypto"
	"github.com/MKhiriev/go-repo-pulse/internal/logger"
	"github.com/MKhiriev/go-repo-pulse/internal/metrics"
	"github.com/MKhiriev/go-repo-pulse/internal/store"
	"github.com/MKhiriev/go-repo-pulse/internal/validators"
	"github.com/MKhiriev/go-repo-pulse/models"
)

// Services aggregates the services used by the handlers and the binaries.
type Services struct {
	FlowService    FlowService
	SecretsService SecretsService
	AppInfoService AppInfoService
}

// NewServices wires the services of one process. storages may be nil for
// binaries that do not keep a run history.
func NewServices(
	github adapter.GitHubAdapter,
	storages *store.Storages,
	cfg *config.StructuredConfig,
	build models.AppBuildInfo,
	recorder metrics.Recorder,
	logger *logger.Logger,
) (*Services, error) {
	validator := validators.NewValidator()

	flowOpts := []FlowOption{WithFlowRecorder(recorder)}
	if storages != nil {
		flowOpts = append(flowOpts, WithRunRepository(storages.FlowRunRepository))
	}

	appInfo, err := NewAppInfoService(cfg.App, build, logger)
	if err != nil {
		return nil, err
	}

	return &Services{
		FlowService:    NewFlowService(github, validator, logger, flowOpts...),
		SecretsService: NewSecretsRegistry(github, crypto.NewSecretSealer(), validator, cfg.Secrets, logger),
		AppInfoService: appInfo,
	}, nil
}
