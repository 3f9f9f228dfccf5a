package service

import (
	"context"
	"time"

	"github.com/MKhiriev/go-repo-pulse/models"
)

//go:generate mockgen -source=interfaces.go -destination=../mock/service_mock.go -package=mock

// FlowService collects repository statistics and keeps the history of runs.
type FlowService interface {
	// Run fetches the repository and its contributors, logs the numbers and
	// stores the outcome. The returned run is meaningful even when the error
	// is not nil, unless the target itself was rejected.
	Run(ctx context.Context, target models.Target) (models.FlowRun, error)
	// RunAll runs every target concurrently. Runs are returned in the order
	// of targets; the error joins the errors of the failed runs.
	RunAll(ctx context.Context, targets []models.Target) ([]models.FlowRun, error)

	ListRuns(ctx context.Context, filter models.RunFilter) ([]models.FlowRun, error)
	LatestRun(ctx context.Context, target models.Target) (models.FlowRun, error)
}

// FlowJob runs the flow periodically in the background.
type FlowJob interface {
	// Start launches the job. The first run happens immediately.
	Start(ctx context.Context)
	// Stop cancels the job and waits for the current run to finish.
	Stop()
	// Healthy reports whether the last round of runs succeeded. It is true
	// before the first round.
	Healthy() bool
	// LastRound returns when the last round finished, zero before the first.
	LastRound() time.Time
}

// SecretsService pushes configuration values to GitHub Actions secrets.
type SecretsService interface {
	// Names lists the registered actions in a stable order.
	Names() []string
	// Run executes one action by name.
	Run(ctx context.Context, name string) (models.SecretActionResult, error)
	// RunAll executes every action, continuing after failures.
	RunAll(ctx context.Context) ([]models.SecretActionResult, error)
}

// AppInfoService exposes the build metadata of the binary.
type AppInfoService interface {
	GetAppVersion(ctx context.Context) string
	GetBuildInfo(ctx context.Context) models.AppBuildInfo
}

// IDGenerator produces unique run identifiers.
type IDGenerator interface {
	Generate() string
}
