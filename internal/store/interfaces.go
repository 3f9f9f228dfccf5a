package store

import (
	"context"

	"github.com/MKhiriev/go-repo-pulse/models"
)

//go:generate mockgen -source=interfaces.go -destination=../mock/store_mock.go -package=mock

// FlowRunRepository persists the outcome of flow runs.
type FlowRunRepository interface {
	// SaveRun stores run. A run whose ID is already stored yields
	// [ErrRunAlreadyExists].
	SaveRun(ctx context.Context, run models.FlowRun) error
	// ListRuns returns the runs matching filter, newest first.
	ListRuns(ctx context.Context, filter models.RunFilter) ([]models.FlowRun, error)
	// LatestRun returns the newest run of owner/name, or [ErrRunNotFound].
	LatestRun(ctx context.Context, owner, name string) (models.FlowRun, error)
}

// ErrorClassificator decides what a failed database operation means for the
// caller.
type ErrorClassificator interface {
	Classify(err error) ErrorClassification
	IsUniqueViolation(err error) bool
}
