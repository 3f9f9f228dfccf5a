package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/sethvargo/go-retry"

	"github.com/MKhiriev/go-repo-pulse/internal/logger"
	"github.com/MKhiriev/go-repo-pulse/models"
)

const (
	saveRetries   = 2
	saveRetryWait = 50 * time.Millisecond
)

// flowRunRepository is the SQL-backed implementation of [FlowRunRepository].
// It works on the "flow_runs" table of PostgreSQL and SQLite alike.
type flowRunRepository struct {
	logger *logger.Logger
	db     *DB
}

// NewFlowRunRepository constructs a [FlowRunRepository] backed by db.
func NewFlowRunRepository(db *DB, logger *logger.Logger) FlowRunRepository {
	logger.Debug().Msg("creating flow run repository")
	return &flowRunRepository{
		db:     db,
		logger: logger,
	}
}

// SaveRun inserts run. Transient failures (connection loss, serialization
// failure, a busy SQLite file) are retried a couple of times.
//
// Error handling:
//   - unique violation on the id → [ErrRunAlreadyExists].
//   - zero affected rows → [ErrRunNotSaved].
//   - any other driver-level error → wrapped [ErrExecutingQuery].
func (r *flowRunRepository) SaveRun(ctx context.Context, run models.FlowRun) error {
	log := logger.FromContext(ctx)

	query, args, err := insertRunQuery(run)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	b := retry.WithMaxRetries(saveRetries, retry.NewConstant(saveRetryWait))
	err = retry.Do(ctx, b, func(ctx context.Context) error {
		res, execErr := r.db.ExecContext(ctx, query, args...)
		if execErr != nil {
			if r.classifier().Classify(execErr) == Retryable {
				log.Warn().Err(execErr).Str("func", "*flowRunRepository.SaveRun").Msg("retrying insert")
				return retry.RetryableError(execErr)
			}
			return execErr
		}

		affected, execErr := res.RowsAffected()
		if execErr == nil && affected == 0 {
			return ErrRunNotSaved
		}
		return nil
	})

	switch {
	case err == nil:
		return nil
	case errors.Is(err, ErrRunNotSaved):
		return err
	case r.classifier().IsUniqueViolation(err):
		return ErrRunAlreadyExists
	default:
		log.Err(err).Str("func", "*flowRunRepository.SaveRun").Msg("error inserting flow run")
		return fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}
}

// ListRuns returns the runs matching filter, newest first. An empty result is
// an empty slice, not an error.
func (r *flowRunRepository) ListRuns(ctx context.Context, filter models.RunFilter) ([]models.FlowRun, error) {
	log := logger.FromContext(ctx)

	query, args, err := selectRunsQuery(filter)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		log.Err(err).Str("func", "*flowRunRepository.ListRuns").Msg("error selecting flow runs")
		return nil, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}
	defer rows.Close()

	runs := make([]models.FlowRun, 0)
	for rows.Next() {
		run, scanErr := scanRun(rows)
		if scanErr != nil {
			log.Err(scanErr).Str("func", "*flowRunRepository.ListRuns").Msg("error scanning flow run")
			return nil, fmt.Errorf("%w: %w", ErrScanningRows, scanErr)
		}
		runs = append(runs, run)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrScanningRows, err)
	}

	return runs, nil
}

// LatestRun returns the newest run of owner/name.
func (r *flowRunRepository) LatestRun(ctx context.Context, owner, name string) (models.FlowRun, error) {
	log := logger.FromContext(ctx)

	query, args, err := latestRunQuery(owner, name)
	if err != nil {
		return models.FlowRun{}, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	run, err := scanRun(r.db.QueryRowContext(ctx, query, args...))
	switch {
	case errors.Is(err, sql.ErrNoRows):
		return models.FlowRun{}, ErrRunNotFound
	case err != nil:
		log.Err(err).Str("func", "*flowRunRepository.LatestRun").Msg("error scanning flow run")
		return models.FlowRun{}, fmt.Errorf("%w: %w", ErrScanningRow, err)
	}

	return run, nil
}

func (r *flowRunRepository) classifier() ErrorClassificator {
	if r.db.errorClassificator == nil {
		return NewPostgresErrorClassifier()
	}
	return r.db.errorClassificator
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanRun(row rowScanner) (models.FlowRun, error) {
	var (
		run    models.FlowRun
		status string
	)
	err := row.Scan(
		&run.ID,
		&run.Owner,
		&run.Name,
		&status,
		&run.Stargazers,
		&run.Contributors,
		&run.ErrorKind,
		&run.Error,
		&run.StartedAt,
		&run.FinishedAt,
	)
	if err != nil {
		return models.FlowRun{}, err
	}
	run.Status = models.RunStatus(status)
	return run, nil
}
