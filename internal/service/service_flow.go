package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/MKhiriev/go-repo-pulse/internal/adapter"
	"github.com/MKhiriev/go-repo-pulse/internal/logger"
	"github.com/MKhiriev/go-repo-pulse/internal/metrics"
	"github.com/MKhiriev/go-repo-pulse/internal/requests"
	"github.com/MKhiriev/go-repo-pulse/internal/store"
	"github.com/MKhiriev/go-repo-pulse/internal/utils"
	"github.com/MKhiriev/go-repo-pulse/internal/validators"
	"github.com/MKhiriev/go-repo-pulse/models"
)

// DefaultRunConcurrency bounds the number of targets RunAll works on at once.
const DefaultRunConcurrency = 4

type flowService struct {
	github    adapter.GitHubAdapter
	runs      store.FlowRunRepository
	validator validators.Validator
	ids       IDGenerator
	recorder  metrics.Recorder

	concurrency int
	now         func() time.Time

	logger *logger.Logger
}

// FlowOption customises NewFlowService.
type FlowOption func(*flowService)

// WithRunRepository stores every run in runs.
func WithRunRepository(runs store.FlowRunRepository) FlowOption {
	return func(s *flowService) { s.runs = runs }
}

// WithFlowRecorder sets the recorder of flow run metrics.
func WithFlowRecorder(r metrics.Recorder) FlowOption {
	return func(s *flowService) { s.recorder = r }
}

// WithIDGenerator replaces the run id generator.
func WithIDGenerator(g IDGenerator) FlowOption {
	return func(s *flowService) { s.ids = g }
}

// WithConcurrency sets how many targets RunAll processes at once.
func WithConcurrency(n int) FlowOption {
	return func(s *flowService) {
		if n > 0 {
			s.concurrency = n
		}
	}
}

func withClock(now func() time.Time) FlowOption {
	return func(s *flowService) { s.now = now }
}

// NewFlowService constructs the [FlowService] on top of github. Without
// WithRunRepository runs are only logged.
func NewFlowService(github adapter.GitHubAdapter, validator validators.Validator, log *logger.Logger, opts ...FlowOption) FlowService {
	s := &flowService{
		github:      github,
		validator:   validator,
		ids:         utils.NewUUIDGenerator(),
		recorder:    metrics.NoopRecorder{},
		concurrency: DefaultRunConcurrency,
		now:         time.Now,
		logger:      log,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *flowService) Run(ctx context.Context, target models.Target) (models.FlowRun, error) {
	if err := s.validator.Validate(ctx, target); err != nil {
		return models.FlowRun{}, fmt.Errorf("%w: %w", ErrInvalidTarget, err)
	}

	run := models.FlowRun{
		ID:        s.ids.Generate(),
		Owner:     target.Owner,
		Name:      target.Name,
		StartedAt: s.now().UTC(),
	}

	log := s.logger.WithField("run_id", run.ID).WithField("repository", target.String())
	ctx = utils.WithRunID(log.WithContext(ctx), run.ID)

	log.Info().Msg("flow run started")
	runErr := s.collect(ctx, log, target, &run)

	run.FinishedAt = s.now().UTC()
	if runErr != nil {
		run.Status = models.RunStatusFailed
		run.Error = runErr.Error()
		if reqErr, ok := requests.AsRequestError(runErr); ok {
			run.ErrorKind = reqErr.Kind.String()
		}
		log.Error().Err(runErr).Str("error_kind", run.ErrorKind).Dur("duration", run.Duration()).Msg("flow run failed")
	} else {
		run.Status = models.RunStatusSucceeded
		log.Info().Dur("duration", run.Duration()).Msg("flow run finished")
	}
	s.recorder.ObserveFlowRun(string(run.Status), run.Duration())

	if s.runs != nil {
		// a cancelled caller must not prevent the outcome from being recorded
		saveCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), 10*time.Second)
		defer cancel()
		if err := s.runs.SaveRun(saveCtx, run); err != nil {
			log.Err(err).Msg("error saving flow run")
			runErr = errors.Join(runErr, fmt.Errorf("save run: %w", err))
		}
	}

	return run, runErr
}

func (s *flowService) collect(ctx context.Context, log *logger.Logger, target models.Target, run *models.FlowRun) error {
	repo, err := s.github.GetRepository(ctx, target.Owner, target.Name)
	if err != nil {
		log.Err(err).Msg("failed to fetch repo info")
		return err
	}
	run.Stargazers = repo.StargazersCount
	log.Info().Int("stars", repo.StargazersCount).Msgf("Stars: %d", repo.StargazersCount)

	contributors, err := s.github.ListContributors(ctx, repo)
	if err != nil {
		log.Err(err).Msg("failed to fetch contributors")
		return err
	}
	run.Contributors = len(contributors)
	log.Info().Int("contributors", len(contributors)).Msgf("Number of contributors: %d", len(contributors))

	return nil
}

func (s *flowService) RunAll(ctx context.Context, targets []models.Target) ([]models.FlowRun, error) {
	if len(targets) == 0 {
		return nil, ErrNoTargets
	}

	runs := make([]models.FlowRun, len(targets))
	errs := make([]error, len(targets))

	var g errgroup.Group
	g.SetLimit(s.concurrency)
	for i, target := range targets {
		g.Go(func() error {
			run, err := s.Run(ctx, target)
			if err != nil {
				err = fmt.Errorf("%s: %w", target, err)
			}
			runs[i], errs[i] = run, err
			return nil
		})
	}
	_ = g.Wait()

	return runs, errors.Join(errs...)
}

func (s *flowService) ListRuns(ctx context.Context, filter models.RunFilter) ([]models.FlowRun, error) {
	if s.runs == nil {
		return nil, ErrStorageUnavailable
	}
	if err := s.validator.Validate(ctx, filter); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidFilter, err)
	}
	return s.runs.ListRuns(ctx, filter)
}

func (s *flowService) LatestRun(ctx context.Context, target models.Target) (models.FlowRun, error) {
	if s.runs == nil {
		return models.FlowRun{}, ErrStorageUnavailable
	}
	if err := s.validator.Validate(ctx, target); err != nil {
		return models.FlowRun{}, fmt.Errorf("%w: %w", ErrInvalidTarget, err)
	}
	return s.runs.LatestRun(ctx, target.Owner, target.Name)
}
