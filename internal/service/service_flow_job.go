package service

import (
	"context"
	"sync"
	"sync/atomic"
	"time"

	"github.com/MKhiriev/go-repo-pulse/internal/config"
	"github.com/MKhiriev/go-repo-pulse/internal/logger"
)

// DefaultJobInterval is used when the configured interval is not positive.
const DefaultJobInterval = time.Hour

type flowJob struct {
	flow     FlowService
	provider *config.Provider
	logger   *logger.Logger

	healthy   atomic.Bool
	lastRound atomic.Int64

	mu     sync.Mutex
	cancel context.CancelFunc
	wg     sync.WaitGroup
}

// NewFlowJob creates a flowJob that runs the flow for the targets of the
// current configuration on a ticker. Targets and the interval are read from
// provider on every tick, so a reload takes effect without a restart. The job
// is idle until Start is called.
func NewFlowJob(flow FlowService, provider *config.Provider, log *logger.Logger) FlowJob {
	j := &flowJob{flow: flow, provider: provider, logger: log}
	j.healthy.Store(true)
	return j
}

// Start implements FlowJob. It stops any previously running job, runs one
// round right away, then one round per interval. The goroutine exits when ctx
// is cancelled or Stop is called.
func (j *flowJob) Start(ctx context.Context) {
	j.Stop()

	j.mu.Lock()
	jobCtx, cancel := context.WithCancel(ctx)
	j.cancel = cancel
	j.wg.Add(1)
	j.mu.Unlock()

	go func() {
		defer j.wg.Done()

		interval := j.interval()
		t := time.NewTicker(interval)
		defer t.Stop()

		j.round(jobCtx)
		for {
			select {
			case <-jobCtx.Done():
				return
			case <-t.C:
				j.round(jobCtx)
				if next := j.interval(); next != interval {
					j.logger.Info().Dur("interval", next).Msg("flow job interval changed")
					interval = next
					t.Reset(interval)
				}
			}
		}
	}()
}

// Stop implements FlowJob. It cancels the background goroutine's context and
// blocks until the goroutine has fully exited. Safe to call when the job is not
// running (no-op in that case).
func (j *flowJob) Stop() {
	j.mu.Lock()
	cancel := j.cancel
	j.cancel = nil
	j.mu.Unlock()

	if cancel != nil {
		cancel()
	}
	j.wg.Wait()
}

func (j *flowJob) Healthy() bool {
	return j.healthy.Load()
}

func (j *flowJob) LastRound() time.Time {
	nanos := j.lastRound.Load()
	if nanos == 0 {
		return time.Time{}
	}
	return time.Unix(0, nanos)
}

func (j *flowJob) interval() time.Duration {
	if d := j.provider.Current().Flow.Interval; d > 0 {
		return d
	}
	return DefaultJobInterval
}

func (j *flowJob) round(ctx context.Context) {
	defer j.lastRound.Store(time.Now().UnixNano())

	targets, err := j.provider.Current().Flow.Targets()
	if err != nil {
		j.logger.Err(err).Msg("flow job: invalid targets")
		j.healthy.Store(false)
		return
	}

	runs, err := j.flow.RunAll(ctx, targets)
	if ctx.Err() != nil {
		// shutting down, the outcome says nothing about upstream health
		return
	}
	j.healthy.Store(err == nil)
	if err != nil {
		j.logger.Err(err).Int("runs", len(runs)).Msg("flow job: round finished with failures")
		return
	}
	j.logger.Info().Int("runs", len(runs)).Msg("flow job: round finished")
}
