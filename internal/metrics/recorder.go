package metrics

import "time"

// Outcome labels for attempts and flow runs.
const (
	OutcomeSuccess = "success"
	OutcomeFailed  = "failed"
)

// Recorder defines observability hooks for HTTP attempts and flow runs.
// Implementations must be safe for concurrent use.
type Recorder interface {
	// ObserveAttempt records one HTTP attempt. outcome is OutcomeSuccess or
	// the error kind name of the failed attempt.
	ObserveAttempt(method, outcome string, d time.Duration)
	// IncRetry counts a scheduled retry caused by an error of kind.
	IncRetry(method, kind string)
	// IncRetryExhausted counts calls that ran out of attempts.
	IncRetryExhausted(method string)
	// ObserveFlowRun records a finished flow run.
	ObserveFlowRun(status string, d time.Duration)
}

// NoopRecorder is a Recorder that does nothing (default when metrics not configured).
type NoopRecorder struct{}

func (NoopRecorder) ObserveAttempt(string, string, time.Duration) {}
func (NoopRecorder) IncRetry(string, string)                      {}
func (NoopRecorder) IncRetryExhausted(string)                     {}
func (NoopRecorder) ObserveFlowRun(string, time.Duration)         {}
