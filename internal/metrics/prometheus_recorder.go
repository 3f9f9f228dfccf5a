package metrics

import (
	"time"

	prom "github.com/prometheus/client_golang/prometheus"
)

const namespace = "repo_pulse"

// PrometheusRecorder implements Recorder using Prometheus metrics.
type PrometheusRecorder struct {
	attempts         *prom.CounterVec
	attemptDuration  *prom.HistogramVec
	retries          *prom.CounterVec
	retriesExhausted *prom.CounterVec
	flowRuns         *prom.CounterVec
	flowRunDuration  prom.Histogram
}

// NewPrometheusRecorder constructs the collectors and registers them with reg.
// A nil reg gets a fresh private registry.
func NewPrometheusRecorder(reg *prom.Registry) *PrometheusRecorder {
	if reg == nil {
		reg = prom.NewRegistry()
	}
	pr := &PrometheusRecorder{
		attempts: prom.NewCounterVec(prom.CounterOpts{
			Namespace: namespace,
			Name:      "http_attempts_total",
			Help:      "HTTP attempts by method and outcome",
		}, []string{"method", "outcome"}),
		attemptDuration: prom.NewHistogramVec(prom.HistogramOpts{
			Namespace: namespace,
			Name:      "http_attempt_duration_seconds",
			Help:      "Duration of individual HTTP attempts",
			Buckets:   prom.DefBuckets,
		}, []string{"method"}),
		retries: prom.NewCounterVec(prom.CounterOpts{
			Namespace: namespace,
			Name:      "http_retries_total",
			Help:      "Retries scheduled after a transient failure",
		}, []string{"method", "kind"}),
		retriesExhausted: prom.NewCounterVec(prom.CounterOpts{
			Namespace: namespace,
			Name:      "http_retries_exhausted_total",
			Help:      "Calls that failed after using every attempt",
		}, []string{"method"}),
		flowRuns: prom.NewCounterVec(prom.CounterOpts{
			Namespace: namespace,
			Name:      "flow_runs_total",
			Help:      "Flow runs by final status",
		}, []string{"status"}),
		flowRunDuration: prom.NewHistogram(prom.HistogramOpts{
			Namespace: namespace,
			Name:      "flow_run_duration_seconds",
			Help:      "Total flow run duration",
			Buckets:   prom.DefBuckets,
		}),
	}
	reg.MustRegister(pr.attempts, pr.attemptDuration, pr.retries, pr.retriesExhausted, pr.flowRuns, pr.flowRunDuration)
	return pr
}

func (p *PrometheusRecorder) ObserveAttempt(method, outcome string, d time.Duration) {
	if p == nil {
		return
	}
	p.attempts.WithLabelValues(method, outcome).Inc()
	p.attemptDuration.WithLabelValues(method).Observe(d.Seconds())
}

func (p *PrometheusRecorder) IncRetry(method, kind string) {
	if p == nil {
		return
	}
	p.retries.WithLabelValues(method, kind).Inc()
}

func (p *PrometheusRecorder) IncRetryExhausted(method string) {
	if p == nil {
		return
	}
	p.retriesExhausted.WithLabelValues(method).Inc()
}

func (p *PrometheusRecorder) ObserveFlowRun(status string, d time.Duration) {
	if p == nil {
		return
	}
	p.flowRuns.WithLabelValues(status).Inc()
	p.flowRunDuration.Observe(d.Seconds())
}
