package models

import "time"

// Health states reported by GET /healthz.
const (
	HealthOK       = "ok"
	HealthDegraded = "degraded"
)

// HealthResponse is the body of GET /healthz.
type HealthResponse struct {
	// Status is HealthOK while the last flow round succeeded.
	Status string `json:"status"`

	// FlowJob is false when the server runs without the periodic job.
	FlowJob bool `json:"flow_job"`

	// LastRound is the end of the latest job round, omitted before the first.
	LastRound *time.Time `json:"last_round,omitempty"`
}
