package models

// RunsResponse is the body of GET /api/runs.
type RunsResponse struct {
	// Runs are ordered newest first.
	Runs []FlowRun `json:"runs"`

	// Count is len(Runs), provided so clients can validate truncated bodies.
	Count int `json:"count"`
}

// NewRunsResponse wraps runs, never producing a null list.
func NewRunsResponse(runs []FlowRun) RunsResponse {
	if runs == nil {
		runs = []FlowRun{}
	}
	return RunsResponse{Runs: runs, Count: len(runs)}
}
