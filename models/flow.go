package models

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

// ErrMalformedTarget is returned by ParseTarget for values not shaped owner/name.
var ErrMalformedTarget = errors.New("target must look like owner/name")

// Target names a GitHub repository the flow collects statistics for.
type Target struct {
	Owner string `json:"owner" validate:"required,gh_owner"`
	Name  string `json:"repo" validate:"required,gh_repo"`
}

func (t Target) String() string {
	return fmt.Sprintf("%s/%s", t.Owner, t.Name)
}

// ParseTarget parses "owner/name". Surrounding spaces are ignored.
func ParseTarget(s string) (Target, error) {
	owner, name, ok := strings.Cut(strings.TrimSpace(s), "/")
	owner, name = strings.TrimSpace(owner), strings.TrimSpace(name)
	if !ok || owner == "" || name == "" || strings.Contains(name, "/") {
		return Target{}, fmt.Errorf("%w: %q", ErrMalformedTarget, s)
	}
	return Target{Owner: owner, Name: name}, nil
}

// RunStatus is the final state of a flow run.
type RunStatus string

const (
	RunStatusSucceeded RunStatus = "succeeded"
	RunStatusFailed    RunStatus = "failed"
)

// FlowRun is the persisted outcome of one repository statistics run.
type FlowRun struct {
	ID           string    `json:"id"`
	Owner        string    `json:"owner"`
	Name         string    `json:"repo"`
	Status       RunStatus `json:"status"`
	Stargazers   int       `json:"stargazers"`
	Contributors int       `json:"contributors"`
	// ErrorKind is the request error kind of a failed run, empty otherwise.
	ErrorKind  string    `json:"error_kind,omitempty"`
	Error      string    `json:"error,omitempty"`
	StartedAt  time.Time `json:"started_at"`
	FinishedAt time.Time `json:"finished_at"`
}

// Target returns the repository the run was about.
func (r FlowRun) Target() Target {
	return Target{Owner: r.Owner, Name: r.Name}
}

// Duration returns how long the run took.
func (r FlowRun) Duration() time.Duration {
	return r.FinishedAt.Sub(r.StartedAt)
}

// RunFilter selects flow runs. Empty fields match everything.
type RunFilter struct {
	Owner string `validate:"omitempty,gh_owner"`
	Name  string `validate:"omitempty,gh_repo"`
	// Limit caps the number of returned runs, newest first.
	Limit uint64 `validate:"lte=1000"`
}

// TriggerRunRequest is the body of POST /api/runs.
type TriggerRunRequest struct {
	Owner string `json:"owner" validate:"required,gh_owner"`
	Name  string `json:"repo" validate:"required,gh_repo"`
}

// Target returns the repository the request is about.
func (r TriggerRunRequest) Target() Target {
	return Target{Owner: r.Owner, Name: r.Name}
}

// SecretActionResult reports what a secrets action did.
type SecretActionResult struct {
	Action  string `json:"action"`
	Secret  string `json:"secret"`
	Skipped bool   `json:"skipped"`
}
