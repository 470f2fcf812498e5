package models

import (
	"time"

	id "formbuilder/pkg/domain"
)

// RunStatus is the terminal state of one submission run.
type RunStatus string

const (
	RunCompleted RunStatus = "completed"
	// RunRolledBack means a step failed and every compensation succeeded.
	RunRolledBack RunStatus = "rolled_back"
	// RunRollbackFailed means at least one compensation failed and storage
	// may hold partial state.
	RunRollbackFailed RunStatus = "rollback_failed"
)

// Run records the outcome of processing one form submission.
type Run struct {
	ID          id.SubmissionID `json:"id"`
	FormID      string          `json:"form_id"`
	Status      RunStatus       `json:"status"`
	FailedStep  string          `json:"failed_step,omitempty"`
	Reason      string          `json:"reason,omitempty"`
	Executed    []string        `json:"executed,omitempty"`
	Compensated []string        `json:"compensated,omitempty"`
	Faults      []string        `json:"faults,omitempty"`
	Result      map[string]any  `json:"result,omitempty"`
	RequestID   string          `json:"request_id,omitempty"`
	ActorID     string          `json:"actor_id,omitempty"`
	StartedAt   time.Time       `json:"started_at"`
	FinishedAt  time.Time       `json:"finished_at"`
}

// NeedsIntervention reports whether an operator must inspect storage.
func (r *Run) NeedsIntervention() bool {
	return r.Status == RunRollbackFailed
}
