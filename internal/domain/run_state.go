package domain

import (
	"time"
)

// RunStatus represents the overall status of a release run
type RunStatus string

const (
	RunStatusPending   RunStatus = "pending"
	RunStatusRunning   RunStatus = "running"
	RunStatusSucceeded RunStatus = "succeeded"
	RunStatusCancelled RunStatus = "cancelled"
	RunStatusFailed    RunStatus = "failed"
)

// StepStatus represents the status of an individual workflow step
type StepStatus string

const (
	StepStatusRunning   StepStatus = "running"
	StepStatusCompleted StepStatus = "completed"
	StepStatusSkipped   StepStatus = "skipped"
	StepStatusFailed    StepStatus = "failed"
)

// StepName identifies a step of the release workflow
type StepName string

const (
	StepCheckBranch     StepName = "check_branch"
	StepCommitPending   StepName = "commit_pending"
	StepUnpushedSummary StepName = "unpushed_summary"
	StepExtractVersion  StepName = "extract_version"
	StepCompareTag      StepName = "compare_tag"
	StepCheckCollision  StepName = "check_collision"
	StepConfirmRelease  StepName = "confirm_release"
	StepCreateTag       StepName = "create_tag"
	StepPushBranch      StepName = "push_branch"
	StepPushTag         StepName = "push_tag"
	StepPublishRelease  StepName = "publish_release"
)

// StepRecord represents a single step in a run journal
type StepRecord struct {
	Name        StepName       `json:"name"`
	Status      StepStatus     `json:"status"`
	StartedAt   time.Time      `json:"started_at"`
	CompletedAt *time.Time     `json:"completed_at,omitempty"`
	Detail      map[string]any `json:"detail,omitempty"`
	Error       string         `json:"error,omitempty"`
}

// RunRecord is the journal of one release run. The workflow is a linear
// chain of guarded steps; the journal is diagnostic output only and is
// never read back to resume a run.
type RunRecord struct {
	RunID       string       `json:"run_id"`
	StartedAt   time.Time    `json:"started_at"`
	UpdatedAt   time.Time    `json:"updated_at"`
	Version     string       `json:"version,omitempty"`
	TagName     string       `json:"tag_name,omitempty"`
	Branch      string       `json:"branch,omitempty"`
	Steps       []StepRecord `json:"steps"`
	Status      RunStatus    `json:"status"`
	FailureKind string       `json:"failure_kind,omitempty"`
	Error       string       `json:"error,omitempty"`
}

// NewRunRecord creates a new run journal
func NewRunRecord(runID string) *RunRecord {
	now := time.Now()
	return &RunRecord{
		RunID:     runID,
		StartedAt: now,
		UpdatedAt: now,
		Steps:     []StepRecord{},
		Status:    RunStatusPending,
	}
}

// BeginStep appends a running step record to the journal
func (r *RunRecord) BeginStep(name StepName) {
	r.Steps = append(r.Steps, StepRecord{
		Name:      name,
		Status:    StepStatusRunning,
		StartedAt: time.Now(),
	})
	r.Status = RunStatusRunning
	r.UpdatedAt = time.Now()
}

// CompleteStep marks the most recent step as completed with optional detail
func (r *RunRecord) CompleteStep(name StepName, detail map[string]any) {
	r.finishStep(name, StepStatusCompleted, detail, nil)
}

// SkipStep marks the most recent step as skipped
func (r *RunRecord) SkipStep(name StepName) {
	r.finishStep(name, StepStatusSkipped, nil, nil)
}

// FailStep marks the most recent step as failed
func (r *RunRecord) FailStep(name StepName, err error) {
	r.finishStep(name, StepStatusFailed, nil, err)
}

func (r *RunRecord) finishStep(name StepName, status StepStatus, detail map[string]any, err error) {
	now := time.Now()
	for i := len(r.Steps) - 1; i >= 0; i-- {
		if r.Steps[i].Name == name && r.Steps[i].Status == StepStatusRunning {
			r.Steps[i].Status = status
			r.Steps[i].CompletedAt = &now
			r.Steps[i].Detail = detail
			if err != nil {
				r.Steps[i].Error = err.Error()
			}
			r.UpdatedAt = now
			return
		}
	}
}

// LastStep returns the most recent step record
func (r *RunRecord) LastStep() *StepRecord {
	if len(r.Steps) == 0 {
		return nil
	}
	return &r.Steps[len(r.Steps)-1]
}

// MarkSucceeded transitions the run to its success terminal state
func (r *RunRecord) MarkSucceeded() {
	r.Status = RunStatusSucceeded
	r.UpdatedAt = time.Now()
}

// MarkTerminated transitions the run to a cancelled or failed terminal
// state depending on the error.
func (r *RunRecord) MarkTerminated(err error) {
	if IsCancellation(err) {
		r.Status = RunStatusCancelled
	} else {
		r.Status = RunStatusFailed
	}
	r.FailureKind = FailureKind(err)
	r.Error = err.Error()
	r.UpdatedAt = time.Now()
}
