package models

import "time"

// PlanJob represents a single "chunksplit plan run" invocation: loading one
// manifest of units and partitioning it into chunks.
type PlanJob struct {
	JobID        string        `json:"job_id"`
	CreatedAt    time.Time     `json:"created_at"`
	UpdatedAt    time.Time     `json:"updated_at"`
	ManifestPath string        `json:"manifest_path"`
	Status       JobStatus     `json:"status"`
	Step         StepPartition `json:"step"`
	Config       ProjectConfig `json:"config"`
	TotalUnits   int           `json:"total_units"`
	TotalChunks  int           `json:"total_chunks"`
	ErrorMessage string        `json:"error_message,omitempty"`
}

// JobStatus defines the execution state of a plan job.
type JobStatus string

const (
	JobStatusPending    JobStatus = "pending"
	JobStatusInProgress JobStatus = "in_progress"
	JobStatusCompleted  JobStatus = "completed"
	JobStatusFailed     JobStatus = "failed"
)

// IsValidJobStatus checks if the job status is recognized.
func IsValidJobStatus(s JobStatus) bool {
	switch s {
	case JobStatusPending, JobStatusInProgress, JobStatusCompleted, JobStatusFailed:
		return true
	default:
		return false
	}
}

// CanTransitionTo checks if state transition is valid.
// Valid transitions:
//
//	pending -> in_progress
//	in_progress -> completed | failed
//	failed -> in_progress (manual retry)
func (s JobStatus) CanTransitionTo(next JobStatus) bool {
	switch s {
	case JobStatusPending:
		return next == JobStatusInProgress
	case JobStatusInProgress:
		return next == JobStatusCompleted || next == JobStatusFailed
	case JobStatusFailed:
		return next == JobStatusInProgress
	case JobStatusCompleted:
		return false
	default:
		return false
	}
}
