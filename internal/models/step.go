package models

import (
	"fmt"
	"time"
)

// StepPartition is the single pipeline step a PlanJob carries: running the
// manifest's units through make_chunks.
type StepPartition struct {
	Status         StepStatus `json:"status"`
	StartedAt      *time.Time `json:"started_at,omitempty"`
	CompletedAt    *time.Time `json:"completed_at,omitempty"`
	UnitsProcessed int        `json:"units_processed"`
	RetryCount     int        `json:"retry_count"`
	LastError      *StepError `json:"last_error,omitempty"`
}

// StepStatus defines the execution state of the partition step.
type StepStatus string

const (
	StepStatusPending    StepStatus = "pending"
	StepStatusInProgress StepStatus = "in_progress"
	StepStatusCompleted  StepStatus = "completed"
	StepStatusFailed     StepStatus = "failed"
)

// StepError captures error details for a failed step.
type StepError struct {
	Type      ErrorType `json:"type"` // "transient" | "non_transient"
	Message   string    `json:"message"`
	Timestamp time.Time `json:"timestamp"`
}

// Error implements the error interface.
func (e *StepError) Error() string {
	return e.Message
}

// ErrorType classifies errors for retry strategy.
type ErrorType string

const (
	ErrorTypeTransient    ErrorType = "transient"     // partitioning cancelled or timed out (context deadline/cancel); the step is not re-run automatically
	ErrorTypeNonTransient ErrorType = "non_transient" // malformed manifest, bad kind - manual intervention
)

// IsValidStepStatus checks if the step status is recognized.
func IsValidStepStatus(s StepStatus) bool {
	switch s {
	case StepStatusPending, StepStatusInProgress, StepStatusCompleted, StepStatusFailed:
		return true
	default:
		return false
	}
}

// CanTransitionTo checks if step status transition is valid.
func (s StepStatus) CanTransitionTo(next StepStatus) bool {
	switch s {
	case StepStatusPending:
		return next == StepStatusInProgress
	case StepStatusInProgress:
		return next == StepStatusCompleted || next == StepStatusFailed
	case StepStatusFailed:
		return next == StepStatusInProgress
	case StepStatusCompleted:
		return false
	default:
		return false
	}
}

// IsRetryable determines if a step error should trigger automatic retry.
func (e StepError) IsRetryable(maxRetries int, currentRetries int) bool {
	return e.Type == ErrorTypeTransient && currentRetries < maxRetries
}

func (e StepError) String() string {
	return fmt.Sprintf("[%s] %s", e.Type, e.Message)
}
