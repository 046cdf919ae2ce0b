package models

import "time"

// UpdateJobStatus creates a new PlanJob with updated status.
// Pure function - returns new instance, does not mutate original.
func UpdateJobStatus(job PlanJob, status JobStatus) PlanJob {
	job.Status = status
	job.UpdatedAt = time.Now()
	return job
}

// AddError creates a new PlanJob with an error message, marking it failed.
// Pure function - returns new instance.
func AddError(job PlanJob, errorMsg string) PlanJob {
	job.ErrorMessage = errorMsg
	job.Status = JobStatusFailed
	job.UpdatedAt = time.Now()
	return job
}

// UpdateJobCounts creates a new PlanJob with updated unit/chunk counts.
// Pure function - returns new instance.
func UpdateJobCounts(job PlanJob, units int, chunks int) PlanJob {
	job.TotalUnits = units
	job.TotalChunks = chunks
	job.UpdatedAt = time.Now()
	return job
}

// StartStep creates a new StepPartition with in_progress status.
// Pure function - returns new instance.
func StartStep(step StepPartition) StepPartition {
	now := time.Now()
	step.Status = StepStatusInProgress
	step.StartedAt = &now
	return step
}

// CompleteStep creates a new StepPartition with completed status.
// Pure function - returns new instance.
func CompleteStep(step StepPartition, unitsProcessed int) StepPartition {
	now := time.Now()
	step.Status = StepStatusCompleted
	step.CompletedAt = &now
	step.UnitsProcessed = unitsProcessed
	return step
}

// FailStep creates a new StepPartition with failed status and error details.
// Pure function - returns new instance.
func FailStep(step StepPartition, errorType ErrorType, errorMsg string) StepPartition {
	step.Status = StepStatusFailed
	step.LastError = &StepError{
		Type:      errorType,
		Message:   errorMsg,
		Timestamp: time.Now(),
	}
	return step
}

// IncrementRetry creates a new StepPartition with incremented retry count.
// Pure function - returns new instance.
func IncrementRetry(step StepPartition) StepPartition {
	step.RetryCount++
	return step
}

// ReplaceStep replaces the job's step with an updated one.
// Pure function - returns new job instance with updated step.
func ReplaceStep(job PlanJob, updatedStep StepPartition) PlanJob {
	job.Step = updatedStep
	job.UpdatedAt = time.Now()
	return job
}
