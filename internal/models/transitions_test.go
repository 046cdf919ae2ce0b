package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestJob() PlanJob {
	return PlanJob{
		JobID:        "11111111-1111-1111-1111-111111111111",
		ManifestPath: "./manifest.json",
		Status:       JobStatusPending,
		Step:         StepPartition{Status: StepStatusPending},
		Config:       DefaultConfig(),
	}
}

func TestUpdateJobStatus(t *testing.T) {
	job := newTestJob()
	updated := UpdateJobStatus(job, JobStatusInProgress)

	assert.Equal(t, JobStatusInProgress, updated.Status)
	assert.Equal(t, JobStatusPending, job.Status, "original job must be unmodified")
}

func TestAddError(t *testing.T) {
	job := newTestJob()
	updated := AddError(job, "boom")

	assert.Equal(t, JobStatusFailed, updated.Status)
	assert.Equal(t, "boom", updated.ErrorMessage)
	assert.Empty(t, job.ErrorMessage)
}

func TestUpdateJobCounts(t *testing.T) {
	job := newTestJob()
	updated := UpdateJobCounts(job, 100, 7)

	assert.Equal(t, 100, updated.TotalUnits)
	assert.Equal(t, 7, updated.TotalChunks)
}

func TestStartStep(t *testing.T) {
	step := StepPartition{Status: StepStatusPending}
	started := StartStep(step)

	assert.Equal(t, StepStatusInProgress, started.Status)
	assert.NotNil(t, started.StartedAt)
}

func TestCompleteStep(t *testing.T) {
	step := StartStep(StepPartition{Status: StepStatusPending})
	completed := CompleteStep(step, 42)

	assert.Equal(t, StepStatusCompleted, completed.Status)
	assert.NotNil(t, completed.CompletedAt)
	assert.Equal(t, 42, completed.UnitsProcessed)
}

func TestFailStep(t *testing.T) {
	step := StartStep(StepPartition{Status: StepStatusPending})
	failed := FailStep(step, ErrorTypeTransient, "disk full")

	assert.Equal(t, StepStatusFailed, failed.Status)
	require.NotNil(t, failed.LastError)
	assert.Equal(t, ErrorTypeTransient, failed.LastError.Type)
	assert.Equal(t, "disk full", failed.LastError.Message)
}

func TestIncrementRetry(t *testing.T) {
	step := StepPartition{RetryCount: 2}
	updated := IncrementRetry(step)
	assert.Equal(t, 3, updated.RetryCount)
	assert.Equal(t, 2, step.RetryCount)
}

func TestReplaceStep(t *testing.T) {
	job := newTestJob()
	newStep := StartStep(job.Step)
	updated := ReplaceStep(job, newStep)

	assert.Equal(t, StepStatusInProgress, updated.Step.Status)
	assert.Equal(t, StepStatusPending, job.Step.Status)
}
