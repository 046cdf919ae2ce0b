package pipeline

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/chunksplit/chunksplit/internal/chunker"
	"github.com/chunksplit/chunksplit/internal/lib"
	"github.com/chunksplit/chunksplit/internal/models"
	"github.com/chunksplit/chunksplit/internal/services"
)

// stateIO retries a job-state filesystem operation against transient
// conditions (too many open files, a busy device, a brief EINTR) using the
// job's configured backoff. Manifest and partitioning errors never reach
// this helper - those are non-transient by spec and are surfaced to the
// caller immediately instead.
func stateIO(retry models.RetryConfig, op func() error) error {
	return lib.ExecuteWithRetry(op, lib.NewRetryConfigFromModel(retry), lib.IsTransientIOError)
}

// CreateJob initializes a new plan job for a manifest path.
func CreateJob(manifestPath string, config models.ProjectConfig) (*models.PlanJob, error) {
	jobID := uuid.New().String()

	job := &models.PlanJob{
		JobID:        jobID,
		CreatedAt:    time.Now(),
		UpdatedAt:    time.Now(),
		ManifestPath: manifestPath,
		Status:       models.JobStatusPending,
		Step:         models.StepPartition{Status: models.StepStatusPending},
		Config:       config,
	}

	if err := job.Validate(); err != nil {
		return nil, fmt.Errorf("failed to create valid job: %w", err)
	}

	if _, err := services.EnsureJobDir(config.JobsDir, jobID); err != nil {
		return nil, fmt.Errorf("failed to create job directory: %w", err)
	}

	if err := stateIO(config.Retry, func() error { return services.SaveJobState(config.JobsDir, job) }); err != nil {
		return nil, fmt.Errorf("failed to save initial job state: %w", err)
	}

	return job, nil
}

// LoadJob loads an existing job from disk, retrying transient filesystem
// errors per retryConfig.
func LoadJob(jobsDir string, jobID string, retryConfig models.RetryConfig) (*models.PlanJob, error) {
	var job *models.PlanJob
	err := stateIO(retryConfig, func() error {
		j, err := services.LoadJobState(jobsDir, jobID)
		if err != nil {
			return err
		}
		job = j
		return nil
	})
	return job, err
}

// UpdateJob persists job state to disk, retrying transient filesystem errors
// per the job's configured backoff.
func UpdateJob(jobsDir string, job *models.PlanJob) error {
	job.UpdatedAt = time.Now()
	return stateIO(job.Config.Retry, func() error { return services.SaveJobState(jobsDir, job) })
}

// StartJob transitions the job to in_progress and starts its partition step.
func StartJob(job *models.PlanJob) *models.PlanJob {
	updatedJob := models.UpdateJobStatus(*job, models.JobStatusInProgress)
	updatedJob = models.ReplaceStep(updatedJob, models.StartStep(updatedJob.Step))
	return &updatedJob
}

// CompleteJob marks the job and its step as completed.
func CompleteJob(job *models.PlanJob, unitsProcessed int, chunks int) *models.PlanJob {
	updatedJob := models.ReplaceStep(*job, models.CompleteStep(job.Step, unitsProcessed))
	updatedJob = models.UpdateJobCounts(updatedJob, unitsProcessed, chunks)
	updatedJob = models.UpdateJobStatus(updatedJob, models.JobStatusCompleted)
	return &updatedJob
}

// FailJob marks the job and its step as failed with the given error.
func FailJob(job *models.PlanJob, errorType models.ErrorType, errMsg string) *models.PlanJob {
	updatedJob := models.ReplaceStep(*job, models.FailStep(job.Step, errorType, errMsg))
	updatedJob = models.AddError(updatedJob, errMsg)
	return &updatedJob
}

// RunPartition loads the job's manifest, runs it through MakeChunks, persists
// the resulting plan and job state, and returns the completed job.
//
// onUnitResolved, if non-nil, is called once per unit as its size and ident
// are resolved (concurrently, from the resolution fan-out - callers touching
// shared state from it must synchronize themselves) so a caller can drive a
// progress bar. Pass nil for no progress reporting.
//
// RunPartition does not take the job lock itself; "plan run" calls it inside
// services.WithJobLock so two invocations cannot race on the same job
// directory.
func RunPartition(ctx context.Context, job *models.PlanJob, logger interface {
	Info(string, ...any)
}, onUnitResolved func()) (*models.PlanJob, error) {
	job = StartJob(job)
	if err := UpdateJob(job.Config.JobsDir, job); err != nil {
		return nil, fmt.Errorf("failed to persist job start: %w", err)
	}

	members, sideRefsSource, totalUnits, err := services.LoadManifest(job.ManifestPath)
	if err != nil {
		failed := FailJob(job, models.ErrorTypeNonTransient, err.Error())
		_ = UpdateJob(job.Config.JobsDir, failed)
		return failed, err
	}

	runCtx := ctx
	if n := job.Config.Chunker.Concurrency; n > 0 {
		runCtx = chunker.WithConcurrency(runCtx, n)
	}
	if onUnitResolved != nil {
		runCtx = chunker.WithProgress(runCtx, onUnitResolved)
	}

	empty, err := sideRefsSource.Empty(runCtx)
	if err != nil {
		failed := FailJob(job, models.ErrorTypeNonTransient, err.Error())
		_ = UpdateJob(job.Config.JobsDir, failed)
		return failed, err
	}

	chunks, err := chunker.MakeChunks(runCtx, members, job.JobID, empty, sideRefsSource)
	if err != nil {
		errType := models.ErrorTypeNonTransient
		if err == context.DeadlineExceeded || err == context.Canceled {
			errType = models.ErrorTypeTransient
		}
		failed := FailJob(job, errType, err.Error())
		_ = UpdateJob(job.Config.JobsDir, failed)
		return failed, err
	}

	savePlan := func() error { return services.SavePlan(job.Config.JobsDir, job.JobID, chunks) }
	if err := stateIO(job.Config.Retry, savePlan); err != nil {
		failed := FailJob(job, models.ErrorTypeNonTransient, err.Error())
		_ = UpdateJob(job.Config.JobsDir, failed)
		return failed, err
	}

	completed := CompleteJob(job, totalUnits, len(chunks))
	if err := UpdateJob(job.Config.JobsDir, completed); err != nil {
		return nil, fmt.Errorf("failed to persist job completion: %w", err)
	}

	if logger != nil {
		logger.Info(fmt.Sprintf("partition complete: %d units -> %d chunks", totalUnits, len(chunks)))
	}

	return completed, nil
}

// IsJobComplete reports whether the job's status is a terminal success.
func IsJobComplete(job *models.PlanJob) bool {
	return job.Status == models.JobStatusCompleted
}

// GetJobSummary returns a human-readable summary of the job.
func GetJobSummary(job *models.PlanJob) string {
	duration := job.UpdatedAt.Sub(job.CreatedAt)

	summary := fmt.Sprintf("Job %s\n", job.JobID)
	summary += fmt.Sprintf("Status: %s\n", job.Status)
	summary += fmt.Sprintf("Units: %d\n", job.TotalUnits)
	summary += fmt.Sprintf("Chunks: %d\n", job.TotalChunks)
	summary += fmt.Sprintf("Duration: %v\n", duration.Round(time.Second))

	if job.ErrorMessage != "" {
		summary += fmt.Sprintf("Error: %s\n", job.ErrorMessage)
	}

	return summary
}
