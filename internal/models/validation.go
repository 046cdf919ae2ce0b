package models

import (
	"errors"
	"fmt"
	"os"

	"github.com/google/uuid"
)

// Validate checks if a PlanJob has valid fields.
func (j *PlanJob) Validate() error {
	if j.JobID == "" {
		return errors.New("job_id is required")
	}
	if _, err := uuid.Parse(j.JobID); err != nil {
		return fmt.Errorf("invalid job_id: must be a valid UUID: %w", err)
	}

	if j.ManifestPath == "" {
		return errors.New("manifest_path is required")
	}

	if !IsValidJobStatus(j.Status) {
		return fmt.Errorf("invalid status: %s", j.Status)
	}

	if j.TotalUnits < 0 {
		return errors.New("total_units cannot be negative")
	}
	if j.TotalChunks < 0 {
		return errors.New("total_chunks cannot be negative")
	}

	return j.Step.Validate()
}

// Validate checks if a StepPartition has valid fields.
func (s *StepPartition) Validate() error {
	if !IsValidStepStatus(s.Status) {
		return fmt.Errorf("invalid step status: %s", s.Status)
	}

	if s.RetryCount < 0 {
		return errors.New("retry_count cannot be negative")
	}
	if s.UnitsProcessed < 0 {
		return errors.New("units_processed cannot be negative")
	}

	if (s.Status == StepStatusInProgress || s.Status == StepStatusCompleted) && s.StartedAt == nil {
		return errors.New("started_at must be set when step is in_progress or completed")
	}
	if s.Status == StepStatusCompleted && s.CompletedAt == nil {
		return errors.New("completed_at must be set when step is completed")
	}

	return nil
}

// Validate checks if a ProjectConfig has valid fields.
func (c *ProjectConfig) Validate() error {
	if c.Retry.MaxAttempts < 1 || c.Retry.MaxAttempts > 10 {
		return errors.New("max_attempts must be between 1 and 10")
	}
	if c.Retry.InitialBackoffMs <= 0 {
		return errors.New("initial_backoff_ms must be positive")
	}
	if c.Retry.MaxBackoffMs <= 0 {
		return errors.New("max_backoff_ms must be positive")
	}
	if c.Retry.InitialBackoffMs >= c.Retry.MaxBackoffMs {
		return errors.New("initial_backoff_ms must be less than max_backoff_ms")
	}

	if c.Chunker.Concurrency < 0 {
		return errors.New("chunker.concurrency cannot be negative")
	}

	if c.JobsDir == "" {
		return errors.New("jobs_dir is required")
	}

	return nil
}

// ValidateJobsDir checks if the jobs directory exists and is writable.
// Creates the directory automatically if it doesn't exist.
func ValidateJobsDir(path string) error {
	info, err := os.Stat(path)
	if err != nil {
		if os.IsNotExist(err) {
			if err := os.MkdirAll(path, 0755); err != nil {
				return fmt.Errorf("failed to create jobs directory: %w", err)
			}
			return nil
		}
		return fmt.Errorf("cannot access jobs directory: %w", err)
	}

	if !info.IsDir() {
		return fmt.Errorf("jobs_dir is not a directory: %s", path)
	}

	testFile := fmt.Sprintf("%s/.write_test_%s", path, uuid.New().String())
	f, err := os.Create(testFile)
	if err != nil {
		return fmt.Errorf("jobs directory is not writable: %w", err)
	}
	_ = f.Close()
	_ = os.Remove(testFile)

	return nil
}
