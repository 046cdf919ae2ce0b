package services

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/google/uuid"
	"github.com/chunksplit/chunksplit/internal/chunker"
	"github.com/chunksplit/chunksplit/internal/models"
)

const (
	StateFileName = "state.json"
)

// GetJobDir returns the directory path for a specific job.
func GetJobDir(jobsBaseDir string, jobID string) string {
	return filepath.Join(jobsBaseDir, jobID)
}

// GetStateFilePath returns the full path to a job's state file.
func GetStateFilePath(jobsBaseDir string, jobID string) string {
	return filepath.Join(GetJobDir(jobsBaseDir, jobID), StateFileName)
}

// LoadJobState reads a job's state from disk.
// Returns error if file doesn't exist or can't be parsed.
func LoadJobState(jobsBaseDir string, jobID string) (*models.PlanJob, error) {
	statePath := GetStateFilePath(jobsBaseDir, jobID)

	data, err := os.ReadFile(statePath)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("job not found: %s", jobID)
		}
		return nil, fmt.Errorf("failed to read job state: %w", err)
	}

	var job models.PlanJob
	if err := json.Unmarshal(data, &job); err != nil {
		return nil, fmt.Errorf("failed to parse job state: %w", err)
	}

	if err := job.Validate(); err != nil {
		return nil, fmt.Errorf("invalid job state loaded from disk: %w", err)
	}

	return &job, nil
}

// SaveJobState writes a job's state to disk with atomic write.
// Uses temp file + rename for atomicity (prevents corruption if process dies
// mid-write).
func SaveJobState(jobsBaseDir string, job *models.PlanJob) error {
	if err := job.Validate(); err != nil {
		return fmt.Errorf("cannot save invalid job: %w", err)
	}

	jobDir := GetJobDir(jobsBaseDir, job.JobID)
	if err := os.MkdirAll(jobDir, 0755); err != nil {
		return fmt.Errorf("failed to create job directory: %w", err)
	}

	data, err := json.MarshalIndent(job, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal job state: %w", err)
	}

	tempFile := filepath.Join(jobDir, fmt.Sprintf(".state.tmp.%s", uuid.New().String()))
	if err := os.WriteFile(tempFile, data, 0644); err != nil {
		return fmt.Errorf("failed to write temp state file: %w", err)
	}

	statePath := GetStateFilePath(jobsBaseDir, job.JobID)
	if err := os.Rename(tempFile, statePath); err != nil {
		_ = os.Remove(tempFile)
		return fmt.Errorf("failed to save job state: %w", err)
	}

	return nil
}

// ListAllJobs scans the jobs directory and returns all job IDs.
func ListAllJobs(jobsBaseDir string) ([]string, error) {
	entries, err := os.ReadDir(jobsBaseDir)
	if err != nil {
		if os.IsNotExist(err) {
			return []string{}, nil
		}
		return nil, fmt.Errorf("failed to read jobs directory: %w", err)
	}

	var jobIDs []string
	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}

		jobID := entry.Name()
		statePath := GetStateFilePath(jobsBaseDir, jobID)
		if _, err := os.Stat(statePath); err == nil {
			jobIDs = append(jobIDs, jobID)
		}
	}

	return jobIDs, nil
}

// DeleteJob removes a job's directory and all its data.
// WARNING: This is destructive and cannot be undone.
func DeleteJob(jobsBaseDir string, jobID string) error {
	jobDir := GetJobDir(jobsBaseDir, jobID)

	if _, err := os.Stat(jobDir); os.IsNotExist(err) {
		return fmt.Errorf("job not found: %s", jobID)
	}

	if err := os.RemoveAll(jobDir); err != nil {
		return fmt.Errorf("failed to delete job: %w", err)
	}

	return nil
}

// EnsureJobDir creates the job's directory on disk.
func EnsureJobDir(jobsBaseDir string, jobID string) (string, error) {
	jobDir := GetJobDir(jobsBaseDir, jobID)
	if err := os.MkdirAll(jobDir, 0755); err != nil {
		return "", fmt.Errorf("failed to create job directory: %w", err)
	}
	return jobDir, nil
}

// GetPlanFilePath returns the path a job's resulting chunk plan is written
// to (each emitted chunk's key and its kind-built handle), alongside
// state.json.
func GetPlanFilePath(jobsBaseDir string, jobID string) string {
	return filepath.Join(GetJobDir(jobsBaseDir, jobID), "plan.json")
}

// planEntry is the on-disk shape of one emitted chunk in plan.json.
type planEntry struct {
	Key    string `json:"key"`
	Handle any    `json:"handle"`
}

// SavePlan writes a job's chunk plan to disk with atomic write.
func SavePlan(jobsBaseDir string, jobID string, chunks []chunker.PlannedChunk) error {
	jobDir := GetJobDir(jobsBaseDir, jobID)
	if err := os.MkdirAll(jobDir, 0755); err != nil {
		return fmt.Errorf("failed to create job directory: %w", err)
	}

	entries := make([]planEntry, len(chunks))
	for i, c := range chunks {
		entries[i] = planEntry{Key: c.Key, Handle: c.Handle}
	}

	data, err := json.MarshalIndent(entries, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal plan: %w", err)
	}

	tempFile := filepath.Join(jobDir, fmt.Sprintf(".plan.tmp.%s", uuid.New().String()))
	if err := os.WriteFile(tempFile, data, 0644); err != nil {
		return fmt.Errorf("failed to write temp plan file: %w", err)
	}

	planPath := GetPlanFilePath(jobsBaseDir, jobID)
	if err := os.Rename(tempFile, planPath); err != nil {
		_ = os.Remove(tempFile)
		return fmt.Errorf("failed to save plan: %w", err)
	}

	return nil
}
