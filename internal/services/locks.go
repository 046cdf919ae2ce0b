package services

import (
	"fmt"
	"os"
	"time"

	"github.com/chunksplit/chunksplit/internal/lib"
)

// JobLock represents a file lock for a specific job.
// Prevents two "plan run" invocations from touching the same job directory
// concurrently - the host-engine-level concern the partitioning spec
// delegates to "the caller". AcquireJobLock, Release and IsJobLocked are
// implemented per-OS in locks_unix.go / locks_windows.go.
type JobLock struct {
	jobID    string
	lockFile *os.File
	lockPath string
	logger   *lib.Logger
}

// writeLockInfo records the current process ID and timestamp in the lock
// file, for diagnosing a stuck lock.
func (jl *JobLock) writeLockInfo() error {
	lockInfo := fmt.Sprintf("pid=%d\ntime=%s\n", os.Getpid(), time.Now().Format(time.RFC3339))
	if err := jl.lockFile.Truncate(0); err != nil {
		return err
	}
	if _, err := jl.lockFile.Seek(0, 0); err != nil {
		return err
	}
	if _, err := jl.lockFile.WriteString(lockInfo); err != nil {
		return err
	}
	return jl.lockFile.Sync()
}

// WithJobLock executes a function while holding a job lock.
// Automatically acquires the lock, executes the function, and releases the
// lock. Returns error if the lock cannot be acquired or if the function
// returns an error.
func WithJobLock(jobsDir string, jobID string, logger *lib.Logger, fn func() error) error {
	lock, err := AcquireJobLock(jobsDir, jobID, logger)
	if err != nil {
		return err
	}
	defer func() { _ = lock.Release() }()

	return fn()
}
