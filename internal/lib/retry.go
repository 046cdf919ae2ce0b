package lib

import (
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/chunksplit/chunksplit/internal/models"
)

// CalculateBackoff computes exponential backoff duration.
// Formula: min(initialBackoff * 2^attempt, maxBackoff)
func CalculateBackoff(attempt int, initialBackoffMs int64, maxBackoffMs int64) time.Duration {
	if attempt < 0 {
		attempt = 0
	}

	backoffMs := float64(initialBackoffMs) * math.Pow(2, float64(attempt))

	if backoffMs > float64(maxBackoffMs) {
		backoffMs = float64(maxBackoffMs)
	}

	return time.Duration(backoffMs) * time.Millisecond
}

// ShouldRetry determines if an operation should be retried based on error type and retry count.
func ShouldRetry(errorType models.ErrorType, currentRetries int, maxRetries int) bool {
	if errorType != models.ErrorTypeTransient {
		return false
	}
	return currentRetries < maxRetries
}

// RetryConfig holds retry strategy parameters.
type RetryConfig struct {
	MaxAttempts      int
	InitialBackoffMs int64
	MaxBackoffMs     int64
}

// NewRetryConfigFromModel creates a RetryConfig from models.RetryConfig.
func NewRetryConfigFromModel(config models.RetryConfig) RetryConfig {
	return RetryConfig{
		MaxAttempts:      config.MaxAttempts,
		InitialBackoffMs: config.InitialBackoffMs,
		MaxBackoffMs:     config.MaxBackoffMs,
	}
}

// RetryableOperation represents an operation that can be retried.
type RetryableOperation func() error

// ExecuteWithRetry executes an operation with exponential backoff retry logic.
// Returns nil if operation succeeds, or the last error if all retries are exhausted.
// Used to wrap job-state and plan persistence (state.json/plan.json reads and
// writes), the one place this repository does host filesystem I/O it doesn't
// fully control. Manifest and kind/size/ident resolution failures are
// non-transient and are never passed through here - they're surfaced to the
// caller directly instead.
func ExecuteWithRetry(operation RetryableOperation, config RetryConfig, shouldRetry func(error) bool) error {
	var lastErr error

	for attempt := 0; attempt < config.MaxAttempts; attempt++ {
		err := operation()
		if err == nil {
			return nil
		}

		lastErr = err

		if !shouldRetry(err) {
			return fmt.Errorf("non-retryable error: %w", err)
		}

		if attempt == config.MaxAttempts-1 {
			break
		}

		backoff := CalculateBackoff(attempt, config.InitialBackoffMs, config.MaxBackoffMs)
		time.Sleep(backoff)
	}

	return fmt.Errorf("operation failed after %d attempts: %w", config.MaxAttempts, lastErr)
}

// IsTransientIOError checks if an error looks like a transient filesystem
// condition (as opposed to a malformed manifest or a permanent I/O failure).
// These are candidates for automatic retry.
func IsTransientIOError(err error) bool {
	if err == nil {
		return false
	}

	errMsg := err.Error()

	transientPatterns := []string{
		"resource temporarily unavailable",
		"too many open files",
		"interrupted system call",
		"deadline exceeded",
		"device or resource busy",
	}

	for _, pattern := range transientPatterns {
		if containsIgnoreCase(errMsg, pattern) {
			return true
		}
	}

	return false
}

// containsIgnoreCase checks if string contains substring (case-insensitive).
func containsIgnoreCase(s, substr string) bool {
	return strings.Contains(strings.ToLower(s), strings.ToLower(substr))
}
