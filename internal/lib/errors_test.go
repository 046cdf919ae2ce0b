package lib

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestChunkError_Error(t *testing.T) {
	err := &ChunkError{
		Category:    CategoryFileSystem,
		Message:     "Cannot access file",
		Cause:       errors.New("permission denied"),
		IsRetryable: false,
	}

	result := err.Error()
	assert.Contains(t, result, "[FILESYSTEM]")
	assert.Contains(t, result, "Cannot access file")
	assert.Contains(t, result, "permission denied")
}

func TestChunkError_UserMessage(t *testing.T) {
	err := &ChunkError{
		Category: CategoryManifest,
		Message:  "Invalid manifest",
		Cause:    errors.New("unexpected EOF"),
		Guidance: []string{
			"Check manifest JSON structure",
			"Ensure every unit has kind, ident, and size fields",
		},
		IsRetryable: false,
	}

	msg := err.UserMessage()
	assert.Contains(t, msg, "Error: Invalid manifest")
	assert.Contains(t, msg, "How to fix:")
	assert.Contains(t, msg, "1. Check manifest JSON structure")
	assert.Contains(t, msg, "2. Ensure every unit has kind, ident, and size fields")
	assert.Contains(t, msg, "Technical details: unexpected EOF")
	assert.NotContains(t, msg, "will be automatically retried")
}

func TestChunkError_UserMessage_Retryable(t *testing.T) {
	err := &ChunkError{
		Category:    CategoryFileSystem,
		Message:     "resource temporarily unavailable",
		IsRetryable: true,
	}

	msg := err.UserMessage()
	assert.Contains(t, msg, "will be automatically retried")
}

func TestChunkError_Unwrap(t *testing.T) {
	cause := errors.New("underlying")
	err := &ChunkError{Category: CategoryState, Message: "wrapped", Cause: cause}

	assert.Equal(t, cause, errors.Unwrap(err))
	assert.True(t, errors.Is(err, cause))
}

func TestErrFileNotFound(t *testing.T) {
	err := ErrFileNotFound("/tmp/manifest.json")
	assert.Equal(t, CategoryFileSystem, err.Category)
	assert.False(t, err.IsRetryable)
	assert.Contains(t, err.Message, "/tmp/manifest.json")
}

func TestErrJobLocked(t *testing.T) {
	err := ErrJobLocked("job-123")
	assert.Equal(t, CategoryState, err.Category)
	assert.Contains(t, err.Message, "job-123")
}

func TestWrapError(t *testing.T) {
	cause := errors.New("boom")
	err := WrapError(CategoryValidation, "something failed", cause, "try again")
	assert.Equal(t, CategoryValidation, err.Category)
	assert.Equal(t, cause, err.Cause)
	assert.Equal(t, []string{"try again"}, err.Guidance)
}

func TestClassifyError_PassesThroughChunkError(t *testing.T) {
	original := ErrDiskFull("/jobs", errors.New("no space"))
	classified := ClassifyError(original)
	assert.Same(t, original, classified)
}

func TestClassifyError_WrapsPlainError(t *testing.T) {
	classified := ClassifyError(errors.New("plain failure"))
	assert.NotNil(t, classified)
	assert.Equal(t, "plain failure", classified.Cause.Error())
}
