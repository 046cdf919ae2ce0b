package pipeline

import (
	"context"
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/chunksplit/chunksplit/internal/models"
)

func writeTestManifest(t *testing.T, content string) string {
	t.Helper()
	dir := t.TempDir()
	path := filepath.Join(dir, "manifest.json")
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func testConfig(t *testing.T, manifestPath string) models.ProjectConfig {
	t.Helper()
	config := models.DefaultConfig()
	config.Chunker.ManifestPath = manifestPath
	config.JobsDir = t.TempDir()
	return config
}

func TestCreateJob(t *testing.T) {
	manifestPath := writeTestManifest(t, `{"units":[{"kind":"script","ident":"a.js","size":10}]}`)
	config := testConfig(t, manifestPath)

	job, err := CreateJob(manifestPath, config)
	require.NoError(t, err)
	assert.Equal(t, models.JobStatusPending, job.Status)
	assert.Equal(t, manifestPath, job.ManifestPath)

	loaded, err := LoadJob(config.JobsDir, job.JobID, config.Retry)
	require.NoError(t, err)
	assert.Equal(t, job.JobID, loaded.JobID)
}

func TestStartJob(t *testing.T) {
	manifestPath := writeTestManifest(t, `{"units":[{"kind":"script","ident":"a.js","size":10}]}`)
	config := testConfig(t, manifestPath)

	job, err := CreateJob(manifestPath, config)
	require.NoError(t, err)

	started := StartJob(job)
	assert.Equal(t, models.JobStatusInProgress, started.Status)
	assert.Equal(t, models.StepStatusInProgress, started.Step.Status)
}

func TestRunPartition_Success(t *testing.T) {
	manifestPath := writeTestManifest(t, `{
		"units": [
			{"kind": "script", "ident": "src/app/page.js", "size": 1000},
			{"kind": "script", "ident": "src/app/layout.js", "size": 2000},
			{"kind": "style", "ident": "src/app/page.css", "size": 500}
		]
	}`)
	config := testConfig(t, manifestPath)

	job, err := CreateJob(manifestPath, config)
	require.NoError(t, err)

	completed, err := RunPartition(context.Background(), job, nil, nil)
	require.NoError(t, err)

	assert.Equal(t, models.JobStatusCompleted, completed.Status)
	assert.Equal(t, models.StepStatusCompleted, completed.Step.Status)
	assert.Equal(t, 3, completed.TotalUnits)
	assert.Greater(t, completed.TotalChunks, 0)
}

func TestRunPartition_ReportsProgressPerUnit(t *testing.T) {
	manifestPath := writeTestManifest(t, `{
		"units": [
			{"kind": "script", "ident": "src/app/page.js", "size": 1000},
			{"kind": "script", "ident": "src/app/layout.js", "size": 2000},
			{"kind": "style", "ident": "src/app/page.css", "size": 500}
		]
	}`)
	config := testConfig(t, manifestPath)

	job, err := CreateJob(manifestPath, config)
	require.NoError(t, err)

	var mu sync.Mutex
	resolved := 0
	onUnitResolved := func() {
		mu.Lock()
		defer mu.Unlock()
		resolved++
	}

	completed, err := RunPartition(context.Background(), job, nil, onUnitResolved)
	require.NoError(t, err)
	assert.Equal(t, models.JobStatusCompleted, completed.Status)
	assert.Equal(t, 3, resolved)
}

func TestRunPartition_FailsOnMissingManifest(t *testing.T) {
	manifestPath := writeTestManifest(t, `{"units":[{"kind":"script","ident":"a.js","size":10}]}`)
	config := testConfig(t, manifestPath)

	job, err := CreateJob(manifestPath, config)
	require.NoError(t, err)

	require.NoError(t, os.Remove(manifestPath))

	failed, err := RunPartition(context.Background(), job, nil, nil)
	require.Error(t, err)
	assert.Equal(t, models.JobStatusFailed, failed.Status)
	assert.Equal(t, models.StepStatusFailed, failed.Step.Status)
}

func TestGetJobSummary(t *testing.T) {
	manifestPath := writeTestManifest(t, `{"units":[{"kind":"script","ident":"a.js","size":10}]}`)
	config := testConfig(t, manifestPath)

	job, err := CreateJob(manifestPath, config)
	require.NoError(t, err)

	summary := GetJobSummary(job)
	assert.Contains(t, summary, job.JobID)
	assert.Contains(t, summary, "pending")
}

func TestIsJobComplete(t *testing.T) {
	manifestPath := writeTestManifest(t, `{"units":[{"kind":"script","ident":"a.js","size":10}]}`)
	config := testConfig(t, manifestPath)

	job, err := CreateJob(manifestPath, config)
	require.NoError(t, err)
	assert.False(t, IsJobComplete(job))

	completed, err := RunPartition(context.Background(), job, nil, nil)
	require.NoError(t, err)
	assert.True(t, IsJobComplete(completed))
}
