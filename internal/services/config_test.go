package services

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExpandEnvVars(t *testing.T) {
	t.Setenv("CHUNKSPLIT_TEST_VAR", "resolved")
	assert.Equal(t, "resolved/manifest.json", ExpandEnvVars("${CHUNKSPLIT_TEST_VAR}/manifest.json"))
}

func TestLoadConfig_FromFile(t *testing.T) {
	viper.Reset()
	dir := t.TempDir()
	jobsDir := filepath.Join(dir, "jobs")
	configFile := filepath.Join(dir, "chunksplit.yaml")

	content := `
chunker:
  manifest_path: ./manifest.json
  concurrency: 4

retry:
  max_attempts: 3
  initial_backoff_ms: 500
  max_backoff_ms: 10000

jobs_dir: "` + jobsDir + `"
`
	require.NoError(t, os.WriteFile(configFile, []byte(content), 0644))

	config, err := LoadConfig(configFile)
	require.NoError(t, err)

	assert.Equal(t, "./manifest.json", config.Chunker.ManifestPath)
	assert.Equal(t, 4, config.Chunker.Concurrency)
	assert.Equal(t, 3, config.Retry.MaxAttempts)
	assert.Equal(t, jobsDir, config.JobsDir)
}

func TestLoadConfig_ErrorsWhenExplicitFileMissing(t *testing.T) {
	viper.Reset()
	dir := t.TempDir()
	missing := filepath.Join(dir, "does-not-exist.yaml")

	config, err := LoadConfig(missing)
	require.Error(t, err)
	assert.Nil(t, config)
}

func TestSetConfigValue(t *testing.T) {
	viper.Reset()
	SetConfigValue("chunker.concurrency", 16)
	assert.Equal(t, 16, viper.GetInt("chunker.concurrency"))
}
