package models

// ProjectConfig is the top-level configuration for the chunksplit CLI.
type ProjectConfig struct {
	Chunker ChunkerConfig `yaml:"chunker" json:"chunker"`
	Retry   RetryConfig   `yaml:"retry" json:"retry"`
	JobsDir string        `yaml:"jobs_dir" json:"jobs_dir"`
}

// ChunkerConfig controls the input-preparation fan-out and default manifest
// location used by the CLI's plan jobs.
type ChunkerConfig struct {
	ManifestPath string `yaml:"manifest_path" json:"manifest_path"`
	Concurrency  int    `yaml:"concurrency" json:"concurrency"` // 0 = unbounded
}

// RetryConfig controls retry behavior for transient filesystem errors on
// job-state and plan reads/writes (state.json, plan.json). Kind/size/ident
// resolution failures are not retried.
type RetryConfig struct {
	MaxAttempts      int   `yaml:"max_attempts" json:"max_attempts"`
	InitialBackoffMs int64 `yaml:"initial_backoff_ms" json:"initial_backoff_ms"`
	MaxBackoffMs     int64 `yaml:"max_backoff_ms" json:"max_backoff_ms"`
}

// DefaultConfig returns a sensible default configuration.
func DefaultConfig() ProjectConfig {
	return ProjectConfig{
		Chunker: ChunkerConfig{
			ManifestPath: "./manifest.json",
			Concurrency:  0,
		},
		Retry: RetryConfig{
			MaxAttempts:      5,
			InitialBackoffMs: 1000,
			MaxBackoffMs:     30000,
		},
		JobsDir: "./jobs",
	}
}
