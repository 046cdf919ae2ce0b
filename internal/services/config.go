package services

import (
	"fmt"
	"os"
	"regexp"
	"strings"

	"github.com/spf13/viper"
	"github.com/chunksplit/chunksplit/internal/models"
)

// ExpandEnvVars expands environment variables in the format ${VAR} or $VAR.
func ExpandEnvVars(s string) string {
	re := regexp.MustCompile(`\$\{([A-Z_][A-Z0-9_]*)\}`)
	return re.ReplaceAllStringFunc(s, func(match string) string {
		varName := strings.TrimSuffix(strings.TrimPrefix(match, "${"), "}")
		return os.Getenv(varName)
	})
}

// LoadConfig loads configuration from file, environment and defaults.
// Priority order (highest to lowest):
//  1. Environment variables (CHUNKSPLIT_ prefix)
//  2. Configuration file (chunksplit.yaml)
//  3. Default values
//
// No CLI flag is bound here; commands apply their own overrides (such as the
// manifest argument of "plan run") to the returned config.
func LoadConfig(configFile string) (*models.ProjectConfig, error) {
	if configFile != "" {
		viper.SetConfigFile(configFile)
	} else {
		viper.SetConfigName("chunksplit")
		viper.SetConfigType("yaml")
		viper.AddConfigPath(".")
		viper.AddConfigPath("$HOME/.config/chunksplit")
		viper.AddConfigPath("/etc/chunksplit")
	}

	viper.SetEnvPrefix("CHUNKSPLIT")
	viper.AutomaticEnv()

	configFound := true
	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
		configFound = false
	}

	config := models.ProjectConfig{
		Chunker: models.ChunkerConfig{
			ManifestPath: ExpandEnvVars(viper.GetString("chunker.manifest_path")),
			Concurrency:  viper.GetInt("chunker.concurrency"),
		},
		Retry: models.RetryConfig{
			MaxAttempts:      viper.GetInt("retry.max_attempts"),
			InitialBackoffMs: viper.GetInt64("retry.initial_backoff_ms"),
			MaxBackoffMs:     viper.GetInt64("retry.max_backoff_ms"),
		},
		JobsDir: ExpandEnvVars(viper.GetString("jobs_dir")),
	}

	defaults := models.DefaultConfig()
	if !configFound {
		if config.Chunker.ManifestPath == "" {
			config.Chunker.ManifestPath = defaults.Chunker.ManifestPath
		}
		if config.Retry.MaxAttempts == 0 {
			config.Retry = defaults.Retry
		}
		if config.JobsDir == "" {
			config.JobsDir = defaults.JobsDir
		}
	} else {
		if config.Retry.MaxAttempts == 0 {
			config.Retry.MaxAttempts = defaults.Retry.MaxAttempts
		}
		if config.Retry.InitialBackoffMs == 0 {
			config.Retry.InitialBackoffMs = defaults.Retry.InitialBackoffMs
		}
		if config.Retry.MaxBackoffMs == 0 {
			config.Retry.MaxBackoffMs = defaults.Retry.MaxBackoffMs
		}
		if config.JobsDir == "" {
			config.JobsDir = defaults.JobsDir
		}
		if config.Chunker.ManifestPath == "" {
			config.Chunker.ManifestPath = defaults.Chunker.ManifestPath
		}
	}

	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	if err := models.ValidateJobsDir(config.JobsDir); err != nil {
		if os.IsNotExist(err) {
			if createErr := os.MkdirAll(config.JobsDir, 0755); createErr != nil {
				return nil, fmt.Errorf("failed to create jobs directory: %w", createErr)
			}
		} else {
			return nil, err
		}
	}

	return &config, nil
}

// GetConfigFilePath returns the path to the config file that was loaded.
func GetConfigFilePath() string {
	return viper.ConfigFileUsed()
}

// SetConfigValue allows runtime override of config values.
func SetConfigValue(key string, value any) {
	viper.Set(key, value)
}
