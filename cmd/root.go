package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var (
	// Global flags
	cfgFile string
	verbose bool
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "chunksplit",
	Short: "chunksplit - recursive chunk-partitioning CLI for bundler output",
	Long: `chunksplit partitions a flat collection of compiled units into output
chunks whose sizes fall within a target band, using kind, app/vendor,
package-name and folder-depth heuristics.

Key Features:
  • File-based state: every run persists status, counts, and errors to
    disk under jobs_dir, inspectable later with "plan status"/"plan list"
  • Automatic retry: job-state reads/writes retry transient filesystem
    errors with exponential backoff; manifest and partitioning failures
    are non-transient and are surfaced immediately instead
  • Live progress: a progress bar and ETA over units resolved, plus a
    post-run throughput and duration summary

Quick Start:
  1. Create configuration:
       cp config/chunksplit.example.yaml chunksplit.yaml

  2. Run a manifest through the partitioner:
       chunksplit plan run ./manifest.json

  3. Check status:
       chunksplit plan status <job-id>

  4. List all jobs:
       chunksplit plan list

Configuration:
  The CLI looks for configuration in the following order:
    1. --config flag
    2. ./chunksplit.yaml (current directory)
    3. ~/.config/chunksplit/chunksplit.yaml (user config directory)
`,
	Version: "1.0.0",
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	err := rootCmd.Execute()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func init() {
	// Persistent flags (available to all subcommands)
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default: ./chunksplit.yaml, ~/.config/chunksplit/chunksplit.yaml)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable verbose logging")

	// Add version template
	rootCmd.SetVersionTemplate("chunksplit version {{.Version}}\n")
}
