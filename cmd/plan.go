package cmd

import (
	"context"
	"fmt"
	"os"
	"sort"
	"sync"

	"github.com/spf13/cobra"

	"github.com/chunksplit/chunksplit/internal/lib"
	"github.com/chunksplit/chunksplit/internal/models"
	"github.com/chunksplit/chunksplit/internal/pipeline"
	"github.com/chunksplit/chunksplit/internal/services"
	"github.com/chunksplit/chunksplit/internal/ui"
)

var planCmd = &cobra.Command{
	Use:   "plan",
	Short: "Create and inspect chunk-partitioning plan jobs",
}

var planRunCmd = &cobra.Command{
	Use:   "run <manifest>",
	Short: "Partition a manifest of units into chunks",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		manifestPath := args[0]

		config, err := services.LoadConfig(cfgFile)
		if err != nil {
			return err
		}
		if manifestPath != "" {
			config.Chunker.ManifestPath = manifestPath
		}
		if err := lib.ValidateManifestPath(config.Chunker.ManifestPath); err != nil {
			return err
		}

		logLevel := lib.LogLevelInfo
		if verbose {
			logLevel = lib.LogLevelDebug
		}
		logger := lib.NewLogger(logLevel)

		job, err := pipeline.CreateJob(config.Chunker.ManifestPath, *config)
		if err != nil {
			return err
		}

		// Pre-read the manifest once to size the progress bar; RunPartition
		// loads it again for the actual resolution pass.
		_, _, totalUnits, err := services.LoadManifest(config.Chunker.ManifestPath)
		if err != nil {
			return err
		}

		bar := ui.NewProgressBar(int64(totalUnits), fmt.Sprintf("Partitioning %s", config.Chunker.ManifestPath))
		eta := ui.NewETACalculator()
		throughput := ui.NewThroughputCalculator()

		var progressMu sync.Mutex
		var resolved int64
		onUnitResolved := func() {
			progressMu.Lock()
			defer progressMu.Unlock()
			resolved++
			_ = bar.Add(1)
			eta.RecordProgress(resolved)
			throughput.Update(resolved, 0)
			if remaining, ok := eta.CalculateETA(int64(totalUnits), resolved); ok {
				fmt.Fprintf(os.Stderr, "\r%d/%d units resolved, eta %s   ", resolved, totalUnits, ui.FormatETA(remaining))
			}
		}

		spinner := ui.NewSpinner(fmt.Sprintf("Acquiring lock for job %s", job.JobID))
		spinner.Start()

		var completed *models.PlanJob
		lockErr := services.WithJobLock(config.JobsDir, job.JobID, logger, func() error {
			spinner.Stop(true)
			completed, err = pipeline.RunPartition(context.Background(), job, logger, onUnitResolved)
			return err
		})

		_ = bar.Finish()

		if lockErr != nil {
			if spinner.IsActive() {
				spinner.Stop(false)
			}
			return lockErr
		}

		fmt.Printf("Throughput: %s over %s\n",
			ui.FormatItemsPerSecond(throughput.GetAverageItemsPerSecond()),
			ui.FormatDuration(throughput.GetElapsedTime()))
		fmt.Print(pipeline.GetJobSummary(completed))
		return nil
	},
}

var planStatusCmd = &cobra.Command{
	Use:   "status <job-id>",
	Short: "Show the status of a plan job",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		config, err := services.LoadConfig(cfgFile)
		if err != nil {
			return err
		}

		job, err := pipeline.LoadJob(config.JobsDir, args[0], config.Retry)
		if err != nil {
			return err
		}

		fmt.Print(pipeline.GetJobSummary(job))
		return nil
	},
}

var planListCmd = &cobra.Command{
	Use:   "list",
	Short: "List all plan jobs",
	RunE: func(cmd *cobra.Command, args []string) error {
		config, err := services.LoadConfig(cfgFile)
		if err != nil {
			return err
		}

		jobIDs, err := services.ListAllJobs(config.JobsDir)
		if err != nil {
			return err
		}
		sort.Strings(jobIDs)

		if len(jobIDs) == 0 {
			fmt.Println("No jobs found.")
			return nil
		}

		for _, jobID := range jobIDs {
			job, err := pipeline.LoadJob(config.JobsDir, jobID, config.Retry)
			if err != nil {
				fmt.Fprintf(os.Stderr, "warning: failed to load job %s: %v\n", jobID, err)
				continue
			}
			fmt.Printf("%s  %-12s  units=%-6d chunks=%-6d\n", job.JobID, job.Status, job.TotalUnits, job.TotalChunks)
		}
		return nil
	},
}

func init() {
	planCmd.AddCommand(planRunCmd, planStatusCmd, planListCmd)
	rootCmd.AddCommand(planCmd)
}
