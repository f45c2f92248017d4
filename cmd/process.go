// =============================================================================
// Cart Parser - Process Command
// =============================================================================
//
// This file defines the 'process' command, the batch entry point. It runs the
// full pipeline for every cart file in the input directory.
//
// COMMAND USAGE:
//   cartparser process [flags]
//
// FLAGS:
//   --dry-run : Validate and parse without writing outputs, logs or archives
//   --file    : Process a single file instead of scanning the input directory
//
// PROCESSING PIPELINE:
//   1. Load configuration (done by the root command)
//   2. Discover input files in the input directory
//   3. For each file (concurrently, bounded by max_concurrency):
//      a. Load the source text
//      b. Validate it, writing an error log on failure
//      c. Parse the records and aggregate the total
//      d. Write the cart document
//      e. Archive the input file (optional)
//   4. Generate summary report
//
// =============================================================================

package cmd

import (
	"fmt"
	"path/filepath"
	"sort"
	"sync"
	"sync/atomic"
	"time"

	"github.com/ginjaninja78/cart-parser/internal/processor"
	"github.com/ginjaninja78/cart-parser/internal/source"
	"github.com/ginjaninja78/cart-parser/pkg/utils"
	"github.com/spf13/cobra"
)

// =============================================================================
// COMMAND FLAGS
// =============================================================================

// dryRun simulates processing without writing output files.
var dryRun bool

// filePath is the path to a specific file to process.
var filePath string

// =============================================================================
// PROCESS COMMAND DEFINITION
// =============================================================================

// processCmd represents the 'process' command.
var processCmd = &cobra.Command{
	Use:   "process",
	Short: "Process cart files and write cart documents",
	Long: `The process command scans the input directory for cart files (CSV, text
and XLSX), validates each one and writes a JSON or XML cart document for every
valid file.

Processing is done concurrently. Each file is processed independently; with
continue_on_error disabled, no new files are started after the first failure.

On successful processing:
  - The cart document is placed in the output directory
  - The original file is moved to the input archive (archive_processed)

On error:
  - An error log is created in the error log directory
  - The original file remains in the input directory

A summary report is written to the output directory after every run.`,

	RunE: func(cmd *cobra.Command, args []string) error {
		return runProcess(cmd)
	},
}

func init() {
	rootCmd.AddCommand(processCmd)

	processCmd.Flags().BoolVar(
		&dryRun,
		"dry-run",
		false,
		"Validate and parse without writing any files",
	)

	processCmd.Flags().StringVar(
		&filePath,
		"file",
		"",
		"Path to a single file to process",
	)
}

// =============================================================================
// MAIN PROCESSING FUNCTION
// =============================================================================

// runProcess orchestrates the batch pipeline.
func runProcess(cmd *cobra.Command) error {
	startTime := time.Now()
	out := cmd.OutOrStdout()
	cfg := appConfig

	files := utils.NewFileManager(cfg.InputDir, cfg.OutputDir, cfg.InputArchiveDir, cfg.ErrorLogDir)
	files.UseTimestampSubdirs = cfg.ArchiveTimestampSubdirs
	if !dryRun {
		if err := files.EnsureDirectories(); err != nil {
			return err
		}
	}

	proc, err := processor.New(cfg, source.NewFileLoader(cfg.Sheet), files, logger)
	if err != nil {
		return err
	}
	proc.DryRun = dryRun

	// =========================================================================
	// STEP 1: DISCOVER INPUT FILES
	// =========================================================================

	var inputFiles []string
	if filePath != "" {
		inputFiles = []string{filePath}
	} else {
		inputFiles, err = files.DiscoverInputFiles()
		if err != nil {
			return fmt.Errorf("failed to discover input files: %w", err)
		}
	}

	if len(inputFiles) == 0 {
		fmt.Fprintln(out, "No cart files found in the input directory.")
		return nil
	}

	logger.Info("starting run", "files", len(inputFiles), "dry_run", dryRun, "max_concurrency", cfg.MaxConcurrency)

	// =========================================================================
	// STEP 2: PROCESS FILES CONCURRENTLY
	// =========================================================================

	results := processFiles(proc, inputFiles, cfg.MaxConcurrency, cfg.ShouldContinueOnError())

	// =========================================================================
	// STEP 3: COLLECT RESULTS AND GENERATE SUMMARY
	// =========================================================================

	summary := utils.ProcessingSummary{
		StartTime:  startTime,
		TotalFiles: len(inputFiles),
	}

	for _, result := range results {
		name := filepath.Base(result.FilePath)
		summary.ValidationErrors += result.Stats.ValidationErrors

		if result.Success {
			summary.SuccessfulFiles++
			summary.TotalItems += result.Stats.Items
			summary.GrandTotal += result.Stats.Total
			summary.ProcessedFiles = append(summary.ProcessedFiles, utils.ProcessedFileInfo{
				InputFile:   result.FilePath,
				OutputFile:  result.OutputFile,
				Items:       result.Stats.Items,
				Total:       result.Stats.Total,
				ProcessTime: result.Stats.ProcessingTime,
			})
			fmt.Fprintf(out, "  ✓ %s -> %s\n", name, displayOutput(result))
			continue
		}

		summary.FailedFiles++
		summary.FailedFilesList = append(summary.FailedFilesList, utils.FailedFileInfo{
			InputFile:    result.FilePath,
			ErrorMessage: result.Error.Error(),
			ErrorLog:     result.ErrorLog,
		})
		fmt.Fprintf(out, "  ✗ %s: %v\n", name, result.Error)
	}

	summary.EndTime = time.Now()
	skipped := len(inputFiles) - len(results)

	fmt.Fprintln(out, "\n=== Processing Complete ===")
	fmt.Fprintf(out, "Total files:     %d\n", summary.TotalFiles)
	fmt.Fprintf(out, "Successful:      %d\n", summary.SuccessfulFiles)
	fmt.Fprintf(out, "Errors:          %d\n", summary.FailedFiles)
	if skipped > 0 {
		fmt.Fprintf(out, "Skipped:         %d\n", skipped)
	}
	fmt.Fprintf(out, "Time elapsed:    %s\n", summary.EndTime.Sub(startTime))

	if !dryRun {
		summaryPath, err := utils.WriteSummaryLog(summary, cfg.OutputDir)
		if err != nil {
			logger.Error("failed to write summary", "error", err)
		} else {
			logger.Info("wrote summary", "path", summaryPath)
		}
	}

	if summary.FailedFiles > 0 {
		return fmt.Errorf("%d of %d file(s) failed", summary.FailedFiles, summary.TotalFiles)
	}
	return nil
}

// processFiles runs the processor over paths with at most workers files in
// flight. When continueOnError is false no new file is started after the
// first failure. Results are returned in input order.
func processFiles(proc *processor.Processor, paths []string, workers int, continueOnError bool) []processor.Result {
	if workers < 1 {
		workers = 1
	}

	var (
		wg      sync.WaitGroup
		mu      sync.Mutex
		failed  atomic.Bool
		sem     = make(chan struct{}, workers)
		indexed = make(map[int]processor.Result, len(paths))
	)

	for i, path := range paths {
		sem <- struct{}{}
		if !continueOnError && failed.Load() {
			<-sem
			break
		}

		wg.Add(1)
		go func(i int, path string) {
			defer wg.Done()
			defer func() { <-sem }()

			result := proc.Run(path)
			if !result.Success {
				failed.Store(true)
			}

			mu.Lock()
			indexed[i] = result
			mu.Unlock()
		}(i, path)
	}

	wg.Wait()

	order := make([]int, 0, len(indexed))
	for i := range indexed {
		order = append(order, i)
	}
	sort.Ints(order)

	results := make([]processor.Result, 0, len(order))
	for _, i := range order {
		results = append(results, indexed[i])
	}
	return results
}

// displayOutput names what a successful run produced.
func displayOutput(result processor.Result) string {
	if result.OutputFile == "" {
		return fmt.Sprintf("%d item(s), total %.2f (dry run)", result.Stats.Items, result.Stats.Total)
	}
	return result.OutputFile
}
