// =============================================================================
// Cart Parser - Processor Module
// =============================================================================
//
// This module runs the whole pipeline for a single cart file, from loading the
// source text to writing the cart document.
//
// PROCESSING PIPELINE:
//   1. Load the source text (CSV/text or XLSX workbook)
//   2. Validate the text; on errors write an error log and stop
//   3. Parse the records and aggregate the total
//   4. Encode the cart document (JSON or XML)
//   5. Write the output file
//   6. Archive the input file (optional)
//
// CONCURRENCY:
//   A Processor holds no per-file state, so one instance can serve several
//   goroutines at once.
//
// =============================================================================

package processor

import (
	"fmt"
	"time"

	"github.com/ginjaninja78/cart-parser/internal/cartparser"
	"github.com/ginjaninja78/cart-parser/internal/config"
	"github.com/ginjaninja78/cart-parser/internal/report"
	"github.com/ginjaninja78/cart-parser/internal/types"
	"github.com/ginjaninja78/cart-parser/internal/validation"
	"github.com/ginjaninja78/cart-parser/pkg/utils"
)

// =============================================================================
// RESULT STRUCTURE
// =============================================================================

// Result represents the outcome of processing a single file.
type Result struct {
	// FilePath is the path to the input file that was processed.
	FilePath string

	// OutputFile is the path to the generated document.
	// This is empty if processing failed or ran dry.
	OutputFile string

	// ErrorLog is the path to the validation error log, if one was written.
	ErrorLog string

	// ArchivePath is where the input file was moved, if archiving is enabled.
	ArchivePath string

	// Success indicates whether the processing was successful.
	Success bool

	// Error contains the error if processing failed.
	Error error

	// Cart is the parsed cart on success.
	Cart *types.Cart

	// Stats contains processing statistics.
	Stats ProcessingStats
}

// ProcessingStats contains statistics about the processing.
type ProcessingStats struct {
	// Items is the number of parsed cart records.
	Items int

	// Total is the aggregated cart total.
	Total float64

	// ValidationErrors is the number of validation errors encountered.
	ValidationErrors int

	// ProcessingTime is the time taken to process the file.
	ProcessingTime time.Duration
}

// =============================================================================
// PROCESSOR STRUCTURE
// =============================================================================

// Logger is the logging surface the processor needs. *slog.Logger satisfies it.
type Logger interface {
	Debug(msg string, args ...any)
	Info(msg string, args ...any)
	Warn(msg string, args ...any)
	Error(msg string, args ...any)
}

// Processor handles the conversion of single cart files.
type Processor struct {
	cfg    *config.Config
	loader cartparser.Loader
	parser *cartparser.Parser
	files  *utils.FileManager
	format report.Format
	logger Logger

	// DryRun skips writing outputs, error logs and archives.
	DryRun bool
}

// =============================================================================
// CONSTRUCTOR
// =============================================================================

// New creates a new Processor.
//
// PARAMETERS:
//   - cfg: The application configuration.
//   - loader: The source loader shared with the cart parser.
//   - files: The file manager for outputs, logs and archives.
//   - logger: The logger.
//   - opts: Options passed to the cart parser (e.g. a custom ID generator).
//
// RETURNS:
//   - A new Processor.
//   - An error if the configured output format is unknown.
func New(cfg *config.Config, loader cartparser.Loader, files *utils.FileManager, logger Logger, opts ...cartparser.Option) (*Processor, error) {
	format, err := report.ParseFormat(cfg.OutputFormat)
	if err != nil {
		return nil, err
	}

	return &Processor{
		cfg:    cfg,
		loader: loader,
		parser: cartparser.New(loader, opts...),
		files:  files,
		format: format,
		logger: logger,
	}, nil
}

// =============================================================================
// MAIN PROCESSING FUNCTION
// =============================================================================

// Run executes the pipeline for the file at path.
func (p *Processor) Run(path string) (result Result) {
	startTime := time.Now()
	result.FilePath = path

	defer func() {
		result.Stats.ProcessingTime = time.Since(startTime)
	}()

	p.logger.Info("processing file", "file", path)

	// =========================================================================
	// STEP 1: LOAD SOURCE
	// =========================================================================

	text, err := p.loader.Load(path)
	if err != nil {
		result.Error = fmt.Errorf("failed to load cart source: %w", err)
		return result
	}

	// =========================================================================
	// STEP 2: VALIDATE
	// =========================================================================
	// The parser validates again on its own; validating here first is what
	// gives us the per-error detail for the log.

	errs := validation.Validate(text)
	result.Stats.ValidationErrors = len(errs)

	if len(errs) > 0 {
		for _, ve := range errs {
			p.logger.Warn("validation error",
				"file", path,
				"type", string(ve.Kind),
				"row", ve.Row,
				"column", ve.Column,
				"message", ve.Message,
			)
		}

		if !p.DryRun {
			logPath, logErr := utils.WriteErrorLog(path, toLogEntries(errs), p.cfg.ErrorLogDir)
			if logErr != nil {
				p.logger.Error("failed to write error log", "file", path, "error", logErr)
			}
			result.ErrorLog = logPath
		}

		result.Error = fmt.Errorf("%d error(s): %w", len(errs), cartparser.ErrValidationFailed)
		return result
	}

	// =========================================================================
	// STEP 3: PARSE AND AGGREGATE
	// =========================================================================

	cart, err := p.parser.ParseText(text)
	if err != nil {
		result.Error = fmt.Errorf("failed to parse cart: %w", err)
		return result
	}

	result.Cart = cart
	result.Stats.Items = len(cart.Items)
	result.Stats.Total = cart.Total
	p.logger.Debug("parsed cart", "file", path, "items", len(cart.Items), "total", cart.Total)

	if p.DryRun {
		result.Success = true
		return result
	}

	// =========================================================================
	// STEP 4: ENCODE AND WRITE OUTPUT
	// =========================================================================

	doc, err := report.Encode(cart, p.format)
	if err != nil {
		result.Error = fmt.Errorf("failed to encode cart: %w", err)
		return result
	}

	fileName := utils.GenerateOutputFileName(
		p.cfg.OutputNameFormat,
		map[string]string{"name": utils.BaseName(path)},
		p.format.Extension(),
	)

	outputPath, err := p.files.WriteOutputFile(fileName, doc)
	if err != nil {
		result.Error = fmt.Errorf("failed to write output: %w", err)
		return result
	}

	result.OutputFile = outputPath
	p.logger.Info("wrote output", "file", path, "output", outputPath)

	// =========================================================================
	// STEP 5: ARCHIVE INPUT
	// =========================================================================

	if p.cfg.ArchiveProcessed {
		archivePath, err := p.files.ArchiveInputFile(path)
		if err != nil {
			// The output is already written; archiving is best effort.
			p.logger.Warn("failed to archive input", "file", path, "error", err)
		} else {
			result.ArchivePath = archivePath
		}
	}

	result.Success = true
	return result
}

// toLogEntries converts validation errors to error log entries.
func toLogEntries(errs []validation.ValidationError) []utils.ErrorLogEntry {
	entries := make([]utils.ErrorLogEntry, len(errs))
	for i, ve := range errs {
		entries[i] = utils.ErrorLogEntry{
			Kind:    string(ve.Kind),
			Row:     ve.Row,
			Column:  ve.Column,
			Message: ve.Message,
		}
	}
	return entries
}
