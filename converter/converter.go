// Package converter orchestrates a full conversion run: scan the source
// tree, prepare the destination, rewrite every markdown document and
// aggregate statistics.
package converter

import (
	"database/sql"
	"fmt"
	"path/filepath"
	"sync"
	"time"

	"mdinliner/database"
	"mdinliner/logging"
	"mdinliner/markdown"
	"mdinliner/output"
	"mdinliner/scanner"
	"mdinliner/types"
)

// defaultOutputSuffix is appended to the source base name when no output
// directory is given
const defaultOutputSuffix = "-base64"

// runState tracks where a conversion run currently is
type runState int

const (
	stateIdle runState = iota
	stateScanning
	statePreparingOutput
	stateProcessingFiles
	stateDone
	stateFailed
)

// fileResult holds the result of processing one document
type fileResult struct {
	file    types.MarkdownFile
	outcome types.ConversionOutcome
	err     error
}

// Converter drives conversion runs for a fixed set of options
type Converter struct {
	options types.ConvertOptions
	state   runState
	db      *sql.DB
}

// New creates a converter for the given options
func New(options types.ConvertOptions) *Converter {
	return &Converter{options: options, state: stateIdle}
}

// OutputDir returns the effective destination root: the configured output
// directory, or the source root's base name with the default suffix
func (c *Converter) OutputDir() string {
	if c.options.OutputDir != "" {
		return c.options.OutputDir
	}
	return filepath.Base(filepath.Clean(c.options.SourceDir)) + defaultOutputSuffix
}

// Run executes one conversion. A missing source or a destination conflict
// aborts before any file is processed; once file processing starts, every
// failure is file-scoped and the run continues to the next document.
func (c *Converter) Run() (*types.AggregateResult, error) {
	result := &types.AggregateResult{}

	c.state = stateScanning
	files, scanWarnings, err := scanner.Scan(c.options.SourceDir)
	if err != nil {
		c.state = stateFailed
		return nil, err
	}
	result.TotalFiles = len(files)
	result.Warnings = append(result.Warnings, scanWarnings...)

	c.state = statePreparingOutput
	destRoot := c.OutputDir()
	prepareWarnings, err := output.Prepare(destRoot, c.options.Overwrite)
	if err != nil {
		c.state = stateFailed
		return nil, err
	}
	result.Warnings = append(result.Warnings, prepareWarnings...)

	if c.options.DbPath != "" {
		db, err := database.InitDatabase(c.options.DbPath)
		if err != nil {
			result.Warnings = append(result.Warnings,
				fmt.Sprintf("cannot open report database %s: %v", c.options.DbPath, err))
		} else {
			c.db = db
			defer func() {
				db.Close()
				c.db = nil
			}()
		}
	}

	c.state = stateProcessingFiles
	c.processFiles(files, destRoot, result)

	c.state = stateDone
	return result, nil
}

// processFiles runs the per-document pipeline over a bounded worker pool.
// The destination is fully prepared before this is called, a single
// collector goroutine owns every append to the aggregate, and one file's
// failure never cancels another file's work.
func (c *Converter) processFiles(files []types.MarkdownFile, destRoot string, result *types.AggregateResult) {
	workers := c.options.MaxWorkers
	if workers < 1 {
		workers = 1
	}

	var wg sync.WaitGroup
	resultsChan := make(chan fileResult, 100)
	semaphore := make(chan struct{}, workers)

	var tracker *ProgressTracker
	if c.options.ShowProgress {
		tracker = NewProgressTracker(len(files))
	}

	collectorDone := make(chan struct{})
	go func() {
		defer close(collectorDone)
		for res := range resultsChan {
			c.mergeResult(res, result)
			if tracker != nil {
				tracker.Record(res)
			}
		}
	}()

	for _, file := range files {
		wg.Add(1)
		semaphore <- struct{}{}

		go func(f types.MarkdownFile) {
			defer wg.Done()
			defer func() { <-semaphore }()

			resultsChan <- c.processFile(f, destRoot)
		}(file)
	}

	wg.Wait()
	close(resultsChan)
	<-collectorDone

	if tracker != nil {
		tracker.Stop()
	}
}

// processFile rewrites one document and writes it to the destination
func (c *Converter) processFile(file types.MarkdownFile, destRoot string) fileResult {
	outcome := markdown.Rewrite(file.Content, file.AbsolutePath)

	if err := output.Write(destRoot, file.RelativePath, outcome.Content); err != nil {
		return fileResult{file: file, outcome: outcome, err: err}
	}
	return fileResult{file: file, outcome: outcome}
}

// mergeResult folds one per-document result into the aggregate. A failed
// document contributes only an error entry, never image counts.
func (c *Converter) mergeResult(res fileResult, result *types.AggregateResult) {
	relPath := res.file.RelativePath

	if res.err != nil {
		result.Errors = append(result.Errors, fmt.Sprintf("%s: %v", relPath, res.err))
		logging.LogDocumentProcessed(relPath, 0, 0, res.err.Error())
		c.recordDocument(res, "failed", result)
		return
	}

	outcome := res.outcome
	result.ConvertedImages += outcome.ConvertedCount
	result.SkippedImages += outcome.SkippedCount
	for _, warning := range outcome.Warnings {
		result.Warnings = append(result.Warnings, fmt.Sprintf("%s: %s", relPath, warning))
	}
	for _, errMsg := range outcome.Errors {
		result.Errors = append(result.Errors, fmt.Sprintf("%s: %s", relPath, errMsg))
	}

	logging.LogDocumentProcessed(relPath, outcome.ConvertedCount, outcome.SkippedCount, "")
	c.recordDocument(res, "converted", result)
}

// recordDocument stores one document row in the report database when one
// is attached. Report failures degrade to warnings; the conversion itself
// already succeeded or failed on its own terms.
func (c *Converter) recordDocument(res fileResult, status string, result *types.AggregateResult) {
	if c.db == nil {
		return
	}

	record := types.DocumentRecord{
		RelativePath:    res.file.RelativePath,
		ConvertedImages: res.outcome.ConvertedCount,
		SkippedImages:   res.outcome.SkippedCount,
		Status:          status,
		ConvertedAt:     time.Now().Format(time.RFC3339),
	}
	if res.err != nil {
		record.ErrorMessage = res.err.Error()
		record.ConvertedImages = 0
		record.SkippedImages = 0
	}

	if err := database.StoreDocumentRecord(c.db, record); err != nil {
		result.Warnings = append(result.Warnings,
			fmt.Sprintf("cannot record %s in report database: %v", res.file.RelativePath, err))
	}
}
