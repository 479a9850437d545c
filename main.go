package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"time"

	"mdinliner/converter"
	"mdinliner/database"
	"mdinliner/logging"
	"mdinliner/preview"
	"mdinliner/signalhandler"
	"mdinliner/types"
	"mdinliner/utils"
	"mdinliner/watcher"
)

func main() {
	// Set up proper signal handling
	signalhandler.SetupHandler()

	// Parse command line arguments into a map
	args := utils.ParseArguments()

	// Get the command (convert, watch or preview)
	command, hasCommand := args["command"]

	// Setup debug logging if enabled
	debugMode := false
	if _, ok := args["debug"]; ok {
		debugMode = true
		logPath := "mdinliner.log"
		if customLogPath, ok := args["logfile"]; ok && customLogPath != "" {
			logPath = customLogPath
		}
		if err := logging.SetupLogger(logPath); err != nil {
			fmt.Printf("Warning: Failed to setup logging: %v\n", err)
		} else {
			fmt.Printf("Debug mode enabled. Logging to: %s\n", logPath)
		}
		defer logging.CloseLogger()
	}

	// Check if required arguments are missing
	showUsage := !hasCommand

	if hasCommand && (command == "convert" || command == "watch") && args["source"] == "" {
		showUsage = true
	}

	if hasCommand && command == "preview" && args["dir"] == "" {
		showUsage = true
	}

	if showUsage {
		utils.PrintUsage()
		os.Exit(1)
	}

	switch command {
	case "convert":
		handleConvertCommand(args, debugMode)
	case "watch":
		handleWatchCommand(args, debugMode)
	case "preview":
		handlePreviewCommand(args)
	default:
		fmt.Printf("Unknown command: %s\n", command)
		utils.PrintUsage()
		os.Exit(1)
	}
}

// buildConvertOptions translates parsed CLI flags into conversion options
func buildConvertOptions(args map[string]string, debugMode bool) types.ConvertOptions {
	options := types.ConvertOptions{
		SourceDir:    args["source"],
		OutputDir:    args["output"],
		DbPath:       args["db"],
		DebugMode:    debugMode,
		MaxWorkers:   1,
		ShowProgress: true,
	}

	if _, ok := args["overwrite"]; ok {
		options.Overwrite = true
	}

	if workersStr, ok := args["workers"]; ok && workersStr != "" {
		if workersStr == "auto" {
			options.MaxWorkers = signalhandler.GetOptimalProcs()
		} else {
			workers, err := utils.ParseWorkers(workersStr)
			if err != nil {
				fmt.Printf("Warning: %v\n", err)
			}
			options.MaxWorkers = workers
		}
	}

	return options
}

// handleConvertCommand runs one conversion and prints the summary
func handleConvertCommand(args map[string]string, debugMode bool) {
	options := buildConvertOptions(args, debugMode)

	// Verify source path exists and is accessible before starting
	sourceInfo, err := os.Stat(options.SourceDir)
	if err != nil {
		if os.IsNotExist(err) {
			log.Fatalf("Source path does not exist: %s", options.SourceDir)
		}
		log.Fatalf("Cannot access source path: %s (%v)", options.SourceDir, err)
	}
	if !sourceInfo.IsDir() {
		log.Fatalf("Source path is not a directory: %s", options.SourceDir)
	}

	startTime := time.Now()

	conv := converter.New(options)
	fmt.Printf("Starting markdown conversion...\n")
	fmt.Printf("Source: %s\n", options.SourceDir)
	fmt.Printf("Output: %s\n", conv.OutputDir())
	fmt.Printf("Overwrite mode: %v\n", options.Overwrite)
	fmt.Printf("Workers: %d\n", options.MaxWorkers)

	result, err := conv.Run()
	if err != nil {
		log.Fatalf("Conversion failed: %v", err)
	}

	printSummary(result, time.Since(startTime))

	// Print report database statistics if a report was recorded
	if options.DbPath != "" {
		printReportStats(options.DbPath)
	}
}

// handleWatchCommand runs an initial conversion, then re-converts whenever
// the source tree changes
func handleWatchCommand(args map[string]string, debugMode bool) {
	options := buildConvertOptions(args, debugMode)

	// Re-runs must be able to reuse the destination
	options.Overwrite = true

	debounce := 500 * time.Millisecond
	if debounceStr, ok := args["debounce"]; ok && debounceStr != "" {
		parsed, err := utils.ParseDebounce(debounceStr)
		if err != nil {
			fmt.Printf("Warning: %v\n", err)
		}
		debounce = parsed
	}

	runOnce := func() {
		startTime := time.Now()
		conv := converter.New(options)
		result, err := conv.Run()
		if err != nil {
			// A fatal condition on a re-run (e.g. source tree removed) ends
			// the watch session.
			log.Fatalf("Conversion failed: %v", err)
		}
		printSummary(result, time.Since(startTime))
	}

	fmt.Printf("Watching %s for changes (debounce: %v)\n", options.SourceDir, debounce)
	runOnce()

	w, err := watcher.New(debounce)
	if err != nil {
		log.Fatalf("Cannot create watcher: %v", err)
	}
	defer w.Stop()

	changes, err := w.Watch(context.Background(), options.SourceDir)
	if err != nil {
		log.Fatalf("Cannot watch %s: %v", options.SourceDir, err)
	}

	for changedPath := range changes {
		fmt.Printf("\nChange detected: %s\n", changedPath)
		runOnce()
	}
}

// handlePreviewCommand serves a converted output tree over HTTP
func handlePreviewCommand(args map[string]string) {
	addr := "localhost:8080"
	if customAddr, ok := args["addr"]; ok && customAddr != "" {
		addr = customAddr
	}

	server, err := preview.NewServer(args["dir"])
	if err != nil {
		log.Fatalf("Cannot start preview: %v", err)
	}

	if err := server.ListenAndServe(addr); err != nil {
		log.Fatalf("Preview server failed: %v", err)
	}
}

// printSummary displays the aggregate result of one conversion run
func printSummary(result *types.AggregateResult, duration time.Duration) {
	fmt.Printf("\nConversion completed!\n")
	fmt.Printf("Total execution time: %v\n", duration)
	fmt.Printf("\nSummary:\n")
	fmt.Printf("- Markdown files processed: %d\n", result.TotalFiles)
	fmt.Printf("- Images converted: %d\n", result.ConvertedImages)
	fmt.Printf("- Images skipped: %d\n", result.SkippedImages)
	fmt.Printf("- Warnings: %d\n", len(result.Warnings))
	fmt.Printf("- Errors: %d\n", len(result.Errors))

	for _, warning := range result.Warnings {
		fmt.Printf("  warning: %s\n", warning)
	}
	for _, errMsg := range result.Errors {
		fmt.Printf("  error: %s\n", errMsg)
	}
}

// printReportStats displays statistics accumulated in the report database
func printReportStats(dbPath string) {
	db, err := database.OpenDatabase(dbPath)
	if err != nil {
		fmt.Printf("Warning: cannot open report database: %v\n", err)
		return
	}
	defer db.Close()

	stats, err := database.GetRunStats(db)
	if err != nil {
		fmt.Printf("Warning: cannot read report statistics: %v\n", err)
		return
	}

	fmt.Printf("\nReport database (%s):\n", dbPath)
	fmt.Printf("- Documents recorded: %d\n", stats.TotalDocuments)
	fmt.Printf("- Converted images: %d\n", stats.ConvertedImages)
	fmt.Printf("- Skipped images: %d\n", stats.SkippedImages)
	fmt.Printf("- Failed documents: %d\n", stats.FailedDocuments)
}
