package utils

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

// Known subcommands
var commands = []string{"convert", "watch", "preview"}

// ParseArguments converts command-line arguments into a map of flags and values
func ParseArguments() map[string]string {
	args := make(map[string]string)

	// First, identify the command (convert/watch/preview)
	command := ""
	commandIndex := -1
	for i := 1; i < len(os.Args); i++ {
		for _, known := range commands {
			if os.Args[i] == known {
				command = os.Args[i]
				commandIndex = i
				break
			}
		}
		if command != "" {
			break
		}
	}

	if command != "" {
		args["command"] = command
	}

	// Process all arguments, skipping the command
	for i := 1; i < len(os.Args); i++ {
		if i == commandIndex {
			continue
		}

		arg := os.Args[i]

		// Handle flags with equals sign (--key=value)
		if strings.HasPrefix(arg, "--") && strings.Contains(arg, "=") {
			parts := strings.SplitN(arg, "=", 2)
			flagName := strings.TrimPrefix(parts[0], "--")
			args[flagName] = parts[1]
			continue
		}

		// Handle flags without equals sign (--key value)
		if strings.HasPrefix(arg, "--") {
			flagName := strings.TrimPrefix(arg, "--")

			// Check if this is a boolean flag (no value)
			if i+1 >= len(os.Args) || strings.HasPrefix(os.Args[i+1], "--") {
				args[flagName] = "true"
			} else {
				args[flagName] = os.Args[i+1]
				i++ // Skip the value in the next iteration
			}
		}
	}

	return args
}

// PrintUsage outputs the command-line usage instructions
func PrintUsage() {
	fmt.Printf("Usage:\n")
	fmt.Printf("  %s convert --source=PATH [--output=PATH] [--overwrite] [--workers=N] [--db=PATH] [--debug] [--logfile=PATH]\n", os.Args[0])
	fmt.Printf("  %s watch --source=PATH [--output=PATH] [--workers=N] [--debounce=MS] [--db=PATH] [--debug] [--logfile=PATH]\n", os.Args[0])
	fmt.Printf("  %s preview --dir=PATH [--addr=HOST:PORT]\n", os.Args[0])
	fmt.Printf("\nParameters:\n")
	fmt.Printf("  --source      : Path to folder containing markdown files to convert\n")
	fmt.Printf("  --output      : Destination folder (default: <source base name>-base64)\n")
	fmt.Printf("  --overwrite   : Clear and reuse the destination folder if it already exists\n")
	fmt.Printf("  --workers     : Number of files converted in parallel (N or 'auto', default: 1)\n")
	fmt.Printf("  --db          : Record per-document results in a sqlite report database\n")
	fmt.Printf("  --debounce    : Watch mode settle time in milliseconds (default: 500)\n")
	fmt.Printf("  --dir         : Converted folder to serve in preview mode\n")
	fmt.Printf("  --addr        : Preview listen address (default: localhost:8080)\n")
	fmt.Printf("  --debug       : Enable debug mode (logs detailed information)\n")
	fmt.Printf("  --logfile     : Specify custom log file path (default: mdinliner.log)\n")
	fmt.Printf("\nExamples:\n")
	fmt.Printf("  %s convert --source=./docs --overwrite --db=report.db\n", os.Args[0])
	fmt.Printf("  %s watch --source=./docs --output=./docs-base64 --debounce=1000\n", os.Args[0])
	fmt.Printf("  %s preview --dir=./docs-base64 --addr=localhost:9000\n", os.Args[0])
}

// ParseWorkers parses and validates the --workers value. The literal "auto"
// is resolved by the caller; this handles explicit counts.
func ParseWorkers(workersStr string) (int, error) {
	workers, err := strconv.Atoi(workersStr)
	if err != nil || workers < 1 {
		return 1, fmt.Errorf("invalid workers value '%s', using default (1)", workersStr)
	}
	return workers, nil
}

// ParseDebounce parses the --debounce value in milliseconds
func ParseDebounce(debounceStr string) (time.Duration, error) {
	ms, err := strconv.Atoi(debounceStr)
	if err != nil || ms < 0 {
		return 500 * time.Millisecond, fmt.Errorf("invalid debounce value '%s', using default (500)", debounceStr)
	}
	return time.Duration(ms) * time.Millisecond, nil
}
