// Package output manages the destination tree of a conversion run.
package output

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
)

var (
	// ErrDestinationExists is returned when the destination directory
	// already exists and overwrite was not requested
	ErrDestinationExists = errors.New("destination directory already exists")

	// ErrDestinationNotDirectory is returned when the destination path
	// exists but is not a directory
	ErrDestinationNotDirectory = errors.New("destination path is not a directory")
)

// Prepare makes the destination root ready for writing. A missing root is
// created with any parents. An existing root is fatal unless overwrite is
// set, in which case every immediate entry is removed best-effort: entry
// removal failures become warnings and never abort the clear.
func Prepare(destRoot string, overwrite bool) ([]string, error) {
	info, err := os.Stat(destRoot)
	if err != nil {
		if !os.IsNotExist(err) {
			return nil, fmt.Errorf("cannot access output directory %s: %v", destRoot, err)
		}
		if err := os.MkdirAll(destRoot, 0755); err != nil {
			return nil, fmt.Errorf("cannot create output directory %s: %v", destRoot, err)
		}
		return nil, nil
	}

	if !info.IsDir() {
		return nil, fmt.Errorf("%w: %s", ErrDestinationNotDirectory, destRoot)
	}
	if !overwrite {
		return nil, fmt.Errorf("%w: %s (use --overwrite to clear it)", ErrDestinationExists, destRoot)
	}

	return clearDirectory(destRoot), nil
}

// clearDirectory removes each immediate entry of dir, capturing per-entry
// failures as warnings
func clearDirectory(dir string) []string {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return []string{fmt.Sprintf("cannot list %s for clearing: %v", dir, err)}
	}

	var warnings []string
	for _, entry := range entries {
		entryPath := filepath.Join(dir, entry.Name())
		if err := os.RemoveAll(entryPath); err != nil {
			warnings = append(warnings, fmt.Sprintf("cannot remove %s: %v", entryPath, err))
		}
	}
	return warnings
}

// Write stores a converted document at the destination path mirroring its
// source-relative path, creating intermediate directories as needed
func Write(destRoot, relPath, content string) error {
	target := filepath.Join(destRoot, relPath)
	if err := os.MkdirAll(filepath.Dir(target), 0755); err != nil {
		return fmt.Errorf("cannot create directory for %s: %v", relPath, err)
	}
	if err := os.WriteFile(target, []byte(content), 0644); err != nil {
		return fmt.Errorf("cannot write %s: %v", relPath, err)
	}
	return nil
}
