// Package scanner discovers markdown files under a source root.
package scanner

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"mdinliner/types"
)

// ErrSourceNotFound is returned when the source root is missing or is not
// a directory
var ErrSourceNotFound = errors.New("source directory not found")

// Scan recursively discovers markdown files under sourceRoot and returns
// them with their content and root-relative paths. A missing or non-directory
// root is fatal; per-entry filesystem errors become warnings and the entry
// is skipped. Traversal order is the lexical walk order of the tree.
func Scan(sourceRoot string) ([]types.MarkdownFile, []string, error) {
	info, err := os.Stat(sourceRoot)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil, fmt.Errorf("%w: %s", ErrSourceNotFound, sourceRoot)
		}
		return nil, nil, fmt.Errorf("cannot access source directory %s: %v", sourceRoot, err)
	}
	if !info.IsDir() {
		return nil, nil, fmt.Errorf("%w: %s is not a directory", ErrSourceNotFound, sourceRoot)
	}

	absRoot, err := filepath.Abs(sourceRoot)
	if err != nil {
		return nil, nil, fmt.Errorf("cannot resolve source directory %s: %v", sourceRoot, err)
	}

	var files []types.MarkdownFile
	var warnings []string

	walkErr := filepath.Walk(absRoot, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			warnings = append(warnings, fmt.Sprintf("cannot access %s: %v", path, err))
			return nil
		}
		if info.IsDir() || !IsMarkdownFile(path) {
			return nil
		}

		content, err := os.ReadFile(path)
		if err != nil {
			warnings = append(warnings, fmt.Sprintf("cannot read %s: %v", path, err))
			return nil
		}

		relPath, err := filepath.Rel(absRoot, path)
		if err != nil {
			warnings = append(warnings, fmt.Sprintf("cannot relativize %s: %v", path, err))
			return nil
		}

		files = append(files, types.MarkdownFile{
			RelativePath: relPath,
			AbsolutePath: path,
			Content:      string(content),
		})
		return nil
	})
	if walkErr != nil {
		return nil, warnings, fmt.Errorf("error scanning %s: %v", sourceRoot, walkErr)
	}

	return files, warnings, nil
}

// IsMarkdownFile checks if a file is markdown based on its extension
func IsMarkdownFile(path string) bool {
	ext := strings.ToLower(filepath.Ext(path))
	return ext == ".md" || ext == ".markdown"
}
