package output

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func TestPrepareCreatesMissingDestination(t *testing.T) {
	dest := filepath.Join(t.TempDir(), "out", "nested")

	warnings, err := Prepare(dest, false)
	if err != nil {
		t.Fatalf("Prepare failed: %v", err)
	}
	if len(warnings) != 0 {
		t.Fatalf("expected no warnings, got %v", warnings)
	}

	info, err := os.Stat(dest)
	if err != nil || !info.IsDir() {
		t.Fatalf("destination was not created: %v", err)
	}
}

func TestPrepareExistingWithoutOverwrite(t *testing.T) {
	dest := t.TempDir()
	keep := filepath.Join(dest, "keep.txt")
	if err := os.WriteFile(keep, []byte("untouched"), 0644); err != nil {
		t.Fatalf("cannot write fixture: %v", err)
	}

	_, err := Prepare(dest, false)
	if !errors.Is(err, ErrDestinationExists) {
		t.Fatalf("expected ErrDestinationExists, got %v", err)
	}

	// The conflict must leave existing contents unmodified
	content, err := os.ReadFile(keep)
	if err != nil || string(content) != "untouched" {
		t.Fatalf("existing contents were modified: %q %v", content, err)
	}
}

func TestPrepareOverwriteClearsEntries(t *testing.T) {
	dest := t.TempDir()
	if err := os.WriteFile(filepath.Join(dest, "old.md"), []byte("old"), 0644); err != nil {
		t.Fatalf("cannot write fixture: %v", err)
	}
	if err := os.MkdirAll(filepath.Join(dest, "sub", "deep"), 0755); err != nil {
		t.Fatalf("cannot create fixture dir: %v", err)
	}

	warnings, err := Prepare(dest, true)
	if err != nil {
		t.Fatalf("Prepare failed: %v", err)
	}
	if len(warnings) != 0 {
		t.Fatalf("expected no warnings, got %v", warnings)
	}

	entries, err := os.ReadDir(dest)
	if err != nil {
		t.Fatalf("cannot list destination: %v", err)
	}
	if len(entries) != 0 {
		t.Fatalf("destination not cleared, %d entries remain", len(entries))
	}
}

func TestPrepareDestinationIsFile(t *testing.T) {
	dest := filepath.Join(t.TempDir(), "taken")
	if err := os.WriteFile(dest, []byte("x"), 0644); err != nil {
		t.Fatalf("cannot write fixture: %v", err)
	}

	_, err := Prepare(dest, true)
	if !errors.Is(err, ErrDestinationNotDirectory) {
		t.Fatalf("expected ErrDestinationNotDirectory, got %v", err)
	}
}

func TestWriteCreatesIntermediateDirectories(t *testing.T) {
	dest := t.TempDir()
	relPath := filepath.Join("l1", "l2", "doc.md")

	if err := Write(dest, relPath, "# converted"); err != nil {
		t.Fatalf("Write failed: %v", err)
	}

	content, err := os.ReadFile(filepath.Join(dest, relPath))
	if err != nil {
		t.Fatalf("written file missing: %v", err)
	}
	if string(content) != "# converted" {
		t.Fatalf("unexpected content %q", content)
	}
}

func TestWriteReplacesExistingFile(t *testing.T) {
	dest := t.TempDir()
	if err := Write(dest, "doc.md", "first"); err != nil {
		t.Fatalf("Write failed: %v", err)
	}
	if err := Write(dest, "doc.md", "second"); err != nil {
		t.Fatalf("rewrite failed: %v", err)
	}

	content, err := os.ReadFile(filepath.Join(dest, "doc.md"))
	if err != nil || string(content) != "second" {
		t.Fatalf("expected full replacement, got %q %v", content, err)
	}
}
