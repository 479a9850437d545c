package scanner

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func writeFile(t *testing.T, root, relPath, content string) {
	t.Helper()
	path := filepath.Join(root, relPath)
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		t.Fatalf("cannot create dir: %v", err)
	}
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("cannot write file: %v", err)
	}
}

func TestScanDiscoversMarkdownRecursively(t *testing.T) {
	root := t.TempDir()
	writeFile(t, root, "a.md", "# a")
	writeFile(t, root, "l1/b.markdown", "# b")
	writeFile(t, root, "l1/l2/c.MD", "# c")
	writeFile(t, root, "l1/skip.txt", "nope")
	writeFile(t, root, "img/p.png", "binary")

	files, warnings, err := Scan(root)
	if err != nil {
		t.Fatalf("Scan failed: %v", err)
	}
	if len(warnings) != 0 {
		t.Fatalf("expected no warnings, got %v", warnings)
	}
	if len(files) != 3 {
		t.Fatalf("expected 3 markdown files, got %d", len(files))
	}

	byRel := map[string]string{}
	for _, f := range files {
		byRel[f.RelativePath] = f.Content
		if !filepath.IsAbs(f.AbsolutePath) {
			t.Fatalf("AbsolutePath must be absolute, got %q", f.AbsolutePath)
		}
	}
	if byRel["a.md"] != "# a" {
		t.Fatalf("missing or wrong content for a.md: %q", byRel["a.md"])
	}
	if _, ok := byRel[filepath.Join("l1", "b.markdown")]; !ok {
		t.Fatalf("nested file missing, got %v", byRel)
	}
	if _, ok := byRel[filepath.Join("l1", "l2", "c.MD")]; !ok {
		t.Fatalf("case-insensitive extension missed, got %v", byRel)
	}
}

func TestScanMissingSource(t *testing.T) {
	_, _, err := Scan(filepath.Join(t.TempDir(), "nope"))
	if !errors.Is(err, ErrSourceNotFound) {
		t.Fatalf("expected ErrSourceNotFound, got %v", err)
	}
}

func TestScanSourceIsFile(t *testing.T) {
	root := t.TempDir()
	writeFile(t, root, "file.md", "# x")

	_, _, err := Scan(filepath.Join(root, "file.md"))
	if !errors.Is(err, ErrSourceNotFound) {
		t.Fatalf("expected ErrSourceNotFound for non-directory, got %v", err)
	}
}

func TestScanDeterministicOrder(t *testing.T) {
	root := t.TempDir()
	writeFile(t, root, "z.md", "z")
	writeFile(t, root, "a.md", "a")
	writeFile(t, root, "m/x.md", "x")

	first, _, err := Scan(root)
	if err != nil {
		t.Fatalf("Scan failed: %v", err)
	}
	second, _, err := Scan(root)
	if err != nil {
		t.Fatalf("Scan failed: %v", err)
	}
	if len(first) != len(second) {
		t.Fatalf("scan counts differ: %d vs %d", len(first), len(second))
	}
	for i := range first {
		if first[i].RelativePath != second[i].RelativePath {
			t.Fatalf("order differs at %d: %q vs %q",
				i, first[i].RelativePath, second[i].RelativePath)
		}
	}
}

func TestIsMarkdownFile(t *testing.T) {
	cases := map[string]bool{
		"a.md":       true,
		"a.MD":       true,
		"a.markdown": true,
		"a.MARKDOWN": true,
		"a.mdx":      false,
		"a.txt":      false,
		"md":         false,
	}
	for path, want := range cases {
		if got := IsMarkdownFile(path); got != want {
			t.Fatalf("IsMarkdownFile(%q) = %v, want %v", path, got, want)
		}
	}
}
