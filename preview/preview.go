// Package preview serves a converted output tree over HTTP, rendering each
// markdown document to HTML for inspection in a browser.
package preview

import (
	"bytes"
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	goldmarkhtml "github.com/yuin/goldmark/renderer/html"

	"mdinliner/scanner"
)

const pageShell = `<!DOCTYPE html>
<html>
<head>
<meta charset="utf-8">
<title>%s</title>
<style>
body { max-width: 52rem; margin: 2rem auto; padding: 0 1rem; font-family: sans-serif; line-height: 1.5; }
img { max-width: 100%%; }
pre { background: #f4f4f4; padding: 0.75rem; overflow-x: auto; }
</style>
</head>
<body>
%s
</body>
</html>`

// Server renders markdown files under a converted output root
type Server struct {
	root     string
	markdown goldmark.Markdown
}

// NewServer creates a preview server over the given output root
func NewServer(root string) (*Server, error) {
	absRoot, err := filepath.Abs(root)
	if err != nil {
		return nil, fmt.Errorf("cannot resolve preview directory %s: %v", root, err)
	}
	info, err := os.Stat(absRoot)
	if err != nil {
		return nil, fmt.Errorf("cannot access preview directory %s: %v", root, err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("preview path is not a directory: %s", root)
	}

	md := goldmark.New(
		goldmark.WithExtensions(extension.GFM),
		goldmark.WithRendererOptions(goldmarkhtml.WithUnsafe()),
	)

	return &Server{root: absRoot, markdown: md}, nil
}

// ListenAndServe runs the preview server at addr until it fails
func (s *Server) ListenAndServe(addr string) error {
	mux := http.NewServeMux()
	mux.HandleFunc("/", s.handle)

	fmt.Printf("Preview server listening on http://%s\n", addr)
	return http.ListenAndServe(addr, mux)
}

// handle serves one request: directories get an index of their markdown
// content, markdown files render to HTML, anything else is not found
// (converted trees contain nothing but markdown).
func (s *Server) handle(w http.ResponseWriter, r *http.Request) {
	relPath := strings.TrimPrefix(filepath.Clean("/"+r.URL.Path), "/")
	target := filepath.Join(s.root, relPath)

	// Join above cannot escape the root after the Clean, but a symlinked
	// entry still could; resolve and re-check.
	if resolved, err := filepath.EvalSymlinks(target); err == nil {
		if resolved != s.root && !strings.HasPrefix(resolved, s.root+string(filepath.Separator)) {
			http.NotFound(w, r)
			return
		}
	}

	info, err := os.Stat(target)
	if err != nil {
		http.NotFound(w, r)
		return
	}

	if info.IsDir() {
		s.serveIndex(w, relPath, target)
		return
	}
	if !scanner.IsMarkdownFile(target) {
		http.NotFound(w, r)
		return
	}
	s.serveDocument(w, relPath, target)
}

// serveIndex lists the subdirectories and markdown files of a directory
func (s *Server) serveIndex(w http.ResponseWriter, relPath, dir string) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		http.Error(w, fmt.Sprintf("cannot list %s: %v", relPath, err), http.StatusInternalServerError)
		return
	}

	var names []string
	for _, entry := range entries {
		if entry.IsDir() || scanner.IsMarkdownFile(entry.Name()) {
			name := entry.Name()
			if entry.IsDir() {
				name += "/"
			}
			names = append(names, name)
		}
	}
	sort.Strings(names)

	var body bytes.Buffer
	fmt.Fprintf(&body, "<h1>/%s</h1>\n<ul>\n", relPath)
	if relPath != "" && relPath != "." {
		fmt.Fprintf(&body, `<li><a href="../">..</a></li>`+"\n")
	}
	for _, name := range names {
		fmt.Fprintf(&body, `<li><a href="%s">%s</a></li>`+"\n", name, name)
	}
	body.WriteString("</ul>\n")

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	fmt.Fprintf(w, pageShell, "/"+relPath, body.String())
}

// serveDocument renders one markdown file to HTML
func (s *Server) serveDocument(w http.ResponseWriter, relPath, path string) {
	content, err := os.ReadFile(path)
	if err != nil {
		http.Error(w, fmt.Sprintf("cannot read %s: %v", relPath, err), http.StatusInternalServerError)
		return
	}

	var rendered bytes.Buffer
	if err := s.markdown.Convert(content, &rendered); err != nil {
		http.Error(w, fmt.Sprintf("cannot render %s: %v", relPath, err), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	fmt.Fprintf(w, pageShell, relPath, rendered.String())
}
