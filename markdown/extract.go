// Package markdown extracts image references from markdown documents and
// rewrites them as inline base64 data URIs.
package markdown

import (
	"path/filepath"
	"regexp"
	"strings"

	"mdinliner/types"
)

var (
	// Matches ![alt](path): alt is anything but ], path anything but )
	imageRefPattern = regexp.MustCompile(`!\[([^\]]*)\]\(([^)]+)\)`)

	// Matches any networked scheme prefix (http://, https://, ftp://, ...)
	remoteSchemePattern = regexp.MustCompile(`^[a-zA-Z][a-zA-Z0-9+.-]*://`)
)

// ExtractImageReferences parses document text for image syntax occurrences
// and returns them in first-occurrence order, duplicates included. Each call
// parses from scratch; there is no shared parser state. Local references are
// resolved against the directory containing the document; remote references
// keep an empty AbsoluteImagePath.
func ExtractImageReferences(content, docAbsPath string) []types.ImageReference {
	matches := imageRefPattern.FindAllStringSubmatch(content, -1)
	if len(matches) == 0 {
		return nil
	}

	docDir := filepath.Dir(docAbsPath)
	refs := make([]types.ImageReference, 0, len(matches))
	for _, m := range matches {
		ref := types.ImageReference{
			OriginalMarkdown: m[0],
			AltText:          m[1],
			ImagePath:        m[2],
		}
		if !IsRemotePath(ref.ImagePath) {
			if filepath.IsAbs(ref.ImagePath) {
				ref.AbsoluteImagePath = ref.ImagePath
			} else {
				ref.AbsoluteImagePath = filepath.Join(docDir, ref.ImagePath)
			}
		}
		refs = append(refs, ref)
	}
	return refs
}

// IsRemotePath checks if an image path points at a networked URL
func IsRemotePath(path string) bool {
	return remoteSchemePattern.MatchString(path)
}

// CleanImagePath strips any query string or fragment suffix from an image
// path. Extracted references keep the suffixed form; callers needing a real
// filesystem path apply this first.
func CleanImagePath(path string) string {
	if i := strings.IndexAny(path, "?#"); i >= 0 {
		return path[:i]
	}
	return path
}
