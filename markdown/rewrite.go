package markdown

import (
	"fmt"
	"strings"

	"mdinliner/imageencoder"
	"mdinliner/types"
)

// Rewrite replaces every convertible local image reference in a document
// with a base64 data URI and reports per-document statistics. Remote,
// unsupported and unreadable references are skipped with a warning; the
// original text of a skipped occurrence is left untouched. One bad
// reference never aborts the rest of the document.
func Rewrite(content, docAbsPath string) types.ConversionOutcome {
	outcome := types.ConversionOutcome{Content: content}
	refs := ExtractImageReferences(content, docAbsPath)

	// Occurrences are located from a moving offset so duplicate snippets
	// map one-for-one onto their results.
	searchFrom := 0
	for _, ref := range refs {
		idx := indexFrom(outcome.Content, ref.OriginalMarkdown, searchFrom)
		if idx < 0 {
			outcome.SkippedCount++
			outcome.Errors = append(outcome.Errors,
				fmt.Sprintf("cannot locate occurrence %q for substitution", ref.OriginalMarkdown))
			continue
		}

		replacement, warning, err := convertReference(ref)
		switch {
		case err != nil:
			outcome.SkippedCount++
			outcome.Errors = append(outcome.Errors, err.Error())
			searchFrom = idx + len(ref.OriginalMarkdown)
		case replacement == "":
			outcome.SkippedCount++
			outcome.Warnings = append(outcome.Warnings, warning)
			searchFrom = idx + len(ref.OriginalMarkdown)
		default:
			outcome.Content = outcome.Content[:idx] + replacement + outcome.Content[idx+len(ref.OriginalMarkdown):]
			outcome.ConvertedCount++
			searchFrom = idx + len(replacement)
		}
	}

	return outcome
}

// convertReference handles a single occurrence. An empty replacement with a
// warning message means the occurrence is skipped; a non-nil error means
// something unexpected happened while processing it.
func convertReference(ref types.ImageReference) (replacement string, warning string, err error) {
	defer func() {
		if r := recover(); r != nil {
			replacement = ""
			err = fmt.Errorf("unexpected failure processing %s: %v", ref.ImagePath, r)
		}
	}()

	if IsRemotePath(ref.ImagePath) {
		return "", fmt.Sprintf("skipping remote image: %s", ref.ImagePath), nil
	}

	cleanPath := CleanImagePath(ref.AbsoluteImagePath)
	if !imageencoder.IsSupportedImage(cleanPath) {
		return "", fmt.Sprintf("skipping unsupported image format: %s", ref.ImagePath), nil
	}

	dataURI, encodeErr := imageencoder.EncodeFile(cleanPath)
	if encodeErr != nil {
		return "", fmt.Sprintf("cannot inline %s: %v", ref.ImagePath, encodeErr), nil
	}

	return "![" + ref.AltText + "](" + dataURI + ")", "", nil
}

// indexFrom finds the first occurrence of sub in s at or after offset
func indexFrom(s, sub string, offset int) int {
	if offset > len(s) {
		return -1
	}
	idx := strings.Index(s[offset:], sub)
	if idx < 0 {
		return -1
	}
	return offset + idx
}
