package types

// MarkdownFile holds one markdown document discovered under the source root
type MarkdownFile struct {
	RelativePath string
	AbsolutePath string
	Content      string
}

// ImageReference holds one parsed image occurrence inside a document.
// ImagePath is the raw string as written in the markdown, including any
// query or fragment suffix; AbsoluteImagePath keeps that suffix too, so
// callers must clean it before touching the filesystem.
type ImageReference struct {
	OriginalMarkdown  string
	ImagePath         string
	AbsoluteImagePath string
	AltText           string
}

// IsRemote reports whether the reference points at a networked URL
// rather than a local file.
func (r ImageReference) IsRemote() bool {
	return r.AbsoluteImagePath == ""
}

// ConversionOutcome holds the result of rewriting a single document
type ConversionOutcome struct {
	Content        string
	ConvertedCount int
	SkippedCount   int
	Warnings       []string
	Errors         []string
}

// AggregateResult holds the run-wide totals and diagnostics
type AggregateResult struct {
	TotalFiles      int      `json:"total_files"`
	ConvertedImages int      `json:"converted_images"`
	SkippedImages   int      `json:"skipped_images"`
	Warnings        []string `json:"warnings"`
	Errors          []string `json:"errors"`
}

// ConvertOptions defines the options for a conversion run
type ConvertOptions struct {
	SourceDir    string
	OutputDir    string
	Overwrite    bool
	MaxWorkers   int
	DbPath       string
	DebugMode    bool
	ShowProgress bool
}

// DocumentRecord is one row of the conversion report database
type DocumentRecord struct {
	ID              int64  `json:"id"`
	RelativePath    string `json:"relative_path"`
	ConvertedImages int    `json:"converted_images"`
	SkippedImages   int    `json:"skipped_images"`
	Status          string `json:"status"`
	ErrorMessage    string `json:"error_message"`
	ConvertedAt     string `json:"converted_at"`
}
