package imageencoder

import (
	"encoding/base64"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// ErrUnsupportedFormat is returned when a file extension is not in the
// supported image set
var ErrUnsupportedFormat = errors.New("unsupported image format")

// Map of extensions to MIME types
var mimeTypes = map[string]string{
	".jpg":  "image/jpeg",
	".jpeg": "image/jpeg",
	".png":  "image/png",
	".gif":  "image/gif",
	".svg":  "image/svg+xml",
	".webp": "image/webp",
	".bmp":  "image/bmp",
	".tif":  "image/tiff",
	".tiff": "image/tiff",
	".ico":  "image/x-icon",
}

// IsSupportedImage checks if a file is a supported image based on extension
func IsSupportedImage(path string) bool {
	_, supported := mimeTypes[normalizeExt(path)]
	return supported
}

// MimeType returns the MIME type for a file based on its extension
func MimeType(path string) (string, bool) {
	mime, supported := mimeTypes[normalizeExt(path)]
	return mime, supported
}

// SupportedExtensions returns all supported image file extensions
func SupportedExtensions() []string {
	extensions := make([]string, 0, len(mimeTypes))
	for ext := range mimeTypes {
		extensions = append(extensions, ext)
	}
	return extensions
}

// EncodeFile reads an image file and returns it as a base64 data URI.
// The file content is never inspected; a supported extension is enough.
// A zero-byte file encodes to a data URI with an empty payload.
func EncodeFile(path string) (string, error) {
	mime, supported := MimeType(path)
	if !supported {
		return "", fmt.Errorf("%w: %s", ErrUnsupportedFormat, filepath.Ext(path))
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("cannot read image %s: %w", path, err)
	}

	return EncodeBytes(data, mime), nil
}

// EncodeBytes builds a data URI from raw bytes and a MIME type
func EncodeBytes(data []byte, mime string) string {
	return "data:" + mime + ";base64," + base64.StdEncoding.EncodeToString(data)
}

// normalizeExt returns the lowercase extension of a path
func normalizeExt(path string) string {
	return strings.ToLower(filepath.Ext(path))
}
