package imageencoder

import (
	"encoding/base64"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestEncodeFileRoundTrip(t *testing.T) {
	payload := []byte{0x89, 0x50, 0x4e, 0x47, 0x0d, 0x0a, 0x1a, 0x0a, 0x00, 0x01, 0x02}

	for ext, mime := range mimeTypes {
		path := filepath.Join(t.TempDir(), "img"+ext)
		if err := os.WriteFile(path, payload, 0644); err != nil {
			t.Fatalf("cannot write fixture: %v", err)
		}

		uri, err := EncodeFile(path)
		if err != nil {
			t.Fatalf("EncodeFile(%s) failed: %v", ext, err)
		}

		prefix := "data:" + mime + ";base64,"
		if !strings.HasPrefix(uri, prefix) {
			t.Fatalf("expected prefix %q, got %q", prefix, uri)
		}

		decoded, err := base64.StdEncoding.DecodeString(strings.TrimPrefix(uri, prefix))
		if err != nil {
			t.Fatalf("payload is not valid base64: %v", err)
		}
		if string(decoded) != string(payload) {
			t.Fatalf("round trip mismatch for %s: got %v", ext, decoded)
		}
	}
}

func TestEncodeFileZeroByteFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "empty.png")
	if err := os.WriteFile(path, nil, 0644); err != nil {
		t.Fatalf("cannot write fixture: %v", err)
	}

	uri, err := EncodeFile(path)
	if err != nil {
		t.Fatalf("expected empty payload, got error: %v", err)
	}
	if uri != "data:image/png;base64," {
		t.Fatalf("expected empty payload data URI, got %q", uri)
	}
}

func TestEncodeFileUnsupportedExtension(t *testing.T) {
	path := filepath.Join(t.TempDir(), "notes.txt")
	if err := os.WriteFile(path, []byte("text"), 0644); err != nil {
		t.Fatalf("cannot write fixture: %v", err)
	}

	_, err := EncodeFile(path)
	if !errors.Is(err, ErrUnsupportedFormat) {
		t.Fatalf("expected ErrUnsupportedFormat, got %v", err)
	}
}

func TestEncodeFileMissingFile(t *testing.T) {
	_, err := EncodeFile(filepath.Join(t.TempDir(), "missing.png"))
	if err == nil {
		t.Fatal("expected error for missing file")
	}
	if errors.Is(err, ErrUnsupportedFormat) {
		t.Fatalf("missing file must not be classified as unsupported, got %v", err)
	}
}

func TestIsSupportedImageCaseInsensitive(t *testing.T) {
	cases := map[string]bool{
		"photo.PNG":    true,
		"photo.Jpeg":   true,
		"diagram.SVG":  true,
		"archive.tar":  false,
		"noextension":  false,
		"trailing.":    false,
		"anim.webp":    true,
		"legacy.BMP":   true,
		"favicon.ico":  true,
		"scan.TIFF":    true,
		"unknown.heic": false,
	}

	for path, want := range cases {
		if got := IsSupportedImage(path); got != want {
			t.Fatalf("IsSupportedImage(%q) = %v, want %v", path, got, want)
		}
	}
}

func TestMimeTypeMapping(t *testing.T) {
	cases := map[string]string{
		"a.jpg":  "image/jpeg",
		"a.jpeg": "image/jpeg",
		"a.svg":  "image/svg+xml",
		"a.ico":  "image/x-icon",
		"a.tif":  "image/tiff",
	}

	for path, want := range cases {
		mime, ok := MimeType(path)
		if !ok {
			t.Fatalf("MimeType(%q) reported unsupported", path)
		}
		if mime != want {
			t.Fatalf("MimeType(%q) = %q, want %q", path, mime, want)
		}
	}

	if _, ok := MimeType("a.exe"); ok {
		t.Fatal("MimeType must reject unsupported extensions")
	}
}
