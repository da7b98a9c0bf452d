// Package reader produces ordered positioned text fragments for a
// document. It is the pipeline's only I/O boundary: a reader either
// yields a complete fragment list or fails, and the downstream stages
// never run on failure. An empty fragment list is a legitimate
// "no extractable text" result, not an error.
package reader

import (
	"context"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/careerstack/resumegest/internal/fragment"
)

// Reader converts raw document bytes into positioned text fragments.
type Reader interface {
	Read(ctx context.Context, r io.Reader, filename string) ([]fragment.TextFragment, error)
}

// SupportedExtensions lists file extensions this service can handle.
var SupportedExtensions = map[string]bool{
	".txt":      true,
	".md":       true,
	".markdown": true,
	".html":     true,
	".htm":      true,
	".pdf":      true,
	".docx":     true,
}

// ForFile returns the appropriate local reader for a filename.
func ForFile(filename string) (Reader, error) {
	ext := strings.ToLower(filepath.Ext(filename))
	switch ext {
	case ".txt":
		return &TextReader{}, nil
	case ".md", ".markdown":
		return &MarkdownReader{}, nil
	case ".html", ".htm":
		return &HTMLReader{}, nil
	case ".pdf":
		return &PDFReader{}, nil
	case ".docx":
		return &DOCXReader{}, nil
	default:
		return nil, fmt.Errorf("unsupported file extension: %s", ext)
	}
}

// IsSupportedExtension checks if a file extension is supported.
func IsSupportedExtension(filename string) bool {
	ext := strings.ToLower(filepath.Ext(filename))
	return SupportedExtensions[ext]
}
