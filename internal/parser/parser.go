package parser

import (
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/tanmay031/xml2delimiter/internal/doctree"
)

// Parser converts raw document bytes into an element tree.
type Parser interface {
	Parse(r io.Reader, filename string) (*doctree.Document, error)
}

// SupportedExtensions lists source formats this tool can handle.
var SupportedExtensions = map[string]bool{
	".xml":  true,
	".html": true,
	".htm":  true,
	".md":   true,
	".docx": true,
	".pdf":  true,
}

// ForFile returns the appropriate parser for a filename.
func ForFile(filename string) (Parser, error) {
	ext := strings.ToLower(filepath.Ext(filename))
	switch ext {
	case ".xml":
		return &XMLParser{}, nil
	case ".html", ".htm":
		return &HTMLParser{}, nil
	case ".md", ".markdown":
		return &MarkdownParser{}, nil
	case ".docx":
		return &DOCXParser{}, nil
	case ".pdf":
		return &PDFParser{}, nil
	default:
		return nil, fmt.Errorf("unsupported file extension: %s", ext)
	}
}

// IsSupportedExtension checks if a file extension is supported.
func IsSupportedExtension(filename string) bool {
	ext := strings.ToLower(filepath.Ext(filename))
	if ext == ".markdown" {
		return true
	}
	return SupportedExtensions[ext]
}
