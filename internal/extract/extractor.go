// Package extract loads the statutory text from a file and normalizes it for segmentation.
package extract

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/hyperjump/lexbusca/internal/models"
)

// Extractor extracts plain text from statute files.
type Extractor struct{}

// NewExtractor returns a new Extractor.
func NewExtractor() *Extractor {
	return &Extractor{}
}

// Load reads the file at path and returns its normalized text.
// format overrides the file extension when set ("pdf", ".html", ...).
// Returns models.ErrNoContent when the file yields no text.
func (e *Extractor) Load(path, format string) (string, error) {
	text, err := e.Extract(path, format)
	if err != nil {
		return "", err
	}
	text = Normalize(text)
	if text == "" {
		return "", fmt.Errorf("%s: %w", path, models.ErrNoContent)
	}
	return text, nil
}

// Extract reads the file at path and returns its raw text content.
func (e *Extractor) Extract(path, format string) (string, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("read file: %w", err)
	}
	ext := strings.ToLower(filepath.Ext(path))
	if format != "" {
		ext = "." + strings.TrimPrefix(strings.ToLower(format), ".")
	}
	return e.ExtractBytes(content, ext)
}

// ExtractBytes extracts text from content based on the given extension.
// ext should include the leading dot (e.g. ".pdf"). Unknown extensions are read as plain text.
func (e *Extractor) ExtractBytes(content []byte, ext string) (string, error) {
	switch ext {
	case ".pdf":
		return extractPDF(content)
	case ".docx":
		return extractDOCX(content)
	case ".html", ".htm":
		return extractHTML(content)
	case ".md", ".markdown":
		return extractMarkdown(content)
	default:
		return extractPlain(content)
	}
}

// SupportedFormats lists the extensions with a dedicated extractor.
var SupportedFormats = []string{".txt", ".md", ".markdown", ".html", ".htm", ".pdf", ".docx"}
