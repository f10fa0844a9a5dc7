// Package extract turns uploaded source files into plain text for the
// generation prompt.
package extract

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"mime"
	"net/http"
	"path/filepath"
	"strings"
)

// Supported MIME types.
const (
	MIMEPlainText = "text/plain"
	MIMEPDF       = "application/pdf"
	MIMEDOCX      = "application/vnd.openxmlformats-officedocument.wordprocessingml.document"
)

var (
	// ErrUnsupportedType is returned for a MIME type outside the supported set.
	ErrUnsupportedType = errors.New("unsupported file type")

	// ErrEmptyFile is returned when there are no bytes to extract from.
	ErrEmptyFile = errors.New("file is empty")
)

// TextExtractor converts raw file bytes of a declared MIME type to text.
type TextExtractor interface {
	Extract(ctx context.Context, data []byte, mimeType string) (string, error)
}

// Extractor is the default TextExtractor. The zero value is ready to use.
type Extractor struct{}

// New returns an Extractor.
func New() *Extractor {
	return &Extractor{}
}

// Extract dispatches on the normalized MIME type.
func (e *Extractor) Extract(ctx context.Context, data []byte, mimeType string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	if len(data) == 0 {
		return "", ErrEmptyFile
	}

	switch Normalize(mimeType) {
	case MIMEPlainText:
		return plainText(data), nil
	case MIMEPDF:
		return pdfText(data)
	case MIMEDOCX:
		return docxText(data)
	default:
		return "", fmt.Errorf("%w: %q", ErrUnsupportedType, mimeType)
	}
}

// Normalize lowercases a MIME type and drops any parameters, so
// "Text/Plain; charset=utf-8" becomes "text/plain".
func Normalize(mimeType string) string {
	mt, _, err := mime.ParseMediaType(mimeType)
	if err != nil {
		mt = strings.ToLower(strings.TrimSpace(strings.SplitN(mimeType, ";", 2)[0]))
	}
	return mt
}

// Supported reports whether mimeType can be extracted.
func Supported(mimeType string) bool {
	switch Normalize(mimeType) {
	case MIMEPlainText, MIMEPDF, MIMEDOCX:
		return true
	}
	return false
}

// DetectMIME resolves the MIME type of a named file. The extension wins;
// otherwise the content is sniffed. Unknown content yields
// "application/octet-stream".
func DetectMIME(name string, data []byte) string {
	switch strings.ToLower(filepath.Ext(name)) {
	case ".txt", ".text", ".md":
		return MIMEPlainText
	case ".pdf":
		return MIMEPDF
	case ".docx":
		return MIMEDOCX
	}

	if bytes.HasPrefix(data, []byte("%PDF-")) {
		return MIMEPDF
	}
	if isDOCX(data) {
		return MIMEDOCX
	}
	return Normalize(http.DetectContentType(data))
}
