package render

import (
	"fmt"
	"io"
	"strings"
)

// DocumentExporter writes a Document in one output format.
type DocumentExporter interface {
	Export(w io.Writer, doc Document) error

	// Extension is the file extension including the dot.
	Extension() string

	// ContentType is the MIME type of the output.
	ContentType() string
}

// Formats lists the names accepted by ExporterFor.
var Formats = []string{"pdf", "html", "text"}

// ExporterFor returns the exporter for a format name.
func ExporterFor(format string) (DocumentExporter, error) {
	switch strings.ToLower(format) {
	case "pdf":
		return NewPDFExporter(), nil
	case "html":
		return &HTMLExporter{}, nil
	case "text", "txt":
		return &TextExporter{}, nil
	default:
		return nil, fmt.Errorf("unknown output format %q (want one of %s)", format, strings.Join(Formats, ", "))
	}
}
