package render

import (
	"bufio"
	"fmt"
	"io"
	"strings"
)

// TextExporter writes a plain-text worksheet.
type TextExporter struct{}

func (e *TextExporter) Extension() string   { return ".txt" }
func (e *TextExporter) ContentType() string { return "text/plain; charset=utf-8" }

func (e *TextExporter) Export(w io.Writer, doc Document) error {
	bw := bufio.NewWriter(w)

	fmt.Fprintln(bw, doc.Title)
	fmt.Fprintf(bw, "Topic: %s\n\n", doc.Topic)
	fmt.Fprintln(bw, "Name: _________________________    Date: _________________________")
	fmt.Fprintln(bw, strings.Repeat("=", 70))

	for _, b := range doc.Blocks {
		fmt.Fprintf(bw, "\n%d. %s\n", b.Number, b.Stem)
		for _, o := range b.Options {
			fmt.Fprintf(bw, "   %s\n", o)
		}
		for i := 0; i < b.WritingLines; i++ {
			fmt.Fprintf(bw, "   %s\n", strings.Repeat("_", 60))
		}
	}

	if doc.HasAnswerKey() {
		fmt.Fprintf(bw, "\n%s\nAnswer Key\n\n", strings.Repeat("- ", 35))
		for _, a := range doc.AnswerKey {
			fmt.Fprintf(bw, "%d. %s\n", a.Number, a.Answer)
		}
	}

	return bw.Flush()
}
