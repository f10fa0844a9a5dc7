package extract

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/ledongthuc/pdf"
)

// pdfText extracts the text of every page in document order. Pages are
// separated by a single space.
func pdfText(data []byte) (text string, err error) {
	// The parser panics on some malformed inputs.
	defer func() {
		if r := recover(); r != nil {
			text, err = "", fmt.Errorf("pdf: malformed document: %v", r)
		}
	}()

	r, err := pdf.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", fmt.Errorf("pdf reader: %w", err)
	}

	pages := make([]string, 0, r.NumPage())
	for i := 1; i <= r.NumPage(); i++ {
		p := r.Page(i)
		if p.V.IsNull() {
			continue
		}

		fonts := make(map[string]*pdf.Font)
		for _, name := range p.Fonts() {
			f := p.Font(name)
			fonts[name] = &f
		}

		content, err := p.GetPlainText(fonts)
		if err != nil {
			return "", fmt.Errorf("pdf page %d: %w", i, err)
		}
		pages = append(pages, strings.TrimSpace(content))
	}

	return strings.TrimSpace(strings.Join(pages, " ")), nil
}
