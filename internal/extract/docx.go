package extract

import (
	"archive/zip"
	"bytes"
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"strings"
)

const docxBody = "word/document.xml"

func isDOCX(data []byte) bool {
	if !bytes.HasPrefix(data, []byte("PK\x03\x04")) {
		return false
	}
	zr, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return false
	}
	return findZipFile(zr, docxBody) != nil
}

// docxText returns the raw text of a Word document, one line per
// paragraph. Formatting is discarded.
func docxText(data []byte) (string, error) {
	zr, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", fmt.Errorf("docx: not a zip container: %w", err)
	}

	f := findZipFile(zr, docxBody)
	if f == nil {
		return "", errors.New("docx: missing " + docxBody)
	}
	rc, err := f.Open()
	if err != nil {
		return "", fmt.Errorf("docx: open body: %w", err)
	}
	defer rc.Close()

	return wordprocessingText(rc)
}

func findZipFile(zr *zip.Reader, name string) *zip.File {
	for _, f := range zr.File {
		if f.Name == name {
			return f
		}
	}
	return nil
}

// wordprocessingText walks WordprocessingML tokens and collects the
// character data of <w:t> runs.
func wordprocessingText(r io.Reader) (string, error) {
	dec := xml.NewDecoder(r)
	var (
		out    strings.Builder
		inText bool
	)
	for {
		tok, err := dec.Token()
		if err == io.EOF {
			break
		}
		if err != nil {
			return "", fmt.Errorf("docx: parse body: %w", err)
		}

		switch t := tok.(type) {
		case xml.StartElement:
			switch t.Name.Local {
			case "t":
				inText = true
			case "tab":
				out.WriteByte('\t')
			case "br", "cr":
				out.WriteByte('\n')
			}
		case xml.EndElement:
			switch t.Name.Local {
			case "t":
				inText = false
			case "p":
				out.WriteByte('\n')
			}
		case xml.CharData:
			if inText {
				out.Write(t)
			}
		}
	}
	return strings.TrimRight(out.String(), "\n"), nil
}
