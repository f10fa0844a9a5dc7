package render

import (
	"fmt"
	"io"
	"strconv"

	"github.com/jung-kurt/gofpdf"
)

const (
	pdfMargin     = 20.0 // mm
	pdfLineHeight = 6.0
	pdfRuleGap    = 9.0
)

// PDFExporter writes an A4 portrait PDF. Content flows onto new pages as
// needed.
type PDFExporter struct {
	// FontFamily is one of the gofpdf core fonts. Default: Helvetica.
	FontFamily string
}

// NewPDFExporter returns a PDFExporter with default settings.
func NewPDFExporter() *PDFExporter {
	return &PDFExporter{FontFamily: "Helvetica"}
}

func (e *PDFExporter) Extension() string   { return ".pdf" }
func (e *PDFExporter) ContentType() string { return "application/pdf" }

func (e *PDFExporter) Export(w io.Writer, doc Document) error {
	font := e.FontFamily
	if font == "" {
		font = "Helvetica"
	}

	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetMargins(pdfMargin, pdfMargin, pdfMargin)
	pdf.SetAutoPageBreak(true, pdfMargin)
	pdf.SetTitle(doc.Title, true)
	pdf.SetCreator("worksheetai", true)

	// Core fonts are cp1252; translate UTF-8 input.
	tr := pdf.UnicodeTranslatorFromDescriptor("")

	pdf.AddPage()
	pageW, pageH := pdf.GetPageSize()
	contentW := pageW - 2*pdfMargin

	// Header.
	pdf.SetFont(font, "B", 20)
	pdf.MultiCell(0, 9, tr(doc.Title), "", "C", false)
	pdf.SetFont(font, "", 11)
	pdf.SetTextColor(100, 100, 100)
	pdf.MultiCell(0, pdfLineHeight, tr("Topic: "+doc.Topic), "", "C", false)
	pdf.SetTextColor(0, 0, 0)
	pdf.Ln(4)
	pdf.CellFormat(contentW/2, pdfLineHeight, "Name: _________________________", "", 0, "L", false, 0, "")
	pdf.CellFormat(contentW/2, pdfLineHeight, "Date: _________________________", "", 1, "R", false, 0, "")
	pdf.Ln(2)
	pdf.Line(pdfMargin, pdf.GetY(), pageW-pdfMargin, pdf.GetY())
	pdf.Ln(6)

	for _, b := range doc.Blocks {
		pdf.SetFont(font, "B", 12)
		pdf.MultiCell(0, pdfLineHeight, tr(strconv.Itoa(b.Number)+". "+b.Stem), "", "L", false)

		pdf.SetFont(font, "", 12)
		for _, o := range b.Options {
			pdf.SetX(pdfMargin + 8)
			pdf.MultiCell(contentW-8, pdfLineHeight, tr(o.String()), "", "L", false)
		}

		for i := 0; i < b.WritingLines; i++ {
			y := pdf.GetY() + pdfRuleGap
			if y > pageH-pdfMargin {
				pdf.AddPage()
				y = pdf.GetY() + pdfRuleGap
			}
			pdf.SetDrawColor(180, 180, 180)
			pdf.Line(pdfMargin+8, y, pageW-pdfMargin, y)
			pdf.SetDrawColor(0, 0, 0)
			pdf.SetY(y)
		}
		pdf.Ln(5)
	}

	if doc.HasAnswerKey() {
		pdf.AddPage()
		pdf.SetFont(font, "B", 16)
		pdf.MultiCell(0, 9, "Answer Key", "", "C", false)
		pdf.Ln(4)
		for _, a := range doc.AnswerKey {
			pdf.SetFont(font, "B", 11)
			pdf.CellFormat(10, pdfLineHeight, strconv.Itoa(a.Number)+".", "", 0, "L", false, 0, "")
			pdf.SetFont(font, "", 11)
			pdf.MultiCell(contentW-10, pdfLineHeight, tr(a.Answer), "", "L", false)
			pdf.Ln(1)
		}
	}

	if err := pdf.Output(w); err != nil {
		return fmt.Errorf("pdf export: %w", err)
	}
	return nil
}
