// Package render lays out a worksheet for display and print.
package render

import (
	"strconv"
	"strings"

	"github.com/abhisek/worksheetai/internal/worksheet"
)

// WideBlank replaces worksheet.BlankMarker in fill-in-the-blank stems.
const WideBlank = "________________"

// WritingLines is the height of an open-ended answer area, in ruled lines.
const WritingLines = 4

// Document is a worksheet laid out for output. Every exporter renders
// the same Document.
type Document struct {
	Title  string
	Topic  string
	Blocks []Block

	// AnswerKey is empty when no question carries an answer.
	AnswerKey []AnswerEntry
}

// Block is one rendered question.
type Block struct {
	// Number is the question's 1-based position in the worksheet.
	Number int
	Type   worksheet.QuestionType
	Stem   string

	// Options is set for multiple choice only.
	Options []Option

	// WritingLines is non-zero for open-ended questions.
	WritingLines int
}

// Option is a lettered multiple-choice option.
type Option struct {
	Letter string
	Text   string
}

func (o Option) String() string {
	return o.Letter + ". " + o.Text
}

// AnswerEntry is one answer-key line. Number matches the question's
// Block.Number.
type AnswerEntry struct {
	Number int
	Answer string
}

// HasAnswerKey reports whether the answer-key section is shown.
func (d Document) HasAnswerKey() bool {
	return len(d.AnswerKey) > 0
}

// Render lays out ws. Questions of an unknown type produce no block but
// keep their number, so later questions and the answer key stay aligned
// with the worksheet order.
func Render(ws *worksheet.Worksheet) Document {
	doc := Document{
		Title: ws.Title,
		Topic: ws.Topic,
	}

	for i, q := range ws.Questions {
		num := i + 1

		if q.Answerable() {
			doc.AnswerKey = append(doc.AnswerKey, AnswerEntry{Number: num, Answer: strings.TrimSpace(q.Answer)})
		}

		switch q.Type {
		case worksheet.MultipleChoice:
			b := Block{Number: num, Type: q.Type, Stem: q.Question}
			for j, o := range q.Options {
				b.Options = append(b.Options, Option{Letter: optionLetter(j), Text: o})
			}
			doc.Blocks = append(doc.Blocks, b)
		case worksheet.FillInTheBlank:
			doc.Blocks = append(doc.Blocks, Block{
				Number: num,
				Type:   q.Type,
				Stem:   strings.ReplaceAll(q.Question, worksheet.BlankMarker, WideBlank),
			})
		case worksheet.OpenEnded:
			doc.Blocks = append(doc.Blocks, Block{
				Number:       num,
				Type:         q.Type,
				Stem:         q.Question,
				WritingLines: WritingLines,
			})
		}
	}

	return doc
}

// optionLetter maps 0 to "A", 1 to "B" and so on. Past "Z" it falls back
// to numbers.
func optionLetter(i int) string {
	if i < 26 {
		return string(rune('A' + i))
	}
	return strconv.Itoa(i + 1)
}
