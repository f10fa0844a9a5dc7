package sheetgen

import (
	"strings"

	"github.com/abhisek/worksheetai/internal/worksheet"
)

// StructuralValidator requires question text and a known type.
type StructuralValidator struct{}

func (v *StructuralValidator) Name() string { return "structural" }

func (v *StructuralValidator) Validate(q *worksheet.Question) *QuestionError {
	if strings.TrimSpace(q.Question) == "" {
		return &QuestionError{Validator: v.Name(), Message: "question text is empty"}
	}
	if !q.Type.Valid() {
		return &QuestionError{Validator: v.Name(), Message: "unknown question type " + string(q.Type)}
	}
	return nil
}

// ChoiceValidator checks multiple-choice options. At least two distinct
// options are needed, and a present answer must be one of them.
type ChoiceValidator struct{}

func (v *ChoiceValidator) Name() string { return "choices" }

func (v *ChoiceValidator) Validate(q *worksheet.Question) *QuestionError {
	if q.Type != worksheet.MultipleChoice {
		return nil
	}

	var opts []string
	seen := make(map[string]bool, len(q.Options))
	for _, o := range q.Options {
		o = strings.TrimSpace(o)
		if o == "" || seen[o] {
			continue
		}
		seen[o] = true
		opts = append(opts, o)
	}
	if len(opts) < 2 {
		return &QuestionError{Validator: v.Name(), Message: "multiple choice needs at least 2 options"}
	}
	q.Options = opts

	if q.Answerable() {
		q.Answer = strings.TrimSpace(q.Answer)
		if !q.HasOption(q.Answer) {
			return &QuestionError{Validator: v.Name(), Message: "answer is not one of the options"}
		}
	}
	return nil
}

// BlankValidator makes sure fill-in-the-blank text shows a blank. A stem
// without the marker gets one appended.
type BlankValidator struct{}

func (v *BlankValidator) Name() string { return "blank" }

func (v *BlankValidator) Validate(q *worksheet.Question) *QuestionError {
	if q.Type != worksheet.FillInTheBlank {
		return nil
	}
	if !strings.Contains(q.Question, worksheet.BlankMarker) {
		q.Question = strings.TrimRight(q.Question, " ") + " " + worksheet.BlankMarker
	}
	return nil
}
