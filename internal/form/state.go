// Package form owns the worksheet request the user is building and gates
// its submission.
package form

import (
	"slices"

	"github.com/abhisek/worksheetai/internal/worksheet"
)

const (
	MinQuestions     = 1
	MaxQuestions     = 20
	DefaultQuestions = 5

	// MaxFileSize is the largest source file accepted for extraction.
	MaxFileSize = 10 << 20
)

// State is everything the user has entered. A State handed out by the
// Controller is a copy; mutating it has no effect on the form.
type State struct {
	Topic        string
	GradeLevel   string
	NumQuestions int

	// QuestionTypes has an entry for each worksheet.QuestionType.
	QuestionTypes map[worksheet.QuestionType]bool

	IncludeAnswerKey   bool
	CustomInstructions string

	// SourceText is pasted text or the text extracted from SourceFileName.
	SourceText string

	// SourceFileName is set only while SourceText came from an upload.
	SourceFileName string

	// SourceLinks holds unique absolute URLs in insertion order.
	SourceLinks []string
}

// DefaultState returns the form as it looks when first opened.
func DefaultState() State {
	return State{
		GradeLevel:   worksheet.DefaultGradeLevel,
		NumQuestions: DefaultQuestions,
		QuestionTypes: map[worksheet.QuestionType]bool{
			worksheet.MultipleChoice: true,
			worksheet.FillInTheBlank: true,
			worksheet.OpenEnded:      false,
		},
		IncludeAnswerKey: true,
		SourceLinks:      []string{},
	}
}

// Clone returns a deep copy.
func (s State) Clone() State {
	out := s
	out.QuestionTypes = make(map[worksheet.QuestionType]bool, len(s.QuestionTypes))
	for k, v := range s.QuestionTypes {
		out.QuestionTypes[k] = v
	}
	out.SourceLinks = slices.Clone(s.SourceLinks)
	if out.SourceLinks == nil {
		out.SourceLinks = []string{}
	}
	return out
}

// SelectedTypes returns the enabled question types in canonical order.
func (s State) SelectedTypes() []worksheet.QuestionType {
	var out []worksheet.QuestionType
	for _, t := range worksheet.AllQuestionTypes {
		if s.QuestionTypes[t] {
			out = append(out, t)
		}
	}
	return out
}

// ClampQuestions forces n into [MinQuestions, MaxQuestions].
func ClampQuestions(n int) int {
	return max(MinQuestions, min(MaxQuestions, n))
}
