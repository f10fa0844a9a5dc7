package worksheet

import "strings"

// QuestionType is one of the three worksheet question variants.
type QuestionType string

const (
	MultipleChoice QuestionType = "multiple-choice"
	FillInTheBlank QuestionType = "fill-in-the-blank"
	OpenEnded      QuestionType = "open-ended"
)

// AllQuestionTypes lists the variants in their canonical order. Prompt
// phrases and form toggles follow this order.
var AllQuestionTypes = []QuestionType{MultipleChoice, FillInTheBlank, OpenEnded}

// BlankMarker is the placeholder that marks the blank in fill-in-the-blank
// question text.
const BlankMarker = "____"

// ParseQuestionType maps a wire value to a QuestionType. Matching ignores
// case and treats spaces and underscores like hyphens, so "Multiple Choice"
// and "multiple_choice" both parse. The second result is false for
// anything outside the closed set.
func ParseQuestionType(s string) (QuestionType, bool) {
	norm := strings.ToLower(strings.TrimSpace(s))
	norm = strings.NewReplacer("_", "-", " ", "-").Replace(norm)
	for _, t := range AllQuestionTypes {
		if norm == string(t) {
			return t, true
		}
	}
	return "", false
}

// Valid reports whether t is one of the known variants.
func (t QuestionType) Valid() bool {
	switch t {
	case MultipleChoice, FillInTheBlank, OpenEnded:
		return true
	}
	return false
}

// Label is the short display name used by the form surfaces.
func (t QuestionType) Label() string {
	switch t {
	case MultipleChoice:
		return "Multiple Choice"
	case FillInTheBlank:
		return "Fill in the Blank"
	case OpenEnded:
		return "Open Ended"
	default:
		return string(t)
	}
}

// Phrase is the descriptive phrase used for t in the generation prompt.
func (t QuestionType) Phrase() string {
	switch t {
	case MultipleChoice:
		return "multiple-choice with 4 options and a correct answer"
	case FillInTheBlank:
		return "fill-in-the-blank with a single correct answer"
	case OpenEnded:
		return "open-ended comprehension question"
	default:
		return ""
	}
}

// Question is a single worksheet item.
type Question struct {
	// Question is the stem. Fill-in-the-blank stems contain BlankMarker.
	Question string `json:"question"`

	Type QuestionType `json:"type"`

	// Options is only meaningful for MultipleChoice. Order is display order.
	Options []string `json:"options,omitempty"`

	// Answer is the correct answer, or an example answer for OpenEnded.
	// It may be empty even when an answer key was requested.
	Answer string `json:"answer,omitempty"`
}

// Answerable reports whether the question carries a non-empty answer.
func (q Question) Answerable() bool {
	return strings.TrimSpace(q.Answer) != ""
}

// HasOption reports whether s is one of the question's options.
func (q Question) HasOption(s string) bool {
	for _, o := range q.Options {
		if o == s {
			return true
		}
	}
	return false
}

// Worksheet is a validated generation result.
type Worksheet struct {
	Title     string     `json:"title"`
	Topic     string     `json:"topic"`
	Questions []Question `json:"questions"`
}

// HasAnswers reports whether any question is answerable.
func (w *Worksheet) HasAnswers() bool {
	for _, q := range w.Questions {
		if q.Answerable() {
			return true
		}
	}
	return false
}
