package sheetgen

import (
	"fmt"

	"github.com/abhisek/worksheetai/internal/worksheet"
)

// Validator checks one generated question. A validator may repair the
// question in place; returning an error marks it unusable.
type Validator interface {
	// Name identifies the validator in logs, e.g. "structural".
	Name() string

	Validate(q *worksheet.Question) *QuestionError
}

// QuestionError describes why a question was rejected.
type QuestionError struct {
	Validator string
	Index     int // position in the response, zero-based
	Message   string
}

func (e *QuestionError) Error() string {
	return fmt.Sprintf("question %d: validator %q: %s", e.Index+1, e.Validator, e.Message)
}
