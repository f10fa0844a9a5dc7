package sheetgen

import (
	"errors"
	"fmt"

	"github.com/abhisek/worksheetai/internal/llm"
)

// UserMessage is the only failure text shown to users.
const UserMessage = "Failed to generate worksheet. Please check your inputs and API key."

// ErrorKind classifies a generation failure for logs.
type ErrorKind string

const (
	// KindTransport covers an unreachable or failing provider, including
	// timeouts and rate limits.
	KindTransport ErrorKind = "transport"

	// KindParse means the response was not parseable JSON.
	KindParse ErrorKind = "parse"

	// KindSchema means the response parsed but did not have the worksheet
	// shape, or had no usable questions.
	KindSchema ErrorKind = "schema"
)

// GenerationError is returned for every failed generation. Error always
// yields UserMessage; the cause is available through Unwrap.
type GenerationError struct {
	Kind ErrorKind
	Err  error
}

func (e *GenerationError) Error() string { return UserMessage }

func (e *GenerationError) Unwrap() error { return e.Err }

// Detail describes the cause for logs.
func (e *GenerationError) Detail() string {
	return fmt.Sprintf("%s: %v", e.Kind, e.Err)
}

// classify maps a provider error to a GenerationError.
func classify(err error) *GenerationError {
	var inv *llm.ErrInvalidResponse
	if errors.As(err, &inv) {
		if inv.Parse {
			return &GenerationError{Kind: KindParse, Err: err}
		}
		return &GenerationError{Kind: KindSchema, Err: err}
	}
	return &GenerationError{Kind: KindTransport, Err: err}
}

func schemaError(format string, args ...any) *GenerationError {
	return &GenerationError{Kind: KindSchema, Err: fmt.Errorf(format, args...)}
}

var errInvalidJSON = errors.New("invalid response format")
