package form

import (
	"errors"
	"fmt"
)

var (
	// ErrSubmitBlocked is returned by Submit while the topic is empty or no
	// question type is selected.
	ErrSubmitBlocked = errors.New("submission is not available")

	// ErrSubmissionInFlight is returned by Submit while a previous
	// submission has not completed.
	ErrSubmissionInFlight = errors.New("a worksheet is already being generated")

	// ErrStaleToken is returned by Complete for a token that is not the
	// outstanding submission.
	ErrStaleToken = errors.New("stale submission token")

	// ErrIngestSuperseded is returned by IngestFile when a newer ingestion
	// or a RemoveSource call happened while it was extracting. Its result
	// is discarded.
	ErrIngestSuperseded = errors.New("file ingestion superseded")
)

// ValidationError is malformed user input. Message is shown to the user.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Message)
}

// UnsupportedSourceError rejects an upload before extraction, either for
// its size or its type.
type UnsupportedSourceError struct {
	FileName string
	MIMEType string
	Size     int64
	Reason   string
}

func (e *UnsupportedSourceError) Error() string {
	return fmt.Sprintf("cannot use %q: %s", e.FileName, e.Reason)
}

// ExtractionError wraps a text-extraction failure.
type ExtractionError struct {
	FileName string
	Err      error
}

func (e *ExtractionError) Error() string {
	return fmt.Sprintf("could not read %q: %v", e.FileName, e.Err)
}

func (e *ExtractionError) Unwrap() error { return e.Err }

// UserMessage returns the text to show for an error returned by the
// Controller.
func UserMessage(err error) string {
	var (
		verr *ValidationError
		uerr *UnsupportedSourceError
		xerr *ExtractionError
	)
	switch {
	case err == nil:
		return ""
	case errors.As(err, &verr):
		return verr.Message
	case errors.As(err, &uerr):
		return uerr.Reason
	case errors.As(err, &xerr):
		return "There was an error reading the file."
	case errors.Is(err, ErrSubmissionInFlight):
		return "A worksheet is already being generated."
	default:
		return err.Error()
	}
}
