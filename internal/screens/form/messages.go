package form

import (
	"time"

	"github.com/abhisek/worksheetai/internal/worksheet"
)

// worksheetReadyMsg carries the result of one submission.
type worksheetReadyMsg struct {
	Token     uint64
	Worksheet *worksheet.Worksheet
	Err       error
}

// ingestDoneMsg is sent when a source file has been read and extracted.
type ingestDoneMsg struct {
	Name string
	Err  error
}

// spinnerTickMsg animates the generating indicator.
type spinnerTickMsg time.Time
