// Package sheetgen builds worksheet generation requests and turns model
// responses into validated worksheets.
package sheetgen

import (
	"context"

	"github.com/abhisek/worksheetai/internal/form"
	"github.com/abhisek/worksheetai/internal/llm"
	"github.com/abhisek/worksheetai/internal/worksheet"
)

// Generator produces worksheets from an instruction and schema.
type Generator interface {
	// Generate issues exactly one request. It returns a validated
	// Worksheet or a *GenerationError.
	Generate(ctx context.Context, instruction string, schema *llm.Schema) (*worksheet.Worksheet, error)
}

// ForState builds the request for a frozen form and runs it through gen.
// An empty topic in the response is filled from the form.
func ForState(ctx context.Context, gen Generator, s form.State) (*worksheet.Worksheet, error) {
	instruction, schema := BuildRequest(s)
	ws, err := gen.Generate(ctx, instruction, schema)
	if err != nil {
		return nil, err
	}
	if ws.Topic == "" {
		ws.Topic = s.Topic
	}
	return ws, nil
}
