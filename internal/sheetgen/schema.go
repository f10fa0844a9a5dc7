package sheetgen

import (
	"strings"

	"github.com/abhisek/worksheetai/internal/llm"
	"github.com/abhisek/worksheetai/internal/worksheet"
)

// WorksheetSchema is the structured-output contract sent with every
// generation request. It stays permissive: per-type requirements such as
// options for multiple choice are checked by the validator chain instead.
var WorksheetSchema = &llm.Schema{
	Name:        "worksheet",
	Description: "A printable worksheet with a title, topic and ordered questions",
	Definition: map[string]any{
		"type": "object",
		"properties": map[string]any{
			"title": map[string]any{
				"type":        "string",
				"description": "Creative title for the worksheet.",
			},
			"topic": map[string]any{
				"type":        "string",
				"description": "The topic of the worksheet.",
			},
			"questions": map[string]any{
				"type":        "array",
				"description": "An array of questions for the worksheet.",
				"items": map[string]any{
					"type": "object",
					"properties": map[string]any{
						"question": map[string]any{
							"type":        "string",
							"description": `The question text. For fill-in-the-blank, use "____" for the blank.`,
						},
						"type": map[string]any{
							"type":        "string",
							"description": "The type of question. Must be one of: " + typeList() + ".",
						},
						"options": map[string]any{
							"type":        "array",
							"items":       map[string]any{"type": "string"},
							"description": "An array of options for multiple-choice questions.",
						},
						"answer": map[string]any{
							"type":        "string",
							"description": "The correct answer for the question. Required if an answer key is requested.",
						},
					},
					"required": []any{"question", "type"},
				},
			},
		},
		"required": []any{"title", "topic", "questions"},
	},
}

func typeList() string {
	names := make([]string, len(worksheet.AllQuestionTypes))
	for i, t := range worksheet.AllQuestionTypes {
		names[i] = string(t)
	}
	return strings.Join(names, ", ")
}
