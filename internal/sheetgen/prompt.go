package sheetgen

import (
	"fmt"
	"strings"

	"github.com/abhisek/worksheetai/internal/form"
	"github.com/abhisek/worksheetai/internal/llm"
)

const systemPrompt = `You are an experienced teacher who writes clear, age-appropriate practice worksheets.
Always answer with a single JSON object that matches the requested schema. Do not add commentary.`

const answerKeyClause = `IMPORTANT: For EVERY question, you MUST provide a correct 'answer'. ` +
	`For open-ended questions, this should be a detailed, example correct answer. The answer key is critical.`

const outputFormatClause = `Return the worksheet as a JSON object. ` +
	`For multiple choice questions, provide an array of strings for 'options' and the correct 'answer'. ` +
	`For fill-in-the-blank, provide the 'answer' to be filled in. ` +
	`For open-ended questions, provide an example 'answer'. ` +
	`The question text for fill-in-the-blank should use "____" to indicate the blank.`

// sourceDelimiter fences the embedded source text.
const sourceDelimiter = `"""`

// BuildRequest turns a frozen form into the instruction text and schema
// for one generation request. It is deterministic; clauses always appear
// in the same order and optional ones are omitted when empty.
func BuildRequest(s form.State) (string, *llm.Schema) {
	var b strings.Builder

	phrases := make([]string, 0, len(s.QuestionTypes))
	for _, t := range s.SelectedTypes() {
		phrases = append(phrases, t.Phrase())
	}

	fmt.Fprintf(&b, "Create a worksheet for a %s student on the topic of %q.\n", s.GradeLevel, strings.TrimSpace(s.Topic))
	fmt.Fprintf(&b, "The worksheet should have %d questions.\n", form.ClampQuestions(s.NumQuestions))
	fmt.Fprintf(&b, "The question types should be a mix of: %s.\n", strings.Join(phrases, ", "))
	b.WriteString("The title of the worksheet should be creative and related to the topic.\n")

	if s.IncludeAnswerKey {
		b.WriteString("\n" + answerKeyClause + "\n")
	}

	if ci := strings.TrimSpace(s.CustomInstructions); ci != "" {
		fmt.Fprintf(&b, "\nFollow these custom instructions: %s\n", ci)
	}

	if st := strings.TrimSpace(s.SourceText); st != "" {
		// A fence inside the text would end the quoted block early.
		st = strings.ReplaceAll(st, sourceDelimiter, `'''`)
		fmt.Fprintf(&b, "\nBase the questions on the following source text:\n%s\n%s\n%s\n", sourceDelimiter, st, sourceDelimiter)
	}

	if len(s.SourceLinks) > 0 {
		fmt.Fprintf(&b, "\nAlso, use the content from the following web pages as context:\n%s\n", strings.Join(s.SourceLinks, "\n"))
	}

	b.WriteString("\n" + outputFormatClause)

	return b.String(), WorksheetSchema
}
