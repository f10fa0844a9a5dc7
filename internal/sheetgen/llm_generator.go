package sheetgen

import (
	"context"
	"encoding/json"
	"strings"

	"github.com/abhisek/worksheetai/internal/llm"
	"github.com/abhisek/worksheetai/internal/logger"
	"github.com/abhisek/worksheetai/internal/worksheet"
)

// LLMGenerator implements Generator using an LLM provider.
type LLMGenerator struct {
	provider llm.Provider
	config   Config
	log      *logger.Logger
}

// New creates a new LLMGenerator. A nil log discards output.
func New(provider llm.Provider, cfg Config, log *logger.Logger) *LLMGenerator {
	if log == nil {
		log = logger.Nop()
	}
	return &LLMGenerator{provider: provider, config: cfg, log: log}
}

// rawQuestion is one question as the model returned it.
type rawQuestion struct {
	Question string   `json:"question"`
	Type     string   `json:"type"`
	Options  []string `json:"options"`
	Answer   string   `json:"answer"`
}

// Generate sends one request and validates the response.
func (g *LLMGenerator) Generate(ctx context.Context, instruction string, schema *llm.Schema) (*worksheet.Worksheet, error) {
	ctx = llm.WithPurpose(ctx, "worksheet-gen")

	req := llm.Request{
		System:      systemPrompt,
		Prompt:      instruction,
		Schema:      schema,
		MaxTokens:   g.config.MaxTokens,
		Temperature: g.config.Temperature,
	}

	resp, err := g.provider.Generate(ctx, req)
	if err != nil {
		return nil, g.fail(classify(err))
	}

	ws, gerr := g.decode(resp.Content)
	if gerr != nil {
		return nil, g.fail(gerr)
	}
	return ws, nil
}

func (g *LLMGenerator) fail(err *GenerationError) error {
	g.log.Warn("worksheet generation failed",
		"kind", string(err.Kind),
		"error", err.Err,
	)
	return err
}

// decode checks the top-level shape, then converts and validates each
// question.
func (g *LLMGenerator) decode(content json.RawMessage) (*worksheet.Worksheet, *GenerationError) {
	if !json.Valid(content) {
		return nil, &GenerationError{Kind: KindParse, Err: errInvalidJSON}
	}

	var top map[string]json.RawMessage
	if err := json.Unmarshal(content, &top); err != nil {
		return nil, schemaError("response is not a JSON object")
	}

	var ws worksheet.Worksheet
	if err := decodeString(top, "title", &ws.Title); err != nil {
		return nil, err
	}
	if strings.TrimSpace(ws.Title) == "" {
		return nil, schemaError("title is empty")
	}
	if err := decodeString(top, "topic", &ws.Topic); err != nil {
		return nil, err
	}

	rawItems, ok := top["questions"]
	if !ok {
		return nil, schemaError("questions is missing")
	}
	var items []json.RawMessage
	if err := json.Unmarshal(rawItems, &items); err != nil || items == nil {
		return nil, schemaError("questions is not an array")
	}

	dropped := 0
	for i, item := range items {
		q, qerr := g.question(i, item)
		if qerr != nil {
			if !g.config.DropInvalidQuestions {
				return nil, &GenerationError{Kind: KindSchema, Err: qerr}
			}
			dropped++
			g.log.Warn("dropping invalid question",
				"index", i,
				"validator", qerr.Validator,
				"reason", qerr.Message,
			)
			continue
		}
		ws.Questions = append(ws.Questions, q)
	}

	if len(ws.Questions) == 0 && dropped > 0 {
		return nil, schemaError("no usable questions (%d dropped)", dropped)
	}

	g.log.Info("worksheet generated",
		"questions", len(ws.Questions),
		"dropped", dropped,
		"answers", ws.HasAnswers(),
	)
	return &ws, nil
}

func (g *LLMGenerator) question(i int, item json.RawMessage) (worksheet.Question, *QuestionError) {
	var raw rawQuestion
	if err := json.Unmarshal(item, &raw); err != nil {
		return worksheet.Question{}, &QuestionError{Validator: "decode", Index: i, Message: err.Error()}
	}

	q := worksheet.Question{
		Question: strings.TrimSpace(raw.Question),
		Type:     worksheet.QuestionType(raw.Type),
		Options:  raw.Options,
		Answer:   raw.Answer,
	}
	if t, ok := worksheet.ParseQuestionType(raw.Type); ok {
		q.Type = t
	}
	if q.Type != worksheet.MultipleChoice {
		q.Options = nil
	}

	for _, v := range g.config.Validators {
		if qerr := v.Validate(&q); qerr != nil {
			qerr.Index = i
			return worksheet.Question{}, qerr
		}
	}
	return q, nil
}

func decodeString(top map[string]json.RawMessage, key string, dst *string) *GenerationError {
	raw, ok := top[key]
	if !ok {
		return schemaError("%s is missing", key)
	}
	if err := json.Unmarshal(raw, dst); err != nil {
		return schemaError("%s is not a string", key)
	}
	return nil
}
