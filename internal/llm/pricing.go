package llm

import "strings"

// ModelCost is USD per million tokens.
type ModelCost struct {
	InputPerMTok  float64
	OutputPerMTok float64
}

func (c ModelCost) Cost(inputTokens, outputTokens int) float64 {
	return (float64(inputTokens)*c.InputPerMTok + float64(outputTokens)*c.OutputPerMTok) / 1e6
}

// LookupCost finds pricing for a model id. Dated snapshots such as
// "gpt-4o-mini-2024-07-18" fall back to the longest listed id they extend.
// Unknown models return nil.
func LookupCost(modelID string) *ModelCost {
	if c, ok := modelCosts[modelID]; ok {
		return &c
	}
	best := ""
	for id := range modelCosts {
		if len(id) > len(best) && strings.HasPrefix(modelID, id+"-") {
			best = id
		}
	}
	if best == "" {
		return nil
	}
	c := modelCosts[best]
	return &c
}

// modelCosts is the embedded pricing table (models.dev, 2026-02).
var modelCosts = map[string]ModelCost{
	// Google (Gemini)
	"gemini-2.0-flash":      {0.1, 0.4},
	"gemini-2.0-flash-lite": {0.075, 0.3},
	"gemini-2.5-flash":      {0.3, 2.5},
	"gemini-2.5-flash-lite": {0.1, 0.4},
	"gemini-2.5-pro":        {1.25, 10},
	"gemini-flash-latest":   {0.3, 2.5},

	// OpenAI
	"gpt-4.1":      {2, 8},
	"gpt-4.1-mini": {0.4, 1.6},
	"gpt-4.1-nano": {0.1, 0.4},
	"gpt-4o":       {2.5, 10},
	"gpt-4o-mini":  {0.15, 0.6},
	"gpt-5-mini":   {0.25, 2},

	// Anthropic
	"claude-haiku-4-5-20251001":  {1, 5},
	"claude-sonnet-4-20250514":   {3, 15},
	"claude-sonnet-4-5-20250929": {3, 15},

	// OpenRouter ids
	"google/gemini-2.5-flash": {0.3, 2.5},
	"openai/gpt-4o-mini":      {0.15, 0.6},
}
