package llm

import (
	"slices"

	"google.golang.org/genai"
)

var geminiTypes = map[string]genai.Type{
	"string":  genai.TypeString,
	"number":  genai.TypeNumber,
	"integer": genai.TypeInteger,
	"boolean": genai.TypeBoolean,
	"array":   genai.TypeArray,
	"object":  genai.TypeObject,
}

// toGeminiSchema converts the subset of JSON Schema that Gemini's structured
// output accepts. Unsupported keywords are dropped; the full schema is still
// enforced locally by validateResponse.
func toGeminiSchema(def map[string]any) *genai.Schema {
	s := &genai.Schema{Type: genai.TypeString}
	if t, ok := def["type"].(string); ok {
		if gt, known := geminiTypes[t]; known {
			s.Type = gt
		}
	}
	s.Description, _ = def["description"].(string)
	s.Required = stringList(def["required"])
	s.Enum = stringList(def["enum"])
	s.MinItems = int64Of(def["minItems"])
	s.MaxItems = int64Of(def["maxItems"])

	if items, ok := def["items"].(map[string]any); ok {
		s.Items = toGeminiSchema(items)
	}

	props, _ := def["properties"].(map[string]any)
	if len(props) == 0 {
		return s
	}
	s.Properties = make(map[string]*genai.Schema, len(props))
	var rest []string
	for name, v := range props {
		if pd, ok := v.(map[string]any); ok {
			s.Properties[name] = toGeminiSchema(pd)
		}
		if !slices.Contains(s.Required, name) {
			rest = append(rest, name)
		}
	}
	// Gemini emits properties in this order; required fields first keeps the
	// title ahead of the questions.
	slices.Sort(rest)
	s.PropertyOrdering = append(slices.Clone(s.Required), rest...)
	return s
}

// stringList accepts []any as well as []string.
func stringList(v any) []string {
	switch vv := v.(type) {
	case []string:
		return vv
	case []any:
		out := make([]string, 0, len(vv))
		for _, e := range vv {
			if s, ok := e.(string); ok {
				out = append(out, s)
			}
		}
		return out
	}
	return nil
}

func int64Of(v any) *int64 {
	var n int64
	switch vv := v.(type) {
	case int:
		n = int64(vv)
	case int64:
		n = vv
	case float64:
		n = int64(vv)
	default:
		return nil
	}
	return &n
}
