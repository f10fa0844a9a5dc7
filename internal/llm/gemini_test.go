package llm

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/genai"
)

func newTestGemini(t *testing.T, handler http.HandlerFunc) *GeminiProvider {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	p, err := NewGeminiProvider(context.Background(), GeminiConfig{
		APIKey:  "g-test",
		Model:   "gemini-flash",
		BaseURL: srv.URL,
	})
	require.NoError(t, err)
	return p
}

func geminiReply(text, finish string) map[string]any {
	return map[string]any{
		"candidates": []map[string]any{{
			"content":      map[string]any{"role": "model", "parts": []map[string]any{{"text": text}}},
			"finishReason": finish,
		}},
		"usageMetadata": map[string]any{
			"promptTokenCount":     120,
			"candidatesTokenCount": 80,
			"totalTokenCount":      200,
		},
	}
}

func TestGeminiProvider_Generate(t *testing.T) {
	var gotPath string
	var gotBody map[string]any
	p := newTestGemini(t, func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		_ = json.NewDecoder(r.Body).Decode(&gotBody)
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(geminiReply(
			"```json\n{\"title\":\"Tides\",\"topic\":\"Oceans\",\"questions\":[]}\n```", "STOP"))
	})

	resp, err := p.Generate(context.Background(), Request{
		System: "You write printable worksheets.",
		Prompt: "Create a worksheet about oceans.",
		Schema: &Schema{Name: "gemini-sheet", Definition: map[string]any{
			"type":     "object",
			"required": []any{"title"},
		}},
	})
	require.NoError(t, err)

	assert.True(t, strings.HasSuffix(gotPath, "/models/gemini-2.5-flash:generateContent"), gotPath)
	cfg, _ := gotBody["generationConfig"].(map[string]any)
	assert.Equal(t, "application/json", cfg["responseMimeType"])

	assert.JSONEq(t, `{"title":"Tides","topic":"Oceans","questions":[]}`, string(resp.Content))
	assert.Equal(t, Usage{InputTokens: 120, OutputTokens: 80, TotalTokens: 200}, resp.Usage)
	assert.Equal(t, "gemini-2.5-flash", resp.Model)
}

func TestGeminiProvider_Truncated(t *testing.T) {
	p := newTestGemini(t, func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewEncoder(w).Encode(geminiReply(`{"title":"Ti`, "MAX_TOKENS"))
	})
	_, err := p.Generate(context.Background(), Request{Prompt: "x"})
	var maxTok *ErrMaxTokensExceeded
	assert.ErrorAs(t, err, &maxTok)
}

func TestGeminiProvider_ErrorStatus(t *testing.T) {
	tests := []struct {
		status int
		kind   string
	}{
		{http.StatusTooManyRequests, "rate_limit"},
		{http.StatusInternalServerError, "unavailable"},
		{http.StatusForbidden, "unavailable"},
	}
	for _, tt := range tests {
		t.Run(http.StatusText(tt.status), func(t *testing.T) {
			p := newTestGemini(t, func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
				_ = json.NewEncoder(w).Encode(map[string]any{
					"error": map[string]any{"code": tt.status, "message": "nope", "status": "ERR"},
				})
			})
			_, err := p.Generate(context.Background(), Request{Prompt: "x"})
			assert.Equal(t, tt.kind, ErrorKind(err))
		})
	}
}

func TestNewGeminiProvider_RequiresKey(t *testing.T) {
	_, err := NewGeminiProvider(context.Background(), GeminiConfig{Model: "gemini-flash"})
	assert.Error(t, err)
}

func TestToGeminiSchema(t *testing.T) {
	def := map[string]any{
		"type": "object",
		"properties": map[string]any{
			"topic": map[string]any{"type": "string"},
			"title": map[string]any{"type": "string", "description": "Worksheet title"},
			"questions": map[string]any{
				"type":     "array",
				"minItems": 1,
				"maxItems": 20.0,
				"items": map[string]any{
					"type": "object",
					"properties": map[string]any{
						"type":     map[string]any{"type": "string", "enum": []any{"multiple-choice", "open-ended"}},
						"question": map[string]any{"type": "string"},
					},
					"required": []string{"question"},
				},
			},
			"notes": map[string]any{"type": "null"},
		},
		"required": []any{"title", "questions"},
	}

	s := toGeminiSchema(def)
	assert.Equal(t, genai.TypeObject, s.Type)
	assert.Equal(t, []string{"title", "questions"}, s.Required)
	assert.Equal(t, []string{"title", "questions", "notes", "topic"}, s.PropertyOrdering)
	assert.Equal(t, "Worksheet title", s.Properties["title"].Description)
	assert.Equal(t, genai.TypeString, s.Properties["notes"].Type)

	q := s.Properties["questions"]
	require.NotNil(t, q.MinItems)
	require.NotNil(t, q.MaxItems)
	assert.EqualValues(t, 1, *q.MinItems)
	assert.EqualValues(t, 20, *q.MaxItems)
	assert.Equal(t, []string{"question", "type"}, q.Items.PropertyOrdering)
	assert.Len(t, q.Items.Properties["type"].Enum, 2)
}

func TestResolveModel(t *testing.T) {
	assert.Equal(t, "gemini-2.5-pro", resolveModel("gemini-pro", geminiAliases))
	assert.Equal(t, "gemini-2.5-flash-lite", resolveModel("gemini-2.5-flash-lite", geminiAliases))
	assert.Equal(t, "claude-haiku-4-5-20251001", resolveModel("claude-haiku", anthropicAliases))
}
