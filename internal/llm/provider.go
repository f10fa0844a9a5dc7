package llm

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
)

// Provider is the generation capability: given an instruction and an
// expected output schema, return matching structured data or fail.
type Provider interface {
	// Generate sends one request to the model and returns its output.
	// When req.Schema is set the provider asks for structured output and
	// checks the returned JSON against the schema before returning it.
	Generate(ctx context.Context, req Request) (*Response, error)

	// ModelID returns the model identifier this provider is configured to use.
	ModelID() string
}

// Request is a single-turn generation request.
type Request struct {
	// System is an optional system instruction.
	System string

	// Prompt is the instruction text sent as the user turn.
	Prompt string

	// Schema is the JSON Schema the response must conform to.
	// When nil, the response Content is raw text.
	Schema *Schema

	// MaxTokens caps the response length. Zero leaves the provider default.
	MaxTokens int

	// Temperature controls randomness. Range: 0.0 - 1.0.
	Temperature float64
}

// Schema defines the JSON structure expected from the model.
type Schema struct {
	// Name identifies this schema. Kebab-case, e.g. "worksheet".
	Name string

	// Description is sent to providers that accept one.
	Description string

	// Definition is the JSON Schema definition as a map.
	Definition map[string]any
}

// Response holds the model's output.
type Response struct {
	// Content is the generated JSON (or raw text when no schema was given).
	Content json.RawMessage

	// Usage reports token consumption for this request.
	Usage Usage

	// Model is the actual model that served the request.
	Model string

	// StopReason is "end". Truncated output surfaces as ErrMaxTokensExceeded
	// instead of a Response.
	StopReason string
}

// Usage tracks token consumption for a single request.
type Usage struct {
	InputTokens  int
	OutputTokens int
	TotalTokens  int
}

// reply is what an adapter pulls out of its SDK's response.
type reply struct {
	text      string
	truncated bool
	model     string
	usage     Usage
}

// finish runs the steps every adapter shares: strip a code fence, refuse
// truncated output, and check the JSON against the requested schema.
func finish(req Request, r reply) (*Response, error) {
	content := cleanJSON(r.text)
	if r.truncated {
		return nil, &ErrMaxTokensExceeded{Content: content}
	}
	if err := validateResponse(req.Schema, content); err != nil {
		return nil, err
	}
	if r.usage.TotalTokens == 0 {
		r.usage.TotalTokens = r.usage.InputTokens + r.usage.OutputTokens
	}
	return &Response{Content: content, Usage: r.usage, Model: r.model, StopReason: "end"}, nil
}

func requireKey(provider, key string) error {
	if key == "" {
		return fmt.Errorf("%s API key is required", provider)
	}
	return nil
}

// classifyStatus turns an SDK error carrying an HTTP status into
// ErrRateLimit for 429 and ErrProviderUnavailable otherwise.
func classifyStatus(err error, status int) error {
	if status == http.StatusTooManyRequests {
		return &ErrRateLimit{Err: err}
	}
	return &ErrProviderUnavailable{Err: err}
}

// resolveModel maps a short alias such as "gemini-flash" to a model id.
// Anything else is taken as a model id already.
func resolveModel(name string, aliases map[string]string) string {
	if id, ok := aliases[name]; ok {
		return id
	}
	return name
}
