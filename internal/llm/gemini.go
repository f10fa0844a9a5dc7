package llm

import (
	"context"
	"errors"
	"fmt"

	"google.golang.org/genai"
)

var geminiAliases = map[string]string{
	"gemini-flash": "gemini-2.5-flash",
	"gemini-pro":   "gemini-2.5-pro",
}

// GeminiProvider is the default backend.
type GeminiProvider struct {
	client *genai.Client
	model  string
}

func NewGeminiProvider(ctx context.Context, cfg GeminiConfig) (*GeminiProvider, error) {
	if err := requireKey("gemini", cfg.APIKey); err != nil {
		return nil, err
	}
	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:      cfg.APIKey,
		Backend:     genai.BackendGeminiAPI,
		HTTPOptions: genai.HTTPOptions{BaseURL: cfg.BaseURL},
	})
	if err != nil {
		return nil, fmt.Errorf("create Gemini client: %w", err)
	}
	return &GeminiProvider{client: client, model: resolveModel(cfg.Model, geminiAliases)}, nil
}

func (p *GeminiProvider) ModelID() string { return p.model }

func (p *GeminiProvider) Generate(ctx context.Context, req Request) (*Response, error) {
	prompt := []*genai.Content{genai.NewContentFromText(req.Prompt, genai.RoleUser)}
	result, err := p.client.Models.GenerateContent(ctx, p.model, prompt, geminiConfig(req))
	if err != nil {
		// The SDK returns APIError by value.
		var apiErr genai.APIError
		if errors.As(err, &apiErr) {
			return nil, classifyStatus(err, apiErr.Code)
		}
		return nil, &ErrProviderUnavailable{Err: err}
	}

	r := reply{text: result.Text(), model: p.model}
	if len(result.Candidates) > 0 {
		r.truncated = result.Candidates[0].FinishReason == genai.FinishReasonMaxTokens
	}
	if u := result.UsageMetadata; u != nil {
		r.usage = Usage{
			InputTokens:  int(u.PromptTokenCount),
			OutputTokens: int(u.CandidatesTokenCount),
			TotalTokens:  int(u.TotalTokenCount),
		}
	}
	return finish(req, r)
}

func geminiConfig(req Request) *genai.GenerateContentConfig {
	cfg := &genai.GenerateContentConfig{}
	if req.MaxTokens > 0 {
		cfg.MaxOutputTokens = int32(req.MaxTokens)
	}
	if req.Temperature > 0 {
		cfg.Temperature = genai.Ptr(float32(req.Temperature))
	}
	if req.System != "" {
		cfg.SystemInstruction = genai.NewContentFromText(req.System, genai.RoleUser)
	}
	if req.Schema != nil {
		cfg.ResponseMIMEType = "application/json"
		cfg.ResponseSchema = toGeminiSchema(req.Schema.Definition)
	}
	return cfg
}
