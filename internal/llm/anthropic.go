package llm

import (
	"context"
	"errors"
	"fmt"

	"github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"
)

var anthropicAliases = map[string]string{
	"claude-sonnet": "claude-sonnet-4-20250514",
	"claude-haiku":  "claude-haiku-4-5-20251001",
}

// The Messages API requires max_tokens on every request.
const anthropicMaxTokens = 8192

type AnthropicProvider struct {
	client anthropic.Client
	model  string
}

// NewAnthropicProvider builds a client with SDK retries disabled; a
// submission gets exactly one request.
func NewAnthropicProvider(cfg AnthropicConfig, opts ...option.RequestOption) (*AnthropicProvider, error) {
	if err := requireKey("anthropic", cfg.APIKey); err != nil {
		return nil, err
	}
	opts = append([]option.RequestOption{
		option.WithAPIKey(cfg.APIKey),
		option.WithMaxRetries(0),
	}, opts...)
	return &AnthropicProvider{
		client: anthropic.NewClient(opts...),
		model:  resolveModel(cfg.Model, anthropicAliases),
	}, nil
}

func (p *AnthropicProvider) ModelID() string { return p.model }

func (p *AnthropicProvider) Generate(ctx context.Context, req Request) (*Response, error) {
	msg, err := p.client.Messages.New(ctx, p.params(req))
	if err != nil {
		var apiErr *anthropic.Error
		if errors.As(err, &apiErr) {
			return nil, classifyStatus(err, apiErr.StatusCode)
		}
		return nil, &ErrProviderUnavailable{Err: err}
	}

	r := reply{
		model:     string(msg.Model),
		truncated: msg.StopReason == anthropic.StopReasonMaxTokens,
		usage: Usage{
			InputTokens:  int(msg.Usage.InputTokens),
			OutputTokens: int(msg.Usage.OutputTokens),
		},
	}
	found := false
	for _, block := range msg.Content {
		if block.Type == "text" {
			r.text, found = block.Text, true
			break
		}
	}
	if !found {
		return nil, &ErrInvalidResponse{Parse: true, Err: fmt.Errorf("no text block in Anthropic response")}
	}
	return finish(req, r)
}

func (p *AnthropicProvider) params(req Request) anthropic.MessageNewParams {
	maxTokens := req.MaxTokens
	if maxTokens <= 0 {
		maxTokens = anthropicMaxTokens
	}
	params := anthropic.MessageNewParams{
		Model:     anthropic.Model(p.model),
		MaxTokens: int64(maxTokens),
		Messages:  []anthropic.MessageParam{anthropic.NewUserMessage(anthropic.NewTextBlock(req.Prompt))},
	}
	if req.System != "" {
		params.System = []anthropic.TextBlockParam{{Text: req.System}}
	}
	if req.Temperature > 0 {
		params.Temperature = anthropic.Float(req.Temperature)
	}
	if req.Schema != nil {
		params.OutputConfig = anthropic.OutputConfigParam{
			Format: anthropic.JSONOutputFormatParam{Schema: req.Schema.Definition},
		}
	}
	return params
}
