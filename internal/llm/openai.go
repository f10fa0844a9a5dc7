package llm

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	openai "github.com/sashabaranov/go-openai"
)

var openaiAliases = map[string]string{
	"gpt-4o-mini": "gpt-4o-mini",
	"gpt-4.1":     "gpt-4.1",
	"gpt-mini":    "gpt-4.1-mini",
}

// OpenAIProvider speaks the chat completions API. OpenRouter reuses it.
type OpenAIProvider struct {
	client *openai.Client
	model  string
}

func NewOpenAIProvider(cfg OpenAIConfig) (*OpenAIProvider, error) {
	if err := requireKey("openai", cfg.APIKey); err != nil {
		return nil, err
	}
	oc := openai.DefaultConfig(cfg.APIKey)
	if cfg.BaseURL != "" {
		oc.BaseURL = cfg.BaseURL
	}
	return newChatProvider(oc, resolveModel(cfg.Model, openaiAliases)), nil
}

func newChatProvider(oc openai.ClientConfig, model string) *OpenAIProvider {
	return &OpenAIProvider{client: openai.NewClientWithConfig(oc), model: model}
}

func (p *OpenAIProvider) ModelID() string { return p.model }

func (p *OpenAIProvider) Generate(ctx context.Context, req Request) (*Response, error) {
	chat, err := p.chatRequest(req)
	if err != nil {
		return nil, err
	}
	resp, err := p.client.CreateChatCompletion(ctx, chat)
	if err != nil {
		var apiErr *openai.APIError
		if errors.As(err, &apiErr) {
			return nil, classifyStatus(err, apiErr.HTTPStatusCode)
		}
		var reqErr *openai.RequestError
		if errors.As(err, &reqErr) {
			return nil, classifyStatus(err, reqErr.HTTPStatusCode)
		}
		return nil, &ErrProviderUnavailable{Err: err}
	}
	if len(resp.Choices) == 0 {
		return nil, &ErrInvalidResponse{Parse: true, Err: fmt.Errorf("chat completion has no choices")}
	}

	choice := resp.Choices[0]
	return finish(req, reply{
		text:      choice.Message.Content,
		truncated: choice.FinishReason == openai.FinishReasonLength,
		model:     resp.Model,
		usage: Usage{
			InputTokens:  resp.Usage.PromptTokens,
			OutputTokens: resp.Usage.CompletionTokens,
			TotalTokens:  resp.Usage.TotalTokens,
		},
	})
}

// chatRequest asks for a JSON-schema response format when a schema is set.
// Strict mode stays off: it demands every property be required, and the
// worksheet schema has optional fields.
func (p *OpenAIProvider) chatRequest(req Request) (openai.ChatCompletionRequest, error) {
	chat := openai.ChatCompletionRequest{
		Model:               p.model,
		MaxCompletionTokens: req.MaxTokens,
		Temperature:         float32(req.Temperature),
	}
	if req.System != "" {
		chat.Messages = append(chat.Messages, openai.ChatCompletionMessage{
			Role: openai.ChatMessageRoleSystem, Content: req.System,
		})
	}
	chat.Messages = append(chat.Messages, openai.ChatCompletionMessage{
		Role: openai.ChatMessageRoleUser, Content: req.Prompt,
	})

	if req.Schema == nil {
		return chat, nil
	}
	raw, err := json.Marshal(req.Schema.Definition)
	if err != nil {
		return chat, fmt.Errorf("marshal schema %q: %w", req.Schema.Name, err)
	}
	chat.ResponseFormat = &openai.ChatCompletionResponseFormat{
		Type: openai.ChatCompletionResponseFormatTypeJSONSchema,
		JSONSchema: &openai.ChatCompletionResponseFormatJSONSchema{
			Name:        req.Schema.Name,
			Description: req.Schema.Description,
			Schema:      json.RawMessage(raw),
		},
	}
	return chat, nil
}
