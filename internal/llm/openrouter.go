package llm

import (
	"net/http"

	openai "github.com/sashabaranov/go-openai"
)

const openRouterBaseURL = "https://openrouter.ai/api/v1"

// OpenRouterProvider is the OpenAI-compatible client pointed at OpenRouter.
// Model ids are passed through unchanged ("vendor/model").
type OpenRouterProvider struct {
	*OpenAIProvider
}

func NewOpenRouterProvider(cfg OpenRouterConfig) (*OpenRouterProvider, error) {
	if err := requireKey("openrouter", cfg.APIKey); err != nil {
		return nil, err
	}
	oc := openai.DefaultConfig(cfg.APIKey)
	oc.BaseURL = openRouterBaseURL
	if cfg.BaseURL != "" {
		oc.BaseURL = cfg.BaseURL
	}

	headers := http.Header{}
	if cfg.Referer != "" {
		headers.Set("HTTP-Referer", cfg.Referer)
	}
	if cfg.Title != "" {
		headers.Set("X-Title", cfg.Title)
	}
	if len(headers) > 0 {
		oc.HTTPClient = &headerDoer{next: http.DefaultClient, headers: headers}
	}
	return &OpenRouterProvider{OpenAIProvider: newChatProvider(oc, cfg.Model)}, nil
}

// headerDoer adds fixed headers to every outgoing request.
type headerDoer struct {
	next    openai.HTTPDoer
	headers http.Header
}

func (d *headerDoer) Do(req *http.Request) (*http.Response, error) {
	for k, v := range d.headers {
		req.Header[k] = v
	}
	return d.next.Do(req)
}
