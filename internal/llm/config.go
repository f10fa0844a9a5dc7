package llm

import (
	"fmt"
	"os"
	"strings"
	"time"
)

// Provider names accepted in Config.Provider.
const (
	ProviderGemini     = "gemini"
	ProviderOpenAI     = "openai"
	ProviderOpenRouter = "openrouter"
	ProviderAnthropic  = "anthropic"
	ProviderMock       = "mock"
)

// envPrefix namespaces the app's own settings, e.g. WORKSHEETAI_GEMINI_MODEL.
const envPrefix = "WORKSHEETAI_"

// Config selects and configures the model backend.
type Config struct {
	// Provider is one of the Provider* names. Gemini is the default.
	Provider string

	Gemini     GeminiConfig
	OpenAI     OpenAIConfig
	OpenRouter OpenRouterConfig
	Anthropic  AnthropicConfig

	// Timeout bounds a single generation request.
	Timeout time.Duration
}

type GeminiConfig struct {
	APIKey string
	Model  string
	// BaseURL overrides the Gemini API endpoint, e.g. for a proxy.
	BaseURL string
}

type OpenAIConfig struct {
	APIKey string
	Model  string
	// BaseURL points the client at an OpenAI-compatible server.
	BaseURL string
}

type OpenRouterConfig struct {
	APIKey  string
	Model   string
	BaseURL string
	// Referer and Title are sent as HTTP-Referer and X-Title so requests are
	// attributed to this app on openrouter.ai.
	Referer string
	Title   string
}

type AnthropicConfig struct {
	APIKey string
	Model  string
}

func DefaultConfig() Config {
	return Config{
		Provider:   ProviderGemini,
		Gemini:     GeminiConfig{Model: "gemini-flash"},
		OpenAI:     OpenAIConfig{Model: "gpt-4o-mini"},
		OpenRouter: OpenRouterConfig{Model: "google/gemini-2.5-flash", Title: "Worksheet AI"},
		Anthropic:  AnthropicConfig{Model: "claude-haiku"},
		Timeout:    90 * time.Second,
	}
}

// lookupFunc matches os.LookupEnv.
type lookupFunc func(string) (string, bool)

// settings maps each WORKSHEETAI_* suffix to the field it sets.
func (c *Config) settings() map[string]*string {
	return map[string]*string{
		"LLM_PROVIDER":        &c.Provider,
		"GEMINI_API_KEY":      &c.Gemini.APIKey,
		"GEMINI_MODEL":        &c.Gemini.Model,
		"GEMINI_BASE_URL":     &c.Gemini.BaseURL,
		"OPENAI_API_KEY":      &c.OpenAI.APIKey,
		"OPENAI_MODEL":        &c.OpenAI.Model,
		"OPENAI_BASE_URL":     &c.OpenAI.BaseURL,
		"OPENROUTER_API_KEY":  &c.OpenRouter.APIKey,
		"OPENROUTER_MODEL":    &c.OpenRouter.Model,
		"OPENROUTER_BASE_URL": &c.OpenRouter.BaseURL,
		"OPENROUTER_REFERER":  &c.OpenRouter.Referer,
		"ANTHROPIC_API_KEY":   &c.Anthropic.APIKey,
		"ANTHROPIC_MODEL":     &c.Anthropic.Model,
	}
}

// apiKey points at the key field for provider, or nil when the provider takes
// no key or is unknown.
func (c *Config) apiKey(provider string) *string {
	switch provider {
	case ProviderGemini:
		return &c.Gemini.APIKey
	case ProviderOpenAI:
		return &c.OpenAI.APIKey
	case ProviderOpenRouter:
		return &c.OpenRouter.APIKey
	case ProviderAnthropic:
		return &c.Anthropic.APIKey
	}
	return nil
}

// ConfigFromEnv overlays WORKSHEETAI_* variables on DefaultConfig.
func ConfigFromEnv() Config {
	return configFrom(os.LookupEnv)
}

func configFrom(lookup lookupFunc) Config {
	cfg := DefaultConfig()
	for name, dst := range cfg.settings() {
		if v, ok := lookup(envPrefix + name); ok && v != "" {
			*dst = v
		}
	}
	if v, ok := lookup(envPrefix + "LLM_TIMEOUT"); ok {
		if d, err := time.ParseDuration(v); err == nil && d > 0 {
			cfg.Timeout = d
		}
	}
	return cfg
}

// vendorKeys are the vendors' own key variables, in discovery order.
var vendorKeys = []struct {
	provider string
	env      string
}{
	{ProviderGemini, "GEMINI_API_KEY"},
	{ProviderOpenAI, "OPENAI_API_KEY"},
	{ProviderAnthropic, "ANTHROPIC_API_KEY"},
	{ProviderOpenRouter, "OPENROUTER_API_KEY"},
}

// DiscoverConfig picks the first provider whose vendor key variable is set.
func DiscoverConfig() (Config, bool) {
	return discover(os.LookupEnv)
}

func discover(lookup lookupFunc) (Config, bool) {
	for _, v := range vendorKeys {
		if key, ok := lookup(v.env); ok && key != "" {
			cfg := DefaultConfig()
			cfg.Provider = v.provider
			*cfg.apiKey(v.provider) = key
			return cfg, true
		}
	}
	return Config{}, false
}

// LoadConfig resolves the startup configuration. Explicit WORKSHEETAI_*
// settings win. When they do not yield a usable provider and none was chosen
// explicitly, the vendor variables are probed.
func LoadConfig() Config {
	return loadConfig(os.LookupEnv)
}

func loadConfig(lookup lookupFunc) Config {
	cfg := configFrom(lookup)
	if cfg.Validate() == nil {
		return cfg
	}
	if _, explicit := lookup(envPrefix + "LLM_PROVIDER"); explicit {
		return cfg
	}
	if found, ok := discover(lookup); ok {
		found.Timeout = cfg.Timeout
		return found
	}
	return cfg
}

// Validate reports a missing API key or an unknown provider.
func (c Config) Validate() error {
	if c.Provider == ProviderMock {
		return nil
	}
	key := c.apiKey(c.Provider)
	if key == nil {
		return fmt.Errorf("unknown LLM provider: %q", c.Provider)
	}
	if *key == "" {
		return fmt.Errorf("%s%s_API_KEY is required for the %s provider",
			envPrefix, strings.ToUpper(c.Provider), c.Provider)
	}
	return nil
}
