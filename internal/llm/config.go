package llm

import (
	"fmt"
	"os"
	"sort"
	"strings"
	"time"
)

// Provider names accepted in Config.Provider.
const (
	ProviderAnthropic  = "anthropic"
	ProviderOpenAI     = "openai"
	ProviderGemini     = "gemini"
	ProviderOpenRouter = "openrouter"
	ProviderAzure      = "azure"
	ProviderMock       = "mock"
)

// Config selects and configures the provider used by the oracle.
type Config struct {
	Provider string

	Anthropic  AnthropicConfig
	OpenAI     OpenAIConfig
	Gemini     GeminiConfig
	OpenRouter OpenRouterConfig
	Azure      AzureConfig
	Retry      RetryConfig

	// Timeout bounds a single attempt. Retries each get a fresh budget
	// but never outlive the caller's own deadline.
	Timeout time.Duration
}

type AnthropicConfig struct {
	APIKey string
	Model  string
}

type OpenAIConfig struct {
	APIKey  string
	Model   string
	BaseURL string
}

type GeminiConfig struct {
	APIKey  string
	Model   string
	BaseURL string // proxies and tests
}

type OpenRouterConfig struct {
	APIKey  string
	Model   string
	BaseURL string

	// AppTitle is sent as X-Title for attribution on the OpenRouter dashboard.
	AppTitle string
}

// AzureConfig addresses one model deployment inside an Azure OpenAI resource.
type AzureConfig struct {
	APIKey     string
	Endpoint   string
	Deployment string
}

type RetryConfig struct {
	MaxAttempts int
	InitialWait time.Duration
	MaxWait     time.Duration
	Multiplier  float64
}

// DefaultConfig uses the cheapest model of each provider. Evaluation
// prompts are short and structured, so small models score reliably.
func DefaultConfig() Config {
	return Config{
		Provider:   ProviderAnthropic,
		Anthropic:  AnthropicConfig{Model: "claude-haiku"},
		OpenAI:     OpenAIConfig{Model: "gpt-mini"},
		Gemini:     GeminiConfig{Model: "gemini-flash"},
		OpenRouter: OpenRouterConfig{Model: "google/gemini-2.5-flash", AppTitle: "interviewd"},
		Retry: RetryConfig{
			MaxAttempts: 3,
			InitialWait: time.Second,
			MaxWait:     10 * time.Second,
			Multiplier:  2,
		},
		Timeout: 30 * time.Second,
	}
}

// discovery lists the vendor API key variables probed when no provider is
// configured, in priority order.
var discovery = []struct {
	env   string
	apply func(*Config, string)
}{
	{"ANTHROPIC_API_KEY", func(c *Config, k string) { c.Provider, c.Anthropic.APIKey = ProviderAnthropic, k }},
	{"OPENAI_API_KEY", func(c *Config, k string) { c.Provider, c.OpenAI.APIKey = ProviderOpenAI, k }},
	{"GEMINI_API_KEY", func(c *Config, k string) { c.Provider, c.Gemini.APIKey = ProviderGemini, k }},
	{"OPENROUTER_API_KEY", func(c *Config, k string) { c.Provider, c.OpenRouter.APIKey = ProviderOpenRouter, k }},
	{"AZURE_OPENAI_API_KEY", func(c *Config, k string) {
		c.Provider, c.Azure.APIKey = ProviderAzure, k
		c.Azure.Endpoint = os.Getenv("AZURE_OPENAI_ENDPOINT")
		c.Azure.Deployment = os.Getenv("AZURE_OPENAI_DEPLOYMENT")
	}},
}

// DiscoverConfig returns defaults for the first provider whose vendor API
// key is set in the environment.
func DiscoverConfig() (Config, bool) {
	for _, d := range discovery {
		if k := os.Getenv(d.env); k != "" {
			cfg := DefaultConfig()
			d.apply(&cfg, k)
			return cfg, true
		}
	}
	return Config{}, false
}

// Validate reports the settings missing for the selected provider.
func (c Config) Validate() error {
	var required map[string]string
	switch c.Provider {
	case ProviderAnthropic:
		required = map[string]string{"llm.anthropic.api_key": c.Anthropic.APIKey}
	case ProviderOpenAI:
		required = map[string]string{"llm.openai.api_key": c.OpenAI.APIKey}
	case ProviderGemini:
		required = map[string]string{"llm.gemini.api_key": c.Gemini.APIKey}
	case ProviderOpenRouter:
		required = map[string]string{"llm.openrouter.api_key": c.OpenRouter.APIKey}
	case ProviderAzure:
		required = map[string]string{
			"llm.azure.api_key":    c.Azure.APIKey,
			"llm.azure.endpoint":   c.Azure.Endpoint,
			"llm.azure.deployment": c.Azure.Deployment,
		}
	case ProviderMock:
		return nil
	default:
		return fmt.Errorf("unknown LLM provider: %q", c.Provider)
	}

	var missing []string
	for key, v := range required {
		if v == "" {
			missing = append(missing, key)
		}
	}
	if len(missing) > 0 {
		sort.Strings(missing)
		return fmt.Errorf("%s provider requires %s", c.Provider, strings.Join(missing, ", "))
	}
	return nil
}
