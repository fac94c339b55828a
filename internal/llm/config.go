package llm

import (
	"fmt"
	"os"
	"time"
)

// Config selects and configures a provider. Field tags name the keys used
// under the "llm" section of the config file.
type Config struct {
	// Provider is one of "anthropic", "openai", "gemini", "openrouter" or
	// "mock". Empty means discover from standard API key variables.
	Provider string `mapstructure:"provider"`

	Anthropic  AnthropicConfig  `mapstructure:"anthropic"`
	OpenAI     OpenAIConfig     `mapstructure:"openai"`
	Gemini     GeminiConfig     `mapstructure:"gemini"`
	OpenRouter OpenRouterConfig `mapstructure:"openrouter"`
	Retry      RetryConfig      `mapstructure:"retry"`

	// Timeout bounds one generation including retries.
	Timeout time.Duration `mapstructure:"timeout"`
}

type AnthropicConfig struct {
	APIKey string `mapstructure:"api_key"`
	Model  string `mapstructure:"model"`
}

type OpenAIConfig struct {
	APIKey  string `mapstructure:"api_key"`
	Model   string `mapstructure:"model"`
	BaseURL string `mapstructure:"base_url"`
}

type GeminiConfig struct {
	APIKey string `mapstructure:"api_key"`
	Model  string `mapstructure:"model"`
}

type OpenRouterConfig struct {
	APIKey  string `mapstructure:"api_key"`
	Model   string `mapstructure:"model"`
	BaseURL string `mapstructure:"base_url"`
}

// RetryConfig configures retries of transient failures.
type RetryConfig struct {
	MaxAttempts int           `mapstructure:"max_attempts"`
	InitialWait time.Duration `mapstructure:"initial_wait"`
	MaxWait     time.Duration `mapstructure:"max_wait"`
	Multiplier  float64       `mapstructure:"multiplier"`
}

// DefaultConfig returns the defaults merged under any config file.
func DefaultConfig() Config {
	return Config{
		Anthropic:  AnthropicConfig{Model: "claude-haiku"},
		OpenAI:     OpenAIConfig{Model: "gpt-4o-mini"},
		Gemini:     GeminiConfig{Model: "gemini-flash"},
		OpenRouter: OpenRouterConfig{Model: "google/gemini-2.0-flash-exp"},
		Retry: RetryConfig{
			MaxAttempts: 3,
			InitialWait: time.Second,
			MaxWait:     10 * time.Second,
			Multiplier:  2,
		},
		Timeout: 60 * time.Second,
	}
}

// standardKeys lists vendor API key variables in discovery order.
var standardKeys = []struct {
	provider string
	env      string
}{
	{"anthropic", "ANTHROPIC_API_KEY"},
	{"openai", "OPENAI_API_KEY"},
	{"gemini", "GEMINI_API_KEY"},
	{"openrouter", "OPENROUTER_API_KEY"},
}

// Discover fills empty API keys from the vendors' standard environment
// variables and, when Provider is empty, selects the first provider that
// has a key. It reports whether a provider is selected.
func (c *Config) Discover() bool {
	for _, k := range standardKeys {
		v := os.Getenv(k.env)
		if v == "" {
			continue
		}
		if key := c.keyFor(k.provider); key != nil && *key == "" {
			*key = v
		}
	}
	if c.Provider != "" {
		return true
	}
	for _, k := range standardKeys {
		if key := c.keyFor(k.provider); key != nil && *key != "" {
			c.Provider = k.provider
			return true
		}
	}
	return false
}

func (c *Config) keyFor(provider string) *string {
	switch provider {
	case "anthropic":
		return &c.Anthropic.APIKey
	case "openai":
		return &c.OpenAI.APIKey
	case "gemini":
		return &c.Gemini.APIKey
	case "openrouter":
		return &c.OpenRouter.APIKey
	}
	return nil
}

// Validate checks that the selected provider has its API key set.
func (c Config) Validate() error {
	switch c.Provider {
	case "mock":
		return nil
	case "":
		return fmt.Errorf("no LLM provider configured: set llm.provider or one of ANTHROPIC_API_KEY, OPENAI_API_KEY, GEMINI_API_KEY, OPENROUTER_API_KEY")
	}
	key := c.keyFor(c.Provider)
	if key == nil {
		return fmt.Errorf("unknown LLM provider: %q", c.Provider)
	}
	if *key == "" {
		return fmt.Errorf("llm.%s.api_key is required for the %s provider", c.Provider, c.Provider)
	}
	return nil
}
