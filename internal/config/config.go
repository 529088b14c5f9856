package config

import (
	"fmt"
	"os"
	"strings"
)

// Config holds application configuration loaded from environment variables.
// The game engine never reads the environment directly; provider credentials
// are resolved here and handed to the LLM adapter layer.
type Config struct {
	LogLevel     string
	OpenAIKey    string
	AnthropicKey string
}

// Load reads configuration from environment variables with sensible defaults.
func Load() *Config {
	return &Config{
		LogLevel:     envOrDefault("LOG_LEVEL", "info"),
		OpenAIKey:    os.Getenv("OPENAI_API_KEY"),
		AnthropicKey: os.Getenv("ANTHROPIC_API_KEY"),
	}
}

// ProviderKey returns the API key for a provider name, or an error naming
// the missing environment variable.
func (c *Config) ProviderKey(provider string) (string, error) {
	var key, envVar string
	switch strings.ToLower(provider) {
	case "openai":
		key, envVar = c.OpenAIKey, "OPENAI_API_KEY"
	case "anthropic":
		key, envVar = c.AnthropicKey, "ANTHROPIC_API_KEY"
	default:
		return "", fmt.Errorf("unknown provider %q", provider)
	}
	if key == "" {
		return "", fmt.Errorf("provider %s requires %s to be set", provider, envVar)
	}
	return key, nil
}

func envOrDefault(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
