package llm

import (
	"fmt"
	"os"

	"github.com/ziadkadry99/themegen/internal/auth"
)

// NewProvider creates a new LLM provider based on the given provider type and model.
// API keys are read from the provider's environment variable first, then from
// stored credentials. Supported provider types: "anthropic", "openai",
// "google", "ollama", "openrouter", "minimax".
func NewProvider(providerType string, model string) (Provider, error) {
	switch providerType {
	case "anthropic":
		apiKey, err := requireKey(providerType)
		if err != nil {
			return nil, err
		}
		return NewAnthropicProvider(apiKey, model), nil

	case "openai":
		apiKey, err := requireKey(providerType)
		if err != nil {
			return nil, err
		}
		return NewOpenAIProvider(apiKey, model), nil

	case "google":
		apiKey, err := requireKey(providerType)
		if err != nil {
			return nil, err
		}
		return NewGoogleProvider(apiKey, model), nil

	case "openrouter":
		apiKey, err := requireKey(providerType)
		if err != nil {
			return nil, err
		}
		return NewOpenRouterProvider(apiKey, model), nil

	case "minimax":
		apiKey, err := requireKey(providerType)
		if err != nil {
			return nil, err
		}
		return NewMinimaxProvider(apiKey, model), nil

	case "ollama":
		host := os.Getenv("OLLAMA_HOST")
		if host == "" {
			host = "http://localhost:11434"
		}
		return NewOllamaProvider(host, model), nil

	default:
		return nil, fmt.Errorf("unsupported provider type: %s", providerType)
	}
}

func requireKey(provider string) (string, error) {
	key := auth.GetAPIKey(provider)
	if key == "" {
		return "", fmt.Errorf("%s environment variable is not set (or run `themegen auth set %s`)", auth.EnvVar(provider), provider)
	}
	return key, nil
}
