package llm

import (
	"context"

	openai "github.com/sashabaranov/go-openai"
)

// MinimaxProvider implements Provider using the MiniMax API (OpenAI-compatible).
type MinimaxProvider struct {
	client *openai.Client
	model  string
}

// NewMinimaxProvider creates a new MiniMax provider.
func NewMinimaxProvider(apiKey string, model string) *MinimaxProvider {
	cfg := openai.DefaultConfig(apiKey)
	cfg.BaseURL = "https://api.minimax.io/v1"
	return &MinimaxProvider{
		client: openai.NewClientWithConfig(cfg),
		model:  model,
	}
}

func (p *MinimaxProvider) Name() string {
	return "minimax"
}

func (p *MinimaxProvider) Complete(ctx context.Context, req CompletionRequest) (*CompletionResponse, error) {
	model := req.Model
	if model == "" {
		model = p.model
	}
	return completeChat(ctx, p.client, req, model, float32(minimaxTemperature(req.Temperature)))
}

// minimaxTemperature clamps to (0.0, 1.0], the range MiniMax accepts.
func minimaxTemperature(t float64) float64 {
	if t <= 0 {
		return 0.01
	}
	if t > 1.0 {
		return 1.0
	}
	return t
}
