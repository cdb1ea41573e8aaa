package theme

import (
	"context"

	"github.com/ziadkadry99/themegen/internal/llm"
)

// Generation is a validated result plus the usage reported by the provider.
type Generation struct {
	Result       Result
	Model        string
	InputTokens  int
	OutputTokens int
	FinishReason string
}

// Generator turns a Request into exactly three designs. It holds no state
// between calls.
type Generator struct {
	provider    llm.Provider
	model       string
	maxTokens   int
	temperature float64
}

// Option configures a Generator.
type Option func(*Generator)

// WithModel overrides the provider's default model.
func WithModel(model string) Option {
	return func(g *Generator) { g.model = model }
}

// WithMaxTokens caps the completion size.
func WithMaxTokens(n int) Option {
	return func(g *Generator) { g.maxTokens = n }
}

// WithTemperature sets the sampling temperature.
func WithTemperature(t float64) Option {
	return func(g *Generator) { g.temperature = t }
}

// NewGenerator creates a Generator backed by provider.
func NewGenerator(provider llm.Provider, opts ...Option) *Generator {
	g := &Generator{
		provider:    provider,
		maxTokens:   32768,
		temperature: 0.8,
	}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

// Model returns the configured model name, which may be empty.
func (g *Generator) Model() string { return g.model }

// Generate calls the provider once. Provider errors are returned as-is; a
// response of the wrong shape is a *StructuralValidationError.
func (g *Generator) Generate(ctx context.Context, req Request) (*Generation, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	resp, err := g.provider.Complete(ctx, BuildCompletion(req, g.model, g.maxTokens, g.temperature))
	if err != nil {
		return nil, err
	}

	result, err := ParseResponse(resp.Content)
	if err != nil {
		if sv, ok := err.(*StructuralValidationError); ok && truncated(resp.FinishReason) {
			sv.Reason += " (response truncated by token limit)"
		}
		return nil, err
	}

	return &Generation{
		Result:       result,
		Model:        resp.Model,
		InputTokens:  resp.InputTokens,
		OutputTokens: resp.OutputTokens,
		FinishReason: resp.FinishReason,
	}, nil
}

func truncated(finishReason string) bool {
	switch finishReason {
	case "MAX_TOKENS", "length", "max_tokens":
		return true
	}
	return false
}
