package llm

import (
	"context"
	"fmt"

	"github.com/tmc/langchaingo/llms"
	"github.com/tmc/langchaingo/llms/openai"

	"github.com/notegraph-dev/notegraph/errors"
	"github.com/notegraph-dev/notegraph/pkg/config"
)

// OpenAIClient wraps an OpenAI-compatible chat model for query translation
// and report analysis.
type OpenAIClient struct {
	model       llms.Model
	temperature float64
}

// NewOpenAIClient creates a client from LLM configuration. BaseURL may point
// at any OpenAI-compatible endpoint.
func NewOpenAIClient(cfg *config.LLMConfig) (*OpenAIClient, error) {
	opts := []openai.Option{
		openai.WithToken(cfg.APIKey),
		openai.WithModel(cfg.Model),
	}
	if cfg.BaseURL != "" {
		opts = append(opts, openai.WithBaseURL(cfg.BaseURL))
	}

	model, err := openai.New(opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to create OpenAI client: %w", err)
	}

	return &OpenAIClient{model: model, temperature: cfg.Temperature}, nil
}

// GenerateText runs one prompt through the model and returns its completion.
func (c *OpenAIClient) GenerateText(ctx context.Context, prompt string) (string, error) {
	completion, err := llms.GenerateFromSinglePrompt(ctx, c.model, prompt,
		llms.WithTemperature(c.temperature))
	if err != nil {
		return "", errors.ErrLLMFailed("generate", err)
	}
	return completion, nil
}
