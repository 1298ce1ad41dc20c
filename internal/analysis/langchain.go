package analysis

import (
	"context"
	"fmt"

	"github.com/tmc/langchaingo/llms"
	"github.com/tmc/langchaingo/llms/openai"
)

// LangChainGenerator completes prompts through any OpenAI-compatible endpoint.
type LangChainGenerator struct {
	llm llms.Model
}

// NewLangChainGenerator creates a generator for the given endpoint. An empty
// baseURL targets the OpenAI API.
func NewLangChainGenerator(baseURL, token, modelName string) (*LangChainGenerator, error) {
	opts := []openai.Option{
		openai.WithToken(token),
		openai.WithModel(modelName),
	}
	if baseURL != "" {
		opts = append(opts, openai.WithBaseURL(baseURL))
	}

	llm, err := openai.New(opts...)
	if err != nil {
		return nil, fmt.Errorf("creating openai client: %w", err)
	}

	return &LangChainGenerator{llm: llm}, nil
}

// Generate completes prompt.
func (g *LangChainGenerator) Generate(ctx context.Context, prompt string) (string, error) {
	text, err := llms.GenerateFromSinglePrompt(ctx, g.llm, prompt)
	if err != nil {
		return "", fmt.Errorf("calling llm: %w", err)
	}
	return text, nil
}
