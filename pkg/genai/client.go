package genai

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/openai/openai-go"
	"github.com/openai/openai-go/option"

	"yaake-backend/config"
)

// Client wraps an OpenAI-compatible chat completion endpoint
type Client struct {
	api   *openai.Client
	model string
}

// NewClient creates a generation client from configuration.
// OPENAI_BASE_URL allows pointing at any OpenAI-compatible provider.
func NewClient(cfg *config.Config) *Client {
	opts := []option.RequestOption{option.WithAPIKey(cfg.OpenAIAPIKey)}
	if cfg.OpenAIBaseURL != "" {
		opts = append(opts, option.WithBaseURL(cfg.OpenAIBaseURL))
	}
	return &Client{
		api:   openai.NewClient(opts...),
		model: cfg.OpenAIModel,
	}
}

// Generate runs a single non-streaming chat completion and returns the text
func (c *Client) Generate(ctx context.Context, system, prompt string) (string, error) {
	resp, err := c.api.Chat.Completions.New(ctx, openai.ChatCompletionNewParams{
		Messages: openai.F([]openai.ChatCompletionMessageParamUnion{
			openai.SystemMessage(system),
			openai.UserMessage(prompt),
		}),
		Model: openai.F(c.model),
	})
	if err != nil {
		return "", fmt.Errorf("chat completion failed: %w", err)
	}

	if len(resp.Choices) == 0 {
		return "", errors.New("chat completion returned no choices")
	}

	content := strings.TrimSpace(resp.Choices[0].Message.Content)
	if content == "" {
		return "", errors.New("chat completion returned empty content")
	}
	return content, nil
}
