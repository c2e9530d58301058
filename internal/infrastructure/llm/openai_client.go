package llm

import (
	"context"
	"errors"
	"fmt"
	"strings"

	openai "github.com/openai/openai-go/v3"
	"github.com/openai/openai-go/v3/option"
	"mailtriage/internal/domain/triage"
)

var ErrEmptyResponse = errors.New("empty LLM response")

// Client implements the triage Completer port with the OpenAI chat API.
type Client struct {
	api   openai.Client
	model string
}

// NewClient creates a chat client for model. baseURL is optional and points
// the client at any OpenAI-compatible endpoint. Requests are never retried.
func NewClient(apiKey, model, baseURL string) (*Client, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("OPENAI_API_KEY is not set")
	}
	if model == "" {
		return nil, fmt.Errorf("model name is not set")
	}

	opts := []option.RequestOption{
		option.WithAPIKey(apiKey),
		option.WithMaxRetries(0),
	}
	if baseURL != "" {
		opts = append(opts, option.WithBaseURL(baseURL))
	}

	return &Client{
		api:   openai.NewClient(opts...),
		model: model,
	}, nil
}

func (c *Client) Complete(ctx context.Context, prompt triage.Prompt) (string, error) {
	params := openai.ChatCompletionNewParams{
		Model: c.model,
		Messages: []openai.ChatCompletionMessageParamUnion{
			openai.SystemMessage(prompt.System),
			openai.UserMessage(prompt.User),
		},
	}
	if prompt.Temperature != 0 {
		params.Temperature = openai.Float(prompt.Temperature)
	}
	if prompt.MaxTokens != 0 {
		params.MaxTokens = openai.Int(prompt.MaxTokens)
	}

	resp, err := c.api.Chat.Completions.New(ctx, params)
	if err != nil {
		return "", fmt.Errorf("openai api error: %w", err)
	}

	if len(resp.Choices) == 0 {
		return "", ErrEmptyResponse
	}

	return strings.TrimSpace(resp.Choices[0].Message.Content), nil
}
