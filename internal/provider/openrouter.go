package provider

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	openai "github.com/sashabaranov/go-openai"
)

// OpenRouter is the cloud backend. OpenRouter speaks the OpenAI chat
// completion wire format, so the go-openai client is pointed at its base
// URL with a bearer key.
type OpenRouter struct {
	client *openai.Client
	model  string
	apiKey string
}

// NewOpenRouter builds a cloud client for one model. An empty apiKey is
// allowed at construction; Invoke reports ErrAuth instead, so a partially
// configured deployment still starts and falls back cleanly.
func NewOpenRouter(baseURL, apiKey, model string, timeout time.Duration) *OpenRouter {
	cfg := openai.DefaultConfig(apiKey)
	cfg.BaseURL = baseURL
	cfg.HTTPClient = &http.Client{Timeout: timeout}
	return &OpenRouter{
		client: openai.NewClientWithConfig(cfg),
		model:  model,
		apiKey: apiKey,
	}
}

func (c *OpenRouter) Tag() Tag      { return TagCloud }
func (c *OpenRouter) Model() string { return c.model }

// Invoke performs a single chat completion call.
func (c *OpenRouter) Invoke(ctx context.Context, prompt, system string) (string, error) {
	if c.apiKey == "" {
		return "", fmt.Errorf("%w: openrouter api key not configured", ErrAuth)
	}

	messages := make([]openai.ChatCompletionMessage, 0, 2)
	if system != "" {
		messages = append(messages, openai.ChatCompletionMessage{
			Role:    openai.ChatMessageRoleSystem,
			Content: system,
		})
	}
	messages = append(messages, openai.ChatCompletionMessage{
		Role:    openai.ChatMessageRoleUser,
		Content: prompt,
	})

	resp, err := c.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model:    c.model,
		Messages: messages,
	})
	if err != nil {
		return "", classifyOpenAIError(err)
	}

	if len(resp.Choices) == 0 || resp.Choices[0].Message.Content == "" {
		return "", fmt.Errorf("%w: openrouter returned empty response", ErrUnavailable)
	}
	return resp.Choices[0].Message.Content, nil
}

func classifyOpenAIError(err error) error {
	if errors.Is(err, context.Canceled) {
		return err
	}
	var apiErr *openai.APIError
	if errors.As(err, &apiErr) {
		switch apiErr.HTTPStatusCode {
		case http.StatusUnauthorized, http.StatusForbidden:
			return fmt.Errorf("%w: openrouter: %v", ErrAuth, err)
		default:
			return fmt.Errorf("%w: openrouter status %d: %v", ErrUnavailable, apiErr.HTTPStatusCode, err)
		}
	}
	return classifyTransportError("openrouter", err)
}
