package ai

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/sashabaranov/go-openai"
)

// ProviderError is returned by Complete once every attempt has been
// exhausted. It carries the attempt count and the last underlying error.
type ProviderError struct {
	Attempts int
	LastErr  error
}

func (e *ProviderError) Error() string {
	return fmt.Sprintf("ai provider failed after %d attempts: %v", e.Attempts, e.LastErr)
}

func (e *ProviderError) Unwrap() error {
	return e.LastErr
}

// Status describes the provider configuration without making a network
// call.
type Status struct {
	Available  bool   `json:"available"`
	Model      string `json:"model"`
	Configured bool   `json:"configured"`
}

// completionAPI is the slice of the go-openai client this package uses.
// Tests substitute it to script attempt outcomes.
type completionAPI interface {
	CreateChatCompletion(ctx context.Context, req openai.ChatCompletionRequest) (openai.ChatCompletionResponse, error)
}

// Client wraps a single-turn chat completion call with bounded linear
// backoff. One Client is shared across requests; it holds no per-request
// state.
type Client struct {
	api         completionAPI
	model       string
	configured  bool
	maxAttempts int
	baseDelay   time.Duration
}

// NewClient builds a Client against an OpenAI-compatible endpoint. baseURL
// is optional and supports gateways such as OpenRouter.
func NewClient(apiKey, baseURL, model string, maxAttempts int, baseDelay time.Duration) *Client {
	config := openai.DefaultConfig(apiKey)
	if baseURL != "" {
		config.BaseURL = baseURL
	}
	if maxAttempts <= 0 {
		maxAttempts = 3
	}
	return &Client{
		api:         openai.NewClientWithConfig(config),
		model:       model,
		configured:  apiKey != "",
		maxAttempts: maxAttempts,
		baseDelay:   baseDelay,
	}
}

// Model returns the configured model name.
func (c *Client) Model() string {
	return c.model
}

// Complete sends the prompt as a single-turn completion, retrying up to
// maxAttempts times with linear backoff (baseDelay * attempt between
// attempts). An attempt fails if the call errors or the reply body is
// empty. Returns *ProviderError after the final failed attempt.
func (c *Client) Complete(ctx context.Context, prompt string) (string, error) {
	var lastErr error
	for attempt := 1; attempt <= c.maxAttempts; attempt++ {
		reply, err := c.attempt(ctx, prompt)
		if err == nil {
			log.Printf("[AIClient] completion attempt %d/%d succeeded", attempt, c.maxAttempts)
			return reply, nil
		}

		lastErr = err
		log.Printf("[AIClient] completion attempt %d/%d failed: %v", attempt, c.maxAttempts, err)

		if attempt < c.maxAttempts {
			time.Sleep(c.baseDelay * time.Duration(attempt))
		}
	}
	return "", &ProviderError{Attempts: c.maxAttempts, LastErr: lastErr}
}

func (c *Client) attempt(ctx context.Context, prompt string) (string, error) {
	resp, err := c.api.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: c.model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleUser, Content: prompt},
		},
	})
	if err != nil {
		return "", fmt.Errorf("failed to create chat completion: %w", err)
	}
	if len(resp.Choices) == 0 || strings.TrimSpace(resp.Choices[0].Message.Content) == "" {
		return "", errors.New("provider returned an empty reply")
	}
	return resp.Choices[0].Message.Content, nil
}

// healthPrompt is the canary sent by HealthCheck.
const healthPrompt = "respond with OK"

// HealthCheck sends a canary prompt through Complete and reports whether
// the reply contains "ok". Failures of any kind yield false; they never
// propagate.
func (c *Client) HealthCheck(ctx context.Context) bool {
	reply, err := c.Complete(ctx, healthPrompt)
	if err != nil {
		return false
	}
	return strings.Contains(strings.ToLower(reply), "ok")
}

// Status reports whether provider credentials are present. No network
// call is made.
func (c *Client) Status() Status {
	return Status{
		Available:  c.configured,
		Model:      c.model,
		Configured: c.configured,
	}
}
