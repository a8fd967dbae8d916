package ai

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/sashabaranov/go-openai"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// scriptedAPI fails the first `failures` calls, then succeeds with `reply`.
type scriptedAPI struct {
	failures int
	failErr  error
	emptyOn  bool // fail with an empty body instead of an error
	reply    string

	calls   int
	lastReq openai.ChatCompletionRequest
}

func (s *scriptedAPI) CreateChatCompletion(ctx context.Context, req openai.ChatCompletionRequest) (openai.ChatCompletionResponse, error) {
	s.calls++
	s.lastReq = req
	if s.calls <= s.failures {
		if s.emptyOn {
			return openai.ChatCompletionResponse{}, nil
		}
		return openai.ChatCompletionResponse{}, s.failErr
	}
	return openai.ChatCompletionResponse{
		Choices: []openai.ChatCompletionChoice{
			{Message: openai.ChatCompletionMessage{Role: openai.ChatMessageRoleAssistant, Content: s.reply}},
		},
	}, nil
}

func newTestClient(api completionAPI) *Client {
	return &Client{
		api:         api,
		model:       "test-model",
		configured:  true,
		maxAttempts: 3,
		baseDelay:   time.Millisecond,
	}
}

func TestComplete(t *testing.T) {
	t.Run("returns reply on first attempt", func(t *testing.T) {
		api := &scriptedAPI{reply: "hello there"}
		c := newTestClient(api)

		reply, err := c.Complete(context.Background(), "hi")
		require.NoError(t, err)
		assert.Equal(t, "hello there", reply)
		assert.Equal(t, 1, api.calls)
	})

	t.Run("sends a single-turn user prompt with the configured model", func(t *testing.T) {
		api := &scriptedAPI{reply: "ok"}
		c := newTestClient(api)

		_, err := c.Complete(context.Background(), "what's on this week?")
		require.NoError(t, err)
		assert.Equal(t, "test-model", api.lastReq.Model)
		require.Len(t, api.lastReq.Messages, 1)
		assert.Equal(t, openai.ChatMessageRoleUser, api.lastReq.Messages[0].Role)
		assert.Equal(t, "what's on this week?", api.lastReq.Messages[0].Content)
	})

	t.Run("recovers when two attempts fail and the third succeeds", func(t *testing.T) {
		api := &scriptedAPI{failures: 2, failErr: errors.New("connection reset"), reply: "made it"}
		c := newTestClient(api)

		reply, err := c.Complete(context.Background(), "hi")
		require.NoError(t, err)
		assert.Equal(t, "made it", reply)
		assert.Equal(t, 3, api.calls)
	})

	t.Run("returns ProviderError after exhausting attempts", func(t *testing.T) {
		api := &scriptedAPI{failures: 3, failErr: errors.New("gateway timeout")}
		c := newTestClient(api)

		_, err := c.Complete(context.Background(), "hi")
		require.Error(t, err)

		var provErr *ProviderError
		require.ErrorAs(t, err, &provErr)
		assert.Equal(t, 3, provErr.Attempts)
		assert.Contains(t, provErr.Error(), "gateway timeout")
		assert.Equal(t, 3, api.calls)
	})

	t.Run("treats an empty reply body as a failed attempt", func(t *testing.T) {
		api := &scriptedAPI{failures: 1, emptyOn: true, reply: "second time lucky"}
		c := newTestClient(api)

		reply, err := c.Complete(context.Background(), "hi")
		require.NoError(t, err)
		assert.Equal(t, "second time lucky", reply)
		assert.Equal(t, 2, api.calls)
	})
}

func TestHealthCheck(t *testing.T) {
	t.Run("true when canary reply contains ok", func(t *testing.T) {
		c := newTestClient(&scriptedAPI{reply: "OK, ready to go"})
		assert.True(t, c.HealthCheck(context.Background()))
	})

	t.Run("case-insensitive match", func(t *testing.T) {
		c := newTestClient(&scriptedAPI{reply: "ok"})
		assert.True(t, c.HealthCheck(context.Background()))
	})

	t.Run("false when reply lacks ok", func(t *testing.T) {
		c := newTestClient(&scriptedAPI{reply: "ready"})
		assert.False(t, c.HealthCheck(context.Background()))
	})

	t.Run("false when attempts are exhausted, without propagating", func(t *testing.T) {
		c := newTestClient(&scriptedAPI{failures: 3, failErr: errors.New("down")})
		assert.False(t, c.HealthCheck(context.Background()))
	})
}

func TestStatus(t *testing.T) {
	t.Run("reflects configured credentials without a network call", func(t *testing.T) {
		c := NewClient("sk-test", "", "gpt-4o-mini", 3, time.Second)
		status := c.Status()
		assert.True(t, status.Configured)
		assert.True(t, status.Available)
		assert.Equal(t, "gpt-4o-mini", status.Model)
	})

	t.Run("unconfigured without an api key", func(t *testing.T) {
		c := NewClient("", "", "gpt-4o-mini", 3, time.Second)
		assert.False(t, c.Status().Configured)
	})
}
