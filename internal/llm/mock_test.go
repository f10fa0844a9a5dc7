package llm

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMockProvider_ReplaysInOrder(t *testing.T) {
	mock := NewMockProvider(
		MockResponse{Content: json.RawMessage(`{"title":"A"}`), Usage: Usage{InputTokens: 10, OutputTokens: 5}},
	)
	mock.AddResponse(MockResponse{Content: json.RawMessage("```json\n{\"title\":\"B\"}\n```")})

	first, err := mock.Generate(context.Background(), Request{Prompt: "first"})
	require.NoError(t, err)
	assert.JSONEq(t, `{"title":"A"}`, string(first.Content))
	assert.Equal(t, 15, first.Usage.TotalTokens)

	second, err := mock.Generate(context.Background(), Request{Prompt: "second"})
	require.NoError(t, err)
	assert.JSONEq(t, `{"title":"B"}`, string(second.Content), "fence stripped")

	_, err = mock.Generate(context.Background(), Request{Prompt: "third"})
	var unavail *ErrProviderUnavailable
	assert.ErrorAs(t, err, &unavail)

	require.Equal(t, 3, mock.CallCount())
	assert.Equal(t, "second", mock.Calls[1].Prompt)
}

func TestMockProvider_ChecksSchema(t *testing.T) {
	mock := NewMockProvider(MockResponse{Content: json.RawMessage(`{"title":"Plants"}`)})
	_, err := mock.Generate(context.Background(), Request{Schema: quizSchema()})

	var inv *ErrInvalidResponse
	require.ErrorAs(t, err, &inv)
	assert.False(t, inv.Parse, "missing field is a schema failure")
}

func TestMockProvider_ScriptedError(t *testing.T) {
	mock := NewMockProvider(MockResponse{Err: &ErrRateLimit{}})
	_, err := mock.Generate(context.Background(), Request{})
	assert.Equal(t, "rate_limit", ErrorKind(err))
}

func TestMockProvider_CancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	mock := NewMockProvider(MockResponse{Content: json.RawMessage(`{}`)})
	_, err := mock.Generate(ctx, Request{})
	assert.ErrorIs(t, err, context.Canceled)
}
