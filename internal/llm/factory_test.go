package llm

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewProvider_MissingKeyIsStartupError(t *testing.T) {
	_, err := NewProvider(context.Background(), Config{Provider: ProviderGemini}, nil)
	assert.ErrorIs(t, err, ErrNotConfigured)

	_, err = NewProvider(context.Background(), Config{Provider: "palm"}, nil)
	assert.ErrorIs(t, err, ErrNotConfigured)
}

func TestNewProvider_WrapsBackend(t *testing.T) {
	p, err := NewProvider(context.Background(), Config{Provider: ProviderMock, Timeout: time.Second}, nil)
	require.NoError(t, err)
	assert.Equal(t, ProviderMock, p.ModelID())

	logged, ok := p.(*LoggingProvider)
	require.True(t, ok, "outermost layer logs")
	_, ok = logged.inner.(*TimeoutProvider)
	assert.True(t, ok, "timeout sits under logging")
}

type blockingProvider struct{}

func (blockingProvider) Generate(ctx context.Context, _ Request) (*Response, error) {
	<-ctx.Done()
	return nil, &ErrProviderUnavailable{Err: ctx.Err()}
}

func (blockingProvider) ModelID() string { return "blocking" }

func TestWithTimeout(t *testing.T) {
	p := WithTimeout(blockingProvider{}, 20*time.Millisecond)
	_, err := p.Generate(context.Background(), Request{})
	assert.ErrorIs(t, err, context.DeadlineExceeded)
	assert.Equal(t, "unavailable", ErrorKind(err))

	var inner Provider = blockingProvider{}
	assert.Equal(t, inner, WithTimeout(inner, 0), "zero timeout leaves the provider bare")
}

func TestWithLogging(t *testing.T) {
	mock := NewMockProvider(MockResponse{Content: json.RawMessage(`{"ok":true}`)})
	p := WithLogging(mock, ProviderMock, nil)

	resp, err := p.Generate(WithPurpose(context.Background(), "worksheet-gen"), Request{Prompt: "x"})
	require.NoError(t, err)
	assert.JSONEq(t, `{"ok":true}`, string(resp.Content))

	_, err = p.Generate(context.Background(), Request{Prompt: "y"})
	assert.Error(t, err, "queue drained")
}

func TestPurpose(t *testing.T) {
	assert.Equal(t, "unknown", PurposeFrom(context.Background()))
	assert.Equal(t, "worksheet-gen", PurposeFrom(WithPurpose(context.Background(), "worksheet-gen")))
	assert.Equal(t, "unknown", PurposeFrom(WithPurpose(context.Background(), "")))
}

func TestErrorKind(t *testing.T) {
	tests := []struct {
		err  error
		want string
	}{
		{nil, ""},
		{&ErrRateLimit{}, "rate_limit"},
		{&ErrInvalidResponse{Parse: true}, "parse"},
		{&ErrInvalidResponse{}, "schema"},
		{&ErrProviderUnavailable{}, "unavailable"},
		{&ErrMaxTokensExceeded{}, "max_tokens"},
		{errors.New("boom"), "other"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, ErrorKind(tt.err), "%v", tt.err)
	}
}

func TestLookupCost(t *testing.T) {
	c := LookupCost("gemini-2.5-flash")
	require.NotNil(t, c)
	assert.InDelta(t, 0.3, c.Cost(1_000_000, 0), 1e-9)

	snap := LookupCost("gpt-4o-mini-2024-07-18")
	require.NotNil(t, snap, "dated snapshot falls back to base id")
	assert.Equal(t, 0.15, snap.InputPerMTok)

	assert.Nil(t, LookupCost("no-such-model"))
	assert.Nil(t, LookupCost("gpt-4omni"), "prefix must end at a dash")
}
