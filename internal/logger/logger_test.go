package logger

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSanitizeKVs_RedactsSecrets(t *testing.T) {
	got := sanitizeKVs([]any{"model", "gemini-2.5-flash", "api_key", "sk-123", "Authorization", "Bearer x"})
	assert.Equal(t, []any{"model", "gemini-2.5-flash", "api_key", "[REDACTED]", "Authorization", "[REDACTED]"}, got)
}

func TestSanitizeKVs_OddLength(t *testing.T) {
	got := sanitizeKVs([]any{"topic", "Photosynthesis", "dangling"})
	assert.Equal(t, []any{"topic", "Photosynthesis", "dangling"}, got)
}

func TestNop(t *testing.T) {
	l := Nop()
	l.Info("ignored", "k", "v")
	l.With("request_id", "abc").Warn("still ignored")
}
