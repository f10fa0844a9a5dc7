package llm

import (
	"encoding/json"
	"errors"
	"fmt"
)

// ErrRateLimit is a 429 from the provider.
type ErrRateLimit struct {
	Err error
}

func (e *ErrRateLimit) Error() string { return fmt.Sprintf("rate limited: %v", e.Err) }
func (e *ErrRateLimit) Unwrap() error { return e.Err }

// ErrInvalidResponse means the model answered, but not with usable JSON.
type ErrInvalidResponse struct {
	Content json.RawMessage
	// Parse is set when Content is not JSON at all, as opposed to JSON that
	// does not match the schema.
	Parse bool
	Err   error
}

func (e *ErrInvalidResponse) Error() string { return fmt.Sprintf("invalid LLM response: %v", e.Err) }
func (e *ErrInvalidResponse) Unwrap() error { return e.Err }

// ErrProviderUnavailable covers transport failures and non-success statuses
// other than 429.
type ErrProviderUnavailable struct {
	Err error
}

func (e *ErrProviderUnavailable) Error() string {
	if e.Err == nil {
		return "LLM provider unavailable"
	}
	return fmt.Sprintf("LLM provider unavailable: %v", e.Err)
}

func (e *ErrProviderUnavailable) Unwrap() error { return e.Err }

// ErrMaxTokensExceeded means the output was cut off; Content is the partial
// text.
type ErrMaxTokensExceeded struct {
	Content json.RawMessage
}

func (e *ErrMaxTokensExceeded) Error() string { return "LLM response truncated: max tokens exceeded" }

// ErrorKind labels err for log lines: rate_limit, max_tokens, parse, schema,
// unavailable or other.
func ErrorKind(err error) string {
	if err == nil {
		return ""
	}
	var (
		rl      *ErrRateLimit
		maxTok  *ErrMaxTokensExceeded
		inv     *ErrInvalidResponse
		unavail *ErrProviderUnavailable
	)
	switch {
	case errors.As(err, &rl):
		return "rate_limit"
	case errors.As(err, &maxTok):
		return "max_tokens"
	case errors.As(err, &inv) && inv.Parse:
		return "parse"
	case errors.As(err, &inv):
		return "schema"
	case errors.As(err, &unavail):
		return "unavailable"
	}
	return "other"
}
