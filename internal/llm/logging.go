package llm

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/abhisek/worksheetai/internal/logger"
)

// LoggingProvider is a decorator that writes one structured log line per
// generation request.
type LoggingProvider struct {
	inner    Provider
	provider string
	log      *logger.Logger
}

// WithLogging wraps a Provider with request logging. A nil logger disables it.
func WithLogging(p Provider, providerName string, log *logger.Logger) Provider {
	if log == nil {
		log = logger.Nop()
	}
	return &LoggingProvider{inner: p, provider: providerName, log: log}
}

func (l *LoggingProvider) Generate(ctx context.Context, req Request) (*Response, error) {
	start := time.Now()
	requestID := uuid.NewString()

	resp, err := l.inner.Generate(ctx, req)

	fields := []any{
		"request_id", requestID,
		"provider", l.provider,
		"model", l.inner.ModelID(),
		"purpose", PurposeFrom(ctx),
		"prompt_chars", len(req.Prompt),
		"latency_ms", time.Since(start).Milliseconds(),
	}
	if req.Schema != nil {
		fields = append(fields, "schema", req.Schema.Name)
	}
	if resp != nil {
		fields = append(fields,
			"served_by", resp.Model,
			"input_tokens", resp.Usage.InputTokens,
			"output_tokens", resp.Usage.OutputTokens,
			"stop_reason", resp.StopReason,
		)
		if cost := LookupCost(resp.Model); cost != nil {
			fields = append(fields, "cost_usd", cost.Cost(resp.Usage.InputTokens, resp.Usage.OutputTokens))
		}
	}

	if err != nil {
		fields = append(fields, "error_kind", ErrorKind(err), "error", err.Error())
		l.log.Warn("llm request failed", fields...)
		return nil, err
	}

	l.log.Info("llm request", fields...)
	return resp, nil
}

func (l *LoggingProvider) ModelID() string {
	return l.inner.ModelID()
}

type purposeKey struct{}

// WithPurpose labels requests made with ctx, e.g. "worksheet-gen", so log
// lines say what the call was for.
func WithPurpose(ctx context.Context, purpose string) context.Context {
	return context.WithValue(ctx, purposeKey{}, purpose)
}

// PurposeFrom returns the label set by WithPurpose, or "unknown".
func PurposeFrom(ctx context.Context) string {
	if v, ok := ctx.Value(purposeKey{}).(string); ok && v != "" {
		return v
	}
	return "unknown"
}
