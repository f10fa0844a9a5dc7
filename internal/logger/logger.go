// Package logger is a thin wrapper over a sugared zap logger that redacts
// credentials from structured fields.
package logger

import (
	"fmt"
	"strings"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Logger writes structured key/value log lines.
type Logger struct {
	SugaredLogger *zap.SugaredLogger
}

// New builds a Logger. mode "prod"/"production" emits JSON, anything else
// the human-readable development encoding. When outputPath is non-empty
// logs go to that file instead of stderr.
func New(mode, outputPath string) (*Logger, error) {
	var cfg zap.Config
	switch strings.ToLower(mode) {
	case "prod", "production":
		cfg = zap.NewProductionConfig()
		cfg.Level = zap.NewAtomicLevelAt(zap.InfoLevel)
	default:
		cfg = zap.NewDevelopmentConfig()
		cfg.Level = zap.NewAtomicLevelAt(zap.DebugLevel)
	}
	if outputPath != "" {
		cfg.OutputPaths = []string{outputPath}
		cfg.ErrorOutputPaths = []string{outputPath}
	}
	cfg.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder

	zapLogger, err := cfg.Build()
	if err != nil {
		return nil, fmt.Errorf("build zap logger: %w", err)
	}
	return &Logger{SugaredLogger: zapLogger.Sugar()}, nil
}

// Nop returns a Logger that discards everything.
func Nop() *Logger {
	return &Logger{SugaredLogger: zap.NewNop().Sugar()}
}

func (l *Logger) Sync() {
	_ = l.SugaredLogger.Sync()
}

func (l *Logger) Debug(msg string, keysAndValues ...any) {
	l.SugaredLogger.Debugw(msg, sanitizeKVs(keysAndValues)...)
}

func (l *Logger) Info(msg string, keysAndValues ...any) {
	l.SugaredLogger.Infow(msg, sanitizeKVs(keysAndValues)...)
}

func (l *Logger) Warn(msg string, keysAndValues ...any) {
	l.SugaredLogger.Warnw(msg, sanitizeKVs(keysAndValues)...)
}

func (l *Logger) Error(msg string, keysAndValues ...any) {
	l.SugaredLogger.Errorw(msg, sanitizeKVs(keysAndValues)...)
}

// With returns a child logger that always carries the given fields.
func (l *Logger) With(keysAndValues ...any) *Logger {
	return &Logger{SugaredLogger: l.SugaredLogger.With(sanitizeKVs(keysAndValues)...)}
}

func sanitizeKVs(kv []any) []any {
	if len(kv) == 0 {
		return kv
	}
	out := make([]any, 0, len(kv))
	for i := 0; i < len(kv); i += 2 {
		if i == len(kv)-1 {
			out = append(out, kv[i])
			break
		}
		key := fmt.Sprint(kv[i])
		val := kv[i+1]
		if isRedactKey(strings.ToLower(key)) {
			val = "[REDACTED]"
		}
		out = append(out, key, val)
	}
	return out
}

func isRedactKey(key string) bool {
	for _, s := range []string{"api_key", "apikey", "token_secret", "secret", "authorization", "password", "credential"} {
		if strings.Contains(key, s) {
			return true
		}
	}
	return false
}
