package logger

import (
	"context"

	"go.uber.org/zap"
)

type ctxKey int

const (
	loggerKey ctxKey = iota
	requestIDKey
	searchModeKey
)

// ctxFields lists the context values copied onto every WithContext logger.
var ctxFields = []struct {
	key  ctxKey
	name string
}{
	{requestIDKey, "request_id"},
	{searchModeKey, "search_mode"},
}

// WithContext returns l annotated with the request-scoped values found in ctx.
func (l *Logger) WithContext(ctx context.Context) *Logger {
	if ctx == nil {
		return l
	}
	var fields []zap.Field
	for _, f := range ctxFields {
		if v := stringValue(ctx, f.key); v != "" {
			fields = append(fields, zap.String(f.name, v))
		}
	}
	if len(fields) == 0 {
		return l
	}
	return l.With(fields...)
}

// FromContext returns the logger stored by ToContext, or the global one.
func FromContext(ctx context.Context) *Logger {
	if ctx == nil {
		return L()
	}
	if l, ok := ctx.Value(loggerKey).(*Logger); ok && l != nil {
		return l.WithContext(ctx)
	}
	return L().WithContext(ctx)
}

func ToContext(ctx context.Context, l *Logger) context.Context {
	return context.WithValue(ctx, loggerKey, l)
}

func WithRequestID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, requestIDKey, id)
}

func RequestID(ctx context.Context) string { return stringValue(ctx, requestIDKey) }

// WithSearchMode tags ctx with the search mode ("quick" or "deep").
func WithSearchMode(ctx context.Context, mode string) context.Context {
	return context.WithValue(ctx, searchModeKey, mode)
}

func SearchMode(ctx context.Context) string { return stringValue(ctx, searchModeKey) }

func stringValue(ctx context.Context, key ctxKey) string {
	s, _ := ctx.Value(key).(string)
	return s
}
