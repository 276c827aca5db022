package logger

import (
	"context"
)

// contextKey is a type for context keys used by the logger package
type contextKey string

// requestIDKey is the context key for the request id
const requestIDKey contextKey = "request_id"

// WithRequestID returns a context carrying the request id, so downstream
// logging (including SQL traces) can correlate entries to one request.
func WithRequestID(ctx context.Context, requestID string) context.Context {
	return context.WithValue(ctx, requestIDKey, requestID)
}

// GetRequestID retrieves the request id from context, empty when unset
func GetRequestID(ctx context.Context) string {
	if requestID, ok := ctx.Value(requestIDKey).(string); ok {
		return requestID
	}
	return ""
}
