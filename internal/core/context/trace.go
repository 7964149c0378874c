// Package context carries request-scoped metadata through the call chain.
package context

import (
	"context"
	"strings"

	"github.com/google/uuid"
)

// TraceContext identifies one API request in logs and responses.
type TraceContext struct {
	TraceID   string
	SpanID    string
	RequestID string
}

type traceContextKey struct{}

// WithTrace adds TraceContext to context.
func WithTrace(ctx context.Context, trace *TraceContext) context.Context {
	return context.WithValue(ctx, traceContextKey{}, trace)
}

// GetTrace returns TraceContext from context, or nil.
func GetTrace(ctx context.Context) *TraceContext {
	if v, ok := ctx.Value(traceContextKey{}).(*TraceContext); ok {
		return v
	}
	return nil
}

// GetRequestID returns the request id on ctx, or "".
func GetRequestID(ctx context.Context) string {
	if t := GetTrace(ctx); t != nil {
		return t.RequestID
	}
	return ""
}

// NewTraceContext starts a trace for an incoming request. Client supplied
// ids are kept; missing ones are generated.
func NewTraceContext(requestID, traceID string) *TraceContext {
	requestID = strings.TrimSpace(requestID)
	if requestID == "" {
		requestID = uuid.NewString()
	}
	traceID = strings.TrimSpace(traceID)
	if traceID == "" {
		traceID = uuid.NewString()
	}
	span := uuid.New()
	return &TraceContext{
		TraceID:   traceID,
		SpanID:    strings.ReplaceAll(span.String(), "-", "")[:16],
		RequestID: requestID,
	}
}
