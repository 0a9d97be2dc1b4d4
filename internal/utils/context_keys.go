package utils

import (
	"context"

	"github.com/google/uuid"
)

// ctxKey is unexported to prevent collisions.
type ctxKey string

// CtxKeyRequestID stores the id echoed back in every response envelope.
const CtxKeyRequestID ctxKey = "requestID"

func WithRequestID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, CtxKeyRequestID, id)
}

// RequestIDFromContext falls back to a fresh UUID so envelopes always carry one.
func RequestIDFromContext(ctx context.Context) string {
	if id, ok := ctx.Value(CtxKeyRequestID).(string); ok && id != "" {
		return id
	}
	return uuid.NewString()
}
