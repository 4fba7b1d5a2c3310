package utils

import "context"

type contextKey string

const requestIDKey contextKey = "request_id"

// WithRequestID attache l'identifiant de requête au contexte
func WithRequestID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, requestIDKey, id)
}

// RequestIDFromContext retourne l'identifiant de requête, ou "" s'il est absent
func RequestIDFromContext(ctx context.Context) string {
	id, _ := ctx.Value(requestIDKey).(string)
	return id
}
