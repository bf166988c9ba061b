package httpx

import "context"

type ctxKey string

const (
	// CtxKeyUserID holds the verified subject string for rate limiting and
	// handler use.
	CtxKeyUserID ctxKey = "user_id"
)

// ContextWithUserID returns a context carrying the verified subject.
func ContextWithUserID(ctx context.Context, userID string) context.Context {
	return context.WithValue(ctx, CtxKeyUserID, userID)
}

// UserIDFromContext returns the verified subject, or "" if unauthenticated.
func UserIDFromContext(ctx context.Context) string {
	if v, ok := ctx.Value(CtxKeyUserID).(string); ok {
		return v
	}
	return ""
}
