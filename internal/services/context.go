package services

import "context"

type sessionCtxKey struct{}

// WithSession attaches the authenticated session to ctx. The session
// middleware calls this; it deliberately never aborts a request, since each
// service enforces authentication at its own point in the validation order.
func WithSession(ctx context.Context, session *Session) context.Context {
	return context.WithValue(ctx, sessionCtxKey{}, session)
}

// SessionFromContext returns the session attached to ctx, or nil when the
// caller is unauthenticated.
func SessionFromContext(ctx context.Context) *Session {
	session, _ := ctx.Value(sessionCtxKey{}).(*Session)
	return session
}
