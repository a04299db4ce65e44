package users

import (
	"context"

	"github.com/goliatone/go-router"
)

var sessionCtxKey = &contextKey{"session"}

type contextKey struct {
	name string
}

// SessionKey is the router locals key the session middleware stores the
// caller under.
const SessionKey = "session"

// WithContext sets the SessionUser in the given context
func WithContext(r context.Context, user *SessionUser) context.Context {
	return context.WithValue(r, sessionCtxKey, user)
}

// FromContext finds the session user from the context.
func FromContext(ctx context.Context) (*SessionUser, bool) {
	raw, ok := ctx.Value(sessionCtxKey).(*SessionUser)
	return raw, ok && raw != nil
}

// CurrentUser extracts the session user from the router context. A nil
// return means the caller is anonymous.
func CurrentUser(ctx router.Context) *SessionUser {
	raw := ctx.Locals(SessionKey)
	if raw == nil {
		return nil
	}
	user, ok := raw.(*SessionUser)
	if !ok {
		return nil
	}
	return user
}
