package api

import (
	"context"
	"errors"

	"github.com/hollowaylabs/vitrine/internal/history"
)

// sessionContextKey is the context key for the resolved browsing session.
type sessionContextKey struct{}

// sessionIDContextKey is the context key for the session ID (for logging).
type sessionIDContextKey struct{}

// ErrNoSessionInContext indicates no session was found in the context.
var ErrNoSessionInContext = errors.New("no session in context")

// WithSession returns a new context with the browsing session attached.
func WithSession(ctx context.Context, s *history.BrowsingHistory) context.Context {
	return context.WithValue(ctx, sessionContextKey{}, s)
}

// SessionFromContext extracts the browsing session from the context.
// Returns ErrNoSessionInContext if not present or nil.
func SessionFromContext(ctx context.Context) (*history.BrowsingHistory, error) {
	s, ok := ctx.Value(sessionContextKey{}).(*history.BrowsingHistory)
	if !ok || s == nil {
		return nil, ErrNoSessionInContext
	}
	return s, nil
}

// MustSessionFromContext extracts the session or panics.
// Use only when middleware guarantees session presence.
func MustSessionFromContext(ctx context.Context) *history.BrowsingHistory {
	s, err := SessionFromContext(ctx)
	if err != nil {
		panic("session not in context: middleware misconfiguration")
	}
	return s
}

// WithSessionID returns a new context with the session ID attached.
func WithSessionID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, sessionIDContextKey{}, id)
}

// SessionIDFromContext extracts the session ID from the context.
// Returns an empty string if not present.
func SessionIDFromContext(ctx context.Context) string {
	id, _ := ctx.Value(sessionIDContextKey{}).(string)
	return id
}
