package authctx

import (
	"context"
	"errors"
)

var (
	ErrTokenNotFoundInContext     = errors.New("token not found in context")
	ErrSessionIDNotFoundInContext = errors.New("session ID not found in context")
)

type (
	tokenContextKey     struct{}
	sessionIDContextKey struct{}
)

const NoSessionID = "no_session"

// GetTokenFromContext retrieves the bearer token forwarded to the remote service.
func GetTokenFromContext(ctx context.Context) (string, error) {
	token, ok := ctx.Value(tokenContextKey{}).(string)
	if !ok || token == "" {
		return "", ErrTokenNotFoundInContext
	}
	return token, nil
}

// SetTokenInContext stores the bearer token in the context.
func SetTokenInContext(ctx context.Context, token string) context.Context {
	return context.WithValue(ctx, tokenContextKey{}, token)
}

// GetSessionIDFromContext retrieves the wizard session ID from the context.
func GetSessionIDFromContext(ctx context.Context) (string, error) {
	sessionID, ok := ctx.Value(sessionIDContextKey{}).(string)
	if !ok || sessionID == "" {
		return "", ErrSessionIDNotFoundInContext
	}
	return sessionID, nil
}

// MustGetSessionIDFromContext defaults to NoSessionID when the context carries no session.
func MustGetSessionIDFromContext(ctx context.Context) string {
	sessionID, err := GetSessionIDFromContext(ctx)
	if err != nil {
		return NoSessionID
	}
	return sessionID
}

// SetSessionIDInContext stores the wizard session ID in the context.
func SetSessionIDInContext(ctx context.Context, sessionID string) context.Context {
	return context.WithValue(ctx, sessionIDContextKey{}, sessionID)
}
