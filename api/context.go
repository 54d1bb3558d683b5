package api

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/rpupo63/studio-site-backend/identity"
)

type keyType string

const sessionKey keyType = "session"

// ctxWithSession adds a verified session to the context
func ctxWithSession(ctx context.Context, session identity.Session) context.Context {
	return context.WithValue(ctx, sessionKey, session)
}

// ctxGetSession retrieves the verified session from the context
func ctxGetSession(ctx context.Context) (identity.Session, error) {
	session, ok := ctx.Value(sessionKey).(identity.Session)
	if !ok {
		return identity.Session{}, errors.New("session not found in context")
	}
	return session, nil
}

// bearerToken extracts the token from an Authorization: Bearer header.
func bearerToken(r *http.Request) string {
	authHeader := r.Header.Get("Authorization")
	if !strings.HasPrefix(authHeader, "Bearer ") {
		return ""
	}
	return strings.TrimSpace(strings.TrimPrefix(authHeader, "Bearer "))
}
