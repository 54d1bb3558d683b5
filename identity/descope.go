package identity

import (
	"context"
	"fmt"
	"time"

	"github.com/descope/go-sdk/descope"
	"github.com/descope/go-sdk/descope/client"
	"github.com/rpupo63/studio-site-backend/errs"
)

type sessionValidator interface {
	ValidateSessionWithToken(ctx context.Context, sessionToken string) (bool, *descope.Token, error)
}

// DescopeVerifier validates session tokens issued by a Descope project.
type DescopeVerifier struct {
	auth sessionValidator
}

func NewDescopeVerifier(projectID string) (*DescopeVerifier, error) {
	if projectID == "" {
		return nil, errs.NewConfigMissingError("DESCOPE_PROJECT_ID")
	}
	dc, err := client.NewWithConfig(&client.Config{ProjectID: projectID})
	if err != nil {
		return nil, errs.NewConfigInvalidError("DESCOPE_PROJECT_ID", err.Error())
	}
	return &DescopeVerifier{auth: dc.Auth}, nil
}

func (v *DescopeVerifier) Verify(ctx context.Context, token string) (Session, error) {
	ok, t, err := v.auth.ValidateSessionWithToken(ctx, token)
	if err != nil {
		return Session{}, errs.NewInvalidTokenError(err)
	}
	if !ok || t == nil || t.ID == "" {
		return Session{}, errs.NewInvalidTokenError(fmt.Errorf("session rejected by identity service"))
	}

	session := Session{UserID: t.ID, Token: token}
	if t.Expiration > 0 {
		session.ExpiresAt = time.Unix(t.Expiration, 0).UTC()
	}
	if email, ok := t.Claims["email"].(string); ok {
		session.Email = email
	}
	if jti, ok := t.Claims["jti"].(string); ok && jti != "" {
		session.SessionID = jti
	} else {
		session.SessionID = sessionKey(token)
	}
	return session, nil
}
