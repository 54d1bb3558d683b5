package identity

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"time"
)

// Session is a verified identity-service session.
type Session struct {
	UserID    string    `json:"user_id"`
	SessionID string    `json:"session_id"`
	Email     string    `json:"email,omitempty"`
	ExpiresAt time.Time `json:"expires_at"`
	Token     string    `json:"-"`
}

// Verifier validates an access token issued by the identity service.
type Verifier interface {
	Verify(ctx context.Context, token string) (Session, error)
}

// sessionKey derives a stable session id for tokens that carry none.
func sessionKey(token string) string {
	sum := sha256.Sum256([]byte(token))
	return hex.EncodeToString(sum[:16])
}
