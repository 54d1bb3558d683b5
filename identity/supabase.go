package identity

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/rpupo63/studio-site-backend/errs"
)

// supabaseClaims are the claims Supabase Auth puts in its access tokens.
type supabaseClaims struct {
	SessionID string `json:"session_id"`
	Email     string `json:"email"`
	Role      string `json:"role"`
	jwt.RegisteredClaims
}

// SupabaseVerifier validates HS256 access tokens signed with the project's JWT secret.
type SupabaseVerifier struct {
	secret []byte
	parser *jwt.Parser
}

func NewSupabaseVerifier(secret, audience string) (*SupabaseVerifier, error) {
	if secret == "" {
		return nil, errs.NewConfigMissingError("SUPABASE_JWT_SECRET")
	}
	opts := []jwt.ParserOption{
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
		jwt.WithLeeway(5 * time.Second),
	}
	if audience != "" {
		opts = append(opts, jwt.WithAudience(audience))
	}
	return &SupabaseVerifier{secret: []byte(secret), parser: jwt.NewParser(opts...)}, nil
}

func (v *SupabaseVerifier) Verify(_ context.Context, token string) (Session, error) {
	claims := &supabaseClaims{}
	_, err := v.parser.ParseWithClaims(token, claims, func(*jwt.Token) (interface{}, error) {
		return v.secret, nil
	})
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return Session{}, errs.NewExpiredTokenError()
		}
		return Session{}, errs.NewInvalidTokenError(err)
	}
	if claims.Subject == "" {
		return Session{}, errs.NewInvalidTokenError(fmt.Errorf("token has no subject"))
	}
	// the anon key is a valid JWT too but identifies nobody
	if claims.Role == "anon" {
		return Session{}, errs.NewInvalidTokenError(fmt.Errorf("anonymous token"))
	}

	session := Session{
		UserID:    claims.Subject,
		SessionID: claims.SessionID,
		Email:     claims.Email,
		Token:     token,
	}
	if claims.ExpiresAt != nil {
		session.ExpiresAt = claims.ExpiresAt.Time
	}
	if session.SessionID == "" {
		session.SessionID = sessionKey(token)
	}
	return session, nil
}

// SupabaseLogout ends a session through the Supabase Auth REST API.
type SupabaseLogout struct {
	baseURL    string
	anonKey    string
	httpClient *http.Client
}

func NewSupabaseLogout(baseURL, anonKey string) *SupabaseLogout {
	return &SupabaseLogout{
		baseURL:    strings.TrimRight(baseURL, "/"),
		anonKey:    anonKey,
		httpClient: &http.Client{Timeout: 10 * time.Second},
	}
}

func (l *SupabaseLogout) Logout(ctx context.Context, token string) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, l.baseURL+"/auth/v1/logout", nil)
	if err != nil {
		return fmt.Errorf("failed to create logout request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+token)
	if l.anonKey != "" {
		req.Header.Set("apikey", l.anonKey)
	}

	resp, err := l.httpClient.Do(req)
	if err != nil {
		return errs.NewIdentityServiceError("logout", 0, err)
	}
	defer resp.Body.Close()

	// 401/404 mean the session is already gone
	switch {
	case resp.StatusCode >= 200 && resp.StatusCode < 300,
		resp.StatusCode == http.StatusUnauthorized,
		resp.StatusCode == http.StatusNotFound:
		return nil
	default:
		return errs.NewIdentityServiceError("logout", resp.StatusCode, nil)
	}
}
