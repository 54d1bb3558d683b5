package identity

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/rpupo63/studio-site-backend/config"
	"github.com/rpupo63/studio-site-backend/errs"
	"github.com/rpupo63/studio-site-backend/realtime"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// LogoutClient ends a session at the identity service.
type LogoutClient interface {
	Logout(ctx context.Context, token string) error
}

// Service authenticates bearer tokens, tracks signed-out sessions and
// announces sign-outs on the realtime auth topic.
type Service struct {
	verifier  Verifier
	logout    LogoutClient
	publisher realtime.Publisher
	logger    zerolog.Logger
	now       func() time.Time

	mu      sync.Mutex
	revoked map[string]time.Time
}

func NewService(verifier Verifier, logout LogoutClient, publisher realtime.Publisher) *Service {
	return &Service{
		verifier:  verifier,
		logout:    logout,
		publisher: publisher,
		logger:    log.With().Str("component", "identityService").Logger(),
		now:       time.Now,
		revoked:   make(map[string]time.Time),
	}
}

// NewServiceFromConfig picks the verifier named by IDENTITY_PROVIDER (supabase or descope).
func NewServiceFromConfig(c map[string]string, publisher realtime.Publisher) (*Service, error) {
	switch provider := strings.ToLower(config.GetString(c, "IDENTITY_PROVIDER", "supabase")); provider {
	case "supabase":
		verifier, err := NewSupabaseVerifier(
			config.GetString(c, "SUPABASE_JWT_SECRET", ""),
			config.GetString(c, "SUPABASE_JWT_AUDIENCE", "authenticated"),
		)
		if err != nil {
			return nil, err
		}
		var logout LogoutClient
		if url := config.GetString(c, "SUPABASE_URL", ""); url != "" {
			logout = NewSupabaseLogout(url, config.GetString(c, "SUPABASE_ANON_KEY", ""))
		}
		return NewService(verifier, logout, publisher), nil
	case "descope":
		verifier, err := NewDescopeVerifier(config.GetString(c, "DESCOPE_PROJECT_ID", ""))
		if err != nil {
			return nil, err
		}
		return NewService(verifier, nil, publisher), nil
	default:
		return nil, errs.NewConfigInvalidError("IDENTITY_PROVIDER", "expected supabase or descope, got "+provider)
	}
}

// Authenticate verifies token and rejects sessions that were signed out here.
func (s *Service) Authenticate(ctx context.Context, token string) (Session, error) {
	token = strings.TrimSpace(token)
	if token == "" {
		return Session{}, errs.NewMissingTokenError()
	}

	session, err := s.verifier.Verify(ctx, token)
	if err != nil {
		return Session{}, err
	}

	if s.isRevoked(session.SessionID) {
		return Session{}, errs.NewRevokedSessionError()
	}
	return session, nil
}

// SignOut revokes the session locally, ends it at the identity service and
// publishes a signed_out event. The local revocation holds even if the remote call fails.
func (s *Service) SignOut(ctx context.Context, session Session) error {
	s.revoke(session)

	s.publisher.Publish(realtime.Event{
		Topic:     realtime.TopicAuth,
		Type:      realtime.EventSignedOut,
		UserID:    session.UserID,
		SessionID: session.SessionID,
	})
	s.logger.Info().Str("userID", session.UserID).Str("sessionID", session.SessionID).Msg("Session signed out")

	if s.logout == nil || session.Token == "" {
		return nil
	}
	if err := s.logout.Logout(ctx, session.Token); err != nil {
		s.logger.Warn().Err(err).Msg("Identity service logout failed")
		return err
	}
	return nil
}

func (s *Service) revoke(session Session) {
	expires := session.ExpiresAt
	if expires.IsZero() {
		expires = s.now().Add(24 * time.Hour)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.revoked[session.SessionID] = expires

	// drop entries whose tokens could no longer verify anyway
	now := s.now()
	for id, until := range s.revoked {
		if now.After(until) {
			delete(s.revoked, id)
		}
	}
}

func (s *Service) isRevoked(sessionID string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, ok := s.revoked[sessionID]
	return ok
}
