package admin

import (
	"context"

	"github.com/rpupo63/studio-site-backend/identity"
	"github.com/rpupo63/studio-site-backend/models"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

type State string

const (
	StateLoading    State = "loading"
	StateAuthorized State = "authorized"
	StateDenied     State = "denied"
)

const (
	// LoginRedirect sends a visitor without a session to sign in, tagged with the admin intent.
	LoginRedirect = "/auth?redirect=admin"
	// HomeRedirect sends a signed-in non-admin back to the public page.
	HomeRedirect    = "/"
	RejectionNotice = "Access denied: administrator privileges are required."
)

type Authenticator interface {
	Authenticate(ctx context.Context, token string) (identity.Session, error)
}

type RoleChecker interface {
	HasRole(ctx context.Context, userID, role string) (bool, error)
}

// Decision is the outcome of resolving an admin session.
type Decision struct {
	State    State            `json:"state"`
	Redirect string           `json:"redirect,omitempty"`
	Notice   string           `json:"notice,omitempty"`
	Session  identity.Session `json:"-"`
}

// Gate authorizes admin access with an identity session plus an admin row in user_roles.
type Gate struct {
	auth   Authenticator
	roles  RoleChecker
	logger zerolog.Logger
}

func NewGate(auth Authenticator, roles RoleChecker) Gate {
	return Gate{
		auth:   auth,
		roles:  roles,
		logger: log.With().Str("component", "adminGate").Logger(),
	}
}

// Resolve never fails: every problem becomes a denied decision with a redirect.
func (g Gate) Resolve(ctx context.Context, token string) Decision {
	session, err := g.auth.Authenticate(ctx, token)
	if err != nil {
		g.logger.Debug().Err(err).Msg("No valid session for admin")
		return Decision{State: StateDenied, Redirect: LoginRedirect}
	}

	isAdmin, err := g.roles.HasRole(ctx, session.UserID, models.RoleAdmin)
	if err != nil {
		g.logger.Error().Err(err).Str("userID", session.UserID).Msg("Role lookup failed")
	}
	if err != nil || !isAdmin {
		return Decision{State: StateDenied, Redirect: HomeRedirect, Notice: RejectionNotice, Session: session}
	}

	return Decision{State: StateAuthorized, Session: session}
}
