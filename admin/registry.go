package admin

import (
	"context"
	"sync"
	"time"

	"github.com/rpupo63/studio-site-backend/realtime"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// Registry keeps one shell per identity session and drops shells back to
// denied when their session signs out. Shells of expired sessions are evicted
// whenever another shell is opened.
type Registry struct {
	gate      Gate
	factories map[Tab]PanelFactory
	logger    zerolog.Logger
	now       func() time.Time

	mu     sync.Mutex
	shells map[string]*Shell
	cancel func()
}

func NewRegistry(gate Gate, factories map[Tab]PanelFactory) *Registry {
	return &Registry{
		gate:      gate,
		factories: factories,
		logger:    log.With().Str("component", "adminRegistry").Logger(),
		now:       time.Now,
		shells:    make(map[string]*Shell),
	}
}

// Listen subscribes to sign-out events.
func (r *Registry) Listen(subscriber realtime.Subscriber) error {
	cancel, err := subscriber.Subscribe(realtime.TopicAuth, realtime.EventSignedOut, r.onSignedOut)
	if err != nil {
		return err
	}
	r.mu.Lock()
	r.cancel = cancel
	r.mu.Unlock()
	return nil
}

func (r *Registry) Close() {
	r.mu.Lock()
	cancel := r.cancel
	r.cancel = nil
	r.mu.Unlock()
	if cancel != nil {
		cancel()
	}
}

// Open resolves token through the gate and returns the session's shell.
// Denied resolutions get a fresh shell that is not retained.
func (r *Registry) Open(ctx context.Context, token string) *Shell {
	decision := r.gate.Resolve(ctx, token)

	if decision.State != StateAuthorized {
		shell := NewShell(r.factories)
		shell.Settle(decision)
		return shell
	}

	sessionID := decision.Session.SessionID
	r.mu.Lock()
	defer r.mu.Unlock()

	r.evictExpired()
	if shell, ok := r.shells[sessionID]; ok && shell.State() == StateAuthorized {
		return shell
	}
	shell := NewShell(r.factories)
	shell.Settle(decision)
	r.shells[sessionID] = shell
	return shell
}

// evictExpired drops shells whose session has expired. Callers hold r.mu.
func (r *Registry) evictExpired() {
	now := r.now()
	evicted := 0
	for id, shell := range r.shells {
		expires := shell.Decision().Session.ExpiresAt
		if !expires.IsZero() && expires.Before(now) {
			delete(r.shells, id)
			evicted++
		}
	}
	if evicted > 0 {
		r.logger.Debug().Int("shells", evicted).Msg("Evicted expired admin shells")
	}
}

func (r *Registry) onSignedOut(evt realtime.Event) {
	r.mu.Lock()
	var affected []*Shell
	for id, shell := range r.shells {
		session := shell.Decision().Session
		if id == evt.SessionID || (evt.SessionID == "" && session.UserID == evt.UserID) {
			affected = append(affected, shell)
			delete(r.shells, id)
		}
	}
	r.mu.Unlock()

	for _, shell := range affected {
		shell.SignedOut()
	}
	if len(affected) > 0 {
		r.logger.Info().Str("userID", evt.UserID).Int("shells", len(affected)).Msg("Admin shells signed out")
	}
}
