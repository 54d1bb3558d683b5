package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/rpupo63/studio-site-backend/admin"
	"github.com/rpupo63/studio-site-backend/errs"
	"github.com/rpupo63/studio-site-backend/models"
	"github.com/rpupo63/studio-site-backend/realtime"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

type adminHandler struct {
	responder Responder
	logger    zerolog.Logger
	shells    shellOpener
	signer    signer
	roles     roleRepo
	publisher realtime.Publisher
}

func newAdminHandler(shells shellOpener, signer signer, roles roleRepo, publisher realtime.Publisher) adminHandler {
	logger := log.With().Str("handlerName", "adminHandler").Logger()

	return adminHandler{
		responder: NewResponder(logger),
		logger:    logger,
		shells:    shells,
		signer:    signer,
		roles:     roles,
		publisher: publisher,
	}
}

// TabResponse is the shell view plus the data of the selected tab's panel
type TabResponse struct {
	Shell admin.View  `json:"shell"`
	Data  interface{} `json:"data"`
}

// getShell resolves the caller's admin shell
// @Summary Open admin shell
// @Description Returns the shell state. Unauthenticated callers get 401 with a login redirect, non-admins 403 with a home redirect and notice.
// @Tags Admin
// @Produce json
// @Security BearerAuth
// @Success 200 {object} admin.View
// @Failure 401 {object} admin.View
// @Failure 403 {object} admin.View
// @Router /admin [get]
func (h adminHandler) getShell() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		shell := h.shells.Open(r.Context(), bearerToken(r))
		decision := shell.Decision()
		if decision.State != admin.StateAuthorized {
			h.responder.WriteStatusJSON(w, deniedStatus(decision), shell.View())
			return
		}
		h.responder.WriteJSON(w, shell.View())
	}
}

// selectTab activates a tab and returns its panel data
// @Summary Select admin tab
// @Tags Admin
// @Produce json
// @Security BearerAuth
// @Param tab path string true "dashboard, orders, messages, content, projects, reviews, users or analytics"
// @Success 200 {object} TabResponse
// @Failure 400 {object} ErrorResponse "Unknown tab"
// @Router /admin/tabs/{tab} [get]
func (h adminHandler) selectTab() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		shell := h.shells.Open(r.Context(), bearerToken(r))
		if decision := shell.Decision(); decision.State != admin.StateAuthorized {
			h.responder.WriteStatusJSON(w, deniedStatus(decision), shell.View())
			return
		}

		panel, err := shell.Select(admin.Tab(chi.URLParam(r, "tab")))
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}

		data, err := panel.Load(r.Context())
		if err != nil {
			h.responder.WriteError(w, wrapDatabaseError("load", chi.URLParam(r, "tab")+" panel", err))
			return
		}

		h.responder.WriteJSON(w, TabResponse{Shell: shell.View(), Data: data})
	}
}

// signOut ends the caller's session and closes their shell
// @Summary Sign out
// @Tags Admin
// @Produce json
// @Security BearerAuth
// @Success 200 {object} admin.View
// @Failure 502 {object} ErrorResponse "Identity service rejected the logout"
// @Router /admin/sign-out [post]
func (h adminHandler) signOut() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		session, err := ctxGetSession(r.Context())
		if err != nil {
			h.responder.WriteError(w, errs.NewUnauthorizedError(err.Error()))
			return
		}

		if err := h.signer.SignOut(r.Context(), session); err != nil {
			h.responder.WriteError(w, err)
			return
		}

		h.logger.Info().Str("user_id", session.UserID).Msg("Admin signed out")
		h.responder.WriteJSON(w, admin.View{State: admin.StateDenied, Redirect: admin.LoginRedirect})
	}
}

// grantRole gives a user an application role
// @Summary Grant role
// @Tags Admin
// @Security BearerAuth
// @Param userID path string true "Identity service user ID"
// @Param role path string true "admin or editor"
// @Success 204
// @Failure 400 {object} ErrorResponse "Unknown role"
// @Failure 409 {object} ErrorResponse "User already has the role"
// @Router /admin/users/{userID}/roles/{role} [put]
func (h adminHandler) grantRole() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, role, err := roleParams(r)
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}

		if err := h.roles.Grant(r.Context(), userID, role); err != nil {
			h.responder.WriteError(w, wrapDatabaseError("grant", "user role", err))
			return
		}
		h.publisher.Publish(realtime.Event{Topic: models.UserRole{}.TableName(), Type: realtime.EventInsert, UserID: userID})

		w.WriteHeader(http.StatusNoContent)
	}
}

// revokeRole removes an application role from a user
// @Summary Revoke role
// @Tags Admin
// @Security BearerAuth
// @Param userID path string true "Identity service user ID"
// @Param role path string true "admin or editor"
// @Success 204
// @Failure 400 {object} ErrorResponse "Cannot revoke your own admin role"
// @Router /admin/users/{userID}/roles/{role} [delete]
func (h adminHandler) revokeRole() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, role, err := roleParams(r)
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}

		if session, err := ctxGetSession(r.Context()); err == nil && session.UserID == userID && role == models.RoleAdmin {
			h.responder.WriteError(w, errs.NewBadRequestError("cannot revoke your own admin role"))
			return
		}

		if err := h.roles.Revoke(r.Context(), userID, role); err != nil {
			h.responder.WriteError(w, wrapDatabaseError("revoke", "user role", err))
			return
		}
		h.publisher.Publish(realtime.Event{Topic: models.UserRole{}.TableName(), Type: realtime.EventDelete, UserID: userID})

		w.WriteHeader(http.StatusNoContent)
	}
}

func roleParams(r *http.Request) (string, string, error) {
	userID := chi.URLParam(r, "userID")
	if userID == "" {
		return "", "", errs.NewMissingRequiredFieldError("userID")
	}
	role := chi.URLParam(r, "role")
	if role != models.RoleAdmin && role != models.RoleEditor {
		return "", "", errs.NewInvalidFieldError("role", "must be one of: admin editor")
	}
	return userID, role, nil
}
