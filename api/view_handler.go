package api

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/rpupo63/studio-site-backend/errs"
	"github.com/rpupo63/studio-site-backend/views"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

type viewHandler struct {
	responder Responder
	logger    zerolog.Logger
	store     sectionReader
	now       func() time.Time
}

func newViewHandler(store sectionReader) viewHandler {
	logger := log.With().Str("handlerName", "viewHandler").Logger()

	return viewHandler{
		responder: NewResponder(logger),
		logger:    logger,
		store:     store,
		now:       time.Now,
	}
}

// PageView bundles every public section view-model
type PageView struct {
	NavBar   views.NavBarView        `json:"navbar"`
	Hero     views.HeroView          `json:"hero"`
	About    views.AboutView         `json:"about"`
	Services views.ServicesView      `json:"services"`
	Reviews  views.ReviewsHeaderView `json:"reviews"`
	Contact  views.ContactView       `json:"contact"`
	Footer   views.FooterView        `json:"footer"`
}

// getPage resolves the view-models of the whole public page
// @Summary Get public page view-models
// @Tags Views
// @Produce json
// @Success 200 {object} PageView
// @Router /views [get]
func (h viewHandler) getPage() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		active := h.store.ActiveSections()
		h.responder.WriteJSON(w, PageView{
			NavBar:   views.NavBar(active),
			Hero:     views.Hero(active),
			About:    views.About(active),
			Services: views.Services(active),
			Reviews:  views.ReviewsHeader(active),
			Contact:  views.Contact(active),
			Footer:   views.Footer(active, h.now().Year()),
		})
	}
}

// getView resolves a single section view-model
// @Summary Get one public view-model
// @Tags Views
// @Produce json
// @Param view path string true "navbar, footer, hero, about, services, reviews or contact"
// @Success 200 {object} interface{}
// @Failure 404 {object} ErrorResponse "Unknown view"
// @Router /views/{view} [get]
func (h viewHandler) getView() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		active := h.store.ActiveSections()

		var vm interface{}
		switch name := chi.URLParam(r, "view"); name {
		case "navbar":
			vm = views.NavBar(active)
		case "footer":
			vm = views.Footer(active, h.now().Year())
		case "hero":
			vm = views.Hero(active)
		case "about":
			vm = views.About(active)
		case "services":
			vm = views.Services(active)
		case "reviews":
			vm = views.ReviewsHeader(active)
		case "contact":
			vm = views.Contact(active)
		default:
			h.responder.WriteError(w, errs.NewNotFoundError("unknown view "+name))
			return
		}

		h.responder.WriteJSON(w, vm)
	}
}
