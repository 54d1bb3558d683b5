package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/rpupo63/studio-site-backend/errs"
	"github.com/rpupo63/studio-site-backend/models"
	"github.com/rpupo63/studio-site-backend/realtime"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

type sectionHandler struct {
	responder Responder
	logger    zerolog.Logger
	store     sectionReader
	repo      sectionRepo
	publisher realtime.Publisher
}

func newSectionHandler(store sectionReader, repo sectionRepo, publisher realtime.Publisher) sectionHandler {
	logger := log.With().Str("handlerName", "sectionHandler").Logger()

	return sectionHandler{
		responder: NewResponder(logger),
		logger:    logger,
		store:     store,
		repo:      repo,
		publisher: publisher,
	}
}

// SectionCollection is the store's current view of the content sections table
type SectionCollection struct {
	Sections []models.ContentSection `json:"sections"`
	Total    int                     `json:"total"`
	Loading  bool                    `json:"loading"`
	Error    string                  `json:"error,omitempty"`
}

func (h sectionHandler) collection(sections []models.ContentSection) SectionCollection {
	return SectionCollection{
		Sections: sections,
		Total:    len(sections),
		Loading:  h.store.Loading(),
		Error:    h.store.Err(),
	}
}

// getAllSections lists every content section
// @Summary Get all content sections
// @Tags Sections
// @Produce json
// @Success 200 {object} SectionCollection
// @Router /sections [get]
func (h sectionHandler) getAllSections() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		h.responder.WriteJSON(w, h.collection(h.store.Sections()))
	}
}

// getActiveSections lists active content sections in sort order
// @Summary Get active content sections
// @Tags Sections
// @Produce json
// @Success 200 {object} SectionCollection
// @Router /sections/active [get]
func (h sectionHandler) getActiveSections() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		h.responder.WriteJSON(w, h.collection(h.store.ActiveSections()))
	}
}

// getSection returns the first section of a type by sort order
// @Summary Get content section by type
// @Tags Sections
// @Produce json
// @Param sectionType path string true "Section type"
// @Success 200 {object} models.ContentSection
// @Failure 404 {object} ErrorResponse "No section of this type"
// @Router /sections/{sectionType} [get]
func (h sectionHandler) getSection() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sectionType := chi.URLParam(r, "sectionType")
		section, ok := h.store.Section(sectionType)
		if !ok {
			h.responder.WriteError(w, errs.NewNotFound("section "+sectionType))
			return
		}
		h.responder.WriteJSON(w, section)
	}
}

// getSectionMetadata returns the metadata map of a section type
// @Summary Get content section metadata by type
// @Tags Sections
// @Produce json
// @Param sectionType path string true "Section type"
// @Success 200 {object} map[string]interface{}
// @Failure 404 {object} ErrorResponse "No section of this type"
// @Router /sections/{sectionType}/metadata [get]
func (h sectionHandler) getSectionMetadata() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sectionType := chi.URLParam(r, "sectionType")
		meta, ok := h.store.Metadata(sectionType)
		if !ok {
			h.responder.WriteError(w, errs.NewNotFound("section "+sectionType))
			return
		}
		if meta == nil {
			meta = map[string]interface{}{}
		}
		h.responder.WriteJSON(w, meta)
	}
}

// createSection creates a content section
// @Summary Create content section
// @Tags Admin
// @Accept json
// @Produce json
// @Param section body SectionPayload true "Section data"
// @Success 201 {object} models.ContentSection
// @Failure 400 {object} ErrorResponse "Invalid section data"
// @Router /admin/sections [post]
func (h sectionHandler) createSection() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var payload SectionPayload
		if err := decodeAndValidate(w, r, &payload, "section"); err != nil {
			h.responder.WriteError(w, err)
			return
		}

		section := models.ContentSection{}
		applySectionPayload(&section, payload)

		if err := h.repo.Add(r.Context(), &section); err != nil {
			h.responder.WriteError(w, wrapDatabaseError("create", "content section", err))
			return
		}
		h.publish(realtime.EventInsert, section)

		h.responder.WriteStatusJSON(w, http.StatusCreated, section)
	}
}

// updateSection replaces a content section
// @Summary Update content section
// @Tags Admin
// @Accept json
// @Produce json
// @Param sectionID path string true "Section ID" format(uuid)
// @Param section body SectionPayload true "Section data"
// @Success 200 {object} models.ContentSection
// @Failure 404 {object} ErrorResponse "Section not found"
// @Router /admin/sections/{sectionID} [put]
func (h sectionHandler) updateSection() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := uuidParam(r, "sectionID")
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}

		var payload SectionPayload
		if err := decodeAndValidate(w, r, &payload, "section"); err != nil {
			h.responder.WriteError(w, err)
			return
		}

		section, err := h.repo.FindByID(r.Context(), id)
		if err != nil {
			h.responder.WriteError(w, wrapDatabaseError("find", "content section", err))
			return
		}
		applySectionPayload(section, payload)

		if err := h.repo.Update(r.Context(), section); err != nil {
			h.responder.WriteError(w, wrapDatabaseError("update", "content section", err))
			return
		}
		h.publish(realtime.EventUpdate, *section)

		h.responder.WriteJSON(w, section)
	}
}

// deleteSection removes a content section
// @Summary Delete content section
// @Tags Admin
// @Param sectionID path string true "Section ID" format(uuid)
// @Success 204
// @Failure 404 {object} ErrorResponse "Section not found"
// @Router /admin/sections/{sectionID} [delete]
func (h sectionHandler) deleteSection() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := uuidParam(r, "sectionID")
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}

		if err := h.repo.Delete(r.Context(), id); err != nil {
			h.responder.WriteError(w, wrapDatabaseError("delete", "content section", err))
			return
		}
		h.publish(realtime.EventDelete, models.ContentSection{ID: id})

		w.WriteHeader(http.StatusNoContent)
	}
}

func (h sectionHandler) publish(eventType realtime.EventType, section models.ContentSection) {
	h.publisher.Publish(realtime.Event{Topic: section.TableName(), Type: eventType, RecordID: section.ID.String()})
}

func applySectionPayload(section *models.ContentSection, payload SectionPayload) {
	section.SectionType = cleanText(payload.SectionType)
	section.Title = cleanOptional(payload.Title)
	section.Subtitle = cleanOptional(payload.Subtitle)
	section.Content = cleanRich(payload.Content)
	section.ImageURL = payload.ImageURL
	section.SortOrder = payload.SortOrder
	section.IsActive = payload.IsActive
	if section.IsActive == nil {
		active := true
		section.IsActive = &active
	}
	section.Metadata = payload.Metadata
	if section.Metadata == nil {
		section.Metadata = map[string]interface{}{}
	}
}
