package api

import (
	"net/http"

	"github.com/rpupo63/studio-site-backend/models"
	"github.com/rpupo63/studio-site-backend/realtime"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

type reviewHandler struct {
	responder Responder
	logger    zerolog.Logger
	catalog   projectCatalog
	repo      reviewRepo
	publisher realtime.Publisher
}

func newReviewHandler(catalog projectCatalog, repo reviewRepo, publisher realtime.Publisher) reviewHandler {
	logger := log.With().Str("handlerName", "reviewHandler").Logger()

	return reviewHandler{
		responder: NewResponder(logger),
		logger:    logger,
		catalog:   catalog,
		repo:      repo,
		publisher: publisher,
	}
}

// getApprovedReviews lists approved reviews, newest first
// @Summary Get approved reviews
// @Tags Reviews
// @Produce json
// @Success 200 {array} models.Review
// @Failure 503 {object} ErrorResponse "Backend unavailable and nothing cached"
// @Router /reviews [get]
func (h reviewHandler) getApprovedReviews() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := h.catalog.EnsureLoaded(r.Context()); err != nil {
			h.responder.WriteError(w, err)
			return
		}
		reviews := h.catalog.Reviews()
		if reviews == nil {
			reviews = []models.Review{}
		}
		h.responder.WriteJSON(w, reviews)
	}
}

// submitReview stores a client review pending moderation
// @Summary Submit review
// @Description Reviews are stored unapproved and stay hidden until an admin approves them
// @Tags Reviews
// @Accept json
// @Produce json
// @Param review body ReviewPayload true "Review data"
// @Success 201 {object} models.Review
// @Failure 400 {object} ErrorResponse "Bad Request - Invalid review data"
// @Router /reviews [post]
func (h reviewHandler) submitReview() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var payload ReviewPayload
		if err := decodeAndValidate(w, r, &payload, "review"); err != nil {
			h.responder.WriteError(w, err)
			return
		}

		review := models.Review{
			ReviewerName:  cleanText(payload.ReviewerName),
			ReviewerEmail: cleanText(payload.ReviewerEmail),
			Rating:        payload.Rating,
			ReviewText:    cleanText(payload.ReviewText),
			ProjectID:     payload.ProjectID,
			OrderID:       payload.OrderID,
		}

		if err := h.repo.Add(r.Context(), &review); err != nil {
			h.responder.WriteError(w, wrapDatabaseError("create", "review", err))
			return
		}
		h.publish(realtime.EventInsert, review)

		h.responder.WriteStatusJSON(w, http.StatusCreated, review)
	}
}

// moderateReview approves or features a review
// @Summary Moderate review
// @Tags Admin
// @Accept json
// @Param reviewID path string true "Review ID" format(uuid)
// @Param flags body ReviewModerationPayload true "Flags to set"
// @Success 204
// @Failure 404 {object} ErrorResponse "Not Found - Review not found"
// @Router /admin/reviews/{reviewID} [patch]
func (h reviewHandler) moderateReview() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		reviewID, err := uuidParam(r, "reviewID")
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}

		var payload ReviewModerationPayload
		if err := decodeAndValidate(w, r, &payload, "review moderation"); err != nil {
			h.responder.WriteError(w, err)
			return
		}

		if err := h.repo.SetFlags(r.Context(), reviewID, payload.IsApproved, payload.IsFeatured); err != nil {
			h.responder.WriteError(w, wrapDatabaseError("update", "review", err))
			return
		}
		h.publish(realtime.EventUpdate, models.Review{ID: reviewID})

		w.WriteHeader(http.StatusNoContent)
	}
}

// deleteReview deletes a review
// @Summary Delete review
// @Tags Admin
// @Param reviewID path string true "Review ID" format(uuid)
// @Success 204
// @Failure 404 {object} ErrorResponse "Not Found - Review not found"
// @Router /admin/reviews/{reviewID} [delete]
func (h reviewHandler) deleteReview() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		reviewID, err := uuidParam(r, "reviewID")
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}

		if err := h.repo.Delete(r.Context(), reviewID); err != nil {
			h.responder.WriteError(w, wrapDatabaseError("delete", "review", err))
			return
		}
		h.publish(realtime.EventDelete, models.Review{ID: reviewID})

		w.WriteHeader(http.StatusNoContent)
	}
}

func (h reviewHandler) publish(eventType realtime.EventType, review models.Review) {
	h.publisher.Publish(realtime.Event{Topic: review.TableName(), Type: eventType, RecordID: review.ID.String()})
}
