package api

import (
	"net/http"

	"github.com/rpupo63/studio-site-backend/models"
	"github.com/rpupo63/studio-site-backend/realtime"
	"github.com/rpupo63/studio-site-backend/services"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

type messageHandler struct {
	responder Responder
	logger    zerolog.Logger
	repo      messageRepo
	notifier  notifier
	publisher realtime.Publisher
}

func newMessageHandler(repo messageRepo, notifier notifier, publisher realtime.Publisher) messageHandler {
	logger := log.With().Str("handlerName", "messageHandler").Logger()

	return messageHandler{
		responder: NewResponder(logger),
		logger:    logger,
		repo:      repo,
		notifier:  notifier,
		publisher: publisher,
	}
}

// submitMessage stores a note from the public contact form
// @Summary Submit contact message
// @Tags Messages
// @Accept json
// @Produce json
// @Param message body MessagePayload true "Message data"
// @Success 201 {object} models.ContactMessage
// @Failure 400 {object} ErrorResponse "Bad Request - Invalid message data"
// @Router /messages [post]
func (h messageHandler) submitMessage() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var payload MessagePayload
		if err := decodeAndValidate(w, r, &payload, "message"); err != nil {
			h.responder.WriteError(w, err)
			return
		}

		message := models.ContactMessage{
			Name:    cleanText(payload.Name),
			Email:   payload.Email,
			Subject: cleanOptional(payload.Subject),
			Message: cleanText(payload.Message),
		}

		if err := h.repo.Add(r.Context(), &message); err != nil {
			h.responder.WriteError(w, wrapDatabaseError("create", "contact message", err))
			return
		}
		h.publish(realtime.EventInsert, message)
		notifyAsync(h.logger, h.notifier, services.MessageNotification(message))

		h.responder.WriteStatusJSON(w, http.StatusCreated, message)
	}
}

// markMessageRead flags a message read or unread
// @Summary Mark message read
// @Tags Admin
// @Accept json
// @Param messageID path string true "Message ID" format(uuid)
// @Param read body MessageReadPayload true "Read flag"
// @Success 204
// @Failure 404 {object} ErrorResponse "Not Found - Message not found"
// @Router /admin/messages/{messageID}/read [patch]
func (h messageHandler) markMessageRead() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		messageID, err := uuidParam(r, "messageID")
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}

		var payload MessageReadPayload
		if err := decodeAndValidate(w, r, &payload, "message read"); err != nil {
			h.responder.WriteError(w, err)
			return
		}

		if err := h.repo.MarkRead(r.Context(), messageID, payload.IsRead); err != nil {
			h.responder.WriteError(w, wrapDatabaseError("update", "contact message", err))
			return
		}
		h.publish(realtime.EventUpdate, models.ContactMessage{ID: messageID})

		w.WriteHeader(http.StatusNoContent)
	}
}

// deleteMessage deletes a contact message
// @Summary Delete contact message
// @Tags Admin
// @Param messageID path string true "Message ID" format(uuid)
// @Success 204
// @Router /admin/messages/{messageID} [delete]
func (h messageHandler) deleteMessage() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		messageID, err := uuidParam(r, "messageID")
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}

		if err := h.repo.Delete(r.Context(), messageID); err != nil {
			h.responder.WriteError(w, wrapDatabaseError("delete", "contact message", err))
			return
		}
		h.publish(realtime.EventDelete, models.ContactMessage{ID: messageID})

		w.WriteHeader(http.StatusNoContent)
	}
}

func (h messageHandler) publish(eventType realtime.EventType, message models.ContactMessage) {
	h.publisher.Publish(realtime.Event{Topic: message.TableName(), Type: eventType, RecordID: message.ID.String()})
}
