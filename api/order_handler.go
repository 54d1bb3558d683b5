package api

import (
	"context"
	"net/http"
	"time"

	"github.com/rpupo63/studio-site-backend/errs"
	"github.com/rpupo63/studio-site-backend/models"
	"github.com/rpupo63/studio-site-backend/realtime"
	"github.com/rpupo63/studio-site-backend/services"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

const notifyTimeout = 30 * time.Second

type orderHandler struct {
	responder Responder
	logger    zerolog.Logger
	repo      orderRepo
	notifier  notifier
	publisher realtime.Publisher
}

func newOrderHandler(repo orderRepo, notifier notifier, publisher realtime.Publisher) orderHandler {
	logger := log.With().Str("handlerName", "orderHandler").Logger()

	return orderHandler{
		responder: NewResponder(logger),
		logger:    logger,
		repo:      repo,
		notifier:  notifier,
		publisher: publisher,
	}
}

// submitOrder stores a service request from the public order form
// @Summary Submit order
// @Description Stores the order with status new and notifies the studio in the background
// @Tags Orders
// @Accept json
// @Produce json
// @Param order body OrderPayload true "Order data"
// @Success 201 {object} models.Order
// @Failure 400 {object} ErrorResponse "Bad Request - Invalid order data"
// @Router /orders [post]
func (h orderHandler) submitOrder() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var payload OrderPayload
		if err := decodeAndValidate(w, r, &payload, "order"); err != nil {
			h.responder.WriteError(w, err)
			return
		}

		deadline, err := parseDate(payload.Deadline)
		if err != nil {
			h.responder.WriteError(w, errs.NewInvalidFieldError("deadline", "must be a date formatted "+dateLayout))
			return
		}

		order := models.Order{
			ClientName:  cleanText(payload.ClientName),
			ClientEmail: payload.ClientEmail,
			Phone:       cleanOptional(payload.Phone),
			ServiceType: cleanText(payload.ServiceType),
			Budget:      cleanOptional(payload.Budget),
			Deadline:    deadline,
			Description: cleanText(payload.Description),
			Status:      models.OrderStatusNew,
		}

		if err := h.repo.Add(r.Context(), &order); err != nil {
			h.responder.WriteError(w, wrapDatabaseError("create", "order", err))
			return
		}
		h.publisher.Publish(realtime.Event{Topic: order.TableName(), Type: realtime.EventInsert, RecordID: order.ID.String()})
		notifyAsync(h.logger, h.notifier, services.OrderNotification(order))

		h.responder.WriteStatusJSON(w, http.StatusCreated, order)
	}
}

// updateOrderStatus moves an order through its workflow
// @Summary Update order status
// @Tags Admin
// @Accept json
// @Param orderID path string true "Order ID" format(uuid)
// @Param status body OrderStatusPayload true "New status"
// @Success 204
// @Failure 400 {object} ErrorResponse "Bad Request - Unknown status"
// @Failure 404 {object} ErrorResponse "Not Found - Order not found"
// @Router /admin/orders/{orderID}/status [patch]
func (h orderHandler) updateOrderStatus() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		orderID, err := uuidParam(r, "orderID")
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}

		var payload OrderStatusPayload
		if err := decodeAndValidate(w, r, &payload, "order status"); err != nil {
			h.responder.WriteError(w, err)
			return
		}

		if err := h.repo.UpdateStatus(r.Context(), orderID, models.OrderStatus(payload.Status)); err != nil {
			h.responder.WriteError(w, wrapDatabaseError("update", "order", err))
			return
		}
		h.publisher.Publish(realtime.Event{Topic: models.Order{}.TableName(), Type: realtime.EventUpdate, RecordID: orderID.String()})

		w.WriteHeader(http.StatusNoContent)
	}
}

// notifyAsync delivers msg off the request path. Delivery failures are logged only.
func notifyAsync(logger zerolog.Logger, n notifier, msg services.Notification) {
	if n == nil {
		return
	}
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), notifyTimeout)
		defer cancel()
		if err := n.Dispatch(ctx, msg); err != nil {
			logger.Warn().Err(err).Str("subject", msg.Subject).Msg("Notification not fully delivered")
		}
	}()
}
