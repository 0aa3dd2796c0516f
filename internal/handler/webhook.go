package handler

import (
	"context"
	"errors"
	"net/http"

	"github.com/stripe/stripe-go/v81"
	"github.com/templui/storefront/internal/logger"
	"github.com/templui/storefront/internal/service/payment"
)

// EventDispatcher acts on a verified provider event.
type EventDispatcher interface {
	Dispatch(ctx context.Context, event stripe.Event) error
}

type WebhookHandler struct {
	provider   payment.Provider
	dispatcher EventDispatcher
}

func NewWebhookHandler(provider payment.Provider, dispatcher EventDispatcher) *WebhookHandler {
	return &WebhookHandler{
		provider:   provider,
		dispatcher: dispatcher,
	}
}

type webhookResponse struct {
	Received bool `json:"received"`
}

// Receive verifies the Stripe-Signature header against the raw body and
// dispatches the event. Once verified the provider always gets 200, even
// when dispatch fails, since redelivery would not fix a local failure.
func (h *WebhookHandler) Receive(w http.ResponseWriter, r *http.Request) {
	if !allowPost(w, r) {
		return
	}
	log := logger.Ctx(r.Context())

	payload, err := readBody(w, r)
	if errors.Is(err, errBodyTooLarge) {
		writeError(w, http.StatusRequestEntityTooLarge, "Webhook Error: "+err.Error())
		return
	}
	if err != nil {
		log.Error("failed to read webhook payload", "error", err)
		writeError(w, http.StatusBadRequest, "Webhook Error: failed to read payload")
		return
	}

	event, err := h.provider.VerifyEvent(payload, r.Header.Get("Stripe-Signature"))
	if err != nil {
		log.Warn("stripe webhook rejected", "error", err, "provider", h.provider.Name())
		writeError(w, http.StatusBadRequest, "Webhook Error: "+err.Error())
		return
	}

	// the ledger write finishes even if the provider hangs up
	err = h.dispatcher.Dispatch(context.WithoutCancel(r.Context()), event)
	if err != nil {
		log.Error("failed to handle stripe webhook", "error", err, "event_id", event.ID, "event_type", event.Type)
	}

	writeJSON(w, http.StatusOK, webhookResponse{Received: true})
}
