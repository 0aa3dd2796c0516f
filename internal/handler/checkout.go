package handler

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/templui/storefront/internal/logger"
	"github.com/templui/storefront/internal/metrics"
	"github.com/templui/storefront/internal/model"
	"github.com/templui/storefront/internal/service/payment"
)

type CheckoutHandler struct {
	provider payment.Provider
	urls     payment.RedirectURLs
	metrics  *metrics.Metrics
}

func NewCheckoutHandler(provider payment.Provider, urls payment.RedirectURLs, m *metrics.Metrics) *CheckoutHandler {
	return &CheckoutHandler{
		provider: provider,
		urls:     urls,
		metrics:  m,
	}
}

type checkoutResponse struct {
	SessionID string `json:"sessionId"`
}

// CreateSession turns an order into a provider checkout session.
// One provider call per request, no retries.
func (h *CheckoutHandler) CreateSession(w http.ResponseWriter, r *http.Request) {
	if !allowPost(w, r) {
		return
	}
	log := logger.Ctx(r.Context())

	body, err := readBody(w, r)
	if errors.Is(err, errBodyTooLarge) {
		h.metrics.Checkout("", metrics.ResultInvalid)
		writeError(w, http.StatusRequestEntityTooLarge, err.Error())
		return
	}
	if err != nil {
		h.metrics.Checkout("", metrics.ResultInvalid)
		writeError(w, http.StatusBadRequest, "failed to read request body")
		return
	}

	var order model.OrderRequest
	err = json.Unmarshal(body, &order)
	if err != nil {
		log.Debug("checkout request rejected", "error", err)
		h.metrics.Checkout("", metrics.ResultInvalid)
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}

	params, err := payment.BuildSessionParams(order, h.urls)
	if err != nil {
		log.Info("checkout request rejected", "error", err)
		h.metrics.Checkout("", metrics.ResultInvalid)
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	mode := payment.SessionMode(params)

	sessionID, err := h.provider.CreateCheckoutSession(r.Context(), params)
	if err != nil {
		log.Error("failed to create checkout session", "error", err, "mode", mode, "provider", h.provider.Name())
		h.metrics.Checkout(mode, metrics.ResultProviderError)

		msg := err.Error()
		var providerErr *payment.ProviderError
		if errors.As(err, &providerErr) {
			msg = providerErr.Message
		}
		writeError(w, http.StatusBadGateway, msg)
		return
	}

	h.metrics.Checkout(mode, metrics.ResultCreated)
	writeJSON(w, http.StatusOK, checkoutResponse{SessionID: sessionID})
}
