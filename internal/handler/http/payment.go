package http

import (
	"log/slog"
	"net/http"

	"github.com/yesmovie/backend/internal/payment"
	"github.com/yesmovie/backend/pkg/httputil"
)

// PaymentHandler handles HTTP requests for payment endpoints.
type PaymentHandler struct {
	orchestrator *payment.Orchestrator
	logger       *slog.Logger
}

// NewPaymentHandler creates a new payment HTTP handler.
func NewPaymentHandler(orchestrator *payment.Orchestrator, logger *slog.Logger) *PaymentHandler {
	return &PaymentHandler{
		orchestrator: orchestrator,
		logger:       logger,
	}
}

// CreatePayment handles POST /api/v1/payments
func (h *PaymentHandler) CreatePayment(w http.ResponseWriter, r *http.Request) {
	identity, ok := identityFromContext(r.Context())
	if !ok {
		writeUnauthenticated(w)
		return
	}

	result, err := h.orchestrator.CreatePayment(r.Context(), identity)
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	httputil.WriteJSON(w, http.StatusOK, httputil.Response{Data: result})
}

// VerifyPayment handles GET /api/v1/payments/verify?reference=...
func (h *PaymentHandler) VerifyPayment(w http.ResponseWriter, r *http.Request) {
	identity, ok := identityFromContext(r.Context())
	if !ok {
		writeUnauthenticated(w)
		return
	}

	reference := r.URL.Query().Get("reference")
	if reference == "" {
		httputil.WriteJSON(w, http.StatusBadRequest, httputil.Response{
			Error: &httputil.ErrorResponse{Code: "INVALID_INPUT", Message: "reference query parameter is required"},
		})
		return
	}

	result, err := h.orchestrator.VerifyPayment(r.Context(), identity, reference)
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	httputil.WriteJSON(w, http.StatusOK, httputil.Response{Data: result})
}
