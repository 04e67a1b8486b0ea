package http

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/gamify/storefront/internal/domain"
	"github.com/gamify/storefront/internal/service"
	"github.com/gamify/storefront/pkg/httputil"
	"github.com/gamify/storefront/pkg/validator"
)

// PaymentHandler handles HTTP requests for the payment step.
type PaymentHandler struct {
	service *service.PaymentService
	logger  *slog.Logger
}

// NewPaymentHandler creates a new payment HTTP handler.
func NewPaymentHandler(svc *service.PaymentService, logger *slog.Logger) *PaymentHandler {
	return &PaymentHandler{
		service: svc,
		logger:  logger,
	}
}

// SubmitPaymentRequest is the JSON request body for submitting payment
// details. Method-specific field requirements are enforced by the domain, so
// the user gets a message naming the exact missing field.
type SubmitPaymentRequest struct {
	Method      string `json:"method"`
	PhoneNumber string `json:"phone_number"`
	CardNumber  string `json:"card_number"`
	CardExpiry  string `json:"card_expiry"`
	CardCVV     string `json:"card_cvv"`
}

// GetCheckout handles GET /api/v1/checkout/{checkoutId}
func (h *PaymentHandler) GetCheckout(w http.ResponseWriter, r *http.Request) {
	snap, err := h.service.GetCheckout(r.Context(), sessionIDFromContext(r.Context()),
		chi.URLParam(r, "checkoutId"))
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	httputil.WriteJSON(w, http.StatusOK, httputil.Response{Data: snap})
}

// SubmitPayment handles POST /api/v1/checkout/{checkoutId}/payment
func (h *PaymentHandler) SubmitPayment(w http.ResponseWriter, r *http.Request) {
	var req SubmitPaymentRequest
	if err := validator.DecodeAndValidate(r, &req); err != nil {
		httputil.WriteValidationError(w, err)
		return
	}

	details := domain.PaymentDetails{
		Method:      req.Method,
		PhoneNumber: req.PhoneNumber,
		CardNumber:  req.CardNumber,
		CardExpiry:  req.CardExpiry,
		CardCVV:     req.CardCVV,
	}

	order, err := h.service.SubmitPayment(r.Context(), sessionIDFromContext(r.Context()),
		chi.URLParam(r, "checkoutId"), details)
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	httputil.WriteJSON(w, http.StatusOK, httputil.Response{Data: order})
}

// ListPaymentMethods handles GET /api/v1/payment-methods
func (h *PaymentHandler) ListPaymentMethods(w http.ResponseWriter, r *http.Request) {
	httputil.WriteJSON(w, http.StatusOK, httputil.Response{Data: domain.PaymentMethods()})
}
