package http

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/gamify/storefront/internal/service"
	"github.com/gamify/storefront/pkg/httputil"
	"github.com/gamify/storefront/pkg/validator"
)

// CheckoutHandler handles HTTP requests for the review and checkout-handoff
// endpoints.
type CheckoutHandler struct {
	service *service.CheckoutService
	logger  *slog.Logger
}

// NewCheckoutHandler creates a new checkout HTTP handler.
func NewCheckoutHandler(svc *service.CheckoutService, logger *slog.Logger) *CheckoutHandler {
	return &CheckoutHandler{
		service: svc,
		logger:  logger,
	}
}

// ApplyCouponRequest is the JSON request body for applying a coupon code.
type ApplyCouponRequest struct {
	Code string `json:"code"`
}

// Review handles GET /api/v1/checkout/review
func (h *CheckoutHandler) Review(w http.ResponseWriter, r *http.Request) {
	view, err := h.service.Review(r.Context(), sessionIDFromContext(r.Context()))
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	httputil.WriteJSON(w, http.StatusOK, httputil.Response{Data: view})
}

// ToggleItem handles POST /api/v1/checkout/review/selection/{gameId}/{bundleId}
func (h *CheckoutHandler) ToggleItem(w http.ResponseWriter, r *http.Request) {
	view, err := h.service.ToggleItem(r.Context(), sessionIDFromContext(r.Context()),
		chi.URLParam(r, "gameId"), chi.URLParam(r, "bundleId"))
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	httputil.WriteJSON(w, http.StatusOK, httputil.Response{Data: view})
}

// ToggleAll handles POST /api/v1/checkout/review/selection
func (h *CheckoutHandler) ToggleAll(w http.ResponseWriter, r *http.Request) {
	view, err := h.service.ToggleAll(r.Context(), sessionIDFromContext(r.Context()))
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	httputil.WriteJSON(w, http.StatusOK, httputil.Response{Data: view})
}

// ApplyCoupon handles POST /api/v1/checkout/review/coupon
func (h *CheckoutHandler) ApplyCoupon(w http.ResponseWriter, r *http.Request) {
	var req ApplyCouponRequest
	if err := validator.DecodeAndValidate(r, &req); err != nil {
		httputil.WriteValidationError(w, err)
		return
	}

	view, err := h.service.ApplyCoupon(r.Context(), sessionIDFromContext(r.Context()), req.Code)
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	httputil.WriteJSON(w, http.StatusOK, httputil.Response{Data: view})
}

// RemoveCoupon handles DELETE /api/v1/checkout/review/coupon
func (h *CheckoutHandler) RemoveCoupon(w http.ResponseWriter, r *http.Request) {
	view, err := h.service.RemoveCoupon(r.Context(), sessionIDFromContext(r.Context()))
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	httputil.WriteJSON(w, http.StatusOK, httputil.Response{Data: view})
}

// PrepareCheckout handles POST /api/v1/checkout
func (h *CheckoutHandler) PrepareCheckout(w http.ResponseWriter, r *http.Request) {
	snap, err := h.service.PrepareCheckout(r.Context(), sessionIDFromContext(r.Context()))
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	httputil.WriteJSON(w, http.StatusCreated, httputil.Response{Data: snap})
}
