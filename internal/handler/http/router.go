package http

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/gamify/storefront/internal/service"
	"github.com/gamify/storefront/pkg/health"
	"github.com/gamify/storefront/pkg/middleware"
)

// NewRouter creates a chi router with all storefront routes registered.
func NewRouter(
	cartService *service.CartService,
	checkoutService *service.CheckoutService,
	paymentService *service.PaymentService,
	healthHandler *health.Handler,
	logger *slog.Logger,
	pprofCIDRs []string,
) http.Handler {
	r := chi.NewRouter()

	// Global middleware
	r.Use(middleware.Recovery(logger))
	r.Use(middleware.CORS(middleware.DefaultCORSConfig()))
	r.Use(chimw.Compress(5))
	r.Use(chimw.Timeout(30 * time.Second))
	r.Use(middleware.RequestLogging(logger))
	r.Use(middleware.PrometheusMetrics("storefront"))
	r.Use(middleware.Tracing("storefront"))
	r.Use(middleware.RequestLogger(logger))

	// Health check endpoints
	r.Get("/health/live", healthHandler.LivenessHandler())
	r.Get("/health/ready", healthHandler.ReadinessHandler())
	r.Get("/metrics", func(w http.ResponseWriter, r *http.Request) {
		promhttp.Handler().ServeHTTP(w, r)
	})

	// Pprof debug endpoints with IP allowlist.
	middleware.RegisterPprof(r, pprofCIDRs, logger)

	catalogHandler := NewCatalogHandler(logger)
	cartHandler := NewCartHandler(cartService, logger)
	checkoutHandler := NewCheckoutHandler(checkoutService, logger)
	paymentHandler := NewPaymentHandler(paymentService, logger)

	// Catalog is public; no session required.
	r.Route("/api/v1/catalog", func(r chi.Router) {
		r.Get("/", catalogHandler.ListGames)
		r.Get("/{gameId}", catalogHandler.GetGame)
	})

	r.Get("/api/v1/payment-methods", paymentHandler.ListPaymentMethods)

	r.Route("/api/v1/cart", func(r chi.Router) {
		r.Use(ContentTypeJSON)
		r.Use(SessionIDFromHeader)

		r.Get("/", cartHandler.GetCart)
		r.Delete("/", cartHandler.ClearCart)

		r.Post("/items", cartHandler.AddItem)
		r.Put("/items/{gameId}/{bundleId}", cartHandler.UpdateQuantity)
		r.Delete("/items/{gameId}/{bundleId}", cartHandler.RemoveItem)
	})

	r.Route("/api/v1/checkout", func(r chi.Router) {
		r.Use(ContentTypeJSON)
		r.Use(SessionIDFromHeader)

		r.Get("/review", checkoutHandler.Review)
		r.Post("/review/selection", checkoutHandler.ToggleAll)
		r.Post("/review/selection/{gameId}/{bundleId}", checkoutHandler.ToggleItem)
		r.Post("/review/coupon", checkoutHandler.ApplyCoupon)
		r.Delete("/review/coupon", checkoutHandler.RemoveCoupon)

		r.Post("/", checkoutHandler.PrepareCheckout)
		r.Get("/{checkoutId}", paymentHandler.GetCheckout)
		r.Post("/{checkoutId}/payment", paymentHandler.SubmitPayment)
	})

	return r
}
