package httpx

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/yavemu/products-shop-web/internal/pkg/metrics"
	"github.com/yavemu/products-shop-web/internal/storefront/infra/httpx/middlewares"
)

// NewRouter assembles the storefront routes. m may be nil to skip metrics.
func NewRouter(handler *Handler, m *metrics.ServerMetrics) http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middlewares.AttachRequestMetadata)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	if m != nil {
		r.Use(middlewares.ObserveRequests(m))
	}

	r.Get("/products", handler.ListProducts)

	r.Get("/cart", handler.GetCart)
	r.Post("/cart/items", handler.AddCartItem)
	r.Delete("/cart/items/{productID}", handler.RemoveCartItem)
	r.Delete("/cart", handler.ClearCart)

	r.Post("/checkout", handler.Checkout)
	r.Get("/checkout/status", handler.CheckoutStatus)
	r.Get("/checkout/{checkoutID}/status", handler.CheckoutRunStatus)

	r.Get("/healthz", handler.Healthz)
	r.Method(http.MethodGet, "/metrics", metrics.Handler())

	return r
}
