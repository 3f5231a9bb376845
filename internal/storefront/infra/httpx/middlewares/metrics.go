package middlewares

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/yavemu/products-shop-web/internal/pkg/metrics"
)

// ObserveRequests records a counter and latency sample per route pattern.
// The chi route pattern is resolved after the handler runs so parameterized
// routes collapse into one label value.
func ObserveRequests(m *metrics.ServerMetrics) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ww := chimiddleware.NewWrapResponseWriter(w, r.ProtoMajor)
			start := time.Now()

			next.ServeHTTP(ww, r)

			pattern := chi.RouteContext(r.Context()).RoutePattern()
			if pattern == "" {
				pattern = "unmatched"
			}
			m.Observe(pattern, ww.Status(), time.Since(start))
		})
	}
}
