package middlewares

import (
	"net/http"

	"github.com/go-chi/chi/v5/middleware"
	"github.com/yavemu/products-shop-web/internal/pkg/requestmeta"
)

// AttachRequestMetadata copies the chi request ID and the caller's
// Idempotency-Key header into the context so the backend client can
// propagate them on every outgoing call.
func AttachRequestMetadata(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctx := requestmeta.WithRequestID(r.Context(), middleware.GetReqID(r.Context()))
		if key := r.Header.Get(requestmeta.HeaderIdempotencyKey); key != "" {
			ctx = requestmeta.WithIdempotencyKey(ctx, key)
		}
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}
