package httpx

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/yavemu/products-shop-web/internal/checkout"
	"github.com/yavemu/products-shop-web/internal/checkout/checkoutlog"
	"github.com/yavemu/products-shop-web/internal/pkg/currency"
	"github.com/yavemu/products-shop-web/internal/pkg/events"
	"github.com/yavemu/products-shop-web/internal/storefront/core/ports"
)

// Handler serves the storefront API: catalog, cart, and checkout.
type Handler struct {
	catalog     ports.Catalog
	cart        ports.CartStore
	checkout    ports.CheckoutService
	checkoutLog ports.CheckoutLog // nil-safe: per-run status answers 404 if nil
	events      *events.Publisher // nil-safe: event publishing skipped if nil
}

// NewHandler wires the handler to its ports. checkoutLog and events may be nil.
func NewHandler(catalog ports.Catalog, cartStore ports.CartStore, checkoutSvc ports.CheckoutService, checkoutLog ports.CheckoutLog, publisher *events.Publisher) *Handler {
	return &Handler{
		catalog:     catalog,
		cart:        cartStore,
		checkout:    checkoutSvc,
		checkoutLog: checkoutLog,
		events:      publisher,
	}
}

// ListProducts proxies the backend catalog.
func (h *Handler) ListProducts(w http.ResponseWriter, r *http.Request) {
	products, err := h.catalog.ListProducts(r.Context())
	if err != nil {
		writeError(w, http.StatusBadGateway, "catalog_unavailable", err.Error())
		return
	}
	writeJSON(w, http.StatusOK, products)
}

// GetCart returns the cart lines plus derived totals.
func (h *Handler) GetCart(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.cartResponse())
}

// AddCartItem inserts or replaces a cart line (last-write-wins quantity).
func (h *Handler) AddCartItem(w http.ResponseWriter, r *http.Request) {
	var req AddCartItemRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_json", err.Error())
		return
	}
	if req.ProductID < 1 {
		writeError(w, http.StatusBadRequest, "invalid_item", "productId must be a positive integer")
		return
	}
	if req.UnitPrice < 0 {
		writeError(w, http.StatusBadRequest, "invalid_item", "unitPrice must not be negative")
		return
	}

	if err := h.cart.Add(r.Context(), req.ProductID, req.Name, req.UnitPrice, req.Quantity); err != nil {
		writeError(w, http.StatusInternalServerError, "cart_persist_failed", err.Error())
		return
	}
	writeJSON(w, http.StatusOK, h.cartResponse())
}

// RemoveCartItem deletes a cart line. Removing an absent line succeeds.
func (h *Handler) RemoveCartItem(w http.ResponseWriter, r *http.Request) {
	productID, err := strconv.Atoi(chi.URLParam(r, "productID"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid_product_id", "")
		return
	}
	if err := h.cart.Remove(r.Context(), productID); err != nil {
		writeError(w, http.StatusInternalServerError, "cart_persist_failed", err.Error())
		return
	}
	writeJSON(w, http.StatusOK, h.cartResponse())
}

// ClearCart empties the cart and erases its persisted slot.
func (h *Handler) ClearCart(w http.ResponseWriter, r *http.Request) {
	if err := h.cart.Clear(r.Context()); err != nil {
		writeError(w, http.StatusInternalServerError, "cart_persist_failed", err.Error())
		return
	}
	writeJSON(w, http.StatusOK, h.cartResponse())
}

// Checkout runs the four-step order process. A second checkout while one is
// in flight is refused: the pre-check answers early, and the processor itself
// rejects any racing call that slips past it.
func (h *Handler) Checkout(w http.ResponseWriter, r *http.Request) {
	if h.checkout.State().IsProcessing {
		writeError(w, http.StatusConflict, "checkout_in_progress", "another checkout is already running")
		return
	}

	var req CheckoutRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_json", err.Error())
		return
	}

	slog.InfoContext(r.Context(), "starting checkout",
		"customer_email", req.Order.CustomerEmail, "products", len(req.Order.Products))

	result, err := h.checkout.ProcessOrder(r.Context(), req.Order, req.Payment)
	if err != nil {
		if errors.Is(err, checkout.ErrInFlight) {
			writeError(w, http.StatusConflict, "checkout_in_progress", "another checkout is already running")
			return
		}
		// The processor already flattened the failure into one user-visible
		// message. No rollback of created records is attempted.
		writeJSON(w, http.StatusUnprocessableEntity, CheckoutResponse{
			Success: false,
			Error:   err.Error(),
		})
		return
	}

	if err := h.cart.Clear(r.Context()); err != nil {
		slog.ErrorContext(r.Context(), "clearing cart after checkout failed", "error", err)
	}
	h.publishCompleted(r, result)

	writeJSON(w, http.StatusOK, CheckoutResponse{
		Success:      true,
		CheckoutID:   result.CheckoutID,
		Consolidated: result.Consolidated,
	})
}

// CheckoutStatus returns the latest order-process state snapshot.
func (h *Handler) CheckoutStatus(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.checkout.State())
}

// CheckoutRunStatus answers for a specific past run from the durable log,
// which survives restarts of the in-memory processor state.
func (h *Handler) CheckoutRunStatus(w http.ResponseWriter, r *http.Request) {
	checkoutID := chi.URLParam(r, "checkoutID")

	if h.checkoutLog == nil {
		writeError(w, http.StatusNotFound, "checkout_not_found", "no checkout log configured")
		return
	}
	entry, err := h.checkoutLog.Latest(r.Context(), checkoutID)
	if err != nil {
		if errors.Is(err, checkoutlog.ErrNotFound) {
			writeError(w, http.StatusNotFound, "checkout_not_found", "no entries for this checkout")
			return
		}
		writeError(w, http.StatusInternalServerError, "checkout_log_failed", err.Error())
		return
	}

	writeJSON(w, http.StatusOK, CheckoutRunStatusResponse{
		CheckoutID: entry.CheckoutID,
		Status:     string(entry.Status),
		Step:       entry.Step,
		Error:      entry.ErrorMessage,
		UpdatedAt:  entry.CreatedAt.UTC().Format(time.RFC3339Nano),
	})
}

// Healthz is the liveness probe.
func (h *Handler) Healthz(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (h *Handler) cartResponse() CartResponse {
	summary := h.cart.Summarize()
	return CartResponse{
		Items:          h.cart.Items(),
		Lines:          summary.Lines,
		Units:          summary.Units,
		Total:          summary.Total,
		FormattedTotal: currency.Format(summary.Total),
	}
}

func (h *Handler) publishCompleted(r *http.Request, result *checkout.Result) {
	if h.events == nil || result.Consolidated == nil {
		return
	}
	c := result.Consolidated
	h.events.Publish(r.Context(), events.CheckoutCompleted{
		CheckoutID:  result.CheckoutID,
		OrderID:     c.Order.ID,
		CustomerID:  c.Customer.ID,
		DeliveryID:  c.Delivery.ID,
		Transaction: c.Payment.TransactionID,
		Total:       c.Order.Total,
		CompletedAt: time.Now().UTC(),
	})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, code, msg string) {
	writeJSON(w, status, ErrorResponse{
		Error:   code,
		Message: msg,
	})
}
