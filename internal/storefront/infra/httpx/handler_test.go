package httpx

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yavemu/products-shop-web/internal/cart"
	"github.com/yavemu/products-shop-web/internal/checkout"
	"github.com/yavemu/products-shop-web/internal/checkout/checkoutlog"
	"github.com/yavemu/products-shop-web/internal/pkg/cache"
	"github.com/yavemu/products-shop-web/internal/shopapi"
)

type fakeCatalog struct {
	products []shopapi.Product
	err      error
}

func (f *fakeCatalog) ListProducts(context.Context) ([]shopapi.Product, error) {
	return f.products, f.err
}

type fakeCheckoutLog struct {
	entry *checkoutlog.Entry
}

func (f *fakeCheckoutLog) Latest(_ context.Context, checkoutID string) (*checkoutlog.Entry, error) {
	if f.entry == nil || f.entry.CheckoutID != checkoutID {
		return nil, checkoutlog.ErrNotFound
	}
	return f.entry, nil
}

type fakeCheckout struct {
	mu     sync.Mutex
	state  checkout.State
	result *checkout.Result
	err    error
}

func (f *fakeCheckout) ProcessOrder(context.Context, checkout.OrderDraft, checkout.PaymentDraft) (*checkout.Result, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.result, nil
}

func (f *fakeCheckout) State() checkout.State {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.state
}

func newTestHandler(t *testing.T, svc *fakeCheckout) (*Handler, *cart.Store) {
	t.Helper()
	store := cart.NewStore(cache.NewMemoryKV(), "storefront:cart:test", 0)
	catalog := &fakeCatalog{products: []shopapi.Product{{ID: 1, Name: "Audífonos", Price: 250000, Stock: 15}}}
	return NewHandler(catalog, store, svc, nil, nil), store
}

func doRequest(t *testing.T, handler http.Handler, method, target, body string) *httptest.ResponseRecorder {
	t.Helper()
	var reader *strings.Reader
	if body == "" {
		reader = strings.NewReader("")
	} else {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, target, reader)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	return rec
}

func TestCartAddAndGet(t *testing.T) {
	handler, _ := newTestHandler(t, &fakeCheckout{})
	router := NewRouter(handler, nil)

	rec := doRequest(t, router, http.MethodPost, "/cart/items",
		`{"productId":1,"name":"Audífonos","unitPrice":10000,"quantity":2}`)
	require.Equal(t, http.StatusOK, rec.Code)

	rec = doRequest(t, router, http.MethodPost, "/cart/items",
		`{"productId":2,"name":"Mouse","unitPrice":5000,"quantity":1}`)
	require.Equal(t, http.StatusOK, rec.Code)

	rec = doRequest(t, router, http.MethodGet, "/cart", "")
	require.Equal(t, http.StatusOK, rec.Code)

	var resp CartResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, 2, resp.Lines)
	assert.Equal(t, 3, resp.Units)
	assert.Equal(t, 25000.0, resp.Total)
	assert.Equal(t, "25.000 COP", resp.FormattedTotal)
}

func TestCartAddRejectsBadProductID(t *testing.T) {
	handler, _ := newTestHandler(t, &fakeCheckout{})
	router := NewRouter(handler, nil)

	rec := doRequest(t, router, http.MethodPost, "/cart/items",
		`{"productId":0,"name":"x","unitPrice":1,"quantity":1}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestCheckoutConflictWhileProcessing(t *testing.T) {
	svc := &fakeCheckout{state: checkout.State{IsProcessing: true, CurrentStep: checkout.StepCreatingDelivery}}
	handler, _ := newTestHandler(t, svc)
	router := NewRouter(handler, nil)

	rec := doRequest(t, router, http.MethodPost, "/checkout", `{"order":{},"payment":{}}`)
	assert.Equal(t, http.StatusConflict, rec.Code)
}

func TestCheckoutSuccessClearsCart(t *testing.T) {
	svc := &fakeCheckout{
		result: &checkout.Result{
			CheckoutID: "run-1",
			Consolidated: &checkout.Consolidated{
				Customer: &shopapi.CreateCustomerResponse{ID: 7},
				Delivery: &shopapi.CreateDeliveryResponse{ID: 8},
				Order:    &shopapi.CreateOrderResponse{ID: 42, Total: 25000},
				Payment:  &shopapi.ProcessPaymentResponse{TransactionID: "txn-1"},
			},
		},
	}
	handler, store := newTestHandler(t, svc)
	router := NewRouter(handler, nil)

	require.NoError(t, store.Add(context.Background(), 1, "Audífonos", 10000, 2))

	rec := doRequest(t, router, http.MethodPost, "/checkout", `{"order":{},"payment":{}}`)
	require.Equal(t, http.StatusOK, rec.Code)

	var resp CheckoutResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.True(t, resp.Success)
	assert.Equal(t, "run-1", resp.CheckoutID)
	require.NotNil(t, resp.Consolidated)
	assert.Equal(t, 42, resp.Consolidated.Order.ID)

	assert.Empty(t, store.Items())
}

func TestCheckoutFailureKeepsCart(t *testing.T) {
	svc := &fakeCheckout{err: errors.New("Validación fallida: Email es requerido")}
	handler, store := newTestHandler(t, svc)
	router := NewRouter(handler, nil)

	require.NoError(t, store.Add(context.Background(), 1, "Audífonos", 10000, 2))

	rec := doRequest(t, router, http.MethodPost, "/checkout", `{"order":{},"payment":{}}`)
	require.Equal(t, http.StatusUnprocessableEntity, rec.Code)

	var resp CheckoutResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.False(t, resp.Success)
	assert.Contains(t, resp.Error, "Validación fallida")

	assert.Len(t, store.Items(), 1)
}

func TestCheckoutStatus(t *testing.T) {
	svc := &fakeCheckout{state: checkout.State{
		IsProcessing: true,
		CurrentStep:  checkout.StepProcessingPayment,
		Message:      "Iniciando pago con tarjeta de crédito...",
	}}
	handler, _ := newTestHandler(t, svc)
	router := NewRouter(handler, nil)

	rec := doRequest(t, router, http.MethodGet, "/checkout/status", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"processing-payment"`)
}

func TestCheckoutConflictFromProcessor(t *testing.T) {
	// The in-flight rejection can also come from the processor itself when two
	// requests race past the IsProcessing pre-check.
	svc := &fakeCheckout{err: checkout.ErrInFlight}
	handler, _ := newTestHandler(t, svc)
	router := NewRouter(handler, nil)

	rec := doRequest(t, router, http.MethodPost, "/checkout", `{"order":{},"payment":{}}`)
	assert.Equal(t, http.StatusConflict, rec.Code)
	assert.Contains(t, rec.Body.String(), "checkout_in_progress")
}

func TestCheckoutRunStatusFromLog(t *testing.T) {
	store := cart.NewStore(cache.NewMemoryKV(), "storefront:cart:test", 0)
	logRepo := &fakeCheckoutLog{entry: &checkoutlog.Entry{
		CheckoutID:   "run-9",
		Status:       checkoutlog.StatusFailed,
		Step:         "creating-order",
		ErrorMessage: "Validación fallida: Nombre del cliente es requerido",
		CreatedAt:    time.Date(2026, 8, 28, 10, 0, 0, 0, time.UTC),
	}}
	handler := NewHandler(&fakeCatalog{}, store, &fakeCheckout{}, logRepo, nil)
	router := NewRouter(handler, nil)

	rec := doRequest(t, router, http.MethodGet, "/checkout/run-9/status", "")
	require.Equal(t, http.StatusOK, rec.Code)

	var resp CheckoutRunStatusResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "run-9", resp.CheckoutID)
	assert.Equal(t, "FAILED", resp.Status)
	assert.Equal(t, "creating-order", resp.Step)
	assert.Contains(t, resp.Error, "Validación fallida")

	rec = doRequest(t, router, http.MethodGet, "/checkout/run-unknown/status", "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestListProductsBadGateway(t *testing.T) {
	handler := NewHandler(
		&fakeCatalog{err: &shopapi.RequestError{Message: shopapi.MsgServerUnavailable}},
		cart.NewStore(cache.NewMemoryKV(), "storefront:cart:test", 0),
		&fakeCheckout{},
		nil,
		nil,
	)
	router := NewRouter(handler, nil)

	rec := doRequest(t, router, http.MethodGet, "/products", "")
	assert.Equal(t, http.StatusBadGateway, rec.Code)
}
