// Package shopbackend is an in-memory implementation of the shop REST API
// (customers, deliveries, orders, payments, catalog) for local development.
// State lives in maps guarded by a mutex and is lost on restart.
package shopbackend

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/google/uuid"
	"github.com/yavemu/products-shop-web/internal/shopapi"
)

// declinedCardSuffix marks the test card that always fails, so the checkout
// error path can be exercised end to end.
const declinedCardSuffix = "0002"

// Server holds the in-memory backend state.
type Server struct {
	mu         sync.Mutex
	nextID     int
	products   map[int]*shopapi.Product
	customers  map[int]*shopapi.CreateCustomerResponse
	deliveries map[int]*shopapi.CreateDeliveryResponse
	orders     map[int]*shopapi.CreateOrderResponse
}

// NewServer seeds the catalog and returns an empty backend.
func NewServer() *Server {
	s := &Server{
		nextID:     1,
		products:   make(map[int]*shopapi.Product),
		customers:  make(map[int]*shopapi.CreateCustomerResponse),
		deliveries: make(map[int]*shopapi.CreateDeliveryResponse),
		orders:     make(map[int]*shopapi.CreateOrderResponse),
	}
	for _, p := range seedCatalog() {
		product := p
		s.products[product.ID] = &product
	}
	return s
}

// Router assembles the backend routes.
func (s *Server) Router() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)

	r.Get("/products", s.listProducts)
	r.Post("/customers", s.createCustomer)
	r.Post("/deliveries", s.createDelivery)
	r.Post("/orders", s.createOrder)
	r.Post("/payment/{orderID}/pay-with-credit-card", s.processPayment)

	return r
}

func (s *Server) listProducts(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()

	products := make([]shopapi.Product, 0, len(s.products))
	for _, p := range s.products {
		products = append(products, *p)
	}
	writeJSON(w, http.StatusOK, products)
}

func (s *Server) createCustomer(w http.ResponseWriter, r *http.Request) {
	var input shopapi.CreateCustomerInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		writeText(w, http.StatusBadRequest, "invalid JSON body")
		return
	}
	if strings.TrimSpace(input.Name) == "" || strings.TrimSpace(input.Email) == "" {
		writeText(w, http.StatusBadRequest, "name and email are required")
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	customer := &shopapi.CreateCustomerResponse{
		ID:    s.allocateID(),
		Name:  input.Name,
		Email: input.Email,
		Phone: input.Phone,
	}
	s.customers[customer.ID] = customer

	slog.InfoContext(r.Context(), "customer created", "customer_id", customer.ID)
	writeJSON(w, http.StatusCreated, customer)
}

func (s *Server) createDelivery(w http.ResponseWriter, r *http.Request) {
	var input shopapi.CreateDeliveryInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		writeText(w, http.StatusBadRequest, "invalid JSON body")
		return
	}
	if strings.TrimSpace(input.TrackingNumber) == "" || strings.TrimSpace(input.ShippingAddress) == "" {
		writeText(w, http.StatusBadRequest, "trackingNumber and shippingAddress are required")
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	now := time.Now().UTC().Format(time.RFC3339)
	delivery := &shopapi.CreateDeliveryResponse{
		ID:              s.allocateID(),
		Name:            input.Name,
		TrackingNumber:  input.TrackingNumber,
		ShippingAddress: input.ShippingAddress,
		Fee:             input.Fee,
		Status:          input.Status,
		CreatedAt:       now,
		UpdatedAt:       now,
	}
	s.deliveries[delivery.ID] = delivery

	slog.InfoContext(r.Context(), "delivery created",
		"delivery_id", delivery.ID, "tracking_number", delivery.TrackingNumber)
	writeJSON(w, http.StatusCreated, delivery)
}

func (s *Server) createOrder(w http.ResponseWriter, r *http.Request) {
	var input shopapi.CreateOrderInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		writeText(w, http.StatusBadRequest, "invalid JSON body")
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	customer, ok := s.customers[input.CustomerID]
	if !ok {
		writeText(w, http.StatusBadRequest, fmt.Sprintf("customer %d not found", input.CustomerID))
		return
	}
	delivery, ok := s.deliveries[input.DeliveryID]
	if !ok {
		writeText(w, http.StatusBadRequest, fmt.Sprintf("delivery %d not found", input.DeliveryID))
		return
	}
	if len(input.Products) == 0 {
		writeText(w, http.StatusBadRequest, "order must contain at least one product")
		return
	}

	lines := make([]shopapi.OrderLine, 0, len(input.Products))
	var total float64
	for _, item := range input.Products {
		product, ok := s.products[item.ID]
		if !ok {
			writeText(w, http.StatusBadRequest, fmt.Sprintf("product %d not found", item.ID))
			return
		}
		if product.Stock < item.Quantity {
			writeText(w, http.StatusBadRequest,
				fmt.Sprintf("insufficient stock for product %d: have %d, want %d", item.ID, product.Stock, item.Quantity))
			return
		}
		subtotal := product.Price * float64(item.Quantity)
		lines = append(lines, shopapi.OrderLine{
			ID:       product.ID,
			Name:     product.Name,
			Price:    product.Price,
			Quantity: item.Quantity,
			Subtotal: subtotal,
		})
		total += subtotal
	}
	// All lines verified; commit the stock decrement.
	for _, item := range input.Products {
		s.products[item.ID].Stock -= item.Quantity
	}

	order := &shopapi.CreateOrderResponse{
		ID: s.allocateID(),
		Customer: shopapi.OrderCustomer{
			ID:    customer.ID,
			Name:  customer.Name,
			Email: customer.Email,
			Phone: customer.Phone,
		},
		Delivery: shopapi.OrderDelivery{
			ID:              delivery.ID,
			Name:            delivery.Name,
			TrackingNumber:  delivery.TrackingNumber,
			ShippingAddress: delivery.ShippingAddress,
			Fee:             delivery.Fee,
			Status:          delivery.Status,
		},
		Products:  lines,
		Total:     total,
		Status:    "pending",
		CreatedAt: time.Now().UTC().Format(time.RFC3339),
	}
	s.orders[order.ID] = order

	slog.InfoContext(r.Context(), "order created", "order_id", order.ID, "total", total)
	writeJSON(w, http.StatusCreated, order)
}

func (s *Server) processPayment(w http.ResponseWriter, r *http.Request) {
	orderID, err := strconv.Atoi(chi.URLParam(r, "orderID"))
	if err != nil {
		writeText(w, http.StatusBadRequest, "order id must be numeric")
		return
	}

	var input shopapi.ProcessPaymentInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		writeText(w, http.StatusBadRequest, "invalid JSON body")
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	order, ok := s.orders[orderID]
	if !ok {
		writeText(w, http.StatusNotFound, fmt.Sprintf("order %d not found", orderID))
		return
	}

	if strings.HasSuffix(input.CardNumber, declinedCardSuffix) {
		slog.InfoContext(r.Context(), "payment declined", "order_id", orderID)
		writeText(w, http.StatusPaymentRequired, "card declined by issuer")
		return
	}

	order.Status = "paid"
	amount := order.Total + input.DeliveryAmount

	slog.InfoContext(r.Context(), "payment approved", "order_id", orderID, "amount", amount)
	writeJSON(w, http.StatusCreated, shopapi.ProcessPaymentResponse{
		TransactionID: uuid.NewString(),
		Status:        "approved",
		Amount:        amount,
		Order: shopapi.PaymentOrder{
			ID:     order.ID,
			Status: order.Status,
			Total:  order.Total,
		},
		Message: "Pago aprobado",
	})
}

func (s *Server) allocateID() int {
	id := s.nextID
	s.nextID++
	return id
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// writeText sends the failure detail as plain text: the storefront client
// embeds the raw body in its status-error message.
func writeText(w http.ResponseWriter, status int, msg string) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(status)
	_, _ = w.Write([]byte(msg))
}
