package httpx

import (
	"github.com/yavemu/products-shop-web/internal/cart"
	"github.com/yavemu/products-shop-web/internal/checkout"
)

type AddCartItemRequest struct {
	ProductID int     `json:"productId"`
	Name      string  `json:"name"`
	UnitPrice float64 `json:"unitPrice"`
	Quantity  int     `json:"quantity"`
}

type CartResponse struct {
	Items          []cart.Item `json:"items"`
	Lines          int         `json:"lines"`
	Units          int         `json:"units"`
	Total          float64     `json:"total"`
	FormattedTotal string      `json:"formattedTotal"`
}

type CheckoutRequest struct {
	Order   checkout.OrderDraft   `json:"order"`
	Payment checkout.PaymentDraft `json:"payment"`
}

type CheckoutResponse struct {
	Success      bool                   `json:"success"`
	CheckoutID   string                 `json:"checkoutId,omitempty"`
	Consolidated *checkout.Consolidated `json:"consolidated,omitempty"`
	Error        string                 `json:"error,omitempty"`
}

type CheckoutRunStatusResponse struct {
	CheckoutID string `json:"checkoutId"`
	Status     string `json:"status"`
	Step       string `json:"step"`
	Error      string `json:"error,omitempty"`
	UpdatedAt  string `json:"updatedAt"`
}

type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
}
