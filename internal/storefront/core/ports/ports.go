// Package ports defines the interfaces the storefront HTTP layer consumes,
// so handlers can be tested against fakes.
package ports

import (
	"context"

	"github.com/yavemu/products-shop-web/internal/cart"
	"github.com/yavemu/products-shop-web/internal/checkout"
	"github.com/yavemu/products-shop-web/internal/checkout/checkoutlog"
	"github.com/yavemu/products-shop-web/internal/shopapi"
)

// CheckoutService runs the order process and exposes its latest state.
type CheckoutService interface {
	ProcessOrder(ctx context.Context, order checkout.OrderDraft, payment checkout.PaymentDraft) (*checkout.Result, error)
	State() checkout.State
}

// CartStore is the customer's cart.
type CartStore interface {
	Add(ctx context.Context, productID int, name string, unitPrice float64, quantity int) error
	Remove(ctx context.Context, productID int) error
	Clear(ctx context.Context) error
	Load(ctx context.Context) error
	Items() []cart.Item
	Summarize() cart.Summary
}

// CheckoutLog reads the durable audit trail, so past runs can be answered
// even after a restart wiped the in-memory processor state.
type CheckoutLog interface {
	Latest(ctx context.Context, checkoutID string) (*checkoutlog.Entry, error)
}

// Catalog lists the products available for sale.
type Catalog interface {
	ListProducts(ctx context.Context) ([]shopapi.Product, error)
}
