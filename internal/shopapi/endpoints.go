package shopapi

import (
	"context"
	"fmt"
	"net/http"
)

// CreateCustomer registers the customer and returns the server-confirmed record.
func (c *Client) CreateCustomer(ctx context.Context, input CreateCustomerInput) (*CreateCustomerResponse, error) {
	var out CreateCustomerResponse
	if err := c.call(ctx, http.MethodPost, "/customers", input, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// CreateDelivery registers the delivery and returns the server-confirmed record.
func (c *Client) CreateDelivery(ctx context.Context, input CreateDeliveryInput) (*CreateDeliveryResponse, error) {
	var out CreateDeliveryResponse
	if err := c.call(ctx, http.MethodPost, "/deliveries", input, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// CreateOrder places the order and returns the server-confirmed record.
func (c *Client) CreateOrder(ctx context.Context, input CreateOrderInput) (*CreateOrderResponse, error) {
	var out CreateOrderResponse
	if err := c.call(ctx, http.MethodPost, "/orders", input, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// ProcessPayment charges the card for the given order.
func (c *Client) ProcessPayment(ctx context.Context, orderID int, input ProcessPaymentInput) (*ProcessPaymentResponse, error) {
	var out ProcessPaymentResponse
	endpoint := fmt.Sprintf("/payment/%d/pay-with-credit-card", orderID)
	if err := c.call(ctx, http.MethodPost, endpoint, input, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// ListProducts fetches the product catalog.
func (c *Client) ListProducts(ctx context.Context) ([]Product, error) {
	var out []Product
	if err := c.call(ctx, http.MethodGet, "/products", nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}
