package checkout

import "github.com/yavemu/products-shop-web/internal/shopapi"

// OrderDraft is the client-constructed, not-yet-confirmed order payload built
// from cart contents and customer-entered form fields. Immutable once handed
// to the processor.
type OrderDraft struct {
	CustomerName    string                 `json:"customerName"`
	CustomerEmail   string                 `json:"customerEmail"`
	CustomerPhone   string                 `json:"customerPhone,omitempty"`
	DeliveryAddress string                 `json:"deliveryAddress"`
	Products        []shopapi.OrderProduct `json:"products"`
}

// PaymentDraft is the card payment payload built from form input.
// Never persisted and never written to the checkout log.
type PaymentDraft struct {
	DeliveryProvider string  `json:"deliveryName"`
	DeliveryFee      float64 `json:"deliveryAmount"`
	CardNumber       string  `json:"cardNumber"`
	ExpMonth         string  `json:"expMonth"`
	ExpYear          string  `json:"expYear"`
	CVC              string  `json:"cvc"`
	Installments     int     `json:"installments"`
	CardHolder       string  `json:"cardHolder"`
}

// State is the snapshot pushed to the observer after every transition.
// The UI only reads it; the processor is the sole mutator.
type State struct {
	IsProcessing bool   `json:"isProcessing"`
	CurrentStep  Step   `json:"currentStep"`
	Message      string `json:"message"`
	Err          string `json:"error,omitempty"`
}

// Consolidated bundles the four endpoint responses. Produced only on success;
// ownership passes to the caller, which may clear the cart and navigate away.
type Consolidated struct {
	Customer *shopapi.CreateCustomerResponse `json:"customerResponse"`
	Delivery *shopapi.CreateDeliveryResponse `json:"deliveryResponse"`
	Order    *shopapi.CreateOrderResponse    `json:"orderResponse"`
	Payment  *shopapi.ProcessPaymentResponse `json:"paymentResponse"`
}

// Result is the outcome of a checkout run.
type Result struct {
	CheckoutID   string        `json:"checkoutId"`
	Consolidated *Consolidated `json:"consolidated,omitempty"`
}
