package shopapi

// Product is a catalog entry as returned by GET /products.
type Product struct {
	ID          int     `json:"id"`
	Name        string  `json:"name"`
	Brand       string  `json:"brand"`
	Description string  `json:"description"`
	Stock       int     `json:"stock"`
	Price       float64 `json:"price"`
	MainImage   string  `json:"mainImage"`
	Thumbnail   string  `json:"thumbnail"`
}

// CreateCustomerInput is the body for POST /customers.
type CreateCustomerInput struct {
	Name  string `json:"name"`
	Email string `json:"email"`
	Phone string `json:"phone"`
}

// Delivery status values accepted by the backend.
const (
	DeliveryStatusPending   = "pending"
	DeliveryStatusInTransit = "in_transit"
	DeliveryStatusDelivered = "delivered"
	DeliveryStatusFailed    = "failed"
)

// CreateDeliveryInput is the body for POST /deliveries.
type CreateDeliveryInput struct {
	Name            string  `json:"name"`
	TrackingNumber  string  `json:"trackingNumber"`
	ShippingAddress string  `json:"shippingAddress"`
	Fee             float64 `json:"fee"`
	Status          string  `json:"status"`
}

// OrderProduct is a product reference inside an order payload.
type OrderProduct struct {
	ID       int `json:"id"`
	Quantity int `json:"quantity"`
}

// CreateOrderInput is the body for POST /orders. The customer and delivery
// fields must carry the server-confirmed values from the two prior calls,
// not the client's original draft.
type CreateOrderInput struct {
	CustomerID      int            `json:"customerId"`
	DeliveryID      int            `json:"deliveryId"`
	CustomerName    string         `json:"customerName"`
	CustomerEmail   string         `json:"customerEmail"`
	CustomerPhone   string         `json:"customerPhone,omitempty"`
	ShippingAddress string         `json:"shippingAddress"`
	Products        []OrderProduct `json:"products"`
}

// ProcessPaymentInput is the body for POST /payment/{orderID}/pay-with-credit-card.
// CardNumber must be normalized (spaces stripped) before validation. The whole
// struct is never persisted anywhere.
type ProcessPaymentInput struct {
	DeliveryAmount float64 `json:"deliveryAmount"`
	DeliveryName   string  `json:"deliveryName"`
	CardNumber     string  `json:"cardNumber"`
	ExpMonth       string  `json:"expMonth"`
	ExpYear        string  `json:"expYear"`
	CVC            string  `json:"cvc"`
	Installments   int     `json:"installments"`
	CardHolder     string  `json:"cardHolder"`
}

// CreateCustomerResponse is the server-confirmed customer record.
type CreateCustomerResponse struct {
	ID    int    `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
	Phone string `json:"phone"`
}

// CreateDeliveryResponse is the server-confirmed delivery record.
type CreateDeliveryResponse struct {
	ID              int     `json:"id"`
	Name            string  `json:"name"`
	TrackingNumber  string  `json:"trackingNumber"`
	ShippingAddress string  `json:"shippingAddress"`
	Fee             float64 `json:"fee"`
	Status          string  `json:"status"`
	CreatedAt       string  `json:"createdAt"`
	UpdatedAt       string  `json:"updatedAt"`
}

// OrderCustomer echoes the customer embedded in an order response.
type OrderCustomer struct {
	ID    int    `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
	Phone string `json:"phone"`
}

// OrderDelivery echoes the delivery embedded in an order response.
type OrderDelivery struct {
	ID              int     `json:"id"`
	Name            string  `json:"name"`
	TrackingNumber  string  `json:"trackingNumber"`
	ShippingAddress string  `json:"shippingAddress"`
	Fee             float64 `json:"fee"`
	Status          string  `json:"status"`
}

// OrderLine is a priced product line inside an order response.
type OrderLine struct {
	ID       int     `json:"id"`
	Name     string  `json:"name"`
	Price    float64 `json:"price"`
	Quantity int     `json:"quantity"`
	Subtotal float64 `json:"subtotal"`
}

// CreateOrderResponse is the server-confirmed order record.
type CreateOrderResponse struct {
	ID        int           `json:"id"`
	Customer  OrderCustomer `json:"customer"`
	Delivery  OrderDelivery `json:"delivery"`
	Products  []OrderLine   `json:"products"`
	Total     float64       `json:"total"`
	Status    string        `json:"status"`
	CreatedAt string        `json:"createdAt"`
}

// PaymentOrder echoes the order embedded in a payment response.
type PaymentOrder struct {
	ID     int     `json:"id"`
	Status string  `json:"status"`
	Total  float64 `json:"total"`
}

// ProcessPaymentResponse is the payment gateway result.
type ProcessPaymentResponse struct {
	TransactionID string       `json:"transaction_id"`
	Status        string       `json:"status"`
	Amount        float64      `json:"amount"`
	Order         PaymentOrder `json:"order"`
	Message       string       `json:"message"`
}
