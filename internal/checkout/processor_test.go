package checkout

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yavemu/products-shop-web/internal/shopapi"
)

// fakeAPI returns canned responses and records which endpoints were hit.
type fakeAPI struct {
	mu       sync.Mutex
	calls    []string
	customer shopapi.CreateCustomerResponse
	payErr   error
}

func newFakeAPI() *fakeAPI {
	return &fakeAPI{
		customer: shopapi.CreateCustomerResponse{
			ID: 7, Name: "Ana Gómez", Email: "ana@example.com", Phone: "3001234567",
		},
	}
}

func (f *fakeAPI) record(name string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls = append(f.calls, name)
}

func (f *fakeAPI) called(name string) bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, c := range f.calls {
		if c == name {
			return true
		}
	}
	return false
}

func (f *fakeAPI) CreateCustomer(_ context.Context, input shopapi.CreateCustomerInput) (*shopapi.CreateCustomerResponse, error) {
	f.record("customer")
	customer := f.customer
	return &customer, nil
}

func (f *fakeAPI) CreateDelivery(_ context.Context, input shopapi.CreateDeliveryInput) (*shopapi.CreateDeliveryResponse, error) {
	f.record("delivery")
	return &shopapi.CreateDeliveryResponse{
		ID:              8,
		Name:            input.Name,
		TrackingNumber:  input.TrackingNumber,
		ShippingAddress: input.ShippingAddress,
		Fee:             input.Fee,
		Status:          input.Status,
	}, nil
}

func (f *fakeAPI) CreateOrder(_ context.Context, input shopapi.CreateOrderInput) (*shopapi.CreateOrderResponse, error) {
	f.record("order")
	return &shopapi.CreateOrderResponse{ID: 42, Total: 595000, Status: "pending"}, nil
}

func (f *fakeAPI) ProcessPayment(_ context.Context, orderID int, input shopapi.ProcessPaymentInput) (*shopapi.ProcessPaymentResponse, error) {
	f.record("payment")
	if f.payErr != nil {
		return nil, f.payErr
	}
	return &shopapi.ProcessPaymentResponse{
		TransactionID: "txn-1",
		Status:        "approved",
		Amount:        input.DeliveryAmount,
		Order:         shopapi.PaymentOrder{ID: orderID, Status: "paid"},
	}, nil
}

func validOrderDraft() OrderDraft {
	return OrderDraft{
		CustomerName:    "Ana Gómez",
		CustomerEmail:   "ana@example.com",
		CustomerPhone:   "3001234567",
		DeliveryAddress: "Calle 10 #20-30",
		Products:        []shopapi.OrderProduct{{ID: 1, Quantity: 2}},
	}
}

func validPaymentDraft() PaymentDraft {
	return PaymentDraft{
		DeliveryProvider: "Envíos Bogotá",
		DeliveryFee:      12000,
		CardNumber:       "4111 1111 1111 1111",
		ExpMonth:         "08",
		ExpYear:          "2027",
		CVC:              "123",
		Installments:     1,
		CardHolder:       "ANA GOMEZ",
	}
}

func TestProcessOrderHappyPath(t *testing.T) {
	api := newFakeAPI()

	var mu sync.Mutex
	var steps []Step
	var processingDuringSteps []bool

	p := NewProcessor(api,
		WithDisplayDelay(50*time.Millisecond),
		WithObserver(func(s State) {
			mu.Lock()
			defer mu.Unlock()
			steps = append(steps, s.CurrentStep)
			processingDuringSteps = append(processingDuringSteps, s.IsProcessing)
		}),
	)

	result, err := p.ProcessOrder(context.Background(), validOrderDraft(), validPaymentDraft())
	require.NoError(t, err)
	require.NotNil(t, result.Consolidated)
	assert.NotEmpty(t, result.CheckoutID)
	assert.Equal(t, 42, result.Consolidated.Order.ID)
	assert.Equal(t, "txn-1", result.Consolidated.Payment.TransactionID)

	// A sixth snapshot (IsProcessing cleared) arrives after the display
	// delay; only the first five are the step sequence.
	mu.Lock()
	require.GreaterOrEqual(t, len(steps), 5)
	assert.Equal(t, []Step{
		StepCreatingCustomer,
		StepCreatingDelivery,
		StepCreatingOrder,
		StepProcessingPayment,
		StepCompleted,
	}, steps[:5])
	for _, processing := range processingDuringSteps[:5] {
		assert.True(t, processing)
	}
	mu.Unlock()

	// IsProcessing clears only after the display delay.
	require.Eventually(t, func() bool {
		return !p.State().IsProcessing
	}, time.Second, 5*time.Millisecond)
	assert.Equal(t, StepCompleted, p.State().CurrentStep)
}

func TestProcessOrderValidationFailureAtOrderStep(t *testing.T) {
	api := newFakeAPI()
	// The backend returns a customer with an empty name, so the order
	// cross-check rejects the payload before the order call.
	api.customer.Name = ""

	p := NewProcessor(api, WithDisplayDelay(0))

	_, err := p.ProcessOrder(context.Background(), validOrderDraft(), validPaymentDraft())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Validación fallida")

	state := p.State()
	assert.Equal(t, StepError, state.CurrentStep)
	assert.False(t, state.IsProcessing)
	assert.Contains(t, state.Err, "Validación fallida")

	assert.False(t, api.called("order"))
	assert.False(t, api.called("payment"))
}

func TestProcessOrderNetworkFailureAtPayment(t *testing.T) {
	api := newFakeAPI()
	api.payErr = &shopapi.RequestError{Message: shopapi.MsgServerUnavailable}

	p := NewProcessor(api, WithDisplayDelay(0))

	_, err := p.ProcessOrder(context.Background(), validOrderDraft(), validPaymentDraft())
	require.Error(t, err)
	assert.Equal(t, shopapi.MsgServerUnavailable, err.Error())

	state := p.State()
	assert.Equal(t, StepError, state.CurrentStep)
	assert.Equal(t, shopapi.MsgServerUnavailable, state.Err)
}

func TestProcessOrderInvalidCustomerInput(t *testing.T) {
	api := newFakeAPI()
	p := NewProcessor(api, WithDisplayDelay(0))

	order := validOrderDraft()
	order.CustomerEmail = "not-an-email"

	_, err := p.ProcessOrder(context.Background(), order, validPaymentDraft())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Validación fallida")
	assert.False(t, api.called("customer"))
}

// gateAPI parks the first customer call so a test can inject a second
// ProcessOrder while the first run is mid-flight.
type gateAPI struct {
	*fakeAPI
	entered chan struct{}
	release chan struct{}
}

func (g *gateAPI) CreateCustomer(ctx context.Context, input shopapi.CreateCustomerInput) (*shopapi.CreateCustomerResponse, error) {
	close(g.entered)
	<-g.release
	return g.fakeAPI.CreateCustomer(ctx, input)
}

func TestProcessOrderSingleFlight(t *testing.T) {
	api := &gateAPI{
		fakeAPI: newFakeAPI(),
		entered: make(chan struct{}),
		release: make(chan struct{}),
	}
	p := NewProcessor(api, WithDisplayDelay(0))

	done := make(chan error, 1)
	go func() {
		_, err := p.ProcessOrder(context.Background(), validOrderDraft(), validPaymentDraft())
		done <- err
	}()

	// Second run arrives while the first is parked inside the customer call.
	<-api.entered
	_, err := p.ProcessOrder(context.Background(), validOrderDraft(), validPaymentDraft())
	assert.ErrorIs(t, err, ErrInFlight)

	// The rejection must not have disturbed the running checkout.
	assert.True(t, p.State().IsProcessing)

	close(api.release)
	require.NoError(t, <-done)

	// Exactly one run reached the backend.
	api.mu.Lock()
	customerCalls := 0
	for _, c := range api.calls {
		if c == "customer" {
			customerCalls++
		}
	}
	api.mu.Unlock()
	assert.Equal(t, 1, customerCalls)
}

func TestResetReturnsToInitialState(t *testing.T) {
	api := newFakeAPI()
	api.customer.Name = ""

	p := NewProcessor(api, WithDisplayDelay(0))
	_, err := p.ProcessOrder(context.Background(), validOrderDraft(), validPaymentDraft())
	require.Error(t, err)

	p.Reset()
	state := p.State()
	assert.Equal(t, StepCreatingCustomer, state.CurrentStep)
	assert.False(t, state.IsProcessing)
	assert.Empty(t, state.Err)
}

func TestCanTransition(t *testing.T) {
	assert.True(t, CanTransition(StepCreatingCustomer, StepCreatingDelivery))
	assert.True(t, CanTransition(StepCreatingDelivery, StepCreatingOrder))
	assert.True(t, CanTransition(StepCreatingOrder, StepProcessingPayment))
	assert.True(t, CanTransition(StepProcessingPayment, StepCompleted))

	// Error is reachable from anywhere.
	assert.True(t, CanTransition(StepCreatingCustomer, StepError))
	assert.True(t, CanTransition(StepCompleted, StepError))

	// Skipping or rewinding is forbidden.
	assert.False(t, CanTransition(StepCreatingCustomer, StepCreatingOrder))
	assert.False(t, CanTransition(StepCreatingDelivery, StepCompleted))
	assert.False(t, CanTransition(StepCompleted, StepCreatingCustomer))
}
