// Package checkout drives the four-step order process: create customer,
// create delivery, create order, process payment. Steps run strictly
// sequentially; each payload is validated before its call, and every state
// transition is pushed to an observer the processor owns.
package checkout

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/yavemu/products-shop-web/internal/checkout/checkoutlog"
	"github.com/yavemu/products-shop-web/internal/shopapi"
)

// API is the slice of the backend client the processor needs.
type API interface {
	CreateCustomer(ctx context.Context, input shopapi.CreateCustomerInput) (*shopapi.CreateCustomerResponse, error)
	CreateDelivery(ctx context.Context, input shopapi.CreateDeliveryInput) (*shopapi.CreateDeliveryResponse, error)
	CreateOrder(ctx context.Context, input shopapi.CreateOrderInput) (*shopapi.CreateOrderResponse, error)
	ProcessPayment(ctx context.Context, orderID int, input shopapi.ProcessPaymentInput) (*shopapi.ProcessPaymentResponse, error)
}

var _ API = (*shopapi.Client)(nil)

// ErrInFlight is returned by ProcessOrder when another run already holds the
// processor. The caller's state is untouched; the running checkout continues.
var ErrInFlight = errors.New("checkout already in progress")

// Observer receives every state snapshot. The snapshot is a value copy; the
// observer must not assume it sees every intermediate state if it is slow.
type Observer func(State)

// displayDelay is how long the completed banner stays marked as processing
// before IsProcessing clears.
const defaultDisplayDelay = 1500 * time.Millisecond

// Processor runs checkout sequences, one at a time. ProcessOrder claims the
// processor atomically; a second call while a run is in flight returns
// ErrInFlight instead of clobbering the shared state.
type Processor struct {
	api          API
	logRepo      checkoutlog.Repository // nil-safe: audit logging skipped if nil
	observer     Observer
	displayDelay time.Duration

	mu    sync.Mutex
	state State
}

// Option configures a Processor.
type Option func(*Processor)

// WithObserver sets the state-change callback.
func WithObserver(fn Observer) Option {
	return func(p *Processor) { p.observer = fn }
}

// WithLog sets the audit log repository.
func WithLog(repo checkoutlog.Repository) Option {
	return func(p *Processor) { p.logRepo = repo }
}

// WithDisplayDelay overrides how long the completed state keeps IsProcessing
// set. Tests use a zero delay.
func WithDisplayDelay(d time.Duration) Option {
	return func(p *Processor) { p.displayDelay = d }
}

// NewProcessor builds a Processor over the given backend API.
func NewProcessor(api API, opts ...Option) *Processor {
	p := &Processor{
		api:          api,
		displayDelay: defaultDisplayDelay,
		state: State{
			IsProcessing: false,
			CurrentStep:  StepCreatingCustomer,
		},
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// State returns the latest snapshot.
func (p *Processor) State() State {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.state
}

// Reset returns the processor to its initial state, e.g. when the UI leaves
// the checkout page. Must not be called while a run is in flight.
func (p *Processor) Reset() {
	p.setState(func(s *State) {
		*s = State{IsProcessing: false, CurrentStep: StepCreatingCustomer}
	})
}

// ProcessOrder runs the checkout sequence. On any failure — validation or
// network — the run stops immediately and the error state carries a single
// user-visible message. Already-created customer/delivery/order records are
// NOT rolled back; compensation is an unresolved product decision.
func (p *Processor) ProcessOrder(ctx context.Context, order OrderDraft, payment PaymentDraft) (*Result, error) {
	if !p.begin() {
		return nil, ErrInFlight
	}

	checkoutID := uuid.NewString()
	p.logStart(ctx, checkoutID, order)

	// Step 1: create customer.
	customerInput := shopapi.CreateCustomerInput{
		Name:  order.CustomerName,
		Email: order.CustomerEmail,
		Phone: order.CustomerPhone,
	}
	if vErr := shopapi.ValidateCustomerInput(customerInput); vErr != nil {
		return nil, p.fail(ctx, checkoutID, StepCreatingCustomer, vErr)
	}
	customer, err := p.api.CreateCustomer(ctx, customerInput)
	if err != nil {
		return nil, p.fail(ctx, checkoutID, StepCreatingCustomer, err)
	}
	p.logStepDone(ctx, checkoutID, StepCreatingCustomer)

	// Step 2: create delivery with a client-generated tracking number.
	deliveryInput := shopapi.CreateDeliveryInput{
		Name:            order.CustomerName,
		TrackingNumber:  newTrackingNumber(),
		ShippingAddress: order.DeliveryAddress,
		Fee:             payment.DeliveryFee,
		Status:          shopapi.DeliveryStatusPending,
	}
	if vErr := shopapi.ValidateDeliveryInput(deliveryInput); vErr != nil {
		return nil, p.fail(ctx, checkoutID, StepCreatingDelivery, vErr)
	}
	p.advance(StepCreatingDelivery)
	delivery, err := p.api.CreateDelivery(ctx, deliveryInput)
	if err != nil {
		return nil, p.fail(ctx, checkoutID, StepCreatingDelivery, err)
	}
	p.logStepDone(ctx, checkoutID, StepCreatingDelivery)

	// Step 3: create the order from the server-confirmed customer and
	// delivery fields, never from the client's original draft.
	orderInput := shopapi.CreateOrderInput{
		CustomerID:      customer.ID,
		DeliveryID:      delivery.ID,
		CustomerName:    customer.Name,
		CustomerEmail:   customer.Email,
		CustomerPhone:   customer.Phone,
		ShippingAddress: delivery.ShippingAddress,
		Products:        order.Products,
	}
	if vErr := shopapi.ValidateOrderInput(orderInput, customer, delivery); vErr != nil {
		return nil, p.fail(ctx, checkoutID, StepCreatingOrder, vErr)
	}
	p.advance(StepCreatingOrder)
	createdOrder, err := p.api.CreateOrder(ctx, orderInput)
	if err != nil {
		return nil, p.fail(ctx, checkoutID, StepCreatingOrder, err)
	}
	p.logStepDone(ctx, checkoutID, StepCreatingOrder)

	// Step 4: charge the card, scoped to the created order.
	paymentInput := shopapi.ProcessPaymentInput{
		DeliveryAmount: payment.DeliveryFee,
		DeliveryName:   payment.DeliveryProvider,
		CardNumber:     strings.ReplaceAll(payment.CardNumber, " ", ""),
		ExpMonth:       payment.ExpMonth,
		ExpYear:        payment.ExpYear,
		CVC:            payment.CVC,
		Installments:   payment.Installments,
		CardHolder:     payment.CardHolder,
	}
	if vErr := shopapi.ValidatePaymentInput(paymentInput); vErr != nil {
		return nil, p.fail(ctx, checkoutID, StepProcessingPayment, vErr)
	}
	p.advance(StepProcessingPayment)
	paymentResponse, err := p.api.ProcessPayment(ctx, createdOrder.ID, paymentInput)
	if err != nil {
		return nil, p.fail(ctx, checkoutID, StepProcessingPayment, err)
	}
	p.logStepDone(ctx, checkoutID, StepProcessingPayment)

	p.advance(StepCompleted)
	p.logCompleted(ctx, checkoutID)

	// Keep the completed banner marked as in-progress for the display delay,
	// then release the processing flag.
	time.AfterFunc(p.displayDelay, func() {
		p.setState(func(s *State) { s.IsProcessing = false })
	})

	return &Result{
		CheckoutID: checkoutID,
		Consolidated: &Consolidated{
			Customer: customer,
			Delivery: delivery,
			Order:    createdOrder,
			Payment:  paymentResponse,
		},
	}, nil
}

// begin claims the processor for a new run: it flips IsProcessing under the
// lock only if no run holds it, so two racing callers cannot both start.
func (p *Processor) begin() bool {
	p.mu.Lock()
	if p.state.IsProcessing {
		p.mu.Unlock()
		return false
	}
	p.state = State{
		IsProcessing: true,
		CurrentStep:  StepCreatingCustomer,
		Message:      stepMessages[StepCreatingCustomer],
	}
	snapshot := p.state
	p.mu.Unlock()

	if p.observer != nil {
		p.observer(snapshot)
	}
	return true
}

// advance moves the state machine to the next step and emits the snapshot.
// Transitions outside the table are a programming error and are refused.
func (p *Processor) advance(to Step) {
	p.setState(func(s *State) {
		if !CanTransition(s.CurrentStep, to) {
			slog.Error("illegal checkout transition refused",
				"from", s.CurrentStep.String(), "to", to.String())
			return
		}
		s.CurrentStep = to
		s.Message = stepMessages[to]
	})
}

// fail moves the state machine to the error state, records the failure, and
// returns the error the caller should surface. Validation failures get a
// "Validación fallida" prefix.
func (p *Processor) fail(ctx context.Context, checkoutID string, step Step, err error) error {
	message := userMessage(err)

	p.setState(func(s *State) {
		s.CurrentStep = StepError
		s.Message = stepMessages[StepError]
		s.Err = message
		s.IsProcessing = false
	})

	slog.ErrorContext(ctx, "checkout failed",
		"checkout_id", checkoutID, "step", step.String(), "error", err)
	p.logFailed(ctx, checkoutID, step, message)

	return fmt.Errorf("%s", message)
}

func userMessage(err error) string {
	var vErr *shopapi.ValidationError
	if errors.As(err, &vErr) {
		return fmt.Sprintf("Validación fallida: %s", vErr.Message)
	}
	if err != nil {
		return err.Error()
	}
	return "Error desconocido"
}

func (p *Processor) setState(mutate func(*State)) {
	p.mu.Lock()
	mutate(&p.state)
	snapshot := p.state
	p.mu.Unlock()

	if p.observer != nil {
		p.observer(snapshot)
	}
}

func (p *Processor) logStart(ctx context.Context, checkoutID string, order OrderDraft) {
	if p.logRepo == nil {
		return
	}
	// Only the order draft goes into the log. The payment draft carries card
	// data and must never be persisted.
	payload := ""
	if raw, err := json.Marshal(order); err == nil {
		payload = string(raw)
	}
	p.save(ctx, checkoutlog.NewEntry(ctx, checkoutID, checkoutlog.StatusStarted, StepCreatingCustomer.String(), payload, ""))
}

func (p *Processor) logStepDone(ctx context.Context, checkoutID string, step Step) {
	if p.logRepo == nil {
		return
	}
	p.save(ctx, checkoutlog.NewEntry(ctx, checkoutID, checkoutlog.StatusStepDone, step.String(), "", ""))
}

func (p *Processor) logCompleted(ctx context.Context, checkoutID string) {
	if p.logRepo == nil {
		return
	}
	p.save(ctx, checkoutlog.NewEntry(ctx, checkoutID, checkoutlog.StatusCompleted, StepCompleted.String(), "", ""))
}

func (p *Processor) logFailed(ctx context.Context, checkoutID string, step Step, message string) {
	if p.logRepo == nil {
		return
	}
	p.save(ctx, checkoutlog.NewEntry(ctx, checkoutID, checkoutlog.StatusFailed, step.String(), "", message))
}

func (p *Processor) save(ctx context.Context, entry *checkoutlog.Entry) {
	if err := p.logRepo.Save(ctx, entry); err != nil {
		slog.ErrorContext(ctx, "checkout log write failed",
			"checkout_id", entry.CheckoutID, "error", err)
	}
}
