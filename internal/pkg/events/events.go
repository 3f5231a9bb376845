// Package events publishes checkout lifecycle events to Kafka so downstream
// consumers (notifications, analytics) can react without coupling to the
// storefront. Publishing is optional: with no brokers configured the
// publisher is disabled and every Publish is a no-op.
package events

import (
	"context"
	"encoding/json"
	"log/slog"
	"strings"
	"time"

	"github.com/segmentio/kafka-go"
)

const TopicCheckoutCompleted = "checkout.completed"

// CheckoutCompleted is emitted once per successful checkout run.
// No payment card data is ever included.
type CheckoutCompleted struct {
	CheckoutID  string    `json:"checkoutId"`
	OrderID     int       `json:"orderId"`
	CustomerID  int       `json:"customerId"`
	DeliveryID  int       `json:"deliveryId"`
	Transaction string    `json:"transactionId"`
	Total       float64   `json:"total"`
	CompletedAt time.Time `json:"completedAt"`
}

// Publisher writes JSON events to Kafka.
type Publisher struct {
	writer *kafka.Writer
}

// NewPublisher builds a Publisher from a comma-separated broker list.
// An empty list returns a disabled publisher.
func NewPublisher(brokersCSV, topic string) *Publisher {
	var brokers []string
	for _, b := range strings.Split(brokersCSV, ",") {
		if b = strings.TrimSpace(b); b != "" {
			brokers = append(brokers, b)
		}
	}
	if len(brokers) == 0 {
		return &Publisher{}
	}
	return &Publisher{
		writer: &kafka.Writer{
			Addr:         kafka.TCP(brokers...),
			Topic:        topic,
			Balancer:     &kafka.Hash{},
			RequiredAcks: kafka.RequireOne,
		},
	}
}

// Enabled reports whether a broker is configured.
func (p *Publisher) Enabled() bool {
	return p.writer != nil
}

// Publish writes the event keyed by checkout ID. Failures are logged and
// swallowed: a completed checkout must never look failed because the event
// bus is down.
func (p *Publisher) Publish(ctx context.Context, event CheckoutCompleted) {
	if !p.Enabled() {
		return
	}
	payload, err := json.Marshal(event)
	if err != nil {
		slog.ErrorContext(ctx, "encode checkout event", "error", err)
		return
	}
	msg := kafka.Message{
		Key:   []byte(event.CheckoutID),
		Value: payload,
		Time:  time.Now().UTC(),
	}
	if err := p.writer.WriteMessages(ctx, msg); err != nil {
		slog.ErrorContext(ctx, "publish checkout event",
			"checkout_id", event.CheckoutID, "error", err)
	}
}

// Close flushes and closes the underlying writer.
func (p *Publisher) Close() error {
	if p.writer == nil {
		return nil
	}
	return p.writer.Close()
}
