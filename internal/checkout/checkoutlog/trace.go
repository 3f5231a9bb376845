package checkoutlog

import (
	"context"
	"time"

	"go.opentelemetry.io/otel/trace"
)

// NewEntry builds an Entry with the trace identifiers of the span active in
// ctx. When ctx carries no valid span (unit tests, plain runs) the trace
// fields stay empty, which every consumer tolerates.
func NewEntry(ctx context.Context, checkoutID string, status Status, step, payload, errorMessage string) *Entry {
	entry := &Entry{
		CheckoutID:   checkoutID,
		Status:       status,
		Step:         step,
		Payload:      payload,
		ErrorMessage: errorMessage,
		CreatedAt:    time.Now().UTC(),
	}

	if sc := trace.SpanFromContext(ctx).SpanContext(); sc.IsValid() {
		entry.TraceID = sc.TraceID().String()
		entry.SpanID = sc.SpanID().String()
	}
	return entry
}
