// Package checkoutlog defines the durable audit trail of checkout runs.
//
// Each state transition of the order-process state machine appends one entry,
// so the log answers "where is (or was) checkout X" and, via the trace_id
// field, links each row to the distributed trace it belongs to.
package checkoutlog

import "time"

// Status is the lifecycle state of a checkout run at the time of the entry.
type Status string

const (
	StatusStarted   Status = "STARTED"
	StatusStepDone  Status = "STEP_DONE"
	StatusCompleted Status = "COMPLETED"
	StatusFailed    Status = "FAILED"
)

// Entry is a point-in-time snapshot of a checkout run.
//
// Payment card data must never appear in Payload or ErrorMessage; the
// orchestrator only logs the order draft, never the payment draft.
type Entry struct {
	// CheckoutID identifies the checkout run. Client-generated, so failed runs
	// that never produced an order ID still have a stable identifier.
	CheckoutID string

	// Status is the lifecycle state.
	Status Status

	// Step is the order-process step that was just reached or failed
	// (e.g. "creating-delivery").
	Step string

	// Payload is the JSON-serialised order draft. Written once on STARTED,
	// empty on later entries.
	Payload string

	// ErrorMessage holds the user-visible failure detail on FAILED entries.
	ErrorMessage string

	// TraceID and SpanID are the W3C identifiers of the OpenTelemetry span
	// active when the entry was written. Empty when no span is active.
	TraceID string
	SpanID  string

	// CreatedAt is the wall-clock time of the entry.
	CreatedAt time.Time
}
