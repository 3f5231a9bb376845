package shopapi

import (
	"context"
	"errors"
	"fmt"
	"net"
	"syscall"
)

// User-facing transport error messages, in the shop's display language.
const (
	MsgServerUnavailable = "El servidor no está disponible. Intenta de nuevo más tarde"
	MsgServerNotFound    = "No se encontró el servidor. Verifica la configuración de la API"
	MsgRequestCancelled  = "La solicitud fue cancelada por tiempo de espera"
	MsgCheckConnection   = "No se pudo conectar. Verifica tu conexión a internet"
	MsgUnexpected        = "Ocurrió un error inesperado. Intenta de nuevo"
)

// RequestError is a transport failure normalized into a user-facing message.
// The original error is kept for logs and errors.Is/As chains.
type RequestError struct {
	Message string
	Err     error
}

func (e *RequestError) Error() string { return e.Message }

func (e *RequestError) Unwrap() error { return e.Err }

// StatusError is a non-2xx HTTP response. Error() embeds the status code,
// status text, and response body so the UI message carries the server detail.
type StatusError struct {
	Code   int
	Status string
	Body   string
}

func (e *StatusError) Error() string {
	detail := e.Body
	if detail == "" {
		detail = "Sin detalle"
	}
	return fmt.Sprintf("Error %d: %s - %s", e.Code, e.Status, detail)
}

// ValidationError is a field-scoped input rejection raised before the payload
// is sent to the backend.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string { return e.Message }

// classifyTransport maps a failed round trip to a user-facing RequestError.
// Checked in order; first match wins.
func classifyTransport(err error) *RequestError {
	var dnsErr *net.DNSError
	switch {
	case errors.Is(err, syscall.ECONNREFUSED), errors.Is(err, syscall.EHOSTUNREACH):
		return &RequestError{Message: MsgServerUnavailable, Err: err}
	case errors.As(err, &dnsErr):
		return &RequestError{Message: MsgServerNotFound, Err: err}
	case errors.Is(err, context.DeadlineExceeded), errors.Is(err, context.Canceled):
		return &RequestError{Message: MsgRequestCancelled, Err: err}
	}

	var netErr net.Error
	if errors.As(err, &netErr) {
		if netErr.Timeout() {
			return &RequestError{Message: MsgRequestCancelled, Err: err}
		}
		return &RequestError{Message: MsgCheckConnection, Err: err}
	}

	return &RequestError{Message: MsgUnexpected, Err: err}
}
