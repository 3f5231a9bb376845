package shopapi

import (
	"fmt"
	"regexp"
	"strings"
)

// Validators check payloads field-by-field, in declaration order, before they
// are sent to the backend. Later checks assume earlier ones passed (the email
// regex only runs after the non-empty check), so the order is fixed.

var (
	emailRe    = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)
	digitsRe   = regexp.MustCompile(`^\d+$`)
	expMonthRe = regexp.MustCompile(`^(0[1-9]|1[0-2])$`)
	cvcRe      = regexp.MustCompile(`^\d{3}$`)
)

// ValidateCustomerInput checks the payload for POST /customers.
func ValidateCustomerInput(input CreateCustomerInput) *ValidationError {
	if strings.TrimSpace(input.Name) == "" {
		return &ValidationError{Field: "name", Message: "Nombre es requerido"}
	}
	if len(input.Name) > 100 {
		return &ValidationError{Field: "name", Message: "Nombre no puede exceder 100 caracteres"}
	}

	if strings.TrimSpace(input.Email) == "" {
		return &ValidationError{Field: "email", Message: "Email es requerido"}
	}
	if !emailRe.MatchString(input.Email) {
		return &ValidationError{Field: "email", Message: "Email debe tener formato válido"}
	}
	if len(input.Email) > 100 {
		return &ValidationError{Field: "email", Message: "Email no puede exceder 100 caracteres"}
	}

	if strings.TrimSpace(input.Phone) == "" {
		return &ValidationError{Field: "phone", Message: "Teléfono es requerido"}
	}
	if len(input.Phone) > 20 {
		return &ValidationError{Field: "phone", Message: "Teléfono no puede exceder 20 caracteres"}
	}

	return nil
}

// ValidateDeliveryInput checks the payload for POST /deliveries.
func ValidateDeliveryInput(input CreateDeliveryInput) *ValidationError {
	if strings.TrimSpace(input.Name) == "" {
		return &ValidationError{Field: "name", Message: "Nombre del destinatario es requerido"}
	}
	if len(input.Name) > 100 {
		return &ValidationError{Field: "name", Message: "Nombre del destinatario no puede exceder 100 caracteres"}
	}

	if strings.TrimSpace(input.TrackingNumber) == "" {
		return &ValidationError{Field: "trackingNumber", Message: "Número de seguimiento es requerido"}
	}
	if len(input.TrackingNumber) > 100 {
		return &ValidationError{Field: "trackingNumber", Message: "Número de seguimiento no puede exceder 100 caracteres"}
	}

	if strings.TrimSpace(input.ShippingAddress) == "" {
		return &ValidationError{Field: "shippingAddress", Message: "Dirección de envío es requerida"}
	}
	if len(input.ShippingAddress) > 255 {
		return &ValidationError{Field: "shippingAddress", Message: "Dirección de envío no puede exceder 255 caracteres"}
	}

	if input.Fee <= 0 {
		return &ValidationError{Field: "fee", Message: "Costo de envío debe ser un número positivo"}
	}

	switch input.Status {
	case DeliveryStatusPending, DeliveryStatusInTransit, DeliveryStatusDelivered, DeliveryStatusFailed:
	default:
		return &ValidationError{Field: "status", Message: "Estado debe ser: pending, in_transit, delivered o failed"}
	}

	return nil
}

// ValidateOrderInput checks the payload for POST /orders and cross-checks it
// against the server-confirmed customer and delivery responses. The cross-check
// guards against stale or substituted data between checkout steps.
func ValidateOrderInput(input CreateOrderInput, customer *CreateCustomerResponse, delivery *CreateDeliveryResponse) *ValidationError {
	if input.CustomerID <= 0 {
		return &ValidationError{Field: "customerId", Message: "ID del cliente debe ser un número positivo"}
	}
	if input.CustomerID != customer.ID {
		return &ValidationError{Field: "customerId", Message: "ID del cliente no coincide con el cliente creado"}
	}

	if input.DeliveryID <= 0 {
		return &ValidationError{Field: "deliveryId", Message: "ID del delivery debe ser un número positivo"}
	}
	if input.DeliveryID != delivery.ID {
		return &ValidationError{Field: "deliveryId", Message: "ID del delivery no coincide con el delivery creado"}
	}

	if strings.TrimSpace(input.CustomerName) == "" {
		return &ValidationError{Field: "customerName", Message: "Nombre del cliente es requerido"}
	}
	if input.CustomerName != customer.Name {
		return &ValidationError{Field: "customerName", Message: "Nombre del cliente debe coincidir con el cliente creado"}
	}
	if len(input.CustomerName) > 100 {
		return &ValidationError{Field: "customerName", Message: "Nombre del cliente no puede exceder 100 caracteres"}
	}

	if strings.TrimSpace(input.CustomerEmail) == "" {
		return &ValidationError{Field: "customerEmail", Message: "Email del cliente es requerido"}
	}
	if input.CustomerEmail != customer.Email {
		return &ValidationError{Field: "customerEmail", Message: "Email del cliente debe coincidir con el cliente creado"}
	}
	if !emailRe.MatchString(input.CustomerEmail) {
		return &ValidationError{Field: "customerEmail", Message: "Email del cliente debe tener formato válido"}
	}

	if input.CustomerPhone != "" && len(input.CustomerPhone) > 20 {
		return &ValidationError{Field: "customerPhone", Message: "Teléfono del cliente no puede exceder 20 caracteres"}
	}

	if strings.TrimSpace(input.ShippingAddress) == "" {
		return &ValidationError{Field: "shippingAddress", Message: "Dirección de envío es requerida"}
	}
	if input.ShippingAddress != delivery.ShippingAddress {
		return &ValidationError{Field: "shippingAddress", Message: "Dirección de envío debe coincidir con el delivery creado"}
	}

	if len(input.Products) == 0 {
		return &ValidationError{Field: "products", Message: "Debe incluir al menos un producto"}
	}
	for i, product := range input.Products {
		if product.ID <= 0 {
			return &ValidationError{Field: "products", Message: fmt.Sprintf("ID del producto en posición %d debe ser un número positivo", i+1)}
		}
		if product.Quantity <= 0 {
			return &ValidationError{Field: "products", Message: fmt.Sprintf("Cantidad del producto en posición %d debe ser un número positivo", i+1)}
		}
	}

	return nil
}

// ValidatePaymentInput checks the payload for the pay-with-credit-card call.
// The card number must already be normalized (spaces stripped) by the caller;
// the digit checks here run against the normalized value regardless.
func ValidatePaymentInput(input ProcessPaymentInput) *ValidationError {
	if input.DeliveryAmount <= 0 {
		return &ValidationError{Field: "deliveryAmount", Message: "Monto del delivery debe ser un número positivo"}
	}

	if strings.TrimSpace(input.DeliveryName) == "" {
		return &ValidationError{Field: "deliveryName", Message: "Nombre del proveedor de delivery es requerido"}
	}

	if strings.TrimSpace(input.CardNumber) == "" {
		return &ValidationError{Field: "cardNumber", Message: "Número de tarjeta es requerido"}
	}
	cardNumber := strings.ReplaceAll(input.CardNumber, " ", "")
	if !digitsRe.MatchString(cardNumber) {
		return &ValidationError{Field: "cardNumber", Message: "Número de tarjeta debe contener solo dígitos"}
	}
	if len(cardNumber) < 13 || len(cardNumber) > 19 {
		return &ValidationError{Field: "cardNumber", Message: "Número de tarjeta debe tener entre 13 y 19 dígitos"}
	}

	if strings.TrimSpace(input.ExpMonth) == "" {
		return &ValidationError{Field: "expMonth", Message: "Mes de expiración es requerido"}
	}
	if !expMonthRe.MatchString(input.ExpMonth) {
		return &ValidationError{Field: "expMonth", Message: "Mes de expiración debe estar entre 01 y 12"}
	}

	if strings.TrimSpace(input.ExpYear) == "" {
		return &ValidationError{Field: "expYear", Message: "Año de expiración es requerido"}
	}
	if !digitsRe.MatchString(input.ExpYear) || len(input.ExpYear) < 2 || len(input.ExpYear) > 4 {
		return &ValidationError{Field: "expYear", Message: "Año de expiración debe tener entre 2 y 4 dígitos"}
	}

	if strings.TrimSpace(input.CVC) == "" {
		return &ValidationError{Field: "cvc", Message: "Código de seguridad es requerido"}
	}
	if !cvcRe.MatchString(input.CVC) {
		return &ValidationError{Field: "cvc", Message: "Código de seguridad debe tener exactamente 3 dígitos"}
	}

	if input.Installments <= 0 {
		return &ValidationError{Field: "installments", Message: "Número de cuotas debe ser un número positivo"}
	}

	if strings.TrimSpace(input.CardHolder) == "" {
		return &ValidationError{Field: "cardHolder", Message: "Nombre del titular es requerido"}
	}

	return nil
}
