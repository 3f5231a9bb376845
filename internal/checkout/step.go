package checkout

// Step is the closed set of order-process states. The zero value is
// StepCreatingCustomer, the initial state of every run.
type Step int

const (
	StepCreatingCustomer Step = iota
	StepCreatingDelivery
	StepCreatingOrder
	StepProcessingPayment
	StepCompleted
	StepError
)

var stepNames = map[Step]string{
	StepCreatingCustomer:  "creating-customer",
	StepCreatingDelivery:  "creating-delivery",
	StepCreatingOrder:     "creating-order",
	StepProcessingPayment: "processing-payment",
	StepCompleted:         "completed",
	StepError:             "error",
}

func (s Step) String() string {
	if name, ok := stepNames[s]; ok {
		return name
	}
	return "unknown"
}

// MarshalText makes Step render as its wire name in JSON state snapshots.
func (s Step) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

// stepMessages is the fixed per-step progress message table shown by the UI.
var stepMessages = map[Step]string{
	StepCreatingCustomer:  "Creando cliente...",
	StepCreatingDelivery:  "Creando delivery...",
	StepCreatingOrder:     "Creando orden...",
	StepProcessingPayment: "Iniciando pago con tarjeta de crédito...",
	StepCompleted:         "¡Proceso completado exitosamente!",
	StepError:             "Error en el proceso",
}

// stepSuccessor is the only legal forward transition from each step.
var stepSuccessor = map[Step]Step{
	StepCreatingCustomer:  StepCreatingDelivery,
	StepCreatingDelivery:  StepCreatingOrder,
	StepCreatingOrder:     StepProcessingPayment,
	StepProcessingPayment: StepCompleted,
}

// CanTransition reports whether moving from one step to another is legal.
// StepError is reachable from anywhere; otherwise only the forward chain
// customer → delivery → order → payment → completed is allowed. Re-entering
// the same step is a state refresh, not a transition.
func CanTransition(from, to Step) bool {
	if to == StepError || from == to {
		return true
	}
	return stepSuccessor[from] == to
}
