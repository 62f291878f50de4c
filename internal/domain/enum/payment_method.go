package enum

// PaymentMethod is the payment gateway id stored on an order.
type PaymentMethod string

const (
	PaymentMethodBACS   PaymentMethod = "bacs"
	PaymentMethodCheque PaymentMethod = "cheque"
	PaymentMethodCOD    PaymentMethod = "cod"
)

func (m PaymentMethod) String() string {
	return string(m)
}
