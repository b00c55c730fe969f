package enums

import "fmt"

// PaymentMethod identifies how the customer intends to pay.
type PaymentMethod string

const (
	PaymentMethodJazzCash     PaymentMethod = "JazzCash"
	PaymentMethodEasyPaisa    PaymentMethod = "EasyPaisa"
	PaymentMethodBankTransfer PaymentMethod = "Bank Transfer"
	PaymentMethodUSDT         PaymentMethod = "USDT (TRC-20)"
	PaymentMethodCOD          PaymentMethod = "COD"
)

var validPaymentMethods = []PaymentMethod{
	PaymentMethodJazzCash,
	PaymentMethodEasyPaisa,
	PaymentMethodBankTransfer,
	PaymentMethodUSDT,
	PaymentMethodCOD,
}

// String implements fmt.Stringer.
func (p PaymentMethod) String() string {
	return string(p)
}

// IsValid reports whether the value is a known PaymentMethod.
func (p PaymentMethod) IsValid() bool {
	for _, candidate := range validPaymentMethods {
		if candidate == p {
			return true
		}
	}
	return false
}

// IsCOD reports whether the method settles in cash at delivery. COD is the only
// method that requires an explicit confirmation gate before order submission.
func (p PaymentMethod) IsCOD() bool {
	return p == PaymentMethodCOD
}

// RequiresProof reports whether the method expects a payment-proof submission
// after the order is created.
func (p PaymentMethod) RequiresProof() bool {
	return p.IsValid() && !p.IsCOD()
}

// ParsePaymentMethod converts raw input into a PaymentMethod.
func ParsePaymentMethod(value string) (PaymentMethod, error) {
	for _, candidate := range validPaymentMethods {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid payment method %q", value)
}
