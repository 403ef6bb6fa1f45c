package order

import (
	"fmt"

	"bakery/internal/pkg/errs"
)

// PaymentMethod enumerates how an order is paid.
type PaymentMethod int

const (
	// PaymentUnknown represents an invalid or undefined payment method.
	PaymentUnknown PaymentMethod = iota

	// CashOnDelivery is payment collected by the courier at the door.
	CashOnDelivery

	// BankTransfer is a manual bank transfer verified by an operator.
	BankTransfer

	// OnlineGateway is payment through the online payment gateway.
	OnlineGateway
)

func getPaymentMethodStrings() map[PaymentMethod]string {
	return map[PaymentMethod]string{
		CashOnDelivery: "cash-on-delivery",
		BankTransfer:   "bank-transfer",
		OnlineGateway:  "online-gateway",
	}
}

// PaymentMethodFromString parses a payment method from its wire representation.
func PaymentMethodFromString(s string) (PaymentMethod, error) {
	for method, str := range getPaymentMethodStrings() {
		if str == s {
			return method, nil
		}
	}
	return PaymentUnknown, errs.NewValueIsInvalidErrorWithCause("paymentMethod",
		fmt.Errorf("%q is not a recognized payment method", s))
}

// Validate checks if the payment method is one of the defined values.
func (p PaymentMethod) Validate() error {
	if _, ok := getPaymentMethodStrings()[p]; !ok {
		return errs.NewValueIsInvalidErrorWithCause("paymentMethod",
			fmt.Errorf("%d is not a valid payment method", p))
	}
	return nil
}

// String returns the wire representation of the payment method.
func (p PaymentMethod) String() string {
	if str, ok := getPaymentMethodStrings()[p]; ok {
		return str
	}
	return "unknown"
}
