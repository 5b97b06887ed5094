package order

import (
	"fmt"

	"marketplace/internal/pkg/errs"
)

// PaymentStatus represents the payment state of the whole order: whether the
// customer's funds were captured at checkout and whether they were later
// returned. Per-seller settlement state lives on the Payment aggregate, not here.
type PaymentStatus int

const (
	// PaymentUnknown represents an invalid or undefined payment status.
	PaymentUnknown PaymentStatus = iota

	// PaymentUnpaid indicates funds were not captured. Orders in this state
	// never reach decomposition; the value exists for completeness of the
	// persisted enum.
	PaymentUnpaid

	// PaymentPaid indicates the gateway confirmed capture of the order total.
	PaymentPaid

	// PaymentRefunded indicates the captured funds were returned to the customer.
	PaymentRefunded
)

func getPaymentStatusStrings() map[PaymentStatus]string {
	return map[PaymentStatus]string{
		PaymentUnknown:  "Unknown",
		PaymentUnpaid:   "Unpaid",
		PaymentPaid:     "Paid",
		PaymentRefunded: "Refunded",
	}
}

// Validate checks if the PaymentStatus value is valid.
func (s PaymentStatus) Validate() error {
	if s != PaymentUnpaid && s != PaymentPaid && s != PaymentRefunded {
		return errs.NewValueIsInvalidErrorWithCause("payment status is invalid",
			fmt.Errorf("%d is not a valid payment status", s))
	}
	return nil
}

// String returns the human-readable name of the payment status.
func (s PaymentStatus) String() string {
	if str, ok := getPaymentStatusStrings()[s]; ok {
		return str
	}
	return "Unknown"
}

// Refund transitions the payment status to PaymentRefunded.
// Only captured (Paid) funds can be refunded.
func (s PaymentStatus) Refund() (PaymentStatus, error) {
	if s != PaymentPaid {
		return 0, errs.NewValueIsInvalidErrorWithCause("payment status is invalid",
			fmt.Errorf("%s is not a valid payment status to refund", s.String()))
	}

	return PaymentRefunded, nil
}
