package order

import (
	"fmt"

	"marketplace/internal/pkg/errs"
)

// Status represents the roll-up state of a parent order, derived from the
// collective state of its suborders or set directly by higher-level flows.
//
// State transitions:
//
//	Placed ──┬──> Delivered
//	         ├──> Cancelled
//	         └──> Refunded
//
// Delivered is only ever set by the roll-up recomputation: an order becomes
// Delivered when every one of its suborders is Delivered at the time of the
// recount. Cancelled and Refunded are set directly by administrative and
// refund flows, never inferred from suborders.
type Status int

const (
	// Unknown represents an invalid or undefined status.
	// This value (0) helps catch uninitialized Status values.
	Unknown Status = iota

	// Placed is the initial status of an order created at checkout.
	Placed

	// Delivered indicates every suborder of the order has been delivered.
	Delivered

	// Cancelled indicates the order was cancelled as a whole.
	Cancelled

	// Refunded indicates the order's funds were returned to the customer.
	Refunded
)

func getStatusStrings() map[Status]string {
	return map[Status]string{
		Unknown:   "Unknown",
		Placed:    "Placed",
		Delivered: "Delivered",
		Cancelled: "Cancelled",
		Refunded:  "Refunded",
	}
}

func getValidStatusStrings() map[Status]string {
	//nolint:exhaustive // Unknown is intentionally excluded as it's invalid
	return map[Status]string{
		Placed:    "Placed",
		Delivered: "Delivered",
		Cancelled: "Cancelled",
		Refunded:  "Refunded",
	}
}

// Validate checks if the Status value is valid.
// Unknown (0) and any out of range values are invalid.
func (s Status) Validate() error {
	if _, ok := getValidStatusStrings()[s]; !ok {
		return errs.NewValueIsInvalidErrorWithCause("status is invalid",
			fmt.Errorf("%d is not a valid status", s))
	}
	return nil
}

// String returns the human-readable name of the status.
// Implements fmt.Stringer and is safe on any Status value.
func (s Status) String() string {
	if str, ok := getStatusStrings()[s]; ok {
		return str
	}
	return "Unknown"
}

// Deliver transitions the status to Delivered.
//
// Valid transitions:
//   - Placed -> Delivered (all suborders delivered)
//
// Returns:
//   - (Delivered, nil) on valid transition
//   - (0, error) if transition is not allowed from current status
func (s Status) Deliver() (Status, error) {
	if s != Placed {
		return 0, errs.NewValueIsInvalidErrorWithCause("status is invalid",
			fmt.Errorf("%s is not a valid status to deliver", s.String()))
	}

	return Delivered, nil
}

// Cancel transitions the status to Cancelled. Only Placed orders can be cancelled.
func (s Status) Cancel() (Status, error) {
	if s != Placed {
		return 0, errs.NewValueIsInvalidErrorWithCause("status is invalid",
			fmt.Errorf("%s is not a valid status to cancel", s.String()))
	}

	return Cancelled, nil
}

// Refund transitions the status to Refunded from Placed or Delivered.
func (s Status) Refund() (Status, error) {
	if s != Placed && s != Delivered {
		return 0, errs.NewValueIsInvalidErrorWithCause("status is invalid",
			fmt.Errorf("%s is not a valid status to refund", s.String()))
	}

	return Refunded, nil
}
