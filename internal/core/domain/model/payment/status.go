package payment

import (
	"fmt"

	"marketplace/internal/pkg/errs"
)

// Status represents the escrow state of one seller's payment. It implements a
// state machine with defined transitions to ensure money held in escrow can be
// paid out at most once and never after a refund.
//
// State transitions:
//
//	Escrow ──┬──> Released ──> Refunded
//	         └──> Refunded
//
// Released is reachable only from Escrow, so a payout can happen at most
// once. Refunded is terminal: no operation, forced or not, moves money out of
// a refunded payment.
type Status int

const (
	// Unknown represents an invalid or undefined status.
	// This value (0) helps catch uninitialized Status values.
	Unknown Status = iota

	// Escrow is the initial status: the buyer's money is held pending fulfillment.
	Escrow

	// Released indicates the money was paid out to the seller.
	Released

	// Refunded indicates the money went back to the buyer. Terminal state.
	Refunded
)

func getStatusStrings() map[Status]string {
	return map[Status]string{
		Unknown:  "Unknown",
		Escrow:   "Escrow",
		Released: "Released",
		Refunded: "Refunded",
	}
}

func getValidStatusStrings() map[Status]string {
	//nolint:exhaustive // Unknown is intentionally excluded as it's invalid
	return map[Status]string{
		Escrow:   "Escrow",
		Released: "Released",
		Refunded: "Refunded",
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

// Release transitions the status to Released.
//
// Valid transitions:
//   - Escrow -> Released (payout to the seller)
//
// Returns:
//   - (Released, nil) on valid transition
//   - (0, error) if the money is not in escrow
func (s Status) Release() (Status, error) {
	if s != Escrow {
		return 0, errs.NewValueIsInvalidErrorWithCause("status is invalid",
			fmt.Errorf("%s is not a valid status to release", s.String()))
	}

	return Released, nil
}

// Refund transitions the status to Refunded.
//
// Valid transitions:
//   - Escrow -> Refunded (refund before payout)
//   - Released -> Refunded (clawback after payout, e.g. an approved return)
func (s Status) Refund() (Status, error) {
	if s != Escrow && s != Released {
		return 0, errs.NewValueIsInvalidErrorWithCause("status is invalid",
			fmt.Errorf("%s is not a valid status to refund", s.String()))
	}

	return Refunded, nil
}
