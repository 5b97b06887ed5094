package suborder

import (
	"fmt"

	"marketplace/internal/pkg/errs"
)

// Status represents the fulfillment state of one seller's slice of an order.
// It implements a state machine with defined transitions to ensure suborders
// follow the correct fulfillment workflow.
//
// State transitions:
//
//	Pending ──┬──> Processing ──> ReadyForPickup ──> Shipped ──> Delivered ──> Returned
//	          │        │     └──────────┴──────────────┘            ▲
//	          │        └──> Cancelled (admin override)   (carrier may skip ahead)
//	          └──> Cancelled (seller reject)
//
// Pending moves under seller action (accept/reject); Processing,
// ReadyForPickup, and Shipped move under carrier signals; Delivered moves to
// Returned only through an approved return. Cancelled and Returned are final.
// Carrier signals never resurrect a Cancelled suborder and never touch a
// Delivered or Returned one.
type Status int

const (
	// Unknown represents an invalid or undefined status.
	// This value (0) helps catch uninitialized Status values.
	Unknown Status = iota

	// Pending is the initial status: the seller has not yet accepted the suborder.
	Pending

	// Processing indicates the seller accepted the suborder and is preparing it.
	Processing

	// ReadyForPickup indicates the parcel awaits carrier pickup.
	// It is the externally tracked sub-state between Processing and Shipped.
	ReadyForPickup

	// Shipped indicates the carrier has the parcel in transit.
	Shipped

	// Delivered indicates the carrier confirmed delivery to the customer.
	// The only exit from Delivered is Returned, via an approved return.
	Delivered

	// Cancelled indicates the suborder was rejected by the seller or cancelled
	// by administrative override. Final state.
	Cancelled

	// Returned indicates the delivered goods came back through an approved
	// return. Final state.
	Returned
)

func getStatusStrings() map[Status]string {
	return map[Status]string{
		Unknown:        "Unknown",
		Pending:        "Pending",
		Processing:     "Processing",
		ReadyForPickup: "ReadyForPickup",
		Shipped:        "Shipped",
		Delivered:      "Delivered",
		Cancelled:      "Cancelled",
		Returned:       "Returned",
	}
}

func getValidStatusStrings() map[Status]string {
	//nolint:exhaustive // Unknown is intentionally excluded as it's invalid
	return map[Status]string{
		Pending:        "Pending",
		Processing:     "Processing",
		ReadyForPickup: "ReadyForPickup",
		Shipped:        "Shipped",
		Delivered:      "Delivered",
		Cancelled:      "Cancelled",
		Returned:       "Returned",
	}
}

// carrierRank orders the externally tracked progression so a carrier signal
// can only ever move a suborder forward, never backward.
func carrierRank() map[Status]int {
	return map[Status]int{
		Processing:     0,
		ReadyForPickup: 1,
		Shipped:        2,
		Delivered:      3,
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

// StatusFromString parses the human-readable status name produced by String.
func StatusFromString(value string) (Status, error) {
	for status, str := range getValidStatusStrings() {
		if str == value {
			return status, nil
		}
	}
	return Unknown, errs.NewValueIsInvalidErrorWithCause("status is invalid",
		fmt.Errorf("%q is not a valid status", value))
}

// String returns the human-readable name of the status.
// Implements fmt.Stringer and is safe on any Status value.
func (s Status) String() string {
	if str, ok := getStatusStrings()[s]; ok {
		return str
	}
	return "Unknown"
}

// IsExternallyTracked reports whether carrier signals may move a suborder out
// of this status. Only Processing, ReadyForPickup, and Shipped are under
// carrier control; everything else is owned by seller, admin, or return flows.
func (s Status) IsExternallyTracked() bool {
	switch s {
	case Processing, ReadyForPickup, Shipped:
		return true
	default:
		return false
	}
}

// IsFinal reports whether no transition out of this status exists.
// Delivered is not final: it has the single sanctioned exit to Returned.
func (s Status) IsFinal() bool {
	return s == Cancelled || s == Returned
}

// Accept transitions the status to Processing.
//
// Valid transitions:
//   - Pending -> Processing (seller accepts the suborder)
//
// Returns:
//   - (Processing, nil) on valid transition
//   - (0, error) if the suborder is not Pending
func (s Status) Accept() (Status, error) {
	if s != Pending {
		return 0, errs.NewValueIsInvalidErrorWithCause("status is invalid",
			fmt.Errorf("%s is not a valid status to accept", s.String()))
	}

	return Processing, nil
}

// Reject transitions the status to Cancelled under seller action.
//
// Valid transitions:
//   - Pending -> Cancelled (seller rejects the suborder)
func (s Status) Reject() (Status, error) {
	if s != Pending {
		return 0, errs.NewValueIsInvalidErrorWithCause("status is invalid",
			fmt.Errorf("%s is not a valid status to reject", s.String()))
	}

	return Cancelled, nil
}

// ForceCancel transitions the status to Cancelled under administrative override.
//
// Valid transitions:
//   - Pending -> Cancelled
//   - Processing -> Cancelled
//
// Once a parcel is with the carrier (ReadyForPickup or later) cancellation is
// no longer possible; the return path is the only way back.
func (s Status) ForceCancel() (Status, error) {
	if s != Pending && s != Processing {
		return 0, errs.NewValueIsInvalidErrorWithCause("status is invalid",
			fmt.Errorf("%s is not a valid status to cancel", s.String()))
	}

	return Cancelled, nil
}

// ApplyCarrier transitions the status under a normalized carrier signal.
//
// The current status must be externally tracked and the target must be a
// strictly later stage of the carrier progression (a carrier may skip stages,
// e.g. Processing -> Delivered, but never move backward). Everything else —
// including any signal against a Cancelled, Delivered, or Returned suborder —
// is rejected so external vocabulary can never corrupt a settled state.
//
// Returns:
//   - (target, nil) on valid transition
//   - (0, error) if the signal does not apply to the current status
func (s Status) ApplyCarrier(target Status) (Status, error) {
	if !s.IsExternallyTracked() {
		return 0, errs.NewValueIsInvalidErrorWithCause("status is invalid",
			fmt.Errorf("%s is not under carrier control", s.String()))
	}

	ranks := carrierRank()
	targetRank, ok := ranks[target]
	if !ok {
		return 0, errs.NewValueIsInvalidErrorWithCause("status is invalid",
			fmt.Errorf("%s is not a valid carrier target", target.String()))
	}

	if targetRank <= ranks[s] {
		return 0, errs.NewValueIsInvalidErrorWithCause("status is invalid",
			fmt.Errorf("carrier cannot move %s back to %s", s.String(), target.String()))
	}

	return target, nil
}

// Return transitions the status to Returned.
//
// Valid transitions:
//   - Delivered -> Returned (approved return claim)
//
// This is the single sanctioned backward path in the fulfillment lifecycle.
func (s Status) Return() (Status, error) {
	if s != Delivered {
		return 0, errs.NewValueIsInvalidErrorWithCause("status is invalid",
			fmt.Errorf("%s is not a valid status to return", s.String()))
	}

	return Returned, nil
}
