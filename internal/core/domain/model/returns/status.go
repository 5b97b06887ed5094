package returns

import (
	"fmt"

	"marketplace/internal/pkg/errs"
)

// Status represents the state of one post-delivery return claim. It implements
// a state machine with defined transitions to ensure claims are decided once
// and settled exactly once.
//
// State transitions:
//
//	Pending ──┬──> Approved ──> Processing ──> Completed
//	          └──> Rejected
//
// Rejected and Completed are terminal. Approval is the moment money moves:
// the payment refund and the suborder's Returned transition happen together
// with Pending -> Approved; Processing and Completed only track the physical
// goods coming back.
type Status int

const (
	// Unknown represents an invalid or undefined status.
	// This value (0) helps catch uninitialized Status values.
	Unknown Status = iota

	// Pending is the initial status: the claim awaits a seller or admin decision.
	Pending

	// Approved indicates the claim was accepted; refund and suborder return
	// have been triggered.
	Approved

	// Rejected indicates the claim was declined. Terminal state; no payment or
	// suborder mutation occurs.
	Rejected

	// Processing indicates the returned goods are on their way back.
	Processing

	// Completed indicates the returned goods were received. Terminal state.
	Completed
)

func getStatusStrings() map[Status]string {
	return map[Status]string{
		Unknown:    "Unknown",
		Pending:    "Pending",
		Approved:   "Approved",
		Rejected:   "Rejected",
		Processing: "Processing",
		Completed:  "Completed",
	}
}

func getValidStatusStrings() map[Status]string {
	//nolint:exhaustive // Unknown is intentionally excluded as it's invalid
	return map[Status]string{
		Pending:    "Pending",
		Approved:   "Approved",
		Rejected:   "Rejected",
		Processing: "Processing",
		Completed:  "Completed",
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

// IsTerminal reports whether no transition out of this status exists.
func (s Status) IsTerminal() bool {
	return s == Rejected || s == Completed
}

// Approve transitions the status to Approved.
//
// Valid transitions:
//   - Pending -> Approved (seller or admin accepts the claim)
func (s Status) Approve() (Status, error) {
	if s != Pending {
		return 0, errs.NewValueIsInvalidErrorWithCause("status is invalid",
			fmt.Errorf("%s is not a valid status to approve", s.String()))
	}

	return Approved, nil
}

// Reject transitions the status to Rejected.
//
// Valid transitions:
//   - Pending -> Rejected (seller or admin declines the claim)
func (s Status) Reject() (Status, error) {
	if s != Pending {
		return 0, errs.NewValueIsInvalidErrorWithCause("status is invalid",
			fmt.Errorf("%s is not a valid status to reject", s.String()))
	}

	return Rejected, nil
}

// StartProcessing transitions the status to Processing.
//
// Valid transitions:
//   - Approved -> Processing (returned goods handed to the carrier)
func (s Status) StartProcessing() (Status, error) {
	if s != Approved {
		return 0, errs.NewValueIsInvalidErrorWithCause("status is invalid",
			fmt.Errorf("%s is not a valid status to start processing", s.String()))
	}

	return Processing, nil
}

// Complete transitions the status to Completed.
//
// Valid transitions:
//   - Processing -> Completed (returned goods received)
//   - Approved -> Completed (received without a separate processing step)
func (s Status) Complete() (Status, error) {
	if s != Processing && s != Approved {
		return 0, errs.NewValueIsInvalidErrorWithCause("status is invalid",
			fmt.Errorf("%s is not a valid status to complete", s.String()))
	}

	return Completed, nil
}
