package returns

import (
	"errors"
	"fmt"
	"time"

	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/core/domain/model/order"
	"marketplace/internal/pkg/errs"
)

// ErrRequestIsNotConstructed is returned when a Request instance was not
// created through the NewRequest or RestoreRequest factory methods.
var ErrRequestIsNotConstructed = errors.New("Request must be created via NewRequest constructor")

// ActorType identifies who caused a return claim transition. Recorded in the
// history so claim decisions can be reconciled against money movement.
type ActorType int

const (
	// ActorUnknown represents an invalid or undefined actor.
	ActorUnknown ActorType = iota

	// ActorCustomer marks the claim creation by the buyer.
	ActorCustomer

	// ActorSeller marks decisions taken by the fulfilling seller.
	ActorSeller

	// ActorAdmin marks decisions taken by a marketplace operator.
	ActorAdmin
)

func getActorTypeStrings() map[ActorType]string {
	return map[ActorType]string{
		ActorUnknown:  "Unknown",
		ActorCustomer: "Customer",
		ActorSeller:   "Seller",
		ActorAdmin:    "Admin",
	}
}

// Validate checks if the ActorType value is valid.
func (a ActorType) Validate() error {
	switch a {
	case ActorCustomer, ActorSeller, ActorAdmin:
		return nil
	case ActorUnknown:
		fallthrough
	default:
		return errs.NewValueIsInvalidErrorWithCause("actorType is invalid",
			fmt.Errorf("%d is not a valid actor type", a))
	}
}

// String returns the human-readable name of the actor type.
func (a ActorType) String() string {
	if str, ok := getActorTypeStrings()[a]; ok {
		return str
	}
	return "Unknown"
}

// HistoryEntry is one attributed transition in a claim's audit trail.
type HistoryEntry struct {
	Status    Status
	ActorType ActorType
	Note      string
	At        time.Time
}

// Request is the aggregate root for one post-delivery return claim against a
// suborder. It holds the customer's stated reason and evidence, a snapshot of
// the claimed line items, and the refund amount that moves when the claim is
// approved.
//
// Eligibility (the suborder is delivered, returns are enabled, the window is
// open) is enforced by the use case creating the request, because it depends
// on the suborder and the global settings. The aggregate itself guards the
// decision lifecycle.
type Request struct {
	// id is the unique identifier for the return request
	id kernel.UUID

	// orderID references the parent order
	orderID kernel.UUID

	// subOrderID references the claimed suborder
	subOrderID kernel.UUID

	// customerID is the claimant
	customerID kernel.UUID

	// sellerID is the fulfilling seller who decides the claim
	sellerID kernel.UUID

	// status is the claim state
	status Status

	// reason is the customer's stated reason category
	reason string

	// description is the customer's free-text elaboration, optional
	description string

	// evidence holds image references supporting the claim, optional
	evidence []string

	// items is the snapshot of claimed line items
	items []order.LineItem

	// refundAmount is the money that moves on approval
	refundAmount kernel.Money

	// requestedAt is when the customer opened the claim
	requestedAt time.Time

	// resolvedAt is when the claim was decided (approved or rejected)
	resolvedAt *time.Time

	// history is the append-only audit trail of attributed transitions
	history []HistoryEntry

	// isConstructed ensures the request was created via a constructor
	isConstructed bool
}

// NewRequest creates a return claim in Pending status.
//
// Parameters:
//   - id: unique request identifier
//   - orderID, subOrderID: the claimed order slice
//   - customerID: the claimant
//   - sellerID: the fulfilling seller
//   - reason: the customer's stated reason category (required)
//   - description: free-text elaboration (optional)
//   - evidence: image references supporting the claim (optional)
//   - items: snapshot of the claimed line items (non-empty)
//   - refundAmount: the money that moves on approval
//   - requestedAt: claim opening time
func NewRequest(
	id kernel.UUID,
	orderID kernel.UUID,
	subOrderID kernel.UUID,
	customerID kernel.UUID,
	sellerID kernel.UUID,
	reason string,
	description string,
	evidence []string,
	items []order.LineItem,
	refundAmount kernel.Money,
	requestedAt time.Time,
) (*Request, error) {
	r := &Request{
		status:        Pending,
		description:   description,
		requestedAt:   requestedAt,
		isConstructed: true,
	}

	if err := errors.Join(
		r.setID(id),
		r.setOrderID(orderID),
		r.setSubOrderID(subOrderID),
		r.setCustomerID(customerID),
		r.setSellerID(sellerID),
		r.setReason(reason),
		r.setItems(items),
		r.setRefundAmount(refundAmount),
	); err != nil {
		return nil, err
	}

	r.evidence = make([]string, len(evidence))
	copy(r.evidence, evidence)

	r.history = []HistoryEntry{{
		Status:    Pending,
		ActorType: ActorCustomer,
		Note:      reason,
		At:        requestedAt,
	}}

	return r, nil
}

// RestoreRequest reconstructs a Request from persistence.
func RestoreRequest(
	id kernel.UUID,
	orderID kernel.UUID,
	subOrderID kernel.UUID,
	customerID kernel.UUID,
	sellerID kernel.UUID,
	status Status,
	reason string,
	description string,
	evidence []string,
	items []order.LineItem,
	refundAmount kernel.Money,
	requestedAt time.Time,
	resolvedAt *time.Time,
	history []HistoryEntry,
) (*Request, error) {
	r := &Request{
		description:   description,
		requestedAt:   requestedAt,
		isConstructed: true,
	}

	if err := errors.Join(
		r.setID(id),
		r.setOrderID(orderID),
		r.setSubOrderID(subOrderID),
		r.setCustomerID(customerID),
		r.setSellerID(sellerID),
		r.setReason(reason),
		r.setItems(items),
		r.setRefundAmount(refundAmount),
		status.Validate(),
	); err != nil {
		return nil, err
	}

	r.status = status
	r.resolvedAt = resolvedAt
	r.evidence = make([]string, len(evidence))
	copy(r.evidence, evidence)
	r.history = make([]HistoryEntry, len(history))
	copy(r.history, history)

	return r, nil
}

// Validate ensures the Request instance was properly constructed.
func (r *Request) Validate() error {
	if r == nil || !r.isConstructed {
		return ErrRequestIsNotConstructed
	}

	return nil
}

// IsEqual compares two requests by their unique identifiers.
func (r *Request) IsEqual(other *Request) bool {
	return other != nil && r.id.IsEqual(other.id)
}

// ID returns the request's unique identifier.
func (r *Request) ID() kernel.UUID { return r.id }

// OrderID returns the parent order reference.
func (r *Request) OrderID() kernel.UUID { return r.orderID }

// SubOrderID returns the claimed suborder reference.
func (r *Request) SubOrderID() kernel.UUID { return r.subOrderID }

// CustomerID returns the claimant.
func (r *Request) CustomerID() kernel.UUID { return r.customerID }

// SellerID returns the fulfilling seller.
func (r *Request) SellerID() kernel.UUID { return r.sellerID }

// Status returns the claim state.
func (r *Request) Status() Status { return r.status }

// Reason returns the customer's stated reason category.
func (r *Request) Reason() string { return r.reason }

// Description returns the customer's free-text elaboration.
func (r *Request) Description() string { return r.description }

// Evidence returns a copy of the supporting image references.
func (r *Request) Evidence() []string {
	evidence := make([]string, len(r.evidence))
	copy(evidence, r.evidence)
	return evidence
}

// Items returns a copy of the claimed line item snapshot.
func (r *Request) Items() []order.LineItem {
	items := make([]order.LineItem, len(r.items))
	copy(items, r.items)
	return items
}

// RefundAmount returns the money that moves on approval.
func (r *Request) RefundAmount() kernel.Money { return r.refundAmount }

// RequestedAt returns when the customer opened the claim.
func (r *Request) RequestedAt() time.Time { return r.requestedAt }

// ResolvedAt returns when the claim was decided, if it has been.
func (r *Request) ResolvedAt() *time.Time { return r.resolvedAt }

// History returns a copy of the audit trail.
func (r *Request) History() []HistoryEntry {
	history := make([]HistoryEntry, len(r.history))
	copy(history, r.history)
	return history
}

// Approve accepts the claim (Pending -> Approved). The caller is responsible
// for refunding the payment and marking the suborder returned in the same
// transaction.
func (r *Request) Approve(actorType ActorType, note string, now time.Time) error {
	return r.transition(r.status.Approve, actorType, note, now, true)
}

// Reject declines the claim (Pending -> Rejected). No payment or suborder
// mutation follows a rejection.
func (r *Request) Reject(actorType ActorType, note string, now time.Time) error {
	return r.transition(r.status.Reject, actorType, note, now, true)
}

// StartProcessing records the returned goods being handed to the carrier
// (Approved -> Processing).
func (r *Request) StartProcessing(actorType ActorType, note string, now time.Time) error {
	return r.transition(r.status.StartProcessing, actorType, note, now, false)
}

// Complete records the returned goods being received
// (Approved or Processing -> Completed).
func (r *Request) Complete(actorType ActorType, note string, now time.Time) error {
	return r.transition(r.status.Complete, actorType, note, now, false)
}

func (r *Request) transition(
	move func() (Status, error),
	actorType ActorType,
	note string,
	now time.Time,
	resolves bool,
) error {
	if err := actorType.Validate(); err != nil {
		return err
	}

	newStatus, err := move()
	if err != nil {
		return err
	}

	r.status = newStatus
	if resolves {
		r.resolvedAt = &now
	}
	r.history = append(r.history, HistoryEntry{
		Status:    newStatus,
		ActorType: actorType,
		Note:      note,
		At:        now,
	})

	return nil
}

func (r *Request) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	r.id = id
	return nil
}

func (r *Request) setOrderID(orderID kernel.UUID) error {
	if err := orderID.Validate(); err != nil {
		return err
	}
	r.orderID = orderID
	return nil
}

func (r *Request) setSubOrderID(subOrderID kernel.UUID) error {
	if err := subOrderID.Validate(); err != nil {
		return err
	}
	r.subOrderID = subOrderID
	return nil
}

func (r *Request) setCustomerID(customerID kernel.UUID) error {
	if err := customerID.Validate(); err != nil {
		return err
	}
	r.customerID = customerID
	return nil
}

func (r *Request) setSellerID(sellerID kernel.UUID) error {
	if err := sellerID.Validate(); err != nil {
		return err
	}
	r.sellerID = sellerID
	return nil
}

func (r *Request) setReason(reason string) error {
	if reason == "" {
		return errs.NewValueIsRequiredError("reason")
	}
	r.reason = reason
	return nil
}

func (r *Request) setItems(items []order.LineItem) error {
	if len(items) == 0 {
		return errs.NewValueIsRequiredError("items")
	}
	for _, item := range items {
		if err := item.Validate(); err != nil {
			return err
		}
	}
	r.items = make([]order.LineItem, len(items))
	copy(r.items, items)
	return nil
}

func (r *Request) setRefundAmount(refundAmount kernel.Money) error {
	if err := refundAmount.Validate(); err != nil {
		return err
	}
	if refundAmount.IsZero() {
		return errs.NewValueIsInvalidError("refundAmount")
	}
	r.refundAmount = refundAmount
	return nil
}
