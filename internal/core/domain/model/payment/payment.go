package payment

import (
	"errors"
	"fmt"
	"time"

	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/pkg/errs"
)

// ErrPaymentIsNotConstructed is returned when a Payment instance was not
// created through the NewPayment or RestorePayment factory methods.
var ErrPaymentIsNotConstructed = errors.New("Payment must be created via NewPayment constructor")

// ErrPaymentAlreadyRefunded is returned when attempting to release a payment
// whose money has already gone back to the buyer. No override exists for this.
var ErrPaymentAlreadyRefunded = errors.New("payment is already refunded")

// ActorType identifies who caused a payment transition. Recorded in the
// history so every movement of escrowed money can be attributed.
type ActorType int

const (
	// ActorUnknown represents an invalid or undefined actor.
	ActorUnknown ActorType = iota

	// ActorSystem marks transitions triggered automatically, such as a release
	// on delivery confirmation or a refund on an approved return.
	ActorSystem

	// ActorAdmin marks transitions triggered by an operator, such as a forced
	// early release.
	ActorAdmin
)

func getActorTypeStrings() map[ActorType]string {
	return map[ActorType]string{
		ActorUnknown: "Unknown",
		ActorSystem:  "System",
		ActorAdmin:   "Admin",
	}
}

// Validate checks if the ActorType value is valid.
func (a ActorType) Validate() error {
	switch a {
	case ActorSystem, ActorAdmin:
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

// HistoryEntry is one attributed transition in a payment's audit trail.
type HistoryEntry struct {
	Status    Status
	ActorType ActorType
	Note      string
	At        time.Time
}

// Payment is the aggregate root for one seller's escrowed share of an order.
// It is created at decomposition time alongside its suborder and holds the
// money until the fulfillment outcome decides whether it is released to the
// seller or refunded to the buyer.
//
// Release is idempotent at the aggregate level: releasing an already released
// payment reports no change instead of failing, so retried payout requests
// cannot double-pay. A refunded payment is terminal and rejects release even
// under administrative override.
type Payment struct {
	// id is the unique identifier for the payment
	id kernel.UUID

	// orderID references the parent order
	orderID kernel.UUID

	// subOrderID references the suborder whose fulfillment outcome settles this payment
	subOrderID kernel.UUID

	// sellerID is the payee
	sellerID kernel.UUID

	// amount is the suborder total held in escrow
	amount kernel.Money

	// status is the escrow state
	status Status

	// releasedAt is when the payout happened, if it has
	releasedAt *time.Time

	// refundedAt is when the refund happened, if it has
	refundedAt *time.Time

	// createdAt is the decomposition time
	createdAt time.Time

	// history is the append-only audit trail of attributed transitions
	history []HistoryEntry

	// isConstructed ensures the payment was created via a constructor
	isConstructed bool
}

// NewPayment creates a Payment in Escrow status at decomposition time.
//
// Parameters:
//   - id: unique payment identifier
//   - orderID: parent order reference
//   - subOrderID: the suborder settling this payment
//   - sellerID: the payee
//   - amount: the suborder total held in escrow
//   - createdAt: decomposition time
func NewPayment(
	id kernel.UUID,
	orderID kernel.UUID,
	subOrderID kernel.UUID,
	sellerID kernel.UUID,
	amount kernel.Money,
	createdAt time.Time,
) (*Payment, error) {
	p := &Payment{
		status:        Escrow,
		createdAt:     createdAt,
		isConstructed: true,
	}

	if err := errors.Join(
		p.setID(id),
		p.setOrderID(orderID),
		p.setSubOrderID(subOrderID),
		p.setSellerID(sellerID),
		p.setAmount(amount),
	); err != nil {
		return nil, err
	}

	p.history = []HistoryEntry{{
		Status:    Escrow,
		ActorType: ActorSystem,
		Note:      "escrowed at decomposition",
		At:        createdAt,
	}}

	return p, nil
}

// RestorePayment reconstructs a Payment from persistence.
func RestorePayment(
	id kernel.UUID,
	orderID kernel.UUID,
	subOrderID kernel.UUID,
	sellerID kernel.UUID,
	amount kernel.Money,
	status Status,
	releasedAt *time.Time,
	refundedAt *time.Time,
	createdAt time.Time,
	history []HistoryEntry,
) (*Payment, error) {
	p := &Payment{
		createdAt:     createdAt,
		isConstructed: true,
	}

	if err := errors.Join(
		p.setID(id),
		p.setOrderID(orderID),
		p.setSubOrderID(subOrderID),
		p.setSellerID(sellerID),
		p.setAmount(amount),
		status.Validate(),
	); err != nil {
		return nil, err
	}

	p.status = status
	p.releasedAt = releasedAt
	p.refundedAt = refundedAt
	p.history = make([]HistoryEntry, len(history))
	copy(p.history, history)

	return p, nil
}

// Validate ensures the Payment instance was properly constructed.
func (p *Payment) Validate() error {
	if p == nil || !p.isConstructed {
		return ErrPaymentIsNotConstructed
	}

	return nil
}

// IsEqual compares two payments by their unique identifiers.
func (p *Payment) IsEqual(other *Payment) bool {
	return other != nil && p.id.IsEqual(other.id)
}

// ID returns the payment's unique identifier.
func (p *Payment) ID() kernel.UUID { return p.id }

// OrderID returns the parent order reference.
func (p *Payment) OrderID() kernel.UUID { return p.orderID }

// SubOrderID returns the suborder settling this payment.
func (p *Payment) SubOrderID() kernel.UUID { return p.subOrderID }

// SellerID returns the payee.
func (p *Payment) SellerID() kernel.UUID { return p.sellerID }

// Amount returns the escrowed amount.
func (p *Payment) Amount() kernel.Money { return p.amount }

// Status returns the escrow state.
func (p *Payment) Status() Status { return p.status }

// ReleasedAt returns when the payout happened, if it has.
func (p *Payment) ReleasedAt() *time.Time { return p.releasedAt }

// RefundedAt returns when the refund happened, if it has.
func (p *Payment) RefundedAt() *time.Time { return p.refundedAt }

// CreatedAt returns the decomposition timestamp.
func (p *Payment) CreatedAt() time.Time { return p.createdAt }

// History returns a copy of the audit trail.
func (p *Payment) History() []HistoryEntry {
	history := make([]HistoryEntry, len(p.history))
	copy(history, p.history)
	return history
}

// IsReleased reports whether the money has been paid out to the seller.
func (p *Payment) IsReleased() bool { return p.status == Released }

// Release pays out the escrowed money to the seller.
//
// Returns (true, nil) when the payment moved from Escrow to Released,
// (false, nil) when it was already Released (the operation is idempotent),
// and (false, ErrPaymentAlreadyRefunded) when the money has already gone back
// to the buyer.
func (p *Payment) Release(actorType ActorType, note string, now time.Time) (bool, error) {
	if err := actorType.Validate(); err != nil {
		return false, err
	}

	switch p.status {
	case Released:
		return false, nil
	case Refunded:
		return false, ErrPaymentAlreadyRefunded
	case Escrow, Unknown:
	}

	newStatus, err := p.status.Release()
	if err != nil {
		return false, err
	}

	p.status = newStatus
	p.releasedAt = &now
	p.history = append(p.history, HistoryEntry{
		Status:    Released,
		ActorType: actorType,
		Note:      note,
		At:        now,
	})

	return true, nil
}

// Refund returns the money to the buyer, from escrow or by clawback after a
// payout. Refunded is terminal; refunding twice fails.
func (p *Payment) Refund(actorType ActorType, note string, now time.Time) error {
	if err := actorType.Validate(); err != nil {
		return err
	}

	newStatus, err := p.status.Refund()
	if err != nil {
		return err
	}

	p.status = newStatus
	p.refundedAt = &now
	p.history = append(p.history, HistoryEntry{
		Status:    Refunded,
		ActorType: actorType,
		Note:      note,
		At:        now,
	})

	return nil
}

func (p *Payment) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	p.id = id
	return nil
}

func (p *Payment) setOrderID(orderID kernel.UUID) error {
	if err := orderID.Validate(); err != nil {
		return err
	}
	p.orderID = orderID
	return nil
}

func (p *Payment) setSubOrderID(subOrderID kernel.UUID) error {
	if err := subOrderID.Validate(); err != nil {
		return err
	}
	p.subOrderID = subOrderID
	return nil
}

func (p *Payment) setSellerID(sellerID kernel.UUID) error {
	if err := sellerID.Validate(); err != nil {
		return err
	}
	p.sellerID = sellerID
	return nil
}

func (p *Payment) setAmount(amount kernel.Money) error {
	if err := amount.Validate(); err != nil {
		return err
	}
	p.amount = amount
	return nil
}
