package suborder

import (
	"errors"
	"time"

	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/core/domain/model/order"
	"marketplace/internal/pkg/errs"
)

// ErrSubOrderIsNotConstructed is returned when a SubOrder instance was not
// created through the NewSubOrder or RestoreSubOrder factory methods.
var ErrSubOrderIsNotConstructed = errors.New("SubOrder must be created via NewSubOrder constructor")

// SubOrder is the aggregate root for one seller's slice of an order. It owns
// the fulfillment status, the carrier tracking fields, and the per-status
// timestamps. Its seller reference is constant for its lifetime and its line
// items are the subset of the parent order's items belonging to that seller.
//
// Carrier-reported raw labels and NDR (non-delivery report) reasons are kept
// on the aggregate separately from the canonical status: an unrecognized or
// non-advancing carrier signal can still refresh them without moving the
// state machine, so external observability is never lost.
type SubOrder struct {
	// id is the unique identifier for the suborder
	id kernel.UUID

	// orderID references the parent order
	orderID kernel.UUID

	// sellerID references the fulfilling seller; constant for the lifetime
	sellerID kernel.UUID

	// items are this seller's line items, a subset of the parent order's
	items []order.LineItem

	// money breakdown for this seller's slice
	subtotal kernel.Money
	shipping kernel.Money
	discount kernel.Money
	total    kernel.Money

	// status is the canonical fulfillment state
	status Status

	// trackingID is the carrier tracking reference, set when known
	trackingID string

	// carrierLabel is the last raw status string reported by the carrier
	carrierLabel string

	// ndrReason is the last non-delivery report reason, kept separately so a
	// failed attempt is visible even when the primary status is unchanged
	ndrReason string

	// carrierUpdatedAt is when the carrier last reported anything
	carrierUpdatedAt *time.Time

	// per-status timestamps
	createdAt   time.Time
	acceptedAt  *time.Time
	shippedAt   *time.Time
	deliveredAt *time.Time
	cancelledAt *time.Time
	returnedAt  *time.Time

	// isConstructed ensures the suborder was created via a constructor
	isConstructed bool
}

// NewSubOrder creates a SubOrder in Pending status at decomposition time.
//
// Parameters:
//   - id: unique suborder identifier
//   - orderID: parent order reference
//   - sellerID: the fulfilling seller
//   - items: the seller's line items (non-empty, all belonging to sellerID)
//   - subtotal, shipping, discount: the money breakdown for this slice
//   - createdAt: decomposition time
//
// The total is computed as subtotal + shipping - discount; a discount larger
// than the rest of the breakdown is rejected.
func NewSubOrder(
	id kernel.UUID,
	orderID kernel.UUID,
	sellerID kernel.UUID,
	items []order.LineItem,
	subtotal kernel.Money,
	shipping kernel.Money,
	discount kernel.Money,
	createdAt time.Time,
) (*SubOrder, error) {
	s := &SubOrder{
		status:        Pending,
		createdAt:     createdAt,
		isConstructed: true,
	}

	if err := errors.Join(
		s.setID(id),
		s.setOrderID(orderID),
		s.setSellerID(sellerID),
		s.setItems(items),
		s.setAmounts(subtotal, shipping, discount),
	); err != nil {
		return nil, err
	}

	itemSum := kernel.Zero()
	for _, item := range s.items {
		sum, err := itemSum.Add(item.LineTotal())
		if err != nil {
			return nil, err
		}
		itemSum = sum
	}
	if !itemSum.IsEqual(s.subtotal) {
		return nil, errs.NewValueIsInvalidError("subtotal does not equal the sum of line totals")
	}

	return s, nil
}

// RestoreSubOrder reconstructs a SubOrder from persistence.
func RestoreSubOrder(
	id kernel.UUID,
	orderID kernel.UUID,
	sellerID kernel.UUID,
	items []order.LineItem,
	subtotal kernel.Money,
	shipping kernel.Money,
	discount kernel.Money,
	status Status,
	trackingID string,
	carrierLabel string,
	ndrReason string,
	carrierUpdatedAt *time.Time,
	createdAt time.Time,
	acceptedAt, shippedAt, deliveredAt, cancelledAt, returnedAt *time.Time,
) (*SubOrder, error) {
	s := &SubOrder{
		createdAt:     createdAt,
		isConstructed: true,
	}

	if err := errors.Join(
		s.setID(id),
		s.setOrderID(orderID),
		s.setSellerID(sellerID),
		s.setItems(items),
		s.setAmounts(subtotal, shipping, discount),
		status.Validate(),
	); err != nil {
		return nil, err
	}

	s.status = status
	s.trackingID = trackingID
	s.carrierLabel = carrierLabel
	s.ndrReason = ndrReason
	s.carrierUpdatedAt = carrierUpdatedAt
	s.acceptedAt = acceptedAt
	s.shippedAt = shippedAt
	s.deliveredAt = deliveredAt
	s.cancelledAt = cancelledAt
	s.returnedAt = returnedAt

	return s, nil
}

// Validate ensures the SubOrder instance was properly constructed.
func (s *SubOrder) Validate() error {
	if s == nil || !s.isConstructed {
		return ErrSubOrderIsNotConstructed
	}

	return nil
}

// IsEqual compares two suborders by their unique identifiers.
func (s *SubOrder) IsEqual(other *SubOrder) bool {
	return other != nil && s.id.IsEqual(other.id)
}

// ID returns the suborder's unique identifier.
func (s *SubOrder) ID() kernel.UUID { return s.id }

// OrderID returns the parent order reference.
func (s *SubOrder) OrderID() kernel.UUID { return s.orderID }

// SellerID returns the fulfilling seller reference.
func (s *SubOrder) SellerID() kernel.UUID { return s.sellerID }

// Items returns a copy of this seller's line items.
func (s *SubOrder) Items() []order.LineItem {
	items := make([]order.LineItem, len(s.items))
	copy(items, s.items)
	return items
}

// Subtotal returns the sum of the seller's line totals.
func (s *SubOrder) Subtotal() kernel.Money { return s.subtotal }

// Shipping returns the shipping fee for this slice.
func (s *SubOrder) Shipping() kernel.Money { return s.shipping }

// Discount returns the discount applied to this slice.
func (s *SubOrder) Discount() kernel.Money { return s.discount }

// Total returns subtotal + shipping - discount.
func (s *SubOrder) Total() kernel.Money { return s.total }

// Status returns the canonical fulfillment status.
func (s *SubOrder) Status() Status { return s.status }

// TrackingID returns the carrier tracking reference, if any.
func (s *SubOrder) TrackingID() string { return s.trackingID }

// CarrierLabel returns the last raw carrier status string.
func (s *SubOrder) CarrierLabel() string { return s.carrierLabel }

// NDRReason returns the last non-delivery report reason, if any.
func (s *SubOrder) NDRReason() string { return s.ndrReason }

// CarrierUpdatedAt returns when the carrier last reported anything.
func (s *SubOrder) CarrierUpdatedAt() *time.Time { return s.carrierUpdatedAt }

// CreatedAt returns the decomposition timestamp.
func (s *SubOrder) CreatedAt() time.Time { return s.createdAt }

// AcceptedAt returns when the seller accepted, if they have.
func (s *SubOrder) AcceptedAt() *time.Time { return s.acceptedAt }

// ShippedAt returns when the carrier first reported the parcel in transit.
func (s *SubOrder) ShippedAt() *time.Time { return s.shippedAt }

// DeliveredAt returns when the carrier confirmed delivery.
func (s *SubOrder) DeliveredAt() *time.Time { return s.deliveredAt }

// CancelledAt returns when the suborder was cancelled, if it was.
func (s *SubOrder) CancelledAt() *time.Time { return s.cancelledAt }

// ReturnedAt returns when the suborder was returned, if it was.
func (s *SubOrder) ReturnedAt() *time.Time { return s.returnedAt }

// AssignTracking records the carrier tracking reference.
func (s *SubOrder) AssignTracking(trackingID string) error {
	if trackingID == "" {
		return errs.NewValueIsRequiredError("trackingID")
	}
	s.trackingID = trackingID
	return nil
}

// Accept marks the suborder accepted by its seller (Pending -> Processing).
func (s *SubOrder) Accept(now time.Time) error {
	newStatus, err := s.status.Accept()
	if err != nil {
		return err
	}

	s.status = newStatus
	s.acceptedAt = &now
	return nil
}

// Reject marks the suborder rejected by its seller (Pending -> Cancelled).
func (s *SubOrder) Reject(now time.Time) error {
	newStatus, err := s.status.Reject()
	if err != nil {
		return err
	}

	s.status = newStatus
	s.cancelledAt = &now
	return nil
}

// ForceCancel cancels the suborder by administrative override
// (Pending or Processing -> Cancelled).
func (s *SubOrder) ForceCancel(now time.Time) error {
	newStatus, err := s.status.ForceCancel()
	if err != nil {
		return err
	}

	s.status = newStatus
	s.cancelledAt = &now
	return nil
}

// ApplyCarrierUpdate applies a normalized carrier signal to the suborder.
//
// The raw carrier label, the NDR reason, and the carrier timestamp are always
// refreshed when the suborder is under carrier control, even when the
// canonical status does not move (a repeated or stale signal, or a failed
// delivery attempt). The returned flag reports whether the canonical status
// changed.
//
// Returns an error only when the suborder is not under carrier control at
// all; callers treat that as "signal does not apply" and make no state change.
func (s *SubOrder) ApplyCarrierUpdate(target Status, rawLabel, ndrReason string, now time.Time) (bool, error) {
	if !s.status.IsExternallyTracked() {
		return false, errs.NewValueIsInvalidErrorWithCause("status is invalid",
			errors.New(s.status.String()+" is not under carrier control"))
	}

	s.carrierLabel = rawLabel
	if ndrReason != "" {
		s.ndrReason = ndrReason
	}
	s.carrierUpdatedAt = &now

	newStatus, err := s.status.ApplyCarrier(target)
	if err != nil {
		// Stale or repeated signal; observability fields were refreshed.
		return false, nil
	}

	s.status = newStatus
	switch newStatus { //nolint:exhaustive // only carrier targets carry timestamps
	case Shipped:
		s.shippedAt = &now
	case Delivered:
		s.deliveredAt = &now
	}

	return true, nil
}

// MarkReturned transitions the suborder to Returned (Delivered -> Returned).
// Invoked only by the return workflow on an approved claim.
func (s *SubOrder) MarkReturned(now time.Time) error {
	newStatus, err := s.status.Return()
	if err != nil {
		return err
	}

	s.status = newStatus
	s.returnedAt = &now
	return nil
}

func (s *SubOrder) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	s.id = id
	return nil
}

func (s *SubOrder) setOrderID(orderID kernel.UUID) error {
	if err := orderID.Validate(); err != nil {
		return err
	}
	s.orderID = orderID
	return nil
}

func (s *SubOrder) setSellerID(sellerID kernel.UUID) error {
	if err := sellerID.Validate(); err != nil {
		return err
	}
	s.sellerID = sellerID
	return nil
}

func (s *SubOrder) setItems(items []order.LineItem) error {
	if len(items) == 0 {
		return errs.NewValueIsRequiredError("items")
	}
	for _, item := range items {
		if err := item.Validate(); err != nil {
			return err
		}
		if s.sellerID.Validate() == nil && !item.SellerID().IsEqual(s.sellerID) {
			return errs.NewValueIsInvalidError("items must all belong to the suborder's seller")
		}
	}
	s.items = make([]order.LineItem, len(items))
	copy(s.items, items)
	return nil
}

func (s *SubOrder) setAmounts(subtotal, shipping, discount kernel.Money) error {
	if err := errors.Join(subtotal.Validate(), shipping.Validate(), discount.Validate()); err != nil {
		return err
	}

	gross, err := subtotal.Add(shipping)
	if err != nil {
		return err
	}
	total, err := gross.Sub(discount)
	if err != nil {
		return errs.NewValueIsInvalidErrorWithCause("discount", errors.New("discount exceeds subtotal plus shipping"))
	}

	s.subtotal = subtotal
	s.shipping = shipping
	s.discount = discount
	s.total = total
	return nil
}
