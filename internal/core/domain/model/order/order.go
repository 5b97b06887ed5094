package order

import (
	"errors"
	"time"

	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/pkg/errs"
)

// ErrOrderIsNotConstructed is returned when an Order instance was not created
// through the NewOrder or RestoreOrder factory methods.
var ErrOrderIsNotConstructed = errors.New("Order must be created via NewOrder constructor")

// Order is the aggregate root for one checkout transaction. An order exists
// only after the payment gateway confirmed capture of the full amount, so a
// freshly constructed Order always carries PaymentPaid.
//
// Order follows these invariants:
//   - Must have a valid unique identifier, customer, and address snapshot
//   - Must have at least one line item
//   - Its total equals the sum of its suborders' totals (enforced at
//     decomposition time, where both sides are created together)
//   - Status transitions follow the rules defined on Status
//
// Orders are never deleted; they remain as the financial record of the
// checkout. Mutation is limited to the roll-up status and the payment status.
type Order struct {
	// id is the unique identifier for the order
	id kernel.UUID

	// customer is the customer identity snapshot taken at checkout
	customer Customer

	// address is the delivery address snapshot taken at checkout
	address Address

	// items are the ordered line items across all sellers
	items []LineItem

	// shipping is the combined shipping charge across all sellers
	shipping kernel.Money

	// total is the order grand total in minor units
	total kernel.Money

	// paymentStatus tracks whether the customer's funds are captured or returned
	paymentStatus PaymentStatus

	// status is the roll-up state derived from the suborders
	status Status

	// placedAt is the checkout completion timestamp
	placedAt time.Time

	// isConstructed ensures the order was created via a constructor
	isConstructed bool
}

// NewOrder creates an Order at checkout completion, after payment verification.
// The order starts Placed with PaymentPaid.
//
// Parameters:
//   - id: unique order identifier
//   - customer: customer snapshot (must be constructed)
//   - address: delivery address snapshot (must be constructed)
//   - items: all ordered line items (must be non-empty and constructed)
//   - shipping: combined shipping charge across all sellers
//   - total: grand total, which must equal the sum of the items' line totals
//     plus shipping
//   - placedAt: checkout completion time
//
// Returns an error if any input is invalid or the total does not match the items.
func NewOrder(
	id kernel.UUID,
	customer Customer,
	address Address,
	items []LineItem,
	shipping kernel.Money,
	total kernel.Money,
	placedAt time.Time,
) (*Order, error) {
	o := &Order{
		paymentStatus: PaymentPaid,
		status:        Placed,
		placedAt:      placedAt,
		isConstructed: true,
	}

	if err := errors.Join(
		o.setID(id),
		o.setCustomer(customer),
		o.setAddress(address),
		o.setItems(items),
		o.setShipping(shipping),
		o.setTotal(total),
	); err != nil {
		return nil, err
	}

	itemSum := kernel.Zero()
	for _, item := range o.items {
		sum, err := itemSum.Add(item.LineTotal())
		if err != nil {
			return nil, err
		}
		itemSum = sum
	}
	expected, err := itemSum.Add(o.shipping)
	if err != nil {
		return nil, err
	}
	if !expected.IsEqual(o.total) {
		return nil, errs.NewValueIsInvalidError("total does not equal the sum of line totals plus shipping")
	}

	return o, nil
}

// RestoreOrder reconstructs an Order from persistence without re-running the
// checkout-time total check; the stored record is trusted as written.
func RestoreOrder(
	id kernel.UUID,
	customer Customer,
	address Address,
	items []LineItem,
	shipping kernel.Money,
	total kernel.Money,
	paymentStatus PaymentStatus,
	status Status,
	placedAt time.Time,
) (*Order, error) {
	o := &Order{
		placedAt:      placedAt,
		isConstructed: true,
	}

	if err := errors.Join(
		o.setID(id),
		o.setCustomer(customer),
		o.setAddress(address),
		o.setItems(items),
		o.setShipping(shipping),
		o.setTotal(total),
		paymentStatus.Validate(),
		status.Validate(),
	); err != nil {
		return nil, err
	}

	o.paymentStatus = paymentStatus
	o.status = status

	return o, nil
}

// Validate ensures the Order instance was properly constructed.
func (o *Order) Validate() error {
	if o == nil || !o.isConstructed {
		return ErrOrderIsNotConstructed
	}

	return nil
}

// IsEqual compares two orders by their unique identifiers.
func (o *Order) IsEqual(other *Order) bool {
	return other != nil && o.id.IsEqual(other.id)
}

// ID returns the order's unique identifier.
func (o *Order) ID() kernel.UUID {
	return o.id
}

// Customer returns the customer snapshot taken at checkout.
func (o *Order) Customer() Customer {
	return o.customer
}

// Address returns the delivery address snapshot taken at checkout.
func (o *Order) Address() Address {
	return o.address
}

// Items returns a copy of the ordered line items.
func (o *Order) Items() []LineItem {
	items := make([]LineItem, len(o.items))
	copy(items, o.items)
	return items
}

// Shipping returns the combined shipping charge across all sellers.
func (o *Order) Shipping() kernel.Money {
	return o.shipping
}

// Total returns the order grand total.
func (o *Order) Total() kernel.Money {
	return o.total
}

// PaymentStatus returns the order-level payment state.
func (o *Order) PaymentStatus() PaymentStatus {
	return o.paymentStatus
}

// Status returns the roll-up status of the order.
func (o *Order) Status() Status {
	return o.status
}

// PlacedAt returns the checkout completion timestamp.
func (o *Order) PlacedAt() time.Time {
	return o.placedAt
}

// IsPaid reports whether the customer's funds are currently captured.
func (o *Order) IsPaid() bool {
	return o.paymentStatus == PaymentPaid
}

// MarkDelivered transitions the roll-up status to Delivered.
// Called by the roll-up recomputation once no undelivered suborders remain.
func (o *Order) MarkDelivered() error {
	newStatus, err := o.status.Deliver()
	if err != nil {
		return err
	}

	o.status = newStatus
	return nil
}

// MarkPaymentRefunded records that the captured funds were returned to the customer.
func (o *Order) MarkPaymentRefunded() error {
	newStatus, err := o.paymentStatus.Refund()
	if err != nil {
		return err
	}

	o.paymentStatus = newStatus
	return nil
}

func (o *Order) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	o.id = id
	return nil
}

func (o *Order) setCustomer(customer Customer) error {
	if err := customer.Validate(); err != nil {
		return err
	}
	o.customer = customer
	return nil
}

func (o *Order) setAddress(address Address) error {
	if err := address.Validate(); err != nil {
		return err
	}
	o.address = address
	return nil
}

func (o *Order) setItems(items []LineItem) error {
	if len(items) == 0 {
		return errs.NewValueIsRequiredError("items")
	}
	for _, item := range items {
		if err := item.Validate(); err != nil {
			return err
		}
	}
	o.items = make([]LineItem, len(items))
	copy(o.items, items)
	return nil
}

func (o *Order) setShipping(shipping kernel.Money) error {
	if err := shipping.Validate(); err != nil {
		return err
	}
	o.shipping = shipping
	return nil
}

func (o *Order) setTotal(total kernel.Money) error {
	if err := total.Validate(); err != nil {
		return err
	}
	o.total = total
	return nil
}
