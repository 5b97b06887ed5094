package services

import (
	"errors"
	"time"

	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/core/domain/model/order"
	"marketplace/internal/core/domain/model/payment"
	"marketplace/internal/core/domain/model/suborder"
)

// ErrPaymentNotVerified is returned when decomposition is attempted for a
// checkout whose payment capture has not been confirmed. Nothing is created
// in that case.
var ErrPaymentNotVerified = errors.New("payment is not verified")

// Decomposition is the complete output of splitting one paid checkout: the
// parent order, one suborder per seller, and one escrow payment per suborder.
// The three collections are created together so the caller can persist them
// in a single transaction; a partial decomposition never escapes this service.
type Decomposition struct {
	Order     *order.Order
	SubOrders []*suborder.SubOrder
	Payments  []*payment.Payment
}

// OrderDecomposer is a domain service that splits a paid cart into per-seller
// fulfillment units and their escrow records.
//
// Key responsibilities:
//   - Grouping line items by seller, preserving cart order
//   - Computing each seller's money breakdown with a flat shipping fee
//   - Creating the parent order whose total equals the sum of suborder totals
//   - Pairing every suborder with exactly one escrow payment of its total
//
// Business rules:
//   - Decomposition requires verified payment; otherwise nothing is created
//   - Every suborder starts Pending, every payment starts Escrow
type OrderDecomposer struct {
	shippingFee kernel.Money
}

// NewOrderDecomposer creates an OrderDecomposer charging the given flat
// shipping fee per seller.
func NewOrderDecomposer(shippingFee kernel.Money) (OrderDecomposer, error) {
	if err := shippingFee.Validate(); err != nil {
		return OrderDecomposer{}, err
	}

	return OrderDecomposer{shippingFee: shippingFee}, nil
}

// Decompose splits a paid cart into the parent order, per-seller suborders,
// and per-suborder escrow payments.
//
// Parameters:
//   - customer: customer identity snapshot
//   - address: delivery address snapshot
//   - items: the cart's line items across all sellers (non-empty)
//   - paymentVerified: whether the payment gateway confirmed capture
//   - now: checkout completion time
//
// Returns ErrPaymentNotVerified without creating anything when the capture is
// unconfirmed. On success the result holds one suborder and one payment per
// distinct seller, and the order total equals the sum of the suborder totals.
func (d OrderDecomposer) Decompose(
	customer order.Customer,
	address order.Address,
	items []order.LineItem,
	paymentVerified bool,
	now time.Time,
) (*Decomposition, error) {
	if !paymentVerified {
		return nil, ErrPaymentNotVerified
	}

	sellers, grouped, err := d.groupBySeller(items)
	if err != nil {
		return nil, err
	}

	shippingTotal, err := d.shippingFee.Multiply(len(sellers))
	if err != nil {
		return nil, err
	}

	itemSum := kernel.Zero()
	for _, item := range items {
		itemSum, err = itemSum.Add(item.LineTotal())
		if err != nil {
			return nil, err
		}
	}
	orderTotal, err := itemSum.Add(shippingTotal)
	if err != nil {
		return nil, err
	}

	parent, err := order.NewOrder(kernel.NewUUID(), customer, address, items,
		shippingTotal, orderTotal, now)
	if err != nil {
		return nil, err
	}

	result := &Decomposition{
		Order:     parent,
		SubOrders: make([]*suborder.SubOrder, 0, len(sellers)),
		Payments:  make([]*payment.Payment, 0, len(sellers)),
	}

	for _, sellerID := range sellers {
		sellerItems := grouped[sellerID]

		subtotal := kernel.Zero()
		for _, item := range sellerItems {
			subtotal, err = subtotal.Add(item.LineTotal())
			if err != nil {
				return nil, err
			}
		}

		sub, err := suborder.NewSubOrder(kernel.NewUUID(), parent.ID(), sellerItems[0].SellerID(),
			sellerItems, subtotal, d.shippingFee, kernel.Zero(), now)
		if err != nil {
			return nil, err
		}

		pay, err := payment.NewPayment(kernel.NewUUID(), parent.ID(), sub.ID(),
			sub.SellerID(), sub.Total(), now)
		if err != nil {
			return nil, err
		}

		result.SubOrders = append(result.SubOrders, sub)
		result.Payments = append(result.Payments, pay)
	}

	return result, nil
}

// groupBySeller partitions items by seller, preserving the order in which
// each seller first appears in the cart.
func (d OrderDecomposer) groupBySeller(items []order.LineItem) ([]string, map[string][]order.LineItem, error) {
	sellers := make([]string, 0)
	grouped := make(map[string][]order.LineItem)

	for _, item := range items {
		if err := item.Validate(); err != nil {
			return nil, nil, err
		}

		key := item.SellerID().String()
		if _, seen := grouped[key]; !seen {
			sellers = append(sellers, key)
		}
		grouped[key] = append(grouped[key], item)
	}

	return sellers, grouped, nil
}
