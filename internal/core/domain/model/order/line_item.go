package order

import (
	"errors"

	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/pkg/errs"
	"marketplace/internal/pkg/guard"
)

// ErrLineItemIsNotConstructed is returned when a LineItem was not created
// through the NewLineItem constructor.
var ErrLineItemIsNotConstructed = errors.New("LineItem must be created via NewLineItem constructor")

// LineItem is an immutable snapshot of one ordered product position: which
// product, from which seller, how many units, at what unit price. The line
// total is computed at construction so it can never drift from quantity and
// price, which the decomposition step relies on when proving that suborder
// totals sum to the order total.
type LineItem struct { //nolint:recvcheck //using for validation
	productID string
	sellerID  kernel.UUID
	quantity  int
	unitPrice kernel.Money
	lineTotal kernel.Money

	guard guard.ConstructorGuard
}

// NewLineItem creates a validated line item and computes its line total.
//
// Parameters:
//   - productID: catalog reference of the purchased product (required)
//   - sellerID: identity of the seller offering the product
//   - quantity: number of units (must be positive)
//   - unitPrice: price per unit in minor currency units
//
// Returns:
//   - LineItem: the constructed item with lineTotal = unitPrice * quantity
//   - error: validation error if any parameter is invalid
func NewLineItem(productID string, sellerID kernel.UUID, quantity int, unitPrice kernel.Money) (LineItem, error) {
	item := LineItem{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		item.setProductID(productID),
		item.setSellerID(sellerID),
		item.setQuantity(quantity),
		item.setUnitPrice(unitPrice),
	); err != nil {
		return LineItem{}, err
	}

	total, err := unitPrice.Multiply(quantity)
	if err != nil {
		return LineItem{}, err
	}
	item.lineTotal = total

	return item, nil
}

// Validate ensures the LineItem was created through its constructor.
func (i LineItem) Validate() error {
	return i.guard.Validate(ErrLineItemIsNotConstructed)
}

// ProductID returns the catalog reference of the product.
func (i LineItem) ProductID() string {
	return i.productID
}

// SellerID returns the identity of the seller offering the product.
func (i LineItem) SellerID() kernel.UUID {
	return i.sellerID
}

// Quantity returns the number of ordered units.
func (i LineItem) Quantity() int {
	return i.quantity
}

// UnitPrice returns the per-unit price.
func (i LineItem) UnitPrice() kernel.Money {
	return i.unitPrice
}

// LineTotal returns quantity times unit price.
func (i LineItem) LineTotal() kernel.Money {
	return i.lineTotal
}

func (i *LineItem) setProductID(productID string) error {
	if productID == "" {
		return errs.NewValueIsRequiredError("productID")
	}
	i.productID = productID
	return nil
}

func (i *LineItem) setSellerID(sellerID kernel.UUID) error {
	if err := sellerID.Validate(); err != nil {
		return err
	}
	i.sellerID = sellerID
	return nil
}

func (i *LineItem) setQuantity(quantity int) error {
	if quantity <= 0 {
		return errs.NewValueIsInvalidError("quantity")
	}
	i.quantity = quantity
	return nil
}

func (i *LineItem) setUnitPrice(unitPrice kernel.Money) error {
	if err := unitPrice.Validate(); err != nil {
		return err
	}
	i.unitPrice = unitPrice
	return nil
}
