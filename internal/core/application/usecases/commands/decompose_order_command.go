package commands

import (
	"errors"

	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/pkg/guard"
)

var (
	ErrDecomposeOrderCommandIsNotConstructed = errors.New(
		"DecomposeOrderCommand must be created via NewDecomposeOrderCommand constructor",
	)
	ErrCartIsEmpty = errors.New("cart must contain at least one item")
)

// CartItem is one cart position in a decomposition request: which product,
// from which seller, how many units, at what unit price in minor units.
type CartItem struct {
	ProductID string
	SellerID  kernel.UUID
	Quantity  int
	UnitPrice int64
}

// DecomposeOrderCommand represents a request to split one paid checkout into
// per-seller suborders and escrow payments.
//
// Example:
//
//	cmd, err := NewDecomposeOrderCommand(customerID, "Alex Petrov", "alex@example.com",
//	    "12 Main St", "Springfield", "62704", "IL", "US", items, true)
//	if err != nil {
//	    return fmt.Errorf("invalid checkout data: %w", err)
//	}
//
//	handler := NewDecomposeOrderCommandHandler(uowFactory, decomposer)
//	orderID, err := handler.Handle(ctx, cmd)
type DecomposeOrderCommand struct { //nolint:recvcheck //using for validation
	customerID    kernel.UUID
	customerName  string
	customerEmail string

	addressLine1 string
	city         string
	postalCode   string
	region       string
	country      string

	items           []CartItem
	paymentVerified bool

	guard guard.ConstructorGuard
}

// NewDecomposeOrderCommand creates a command to decompose a paid cart.
// Validates that the customer ID is valid and the cart is not empty; the
// snapshot fields and items are validated in depth by the domain constructors.
func NewDecomposeOrderCommand(
	customerID kernel.UUID,
	customerName string,
	customerEmail string,
	addressLine1 string,
	city string,
	postalCode string,
	region string,
	country string,
	items []CartItem,
	paymentVerified bool,
) (DecomposeOrderCommand, error) {
	cmd := DecomposeOrderCommand{
		customerName:    customerName,
		customerEmail:   customerEmail,
		addressLine1:    addressLine1,
		city:            city,
		postalCode:      postalCode,
		region:          region,
		country:         country,
		paymentVerified: paymentVerified,
		guard:           guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setCustomerID(customerID),
		cmd.setItems(items),
	); err != nil {
		return DecomposeOrderCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c DecomposeOrderCommand) Validate() error {
	return c.guard.Validate(ErrDecomposeOrderCommandIsNotConstructed)
}

// CustomerID returns the checkout customer's identifier.
func (c DecomposeOrderCommand) CustomerID() kernel.UUID { return c.customerID }

// CustomerName returns the checkout customer's display name.
func (c DecomposeOrderCommand) CustomerName() string { return c.customerName }

// CustomerEmail returns the checkout customer's contact email.
func (c DecomposeOrderCommand) CustomerEmail() string { return c.customerEmail }

// AddressLine1 returns the delivery street address.
func (c DecomposeOrderCommand) AddressLine1() string { return c.addressLine1 }

// City returns the delivery city.
func (c DecomposeOrderCommand) City() string { return c.city }

// PostalCode returns the delivery postal code.
func (c DecomposeOrderCommand) PostalCode() string { return c.postalCode }

// Region returns the delivery region or state.
func (c DecomposeOrderCommand) Region() string { return c.region }

// Country returns the delivery country code.
func (c DecomposeOrderCommand) Country() string { return c.country }

// Items returns a copy of the cart items.
func (c DecomposeOrderCommand) Items() []CartItem {
	items := make([]CartItem, len(c.items))
	copy(items, c.items)
	return items
}

// PaymentVerified reports whether the payment gateway confirmed capture.
func (c DecomposeOrderCommand) PaymentVerified() bool { return c.paymentVerified }

func (c *DecomposeOrderCommand) setCustomerID(customerID kernel.UUID) error {
	if err := customerID.Validate(); err != nil {
		return err
	}

	c.customerID = customerID
	return nil
}

func (c *DecomposeOrderCommand) setItems(items []CartItem) error {
	if len(items) == 0 {
		return ErrCartIsEmpty
	}

	c.items = make([]CartItem, len(items))
	copy(c.items, items)
	return nil
}
