package kernel

import (
	"fmt"

	"marketplace/internal/pkg/errs"
	"marketplace/internal/pkg/guard"
)

// ErrMoneyIsNotConstructed is returned when attempting to use an improperly
// initialized Money value. Money must be created via NewMoney or Zero.
var ErrMoneyIsNotConstructed = errs.NewValueIsRequiredError(
	"money must be created via NewMoney or Zero constructors")

// Money represents a monetary amount in minor currency units (e.g., cents).
// Money is an immutable value object; all amounts in the settlement engine are
// non-negative — debts and reversals are modeled as separate records, never as
// negative amounts. The zero value of Money is invalid and will fail
// validation; use the constructors to create instances.
//
// Example:
//
//	subtotal, err := kernel.NewMoney(50000)
//	if err != nil {
//	    // Handle validation error
//	}
//	fmt.Printf("Subtotal: %s", subtotal) // Output: Subtotal: 50000
type Money struct { //nolint:recvcheck //using for validation
	amount int64
	guard  guard.ConstructorGuard
}

// NewMoney creates a Money value holding the given amount of minor units.
//
// Parameters:
//   - amount: The amount in minor units (must not be negative)
//
// Returns:
//   - Money: A valid money instance
//   - error: Validation error if the amount is negative
func NewMoney(amount int64) (Money, error) {
	m := Money{
		guard: guard.NewConstructorGuard(),
	}

	if err := m.setAmount(amount); err != nil {
		return Money{}, err
	}

	return m, nil
}

// Zero returns a valid Money holding zero minor units.
// Useful as the identity element when summing line totals.
func Zero() Money {
	m, _ := NewMoney(0)
	return m
}

// Amount returns the amount in minor units.
func (m Money) Amount() int64 {
	return m.amount
}

// Add returns the sum of two Money values.
// Returns an error if either operand was not properly constructed.
func (m Money) Add(other Money) (Money, error) {
	if err := m.Validate(); err != nil {
		return Money{}, err
	}
	if err := other.Validate(); err != nil {
		return Money{}, err
	}

	return NewMoney(m.amount + other.amount)
}

// Sub returns the difference of two Money values.
// Returns an error if the result would be negative.
func (m Money) Sub(other Money) (Money, error) {
	if err := m.Validate(); err != nil {
		return Money{}, err
	}
	if err := other.Validate(); err != nil {
		return Money{}, err
	}

	return NewMoney(m.amount - other.amount)
}

// Multiply returns the Money scaled by a non-negative quantity.
func (m Money) Multiply(quantity int) (Money, error) {
	if err := m.Validate(); err != nil {
		return Money{}, err
	}
	if quantity < 0 {
		return Money{}, errs.NewValueIsInvalidErrorWithCause("quantity",
			fmt.Errorf("%d is not greater than or equal to 0", quantity))
	}

	return NewMoney(m.amount * int64(quantity))
}

// IsEqual compares two Money values by amount.
func (m Money) IsEqual(other Money) bool {
	return m.amount == other.amount
}

// IsZero reports whether the amount is exactly zero.
func (m Money) IsZero() bool {
	return m.amount == 0
}

// String returns the amount formatted as a plain integer of minor units.
func (m Money) String() string {
	return fmt.Sprintf("%d", m.amount)
}

// Validate checks if the Money was properly constructed using a constructor.
func (m Money) Validate() error {
	return m.guard.Validate(ErrMoneyIsNotConstructed)
}

func (m *Money) setAmount(amount int64) error {
	if amount < 0 {
		return errs.NewValueIsInvalidErrorWithCause("amount",
			fmt.Errorf("%d is not greater than or equal to 0", amount))
	}
	m.amount = amount
	return nil
}
