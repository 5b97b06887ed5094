package order

import (
	"errors"

	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/pkg/errs"
	"marketplace/internal/pkg/guard"
)

var (
	// ErrAddressIsNotConstructed is returned when an Address was not created
	// through the NewAddress constructor.
	ErrAddressIsNotConstructed = errors.New("Address must be created via NewAddress constructor")

	// ErrCustomerIsNotConstructed is returned when a Customer was not created
	// through the NewCustomer constructor.
	ErrCustomerIsNotConstructed = errors.New("Customer must be created via NewCustomer constructor")
)

// Address is the delivery address captured at checkout. It is a snapshot:
// later edits to the customer's address book never touch placed orders.
type Address struct { //nolint:recvcheck //using for validation
	line1      string
	city       string
	postalCode string
	region     string
	country    string

	guard guard.ConstructorGuard
}

// NewAddress creates a validated address snapshot.
// Line1 and city are required; the remaining fields are free-form.
func NewAddress(line1, city, postalCode, region, country string) (Address, error) {
	a := Address{
		guard: guard.NewConstructorGuard(),
	}

	if line1 == "" {
		return Address{}, errs.NewValueIsRequiredError("line1")
	}
	if city == "" {
		return Address{}, errs.NewValueIsRequiredError("city")
	}

	a.line1 = line1
	a.city = city
	a.postalCode = postalCode
	a.region = region
	a.country = country

	return a, nil
}

// Validate ensures the Address was created through its constructor.
func (a Address) Validate() error {
	return a.guard.Validate(ErrAddressIsNotConstructed)
}

// Line1 returns the street line of the address.
func (a Address) Line1() string { return a.line1 }

// City returns the city of the address.
func (a Address) City() string { return a.city }

// PostalCode returns the postal code of the address.
func (a Address) PostalCode() string { return a.postalCode }

// Region returns the state or province of the address.
func (a Address) Region() string { return a.region }

// Country returns the country of the address.
func (a Address) Country() string { return a.country }

// Customer is the customer identity captured at checkout, denormalized onto
// the order so the fulfillment record stays complete even if the account
// changes or is removed later.
type Customer struct { //nolint:recvcheck //using for validation
	id    kernel.UUID
	name  string
	email string

	guard guard.ConstructorGuard
}

// NewCustomer creates a validated customer snapshot.
func NewCustomer(id kernel.UUID, name, email string) (Customer, error) {
	c := Customer{
		guard: guard.NewConstructorGuard(),
	}

	if err := id.Validate(); err != nil {
		return Customer{}, err
	}
	if name == "" {
		return Customer{}, errs.NewValueIsRequiredError("name")
	}

	c.id = id
	c.name = name
	c.email = email

	return c, nil
}

// Validate ensures the Customer was created through its constructor.
func (c Customer) Validate() error {
	return c.guard.Validate(ErrCustomerIsNotConstructed)
}

// ID returns the customer's identity.
func (c Customer) ID() kernel.UUID { return c.id }

// Name returns the customer's display name at checkout time.
func (c Customer) Name() string { return c.name }

// Email returns the customer's email at checkout time.
func (c Customer) Email() string { return c.email }
