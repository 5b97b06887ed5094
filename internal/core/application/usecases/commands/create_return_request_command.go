package commands

import (
	"errors"

	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/pkg/errs"
	"marketplace/internal/pkg/guard"
)

var ErrCreateReturnRequestCommandIsNotConstructed = errors.New(
	"CreateReturnRequestCommand must be created via NewCreateReturnRequestCommand constructor",
)

// CreateReturnRequestCommand represents a customer opening a return claim
// against a delivered suborder.
type CreateReturnRequestCommand struct { //nolint:recvcheck //using for validation
	subOrderID  kernel.UUID
	customerID  kernel.UUID
	reason      string
	description string
	evidence    []string

	guard guard.ConstructorGuard
}

// NewCreateReturnRequestCommand creates a command to open a return claim.
func NewCreateReturnRequestCommand(
	subOrderID, customerID kernel.UUID, reason, description string, evidence []string,
) (CreateReturnRequestCommand, error) {
	cmd := CreateReturnRequestCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setSubOrderID(subOrderID),
		cmd.setCustomerID(customerID),
		cmd.setReason(reason),
	); err != nil {
		return CreateReturnRequestCommand{}, err
	}

	cmd.description = description
	cmd.evidence = append([]string(nil), evidence...)

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c CreateReturnRequestCommand) Validate() error {
	return c.guard.Validate(ErrCreateReturnRequestCommandIsNotConstructed)
}

// SubOrderID returns the suborder the claim is raised against.
func (c CreateReturnRequestCommand) SubOrderID() kernel.UUID { return c.subOrderID }

// CustomerID returns the claiming customer's identity.
func (c CreateReturnRequestCommand) CustomerID() kernel.UUID { return c.customerID }

// Reason returns the customer's return reason.
func (c CreateReturnRequestCommand) Reason() string { return c.reason }

// Description returns the free-form claim description, possibly empty.
func (c CreateReturnRequestCommand) Description() string { return c.description }

// Evidence returns attachment references supporting the claim.
func (c CreateReturnRequestCommand) Evidence() []string {
	evidence := make([]string, len(c.evidence))
	copy(evidence, c.evidence)

	return evidence
}

func (c *CreateReturnRequestCommand) setSubOrderID(subOrderID kernel.UUID) error {
	if err := subOrderID.Validate(); err != nil {
		return err
	}

	c.subOrderID = subOrderID
	return nil
}

func (c *CreateReturnRequestCommand) setCustomerID(customerID kernel.UUID) error {
	if err := customerID.Validate(); err != nil {
		return err
	}

	c.customerID = customerID
	return nil
}

func (c *CreateReturnRequestCommand) setReason(reason string) error {
	if reason == "" {
		return errs.NewValueIsRequiredError("reason")
	}

	c.reason = reason
	return nil
}
