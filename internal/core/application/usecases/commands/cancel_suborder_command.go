package commands

import (
	"errors"

	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/pkg/guard"
)

var ErrCancelSubOrderCommandIsNotConstructed = errors.New(
	"CancelSubOrderCommand must be created via NewCancelSubOrderCommand constructor",
)

// CancelSubOrderCommand represents an operator force-cancelling a suborder
// that has not yet shipped, refunding its escrow to the buyer.
type CancelSubOrderCommand struct { //nolint:recvcheck //using for validation
	subOrderID kernel.UUID
	reason     string

	guard guard.ConstructorGuard
}

// NewCancelSubOrderCommand creates a command to force-cancel a suborder.
func NewCancelSubOrderCommand(subOrderID kernel.UUID, reason string) (CancelSubOrderCommand, error) {
	cmd := CancelSubOrderCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := cmd.setSubOrderID(subOrderID); err != nil {
		return CancelSubOrderCommand{}, err
	}

	cmd.reason = reason

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c CancelSubOrderCommand) Validate() error {
	return c.guard.Validate(ErrCancelSubOrderCommandIsNotConstructed)
}

// SubOrderID returns the suborder to cancel.
func (c CancelSubOrderCommand) SubOrderID() kernel.UUID { return c.subOrderID }

// Reason returns the operator-supplied cancellation reason, possibly empty.
func (c CancelSubOrderCommand) Reason() string { return c.reason }

func (c *CancelSubOrderCommand) setSubOrderID(subOrderID kernel.UUID) error {
	if err := subOrderID.Validate(); err != nil {
		return err
	}

	c.subOrderID = subOrderID
	return nil
}
