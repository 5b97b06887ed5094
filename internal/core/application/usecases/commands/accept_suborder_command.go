package commands

import (
	"errors"

	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/pkg/guard"
)

var ErrAcceptSubOrderCommandIsNotConstructed = errors.New(
	"AcceptSubOrderCommand must be created via NewAcceptSubOrderCommand constructor",
)

// ErrSellerMismatch is returned when a seller attempts to act on a suborder
// that belongs to another seller.
var ErrSellerMismatch = errors.New("suborder belongs to another seller")

// AcceptSubOrderCommand represents a seller accepting a pending suborder,
// moving it into fulfillment.
type AcceptSubOrderCommand struct { //nolint:recvcheck //using for validation
	subOrderID kernel.UUID
	sellerID   kernel.UUID

	guard guard.ConstructorGuard
}

// NewAcceptSubOrderCommand creates a command for a seller to accept a suborder.
func NewAcceptSubOrderCommand(subOrderID, sellerID kernel.UUID) (AcceptSubOrderCommand, error) {
	cmd := AcceptSubOrderCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setSubOrderID(subOrderID),
		cmd.setSellerID(sellerID),
	); err != nil {
		return AcceptSubOrderCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c AcceptSubOrderCommand) Validate() error {
	return c.guard.Validate(ErrAcceptSubOrderCommandIsNotConstructed)
}

// SubOrderID returns the suborder to accept.
func (c AcceptSubOrderCommand) SubOrderID() kernel.UUID { return c.subOrderID }

// SellerID returns the acting seller's identity.
func (c AcceptSubOrderCommand) SellerID() kernel.UUID { return c.sellerID }

func (c *AcceptSubOrderCommand) setSubOrderID(subOrderID kernel.UUID) error {
	if err := subOrderID.Validate(); err != nil {
		return err
	}

	c.subOrderID = subOrderID
	return nil
}

func (c *AcceptSubOrderCommand) setSellerID(sellerID kernel.UUID) error {
	if err := sellerID.Validate(); err != nil {
		return err
	}

	c.sellerID = sellerID
	return nil
}
