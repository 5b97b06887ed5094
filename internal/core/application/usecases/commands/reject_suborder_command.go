package commands

import (
	"errors"

	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/pkg/guard"
)

var ErrRejectSubOrderCommandIsNotConstructed = errors.New(
	"RejectSubOrderCommand must be created via NewRejectSubOrderCommand constructor",
)

// RejectSubOrderCommand represents a seller declining a pending suborder,
// cancelling it and refunding its escrow to the buyer.
type RejectSubOrderCommand struct { //nolint:recvcheck //using for validation
	subOrderID kernel.UUID
	sellerID   kernel.UUID

	guard guard.ConstructorGuard
}

// NewRejectSubOrderCommand creates a command for a seller to reject a suborder.
func NewRejectSubOrderCommand(subOrderID, sellerID kernel.UUID) (RejectSubOrderCommand, error) {
	cmd := RejectSubOrderCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setSubOrderID(subOrderID),
		cmd.setSellerID(sellerID),
	); err != nil {
		return RejectSubOrderCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c RejectSubOrderCommand) Validate() error {
	return c.guard.Validate(ErrRejectSubOrderCommandIsNotConstructed)
}

// SubOrderID returns the suborder to reject.
func (c RejectSubOrderCommand) SubOrderID() kernel.UUID { return c.subOrderID }

// SellerID returns the acting seller's identity.
func (c RejectSubOrderCommand) SellerID() kernel.UUID { return c.sellerID }

func (c *RejectSubOrderCommand) setSubOrderID(subOrderID kernel.UUID) error {
	if err := subOrderID.Validate(); err != nil {
		return err
	}

	c.subOrderID = subOrderID
	return nil
}

func (c *RejectSubOrderCommand) setSellerID(sellerID kernel.UUID) error {
	if err := sellerID.Validate(); err != nil {
		return err
	}

	c.sellerID = sellerID
	return nil
}
