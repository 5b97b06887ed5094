package commands

import (
	"errors"

	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/pkg/errs"
	"marketplace/internal/pkg/guard"
)

var ErrApplyCarrierUpdateCommandIsNotConstructed = errors.New(
	"ApplyCarrierUpdateCommand must be created via NewApplyCarrierUpdateCommand constructor",
)

// ApplyCarrierUpdateCommand carries a raw logistics status signal for a
// suborder, as received from a carrier webhook or the polling job.
type ApplyCarrierUpdateCommand struct { //nolint:recvcheck //using for validation
	subOrderID kernel.UUID
	rawStatus  string
	rawNDR     string

	guard guard.ConstructorGuard
}

// NewApplyCarrierUpdateCommand creates a command from a raw carrier signal.
func NewApplyCarrierUpdateCommand(subOrderID kernel.UUID, rawStatus, rawNDR string) (ApplyCarrierUpdateCommand, error) {
	cmd := ApplyCarrierUpdateCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setSubOrderID(subOrderID),
		cmd.setRawStatus(rawStatus),
	); err != nil {
		return ApplyCarrierUpdateCommand{}, err
	}

	cmd.rawNDR = rawNDR

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c ApplyCarrierUpdateCommand) Validate() error {
	return c.guard.Validate(ErrApplyCarrierUpdateCommandIsNotConstructed)
}

// SubOrderID returns the suborder the signal refers to.
func (c ApplyCarrierUpdateCommand) SubOrderID() kernel.UUID { return c.subOrderID }

// RawStatus returns the carrier's status code as received.
func (c ApplyCarrierUpdateCommand) RawStatus() string { return c.rawStatus }

// RawNDR returns the carrier's non-delivery reason code, possibly empty.
func (c ApplyCarrierUpdateCommand) RawNDR() string { return c.rawNDR }

func (c *ApplyCarrierUpdateCommand) setSubOrderID(subOrderID kernel.UUID) error {
	if err := subOrderID.Validate(); err != nil {
		return err
	}

	c.subOrderID = subOrderID
	return nil
}

func (c *ApplyCarrierUpdateCommand) setRawStatus(rawStatus string) error {
	if rawStatus == "" {
		return errs.NewValueIsRequiredError("rawStatus")
	}

	c.rawStatus = rawStatus
	return nil
}
