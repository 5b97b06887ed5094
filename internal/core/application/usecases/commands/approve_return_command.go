package commands

import (
	"errors"

	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/core/domain/model/returns"
	"marketplace/internal/pkg/guard"
)

var ErrApproveReturnCommandIsNotConstructed = errors.New(
	"ApproveReturnCommand must be created via NewApproveReturnCommand constructor",
)

// ApproveReturnCommand represents approving a pending return claim.
type ApproveReturnCommand struct { //nolint:recvcheck //using for validation
	requestID kernel.UUID
	actorType returns.ActorType
	note      string

	guard guard.ConstructorGuard
}

// NewApproveReturnCommand creates a command to approve a return claim.
func NewApproveReturnCommand(
	requestID kernel.UUID, actorType returns.ActorType, note string,
) (ApproveReturnCommand, error) {
	cmd := ApproveReturnCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setRequestID(requestID),
		cmd.setActorType(actorType),
	); err != nil {
		return ApproveReturnCommand{}, err
	}

	cmd.note = note

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c ApproveReturnCommand) Validate() error {
	return c.guard.Validate(ErrApproveReturnCommandIsNotConstructed)
}

// RequestID returns the claim to approve.
func (c ApproveReturnCommand) RequestID() kernel.UUID { return c.requestID }

// ActorType returns who approves the claim.
func (c ApproveReturnCommand) ActorType() returns.ActorType { return c.actorType }

// Note returns the decision note, possibly empty.
func (c ApproveReturnCommand) Note() string { return c.note }

func (c *ApproveReturnCommand) setRequestID(requestID kernel.UUID) error {
	if err := requestID.Validate(); err != nil {
		return err
	}

	c.requestID = requestID
	return nil
}

func (c *ApproveReturnCommand) setActorType(actorType returns.ActorType) error {
	if err := actorType.Validate(); err != nil {
		return err
	}

	c.actorType = actorType
	return nil
}
