package commands

import (
	"errors"

	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/core/domain/model/returns"
	"marketplace/internal/pkg/guard"
)

var ErrRejectReturnCommandIsNotConstructed = errors.New(
	"RejectReturnCommand must be created via NewRejectReturnCommand constructor",
)

// RejectReturnCommand represents rejecting a pending return claim.
type RejectReturnCommand struct { //nolint:recvcheck //using for validation
	requestID kernel.UUID
	actorType returns.ActorType
	note      string

	guard guard.ConstructorGuard
}

// NewRejectReturnCommand creates a command to reject a return claim.
func NewRejectReturnCommand(
	requestID kernel.UUID, actorType returns.ActorType, note string,
) (RejectReturnCommand, error) {
	cmd := RejectReturnCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setRequestID(requestID),
		cmd.setActorType(actorType),
	); err != nil {
		return RejectReturnCommand{}, err
	}

	cmd.note = note

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c RejectReturnCommand) Validate() error {
	return c.guard.Validate(ErrRejectReturnCommandIsNotConstructed)
}

// RequestID returns the claim to reject.
func (c RejectReturnCommand) RequestID() kernel.UUID { return c.requestID }

// ActorType returns who rejects the claim.
func (c RejectReturnCommand) ActorType() returns.ActorType { return c.actorType }

// Note returns the decision note, possibly empty.
func (c RejectReturnCommand) Note() string { return c.note }

func (c *RejectReturnCommand) setRequestID(requestID kernel.UUID) error {
	if err := requestID.Validate(); err != nil {
		return err
	}

	c.requestID = requestID
	return nil
}

func (c *RejectReturnCommand) setActorType(actorType returns.ActorType) error {
	if err := actorType.Validate(); err != nil {
		return err
	}

	c.actorType = actorType
	return nil
}
