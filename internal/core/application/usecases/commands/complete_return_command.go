package commands

import (
	"errors"

	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/core/domain/model/returns"
	"marketplace/internal/pkg/guard"
)

var ErrCompleteReturnCommandIsNotConstructed = errors.New(
	"CompleteReturnCommand must be created via NewCompleteReturnCommand constructor",
)

// CompleteReturnCommand represents closing out an approved return claim once
// the goods have made their way back to the seller.
type CompleteReturnCommand struct { //nolint:recvcheck //using for validation
	requestID kernel.UUID
	actorType returns.ActorType
	note      string

	guard guard.ConstructorGuard
}

// NewCompleteReturnCommand creates a command to complete a return claim.
func NewCompleteReturnCommand(
	requestID kernel.UUID, actorType returns.ActorType, note string,
) (CompleteReturnCommand, error) {
	cmd := CompleteReturnCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setRequestID(requestID),
		cmd.setActorType(actorType),
	); err != nil {
		return CompleteReturnCommand{}, err
	}

	cmd.note = note

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c CompleteReturnCommand) Validate() error {
	return c.guard.Validate(ErrCompleteReturnCommandIsNotConstructed)
}

// RequestID returns the claim to complete.
func (c CompleteReturnCommand) RequestID() kernel.UUID { return c.requestID }

// ActorType returns who completes the claim.
func (c CompleteReturnCommand) ActorType() returns.ActorType { return c.actorType }

// Note returns the completion note, possibly empty.
func (c CompleteReturnCommand) Note() string { return c.note }

func (c *CompleteReturnCommand) setRequestID(requestID kernel.UUID) error {
	if err := requestID.Validate(); err != nil {
		return err
	}

	c.requestID = requestID
	return nil
}

func (c *CompleteReturnCommand) setActorType(actorType returns.ActorType) error {
	if err := actorType.Validate(); err != nil {
		return err
	}

	c.actorType = actorType
	return nil
}
