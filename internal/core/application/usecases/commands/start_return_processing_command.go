package commands

import (
	"errors"

	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/core/domain/model/returns"
	"marketplace/internal/pkg/guard"
)

var ErrStartReturnProcessingCommandIsNotConstructed = errors.New(
	"StartReturnProcessingCommand must be created via NewStartReturnProcessingCommand constructor",
)

// StartReturnProcessingCommand represents a seller acknowledging an approved
// return claim and starting to process the inbound goods.
type StartReturnProcessingCommand struct { //nolint:recvcheck //using for validation
	requestID kernel.UUID
	actorType returns.ActorType
	note      string

	guard guard.ConstructorGuard
}

// NewStartReturnProcessingCommand creates a command to start processing a claim.
func NewStartReturnProcessingCommand(
	requestID kernel.UUID, actorType returns.ActorType, note string,
) (StartReturnProcessingCommand, error) {
	cmd := StartReturnProcessingCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setRequestID(requestID),
		cmd.setActorType(actorType),
	); err != nil {
		return StartReturnProcessingCommand{}, err
	}

	cmd.note = note

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c StartReturnProcessingCommand) Validate() error {
	return c.guard.Validate(ErrStartReturnProcessingCommandIsNotConstructed)
}

// RequestID returns the claim to start processing.
func (c StartReturnProcessingCommand) RequestID() kernel.UUID { return c.requestID }

// ActorType returns who starts processing.
func (c StartReturnProcessingCommand) ActorType() returns.ActorType { return c.actorType }

// Note returns the processing note, possibly empty.
func (c StartReturnProcessingCommand) Note() string { return c.note }

func (c *StartReturnProcessingCommand) setRequestID(requestID kernel.UUID) error {
	if err := requestID.Validate(); err != nil {
		return err
	}

	c.requestID = requestID
	return nil
}

func (c *StartReturnProcessingCommand) setActorType(actorType returns.ActorType) error {
	if err := actorType.Validate(); err != nil {
		return err
	}

	c.actorType = actorType
	return nil
}
