package commands

import (
	"errors"

	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/core/domain/model/payment"
	"marketplace/internal/pkg/guard"
)

var ErrReleasePaymentCommandIsNotConstructed = errors.New(
	"ReleasePaymentCommand must be created via NewReleasePaymentCommand constructor",
)

// ReleasePaymentCommand represents releasing an escrowed payment to its
// seller. The payment can be addressed directly or through its suborder.
// Force skips the delivery preconditions for manual settlement by an
// operator; it never overrides a refunded payment.
type ReleasePaymentCommand struct { //nolint:recvcheck //using for validation
	paymentID  kernel.UUID
	subOrderID kernel.UUID
	bySubOrder bool
	actorType  payment.ActorType
	note       string
	force      bool

	guard guard.ConstructorGuard
}

// NewReleasePaymentCommand creates a release command addressed by payment ID.
func NewReleasePaymentCommand(
	paymentID kernel.UUID, actorType payment.ActorType, note string, force bool,
) (ReleasePaymentCommand, error) {
	cmd := ReleasePaymentCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setPaymentID(paymentID),
		cmd.setActorType(actorType),
	); err != nil {
		return ReleasePaymentCommand{}, err
	}

	cmd.note = note
	cmd.force = force

	return cmd, nil
}

// NewReleasePaymentCommandBySubOrder creates a release command addressed by
// the suborder whose escrow should be released.
func NewReleasePaymentCommandBySubOrder(
	subOrderID kernel.UUID, actorType payment.ActorType, note string, force bool,
) (ReleasePaymentCommand, error) {
	cmd := ReleasePaymentCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setSubOrderID(subOrderID),
		cmd.setActorType(actorType),
	); err != nil {
		return ReleasePaymentCommand{}, err
	}

	cmd.bySubOrder = true
	cmd.note = note
	cmd.force = force

	return cmd, nil
}

// Validate ensures the command was created through a constructor.
func (c ReleasePaymentCommand) Validate() error {
	return c.guard.Validate(ErrReleasePaymentCommandIsNotConstructed)
}

// PaymentID returns the payment to release when addressed directly.
func (c ReleasePaymentCommand) PaymentID() kernel.UUID { return c.paymentID }

// SubOrderID returns the suborder whose payment to release.
func (c ReleasePaymentCommand) SubOrderID() kernel.UUID { return c.subOrderID }

// BySubOrder reports whether the command is addressed by suborder.
func (c ReleasePaymentCommand) BySubOrder() bool { return c.bySubOrder }

// ActorType returns who initiates the release.
func (c ReleasePaymentCommand) ActorType() payment.ActorType { return c.actorType }

// Note returns the free-form settlement note, possibly empty.
func (c ReleasePaymentCommand) Note() string { return c.note }

// Force reports whether delivery preconditions are skipped.
func (c ReleasePaymentCommand) Force() bool { return c.force }

func (c *ReleasePaymentCommand) setPaymentID(paymentID kernel.UUID) error {
	if err := paymentID.Validate(); err != nil {
		return err
	}

	c.paymentID = paymentID
	return nil
}

func (c *ReleasePaymentCommand) setSubOrderID(subOrderID kernel.UUID) error {
	if err := subOrderID.Validate(); err != nil {
		return err
	}

	c.subOrderID = subOrderID
	return nil
}

func (c *ReleasePaymentCommand) setActorType(actorType payment.ActorType) error {
	if err := actorType.Validate(); err != nil {
		return err
	}

	c.actorType = actorType
	return nil
}
