package commands

import (
	"context"
	"time"

	"marketplace/internal/core/domain/model/payment"
)

// CancelSubOrderCommandHandler handles operator-driven cancellation of a
// suborder that has not yet shipped. Unlike rejection, cancellation is also
// valid while the seller is already processing the suborder. The escrow
// payment is refunded in the same transaction.
type CancelSubOrderCommandHandler struct {
	uowFactory FulfillmentUoWFactory
}

// NewCancelSubOrderCommandHandler creates a handler for force-cancellation.
func NewCancelSubOrderCommandHandler(uowFactory FulfillmentUoWFactory) CancelSubOrderCommandHandler {
	return CancelSubOrderCommandHandler{
		uowFactory: uowFactory,
	}
}

// Handle processes the cancellation command.
func (h *CancelSubOrderCommandHandler) Handle(ctx context.Context, cmd CancelSubOrderCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	subOrderRepo := uow.SubOrderRepository()
	sub, err := subOrderRepo.Get(ctx, cmd.SubOrderID())
	if err != nil {
		return err
	}

	now := time.Now().UTC()
	expected := sub.Status()
	if err = sub.ForceCancel(now); err != nil {
		return err
	}

	if err = subOrderRepo.Transition(ctx, sub, expected); err != nil {
		return err
	}

	paymentRepo := uow.PaymentRepository()
	pay, err := paymentRepo.GetBySubOrder(ctx, sub.ID())
	if err != nil {
		return err
	}

	note := "suborder cancelled"
	if cmd.Reason() != "" {
		note = cmd.Reason()
	}

	if err = pay.Refund(payment.ActorAdmin, note, now); err != nil {
		return err
	}

	if err = paymentRepo.Transition(ctx, pay, payment.Escrow); err != nil {
		return err
	}

	return uow.Commit(ctx)
}
