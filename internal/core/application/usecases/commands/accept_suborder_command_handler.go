package commands

import (
	"context"
	"time"

	"marketplace/internal/core/domain/model/suborder"
)

// AcceptSubOrderCommandHandler handles a seller accepting a pending suborder.
// The transition is written with a conditional update guarded by the Pending
// status, so a racing reject or cancel cannot be silently overwritten.
type AcceptSubOrderCommandHandler struct {
	uowFactory FulfillmentUoWFactory
}

// NewAcceptSubOrderCommandHandler creates a handler for suborder acceptance.
func NewAcceptSubOrderCommandHandler(uowFactory FulfillmentUoWFactory) AcceptSubOrderCommandHandler {
	return AcceptSubOrderCommandHandler{
		uowFactory: uowFactory,
	}
}

// Handle processes the acceptance command.
// Returns ErrSellerMismatch when the suborder belongs to another seller, a
// domain error when the suborder is not Pending, and a concurrency conflict
// when a racing transition won the conditional write.
func (h *AcceptSubOrderCommandHandler) Handle(ctx context.Context, cmd AcceptSubOrderCommand) error {
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

	if !sub.SellerID().IsEqual(cmd.SellerID()) {
		return ErrSellerMismatch
	}

	if err = sub.Accept(time.Now().UTC()); err != nil {
		return err
	}

	if err = subOrderRepo.Transition(ctx, sub, suborder.Pending); err != nil {
		return err
	}

	return uow.Commit(ctx)
}
