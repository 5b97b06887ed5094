package commands

import (
	"context"
	"time"

	"marketplace/internal/core/domain/model/payment"
	"marketplace/internal/core/domain/model/suborder"
)

// RejectSubOrderCommandHandler handles a seller declining a pending suborder.
// Rejection cancels the suborder and refunds its escrow payment to the buyer
// in the same transaction; money is never left stranded in escrow for a
// suborder that will never be fulfilled.
type RejectSubOrderCommandHandler struct {
	uowFactory FulfillmentUoWFactory
}

// NewRejectSubOrderCommandHandler creates a handler for suborder rejection.
func NewRejectSubOrderCommandHandler(uowFactory FulfillmentUoWFactory) RejectSubOrderCommandHandler {
	return RejectSubOrderCommandHandler{
		uowFactory: uowFactory,
	}
}

// Handle processes the rejection command.
func (h *RejectSubOrderCommandHandler) Handle(ctx context.Context, cmd RejectSubOrderCommand) error {
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

	now := time.Now().UTC()
	if err = sub.Reject(now); err != nil {
		return err
	}

	if err = subOrderRepo.Transition(ctx, sub, suborder.Pending); err != nil {
		return err
	}

	paymentRepo := uow.PaymentRepository()
	pay, err := paymentRepo.GetBySubOrder(ctx, sub.ID())
	if err != nil {
		return err
	}

	if err = pay.Refund(payment.ActorSystem, "suborder rejected by seller", now); err != nil {
		return err
	}

	if err = paymentRepo.Transition(ctx, pay, payment.Escrow); err != nil {
		return err
	}

	return uow.Commit(ctx)
}
