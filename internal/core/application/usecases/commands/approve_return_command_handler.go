package commands

import (
	"context"
	"time"

	"marketplace/internal/core/domain/model/payment"
	"marketplace/internal/core/domain/model/returns"
	"marketplace/internal/core/domain/model/suborder"
)

// ApproveReturnCommandHandler handles approval of a pending return claim.
// Approval refunds the suborder's payment and marks the suborder returned in
// the same transaction, so a claim can never be approved without the buyer
// getting their money back.
type ApproveReturnCommandHandler struct {
	uowFactory ReturnUoWFactory
}

// NewApproveReturnCommandHandler creates a handler for return approval.
func NewApproveReturnCommandHandler(uowFactory ReturnUoWFactory) ApproveReturnCommandHandler {
	return ApproveReturnCommandHandler{
		uowFactory: uowFactory,
	}
}

// Handle processes the approval command.
func (h *ApproveReturnCommandHandler) Handle(ctx context.Context, cmd ApproveReturnCommand) error {
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

	returnRepo := uow.ReturnRepository()
	request, err := returnRepo.Get(ctx, cmd.RequestID())
	if err != nil {
		return err
	}

	now := time.Now().UTC()
	if err = request.Approve(cmd.ActorType(), cmd.Note(), now); err != nil {
		return err
	}

	if err = returnRepo.Transition(ctx, request, returns.Pending); err != nil {
		return err
	}

	subOrderRepo := uow.SubOrderRepository()
	sub, err := subOrderRepo.Get(ctx, request.SubOrderID())
	if err != nil {
		return err
	}

	if err = sub.MarkReturned(now); err != nil {
		return err
	}

	if err = subOrderRepo.Transition(ctx, sub, suborder.Delivered); err != nil {
		return err
	}

	paymentRepo := uow.PaymentRepository()
	pay, err := paymentRepo.GetBySubOrder(ctx, sub.ID())
	if err != nil {
		return err
	}

	// The escrow may already have been released to the seller; a refund is
	// still recorded so the settlement history shows the clawback.
	expected := pay.Status()
	if err = pay.Refund(payment.ActorSystem, "return approved", now); err != nil {
		return err
	}

	if err = paymentRepo.Transition(ctx, pay, expected); err != nil {
		return err
	}

	return uow.Commit(ctx)
}
