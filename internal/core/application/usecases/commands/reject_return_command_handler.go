package commands

import (
	"context"
	"time"

	"marketplace/internal/core/domain/model/returns"
)

// RejectReturnCommandHandler handles rejection of a pending return claim.
// Rejection resolves the claim without touching the suborder or its payment.
type RejectReturnCommandHandler struct {
	uowFactory ReturnUoWFactory
}

// NewRejectReturnCommandHandler creates a handler for return rejection.
func NewRejectReturnCommandHandler(uowFactory ReturnUoWFactory) RejectReturnCommandHandler {
	return RejectReturnCommandHandler{
		uowFactory: uowFactory,
	}
}

// Handle processes the rejection command.
func (h *RejectReturnCommandHandler) Handle(ctx context.Context, cmd RejectReturnCommand) error {
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

	if err = request.Reject(cmd.ActorType(), cmd.Note(), time.Now().UTC()); err != nil {
		return err
	}

	if err = returnRepo.Transition(ctx, request, returns.Pending); err != nil {
		return err
	}

	return uow.Commit(ctx)
}
