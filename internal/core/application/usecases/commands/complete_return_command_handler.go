package commands

import (
	"context"
	"time"
)

// CompleteReturnCommandHandler handles closing out an approved return claim.
// The claim may complete straight from approved or after an explicit
// processing step; either way the expected prior status guards the write.
type CompleteReturnCommandHandler struct {
	uowFactory ReturnUoWFactory
}

// NewCompleteReturnCommandHandler creates a handler for return completion.
func NewCompleteReturnCommandHandler(uowFactory ReturnUoWFactory) CompleteReturnCommandHandler {
	return CompleteReturnCommandHandler{
		uowFactory: uowFactory,
	}
}

// Handle processes the completion command.
func (h *CompleteReturnCommandHandler) Handle(ctx context.Context, cmd CompleteReturnCommand) error {
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

	expected := request.Status()
	if err = request.Complete(cmd.ActorType(), cmd.Note(), time.Now().UTC()); err != nil {
		return err
	}

	if err = returnRepo.Transition(ctx, request, expected); err != nil {
		return err
	}

	return uow.Commit(ctx)
}
