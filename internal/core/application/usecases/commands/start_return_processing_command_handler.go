package commands

import (
	"context"
	"time"

	"marketplace/internal/core/domain/model/returns"
)

// StartReturnProcessingCommandHandler moves an approved return claim into the
// processing status while the goods travel back to the seller.
type StartReturnProcessingCommandHandler struct {
	uowFactory ReturnUoWFactory
}

// NewStartReturnProcessingCommandHandler creates a handler for the processing step.
func NewStartReturnProcessingCommandHandler(uowFactory ReturnUoWFactory) StartReturnProcessingCommandHandler {
	return StartReturnProcessingCommandHandler{
		uowFactory: uowFactory,
	}
}

// Handle processes the command.
func (h *StartReturnProcessingCommandHandler) Handle(ctx context.Context, cmd StartReturnProcessingCommand) error {
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

	if err = request.StartProcessing(cmd.ActorType(), cmd.Note(), time.Now().UTC()); err != nil {
		return err
	}

	if err = returnRepo.Transition(ctx, request, returns.Approved); err != nil {
		return err
	}

	return uow.Commit(ctx)
}
