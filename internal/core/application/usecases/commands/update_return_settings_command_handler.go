package commands

import (
	"context"
)

// UpdateReturnSettingsCommandHandler replaces the global return policy.
type UpdateReturnSettingsCommandHandler struct {
	uowFactory ReturnUoWFactory
}

// NewUpdateReturnSettingsCommandHandler creates a handler for policy updates.
func NewUpdateReturnSettingsCommandHandler(uowFactory ReturnUoWFactory) UpdateReturnSettingsCommandHandler {
	return UpdateReturnSettingsCommandHandler{
		uowFactory: uowFactory,
	}
}

// Handle processes the settings update command.
func (h *UpdateReturnSettingsCommandHandler) Handle(ctx context.Context, cmd UpdateReturnSettingsCommand) error {
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

	if err := uow.ReturnRepository().SaveSettings(ctx, cmd.Settings()); err != nil {
		return err
	}

	return uow.Commit(ctx)
}
