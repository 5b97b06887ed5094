package commands

import (
	"context"
	"errors"
	"time"

	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/core/domain/model/returns"
	"marketplace/internal/core/domain/model/suborder"
	"marketplace/internal/pkg/errs"
)

// ErrReturnsDisabled is returned when the return policy is switched off.
var ErrReturnsDisabled = errors.New("returns are disabled")

// ErrReturnWindowClosed is returned when the return window for a delivered
// suborder has expired.
var ErrReturnWindowClosed = errors.New("return window is closed")

// ErrReturnAlreadyOpen is returned when a suborder already has an open
// return claim against it.
var ErrReturnAlreadyOpen = errors.New("suborder already has an open return request")

// CreateReturnRequestCommandHandler handles a customer opening a return
// claim. Eligibility requires a delivered suborder, returns enabled, and the
// delivery inside the configured return window. A suborder carries at most
// one open claim at a time.
type CreateReturnRequestCommandHandler struct {
	uowFactory ReturnUoWFactory
}

// NewCreateReturnRequestCommandHandler creates a handler for opening return claims.
func NewCreateReturnRequestCommandHandler(uowFactory ReturnUoWFactory) CreateReturnRequestCommandHandler {
	return CreateReturnRequestCommandHandler{
		uowFactory: uowFactory,
	}
}

// Handle processes the command and returns the new claim's ID.
func (h *CreateReturnRequestCommandHandler) Handle(
	ctx context.Context, cmd CreateReturnRequestCommand,
) (kernel.UUID, error) {
	if err := cmd.Validate(); err != nil {
		return kernel.UUID{}, err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return kernel.UUID{}, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	sub, err := uow.SubOrderRepository().Get(ctx, cmd.SubOrderID())
	if err != nil {
		return kernel.UUID{}, err
	}

	if sub.Status() != suborder.Delivered {
		return kernel.UUID{}, ErrSubOrderIsNotDelivered
	}

	returnRepo := uow.ReturnRepository()

	settings, err := returnRepo.GetSettings(ctx)
	if err != nil {
		return kernel.UUID{}, err
	}

	if !settings.Enabled() {
		return kernel.UUID{}, ErrReturnsDisabled
	}

	now := time.Now().UTC()
	if !settings.WindowOpen(*sub.DeliveredAt(), now) {
		return kernel.UUID{}, ErrReturnWindowClosed
	}

	if _, err = returnRepo.GetBySubOrder(ctx, sub.ID()); err == nil {
		return kernel.UUID{}, ErrReturnAlreadyOpen
	} else if !errors.Is(err, errs.ErrObjectNotFound) {
		return kernel.UUID{}, err
	}

	request, err := returns.NewRequest(
		kernel.NewUUID(),
		sub.OrderID(),
		sub.ID(),
		cmd.CustomerID(),
		sub.SellerID(),
		cmd.Reason(),
		cmd.Description(),
		cmd.Evidence(),
		sub.Items(),
		sub.Total(),
		now,
	)
	if err != nil {
		return kernel.UUID{}, err
	}

	if err = returnRepo.Add(ctx, request); err != nil {
		return kernel.UUID{}, err
	}

	if err = uow.Commit(ctx); err != nil {
		return kernel.UUID{}, err
	}

	return request.ID(), nil
}
