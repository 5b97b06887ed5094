package commands

import (
	"context"
	"log/slog"
	"time"

	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/core/domain/model/order"
	"marketplace/internal/core/domain/model/suborder"
	"marketplace/internal/core/domain/services"
)

// ApplyCarrierUpdateCommandHandler normalizes a raw carrier signal and applies
// it to the target suborder. Unrecognized statuses are logged and dropped so a
// carrier vocabulary change never fails the webhook. When the signal delivers
// the last outstanding suborder, the parent order is rolled up to delivered in
// the same transaction.
type ApplyCarrierUpdateCommandHandler struct {
	uowFactory FulfillmentUoWFactory
	normalizer services.StatusNormalizer
	logger     *slog.Logger
}

// NewApplyCarrierUpdateCommandHandler creates a handler for carrier signals.
func NewApplyCarrierUpdateCommandHandler(
	uowFactory FulfillmentUoWFactory,
	normalizer services.StatusNormalizer,
	logger *slog.Logger,
) ApplyCarrierUpdateCommandHandler {
	return ApplyCarrierUpdateCommandHandler{
		uowFactory: uowFactory,
		normalizer: normalizer,
		logger:     logger,
	}
}

// Handle processes the carrier signal command.
func (h *ApplyCarrierUpdateCommandHandler) Handle(ctx context.Context, cmd ApplyCarrierUpdateCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	signal := h.normalizer.Normalize(cmd.RawStatus(), cmd.RawNDR())
	if !signal.Recognized {
		h.logger.WarnContext(ctx, "dropping unrecognized carrier status",
			slog.String("suborder_id", cmd.SubOrderID().String()),
			slog.String("raw_status", cmd.RawStatus()),
		)

		return nil
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
	changed, err := sub.ApplyCarrierUpdate(signal.Target, cmd.RawStatus(), signal.NDRReason, now)
	if err != nil {
		return err
	}

	if err = subOrderRepo.Transition(ctx, sub, expected); err != nil {
		return err
	}

	if changed && sub.Status() == suborder.Delivered {
		if err = h.rollUpOrder(ctx, uow, sub.OrderID()); err != nil {
			return err
		}
	}

	return uow.Commit(ctx)
}

// rollUpOrder marks the parent order delivered once every suborder has
// reached the delivered status. A cancelled or returned suborder keeps the
// order out of the delivered state permanently.
func (h *ApplyCarrierUpdateCommandHandler) rollUpOrder(
	ctx context.Context, uow FulfillmentUoW, orderID kernel.UUID,
) error {
	undelivered, err := uow.SubOrderRepository().CountUndelivered(ctx, orderID)
	if err != nil {
		return err
	}

	if undelivered > 0 {
		return nil
	}

	orderRepo := uow.OrderRepository()
	ord, err := orderRepo.Get(ctx, orderID)
	if err != nil {
		return err
	}

	if ord.Status() != order.Placed {
		return nil
	}

	if err = ord.MarkDelivered(); err != nil {
		return err
	}

	return orderRepo.TransitionStatus(ctx, ord, order.Placed)
}
