package commands

import (
	"context"
	"errors"
	"time"

	"marketplace/internal/core/domain/model/payment"
	"marketplace/internal/core/domain/model/suborder"
)

// ErrOrderIsNotPaid is returned when releasing escrow for an order whose
// payment was never confirmed.
var ErrOrderIsNotPaid = errors.New("order payment is not confirmed")

// ErrSubOrderIsNotDelivered is returned when releasing escrow for a suborder
// that has not reached the delivered status.
var ErrSubOrderIsNotDelivered = errors.New("suborder is not delivered")

// ReleasePaymentCommandHandler handles releasing an escrowed payment to its
// seller. Release is idempotent: a payment already released is returned
// unchanged and no new settlement occurs. A refunded payment can never be
// released, even with force.
type ReleasePaymentCommandHandler struct {
	uowFactory SettlementUoWFactory
}

// NewReleasePaymentCommandHandler creates a handler for escrow release.
func NewReleasePaymentCommandHandler(uowFactory SettlementUoWFactory) ReleasePaymentCommandHandler {
	return ReleasePaymentCommandHandler{
		uowFactory: uowFactory,
	}
}

// Handle processes the release command and returns the payment in its
// post-release state.
func (h *ReleasePaymentCommandHandler) Handle(
	ctx context.Context, cmd ReleasePaymentCommand,
) (*payment.Payment, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	paymentRepo := uow.PaymentRepository()

	var (
		pay *payment.Payment
		err error
	)
	if cmd.BySubOrder() {
		pay, err = paymentRepo.GetBySubOrder(ctx, cmd.SubOrderID())
	} else {
		pay, err = paymentRepo.Get(ctx, cmd.PaymentID())
	}
	if err != nil {
		return nil, err
	}

	if pay.IsReleased() {
		return pay, nil
	}

	if !cmd.Force() {
		if err = h.checkPreconditions(ctx, uow, pay); err != nil {
			return nil, err
		}
	}

	released, err := pay.Release(cmd.ActorType(), cmd.Note(), time.Now().UTC())
	if err != nil {
		return nil, err
	}

	if !released {
		return pay, nil
	}

	if err = paymentRepo.Transition(ctx, pay, payment.Escrow); err != nil {
		return nil, err
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, err
	}

	return pay, nil
}

// checkPreconditions verifies the buyer paid the order and the suborder was
// delivered before money leaves escrow.
func (h *ReleasePaymentCommandHandler) checkPreconditions(
	ctx context.Context, uow SettlementUoW, pay *payment.Payment,
) error {
	ord, err := uow.OrderRepository().Get(ctx, pay.OrderID())
	if err != nil {
		return err
	}

	if !ord.IsPaid() {
		return ErrOrderIsNotPaid
	}

	sub, err := uow.SubOrderRepository().Get(ctx, pay.SubOrderID())
	if err != nil {
		return err
	}

	if sub.Status() != suborder.Delivered {
		return ErrSubOrderIsNotDelivered
	}

	return nil
}
