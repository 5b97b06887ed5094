package commands_test

import (
	"testing"
	"time"

	"marketplace/internal/core/application/usecases/commands"
	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/core/domain/model/payment"
	"marketplace/internal/core/domain/model/suborder"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func restorePaymentInStatus(t *testing.T, sub *suborder.SubOrder, status payment.Status) *payment.Payment {
	t.Helper()

	createdAt := time.Now().UTC().Add(-96 * time.Hour)
	settledAt := createdAt.Add(72 * time.Hour)

	var releasedAt, refundedAt *time.Time
	switch status {
	case payment.Released:
		releasedAt = &settledAt
	case payment.Refunded:
		refundedAt = &settledAt
	}

	pay, err := payment.RestorePayment(
		kernel.NewUUID(),
		sub.OrderID(),
		sub.ID(),
		sub.SellerID(),
		sub.Total(),
		status,
		releasedAt,
		refundedAt,
		createdAt,
		[]payment.HistoryEntry{
			{Status: payment.Escrow, ActorType: payment.ActorSystem, Note: "escrowed at decomposition", At: createdAt},
		},
	)
	require.NoError(t, err)

	return pay
}

func TestReleasePaymentCommandHandler_Handle_AfterDelivery(t *testing.T) {
	ctx := t.Context()

	sellerID := kernel.NewUUID()
	sub := makeSubOrderInStatus(t, sellerID, suborder.Delivered)
	ord := makePaidOrder(t, sellerID)
	pay := makeEscrowPayment(t, sub)

	cmd, err := commands.NewReleasePaymentCommand(pay.ID(), payment.ActorAdmin, "settled after delivery", false)
	require.NoError(t, err)

	paymentRepo := new(MockPaymentRepository)
	subOrderRepo := new(MockSubOrderRepository)
	orderRepo := new(MockOrderRepository)
	uow := new(MockSettlementUoW)

	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("PaymentRepository").Return(paymentRepo).Once(),
		paymentRepo.On("Get", ctx, pay.ID()).Return(pay, nil).Once(),
		uow.On("OrderRepository").Return(orderRepo).Once(),
		orderRepo.On("Get", ctx, pay.OrderID()).Return(ord, nil).Once(),
		uow.On("SubOrderRepository").Return(subOrderRepo).Once(),
		subOrderRepo.On("Get", ctx, pay.SubOrderID()).Return(sub, nil).Once(),
		paymentRepo.On("Transition", ctx, pay, payment.Escrow).Return(nil).Once(),
		uow.On("Commit", ctx).Return(nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockSettlementUoWFactory)
	factory.On("Create").Return(uow).Once()

	handler := commands.NewReleasePaymentCommandHandler(factory)
	released, err := handler.Handle(ctx, cmd)

	require.NoError(t, err)
	assert.Equal(t, payment.Released, released.Status())
	assert.NotNil(t, released.ReleasedAt())
	paymentRepo.AssertExpectations(t)
	uow.AssertExpectations(t)
	factory.AssertExpectations(t)
}

func TestReleasePaymentCommandHandler_Handle_BeforeDeliveryRejected(t *testing.T) {
	ctx := t.Context()

	sellerID := kernel.NewUUID()
	sub := makeSubOrderInStatus(t, sellerID, suborder.Shipped)
	ord := makePaidOrder(t, sellerID)
	pay := makeEscrowPayment(t, sub)

	cmd, err := commands.NewReleasePaymentCommand(pay.ID(), payment.ActorAdmin, "", false)
	require.NoError(t, err)

	paymentRepo := new(MockPaymentRepository)
	subOrderRepo := new(MockSubOrderRepository)
	orderRepo := new(MockOrderRepository)
	uow := new(MockSettlementUoW)

	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("PaymentRepository").Return(paymentRepo).Once(),
		paymentRepo.On("Get", ctx, pay.ID()).Return(pay, nil).Once(),
		uow.On("OrderRepository").Return(orderRepo).Once(),
		orderRepo.On("Get", ctx, pay.OrderID()).Return(ord, nil).Once(),
		uow.On("SubOrderRepository").Return(subOrderRepo).Once(),
		subOrderRepo.On("Get", ctx, pay.SubOrderID()).Return(sub, nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockSettlementUoWFactory)
	factory.On("Create").Return(uow).Once()

	handler := commands.NewReleasePaymentCommandHandler(factory)
	_, err = handler.Handle(ctx, cmd)

	require.Error(t, err)
	require.ErrorIs(t, err, commands.ErrSubOrderIsNotDelivered)
	assert.Equal(t, payment.Escrow, pay.Status())
	uow.AssertNotCalled(t, "Commit", ctx)
}

func TestReleasePaymentCommandHandler_Handle_ForceSkipsPreconditions(t *testing.T) {
	ctx := t.Context()

	sub := makeSubOrderInStatus(t, kernel.NewUUID(), suborder.Shipped)
	pay := makeEscrowPayment(t, sub)

	cmd, err := commands.NewReleasePaymentCommand(pay.ID(), payment.ActorAdmin, "manual settlement", true)
	require.NoError(t, err)

	paymentRepo := new(MockPaymentRepository)
	uow := new(MockSettlementUoW)

	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("PaymentRepository").Return(paymentRepo).Once(),
		paymentRepo.On("Get", ctx, pay.ID()).Return(pay, nil).Once(),
		paymentRepo.On("Transition", ctx, pay, payment.Escrow).Return(nil).Once(),
		uow.On("Commit", ctx).Return(nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockSettlementUoWFactory)
	factory.On("Create").Return(uow).Once()

	handler := commands.NewReleasePaymentCommandHandler(factory)
	released, err := handler.Handle(ctx, cmd)

	require.NoError(t, err)
	assert.Equal(t, payment.Released, released.Status())
	uow.AssertExpectations(t)
}

func TestReleasePaymentCommandHandler_Handle_DoubleReleaseIsNoOp(t *testing.T) {
	ctx := t.Context()

	sub := makeSubOrderInStatus(t, kernel.NewUUID(), suborder.Delivered)
	pay := restorePaymentInStatus(t, sub, payment.Released)
	firstReleasedAt := *pay.ReleasedAt()

	cmd, err := commands.NewReleasePaymentCommand(pay.ID(), payment.ActorAdmin, "", false)
	require.NoError(t, err)

	paymentRepo := new(MockPaymentRepository)
	uow := new(MockSettlementUoW)

	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("PaymentRepository").Return(paymentRepo).Once(),
		paymentRepo.On("Get", ctx, pay.ID()).Return(pay, nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockSettlementUoWFactory)
	factory.On("Create").Return(uow).Once()

	handler := commands.NewReleasePaymentCommandHandler(factory)
	released, err := handler.Handle(ctx, cmd)

	require.NoError(t, err)
	assert.Equal(t, payment.Released, released.Status())
	assert.Equal(t, firstReleasedAt, *released.ReleasedAt())
	paymentRepo.AssertNotCalled(t, "Transition", ctx, pay, payment.Escrow)
	uow.AssertNotCalled(t, "Commit", ctx)
}

func TestReleasePaymentCommandHandler_Handle_RefundedNeverReleases(t *testing.T) {
	ctx := t.Context()

	sub := makeSubOrderInStatus(t, kernel.NewUUID(), suborder.Delivered)
	pay := restorePaymentInStatus(t, sub, payment.Refunded)

	cmd, err := commands.NewReleasePaymentCommand(pay.ID(), payment.ActorAdmin, "", true)
	require.NoError(t, err)

	paymentRepo := new(MockPaymentRepository)
	uow := new(MockSettlementUoW)

	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("PaymentRepository").Return(paymentRepo).Once(),
		paymentRepo.On("Get", ctx, pay.ID()).Return(pay, nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockSettlementUoWFactory)
	factory.On("Create").Return(uow).Once()

	handler := commands.NewReleasePaymentCommandHandler(factory)
	_, err = handler.Handle(ctx, cmd)

	require.Error(t, err)
	require.ErrorIs(t, err, payment.ErrPaymentAlreadyRefunded)
	assert.Equal(t, payment.Refunded, pay.Status())
	uow.AssertNotCalled(t, "Commit", ctx)
}

func TestReleasePaymentCommandHandler_Handle_BySubOrder(t *testing.T) {
	ctx := t.Context()

	sellerID := kernel.NewUUID()
	sub := makeSubOrderInStatus(t, sellerID, suborder.Delivered)
	ord := makePaidOrder(t, sellerID)
	pay := makeEscrowPayment(t, sub)

	cmd, err := commands.NewReleasePaymentCommandBySubOrder(sub.ID(), payment.ActorSystem, "", false)
	require.NoError(t, err)

	paymentRepo := new(MockPaymentRepository)
	subOrderRepo := new(MockSubOrderRepository)
	orderRepo := new(MockOrderRepository)
	uow := new(MockSettlementUoW)

	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("PaymentRepository").Return(paymentRepo).Once(),
		paymentRepo.On("GetBySubOrder", ctx, sub.ID()).Return(pay, nil).Once(),
		uow.On("OrderRepository").Return(orderRepo).Once(),
		orderRepo.On("Get", ctx, pay.OrderID()).Return(ord, nil).Once(),
		uow.On("SubOrderRepository").Return(subOrderRepo).Once(),
		subOrderRepo.On("Get", ctx, pay.SubOrderID()).Return(sub, nil).Once(),
		paymentRepo.On("Transition", ctx, pay, payment.Escrow).Return(nil).Once(),
		uow.On("Commit", ctx).Return(nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockSettlementUoWFactory)
	factory.On("Create").Return(uow).Once()

	handler := commands.NewReleasePaymentCommandHandler(factory)
	released, err := handler.Handle(ctx, cmd)

	require.NoError(t, err)
	assert.Equal(t, payment.Released, released.Status())
	paymentRepo.AssertExpectations(t)
	uow.AssertExpectations(t)
}

func TestReleasePaymentCommandHandler_Handle_ValidationError(t *testing.T) {
	ctx := t.Context()
	cmd := commands.ReleasePaymentCommand{} // not constructed properly

	factory := new(MockSettlementUoWFactory)
	handler := commands.NewReleasePaymentCommandHandler(factory)
	_, err := handler.Handle(ctx, cmd)

	require.Error(t, err)
	require.ErrorIs(t, err, commands.ErrReleasePaymentCommandIsNotConstructed)
	factory.AssertNotCalled(t, "Create")
}
