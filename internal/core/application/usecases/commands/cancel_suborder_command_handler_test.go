package commands_test

import (
	"testing"

	"marketplace/internal/core/application/usecases/commands"
	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/core/domain/model/payment"
	"marketplace/internal/core/domain/model/suborder"
	"marketplace/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestCancelSubOrderCommandHandler_Handle_FromProcessing(t *testing.T) {
	ctx := t.Context()

	sellerID := kernel.NewUUID()
	sub := makeSubOrderInStatus(t, sellerID, suborder.Processing)
	pay := makeEscrowPayment(t, sub)

	cmd, err := commands.NewCancelSubOrderCommand(sub.ID(), "seller out of stock")
	require.NoError(t, err)

	subOrderRepo := new(MockSubOrderRepository)
	paymentRepo := new(MockPaymentRepository)
	uow := new(MockFulfillmentUoW)

	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("SubOrderRepository").Return(subOrderRepo).Once(),
		subOrderRepo.On("Get", ctx, sub.ID()).Return(sub, nil).Once(),
		subOrderRepo.On("Transition", ctx, sub, suborder.Processing).Return(nil).Once(),
		uow.On("PaymentRepository").Return(paymentRepo).Once(),
		paymentRepo.On("GetBySubOrder", ctx, sub.ID()).Return(pay, nil).Once(),
		paymentRepo.On("Transition", ctx, pay, payment.Escrow).Return(nil).Once(),
		uow.On("Commit", ctx).Return(nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockFulfillmentUoWFactory)
	factory.On("Create").Return(uow).Once()

	handler := commands.NewCancelSubOrderCommandHandler(factory)
	err = handler.Handle(ctx, cmd)

	require.NoError(t, err)
	assert.Equal(t, suborder.Cancelled, sub.Status())
	assert.Equal(t, payment.Refunded, pay.Status())
	subOrderRepo.AssertExpectations(t)
	paymentRepo.AssertExpectations(t)
	uow.AssertExpectations(t)
	factory.AssertExpectations(t)
}

func TestCancelSubOrderCommandHandler_Handle_AlreadyShipped(t *testing.T) {
	ctx := t.Context()

	sub := makeSubOrderInStatus(t, kernel.NewUUID(), suborder.Shipped)

	cmd, err := commands.NewCancelSubOrderCommand(sub.ID(), "")
	require.NoError(t, err)

	subOrderRepo := new(MockSubOrderRepository)
	uow := new(MockFulfillmentUoW)

	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("SubOrderRepository").Return(subOrderRepo).Once(),
		subOrderRepo.On("Get", ctx, sub.ID()).Return(sub, nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockFulfillmentUoWFactory)
	factory.On("Create").Return(uow).Once()

	handler := commands.NewCancelSubOrderCommandHandler(factory)
	err = handler.Handle(ctx, cmd)

	require.Error(t, err)
	require.ErrorIs(t, err, errs.ErrValueIsInvalid)
	assert.Equal(t, suborder.Shipped, sub.Status())
	uow.AssertNotCalled(t, "Commit", ctx)
}

func TestCancelSubOrderCommandHandler_Handle_ConcurrencyConflict(t *testing.T) {
	ctx := t.Context()

	sub := makePendingSubOrder(t, kernel.NewUUID())
	conflict := errs.NewConcurrencyConflictError("suborder", sub.ID().String())

	cmd, err := commands.NewCancelSubOrderCommand(sub.ID(), "")
	require.NoError(t, err)

	subOrderRepo := new(MockSubOrderRepository)
	uow := new(MockFulfillmentUoW)

	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("SubOrderRepository").Return(subOrderRepo).Once(),
		subOrderRepo.On("Get", ctx, sub.ID()).Return(sub, nil).Once(),
		subOrderRepo.On("Transition", ctx, sub, suborder.Pending).Return(conflict).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockFulfillmentUoWFactory)
	factory.On("Create").Return(uow).Once()

	handler := commands.NewCancelSubOrderCommandHandler(factory)
	err = handler.Handle(ctx, cmd)

	require.Error(t, err)
	require.ErrorIs(t, err, errs.ErrConcurrencyConflict)
	uow.AssertNotCalled(t, "Commit", ctx)
}

func TestCancelSubOrderCommandHandler_Handle_ValidationError(t *testing.T) {
	ctx := t.Context()
	cmd := commands.CancelSubOrderCommand{} // not constructed properly

	factory := new(MockFulfillmentUoWFactory)
	handler := commands.NewCancelSubOrderCommandHandler(factory)
	err := handler.Handle(ctx, cmd)

	require.Error(t, err)
	require.ErrorIs(t, err, commands.ErrCancelSubOrderCommandIsNotConstructed)
	factory.AssertNotCalled(t, "Create")
}
