package commands

import (
	"context"
	"time"

	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/core/domain/model/order"
	"marketplace/internal/core/domain/services"
)

// DecomposeOrderCommandHandler handles the business logic for checkout
// decomposition. The parent order, one suborder per seller, and one escrow
// payment per suborder are persisted in a single transaction, so a partial
// decomposition can never be observed.
type DecomposeOrderCommandHandler struct {
	uowFactory CheckoutUoWFactory
	decomposer services.OrderDecomposer
}

// NewDecomposeOrderCommandHandler creates a handler for checkout decomposition.
func NewDecomposeOrderCommandHandler(
	uowFactory CheckoutUoWFactory,
	decomposer services.OrderDecomposer,
) DecomposeOrderCommandHandler {
	return DecomposeOrderCommandHandler{
		uowFactory: uowFactory,
		decomposer: decomposer,
	}
}

// Handle processes the decomposition command and returns the created order's
// identifier. Returns services.ErrPaymentNotVerified without creating anything
// when the payment capture is unconfirmed.
func (h *DecomposeOrderCommandHandler) Handle(
	ctx context.Context,
	cmd DecomposeOrderCommand,
) (kernel.UUID, error) {
	if err := cmd.Validate(); err != nil {
		return kernel.UUID{}, err
	}

	customer, err := order.NewCustomer(cmd.CustomerID(), cmd.CustomerName(), cmd.CustomerEmail())
	if err != nil {
		return kernel.UUID{}, err
	}

	address, err := order.NewAddress(cmd.AddressLine1(), cmd.City(), cmd.PostalCode(),
		cmd.Region(), cmd.Country())
	if err != nil {
		return kernel.UUID{}, err
	}

	items := make([]order.LineItem, 0, len(cmd.Items()))
	for _, cartItem := range cmd.Items() {
		unitPrice, err := kernel.NewMoney(cartItem.UnitPrice)
		if err != nil {
			return kernel.UUID{}, err
		}

		item, err := order.NewLineItem(cartItem.ProductID, cartItem.SellerID,
			cartItem.Quantity, unitPrice)
		if err != nil {
			return kernel.UUID{}, err
		}

		items = append(items, item)
	}

	decomposition, err := h.decomposer.Decompose(customer, address, items,
		cmd.PaymentVerified(), time.Now().UTC())
	if err != nil {
		return kernel.UUID{}, err
	}

	uow := h.uowFactory.Create()
	if err = uow.Begin(ctx); err != nil {
		return kernel.UUID{}, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	if err = uow.OrderRepository().Add(ctx, decomposition.Order); err != nil {
		return kernel.UUID{}, err
	}

	subOrderRepo := uow.SubOrderRepository()
	for _, sub := range decomposition.SubOrders {
		if err = subOrderRepo.Add(ctx, sub); err != nil {
			return kernel.UUID{}, err
		}
	}

	paymentRepo := uow.PaymentRepository()
	for _, pay := range decomposition.Payments {
		if err = paymentRepo.Add(ctx, pay); err != nil {
			return kernel.UUID{}, err
		}
	}

	if err = uow.Commit(ctx); err != nil {
		return kernel.UUID{}, err
	}

	return decomposition.Order.ID(), nil
}
