package commands_test

import (
	"context"

	"marketplace/internal/core/application/usecases/commands"
	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/core/domain/model/order"
	"marketplace/internal/core/domain/model/payment"
	"marketplace/internal/core/domain/model/returns"
	"marketplace/internal/core/domain/model/suborder"
	"marketplace/internal/core/ports"

	"github.com/stretchr/testify/mock"
)

type MockOrderRepository struct{ mock.Mock }

func (m *MockOrderRepository) Add(ctx context.Context, o *order.Order) error {
	args := m.Called(ctx, o)
	return args.Error(0)
}

func (m *MockOrderRepository) Update(ctx context.Context, o *order.Order) error {
	args := m.Called(ctx, o)
	return args.Error(0)
}

func (m *MockOrderRepository) Get(ctx context.Context, id kernel.UUID) (*order.Order, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*order.Order), args.Error(1)
}

func (m *MockOrderRepository) TransitionStatus(ctx context.Context, o *order.Order, expected order.Status) error {
	args := m.Called(ctx, o, expected)
	return args.Error(0)
}

type MockSubOrderRepository struct{ mock.Mock }

func (m *MockSubOrderRepository) Add(ctx context.Context, s *suborder.SubOrder) error {
	args := m.Called(ctx, s)
	return args.Error(0)
}

func (m *MockSubOrderRepository) Get(ctx context.Context, id kernel.UUID) (*suborder.SubOrder, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*suborder.SubOrder), args.Error(1)
}

func (m *MockSubOrderRepository) GetAllByOrder(ctx context.Context, orderID kernel.UUID) ([]*suborder.SubOrder, error) {
	args := m.Called(ctx, orderID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*suborder.SubOrder), args.Error(1)
}

func (m *MockSubOrderRepository) GetAllBySeller(ctx context.Context, sellerID kernel.UUID) ([]*suborder.SubOrder, error) {
	args := m.Called(ctx, sellerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*suborder.SubOrder), args.Error(1)
}

func (m *MockSubOrderRepository) GetAllExternallyTracked(ctx context.Context) ([]*suborder.SubOrder, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*suborder.SubOrder), args.Error(1)
}

func (m *MockSubOrderRepository) Transition(ctx context.Context, s *suborder.SubOrder, expected suborder.Status) error {
	args := m.Called(ctx, s, expected)
	return args.Error(0)
}

func (m *MockSubOrderRepository) CountUndelivered(ctx context.Context, orderID kernel.UUID) (int64, error) {
	args := m.Called(ctx, orderID)
	return args.Get(0).(int64), args.Error(1)
}

type MockPaymentRepository struct{ mock.Mock }

func (m *MockPaymentRepository) Add(ctx context.Context, p *payment.Payment) error {
	args := m.Called(ctx, p)
	return args.Error(0)
}

func (m *MockPaymentRepository) Get(ctx context.Context, id kernel.UUID) (*payment.Payment, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*payment.Payment), args.Error(1)
}

func (m *MockPaymentRepository) GetBySubOrder(ctx context.Context, subOrderID kernel.UUID) (*payment.Payment, error) {
	args := m.Called(ctx, subOrderID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*payment.Payment), args.Error(1)
}

func (m *MockPaymentRepository) GetAllBySeller(ctx context.Context, sellerID kernel.UUID) ([]*payment.Payment, error) {
	args := m.Called(ctx, sellerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*payment.Payment), args.Error(1)
}

func (m *MockPaymentRepository) Transition(ctx context.Context, p *payment.Payment, expected payment.Status) error {
	args := m.Called(ctx, p, expected)
	return args.Error(0)
}

type MockReturnRepository struct{ mock.Mock }

func (m *MockReturnRepository) Add(ctx context.Context, r *returns.Request) error {
	args := m.Called(ctx, r)
	return args.Error(0)
}

func (m *MockReturnRepository) Get(ctx context.Context, id kernel.UUID) (*returns.Request, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*returns.Request), args.Error(1)
}

func (m *MockReturnRepository) GetBySubOrder(ctx context.Context, subOrderID kernel.UUID) (*returns.Request, error) {
	args := m.Called(ctx, subOrderID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*returns.Request), args.Error(1)
}

func (m *MockReturnRepository) GetAllBySeller(ctx context.Context, sellerID kernel.UUID) ([]*returns.Request, error) {
	args := m.Called(ctx, sellerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*returns.Request), args.Error(1)
}

func (m *MockReturnRepository) Transition(ctx context.Context, r *returns.Request, expected returns.Status) error {
	args := m.Called(ctx, r, expected)
	return args.Error(0)
}

func (m *MockReturnRepository) GetSettings(ctx context.Context) (returns.Settings, error) {
	args := m.Called(ctx)
	return args.Get(0).(returns.Settings), args.Error(1)
}

func (m *MockReturnRepository) SaveSettings(ctx context.Context, settings returns.Settings) error {
	args := m.Called(ctx, settings)
	return args.Error(0)
}

type MockCheckoutUoW struct{ mock.Mock }

func (m *MockCheckoutUoW) Begin(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockCheckoutUoW) Commit(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockCheckoutUoW) Rollback(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockCheckoutUoW) OrderRepository() ports.OrderRepository {
	args := m.Called()
	return args.Get(0).(ports.OrderRepository)
}

func (m *MockCheckoutUoW) SubOrderRepository() ports.SubOrderRepository {
	args := m.Called()
	return args.Get(0).(ports.SubOrderRepository)
}

func (m *MockCheckoutUoW) PaymentRepository() ports.PaymentRepository {
	args := m.Called()
	return args.Get(0).(ports.PaymentRepository)
}

type MockCheckoutUoWFactory struct{ mock.Mock }

func (m *MockCheckoutUoWFactory) Create() commands.CheckoutUoW {
	args := m.Called()
	return args.Get(0).(commands.CheckoutUoW)
}

type MockFulfillmentUoW struct{ mock.Mock }

func (m *MockFulfillmentUoW) Begin(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockFulfillmentUoW) Commit(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockFulfillmentUoW) Rollback(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockFulfillmentUoW) SubOrderRepository() ports.SubOrderRepository {
	args := m.Called()
	return args.Get(0).(ports.SubOrderRepository)
}

func (m *MockFulfillmentUoW) PaymentRepository() ports.PaymentRepository {
	args := m.Called()
	return args.Get(0).(ports.PaymentRepository)
}

func (m *MockFulfillmentUoW) OrderRepository() ports.OrderRepository {
	args := m.Called()
	return args.Get(0).(ports.OrderRepository)
}

type MockFulfillmentUoWFactory struct{ mock.Mock }

func (m *MockFulfillmentUoWFactory) Create() commands.FulfillmentUoW {
	args := m.Called()
	return args.Get(0).(commands.FulfillmentUoW)
}

type MockSettlementUoW struct{ mock.Mock }

func (m *MockSettlementUoW) Begin(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockSettlementUoW) Commit(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockSettlementUoW) Rollback(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockSettlementUoW) PaymentRepository() ports.PaymentRepository {
	args := m.Called()
	return args.Get(0).(ports.PaymentRepository)
}

func (m *MockSettlementUoW) SubOrderRepository() ports.SubOrderRepository {
	args := m.Called()
	return args.Get(0).(ports.SubOrderRepository)
}

func (m *MockSettlementUoW) OrderRepository() ports.OrderRepository {
	args := m.Called()
	return args.Get(0).(ports.OrderRepository)
}

type MockSettlementUoWFactory struct{ mock.Mock }

func (m *MockSettlementUoWFactory) Create() commands.SettlementUoW {
	args := m.Called()
	return args.Get(0).(commands.SettlementUoW)
}

type MockReturnUoW struct{ mock.Mock }

func (m *MockReturnUoW) Begin(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockReturnUoW) Commit(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockReturnUoW) Rollback(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockReturnUoW) ReturnRepository() ports.ReturnRepository {
	args := m.Called()
	return args.Get(0).(ports.ReturnRepository)
}

func (m *MockReturnUoW) PaymentRepository() ports.PaymentRepository {
	args := m.Called()
	return args.Get(0).(ports.PaymentRepository)
}

func (m *MockReturnUoW) SubOrderRepository() ports.SubOrderRepository {
	args := m.Called()
	return args.Get(0).(ports.SubOrderRepository)
}

type MockReturnUoWFactory struct{ mock.Mock }

func (m *MockReturnUoWFactory) Create() commands.ReturnUoW {
	args := m.Called()
	return args.Get(0).(commands.ReturnUoW)
}
