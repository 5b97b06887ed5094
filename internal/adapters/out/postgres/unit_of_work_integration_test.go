package postgres_test

import (
	"context"
	"testing"
	"time"

	postgresadapter "marketplace/internal/adapters/out/postgres"
	"marketplace/internal/adapters/out/postgres/orderrepo"
	"marketplace/internal/adapters/out/postgres/paymentrepo"
	"marketplace/internal/adapters/out/postgres/returnrepo"
	"marketplace/internal/adapters/out/postgres/suborderrepo"
	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/core/domain/model/order"
	"marketplace/internal/core/domain/model/payment"
	"marketplace/internal/core/domain/model/suborder"
	"marketplace/internal/core/ports"
	"marketplace/internal/pkg/errs"

	"github.com/stretchr/testify/suite"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
	postgresdriver "gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// UnitOfWorkIntegrationTestSuite verifies the GORM-based Unit of Work against
// real PostgreSQL: transaction lifecycle, atomicity across the order,
// suborder, and payment repositories, and rollback behavior.
type UnitOfWorkIntegrationTestSuite struct {
	suite.Suite
	container *postgres.PostgresContainer
	db        *gorm.DB
	factory   ports.UnitOfWorkFactory
}

func (suite *UnitOfWorkIntegrationTestSuite) SetupSuite() {
	ctx := context.Background()

	container, err := postgres.Run(ctx,
		"postgres:15-alpine",
		postgres.WithDatabase("testdb"),
		postgres.WithUsername("testuser"),
		postgres.WithPassword("testpass"),
		testcontainers.WithWaitStrategy(wait.ForLog("database system is ready to accept connections").
			WithOccurrence(2).
			WithStartupTimeout(30*time.Second)),
	)
	suite.Require().NoError(err)
	suite.container = container

	dsn, err := container.ConnectionString(ctx, "sslmode=disable")
	suite.Require().NoError(err)

	db, err := gorm.Open(postgresdriver.Open(dsn), &gorm.Config{})
	suite.Require().NoError(err)
	suite.db = db

	err = db.AutoMigrate(
		&orderrepo.OrderDTO{}, &orderrepo.ItemDTO{},
		&suborderrepo.SubOrderDTO{}, &suborderrepo.ItemDTO{},
		&paymentrepo.PaymentDTO{}, &paymentrepo.HistoryDTO{},
		&returnrepo.RequestDTO{}, &returnrepo.ItemDTO{},
		&returnrepo.HistoryDTO{}, &returnrepo.SettingsDTO{},
	)
	suite.Require().NoError(err)

	suite.factory = postgresadapter.NewGormUnitOfWorkFactory(db)
}

func (suite *UnitOfWorkIntegrationTestSuite) SetupTest() {
	err := suite.db.Exec("TRUNCATE TABLE orders, order_items, suborders, suborder_items, payments, payment_history, return_requests, return_items, return_history, return_settings").Error
	suite.Require().NoError(err)
}

func (suite *UnitOfWorkIntegrationTestSuite) TearDownSuite() {
	if suite.container != nil {
		err := suite.container.Terminate(context.Background())
		suite.Require().NoError(err)
	}
}

func (suite *UnitOfWorkIntegrationTestSuite) TestUnitOfWorkFactory_Create() {
	uow1 := suite.factory.Create()
	uow2 := suite.factory.Create()

	suite.NotSame(uow1, uow2, "Factory should create separate instances")

	suite.NotNil(uow1.OrderRepository())
	suite.NotNil(uow1.SubOrderRepository())
	suite.NotNil(uow2.PaymentRepository())
	suite.NotNil(uow2.ReturnRepository())
}

func (suite *UnitOfWorkIntegrationTestSuite) TestUnitOfWork_TransactionLifecycle() {
	ctx := context.Background()
	uow := suite.factory.Create()

	err := uow.Begin(ctx)
	suite.Require().NoError(err, "Should begin transaction successfully")

	err = uow.Begin(ctx)
	suite.Require().NoError(err, "Multiple begin calls should be safe")

	err = uow.Commit(ctx)
	suite.Require().NoError(err, "Should commit transaction successfully")

	err = uow.Begin(ctx)
	suite.Require().NoError(err)

	err = uow.Rollback(ctx)
	suite.Require().NoError(err, "Should rollback transaction successfully")
}

func (suite *UnitOfWorkIntegrationTestSuite) TestUnitOfWork_TransactionErrors() {
	ctx := context.Background()
	uow := suite.factory.Create()

	err := uow.Commit(ctx)
	suite.Require().Error(err, "Should error when committing without active transaction")

	err = uow.Rollback(ctx)
	suite.Require().Error(err, "Should error when rolling back without active transaction")
}

// TestUnitOfWork_CheckoutTransaction mirrors the decomposition write set: one
// order, its suborders, and their escrow payments committed atomically.
func (suite *UnitOfWorkIntegrationTestSuite) TestUnitOfWork_CheckoutTransaction() {
	ctx := context.Background()
	uow := suite.factory.Create()

	testOrder := suite.createTestOrder()
	sub := suite.createTestSubOrder(testOrder)
	pay := suite.createTestPayment(sub)

	suite.Require().NoError(uow.Begin(ctx))

	suite.Require().NoError(uow.OrderRepository().Add(ctx, testOrder))
	suite.Require().NoError(uow.SubOrderRepository().Add(ctx, sub))
	suite.Require().NoError(uow.PaymentRepository().Add(ctx, pay))

	// All three are visible inside the transaction.
	retrievedSub, err := uow.SubOrderRepository().Get(ctx, sub.ID())
	suite.Require().NoError(err)
	suite.Equal(sub.ID(), retrievedSub.ID())

	suite.Require().NoError(uow.Commit(ctx))

	// And persist after commit, through a fresh unit of work.
	newUow := suite.factory.Create()

	retrievedOrder, err := newUow.OrderRepository().Get(ctx, testOrder.ID())
	suite.Require().NoError(err)
	suite.Equal(testOrder.ID(), retrievedOrder.ID())

	retrievedPay, err := newUow.PaymentRepository().GetBySubOrder(ctx, sub.ID())
	suite.Require().NoError(err)
	suite.Equal(pay.ID(), retrievedPay.ID())
}

func (suite *UnitOfWorkIntegrationTestSuite) TestUnitOfWork_RollbackDiscardsWrites() {
	ctx := context.Background()
	uow := suite.factory.Create()

	testOrder := suite.createTestOrder()
	sub := suite.createTestSubOrder(testOrder)

	suite.Require().NoError(uow.Begin(ctx))
	suite.Require().NoError(uow.OrderRepository().Add(ctx, testOrder))
	suite.Require().NoError(uow.SubOrderRepository().Add(ctx, sub))
	suite.Require().NoError(uow.Rollback(ctx))

	newUow := suite.factory.Create()

	_, err := newUow.OrderRepository().Get(ctx, testOrder.ID())
	suite.Require().ErrorIs(err, errs.ErrObjectNotFound)

	_, err = newUow.SubOrderRepository().Get(ctx, sub.ID())
	suite.Require().ErrorIs(err, errs.ErrObjectNotFound)
}

// TestUnitOfWork_SettlementTransition verifies a CAS transition inside a
// transaction commits together with its history rows.
func (suite *UnitOfWorkIntegrationTestSuite) TestUnitOfWork_SettlementTransition() {
	ctx := context.Background()

	setup := suite.factory.Create()
	testOrder := suite.createTestOrder()
	sub := suite.createTestSubOrder(testOrder)
	pay := suite.createTestPayment(sub)

	suite.Require().NoError(setup.Begin(ctx))
	suite.Require().NoError(setup.OrderRepository().Add(ctx, testOrder))
	suite.Require().NoError(setup.SubOrderRepository().Add(ctx, sub))
	suite.Require().NoError(setup.PaymentRepository().Add(ctx, pay))
	suite.Require().NoError(setup.Commit(ctx))

	uow := suite.factory.Create()
	suite.Require().NoError(uow.Begin(ctx))

	loaded, err := uow.PaymentRepository().Get(ctx, pay.ID())
	suite.Require().NoError(err)

	released, err := loaded.Release(payment.ActorSystem, "released after delivery", time.Now().UTC())
	suite.Require().NoError(err)
	suite.True(released)

	suite.Require().NoError(uow.PaymentRepository().Transition(ctx, loaded, payment.Escrow))
	suite.Require().NoError(uow.Commit(ctx))

	verify := suite.factory.Create()
	stored, err := verify.PaymentRepository().Get(ctx, pay.ID())
	suite.Require().NoError(err)
	suite.Equal(payment.Released, stored.Status())
	suite.Len(stored.History(), 2)
}

func (suite *UnitOfWorkIntegrationTestSuite) createTestOrder() *order.Order {
	sellerID := kernel.NewUUID()

	customer, err := order.NewCustomer(kernel.NewUUID(), "Alex Petrov", "alex@example.com")
	suite.Require().NoError(err)

	address, err := order.NewAddress("12 Main St", "Springfield", "62704", "IL", "US")
	suite.Require().NoError(err)

	price, _ := kernel.NewMoney(25000)
	item, err := order.NewLineItem("sku-widget", sellerID, 2, price)
	suite.Require().NoError(err)

	shipping, _ := kernel.NewMoney(5000)
	total, _ := kernel.NewMoney(55000)

	testOrder, err := order.NewOrder(
		kernel.NewUUID(), customer, address,
		[]order.LineItem{item}, shipping, total, time.Now().UTC(),
	)
	suite.Require().NoError(err)

	return testOrder
}

func (suite *UnitOfWorkIntegrationTestSuite) createTestSubOrder(parent *order.Order) *suborder.SubOrder {
	items := parent.Items()
	sellerID := items[0].SellerID()

	subtotal, _ := kernel.NewMoney(50000)
	shipping, _ := kernel.NewMoney(5000)

	sub, err := suborder.NewSubOrder(
		kernel.NewUUID(), parent.ID(), sellerID, items,
		subtotal, shipping, kernel.Zero(), time.Now().UTC(),
	)
	suite.Require().NoError(err)

	return sub
}

func (suite *UnitOfWorkIntegrationTestSuite) createTestPayment(sub *suborder.SubOrder) *payment.Payment {
	pay, err := payment.NewPayment(
		kernel.NewUUID(), sub.OrderID(), sub.ID(), sub.SellerID(), sub.Total(), time.Now().UTC(),
	)
	suite.Require().NoError(err)

	return pay
}

func TestUnitOfWorkIntegrationTestSuite(t *testing.T) {
	suite.Run(t, new(UnitOfWorkIntegrationTestSuite))
}
