package queries_test

import (
	"context"
	"testing"
	"time"

	"marketplace/internal/adapters/out/postgres/returnrepo"
	"marketplace/internal/core/application/usecases/queries"
	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/core/domain/model/order"
	"marketplace/internal/core/domain/model/returns"

	"github.com/stretchr/testify/suite"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
	postgresdriver "gorm.io/driver/postgres"
	"gorm.io/gorm"
)

type GetReturnRequestsQueryHandlerTestSuite struct {
	suite.Suite
	container *postgres.PostgresContainer
	db        *gorm.DB
	handler   queries.GetReturnRequestsQueryHandler
}

func (suite *GetReturnRequestsQueryHandlerTestSuite) SetupSuite() {
	ctx := context.Background()

	container, err := postgres.Run(ctx,
		"postgres:15-alpine",
		postgres.WithDatabase("testdb"),
		postgres.WithUsername("testuser"),
		postgres.WithPassword("testpass"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(30*time.Second),
		),
	)
	suite.Require().NoError(err)
	suite.container = container

	dsn, err := container.ConnectionString(ctx, "sslmode=disable")
	suite.Require().NoError(err)

	db, err := gorm.Open(postgresdriver.Open(dsn), &gorm.Config{})
	suite.Require().NoError(err)
	suite.db = db

	err = db.AutoMigrate(
		&returnrepo.RequestDTO{}, &returnrepo.ItemDTO{},
		&returnrepo.HistoryDTO{}, &returnrepo.SettingsDTO{},
	)
	suite.Require().NoError(err)

	suite.handler = queries.NewGetReturnRequestsQueryHandler(db)
}

func (suite *GetReturnRequestsQueryHandlerTestSuite) TearDownSuite() {
	if suite.container != nil {
		err := suite.container.Terminate(context.Background())
		suite.Require().NoError(err)
	}
}

func (suite *GetReturnRequestsQueryHandlerTestSuite) SetupTest() {
	err := suite.db.Exec("TRUNCATE TABLE return_requests, return_items, return_history").Error
	suite.Require().NoError(err)
}

func (suite *GetReturnRequestsQueryHandlerTestSuite) TestHandle_EmptyDatabase_ReturnsEmptySlice() {
	query, err := queries.NewGetReturnRequestsQuery(kernel.NewUUID())
	suite.Require().NoError(err)

	result, err := suite.handler.Handle(context.Background(), query)

	suite.Require().NoError(err)
	suite.NotNil(result)
	suite.Empty(result)
}

func (suite *GetReturnRequestsQueryHandlerTestSuite) TestHandle_ReturnsOnlySellersClaimsNewestFirst() {
	sellerID := kernel.NewUUID()
	otherSellerID := kernel.NewUUID()

	older := suite.createClaim(sellerID, time.Now().UTC().Add(-48*time.Hour))
	newer := suite.createClaim(sellerID, time.Now().UTC().Add(-1*time.Hour))
	foreign := suite.createClaim(otherSellerID, time.Now().UTC())
	suite.saveClaims(older, newer, foreign)

	query, err := queries.NewGetReturnRequestsQuery(sellerID)
	suite.Require().NoError(err)

	result, err := suite.handler.Handle(context.Background(), query)

	suite.Require().NoError(err)
	suite.Require().Len(result, 2)
	suite.Equal(newer.ID(), result[0].ID)
	suite.Equal(older.ID(), result[1].ID)
	suite.Equal(older.SubOrderID(), result[1].SubOrderID)
	suite.Equal(older.CustomerID(), result[1].CustomerID)
	suite.Equal("Pending", result[0].Status)
	suite.Equal("damaged on arrival", result[0].Reason)
	suite.Equal(int64(30000), result[0].RefundAmount)
}

func (suite *GetReturnRequestsQueryHandlerTestSuite) TestHandle_ByCustomer_ReturnsOnlyCustomersClaims() {
	sellerID := kernel.NewUUID()

	mine := suite.createClaim(sellerID, time.Now().UTC().Add(-1*time.Hour))
	other := suite.createClaim(sellerID, time.Now().UTC())
	suite.saveClaims(mine, other)

	query, err := queries.NewGetReturnRequestsQueryByCustomer(mine.CustomerID())
	suite.Require().NoError(err)

	result, err := suite.handler.Handle(context.Background(), query)

	suite.Require().NoError(err)
	suite.Require().Len(result, 1)
	suite.Equal(mine.ID(), result[0].ID)
	suite.Equal(mine.CustomerID(), result[0].CustomerID)
}

func (suite *GetReturnRequestsQueryHandlerTestSuite) TestHandle_InvalidQuery_ReturnsError() {
	invalidQuery := queries.GetReturnRequestsQuery{}

	result, err := suite.handler.Handle(context.Background(), invalidQuery)

	suite.Require().Error(err)
	suite.Nil(result)
	suite.Contains(err.Error(), "must be created via NewGetReturnRequestsQuery constructor")
}

func (suite *GetReturnRequestsQueryHandlerTestSuite) createClaim(
	sellerID kernel.UUID, requestedAt time.Time,
) *returns.Request {
	price, _ := kernel.NewMoney(15000)
	item, err := order.NewLineItem("sku-widget", sellerID, 2, price)
	suite.Require().NoError(err)

	refund, _ := kernel.NewMoney(30000)

	request, err := returns.NewRequest(
		kernel.NewUUID(), kernel.NewUUID(), kernel.NewUUID(), kernel.NewUUID(), sellerID,
		"damaged on arrival", "box arrived crushed",
		[]string{"photo-1.jpg"},
		[]order.LineItem{item}, refund, requestedAt,
	)
	suite.Require().NoError(err)

	return request
}

func (suite *GetReturnRequestsQueryHandlerTestSuite) saveClaims(claims ...*returns.Request) {
	repo := returnrepo.NewGormReturnRepository(suite.db, &mockAggregateTracker{})
	for _, claim := range claims {
		err := repo.Add(context.Background(), claim)
		suite.Require().NoError(err)
	}
}

func TestGetReturnRequestsQueryHandlerTestSuite(t *testing.T) {
	suite.Run(t, new(GetReturnRequestsQueryHandlerTestSuite))
}
