package queries

import (
	"errors"
	"time"

	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/pkg/guard"
)

var ErrGetOrderQueryIsNotConstructed = errors.New(
	"GetOrderQuery must be created via NewGetOrderQuery constructor",
)

// GetOrderQuery retrieves one order together with its suborders.
//
// Example:
//
//	query, err := NewGetOrderQuery(orderID)
//	if err != nil {
//	    return err
//	}
//
//	handler := NewGetOrderQueryHandler(db)
//	response, err := handler.Handle(ctx, query)
type GetOrderQuery struct {
	orderID kernel.UUID

	guard guard.ConstructorGuard
}

// NewGetOrderQuery creates a query for a single order's fulfillment view.
func NewGetOrderQuery(orderID kernel.UUID) (GetOrderQuery, error) {
	if err := orderID.Validate(); err != nil {
		return GetOrderQuery{}, err
	}

	return GetOrderQuery{
		orderID: orderID,
		guard:   guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the query was created through the constructor.
func (q GetOrderQuery) Validate() error {
	return q.guard.Validate(ErrGetOrderQueryIsNotConstructed)
}

// OrderID returns the order to fetch.
func (q GetOrderQuery) OrderID() kernel.UUID { return q.orderID }

// GetOrderQueryResponse is the read model for one order: the checkout facts
// plus every suborder's current lifecycle state.
type GetOrderQueryResponse struct {
	ID            kernel.UUID
	CustomerID    kernel.UUID
	CustomerName  string
	Shipping      int64
	Total         int64
	PaymentStatus string
	Status        string
	PlacedAt      time.Time
	SubOrders     []SubOrderSummary
}

// SubOrderSummary is one suborder row in an order read model. PaymentStatus
// reflects the escrow hold backing this suborder; empty when no hold exists.
type SubOrderSummary struct {
	ID            kernel.UUID
	SellerID      kernel.UUID
	Total         int64
	Status        string
	PaymentStatus string
	TrackingID    string
	NDRReason     string
}
