package queries

import (
	"errors"
	"time"

	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/pkg/guard"
)

var ErrGetReturnRequestsQueryIsNotConstructed = errors.New(
	"GetReturnRequestsQuery must be created via NewGetReturnRequestsQuery constructor",
)

// GetReturnRequestsQuery retrieves return claims newest first, addressed
// either by the seller deciding them or by the customer who opened them.
type GetReturnRequestsQuery struct {
	sellerID   kernel.UUID
	customerID kernel.UUID
	byCustomer bool

	guard guard.ConstructorGuard
}

// NewGetReturnRequestsQuery creates a query for a seller's return claims.
func NewGetReturnRequestsQuery(sellerID kernel.UUID) (GetReturnRequestsQuery, error) {
	if err := sellerID.Validate(); err != nil {
		return GetReturnRequestsQuery{}, err
	}

	return GetReturnRequestsQuery{
		sellerID: sellerID,
		guard:    guard.NewConstructorGuard(),
	}, nil
}

// NewGetReturnRequestsQueryByCustomer creates a query for the claims one
// customer has opened.
func NewGetReturnRequestsQueryByCustomer(customerID kernel.UUID) (GetReturnRequestsQuery, error) {
	if err := customerID.Validate(); err != nil {
		return GetReturnRequestsQuery{}, err
	}

	return GetReturnRequestsQuery{
		customerID: customerID,
		byCustomer: true,
		guard:      guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the query was created through a constructor.
func (q GetReturnRequestsQuery) Validate() error {
	return q.guard.Validate(ErrGetReturnRequestsQueryIsNotConstructed)
}

// SellerID returns the seller whose claims to fetch; meaningful only when
// ByCustomer is false.
func (q GetReturnRequestsQuery) SellerID() kernel.UUID { return q.sellerID }

// CustomerID returns the customer whose claims to fetch; meaningful only when
// ByCustomer is true.
func (q GetReturnRequestsQuery) CustomerID() kernel.UUID { return q.customerID }

// ByCustomer reports whether the query is addressed through the customer.
func (q GetReturnRequestsQuery) ByCustomer() bool { return q.byCustomer }

// GetReturnRequestsQueryResponse is one return claim row.
type GetReturnRequestsQueryResponse struct {
	ID           kernel.UUID
	SubOrderID   kernel.UUID
	CustomerID   kernel.UUID
	Status       string
	Reason       string
	RefundAmount int64
	RequestedAt  time.Time
}
