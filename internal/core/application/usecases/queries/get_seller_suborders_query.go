package queries

import (
	"errors"
	"time"

	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/core/domain/model/suborder"
	"marketplace/internal/pkg/guard"
)

var ErrGetSellerSubOrdersQueryIsNotConstructed = errors.New(
	"GetSellerSubOrdersQuery must be created via NewGetSellerSubOrdersQuery constructor",
)

// GetSellerSubOrdersQuery retrieves a seller's worklist, optionally narrowed
// to one lifecycle status.
type GetSellerSubOrdersQuery struct {
	sellerID  kernel.UUID
	status    suborder.Status
	hasStatus bool

	guard guard.ConstructorGuard
}

// NewGetSellerSubOrdersQuery creates a query for all of a seller's suborders.
func NewGetSellerSubOrdersQuery(sellerID kernel.UUID) (GetSellerSubOrdersQuery, error) {
	if err := sellerID.Validate(); err != nil {
		return GetSellerSubOrdersQuery{}, err
	}

	return GetSellerSubOrdersQuery{
		sellerID: sellerID,
		guard:    guard.NewConstructorGuard(),
	}, nil
}

// NewGetSellerSubOrdersQueryWithStatus creates a query narrowed to one status.
func NewGetSellerSubOrdersQueryWithStatus(
	sellerID kernel.UUID, status suborder.Status,
) (GetSellerSubOrdersQuery, error) {
	query, err := NewGetSellerSubOrdersQuery(sellerID)
	if err != nil {
		return GetSellerSubOrdersQuery{}, err
	}

	if err = status.Validate(); err != nil {
		return GetSellerSubOrdersQuery{}, err
	}

	query.status = status
	query.hasStatus = true

	return query, nil
}

// Validate ensures the query was created through a constructor.
func (q GetSellerSubOrdersQuery) Validate() error {
	return q.guard.Validate(ErrGetSellerSubOrdersQueryIsNotConstructed)
}

// SellerID returns the seller whose worklist to fetch.
func (q GetSellerSubOrdersQuery) SellerID() kernel.UUID { return q.sellerID }

// Status returns the status filter; meaningful only when HasStatus is true.
func (q GetSellerSubOrdersQuery) Status() suborder.Status { return q.status }

// HasStatus reports whether the query filters by status.
func (q GetSellerSubOrdersQuery) HasStatus() bool { return q.hasStatus }

// GetSellerSubOrdersQueryResponse is one row of a seller's worklist.
type GetSellerSubOrdersQueryResponse struct {
	ID         kernel.UUID
	OrderID    kernel.UUID
	Total      int64
	Status     string
	TrackingID string
	NDRReason  string
	CreatedAt  time.Time
}
