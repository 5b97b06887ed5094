package queries

import (
	"errors"
	"time"

	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/pkg/guard"
)

var ErrGetReleasablePaymentsQueryIsNotConstructed = errors.New(
	"GetReleasablePaymentsQuery must be created via NewGetReleasablePaymentsQuery constructor",
)

// GetReleasablePaymentsQuery retrieves every escrowed payment whose release
// preconditions hold: the buyer paid the order and the suborder is delivered.
// This is the settlement job's worklist.
type GetReleasablePaymentsQuery struct {
	guard guard.ConstructorGuard
}

// NewGetReleasablePaymentsQuery creates a query for releasable escrow.
// This is a parameterless query spanning all sellers.
func NewGetReleasablePaymentsQuery() GetReleasablePaymentsQuery {
	return GetReleasablePaymentsQuery{guard: guard.NewConstructorGuard()}
}

// Validate ensures the query was created through the constructor.
func (q GetReleasablePaymentsQuery) Validate() error {
	return q.guard.Validate(ErrGetReleasablePaymentsQueryIsNotConstructed)
}

// GetReleasablePaymentsQueryResponse is one payment ready for release.
type GetReleasablePaymentsQueryResponse struct {
	ID          kernel.UUID
	OrderID     kernel.UUID
	SubOrderID  kernel.UUID
	SellerID    kernel.UUID
	Amount      int64
	DeliveredAt time.Time
}
