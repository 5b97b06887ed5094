package ports

import (
	"context"

	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/core/domain/model/suborder"
)

// SubOrderRepository defines the persistence contract for suborder aggregates.
//
// Every status change goes through Transition, which performs an atomic
// conditional write guarded by the expected prior status. That primitive is
// what upholds the lifecycle machine's guarantees when a carrier webhook and
// an administrative action race on the same suborder.
type SubOrderRepository interface {
	// Add persists a new suborder aggregate to storage.
	Add(ctx context.Context, aggregate *suborder.SubOrder) error

	// Get retrieves a suborder aggregate by its unique identifier.
	Get(ctx context.Context, id kernel.UUID) (*suborder.SubOrder, error)

	// GetAllByOrder retrieves all suborders belonging to the given order.
	GetAllByOrder(ctx context.Context, orderID kernel.UUID) ([]*suborder.SubOrder, error)

	// GetAllBySeller retrieves all suborders belonging to the given seller.
	GetAllBySeller(ctx context.Context, sellerID kernel.UUID) ([]*suborder.SubOrder, error)

	// GetAllExternallyTracked retrieves all suborders whose status is under
	// carrier control (Processing, ReadyForPickup, Shipped). Used by the
	// reconciliation job that pulls tracking state from the carrier.
	GetAllExternallyTracked(ctx context.Context) ([]*suborder.SubOrder, error)

	// Transition persists the aggregate's current state with an atomic
	// conditional write guarded by the expected prior status. Returns
	// errs.ConcurrencyConflictError when the stored status no longer matches
	// expected by the time of the write; the caller may reload and retry.
	Transition(ctx context.Context, aggregate *suborder.SubOrder, expected suborder.Status) error

	// CountUndelivered counts the order's suborders not yet in Delivered
	// status. The roll-up recomputation marks the parent order delivered when
	// this reaches zero.
	CountUndelivered(ctx context.Context, orderID kernel.UUID) (int64, error)
}
