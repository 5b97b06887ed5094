package ports

import (
	"context"

	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/core/domain/model/order"
)

// OrderRepository defines the persistence contract for order aggregates.
// Orders are the financial record of a checkout; they are added and updated,
// never deleted.
type OrderRepository interface {
	// Add persists a new order aggregate to storage.
	// The order must be valid and not already exist in the repository.
	Add(ctx context.Context, aggregate *order.Order) error

	// Update persists changes to an existing order aggregate.
	Update(ctx context.Context, aggregate *order.Order) error

	// Get retrieves an order aggregate by its unique identifier.
	Get(ctx context.Context, id kernel.UUID) (*order.Order, error)

	// TransitionStatus persists the aggregate's current roll-up status with an
	// atomic conditional write guarded by the expected prior status. Returns
	// errs.ConcurrencyConflictError when the stored status no longer matches
	// expected by the time of the write.
	TransitionStatus(ctx context.Context, aggregate *order.Order, expected order.Status) error
}
