package ports

import (
	"context"

	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/core/domain/model/returns"
)

// ReturnRepository defines the persistence contract for return claims and the
// global return settings record.
type ReturnRepository interface {
	// Add persists a new return request to storage.
	Add(ctx context.Context, aggregate *returns.Request) error

	// Get retrieves a return request by its unique identifier.
	Get(ctx context.Context, id kernel.UUID) (*returns.Request, error)

	// GetBySubOrder retrieves the open (non-terminal) return request against
	// the given suborder, if any. At most one open claim per suborder exists.
	GetBySubOrder(ctx context.Context, subOrderID kernel.UUID) (*returns.Request, error)

	// GetAllBySeller retrieves all return requests decided by the given seller.
	GetAllBySeller(ctx context.Context, sellerID kernel.UUID) ([]*returns.Request, error)

	// Transition persists the request's current state with an atomic
	// conditional write guarded by the expected prior status. Returns
	// errs.ConcurrencyConflictError when the stored status no longer matches
	// expected by the time of the write.
	Transition(ctx context.Context, aggregate *returns.Request, expected returns.Status) error

	// GetSettings retrieves the global return policy. Implementations return
	// the default policy when none has been stored yet.
	GetSettings(ctx context.Context) (returns.Settings, error)

	// SaveSettings stores the global return policy, replacing the previous one.
	SaveSettings(ctx context.Context, settings returns.Settings) error
}
