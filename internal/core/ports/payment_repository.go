package ports

import (
	"context"

	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/core/domain/model/payment"
)

// PaymentRepository defines the persistence contract for payment aggregates.
//
// Transition is the only write path for settled money: it performs an atomic
// conditional write guarded by the expected prior status, which is what makes
// release at-most-once under concurrent administrative actions.
type PaymentRepository interface {
	// Add persists a new payment aggregate to storage.
	Add(ctx context.Context, aggregate *payment.Payment) error

	// Get retrieves a payment aggregate by its unique identifier.
	Get(ctx context.Context, id kernel.UUID) (*payment.Payment, error)

	// GetBySubOrder retrieves the payment funding the given suborder.
	GetBySubOrder(ctx context.Context, subOrderID kernel.UUID) (*payment.Payment, error)

	// GetAllBySeller retrieves all payments owed to the given seller.
	GetAllBySeller(ctx context.Context, sellerID kernel.UUID) ([]*payment.Payment, error)

	// Transition persists the aggregate's current state with an atomic
	// conditional write guarded by the expected prior status. Returns
	// errs.ConcurrencyConflictError when the stored status no longer matches
	// expected by the time of the write.
	Transition(ctx context.Context, aggregate *payment.Payment, expected payment.Status) error
}
