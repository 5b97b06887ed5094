// Package commands contains business operations that modify system state.
// Implements the Command pattern for write operations in the CQRS architecture.
// All commands follow a consistent pattern: validation, transaction management, and persistence.
package commands

import (
	"context"

	"marketplace/internal/core/ports"
)

// Unit of Work interfaces provide transaction management for command handlers.
// These abstractions ensure data consistency across aggregate boundaries.
type (
	// TxManager handles database transaction lifecycle.
	// Ensures atomic operations across multiple repository calls.
	TxManager interface {
		Begin(ctx context.Context) error
		Commit(ctx context.Context) error
		Rollback(ctx context.Context) error
	}

	// OrderRepoFactory provides access to the order repository within a transaction.
	OrderRepoFactory interface {
		OrderRepository() ports.OrderRepository
	}

	// SubOrderRepoFactory provides access to the suborder repository within a transaction.
	SubOrderRepoFactory interface {
		SubOrderRepository() ports.SubOrderRepository
	}

	// PaymentRepoFactory provides access to the payment repository within a transaction.
	PaymentRepoFactory interface {
		PaymentRepository() ports.PaymentRepository
	}

	// ReturnRepoFactory provides access to the return repository within a transaction.
	ReturnRepoFactory interface {
		ReturnRepository() ports.ReturnRepository
	}

	// CheckoutUoW manages transactions for checkout decomposition, which
	// creates the order, its suborders, and their payments together.
	CheckoutUoW interface {
		TxManager
		OrderRepoFactory
		SubOrderRepoFactory
		PaymentRepoFactory
	}

	// CheckoutUoWFactory creates new checkout unit of work instances.
	CheckoutUoWFactory interface {
		Create() CheckoutUoW
	}

	// FulfillmentUoW manages transactions for suborder lifecycle operations,
	// which may touch the suborder, its payment (cancellation refunds), and
	// the parent order (delivery roll-up).
	FulfillmentUoW interface {
		TxManager
		SubOrderRepoFactory
		PaymentRepoFactory
		OrderRepoFactory
	}

	// FulfillmentUoWFactory creates new fulfillment unit of work instances.
	FulfillmentUoWFactory interface {
		Create() FulfillmentUoW
	}

	// SettlementUoW manages transactions for escrow settlement, which reads
	// the payment's order and suborder to evaluate release preconditions.
	SettlementUoW interface {
		TxManager
		PaymentRepoFactory
		SubOrderRepoFactory
		OrderRepoFactory
	}

	// SettlementUoWFactory creates new settlement unit of work instances.
	SettlementUoWFactory interface {
		Create() SettlementUoW
	}

	// ReturnUoW manages transactions for the return workflow, whose approval
	// path mutates the claim, the payment, and the suborder together.
	ReturnUoW interface {
		TxManager
		ReturnRepoFactory
		PaymentRepoFactory
		SubOrderRepoFactory
	}

	// ReturnUoWFactory creates new return unit of work instances.
	ReturnUoWFactory interface {
		Create() ReturnUoW
	}
)
