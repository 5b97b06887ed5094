package paymentrepo

import (
	"context"
	"errors"

	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/core/domain/model/payment"
	"marketplace/internal/pkg/errs"

	"gorm.io/gorm"
)

// GormPaymentRepository implements PaymentRepository using GORM.
type GormPaymentRepository struct {
	db      *gorm.DB
	tracker aggregateTracker
}

// aggregateTracker defines the interface for tracking aggregates.
type aggregateTracker interface {
	TrackAggregate(id kernel.UUID, aggregate any)
}

// NewGormPaymentRepository creates a new GORM payment repository.
func NewGormPaymentRepository(db *gorm.DB, tracker aggregateTracker) *GormPaymentRepository {
	return &GormPaymentRepository{
		db:      db,
		tracker: tracker,
	}
}

// Add saves a new payment with its history to the database.
func (r *GormPaymentRepository) Add(ctx context.Context, aggregate *payment.Payment) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	if err := r.db.WithContext(ctx).Create(&dto).Error; err != nil {
		return err
	}

	r.tracker.TrackAggregate(aggregate.ID(), aggregate)
	return nil
}

// Get retrieves a payment with its history by ID.
func (r *GormPaymentRepository) Get(ctx context.Context, id kernel.UUID) (*payment.Payment, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}

	var dto PaymentDTO
	err := r.db.WithContext(ctx).Preload("History").First(&dto, "id = ?", id.Bytes()).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("payment", id.String())
		}
		return nil, err
	}

	return toDomain(dto)
}

// GetBySubOrder retrieves the payment funding the given suborder.
func (r *GormPaymentRepository) GetBySubOrder(
	ctx context.Context, subOrderID kernel.UUID,
) (*payment.Payment, error) {
	if err := subOrderID.Validate(); err != nil {
		return nil, err
	}

	var dto PaymentDTO
	err := r.db.WithContext(ctx).Preload("History").
		First(&dto, "suborder_id = ?", subOrderID.Bytes()).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("payment", subOrderID.String())
		}
		return nil, err
	}

	return toDomain(dto)
}

// GetAllBySeller retrieves all payments owed to the given seller.
func (r *GormPaymentRepository) GetAllBySeller(
	ctx context.Context, sellerID kernel.UUID,
) ([]*payment.Payment, error) {
	if err := sellerID.Validate(); err != nil {
		return nil, err
	}

	var dtos []PaymentDTO
	err := r.db.WithContext(ctx).Preload("History").
		Find(&dtos, "seller_id = ?", sellerID.Bytes()).Error
	if err != nil {
		return nil, err
	}

	payments := make([]*payment.Payment, 0, len(dtos))
	for _, dto := range dtos {
		pay, err := toDomain(dto)
		if err != nil {
			return nil, err
		}
		payments = append(payments, pay)
	}

	return payments, nil
}

// Transition persists the payment's state with a conditional update guarded
// by the expected prior status. The zero-row path distinguishes a vanished
// payment from a lost race; only the latter maps to a concurrency conflict.
// History rows written by this transition are appended alongside.
func (r *GormPaymentRepository) Transition(
	ctx context.Context, aggregate *payment.Payment, expected payment.Status,
) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	result := r.db.WithContext(ctx).
		Model(&PaymentDTO{}).
		Where("id = ? AND status = ?", dto.ID, int(expected)).
		Updates(map[string]any{
			"status":      dto.Status,
			"released_at": dto.ReleasedAt,
			"refunded_at": dto.RefundedAt,
		})
	if result.Error != nil {
		return result.Error
	}

	if result.RowsAffected == 0 {
		var count int64
		if err := r.db.WithContext(ctx).
			Model(&PaymentDTO{}).
			Where("id = ?", dto.ID).
			Count(&count).Error; err != nil {
			return err
		}
		if count == 0 {
			return errs.NewObjectNotFoundError("payment", aggregate.ID().String())
		}
		return errs.NewConcurrencyConflictError("payment", aggregate.ID().String())
	}

	if err := r.syncHistory(ctx, dto); err != nil {
		return err
	}

	r.tracker.TrackAggregate(aggregate.ID(), aggregate)
	return nil
}

// syncHistory appends history rows the database does not have yet. Rows are
// append-only, so a simple count comparison suffices.
func (r *GormPaymentRepository) syncHistory(ctx context.Context, dto PaymentDTO) error {
	var stored int64
	err := r.db.WithContext(ctx).
		Model(&HistoryDTO{}).
		Where("payment_id = ?", dto.ID).
		Count(&stored).Error
	if err != nil {
		return err
	}

	if int(stored) >= len(dto.History) {
		return nil
	}

	missing := dto.History[stored:]
	return r.db.WithContext(ctx).Create(&missing).Error
}
