package suborderrepo

import (
	"context"
	"errors"

	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/core/domain/model/suborder"
	"marketplace/internal/pkg/errs"

	"gorm.io/gorm"
)

// GormSubOrderRepository implements SubOrderRepository using GORM.
type GormSubOrderRepository struct {
	db      *gorm.DB
	tracker aggregateTracker
}

// aggregateTracker defines the interface for tracking aggregates.
type aggregateTracker interface {
	TrackAggregate(id kernel.UUID, aggregate any)
}

// NewGormSubOrderRepository creates a new GORM suborder repository.
func NewGormSubOrderRepository(db *gorm.DB, tracker aggregateTracker) *GormSubOrderRepository {
	return &GormSubOrderRepository{
		db:      db,
		tracker: tracker,
	}
}

// Add saves a new suborder with its line items to the database.
func (r *GormSubOrderRepository) Add(ctx context.Context, aggregate *suborder.SubOrder) error {
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

// Get retrieves a suborder with its line items by ID.
func (r *GormSubOrderRepository) Get(ctx context.Context, id kernel.UUID) (*suborder.SubOrder, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}

	var dto SubOrderDTO
	err := r.db.WithContext(ctx).Preload("Items").First(&dto, "id = ?", id.Bytes()).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("suborder", id.String())
		}
		return nil, err
	}

	return toDomain(dto)
}

// GetAllByOrder retrieves all suborders belonging to the given order.
func (r *GormSubOrderRepository) GetAllByOrder(
	ctx context.Context, orderID kernel.UUID,
) ([]*suborder.SubOrder, error) {
	if err := orderID.Validate(); err != nil {
		return nil, err
	}

	return r.findAll(ctx, "order_id = ?", orderID.Bytes())
}

// GetAllBySeller retrieves all suborders belonging to the given seller.
func (r *GormSubOrderRepository) GetAllBySeller(
	ctx context.Context, sellerID kernel.UUID,
) ([]*suborder.SubOrder, error) {
	if err := sellerID.Validate(); err != nil {
		return nil, err
	}

	return r.findAll(ctx, "seller_id = ?", sellerID.Bytes())
}

// GetAllExternallyTracked retrieves all suborders whose status is under
// carrier control.
func (r *GormSubOrderRepository) GetAllExternallyTracked(ctx context.Context) ([]*suborder.SubOrder, error) {
	return r.findAll(ctx, "status IN ?", []int{
		int(suborder.Processing),
		int(suborder.ReadyForPickup),
		int(suborder.Shipped),
	})
}

// Transition persists the suborder's state with a conditional update guarded
// by the expected prior status.
func (r *GormSubOrderRepository) Transition(
	ctx context.Context, aggregate *suborder.SubOrder, expected suborder.Status,
) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	result := r.db.WithContext(ctx).
		Model(&SubOrderDTO{}).
		Where("id = ? AND status = ?", dto.ID, int(expected)).
		Updates(map[string]any{
			"status":             dto.Status,
			"tracking_id":        dto.TrackingID,
			"carrier_label":      dto.CarrierLabel,
			"ndr_reason":         dto.NDRReason,
			"carrier_updated_at": dto.CarrierUpdatedAt,
			"accepted_at":        dto.AcceptedAt,
			"shipped_at":         dto.ShippedAt,
			"delivered_at":       dto.DeliveredAt,
			"cancelled_at":       dto.CancelledAt,
			"returned_at":        dto.ReturnedAt,
		})
	if result.Error != nil {
		return result.Error
	}

	if result.RowsAffected == 0 {
		var count int64
		if err := r.db.WithContext(ctx).
			Model(&SubOrderDTO{}).
			Where("id = ?", dto.ID).
			Count(&count).Error; err != nil {
			return err
		}
		if count == 0 {
			return errs.NewObjectNotFoundError("suborder", aggregate.ID().String())
		}
		return errs.NewConcurrencyConflictError("suborder", aggregate.ID().String())
	}

	r.tracker.TrackAggregate(aggregate.ID(), aggregate)
	return nil
}

// CountUndelivered counts the order's suborders not yet in Delivered status.
func (r *GormSubOrderRepository) CountUndelivered(
	ctx context.Context, orderID kernel.UUID,
) (int64, error) {
	if err := orderID.Validate(); err != nil {
		return 0, err
	}

	var count int64
	err := r.db.WithContext(ctx).
		Model(&SubOrderDTO{}).
		Where("order_id = ? AND status != ?", orderID.Bytes(), int(suborder.Delivered)).
		Count(&count).Error
	if err != nil {
		return 0, err
	}

	return count, nil
}

func (r *GormSubOrderRepository) findAll(
	ctx context.Context, query string, args ...any,
) ([]*suborder.SubOrder, error) {
	var dtos []SubOrderDTO
	err := r.db.WithContext(ctx).Preload("Items").Find(&dtos, append([]any{query}, args...)...).Error
	if err != nil {
		return nil, err
	}

	subOrders := make([]*suborder.SubOrder, 0, len(dtos))
	for _, dto := range dtos {
		sub, err := toDomain(dto)
		if err != nil {
			return nil, err
		}
		subOrders = append(subOrders, sub)
	}

	return subOrders, nil
}
