package returnrepo

import (
	"context"
	"errors"

	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/core/domain/model/returns"
	"marketplace/internal/pkg/errs"

	"gorm.io/gorm"
)

// settingsRowID pins the global return policy to a single row.
const settingsRowID = 1

// GormReturnRepository implements ReturnRepository using GORM.
type GormReturnRepository struct {
	db      *gorm.DB
	tracker aggregateTracker
}

// aggregateTracker defines the interface for tracking aggregates.
type aggregateTracker interface {
	TrackAggregate(id kernel.UUID, aggregate any)
}

// NewGormReturnRepository creates a new GORM return claim repository.
func NewGormReturnRepository(db *gorm.DB, tracker aggregateTracker) *GormReturnRepository {
	return &GormReturnRepository{
		db:      db,
		tracker: tracker,
	}
}

// Add saves a new return claim with its items and history to the database.
func (r *GormReturnRepository) Add(ctx context.Context, aggregate *returns.Request) error {
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

// Get retrieves a return claim by ID.
func (r *GormReturnRepository) Get(ctx context.Context, id kernel.UUID) (*returns.Request, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}

	var dto RequestDTO
	err := r.db.WithContext(ctx).Preload("Items").Preload("History").
		First(&dto, "id = ?", id.Bytes()).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("returnRequest", id.String())
		}
		return nil, err
	}

	return toDomain(dto)
}

// GetBySubOrder retrieves the open claim against the given suborder, if any.
func (r *GormReturnRepository) GetBySubOrder(
	ctx context.Context, subOrderID kernel.UUID,
) (*returns.Request, error) {
	if err := subOrderID.Validate(); err != nil {
		return nil, err
	}

	var dto RequestDTO
	err := r.db.WithContext(ctx).Preload("Items").Preload("History").
		First(&dto, "suborder_id = ? AND status NOT IN ?", subOrderID.Bytes(), []int{
			int(returns.Rejected),
			int(returns.Completed),
		}).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("returnRequest", subOrderID.String())
		}
		return nil, err
	}

	return toDomain(dto)
}

// GetAllBySeller retrieves all return claims decided by the given seller.
func (r *GormReturnRepository) GetAllBySeller(
	ctx context.Context, sellerID kernel.UUID,
) ([]*returns.Request, error) {
	if err := sellerID.Validate(); err != nil {
		return nil, err
	}

	var dtos []RequestDTO
	err := r.db.WithContext(ctx).Preload("Items").Preload("History").
		Find(&dtos, "seller_id = ?", sellerID.Bytes()).Error
	if err != nil {
		return nil, err
	}

	requests := make([]*returns.Request, 0, len(dtos))
	for _, dto := range dtos {
		request, err := toDomain(dto)
		if err != nil {
			return nil, err
		}
		requests = append(requests, request)
	}

	return requests, nil
}

// Transition persists the claim's state with a conditional update guarded by
// the expected prior status, and appends any new history rows.
func (r *GormReturnRepository) Transition(
	ctx context.Context, aggregate *returns.Request, expected returns.Status,
) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	result := r.db.WithContext(ctx).
		Model(&RequestDTO{}).
		Where("id = ? AND status = ?", dto.ID, int(expected)).
		Updates(map[string]any{
			"status":      dto.Status,
			"resolved_at": dto.ResolvedAt,
		})
	if result.Error != nil {
		return result.Error
	}

	if result.RowsAffected == 0 {
		var count int64
		if err := r.db.WithContext(ctx).
			Model(&RequestDTO{}).
			Where("id = ?", dto.ID).
			Count(&count).Error; err != nil {
			return err
		}
		if count == 0 {
			return errs.NewObjectNotFoundError("returnRequest", aggregate.ID().String())
		}
		return errs.NewConcurrencyConflictError("returnRequest", aggregate.ID().String())
	}

	if err := r.syncHistory(ctx, dto); err != nil {
		return err
	}

	r.tracker.TrackAggregate(aggregate.ID(), aggregate)
	return nil
}

// GetSettings retrieves the global return policy, falling back to the default
// policy when none has been stored yet.
func (r *GormReturnRepository) GetSettings(ctx context.Context) (returns.Settings, error) {
	var dto SettingsDTO
	err := r.db.WithContext(ctx).First(&dto, "id = ?", settingsRowID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return returns.DefaultSettings(), nil
		}
		return returns.Settings{}, err
	}

	return returns.NewSettings(dto.Enabled, dto.WindowDays)
}

// SaveSettings stores the global return policy, replacing the previous one.
func (r *GormReturnRepository) SaveSettings(ctx context.Context, settings returns.Settings) error {
	if err := settings.Validate(); err != nil {
		return err
	}

	dto := SettingsDTO{
		ID:         settingsRowID,
		Enabled:    settings.Enabled(),
		WindowDays: settings.WindowDays(),
	}

	return r.db.WithContext(ctx).Save(&dto).Error
}

// syncHistory appends history rows the database does not have yet.
func (r *GormReturnRepository) syncHistory(ctx context.Context, dto RequestDTO) error {
	var stored int64
	err := r.db.WithContext(ctx).
		Model(&HistoryDTO{}).
		Where("request_id = ?", dto.ID).
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
