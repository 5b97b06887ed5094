package queries

import (
	"context"

	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/core/domain/model/suborder"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GetTrackedParcelsQueryHandler lists suborders in the externally tracked
// statuses that already carry a tracking reference.
type GetTrackedParcelsQueryHandler struct {
	db *gorm.DB
}

// NewGetTrackedParcelsQueryHandler creates a handler for the reconciliation worklist.
func NewGetTrackedParcelsQueryHandler(db *gorm.DB) GetTrackedParcelsQueryHandler {
	return GetTrackedParcelsQueryHandler{db: db}
}

// Handle executes the query.
func (h GetTrackedParcelsQueryHandler) Handle(
	ctx context.Context,
	query GetTrackedParcelsQuery,
) ([]GetTrackedParcelsQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT id, tracking_id
		FROM suborders
		WHERE status IN ?
		  AND tracking_id <> ''
		ORDER BY created_at
	`, []suborder.Status{suborder.Processing, suborder.ReadyForPickup, suborder.Shipped}).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	responses := make([]GetTrackedParcelsQueryResponse, 0)

	for rows.Next() {
		var response GetTrackedParcelsQueryResponse
		var id uuid.UUID

		if err = rows.Scan(&id, &response.TrackingID); err != nil {
			return nil, err
		}

		if response.SubOrderID, err = kernel.UUIDFromBytes(id[:]); err != nil {
			return nil, err
		}

		responses = append(responses, response)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return responses, nil
}
