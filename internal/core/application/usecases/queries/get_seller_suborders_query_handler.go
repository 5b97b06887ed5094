package queries

import (
	"context"

	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/core/domain/model/suborder"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GetSellerSubOrdersQueryHandler reads a seller's suborder worklist from the
// database, newest first.
type GetSellerSubOrdersQueryHandler struct {
	db *gorm.DB
}

// NewGetSellerSubOrdersQueryHandler creates a handler for seller worklist reads.
func NewGetSellerSubOrdersQueryHandler(db *gorm.DB) GetSellerSubOrdersQueryHandler {
	return GetSellerSubOrdersQueryHandler{db: db}
}

// Handle executes the query.
func (h GetSellerSubOrdersQueryHandler) Handle(
	ctx context.Context,
	query GetSellerSubOrdersQuery,
) ([]GetSellerSubOrdersQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	sql := `
		SELECT
			id,
			order_id,
			total,
			status,
			tracking_id,
			ndr_reason,
			created_at
		FROM suborders
		WHERE seller_id = ?
	`
	args := []any{query.SellerID().String()}
	if query.HasStatus() {
		sql += ` AND status = ?`
		args = append(args, int(query.Status()))
	}
	sql += ` ORDER BY created_at DESC`

	rows, err := h.db.WithContext(ctx).Raw(sql, args...).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	responses := make([]GetSellerSubOrdersQueryResponse, 0)

	for rows.Next() {
		var response GetSellerSubOrdersQueryResponse
		var id, orderID uuid.UUID
		var status int

		err = rows.Scan(
			&id,
			&orderID,
			&response.Total,
			&status,
			&response.TrackingID,
			&response.NDRReason,
			&response.CreatedAt,
		)
		if err != nil {
			return nil, err
		}

		if response.ID, err = kernel.UUIDFromBytes(id[:]); err != nil {
			return nil, err
		}
		if response.OrderID, err = kernel.UUIDFromBytes(orderID[:]); err != nil {
			return nil, err
		}
		response.Status = suborder.Status(status).String()

		responses = append(responses, response)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return responses, nil
}
