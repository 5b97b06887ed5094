package queries

import (
	"context"

	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/core/domain/model/returns"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GetReturnRequestsQueryHandler reads a seller's return claims from the database.
type GetReturnRequestsQueryHandler struct {
	db *gorm.DB
}

// NewGetReturnRequestsQueryHandler creates a handler for return claim reads.
func NewGetReturnRequestsQueryHandler(db *gorm.DB) GetReturnRequestsQueryHandler {
	return GetReturnRequestsQueryHandler{db: db}
}

// Handle executes the query.
func (h GetReturnRequestsQueryHandler) Handle(
	ctx context.Context,
	query GetReturnRequestsQuery,
) ([]GetReturnRequestsQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	sql := `
		SELECT
			id,
			suborder_id,
			customer_id,
			status,
			reason,
			refund_amount,
			requested_at
		FROM return_requests
	`
	var arg string
	if query.ByCustomer() {
		sql += ` WHERE customer_id = ?`
		arg = query.CustomerID().String()
	} else {
		sql += ` WHERE seller_id = ?`
		arg = query.SellerID().String()
	}
	sql += ` ORDER BY requested_at DESC`

	rows, err := h.db.WithContext(ctx).Raw(sql, arg).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	responses := make([]GetReturnRequestsQueryResponse, 0)

	for rows.Next() {
		var response GetReturnRequestsQueryResponse
		var id, subOrderID, customerID uuid.UUID
		var status int

		err = rows.Scan(
			&id,
			&subOrderID,
			&customerID,
			&status,
			&response.Reason,
			&response.RefundAmount,
			&response.RequestedAt,
		)
		if err != nil {
			return nil, err
		}

		if response.ID, err = kernel.UUIDFromBytes(id[:]); err != nil {
			return nil, err
		}
		if response.SubOrderID, err = kernel.UUIDFromBytes(subOrderID[:]); err != nil {
			return nil, err
		}
		if response.CustomerID, err = kernel.UUIDFromBytes(customerID[:]); err != nil {
			return nil, err
		}
		response.Status = returns.Status(status).String()

		responses = append(responses, response)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return responses, nil
}
