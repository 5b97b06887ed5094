package queries

import (
	"context"

	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/core/domain/model/order"
	"marketplace/internal/core/domain/model/payment"
	"marketplace/internal/core/domain/model/suborder"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GetReleasablePaymentsQueryHandler finds escrowed payments eligible for
// release by joining payments against their suborder and order rows.
type GetReleasablePaymentsQueryHandler struct {
	db *gorm.DB
}

// NewGetReleasablePaymentsQueryHandler creates a handler for the settlement worklist.
func NewGetReleasablePaymentsQueryHandler(db *gorm.DB) GetReleasablePaymentsQueryHandler {
	return GetReleasablePaymentsQueryHandler{db: db}
}

// Handle executes the query. Results are ordered by delivery time so the
// longest-waiting sellers settle first.
func (h GetReleasablePaymentsQueryHandler) Handle(
	ctx context.Context,
	query GetReleasablePaymentsQuery,
) ([]GetReleasablePaymentsQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT
			p.id,
			p.order_id,
			p.suborder_id,
			p.seller_id,
			p.amount,
			s.delivered_at
		FROM payments p
		JOIN suborders s ON s.id = p.suborder_id
		JOIN orders o ON o.id = p.order_id
		WHERE p.status = ?
		  AND s.status = ?
		  AND o.payment_status = ?
		ORDER BY s.delivered_at
	`, payment.Escrow, suborder.Delivered, order.PaymentPaid).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	responses := make([]GetReleasablePaymentsQueryResponse, 0)

	for rows.Next() {
		var response GetReleasablePaymentsQueryResponse
		var id, orderID, subOrderID, sellerID uuid.UUID

		err = rows.Scan(
			&id,
			&orderID,
			&subOrderID,
			&sellerID,
			&response.Amount,
			&response.DeliveredAt,
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
		if response.SubOrderID, err = kernel.UUIDFromBytes(subOrderID[:]); err != nil {
			return nil, err
		}
		if response.SellerID, err = kernel.UUIDFromBytes(sellerID[:]); err != nil {
			return nil, err
		}

		responses = append(responses, response)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return responses, nil
}
