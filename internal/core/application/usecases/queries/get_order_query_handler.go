package queries

import (
	"context"
	"database/sql"

	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/core/domain/model/order"
	"marketplace/internal/core/domain/model/payment"
	"marketplace/internal/core/domain/model/suborder"
	"marketplace/internal/pkg/errs"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GetOrderQueryHandler reads one order and its suborders straight from the
// database, bypassing the aggregates. Read models never load full aggregates.
type GetOrderQueryHandler struct {
	db *gorm.DB
}

// NewGetOrderQueryHandler creates a handler for single-order reads.
func NewGetOrderQueryHandler(db *gorm.DB) GetOrderQueryHandler {
	return GetOrderQueryHandler{db: db}
}

// Handle executes the query. Returns errs.ObjectNotFoundError when no order
// exists under the given ID.
func (h GetOrderQueryHandler) Handle(
	ctx context.Context,
	query GetOrderQuery,
) (GetOrderQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return GetOrderQueryResponse{}, err
	}

	var response GetOrderQueryResponse

	row := h.db.WithContext(ctx).Raw(`
		SELECT
			id,
			customer_id,
			customer_name,
			shipping,
			total,
			payment_status,
			status,
			placed_at
		FROM orders
		WHERE id = ?
	`, query.OrderID().String()).Row()

	var (
		id            uuid.UUID
		customerID    uuid.UUID
		paymentStatus int
		status        int
	)
	err := row.Scan(
		&id,
		&customerID,
		&response.CustomerName,
		&response.Shipping,
		&response.Total,
		&paymentStatus,
		&status,
		&response.PlacedAt,
	)
	if err != nil {
		return GetOrderQueryResponse{}, errs.NewObjectNotFoundErrorWithCause(
			"orderID", query.OrderID(), err)
	}

	if response.ID, err = kernel.UUIDFromBytes(id[:]); err != nil {
		return GetOrderQueryResponse{}, err
	}
	if response.CustomerID, err = kernel.UUIDFromBytes(customerID[:]); err != nil {
		return GetOrderQueryResponse{}, err
	}
	response.PaymentStatus = order.PaymentStatus(paymentStatus).String()
	response.Status = order.Status(status).String()

	subOrders, err := h.loadSubOrders(ctx, query.OrderID())
	if err != nil {
		return GetOrderQueryResponse{}, err
	}
	response.SubOrders = subOrders

	return response, nil
}

func (h GetOrderQueryHandler) loadSubOrders(
	ctx context.Context, orderID kernel.UUID,
) ([]SubOrderSummary, error) {
	summaries := make([]SubOrderSummary, 0)

	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT
			s.id,
			s.seller_id,
			s.total,
			s.status,
			p.status,
			s.tracking_id,
			s.ndr_reason
		FROM suborders s
		LEFT JOIN payments p ON p.suborder_id = s.id
		WHERE s.order_id = ?
		ORDER BY s.id
	`, orderID.String()).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var summary SubOrderSummary
		var id, sellerID uuid.UUID
		var status int
		var paymentStatus sql.NullInt64

		err = rows.Scan(
			&id,
			&sellerID,
			&summary.Total,
			&status,
			&paymentStatus,
			&summary.TrackingID,
			&summary.NDRReason,
		)
		if err != nil {
			return nil, err
		}

		if summary.ID, err = kernel.UUIDFromBytes(id[:]); err != nil {
			return nil, err
		}
		if summary.SellerID, err = kernel.UUIDFromBytes(sellerID[:]); err != nil {
			return nil, err
		}
		summary.Status = suborder.Status(status).String()
		if paymentStatus.Valid {
			summary.PaymentStatus = payment.Status(paymentStatus.Int64).String()
		}

		summaries = append(summaries, summary)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return summaries, nil
}
