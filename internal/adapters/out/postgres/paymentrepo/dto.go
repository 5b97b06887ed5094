// Package paymentrepo provides data transfer objects and mapping functions
// for escrow payment persistence.
package paymentrepo

import (
	"time"

	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/core/domain/model/payment"

	"github.com/google/uuid"
)

// PaymentDTO represents the database structure for persisting payment
// aggregates. The settlement history lives in a child table keyed by
// payment ID.
type PaymentDTO struct {
	ID         uuid.UUID    `gorm:"type:uuid;primaryKey"`
	OrderID    uuid.UUID    `gorm:"type:uuid;index"`
	SubOrderID uuid.UUID    `gorm:"type:uuid;uniqueIndex;column:suborder_id"`
	SellerID   uuid.UUID    `gorm:"type:uuid;index"`
	Amount     int64
	Status     int `gorm:"index"`
	ReleasedAt *time.Time
	RefundedAt *time.Time
	CreatedAt  time.Time
	History    []HistoryDTO `gorm:"foreignKey:PaymentID;constraint:OnDelete:CASCADE"`
}

// TableName specifies the database table name for payment entities.
func (PaymentDTO) TableName() string {
	return "payments"
}

// HistoryDTO is one settlement history row.
type HistoryDTO struct {
	ID        uint      `gorm:"primaryKey;autoIncrement"`
	PaymentID uuid.UUID `gorm:"type:uuid;index"`
	Status    int
	ActorType int
	Note      string
	At        time.Time
}

// TableName specifies the database table name for payment history rows.
func (HistoryDTO) TableName() string {
	return "payment_history"
}

// fromDomain converts a payment aggregate to its database representation.
func fromDomain(aggregate *payment.Payment) PaymentDTO {
	history := make([]HistoryDTO, 0, len(aggregate.History()))
	for _, entry := range aggregate.History() {
		history = append(history, HistoryDTO{
			PaymentID: aggregate.ID().Bytes(),
			Status:    int(entry.Status),
			ActorType: int(entry.ActorType),
			Note:      entry.Note,
			At:        entry.At,
		})
	}

	return PaymentDTO{
		ID:         aggregate.ID().Bytes(),
		OrderID:    aggregate.OrderID().Bytes(),
		SubOrderID: aggregate.SubOrderID().Bytes(),
		SellerID:   aggregate.SellerID().Bytes(),
		Amount:     aggregate.Amount().Amount(),
		Status:     int(aggregate.Status()),
		ReleasedAt: aggregate.ReleasedAt(),
		RefundedAt: aggregate.RefundedAt(),
		CreatedAt:  aggregate.CreatedAt(),
		History:    history,
	}
}

// toDomain converts a database DTO to a payment aggregate using RestorePayment.
func toDomain(dto PaymentDTO) (*payment.Payment, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}

	orderID, err := kernel.UUIDFromBytes(dto.OrderID[:])
	if err != nil {
		return nil, err
	}

	subOrderID, err := kernel.UUIDFromBytes(dto.SubOrderID[:])
	if err != nil {
		return nil, err
	}

	sellerID, err := kernel.UUIDFromBytes(dto.SellerID[:])
	if err != nil {
		return nil, err
	}

	amount, err := kernel.NewMoney(dto.Amount)
	if err != nil {
		return nil, err
	}

	history := make([]payment.HistoryEntry, 0, len(dto.History))
	for _, entry := range dto.History {
		history = append(history, payment.HistoryEntry{
			Status:    payment.Status(entry.Status),
			ActorType: payment.ActorType(entry.ActorType),
			Note:      entry.Note,
			At:        entry.At,
		})
	}

	return payment.RestorePayment(
		id, orderID, subOrderID, sellerID, amount,
		payment.Status(dto.Status),
		dto.ReleasedAt, dto.RefundedAt, dto.CreatedAt,
		history,
	)
}
