// Package returnrepo provides data transfer objects and mapping functions
// for return claim persistence, including the global return policy record.
package returnrepo

import (
	"time"

	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/core/domain/model/order"
	"marketplace/internal/core/domain/model/returns"

	"github.com/google/uuid"
)

// RequestDTO represents the database structure for persisting return claims.
// Claimed items and the decision history live in child tables keyed by
// request ID.
type RequestDTO struct {
	ID           uuid.UUID `gorm:"type:uuid;primaryKey"`
	OrderID      uuid.UUID `gorm:"type:uuid;index"`
	SubOrderID   uuid.UUID `gorm:"type:uuid;index;column:suborder_id"`
	CustomerID   uuid.UUID `gorm:"type:uuid;index"`
	SellerID     uuid.UUID `gorm:"type:uuid;index"`
	Status       int       `gorm:"index"`
	Reason       string
	Description  string
	Evidence     []string `gorm:"serializer:json;type:jsonb"`
	Items        []ItemDTO `gorm:"foreignKey:RequestID;constraint:OnDelete:CASCADE"`
	RefundAmount int64
	RequestedAt  time.Time
	ResolvedAt   *time.Time
	History      []HistoryDTO `gorm:"foreignKey:RequestID;constraint:OnDelete:CASCADE"`
}

// TableName specifies the database table name for return claims.
func (RequestDTO) TableName() string {
	return "return_requests"
}

// ItemDTO is one claimed line item row.
type ItemDTO struct {
	ID        uint      `gorm:"primaryKey;autoIncrement"`
	RequestID uuid.UUID `gorm:"type:uuid;index"`
	ProductID string
	SellerID  uuid.UUID `gorm:"type:uuid"`
	Quantity  int
	UnitPrice int64
}

// TableName specifies the database table name for claimed items.
func (ItemDTO) TableName() string {
	return "return_items"
}

// HistoryDTO is one claim decision history row.
type HistoryDTO struct {
	ID        uint      `gorm:"primaryKey;autoIncrement"`
	RequestID uuid.UUID `gorm:"type:uuid;index"`
	Status    int
	ActorType int
	Note      string
	At        time.Time
}

// TableName specifies the database table name for claim history rows.
func (HistoryDTO) TableName() string {
	return "return_history"
}

// SettingsDTO is the single-row global return policy record.
type SettingsDTO struct {
	ID         uint `gorm:"primaryKey"`
	Enabled    bool
	WindowDays int
}

// TableName specifies the database table name for the return policy.
func (SettingsDTO) TableName() string {
	return "return_settings"
}

// fromDomain converts a return claim aggregate to its database representation.
func fromDomain(aggregate *returns.Request) RequestDTO {
	items := make([]ItemDTO, 0, len(aggregate.Items()))
	for _, item := range aggregate.Items() {
		items = append(items, ItemDTO{
			RequestID: aggregate.ID().Bytes(),
			ProductID: item.ProductID(),
			SellerID:  item.SellerID().Bytes(),
			Quantity:  item.Quantity(),
			UnitPrice: item.UnitPrice().Amount(),
		})
	}

	history := make([]HistoryDTO, 0, len(aggregate.History()))
	for _, entry := range aggregate.History() {
		history = append(history, HistoryDTO{
			RequestID: aggregate.ID().Bytes(),
			Status:    int(entry.Status),
			ActorType: int(entry.ActorType),
			Note:      entry.Note,
			At:        entry.At,
		})
	}

	return RequestDTO{
		ID:           aggregate.ID().Bytes(),
		OrderID:      aggregate.OrderID().Bytes(),
		SubOrderID:   aggregate.SubOrderID().Bytes(),
		CustomerID:   aggregate.CustomerID().Bytes(),
		SellerID:     aggregate.SellerID().Bytes(),
		Status:       int(aggregate.Status()),
		Reason:       aggregate.Reason(),
		Description:  aggregate.Description(),
		Evidence:     aggregate.Evidence(),
		Items:        items,
		RefundAmount: aggregate.RefundAmount().Amount(),
		RequestedAt:  aggregate.RequestedAt(),
		ResolvedAt:   aggregate.ResolvedAt(),
		History:      history,
	}
}

// toDomain converts a database DTO to a return claim aggregate using RestoreRequest.
func toDomain(dto RequestDTO) (*returns.Request, error) {
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

	customerID, err := kernel.UUIDFromBytes(dto.CustomerID[:])
	if err != nil {
		return nil, err
	}

	sellerID, err := kernel.UUIDFromBytes(dto.SellerID[:])
	if err != nil {
		return nil, err
	}

	items := make([]order.LineItem, 0, len(dto.Items))
	for _, itemDTO := range dto.Items {
		itemSellerID, itemErr := kernel.UUIDFromBytes(itemDTO.SellerID[:])
		if itemErr != nil {
			return nil, itemErr
		}

		unitPrice, itemErr := kernel.NewMoney(itemDTO.UnitPrice)
		if itemErr != nil {
			return nil, itemErr
		}

		item, itemErr := order.NewLineItem(itemDTO.ProductID, itemSellerID,
			itemDTO.Quantity, unitPrice)
		if itemErr != nil {
			return nil, itemErr
		}

		items = append(items, item)
	}

	refundAmount, err := kernel.NewMoney(dto.RefundAmount)
	if err != nil {
		return nil, err
	}

	history := make([]returns.HistoryEntry, 0, len(dto.History))
	for _, entry := range dto.History {
		history = append(history, returns.HistoryEntry{
			Status:    returns.Status(entry.Status),
			ActorType: returns.ActorType(entry.ActorType),
			Note:      entry.Note,
			At:        entry.At,
		})
	}

	return returns.RestoreRequest(
		id, orderID, subOrderID, customerID, sellerID,
		returns.Status(dto.Status),
		dto.Reason, dto.Description, dto.Evidence,
		items, refundAmount,
		dto.RequestedAt, dto.ResolvedAt,
		history,
	)
}
