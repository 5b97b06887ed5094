// Package suborderrepo provides data transfer objects and mapping functions
// for suborder persistence.
package suborderrepo

import (
	"time"

	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/core/domain/model/order"
	"marketplace/internal/core/domain/model/suborder"

	"github.com/google/uuid"
)

// SubOrderDTO represents the database structure for persisting suborder
// aggregates. Line items live in a child table keyed by suborder ID.
type SubOrderDTO struct {
	ID               uuid.UUID `gorm:"type:uuid;primaryKey"`
	OrderID          uuid.UUID `gorm:"type:uuid;index"`
	SellerID         uuid.UUID `gorm:"type:uuid;index"`
	Items            []ItemDTO `gorm:"foreignKey:SubOrderID;constraint:OnDelete:CASCADE"`
	Subtotal         int64
	Shipping         int64
	Discount         int64
	Total            int64
	Status           int `gorm:"index"`
	TrackingID       string
	CarrierLabel     string
	NDRReason        string `gorm:"column:ndr_reason"`
	CarrierUpdatedAt *time.Time
	CreatedAt        time.Time
	AcceptedAt       *time.Time
	ShippedAt        *time.Time
	DeliveredAt      *time.Time
	CancelledAt      *time.Time
	ReturnedAt       *time.Time
}

// TableName specifies the database table name for suborder entities.
func (SubOrderDTO) TableName() string {
	return "suborders"
}

// ItemDTO is one suborder line item row.
type ItemDTO struct {
	ID         uint      `gorm:"primaryKey;autoIncrement"`
	SubOrderID uuid.UUID `gorm:"type:uuid;index"`
	ProductID  string
	SellerID   uuid.UUID `gorm:"type:uuid"`
	Quantity   int
	UnitPrice  int64
}

// TableName specifies the database table name for suborder line items.
func (ItemDTO) TableName() string {
	return "suborder_items"
}

// fromDomain converts a suborder aggregate to its database representation.
func fromDomain(aggregate *suborder.SubOrder) SubOrderDTO {
	items := make([]ItemDTO, 0, len(aggregate.Items()))
	for _, item := range aggregate.Items() {
		items = append(items, ItemDTO{
			SubOrderID: aggregate.ID().Bytes(),
			ProductID:  item.ProductID(),
			SellerID:   item.SellerID().Bytes(),
			Quantity:   item.Quantity(),
			UnitPrice:  item.UnitPrice().Amount(),
		})
	}

	return SubOrderDTO{
		ID:               aggregate.ID().Bytes(),
		OrderID:          aggregate.OrderID().Bytes(),
		SellerID:         aggregate.SellerID().Bytes(),
		Items:            items,
		Subtotal:         aggregate.Subtotal().Amount(),
		Shipping:         aggregate.Shipping().Amount(),
		Discount:         aggregate.Discount().Amount(),
		Total:            aggregate.Total().Amount(),
		Status:           int(aggregate.Status()),
		TrackingID:       aggregate.TrackingID(),
		CarrierLabel:     aggregate.CarrierLabel(),
		NDRReason:        aggregate.NDRReason(),
		CarrierUpdatedAt: aggregate.CarrierUpdatedAt(),
		CreatedAt:        aggregate.CreatedAt(),
		AcceptedAt:       aggregate.AcceptedAt(),
		ShippedAt:        aggregate.ShippedAt(),
		DeliveredAt:      aggregate.DeliveredAt(),
		CancelledAt:      aggregate.CancelledAt(),
		ReturnedAt:       aggregate.ReturnedAt(),
	}
}

// toDomain converts a database DTO to a suborder aggregate using RestoreSubOrder.
func toDomain(dto SubOrderDTO) (*suborder.SubOrder, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}

	orderID, err := kernel.UUIDFromBytes(dto.OrderID[:])
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

	subtotal, err := kernel.NewMoney(dto.Subtotal)
	if err != nil {
		return nil, err
	}

	shipping, err := kernel.NewMoney(dto.Shipping)
	if err != nil {
		return nil, err
	}

	discount, err := kernel.NewMoney(dto.Discount)
	if err != nil {
		return nil, err
	}

	return suborder.RestoreSubOrder(
		id, orderID, sellerID, items,
		subtotal, shipping, discount,
		suborder.Status(dto.Status),
		dto.TrackingID, dto.CarrierLabel, dto.NDRReason, dto.CarrierUpdatedAt,
		dto.CreatedAt,
		dto.AcceptedAt, dto.ShippedAt, dto.DeliveredAt, dto.CancelledAt, dto.ReturnedAt,
	)
}
