// Package orderrepo provides data transfer objects and mapping functions for
// order persistence. This package implements the repository pattern for the
// order aggregate, handling the conversion between domain entities and their
// database representation.
package orderrepo

import (
	"time"

	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/core/domain/model/order"

	"github.com/google/uuid"
)

// OrderDTO represents the database structure for persisting order aggregates.
// The customer and address snapshots are embedded; line items live in a child
// table keyed by order ID.
type OrderDTO struct {
	ID            uuid.UUID   `gorm:"type:uuid;primaryKey"`
	Customer      CustomerDTO `gorm:"embedded;embeddedPrefix:customer_"`
	Address       AddressDTO  `gorm:"embedded;embeddedPrefix:address_"`
	Items         []ItemDTO   `gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE"`
	Shipping      int64
	Total         int64
	PaymentStatus int `gorm:"index"`
	Status        int `gorm:"index"`
	PlacedAt      time.Time
}

// TableName specifies the database table name for order entities.
func (OrderDTO) TableName() string {
	return "orders"
}

// CustomerDTO is the embedded customer snapshot within the order table.
type CustomerDTO struct {
	ID    uuid.UUID `gorm:"type:uuid;index;column:id"`
	Name  string
	Email string
}

// AddressDTO is the embedded delivery address snapshot within the order table.
type AddressDTO struct {
	Line1      string
	City       string
	PostalCode string
	Region     string
	Country    string
}

// ItemDTO is one order line item row.
type ItemDTO struct {
	ID        uint      `gorm:"primaryKey;autoIncrement"`
	OrderID   uuid.UUID `gorm:"type:uuid;index"`
	ProductID string
	SellerID  uuid.UUID `gorm:"type:uuid;index"`
	Quantity  int
	UnitPrice int64
}

// TableName specifies the database table name for order line items.
func (ItemDTO) TableName() string {
	return "order_items"
}

// fromDomain converts an order aggregate to its database representation.
func fromDomain(aggregate *order.Order) OrderDTO {
	items := make([]ItemDTO, 0, len(aggregate.Items()))
	for _, item := range aggregate.Items() {
		items = append(items, ItemDTO{
			OrderID:   aggregate.ID().Bytes(),
			ProductID: item.ProductID(),
			SellerID:  item.SellerID().Bytes(),
			Quantity:  item.Quantity(),
			UnitPrice: item.UnitPrice().Amount(),
		})
	}

	return OrderDTO{
		ID: aggregate.ID().Bytes(),
		Customer: CustomerDTO{
			ID:    aggregate.Customer().ID().Bytes(),
			Name:  aggregate.Customer().Name(),
			Email: aggregate.Customer().Email(),
		},
		Address: AddressDTO{
			Line1:      aggregate.Address().Line1(),
			City:       aggregate.Address().City(),
			PostalCode: aggregate.Address().PostalCode(),
			Region:     aggregate.Address().Region(),
			Country:    aggregate.Address().Country(),
		},
		Items:         items,
		Shipping:      aggregate.Shipping().Amount(),
		Total:         aggregate.Total().Amount(),
		PaymentStatus: int(aggregate.PaymentStatus()),
		Status:        int(aggregate.Status()),
		PlacedAt:      aggregate.PlacedAt(),
	}
}

// itemsToDomain converts line item rows back to domain value objects.
func itemsToDomain(dtos []ItemDTO) ([]order.LineItem, error) {
	items := make([]order.LineItem, 0, len(dtos))
	for _, dto := range dtos {
		sellerID, err := kernel.UUIDFromBytes(dto.SellerID[:])
		if err != nil {
			return nil, err
		}

		unitPrice, err := kernel.NewMoney(dto.UnitPrice)
		if err != nil {
			return nil, err
		}

		item, err := order.NewLineItem(dto.ProductID, sellerID, dto.Quantity, unitPrice)
		if err != nil {
			return nil, err
		}

		items = append(items, item)
	}

	return items, nil
}

// toDomain converts a database DTO to an order aggregate using RestoreOrder.
func toDomain(dto OrderDTO) (*order.Order, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}

	customerID, err := kernel.UUIDFromBytes(dto.Customer.ID[:])
	if err != nil {
		return nil, err
	}

	customer, err := order.NewCustomer(customerID, dto.Customer.Name, dto.Customer.Email)
	if err != nil {
		return nil, err
	}

	address, err := order.NewAddress(dto.Address.Line1, dto.Address.City,
		dto.Address.PostalCode, dto.Address.Region, dto.Address.Country)
	if err != nil {
		return nil, err
	}

	items, err := itemsToDomain(dto.Items)
	if err != nil {
		return nil, err
	}

	shipping, err := kernel.NewMoney(dto.Shipping)
	if err != nil {
		return nil, err
	}

	total, err := kernel.NewMoney(dto.Total)
	if err != nil {
		return nil, err
	}

	return order.RestoreOrder(id, customer, address, items, shipping, total,
		order.PaymentStatus(dto.PaymentStatus), order.Status(dto.Status), dto.PlacedAt)
}
