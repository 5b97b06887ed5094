package commands_test

import (
	"testing"
	"time"

	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/core/domain/model/order"
	"marketplace/internal/core/domain/model/payment"
	"marketplace/internal/core/domain/model/suborder"

	"github.com/stretchr/testify/require"
)

func mustMoney(t *testing.T, amount int64) kernel.Money {
	t.Helper()

	money, err := kernel.NewMoney(amount)
	require.NoError(t, err)
	return money
}

// makeSellerItems builds two line items for the given seller totaling 50000.
func makeSellerItems(t *testing.T, sellerID kernel.UUID) []order.LineItem {
	t.Helper()

	first, err := order.NewLineItem("sku-widget", sellerID, 2, mustMoney(t, 15000))
	require.NoError(t, err)

	second, err := order.NewLineItem("sku-gadget", sellerID, 1, mustMoney(t, 20000))
	require.NoError(t, err)

	return []order.LineItem{first, second}
}

// makePendingSubOrder builds a freshly decomposed suborder: subtotal 50000,
// shipping 5000, total 55000.
func makePendingSubOrder(t *testing.T, sellerID kernel.UUID) *suborder.SubOrder {
	t.Helper()

	sub, err := suborder.NewSubOrder(
		kernel.NewUUID(),
		kernel.NewUUID(),
		sellerID,
		makeSellerItems(t, sellerID),
		mustMoney(t, 50000),
		mustMoney(t, 5000),
		kernel.Zero(),
		time.Now().UTC(),
	)
	require.NoError(t, err)

	return sub
}

// makeSubOrderInStatus restores a suborder in the given lifecycle status with
// plausible timestamps for the statuses already passed through.
func makeSubOrderInStatus(t *testing.T, sellerID kernel.UUID, status suborder.Status) *suborder.SubOrder {
	t.Helper()

	createdAt := time.Now().UTC().Add(-72 * time.Hour)
	acceptedAt := createdAt.Add(time.Hour)
	shippedAt := createdAt.Add(24 * time.Hour)
	deliveredAt := createdAt.Add(48 * time.Hour)

	var accepted, shipped, delivered *time.Time
	if status >= suborder.Processing && status != suborder.Cancelled {
		accepted = &acceptedAt
	}
	if status == suborder.Shipped || status == suborder.Delivered || status == suborder.Returned {
		shipped = &shippedAt
	}
	if status == suborder.Delivered || status == suborder.Returned {
		delivered = &deliveredAt
	}

	sub, err := suborder.RestoreSubOrder(
		kernel.NewUUID(),
		kernel.NewUUID(),
		sellerID,
		makeSellerItems(t, sellerID),
		mustMoney(t, 50000),
		mustMoney(t, 5000),
		kernel.Zero(),
		status,
		"TRK-123",
		"",
		"",
		nil,
		createdAt,
		accepted, shipped, delivered, nil, nil,
	)
	require.NoError(t, err)

	return sub
}

// makePaidOrder builds a placed, paid order matching a single 55000 suborder.
func makePaidOrder(t *testing.T, sellerID kernel.UUID) *order.Order {
	t.Helper()

	customer, err := order.NewCustomer(kernel.NewUUID(), "Alex Petrov", "alex@example.com")
	require.NoError(t, err)

	address, err := order.NewAddress("12 Main St", "Springfield", "62704", "IL", "US")
	require.NoError(t, err)

	ord, err := order.NewOrder(
		kernel.NewUUID(),
		customer,
		address,
		makeSellerItems(t, sellerID),
		mustMoney(t, 5000),
		mustMoney(t, 55000),
		time.Now().UTC(),
	)
	require.NoError(t, err)

	return ord
}

// makeEscrowPayment builds an escrowed payment funding the given suborder.
func makeEscrowPayment(t *testing.T, sub *suborder.SubOrder) *payment.Payment {
	t.Helper()

	pay, err := payment.NewPayment(
		kernel.NewUUID(),
		sub.OrderID(),
		sub.ID(),
		sub.SellerID(),
		sub.Total(),
		time.Now().UTC(),
	)
	require.NoError(t, err)

	return pay
}
