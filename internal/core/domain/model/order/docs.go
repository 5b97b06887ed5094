// Package order provides the aggregate root for one checkout transaction in
// the marketplace. An Order is created only after the payment gateway has
// confirmed capture of the full amount; it is then decomposed into per-seller
// suborders which are fulfilled independently.
//
// The package includes:
//   - Order: the aggregate root holding the checkout snapshot and roll-up status
//   - Status: the roll-up state machine (Placed -> Delivered/Cancelled/Refunded)
//   - PaymentStatus: whether the customer's funds are captured or returned
//   - LineItem, Address, Customer: immutable checkout snapshots
//
// Key business rules:
//   - An order's total equals the sum of its line totals (and, by
//     construction at decomposition time, the sum of its suborders' totals)
//   - The Delivered roll-up status is derived, never set directly by callers
//   - Orders are archived, never deleted
package order
