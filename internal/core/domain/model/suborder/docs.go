// Package suborder provides the aggregate root for one seller's slice of a
// marketplace order. A SubOrder is created at decomposition time, fulfilled
// independently of its siblings, and drives both the escrow release for its
// seller and the roll-up status of its parent order.
//
// The package includes:
//   - SubOrder: the aggregate root holding items, money breakdown, tracking
//     fields, and per-status timestamps
//   - Status: the fulfillment state machine (Pending through
//     Delivered/Cancelled/Returned)
//
// Key business rules:
//   - total = subtotal + shipping - discount, enforced at construction
//   - Pending moves only under seller action; Processing, ReadyForPickup, and
//     Shipped move only under carrier signals; carrier signals are forward-only
//   - Cancelled and Returned are final; Delivered exits only via an approved
//     return
//   - raw carrier labels and NDR reasons are retained even when a signal does
//     not move the canonical status
package suborder
