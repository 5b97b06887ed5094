// Package payment provides the aggregate root for one seller's escrowed share
// of a marketplace order. A Payment is created at decomposition time in
// Escrow status and is settled by its suborder's fulfillment outcome: payout
// to the seller on delivery, refund to the buyer on cancellation or an
// approved return.
//
// Key business rules:
//   - Released is reachable only from Escrow, so a payout happens at most once
//   - releasing an already released payment is a no-op, not an error, so
//     retried payout requests cannot double-pay
//   - Refunded is terminal and rejects release even under administrative
//     override
//   - every transition is recorded in an attributed, append-only history
package payment
