// Package services provides domain services that orchestrate business
// operations across multiple domain entities in the marketplace. It implements
// workflows that don't naturally belong to a single aggregate root.
//
// The package includes:
//   - OrderDecomposer: splits one paid checkout into per-seller suborders and
//     their escrow payments
//   - StatusNormalizer: translates carrier status vocabulary into canonical
//     fulfillment statuses
//
// Domain services coordinate between aggregates, implementing business logic
// that spans multiple bounded contexts following Domain-Driven Design
// principles.
package services
