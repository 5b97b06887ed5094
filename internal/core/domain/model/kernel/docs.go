// Package kernel provides shared value objects used across all aggregates of
// the marketplace fulfillment and settlement engine.
//
// The package includes:
//   - UUID: validated identifier wrapping github.com/google/uuid
//   - Money: immutable monetary amount in minor units
//
// Both types follow the value object pattern: they are immutable, validate at
// construction, and expose a Validate method that rejects zero values created
// by bypassing the constructors.
package kernel
