// Package errs provides standardized error types for the marketplace application.
// It implements a consistent pattern for error creation, formatting, and unwrapping
// that is used throughout the application.
//
// The package includes several error types for common error scenarios:
//   - ValueIsRequiredError: For when a required value is missing
//   - ValueIsInvalidError: For when a value is invalid
//   - ValueIsOutOfRangeError: For when a value lies outside its bounds
//   - ObjectNotFoundError: For when an object cannot be found
//   - ConcurrencyConflictError: For when a conditional write loses its race
//
// Each error type follows a consistent pattern:
//   - A sentinel error variable (e.g., ErrValueIsRequired)
//   - A struct type with fields for error details
//   - Constructor functions with and without cause
//   - Error() method for formatting the error message
//   - Unwrap() method for error wrapping/unwrapping support
//
// ConcurrencyConflictError deserves a note: the settlement and fulfillment
// engines perform every state transition as a conditional write at the storage
// layer. When the guard fails, repositories surface this error so callers can
// re-fetch and decide whether the transition still applies. It is retryable by
// contract, unlike the validation errors above.
package errs
