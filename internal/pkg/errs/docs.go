// Package errs provides standardized error types for the order tracker.
// It implements a consistent pattern for error creation, formatting, and unwrapping
// that is used throughout the application.
//
// The package covers the error taxonomy of the tracker:
//   - ObjectNotFoundError: an order, address, subscription or participant is absent
//   - DuplicateKeyError: an order id already exists on creation
//   - ValueIsInvalidError / ValueIsRequiredError: wizard input failed validation
//   - BackendIOError: the tabular backend or the transport could not be reached
//   - DeliveryFailedError: a single recipient could not be messaged
//
// Each error type follows a consistent pattern:
//   - A sentinel error variable (e.g., ErrDuplicateKey)
//   - A struct type with fields for error details
//   - Constructor functions with and without cause
//   - Error() method for formatting the error message
//   - Unwrap() (and Is where a cause is carried) for errors.Is / errors.As support
//
// None of these messages are meant for end users; callers map them to short
// fixed texts before anything reaches a chat.
package errs
