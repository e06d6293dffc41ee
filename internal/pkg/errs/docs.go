// Package errs provides standardized error types for the foodcourt application.
// It implements a consistent pattern for error creation, formatting, and unwrapping
// that is used throughout the application.
//
// The package includes several error types for common error scenarios:
//   - ValueIsRequiredError: For when a required value is missing
//   - ValueIsInvalidError: For when a value is invalid
//   - ObjectNotFoundError: For when an object cannot be found
//   - ForbiddenError: For when an actor lacks rights on an object
//   - InvalidTransitionError: For when a status change is rejected
//   - StorageConflictError: For retryable persistence conflicts
//
// Each error type follows a consistent pattern:
//   - A sentinel error variable (e.g., ErrObjectNotFound)
//   - A struct type with fields for error details
//   - Constructor functions with and without cause
//   - Error() method for formatting the error message
//   - Unwrap() method for error wrapping/unwrapping support
//
// The sentinel errors form the error taxonomy of the order core: transport
// adapters classify errors with errors.Is and translate them to protocol
// responses without ever seeing the concrete struct types. The core raises
// these errors verbatim and never swallows or downgrades them.
package errs
