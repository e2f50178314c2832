// Package errs provides standardized error types for the shipping application.
// It implements a consistent pattern for error creation, formatting, and unwrapping
// that is used throughout the application.
//
// The package includes error types for the common failure scenarios:
//   - ObjectNotFoundError: a referenced object does not exist
//   - ValueIsInvalidError: a supplied value failed validation
//   - ValueIsRequiredError: a required value was not supplied
//
// Each error type follows a consistent pattern:
//   - A sentinel error variable (e.g., ErrObjectNotFound)
//   - A struct type with fields for error details
//   - Constructor functions with and without cause
//   - Error() method for formatting the error message
//   - Unwrap() method for error wrapping/unwrapping support
//
// Handlers and adapters classify failures with errors.Is against the sentinels
// instead of matching on message strings.
package errs
