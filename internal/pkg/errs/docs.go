// Package errs provides the error taxonomy shared by the forwarding core.
//
// Every error type follows the same pattern:
//   - a sentinel variable (ErrValueIsInvalid, ErrBusinessRuleViolation, ...)
//   - a struct carrying the details needed to render a precise message
//   - constructors with and without a cause
//   - Unwrap returning the sentinel, so callers classify with errors.Is
//
// Families:
//   - validation: ValueIsRequiredError, ValueIsInvalidError, ValueIsOutOfRangeError
//   - ObjectNotFoundError for unknown identifiers
//   - BusinessRuleViolationError for refused transitions and capacity overflows
//   - ConcurrencyConflictError for stale versions and lost locks
//   - ExternalServiceError for collaborator failures
package errs
