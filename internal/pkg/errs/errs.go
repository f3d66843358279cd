package errs

import (
	"errors"
	"fmt"
	"strings"
)

var (
	ErrValueIsRequired       = errors.New("value is required")
	ErrValueIsInvalid        = errors.New("value is invalid")
	ErrValueIsOutOfRange     = errors.New("value is out of range")
	ErrObjectNotFound        = errors.New("object not found")
	ErrBusinessRuleViolation = errors.New("business rule violation")
	ErrConcurrencyConflict   = errors.New("concurrency conflict")
	ErrExternalService       = errors.New("external service error")
)

// IsValidation reports whether err belongs to the input validation family.
// Validation errors are raised before any state is touched.
func IsValidation(err error) bool {
	return errors.Is(err, ErrValueIsRequired) ||
		errors.Is(err, ErrValueIsInvalid) ||
		errors.Is(err, ErrValueIsOutOfRange)
}

type ValueIsRequiredError struct {
	ParamName string
	Cause     error
}

func NewValueIsRequiredError(paramName string) *ValueIsRequiredError {
	return &ValueIsRequiredError{ParamName: paramName}
}

func NewValueIsRequiredErrorWithCause(paramName string, cause error) *ValueIsRequiredError {
	return &ValueIsRequiredError{ParamName: paramName, Cause: cause}
}

func (e *ValueIsRequiredError) Error() string {
	return withCause(fmt.Sprintf("%s: %s", ErrValueIsRequired, e.ParamName), e.Cause)
}

func (e *ValueIsRequiredError) Unwrap() error {
	return ErrValueIsRequired
}

type ValueIsInvalidError struct {
	ParamName string
	Cause     error
}

func NewValueIsInvalidError(paramName string) *ValueIsInvalidError {
	return &ValueIsInvalidError{ParamName: paramName}
}

func NewValueIsInvalidErrorWithCause(paramName string, cause error) *ValueIsInvalidError {
	return &ValueIsInvalidError{ParamName: paramName, Cause: cause}
}

func (e *ValueIsInvalidError) Error() string {
	return withCause(fmt.Sprintf("%s: %s", ErrValueIsInvalid, e.ParamName), e.Cause)
}

func (e *ValueIsInvalidError) Unwrap() error {
	return ErrValueIsInvalid
}

type ValueIsOutOfRangeError struct {
	ParamName string
	Value     any
	Min       any
	Max       any
	Cause     error
}

func NewValueIsOutOfRangeError(paramName string, value, minValue, maxValue any) *ValueIsOutOfRangeError {
	return &ValueIsOutOfRangeError{ParamName: paramName, Value: value, Min: minValue, Max: maxValue}
}

func NewValueIsOutOfRangeErrorWithCause(
	paramName string,
	value, minValue, maxValue any,
	cause error,
) *ValueIsOutOfRangeError {
	return &ValueIsOutOfRangeError{ParamName: paramName, Value: value, Min: minValue, Max: maxValue, Cause: cause}
}

func (e *ValueIsOutOfRangeError) Error() string {
	msg := fmt.Sprintf("%s: %v is %s, min value is %v, max value is %v",
		ErrValueIsInvalid, sanitize(e.Value), e.ParamName, sanitize(e.Min), sanitize(e.Max))
	return withCause(msg, e.Cause)
}

func (e *ValueIsOutOfRangeError) Unwrap() error {
	return ErrValueIsOutOfRange
}

type ObjectNotFoundError struct {
	ParamName string
	ID        any
	Cause     error
}

func NewObjectNotFoundError(paramName string, id any) *ObjectNotFoundError {
	return &ObjectNotFoundError{ParamName: paramName, ID: id}
}

func NewObjectNotFoundErrorWithCause(paramName string, id any, cause error) *ObjectNotFoundError {
	return &ObjectNotFoundError{ParamName: paramName, ID: id, Cause: cause}
}

func (e *ObjectNotFoundError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: param is: %s, ID is: %s (cause: %v)", ErrObjectNotFound, e.ParamName, e.ID, e.Cause)
	}
	return fmt.Sprintf("%s: %s", ErrObjectNotFound, e.ID)
}

func (e *ObjectNotFoundError) Unwrap() error {
	return ErrObjectNotFound
}

// BusinessRuleViolationError is returned when an otherwise well-formed request
// is refused by a domain rule. Current/Attempted describe the state change,
// Measured/Limit the quantity that broke the rule; unused pairs stay nil.
type BusinessRuleViolationError struct {
	Rule      string
	Current   any
	Attempted any
	Measured  any
	Limit     any
	Cause     error
}

func NewBusinessRuleViolationError(rule string, current, attempted any) *BusinessRuleViolationError {
	return &BusinessRuleViolationError{Rule: rule, Current: current, Attempted: attempted}
}

func NewLimitExceededError(rule string, measured, limit any) *BusinessRuleViolationError {
	return &BusinessRuleViolationError{Rule: rule, Measured: measured, Limit: limit}
}

func NewBusinessRuleViolationErrorWithCause(rule string, current, attempted any, cause error) *BusinessRuleViolationError {
	return &BusinessRuleViolationError{Rule: rule, Current: current, Attempted: attempted, Cause: cause}
}

func (e *BusinessRuleViolationError) Error() string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s: %s", ErrBusinessRuleViolation, e.Rule)
	if e.Current != nil || e.Attempted != nil {
		fmt.Fprintf(&b, ", current is %v, attempted is %v", sanitize(e.Current), sanitize(e.Attempted))
	}
	if e.Measured != nil || e.Limit != nil {
		fmt.Fprintf(&b, ", measured is %v, limit is %v", sanitize(e.Measured), sanitize(e.Limit))
	}
	return withCause(b.String(), e.Cause)
}

func (e *BusinessRuleViolationError) Unwrap() error {
	return ErrBusinessRuleViolation
}

// ConcurrencyConflictError signals that the aggregate changed after it was read.
// Callers are expected to reload and retry.
type ConcurrencyConflictError struct {
	Aggregate       string
	ID              any
	ExpectedVersion int64
	Cause           error
}

func NewConcurrencyConflictError(aggregate string, id any, expectedVersion int64) *ConcurrencyConflictError {
	return &ConcurrencyConflictError{Aggregate: aggregate, ID: id, ExpectedVersion: expectedVersion}
}

func NewConcurrencyConflictErrorWithCause(aggregate string, id any, cause error) *ConcurrencyConflictError {
	return &ConcurrencyConflictError{Aggregate: aggregate, ID: id, Cause: cause}
}

func (e *ConcurrencyConflictError) Error() string {
	msg := fmt.Sprintf("%s: %s %v", ErrConcurrencyConflict, e.Aggregate, e.ID)
	if e.ExpectedVersion > 0 {
		msg = fmt.Sprintf("%s, expected version is %d", msg, e.ExpectedVersion)
	}
	return withCause(msg, e.Cause)
}

func (e *ConcurrencyConflictError) Unwrap() error {
	return ErrConcurrencyConflict
}

type ExternalServiceError struct {
	Service string
	Cause   error
}

func NewExternalServiceError(service string, cause error) *ExternalServiceError {
	return &ExternalServiceError{Service: service, Cause: cause}
}

func (e *ExternalServiceError) Error() string {
	return withCause(fmt.Sprintf("%s: %s", ErrExternalService, e.Service), e.Cause)
}

func (e *ExternalServiceError) Unwrap() error {
	return ErrExternalService
}

func withCause(msg string, cause error) string {
	if cause == nil {
		return msg
	}
	return fmt.Sprintf("%s (cause: %v)", msg, cause)
}

func sanitize(v any) string {
	return strings.ReplaceAll(fmt.Sprintf("%v", v), "\n", " ")
}
