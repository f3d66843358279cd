// Package pgerr maps PostgreSQL failures onto the core error types so that
// handlers never see driver errors for conditions they can act on.
package pgerr

import (
	"errors"

	"forwarding/internal/pkg/errs"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
)

const (
	codeUniqueViolation      = "23505"
	codeForeignKeyViolation  = "23503"
	codeSerializationFailure = "40001"
	codeDeadlockDetected     = "40P01"
	codeLockNotAvailable     = "55P03"
	codeQueryCanceled        = "57014"
)

// Translate converts lock, serialization and constraint failures. Errors it
// does not recognise are returned unchanged.
func Translate(err error, aggregate string, id any) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return errs.NewObjectNotFoundErrorWithCause(aggregate, id, err)
	}

	var pgErr *pgconn.PgError
	if !errors.As(err, &pgErr) {
		return err
	}

	switch pgErr.Code {
	case codeSerializationFailure, codeDeadlockDetected, codeLockNotAvailable, codeQueryCanceled:
		return errs.NewConcurrencyConflictErrorWithCause(aggregate, id, err)
	case codeUniqueViolation:
		return errs.NewBusinessRuleViolationErrorWithCause(
			aggregate+" must be unique", pgErr.ConstraintName, id, err)
	case codeForeignKeyViolation:
		return errs.NewBusinessRuleViolationErrorWithCause(
			aggregate+" is still referenced", pgErr.ConstraintName, id, err)
	default:
		return err
	}
}

// IsUniqueViolation reports whether err breaks the named unique constraint or
// index.
func IsUniqueViolation(err error, constraint string) bool {
	var pgErr *pgconn.PgError
	if !errors.As(err, &pgErr) {
		return false
	}
	return pgErr.Code == codeUniqueViolation && pgErr.ConstraintName == constraint
}

// IsConflict reports whether err is a retryable lock or serialization failure.
func IsConflict(err error) bool {
	var pgErr *pgconn.PgError
	if !errors.As(err, &pgErr) {
		return false
	}
	switch pgErr.Code {
	case codeSerializationFailure, codeDeadlockDetected, codeLockNotAvailable:
		return true
	default:
		return false
	}
}
