package errors

import (
	"context"
	stderrs "errors"
	"strings"

	"github.com/jackc/pgx/v5/pgconn"
)

// SQLSTATE codes a read only dataset can hit
const (
	pgErrUndefinedTable   = "42P01"
	pgErrQueryCanceled    = "57014"
	pgErrAdminShutdown    = "57P01"
	pgErrCannotConnectNow = "57P03"
	pgErrTooManyConns     = "53300"
	pgErrCheckViolation   = "23514"
	pgErrUniqueViolation  = "23505"
)

// DBErrorCode maps a storage error to an ErrorCode
// ok is false when err carries no SQLSTATE and is not a context error
func DBErrorCode(err error) (ErrorCode, bool) {
	if stderrs.Is(err, context.DeadlineExceeded) || stderrs.Is(err, context.Canceled) {
		return ErrorCodeUnavailable, true
	}
	var pgErr *pgconn.PgError
	if !stderrs.As(err, &pgErr) {
		return ErrorCodeUnknown, false
	}
	switch {
	case pgErr.Code == pgErrUniqueViolation:
		return ErrorCodeDuplicateKey, true
	case pgErr.Code == pgErrCheckViolation:
		return ErrorCodeValidation, true
	case pgErr.Code == pgErrQueryCanceled,
		pgErr.Code == pgErrAdminShutdown,
		pgErr.Code == pgErrCannotConnectNow,
		pgErr.Code == pgErrTooManyConns,
		strings.HasPrefix(pgErr.Code, "08"): // connection exceptions
		return ErrorCodeUnavailable, true
	case pgErr.Code == pgErrUndefinedTable:
		// schema not seeded yet
		return ErrorCodeUnavailable, true
	}
	return ErrorCodeDB, true
}

// FromPostgres wraps a storage error with a mapped ErrorCode and message
// errors with no SQLSTATE become ErrorCodeDB, nil stays nil
func FromPostgres(err error, msg string) error {
	if err == nil {
		return nil
	}
	if code, ok := DBErrorCode(err); ok {
		return Wrap(err, code, msg)
	}
	return Wrap(err, ErrorCodeDB, msg)
}
