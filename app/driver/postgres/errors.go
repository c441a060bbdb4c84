package postgres

import (
	"errors"

	"github.com/jackc/pgx/v5/pgconn"
)

// uniqueViolationCode is the SQLSTATE for unique constraint violations.
const uniqueViolationCode = "23505"

// isUniqueViolation reports whether the error is a unique constraint
// violation. Concurrent create-if-absent flows rely on this to treat a lost
// insert race as success.
func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == uniqueViolationCode
}
