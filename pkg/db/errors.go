package db

import (
	"errors"
	"strings"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/mattn/go-sqlite3"
	"gorm.io/gorm"
)

const pgUniqueViolation = "23505"

// IsUniqueViolation reports whether err is a unique constraint failure from
// either supported driver. When constraintName is provided, the helper also
// requires the constraint (or column list, for sqlite) to appear in the
// error text.
func IsUniqueViolation(err error, constraintName string) bool {
	if err == nil {
		return false
	}

	matched := errors.Is(err, gorm.ErrDuplicatedKey)

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == pgUniqueViolation {
		if constraintName != "" {
			return pgErr.ConstraintName == constraintName
		}
		return true
	}

	var liteErr sqlite3.Error
	if errors.As(err, &liteErr) && liteErr.ExtendedCode == sqlite3.ErrConstraintUnique {
		matched = true
	}

	if !matched {
		matched = strings.Contains(err.Error(), "duplicate key value") ||
			strings.Contains(err.Error(), "UNIQUE constraint failed")
	}
	if matched && constraintName != "" && !errors.Is(err, gorm.ErrDuplicatedKey) {
		return strings.Contains(err.Error(), constraintName)
	}
	return matched
}

// IsNotFound reports whether err is gorm's record-not-found sentinel.
func IsNotFound(err error) bool {
	return errors.Is(err, gorm.ErrRecordNotFound)
}
