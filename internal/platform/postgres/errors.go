package postgres

import (
	"database/sql"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5/pgconn"

	"github.com/hanzideck/hanzideck-api/internal/store"
)

// PostgreSQL error codes the stores care about. Anything else passes
// through unmapped.
const (
	uniqueViolationCode     = "23505"
	foreignKeyViolationCode = "23503"
	checkViolationCode      = "23514"
	notNullViolationCode    = "23502"
)

// MapError translates driver-level errors into the store package's
// sentinel errors so callers can use errors.Is without knowing the
// backend. The original error stays wrapped for debugging.
func MapError(err error) error {
	if err == nil {
		return nil
	}

	if errors.Is(err, sql.ErrNoRows) {
		return fmt.Errorf("%w: %v", store.ErrNotFound, err)
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case uniqueViolationCode:
			return fmt.Errorf("%w: %v", store.ErrDuplicate, err)
		case foreignKeyViolationCode, checkViolationCode, notNullViolationCode:
			return fmt.Errorf("%w: constraint violation (%s): %v",
				store.ErrInvalidEntity, constraintDetail(pgErr), err)
		}
	}

	return err
}

// constraintDetail names the violated constraint or column for the
// wrapped error message.
func constraintDetail(pgErr *pgconn.PgError) string {
	if pgErr.ConstraintName != "" {
		return pgErr.ConstraintName
	}
	return pgErr.ColumnName
}
