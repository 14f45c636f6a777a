package repositories

import (
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	apperrors "refurb-tracker/pkg/errors"
)

const (
	pgUniqueViolation     = "23505"
	pgForeignKeyViolation = "23503"
	pgCheckViolation      = "23514"
	pgNotNullViolation    = "23502"
	pgUndefinedTable      = "42P01"
	pgUndefinedColumn     = "42703"
)

// mapPgError переводит нарушения ограничений базы в ошибки приложения.
func mapPgError(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, pgx.ErrNoRows) {
		return apperrors.ErrNotFound
	}
	var pgErr *pgconn.PgError
	if !errors.As(err, &pgErr) {
		return err
	}
	switch pgErr.Code {
	case pgUniqueViolation:
		return fmt.Errorf("%w (%s)", apperrors.ErrConflict, pgErr.ConstraintName)
	case pgForeignKeyViolation:
		return fmt.Errorf("%w (%s)", apperrors.ErrInUse, pgErr.ConstraintName)
	case pgCheckViolation:
		return fmt.Errorf("%w (%s)", apperrors.ErrInvalidValue, pgErr.ConstraintName)
	case pgNotNullViolation:
		return fmt.Errorf("%w: поле %s обязательно", apperrors.ErrBadRequest, pgErr.ColumnName)
	}
	return err
}

// isUndefinedRelation - представление или его колонка отсутствуют в базе.
func isUndefinedRelation(err error) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == pgUndefinedTable || pgErr.Code == pgUndefinedColumn
	}
	return false
}
