package repositories

import (
	"context"
	"fmt"

	sq "github.com/Masterminds/squirrel"

	apperrors "refurb-tracker/pkg/errors"
)

func insertRow(ctx context.Context, q Querier, table string, values map[string]interface{}) (uint64, error) {
	query, args, err := psql.Insert(table).SetMap(values).Suffix("RETURNING id").ToSql()
	if err != nil {
		return 0, fmt.Errorf("ошибка построения запроса: %w", err)
	}
	var id uint64
	if err := q.QueryRow(ctx, query, args...).Scan(&id); err != nil {
		return 0, mapPgError(err)
	}
	return id, nil
}

// updateRow обновляет только разрешённые колонки из fields.
func updateRow(ctx context.Context, q Querier, table string, id uint64, fields map[string]interface{}, writable map[string]bool) error {
	set := make(map[string]interface{}, len(fields)+1)
	for col, val := range fields {
		if writable[col] {
			set[col] = val
		}
	}
	if len(set) == 0 {
		return apperrors.ErrNothingToUpdate
	}
	set["updated_at"] = sq.Expr("NOW()")

	query, args, err := psql.Update(table).SetMap(set).Where(sq.Eq{"id": id}).ToSql()
	if err != nil {
		return fmt.Errorf("ошибка построения запроса: %w", err)
	}
	tag, err := q.Exec(ctx, query, args...)
	if err != nil {
		return mapPgError(err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

func deleteRow(ctx context.Context, q Querier, table string, id uint64) error {
	tag, err := q.Exec(ctx, fmt.Sprintf("DELETE FROM %s WHERE id = $1", table), id)
	if err != nil {
		return mapPgError(err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

func writableSet(cols ...string) map[string]bool {
	set := make(map[string]bool, len(cols))
	for _, c := range cols {
		set[c] = true
	}
	return set
}

// nullable превращает пустую строку в NULL.
func nullable(s string) interface{} {
	if s == "" {
		return nil
	}
	return s
}
