package repositories

import (
	"context"
	"fmt"

	sq "github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"

	db "refurb-tracker/internal/infrastructure/bd"
	"refurb-tracker/pkg/types"
)

// ViewFallbackHook вызывается, когда чтение ушло с представления на базовую таблицу.
type ViewFallbackHook func(view string)

// listSource описывает ресурс, который читается через представление
// с запасным вариантом - базовой таблицей без джойнов.
type listSource struct {
	view  string
	table string

	columns         []string // есть и в представлении, и в таблице
	viewColumns     []string // только в представлении
	fallbackColumns []string // заглушки вместо viewColumns, тот же порядок

	fields     map[string]string // json -> колонка, для фильтра и сортировки
	viewFields map[string]string
	search     []string
	viewSearch []string
}

type relation struct {
	from    string
	columns []string
	fields  map[string]string
	search  []string
}

func (s listSource) relation(fromView bool) relation {
	if !fromView {
		return relation{
			from:    s.table,
			columns: append(append([]string{}, s.columns...), s.fallbackColumns...),
			fields:  s.fields,
			search:  s.search,
		}
	}
	fields := make(map[string]string, len(s.fields)+len(s.viewFields))
	for k, v := range s.fields {
		fields[k] = v
	}
	for k, v := range s.viewFields {
		fields[k] = v
	}
	return relation{
		from:    s.view,
		columns: append(append([]string{}, s.columns...), s.viewColumns...),
		fields:  fields,
		search:  append(append([]string{}, s.search...), s.viewSearch...),
	}
}

// viewReader выполняет чтение с откатом на таблицу при 42P01/42703.
type viewReader struct {
	storage    Querier
	logger     *zap.Logger
	onFallback ViewFallbackHook
}

func newViewReader(storage *pgxpool.Pool, logger *zap.Logger, onFallback ViewFallbackHook) viewReader {
	return viewReader{storage: storage, logger: logger, onFallback: onFallback}
}

func (r viewReader) fallback(src listSource, err error) {
	r.logger.Warn("представление недоступно, читаем базовую таблицу",
		zap.String("view", src.view), zap.String("table", src.table), zap.Error(err))
	if r.onFallback != nil {
		r.onFallback(src.view)
	}
}

// listRows читает страницу списка. Второй проход по базовой таблице делается только при отсутствии представления.
func listRows[T any](ctx context.Context, r viewReader, src listSource, filter types.Filter, scan func(pgx.Row) (*T, error)) ([]T, uint64, error) {
	items, total, err := listFrom(ctx, r.storage, src.relation(src.view != ""), filter, scan)
	if err != nil && isUndefinedRelation(err) && src.view != "" {
		r.fallback(src, err)
		items, total, err = listFrom(ctx, r.storage, src.relation(false), filter, scan)
	}
	if err != nil {
		return nil, 0, mapPgError(err)
	}
	return items, total, nil
}

func listFrom[T any](ctx context.Context, q Querier, rel relation, filter types.Filter, scan func(pgx.Row) (*T, error)) ([]T, uint64, error) {
	countBuilder := psql.Select("COUNT(*)").From(rel.from)
	countBuilder = db.ApplySearch(countBuilder, filter.Search, rel.search)
	countBuilder = db.ApplyFilters(countBuilder, filter, rel.fields)

	sqlCount, argsCount, err := countBuilder.ToSql()
	if err != nil {
		return nil, 0, err
	}
	var total uint64
	if err := q.QueryRow(ctx, sqlCount, argsCount...).Scan(&total); err != nil {
		return nil, 0, err
	}
	if total == 0 {
		return []T{}, 0, nil
	}

	baseBuilder := psql.Select(rel.columns...).From(rel.from)
	baseBuilder = db.ApplySearch(baseBuilder, filter.Search, rel.search)
	baseBuilder = db.ApplyListParams(baseBuilder, filter, rel.fields)

	query, args, err := baseBuilder.ToSql()
	if err != nil {
		return nil, 0, err
	}
	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	capacity := filter.Limit
	if capacity <= 0 || uint64(capacity) > total {
		capacity = int(total)
	}
	items := make([]T, 0, capacity)
	for rows.Next() {
		item, err := scan(rows)
		if err != nil {
			return nil, 0, err
		}
		items = append(items, *item)
	}
	return items, total, rows.Err()
}

// findRow читает одну запись по условию, с тем же откатом на таблицу.
func findRow[T any](ctx context.Context, r viewReader, src listSource, where sq.Sqlizer, scan func(pgx.Row) (*T, error)) (*T, error) {
	item, err := findFrom(ctx, r.storage, src.relation(src.view != ""), where, scan)
	if err != nil && isUndefinedRelation(err) && src.view != "" {
		r.fallback(src, err)
		item, err = findFrom(ctx, r.storage, src.relation(false), where, scan)
	}
	if err != nil {
		return nil, mapPgError(err)
	}
	return item, nil
}

func findFrom[T any](ctx context.Context, q Querier, rel relation, where sq.Sqlizer, scan func(pgx.Row) (*T, error)) (*T, error) {
	query, args, err := psql.Select(rel.columns...).From(rel.from).Where(where).ToSql()
	if err != nil {
		return nil, fmt.Errorf("ошибка построения запроса: %w", err)
	}
	return scan(q.QueryRow(ctx, query, args...))
}
