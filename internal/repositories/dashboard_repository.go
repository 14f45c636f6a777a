package repositories

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"

	"refurb-tracker/pkg/types"
)

type DashboardRepositoryInterface interface {
	Stats(ctx context.Context) (*types.DashboardStats, error)
}

type DashboardRepository struct {
	storage *pgxpool.Pool
	logger  *zap.Logger
}

func NewDashboardRepository(storage *pgxpool.Pool, logger *zap.Logger) DashboardRepositoryInterface {
	return &DashboardRepository{storage: storage, logger: logger}
}

func (r *DashboardRepository) Stats(ctx context.Context) (*types.DashboardStats, error) {
	stats := &types.DashboardStats{}

	totals := psql.Select(
		"(SELECT COUNT(*) FROM devices)",
		"(SELECT COUNT(*) FROM clients)",
		"(SELECT COUNT(*) FROM interventions WHERE status IN ('pending', 'in_progress'))",
		"(SELECT COUNT(*) FROM client_orders WHERE status NOT IN ('delivered', 'cancelled'))",
		"(SELECT COALESCE(SUM(total_amount), 0)::float8 FROM quotes_invoices WHERE doc_type = 'invoice' AND status NOT IN ('paid', 'cancelled'))",
	)
	query, args, err := totals.ToSql()
	if err != nil {
		return nil, err
	}
	if err := r.storage.QueryRow(ctx, query, args...).Scan(
		&stats.DevicesTotal, &stats.ClientsTotal, &stats.OpenInterventions,
		&stats.OpenClientOrders, &stats.UnpaidInvoicesTotal,
	); err != nil {
		return nil, fmt.Errorf("ошибка получения итогов: %w", err)
	}

	if stats.DevicesByStockStatus, err = r.countBy(ctx, "devices", "stock_status"); err != nil {
		return nil, err
	}
	if stats.DevicesByCategory, err = r.countBy(ctx, "devices", "category"); err != nil {
		return nil, err
	}
	if stats.InterventionsByStatus, err = r.countBy(ctx, "interventions", "status"); err != nil {
		return nil, err
	}
	return stats, nil
}

func (r *DashboardRepository) countBy(ctx context.Context, table, column string) ([]types.CountByKey, error) {
	query, args, err := psql.Select(column, "COUNT(*)").
		From(table).
		GroupBy(column).
		OrderBy("COUNT(*) DESC", column).
		ToSql()
	if err != nil {
		return nil, err
	}

	rows, err := r.storage.Query(ctx, query, args...)
	if err != nil {
		r.logger.Error("ошибка группировки", zap.String("table", table), zap.String("column", column), zap.Error(err))
		return nil, err
	}
	defer rows.Close()

	result := make([]types.CountByKey, 0)
	for rows.Next() {
		var item types.CountByKey
		if err := rows.Scan(&item.Key, &item.Count); err != nil {
			return nil, err
		}
		result = append(result, item)
	}
	return result, rows.Err()
}
