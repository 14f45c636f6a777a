package repositories

import (
	"context"
	"errors"
	"fmt"

	sq "github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"

	"refurb-tracker/internal/entities"
	apperrors "refurb-tracker/pkg/errors"
	"refurb-tracker/pkg/types"
)

const clientOrderTable = "client_orders"

var clientOrderSource = listSource{
	view:  "client_orders_view",
	table: clientOrderTable,
	columns: []string{
		"id", "client_id", "device_id", "description", "status", "order_date",
		"expected_date", "deposit", "notes", "created_at", "updated_at",
	},
	viewColumns: []string{"client_name", "device_category", "device_item_code"},
	fallbackColumns: []string{
		"NULL::text AS client_name", "NULL::text AS device_category", "NULL::text AS device_item_code",
	},
	fields: map[string]string{
		"id":            "id",
		"client_id":     "client_id",
		"device_id":     "device_id",
		"status":        "status",
		"order_date":    "order_date",
		"expected_date": "expected_date",
		"deposit":       "deposit",
		"created_at":    "created_at",
		"updated_at":    "updated_at",
	},
	viewFields: map[string]string{"client_name": "client_name"},
	search:     []string{"description", "notes"},
	viewSearch: []string{"client_name", "device_item_code"},
}

var clientOrderWritable = writableSet(
	"client_id", "device_id", "description", "status", "order_date", "expected_date", "deposit", "notes",
)

type ClientOrderRepositoryInterface interface {
	List(ctx context.Context, filter types.Filter) ([]entities.ClientOrder, uint64, error)
	Find(ctx context.Context, id uint64) (*entities.ClientOrder, error)
	Create(ctx context.Context, tx pgx.Tx, order entities.ClientOrder) (uint64, error)
	Update(ctx context.Context, tx pgx.Tx, id uint64, fields map[string]interface{}) error
	Delete(ctx context.Context, id uint64) error
}

type ClientOrderRepository struct {
	storage *pgxpool.Pool
	reader  viewReader
	logger  *zap.Logger
}

func NewClientOrderRepository(storage *pgxpool.Pool, logger *zap.Logger, onFallback ViewFallbackHook) ClientOrderRepositoryInterface {
	return &ClientOrderRepository{
		storage: storage,
		reader:  newViewReader(storage, logger, onFallback),
		logger:  logger,
	}
}

func scanClientOrder(row pgx.Row) (*entities.ClientOrder, error) {
	var o entities.ClientOrder
	err := row.Scan(
		&o.ID, &o.ClientID, &o.DeviceID, &o.Description, &o.Status, &o.OrderDate,
		&o.ExpectedDate, &o.Deposit, &o.Notes, &o.CreatedAt, &o.UpdatedAt,
		&o.ClientName, &o.DeviceCategory, &o.DeviceItemCode,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, apperrors.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("ошибка сканирования client_order: %w", err)
	}
	return &o, nil
}

func (r *ClientOrderRepository) List(ctx context.Context, filter types.Filter) ([]entities.ClientOrder, uint64, error) {
	return listRows(ctx, r.reader, clientOrderSource, filter, scanClientOrder)
}

func (r *ClientOrderRepository) Find(ctx context.Context, id uint64) (*entities.ClientOrder, error) {
	return findRow(ctx, r.reader, clientOrderSource, sq.Eq{"id": id}, scanClientOrder)
}

func (r *ClientOrderRepository) Create(ctx context.Context, tx pgx.Tx, o entities.ClientOrder) (uint64, error) {
	values := map[string]interface{}{
		"client_id":     o.ClientID,
		"device_id":     o.DeviceID,
		"description":   o.Description,
		"status":        o.Status,
		"order_date":    o.OrderDate,
		"expected_date": o.ExpectedDate,
		"deposit":       o.Deposit,
		"notes":         o.Notes,
	}
	if o.OrderDate.IsZero() {
		delete(values, "order_date")
	}
	id, err := insertRow(ctx, pick(r.storage, tx), clientOrderTable, values)
	if err != nil {
		r.logger.Error("ошибка создания заказа клиента", zap.Uint64("client_id", o.ClientID), zap.Error(err))
		return 0, err
	}
	return id, nil
}

func (r *ClientOrderRepository) Update(ctx context.Context, tx pgx.Tx, id uint64, fields map[string]interface{}) error {
	return updateRow(ctx, pick(r.storage, tx), clientOrderTable, id, fields, clientOrderWritable)
}

func (r *ClientOrderRepository) Delete(ctx context.Context, id uint64) error {
	return deleteRow(ctx, r.storage, clientOrderTable, id)
}
