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

const deviceTable = "devices"

var deviceSource = listSource{
	view:  "devices_view",
	table: deviceTable,
	columns: []string{
		"id", "category", "item_code", "brand", "model", "serial_number", "imei",
		"condition", "grade", "stock_status", "purchase_price", "sale_price",
		"photo_path", "notes", "operator_id", "client_id", "created_at", "updated_at",
	},
	viewColumns: []string{"operator_name", "client_name", "interventions_count", "last_intervention_at"},
	fallbackColumns: []string{
		"NULL::text AS operator_name", "NULL::text AS client_name",
		"0::bigint AS interventions_count", "NULL::timestamptz AS last_intervention_at",
	},
	fields: map[string]string{
		"id":             "id",
		"category":       "category",
		"item_code":      "item_code",
		"brand":          "brand",
		"model":          "model",
		"serial_number":  "serial_number",
		"condition":      "condition",
		"grade":          "grade",
		"stock_status":   "stock_status",
		"purchase_price": "purchase_price",
		"sale_price":     "sale_price",
		"operator_id":    "operator_id",
		"client_id":      "client_id",
		"created_at":     "created_at",
		"updated_at":     "updated_at",
	},
	viewFields: map[string]string{
		"operator_name":        "operator_name",
		"client_name":          "client_name",
		"interventions_count":  "interventions_count",
		"last_intervention_at": "last_intervention_at",
	},
	search:     []string{"category", "item_code", "brand", "model", "serial_number", "imei"},
	viewSearch: []string{"client_name"},
}

var deviceWritable = writableSet(
	"category", "item_code", "brand", "model", "serial_number", "imei", "condition", "grade",
	"stock_status", "purchase_price", "sale_price", "photo_path", "notes", "operator_id", "client_id",
)

type DeviceRepositoryInterface interface {
	List(ctx context.Context, filter types.Filter) ([]entities.Device, uint64, error)
	ListByClient(ctx context.Context, clientID uint64, filter types.Filter) ([]entities.Device, uint64, error)
	ListByOperator(ctx context.Context, operatorID uint64, filter types.Filter) ([]entities.Device, uint64, error)
	Find(ctx context.Context, id uint64) (*entities.Device, error)
	FindByCode(ctx context.Context, category, itemCode string) (*entities.Device, error)
	Create(ctx context.Context, tx pgx.Tx, device entities.Device) (uint64, error)
	Update(ctx context.Context, tx pgx.Tx, id uint64, fields map[string]interface{}) error
	Delete(ctx context.Context, id uint64) error
}

type DeviceRepository struct {
	storage *pgxpool.Pool
	reader  viewReader
	logger  *zap.Logger
}

func NewDeviceRepository(storage *pgxpool.Pool, logger *zap.Logger, onFallback ViewFallbackHook) DeviceRepositoryInterface {
	return &DeviceRepository{
		storage: storage,
		reader:  newViewReader(storage, logger, onFallback),
		logger:  logger,
	}
}

func scanDevice(row pgx.Row) (*entities.Device, error) {
	var d entities.Device
	err := row.Scan(
		&d.ID, &d.Category, &d.ItemCode, &d.Brand, &d.Model, &d.SerialNumber, &d.IMEI,
		&d.Condition, &d.Grade, &d.StockStatus, &d.PurchasePrice, &d.SalePrice,
		&d.PhotoPath, &d.Notes, &d.OperatorID, &d.ClientID, &d.CreatedAt, &d.UpdatedAt,
		&d.OperatorName, &d.ClientName, &d.InterventionsCount, &d.LastInterventionAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, apperrors.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("ошибка сканирования device: %w", err)
	}
	return &d, nil
}

func (r *DeviceRepository) List(ctx context.Context, filter types.Filter) ([]entities.Device, uint64, error) {
	return listRows(ctx, r.reader, deviceSource, filter, scanDevice)
}

func (r *DeviceRepository) ListByClient(ctx context.Context, clientID uint64, filter types.Filter) ([]entities.Device, uint64, error) {
	return r.List(ctx, withFilter(filter, "client_id", clientID))
}

func (r *DeviceRepository) ListByOperator(ctx context.Context, operatorID uint64, filter types.Filter) ([]entities.Device, uint64, error) {
	return r.List(ctx, withFilter(filter, "operator_id", operatorID))
}

func (r *DeviceRepository) Find(ctx context.Context, id uint64) (*entities.Device, error) {
	return findRow(ctx, r.reader, deviceSource, sq.Eq{"id": id}, scanDevice)
}

func (r *DeviceRepository) FindByCode(ctx context.Context, category, itemCode string) (*entities.Device, error) {
	return findRow(ctx, r.reader, deviceSource, sq.Eq{"category": category, "item_code": itemCode}, scanDevice)
}

func (r *DeviceRepository) Create(ctx context.Context, tx pgx.Tx, d entities.Device) (uint64, error) {
	values := map[string]interface{}{
		"category":       d.Category,
		"item_code":      d.ItemCode,
		"brand":          d.Brand,
		"model":          d.Model,
		"serial_number":  d.SerialNumber,
		"imei":           d.IMEI,
		"condition":      d.Condition,
		"grade":          d.Grade,
		"stock_status":   d.StockStatus,
		"purchase_price": d.PurchasePrice,
		"sale_price":     d.SalePrice,
		"photo_path":     d.PhotoPath,
		"notes":          d.Notes,
		"operator_id":    d.OperatorID,
		"client_id":      d.ClientID,
	}
	id, err := insertRow(ctx, pick(r.storage, tx), deviceTable, values)
	if err != nil {
		r.logger.Error("ошибка создания устройства", zap.String("item_code", d.ItemCode), zap.Error(err))
		return 0, err
	}
	return id, nil
}

func (r *DeviceRepository) Update(ctx context.Context, tx pgx.Tx, id uint64, fields map[string]interface{}) error {
	return updateRow(ctx, pick(r.storage, tx), deviceTable, id, fields, deviceWritable)
}

func (r *DeviceRepository) Delete(ctx context.Context, id uint64) error {
	return deleteRow(ctx, r.storage, deviceTable, id)
}

// withFilter возвращает копию фильтра с дополнительным условием.
func withFilter(filter types.Filter, field string, value interface{}) types.Filter {
	merged := make(map[string]interface{}, len(filter.Filter)+1)
	for k, v := range filter.Filter {
		merged[k] = v
	}
	merged[field] = value
	filter.Filter = merged
	return filter
}
