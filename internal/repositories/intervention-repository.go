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

const interventionTable = "interventions"

var interventionSource = listSource{
	view:  "interventions_view",
	table: interventionTable,
	columns: []string{
		"id", "device_id", "operator_id", "intervention_type", "description", "status",
		"cost", "started_at", "completed_at", "created_at", "updated_at",
	},
	viewColumns: []string{"device_category", "device_item_code", "device_brand", "device_model", "operator_name"},
	fallbackColumns: []string{
		"NULL::text AS device_category", "NULL::text AS device_item_code", "NULL::text AS device_brand",
		"NULL::text AS device_model", "NULL::text AS operator_name",
	},
	fields: map[string]string{
		"id":                "id",
		"device_id":         "device_id",
		"operator_id":       "operator_id",
		"intervention_type": "intervention_type",
		"status":            "status",
		"cost":              "cost",
		"started_at":        "started_at",
		"completed_at":      "completed_at",
		"created_at":        "created_at",
		"updated_at":        "updated_at",
	},
	viewFields: map[string]string{
		"device_category":  "device_category",
		"device_item_code": "device_item_code",
		"operator_name":    "operator_name",
	},
	search:     []string{"description", "intervention_type"},
	viewSearch: []string{"device_item_code", "device_brand", "device_model", "operator_name"},
}

var interventionWritable = writableSet(
	"operator_id", "intervention_type", "description", "status", "cost", "started_at", "completed_at",
)

type InterventionRepositoryInterface interface {
	List(ctx context.Context, filter types.Filter) ([]entities.Intervention, uint64, error)
	ListByDevice(ctx context.Context, deviceID uint64, filter types.Filter) ([]entities.Intervention, uint64, error)
	Find(ctx context.Context, id uint64) (*entities.Intervention, error)
	Create(ctx context.Context, tx pgx.Tx, intervention entities.Intervention) (uint64, error)
	Update(ctx context.Context, tx pgx.Tx, id uint64, fields map[string]interface{}) error
	Delete(ctx context.Context, id uint64) error
}

type InterventionRepository struct {
	storage *pgxpool.Pool
	reader  viewReader
	logger  *zap.Logger
}

func NewInterventionRepository(storage *pgxpool.Pool, logger *zap.Logger, onFallback ViewFallbackHook) InterventionRepositoryInterface {
	return &InterventionRepository{
		storage: storage,
		reader:  newViewReader(storage, logger, onFallback),
		logger:  logger,
	}
}

func scanIntervention(row pgx.Row) (*entities.Intervention, error) {
	var i entities.Intervention
	err := row.Scan(
		&i.ID, &i.DeviceID, &i.OperatorID, &i.InterventionType, &i.Description, &i.Status,
		&i.Cost, &i.StartedAt, &i.CompletedAt, &i.CreatedAt, &i.UpdatedAt,
		&i.DeviceCategory, &i.DeviceItemCode, &i.DeviceBrand, &i.DeviceModel, &i.OperatorName,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, apperrors.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("ошибка сканирования intervention: %w", err)
	}
	return &i, nil
}

func (r *InterventionRepository) List(ctx context.Context, filter types.Filter) ([]entities.Intervention, uint64, error) {
	return listRows(ctx, r.reader, interventionSource, filter, scanIntervention)
}

func (r *InterventionRepository) ListByDevice(ctx context.Context, deviceID uint64, filter types.Filter) ([]entities.Intervention, uint64, error) {
	return r.List(ctx, withFilter(filter, "device_id", deviceID))
}

func (r *InterventionRepository) Find(ctx context.Context, id uint64) (*entities.Intervention, error) {
	return findRow(ctx, r.reader, interventionSource, sq.Eq{"id": id}, scanIntervention)
}

func (r *InterventionRepository) Create(ctx context.Context, tx pgx.Tx, i entities.Intervention) (uint64, error) {
	values := map[string]interface{}{
		"device_id":         i.DeviceID,
		"operator_id":       i.OperatorID,
		"intervention_type": i.InterventionType,
		"description":       i.Description,
		"status":            i.Status,
		"cost":              i.Cost,
		"started_at":        i.StartedAt,
		"completed_at":      i.CompletedAt,
	}
	id, err := insertRow(ctx, pick(r.storage, tx), interventionTable, values)
	if err != nil {
		r.logger.Error("ошибка создания вмешательства", zap.Uint64("device_id", i.DeviceID), zap.Error(err))
		return 0, err
	}
	return id, nil
}

func (r *InterventionRepository) Update(ctx context.Context, tx pgx.Tx, id uint64, fields map[string]interface{}) error {
	return updateRow(ctx, pick(r.storage, tx), interventionTable, id, fields, interventionWritable)
}

func (r *InterventionRepository) Delete(ctx context.Context, id uint64) error {
	return deleteRow(ctx, r.storage, interventionTable, id)
}
