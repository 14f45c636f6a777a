package repositories

import (
	"context"
	"errors"
	"fmt"
	"strings"

	sq "github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"

	"refurb-tracker/internal/entities"
	apperrors "refurb-tracker/pkg/errors"
	"refurb-tracker/pkg/types"
)

const operatorTable = "operators"

var operatorSource = listSource{
	table: operatorTable,
	columns: []string{
		"id", "name", "surname", "email", "phone", "role", "active", "created_at", "updated_at",
	},
	fields: map[string]string{
		"id":         "id",
		"name":       "name",
		"surname":    "surname",
		"email":      "email",
		"role":       "role",
		"active":     "active",
		"created_at": "created_at",
		"updated_at": "updated_at",
	},
	search: []string{"name", "surname", "email"},
}

var operatorWritable = writableSet("name", "surname", "email", "phone", "role", "active")

type OperatorRepositoryInterface interface {
	List(ctx context.Context, filter types.Filter) ([]entities.Operator, uint64, error)
	Find(ctx context.Context, id uint64) (*entities.Operator, error)
	FindByEmail(ctx context.Context, email string) (*entities.Operator, error)
	Create(ctx context.Context, tx pgx.Tx, operator entities.Operator) (uint64, error)
	Update(ctx context.Context, tx pgx.Tx, id uint64, fields map[string]interface{}) error
	Delete(ctx context.Context, id uint64) error
}

type OperatorRepository struct {
	storage *pgxpool.Pool
	reader  viewReader
	logger  *zap.Logger
}

func NewOperatorRepository(storage *pgxpool.Pool, logger *zap.Logger) OperatorRepositoryInterface {
	return &OperatorRepository{
		storage: storage,
		reader:  newViewReader(storage, logger, nil),
		logger:  logger,
	}
}

func scanOperator(row pgx.Row) (*entities.Operator, error) {
	var o entities.Operator
	err := row.Scan(&o.ID, &o.Name, &o.Surname, &o.Email, &o.Phone, &o.Role, &o.Active, &o.CreatedAt, &o.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, apperrors.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("ошибка сканирования operator: %w", err)
	}
	return &o, nil
}

func (r *OperatorRepository) List(ctx context.Context, filter types.Filter) ([]entities.Operator, uint64, error) {
	return listRows(ctx, r.reader, operatorSource, filter, scanOperator)
}

func (r *OperatorRepository) Find(ctx context.Context, id uint64) (*entities.Operator, error) {
	return findRow(ctx, r.reader, operatorSource, sq.Eq{"id": id}, scanOperator)
}

func (r *OperatorRepository) FindByEmail(ctx context.Context, email string) (*entities.Operator, error) {
	return findRow(ctx, r.reader, operatorSource, sq.Expr("LOWER(email) = ?", strings.ToLower(email)), scanOperator)
}

func (r *OperatorRepository) Create(ctx context.Context, tx pgx.Tx, o entities.Operator) (uint64, error) {
	values := map[string]interface{}{
		"name":    o.Name,
		"surname": o.Surname,
		"email":   o.Email,
		"phone":   o.Phone,
		"role":    o.Role,
		"active":  o.Active,
	}
	id, err := insertRow(ctx, pick(r.storage, tx), operatorTable, values)
	if err != nil {
		r.logger.Error("ошибка создания оператора", zap.String("email", o.Email), zap.Error(err))
		return 0, err
	}
	return id, nil
}

func (r *OperatorRepository) Update(ctx context.Context, tx pgx.Tx, id uint64, fields map[string]interface{}) error {
	return updateRow(ctx, pick(r.storage, tx), operatorTable, id, fields, operatorWritable)
}

func (r *OperatorRepository) Delete(ctx context.Context, id uint64) error {
	return deleteRow(ctx, r.storage, operatorTable, id)
}
