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

const clientTable = "clients"

// У клиентов нет представления, читаем таблицу напрямую.
var clientSource = listSource{
	table: clientTable,
	columns: []string{
		"id", "client_type", "name", "surname", "company_name", "tax_code", "vat_number",
		"email", "phone", "address", "city", "notes", "created_at", "updated_at",
	},
	fields: map[string]string{
		"id":           "id",
		"client_type":  "client_type",
		"name":         "name",
		"surname":      "surname",
		"company_name": "company_name",
		"city":         "city",
		"email":        "email",
		"created_at":   "created_at",
		"updated_at":   "updated_at",
	},
	search: []string{"name", "surname", "company_name", "tax_code", "vat_number", "email", "phone", "city"},
}

var clientWritable = writableSet(
	"client_type", "name", "surname", "company_name", "tax_code", "vat_number",
	"email", "phone", "address", "city", "notes",
)

type ClientRepositoryInterface interface {
	List(ctx context.Context, filter types.Filter) ([]entities.Client, uint64, error)
	Find(ctx context.Context, id uint64) (*entities.Client, error)
	Create(ctx context.Context, tx pgx.Tx, client entities.Client) (uint64, error)
	Update(ctx context.Context, tx pgx.Tx, id uint64, fields map[string]interface{}) error
	Delete(ctx context.Context, id uint64) error
}

type ClientRepository struct {
	storage *pgxpool.Pool
	reader  viewReader
	logger  *zap.Logger
}

func NewClientRepository(storage *pgxpool.Pool, logger *zap.Logger) ClientRepositoryInterface {
	return &ClientRepository{
		storage: storage,
		reader:  newViewReader(storage, logger, nil),
		logger:  logger,
	}
}

func scanClient(row pgx.Row) (*entities.Client, error) {
	var c entities.Client
	err := row.Scan(
		&c.ID, &c.ClientType, &c.Name, &c.Surname, &c.CompanyName, &c.TaxCode, &c.VatNumber,
		&c.Email, &c.Phone, &c.Address, &c.City, &c.Notes, &c.CreatedAt, &c.UpdatedAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, apperrors.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("ошибка сканирования client: %w", err)
	}
	return &c, nil
}

func (r *ClientRepository) List(ctx context.Context, filter types.Filter) ([]entities.Client, uint64, error) {
	return listRows(ctx, r.reader, clientSource, filter, scanClient)
}

func (r *ClientRepository) Find(ctx context.Context, id uint64) (*entities.Client, error) {
	return findRow(ctx, r.reader, clientSource, sq.Eq{"id": id}, scanClient)
}

func (r *ClientRepository) Create(ctx context.Context, tx pgx.Tx, c entities.Client) (uint64, error) {
	values := map[string]interface{}{
		"client_type":  c.ClientType,
		"name":         c.Name,
		"surname":      c.Surname,
		"company_name": c.CompanyName,
		"tax_code":     c.TaxCode,
		"vat_number":   c.VatNumber,
		"email":        c.Email,
		"phone":        c.Phone,
		"address":      c.Address,
		"city":         c.City,
		"notes":        c.Notes,
	}
	id, err := insertRow(ctx, pick(r.storage, tx), clientTable, values)
	if err != nil {
		r.logger.Error("ошибка создания клиента", zap.Error(err))
		return 0, err
	}
	return id, nil
}

func (r *ClientRepository) Update(ctx context.Context, tx pgx.Tx, id uint64, fields map[string]interface{}) error {
	return updateRow(ctx, pick(r.storage, tx), clientTable, id, fields, clientWritable)
}

func (r *ClientRepository) Delete(ctx context.Context, id uint64) error {
	return deleteRow(ctx, r.storage, clientTable, id)
}
