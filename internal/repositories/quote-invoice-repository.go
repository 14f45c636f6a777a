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

const quoteInvoiceTable = "quotes_invoices"

var quoteInvoiceSource = listSource{
	view:  "quotes_invoices_view",
	table: quoteInvoiceTable,
	columns: []string{
		"id", "client_id", "doc_type", "doc_number", "issue_date", "due_date", "status",
		"amount", "vat_rate", "total_amount", "notes", "file_path", "created_at", "updated_at",
	},
	viewColumns:     []string{"client_name"},
	fallbackColumns: []string{"NULL::text AS client_name"},
	fields: map[string]string{
		"id":           "id",
		"client_id":    "client_id",
		"doc_type":     "doc_type",
		"doc_number":   "doc_number",
		"issue_date":   "issue_date",
		"due_date":     "due_date",
		"status":       "status",
		"amount":       "amount",
		"total_amount": "total_amount",
		"created_at":   "created_at",
		"updated_at":   "updated_at",
	},
	viewFields: map[string]string{"client_name": "client_name"},
	search:     []string{"doc_number", "notes"},
	viewSearch: []string{"client_name"},
}

var quoteInvoiceWritable = writableSet(
	"client_id", "doc_type", "doc_number", "issue_date", "due_date", "status",
	"amount", "vat_rate", "total_amount", "notes", "file_path",
)

type QuoteInvoiceRepositoryInterface interface {
	List(ctx context.Context, filter types.Filter) ([]entities.QuoteInvoice, uint64, error)
	Find(ctx context.Context, id uint64) (*entities.QuoteInvoice, error)
	Create(ctx context.Context, tx pgx.Tx, doc entities.QuoteInvoice) (uint64, error)
	Update(ctx context.Context, tx pgx.Tx, id uint64, fields map[string]interface{}) error
	Delete(ctx context.Context, id uint64) error
}

type QuoteInvoiceRepository struct {
	storage *pgxpool.Pool
	reader  viewReader
	logger  *zap.Logger
}

func NewQuoteInvoiceRepository(storage *pgxpool.Pool, logger *zap.Logger, onFallback ViewFallbackHook) QuoteInvoiceRepositoryInterface {
	return &QuoteInvoiceRepository{
		storage: storage,
		reader:  newViewReader(storage, logger, onFallback),
		logger:  logger,
	}
}

func scanQuoteInvoice(row pgx.Row) (*entities.QuoteInvoice, error) {
	var q entities.QuoteInvoice
	err := row.Scan(
		&q.ID, &q.ClientID, &q.DocType, &q.DocNumber, &q.IssueDate, &q.DueDate, &q.Status,
		&q.Amount, &q.VatRate, &q.TotalAmount, &q.Notes, &q.FilePath, &q.CreatedAt, &q.UpdatedAt,
		&q.ClientName,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, apperrors.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("ошибка сканирования quote_invoice: %w", err)
	}
	return &q, nil
}

func (r *QuoteInvoiceRepository) List(ctx context.Context, filter types.Filter) ([]entities.QuoteInvoice, uint64, error) {
	return listRows(ctx, r.reader, quoteInvoiceSource, filter, scanQuoteInvoice)
}

func (r *QuoteInvoiceRepository) Find(ctx context.Context, id uint64) (*entities.QuoteInvoice, error) {
	return findRow(ctx, r.reader, quoteInvoiceSource, sq.Eq{"id": id}, scanQuoteInvoice)
}

func (r *QuoteInvoiceRepository) Create(ctx context.Context, tx pgx.Tx, q entities.QuoteInvoice) (uint64, error) {
	values := map[string]interface{}{
		"client_id":    q.ClientID,
		"doc_type":     q.DocType,
		"doc_number":   q.DocNumber,
		"issue_date":   q.IssueDate,
		"due_date":     q.DueDate,
		"status":       q.Status,
		"amount":       q.Amount,
		"vat_rate":     q.VatRate,
		"total_amount": q.TotalAmount,
		"notes":        q.Notes,
		"file_path":    q.FilePath,
	}
	if q.IssueDate.IsZero() {
		delete(values, "issue_date")
	}
	id, err := insertRow(ctx, pick(r.storage, tx), quoteInvoiceTable, values)
	if err != nil {
		r.logger.Error("ошибка создания документа", zap.String("doc_number", q.DocNumber), zap.Error(err))
		return 0, err
	}
	return id, nil
}

func (r *QuoteInvoiceRepository) Update(ctx context.Context, tx pgx.Tx, id uint64, fields map[string]interface{}) error {
	return updateRow(ctx, pick(r.storage, tx), quoteInvoiceTable, id, fields, quoteInvoiceWritable)
}

func (r *QuoteInvoiceRepository) Delete(ctx context.Context, id uint64) error {
	return deleteRow(ctx, r.storage, quoteInvoiceTable, id)
}
