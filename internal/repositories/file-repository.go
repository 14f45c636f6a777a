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

type fileTable struct {
	table       string
	ownerColumn string
}

var fileTables = map[string]fileTable{
	entities.FileKindDevice:       {table: "device_files", ownerColumn: "device_id"},
	entities.FileKindIntervention: {table: "intervention_files", ownerColumn: "intervention_id"},
}

func fileSource(kind string) (listSource, fileTable, error) {
	ft, ok := fileTables[kind]
	if !ok {
		return listSource{}, fileTable{}, fmt.Errorf("%w: %s", apperrors.ErrInvalidFileKind, kind)
	}
	return listSource{
		table: ft.table,
		columns: []string{
			"id", ft.ownerColumn, "bucket", "file_name", "file_path", "mime_type", "size_bytes", "created_at", "updated_at",
		},
		fields: map[string]string{
			"id":         "id",
			"owner_id":   ft.ownerColumn,
			"bucket":     "bucket",
			"mime_type":  "mime_type",
			"file_name":  "file_name",
			"size_bytes": "size_bytes",
			"created_at": "created_at",
		},
		search: []string{"file_name"},
	}, ft, nil
}

// FileRepositoryInterface - вложения устройств и вмешательств.
type FileRepositoryInterface interface {
	ListByOwner(ctx context.Context, kind string, ownerID uint64, filter types.Filter) ([]entities.Attachment, uint64, error)
	Find(ctx context.Context, kind string, id uint64) (*entities.Attachment, error)
	Create(ctx context.Context, tx pgx.Tx, file entities.Attachment) (uint64, error)
	Delete(ctx context.Context, tx pgx.Tx, kind string, id uint64) error
}

type FileRepository struct {
	storage *pgxpool.Pool
	reader  viewReader
	logger  *zap.Logger
}

func NewFileRepository(storage *pgxpool.Pool, logger *zap.Logger) FileRepositoryInterface {
	return &FileRepository{
		storage: storage,
		reader:  newViewReader(storage, logger, nil),
		logger:  logger,
	}
}

func scanAttachment(kind string) func(pgx.Row) (*entities.Attachment, error) {
	return func(row pgx.Row) (*entities.Attachment, error) {
		a := entities.Attachment{Kind: kind}
		err := row.Scan(&a.ID, &a.OwnerID, &a.Bucket, &a.FileName, &a.FilePath, &a.MimeType, &a.SizeBytes, &a.CreatedAt, &a.UpdatedAt)
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		if err != nil {
			return nil, fmt.Errorf("ошибка сканирования файла: %w", err)
		}
		return &a, nil
	}
}

func (r *FileRepository) ListByOwner(ctx context.Context, kind string, ownerID uint64, filter types.Filter) ([]entities.Attachment, uint64, error) {
	src, _, err := fileSource(kind)
	if err != nil {
		return nil, 0, err
	}
	return listRows(ctx, r.reader, src, withFilter(filter, "owner_id", ownerID), scanAttachment(kind))
}

func (r *FileRepository) Find(ctx context.Context, kind string, id uint64) (*entities.Attachment, error) {
	src, _, err := fileSource(kind)
	if err != nil {
		return nil, err
	}
	return findRow(ctx, r.reader, src, sq.Eq{"id": id}, scanAttachment(kind))
}

func (r *FileRepository) Create(ctx context.Context, tx pgx.Tx, f entities.Attachment) (uint64, error) {
	_, ft, err := fileSource(f.Kind)
	if err != nil {
		return 0, err
	}
	values := map[string]interface{}{
		ft.ownerColumn: f.OwnerID,
		"bucket":       f.Bucket,
		"file_name":    f.FileName,
		"file_path":    f.FilePath,
		"mime_type":    f.MimeType,
		"size_bytes":   f.SizeBytes,
	}
	id, err := insertRow(ctx, pick(r.storage, tx), ft.table, values)
	if err != nil {
		r.logger.Error("ошибка сохранения записи о файле", zap.String("kind", f.Kind), zap.Uint64("owner_id", f.OwnerID), zap.Error(err))
		return 0, err
	}
	return id, nil
}

func (r *FileRepository) Delete(ctx context.Context, tx pgx.Tx, kind string, id uint64) error {
	_, ft, err := fileSource(kind)
	if err != nil {
		return err
	}
	return deleteRow(ctx, pick(r.storage, tx), ft.table, id)
}
