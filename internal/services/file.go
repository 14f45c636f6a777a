package services

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"

	"refurb-tracker/config"
	"refurb-tracker/internal/dto"
	"refurb-tracker/internal/entities"
	"refurb-tracker/internal/events"
	"refurb-tracker/internal/repositories"
	apperrors "refurb-tracker/pkg/errors"
	"refurb-tracker/pkg/filestorage"
	"refurb-tracker/pkg/types"
)

// kindBuckets - в какой бакет попадают вложения каждого вида.
var kindBuckets = map[string]string{
	entities.FileKindDevice:       config.BucketDeviceFiles,
	entities.FileKindIntervention: config.BucketInterventionFiles,
}

var kindTables = map[string]string{
	entities.FileKindDevice:       "device_files",
	entities.FileKindIntervention: "intervention_files",
}

// OpenedFile - файл для отдачи клиенту.
type OpenedFile struct {
	File     *os.File
	FileName string
	MimeType string
}

type FileServiceInterface interface {
	ListFiles(ctx context.Context, kind string, ownerID uint64, filter types.Filter) ([]dto.AttachmentDTO, uint64, error)
	Upload(ctx context.Context, kind string, ownerID uint64, fileName string, content io.Reader) (*dto.AttachmentDTO, error)
	Open(ctx context.Context, kind string, id uint64) (*OpenedFile, error)
	Delete(ctx context.Context, kind string, id uint64) error
	UploadDevicePhoto(ctx context.Context, deviceID uint64, fileName string, content io.Reader) (string, error)
	UploadDocument(ctx context.Context, docID uint64, fileName string, content io.Reader) (string, error)
	OpenDocument(ctx context.Context, docID uint64) (*OpenedFile, error)
}

type FileService struct {
	storage                filestorage.FileStorageInterface
	fileRepository         repositories.FileRepositoryInterface
	deviceRepository       repositories.DeviceRepositoryInterface
	interventionRepository repositories.InterventionRepositoryInterface
	quoteInvoiceRepository repositories.QuoteInvoiceRepositoryInterface
	txManager              repositories.TxManagerInterface
	notifier               changeNotifier
	logger                 *zap.Logger
}

func NewFileService(
	storage filestorage.FileStorageInterface,
	fileRepository repositories.FileRepositoryInterface,
	deviceRepository repositories.DeviceRepositoryInterface,
	interventionRepository repositories.InterventionRepositoryInterface,
	quoteInvoiceRepository repositories.QuoteInvoiceRepositoryInterface,
	txManager repositories.TxManagerInterface,
	bus EventPublisher,
	logger *zap.Logger,
) *FileService {
	return &FileService{
		storage:                storage,
		fileRepository:         fileRepository,
		deviceRepository:       deviceRepository,
		interventionRepository: interventionRepository,
		quoteInvoiceRepository: quoteInvoiceRepository,
		txManager:              txManager,
		notifier:               changeNotifier{bus: bus, logger: logger},
		logger:                 logger,
	}
}

func (s *FileService) ensureOwner(ctx context.Context, kind string, ownerID uint64) error {
	switch kind {
	case entities.FileKindDevice:
		_, err := s.deviceRepository.Find(ctx, ownerID)
		return err
	case entities.FileKindIntervention:
		_, err := s.interventionRepository.Find(ctx, ownerID)
		return err
	}
	return fmt.Errorf("%w: %s", apperrors.ErrInvalidFileKind, kind)
}

func (s *FileService) ListFiles(ctx context.Context, kind string, ownerID uint64, filter types.Filter) ([]dto.AttachmentDTO, uint64, error) {
	items, total, err := s.fileRepository.ListByOwner(ctx, kind, ownerID, filter)
	if err != nil {
		return nil, 0, err
	}
	return attachmentsToDTOs(items), total, nil
}

// Upload кладёт объект в бакет вида и сохраняет запись о нём.
// Если запись не сохранилась, объект удаляется.
func (s *FileService) Upload(ctx context.Context, kind string, ownerID uint64, fileName string, content io.Reader) (*dto.AttachmentDTO, error) {
	bucket, ok := kindBuckets[kind]
	if !ok {
		return nil, fmt.Errorf("%w: %s", apperrors.ErrInvalidFileKind, kind)
	}
	if err := s.ensureOwner(ctx, kind, ownerID); err != nil {
		return nil, err
	}

	stored, err := s.storage.Save(bucket, content, fileName)
	if err != nil {
		return nil, err
	}

	attachment := entities.Attachment{
		Kind:      kind,
		OwnerID:   ownerID,
		Bucket:    stored.Bucket,
		FileName:  filepath.Base(fileName),
		FilePath:  stored.Path,
		MimeType:  stored.MimeType,
		SizeBytes: stored.Size,
	}
	err = s.txManager.RunInTransaction(ctx, func(tx pgx.Tx) error {
		id, err := s.fileRepository.Create(ctx, tx, attachment)
		attachment.ID = id
		return err
	})
	if err != nil {
		if delErr := s.storage.Delete(stored.Bucket, stored.Path); delErr != nil {
			s.logger.Warn("не удалось удалить осиротевший файл", zap.String("path", stored.Path), zap.Error(delErr))
		}
		return nil, err
	}

	s.logger.Info("Файл загружен", zap.String("kind", kind), zap.Uint64("owner_id", ownerID), zap.String("path", stored.Path))
	s.notifier.changed(ctx, kindTables[kind], events.ActionInsert, attachment.ID)

	saved, err := s.fileRepository.Find(ctx, kind, attachment.ID)
	if err != nil {
		return nil, err
	}
	result := attachmentEntityToDTO(saved)
	return &result, nil
}

func (s *FileService) Open(ctx context.Context, kind string, id uint64) (*OpenedFile, error) {
	attachment, err := s.fileRepository.Find(ctx, kind, id)
	if err != nil {
		return nil, err
	}
	f, err := s.storage.Open(attachment.Bucket, attachment.FilePath)
	if err != nil {
		return nil, err
	}
	return &OpenedFile{File: f, FileName: attachment.FileName, MimeType: attachment.MimeType}, nil
}

// Delete удаляет запись, затем объект. Ошибка удаления объекта только логируется.
func (s *FileService) Delete(ctx context.Context, kind string, id uint64) error {
	attachment, err := s.fileRepository.Find(ctx, kind, id)
	if err != nil {
		return err
	}
	if err := s.fileRepository.Delete(ctx, nil, kind, id); err != nil {
		return err
	}
	if err := s.storage.Delete(attachment.Bucket, attachment.FilePath); err != nil {
		s.logger.Warn("запись удалена, но файл остался", zap.String("bucket", attachment.Bucket), zap.String("path", attachment.FilePath), zap.Error(err))
	}
	s.notifier.changed(ctx, kindTables[kind], events.ActionDelete, id)
	return nil
}

// UploadDevicePhoto сохраняет фото в публичный бакет и заменяет photo_path устройства.
func (s *FileService) UploadDevicePhoto(ctx context.Context, deviceID uint64, fileName string, content io.Reader) (string, error) {
	device, err := s.deviceRepository.Find(ctx, deviceID)
	if err != nil {
		return "", err
	}
	stored, err := s.storage.Save(config.BucketDevicePhotos, content, fileName)
	if err != nil {
		return "", err
	}
	if err := s.deviceRepository.Update(ctx, nil, deviceID, map[string]interface{}{"photo_path": stored.Path}); err != nil {
		_ = s.storage.Delete(stored.Bucket, stored.Path)
		return "", err
	}
	if device.PhotoPath != nil {
		if err := s.storage.Delete(config.BucketDevicePhotos, *device.PhotoPath); err != nil {
			s.logger.Warn("не удалось удалить старое фото", zap.String("path", *device.PhotoPath), zap.Error(err))
		}
	}
	s.notifier.changed(ctx, "devices", events.ActionUpdate, deviceID)
	return stored.Path, nil
}

// UploadDocument прикрепляет PDF к счёту или смете.
func (s *FileService) UploadDocument(ctx context.Context, docID uint64, fileName string, content io.Reader) (string, error) {
	doc, err := s.quoteInvoiceRepository.Find(ctx, docID)
	if err != nil {
		return "", err
	}
	stored, err := s.storage.Save(config.BucketDocuments, content, fileName)
	if err != nil {
		return "", err
	}
	if err := s.quoteInvoiceRepository.Update(ctx, nil, docID, map[string]interface{}{"file_path": stored.Path}); err != nil {
		_ = s.storage.Delete(stored.Bucket, stored.Path)
		return "", err
	}
	if doc.FilePath != nil {
		if err := s.storage.Delete(config.BucketDocuments, *doc.FilePath); err != nil {
			s.logger.Warn("не удалось удалить старый документ", zap.String("path", *doc.FilePath), zap.Error(err))
		}
	}
	s.notifier.changed(ctx, "quotes_invoices", events.ActionUpdate, docID)
	return stored.Path, nil
}

func (s *FileService) OpenDocument(ctx context.Context, docID uint64) (*OpenedFile, error) {
	doc, err := s.quoteInvoiceRepository.Find(ctx, docID)
	if err != nil {
		return nil, err
	}
	if doc.FilePath == nil {
		return nil, apperrors.ErrNotFound
	}
	f, err := s.storage.Open(config.BucketDocuments, *doc.FilePath)
	if err != nil {
		return nil, err
	}
	return &OpenedFile{
		File:     f,
		FileName: fmt.Sprintf("%s_%s.pdf", doc.DocType, sanitizeFileName(doc.DocNumber)),
		MimeType: "application/pdf",
	}, nil
}

func sanitizeFileName(s string) string {
	out := []rune(s)
	for i, r := range out {
		switch r {
		case '/', '\\', ':', '*', '?', '"', '<', '>', '|', ' ':
			out[i] = '_'
		}
	}
	return string(out)
}
