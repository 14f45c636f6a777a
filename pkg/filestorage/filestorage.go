// pkg/filestorage/filestorage.go

package filestorage

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"time"

	"refurb-tracker/config"
	apperrors "refurb-tracker/pkg/errors"

	"github.com/gabriel-vasile/mimetype"
	"github.com/google/uuid"
)

// StoredObject - результат сохранения файла в бакете.
type StoredObject struct {
	Bucket   string
	Path     string // путь внутри бакета
	MimeType string
	Size     int64
}

// FileStorageInterface - хранилище вложений, разбитое на бакеты с собственными правилами.
type FileStorageInterface interface {
	Save(bucket string, file io.Reader, originalFileName string) (*StoredObject, error)
	Open(bucket, path string) (*os.File, error)
	Delete(bucket, path string) error
	Policy(bucket string) (config.BucketPolicy, error)
	BucketDir(bucket string) string
}

type LocalFileStorage struct {
	basePath string
	buckets  map[string]config.BucketPolicy
}

func NewLocalFileStorage(basePath string, buckets map[string]config.BucketPolicy) (FileStorageInterface, error) {
	for name := range buckets {
		if err := os.MkdirAll(filepath.Join(basePath, name), 0o755); err != nil {
			return nil, fmt.Errorf("не удалось создать директорию бакета %s: %w", name, err)
		}
	}
	return &LocalFileStorage{basePath: basePath, buckets: buckets}, nil
}

func (s *LocalFileStorage) Policy(bucket string) (config.BucketPolicy, error) {
	policy, ok := s.buckets[bucket]
	if !ok {
		return config.BucketPolicy{}, fmt.Errorf("%w: %s", apperrors.ErrUnknownBucket, bucket)
	}
	return policy, nil
}

func (s *LocalFileStorage) BucketDir(bucket string) string {
	return filepath.Join(s.basePath, bucket)
}

// Save проверяет размер и тип содержимого по правилам бакета и пишет файл
// в поддиректорию по дате.
func (s *LocalFileStorage) Save(bucket string, file io.Reader, originalFileName string) (*StoredObject, error) {
	policy, err := s.Policy(bucket)
	if err != nil {
		return nil, err
	}

	maxBytes := policy.MaxSizeMB * 1024 * 1024
	data, err := io.ReadAll(io.LimitReader(file, maxBytes+1))
	if err != nil {
		return nil, fmt.Errorf("не удалось прочитать файл: %w", err)
	}
	if int64(len(data)) > maxBytes {
		return nil, fmt.Errorf("%w: лимит %d MB", apperrors.ErrFileTooLarge, policy.MaxSizeMB)
	}

	mime := mimetype.Detect(data)
	if !allowed(mime, policy.AllowedMimeTypes) {
		return nil, fmt.Errorf("%w: %s", apperrors.ErrFileTypeNotAllowed, mime.String())
	}

	// расширение берётся из содержимого, имя от клиента не используется
	ext := mime.Extension()
	uniqueFileName := fmt.Sprintf("%s-%s%s", time.Now().Format("2006-01-02"), uuid.New().String(), ext)
	datePath := time.Now().Format("2006/01/02")

	fullDirPath := filepath.Join(s.basePath, bucket, datePath)
	if err := os.MkdirAll(fullDirPath, 0o755); err != nil {
		return nil, err
	}

	fullPath := filepath.Join(fullDirPath, uniqueFileName)
	if err := writeFile(fullPath, bytes.NewReader(data)); err != nil {
		return nil, fmt.Errorf("не удалось записать файл %s: %w", originalFileName, err)
	}

	return &StoredObject{
		Bucket:   bucket,
		Path:     filepath.ToSlash(filepath.Join(datePath, uniqueFileName)),
		MimeType: mime.String(),
		Size:     int64(len(data)),
	}, nil
}

// writeFile не оставляет на диске недописанный файл.
func writeFile(path string, src io.Reader) error {
	dst, err := os.Create(path)
	if err != nil {
		return err
	}
	_, err = io.Copy(dst, src)
	if closeErr := dst.Close(); err == nil {
		err = closeErr
	}
	if err != nil {
		_ = os.Remove(path)
		return err
	}
	return nil
}

func (s *LocalFileStorage) Open(bucket, path string) (*os.File, error) {
	fullPath, err := s.resolve(bucket, path)
	if err != nil {
		return nil, err
	}
	f, err := os.Open(fullPath)
	if os.IsNotExist(err) {
		return nil, apperrors.ErrNotFound
	}
	return f, err
}

// Delete удаляет файл; отсутствие файла ошибкой не считается.
func (s *LocalFileStorage) Delete(bucket, path string) error {
	fullPath, err := s.resolve(bucket, path)
	if err != nil {
		return err
	}
	if _, err := os.Stat(fullPath); os.IsNotExist(err) {
		return nil
	}
	return os.Remove(fullPath)
}

// resolve не даёт выйти за пределы каталога бакета.
func (s *LocalFileStorage) resolve(bucket, path string) (string, error) {
	if _, err := s.Policy(bucket); err != nil {
		return "", err
	}
	root := s.BucketDir(bucket)
	fullPath := filepath.Join(root, filepath.FromSlash(path))
	rel, err := filepath.Rel(root, fullPath)
	if err != nil || rel == "." || strings.HasPrefix(rel, "..") {
		return "", fmt.Errorf("%w: недопустимый путь %q", apperrors.ErrBadRequest, path)
	}
	return fullPath, nil
}

func allowed(mime *mimetype.MIME, allowedTypes []string) bool {
	for m := mime; m != nil; m = m.Parent() {
		if slices.Contains(allowedTypes, m.String()) {
			return true
		}
		// text/plain; charset=utf-8 -> text/plain
		if base, _, found := strings.Cut(m.String(), ";"); found && slices.Contains(allowedTypes, base) {
			return true
		}
	}
	return false
}
