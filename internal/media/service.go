package media

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"path"
	"regexp"
	"time"

	"github.com/google/uuid"

	"github.com/yesmovie/backend/internal/docstore"
	"github.com/yesmovie/backend/internal/domain"
	apperrors "github.com/yesmovie/backend/pkg/errors"
)

// CollectionMediaFiles is the collection name for media file metadata.
const CollectionMediaFiles = "media_files"

// safeFileNamePattern rejects path separators and control characters.
var safeFileNamePattern = regexp.MustCompile(`^[a-zA-Z0-9._ -]+$`)

// Binding returns the docstore binding for the media file collection.
func Binding() docstore.Binding {
	return docstore.Bind[domain.MediaFile](CollectionMediaFiles)
}

// FileRepository defines data access for media file metadata.
type FileRepository interface {
	Create(ctx context.Context, file *domain.MediaFile) error
	GetByID(ctx context.Context, id string) (*domain.MediaFile, error)
	List(ctx context.Context, cursor string, pageSize int) ([]domain.MediaFile, string, error)
	Delete(ctx context.Context, id string) error
}

type docstoreFileRepository struct {
	store *docstore.Store[domain.MediaFile]
}

// NewFileRepository creates a document-store-backed media file repository.
func NewFileRepository(client *docstore.Client) (FileRepository, error) {
	store, err := docstore.NewStore[domain.MediaFile](client)
	if err != nil {
		return nil, err
	}
	return &docstoreFileRepository{store: store}, nil
}

func (r *docstoreFileRepository) Create(ctx context.Context, file *domain.MediaFile) error {
	if err := r.store.AddItem(ctx, *file, file.ID); err != nil {
		return fmt.Errorf("create media file: %w", err)
	}
	return nil
}

func (r *docstoreFileRepository) GetByID(ctx context.Context, id string) (*domain.MediaFile, error) {
	file, found, err := r.store.GetItem(ctx, id, id)
	if err != nil {
		return nil, fmt.Errorf("get media file: %w", err)
	}
	if !found {
		return nil, apperrors.NotFound("media file", id)
	}
	return &file, nil
}

func (r *docstoreFileRepository) List(ctx context.Context, cursor string, pageSize int) ([]domain.MediaFile, string, error) {
	files, next, err := r.store.GetItemsPaged(ctx, cursor, pageSize, "")
	if err != nil {
		return nil, "", fmt.Errorf("list media files: %w", err)
	}
	return files, next, nil
}

func (r *docstoreFileRepository) Delete(ctx context.Context, id string) error {
	if err := r.store.DeleteItem(ctx, id, id); err != nil {
		return fmt.Errorf("delete media file: %w", err)
	}
	return nil
}

// Service implements the business logic for media file operations.
type Service struct {
	repo    FileRepository
	storage Storage
	logger  *slog.Logger
}

// NewService creates a new media service.
func NewService(repo FileRepository, storage Storage, logger *slog.Logger) *Service {
	return &Service{repo: repo, storage: storage, logger: logger}
}

// UploadFileInput holds the parameters for uploading a file.
type UploadFileInput struct {
	FileName    string
	ContentType string
	Size        int64
	Data        io.Reader
}

// UploadFile validates the upload, stores the bytes, and persists metadata.
func (s *Service) UploadFile(ctx context.Context, input *UploadFileInput) (*domain.MediaFile, error) {
	if input.FileName == "" {
		return nil, apperrors.Validation("file name is required")
	}
	if !safeFileNamePattern.MatchString(input.FileName) {
		return nil, apperrors.Validation("file name contains invalid characters")
	}
	if !domain.IsAllowedContentType(input.ContentType) {
		return nil, apperrors.Validation(fmt.Sprintf("content type %q is not allowed", input.ContentType))
	}
	if input.Size <= 0 {
		return nil, apperrors.Validation("file size must be greater than zero")
	}
	if input.Size > domain.MaxFileSize {
		return nil, apperrors.Validation(fmt.Sprintf("file size %d exceeds maximum of %d bytes", input.Size, domain.MaxFileSize))
	}

	id := uuid.New().String()
	key := path.Join("uploads", id, input.FileName)

	result, err := s.storage.Upload(ctx, &UploadInput{
		Key:         key,
		ContentType: input.ContentType,
		Size:        input.Size,
		Data:        input.Data,
	})
	if err != nil {
		return nil, fmt.Errorf("upload file: %w", err)
	}

	now := time.Now().UTC()
	file := &domain.MediaFile{
		ID:          id,
		FileName:    input.FileName,
		ContentType: input.ContentType,
		Size:        input.Size,
		StorageKey:  result.Key,
		URL:         result.URL,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	if err := s.repo.Create(ctx, file); err != nil {
		// Metadata write failed; try not to leak the stored object.
		if delErr := s.storage.Delete(ctx, result.Key); delErr != nil {
			s.logger.ErrorContext(ctx, "failed to clean up orphaned object",
				slog.String("key", result.Key),
				slog.String("error", delErr.Error()),
			)
		}
		return nil, fmt.Errorf("save media metadata: %w", err)
	}

	s.logger.InfoContext(ctx, "file uploaded",
		slog.String("file_id", id),
		slog.String("file_name", input.FileName),
		slog.Int64("size", input.Size),
	)

	return file, nil
}

// GetDownloadURL returns the public URL for a stored file.
func (s *Service) GetDownloadURL(ctx context.Context, id string) (string, error) {
	file, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return "", fmt.Errorf("get media file: %w", err)
	}

	url, err := s.storage.GetURL(ctx, file.StorageKey)
	if err != nil {
		return "", fmt.Errorf("resolve download url: %w", err)
	}
	return url, nil
}

// ListFiles returns one cursor page of media file metadata.
func (s *Service) ListFiles(ctx context.Context, cursor string, pageSize int) ([]domain.MediaFile, string, error) {
	files, next, err := s.repo.List(ctx, cursor, pageSize)
	if err != nil {
		return nil, "", fmt.Errorf("list media files: %w", err)
	}
	return files, next, nil
}

// DeleteFile removes both the stored object and its metadata.
func (s *Service) DeleteFile(ctx context.Context, id string) error {
	file, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return fmt.Errorf("get media file for delete: %w", err)
	}

	if err := s.storage.Delete(ctx, file.StorageKey); err != nil {
		return fmt.Errorf("delete stored object: %w", err)
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return fmt.Errorf("delete media metadata: %w", err)
	}

	s.logger.InfoContext(ctx, "file deleted", slog.String("file_id", id))

	return nil
}
