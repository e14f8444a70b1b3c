package media

import (
	"context"
	"fmt"
	"sync"

	apperrors "github.com/yesmovie/backend/pkg/errors"
)

// memoryEntry stores metadata about an uploaded file in memory.
type memoryEntry struct {
	Key         string
	ContentType string
	Size        int64
	URL         string
}

// MemoryStorage implements Storage using an in-memory map. It stores
// metadata only (no actual file bytes) and is meant for tests and local
// development.
type MemoryStorage struct {
	mu      sync.RWMutex
	files   map[string]*memoryEntry
	baseURL string
}

// NewMemoryStorage creates a new in-memory storage instance.
func NewMemoryStorage(baseURL string) *MemoryStorage {
	return &MemoryStorage{
		files:   make(map[string]*memoryEntry),
		baseURL: baseURL,
	}
}

// Upload stores file metadata in memory and returns the generated URL.
func (s *MemoryStorage) Upload(_ context.Context, input *UploadInput) (*UploadResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	url := fmt.Sprintf("%s/media/%s", s.baseURL, input.Key)

	s.files[input.Key] = &memoryEntry{
		Key:         input.Key,
		ContentType: input.ContentType,
		Size:        input.Size,
		URL:         url,
	}

	return &UploadResult{Key: input.Key, URL: url}, nil
}

// Delete removes file metadata from memory.
func (s *MemoryStorage) Delete(_ context.Context, key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.files[key]; !exists {
		return apperrors.NotFound("file", key)
	}

	delete(s.files, key)
	return nil
}

// GetURL returns the URL for the given key.
func (s *MemoryStorage) GetURL(_ context.Context, key string) (string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	entry, exists := s.files[key]
	if !exists {
		return "", apperrors.NotFound("file", key)
	}

	return entry.URL, nil
}
