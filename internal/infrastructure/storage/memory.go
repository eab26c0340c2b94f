package storage

import (
	"context"
	"sync"

	"github.com/shopstream/backend/internal/domain/catalog"
	"github.com/shopstream/backend/internal/domain/shared"
)

// Ensure MemoryImageStorage implements the catalog contract
var _ catalog.ImageStorage = (*MemoryImageStorage)(nil)

// MemoryImageStorage keeps images in process memory.
// It backs local development when no bucket is configured; images do not
// survive a restart.
type MemoryImageStorage struct {
	mu    sync.RWMutex
	files map[string][]byte
}

// NewMemoryImageStorage creates an empty MemoryImageStorage
func NewMemoryImageStorage() *MemoryImageStorage {
	return &MemoryImageStorage{files: make(map[string][]byte)}
}

// Put stores the image bytes under the given file name and returns it
func (s *MemoryImageStorage) Put(_ context.Context, fileName string, data []byte) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	buf := make([]byte, len(data))
	copy(buf, data)
	s.files[fileName] = buf
	return fileName, nil
}

// Get returns the stored image bytes, or shared.ErrNotFound
func (s *MemoryImageStorage) Get(_ context.Context, fileName string) ([]byte, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	data, ok := s.files[fileName]
	if !ok {
		return nil, shared.ErrNotFound
	}
	return data, nil
}
