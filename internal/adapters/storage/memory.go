package storage

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"
)

// MemoryFileStorage is an in-memory FileStorage, used in tests and dry runs
type MemoryFileStorage struct {
	mu    sync.RWMutex
	files map[string]memoryFile
}

type memoryFile struct {
	data         []byte
	lastModified time.Time
}

// NewMemoryFileStorage creates an empty MemoryFileStorage
func NewMemoryFileStorage() *MemoryFileStorage {
	return &MemoryFileStorage{files: make(map[string]memoryFile)}
}

// Store implements FileStorage.Store
func (m *MemoryFileStorage) Store(ctx context.Context, key string, data []byte, opts *StoreOptions) error {
	if err := validateKey(key); err != nil {
		return NewStorageError("Store", key, err, false)
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	if opts == nil || !opts.Overwrite {
		if _, exists := m.files[key]; exists {
			return NewStorageError("Store", key, ErrFileAlreadyExists, false)
		}
	}

	m.files[key] = memoryFile{
		data:         append([]byte(nil), data...),
		lastModified: time.Now(),
	}
	return nil
}

// Retrieve implements FileStorage.Retrieve
func (m *MemoryFileStorage) Retrieve(ctx context.Context, key string) ([]byte, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	file, ok := m.files[key]
	if !ok {
		return nil, NewStorageError("Retrieve", key, ErrFileNotFound, false)
	}
	return append([]byte(nil), file.data...), nil
}

// Delete implements FileStorage.Delete
func (m *MemoryFileStorage) Delete(ctx context.Context, key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.files[key]; !ok {
		return NewStorageError("Delete", key, ErrFileNotFound, false)
	}
	delete(m.files, key)
	return nil
}

// Exists implements FileStorage.Exists
func (m *MemoryFileStorage) Exists(ctx context.Context, key string) (bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	_, ok := m.files[key]
	return ok, nil
}

// List implements FileStorage.List
func (m *MemoryFileStorage) List(ctx context.Context, prefix string) ([]FileMetadata, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	files := make([]FileMetadata, 0)
	for key, file := range m.files {
		if strings.HasPrefix(key, prefix) {
			files = append(files, FileMetadata{
				Key:          key,
				Size:         int64(len(file.data)),
				LastModified: file.lastModified,
			})
		}
	}

	sort.Slice(files, func(i, j int) bool { return files[i].Key < files[j].Key })
	return files, nil
}

// Close implements FileStorage.Close
func (m *MemoryFileStorage) Close() error {
	return nil
}
