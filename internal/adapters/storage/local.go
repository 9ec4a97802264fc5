package storage

import (
	"context"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// LocalFileStorage implements FileStorage on a directory of the local filesystem
type LocalFileStorage struct {
	basePath string
}

// NewLocalFileStorage creates the base directory if needed
func NewLocalFileStorage(basePath string) (*LocalFileStorage, error) {
	if err := os.MkdirAll(basePath, 0755); err != nil {
		return nil, NewStorageError("NewLocalFileStorage", "", err, false)
	}

	absPath, err := filepath.Abs(basePath)
	if err != nil {
		return nil, NewStorageError("NewLocalFileStorage", "", err, false)
	}

	return &LocalFileStorage{basePath: absPath}, nil
}

// Store implements FileStorage.Store
func (l *LocalFileStorage) Store(ctx context.Context, key string, data []byte, opts *StoreOptions) error {
	if err := validateKey(key); err != nil {
		return NewStorageError("Store", key, err, false)
	}

	filePath := l.getFilePath(key)

	if opts == nil || !opts.Overwrite {
		if _, err := os.Stat(filePath); err == nil {
			return NewStorageError("Store", key, ErrFileAlreadyExists, false)
		}
	}

	if err := os.MkdirAll(filepath.Dir(filePath), 0755); err != nil {
		return NewStorageError("Store", key, err, true)
	}

	// Write to a temp file and rename so readers never see a partial snapshot
	tempPath := filePath + ".tmp"
	if err := os.WriteFile(tempPath, data, 0644); err != nil {
		return NewStorageError("Store", key, err, true)
	}

	if err := os.Rename(tempPath, filePath); err != nil {
		os.Remove(tempPath)
		return NewStorageError("Store", key, err, true)
	}

	return nil
}

// Retrieve implements FileStorage.Retrieve
func (l *LocalFileStorage) Retrieve(ctx context.Context, key string) ([]byte, error) {
	if err := validateKey(key); err != nil {
		return nil, NewStorageError("Retrieve", key, err, false)
	}

	data, err := os.ReadFile(l.getFilePath(key))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, NewStorageError("Retrieve", key, ErrFileNotFound, false)
		}
		return nil, NewStorageError("Retrieve", key, err, true)
	}

	return data, nil
}

// Delete implements FileStorage.Delete
func (l *LocalFileStorage) Delete(ctx context.Context, key string) error {
	if err := validateKey(key); err != nil {
		return NewStorageError("Delete", key, err, false)
	}

	if err := os.Remove(l.getFilePath(key)); err != nil {
		if os.IsNotExist(err) {
			return NewStorageError("Delete", key, ErrFileNotFound, false)
		}
		return NewStorageError("Delete", key, err, true)
	}

	return nil
}

// Exists implements FileStorage.Exists
func (l *LocalFileStorage) Exists(ctx context.Context, key string) (bool, error) {
	if err := validateKey(key); err != nil {
		return false, NewStorageError("Exists", key, err, false)
	}

	_, err := os.Stat(l.getFilePath(key))
	if err == nil {
		return true, nil
	}
	if os.IsNotExist(err) {
		return false, nil
	}
	return false, NewStorageError("Exists", key, err, true)
}

// List implements FileStorage.List
func (l *LocalFileStorage) List(ctx context.Context, prefix string) ([]FileMetadata, error) {
	files := make([]FileMetadata, 0)

	err := filepath.WalkDir(l.basePath, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() || strings.HasSuffix(path, ".tmp") {
			return nil
		}

		rel, err := filepath.Rel(l.basePath, path)
		if err != nil {
			return err
		}
		key := filepath.ToSlash(rel)
		if !strings.HasPrefix(key, prefix) {
			return nil
		}

		info, err := d.Info()
		if err != nil {
			return err
		}
		files = append(files, FileMetadata{
			Key:          key,
			Size:         info.Size(),
			LastModified: info.ModTime(),
		})
		return nil
	})
	if err != nil {
		return nil, NewStorageError("List", prefix, err, true)
	}

	sort.Slice(files, func(i, j int) bool { return files[i].Key < files[j].Key })
	return files, nil
}

// Close implements FileStorage.Close
func (l *LocalFileStorage) Close() error {
	return nil
}

func (l *LocalFileStorage) getFilePath(key string) string {
	return filepath.Join(l.basePath, filepath.FromSlash(key))
}

// validateKey rejects empty keys and keys that would leave the base directory
func validateKey(key string) error {
	if key == "" {
		return ErrInvalidKey
	}
	if strings.Contains(key, "..") || strings.HasPrefix(key, "/") || strings.Contains(key, "\\") {
		return ErrInvalidKey
	}
	return nil
}
