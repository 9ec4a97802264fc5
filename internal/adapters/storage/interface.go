package storage

import (
	"context"
	"time"
)

// FileMetadata describes a stored file
type FileMetadata struct {
	Key          string    `json:"key"`
	Size         int64     `json:"size"`
	LastModified time.Time `json:"last_modified"`
}

// StoreOptions provides options for storing files
type StoreOptions struct {
	Overwrite bool `json:"overwrite,omitempty"`
}

// FileStorage keeps snapshot documents and backups under string keys.
// Keys are slash separated, e.g. "backup/20240101_120000.json".
type FileStorage interface {
	// Store saves data under key. Without Overwrite an existing key is an error.
	Store(ctx context.Context, key string, data []byte, opts *StoreOptions) error

	// Retrieve gets a file by its storage key
	Retrieve(ctx context.Context, key string) ([]byte, error)

	// Delete removes a file by its storage key
	Delete(ctx context.Context, key string) error

	// Exists checks if a file exists at the given key
	Exists(ctx context.Context, key string) (bool, error)

	// List returns the files whose key starts with prefix, sorted by key
	List(ctx context.Context, prefix string) ([]FileMetadata, error)

	// Close cleans up any resources used by the storage implementation
	Close() error
}

// StorageConfig selects and configures a storage provider
type StorageConfig struct {
	Type     string `json:"type" yaml:"type"`           // "local" or "memory"
	BasePath string `json:"base_path" yaml:"base_path"` // local only
}
