package storage

import (
	"fmt"
	"strings"
)

// StorageType represents the type of storage implementation
type StorageType string

const (
	StorageTypeLocal  StorageType = "local"
	StorageTypeMemory StorageType = "memory"
)

const defaultBasePath = "./data/snapshots"

// Factory creates FileStorage instances based on configuration
type Factory struct {
	retryConfig *RetryConfig
}

// NewFactory creates a new storage factory. A nil retry config disables retries.
func NewFactory(retryConfig *RetryConfig) *Factory {
	return &Factory{retryConfig: retryConfig}
}

// Create creates a FileStorage instance based on the provided configuration
func (f *Factory) Create(config *StorageConfig) (FileStorage, error) {
	if config == nil {
		return nil, fmt.Errorf("storage config is required")
	}

	var storage FileStorage
	var err error

	switch StorageType(strings.ToLower(config.Type)) {
	case StorageTypeLocal, "":
		basePath := config.BasePath
		if basePath == "" {
			basePath = defaultBasePath
		}
		storage, err = NewLocalFileStorage(basePath)
	case StorageTypeMemory:
		storage = NewMemoryFileStorage()
	default:
		return nil, fmt.Errorf("unsupported storage type: %s", config.Type)
	}

	if err != nil {
		return nil, fmt.Errorf("failed to create %s storage: %w", config.Type, err)
	}

	if f.retryConfig != nil {
		storage = NewRetryableFileStorage(storage, f.retryConfig)
	}

	return storage, nil
}

// CreateFromConfig creates storage with the default retry configuration
func CreateFromConfig(config *StorageConfig) (FileStorage, error) {
	return NewFactory(DefaultRetryConfig()).Create(config)
}
