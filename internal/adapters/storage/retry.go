package storage

import (
	"context"
	"math"
	"math/rand"
	"time"
)

// RetryConfig configures retry behavior for storage operations
type RetryConfig struct {
	MaxAttempts   int           `json:"max_attempts" yaml:"max_attempts"`
	InitialDelay  time.Duration `json:"initial_delay" yaml:"initial_delay"`
	MaxDelay      time.Duration `json:"max_delay" yaml:"max_delay"`
	BackoffFactor float64       `json:"backoff_factor" yaml:"backoff_factor"`
	JitterEnabled bool          `json:"jitter_enabled" yaml:"jitter_enabled"`
}

// DefaultRetryConfig returns the default retry configuration
func DefaultRetryConfig() *RetryConfig {
	return &RetryConfig{
		MaxAttempts:   3,
		InitialDelay:  100 * time.Millisecond,
		MaxDelay:      5 * time.Second,
		BackoffFactor: 2.0,
		JitterEnabled: true,
	}
}

// WithRetry runs op until it succeeds, fails with a non-retryable error,
// runs out of attempts or ctx is done
func WithRetry(ctx context.Context, config *RetryConfig, op func(ctx context.Context) error) error {
	if config == nil {
		config = DefaultRetryConfig()
	}

	var lastErr error

	for attempt := 1; attempt <= config.MaxAttempts; attempt++ {
		if err := ctx.Err(); err != nil {
			return err
		}

		err := op(ctx)
		if err == nil {
			return nil
		}
		lastErr = err

		if attempt >= config.MaxAttempts || !IsRetryable(err) {
			break
		}

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(config.calculateDelay(attempt)):
		}
	}

	return lastErr
}

// calculateDelay returns initial_delay * backoff_factor^(attempt-1), capped at MaxDelay
func (c *RetryConfig) calculateDelay(attempt int) time.Duration {
	delay := float64(c.InitialDelay) * math.Pow(c.BackoffFactor, float64(attempt-1))

	if c.MaxDelay > 0 && delay > float64(c.MaxDelay) {
		delay = float64(c.MaxDelay)
	}

	// Up to 10% jitter
	if c.JitterEnabled {
		delay += rand.Float64() * 0.1 * delay
	}

	return time.Duration(delay)
}

// RetryableFileStorage wraps a FileStorage implementation with retry logic
type RetryableFileStorage struct {
	storage FileStorage
	config  *RetryConfig
}

// NewRetryableFileStorage creates a new RetryableFileStorage
func NewRetryableFileStorage(storage FileStorage, config *RetryConfig) *RetryableFileStorage {
	if config == nil {
		config = DefaultRetryConfig()
	}
	return &RetryableFileStorage{storage: storage, config: config}
}

// Store implements FileStorage.Store with retry logic
func (r *RetryableFileStorage) Store(ctx context.Context, key string, data []byte, opts *StoreOptions) error {
	return WithRetry(ctx, r.config, func(ctx context.Context) error {
		return r.storage.Store(ctx, key, data, opts)
	})
}

// Retrieve implements FileStorage.Retrieve with retry logic
func (r *RetryableFileStorage) Retrieve(ctx context.Context, key string) ([]byte, error) {
	var result []byte
	err := WithRetry(ctx, r.config, func(ctx context.Context) error {
		data, err := r.storage.Retrieve(ctx, key)
		if err != nil {
			return err
		}
		result = data
		return nil
	})
	return result, err
}

// Delete implements FileStorage.Delete with retry logic
func (r *RetryableFileStorage) Delete(ctx context.Context, key string) error {
	return WithRetry(ctx, r.config, func(ctx context.Context) error {
		return r.storage.Delete(ctx, key)
	})
}

// Exists implements FileStorage.Exists with retry logic
func (r *RetryableFileStorage) Exists(ctx context.Context, key string) (bool, error) {
	var exists bool
	err := WithRetry(ctx, r.config, func(ctx context.Context) error {
		ok, err := r.storage.Exists(ctx, key)
		if err != nil {
			return err
		}
		exists = ok
		return nil
	})
	return exists, err
}

// List implements FileStorage.List with retry logic
func (r *RetryableFileStorage) List(ctx context.Context, prefix string) ([]FileMetadata, error) {
	var files []FileMetadata
	err := WithRetry(ctx, r.config, func(ctx context.Context) error {
		result, err := r.storage.List(ctx, prefix)
		if err != nil {
			return err
		}
		files = result
		return nil
	})
	return files, err
}

// Close implements FileStorage.Close
func (r *RetryableFileStorage) Close() error {
	return r.storage.Close()
}
