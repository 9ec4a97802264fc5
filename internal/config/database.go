package config

import (
	"fmt"
	"path/filepath"
	"time"

	"camp-signup-api/internal/database"

	"github.com/sirupsen/logrus"
)

const defaultDatabasePath = "./data/app.db"

// DatabaseConfig holds database-specific configuration
type DatabaseConfig struct {
	Path            string        `mapstructure:"path"`
	MaxOpenConns    int           `mapstructure:"max_open_conns"`
	MaxIdleConns    int           `mapstructure:"max_idle_conns"`
	ConnMaxLifetime time.Duration `mapstructure:"conn_max_lifetime"`
	AutoMigrate     bool          `mapstructure:"auto_migrate"`
}

// DefaultDatabaseConfig returns default database configuration
func DefaultDatabaseConfig() *DatabaseConfig {
	return &DatabaseConfig{
		Path:            defaultDatabasePath,
		MaxOpenConns:    1,
		MaxIdleConns:    1,
		ConnMaxLifetime: time.Hour,
		AutoMigrate:     true,
	}
}

// Validate validates the database configuration
func (c *DatabaseConfig) Validate() error {
	if c.Path == "" {
		return fmt.Errorf("database path cannot be empty")
	}

	if c.MaxOpenConns < 1 {
		return fmt.Errorf("max open connections must be at least 1")
	}

	if c.MaxIdleConns < 1 {
		return fmt.Errorf("max idle connections must be at least 1")
	}

	if c.ConnMaxLifetime < time.Minute {
		return fmt.Errorf("connection max lifetime must be at least 1 minute")
	}

	return nil
}

// ToConnectionConfig converts DatabaseConfig to database.ConnectionConfig
func (c *DatabaseConfig) ToConnectionConfig(logger *logrus.Logger) *database.ConnectionConfig {
	return &database.ConnectionConfig{
		DatabasePath:    c.Path,
		MaxOpenConns:    c.MaxOpenConns,
		MaxIdleConns:    c.MaxIdleConns,
		ConnMaxLifetime: c.ConnMaxLifetime,
		AutoMigrate:     c.AutoMigrate,
		Logger:          logger,
	}
}

// GetAbsolutePath returns the absolute path of the database file
func (c *DatabaseConfig) GetAbsolutePath() (string, error) {
	dbPath, err := filepath.Abs(c.Path)
	if err != nil {
		return "", fmt.Errorf("failed to get absolute database path: %w", err)
	}
	return dbPath, nil
}
