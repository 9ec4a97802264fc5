package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds all configuration for the application
type Config struct {
	Environment string
	Port        string
	Database    DatabaseConfig
	Log         LogConfig
	Server      ServerConfig
	JWT         JWTConfig
	Snapshot    SnapshotConfig
}

// ServerConfig holds HTTP server and middleware configuration
type ServerConfig struct {
	RateLimitRPS       float64
	RateLimitBurst     int
	MaxBodyBytes       int64
	ShutdownTimeout    time.Duration
	CORSAllowedOrigins []string
}

// JWTConfig holds JWT configuration
type JWTConfig struct {
	Enabled     bool
	Secret      string
	ExpiryHours int
}

// SnapshotConfig holds where exported snapshots and backups are kept
type SnapshotConfig struct {
	StorageType string
	Dir         string
}

// Load loads configuration from environment variables and an optional .env file
func Load() (*Config, error) {
	// Load .env file if it exists
	_ = godotenv.Load()

	v := viper.New()
	v.AutomaticEnv()
	v.SetDefault("PORT", "5555")
	v.SetDefault("ENVIRONMENT", "development")
	v.SetDefault("DB_PATH", defaultDatabasePath)
	v.SetDefault("DB_MAX_OPEN_CONNS", 1)
	v.SetDefault("DB_MAX_IDLE_CONNS", 1)
	v.SetDefault("DB_CONN_MAX_LIFETIME", "1h")
	v.SetDefault("DB_AUTO_MIGRATE", true)
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("LOG_FORMAT", "text")
	v.SetDefault("RATE_LIMIT_RPS", 100)
	v.SetDefault("RATE_LIMIT_BURST", 200)
	v.SetDefault("MAX_BODY_BYTES", 1<<20)
	v.SetDefault("SHUTDOWN_TIMEOUT", "30s")
	v.SetDefault("CORS_ALLOWED_ORIGINS", "*")
	v.SetDefault("AUTH_ENABLED", false)
	v.SetDefault("JWT_EXPIRY_HOURS", 24)
	v.SetDefault("SNAPSHOT_STORAGE", "local")
	v.SetDefault("SNAPSHOT_DIR", "./data/snapshots")

	config := &Config{
		Environment: v.GetString("ENVIRONMENT"),
		Port:        v.GetString("PORT"),
		Database: DatabaseConfig{
			Path:            databasePath(v),
			MaxOpenConns:    v.GetInt("DB_MAX_OPEN_CONNS"),
			MaxIdleConns:    v.GetInt("DB_MAX_IDLE_CONNS"),
			ConnMaxLifetime: v.GetDuration("DB_CONN_MAX_LIFETIME"),
			AutoMigrate:     v.GetBool("DB_AUTO_MIGRATE"),
		},
		Log: LogConfig{
			Level:  v.GetString("LOG_LEVEL"),
			Format: v.GetString("LOG_FORMAT"),
		},
		Server: ServerConfig{
			RateLimitRPS:       v.GetFloat64("RATE_LIMIT_RPS"),
			RateLimitBurst:     v.GetInt("RATE_LIMIT_BURST"),
			MaxBodyBytes:       v.GetInt64("MAX_BODY_BYTES"),
			ShutdownTimeout:    v.GetDuration("SHUTDOWN_TIMEOUT"),
			CORSAllowedOrigins: splitList(v.GetString("CORS_ALLOWED_ORIGINS")),
		},
		JWT: JWTConfig{
			Enabled:     v.GetBool("AUTH_ENABLED"),
			Secret:      v.GetString("JWT_SECRET"),
			ExpiryHours: v.GetInt("JWT_EXPIRY_HOURS"),
		},
		Snapshot: SnapshotConfig{
			StorageType: v.GetString("SNAPSHOT_STORAGE"),
			Dir:         v.GetString("SNAPSHOT_DIR"),
		},
	}

	return config, nil
}

// Validate checks the configuration for values the server cannot start with
func (c *Config) Validate() error {
	if c.Port == "" {
		return fmt.Errorf("port cannot be empty")
	}

	if err := c.Database.Validate(); err != nil {
		return fmt.Errorf("invalid database configuration: %w", err)
	}

	if _, err := c.Log.ParseLevel(); err != nil {
		return err
	}

	if c.Server.MaxBodyBytes <= 0 {
		return fmt.Errorf("max body bytes must be positive")
	}

	if c.Server.RateLimitRPS < 0 || c.Server.RateLimitBurst < 0 {
		return fmt.Errorf("rate limit settings cannot be negative")
	}

	if c.JWT.Enabled && c.JWT.Secret == "" {
		return fmt.Errorf("JWT_SECRET is required when AUTH_ENABLED is set")
	}

	return nil
}

// IsProduction reports whether the application runs in production mode
func (c *Config) IsProduction() bool {
	return strings.EqualFold(c.Environment, "production")
}

// TokenDuration returns the lifetime of issued tokens
func (c *JWTConfig) TokenDuration() time.Duration {
	return time.Duration(c.ExpiryHours) * time.Hour
}

// databasePath resolves DB_PATH, accepting DB_URI (sqlite:///path) as an alias
func databasePath(v *viper.Viper) string {
	if os.Getenv("DB_PATH") == "" {
		if uri := v.GetString("DB_URI"); uri != "" {
			return strings.TrimPrefix(uri, "sqlite:///")
		}
	}
	return v.GetString("DB_PATH")
}

func splitList(value string) []string {
	var out []string
	for _, part := range strings.Split(value, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

// GetEnv gets an environment variable with a fallback value
func GetEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}
