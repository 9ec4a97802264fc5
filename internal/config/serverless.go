package config

import (
	"os"
	"path/filepath"
)

// ServerlessConfig holds serverless-specific configuration
type ServerlessConfig struct {
	IsLambda     bool
	FunctionName string
	Region       string
	Stage        string
}

// GetServerlessConfig returns the serverless configuration read from the
// Lambda runtime environment
func GetServerlessConfig() *ServerlessConfig {
	return &ServerlessConfig{
		IsLambda:     isRunningInLambda(),
		FunctionName: os.Getenv("AWS_LAMBDA_FUNCTION_NAME"),
		Region:       os.Getenv("AWS_REGION"),
		Stage:        GetEnv("STAGE", "dev"),
	}
}

// isRunningInLambda detects if the application is running in AWS Lambda
func isRunningInLambda() bool {
	return os.Getenv("AWS_LAMBDA_FUNCTION_NAME") != ""
}

// IsServerlessMode returns true if running in serverless mode
func IsServerlessMode() bool {
	return isRunningInLambda()
}

// GetDeploymentMode returns the current deployment mode
func GetDeploymentMode() string {
	if IsServerlessMode() {
		return "serverless"
	}
	return "server"
}

// AdaptConfigForServerless modifies configuration for serverless deployment.
// The Lambda filesystem is read-only outside /tmp, so the default database
// moves to an EFS mount when one is configured and to /tmp otherwise.
func AdaptConfigForServerless(config *Config) *Config {
	if !IsServerlessMode() {
		return config
	}

	if config.Database.Path == defaultDatabasePath {
		if mount := os.Getenv("EFS_MOUNT_PATH"); mount != "" {
			config.Database.Path = filepath.Join(mount, "app.db")
		} else {
			config.Database.Path = "/tmp/app.db"
		}
	}

	// API Gateway throttles requests in front of the function
	config.Server.RateLimitRPS = 0

	return config
}

// GetOptimizedConfig returns configuration optimized for the current deployment mode
func GetOptimizedConfig() (*Config, error) {
	config, err := Load()
	if err != nil {
		return nil, err
	}

	return AdaptConfigForServerless(config), nil
}
