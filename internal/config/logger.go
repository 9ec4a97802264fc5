package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/sirupsen/logrus"
)

// LogConfig holds logging configuration
type LogConfig struct {
	Level  string
	Format string // "text" or "json"
}

// ParseLevel returns the logrus level named by the configuration
func (c LogConfig) ParseLevel() (logrus.Level, error) {
	level, err := logrus.ParseLevel(c.Level)
	if err != nil {
		return logrus.InfoLevel, fmt.Errorf("invalid log level %q: %w", c.Level, err)
	}
	return level, nil
}

// NewLogger builds a logger from the configuration. An invalid level falls
// back to info.
func NewLogger(c LogConfig) *logrus.Logger {
	logger := logrus.New()
	logger.SetOutput(os.Stdout)

	level, err := c.ParseLevel()
	if err != nil {
		logger.WithError(err).Warn("Falling back to info log level")
	}
	logger.SetLevel(level)

	if strings.EqualFold(c.Format, "json") {
		logger.SetFormatter(&logrus.JSONFormatter{})
	} else {
		logger.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	}

	return logger
}
