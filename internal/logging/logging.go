package logging

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/sirupsen/logrus"
)

// Config holds the logger settings
type Config struct {
	Level  string `koanf:"level"`
	Format string `koanf:"format"`
}

// New creates a configured logrus logger writing to stdout
func New(cfg Config, appName string) (*logrus.Logger, error) {
	return NewWithOutput(cfg, appName, os.Stdout)
}

// NewWithOutput creates a configured logrus logger writing to out
func NewWithOutput(cfg Config, appName string, out io.Writer) (*logrus.Logger, error) {
	level, err := logrus.ParseLevel(cfg.Level)
	if err != nil {
		return nil, fmt.Errorf("invalid log level %q: %w", cfg.Level, err)
	}

	logger := logrus.New()
	logger.SetOutput(out)
	logger.SetLevel(level)

	switch strings.ToLower(cfg.Format) {
	case "json":
		logger.SetFormatter(&logrus.JSONFormatter{})
	case "text", "":
		logger.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	default:
		return nil, fmt.Errorf("invalid log format %q: must be text or json", cfg.Format)
	}

	logger.WithFields(logrus.Fields{"app": appName, "level": level.String()}).Debug("logger initialized")
	return logger, nil
}
