package logging

import (
	"fmt"
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/agenthands/hybridrag/internal/config"
)

// Setup configures the standard logrus logger from the [log] section.
func Setup(cfg config.LogConfig) error {
	level := cfg.Level
	if level == "" {
		level = "info"
	}
	lvl, err := logrus.ParseLevel(level)
	if err != nil {
		return fmt.Errorf("invalid log level '%s': %w", cfg.Level, err)
	}
	logrus.SetLevel(lvl)

	switch strings.ToLower(cfg.Format) {
	case "", "text":
		logrus.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	case "json":
		logrus.SetFormatter(&logrus.JSONFormatter{})
	default:
		return fmt.Errorf("unsupported log format: %s", cfg.Format)
	}
	return nil
}
