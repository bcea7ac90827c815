// Package logging configures the process-wide logrus logger.
package logging

import (
	"os"
	"strings"

	"github.com/sirupsen/logrus"

	"options-contracts-api/internal/config"
)

// Setup applies level and formatter settings to the standard logrus logger.
func Setup(cfg config.LoggingConfig) {
	logrus.SetOutput(os.Stdout)
	logrus.SetFormatter(NewFormatter(cfg.Format))

	level, err := logrus.ParseLevel(cfg.Level)
	if err != nil {
		logrus.WithField("log_level", cfg.Level).Warn("Unknown log level, using info")
		level = logrus.InfoLevel
	}
	logrus.SetLevel(level)
}

// NewFormatter returns a JSON formatter for "json" and a text formatter otherwise.
func NewFormatter(format string) logrus.Formatter {
	if strings.EqualFold(format, "json") {
		return &logrus.JSONFormatter{TimestampFormat: "2006-01-02T15:04:05.000Z07:00"}
	}
	return &logrus.TextFormatter{FullTimestamp: true}
}

// MaskSecret keeps the last four characters of a credential for correlation in logs.
func MaskSecret(secret string) string {
	if secret == "" {
		return ""
	}
	if len(secret) <= 4 {
		return "****"
	}
	return strings.Repeat("*", len(secret)-4) + secret[len(secret)-4:]
}
