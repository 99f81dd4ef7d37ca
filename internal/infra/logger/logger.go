// internal/infra/logger/logger.go
package logger

import (
	"io"
	"os"
	"strings"

	"refuse_day_skill/internal/infra/config"

	"github.com/sirupsen/logrus"
)

// New builds the application logger from configuration.
func New(cfg *config.AppConfig) *logrus.Logger {
	return newWithOutput(cfg, os.Stdout)
}

func newWithOutput(cfg *config.AppConfig, out io.Writer) *logrus.Logger {
	log := logrus.New()
	log.SetOutput(out)

	// Set Log Level
	level, err := logrus.ParseLevel(strings.ToLower(cfg.LogLevel))
	if err != nil {
		log.Warnf("Invalid log level '%s', defaulting to 'info'. Error: %v", cfg.LogLevel, err)
		log.SetLevel(logrus.InfoLevel)
	} else {
		log.SetLevel(level)
	}

	// Set Log Formatter
	if cfg.IsProduction() {
		log.SetFormatter(&logrus.JSONFormatter{
			TimestampFormat: "2006-01-02T15:04:05.000Z07:00", // ISO8601
		})
	} else {
		log.SetFormatter(&logrus.TextFormatter{
			FullTimestamp:   true,
			TimestampFormat: "2006-01-02 15:04:05",
		})
	}

	log.Debugf("Log level set to: %s", log.GetLevel().String())
	log.Debugf("Log format set for environment: %s", cfg.Environment)
	return log
}

// Nop returns a logger that discards everything. Used in tests.
func Nop() *logrus.Entry {
	log := logrus.New()
	log.SetOutput(io.Discard)
	return logrus.NewEntry(log)
}
