// Package logger configures the application-wide logrus logger.
package logger

import (
	"io"
	"os"
	"path/filepath"
	"sync"

	"github.com/sirupsen/logrus"
)

var (
	appLogger *logrus.Logger
	initOnce  sync.Once
)

// Init initializes the application logger. Passing nil uses DefaultConfig.
// Safe to call more than once; only the first call takes effect.
func Init(config *LogConfig) error {
	var initErr error
	initOnce.Do(func() {
		if config == nil {
			config = DefaultConfig()
		}
		appLogger = logrus.New()

		level, err := logrus.ParseLevel(config.Level)
		if err != nil {
			level = logrus.InfoLevel
		}
		appLogger.SetLevel(level)

		if config.Format == "json" {
			appLogger.SetFormatter(&logrus.JSONFormatter{})
		} else {
			appLogger.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
		}

		writers := []io.Writer{}
		if config.Output == "stdout" || config.Output == "both" {
			writers = append(writers, os.Stdout)
		}
		if config.Output == "file" || config.Output == "both" {
			if err := os.MkdirAll(filepath.Dir(config.FilePath), 0o755); err != nil {
				initErr = err
				return
			}
			file, err := os.OpenFile(config.FilePath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
			if err != nil {
				initErr = err
				return
			}
			writers = append(writers, file)
		}
		if len(writers) == 0 {
			writers = append(writers, os.Stdout)
		}
		appLogger.SetOutput(io.MultiWriter(writers...))
	})
	return initErr
}

// GetAppLogger returns the application logger, initializing it with
// defaults when Init has not been called yet.
func GetAppLogger() *logrus.Logger {
	if appLogger == nil {
		_ = Init(nil)
	}
	return appLogger
}
