package logger

import (
	"os"
	"strings"
)

// LogConfig holds the logging system configuration.
type LogConfig struct {
	// Log level: trace, debug, info, warn, error, fatal
	Level string

	// Log format: json, text
	Format string

	// Log output: stdout, file, both
	Output string

	// File path used when Output includes file
	FilePath string
}

// DefaultConfig returns the configuration for the current environment,
// with environment variable overrides applied.
func DefaultConfig() *LogConfig {
	goEnv := os.Getenv("GO_ENV")
	if goEnv == "" {
		goEnv = "development"
	}

	config := &LogConfig{
		Level:    "info",
		Format:   "json",
		Output:   "stdout",
		FilePath: "./logs/app.log",
	}

	// Development favors readable text logs at debug level.
	if goEnv == "development" {
		config.Level = "debug"
		config.Format = "text"
	}

	if level := os.Getenv("LOG_LEVEL"); level != "" {
		config.Level = strings.ToLower(level)
	}
	if format := os.Getenv("LOG_FORMAT"); format != "" {
		config.Format = strings.ToLower(format)
	}
	if output := os.Getenv("LOG_OUTPUT"); output != "" {
		config.Output = strings.ToLower(output)
	}
	if filePath := os.Getenv("LOG_FILE_PATH"); filePath != "" {
		config.FilePath = filePath
	}

	return config
}
