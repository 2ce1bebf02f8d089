package config

import (
	"os"
	"sync"

	"github.com/rs/zerolog"

	"github.com/rshade/coalcarbon/internal/logging"
)

// Logger is the package-wide logger used before a command has built its own.
//
//nolint:gochecknoglobals // Process-wide logger for config loading.
var Logger zerolog.Logger

//nolint:gochecknoglobals // Guards Logger.
var logMu sync.RWMutex

// InitLogger resets Logger to a console logger on stderr at the given level.
// Unparseable levels fall back to info.
func InitLogger(level string) {
	logMu.Lock()
	defer logMu.Unlock()

	Logger = logging.NewLogger(logging.Config{
		Level:  level,
		Format: logging.FormatConsole,
		Output: logging.OutputStderr,
	}, os.Stderr)
}

// SetLogger replaces Logger, typically with the one built by the CLI.
func SetLogger(l zerolog.Logger) {
	logMu.Lock()
	defer logMu.Unlock()
	Logger = l
}

// GetLogger returns Logger.
func GetLogger() zerolog.Logger {
	logMu.RLock()
	defer logMu.RUnlock()
	return Logger
}

//nolint:gochecknoinits // Logger must be usable before any configuration is read.
func init() {
	InitLogger("warn")
}

// ToLoggingConfig converts the YAML section into a logging.Config.
// A non-empty File selects file output.
func (lc *LoggingConfig) ToLoggingConfig() logging.Config {
	output := logging.OutputStderr
	if lc.File != "" {
		output = outputTypeFile
	}
	return logging.Config{
		Level:  lc.Level,
		Format: lc.Format,
		Output: output,
		File:   lc.File,
	}
}

// GetLoggingConfig returns the logging section of the global configuration
// with COALCARBON_LOG_LEVEL and COALCARBON_LOG_FORMAT applied.
func GetLoggingConfig() LoggingConfig {
	lc := GetGlobalConfig().Logging
	if level := os.Getenv(EnvLogLevel); level != "" {
		lc.Level = level
	}
	if format := os.Getenv(EnvLogFormat); format != "" {
		lc.Format = format
	}
	return lc
}
