package internal

import (
	"log"
	"os"
	"path/filepath"
	"sync"
)

var (
	sessionLogger  *log.Logger
	loggerOnce     sync.Once
	loggingEnabled bool
)

// initLogger opens the session log file in the configured cache directory
func initLogger(config *Config) {
	loggingEnabled = config.LogEnabled
	if !loggingEnabled {
		return
	}

	if err := os.MkdirAll(config.CacheDir, 0755); err != nil {
		loggingEnabled = false
		return
	}

	logPath := filepath.Join(config.CacheDir, "session.log")
	logFile, err := os.OpenFile(logPath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	if err != nil {
		loggingEnabled = false
		return
	}

	sessionLogger = log.New(logFile, "", log.LstdFlags|log.Lmicroseconds)
}

// InitLogging initializes the session log based on config
func InitLogging(config *Config) {
	loggerOnce.Do(func() {
		initLogger(config)
	})
}

// logf logs a formatted message if session logging is enabled
func logf(level, format string, args ...any) {
	if !loggingEnabled || sessionLogger == nil {
		return
	}
	sessionLogger.Printf("["+level+"] "+format, args...)
}
