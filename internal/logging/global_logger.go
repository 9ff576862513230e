// Package logging configures the process-wide logrus logger: base formatter,
// level selection from user-facing level strings, and optional rotated file
// output driven by the loaded configuration.
package logging

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/authpilot/authpilot/internal/config"
	log "github.com/sirupsen/logrus"
	"gopkg.in/natefinch/lumberjack.v2"
)

// SetupBaseLogger applies the default formatter and level to the global
// logger. It is called from init() in every binary so that log lines emitted
// before configuration is loaded already carry timestamps.
func SetupBaseLogger() {
	log.SetFormatter(&log.TextFormatter{
		FullTimestamp:   true,
		TimestampFormat: "2006-01-02 15:04:05",
	})
	log.SetOutput(os.Stderr)
	log.SetLevel(log.InfoLevel)
}

// SetLogLevel sets the global log level from a user-facing level string.
// Unknown values fall back to info.
func SetLogLevel(level string) {
	switch strings.ToLower(level) {
	case "debug", "verbose":
		log.SetLevel(log.DebugLevel)
	case "info":
		log.SetLevel(log.InfoLevel)
	case "warn", "warning":
		log.SetLevel(log.WarnLevel)
	case "error":
		log.SetLevel(log.ErrorLevel)
	case "quiet", "silent":
		log.SetLevel(log.FatalLevel)
	default:
		log.SetLevel(log.InfoLevel)
	}
}

// ConfigureLogOutput applies the logging section of the loaded configuration
// to the global logger. When a log file is configured, output is mirrored to
// a size-rotated file next to stderr.
func ConfigureLogOutput(cfg *config.Config) error {
	if cfg == nil {
		return fmt.Errorf("config is nil")
	}

	if cfg.Debug || cfg.RequestLog {
		log.SetLevel(log.DebugLevel)
	}
	if cfg.Debug {
		log.SetReportCaller(true)
	}

	if cfg.LogFile == "" {
		return nil
	}

	dir := filepath.Dir(cfg.LogFile)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create log directory %s: %w", dir, err)
	}

	rotator := &lumberjack.Logger{
		Filename:   cfg.LogFile,
		MaxSize:    10, // megabytes
		MaxBackups: 3,
		MaxAge:     14, // days
		Compress:   true,
	}
	log.SetOutput(io.MultiWriter(os.Stderr, rotator))
	return nil
}
