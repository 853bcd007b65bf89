package contract

import (
	"fmt"
	"sync"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

var (
	loggerMu sync.RWMutex
	logger   = defaultLogger()
)

// defaultLogger is used until InitLogger runs.
func defaultLogger() *zap.Logger {
	l, err := NewLogger(DefaultLogLevel, DefaultLogFormat)
	if err != nil {
		return zap.NewNop()
	}
	return l
}

// NewLogger builds a zap logger writing to stderr.
// Format "json" uses the production encoder, anything else the console encoder.
func NewLogger(levelStr, format string) (*zap.Logger, error) {
	level, err := zapcore.ParseLevel(levelStr)
	if err != nil {
		return nil, fmt.Errorf("invalid log level %q: %w", levelStr, err)
	}

	var cfg zap.Config
	if format == "json" {
		cfg = zap.NewProductionConfig()
	} else {
		cfg = zap.NewDevelopmentConfig()
		cfg.DisableStacktrace = true
		cfg.EncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
	}
	cfg.Level = zap.NewAtomicLevelAt(level)
	cfg.OutputPaths = []string{"stderr"}
	cfg.ErrorOutputPaths = []string{"stderr"}
	return cfg.Build()
}

// InitLogger replaces the package logger according to level and format.
func InitLogger(levelStr, format string) error {
	l, err := NewLogger(levelStr, format)
	if err != nil {
		return err
	}
	SetLogger(l)
	return nil
}

// SetLogger replaces the package logger. Tests use it to observe output.
func SetLogger(l *zap.Logger) {
	loggerMu.Lock()
	defer loggerMu.Unlock()
	logger = l
}

// Logger returns the package logger.
func Logger() *zap.Logger {
	loggerMu.RLock()
	defer loggerMu.RUnlock()
	return logger
}

// SyncLogger flushes buffered log entries.
func SyncLogger() {
	_ = Logger().Sync()
}

// LogFatal logs an error and exits the program.
func LogFatal(msg string, err error) {
	Logger().Fatal(msg, zap.Error(err))
}

// LogWarn logs a warning message to stderr.
func LogWarn(msg string, err error) {
	Logger().Warn(msg, zap.Error(err))
}
