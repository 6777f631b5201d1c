// Package logging wraps zap with the project's file-backed logger.
package logging

import (
	"os"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Logger provides structured logging for core operations.
type Logger struct {
	zap *zap.Logger
}

// New creates a Logger that appends JSON records to logPath.
// If logPath is empty, logging is disabled.
// If development is true, uses development encoder config with readable output.
func New(logPath string, development bool) (*Logger, error) {
	if logPath == "" {
		return &Logger{zap: zap.NewNop()}, nil
	}

	logFile, err := os.OpenFile(logPath, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		return nil, err
	}

	var encoderConfig zapcore.EncoderConfig
	if development {
		encoderConfig = zap.NewDevelopmentEncoderConfig()
	} else {
		encoderConfig = zap.NewProductionEncoderConfig()
	}

	core := zapcore.NewCore(
		zapcore.NewJSONEncoder(encoderConfig),
		zapcore.AddSync(logFile),
		zapcore.InfoLevel,
	)

	return &Logger{zap: zap.New(core)}, nil
}

// Nop returns a logger that discards everything.
func Nop() *Logger {
	return &Logger{zap: zap.NewNop()}
}

// Close syncs the logger (should be called on shutdown).
func (l *Logger) Close() error {
	return l.zap.Sync()
}

// HandlerFault logs a failed extension handler with full context. The stack
// is non-nil only for recovered panics.
func (l *Logger) HandlerFault(phase string, index int, err error, stack []byte) {
	fields := []zap.Field{
		zap.String("phase", phase),
		zap.Int("handler_index", index),
		zap.Error(err),
	}
	if stack != nil {
		fields = append(fields, zap.ByteString("stack", stack))
	}
	l.zap.Error("extension handler failed", fields...)
}

// MutationApplied logs a completed file mutation.
func (l *Logger) MutationApplied(path, operation string, changed bool) {
	l.zap.Info("file mutation",
		zap.String("path", path),
		zap.String("operation", operation),
		zap.Bool("changed", changed),
	)
}

// MutationRejected logs a mutation denied by the permission gate.
func (l *Logger) MutationRejected(path, operation string) {
	l.zap.Info("file mutation rejected",
		zap.String("path", path),
		zap.String("operation", operation),
	)
}

// IOFault logs a filesystem failure during a write with full diagnostics.
func (l *Logger) IOFault(path, operation string, err error) {
	l.zap.Error("filesystem fault",
		zap.String("path", path),
		zap.String("operation", operation),
		zap.Error(err),
	)
}

// Error logs an error.
func (l *Logger) Error(msg string, err error) {
	l.zap.Error(msg, zap.Error(err))
}

// Info logs an info message.
func (l *Logger) Info(msg string, fields ...zap.Field) {
	l.zap.Info(msg, fields...)
}

// Debug logs a debug message.
func (l *Logger) Debug(msg string, fields ...zap.Field) {
	l.zap.Debug(msg, fields...)
}
