// internal/app/features/errors/errors.go
package errors

import (
	"go.uber.org/zap"
)

// ErrorLogger wraps the app logger with a consistent shape for handler
// failures, so every 500 carries the operation name and the underlying
// error in one place.
type ErrorLogger struct {
	log *zap.Logger
}

// NewErrorLogger constructs an ErrorLogger around the app logger.
func NewErrorLogger(logger *zap.Logger) *ErrorLogger {
	return &ErrorLogger{log: logger}
}

// Log records an unexpected failure for an operation.
func (e *ErrorLogger) Log(operation string, err error, fields ...zap.Field) {
	all := append([]zap.Field{zap.Error(err)}, fields...)
	e.log.Error(operation, all...)
}
