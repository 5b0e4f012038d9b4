package errors

import (
	"github.com/sirupsen/logrus"
)

// Fields extracts structured log fields from an error. Plain errors yield
// nothing; an AppError contributes its code, retryable flag and context.
func Fields(err error) logrus.Fields {
	appErr, ok := err.(*AppError)
	if !ok {
		return logrus.Fields{}
	}

	fields := logrus.Fields{
		"error_code": appErr.Code,
		"retryable":  appErr.Retryable,
	}
	for k, v := range appErr.Context {
		fields[k] = v
	}
	return fields
}

// LogError logs an error with structured context at error level
func LogError(logger *logrus.Logger, err error, message string) {
	logger.WithError(err).WithFields(Fields(err)).Error(message)
}

// LogRetryableError logs a retryable error at warn level, non-retryable at
// error level
func LogRetryableError(logger *logrus.Logger, err error, message string) {
	entry := logger.WithError(err).WithFields(Fields(err))
	if IsRetryable(err) {
		entry.Warn(message)
	} else {
		entry.Error(message)
	}
}
