package errors

import (
	"fmt"
)

// Common error creators for frequent use cases

// NewConfigError creates a configuration error
func NewConfigError(key, message string) *AppError {
	return New(ErrCodeInvalidConfig, message).
		WithContext("config_key", key)
}

// NewDatabaseError creates a database error with operation context
func NewDatabaseError(operation string, err error) *AppError {
	return Wrap(err, ErrCodeDatabaseQuery, fmt.Sprintf("database %s failed", operation)).
		WithContext("operation", operation)
}

// NewRelayError creates an error for relay communication failures. Relay
// errors are always retryable; the subscription loop reconnects.
func NewRelayError(operation string, err error) *AppError {
	return WrapRetryable(err, ErrCodeRelay, fmt.Sprintf("relay %s failed", operation)).
		WithContext("operation", operation)
}

// NewBlueskyAPIError creates an error for a failed XRPC call. Server-side
// and throttling status codes are marked retryable.
func NewBlueskyAPIError(endpoint string, statusCode int, err error) *AppError {
	appErr := Wrap(err, ErrCodeBlueskyAPI, fmt.Sprintf("bluesky API call failed (status %d)", statusCode)).
		WithContext("endpoint", endpoint).
		WithContext("status_code", statusCode)

	if statusCode >= 500 || statusCode == 429 || statusCode == 408 {
		appErr.Retryable = true
	}

	return appErr
}

// NewMediaError creates a media processing error
func NewMediaError(operation, url string, err error) *AppError {
	return Wrap(err, ErrCodeMediaDownload, fmt.Sprintf("media %s failed", operation)).
		WithContext("operation", operation).
		WithContext("url", url)
}

// NewTimeoutError creates a timeout error with context
func NewTimeoutError(operation string, duration string) *AppError {
	return New(ErrCodeTimeout, fmt.Sprintf("%s timed out after %s", operation, duration)).
		WithContext("operation", operation).
		WithContext("timeout", duration)
}
