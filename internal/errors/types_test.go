package errors

import (
	stderrors "errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAppErrorMessage(t *testing.T) {
	err := New(ErrCodeInvalidConfig, "bad relay URL")
	assert.Equal(t, "INVALID_CONFIG: bad relay URL", err.Error())
}

func TestAppErrorWrapsCause(t *testing.T) {
	cause := stderrors.New("connection refused")
	err := Wrap(cause, ErrCodeRelay, "subscribe failed")

	assert.Equal(t, "RELAY: subscribe failed: connection refused", err.Error())
	assert.ErrorIs(t, err, cause)
}

func TestWithContext(t *testing.T) {
	err := New(ErrCodeMediaDownload, "fetch failed").
		WithContext("url", "https://ex.com/a.png").
		WithContext("attempt", 2)

	require.NotNil(t, err.Context)
	assert.Equal(t, "https://ex.com/a.png", err.Context["url"])
	assert.Equal(t, 2, err.Context["attempt"])
}

func TestIsRetryable(t *testing.T) {
	assert.True(t, IsRetryable(WrapRetryable(stderrors.New("timeout"), ErrCodeRelay, "query failed")))
	assert.False(t, IsRetryable(Wrap(stderrors.New("bad json"), ErrCodeBlueskyAPI, "call failed")))
	assert.False(t, IsRetryable(stderrors.New("plain error")))
	assert.False(t, IsRetryable(nil))
}

func TestGetCode(t *testing.T) {
	assert.Equal(t, ErrCodeDatabaseQuery, GetCode(New(ErrCodeDatabaseQuery, "insert failed")))
	assert.Equal(t, ErrCodeInternalError, GetCode(stderrors.New("plain error")))
}
