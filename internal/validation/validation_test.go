package validation

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidateRelayURL(t *testing.T) {
	tests := []struct {
		name    string
		url     string
		wantErr bool
	}{
		{name: "wss relay", url: "wss://relay.damus.io", wantErr: false},
		{name: "ws relay", url: "ws://localhost:7777", wantErr: false},
		{name: "empty", url: "", wantErr: true},
		{name: "https scheme", url: "https://relay.damus.io", wantErr: true},
		{name: "no host", url: "wss://", wantErr: true},
		{name: "not a url", url: "://bad", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateRelayURL(tt.url)
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestValidatePDSURL(t *testing.T) {
	tests := []struct {
		name    string
		url     string
		wantErr bool
	}{
		{name: "empty uses default", url: "", wantErr: false},
		{name: "https pds", url: "https://bsky.social", wantErr: false},
		{name: "http pds for local testing", url: "http://localhost:2583", wantErr: false},
		{name: "wss scheme", url: "wss://bsky.social", wantErr: true},
		{name: "no host", url: "https://", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidatePDSURL(tt.url)
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestValidateTimeout(t *testing.T) {
	assert.NoError(t, ValidateTimeout(5, "metadata timeout"))
	assert.NoError(t, ValidateTimeout(3600, "metadata timeout"))
	assert.Error(t, ValidateTimeout(0, "metadata timeout"))
	assert.Error(t, ValidateTimeout(-1, "metadata timeout"))
	assert.Error(t, ValidateTimeout(3601, "metadata timeout"))
}

func TestValidatePort(t *testing.T) {
	assert.NoError(t, ValidatePort(8082))
	assert.NoError(t, ValidatePort(1))
	assert.NoError(t, ValidatePort(65535))
	assert.Error(t, ValidatePort(0))
	assert.Error(t, ValidatePort(65536))
}

func TestValidateRetentionDays(t *testing.T) {
	assert.NoError(t, ValidateRetentionDays(30))
	assert.NoError(t, ValidateRetentionDays(3650))
	assert.Error(t, ValidateRetentionDays(0))
	assert.Error(t, ValidateRetentionDays(3651))
}

func TestValidateImageLimits(t *testing.T) {
	assert.NoError(t, ValidateImageLimits(10, 4))
	assert.NoError(t, ValidateImageLimits(1, 1))
	assert.Error(t, ValidateImageLimits(0, 4))
	assert.Error(t, ValidateImageLimits(101, 4))
	assert.Error(t, ValidateImageLimits(10, 0))
	assert.Error(t, ValidateImageLimits(10, 5))
}
