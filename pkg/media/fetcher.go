package media

import (
	"bytes"
	"context"
	"fmt"
	"image"
	"io"
	"net/http"
	"strings"
	"time"

	apperrors "nostrsky/internal/errors"
	"nostrsky/internal/models"

	"github.com/sirupsen/logrus"

	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"

	_ "golang.org/x/image/webp"
)

// Fetcher downloads image candidates and gates them on status, declared
// content type, size and structural validity before they are uploaded.
type Fetcher struct {
	httpClient *http.Client
	maxBytes   int64
	logger     *logrus.Logger
}

// NewFetcher creates a fetcher with the given download timeout and size cap.
func NewFetcher(timeout time.Duration, maxSizeMB int, logger *logrus.Logger) *Fetcher {
	return &Fetcher{
		httpClient: &http.Client{Timeout: timeout},
		maxBytes:   int64(maxSizeMB) * 1024 * 1024,
		logger:     logger,
	}
}

// Fetch downloads one URL and returns a validated candidate. Gates are
// checked in order: HTTP status, content-type prefix, size, image decode.
// The decode result is discarded; only the original bytes are kept.
func (f *Fetcher) Fetch(ctx context.Context, url string) (*models.ImageCandidate, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	resp, err := f.httpClient.Do(req)
	if err != nil {
		return nil, apperrors.NewMediaError("download", url, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, apperrors.NewMediaError("download", url, fmt.Errorf("unexpected status %d", resp.StatusCode))
	}

	contentType := resp.Header.Get("Content-Type")
	if !strings.HasPrefix(contentType, "image/") {
		return nil, apperrors.NewMediaError("validate", url, fmt.Errorf("not an image: content type %q", contentType))
	}

	// Read one byte past the cap so an oversized body is detected without
	// buffering the whole thing.
	data, err := io.ReadAll(io.LimitReader(resp.Body, f.maxBytes+1))
	if err != nil {
		return nil, apperrors.NewMediaError("download", url, err)
	}
	if int64(len(data)) > f.maxBytes {
		return nil, apperrors.NewMediaError("validate", url, fmt.Errorf("image too large: over %d bytes", f.maxBytes))
	}

	if _, _, err := image.Decode(bytes.NewReader(data)); err != nil {
		return nil, apperrors.NewMediaError("validate", url, fmt.Errorf("invalid image file: %w", err))
	}

	f.logger.WithFields(logrus.Fields{
		"url":          url,
		"bytes":        len(data),
		"content_type": contentType,
	}).Info("Downloaded image")

	return &models.ImageCandidate{
		URL:      url,
		Data:     data,
		MimeType: contentType,
	}, nil
}
