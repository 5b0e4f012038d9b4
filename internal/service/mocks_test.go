package service

import (
	"context"
	"io"
	"time"

	"nostrsky/internal/models"
	"nostrsky/pkg/bluesky"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/mock"
)

func testLogger() *logrus.Logger {
	logger := logrus.New()
	logger.SetOutput(io.Discard)
	return logger
}

type mockDedupDatabase struct {
	mock.Mock
}

func (m *mockDedupDatabase) IsProcessed(ctx context.Context, eventID string) (bool, error) {
	args := m.Called(ctx, eventID)
	return args.Bool(0), args.Error(1)
}

func (m *mockDedupDatabase) MarkProcessed(ctx context.Context, eventID string) (bool, error) {
	args := m.Called(ctx, eventID)
	return args.Bool(0), args.Error(1)
}

type mockMetadataSource struct {
	mock.Mock
}

func (m *mockMetadataSource) QueryLatestMetadata(ctx context.Context, pubkeyHex string, timeout time.Duration) (*models.ProfileMetadata, error) {
	args := m.Called(ctx, pubkeyHex, timeout)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.ProfileMetadata), args.Error(1)
}

type mockMediaFetcher struct {
	mock.Mock
}

func (m *mockMediaFetcher) Fetch(ctx context.Context, url string) (*models.ImageCandidate, error) {
	args := m.Called(ctx, url)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.ImageCandidate), args.Error(1)
}

type mockPublisher struct {
	mock.Mock
}

func (m *mockPublisher) UploadBlob(ctx context.Context, data []byte, mimeType string) (*bluesky.BlobRef, error) {
	args := m.Called(ctx, data, mimeType)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*bluesky.BlobRef), args.Error(1)
}

func (m *mockPublisher) PublishPost(ctx context.Context, text string, images []bluesky.ImageEmbed) error {
	args := m.Called(ctx, text, images)
	return args.Error(0)
}

// passthroughResolver returns the content unchanged; pipeline tests that do
// not exercise mention resolution use it to keep the text stable.
type passthroughResolver struct{}

func (passthroughResolver) Resolve(ctx context.Context, content string) string {
	return content
}
