package service

import (
	"context"
	"strings"
	"time"

	"nostrsky/internal/constants"
	apperrors "nostrsky/internal/errors"
	"nostrsky/internal/metrics"
	"nostrsky/internal/models"
	"nostrsky/internal/privacy"
	"nostrsky/internal/tracing"
	"nostrsky/pkg/bluesky"
	"nostrsky/pkg/media"
	"nostrsky/pkg/nostr"

	gonostr "github.com/nbd-wtf/go-nostr"
	"github.com/sirupsen/logrus"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	oteltrace "go.opentelemetry.io/otel/trace"
)

// MediaFetcher downloads and validates one image candidate.
type MediaFetcher interface {
	Fetch(ctx context.Context, url string) (*models.ImageCandidate, error)
}

// Publisher is the target-network collaborator.
type Publisher interface {
	UploadBlob(ctx context.Context, data []byte, mimeType string) (*bluesky.BlobRef, error)
	PublishPost(ctx context.Context, text string, images []bluesky.ImageEmbed) error
}

// Resolver rewrites mention tokens in note content.
type Resolver interface {
	Resolve(ctx context.Context, content string) string
}

// Pipeline turns one inbound note into at most one outbound post: dedup and
// filter gates, mention resolution, image attachment, composition, publish.
// A single worker consumes the subscription stream, so a slow event simply
// backpressures the stream.
type Pipeline struct {
	store     *ProcessedEventStore
	resolver  Resolver
	fetcher   MediaFetcher
	publisher Publisher
	maxImages int
	logger    *logrus.Logger
	tracer    oteltrace.Tracer
}

func NewPipeline(store *ProcessedEventStore, resolver Resolver, fetcher MediaFetcher, publisher Publisher, maxImages int, logger *logrus.Logger) *Pipeline {
	if maxImages <= 0 {
		maxImages = constants.DefaultMaxImagesPerPost
	}
	return &Pipeline{
		store:     store,
		resolver:  resolver,
		fetcher:   fetcher,
		publisher: publisher,
		maxImages: maxImages,
		logger:    logger,
		tracer:    tracing.Tracer("nostrsky/pipeline"),
	}
}

// Run consumes the event stream sequentially until the context is cancelled
// or the stream closes.
func (p *Pipeline) Run(ctx context.Context, events <-chan *gonostr.Event) {
	p.logger.Info("Pipeline started, waiting for notes")

	for {
		select {
		case <-ctx.Done():
			p.logger.Info("Pipeline stopped")
			return
		case ev, ok := <-events:
			if !ok {
				p.logger.Info("Event stream closed, pipeline stopping")
				return
			}
			result := p.Process(ctx, ev)
			p.logResult(ev, result)
		}
	}
}

// Process runs one event through the gates and, when all pass, publishes
// the cross-post. Gates short-circuit in order: duplicate, too-old, reply,
// empty. Marking processed happens after the too-old check so stale backlog
// never pollutes the dedup ledger, and before the reply check so a failure
// past this point is terminal for the event.
func (p *Pipeline) Process(ctx context.Context, ev *gonostr.Event) models.PublishResult {
	ctx, span := p.tracer.Start(ctx, "pipeline.process_event",
		oteltrace.WithAttributes(attribute.String("event.id", privacy.ShortEventID(ev.ID))))
	defer span.End()

	start := time.Now()
	defer func() {
		metrics.RecordTimer("event_processing", time.Since(start))
	}()
	metrics.IncrementCounter("events_received_total", nil)

	if !p.store.IsNew(ctx, ev.ID) {
		return p.skip(span, models.SkipDuplicate)
	}
	if !p.store.IsAfterCutoff(ev.CreatedAt.Time()) {
		return p.skip(span, models.SkipTooOld)
	}

	p.store.MarkProcessed(ctx, ev.ID)

	if nostr.IsReply(ev) {
		return p.skip(span, models.SkipReply)
	}

	content := ev.Content
	if strings.TrimSpace(content) == "" {
		return p.skip(span, models.SkipEmpty)
	}

	p.logger.WithFields(logrus.Fields{
		"event_id":   privacy.ShortEventID(ev.ID),
		"author":     privacy.MaskPubKey(nostr.EncodeNpub(ev.PubKey)),
		"created_at": ev.CreatedAt.Time().UTC().Format(time.RFC3339),
		"preview":    preview(content),
	}).Info("New note received")

	content = p.resolver.Resolve(ctx, content)

	urls := p.findCandidates(content)
	images, attachedURLs := p.attachImages(ctx, urls)

	post := ComposePost(content, attachedURLs, images)

	if err := p.publisher.PublishPost(ctx, post.Text, post.Images); err != nil {
		metrics.IncrementCounter("publish_failures_total", nil)
		span.RecordError(err)
		span.SetStatus(codes.Error, "publish failed")
		return models.PublishFailed(err)
	}

	metrics.IncrementCounter("posts_published_total", nil)
	if len(images) > 0 {
		metrics.GetRegistry().AddToCounter("images_attached_total", float64(len(images)), nil)
	}
	span.SetAttributes(attribute.Int("post.images", len(images)))
	return models.Published()
}

// findCandidates caps the extracted URLs at the attachment limit; URLs past
// the cap are never fetched, even if earlier candidates fail.
func (p *Pipeline) findCandidates(content string) []string {
	urls := media.FindImageURLs(content)
	if len(urls) > p.maxImages {
		urls = urls[:p.maxImages]
	}
	return urls
}

// attachImages runs fetch/validate/upload per candidate in text-appearance
// order. A failure at any stage drops that one candidate and moves on.
func (p *Pipeline) attachImages(ctx context.Context, urls []string) ([]bluesky.ImageEmbed, []string) {
	var images []bluesky.ImageEmbed
	var attachedURLs []string

	for _, u := range urls {
		candidate, err := p.fetcher.Fetch(ctx, u)
		if err != nil {
			metrics.IncrementCounter("image_candidates_dropped_total", map[string]string{"stage": "fetch"})
			p.logger.WithError(err).WithField("url", u).Warn("Dropping image candidate: fetch failed")
			continue
		}

		blob, err := p.publisher.UploadBlob(ctx, candidate.Data, candidate.MimeType)
		if err != nil {
			metrics.IncrementCounter("image_candidates_dropped_total", map[string]string{"stage": "upload"})
			p.logger.WithError(err).WithField("url", u).Warn("Dropping image candidate: upload failed")
			continue
		}

		images = append(images, bluesky.ImageEmbed{Alt: constants.ImageAltText, Image: blob})
		attachedURLs = append(attachedURLs, u)
	}

	return images, attachedURLs
}

func (p *Pipeline) skip(span oteltrace.Span, reason models.SkipReason) models.PublishResult {
	metrics.IncrementCounter("events_skipped_total", map[string]string{"reason": string(reason)})
	span.SetAttributes(attribute.String("skip.reason", string(reason)))
	return models.Skipped(reason)
}

func (p *Pipeline) logResult(ev *gonostr.Event, result models.PublishResult) {
	log := p.logger.WithField("event_id", privacy.ShortEventID(ev.ID))
	switch result.Status {
	case models.StatusPublished:
		log.Info("Cross-posted note to Bluesky")
	case models.StatusSkipped:
		log.WithField("reason", string(result.Reason)).Debug("Skipped note")
	case models.StatusFailed:
		// Publish failures are terminal for the event: no retry, the event
		// stays marked processed.
		log.WithError(result.Err).WithFields(apperrors.Fields(result.Err)).Error("Failed to cross-post note")
	}
}

func preview(content string) string {
	if len(content) <= constants.ContentPreviewLength {
		return content
	}
	return content[:constants.ContentPreviewLength] + "..."
}
