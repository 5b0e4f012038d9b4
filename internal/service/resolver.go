package service

import (
	"context"
	"regexp"
	"strings"
	"time"

	"nostrsky/internal/constants"
	"nostrsky/internal/metrics"
	"nostrsky/internal/models"
	"nostrsky/internal/privacy"
	"nostrsky/pkg/circuitbreaker"
	"nostrsky/pkg/nostr"

	"github.com/sirupsen/logrus"
)

// Mention tokens are npub identifiers behind the nostr: URI scheme; the
// character class is the bech32 data alphabet.
var mentionPattern = regexp.MustCompile(`nostr:(npub1[qpzry9x8gf2tvdw0s3jn54khce6mua7l]+)`)

// MetadataSource looks up the latest profile record for an identity.
type MetadataSource interface {
	QueryLatestMetadata(ctx context.Context, pubkeyHex string, timeout time.Duration) (*models.ProfileMetadata, error)
}

// MentionResolver rewrites nostr:npub mentions into display names. Lookup
// failures fall back to the bare npub (scheme prefix stripped); published
// text never carries the raw nostr: token. Lookups run behind a circuit
// breaker so a dead relay degrades to the fallback immediately instead of
// costing one timeout per mention.
type MentionResolver struct {
	source  MetadataSource
	breaker *circuitbreaker.CircuitBreaker
	timeout time.Duration
	logger  *logrus.Logger
}

func NewMentionResolver(source MetadataSource, timeout time.Duration, logger *logrus.Logger) *MentionResolver {
	return &MentionResolver{
		source:  source,
		breaker: circuitbreaker.New("mention-metadata", constants.DefaultBreakerMaxFailures, constants.DefaultBreakerTimeoutSec*time.Second, logger),
		timeout: timeout,
		logger:  logger,
	}
}

// Resolve replaces every mention token in content. Each unique token is
// looked up once per event; there is no cross-event cache.
func (r *MentionResolver) Resolve(ctx context.Context, content string) string {
	matches := mentionPattern.FindAllStringSubmatch(content, -1)
	if len(matches) == 0 {
		return content
	}

	// Unique tokens in first-appearance order.
	seen := make(map[string]struct{}, len(matches))
	var npubs []string
	for _, m := range matches {
		if _, ok := seen[m[1]]; !ok {
			seen[m[1]] = struct{}{}
			npubs = append(npubs, m[1])
		}
	}

	r.logger.WithField("mentions", len(npubs)).Info("Resolving npub mentions")

	resolved := content
	for _, npub := range npubs {
		replacement := r.resolveOne(ctx, npub)
		resolved = strings.ReplaceAll(resolved, "nostr:"+npub, replacement)
	}
	return resolved
}

func (r *MentionResolver) resolveOne(ctx context.Context, npub string) string {
	log := r.logger.WithField("npub", privacy.MaskPubKey(npub))

	pubkeyHex, err := nostr.ParsePublicKey(npub)
	if err != nil {
		metrics.IncrementCounter("mention_lookups_total", map[string]string{"outcome": "invalid"})
		log.WithError(err).Warn("Invalid npub mention, keeping bare token")
		return npub
	}

	var meta *models.ProfileMetadata
	err = r.breaker.Execute(ctx, func(ctx context.Context) error {
		m, err := r.source.QueryLatestMetadata(ctx, pubkeyHex, r.timeout)
		if err != nil {
			return err
		}
		meta = m
		return nil
	})
	if err != nil {
		metrics.IncrementCounter("mention_lookups_total", map[string]string{"outcome": "error"})
		log.WithError(err).Warn("Mention lookup failed, keeping bare token")
		return npub
	}

	name := meta.BestName()
	if name == "" {
		metrics.IncrementCounter("mention_lookups_total", map[string]string{"outcome": "no_name"})
		log.Debug("No display name in profile metadata, keeping bare token")
		return npub
	}

	metrics.IncrementCounter("mention_lookups_total", map[string]string{"outcome": "resolved"})
	log.WithField("display_name", name).Info("Resolved mention")
	return name
}
